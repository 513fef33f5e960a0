// internal/lifecycle/errors.go
package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"jobbly-workers/internal/eligibility"
)

var (
	ErrJobNotFound         = errors.New("JOB_NOT_FOUND")
	ErrJobUnavailable      = errors.New("JOB_UNAVAILABLE")
	ErrAlreadyApplied      = errors.New("ALREADY_APPLIED")
	ErrNotEligible         = errors.New("NOT_ELIGIBLE")
	ErrApplicationNotFound = errors.New("APPLICATION_NOT_FOUND")
)

// NotEligibleError carries the full evaluation so callers can show every
// failed gate. errors.Is(err, ErrNotEligible) holds for it.
type NotEligibleError struct {
	JobID      int64
	SeekerID   int64
	Evaluation eligibility.Result
}

func (e *NotEligibleError) Error() string {
	gates := make([]string, 0, len(e.Evaluation.Reasons))
	for _, g := range e.Evaluation.FailedGates() {
		gates = append(gates, string(g))
	}
	return fmt.Sprintf("%s: seeker %d does not meet job %d requirements (failed: %s)",
		ErrNotEligible, e.SeekerID, e.JobID, strings.Join(gates, ", "))
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}
