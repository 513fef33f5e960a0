// internal/models/application.go
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ApplicationStatus is the reviewer-facing state of an application.
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusReviewed    ApplicationStatus = "reviewed"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

var ErrInvalidStatus = errors.New("INVALID_STATUS")

// ApplicationStatuses lists every status a reviewer may set, in workflow order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending,
	ApplicationStatusReviewed,
	ApplicationStatusShortlisted,
	ApplicationStatusRejected,
}

// ParseApplicationStatus accepts only the four enumerated labels.
func ParseApplicationStatus(raw string) (ApplicationStatus, error) {
	s := ApplicationStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range ApplicationStatuses {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

type Application struct {
	ID        int64             `json:"id"`
	JobID     int64             `json:"jobId"`
	SeekerID  int64             `json:"seekerId"`
	Status    ApplicationStatus `json:"status"`
	AppliedAt time.Time         `json:"appliedAt"`
}

// ApplicationView is an application joined with its job, the applicant and
// the applicant's quiz result. Quiz is nil when the job has no quiz.
type ApplicationView struct {
	Application
	JobTitle        string      `json:"jobTitle"`
	CompanyID       int64       `json:"companyId"`
	CompanyName     string      `json:"companyName"`
	SeekerName      string      `json:"seekerName"`
	SeekerEducation string      `json:"seekerEducation"`
	SeekerEmail     string      `json:"seekerEmail,omitempty"`
	Quiz            *QuizResult `json:"quiz,omitempty"`
}

// QuizResult is the applicant's standing on the job's quiz. Score, IsPassed
// and AttemptedAt are only meaningful when Attempted is true.
type QuizResult struct {
	QuizID       int64      `json:"quizId"`
	PassingScore int        `json:"passingScore"`
	Attempted    bool       `json:"attempted"`
	Score        int        `json:"score"`
	IsPassed     bool       `json:"isPassed"`
	AttemptedAt  *time.Time `json:"attemptedAt,omitempty"`
}
