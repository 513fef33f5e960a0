// internal/common/errors/errors.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"jobbly-workers/internal/eligibility"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/lifecycle"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/quiz"
	"jobbly-workers/internal/store"
)

type ErrorCode string

const (
	ErrCodeAlreadyApplied      ErrorCode = "ALREADY_APPLIED"
	ErrCodeAlreadyAttempted    ErrorCode = "ALREADY_ATTEMPTED"
	ErrCodeNotEligible         ErrorCode = "NOT_ELIGIBLE"
	ErrCodeJobUnavailable      ErrorCode = "JOB_UNAVAILABLE"
	ErrCodeNoQuestions         ErrorCode = "NO_QUESTIONS"
	ErrCodeJobNotFound         ErrorCode = "JOB_NOT_FOUND"
	ErrCodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	ErrCodeQuizExists          ErrorCode = "QUIZ_EXISTS"
	ErrCodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidStatus       ErrorCode = "INVALID_STATUS"
	ErrCodeForbidden           ErrorCode = "FORBIDDEN"
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"

	ErrCodeStorageFailure         ErrorCode = "STORAGE_FAILURE"
	ErrCodeSearchQueryFailed      ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeTimeout                ErrorCode = "TIMEOUT"
	ErrCodeBrokerUnavailable      ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerRejected         ErrorCode = "BROKER_REJECTED"
	ErrCodeInternal               ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the normalized form every worker failure is reported in.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// BPMNError is what gets thrown to, or failed back to, the broker.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Job variables are invalid", details, false)
}

func NewNotEligibleError(jobID, seekerID int64, eval eligibility.Result) *StandardError {
	e := newError(ErrCodeNotEligible, "Seeker does not meet the job requirements",
		fmt.Sprintf("jobId: %d, seekerId: %d", jobID, seekerID), false)

	gates := make([]string, 0, len(eval.Reasons))
	for _, g := range eval.FailedGates() {
		gates = append(gates, string(g))
	}
	missing := eval.SkillMatch.MissingIDs
	if missing == nil {
		missing = []int{}
	}
	e.Metadata = map[string]interface{}{
		"failedGates":     gates,
		"educationOk":     eval.EducationOK,
		"skillsOk":        eval.SkillsOK,
		"missingSkillIds": missing,
		"matchPercentage": eval.SkillMatch.Percentage,
	}
	return e
}

// NewAlreadyAttemptedError exposes the recorded result of the seeker's single
// attempt.
func NewAlreadyAttemptedError(at models.QuizAttempt) *StandardError {
	e := newError(ErrCodeAlreadyAttempted, "Seeker already completed this quiz",
		fmt.Sprintf("quizId: %d, seekerId: %d", at.QuizID, at.SeekerID), false)
	e.Metadata = map[string]interface{}{
		"score":       at.Score,
		"isPassed":    at.IsPassed,
		"attemptedAt": at.AttemptedAt.UTC().Format(time.RFC3339),
	}
	return e
}

func NewStorageFailureError(err error) *StandardError {
	return newError(ErrCodeStorageFailure, "Storage operation failed", err.Error(), true)
}

func NewSearchQueryFailedError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Job search failed", err.Error(), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewTimeoutError(err error) *StandardError {
	return newError(ErrCodeTimeout, "Job exceeded its timeout", err.Error(), true)
}

// NewBrokerUnavailableError reports a Zeebe gateway that could not be reached.
func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Workflow broker unavailable",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

// NewBrokerRejectedError reports a command the gateway refused outright.
func NewBrokerRejectedError(operation string, err error) *StandardError {
	return newError(ErrCodeBrokerRejected, "Workflow broker rejected the command",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), false)
}

// FromEngineError classifies an error returned by the engine packages.
// Business outcomes are not retryable; anything unrecognized is treated as a
// storage fault and retried.
func FromEngineError(err error) *StandardError {
	if err == nil {
		return nil
	}

	var std *StandardError
	if stderrors.As(err, &std) {
		return std
	}

	var notEligible *lifecycle.NotEligibleError
	if stderrors.As(err, &notEligible) {
		return NewNotEligibleError(notEligible.JobID, notEligible.SeekerID, notEligible.Evaluation)
	}

	var attempted *quiz.AlreadyAttemptedError
	if stderrors.As(err, &attempted) {
		return NewAlreadyAttemptedError(attempted.Attempt)
	}

	details := err.Error()
	switch {
	case stderrors.Is(err, lifecycle.ErrAlreadyApplied):
		return newError(ErrCodeAlreadyApplied, "Seeker already applied to this job", details, false)
	case stderrors.Is(err, lifecycle.ErrJobUnavailable):
		return newError(ErrCodeJobUnavailable, "Job is not accepting applications", details, false)
	case stderrors.Is(err, lifecycle.ErrJobNotFound), stderrors.Is(err, quiz.ErrJobNotFound):
		return newError(ErrCodeJobNotFound, "Job not found", details, false)
	case stderrors.Is(err, lifecycle.ErrApplicationNotFound):
		return newError(ErrCodeApplicationNotFound, "Application not found", details, false)
	case stderrors.Is(err, quiz.ErrAlreadyAttempted):
		return newError(ErrCodeAlreadyAttempted, "Seeker already completed this quiz", details, false)
	case stderrors.Is(err, quiz.ErrNoQuestions):
		return newError(ErrCodeNoQuestions, "Quiz has no questions", details, false)
	case stderrors.Is(err, quiz.ErrQuizNotFound):
		return newError(ErrCodeQuizNotFound, "Quiz not found", details, false)
	case stderrors.Is(err, quiz.ErrQuizExists):
		return newError(ErrCodeQuizExists, "Job already has a quiz", details, false)
	case stderrors.Is(err, quiz.ErrInvalidDraft):
		return newError(ErrCodeInvalidInput, "Quiz draft is invalid", details, false)
	case stderrors.Is(err, models.ErrInvalidStatus):
		return newError(ErrCodeInvalidStatus, "Unknown application status", details, false)
	case stderrors.Is(err, identity.ErrForbidden):
		return newError(ErrCodeForbidden, "Caller may not perform this operation", details, false)
	case stderrors.Is(err, store.ErrSearchFailed):
		return NewSearchQueryFailedError(err)
	case stderrors.Is(err, context.DeadlineExceeded):
		return NewTimeoutError(err)
	default:
		return NewStorageFailureError(err)
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeAlreadyApplied:         "ALREADY_APPLIED",
	ErrCodeAlreadyAttempted:       "ALREADY_ATTEMPTED",
	ErrCodeNotEligible:            "NOT_ELIGIBLE",
	ErrCodeJobUnavailable:         "JOB_UNAVAILABLE",
	ErrCodeNoQuestions:            "NO_QUESTIONS",
	ErrCodeJobNotFound:            "JOB_NOT_FOUND",
	ErrCodeQuizNotFound:           "QUIZ_NOT_FOUND",
	ErrCodeQuizExists:             "QUIZ_EXISTS",
	ErrCodeApplicationNotFound:    "APPLICATION_NOT_FOUND",
	ErrCodeInvalidStatus:          "INVALID_STATUS",
	ErrCodeForbidden:              "FORBIDDEN",
	ErrCodeInvalidInput:           "INVALID_INPUT",
	ErrCodeStorageFailure:         "STORAGE_FAILURE",
	ErrCodeSearchQueryFailed:      "SEARCH_QUERY_FAILED",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
	ErrCodeTimeout:                "TIMEOUT",
	ErrCodeBrokerUnavailable:      "BROKER_UNAVAILABLE",
	ErrCodeBrokerRejected:         "BROKER_REJECTED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStorageFailure,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeBrokerUnavailable:
		return 3
	case ErrCodeTimeout:
		return 2
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, ok := BPMNErrorMapping[stdErr.Code]
	if !ok {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	c := string(code)
	switch {
	case strings.HasPrefix(c, "ALREADY_"), c == string(ErrCodeNotEligible), c == string(ErrCodeJobUnavailable):
		return "ELIGIBILITY"
	case strings.Contains(c, "QUIZ") || strings.Contains(c, "QUESTION"):
		return "ASSESSMENT"
	case strings.Contains(c, "NOT_FOUND"):
		return "LOOKUP"
	case c == string(ErrCodeForbidden):
		return "AUTHORIZATION"
	case strings.Contains(c, "INVALID"):
		return "VALIDATION"
	case strings.Contains(c, "STORAGE") || strings.Contains(c, "TIMEOUT"):
		return "DATABASE"
	case strings.Contains(c, "SEARCH"):
		return "SEARCH"
	case strings.Contains(c, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.HasPrefix(c, "BROKER_"):
		return "WORKFLOW"
	default:
		return "OTHER"
	}
}
