// internal/workers/application/submit-application/models.go
package submitapplication

import "jobbly-workers/internal/identity"

type Input struct {
	Identity identity.Identity `json:"identity"`
	JobID    int64             `json:"jobId"`
}

type Output struct {
	ApplicationID     int64  `json:"applicationId"`
	JobID             int64  `json:"jobId"`
	SeekerID          int64  `json:"seekerId"`
	ApplicationStatus string `json:"applicationStatus"`
	AppliedAt         string `json:"appliedAt"` // RFC 3339
	MatchPercentage   int    `json:"matchPercentage"`
	HasQuiz           bool   `json:"hasQuiz"`
	QuizID            int64  `json:"quizId,omitempty"`
	NextStep          string `json:"nextStep"`
}

// Where the seeker goes after a successful apply.
const (
	NextStepQuiz         = "quiz"
	NextStepApplications = "applications"
)
