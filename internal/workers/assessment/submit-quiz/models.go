// internal/workers/assessment/submit-quiz/models.go
package submitquiz

import "jobbly-workers/internal/identity"

type Input struct {
	Identity identity.Identity `json:"identity"`
	QuizID   int64             `json:"quizId"`
	// Answers maps question id to the chosen option letter.
	Answers          map[int64]string `json:"answers"`
	TimeTakenSeconds int              `json:"timeTakenSeconds,omitempty"`
}

type Output struct {
	AttemptID        int64  `json:"attemptId"`
	QuizID           int64  `json:"quizId"`
	Score            int    `json:"score"`
	CorrectCount     int    `json:"correctCount"`
	TotalQuestions   int    `json:"totalQuestions"`
	PassingScore     int    `json:"passingScore"`
	Passed           bool   `json:"passed"`
	TimeTakenSeconds int    `json:"timeTakenSeconds"`
	AttemptedAt      string `json:"attemptedAt"`
}
