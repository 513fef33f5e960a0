// internal/workers/assessment/create-quiz/models.go
package createquiz

import (
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/quiz"
)

type Input struct {
	Identity identity.Identity `json:"identity"`
	quiz.Draft
}

type Output struct {
	QuizID          int64  `json:"quizId"`
	JobID           int64  `json:"jobId"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	PassingScore    int    `json:"passingScore"`
	QuestionCount   int    `json:"questionCount"`
}
