// internal/models/quiz.go
package models

import (
	"strings"
	"time"
)

// AnswerOption is one of the four option letters of a question.
type AnswerOption string

const (
	OptionA AnswerOption = "A"
	OptionB AnswerOption = "B"
	OptionC AnswerOption = "C"
	OptionD AnswerOption = "D"
)

// NormalizeAnswer upper-cases and trims a submitted answer letter.
func NormalizeAnswer(raw string) AnswerOption {
	return AnswerOption(strings.ToUpper(strings.TrimSpace(raw)))
}

// Valid reports whether o is one of A-D.
func (o AnswerOption) Valid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

type Quiz struct {
	ID              int64  `json:"id"`
	JobID           int64  `json:"jobId"`
	CompanyID       int64  `json:"companyId"`
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	PassingScore    int    `json:"passingScore"`
}

type Question struct {
	ID            int64        `json:"id"`
	QuizID        int64        `json:"quizId"`
	Text          string       `json:"text"`
	OptionA       string       `json:"optionA"`
	OptionB       string       `json:"optionB"`
	OptionC       string       `json:"optionC"`
	OptionD       string       `json:"optionD"`
	CorrectAnswer AnswerOption `json:"correctAnswer"`
}

// QuizAttempt is written once at submission and never updated.
type QuizAttempt struct {
	ID               int64     `json:"id"`
	QuizID           int64     `json:"quizId"`
	SeekerID         int64     `json:"seekerId"`
	Score            int       `json:"score"`
	IsPassed         bool      `json:"isPassed"`
	TimeTakenSeconds int       `json:"timeTakenSeconds"`
	AttemptedAt      time.Time `json:"attemptedAt"`
}
