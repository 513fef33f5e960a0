// internal/workers/assessment/check-quiz-access/models.go
package checkquizaccess

import (
	"time"

	"jobbly-workers/internal/identity"
)

type Input struct {
	Identity identity.Identity `json:"identity"`
	QuizID   int64             `json:"quizId"`
}

type Output struct {
	QuizID          int64          `json:"quizId"`
	CanAttempt      bool           `json:"canAttempt"`
	// Reason is already_attempted or no_questions when CanAttempt is false.
	Reason          string         `json:"reason,omitempty"`
	PreviousAttempt *AttemptView   `json:"previousAttempt,omitempty"`
	Title           string         `json:"title,omitempty"`
	DurationMinutes int            `json:"durationMinutes,omitempty"`
	PassingScore    int            `json:"passingScore,omitempty"`
	Questions       []QuestionView `json:"questions,omitempty"`
}

// QuestionView is what the seeker sees; the correct answer stays server-side.
type QuestionView struct {
	ID      int64  `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
}

type AttemptView struct {
	Score       int       `json:"score"`
	IsPassed    bool      `json:"isPassed"`
	AttemptedAt time.Time `json:"attemptedAt"`
}
