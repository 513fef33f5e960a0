package quiz

import (
	"errors"
	"fmt"

	"jobbly-workers/internal/models"
)

var (
	ErrQuizNotFound     = errors.New("QUIZ_NOT_FOUND")
	ErrAlreadyAttempted = errors.New("ALREADY_ATTEMPTED")
	ErrNoQuestions      = errors.New("NO_QUESTIONS")
	ErrQuizExists       = errors.New("QUIZ_EXISTS")
	ErrJobNotFound      = errors.New("JOB_NOT_FOUND")
	ErrInvalidDraft     = errors.New("INVALID_INPUT")
)

// AlreadyAttemptedError carries the recorded attempt so callers can show the
// seeker's existing result. errors.Is(err, ErrAlreadyAttempted) holds for it.
type AlreadyAttemptedError struct {
	Attempt models.QuizAttempt
}

func (e *AlreadyAttemptedError) Error() string {
	return fmt.Sprintf("%s: quiz %d, seeker %d scored %d",
		ErrAlreadyAttempted, e.Attempt.QuizID, e.Attempt.SeekerID, e.Attempt.Score)
}

func (e *AlreadyAttemptedError) Unwrap() error {
	return ErrAlreadyAttempted
}
