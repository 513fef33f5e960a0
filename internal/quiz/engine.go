// internal/quiz/engine.go
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"
)

type Store interface {
	GetJob(ctx context.Context, jobID int64) (models.Job, error)
	GetQuiz(ctx context.Context, quizID int64) (models.Quiz, error)
	GetQuizForJob(ctx context.Context, jobID int64) (models.Quiz, error)
	GetQuestions(ctx context.Context, quizID int64) ([]models.Question, error)
	GetExistingAttempt(ctx context.Context, quizID, seekerID int64) (models.QuizAttempt, error)
	InsertAttempt(ctx context.Context, at models.QuizAttempt) (models.QuizAttempt, error)
	CreateQuiz(ctx context.Context, quiz models.Quiz, questions []models.Question) (models.Quiz, error)
}

type Engine struct {
	store  Store
	now    func() time.Time
	logger logger.Logger
}

func NewEngine(s Store, log logger.Logger) *Engine {
	return &Engine{
		store:  s,
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.WithFields(map[string]interface{}{"component": "quiz"}),
	}
}

func (e *Engine) loadQuiz(ctx context.Context, quizID int64) (models.Quiz, error) {
	q, err := e.store.GetQuiz(ctx, quizID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Quiz{}, fmt.Errorf("%w: %d", ErrQuizNotFound, quizID)
		}
		return models.Quiz{}, fmt.Errorf("load quiz: %w", err)
	}
	return q, nil
}

// existingAttempt returns nil when the seeker has not taken the quiz yet.
func (e *Engine) existingAttempt(ctx context.Context, quizID, seekerID int64) (*models.QuizAttempt, error) {
	at, err := e.store.GetExistingAttempt(ctx, quizID, seekerID)
	switch {
	case err == nil:
		return &at, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("check existing attempt: %w", err)
	}
}

type DenyReason string

const (
	DenyAlreadyAttempted DenyReason = "already_attempted"
	DenyNoQuestions      DenyReason = "no_questions"
)

// Access says whether the seeker may start the quiz and, if not, why.
type Access struct {
	Allowed bool
	Reason  DenyReason
	// Attempt is set when Reason is DenyAlreadyAttempted.
	Attempt *models.QuizAttempt
}

// CheckAccess denies once the seeker has an attempt or while the quiz has no
// questions.
func (e *Engine) CheckAccess(ctx context.Context, quizID, seekerID int64) (Access, error) {
	if _, err := e.loadQuiz(ctx, quizID); err != nil {
		return Access{}, err
	}

	prior, err := e.existingAttempt(ctx, quizID, seekerID)
	if err != nil {
		return Access{}, err
	}
	if prior != nil {
		return Access{Reason: DenyAlreadyAttempted, Attempt: prior}, nil
	}

	questions, err := e.store.GetQuestions(ctx, quizID)
	if err != nil {
		return Access{}, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return Access{Reason: DenyNoQuestions}, nil
	}
	return Access{Allowed: true}, nil
}

func (e *Engine) CanAttempt(ctx context.Context, quizID, seekerID int64) (bool, error) {
	access, err := e.CheckAccess(ctx, quizID, seekerID)
	return access.Allowed, err
}

type SubmitRequest struct {
	Identity identity.Identity
	QuizID   int64
	Answers  map[int64]string
	// TimeTakenSeconds <= 0 means the client did not report it.
	TimeTakenSeconds int
}

type SubmitResult struct {
	Attempt      models.QuizAttempt `json:"attempt"`
	Score        ScoreResult        `json:"score"`
	PassingScore int                `json:"passingScore"`
}

// Submit scores and records the seeker's single attempt. Late submissions
// are accepted. The insert is conditional on (quiz, seeker) so concurrent
// submissions record at most one attempt.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	seekerID, err := req.Identity.RequireSeeker()
	if err != nil {
		return nil, err
	}

	quiz, err := e.loadQuiz(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}

	prior, err := e.existingAttempt(ctx, quiz.ID, seekerID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		return nil, &AlreadyAttemptedError{Attempt: *prior}
	}

	questions, err := e.store.GetQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: quiz %d", ErrNoQuestions, quiz.ID)
	}

	score := Score(questions, req.Answers)

	timeTaken := req.TimeTakenSeconds
	if timeTaken <= 0 {
		timeTaken = quiz.DurationMinutes * 60
	}

	attempt, err := e.store.InsertAttempt(ctx, models.QuizAttempt{
		QuizID:           quiz.ID,
		SeekerID:         seekerID,
		Score:            score.Percentage,
		IsPassed:         Passed(score.Percentage, quiz.PassingScore),
		TimeTakenSeconds: timeTaken,
		AttemptedAt:      e.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			// Lost the race to a concurrent submission; report the winner.
			if winner, lerr := e.existingAttempt(ctx, quiz.ID, seekerID); lerr == nil && winner != nil {
				return nil, &AlreadyAttemptedError{Attempt: *winner}
			}
			return nil, fmt.Errorf("%w: quiz %d", ErrAlreadyAttempted, quiz.ID)
		}
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	e.logger.Info("quiz attempt recorded", map[string]interface{}{
		"quizId":   quiz.ID,
		"seekerId": seekerID,
		"score":    attempt.Score,
		"passed":   attempt.IsPassed,
	})
	return &SubmitResult{Attempt: attempt, Score: score, PassingScore: quiz.PassingScore}, nil
}
