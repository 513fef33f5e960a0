// internal/workers/assessment/check-quiz-access/handler.go
package checkquizaccess

import (
	"context"
	"fmt"

	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/quiz"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "check-quiz-access"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity", "quizId"],
	"properties": {
		"identity": {"type": "object", "required": ["role"]},
		"quizId": {"type": "integer", "minimum": 1}
	}
}`)

// AccessChecker is satisfied by *quiz.Engine.
type AccessChecker interface {
	CheckAccess(ctx context.Context, quizID, seekerID int64) (quiz.Access, error)
}

// QuizReader loads the quiz the seeker is about to take.
type QuizReader interface {
	GetQuiz(ctx context.Context, quizID int64) (models.Quiz, error)
	GetQuestions(ctx context.Context, quizID int64) ([]models.Question, error)
}

type Handler struct {
	checker AccessChecker
	quizzes QuizReader
	runner  *jobs.Runner
	logger  logger.Logger
}

func NewHandler(cfg *Config, checker AccessChecker, quizzes QuizReader, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		checker: checker,
		quizzes: quizzes,
		runner:  jobs.NewRunner(TaskType, cfg.Timeout, inputSchema, obs, log).WithMaxRetries(cfg.MaxRetries),
		logger:  log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

// execute returns the quiz content only when the seeker may still take it.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	seekerID, err := input.Identity.RequireSeeker()
	if err != nil {
		return nil, err
	}

	access, err := h.checker.CheckAccess(ctx, input.QuizID, seekerID)
	if err != nil {
		return nil, err
	}
	out := &Output{QuizID: input.QuizID, CanAttempt: access.Allowed}
	if !access.Allowed {
		out.Reason = string(access.Reason)
		if at := access.Attempt; at != nil {
			out.PreviousAttempt = &AttemptView{
				Score:       at.Score,
				IsPassed:    at.IsPassed,
				AttemptedAt: at.AttemptedAt,
			}
		}
		h.logger.Info("quiz access denied", map[string]interface{}{
			"quizId":   input.QuizID,
			"seekerId": seekerID,
			"reason":   out.Reason,
		})
		return out, nil
	}

	q, err := h.quizzes.GetQuiz(ctx, input.QuizID)
	if err != nil {
		return nil, fmt.Errorf("load quiz: %w", err)
	}
	questions, err := h.quizzes.GetQuestions(ctx, input.QuizID)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	out.Title = q.Title
	out.DurationMinutes = q.DurationMinutes
	out.PassingScore = q.PassingScore
	out.Questions = make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		out.Questions = append(out.Questions, QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
		})
	}
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
