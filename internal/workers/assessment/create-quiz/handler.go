// internal/workers/assessment/create-quiz/handler.go
package createquiz

import (
	"context"

	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/quiz"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "create-quiz"
)

// Blank titles and questions are left to the engine, which owns the
// defaults and the skip rules.
var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity", "jobId", "title", "questions"],
	"properties": {
		"identity": {"type": "object", "required": ["role"]},
		"jobId": {"type": "integer", "minimum": 1},
		"title": {"type": "string"},
		"durationMinutes": {"type": "integer"},
		"passingScore": {"type": "integer"},
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"text": {"type": "string"},
					"optionA": {"type": "string"},
					"optionB": {"type": "string"},
					"optionC": {"type": "string"},
					"optionD": {"type": "string"},
					"correctAnswer": {"type": "string"}
				}
			}
		}
	}
}`)

// Creator is satisfied by *quiz.Engine.
type Creator interface {
	CreateQuiz(ctx context.Context, id identity.Identity, d quiz.Draft) (*quiz.CreateResult, error)
}

type Handler struct {
	engine Creator
	runner *jobs.Runner
}

func NewHandler(cfg *Config, engine Creator, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		engine: engine,
		runner: jobs.NewRunner(TaskType, cfg.Timeout, inputSchema, obs, log).WithMaxRetries(cfg.MaxRetries),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.engine.CreateQuiz(ctx, input.Identity, input.Draft)
	if err != nil {
		return nil, err
	}
	return &Output{
		QuizID:          res.Quiz.ID,
		JobID:           res.Quiz.JobID,
		Title:           res.Quiz.Title,
		DurationMinutes: res.Quiz.DurationMinutes,
		PassingScore:    res.Quiz.PassingScore,
		QuestionCount:   res.QuestionCount,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
