// internal/workers/assessment/submit-quiz/handler.go
package submitquiz

import (
	"context"
	"time"

	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/metrics"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/quiz"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-quiz"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity", "quizId", "answers"],
	"properties": {
		"identity": {"type": "object", "required": ["role"]},
		"quizId": {"type": "integer", "minimum": 1},
		"answers": {
			"type": "object",
			"propertyNames": {"pattern": "^[0-9]+$"},
			"additionalProperties": {"type": "string"}
		},
		"timeTakenSeconds": {"type": "integer", "minimum": 0}
	}
}`)

// Submitter is satisfied by *quiz.Engine.
type Submitter interface {
	Submit(ctx context.Context, req quiz.SubmitRequest) (*quiz.SubmitResult, error)
}

type Handler struct {
	engine Submitter
	runner *jobs.Runner
}

func NewHandler(cfg *Config, engine Submitter, obs *observability.Observability, log logger.Logger) *Handler {
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
	res, err := h.engine.Submit(ctx, quiz.SubmitRequest{
		Identity:         input.Identity,
		QuizID:           input.QuizID,
		Answers:          input.Answers,
		TimeTakenSeconds: input.TimeTakenSeconds,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordQuizAttempt(res.Attempt.Score, res.Attempt.IsPassed)

	return &Output{
		AttemptID:        res.Attempt.ID,
		QuizID:           res.Attempt.QuizID,
		Score:            res.Attempt.Score,
		CorrectCount:     res.Score.CorrectCount,
		TotalQuestions:   res.Score.Total,
		PassingScore:     res.PassingScore,
		Passed:           res.Attempt.IsPassed,
		TimeTakenSeconds: res.Attempt.TimeTakenSeconds,
		AttemptedAt:      res.Attempt.AttemptedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
