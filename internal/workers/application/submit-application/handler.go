// internal/workers/application/submit-application/handler.go
package submitapplication

import (
	"context"
	"time"

	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/metrics"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/lifecycle"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "submit-application"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity", "jobId"],
	"properties": {
		"identity": {
			"type": "object",
			"required": ["role"],
			"properties": {
				"role": {"enum": ["seeker", "company"]},
				"seekerId": {"type": "integer"}
			}
		},
		"jobId": {"type": "integer", "minimum": 1}
	}
}`)

// Applier is satisfied by *lifecycle.Service.
type Applier interface {
	Apply(ctx context.Context, id identity.Identity, jobID int64) (*lifecycle.ApplyResult, error)
}

type Handler struct {
	applier Applier
	runner  *jobs.Runner
	logger  logger.Logger
}

func NewHandler(cfg *Config, applier Applier, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		applier: applier,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	res, err := h.applier.Apply(ctx, input.Identity, input.JobID)
	if err != nil {
		code := errors.FromEngineError(err).Code
		metrics.RecordApplication(string(code))
		if code == errors.ErrCodeNotEligible {
			metrics.RecordEligibility("apply", false)
		}
		return nil, err
	}

	metrics.RecordApplication("CREATED")
	metrics.RecordEligibility("apply", true)

	next := NextStepApplications
	if res.HasQuiz {
		next = NextStepQuiz
	}

	app := res.Application
	return &Output{
		ApplicationID:     app.ID,
		JobID:             app.JobID,
		SeekerID:          app.SeekerID,
		ApplicationStatus: string(app.Status),
		AppliedAt:         app.AppliedAt.UTC().Format(time.RFC3339),
		MatchPercentage:   res.Evaluation.SkillMatch.Percentage,
		HasQuiz:           res.HasQuiz,
		QuizID:            res.QuizID,
		NextStep:          next,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
