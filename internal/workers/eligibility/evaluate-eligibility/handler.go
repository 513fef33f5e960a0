// internal/workers/eligibility/evaluate-eligibility/handler.go
package evaluateeligibility

import (
	"context"
	"errors"
	"fmt"

	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/metrics"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/eligibility"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/lifecycle"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "evaluate-eligibility"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity", "jobId"],
	"properties": {
		"identity": {"type": "object", "required": ["role"]},
		"jobId": {"type": "integer", "minimum": 1}
	}
}`)

// Store is what the evaluation reads.
type Store interface {
	GetJob(ctx context.Context, jobID int64) (models.Job, error)
	GetSeeker(ctx context.Context, seekerID int64) (models.Seeker, error)
}

type Handler struct {
	store  Store
	runner *jobs.Runner
	logger logger.Logger
}

func NewHandler(cfg *Config, s Store, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		store:  s,
		runner: jobs.NewRunner(TaskType, cfg.Timeout, inputSchema, obs, log).WithMaxRetries(cfg.MaxRetries),
		logger: log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

// execute reports the badge for a job detail page. Closed jobs are still
// evaluated; JobActive tells the caller whether applying is possible.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	seekerID, err := input.Identity.RequireSeeker()
	if err != nil {
		return nil, err
	}

	job, err := h.store.GetJob(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %d", lifecycle.ErrJobNotFound, input.JobID)
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	seeker, err := h.store.GetSeeker(ctx, seekerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: seeker profile %d missing", identity.ErrForbidden, seekerID)
		}
		return nil, fmt.Errorf("load seeker: %w", err)
	}

	result := eligibility.Evaluate(seeker, job)
	metrics.RecordEligibility("detail", result.Eligible)

	h.logger.Debug("eligibility evaluated", map[string]interface{}{
		"jobId":    job.ID,
		"seekerId": seekerID,
		"eligible": result.Eligible,
		"match":    result.SkillMatch.Percentage,
	})

	return &Output{
		JobID:           job.ID,
		SeekerID:        seekerID,
		Eligible:        result.Eligible,
		EducationOK:     result.EducationOK,
		SkillsOK:        result.SkillsOK,
		MatchPercentage: result.SkillMatch.Percentage,
		MatchedCount:    result.SkillMatch.MatchedCount,
		RequiredCount:   result.SkillMatch.RequiredCount,
		MissingSkillIDs: result.SkillMatch.MissingIDs,
		Reasons:         result.Reasons,
		JobActive:       job.IsActive(),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
