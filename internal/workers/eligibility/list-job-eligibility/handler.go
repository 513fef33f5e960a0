// internal/workers/eligibility/list-job-eligibility/handler.go
package listjobeligibility

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
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-job-eligibility"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"properties": {
		"identity": {"type": "object"},
		"from": {"type": "integer", "minimum": 0},
		"size": {"type": "integer", "minimum": 0}
	}
}`)

// JobLister pages the board; *store.JobIndex satisfies it.
type JobLister interface {
	ActiveJobIDs(ctx context.Context, from, size int) ([]int64, int, error)
}

// JobReader loads the authoritative job rows the badges are computed from.
type JobReader interface {
	GetJobs(ctx context.Context, jobIDs []int64) ([]models.Job, error)
}

type SeekerReader interface {
	GetSeeker(ctx context.Context, seekerID int64) (models.Seeker, error)
}

type Handler struct {
	config  *Config
	lister  JobLister
	jobs    JobReader
	seekers SeekerReader
	runner  *jobs.Runner
	logger  logger.Logger
}

func NewHandler(cfg *Config, lister JobLister, jobRows JobReader, seekers SeekerReader, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  cfg,
		lister:  lister,
		jobs:    jobRows,
		seekers: seekers,
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
	size := input.Size
	if size <= 0 {
		size = h.config.DefaultSize
	}
	if size > h.config.MaxSize {
		size = h.config.MaxSize
	}

	ids, total, err := h.lister.ActiveJobIDs(ctx, input.From, size)
	if err != nil {
		return nil, err
	}
	list, err := h.loadJobs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Guests and companies see the board without badges.
	var seeker *models.Seeker
	if seekerID, err := input.Identity.RequireSeeker(); err == nil {
		s, err := h.seekers.GetSeeker(ctx, seekerID)
		switch {
		case err == nil:
			seeker = &s
		case errors.Is(err, store.ErrNotFound):
			return nil, fmt.Errorf("%w: seeker profile %d missing", identity.ErrForbidden, seekerID)
		default:
			return nil, fmt.Errorf("load seeker: %w", err)
		}
	}

	listings := make([]Listing, 0, len(list))
	eligibleCount := 0
	for _, j := range list {
		l := Listing{
			JobID:             j.ID,
			CompanyID:         j.CompanyID,
			Title:             j.Title,
			Location:          j.Location,
			JobType:           j.JobType,
			RequiredEducation: j.RequiredEducation,
			PostedAt:          j.PostedAt,
		}
		if seeker != nil {
			r := eligibility.Evaluate(*seeker, j)
			metrics.RecordEligibility("listing", r.Eligible)
			if r.Eligible {
				eligibleCount++
			}
			l.Badge = &Badge{
				Eligible:        r.Eligible,
				EducationOK:     r.EducationOK,
				SkillsOK:        r.SkillsOK,
				MatchPercentage: r.SkillMatch.Percentage,
			}
		}
		listings = append(listings, l)
	}

	h.logger.Info("job board listed", map[string]interface{}{
		"total":    total,
		"returned": len(listings),
		"eligible": eligibleCount,
		"badges":   seeker != nil,
	})

	return &Output{
		Total: total,
		From:  input.From,
		Size:  size,
		Jobs:  listings,
	}, nil
}

// loadJobs returns the rows for ids in index order. Ids the database no
// longer has, or whose job has closed, are dropped.
func (h *Handler) loadJobs(ctx context.Context, ids []int64) ([]models.Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := h.jobs.GetJobs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	byID := make(map[int64]models.Job, len(rows))
	for _, j := range rows {
		byID[j.ID] = j
	}

	list := make([]models.Job, 0, len(ids))
	stale := 0
	for _, id := range ids {
		j, ok := byID[id]
		if !ok || !j.IsActive() {
			stale++
			continue
		}
		list = append(list, j)
	}
	if stale > 0 {
		h.logger.Warn("job index out of date", map[string]interface{}{"staleEntries": stale})
	}
	return list, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
