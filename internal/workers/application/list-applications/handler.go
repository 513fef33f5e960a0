// internal/workers/application/list-applications/handler.go
package listapplications

import (
	"context"

	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "list-applications"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity"],
	"properties": {
		"identity": {"type": "object", "required": ["role"]},
		"jobId": {"type": "integer", "minimum": 0}
	}
}`)

// Lister is satisfied by *lifecycle.Service.
type Lister interface {
	ListForSeeker(ctx context.Context, id identity.Identity) ([]models.ApplicationView, error)
	ListForCompany(ctx context.Context, id identity.Identity, jobID int64) ([]models.ApplicationView, error)
}

type Handler struct {
	lister Lister
	runner *jobs.Runner
	logger logger.Logger
}

func NewHandler(cfg *Config, lister Lister, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		lister: lister,
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

// execute serves the seeker's own applications or, for a company, its
// applicants. Any other caller is refused by the company path.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	var (
		views []models.ApplicationView
		err   error
	)
	if input.Identity.Role == identity.RoleSeeker {
		views, err = h.lister.ListForSeeker(ctx, input.Identity)
	} else {
		views, err = h.lister.ListForCompany(ctx, input.Identity, input.JobID)
	}
	if err != nil {
		return nil, err
	}

	h.logger.Debug("applications listed", map[string]interface{}{
		"role":  string(input.Identity.Role),
		"jobId": input.JobID,
		"count": len(views),
	})
	return &Output{Count: len(views), Applications: views}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
