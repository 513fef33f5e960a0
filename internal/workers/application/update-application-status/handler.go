// internal/workers/application/update-application-status/handler.go
package updateapplicationstatus

import (
	"context"
	"time"

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
	TaskType = "update-application-status"
)

// status is left as a plain string so unknown labels reach the
// INVALID_STATUS check instead of failing schema validation.
var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["identity", "applicationId", "status"],
	"properties": {
		"identity": {"type": "object", "required": ["role"]},
		"applicationId": {"type": "integer", "minimum": 1},
		"status": {"type": "string"}
	}
}`)

// StatusChanger is satisfied by *lifecycle.Service.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, id identity.Identity, applicationID int64, rawStatus string) (models.Application, error)
}

type Handler struct {
	service StatusChanger
	runner  *jobs.Runner
	now     func() time.Time
}

func NewHandler(cfg *Config, service StatusChanger, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		service: service,
		runner:  jobs.NewRunner(TaskType, cfg.Timeout, inputSchema, obs, log).WithMaxRetries(cfg.MaxRetries),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	app, err := h.service.ChangeStatus(ctx, input.Identity, input.ApplicationID, input.Status)
	if err != nil {
		return nil, err
	}
	return &Output{
		ApplicationID:     app.ID,
		JobID:             app.JobID,
		SeekerID:          app.SeekerID,
		ApplicationStatus: string(app.Status),
		UpdatedAt:         h.now().Format(time.RFC3339),
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
