// internal/workers/application/send-notification/handler.go
package sendnotification

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/jobs"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/metrics"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-notification"
)

var inputSchema = validation.MustCompile(TaskType, `{
	"type": "object",
	"required": ["notificationType", "recipientType", "recipientId"],
	"properties": {
		"notificationType": {"enum": ["application_submitted", "new_application", "quiz_result", "application_status_changed"]},
		"recipientType": {"enum": ["seeker", "company"]},
		"recipientId": {"type": "integer", "minimum": 1},
		"priority": {"enum": ["low", "normal", "high"]},
		"score": {"type": "integer", "minimum": 0, "maximum": 100}
	}
}`)

// EmailSender is satisfied by *aws.Mailer.
type EmailSender interface {
	Send(ctx context.Context, to, subject, textBody, htmlBody string) (string, error)
}

// SMSSender is satisfied by *aws.SMSSender.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) (string, error)
}

type ContactStore interface {
	GetSeeker(ctx context.Context, seekerID int64) (models.Seeker, error)
	GetCompany(ctx context.Context, companyID int64) (models.Company, error)
}

type Handler struct {
	config    *Config
	contacts  ContactStore
	email     EmailSender
	sms       SMSSender
	templates map[string]message
	runner    *jobs.Runner
	logger    logger.Logger
	now       func() time.Time
}

func NewHandler(cfg *Config, contacts ContactStore, email EmailSender, sms SMSSender, obs *observability.Observability, log logger.Logger) (*Handler, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    cfg,
		contacts:  contacts,
		email:     email,
		sms:       sms,
		templates: templates,
		runner:    jobs.NewRunner(TaskType, cfg.Timeout, inputSchema, obs, log).WithMaxRetries(cfg.MaxRetries),
		logger:    log,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

type contact struct {
	name, email, phone string
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	tmpl, ok := h.templates[input.NotificationType]
	if !ok {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("template not found for type: %s", input.NotificationType))
	}

	out := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		Channels:       []string{},
		SentAt:         h.now().Format(time.RFC3339),
	}

	c, err := h.lookupContact(ctx, input.RecipientType, input.RecipientID)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			h.logger.Warn("recipient not found", map[string]interface{}{
				"recipientId": input.RecipientID,
				"type":        input.RecipientType,
			})
			return out, nil
		}
		return nil, err
	}

	subject, body, err := tmpl.render(templateData{
		RecipientName:     c.name,
		JobTitle:          input.JobTitle,
		ApplicationID:     input.ApplicationID,
		ApplicationStatus: input.ApplicationStatus,
		QuizTitle:         input.QuizTitle,
		Score:             input.Score,
		Passed:            input.Passed,
		PortalURL:         strings.TrimRight(h.config.PortalURL, "/"),
	})
	if err != nil {
		return nil, errors.NewInvalidInputError(fmt.Sprintf("render %s: %v", input.NotificationType, err))
	}

	if h.config.EmailEnabled && validation.ValidateEmail(c.email) {
		if _, err := h.email.Send(ctx, c.email, subject, body, ""); err != nil {
			metrics.RecordNotification(ChannelEmail, "failed")
			return nil, errors.NewNotificationSendFailedError(ChannelEmail, err)
		}
		metrics.RecordNotification(ChannelEmail, StatusSent)
		out.Channels = append(out.Channels, ChannelEmail)
	}

	// SMS only goes out for high priority messages.
	if h.config.SMSEnabled && input.Priority == PriorityHigh && validation.ValidatePhone(c.phone) {
		if _, err := h.sms.Send(ctx, c.phone, body); err != nil {
			metrics.RecordNotification(ChannelSMS, "failed")
			if len(out.Channels) == 0 {
				return nil, errors.NewNotificationSendFailedError(ChannelSMS, err)
			}
			h.logger.Warn("SMS send failed after email was delivered", map[string]interface{}{
				"recipientId": input.RecipientID,
				"error":       err,
			})
		} else {
			metrics.RecordNotification(ChannelSMS, StatusSent)
			out.Channels = append(out.Channels, ChannelSMS)
		}
	}

	if len(out.Channels) > 0 {
		out.Status = StatusSent
	}
	h.logger.Info("notification processed", map[string]interface{}{
		"notificationId": out.NotificationID,
		"type":           input.NotificationType,
		"status":         out.Status,
		"channels":       out.Channels,
	})
	return out, nil
}

func (h *Handler) lookupContact(ctx context.Context, recipientType string, id int64) (contact, error) {
	switch recipientType {
	case RecipientTypeSeeker:
		s, err := h.contacts.GetSeeker(ctx, id)
		if err != nil {
			return contact{}, err
		}
		return contact{name: s.FullName, email: s.Email, phone: s.Phone}, nil
	case RecipientTypeCompany:
		c, err := h.contacts.GetCompany(ctx, id)
		if err != nil {
			return contact{}, err
		}
		return contact{name: c.Name, email: c.Email, phone: c.Phone}, nil
	default:
		return contact{}, errors.NewInvalidInputError(fmt.Sprintf("invalid recipient type: %s", recipientType))
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
