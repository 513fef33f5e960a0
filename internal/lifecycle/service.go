// Package lifecycle creates applications and moves them through review
// states.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/eligibility"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"
)

// Store is the slice of the persistence gateway the lifecycle needs.
type Store interface {
	GetJob(ctx context.Context, jobID int64) (models.Job, error)
	GetSeeker(ctx context.Context, seekerID int64) (models.Seeker, error)
	GetQuizForJob(ctx context.Context, jobID int64) (models.Quiz, error)
	GetExistingApplication(ctx context.Context, jobID, seekerID int64) (models.Application, error)
	InsertApplication(ctx context.Context, app models.Application) (models.Application, error)
	GetApplication(ctx context.Context, applicationID int64) (models.Application, int64, error)
	UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error
	ListApplicationsBySeeker(ctx context.Context, seekerID int64) ([]models.ApplicationView, error)
	ListApplicationsByCompany(ctx context.Context, companyID, jobID int64) ([]models.ApplicationView, error)
}

type Service struct {
	store  Store
	now    func() time.Time
	logger logger.Logger
}

func NewService(s Store, log logger.Logger) *Service {
	return &Service{
		store:  s,
		now:    func() time.Time { return time.Now().UTC() },
		logger: log.WithFields(map[string]interface{}{"component": "lifecycle"}),
	}
}

type ApplyResult struct {
	Application models.Application `json:"application"`
	Evaluation  eligibility.Result `json:"evaluation"`
	HasQuiz     bool               `json:"hasQuiz"`
	QuizID      int64              `json:"quizId,omitempty"`
}

// Apply records a pending application for the calling seeker. Checks run in
// order: job availability, existing application, eligibility. The insert is
// conditional on (job, seeker) so concurrent calls create at most one row.
func (s *Service) Apply(ctx context.Context, id identity.Identity, jobID int64) (*ApplyResult, error) {
	seekerID, err := id.RequireSeeker()
	if err != nil {
		return nil, err
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %d", ErrJobNotFound, jobID)
		}
		return nil, fmt.Errorf("load job: %w", err)
	}
	if !job.IsActive() {
		return nil, fmt.Errorf("%w: job %d is %s", ErrJobUnavailable, jobID, job.Status)
	}

	_, err = s.store.GetExistingApplication(ctx, jobID, seekerID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: job %d", ErrAlreadyApplied, jobID)
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check existing application: %w", err)
	}

	seeker, err := s.store.GetSeeker(ctx, seekerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: seeker profile %d missing", identity.ErrForbidden, seekerID)
		}
		return nil, fmt.Errorf("load seeker: %w", err)
	}

	evaluation := eligibility.Evaluate(seeker, job)
	if !evaluation.Eligible {
		return nil, &NotEligibleError{JobID: jobID, SeekerID: seekerID, Evaluation: evaluation}
	}

	app, err := s.store.InsertApplication(ctx, models.Application{
		JobID:     jobID,
		SeekerID:  seekerID,
		Status:    models.ApplicationStatusPending,
		AppliedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: job %d", ErrAlreadyApplied, jobID)
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}

	result := &ApplyResult{Application: app, Evaluation: evaluation}

	// The application is already committed; a failed quiz lookup only costs
	// the redirect.
	quiz, err := s.store.GetQuizForJob(ctx, jobID)
	switch {
	case err == nil:
		result.HasQuiz = true
		result.QuizID = quiz.ID
	case !errors.Is(err, store.ErrNotFound):
		s.logger.Warn("quiz lookup failed after apply", map[string]interface{}{
			"jobId":         jobID,
			"applicationId": app.ID,
			"error":         err.Error(),
		})
	}

	s.logger.Info("application created", map[string]interface{}{
		"jobId":         jobID,
		"seekerId":      seekerID,
		"applicationId": app.ID,
		"hasQuiz":       result.HasQuiz,
	})
	return result, nil
}

// ChangeStatus lets the owning company set any of the four review states.
func (s *Service) ChangeStatus(ctx context.Context, id identity.Identity, applicationID int64, rawStatus string) (models.Application, error) {
	companyID, err := id.RequireCompany()
	if err != nil {
		return models.Application{}, err
	}

	status, err := models.ParseApplicationStatus(rawStatus)
	if err != nil {
		return models.Application{}, err
	}

	app, ownerID, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Application{}, fmt.Errorf("%w: %d", ErrApplicationNotFound, applicationID)
		}
		return models.Application{}, fmt.Errorf("load application: %w", err)
	}
	if ownerID != companyID {
		return models.Application{}, fmt.Errorf("%w: application %d belongs to another company", identity.ErrForbidden, applicationID)
	}

	if err := s.store.UpdateApplicationStatus(ctx, applicationID, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Application{}, fmt.Errorf("%w: %d", ErrApplicationNotFound, applicationID)
		}
		return models.Application{}, fmt.Errorf("update status: %w", err)
	}

	previous := app.Status
	app.Status = status
	s.logger.Info("application status changed", map[string]interface{}{
		"applicationId": applicationID,
		"from":          string(previous),
		"to":            string(status),
	})
	return app, nil
}

// ListForSeeker returns the calling seeker's applications with their quiz
// results, newest first.
func (s *Service) ListForSeeker(ctx context.Context, id identity.Identity) ([]models.ApplicationView, error) {
	seekerID, err := id.RequireSeeker()
	if err != nil {
		return nil, err
	}
	views, err := s.store.ListApplicationsBySeeker(ctx, seekerID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return views, nil
}

// ListForCompany returns applicants to the calling company's jobs, newest
// first. jobID narrows the list to one of the company's own jobs; 0 lists
// every job.
func (s *Service) ListForCompany(ctx context.Context, id identity.Identity, jobID int64) ([]models.ApplicationView, error) {
	companyID, err := id.RequireCompany()
	if err != nil {
		return nil, err
	}

	if jobID > 0 {
		job, err := s.store.GetJob(ctx, jobID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("%w: job %d", ErrJobNotFound, jobID)
			}
			return nil, fmt.Errorf("load job: %w", err)
		}
		if job.CompanyID != companyID {
			return nil, fmt.Errorf("%w: job %d belongs to another company", identity.ErrForbidden, jobID)
		}
	}

	views, err := s.store.ListApplicationsByCompany(ctx, companyID, jobID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return views, nil
}
