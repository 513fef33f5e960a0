// internal/quiz/draft.go
package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/store"
)

const (
	DefaultDurationMinutes = 30
	DefaultPassingScore    = 60
)

type DraftQuestion struct {
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
}

// Draft is a company's quiz as submitted from the authoring form.
type Draft struct {
	JobID           int64           `json:"jobId"`
	Title           string          `json:"title"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	PassingScore    *int            `json:"passingScore,omitempty"`
	Questions       []DraftQuestion `json:"questions"`
}

// normalize applies defaults and drops blank questions.
func (d Draft) normalize() (models.Quiz, []models.Question, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return models.Quiz{}, nil, fmt.Errorf("%w: quiz title is required", ErrInvalidDraft)
	}

	duration := d.DurationMinutes
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	passing := DefaultPassingScore
	if d.PassingScore != nil {
		passing = *d.PassingScore
	}
	if passing < 0 {
		passing = 0
	}
	if passing > 100 {
		passing = 100
	}

	questions := make([]models.Question, 0, len(d.Questions))
	for _, dq := range d.Questions {
		text := strings.TrimSpace(dq.Text)
		if text == "" {
			continue
		}
		answer := models.NormalizeAnswer(dq.CorrectAnswer)
		if !answer.Valid() {
			answer = models.OptionA
		}
		questions = append(questions, models.Question{
			Text:          text,
			OptionA:       strings.TrimSpace(dq.OptionA),
			OptionB:       strings.TrimSpace(dq.OptionB),
			OptionC:       strings.TrimSpace(dq.OptionC),
			OptionD:       strings.TrimSpace(dq.OptionD),
			CorrectAnswer: answer,
		})
	}
	if len(questions) == 0 {
		return models.Quiz{}, nil, fmt.Errorf("%w: at least one question is required", ErrInvalidDraft)
	}

	return models.Quiz{
		JobID:           d.JobID,
		Title:           title,
		DurationMinutes: duration,
		PassingScore:    passing,
	}, questions, nil
}

type CreateResult struct {
	Quiz          models.Quiz `json:"quiz"`
	QuestionCount int         `json:"questionCount"`
}

// CreateQuiz attaches a quiz to one of the company's jobs. A job has at most
// one quiz.
func (e *Engine) CreateQuiz(ctx context.Context, id identity.Identity, d Draft) (*CreateResult, error) {
	companyID, err := id.RequireCompany()
	if err != nil {
		return nil, err
	}

	job, err := e.store.GetJob(ctx, d.JobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: job %d", ErrJobNotFound, d.JobID)
		}
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job.CompanyID != companyID {
		return nil, fmt.Errorf("%w: job %d belongs to another company", identity.ErrForbidden, d.JobID)
	}

	_, err = e.store.GetQuizForJob(ctx, d.JobID)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: job %d", ErrQuizExists, d.JobID)
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("check existing quiz: %w", err)
	}

	quiz, questions, err := d.normalize()
	if err != nil {
		return nil, err
	}
	quiz.CompanyID = companyID

	created, err := e.store.CreateQuiz(ctx, quiz, questions)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: job %d", ErrQuizExists, d.JobID)
		}
		return nil, fmt.Errorf("create quiz: %w", err)
	}

	e.logger.Info("quiz created", map[string]interface{}{
		"quizId":    created.ID,
		"jobId":     created.JobID,
		"questions": len(questions),
	})
	return &CreateResult{Quiz: created, QuestionCount: len(questions)}, nil
}
