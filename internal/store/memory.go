// internal/store/memory.go
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"jobbly-workers/internal/models"
)

type pairKey struct{ a, b int64 }

// Memory is an in-process gateway with the same uniqueness rules as the
// Postgres schema. Used by tests and local runs without a database.
type Memory struct {
	mu sync.Mutex

	jobs      map[int64]models.Job
	seekers   map[int64]models.Seeker
	companies map[int64]models.Company
	quizzes   map[int64]models.Quiz
	questions map[int64][]models.Question

	applications map[int64]models.Application
	appIndex     map[pairKey]int64
	attempts     map[pairKey]models.QuizAttempt

	nextID int64

	// Fail, when set, is returned by every call to simulate an outage.
	Fail error
}

func NewMemory() *Memory {
	return &Memory{
		jobs:         map[int64]models.Job{},
		seekers:      map[int64]models.Seeker{},
		companies:    map[int64]models.Company{},
		quizzes:      map[int64]models.Quiz{},
		questions:    map[int64][]models.Question{},
		applications: map[int64]models.Application{},
		appIndex:     map[pairKey]int64{},
		attempts:     map[pairKey]models.QuizAttempt{},
		nextID:       1000,
	}
}

func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) PutJob(j models.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jobs[j.ID] = j
}

func (m *Memory) PutSeeker(s models.Seeker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekers[s.ID] = s
}

func (m *Memory) PutCompany(c models.Company) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.companies[c.ID] = c
}

// PutQuiz stores a quiz and its questions, assigning question ids if unset.
func (m *Memory) PutQuiz(q models.Quiz, questions []models.Question) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quizzes[q.ID] = q
	stored := make([]models.Question, 0, len(questions))
	for _, qu := range questions {
		if qu.ID == 0 {
			qu.ID = m.id()
		}
		qu.QuizID = q.ID
		stored = append(stored, qu)
	}
	m.questions[q.ID] = stored
}

func (m *Memory) ApplicationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applications)
}

func (m *Memory) AttemptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.attempts)
}

func (m *Memory) GetJob(_ context.Context, jobID int64) (models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Job{}, m.Fail
	}
	j, ok := m.jobs[jobID]
	if !ok {
		return models.Job{}, fmt.Errorf("job %d: %w", jobID, ErrNotFound)
	}
	return j, nil
}

func (m *Memory) GetJobs(_ context.Context, jobIDs []int64) ([]models.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	jobs := make([]models.Job, 0, len(jobIDs))
	for _, id := range jobIDs {
		if j, ok := m.jobs[id]; ok {
			jobs = append(jobs, j)
		}
	}
	return jobs, nil
}

func (m *Memory) ListApplicationsBySeeker(_ context.Context, seekerID int64) ([]models.ApplicationView, error) {
	return m.listApplications(func(a models.Application, j models.Job) bool {
		return a.SeekerID == seekerID
	})
}

func (m *Memory) ListApplicationsByCompany(_ context.Context, companyID, jobID int64) ([]models.ApplicationView, error) {
	return m.listApplications(func(a models.Application, j models.Job) bool {
		return j.CompanyID == companyID && (jobID == 0 || j.ID == jobID)
	})
}

func (m *Memory) listApplications(keep func(models.Application, models.Job) bool) ([]models.ApplicationView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}

	views := []models.ApplicationView{}
	for _, a := range m.applications {
		j := m.jobs[a.JobID]
		if !keep(a, j) {
			continue
		}
		s := m.seekers[a.SeekerID]
		v := models.ApplicationView{
			Application:     a,
			JobTitle:        j.Title,
			CompanyID:       j.CompanyID,
			CompanyName:     m.companies[j.CompanyID].Name,
			SeekerName:      s.FullName,
			SeekerEducation: s.Education,
			SeekerEmail:     s.Email,
		}
		for _, q := range m.quizzes {
			if q.JobID != a.JobID {
				continue
			}
			v.Quiz = &models.QuizResult{QuizID: q.ID, PassingScore: q.PassingScore}
			if at, ok := m.attempts[pairKey{q.ID, a.SeekerID}]; ok {
				attemptedAt := at.AttemptedAt
				v.Quiz.Attempted = true
				v.Quiz.Score = at.Score
				v.Quiz.IsPassed = at.IsPassed
				v.Quiz.AttemptedAt = &attemptedAt
			}
			break
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, k int) bool {
		if !views[i].AppliedAt.Equal(views[k].AppliedAt) {
			return views[i].AppliedAt.After(views[k].AppliedAt)
		}
		return views[i].ID > views[k].ID
	})
	return views, nil
}

func (m *Memory) GetSeeker(_ context.Context, seekerID int64) (models.Seeker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Seeker{}, m.Fail
	}
	s, ok := m.seekers[seekerID]
	if !ok {
		return models.Seeker{}, fmt.Errorf("seeker %d: %w", seekerID, ErrNotFound)
	}
	return s, nil
}

func (m *Memory) GetCompany(_ context.Context, companyID int64) (models.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Company{}, m.Fail
	}
	c, ok := m.companies[companyID]
	if !ok {
		return models.Company{}, fmt.Errorf("company %d: %w", companyID, ErrNotFound)
	}
	return c, nil
}

func (m *Memory) GetQuiz(_ context.Context, quizID int64) (models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Quiz{}, m.Fail
	}
	q, ok := m.quizzes[quizID]
	if !ok {
		return models.Quiz{}, fmt.Errorf("quiz %d: %w", quizID, ErrNotFound)
	}
	return q, nil
}

func (m *Memory) GetQuizForJob(_ context.Context, jobID int64) (models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Quiz{}, m.Fail
	}
	for _, q := range m.quizzes {
		if q.JobID == jobID {
			return q, nil
		}
	}
	return models.Quiz{}, fmt.Errorf("quiz for job %d: %w", jobID, ErrNotFound)
}

func (m *Memory) GetQuestions(_ context.Context, quizID int64) ([]models.Question, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	out := append([]models.Question{}, m.questions[quizID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetExistingApplication(_ context.Context, jobID, seekerID int64) (models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Application{}, m.Fail
	}
	id, ok := m.appIndex[pairKey{jobID, seekerID}]
	if !ok {
		return models.Application{}, ErrNotFound
	}
	return m.applications[id], nil
}

func (m *Memory) GetApplication(_ context.Context, applicationID int64) (models.Application, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Application{}, 0, m.Fail
	}
	a, ok := m.applications[applicationID]
	if !ok {
		return models.Application{}, 0, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	return a, m.jobs[a.JobID].CompanyID, nil
}

func (m *Memory) GetExistingAttempt(_ context.Context, quizID, seekerID int64) (models.QuizAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.QuizAttempt{}, m.Fail
	}
	at, ok := m.attempts[pairKey{quizID, seekerID}]
	if !ok {
		return models.QuizAttempt{}, ErrNotFound
	}
	return at, nil
}

func (m *Memory) InsertApplication(_ context.Context, app models.Application) (models.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Application{}, m.Fail
	}
	key := pairKey{app.JobID, app.SeekerID}
	if _, exists := m.appIndex[key]; exists {
		return models.Application{}, fmt.Errorf("application job=%d seeker=%d: %w", app.JobID, app.SeekerID, ErrDuplicate)
	}
	app.ID = m.id()
	m.applications[app.ID] = app
	m.appIndex[key] = app.ID
	return app, nil
}

func (m *Memory) InsertAttempt(_ context.Context, at models.QuizAttempt) (models.QuizAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.QuizAttempt{}, m.Fail
	}
	key := pairKey{at.QuizID, at.SeekerID}
	if _, exists := m.attempts[key]; exists {
		return models.QuizAttempt{}, fmt.Errorf("attempt quiz=%d seeker=%d: %w", at.QuizID, at.SeekerID, ErrDuplicate)
	}
	at.ID = m.id()
	m.attempts[key] = at
	return at, nil
}

func (m *Memory) UpdateApplicationStatus(_ context.Context, applicationID int64, status models.ApplicationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	a, ok := m.applications[applicationID]
	if !ok {
		return fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	a.Status = status
	m.applications[applicationID] = a
	return nil
}

func (m *Memory) CreateQuiz(_ context.Context, quiz models.Quiz, questions []models.Question) (models.Quiz, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return models.Quiz{}, m.Fail
	}
	for _, q := range m.quizzes {
		if q.JobID == quiz.JobID {
			return models.Quiz{}, fmt.Errorf("quiz for job %d: %w", quiz.JobID, ErrDuplicate)
		}
	}
	quiz.ID = m.id()
	m.quizzes[quiz.ID] = quiz
	stored := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		q.ID = m.id()
		q.QuizID = quiz.ID
		stored = append(stored, q)
	}
	m.questions[quiz.ID] = stored
	return quiz, nil
}
