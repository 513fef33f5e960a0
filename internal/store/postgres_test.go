// internal/store/postgres_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobbly-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgres(db), mock
}

func TestPostgres_GetJob(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		pg, mock := newMockStore(t)
		posted := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT job_id, company_id, title`).
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows([]string{
				"job_id", "company_id", "title", "location", "job_type",
				"required_education", "required_skills", "status", "posted_date",
			}).AddRow(11, 3, "Backend Engineer", "Lahore", "full-time", "BS", "{1,2,3}", "active", posted))

		job, err := pg.GetJob(context.Background(), 11)
		require.NoError(t, err)
		assert.Equal(t, int64(11), job.ID)
		assert.Equal(t, int64(3), job.CompanyID)
		assert.Equal(t, "BS", job.RequiredEducation)
		assert.Equal(t, []int{1, 2, 3}, job.RequiredSkillIDs)
		assert.True(t, job.IsActive())
		assert.Equal(t, posted, job.PostedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT job_id, company_id, title`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"job_id"}))

		_, err := pg.GetJob(context.Background(), 99)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("storage fault", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT job_id, company_id, title`).
			WithArgs(int64(5)).
			WillReturnError(errors.New("connection reset"))

		_, err := pg.GetJob(context.Background(), 5)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestPostgres_GetJobs(t *testing.T) {
	pg, mock := newMockStore(t)
	posted := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	cols := []string{
		"job_id", "company_id", "title", "location", "job_type",
		"required_education", "required_skills", "status", "posted_date",
	}

	mock.ExpectQuery(`WHERE job_id = ANY\(\$1\)`).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(12, 3, "Data Analyst", nil, "part-time", "MS", "{}", "active", posted).
			AddRow(11, 3, "Backend Engineer", "Lahore", "full-time", "BS", "{1,2}", "closed", posted))

	jobs, err := pg.GetJobs(context.Background(), []int64{11, 12, 13})
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, int64(12), jobs[0].ID)
	assert.Empty(t, jobs[0].Location)
	assert.Empty(t, jobs[0].RequiredSkillIDs)
	assert.Equal(t, []int{1, 2}, jobs[1].RequiredSkillIDs)
	assert.False(t, jobs[1].IsActive())
	assert.NoError(t, mock.ExpectationsWereMet())

	none, err := pg.GetJobs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostgres_GetSeeker(t *testing.T) {
	pg, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT s.seeker_id, s.full_name`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"seeker_id", "full_name", "education", "phone", "email", "skills",
		}).AddRow(7, "Ayesha Khan", "MS", nil, "ayesha@example.com", "{}"))

	seeker, err := pg.GetSeeker(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "MS", seeker.Education)
	assert.Equal(t, "", seeker.Phone)
	assert.Empty(t, seeker.SkillIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetQuestions(t *testing.T) {
	pg, mock := newMockStore(t)
	mock.ExpectQuery(`SELECT question_id, quiz_id, question_text`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"question_id", "quiz_id", "question_text", "option_a", "option_b", "option_c", "option_d", "correct_answer",
		}).
			AddRow(1, 4, "2+2?", "3", "4", "5", "6", "b").
			AddRow(2, 4, "Go keyword?", "func", "def", "fn", "sub", "A"))

	questions, err := pg.GetQuestions(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, models.OptionB, questions[0].CorrectAnswer)
	assert.Equal(t, models.OptionA, questions[1].CorrectAnswer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_InsertApplication(t *testing.T) {
	app := models.Application{
		JobID:     11,
		SeekerID:  7,
		Status:    models.ApplicationStatusPending,
		AppliedAt: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
	}

	t.Run("inserted", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO applications`).
			WithArgs(int64(11), int64(7), "pending", app.AppliedAt).
			WillReturnRows(sqlmock.NewRows([]string{"application_id"}).AddRow(501))

		got, err := pg.InsertApplication(context.Background(), app)
		require.NoError(t, err)
		assert.Equal(t, int64(501), got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict returns no row", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO applications`).
			WithArgs(int64(11), int64(7), "pending", app.AppliedAt).
			WillReturnRows(sqlmock.NewRows([]string{"application_id"}))

		_, err := pg.InsertApplication(context.Background(), app)
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO applications`).
			WithArgs(int64(11), int64(7), "pending", app.AppliedAt).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

		_, err := pg.InsertApplication(context.Background(), app)
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("other fault", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectQuery(`INSERT INTO applications`).
			WithArgs(int64(11), int64(7), "pending", app.AppliedAt).
			WillReturnError(&pq.Error{Code: "53300", Message: "too many connections"})

		_, err := pg.InsertApplication(context.Background(), app)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrDuplicate))
	})
}

func TestPostgres_InsertAttempt_Conflict(t *testing.T) {
	pg, mock := newMockStore(t)
	mock.ExpectQuery(`INSERT INTO quiz_attempts`).
		WithArgs(int64(4), int64(7), 75, true, 600, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"attempt_id"}))

	_, err := pg.InsertAttempt(context.Background(), models.QuizAttempt{
		QuizID: 4, SeekerID: 7, Score: 75, IsPassed: true, TimeTakenSeconds: 600, AttemptedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateApplicationStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs("shortlisted", sqlmock.AnyArg(), int64(501)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := pg.UpdateApplicationStatus(context.Background(), 501, models.ApplicationStatusShortlisted)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no such application", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectExec(`UPDATE applications SET status`).
			WithArgs("rejected", sqlmock.AnyArg(), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := pg.UpdateApplicationStatus(context.Background(), 9, models.ApplicationStatusRejected)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostgres_CreateQuiz(t *testing.T) {
	quiz := models.Quiz{JobID: 11, CompanyID: 3, Title: "Screening", DurationMinutes: 30, PassingScore: 60}
	questions := []models.Question{
		{Text: "Q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: models.OptionA},
		{Text: "Q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: models.OptionC},
	}

	t.Run("commits quiz and questions", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO quizzes`).
			WithArgs(int64(11), int64(3), "Screening", 30, 60).
			WillReturnRows(sqlmock.NewRows([]string{"quiz_id"}).AddRow(21))
		prep := mock.ExpectPrepare(`INSERT INTO questions`)
		prep.ExpectExec().
			WithArgs(int64(21), "Q1", "a", "b", "c", "d", "A").
			WillReturnResult(sqlmock.NewResult(1, 1))
		prep.ExpectExec().
			WithArgs(int64(21), "Q2", "a", "b", "c", "d", "C").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		got, err := pg.CreateQuiz(context.Background(), quiz, questions)
		require.NoError(t, err)
		assert.Equal(t, int64(21), got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second quiz for job", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO quizzes`).
			WithArgs(int64(11), int64(3), "Screening", 30, 60).
			WillReturnRows(sqlmock.NewRows([]string{"quiz_id"}))
		mock.ExpectRollback()

		_, err := pg.CreateQuiz(context.Background(), quiz, questions)
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("question insert fails rolls back", func(t *testing.T) {
		pg, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO quizzes`).
			WithArgs(int64(11), int64(3), "Screening", 30, 60).
			WillReturnRows(sqlmock.NewRows([]string{"quiz_id"}).AddRow(21))
		prep := mock.ExpectPrepare(`INSERT INTO questions`)
		prep.ExpectExec().
			WithArgs(int64(21), "Q1", "a", "b", "c", "d", "A").
			WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := pg.CreateQuiz(context.Background(), quiz, questions)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgres_ListApplicationsByCompany(t *testing.T) {
	pg, mock := newMockStore(t)
	applied := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	attempted := applied.Add(30 * time.Minute)

	mock.ExpectQuery(`LEFT JOIN quiz_attempts qa ON qa.quiz_id = q.quiz_id AND qa.seeker_id = a.seeker_id\s+WHERE j.company_id = \$1`).
		WithArgs(int64(3), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{
			"application_id", "job_id", "seeker_id", "status", "applied_date",
			"title", "company_id", "company_name",
			"full_name", "education", "email",
			"quiz_id", "passing_score", "score", "is_passed", "attempted_at",
		}).
			AddRow(21, 13, 7, "pending", applied, "With quiz", 3, "Acme", "Ayesha", "MS", "ayesha@example.com", 40, 60, 80, true, attempted).
			AddRow(20, 13, 8, "reviewed", applied, "With quiz", 3, "Acme", "Bilal", "Inter", "bilal@example.com", 40, 60, nil, nil, nil).
			AddRow(19, 11, 7, "pending", applied, "Backend", 3, "Acme", "Ayesha", "MS", "ayesha@example.com", nil, nil, nil, nil, nil))

	views, err := pg.ListApplicationsByCompany(context.Background(), 3, 0)
	require.NoError(t, err)
	require.Len(t, views, 3)

	require.NotNil(t, views[0].Quiz)
	assert.True(t, views[0].Quiz.Attempted)
	assert.Equal(t, 80, views[0].Quiz.Score)
	assert.True(t, views[0].Quiz.IsPassed)
	require.NotNil(t, views[0].Quiz.AttemptedAt)
	assert.Equal(t, attempted, *views[0].Quiz.AttemptedAt)

	require.NotNil(t, views[1].Quiz)
	assert.False(t, views[1].Quiz.Attempted)
	assert.Equal(t, 60, views[1].Quiz.PassingScore)
	assert.Equal(t, models.ApplicationStatusReviewed, views[1].Status)

	assert.Nil(t, views[2].Quiz)
	assert.Equal(t, "Backend", views[2].JobTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListApplicationsBySeeker_Empty(t *testing.T) {
	pg, mock := newMockStore(t)
	mock.ExpectQuery(`WHERE a.seeker_id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"application_id"}))

	views, err := pg.ListApplicationsBySeeker(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, views)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}
