// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobbly-workers/internal/models"

	"github.com/lib/pq"
)

// Postgres implements the gateway on database/sql with the lib/pq driver.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) GetSeeker(ctx context.Context, seekerID int64) (models.Seeker, error) {
	var (
		s      models.Seeker
		phone  sql.NullString
		skills pq.Int64Array
	)
	err := p.db.QueryRowContext(ctx, `
		SELECT s.seeker_id, s.full_name, s.education, s.phone, u.email,
		       COALESCE(ARRAY(SELECT ss.skill_id FROM seeker_skills ss WHERE ss.seeker_id = s.seeker_id ORDER BY ss.skill_id), '{}')
		FROM seekers s
		JOIN users u ON u.user_id = s.user_id
		WHERE s.seeker_id = $1`, seekerID).
		Scan(&s.ID, &s.FullName, &s.Education, &phone, &s.Email, &skills)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seeker{}, fmt.Errorf("seeker %d: %w", seekerID, ErrNotFound)
		}
		return models.Seeker{}, fmt.Errorf("get seeker %d: %w", seekerID, err)
	}
	s.Phone = phone.String
	s.SkillIDs = toInts(skills)
	return s, nil
}

func (p *Postgres) GetCompany(ctx context.Context, companyID int64) (models.Company, error) {
	var (
		c     models.Company
		phone sql.NullString
	)
	err := p.db.QueryRowContext(ctx, `
		SELECT c.company_id, c.company_name, u.email, c.phone
		FROM companies c
		JOIN users u ON u.user_id = c.user_id
		WHERE c.company_id = $1`, companyID).
		Scan(&c.ID, &c.Name, &c.Email, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Company{}, fmt.Errorf("company %d: %w", companyID, ErrNotFound)
		}
		return models.Company{}, fmt.Errorf("get company %d: %w", companyID, err)
	}
	c.Phone = phone.String
	return c, nil
}

const jobColumns = `job_id, company_id, title, location, job_type,
		       required_education, required_skills, status, posted_date`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (models.Job, error) {
	var (
		j        models.Job
		location sql.NullString
		skills   pq.Int64Array
	)
	if err := row.Scan(&j.ID, &j.CompanyID, &j.Title, &location, &j.JobType,
		&j.RequiredEducation, &skills, &j.Status, &j.PostedAt); err != nil {
		return models.Job{}, err
	}
	j.Location = location.String
	j.RequiredSkillIDs = toInts(skills)
	return j, nil
}

func (p *Postgres) GetJob(ctx context.Context, jobID int64) (models.Job, error) {
	j, err := scanJob(p.db.QueryRowContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE job_id = $1`, jobID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Job{}, fmt.Errorf("job %d: %w", jobID, ErrNotFound)
		}
		return models.Job{}, fmt.Errorf("get job %d: %w", jobID, err)
	}
	return j, nil
}

// GetJobs loads the given jobs in one query. Ids with no row are skipped and
// the result is in no particular order.
func (p *Postgres) GetJobs(ctx context.Context, jobIDs []int64) ([]models.Job, error) {
	if len(jobIDs) == 0 {
		return []models.Job{}, nil
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE job_id = ANY($1)`, pq.Int64Array(jobIDs))
	if err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]models.Job, 0, len(jobIDs))
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}
	return jobs, nil
}

func (p *Postgres) GetQuizForJob(ctx context.Context, jobID int64) (models.Quiz, error) {
	return p.getQuiz(ctx, "job_id", jobID)
}

func (p *Postgres) GetQuiz(ctx context.Context, quizID int64) (models.Quiz, error) {
	return p.getQuiz(ctx, "quiz_id", quizID)
}

func (p *Postgres) getQuiz(ctx context.Context, column string, id int64) (models.Quiz, error) {
	var q models.Quiz
	err := p.db.QueryRowContext(ctx, `
		SELECT quiz_id, job_id, company_id, title, duration, passing_score
		FROM quizzes
		WHERE `+column+` = $1`, id).
		Scan(&q.ID, &q.JobID, &q.CompanyID, &q.Title, &q.DurationMinutes, &q.PassingScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Quiz{}, fmt.Errorf("quiz by %s %d: %w", column, id, ErrNotFound)
		}
		return models.Quiz{}, fmt.Errorf("get quiz by %s %d: %w", column, id, err)
	}
	return q, nil
}

func (p *Postgres) GetQuestions(ctx context.Context, quizID int64) ([]models.Question, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT question_id, quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer
		FROM questions
		WHERE quiz_id = $1
		ORDER BY question_id`, quizID)
	if err != nil {
		return nil, fmt.Errorf("get questions for quiz %d: %w", quizID, err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		var correct string
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.OptionA, &q.OptionB, &q.OptionC, &q.OptionD, &correct); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.CorrectAnswer = models.NormalizeAnswer(correct)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

func (p *Postgres) GetExistingApplication(ctx context.Context, jobID, seekerID int64) (models.Application, error) {
	var a models.Application
	err := p.db.QueryRowContext(ctx, `
		SELECT application_id, job_id, seeker_id, status, applied_date
		FROM applications
		WHERE job_id = $1 AND seeker_id = $2`, jobID, seekerID).
		Scan(&a.ID, &a.JobID, &a.SeekerID, &a.Status, &a.AppliedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Application{}, ErrNotFound
		}
		return models.Application{}, fmt.Errorf("get application job=%d seeker=%d: %w", jobID, seekerID, err)
	}
	return a, nil
}

const applicationViewQuery = `
		SELECT a.application_id, a.job_id, a.seeker_id, a.status, a.applied_date,
		       j.title, j.company_id, c.company_name,
		       s.full_name, s.education, u.email,
		       q.quiz_id, q.passing_score, qa.score, qa.is_passed, qa.attempted_at
		FROM applications a
		JOIN jobs j ON j.job_id = a.job_id
		JOIN companies c ON c.company_id = j.company_id
		JOIN seekers s ON s.seeker_id = a.seeker_id
		JOIN users u ON u.user_id = s.user_id
		LEFT JOIN quizzes q ON q.job_id = j.job_id
		LEFT JOIN quiz_attempts qa ON qa.quiz_id = q.quiz_id AND qa.seeker_id = a.seeker_id`

// ListApplicationsBySeeker returns the seeker's applications, newest first.
func (p *Postgres) ListApplicationsBySeeker(ctx context.Context, seekerID int64) ([]models.ApplicationView, error) {
	return p.listApplications(ctx, applicationViewQuery+`
		WHERE a.seeker_id = $1
		ORDER BY a.applied_date DESC, a.application_id DESC`, seekerID)
}

// ListApplicationsByCompany returns applications to the company's jobs,
// newest first. A jobID of 0 selects every job.
func (p *Postgres) ListApplicationsByCompany(ctx context.Context, companyID, jobID int64) ([]models.ApplicationView, error) {
	return p.listApplications(ctx, applicationViewQuery+`
		WHERE j.company_id = $1 AND ($2::bigint = 0 OR j.job_id = $2)
		ORDER BY a.applied_date DESC, a.application_id DESC`, companyID, jobID)
}

func (p *Postgres) listApplications(ctx context.Context, query string, args ...interface{}) ([]models.ApplicationView, error) {
	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	views := []models.ApplicationView{}
	for rows.Next() {
		var (
			v            models.ApplicationView
			quizID       sql.NullInt64
			passingScore sql.NullInt64
			score        sql.NullInt64
			isPassed     sql.NullBool
			attemptedAt  sql.NullTime
		)
		if err := rows.Scan(&v.ID, &v.JobID, &v.SeekerID, &v.Status, &v.AppliedAt,
			&v.JobTitle, &v.CompanyID, &v.CompanyName,
			&v.SeekerName, &v.SeekerEducation, &v.SeekerEmail,
			&quizID, &passingScore, &score, &isPassed, &attemptedAt); err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		if quizID.Valid {
			v.Quiz = &models.QuizResult{QuizID: quizID.Int64, PassingScore: int(passingScore.Int64)}
			if score.Valid {
				v.Quiz.Attempted = true
				v.Quiz.Score = int(score.Int64)
				v.Quiz.IsPassed = isPassed.Bool
				at := attemptedAt.Time
				v.Quiz.AttemptedAt = &at
			}
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applications: %w", err)
	}
	return views, nil
}

// GetApplication returns the application together with the owning company.
func (p *Postgres) GetApplication(ctx context.Context, applicationID int64) (models.Application, int64, error) {
	var (
		a         models.Application
		companyID int64
	)
	err := p.db.QueryRowContext(ctx, `
		SELECT a.application_id, a.job_id, a.seeker_id, a.status, a.applied_date, j.company_id
		FROM applications a
		JOIN jobs j ON j.job_id = a.job_id
		WHERE a.application_id = $1`, applicationID).
		Scan(&a.ID, &a.JobID, &a.SeekerID, &a.Status, &a.AppliedAt, &companyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Application{}, 0, fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
		}
		return models.Application{}, 0, fmt.Errorf("get application %d: %w", applicationID, err)
	}
	return a, companyID, nil
}

func (p *Postgres) GetExistingAttempt(ctx context.Context, quizID, seekerID int64) (models.QuizAttempt, error) {
	var at models.QuizAttempt
	err := p.db.QueryRowContext(ctx, `
		SELECT attempt_id, quiz_id, seeker_id, score, is_passed, time_taken, attempted_at
		FROM quiz_attempts
		WHERE quiz_id = $1 AND seeker_id = $2`, quizID, seekerID).
		Scan(&at.ID, &at.QuizID, &at.SeekerID, &at.Score, &at.IsPassed, &at.TimeTakenSeconds, &at.AttemptedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QuizAttempt{}, ErrNotFound
		}
		return models.QuizAttempt{}, fmt.Errorf("get attempt quiz=%d seeker=%d: %w", quizID, seekerID, err)
	}
	return at, nil
}

// InsertApplication relies on UNIQUE (job_id, seeker_id). A lost race yields
// ErrDuplicate rather than a second row.
func (p *Postgres) InsertApplication(ctx context.Context, app models.Application) (models.Application, error) {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO applications (job_id, seeker_id, status, applied_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (job_id, seeker_id) DO NOTHING
		RETURNING application_id`,
		app.JobID, app.SeekerID, string(app.Status), app.AppliedAt).
		Scan(&app.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return models.Application{}, fmt.Errorf("application job=%d seeker=%d: %w", app.JobID, app.SeekerID, ErrDuplicate)
		}
		return models.Application{}, fmt.Errorf("insert application: %w", err)
	}
	return app, nil
}

// InsertAttempt relies on UNIQUE (quiz_id, seeker_id).
func (p *Postgres) InsertAttempt(ctx context.Context, at models.QuizAttempt) (models.QuizAttempt, error) {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO quiz_attempts (quiz_id, seeker_id, score, is_passed, time_taken, attempted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (quiz_id, seeker_id) DO NOTHING
		RETURNING attempt_id`,
		at.QuizID, at.SeekerID, at.Score, at.IsPassed, at.TimeTakenSeconds, at.AttemptedAt).
		Scan(&at.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return models.QuizAttempt{}, fmt.Errorf("attempt quiz=%d seeker=%d: %w", at.QuizID, at.SeekerID, ErrDuplicate)
		}
		return models.QuizAttempt{}, fmt.Errorf("insert attempt: %w", err)
	}
	return at, nil
}

func (p *Postgres) UpdateApplicationStatus(ctx context.Context, applicationID int64, status models.ApplicationStatus) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE applications SET status = $1, updated_at = $2
		WHERE application_id = $3`,
		string(status), time.Now().UTC(), applicationID)
	if err != nil {
		return fmt.Errorf("update application %d: %w", applicationID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application %d: %w", applicationID, err)
	}
	if n == 0 {
		return fmt.Errorf("application %d: %w", applicationID, ErrNotFound)
	}
	return nil
}

// CreateQuiz inserts a quiz and its questions in one transaction. UNIQUE
// (job_id) on quizzes keeps one quiz per job.
func (p *Postgres) CreateQuiz(ctx context.Context, quiz models.Quiz, questions []models.Question) (models.Quiz, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("begin quiz tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	err = tx.QueryRowContext(ctx, `
		INSERT INTO quizzes (job_id, company_id, title, duration, passing_score)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_id) DO NOTHING
		RETURNING quiz_id`,
		quiz.JobID, quiz.CompanyID, quiz.Title, quiz.DurationMinutes, quiz.PassingScore).
		Scan(&quiz.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return models.Quiz{}, fmt.Errorf("quiz for job %d: %w", quiz.JobID, ErrDuplicate)
		}
		return models.Quiz{}, fmt.Errorf("insert quiz: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (quiz_id, question_text, option_a, option_b, option_c, option_d, correct_answer)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return models.Quiz{}, fmt.Errorf("prepare question insert: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		if _, err := stmt.ExecContext(ctx, quiz.ID, q.Text, q.OptionA, q.OptionB, q.OptionC, q.OptionD, string(q.CorrectAnswer)); err != nil {
			return models.Quiz{}, fmt.Errorf("insert question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Quiz{}, fmt.Errorf("commit quiz tx: %w", err)
	}
	return quiz, nil
}
