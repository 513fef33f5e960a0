//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobbly-workers/internal/common/config"
	"jobbly-workers/internal/common/database"
	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/lifecycle"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/quiz"
	"jobbly-workers/internal/store"

	sub "jobbly-workers/internal/workers/application/submit-application"
	uas "jobbly-workers/internal/workers/application/update-application-status"
	cqa "jobbly-workers/internal/workers/assessment/check-quiz-access"
	cq "jobbly-workers/internal/workers/assessment/create-quiz"
	sq "jobbly-workers/internal/workers/assessment/submit-quiz"
	ee "jobbly-workers/internal/workers/eligibility/evaluate-eligibility"
	lje "jobbly-workers/internal/workers/eligibility/list-job-eligibility"
)

// env holds the live services. Run with:
//
//	docker compose up -d && go test -tags e2e ./test/e2e/...
type env struct {
	cfg *config.Config
	db  *sql.DB
	es  *elasticsearch.Client
	log logger.Logger
}

func setup(t *testing.T) *env {
	t.Helper()
	cfg, err := config.Load()
	if err != nil {
		t.Skipf("config unavailable: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgres(ctx, cfg.Database.Postgres)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err)
	require.NoError(t, database.PingElasticsearch(ctx, es))

	ddl, err := os.ReadFile("../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, string(ddl))
	require.NoError(t, err)

	return &env{cfg: cfg, db: db, es: es, log: logger.NewTestLogger(t)}
}

type fixture struct {
	companyID, seekerID, otherSeekerID int64
	skills                             []int
}

func seed(t *testing.T, e *env) fixture {
	t.Helper()
	ctx := context.Background()
	suffix := time.Now().Format("150405.000000")

	var f fixture
	for _, name := range []string{"go-" + suffix, "sql-" + suffix, "k8s-" + suffix, "aws-" + suffix} {
		var id int
		require.NoError(t, e.db.QueryRowContext(ctx,
			`INSERT INTO skills (skill_name, category) VALUES ($1, 'engineering') RETURNING skill_id`, name).Scan(&id))
		f.skills = append(f.skills, id)
	}

	insertUser := func(email, kind string) int64 {
		var id int64
		require.NoError(t, e.db.QueryRowContext(ctx,
			`INSERT INTO users (email, user_type) VALUES ($1, $2) RETURNING user_id`, email, kind).Scan(&id))
		return id
	}

	require.NoError(t, e.db.QueryRowContext(ctx,
		`INSERT INTO companies (user_id, company_name, phone) VALUES ($1, 'Acme', '+15550001111') RETURNING company_id`,
		insertUser("hr-"+suffix+"@acme.test", "company")).Scan(&f.companyID))

	require.NoError(t, e.db.QueryRowContext(ctx,
		`INSERT INTO seekers (user_id, full_name, education, phone) VALUES ($1, 'Dana Reyes', 'MS', '+15550002222') RETURNING seeker_id`,
		insertUser("dana-"+suffix+"@mail.test", "seeker")).Scan(&f.seekerID))
	require.NoError(t, e.db.QueryRowContext(ctx,
		`INSERT INTO seekers (user_id, full_name, education, phone) VALUES ($1, 'Sam Ortiz', 'Matric', NULL) RETURNING seeker_id`,
		insertUser("sam-"+suffix+"@mail.test", "seeker")).Scan(&f.otherSeekerID))

	for _, skill := range f.skills[:3] {
		_, err := e.db.ExecContext(ctx, `INSERT INTO seeker_skills (seeker_id, skill_id) VALUES ($1, $2)`, f.seekerID, skill)
		require.NoError(t, err)
	}
	return f
}

func insertJob(t *testing.T, e *env, f fixture, title, education string) models.Job {
	t.Helper()
	job := models.Job{
		CompanyID:         f.companyID,
		Title:             title,
		Location:          "Remote",
		JobType:           "full-time",
		RequiredEducation: education,
		RequiredSkillIDs:  f.skills,
		Status:            models.JobStatusActive,
		PostedAt:          time.Now().UTC().Truncate(time.Second),
	}
	ids := make([]int64, 0, len(job.RequiredSkillIDs))
	for _, id := range job.RequiredSkillIDs {
		ids = append(ids, int64(id))
	}
	require.NoError(t, e.db.QueryRow(
		`INSERT INTO jobs (company_id, title, location, job_type, required_education, required_skills, posted_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING job_id`,
		job.CompanyID, job.Title, job.Location, job.JobType, job.RequiredEducation, pq.Int64Array(ids), job.PostedAt).Scan(&job.ID))
	return job
}

func TestApplicationAndQuizFlow(t *testing.T) {
	e := setup(t)
	f := seed(t, e)
	ctx := context.Background()

	gateway := store.NewPostgres(e.db)
	applications := lifecycle.NewService(gateway, e.log)
	quizzes := quiz.NewEngine(gateway, e.log)

	seeker := identity.Seeker(1, f.seekerID)
	weak := identity.Seeker(2, f.otherSeekerID)
	company := identity.Company(3, f.companyID)

	job := insertJob(t, e, f, "Platform Engineer", "BS")
	index := store.NewJobIndex(e.es, e.cfg.Database.Elasticsearch.JobIndex)
	require.NoError(t, index.IndexJob(ctx, job))

	// eligibility: 3 of 4 skills and an MS against a BS requirement
	eval, err := ee.NewHandler(&ee.Config{Timeout: 5 * time.Second}, gateway, nil, e.log).
		Execute(ctx, &ee.Input{Identity: seeker, JobID: job.ID})
	require.NoError(t, err)
	assert.True(t, eval.Eligible)
	assert.Equal(t, 75, eval.MatchPercentage)
	assert.Equal(t, []int{f.skills[3]}, eval.MissingSkillIDs)

	eval, err = ee.NewHandler(&ee.Config{Timeout: 5 * time.Second}, gateway, nil, e.log).
		Execute(ctx, &ee.Input{Identity: weak, JobID: job.ID})
	require.NoError(t, err)
	assert.False(t, eval.Eligible)

	// quiz authoring by the owning company
	created, err := cq.NewHandler(&cq.Config{Timeout: 5 * time.Second}, quizzes, nil, e.log).
		Execute(ctx, &cq.Input{Identity: company, Draft: quiz.Draft{
			JobID: job.ID,
			Title: "Platform basics",
			Questions: []quiz.DraftQuestion{
				{Text: "Container orchestrator?", OptionA: "Kubernetes", OptionB: "Excel", OptionC: "Paint", OptionD: "Vim", CorrectAnswer: "A"},
				{Text: "Query language?", OptionA: "CSS", OptionB: "SQL", OptionC: "YAML", OptionD: "TOML", CorrectAnswer: "B"},
			},
		}})
	require.NoError(t, err)
	assert.Equal(t, 2, created.QuestionCount)

	// apply, then apply again
	applyHandler := sub.NewHandler(&sub.Config{Timeout: 5 * time.Second}, applications, nil, e.log)
	applied, err := applyHandler.Execute(ctx, &sub.Input{Identity: seeker, JobID: job.ID})
	require.NoError(t, err)
	assert.True(t, applied.HasQuiz)
	assert.Equal(t, created.QuizID, applied.QuizID)

	_, err = applyHandler.Execute(ctx, &sub.Input{Identity: seeker, JobID: job.ID})
	assertCode(t, err, errors.ErrCodeAlreadyApplied)

	_, err = applyHandler.Execute(ctx, &sub.Input{Identity: weak, JobID: job.ID})
	assertCode(t, err, errors.ErrCodeNotEligible)

	// quiz access and a single attempt
	access, err := cqa.NewHandler(&cqa.Config{Timeout: 5 * time.Second}, quizzes, gateway, nil, e.log).
		Execute(ctx, &cqa.Input{Identity: seeker, QuizID: created.QuizID})
	require.NoError(t, err)
	require.True(t, access.CanAttempt)
	require.Len(t, access.Questions, 2)

	answers := map[int64]string{access.Questions[0].ID: "a", access.Questions[1].ID: "C"}
	submitHandler := sq.NewHandler(&sq.Config{Timeout: 5 * time.Second}, quizzes, nil, e.log)
	result, err := submitHandler.Execute(ctx, &sq.Input{Identity: seeker, QuizID: created.QuizID, Answers: answers, TimeTakenSeconds: 90})
	require.NoError(t, err)
	assert.Equal(t, 50, result.Score)
	assert.False(t, result.Passed)

	_, err = submitHandler.Execute(ctx, &sq.Input{Identity: seeker, QuizID: created.QuizID, Answers: answers})
	assertCode(t, err, errors.ErrCodeAlreadyAttempted)
	assert.Equal(t, 50, errors.FromEngineError(err).Metadata["score"])

	// review by the company
	updated, err := uas.NewHandler(&uas.Config{Timeout: 5 * time.Second}, applications, nil, e.log).
		Execute(ctx, &uas.Input{Identity: company, ApplicationID: applied.ApplicationID, Status: "shortlisted"})
	require.NoError(t, err)
	assert.Equal(t, "shortlisted", updated.ApplicationStatus)
}

func TestListingBadges(t *testing.T) {
	e := setup(t)
	f := seed(t, e)
	ctx := context.Background()

	index := store.NewJobIndex(e.es, e.cfg.Database.Elasticsearch.JobIndex)
	job := insertJob(t, e, f, "Data Engineer", "PhD")
	require.NoError(t, index.IndexJob(ctx, job))
	_, err := e.es.Indices.Refresh(e.es.Indices.Refresh.WithIndex(e.cfg.Database.Elasticsearch.JobIndex))
	require.NoError(t, err)

	pg := store.NewPostgres(e.db)
	h := lje.NewHandler(&lje.Config{Timeout: 5 * time.Second, DefaultSize: 20, MaxSize: 100}, index, pg, pg, nil, e.log)
	out, err := h.Execute(ctx, &lje.Input{Identity: identity.Seeker(1, f.seekerID)})
	require.NoError(t, err)

	for _, listing := range out.Jobs {
		if listing.JobID != job.ID {
			continue
		}
		require.NotNil(t, listing.Badge)
		assert.False(t, listing.Badge.Eligible)
		assert.False(t, listing.Badge.EducationOK)
		return
	}
	t.Fatalf("job %d not listed", job.ID)
}

func assertCode(t *testing.T, err error, code errors.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, errors.FromEngineError(err).Code)
}
