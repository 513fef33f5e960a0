// internal/store/cache_test.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuizReader struct {
	quiz      models.Quiz
	questions []models.Question
	err       error
	quizCalls int
	qCalls    int
}

func (f *fakeQuizReader) GetQuizForJob(_ context.Context, jobID int64) (models.Quiz, error) {
	f.quizCalls++
	if f.err != nil {
		return models.Quiz{}, f.err
	}
	return f.quiz, nil
}

func (f *fakeQuizReader) GetQuestions(_ context.Context, quizID int64) ([]models.Question, error) {
	f.qCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func TestCache_ServesRepeatReadsFromRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	next := &fakeQuizReader{
		quiz: models.Quiz{ID: 4, JobID: 11, CompanyID: 3, Title: "Screening", DurationMinutes: 30, PassingScore: 60},
		questions: []models.Question{
			{ID: 1, QuizID: 4, Text: "Q1", CorrectAnswer: models.OptionA},
		},
	}
	cache := NewCache(next, rdb, time.Minute, logger.NewNoOpLogger())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		quiz, err := cache.GetQuizForJob(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, next.quiz, quiz)

		questions, err := cache.GetQuestions(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, next.questions, questions)
	}

	assert.Equal(t, 1, next.quizCalls)
	assert.Equal(t, 1, next.qCalls)
	assert.True(t, mr.Exists("quiz:job:11"))
	assert.True(t, mr.Exists("quiz:questions:4"))

	mr.FastForward(2 * time.Minute)
	_, err = cache.GetQuizForJob(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, 2, next.quizCalls)
}

func TestCache_DoesNotCacheMisses(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	next := &fakeQuizReader{err: fmt.Errorf("quiz by job_id 11: %w", ErrNotFound)}
	cache := NewCache(next, rdb, time.Minute, logger.NewNoOpLogger())

	_, err = cache.GetQuizForJob(context.Background(), 11)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.GetQuizForJob(context.Background(), 11)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Equal(t, 2, next.quizCalls)
	assert.False(t, mr.Exists("quiz:job:11"))
}

func TestCache_EmptyQuestionSetNotCached(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	next := &fakeQuizReader{questions: []models.Question{}}
	cache := NewCache(next, rdb, time.Minute, logger.NewNoOpLogger())

	questions, err := cache.GetQuestions(context.Background(), 4)
	require.NoError(t, err)
	assert.Empty(t, questions)
	assert.False(t, mr.Exists("quiz:questions:4"))
}

func TestCache_RedisFaultFallsBackToDatabase(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	quiz := models.Quiz{ID: 4, JobID: 11, CompanyID: 3, Title: "Screening", DurationMinutes: 30, PassingScore: 60}
	next := &fakeQuizReader{quiz: quiz}
	cache := NewCache(next, rdb, 5*time.Minute, logger.NewNoOpLogger())

	redisMock.ExpectGet("quiz:job:11").SetErr(errors.New("connection refused"))
	cached, _ := json.Marshal(quiz)
	redisMock.ExpectSet("quiz:job:11", cached, 5*time.Minute).SetErr(errors.New("connection refused"))

	got, err := cache.GetQuizForJob(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, quiz, got)
	assert.Equal(t, 1, next.quizCalls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestCache_CorruptEntryIsRefetched(t *testing.T) {
	rdb, redisMock := redismock.NewClientMock()

	quiz := models.Quiz{ID: 4, JobID: 11, Title: "Screening", DurationMinutes: 30, PassingScore: 60}
	next := &fakeQuizReader{quiz: quiz}
	cache := NewCache(next, rdb, time.Minute, logger.NewNoOpLogger())

	redisMock.ExpectGet("quiz:job:11").SetVal("{not json")
	cached, _ := json.Marshal(quiz)
	redisMock.ExpectSet("quiz:job:11", cached, time.Minute).SetVal("OK")

	got, err := cache.GetQuizForJob(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, quiz, got)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}
