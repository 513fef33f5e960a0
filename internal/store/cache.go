// internal/store/cache.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/models"

	"github.com/redis/go-redis/v9"
)

const (
	quizByJobKey    = "quiz:job:%d"
	quizQuestionKey = "quiz:questions:%d"
)

// QuizReader is the quiz reference data Cache sits in front of.
type QuizReader interface {
	GetQuizForJob(ctx context.Context, jobID int64) (models.Quiz, error)
	GetQuestions(ctx context.Context, quizID int64) ([]models.Question, error)
}

// Cache keeps quiz reference reads in Redis. Quizzes are never edited after
// creation so entries only expire. Redis faults fall through to next.
type Cache struct {
	next   QuizReader
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(next QuizReader, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{
		next:   next,
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "quiz-cache"}),
	}
}

func (c *Cache) GetQuizForJob(ctx context.Context, jobID int64) (models.Quiz, error) {
	key := fmt.Sprintf(quizByJobKey, jobID)

	var quiz models.Quiz
	if c.lookup(ctx, key, &quiz) {
		return quiz, nil
	}

	quiz, err := c.next.GetQuizForJob(ctx, jobID)
	if err != nil {
		return models.Quiz{}, err
	}
	c.store(ctx, key, quiz)
	return quiz, nil
}

func (c *Cache) GetQuestions(ctx context.Context, quizID int64) ([]models.Question, error) {
	key := fmt.Sprintf(quizQuestionKey, quizID)

	var questions []models.Question
	if c.lookup(ctx, key, &questions) {
		return questions, nil
	}

	questions, err := c.next.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	// an empty question set may still be filled in by the author
	if len(questions) > 0 {
		c.store(ctx, key, questions)
	}
	return questions, nil
}

func (c *Cache) lookup(ctx context.Context, key string, dst interface{}) bool {
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		c.logger.Warn("cache entry corrupt", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	return true
}

func (c *Cache) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

// CachedPostgres is Postgres with quiz reference reads served through Cache.
type CachedPostgres struct {
	*Postgres
	cache *Cache
}

func NewCachedPostgres(pg *Postgres, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedPostgres {
	return &CachedPostgres{Postgres: pg, cache: NewCache(pg, rdb, ttl, log)}
}

func (c *CachedPostgres) GetQuizForJob(ctx context.Context, jobID int64) (models.Quiz, error) {
	return c.cache.GetQuizForJob(ctx, jobID)
}

func (c *CachedPostgres) GetQuestions(ctx context.Context, quizID int64) ([]models.Question, error) {
	return c.cache.GetQuestions(ctx, quizID)
}
