// cmd/worker-manager/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobbly-workers/internal/common/aws"
	"jobbly-workers/internal/common/camunda"
	"jobbly-workers/internal/common/config"
	"jobbly-workers/internal/common/database"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/lifecycle"
	"jobbly-workers/internal/models"
	"jobbly-workers/internal/quiz"
	"jobbly-workers/internal/store"
	"jobbly-workers/pkg/registry"

	la "jobbly-workers/internal/workers/application/list-applications"
	sa "jobbly-workers/internal/workers/application/send-notification"
	sub "jobbly-workers/internal/workers/application/submit-application"
	uas "jobbly-workers/internal/workers/application/update-application-status"
	cqa "jobbly-workers/internal/workers/assessment/check-quiz-access"
	cq "jobbly-workers/internal/workers/assessment/create-quiz"
	sq "jobbly-workers/internal/workers/assessment/submit-quiz"
	ee "jobbly-workers/internal/workers/eligibility/evaluate-eligibility"
	lje "jobbly-workers/internal/workers/eligibility/list-job-eligibility"
)

// gatewayStore is everything the workers read and write, served by Postgres
// with an optional Redis quiz cache in front.
type gatewayStore interface {
	lifecycle.Store
	quiz.Store
	GetCompany(ctx context.Context, companyID int64) (models.Company, error)
	GetJobs(ctx context.Context, jobIDs []int64) ([]models.Job, error)
}

// retryWithBackoff retries operation with doubling delays until it succeeds,
// maxRetries is reached or ctx is done.
func retryWithBackoff(ctx context.Context, operation func(context.Context) error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		if err = operation(ctx); err == nil {
			return nil
		}
		if i == maxRetries-1 {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
			"error":       err,
			"attempt":     i + 1,
			"maxRetries":  maxRetries,
			"nextRetryIn": delay.String(),
		})
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled: %w", operationName, ctx.Err())
		}
		delay *= 2
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// checkRegistry warns about running workers the activity registry does not
// describe. A missing registry is not fatal.
func checkRegistry(path string, taskTypes []string, log logger.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry unavailable", map[string]interface{}{"path": path, "error": err})
		return
	}
	for _, tt := range taskTypes {
		if _, ok := reg.FindByTaskType(tt); !ok {
			log.Warn("worker missing from activity registry", map[string]interface{}{"taskType": tt})
		}
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot, _ := zap.NewProduction()
		boot.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.New(logger.Options{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Service:     cfg.App.Name,
		Environment: cfg.App.Environment,
		OutputPaths: []string{cfg.Logging.Output},
	})
	if err != nil {
		zapLog, _ = zap.NewDevelopment()
		zapLog.Warn("logger configuration rejected, using development logger", zap.Error(err))
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting worker manager...", map[string]interface{}{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		Version:        cfg.App.Version,
		TracingEnabled: cfg.Observability.TracingEnabled,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
		SampleRatio:    cfg.Observability.SampleRatio,
	})
	if err != nil {
		zapLog.Fatal("observability setup failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var zeebe *camunda.Client
	err = retryWithBackoff(ctx, func(context.Context) error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	if topology, err := zeebe.Topology(ctx); err == nil {
		log.Info("Zeebe client connected successfully", map[string]interface{}{
			"brokers":        len(topology.Brokers),
			"gatewayVersion": topology.GatewayVersion,
		})
	}

	var db *sql.DB
	err = retryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		db, err = database.NewPostgres(ctx, cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, log, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer db.Close()
	log.Info("PostgreSQL connected successfully", nil)

	var es *elasticsearch.Client
	err = retryWithBackoff(ctx, func(ctx context.Context) error {
		var err error
		if es, err = database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
			return err
		}
		return database.PingElasticsearch(ctx, es)
	}, 15, 2*time.Second, log, "Elasticsearch connection")
	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	log.Info("Elasticsearch connected successfully", nil)

	var rdb *redis.Client
	if cfg.Cache.Enabled {
		rdb = database.NewRedis(cfg.Database.Redis)
		err = retryWithBackoff(ctx, func(ctx context.Context) error {
			return database.PingRedis(ctx, rdb)
		}, 10, 2*time.Second, log, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		log.Info("Redis connected successfully", nil)
	}

	pg := store.NewPostgres(db)
	var gateway gatewayStore = pg
	if rdb != nil {
		gateway = store.NewCachedPostgres(pg, rdb, time.Duration(cfg.Cache.QuizTTL)*time.Second, log)
	}
	jobIndex := store.NewJobIndex(es, cfg.Database.Elasticsearch.JobIndex)

	applications := lifecycle.NewService(gateway, log)
	quizzes := quiz.NewEngine(gateway, log)

	pool := camunda.NewPool(zeebe.GetClient(), log)
	start := func(taskType string, handler camunda.JobHandler) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		if !wcfg.Enabled {
			log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
			return
		}
		pool.Start(taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler)
	}

	start(ee.TaskType, ee.NewHandler(ee.LoadConfig(config.GetWorkerConfig(cfg, ee.TaskType)), gateway, obs, log))
	start(lje.TaskType, lje.NewHandler(lje.LoadConfig(config.GetWorkerConfig(cfg, lje.TaskType)), jobIndex, gateway, gateway, obs, log))
	start(sub.TaskType, sub.NewHandler(sub.LoadConfig(config.GetWorkerConfig(cfg, sub.TaskType)), applications, obs, log))
	start(la.TaskType, la.NewHandler(la.LoadConfig(config.GetWorkerConfig(cfg, la.TaskType)), applications, obs, log))
	start(uas.TaskType, uas.NewHandler(uas.LoadConfig(config.GetWorkerConfig(cfg, uas.TaskType)), applications, obs, log))
	start(cqa.TaskType, cqa.NewHandler(cqa.LoadConfig(config.GetWorkerConfig(cfg, cqa.TaskType)), quizzes, gateway, obs, log))
	start(sq.TaskType, sq.NewHandler(sq.LoadConfig(config.GetWorkerConfig(cfg, sq.TaskType)), quizzes, obs, log))
	start(cq.TaskType, cq.NewHandler(cq.LoadConfig(config.GetWorkerConfig(cfg, cq.TaskType)), quizzes, obs, log))

	if config.IsWorkerEnabled(cfg, sa.TaskType) {
		awsCfg, err := aws.LoadConfig(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("failed to load AWS config", zap.Error(err))
		}
		handler, err := sa.NewHandler(
			sa.LoadConfig(config.GetWorkerConfig(cfg, sa.TaskType), cfg.Notifications),
			gateway,
			aws.NewSESMailer(awsCfg, cfg.Notifications.Email.FromEmail),
			aws.NewSNSSender(awsCfg, cfg.Notifications.SMS.SenderID),
			obs, log,
		)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		start(sa.TaskType, handler)
	}
	log.Info("workers registered", map[string]interface{}{"taskTypes": pool.TaskTypes()})
	checkRegistry(cfg.Registry.Path, pool.TaskTypes(), log)

	readiness := database.NewReadiness()
	readiness.Register("zeebe", zeebe.HealthCheck)
	readiness.Register("postgres", func(ctx context.Context) error { return database.PingPostgres(ctx, db) })
	readiness.Register("elasticsearch", func(ctx context.Context) error { return database.PingElasticsearch(ctx, es) })
	if rdb != nil {
		readiness.Register("redis", func(ctx context.Context) error { return database.PingRedis(ctx, rdb) })
	}

	srv := newHealthServer(cfg.Server.Port, readiness)
	go func() {
		log.Info("Health/Metrics server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Health/Metrics server failed", map[string]interface{}{"error": err})
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, stopping workers...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	pool.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Error stopping health server", map[string]interface{}{"error": err})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("Error flushing telemetry", map[string]interface{}{"error": err})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("Error closing Zeebe client", map[string]interface{}{"error": err})
	}

	log.Info("Worker manager stopped gracefully", nil)
}
