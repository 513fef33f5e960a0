// internal/common/jobs/runner.go
package jobs

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"jobbly-workers/internal/common/errors"
	"jobbly-workers/internal/common/logger"
	"jobbly-workers/internal/common/metrics"
	"jobbly-workers/internal/common/observability"
	"jobbly-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Runner carries one job from activation to completion: it validates and
// decodes the variables, runs the handler under a deadline inside a span, and
// reports the outcome to the broker.
type Runner struct {
	taskType string
	timeout  time.Duration
	schema   *validation.Schema
	obs      *observability.Observability
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewRunner(taskType string, timeout time.Duration, schema *validation.Schema, obs *observability.Observability, log logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Runner{
		taskType: taskType,
		timeout:  timeout,
		schema:   schema,
		obs:      obs,
		errors:   errors.NewErrorHandler(log),
		logger:   log,
	}
}

// WithMaxRetries caps the retries left on a job failed with a retryable
// error. Zero keeps the per-code default.
func (r *Runner) WithMaxRetries(n int) *Runner {
	r.errors = r.errors.WithMaxRetries(n)
	return r
}

// ExecFunc runs the decoded job and returns the output variables.
type ExecFunc func(ctx context.Context) (interface{}, error)

// Run decodes job.Variables into input and then calls exec.
func (r *Runner) Run(client worker.JobClient, job entities.Job, input interface{}, exec ExecFunc) {
	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
		"retries":     job.Retries,
	})

	start := time.Now()
	timer := metrics.StartJob(r.taskType)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	ctx, span := r.obs.Tracing().StartSpan(ctx, r.taskType, job.Key, job.ProcessInstanceKey)

	var output interface{}
	err := Decode(r.schema, job.Variables, input)
	if err == nil {
		output, err = exec(ctx)
		if err != nil && stderrors.Is(ctx.Err(), context.DeadlineExceeded) && !isStandard(err) {
			err = errors.NewTimeoutError(fmt.Errorf("%s after %s: %w", r.taskType, r.timeout, err))
		}
	}
	observability.EndSpan(span, err)

	if err != nil {
		code := string(errors.FromEngineError(err).Code)
		timer.Failed(code)
		r.obs.RecordJobProcessed(ctx, r.taskType, "failed")
		r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), "failed")
		r.errors.HandleJobError(context.Background(), client, job, err)
		return
	}

	timer.Completed()
	r.obs.RecordJobProcessed(ctx, r.taskType, "completed")
	r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), "completed")
	r.complete(client, job, output)
}

// Decode validates variables against schema, when set, and unmarshals them.
// Failures come back as INVALID_INPUT errors.
func Decode(schema *validation.Schema, variables string, dst interface{}) error {
	if schema != nil {
		if err := schema.Validate(variables).Err(); err != nil {
			return errors.NewInvalidInputError(err.Error())
		}
	}
	if err := json.Unmarshal([]byte(variables), dst); err != nil {
		return errors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return nil
}

func isStandard(err error) bool {
	var std *errors.StandardError
	return stderrors.As(err, &std)
}

func (r *Runner) complete(client worker.JobClient, job entities.Job, output interface{}) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := cmd.Send(ctx); err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		return
	}
	r.logger.Info("job completed successfully", map[string]interface{}{
		"jobKey": job.Key,
	})
}
