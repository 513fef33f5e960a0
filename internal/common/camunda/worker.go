// internal/common/camunda/worker.go
package camunda

import (
	"sync"
	"time"

	"jobbly-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every worker handler.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

type WorkerOptions struct {
	MaxJobsActive int
	Timeout       time.Duration
	PollInterval  time.Duration
}

// Pool opens job workers against one client and closes them together.
type Pool struct {
	client zbc.Client
	logger logger.Logger

	mu      sync.Mutex
	workers map[string]worker.JobWorker
}

func NewPool(client zbc.Client, log logger.Logger) *Pool {
	return &Pool{
		client:  client,
		logger:  log,
		workers: make(map[string]worker.JobWorker),
	}
}

// Start opens a job worker for taskType. A task type is only opened once.
func (p *Pool) Start(taskType string, opts WorkerOptions, handler JobHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.workers[taskType]; ok {
		p.logger.Warn("worker already started", map[string]interface{}{"taskType": taskType})
		return
	}

	step := p.client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		Name(taskType + "-worker")
	if opts.MaxJobsActive > 0 {
		step = step.MaxJobsActive(opts.MaxJobsActive)
	}
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}
	if opts.PollInterval > 0 {
		step = step.PollInterval(opts.PollInterval)
	}
	p.workers[taskType] = step.Open()

	p.logger.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": opts.MaxJobsActive,
		"timeout":       opts.Timeout.String(),
	})
}

// TaskTypes lists the task types with an open worker.
func (p *Pool) TaskTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.workers))
	for t := range p.workers {
		out = append(out, t)
	}
	return out
}

// Close stops polling and waits for in-flight jobs on every worker.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for taskType, w := range p.workers {
		p.logger.Info("stopping worker", map[string]interface{}{"taskType": taskType})
		w.Close()
		w.AwaitClose()
		delete(p.workers, taskType)
	}
}
