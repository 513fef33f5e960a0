// internal/common/database/health.go
package database

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Probe reports whether one dependency is reachable.
type Probe func(ctx context.Context) error

// Readiness aggregates named probes for the /ready endpoint.
type Readiness struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

func NewReadiness() *Readiness {
	return &Readiness{probes: make(map[string]Probe)}
}

func (r *Readiness) Register(name string, p Probe) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.probes[name] = p
}

// Check runs every probe concurrently. The map holds "ok" or the error text
// per name.
func (r *Readiness) Check(ctx context.Context) (map[string]string, bool) {
	r.mu.RLock()
	probes := make(map[string]Probe, len(r.probes))
	for k, v := range r.probes {
		probes[k] = v
	}
	r.mu.RUnlock()

	var (
		mu     sync.Mutex
		status = make(map[string]string, len(probes))
		ready  = true
	)
	var g errgroup.Group
	for name, probe := range probes {
		name, probe := name, probe
		g.Go(func() error {
			result := "ok"
			if err := probe(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			status[name] = result
			if result != "ok" {
				ready = false
			}
			return nil
		})
	}
	_ = g.Wait()
	return status, ready
}
