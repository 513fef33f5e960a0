// internal/workers/eligibility/list-job-eligibility/config.go
package listjobeligibility

import (
	"time"

	"jobbly-workers/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	MaxRetries  int
	DefaultSize int
	MaxSize     int
}

func LoadConfig(w config.WorkerConfig) *Config {
	timeout := config.GetDuration(w.Timeout)
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Config{
		Timeout:     timeout,
		MaxRetries:  w.MaxRetries,
		DefaultSize: 20,
		MaxSize:     100,
	}
}
