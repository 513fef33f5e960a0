// internal/workers/application/submit-application/config.go
package submitapplication

import (
	"time"

	"jobbly-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	MaxRetries int
}

func LoadConfig(w config.WorkerConfig) *Config {
	timeout := config.GetDuration(w.Timeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Config{Timeout: timeout, MaxRetries: w.MaxRetries}
}
