// internal/workers/application/send-notification/config.go
package sendnotification

import (
	"time"

	"jobbly-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	PortalURL    string
	Timeout      time.Duration
	MaxRetries   int
}

func LoadConfig(w config.WorkerConfig, n config.NotificationConfig) *Config {
	timeout := config.GetDuration(w.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		EmailEnabled: n.Email.Enabled,
		SMSEnabled:   n.SMS.Enabled,
		PortalURL:    n.PortalURL,
		Timeout:      timeout,
		MaxRetries:   w.MaxRetries,
	}
}
