// internal/workers/application/list-applications/models.go
package listapplications

import (
	"jobbly-workers/internal/identity"
	"jobbly-workers/internal/models"
)

type Input struct {
	Identity identity.Identity `json:"identity"`
	// JobID narrows a company's list to one job. Ignored for seekers.
	JobID int64 `json:"jobId,omitempty"`
}

type Output struct {
	Count        int                      `json:"count"`
	Applications []models.ApplicationView `json:"applications"`
}
