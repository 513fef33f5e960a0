// internal/workers/application/update-application-status/models.go
package updateapplicationstatus

import "jobbly-workers/internal/identity"

type Input struct {
	Identity      identity.Identity `json:"identity"`
	ApplicationID int64             `json:"applicationId"`
	Status        string            `json:"status"`
}

type Output struct {
	ApplicationID     int64  `json:"applicationId"`
	JobID             int64  `json:"jobId"`
	SeekerID          int64  `json:"seekerId"`
	ApplicationStatus string `json:"applicationStatus"`
	UpdatedAt         string `json:"updatedAt"`
}
