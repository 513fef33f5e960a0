// internal/models/job.go
package models

import "time"

type JobStatus string

const (
	JobStatusActive JobStatus = "active"
	JobStatusClosed JobStatus = "closed"
)

type Job struct {
	ID                int64     `json:"id"`
	CompanyID         int64     `json:"companyId"`
	Title             string    `json:"title"`
	Location          string    `json:"location,omitempty"`
	JobType           string    `json:"jobType,omitempty"`
	RequiredEducation string    `json:"requiredEducation"`
	RequiredSkillIDs  []int     `json:"requiredSkillIds"`
	Status            JobStatus `json:"status"`
	PostedAt          time.Time `json:"postedAt,omitempty"`
}

// IsActive reports whether seekers may currently apply.
func (j Job) IsActive() bool {
	return j.Status == JobStatusActive
}

type Seeker struct {
	ID        int64  `json:"id"`
	FullName  string `json:"fullName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Education string `json:"education"`
	SkillIDs  []int  `json:"skillIds"`
}

type Company struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Skill is immutable reference data.
type Skill struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}
