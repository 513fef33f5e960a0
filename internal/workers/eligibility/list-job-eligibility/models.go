// internal/workers/eligibility/list-job-eligibility/models.go
package listjobeligibility

import (
	"time"

	"jobbly-workers/internal/identity"
)

type Input struct {
	Identity identity.Identity `json:"identity"`
	From     int               `json:"from,omitempty"`
	Size     int               `json:"size,omitempty"`
}

type Output struct {
	Total int       `json:"total"`
	From  int       `json:"from"`
	Size  int       `json:"size"`
	Jobs  []Listing `json:"jobs"`
}

// Listing is one row of the job board. Badge is only set for seekers.
type Listing struct {
	JobID             int64     `json:"jobId"`
	CompanyID         int64     `json:"companyId"`
	Title             string    `json:"title"`
	Location          string    `json:"location,omitempty"`
	JobType           string    `json:"jobType,omitempty"`
	RequiredEducation string    `json:"requiredEducation"`
	PostedAt          time.Time `json:"postedAt,omitempty"`
	Badge             *Badge    `json:"badge,omitempty"`
}

type Badge struct {
	Eligible        bool `json:"eligible"`
	EducationOK     bool `json:"educationOk"`
	SkillsOK        bool `json:"skillsOk"`
	MatchPercentage int  `json:"matchPercentage"`
}
