// internal/workers/eligibility/evaluate-eligibility/models.go
package evaluateeligibility

import (
	"jobbly-workers/internal/eligibility"
	"jobbly-workers/internal/identity"
)

type Input struct {
	Identity identity.Identity `json:"identity"`
	JobID    int64             `json:"jobId"`
}

type Output struct {
	JobID           int64                `json:"jobId"`
	SeekerID        int64                `json:"seekerId"`
	Eligible        bool                 `json:"eligible"`
	EducationOK     bool                 `json:"educationOk"`
	SkillsOK        bool                 `json:"skillsOk"`
	MatchPercentage int                  `json:"matchPercentage"`
	MatchedCount    int                  `json:"matchedCount"`
	RequiredCount   int                  `json:"requiredCount"`
	MissingSkillIDs []int                `json:"missingSkillIds"`
	Reasons         []eligibility.Reason `json:"reasons"`
	JobActive       bool                 `json:"jobActive"`
}
