package eligibility

import "jobbly-workers/internal/models"

// MinSkillMatchPercent is the share of required skills a seeker must hold.
const MinSkillMatchPercent = 50

// Gate names a single eligibility check.
type Gate string

const (
	GateEducation Gate = "education"
	GateSkills    Gate = "skills"
)

// Reason explains a failed gate with enough detail to render it.
type Reason struct {
	Gate              Gate   `json:"gate"`
	RequiredEducation string `json:"requiredEducation,omitempty"`
	SeekerEducation   string `json:"seekerEducation,omitempty"`
	MissingSkillIDs   []int  `json:"missingSkillIds,omitempty"`
	MatchPercentage   int    `json:"matchPercentage"`
	RequiredPercent   int    `json:"requiredPercentage,omitempty"`
}

type Result struct {
	EducationOK bool        `json:"educationOk"`
	SkillsOK    bool        `json:"skillsOk"`
	Eligible    bool        `json:"eligible"`
	SkillMatch  MatchResult `json:"skillMatch"`
	Reasons     []Reason    `json:"reasons"`
}

// FailedGates returns the gates that did not pass.
func (r Result) FailedGates() []Gate {
	gates := make([]Gate, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		gates = append(gates, reason.Gate)
	}
	return gates
}

// Evaluate is the single eligibility rule shared by the apply path and the
// listing badges. Both gates are independent and both must pass.
func Evaluate(seeker models.Seeker, job models.Job) Result {
	educationOK := Meets(seeker.Education, job.RequiredEducation)
	match := MatchSkills(job.RequiredSkillIDs, seeker.SkillIDs)
	skillsOK := match.RequiredCount == 0 || match.Percentage >= MinSkillMatchPercent

	reasons := []Reason{}
	if !educationOK {
		reasons = append(reasons, Reason{
			Gate:              GateEducation,
			RequiredEducation: job.RequiredEducation,
			SeekerEducation:   seeker.Education,
		})
	}
	if !skillsOK {
		reasons = append(reasons, Reason{
			Gate:            GateSkills,
			MissingSkillIDs: match.MissingIDs,
			MatchPercentage: match.Percentage,
			RequiredPercent: MinSkillMatchPercent,
		})
	}

	return Result{
		EducationOK: educationOK,
		SkillsOK:    skillsOK,
		Eligible:    educationOK && skillsOK,
		SkillMatch:  match,
		Reasons:     reasons,
	}
}
