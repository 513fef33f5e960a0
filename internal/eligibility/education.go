// Package eligibility decides whether a seeker may apply to a job.
package eligibility

// EducationLevel is an ordinal rank; higher is more advanced.
type EducationLevel int

const (
	LevelUnknown EducationLevel = iota
	LevelMatric
	LevelInter
	LevelBS
	LevelMS
	LevelPhD
)

var educationLevels = map[string]EducationLevel{
	"Matric": LevelMatric,
	"Inter":  LevelInter,
	"BS":     LevelBS,
	"MS":     LevelMS,
	"PhD":    LevelPhD,
}

// LevelOf returns the rank of a stored education label. Unknown labels rank 0
// and therefore fail any positive requirement.
func LevelOf(label string) EducationLevel {
	return educationLevels[label]
}

// Meets compares ranks, never label text.
func Meets(have, require string) bool {
	return LevelOf(have) >= LevelOf(require)
}

// EducationOption pairs a stored label with its display name.
type EducationOption struct {
	Label   string `json:"label"`
	Display string `json:"display"`
}

// EducationOptions lists the labels in ascending order.
func EducationOptions() []EducationOption {
	return []EducationOption{
		{Label: "Matric", Display: "Matric"},
		{Label: "Inter", Display: "Intermediate"},
		{Label: "BS", Display: "Bachelor's (BS)"},
		{Label: "MS", Display: "Master's (MS)"},
		{Label: "PhD", Display: "PhD"},
	}
}
