package eligibility

import (
	"testing"

	"jobbly-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestMeets(t *testing.T) {
	tests := []struct {
		name    string
		have    string
		require string
		want    bool
	}{
		{"higher degree", "MS", "BS", true},
		{"same degree", "BS", "BS", true},
		{"lower degree", "Inter", "BS", false},
		{"phd beats everything", "PhD", "MS", true},
		{"unknown seeker label fails", "Diploma", "Matric", false},
		{"lowercase label is unknown", "bs", "Matric", false},
		{"unknown requirement is satisfied", "Matric", "", true},
		{"ordinal not lexical", "MS", "Inter", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Meets(tt.have, tt.require))
		})
	}
}

func TestLevelOf(t *testing.T) {
	assert.Equal(t, LevelMatric, LevelOf("Matric"))
	assert.Equal(t, LevelPhD, LevelOf("PhD"))
	assert.Equal(t, LevelUnknown, LevelOf("Bachelors"))
	assert.Len(t, EducationOptions(), 5)
}

func TestMatchSkills(t *testing.T) {
	tests := []struct {
		name     string
		required []int
		held     []int
		want     MatchResult
	}{
		{
			name:     "no requirement is full satisfaction",
			required: nil,
			held:     []int{1, 2},
			want:     MatchResult{MissingIDs: []int{}, Percentage: 100},
		},
		{
			name:     "no requirement and no skills",
			required: []int{},
			held:     nil,
			want:     MatchResult{MissingIDs: []int{}, Percentage: 100},
		},
		{
			name:     "half matched",
			required: []int{4, 3, 2, 1},
			held:     []int{1, 2},
			want:     MatchResult{RequiredCount: 4, MatchedCount: 2, MissingIDs: []int{3, 4}, Percentage: 50},
		},
		{
			name:     "two thirds rounds up",
			required: []int{1, 2, 3},
			held:     []int{1, 2, 9},
			want:     MatchResult{RequiredCount: 3, MatchedCount: 2, MissingIDs: []int{3}, Percentage: 67},
		},
		{
			name:     "one third rounds down",
			required: []int{1, 2, 3},
			held:     []int{3},
			want:     MatchResult{RequiredCount: 3, MatchedCount: 1, MissingIDs: []int{1, 2}, Percentage: 33},
		},
		{
			name:     "one eighth rounds half up",
			required: []int{1, 2, 3, 4, 5, 6, 7, 8},
			held:     []int{8},
			want:     MatchResult{RequiredCount: 8, MatchedCount: 1, MissingIDs: []int{1, 2, 3, 4, 5, 6, 7}, Percentage: 13},
		},
		{
			name:     "duplicates collapse",
			required: []int{1, 1, 2},
			held:     []int{1, 1},
			want:     MatchResult{RequiredCount: 2, MatchedCount: 1, MissingIDs: []int{2}, Percentage: 50},
		},
		{
			name:     "nothing held",
			required: []int{5},
			held:     nil,
			want:     MatchResult{RequiredCount: 1, MatchedCount: 0, MissingIDs: []int{5}, Percentage: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSkills(tt.required, tt.held))
		})
	}
}

func TestMatchSkills_OrderIndependent(t *testing.T) {
	a := MatchSkills([]int{1, 2, 3, 4, 5}, []int{5, 3, 1})
	b := MatchSkills([]int{5, 4, 3, 2, 1}, []int{1, 3, 5})
	assert.Equal(t, a, b)
}

func scenarioJob() models.Job {
	return models.Job{
		ID:                10,
		RequiredEducation: "BS",
		RequiredSkillIDs:  []int{1, 2, 3, 4},
		Status:            models.JobStatusActive,
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	t.Run("MS with half the skills is eligible", func(t *testing.T) {
		res := Evaluate(models.Seeker{Education: "MS", SkillIDs: []int{1, 2}}, scenarioJob())

		assert.True(t, res.EducationOK)
		assert.Equal(t, 50, res.SkillMatch.Percentage)
		assert.True(t, res.SkillsOK)
		assert.True(t, res.Eligible)
		assert.Empty(t, res.Reasons)
	})

	t.Run("Inter fails regardless of skills", func(t *testing.T) {
		res := Evaluate(models.Seeker{Education: "Inter", SkillIDs: []int{1, 2, 3, 4}}, scenarioJob())

		assert.False(t, res.EducationOK)
		assert.True(t, res.SkillsOK)
		assert.False(t, res.Eligible)
		assert.Equal(t, []Gate{GateEducation}, res.FailedGates())
		assert.Equal(t, "BS", res.Reasons[0].RequiredEducation)
		assert.Equal(t, "Inter", res.Reasons[0].SeekerEducation)
	})

	t.Run("below skill threshold", func(t *testing.T) {
		res := Evaluate(models.Seeker{Education: "PhD", SkillIDs: []int{4}}, scenarioJob())

		assert.True(t, res.EducationOK)
		assert.False(t, res.SkillsOK)
		assert.False(t, res.Eligible)
		assert.Equal(t, []Gate{GateSkills}, res.FailedGates())
		assert.Equal(t, []int{1, 2, 3}, res.Reasons[0].MissingSkillIDs)
		assert.Equal(t, 25, res.Reasons[0].MatchPercentage)
	})

	t.Run("both gates fail", func(t *testing.T) {
		res := Evaluate(models.Seeker{Education: "Matric"}, scenarioJob())

		assert.False(t, res.Eligible)
		assert.Equal(t, []Gate{GateEducation, GateSkills}, res.FailedGates())
	})

	t.Run("no skill gate", func(t *testing.T) {
		job := scenarioJob()
		job.RequiredSkillIDs = nil
		res := Evaluate(models.Seeker{Education: "BS"}, job)

		assert.True(t, res.SkillsOK)
		assert.True(t, res.Eligible)
		assert.Equal(t, 100, res.SkillMatch.Percentage)
	})
}

func TestEvaluate_EligibleIffBothGates(t *testing.T) {
	educations := []string{"", "Matric", "Inter", "BS", "MS", "PhD"}
	skillSets := [][]int{nil, {1}, {1, 2}, {1, 2, 3}, {1, 2, 3, 4}}

	for _, edu := range educations {
		for _, skills := range skillSets {
			res := Evaluate(models.Seeker{Education: edu, SkillIDs: skills}, scenarioJob())
			assert.Equal(t, res.EducationOK && res.SkillsOK, res.Eligible, "education=%s skills=%v", edu, skills)
		}
	}
}
