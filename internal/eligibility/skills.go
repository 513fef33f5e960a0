package eligibility

import (
	"sort"

	"jobbly-workers/internal/models"
)

// MatchResult describes how many of a job's required skills a seeker holds.
type MatchResult struct {
	RequiredCount int   `json:"requiredCount"`
	MatchedCount  int   `json:"matchedCount"`
	MissingIDs    []int `json:"missingIds"`
	Percentage    int   `json:"percentage"`
}

// MatchSkills treats both inputs as sets. An empty requirement is full
// satisfaction.
func MatchSkills(required, held []int) MatchResult {
	req := toSet(required)
	if len(req) == 0 {
		return MatchResult{MissingIDs: []int{}, Percentage: 100}
	}

	have := toSet(held)
	missing := make([]int, 0, len(req))
	matched := 0
	for id := range req {
		if _, ok := have[id]; ok {
			matched++
			continue
		}
		missing = append(missing, id)
	}
	sort.Ints(missing)

	return MatchResult{
		RequiredCount: len(req),
		MatchedCount:  matched,
		MissingIDs:    missing,
		Percentage:    models.Percent(matched, len(req)),
	}
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
