// Package quiz scores screening quizzes and enforces one attempt per seeker.
package quiz

import "jobbly-workers/internal/models"

type ScoreResult struct {
	CorrectCount int `json:"correctCount"`
	Total        int `json:"total"`
	Percentage   int `json:"percentage"`
}

// Score compares answers, keyed by question id, with each question's correct
// option. Unanswered questions count as wrong and answers to questions not in
// the set are ignored.
func Score(questions []models.Question, answers map[int64]string) ScoreResult {
	res := ScoreResult{Total: len(questions)}
	for _, q := range questions {
		given, ok := answers[q.ID]
		if !ok {
			continue
		}
		if models.NormalizeAnswer(given) == models.NormalizeAnswer(string(q.CorrectAnswer)) {
			res.CorrectCount++
		}
	}
	res.Percentage = models.Percent(res.CorrectCount, res.Total)
	return res
}

// Passed reports whether a percentage meets the quiz threshold.
func Passed(percentage, passingScore int) bool {
	return percentage >= passingScore
}
