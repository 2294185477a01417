package quiz

import (
	"context"

	"github.com/trezcool/academia/core/course"
)

// Result is one quiz attempt. Results are append only.
type Result struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title"`
	Score     int    `json:"score"`      // 0 - 100
	TimeTaken int    `json:"time_taken"` // seconds
	UserID    string `json:"user_id"`
}

// Store appends and lists quiz results.
type Store interface {
	SaveResult(ctx context.Context, r Result) error
	QueryResults(ctx context.Context, userID string) ([]Result, error)
}

// Score returns round(100 * correct / total). answers maps question IDs to chosen options;
// unanswered questions count as incorrect. A quiz without questions scores 0.
func Score(qz course.Quiz, answers map[string]string) int {
	total := len(qz.Questions)
	if total == 0 {
		return 0
	}
	var correct int
	for _, q := range qz.Questions {
		if ans, ok := answers[q.ID]; ok && ans == q.CorrectAns {
			correct++
		}
	}
	return (200*correct + total) / (2 * total)
}

// Band groups scores the way results are colored.
type Band string

const (
	BandGood Band = "good" // >= 70
	BandFair Band = "fair" // >= 50
	BandPoor Band = "poor"
)

func BandOf(score int) Band {
	switch {
	case score >= 70:
		return BandGood
	case score >= 50:
		return BandFair
	}
	return BandPoor
}
