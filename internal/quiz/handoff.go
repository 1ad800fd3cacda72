package quiz

import (
	"encoding/json"
	"fmt"

	"mindcheck-service/internal/domain"
)

// Handoff key names shared with the results page.
const (
	HandoffScoresKey      = "quizScores"
	HandoffMaxCategoryKey = "quizMaxCategory"
)

// Handoff is the transient payload passed from the quiz to the results page:
// the tally as JSON plus the dominant category as a plain string.
type Handoff struct {
	Scores      string `json:"quizScores"`
	MaxCategory string `json:"quizMaxCategory"`
}

// EncodeHandoff serialises a result into the handoff format.
func EncodeHandoff(r domain.Result) (Handoff, error) {
	scores := make(map[string]int, len(domain.Categories))
	for _, c := range domain.Categories {
		scores[string(c)] = r.Tally[c]
	}
	raw, err := json.Marshal(scores)
	if err != nil {
		return Handoff{}, fmt.Errorf("encode scores: %w", err)
	}
	return Handoff{Scores: string(raw), MaxCategory: string(r.Dominant)}, nil
}

// DecodeHandoff parses a handoff payload back into a result.
func DecodeHandoff(h Handoff) (domain.Result, error) {
	dominant, err := domain.ParseCategory(h.MaxCategory)
	if err != nil {
		return domain.Result{}, fmt.Errorf("decode %s: %w", HandoffMaxCategoryKey, err)
	}
	var scores map[string]int
	if err := json.Unmarshal([]byte(h.Scores), &scores); err != nil {
		return domain.Result{}, fmt.Errorf("decode %s: %w", HandoffScoresKey, err)
	}
	tally := domain.NewTally()
	for name, count := range scores {
		c, err := domain.ParseCategory(name)
		if err != nil {
			return domain.Result{}, fmt.Errorf("decode %s: %w", HandoffScoresKey, err)
		}
		if count < 0 {
			return domain.Result{}, fmt.Errorf("decode %s: negative count for %s", HandoffScoresKey, name)
		}
		tally[c] = count
	}
	return domain.Result{Tally: tally, Dominant: dominant}, nil
}
