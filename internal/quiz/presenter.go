package quiz

import "mindcheck-service/internal/domain"

// CountColumn is one cell of the summary table.
type CountColumn struct {
	Category domain.Category `json:"category"`
	Heading  string          `json:"heading"`
	Count    int             `json:"count"`
}

// Summary is the fixed explanatory template for a quiz result.
type Summary struct {
	Title       string          `json:"title"`
	Counts      []CountColumn   `json:"counts"`
	Dominant    domain.Category `json:"dominant"`
	Label       string          `json:"label"`
	Explanation string          `json:"explanation"`
	Suggestions []string        `json:"suggestions"`
	Closing     string          `json:"closing"`
	Tips        []string        `json:"tips"`
}

const (
	summaryTitle   = "Your Mental Health Quiz Summary"
	summaryClosing = "Remember: Mental health is a journey; reaching out is a sign of strength!"
)

var columnHeadings = map[domain.Category]string{
	domain.CategoryGood:    "Good",
	domain.CategoryMedium:  "Medium",
	domain.CategoryAverage: "Average",
	domain.CategoryBad:     "Needs Attention",
}

var categoryLabels = map[domain.Category]string{
	domain.CategoryGood:    "Good Mental Health",
	domain.CategoryMedium:  "Medium Mental Health",
	domain.CategoryAverage: "Average Mental Health",
	domain.CategoryBad:     "Needs Attention",
}

var categoryExplanations = map[domain.Category]string{
	domain.CategoryGood:    "You’re practicing healthy habits and coping strategies.",
	domain.CategoryMedium:  "You're doing well, but could benefit from extra self-care.",
	domain.CategoryAverage: "You face some challenges that would improve with more support or lifestyle changes.",
	domain.CategoryBad:     "You may be struggling—many people feel this way at times.",
}

var categorySuggestions = map[domain.Category][]string{
	domain.CategoryGood: {
		"Continue your positive routines (exercise, adequate sleep, and social activities).",
		"Help others by sharing your strategies.",
		"Stay mindful of any changes in your mood.",
	},
	domain.CategoryMedium: {
		"Schedule downtime for self-care (relax, meditate, walk in nature).",
		"Strengthen social connections—reach out to friends or loved ones.",
		"Practice stress reduction (breathing exercises, creative hobbies).",
	},
	domain.CategoryAverage: {
		"Set small, achievable goals to foster a sense of accomplishment.",
		"Seek help from friends, family, or online communities.",
		"Try journaling or mindfulness meditation.",
		"Consider establishing healthy routines (sleep, meals, exercise).",
	},
	domain.CategoryBad: {
		"Reach out to a mental health professional or counselor.",
		"Talk to someone you trust about how you are feeling—don't isolate yourself.",
		"Practice self-compassion and avoid self-criticism.",
		"Remember: seeking help is a sign of strength.",
	},
}

var generalTips = []string{
	"If you feel overwhelmed, it's always okay to speak to a mental health professional.",
	"Engage in hobbies or activities you enjoy.",
	"Prioritize consistent sleep and balanced meals.",
	"Avoid excessive screen time and news overload, especially if it increases stress.",
}

// Present builds the summary for a result. It has no side effects.
func Present(r domain.Result) Summary {
	counts := make([]CountColumn, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		counts = append(counts, CountColumn{Category: c, Heading: columnHeadings[c], Count: r.Tally[c]})
	}
	return Summary{
		Title:       summaryTitle,
		Counts:      counts,
		Dominant:    r.Dominant,
		Label:       categoryLabels[r.Dominant],
		Explanation: categoryExplanations[r.Dominant],
		Suggestions: append([]string(nil), categorySuggestions[r.Dominant]...),
		Closing:     summaryClosing,
		Tips:        append([]string(nil), generalTips...),
	}
}

// PresentHandoff renders a handoff payload read from transient storage. An
// absent or unreadable payload renders nothing.
func PresentHandoff(h Handoff, ok bool) (Summary, bool) {
	if !ok {
		return Summary{}, false
	}
	r, err := DecodeHandoff(h)
	if err != nil {
		return Summary{}, false
	}
	return Present(r), true
}
