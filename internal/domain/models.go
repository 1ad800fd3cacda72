package domain

import (
	"encoding/json"
	"time"
)

// Category is the well-being bucket an answer option counts towards.
type Category string

const (
	CategoryGood    Category = "good"
	CategoryMedium  Category = "medium"
	CategoryAverage Category = "average"
	CategoryBad     Category = "bad"
)

// Categories lists every category in enumeration order. The order doubles as
// the tie-break order when picking a dominant category.
var Categories = []Category{CategoryGood, CategoryMedium, CategoryAverage, CategoryBad}

// ParseCategory validates a raw category name.
func ParseCategory(raw string) (Category, error) {
	for _, c := range Categories {
		if string(c) == raw {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

// UnmarshalJSON rejects category names outside the closed set.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Option is one labelled answer of a question.
type Option struct {
	Label    string   `json:"text"`
	Category Category `json:"category"`
}

// Question models a prompt with an ordered list of options.
type Question struct {
	Prompt  string   `json:"question"`
	Options []Option `json:"options"`
}

// Questionnaire is a named, immutable set of questions.
type Questionnaire struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// Tally counts selected answers per category. A tally built with NewTally
// always carries all four categories.
type Tally map[Category]int

// NewTally returns a zero-initialised tally.
func NewTally() Tally {
	t := make(Tally, len(Categories))
	for _, c := range Categories {
		t[c] = 0
	}
	return t
}

// Total is the sum of all counts.
func (t Tally) Total() int {
	total := 0
	for _, c := range Categories {
		total += t[c]
	}
	return total
}

// Result is the outcome of a completed quiz.
type Result struct {
	Tally    Tally    `json:"scores"`
	Dominant Category `json:"maxCategory"`
}

// Story is free text a visitor keeps across sessions.
type Story struct {
	VisitorID string    `json:"-"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updatedAt"`
}
