// Package insights shapes the public datasets behind the awareness charts into
// label/series form. Rendering is left to the client.
package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Year accepts both numeric and string years in source data.
type Year string

// UnmarshalJSON keeps the literal text of a number or string year.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	*y = Year(n.String())
	return nil
}

func (y Year) empty() bool {
	return y == "" || y == "0"
}

// DiagnosisRecord is one row of the diagnoses dataset.
type DiagnosisRecord struct {
	YearDiagnosed Year `json:"Year Diagnosed"`
}

// PrevalenceRecord is one row of the prevalence-by-sex dataset.
type PrevalenceRecord struct {
	Sex  string  `json:"sex"`
	Year Year    `json:"year"`
	Val  float64 `json:"val"`
}

// Series is a single labelled line.
type Series struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
}

// GenderSeries holds the two prevalence lines, in percent. Nil entries mark
// years without data for that sex.
type GenderSeries struct {
	Labels []string   `json:"labels"`
	Male   []*float64 `json:"male"`
	Female []*float64 `json:"female"`
}

// DiagnosesPerYear counts records per diagnosis year, in ascending year order.
func DiagnosesPerYear(records []DiagnosisRecord) Series {
	counts := make(map[Year]int)
	for _, r := range records {
		if r.YearDiagnosed.empty() {
			continue
		}
		counts[r.YearDiagnosed]++
	}
	years := make([]Year, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sortYears(years)

	s := Series{Labels: make([]string, len(years)), Counts: make([]int, len(years))}
	for i, y := range years {
		s.Labels[i] = string(y)
		s.Counts[i] = counts[y]
	}
	return s
}

// PrevalenceByGender aligns male and female prevalence on the union of years.
// Values are converted to percent and rounded to two decimals.
func PrevalenceByGender(records []PrevalenceRecord) GenderSeries {
	male := make(map[Year]float64)
	female := make(map[Year]float64)
	seen := make(map[Year]struct{})
	for _, r := range records {
		switch r.Sex {
		case "Male":
			male[r.Year] = r.Val * 100
		case "Female":
			female[r.Year] = r.Val * 100
		default:
			continue
		}
		seen[r.Year] = struct{}{}
	}
	years := make([]Year, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sortYears(years)

	g := GenderSeries{
		Labels: make([]string, len(years)),
		Male:   make([]*float64, len(years)),
		Female: make([]*float64, len(years)),
	}
	for i, y := range years {
		g.Labels[i] = string(y)
		if v, ok := male[y]; ok {
			g.Male[i] = round2(v)
		}
		if v, ok := female[y]; ok {
			g.Female[i] = round2(v)
		}
	}
	return g
}

func round2(v float64) *float64 {
	r := math.Round(v*100) / 100
	return &r
}

func sortYears(years []Year) {
	sort.Slice(years, func(i, j int) bool {
		a, errA := strconv.ParseFloat(string(years[i]), 64)
		b, errB := strconv.ParseFloat(string(years[j]), 64)
		if errA == nil && errB == nil && a != b {
			return a < b
		}
		return years[i] < years[j]
	})
}

// LoadDiagnoses reads the diagnoses dataset from a JSON array file.
func LoadDiagnoses(path string) ([]DiagnosisRecord, error) {
	var records []DiagnosisRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// LoadPrevalence reads the prevalence dataset from a JSON array file.
func LoadPrevalence(path string) ([]PrevalenceRecord, error) {
	var records []PrevalenceRecord
	if err := loadJSON(path, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode dataset %s: %w", path, err)
	}
	return nil
}
