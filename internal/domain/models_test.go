package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		got, err := ParseCategory(string(c))
		if err != nil || got != c {
			t.Fatalf("parse %q: got %q, %v", c, got, err)
		}
	}
	if _, err := ParseCategory("great"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected unknown category, got %v", err)
	}
}

func TestCategoryJSONRejectsUnknown(t *testing.T) {
	var opt Option
	if err := json.Unmarshal([]byte(`{"text":"x","category":"bad"}`), &opt); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if opt.Category != CategoryBad {
		t.Fatalf("expected bad, got %q", opt.Category)
	}
	if err := json.Unmarshal([]byte(`{"text":"x","category":"awful"}`), &opt); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestNewTallyHasAllCategories(t *testing.T) {
	tally := NewTally()
	if len(tally) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(tally))
	}
	tally[CategoryBad] += 3
	tally[CategoryGood]++
	if tally.Total() != 4 {
		t.Fatalf("expected total 4, got %d", tally.Total())
	}
}

func TestChatErrorMessages(t *testing.T) {
	blocked := &SafetyBlockedError{Reason: "SAFETY"}
	if blocked.Error() != "Your question was blocked by safety filters due to: SAFETY. Please rephrase or ask about mental health awareness topics only." {
		t.Fatalf("unexpected message %q", blocked.Error())
	}
	status := &TransportError{Status: 400, Message: "bad key"}
	if status.Error() != "API returned status 400: bad key" {
		t.Fatalf("unexpected message %q", status.Error())
	}
	cause := errors.New("dial tcp: refused")
	network := &TransportError{Err: cause}
	if !errors.Is(network, cause) {
		t.Fatalf("expected transport error to unwrap its cause")
	}
}
