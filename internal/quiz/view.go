package quiz

import (
	"fmt"

	"mindcheck-service/internal/domain"
)

// View is a render-ready picture of an attempt. Progression controls should be
// disabled from CanRetreat/CanAdvance rather than by reacting to errors.
type View struct {
	QuestionnaireID string         `json:"questionnaireId"`
	Index           int            `json:"index"`
	Total           int            `json:"total"`
	Prompt          string         `json:"prompt,omitempty"`
	Options         []string       `json:"options,omitempty"`
	Selected        int            `json:"selected"`
	CanRetreat      bool           `json:"canRetreat"`
	CanAdvance      bool           `json:"canAdvance"`
	IsLast          bool           `json:"isLast"`
	Completed       bool           `json:"completed"`
	Result          *domain.Result `json:"result,omitempty"`
}

// View describes the current state of the engine.
func (e *Engine) View() View {
	v := View{
		QuestionnaireID: e.questionnaire.ID,
		Index:           e.current,
		Total:           len(e.questionnaire.Questions),
		Selected:        noAnswer,
		Completed:       e.result != nil,
	}
	if e.result != nil {
		res := *e.result
		v.Result = &res
		return v
	}
	q := e.questionnaire.Questions[e.current]
	v.Prompt = q.Prompt
	v.Options = make([]string, len(q.Options))
	for i, opt := range q.Options {
		v.Options[i] = opt.Label
	}
	v.Selected = e.answers[e.current]
	v.CanRetreat = e.current > 0
	v.CanAdvance = v.Selected != noAnswer
	v.IsLast = e.current == e.lastIndex()
	return v
}

// Snapshot is the serialisable form of an attempt.
type Snapshot struct {
	QuestionnaireID string        `json:"questionnaireId"`
	Current         int           `json:"current"`
	Answers         []int         `json:"answers"`
	Completed       bool          `json:"completed"`
	Policy          RetreatPolicy `json:"policy"`
}

// Snapshot captures the engine state.
func (e *Engine) Snapshot() Snapshot {
	answers := make([]int, len(e.answers))
	copy(answers, e.answers)
	return Snapshot{
		QuestionnaireID: e.questionnaire.ID,
		Current:         e.current,
		Answers:         answers,
		Completed:       e.result != nil,
		Policy:          e.policy,
	}
}

// Restore rebuilds an engine from a snapshot taken against the same questionnaire.
func Restore(q domain.Questionnaire, s Snapshot) (*Engine, error) {
	if s.QuestionnaireID != q.ID {
		return nil, fmt.Errorf("snapshot for %q restored against %q", s.QuestionnaireID, q.ID)
	}
	e, err := New(q, WithRetreatPolicy(s.Policy))
	if err != nil {
		return nil, err
	}
	if len(s.Answers) != len(q.Questions) {
		return nil, fmt.Errorf("snapshot has %d answers for %d questions", len(s.Answers), len(q.Questions))
	}
	if s.Current < 0 || s.Current >= len(q.Questions) {
		return nil, fmt.Errorf("snapshot position %d: %w", s.Current, domain.ErrQuestionOutOfRange)
	}
	for i, a := range s.Answers {
		if a == noAnswer {
			continue
		}
		if err := e.SelectAnswer(i, a); err != nil {
			return nil, fmt.Errorf("snapshot answer %d: %w", i, err)
		}
	}
	e.current = s.Current
	if s.Completed {
		e.complete()
	}
	return e, nil
}
