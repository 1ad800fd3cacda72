// Package quiz holds the questionnaire state machine, the result presenter and
// the one-shot handoff codec. Nothing here touches storage or transport.
package quiz

import (
	"fmt"

	"mindcheck-service/internal/domain"
)

// RetreatPolicy decides what happens to answers when navigating back.
type RetreatPolicy int

const (
	// PreserveOnRetreat keeps every answer so users can revise freely.
	PreserveOnRetreat RetreatPolicy = iota
	// DiscardOnRetreat clears the answer of the question being left.
	DiscardOnRetreat
)

const noAnswer = -1

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRetreatPolicy selects the back-navigation behaviour.
func WithRetreatPolicy(p RetreatPolicy) EngineOption {
	return func(e *Engine) { e.policy = p }
}

// Engine walks a single user through a questionnaire. It is not safe for
// concurrent use; callers serialise access per attempt.
type Engine struct {
	questionnaire domain.Questionnaire
	answers       []int
	current       int
	result        *domain.Result
	policy        RetreatPolicy
}

// New starts an attempt at the first question with no answers.
func New(q domain.Questionnaire, opts ...EngineOption) (*Engine, error) {
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("questionnaire %q has no questions: %w", q.ID, domain.ErrQuizNotFound)
	}
	e := &Engine{questionnaire: q}
	for _, opt := range opts {
		opt(e)
	}
	e.reset()
	return e, nil
}

func (e *Engine) reset() {
	e.answers = make([]int, len(e.questionnaire.Questions))
	for i := range e.answers {
		e.answers[i] = noAnswer
	}
	e.current = 0
	e.result = nil
}

// SelectAnswer records optionIndex for the question at index. It never moves
// the current position.
func (e *Engine) SelectAnswer(index, optionIndex int) error {
	if e.result != nil {
		return domain.ErrQuizCompleted
	}
	if index < 0 || index >= len(e.questionnaire.Questions) {
		return domain.ErrQuestionOutOfRange
	}
	if optionIndex < 0 || optionIndex >= len(e.questionnaire.Questions[index].Options) {
		return domain.ErrOptionOutOfRange
	}
	e.answers[index] = optionIndex
	return nil
}

// Advance moves to the next question, or completes the quiz when called on the
// last one.
func (e *Engine) Advance() error {
	if e.result != nil {
		return domain.ErrQuizCompleted
	}
	if e.answers[e.current] == noAnswer {
		return domain.ErrNoSelection
	}
	if e.current == e.lastIndex() {
		e.complete()
		return nil
	}
	e.current++
	return nil
}

// Retreat moves back one question. At the first question it fails with
// ErrBoundary and leaves the state untouched.
func (e *Engine) Retreat() error {
	if e.result != nil {
		return domain.ErrQuizCompleted
	}
	if e.current == 0 {
		return domain.ErrBoundary
	}
	if e.policy == DiscardOnRetreat {
		e.answers[e.current] = noAnswer
	}
	e.current--
	return nil
}

// Submit scores every answered question and completes the quiz. The final
// question must be answered.
func (e *Engine) Submit() (domain.Result, error) {
	if e.result != nil {
		return *e.result, domain.ErrQuizCompleted
	}
	if e.answers[e.lastIndex()] == noAnswer {
		return domain.Result{}, domain.ErrNoSelection
	}
	e.complete()
	return *e.result, nil
}

// Restart discards all progress.
func (e *Engine) Restart() {
	e.reset()
}

// Result returns the outcome once the quiz is completed.
func (e *Engine) Result() (domain.Result, bool) {
	if e.result == nil {
		return domain.Result{}, false
	}
	return *e.result, true
}

// Current is the zero-based position of the active question.
func (e *Engine) Current() int { return e.current }

// Completed reports whether the quiz reached its terminal state.
func (e *Engine) Completed() bool { return e.result != nil }

// Answer returns the selected option index for a question, or -1.
func (e *Engine) Answer(index int) int {
	if index < 0 || index >= len(e.answers) {
		return noAnswer
	}
	return e.answers[index]
}

func (e *Engine) lastIndex() int {
	return len(e.questionnaire.Questions) - 1
}

func (e *Engine) complete() {
	tally := Score(e.questionnaire.Questions, e.answers)
	e.result = &domain.Result{Tally: tally, Dominant: Dominant(tally)}
}

// Score counts the categories of the selected options. Negative entries mean
// unanswered and are skipped.
func Score(questions []domain.Question, answers []int) domain.Tally {
	tally := domain.NewTally()
	for i, a := range answers {
		if i >= len(questions) || a < 0 || a >= len(questions[i].Options) {
			continue
		}
		tally[questions[i].Options[a].Category]++
	}
	return tally
}

// Dominant picks the category with the highest count. Ties go to the category
// listed first in domain.Categories.
func Dominant(t domain.Tally) domain.Category {
	best := domain.Categories[0]
	for _, c := range domain.Categories[1:] {
		if t[c] > t[best] {
			best = c
		}
	}
	return best
}
