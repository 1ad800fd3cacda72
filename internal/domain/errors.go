package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSelection is returned when moving on from a question that has no answer yet.
	ErrNoSelection = errors.New("must choose an option before proceeding")
	// ErrBoundary is returned when retreating from the first question.
	ErrBoundary = errors.New("already at the first question")
	// ErrQuestionOutOfRange indicates a question index outside the questionnaire.
	ErrQuestionOutOfRange = errors.New("question index out of range")
	// ErrOptionOutOfRange indicates an option index outside the question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrQuizCompleted is returned for answer or navigation calls after submission.
	ErrQuizCompleted = errors.New("quiz already completed")
	// ErrQuizNotFound indicates the questionnaire content could not be loaded.
	ErrQuizNotFound = errors.New("questionnaire not found")
	// ErrAttemptNotFound indicates an unknown or expired quiz attempt.
	ErrAttemptNotFound = errors.New("quiz attempt not found")
	// ErrHandoffNotFound means the one-shot result was never written or was already read.
	ErrHandoffNotFound = errors.New("quiz result not found")
	// ErrUnknownCategory indicates a category name outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrChatBusy is returned when a message is sent while a reply is still pending.
	ErrChatBusy = errors.New("a reply is still being generated")
	// ErrChatNotFound indicates an unknown chat session.
	ErrChatNotFound = errors.New("chat session not found")
	// ErrEmptyMessage is returned for blank chat input.
	ErrEmptyMessage = errors.New("please enter a question")

	// ErrEmptyStory is returned when saving blank story text.
	ErrEmptyStory = errors.New("please write something before saving")
	// ErrStoryNotFound means the visitor has not saved a story.
	ErrStoryNotFound = errors.New("story not found")
)

// TransportError covers network failures, non-2xx responses and error objects
// returned by the generation endpoint.
type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0:
		return fmt.Sprintf("API returned status %d: %s", e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("Gemini API error: %s", e.Message)
	case e.Err != nil:
		return fmt.Sprintf("Sorry, I was unable to get a response from Gemini: %v", e.Err)
	default:
		return "Sorry, I was unable to get a response from Gemini"
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// SafetyBlockedError means the content policy rejected the prompt.
type SafetyBlockedError struct {
	Reason string
}

func (e *SafetyBlockedError) Error() string {
	return fmt.Sprintf("Your question was blocked by safety filters due to: %s. Please rephrase or ask about mental health awareness topics only.", e.Reason)
}

// EmptyResponseError is a well-formed success without a usable candidate.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "Gemini did not return a valid answer or the content was filtered. Please try rephrasing."
}
