// Package session holds the question/answer state of one interactive run and
// the operations that are allowed to change it.
package session

import (
	"context"

	"github.com/diogo/askgemini/internal/config"
	"github.com/diogo/askgemini/internal/prompt"
)

// Status is the position of the session in its request lifecycle
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusAnswered
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusAnswered:
		return "answered"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// User-facing texts
const (
	// FailureMessage replaces the answer when the primary request fails
	FailureMessage = "*Something went wrong while fetching the answer.*"
	// EmptyQuestionNotice is shown when a blank question is submitted
	EmptyQuestionNotice = "Please enter a question."
)

// Entry is one question and the formatted answer it received
type Entry struct {
	Question string
	// Raw is the capped answer before formatting
	Raw string
	// Answer is Raw after markup formatting
	Answer string
}

// State is a point-in-time copy of the session for rendering
type State struct {
	ID          string
	Question    string
	Status      Status
	Loading     bool
	Answer      string
	Transcript  []Entry
	Suggestions []string
	Theme       config.Theme
	Notice      string
}

// Task is deferred work whose result is fed back through Controller.Apply.
// Tasks never touch session state themselves.
type Task func(ctx context.Context) Event

// Event is the result of a Task
type Event interface {
	isEvent()
}

// AnswerEvent carries the outcome of a primary answer request
type AnswerEvent struct {
	Question string
	Decision prompt.Decision
	// Raw is the capped answer text when Err is nil
	Raw string
	Err error
}

// SuggestionsEvent carries the outcome of a follow-up suggestion request
type SuggestionsEvent struct {
	// Generation identifies the answer the suggestions were derived from
	Generation  uint64
	Suggestions []string
	Err         error
}

func (AnswerEvent) isEvent()      {}
func (SuggestionsEvent) isEvent() {}
