// Package state tracks the in-progress registration form: raw values, the
// derived error map and validity, which fields the user touched, and the
// outcome message of the last submit attempt.
package state

import (
	"fmt"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Phase is the externally observable state of the form.
type Phase string

const (
	PhaseEditingInvalid Phase = "editing_invalid"
	PhaseEditingValid   Phase = "editing_valid"
	PhaseSubmitted      Phase = "submitted"
)

// MessageKind distinguishes success from failure outcomes.
type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageFailure MessageKind = "failure"
)

// Message is the transient outcome text of a submit attempt.
type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
}

// IsZero reports whether no message is set.
func (m Message) IsZero() bool {
	return m == Message{}
}

// TouchedSet records fields that received input at least once.
type TouchedSet map[model.FieldName]struct{}

// Has reports whether field was touched.
func (t TouchedSet) Has(field model.FieldName) bool {
	_, ok := t[field]
	return ok
}

// Fields returns touched fields in display order.
func (t TouchedSet) Fields() []model.FieldName {
	out := make([]model.FieldName, 0, len(t))
	for _, field := range model.Fields() {
		if t.Has(field) {
			out = append(out, field)
		}
	}
	return out
}

// Derive computes the error map and overall validity for a full draft. Every
// field is validated, defaults included, so an untouched form is invalid.
func Derive(draft model.Draft) (validation.ErrorMap, bool) {
	errs := validation.ValidateDraft(draft)
	return errs, len(errs) == 0
}

// State owns the mutable form data. It is not safe for concurrent use; a
// single controller drives it one event at a time.
type State struct {
	draft   model.Draft
	errors  validation.ErrorMap
	touched TouchedSet
	valid   bool
	message Message
}

// New seeds the state with an initial draft and derives its errors. Restored
// drafts start untouched.
func New(initial model.Draft) *State {
	s := &State{
		draft:   initial,
		touched: make(TouchedSet),
	}
	s.recompute()
	return s
}

// Apply records an edit of field to value: the draft is updated, the field is
// marked touched, errors and validity are re-derived from the whole draft and
// any outcome message is cleared. A rejected value leaves the state as is.
func (s *State) Apply(field model.FieldName, value any) error {
	if s == nil {
		return fmt.Errorf("state: state is nil")
	}
	next, err := s.draft.With(field, value)
	if err != nil {
		return err
	}
	s.draft = next
	s.touched[field] = struct{}{}
	s.recompute()
	s.message = Message{}
	return nil
}

// Reset restores the all-default draft and forgets touched fields.
func (s *State) Reset() {
	s.draft = model.Draft{}
	s.touched = make(TouchedSet)
	s.recompute()
	s.message = Message{}
}

// SetMessage replaces the outcome message.
func (s *State) SetMessage(msg Message) {
	s.message = msg
}

func (s *State) recompute() {
	s.errors, s.valid = Derive(s.draft)
}

// Draft returns the current values.
func (s *State) Draft() model.Draft { return s.draft }

// Valid reports whether every field passes validation.
func (s *State) Valid() bool { return s.valid }

// Message returns the current outcome message.
func (s *State) Message() Message { return s.message }

// Errors returns a copy of the full error map, touched or not.
func (s *State) Errors() validation.ErrorMap { return s.errors.Clone() }

// Touched reports whether field received input since the last reset.
func (s *State) Touched(field model.FieldName) bool { return s.touched.Has(field) }

// VisibleErrors returns only the errors of touched fields, which is what a
// presentation layer should display.
func (s *State) VisibleErrors() validation.ErrorMap {
	out := make(validation.ErrorMap)
	for field, msg := range s.errors {
		if s.touched.Has(field) {
			out[field] = msg
		}
	}
	return out
}

// Phase reports the state machine position.
func (s *State) Phase() Phase {
	switch {
	case s.message.Kind == MessageSuccess:
		return PhaseSubmitted
	case s.valid:
		return PhaseEditingValid
	default:
		return PhaseEditingInvalid
	}
}

// Snapshot is a read-only copy of the state for presentation layers.
type Snapshot struct {
	Draft         model.Draft         `json:"draft"`
	Errors        validation.ErrorMap `json:"errors"`
	VisibleErrors validation.ErrorMap `json:"visibleErrors"`
	Touched       []model.FieldName   `json:"touched"`
	Valid         bool                `json:"valid"`
	Message       Message             `json:"message"`
	Phase         Phase               `json:"phase"`
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Draft:         s.draft,
		Errors:        s.Errors(),
		VisibleErrors: s.VisibleErrors(),
		Touched:       s.touched.Fields(),
		Valid:         s.valid,
		Message:       s.message,
		Phase:         s.Phase(),
	}
}
