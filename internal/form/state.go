// Package form collects the five run parameters through an interactive
// terminal form.
//
// The form's behavior lives in State.Apply, a pure function of the current
// state and one input event; the bubbletea program in model.go only maps
// keys to events and draws the result.
package form

import "unicode/utf8"

// Field indexes, in focus order.
const (
	FieldRoot = iota
	FieldInclude
	FieldExclude
	FieldPattern
	FieldReplacement

	NumFields
)

// Labels are the field captions, indexed by field.
var Labels = [NumFields]string{
	FieldRoot:        "Root path",
	FieldInclude:     "Included extensions",
	FieldExclude:     "Excluded names",
	FieldPattern:     "Search pattern",
	FieldReplacement: "Replacement",
}

// Status is the state machine's phase.
type Status int

const (
	Editing Status = iota
	Submitted
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	default:
		return "editing"
	}
}

// EventKind enumerates form inputs.
type EventKind int

const (
	EventInsert EventKind = iota
	EventBackspace
	EventNext
	EventPrev
	EventCancel
)

// Event is one input. Text is only used by EventInsert.
type Event struct {
	Kind EventKind
	Text string
}

// Insert appends text to the focused field.
func Insert(text string) Event { return Event{Kind: EventInsert, Text: text} }

var (
	Backspace = Event{Kind: EventBackspace}
	Next      = Event{Kind: EventNext}
	Prev      = Event{Kind: EventPrev}
	Cancel    = Event{Kind: EventCancel}
)

// State is the form's fields plus focus. It is a value; Apply returns a new one.
type State struct {
	Fields [NumFields]string
	Focus  int
	Status Status
}

// NewState returns an editing state focused on the first field, pre-filled
// with defaults.
func NewState(defaults [NumFields]string) State {
	return State{Fields: defaults}
}

// Done reports whether the state is terminal.
func (s State) Done() bool {
	return s.Status != Editing
}

// Apply returns the state that follows ev. Terminal states absorb all events.
func (s State) Apply(ev Event) State {
	if s.Done() {
		return s
	}

	switch ev.Kind {
	case EventInsert:
		s.Fields[s.Focus] += ev.Text
	case EventBackspace:
		field := s.Fields[s.Focus]
		if field != "" {
			_, size := utf8.DecodeLastRuneInString(field)
			s.Fields[s.Focus] = field[:len(field)-size]
		}
	case EventNext:
		if s.Focus == NumFields-1 {
			s.Status = Submitted
		} else {
			s.Focus++
		}
	case EventPrev:
		if s.Focus > 0 {
			s.Focus--
		}
	case EventCancel:
		s.Status = Cancelled
	}
	return s
}
