package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func applyAll(s State, events ...Event) State {
	for _, ev := range events {
		s = s.Apply(ev)
	}
	return s
}

func TestNewState(t *testing.T) {
	s := NewState([NumFields]string{"src", "swift txt"})
	if s.Focus != FieldRoot || s.Status != Editing {
		t.Errorf("Unexpected initial state: %+v", s)
	}
	if s.Fields[FieldRoot] != "src" || s.Fields[FieldInclude] != "swift txt" {
		t.Errorf("Defaults not applied: %q", s.Fields)
	}
}

func TestApplyTransitions(t *testing.T) {
	testCases := []struct {
		name     string
		start    State
		events   []Event
		expected State
	}{
		{
			name:     "insert appends to focused field",
			start:    State{Fields: [NumFields]string{"sr"}},
			events:   []Event{Insert("c")},
			expected: State{Fields: [NumFields]string{"src"}},
		},
		{
			name:     "insert pasted text",
			start:    State{Focus: FieldPattern},
			events:   []Event{Insert(`c(\d+)`)},
			expected: State{Focus: FieldPattern, Fields: [NumFields]string{FieldPattern: `c(\d+)`}},
		},
		{
			name:     "backspace removes last character",
			start:    State{Fields: [NumFields]string{"src"}},
			events:   []Event{Backspace},
			expected: State{Fields: [NumFields]string{"sr"}},
		},
		{
			name:     "backspace removes a whole multi-byte character",
			start:    State{Fields: [NumFields]string{"café"}},
			events:   []Event{Backspace},
			expected: State{Fields: [NumFields]string{"caf"}},
		},
		{
			name:     "backspace on empty field does nothing",
			start:    State{Focus: FieldExclude},
			events:   []Event{Backspace, Backspace},
			expected: State{Focus: FieldExclude},
		},
		{
			name:     "next advances focus",
			start:    State{},
			events:   []Event{Next, Next},
			expected: State{Focus: FieldExclude},
		},
		{
			name:     "next on last field submits",
			start:    State{Focus: FieldReplacement},
			events:   []Event{Next},
			expected: State{Focus: FieldReplacement, Status: Submitted},
		},
		{
			name:     "prev moves focus back",
			start:    State{Focus: FieldPattern},
			events:   []Event{Prev},
			expected: State{Focus: FieldExclude},
		},
		{
			name:     "prev on first field stays",
			start:    State{},
			events:   []Event{Prev, Prev},
			expected: State{},
		},
		{
			name:     "cancel from any field",
			start:    State{Focus: FieldInclude, Fields: [NumFields]string{"src"}},
			events:   []Event{Cancel},
			expected: State{Focus: FieldInclude, Fields: [NumFields]string{"src"}, Status: Cancelled},
		},
		{
			name:     "submitted absorbs events",
			start:    State{Focus: FieldReplacement, Status: Submitted},
			events:   []Event{Insert("x"), Backspace, Prev, Cancel},
			expected: State{Focus: FieldReplacement, Status: Submitted},
		},
		{
			name:     "cancelled absorbs events",
			start:    State{Status: Cancelled},
			events:   []Event{Next, Insert("x")},
			expected: State{Status: Cancelled},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := applyAll(tc.start, tc.events...)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Errorf("State mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestApplyDoesNotMutateReceiver(t *testing.T) {
	s := State{Fields: [NumFields]string{"src"}}
	_ = s.Apply(Insert("x"))
	_ = s.Apply(Next)
	if s.Fields[FieldRoot] != "src" || s.Focus != FieldRoot {
		t.Errorf("Receiver was modified: %+v", s)
	}
}

func TestFullSession(t *testing.T) {
	s := NewState([NumFields]string{})
	s = applyAll(s,
		Insert("src"), Next,
		Insert("swift"), Next,
		Insert("private"), Next,
		Insert("a(b"), Backspace, Backspace, Insert("(b)"), Next,
		Insert("$1"), Next,
	)

	expected := [NumFields]string{"src", "swift", "private", "a(b)", "$1"}
	if s.Status != Submitted {
		t.Fatalf("Expected submitted, got %s", s.Status)
	}
	if s.Fields != expected {
		t.Errorf("Expected fields %q, got %q", expected, s.Fields)
	}
}
