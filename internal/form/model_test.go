package form

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/TFMV/resub/internal/config"
)

func TestEventForKey(t *testing.T) {
	testCases := []struct {
		name     string
		msg      tea.KeyMsg
		expected Event
		ok       bool
	}{
		{"runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("é")}, Insert("é"), true},
		{"paste", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a b"), Paste: true}, Insert("a b"), true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, Insert(" "), true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, Next, true},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, Next, true},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, Prev, true},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, Backspace, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, Cancel, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, Cancel, true},
		{"alt+runes", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x"), Alt: true}, Event{}, false},
		{"ctrl+a", tea.KeyMsg{Type: tea.KeyCtrlA}, Event{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ev, ok := EventForKey(tc.msg)
			if ok != tc.ok || ev != tc.expected {
				t.Errorf("EventForKey = (%+v, %v), expected (%+v, %v)", ev, ok, tc.expected, tc.ok)
			}
		})
	}
}

func TestModelUpdate(t *testing.T) {
	var m tea.Model = NewModel([NumFields]string{"src"})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if cmd != nil {
		t.Error("Expected no command while editing")
	}
	if got := m.(Model).State().Fields[FieldRoot]; got != "src2" {
		t.Errorf("Expected root %q, got %q", "src2", got)
	}

	// Non-key messages are ignored.
	m, cmd = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil {
		t.Error("Expected no command for window size message")
	}

	for i := 0; i < NumFields-1; i++ {
		m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if cmd != nil {
			t.Fatalf("Unexpected command after %d fields", i+1)
		}
	}
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected quit command on submit")
	}
	if _, isQuit := cmd().(tea.QuitMsg); !isQuit {
		t.Error("Expected tea.QuitMsg")
	}
	if m.(Model).State().Status != Submitted {
		t.Errorf("Expected submitted, got %s", m.(Model).State().Status)
	}
	if m.View() != "" {
		t.Error("Expected empty view after submit")
	}
}

func TestModelCancel(t *testing.T) {
	m, cmd := NewModel([NumFields]string{}).Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("Expected quit command on cancel")
	}
	if m.(Model).State().Status != Cancelled {
		t.Errorf("Expected cancelled, got %s", m.(Model).State().Status)
	}
}

func TestModelView(t *testing.T) {
	view := NewModel([NumFields]string{"src", "swift"}).View()
	for _, label := range Labels {
		if !strings.Contains(view, label) {
			t.Errorf("View missing label %q", label)
		}
	}
	if !strings.Contains(view, "swift") {
		t.Error("View missing field value")
	}
}

func TestFieldsRoundTrip(t *testing.T) {
	params := config.Params{
		Root:        "src",
		Include:     []string{"swift", "txt"},
		Exclude:     []string{"private", "build output"},
		Pattern:     `Constants\.c(\d+)\.rawValue`,
		Replacement: "Constants.c$1",
	}

	got, err := ParamsFromFields(Fields(params))
	if err != nil {
		t.Fatalf("ParamsFromFields failed: %v", err)
	}
	if diff := cmp.Diff(params, got); diff != "" {
		t.Errorf("Round trip mismatch (-expected +got):\n%s", diff)
	}
}

func TestParamsFromFields(t *testing.T) {
	fields := [NumFields]string{
		FieldRoot:        "  ./src ",
		FieldInclude:     ".swift, txt",
		FieldExclude:     "",
		FieldPattern:     " a ",
		FieldReplacement: "",
	}

	got, err := ParamsFromFields(fields)
	if err != nil {
		t.Fatalf("ParamsFromFields failed: %v", err)
	}
	if got.Root != "./src" {
		t.Errorf("Expected trimmed root, got %q", got.Root)
	}
	if diff := cmp.Diff([]string{"swift", "txt"}, got.Include); diff != "" {
		t.Errorf("Include mismatch (-expected +got):\n%s", diff)
	}
	if len(got.Exclude) != 0 {
		t.Errorf("Expected no exclusions, got %q", got.Exclude)
	}
	if got.Pattern != " a " {
		t.Errorf("Pattern must be kept verbatim, got %q", got.Pattern)
	}

	fields[FieldExclude] = `"unterminated`
	if _, err := ParamsFromFields(fields); err == nil {
		t.Error("Expected error for malformed exclusion list")
	}
}
