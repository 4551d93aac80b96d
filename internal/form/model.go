package form

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/TFMV/resub/internal/config"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle   = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Width(22).Bold(true).Foreground(lipgloss.Color("205"))
	valueStyle   = lipgloss.NewStyle()
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	docStyle     = lipgloss.NewStyle().Margin(1, 2)
	cursorGlyph  = " "
	focusPointer = "> "
)

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Delete key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("enter", "tab", "down"),
		key.WithHelp("enter/tab", "next field, submit on the last"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Delete: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "delete"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// EventForKey maps a key press to a form event. ok is false for keys the
// form ignores.
func EventForKey(msg tea.KeyMsg) (ev Event, ok bool) {
	switch {
	case key.Matches(msg, keys.Cancel):
		return Cancel, true
	case key.Matches(msg, keys.Next):
		return Next, true
	case key.Matches(msg, keys.Prev):
		return Prev, true
	case key.Matches(msg, keys.Delete):
		return Backspace, true
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return Event{}, false
		}
		return Insert(string(msg.Runes)), true
	case tea.KeySpace:
		return Insert(" "), true
	}
	return Event{}, false
}

// Model is the bubbletea front end over State.
type Model struct {
	state State
}

// NewModel returns a model editing the given initial field values.
func NewModel(fields [NumFields]string) Model {
	return Model{state: NewState(fields)}
}

// State returns the current form state.
func (m Model) State() State { return m.state }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	ev, ok := EventForKey(keyMsg)
	if !ok {
		return m, nil
	}
	m.state = m.state.Apply(ev)
	if m.state.Done() {
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.state.Done() {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("resub: regular-expression search and replace"))
	b.WriteString("\n\n")

	for i := 0; i < NumFields; i++ {
		pointer := "  "
		label := labelStyle.Render(Labels[i])
		value := valueStyle.Render(m.state.Fields[i])
		if i == m.state.Focus {
			pointer = focusPointer
			label = focusStyle.Render(Labels[i])
			value += cursorStyle.Render(cursorGlyph)
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, label, value)
	}

	b.WriteString("\n")
	help := []string{}
	for _, binding := range []key.Binding{keys.Next, keys.Prev, keys.Cancel} {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return docStyle.Render(b.String())
}

// Fields renders params as the form's initial text.
func Fields(p config.Params) [NumFields]string {
	return [NumFields]string{
		FieldRoot:        p.Root,
		FieldInclude:     config.JoinList(p.Include),
		FieldExclude:     config.JoinList(p.Exclude),
		FieldPattern:     p.Pattern,
		FieldReplacement: p.Replacement,
	}
}

// ParamsFromFields parses submitted field text.
func ParamsFromFields(fields [NumFields]string) (config.Params, error) {
	include, err := config.ParseExtensions(fields[FieldInclude])
	if err != nil {
		return config.Params{}, fmt.Errorf("%s: %w", Labels[FieldInclude], err)
	}
	exclude, err := config.ParseList(fields[FieldExclude])
	if err != nil {
		return config.Params{}, fmt.Errorf("%s: %w", Labels[FieldExclude], err)
	}
	return config.Params{
		Root:        strings.TrimSpace(fields[FieldRoot]),
		Include:     include,
		Exclude:     exclude,
		Pattern:     fields[FieldPattern],
		Replacement: fields[FieldReplacement],
	}, nil
}

// Run shows the form and blocks until it is submitted or cancelled.
// ok is false when the user cancelled; no parameters are returned then.
func Run(ctx context.Context, defaults config.Params, in io.Reader, out io.Writer) (params config.Params, ok bool, err error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(NewModel(Fields(defaults)), opts...).Run()
	if err != nil {
		return config.Params{}, false, fmt.Errorf("running form: %w", err)
	}

	m, isModel := final.(Model)
	if !isModel || m.state.Status != Submitted {
		return config.Params{}, false, nil
	}
	params, err = ParamsFromFields(m.state.Fields)
	if err != nil {
		return config.Params{}, false, err
	}
	return params, true, nil
}
