package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// FieldSpec describes one text field of a Form
type FieldSpec struct {
	Key         string
	Label       string
	Placeholder string
	Value       string
	CharLimit   int
}

type field struct {
	key   string
	label string
	input textinput.Model
}

// Form is a vertical stack of labelled text inputs
type Form struct {
	title  string
	fields []field
	focus  int
	width  int
}

// NewForm creates a form with the first field focused
func NewForm(title string, specs ...FieldSpec) Form {
	f := Form{title: title, width: 40}
	for _, spec := range specs {
		ti := textinput.New()
		ti.Placeholder = spec.Placeholder
		ti.CharLimit = spec.CharLimit
		if ti.CharLimit == 0 {
			ti.CharLimit = 120
		}
		ti.Prompt = ""
		ti.SetValue(spec.Value)
		f.fields = append(f.fields, field{key: spec.Key, label: spec.Label, input: ti})
	}
	f.restyle()
	f.setFocus(0)
	return f
}

// SetWidth sets the width of the input fields
func (f *Form) SetWidth(width int) {
	f.width = max(width, 20)
	for i := range f.fields {
		f.fields[i].input.Width = f.width - 2
	}
}

// Value returns the trimmed value of a field
func (f Form) Value(key string) string {
	for _, fl := range f.fields {
		if fl.key == key {
			return strings.TrimSpace(fl.input.Value())
		}
	}
	return ""
}

// Reset clears every field and focuses the first one
func (f *Form) Reset() {
	for i := range f.fields {
		f.fields[i].input.SetValue("")
	}
	f.setFocus(0)
}

// Focused returns the key of the focused field
func (f Form) Focused() string {
	if len(f.fields) == 0 {
		return ""
	}
	return f.fields[f.focus].key
}

func (f *Form) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	for j := range f.fields {
		if j == f.focus {
			f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
}

// restyle picks up the active theme colors
func (f *Form) restyle() {
	for i := range f.fields {
		f.fields[i].input.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
		f.fields[i].input.PlaceholderStyle = styles.DimStyle
		f.fields[i].input.Cursor.Style = styles.AccentStyle
	}
}

// Update handles field navigation and typing.
// submitted is true on ctrl+s, or on enter in the last field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return f, nil, false
		case "ctrl+s":
			return f, nil, true
		case "enter":
			if f.focus == len(f.fields)-1 {
				return f, nil, true
			}
			f.setFocus(f.focus + 1)
			return f, nil, false
		}
	}

	if len(f.fields) == 0 {
		return f, nil, false
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd, false
}

// View renders the form
func (f Form) View() string {
	f.restyle()

	lines := []string{styles.ModalTitleStyle.Render(f.title)}
	for i, fl := range f.fields {
		label := styles.DimStyle.Render(fl.label)
		box := styles.InactiveBorder
		if i == f.focus {
			label = styles.AccentStyle.Render(fl.label)
			box = styles.ActiveBorder
		}
		lines = append(lines, label, box.Width(f.width).Render(fl.input.View()))
	}
	lines = append(lines, "", actionHints("tab", "Next field", "ctrl+s", "Save", "esc", "Cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
