package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

const pickerVisible = 5

// Option is one choice of a Picker
type Option struct {
	ID    string
	Label string
}

// Picker selects one option by typing part of its label
type Picker struct {
	label   string
	input   textinput.Model
	options []Option
	labels  []string
	ranked  []int // Indexes into options, best match first
	cursor  int
	focused bool
	width   int
}

// NewPicker creates an empty picker
func NewPicker(label, placeholder string) Picker {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 60
	return Picker{label: label, input: ti, width: 40}
}

// SetOptions replaces the choices and resets the query
func (p *Picker) SetOptions(opts []Option) {
	p.options = opts
	p.labels = make([]string, len(opts))
	for i, o := range opts {
		p.labels[i] = o.Label
	}
	p.input.SetValue("")
	p.rank()
}

// SetWidth sets the rendered width
func (p *Picker) SetWidth(width int) {
	p.width = max(width, 20)
	p.input.Width = p.width - 4
}

// Focus focuses the query input
func (p *Picker) Focus() tea.Cmd {
	p.focused = true
	return p.input.Focus()
}

// Blur removes focus
func (p *Picker) Blur() {
	p.focused = false
	p.input.Blur()
}

// Len returns the number of options currently matching the query
func (p Picker) Len() int {
	return len(p.ranked)
}

// Selected returns the highlighted option
func (p Picker) Selected() (Option, bool) {
	if p.cursor < 0 || p.cursor >= len(p.ranked) {
		return Option{}, false
	}
	return p.options[p.ranked[p.cursor]], true
}

func (p *Picker) rank() {
	p.ranked = service.RankLabels(p.labels, p.input.Value())
	p.cursor = 0
}

// Update handles option movement and query typing
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.ranked)-1 {
				p.cursor++
			}
			return p, nil
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.rank()
	}
	return p, cmd
}

// View renders the query line and a window of matching options
func (p Picker) View() string {
	p.input.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	p.input.PlaceholderStyle = styles.DimStyle
	p.input.PromptStyle = styles.AccentStyle

	label := styles.DimStyle.Render(p.label)
	box := styles.InactiveBorder
	if p.focused {
		label = styles.AccentStyle.Render(p.label)
		box = styles.ActiveBorder
	}

	lines := []string{p.input.View()}
	if len(p.ranked) == 0 {
		lines = append(lines, styles.DimStyle.Render("  No matches"))
	}

	start := 0
	if p.cursor >= pickerVisible {
		start = p.cursor - pickerVisible + 1
	}
	end := min(start+pickerVisible, len(p.ranked))
	query := strings.ToLower(strings.TrimSpace(p.input.Value()))
	for i := start; i < end; i++ {
		text := styles.Truncate(p.labels[p.ranked[i]], p.width-6)
		lines = append(lines, renderOption(text, query, i == p.cursor))
	}

	return lipgloss.JoinVertical(lipgloss.Left, label, box.Width(p.width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
}

// renderOption highlights the characters matched by query
func renderOption(text, query string, selected bool) string {
	prefix := "  "
	if selected {
		prefix = styles.AccentStyle.Render("▸ ")
	}

	var matched map[int]bool
	if query != "" {
		if matches := fuzzy.Find(query, []string{strings.ToLower(text)}); len(matches) > 0 {
			matched = make(map[int]bool, len(matches[0].MatchedIndexes))
			for _, idx := range matches[0].MatchedIndexes {
				matched[idx] = true
			}
		}
	}

	base := styles.SubtitleStyle
	if selected {
		base = styles.TitleStyle
	}
	if matched == nil {
		return prefix + base.Render(text)
	}

	// MatchedIndexes are byte offsets into the lowered text
	var b strings.Builder
	lowered := strings.ToLower(text)
	if len(lowered) != len(text) {
		return prefix + base.Render(text)
	}
	for i, r := range text {
		if matched[i] {
			b.WriteString(styles.MatchHighlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return prefix + b.String()
}
