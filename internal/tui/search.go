package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/tui/components"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// searchPrompt is the footer query line opened with /
type searchPrompt struct {
	active bool
	input  textinput.Model
}

func newSearchPrompt() searchPrompt {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "Search..."
	ti.CharLimit = 80
	return searchPrompt{input: ti}
}

// Open shows the prompt with an empty query
func (s *searchPrompt) Open() tea.Cmd {
	s.active = true
	s.input.SetValue("")
	return s.input.Focus()
}

// Close hides the prompt
func (s *searchPrompt) Close() {
	s.active = false
	s.input.Blur()
}

func (s searchPrompt) View(width int) string {
	s.input.PromptStyle = styles.AccentStyle
	s.input.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	s.input.PlaceholderStyle = styles.DimStyle
	s.input.Width = max(width-4, 10)
	return s.input.View()
}

// handleSearchKey edits the query; enter runs it, esc cancels
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.Close()
		return m, nil
	case "enter":
		query := strings.TrimSpace(m.search.input.Value())
		m.search.Close()
		if query == "" {
			return m, nil
		}
		return m.runSearch(query)
	}

	var cmd tea.Cmd
	m.search.input, cmd = m.search.input.Update(msg)
	return m, cmd
}

// runSearch counts snapshot matches in the current section and reports
// them in a toast. The lists themselves are never filtered.
func (m Model) runSearch(query string) (tea.Model, tea.Cmd) {
	var noun string
	var n int
	switch m.section {
	case SectionBooks:
		noun, n = "books", service.CountBooks(m.snap.Books, query)
	case SectionMembers:
		noun, n = "members", service.CountMembers(m.snap.Members, query)
	case SectionLoans:
		noun, n = "loans", service.CountLoans(m.snap.Loans, query)
	default:
		return m.toast(components.ToastInfo, fmt.Sprintf("Search for %q in %s", query, m.section.ID()))
	}

	if n == 0 {
		return m.toast(components.ToastWarning, fmt.Sprintf("No %s found for %q", noun, query))
	}
	return m.toast(components.ToastSuccess, fmt.Sprintf("Found %d %s for %q", n, noun, query))
}
