package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// Card grid sizing
const (
	minCardWidth = 32
	headerHeight = 2
)

// renderSection renders the visible section into the content column
func (m Model) renderSection(height int) string {
	switch m.section {
	case SectionDashboard:
		return m.renderDashboard()
	case SectionBooks:
		return m.renderBooks(height)
	case SectionMembers:
		return m.renderMembers(height)
	case SectionLoans:
		return m.renderLoans(height)
	case SectionAddBook:
		return m.renderAddForm(m.bookForm.View())
	case SectionAddMember:
		return m.renderAddForm(m.memberForm.View())
	}
	return ""
}

func (m Model) renderHeader(title, detail string) string {
	head := styles.SectionTitle.Render(title)
	if detail != "" {
		head = lipgloss.JoinHorizontal(lipgloss.Top, head, "  ", styles.DimStyle.Render(detail))
	}
	return head
}

// renderListState returns the loading, error or empty panel for a list,
// or false when the list has items to show. A failed load replaces the
// section content even when an older snapshot is still held.
func (m Model) renderListState(r state.Resource, kind components.Kind) (string, bool) {
	width := m.contentWidth()
	lv := m.lists[r]
	switch {
	case lv.status == listFailed:
		return components.RenderError(kind, lv.err, width), true
	case lv.status == listLoading && !m.snap.Loaded(r):
		return components.RenderLoading(kind, m.spinnerFrame, width), true
	case m.snap.Loaded(r) && m.listLen(r) == 0:
		return components.RenderEmpty(kind, width), true
	case !m.snap.Loaded(r):
		return components.RenderLoading(kind, m.spinnerFrame, width), true
	}
	return "", false
}

// listDetail describes a list header: item count plus a spinner while a
// reload is outstanding or a mark when it failed
func (m Model) listDetail(r state.Resource, count string) string {
	switch m.lists[r].status {
	case listLoading:
		return components.Spinner(m.spinnerFrame) + " " + count
	case listFailed:
		return styles.ErrorStyle.Render("✗") + " " + count
	}
	return count
}

func (m Model) renderDashboard() string {
	width := m.contentWidth()
	head := m.renderHeader("Dashboard", "")

	if m.dash.status != listReady {
		return lipgloss.JoinVertical(lipgloss.Left, head,
			components.Spinner(m.spinnerFrame)+" "+styles.DimStyle.Render("Loading dashboard..."))
	}

	s := m.dash.summary
	statWidth := max(width/4, 14)
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		components.RenderStat("Total Books", s.TotalBooks, statWidth),
		components.RenderStat("Members", s.TotalMembers, statWidth),
		components.RenderStat("Active Loans", s.ActiveLoans, statWidth),
		components.RenderStat("Overdue", s.OverdueLoans, statWidth),
	)

	colWidth := max(width/2-2, 20)

	activity := []string{styles.SectionTitle.Render("Recent Activity")}
	if len(s.Activity) == 0 {
		activity = append(activity, components.RenderNote("No recent activity"))
	}
	for _, loan := range s.Activity {
		activity = append(activity, components.RenderActivityItem(loan, colWidth))
	}

	popular := []string{styles.SectionTitle.Render("Popular Books")}
	if len(s.Popular) == 0 {
		popular = append(popular, components.RenderNote("No books in library"))
	}
	for _, book := range s.Popular {
		popular = append(popular, components.RenderPopularBook(book, colWidth), "")
	}

	feeds := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colWidth+2).Render(lipgloss.JoinVertical(lipgloss.Left, activity...)),
		lipgloss.NewStyle().Width(colWidth).Render(lipgloss.JoinVertical(lipgloss.Left, popular...)),
	)

	parts := []string{head, stats}
	if s.Degraded() {
		parts = append(parts, styles.WarningStyle.Render("Some figures are sample values; the backend could not be reached."))
	}
	parts = append(parts, "", feeds)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderBooks(height int) string {
	r := state.ResourceBooks
	head := m.renderHeader("Books", m.listDetail(r, "Page "+strconv.Itoa(m.snap.Page)))
	if panel, ok := m.renderListState(r, components.KindBooks); ok {
		return lipgloss.JoinVertical(lipgloss.Left, head, panel)
	}

	cols, cardWidth := m.gridColumns()
	cursor := m.lists[r].cursor
	cards := make([]string, len(m.snap.Books))
	for i, b := range m.snap.Books {
		cards[i] = components.RenderBookCard(b, i == cursor, cardWidth)
	}
	grid := scrollRows(gridRows(cards, cols), cursor/cols, height-headerHeight)
	return lipgloss.JoinVertical(lipgloss.Left, head, grid)
}

func (m Model) renderMembers(height int) string {
	r := state.ResourceMembers
	head := m.renderHeader("Members", m.listDetail(r, fmt.Sprintf("%d members", len(m.snap.Members))))
	if panel, ok := m.renderListState(r, components.KindMembers); ok {
		return lipgloss.JoinVertical(lipgloss.Left, head, panel)
	}

	width := m.contentWidth() - 2
	cursor := m.lists[r].cursor
	rows := make([]string, len(m.snap.Members))
	for i, mb := range m.snap.Members {
		rows[i] = components.RenderMemberRow(mb, m.snap.ActiveLoansFor(mb.ID), i == cursor, width)
	}
	table := scrollRows(rows, cursor, height-headerHeight-1)
	return lipgloss.JoinVertical(lipgloss.Left, head, components.MemberHeader(width), table)
}

func (m Model) renderLoans(height int) string {
	r := state.ResourceLoans
	head := m.renderHeader("Loans", m.listDetail(r, fmt.Sprintf("%d loans", len(m.snap.Loans))))
	if panel, ok := m.renderListState(r, components.KindLoans); ok {
		return lipgloss.JoinVertical(lipgloss.Left, head, panel)
	}

	now := m.now()
	cols, cardWidth := m.gridColumns()
	cursor := m.lists[r].cursor
	cards := make([]string, len(m.snap.Loans))
	for i, loan := range m.snap.Loans {
		cards[i] = components.RenderLoanCard(loan, now, i == cursor, cardWidth)
	}
	grid := scrollRows(gridRows(cards, cols), cursor/cols, height-headerHeight)
	return lipgloss.JoinVertical(lipgloss.Left, head, grid)
}

func (m Model) renderAddForm(form string) string {
	hint := styles.HelpKeyStyle.Render("ctrl+s") + " " + styles.HelpDescStyle.Render("save") + "  " +
		styles.HelpKeyStyle.Render("esc") + " " + styles.HelpDescStyle.Render("cancel")
	return lipgloss.JoinVertical(lipgloss.Left, form, "", hint)
}

// gridColumns fits as many cards of at least minCardWidth as the
// content column allows
func (m Model) gridColumns() (cols, cardWidth int) {
	width := m.contentWidth()
	cols = max(width/minCardWidth, 1)
	return cols, width / cols
}

// gridRows joins cards into rows of cols cards
func gridRows(cards []string, cols int) []string {
	var rows []string
	for i := 0; i < len(cards); i += cols {
		end := min(i+cols, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return rows
}

// scrollRows shows as many rows as fit in height, starting early enough
// that the focus row is visible
func scrollRows(rows []string, focus, height int) string {
	if len(rows) == 0 {
		return ""
	}
	focus = min(max(focus, 0), len(rows)-1)
	height = max(height, 1)

	start := 0
	used := 0
	for i := focus; i >= 0; i-- {
		h := lipgloss.Height(rows[i])
		if used+h > height && i != focus {
			break
		}
		used += h
		start = i
	}

	end := focus + 1
	for end < len(rows) {
		h := lipgloss.Height(rows[end])
		if used+h > height {
			break
		}
		used += h
		end++
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows[start:end]...)
}

// renderFooter renders the single-line footer: the search prompt when
// open, otherwise the key hints of the current section
func (m Model) renderFooter() string {
	if m.search.active {
		return m.search.View(m.Width)
	}

	var bindings []key.Binding
	switch m.section {
	case SectionBooks:
		bindings = []key.Binding{Keys.Add, Keys.Edit, Keys.Delete, Keys.PrevPage, Keys.NextPage, Keys.Search}
	case SectionMembers:
		bindings = []key.Binding{Keys.Add, Keys.Edit, Keys.Delete, Keys.Search}
	case SectionLoans:
		bindings = []key.Binding{Keys.NewLoan, Keys.Return, Keys.Search}
	case SectionDashboard:
		bindings = []key.Binding{Keys.NewLoan, Keys.Refresh}
	case SectionAddBook, SectionAddMember:
		bindings = []key.Binding{Keys.Escape}
	}
	bindings = append(bindings, Keys.Theme, Keys.Help, Keys.Quit)

	hints := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		hints[i] = styles.HelpKeyStyle.Render(h.Key) + " " + styles.HelpDescStyle.Render(h.Desc)
	}
	return lipgloss.NewStyle().MaxWidth(m.Width).Render(" " + strings.Join(hints, "  "))
}

// renderHelp renders the key reference box
func (m Model) renderHelp() string {
	help := `
NAVIGATION                      ACTIONS
  1-6        Go to section         a      Add book/member
  tab        Next section          e      Edit selected
  S-tab      Previous section      x      Delete selected
  j/k        Next/previous item    n      New loan
  [ / ]      Previous/next page    m      Mark loan returned
                                   r      Refresh / retry

OTHER
  /          Search current section
  t          Toggle light/dark theme
  C-x        Dismiss newest notification
  esc        Close form or dialog
  q          Quit

Press any key to return...
`
	return styles.ModalStyle.Render(help)
}
