package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// APIStatus is the backend reachability indicator
type APIStatus int

const (
	APIUnknown APIStatus = iota
	APIConnected
	APIDisconnected
)

func (s APIStatus) String() string {
	switch s {
	case APIConnected:
		return "Connected"
	case APIDisconnected:
		return "Disconnected"
	default:
		return "Checking..."
	}
}

// SidebarItem is one navigation entry
type SidebarItem struct {
	Key   string
	Label string
}

// Sidebar rows before the first item: padding and title
const SidebarHeaderRows = 3

// RenderSidebar renders the section list and the API status indicator.
// Item i is drawn on row SidebarHeaderRows+i.
func RenderSidebar(items []SidebarItem, selected int, status APIStatus, width, height int) string {
	inner := max(width-4, 10)

	lines := []string{styles.AccentStyle.Bold(true).Render("Stacks"), ""}
	for i, item := range items {
		parts := []styles.RowPart{
			{Text: item.Key + " "},
			{Text: item.Label},
		}
		lines = append(lines, styles.RenderListRow(parts, i == selected, inner))
	}

	dot := styles.DimStyle.Render("●")
	switch status {
	case APIConnected:
		dot = styles.SuccessStyle.Render("●")
	case APIDisconnected:
		dot = styles.ErrorStyle.Render("●")
	}
	lines = append(lines, "", dot+" "+styles.DimStyle.Render("API "+status.String()))

	return lipgloss.NewStyle().
		Padding(1, 2, 0, 2).
		Width(width).
		Height(max(height, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
