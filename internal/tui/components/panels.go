package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// Kind is the entity type a list panel shows
type Kind int

const (
	KindBooks Kind = iota
	KindMembers
	KindLoans
)

type kindText struct {
	noun     string
	empty    string
	hint     string
	ctaKey   string
	ctaLabel string
}

var kinds = map[Kind]kindText{
	KindBooks: {
		noun:     "Books",
		empty:    "No Books Found",
		hint:     "Add your first book to start the library collection",
		ctaKey:   "a",
		ctaLabel: "Add First Book",
	},
	KindMembers: {
		noun:     "Members",
		empty:    "No Members Found",
		hint:     "Add your first library member",
		ctaKey:   "a",
		ctaLabel: "Add First Member",
	},
	KindLoans: {
		noun:     "Loans",
		empty:    "No Loans Found",
		hint:     "Create your first book loan",
		ctaKey:   "n",
		ctaLabel: "Create First Loan",
	},
}

// Noun returns the plural display name of the kind
func (k Kind) Noun() string {
	return kinds[k].noun
}

func panel(width int, lines ...string) string {
	return lipgloss.NewStyle().
		Width(max(width, 20)).
		Padding(2, 0).
		Align(lipgloss.Center).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

// RenderEmpty renders the no-data panel with its call to action
func RenderEmpty(kind Kind, width int) string {
	t := kinds[kind]
	return panel(width,
		styles.TitleStyle.Render(t.empty),
		styles.DimStyle.Render(t.hint),
		"",
		actionHints(t.ctaKey, t.ctaLabel),
	)
}

// RenderLoading renders the placeholder shown while a fetch is outstanding
func RenderLoading(kind Kind, frame int, width int) string {
	return panel(width, Spinner(frame)+" "+styles.DimStyle.Render("Loading "+strings.ToLower(kinds[kind].noun)+"..."))
}

// RenderError renders the failed-fetch panel with a retry action
func RenderError(kind Kind, message string, width int) string {
	return panel(width,
		styles.ErrorStyle.Bold(true).Render("Error Loading "+kinds[kind].noun),
		styles.DimStyle.Render(message),
		"",
		actionHints("r", "Retry"),
	)
}

// RenderNote renders a small dimmed placeholder inside a dashboard panel
func RenderNote(text string) string {
	return styles.DimStyle.Render(text)
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner returns one frame of the loading spinner
func Spinner(frame int) string {
	return styles.AccentStyle.Render(spinnerFrames[frame%len(spinnerFrames)])
}
