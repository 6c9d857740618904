package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/domain"
)

// Palette is the set of colors one theme is built from
type Palette struct {
	Accent  lipgloss.Color
	Surface lipgloss.Color // Modal and toast background
	Raised  lipgloss.Color // Selected row background
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dim     lipgloss.Color
	Green   lipgloss.Color
	Red     lipgloss.Color
	Yellow  lipgloss.Color
	Blue    lipgloss.Color
}

// Theme palettes
var (
	DarkPalette = Palette{
		Accent:  lipgloss.Color("#4F8EF7"),
		Surface: lipgloss.Color("#1F2937"),
		Raised:  lipgloss.Color("#374151"),
		Text:    lipgloss.Color("#F9FAFB"),
		Muted:   lipgloss.Color("#9CA3AF"),
		Dim:     lipgloss.Color("#6B7280"),
		Green:   lipgloss.Color("#10B981"),
		Red:     lipgloss.Color("#EF4444"),
		Yellow:  lipgloss.Color("#F59E0B"),
		Blue:    lipgloss.Color("#3B82F6"),
	}

	LightPalette = Palette{
		Accent:  lipgloss.Color("#2563EB"),
		Surface: lipgloss.Color("#F3F4F6"),
		Raised:  lipgloss.Color("#DBEAFE"),
		Text:    lipgloss.Color("#111827"),
		Muted:   lipgloss.Color("#4B5563"),
		Dim:     lipgloss.Color("#9CA3AF"),
		Green:   lipgloss.Color("#047857"),
		Red:     lipgloss.Color("#B91C1C"),
		Yellow:  lipgloss.Color("#B45309"),
		Blue:    lipgloss.Color("#1D4ED8"),
	}
)

// Active colors, set by Apply
var (
	Accent  lipgloss.Color
	Surface lipgloss.Color
	Raised  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dim     lipgloss.Color
	Green   lipgloss.Color
	Red     lipgloss.Color
	Yellow  lipgloss.Color
	Blue    lipgloss.Color
)

// Text styles
var (
	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	WarningStyle   lipgloss.Style
	InfoStyle      lipgloss.Style
	SectionTitle   lipgloss.Style
	MatchHighlight lipgloss.Style
)

// Panel, modal and badge styles
var (
	ActiveBorder    lipgloss.Style
	InactiveBorder  lipgloss.Style
	SidebarStyle    lipgloss.Style
	ModalStyle      lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ActiveBadge     lipgloss.Style
	OverdueBadge    lipgloss.Style
	ReturnedBadge   lipgloss.Style
	HelpKeyStyle    lipgloss.Style
	HelpDescStyle   lipgloss.Style
)

var current = domain.ThemeDark

func init() {
	Apply(domain.ThemeDark)
}

// Current returns the theme last passed to Apply
func Current() domain.Theme {
	return current
}

// Apply rebuilds every style from the palette of the given theme.
// Must be called from the update loop only.
func Apply(theme domain.Theme) {
	p := DarkPalette
	if theme == domain.ThemeLight {
		p = LightPalette
	}
	current = theme

	Accent, Surface, Raised = p.Accent, p.Surface, p.Raised
	Text, Muted, Dim = p.Text, p.Muted, p.Dim
	Green, Red, Yellow, Blue = p.Green, p.Red, p.Yellow, p.Blue

	TitleStyle = lipgloss.NewStyle().Foreground(Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(Muted)
	DimStyle = lipgloss.NewStyle().Foreground(Dim)
	AccentStyle = lipgloss.NewStyle().Foreground(Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green)
	WarningStyle = lipgloss.NewStyle().Foreground(Yellow)
	InfoStyle = lipgloss.NewStyle().Foreground(Blue)
	SectionTitle = lipgloss.NewStyle().Foreground(Accent).Bold(true).MarginBottom(1)
	MatchHighlight = lipgloss.NewStyle().Foreground(Accent).Bold(true)

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(0, 1)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Dim).
		Padding(0, 1)
	SidebarStyle = lipgloss.NewStyle().Padding(1, 2)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent).
		Padding(1, 2).
		Background(Surface)
	ModalTitleStyle = lipgloss.NewStyle().
		Foreground(Text).
		Bold(true).
		MarginBottom(1)

	ActiveBadge = badge(Green)
	OverdueBadge = badge(Red)
	ReturnedBadge = badge(Dim)

	HelpKeyStyle = lipgloss.NewStyle().Foreground(Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(Dim)
}

func badge(bg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(bg).
		Padding(0, 1)
}

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		return string(runes[:min(width, len(runes))])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

// RowPart is a part of a row with an optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
}

// RenderListRow renders a row with a uniform background when selected.
// Each part is styled explicitly to avoid ANSI reset issues.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	var b strings.Builder
	visible := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		switch {
		case part.Foreground != nil:
			style = style.Foreground(*part.Foreground)
		case selected:
			style = style.Foreground(Text)
		default:
			style = style.Foreground(Muted)
		}
		if selected {
			style = style.Background(Raised)
		}
		b.WriteString(style.Render(part.Text))
		visible += lipgloss.Width(part.Text)
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(Raised)
	}

	// Fill to width, minus one column of margin on each side
	if pad := width - visible - 2; pad > 0 {
		b.WriteString(marginStyle.Render(strings.Repeat(" ", pad)))
	}

	margin := marginStyle.Render(" ")
	return margin + b.String() + margin
}
