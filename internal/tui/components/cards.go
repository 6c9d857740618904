package components

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// DateLayout is the display format for calendar dates
const DateLayout = "Jan 2, 2006"

// FormatDate formats a date for display, with a placeholder for missing dates
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	return t.Local().Format(DateLayout)
}

// Copies pluralizes an available-copies count
func Copies(n int) string {
	if n == 1 {
		return "1 copy"
	}
	return strconv.Itoa(n) + " copies"
}

func cardStyle(selected bool, width int) lipgloss.Style {
	style := styles.InactiveBorder
	if selected {
		style = styles.ActiveBorder
	}
	// Border and padding take four columns
	return style.Width(max(width-4, 10))
}

// RenderBookCard renders one book of the books grid
func RenderBookCard(book domain.Book, selected bool, width int) string {
	inner := max(width-4, 10)

	title := styles.TitleStyle.Render(styles.Truncate(book.Title, inner))
	author := styles.SubtitleStyle.Render(styles.Truncate("by "+book.Author, inner))

	copies := styles.SuccessStyle.Render(Copies(book.Copies) + " available")
	if book.Copies == 0 {
		copies = styles.WarningStyle.Render(Copies(book.Copies) + " available")
	}
	isbn := styles.DimStyle.Render(styles.Truncate("ISBN: "+book.ISBN, inner))

	content := lipgloss.JoinVertical(lipgloss.Left, title, author, "", copies, isbn)
	if selected {
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", actionHints("e", "Edit", "x", "Delete"))
	}
	return cardStyle(selected, width).Render(content)
}

// MemberBadge returns the loan-limit badge label for a member
func MemberBadge(activeLoans int) string {
	if activeLoans < domain.MaxActiveLoans {
		return "Active"
	}
	return "Max Loans"
}

// RenderMemberRow renders one row of the members table.
// activeLoans comes from the last loaded loan list.
func RenderMemberRow(member domain.Member, activeLoans int, selected bool, width int) string {
	nameW := max(width*30/100, 8)
	emailW := max(width*35/100, 8)

	badge := MemberBadge(activeLoans)
	badgeColor := styles.Green
	if activeLoans >= domain.MaxActiveLoans {
		badgeColor = styles.Red
	}

	parts := []styles.RowPart{
		{Text: padRight(styles.Truncate(member.Name, nameW-1), nameW)},
		{Text: padRight(styles.Truncate(member.Email, emailW-1), emailW)},
		{Text: padRight(FormatDate(member.JoinedAt), 14)},
		{Text: padRight(badge, 11), Foreground: &badgeColor},
		{Text: strconv.Itoa(activeLoans)},
	}
	return styles.RenderListRow(parts, selected, width)
}

// MemberHeader renders the column titles matching RenderMemberRow
func MemberHeader(width int) string {
	nameW := max(width*30/100, 8)
	emailW := max(width*35/100, 8)
	header := " " + padRight("Member", nameW) + padRight("Email", emailW) +
		padRight("Joined", 14) + padRight("Status", 11) + "Loans"
	return styles.DimStyle.Render(header)
}

// StatusBadge renders a loan status label
func StatusBadge(status domain.LoanStatus) string {
	switch status {
	case domain.LoanOverdue:
		return styles.OverdueBadge.Render(status.String())
	case domain.LoanReturned:
		return styles.ReturnedBadge.Render(status.String())
	default:
		return styles.ActiveBadge.Render(status.String())
	}
}

// RenderLoanCard renders one loan with its derived status at now
func RenderLoanCard(loan domain.Loan, now time.Time, selected bool, width int) string {
	inner := max(width-4, 10)
	status := loan.Status(now)
	badge := StatusBadge(status)

	title := styles.TitleStyle.Render(styles.Truncate(loan.BookTitle(), max(inner-lipgloss.Width(badge)-1, 4)))
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", badge)

	lines := []string{
		header,
		styles.SubtitleStyle.Render(styles.Truncate(loan.MemberName(), inner)),
		styles.DimStyle.Render("Loaned: " + FormatDate(loan.LoanedAt)),
		styles.DimStyle.Render("Due: " + FormatDate(loan.DueAt)),
	}
	if loan.ReturnedAt != nil {
		lines = append(lines, styles.DimStyle.Render("Returned: "+FormatDate(*loan.ReturnedAt)))
	}
	if selected && loan.IsOpen() {
		lines = append(lines, "", actionHints("m", "Mark Returned"))
	}
	return cardStyle(selected, width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderActivityItem renders one entry of the dashboard activity feed
func RenderActivityItem(loan domain.Loan, width int) string {
	dot := styles.AccentStyle.Render("●")
	if !loan.IsOpen() {
		dot = styles.SuccessStyle.Render("●")
	}
	text := fmt.Sprintf("%s borrowed %q", loan.MemberName(), loan.BookTitle())
	line := dot + " " + styles.Truncate(text, max(width-2, 4))
	return lipgloss.JoinVertical(lipgloss.Left, line, "  "+styles.DimStyle.Render(FormatDate(loan.LoanedAt)))
}

// RenderStat renders one dashboard figure
func RenderStat(label string, value int, width int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(strconv.Itoa(value)),
		styles.DimStyle.Render(label),
	)
	return styles.InactiveBorder.Width(max(width-4, 8)).Render(content)
}

// RenderPopularBook renders one book of the dashboard highlight list
func RenderPopularBook(book domain.Book, width int) string {
	inner := max(width, 10)
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(styles.Truncate(book.Title, inner)),
		styles.SubtitleStyle.Render(styles.Truncate(book.Author, inner)),
		styles.DimStyle.Render(Copies(book.Copies)+" available"),
	)
}

func actionHints(pairs ...string) string {
	var out string
	for i := 0; i+1 < len(pairs); i += 2 {
		if out != "" {
			out += "  "
		}
		out += styles.HelpKeyStyle.Render(pairs[i]) + " " + styles.HelpDescStyle.Render(pairs[i+1])
	}
	return out
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + spaces(gap)
	}
	return s
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
