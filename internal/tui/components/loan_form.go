package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// DueDateLayout is the input format of the due date field
const DueDateLayout = "2006-01-02"

const (
	loanFocusMember = iota
	loanFocusBook
	loanFocusDue
	loanFocusCount
)

// LoanForm picks a member, a book and a due date
type LoanForm struct {
	Member Picker
	Book   Picker
	due    textinput.Model
	focus  int
	width  int
}

// NewLoanForm creates a loan form with the due date prefilled
func NewLoanForm(members []domain.Member, books []domain.Book, due time.Time) LoanForm {
	f := LoanForm{
		Member: NewPicker("Member", "Type to search members"),
		Book:   NewPicker("Book", "Type to search available books"),
		due:    textinput.New(),
		width:  44,
	}

	memberOpts := make([]Option, len(members))
	for i, m := range members {
		memberOpts[i] = Option{ID: m.ID, Label: m.Name}
	}
	f.Member.SetOptions(memberOpts)

	bookOpts := make([]Option, len(books))
	for i, b := range books {
		bookOpts[i] = Option{ID: b.ID, Label: BookOptionLabel(b)}
	}
	f.Book.SetOptions(bookOpts)

	f.due.Prompt = ""
	f.due.CharLimit = len(DueDateLayout)
	f.due.Placeholder = DueDateLayout
	f.due.SetValue(due.Format(DueDateLayout))

	f.SetWidth(f.width)
	f.setFocus(loanFocusMember)
	return f
}

// BookOptionLabel is the picker label for a book
func BookOptionLabel(b domain.Book) string {
	return b.Title + " (" + Copies(b.Copies) + " available)"
}

// SetWidth sets the width of every field
func (f *LoanForm) SetWidth(width int) {
	f.width = max(width, 24)
	f.Member.SetWidth(f.width)
	f.Book.SetWidth(f.width)
	f.due.Width = f.width - 2
}

func (f *LoanForm) setFocus(i int) {
	f.focus = (i + loanFocusCount) % loanFocusCount
	f.Member.Blur()
	f.Book.Blur()
	f.due.Blur()
	switch f.focus {
	case loanFocusMember:
		f.Member.Focus()
	case loanFocusBook:
		f.Book.Focus()
	default:
		f.due.Focus()
	}
}

// Input collects the selections. dueErr is set when the date does not parse.
func (f LoanForm) Input() (in domain.LoanInput, dueErr error) {
	if m, ok := f.Member.Selected(); ok {
		in.MemberID = m.ID
	}
	if b, ok := f.Book.Selected(); ok {
		in.BookID = b.ID
	}
	raw := strings.TrimSpace(f.due.Value())
	if raw == "" {
		return in, nil
	}
	due, err := time.ParseInLocation(DueDateLayout, raw, time.Local)
	if err != nil {
		return in, err
	}
	in.DueAt = due
	return in, nil
}

// Update routes keys to the focused field. submitted is true on ctrl+s,
// or on enter in the due date field.
func (f LoanForm) Update(msg tea.Msg) (LoanForm, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab":
			f.setFocus(f.focus + 1)
			return f, nil, false
		case "shift+tab":
			f.setFocus(f.focus - 1)
			return f, nil, false
		case "ctrl+s":
			return f, nil, true
		case "enter":
			if f.focus == loanFocusDue {
				return f, nil, true
			}
			f.setFocus(f.focus + 1)
			return f, nil, false
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case loanFocusMember:
		f.Member, cmd = f.Member.Update(msg)
	case loanFocusBook:
		f.Book, cmd = f.Book.Update(msg)
	default:
		f.due, cmd = f.due.Update(msg)
	}
	return f, cmd, false
}

// View renders the form
func (f LoanForm) View() string {
	f.due.TextStyle = lipgloss.NewStyle().Foreground(styles.Text)
	f.due.PlaceholderStyle = styles.DimStyle

	dueLabel := styles.DimStyle.Render("Due date (YYYY-MM-DD)")
	dueBox := styles.InactiveBorder
	if f.focus == loanFocusDue {
		dueLabel = styles.AccentStyle.Render("Due date (YYYY-MM-DD)")
		dueBox = styles.ActiveBorder
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("New Loan"),
		f.Member.View(),
		f.Book.View(),
		dueLabel,
		dueBox.Width(f.width).Render(f.due.View()),
		"",
		actionHints("tab", "Next field", "↑/↓", "Choose", "ctrl+s", "Create", "esc", "Cancel"),
	)
}
