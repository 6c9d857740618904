package domain

import "time"

// MaxActiveLoans is the number of open loans at which a member is shown as
// having reached their limit.
const MaxActiveLoans = 3

// Book is a title held by the library
type Book struct {
	ID     string `json:"id"`
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Copies int    `json:"copies"` // Available copies, never negative on the server
}

// Member is a registered library patron
type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joinedAt"` // Zero when the backend omits it
}

// MemberRef is the partial member embedded in a loan
type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BookRef is the partial book embedded in a loan
type BookRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Loan binds one member to one book until it is returned.
// Member and Book are nil when the referenced entity no longer exists.
type Loan struct {
	ID         string     `json:"id"`
	Member     *MemberRef `json:"member,omitempty"`
	Book       *BookRef   `json:"book,omitempty"`
	LoanedAt   time.Time  `json:"loanedAt"`
	DueAt      time.Time  `json:"dueAt"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty"`
}

// LoanStatus is derived from a loan's dates; it is never stored
type LoanStatus int

const (
	LoanActive LoanStatus = iota
	LoanOverdue
	LoanReturned
)

// String returns the display label for the status
func (s LoanStatus) String() string {
	switch s {
	case LoanOverdue:
		return "Overdue"
	case LoanReturned:
		return "Returned"
	default:
		return "Active"
	}
}

// Status derives the loan status at the given instant.
// Every view that shows a status or counts loans goes through this method.
func (l Loan) Status(now time.Time) LoanStatus {
	if l.ReturnedAt != nil {
		return LoanReturned
	}
	if l.DueAt.Before(now) {
		return LoanOverdue
	}
	return LoanActive
}

// IsOpen reports whether the loan has not been returned yet
func (l Loan) IsOpen() bool {
	return l.ReturnedAt == nil
}

// MemberID returns the referenced member id, or "" when the reference is missing
func (l Loan) MemberID() string {
	if l.Member == nil {
		return ""
	}
	return l.Member.ID
}

// MemberName returns the member display name with a placeholder for missing references
func (l Loan) MemberName() string {
	if l.Member == nil || l.Member.Name == "" {
		return "Unknown Member"
	}
	return l.Member.Name
}

// BookTitle returns the book title with a placeholder for missing references
func (l Loan) BookTitle() string {
	if l.Book == nil || l.Book.Title == "" {
		return "Unknown Book"
	}
	return l.Book.Title
}

// Theme is the persisted UI color scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps a stored value to a Theme, defaulting to light
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}
