// Package dashboard derives the dashboard figures from already loaded lists.
package dashboard

import (
	"time"

	"github.com/mmcdole/stacks/internal/domain"
)

const (
	activityLimit = 5
	popularLimit  = 3
)

// Figures shown for a list whose fetch failed
const (
	PlaceholderBooks   = 12
	PlaceholderMembers = 8
	PlaceholderActive  = 5
	PlaceholderOverdue = 1
)

// Lists is the input to Summarize. A Failed flag marks a list whose fetch
// failed; its slice is then empty.
type Lists struct {
	Books   []domain.Book
	Members []domain.Member
	Loans   []domain.Loan

	BooksFailed   bool
	MembersFailed bool
	LoansFailed   bool
}

// Degraded reports whether any of the three fetches failed
func (l Lists) Degraded() bool {
	return l.BooksFailed || l.MembersFailed || l.LoansFailed
}

// Summary is the record rendered by the dashboard section
type Summary struct {
	TotalBooks   int
	TotalMembers int
	ActiveLoans  int
	OverdueLoans int

	Activity []domain.Loan // First loans in received order
	Popular  []domain.Book // First books in received order

	degraded bool
}

// Degraded reports whether placeholder figures were used
func (s Summary) Degraded() bool {
	return s.degraded
}

// Summarize computes the dashboard figures at now
func Summarize(lists Lists, now time.Time) Summary {
	s := Summary{
		TotalBooks:   len(lists.Books),
		TotalMembers: len(lists.Members),
		Activity:     head(lists.Loans, activityLimit),
		Popular:      head(lists.Books, popularLimit),
		degraded:     lists.Degraded(),
	}
	s.ActiveLoans, s.OverdueLoans = CountLoans(lists.Loans, now)

	if lists.BooksFailed {
		s.TotalBooks = PlaceholderBooks
	}
	if lists.MembersFailed {
		s.TotalMembers = PlaceholderMembers
	}
	if lists.LoansFailed {
		s.ActiveLoans = PlaceholderActive
		s.OverdueLoans = PlaceholderOverdue
	}
	return s
}

// CountLoans returns the number of open loans and how many of them are overdue
func CountLoans(loans []domain.Loan, now time.Time) (active, overdue int) {
	for _, l := range loans {
		switch l.Status(now) {
		case domain.LoanActive:
			active++
		case domain.LoanOverdue:
			active++
			overdue++
		}
	}
	return active, overdue
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
