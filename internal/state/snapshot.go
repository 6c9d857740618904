// Package state holds the dashboard's last successfully loaded lists.
//
// A Snapshot is a value owned by the root model. Loaders tag each request
// with a generation from Begin; Apply discards a response whose tag has
// been superseded, so the latest request wins regardless of arrival order.
package state

import (
	"github.com/mmcdole/stacks/internal/domain"
)

// PageSize is the fixed number of books requested per page
const PageSize = 12

// Resource identifies one of the three list loaders
type Resource int

const (
	ResourceBooks Resource = iota
	ResourceMembers
	ResourceLoans
	resourceCount
)

func (r Resource) String() string {
	switch r {
	case ResourceBooks:
		return "books"
	case ResourceMembers:
		return "members"
	case ResourceLoans:
		return "loans"
	default:
		return "unknown"
	}
}

// Snapshot is the client-side view of the backend.
// Lists are overwritten wholesale, never merged.
type Snapshot struct {
	Page     int
	PageSize int

	Books   []domain.Book
	Members []domain.Member
	Loans   []domain.Loan

	loaded [resourceCount]bool
	gens   [resourceCount]uint64
}

// New returns an empty snapshot positioned on the first page
func New() Snapshot {
	return Snapshot{Page: 1, PageSize: PageSize}
}

// Begin starts a request for a resource and returns its generation tag
func (s Snapshot) Begin(r Resource) (Snapshot, uint64) {
	s.gens[r]++
	return s, s.gens[r]
}

// Current reports whether gen is the latest tag issued for r
func (s Snapshot) Current(r Resource, gen uint64) bool {
	return s.gens[r] == gen
}

// Loaded reports whether a list has been loaded successfully at least once
func (s Snapshot) Loaded(r Resource) bool {
	return s.loaded[r]
}

// ApplyBooks stores a books page. ok is false when gen was superseded.
func (s Snapshot) ApplyBooks(gen uint64, books []domain.Book) (Snapshot, bool) {
	if !s.Current(ResourceBooks, gen) {
		return s, false
	}
	s.Books = books
	s.loaded[ResourceBooks] = true
	return s, true
}

// ApplyMembers stores the member list. ok is false when gen was superseded.
func (s Snapshot) ApplyMembers(gen uint64, members []domain.Member) (Snapshot, bool) {
	if !s.Current(ResourceMembers, gen) {
		return s, false
	}
	s.Members = members
	s.loaded[ResourceMembers] = true
	return s, true
}

// ApplyLoans stores the loan list. ok is false when gen was superseded.
func (s Snapshot) ApplyLoans(gen uint64, loans []domain.Loan) (Snapshot, bool) {
	if !s.Current(ResourceLoans, gen) {
		return s, false
	}
	s.Loans = loans
	s.loaded[ResourceLoans] = true
	return s, true
}

// BookQuery returns the list options for the current books page
func (s Snapshot) BookQuery() domain.ListOptions {
	return domain.ListOptions{Page: s.Page, Limit: s.PageSize}
}

// HasNextPage reports whether the last books page was full
func (s Snapshot) HasNextPage() bool {
	return s.loaded[ResourceBooks] && len(s.Books) >= s.PageSize
}

// HasPrevPage reports whether there is a page before the current one
func (s Snapshot) HasPrevPage() bool {
	return s.Page > 1
}

// NextPage advances one page. ok is false when the last page was short.
func (s Snapshot) NextPage() (Snapshot, bool) {
	if !s.HasNextPage() {
		return s, false
	}
	s.Page++
	return s, true
}

// PrevPage moves back one page. ok is false on the first page.
func (s Snapshot) PrevPage() (Snapshot, bool) {
	if !s.HasPrevPage() {
		return s, false
	}
	s.Page--
	return s, true
}

// ResetPage returns to the first page
func (s Snapshot) ResetPage() Snapshot {
	s.Page = 1
	return s
}

// ActiveLoansFor counts open loans in the loans snapshot for a member
func (s Snapshot) ActiveLoansFor(memberID string) int {
	if memberID == "" {
		return 0
	}
	n := 0
	for _, l := range s.Loans {
		if l.IsOpen() && l.MemberID() == memberID {
			n++
		}
	}
	return n
}
