package tui

import (
	"github.com/mmcdole/stacks/internal/dashboard"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/state"
)

// Message types for the TUI

// ErrMsg represents an error outside of list loading and mutations
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ProbeResultMsg carries the result of the startup reachability probe
type ProbeResultMsg struct {
	Err error
}

// DashboardLoadedMsg carries the three dashboard lists
type DashboardLoadedMsg struct {
	Gen   uint64
	Lists dashboard.Lists
}

// BooksLoadedMsg carries one page of books
type BooksLoadedMsg struct {
	Gen   uint64
	Books []domain.Book
}

// MembersLoadedMsg carries the member list
type MembersLoadedMsg struct {
	Gen     uint64
	Members []domain.Member
}

// LoansLoadedMsg carries the loan list
type LoansLoadedMsg struct {
	Gen   uint64
	Loans []domain.Loan
}

// ListFailedMsg signals that a list loader failed
type ListFailedMsg struct {
	Resource state.Resource
	Gen      uint64
	Err      error
}

// EditBookReadyMsg carries a freshly fetched book for the edit modal
type EditBookReadyMsg struct {
	Book domain.Book
}

// EditMemberReadyMsg carries a freshly fetched member for the edit modal
type EditMemberReadyMsg struct {
	Member domain.Member
}

// LoanOptionsReadyMsg carries the choices for the new-loan modal
type LoanOptionsReadyMsg struct {
	Options service.LoanOptions
}

// MutationDoneMsg signals a successful create, update, delete or return
type MutationDoneMsg struct {
	Mutation Mutation
	ID       string // Entity the mutation targeted; empty for creates
	Message  string
}

// MutationFailedMsg signals a failed or rejected mutation
type MutationFailedMsg struct {
	Mutation Mutation
	Err      error
}

// ThemeSavedMsg signals that the theme preference was written
type ThemeSavedMsg struct {
	Theme domain.Theme
	Err   error
}

// ToastExpiredMsg removes a toast after its display time
type ToastExpiredMsg struct {
	ID int
}

// TickMsg advances the loading spinner
type TickMsg struct{}
