package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/state"
)

// Command factories for async operations.
// Requests are bounded by the API client's configured timeout.

// ProbeCmd checks backend reachability once at startup
func ProbeCmd(svc *service.LibraryService) tea.Cmd {
	return func() tea.Msg {
		return ProbeResultMsg{Err: svc.Probe(context.Background())}
	}
}

// LoadDashboardCmd fetches the three dashboard lists concurrently
func LoadDashboardCmd(svc *service.LibraryService, gen uint64) tea.Cmd {
	return func() tea.Msg {
		return DashboardLoadedMsg{Gen: gen, Lists: svc.LoadDashboard(context.Background())}
	}
}

// LoadBooksCmd loads one page of books
func LoadBooksCmd(svc *service.LibraryService, opts domain.ListOptions, gen uint64) tea.Cmd {
	return func() tea.Msg {
		books, err := svc.ListBooks(context.Background(), opts)
		if err != nil {
			return ListFailedMsg{Resource: state.ResourceBooks, Gen: gen, Err: err}
		}
		return BooksLoadedMsg{Gen: gen, Books: books}
	}
}

// LoadMembersCmd loads all members
func LoadMembersCmd(svc *service.LibraryService, gen uint64) tea.Cmd {
	return func() tea.Msg {
		members, err := svc.ListMembers(context.Background())
		if err != nil {
			return ListFailedMsg{Resource: state.ResourceMembers, Gen: gen, Err: err}
		}
		return MembersLoadedMsg{Gen: gen, Members: members}
	}
}

// LoadLoansCmd loads all loans
func LoadLoansCmd(svc *service.LibraryService, gen uint64) tea.Cmd {
	return func() tea.Msg {
		loans, err := svc.ListLoans(context.Background())
		if err != nil {
			return ListFailedMsg{Resource: state.ResourceLoans, Gen: gen, Err: err}
		}
		return LoansLoadedMsg{Gen: gen, Loans: loans}
	}
}

// LoadBookForEditCmd fetches a book fresh before opening the edit modal
func LoadBookForEditCmd(svc *service.LibraryService, id string) tea.Cmd {
	return func() tea.Msg {
		book, err := svc.GetBook(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err, Context: "Error loading book details"}
		}
		return EditBookReadyMsg{Book: *book}
	}
}

// LoadMemberForEditCmd fetches a member fresh before opening the edit modal
func LoadMemberForEditCmd(svc *service.LibraryService, id string) tea.Cmd {
	return func() tea.Msg {
		member, err := svc.GetMember(context.Background(), id)
		if err != nil {
			return ErrMsg{Err: err, Context: "Error loading member details"}
		}
		return EditMemberReadyMsg{Member: *member}
	}
}

// LoadLoanOptionsCmd fetches members and available books for the loan modal
func LoadLoanOptionsCmd(svc *service.LibraryService) tea.Cmd {
	return func() tea.Msg {
		return LoanOptionsReadyMsg{Options: svc.LoadLoanOptions(context.Background())}
	}
}

// CreateBookCmd submits the add-book form
func CreateBookCmd(svc *service.LibraryService, in domain.BookInput) tea.Cmd {
	return func() tea.Msg {
		book, err := svc.CreateBook(context.Background(), in)
		if err != nil {
			return MutationFailedMsg{Mutation: MutCreateBook, Err: err}
		}
		return MutationDoneMsg{Mutation: MutCreateBook, Message: fmt.Sprintf("%q added to library!", book.Title)}
	}
}

// UpdateBookCmd submits the edit-book modal
func UpdateBookCmd(svc *service.LibraryService, id string, in domain.BookInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.UpdateBook(context.Background(), id, in); err != nil {
			return MutationFailedMsg{Mutation: MutUpdateBook, Err: err}
		}
		return MutationDoneMsg{Mutation: MutUpdateBook, ID: id, Message: "Book updated successfully"}
	}
}

// DeleteBookCmd deletes a confirmed book
func DeleteBookCmd(svc *service.LibraryService, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteBook(context.Background(), id); err != nil {
			return MutationFailedMsg{Mutation: MutDeleteBook, Err: err}
		}
		return MutationDoneMsg{Mutation: MutDeleteBook, ID: id, Message: "Book deleted successfully"}
	}
}

// CreateMemberCmd submits the add-member form
func CreateMemberCmd(svc *service.LibraryService, in domain.MemberInput) tea.Cmd {
	return func() tea.Msg {
		member, err := svc.CreateMember(context.Background(), in)
		if err != nil {
			return MutationFailedMsg{Mutation: MutCreateMember, Err: err}
		}
		return MutationDoneMsg{Mutation: MutCreateMember, Message: fmt.Sprintf("%q registered as member!", member.Name)}
	}
}

// UpdateMemberCmd submits the edit-member modal
func UpdateMemberCmd(svc *service.LibraryService, id string, in domain.MemberInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.UpdateMember(context.Background(), id, in); err != nil {
			return MutationFailedMsg{Mutation: MutUpdateMember, Err: err}
		}
		return MutationDoneMsg{Mutation: MutUpdateMember, ID: id, Message: "Member updated successfully"}
	}
}

// DeleteMemberCmd deletes a confirmed member
func DeleteMemberCmd(svc *service.LibraryService, id string) tea.Cmd {
	return func() tea.Msg {
		if err := svc.DeleteMember(context.Background(), id); err != nil {
			return MutationFailedMsg{Mutation: MutDeleteMember, Err: err}
		}
		return MutationDoneMsg{Mutation: MutDeleteMember, ID: id, Message: "Member deleted successfully"}
	}
}

// CreateLoanCmd submits the new-loan modal
func CreateLoanCmd(svc *service.LibraryService, in domain.LoanInput) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.CreateLoan(context.Background(), in); err != nil {
			return MutationFailedMsg{Mutation: MutCreateLoan, Err: err}
		}
		return MutationDoneMsg{Mutation: MutCreateLoan, Message: "Loan created successfully!"}
	}
}

// ReturnLoanCmd marks a loan as returned
func ReturnLoanCmd(svc *service.LibraryService, loan domain.Loan) tea.Cmd {
	return func() tea.Msg {
		if _, err := svc.ReturnLoan(context.Background(), loan); err != nil {
			return MutationFailedMsg{Mutation: MutReturnLoan, Err: err}
		}
		return MutationDoneMsg{Mutation: MutReturnLoan, ID: loan.ID, Message: "Book marked as returned"}
	}
}

// SaveThemeCmd persists the theme preference
func SaveThemeCmd(prefs domain.PreferenceStore, theme domain.Theme) tea.Cmd {
	return func() tea.Msg {
		return ThemeSavedMsg{Theme: theme, Err: prefs.SaveTheme(theme)}
	}
}

// ToastExpireCmd removes a toast after d
func ToastExpireCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// TickCmd creates a tick command for the spinner
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}
