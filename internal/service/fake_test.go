package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/stacks/internal/domain"
)

// fakeBackend is an in-memory domain.Backend with per-resource failures
type fakeBackend struct {
	mu sync.Mutex

	books   []domain.Book
	members []domain.Member
	loans   []domain.Loan

	booksErr   error
	membersErr error
	loansErr   error

	calls []string
}

func (f *fakeBackend) record(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeBackend) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBackend) ListBooks(_ context.Context, opts domain.ListOptions) ([]domain.Book, error) {
	f.record("ListBooks page=%d limit=%d", opts.Page, opts.Limit)
	return f.books, f.booksErr
}

func (f *fakeBackend) GetBook(_ context.Context, id string) (*domain.Book, error) {
	f.record("GetBook %s", id)
	for _, b := range f.books {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, &domain.APIError{Status: 404, Message: "Book not found", Structured: true}
}

func (f *fakeBackend) CreateBook(_ context.Context, in domain.BookInput) (*domain.Book, error) {
	f.record("CreateBook %s", in.ISBN)
	if f.booksErr != nil {
		return nil, f.booksErr
	}
	b := domain.Book{ID: "new", ISBN: in.ISBN, Title: in.Title, Author: in.Author, Copies: in.Copies}
	return &b, nil
}

func (f *fakeBackend) UpdateBook(_ context.Context, id string, in domain.BookInput) (*domain.Book, error) {
	f.record("UpdateBook %s", id)
	b := domain.Book{ID: id, ISBN: in.ISBN, Title: in.Title, Author: in.Author, Copies: in.Copies}
	return &b, f.booksErr
}

func (f *fakeBackend) DeleteBook(_ context.Context, id string) error {
	f.record("DeleteBook %s", id)
	return f.booksErr
}

func (f *fakeBackend) ListMembers(_ context.Context, _ domain.ListOptions) ([]domain.Member, error) {
	f.record("ListMembers")
	return f.members, f.membersErr
}

func (f *fakeBackend) GetMember(_ context.Context, id string) (*domain.Member, error) {
	f.record("GetMember %s", id)
	return &domain.Member{ID: id}, f.membersErr
}

func (f *fakeBackend) CreateMember(_ context.Context, in domain.MemberInput) (*domain.Member, error) {
	f.record("CreateMember %s", in.Email)
	return &domain.Member{ID: "new", Name: in.Name, Email: in.Email}, f.membersErr
}

func (f *fakeBackend) UpdateMember(_ context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	f.record("UpdateMember %s", id)
	return &domain.Member{ID: id, Name: in.Name, Email: in.Email}, f.membersErr
}

func (f *fakeBackend) DeleteMember(_ context.Context, id string) error {
	f.record("DeleteMember %s", id)
	return f.membersErr
}

func (f *fakeBackend) ListLoans(_ context.Context, _ domain.ListOptions) ([]domain.Loan, error) {
	f.record("ListLoans")
	return f.loans, f.loansErr
}

func (f *fakeBackend) CreateLoan(_ context.Context, in domain.LoanInput) (*domain.Loan, error) {
	f.record("CreateLoan %s %s", in.MemberID, in.BookID)
	if f.loansErr != nil {
		return nil, f.loansErr
	}
	return &domain.Loan{ID: "new", DueAt: in.DueAt}, nil
}

func (f *fakeBackend) ReturnLoan(_ context.Context, id string) (*domain.Loan, error) {
	f.record("ReturnLoan %s", id)
	return &domain.Loan{ID: id}, f.loansErr
}

func (f *fakeBackend) Probe(_ context.Context) error {
	f.record("Probe")
	return f.booksErr
}

var _ domain.Backend = (*fakeBackend)(nil)
