package domain

import "context"

// BookRepository provides access to the books resource
type BookRepository interface {
	ListBooks(ctx context.Context, opts ListOptions) ([]Book, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	CreateBook(ctx context.Context, in BookInput) (*Book, error)
	UpdateBook(ctx context.Context, id string, in BookInput) (*Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// MemberRepository provides access to the members resource
type MemberRepository interface {
	ListMembers(ctx context.Context, opts ListOptions) ([]Member, error)
	GetMember(ctx context.Context, id string) (*Member, error)
	CreateMember(ctx context.Context, in MemberInput) (*Member, error)
	UpdateMember(ctx context.Context, id string, in MemberInput) (*Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// LoanRepository provides access to the loans resource
type LoanRepository interface {
	ListLoans(ctx context.Context, opts ListOptions) ([]Loan, error)
	CreateLoan(ctx context.Context, in LoanInput) (*Loan, error)
	ReturnLoan(ctx context.Context, id string) (*Loan, error)
}

// Backend combines every resource the dashboard talks to
type Backend interface {
	BookRepository
	MemberRepository
	LoanRepository

	// Probe performs a lightweight request to check reachability
	Probe(ctx context.Context) error
}

// PreferenceStore persists client-side preferences
type PreferenceStore interface {
	Theme() Theme
	SaveTheme(theme Theme) error
	Close() error
}
