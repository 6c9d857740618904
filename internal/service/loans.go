package service

import (
	"context"
	"fmt"

	"github.com/mmcdole/stacks/internal/domain"
	"golang.org/x/sync/errgroup"
)

// LoanOptions are the choices offered by the new-loan form
type LoanOptions struct {
	Members []domain.Member
	Books   []domain.Book // Only books with copies available
}

// ListLoans returns all loans
func (s *LibraryService) ListLoans(ctx context.Context) ([]domain.Loan, error) {
	loans, err := s.backend.ListLoans(ctx, domain.ListOptions{})
	if err != nil {
		s.logger.Error("failed to load loans", "error", err)
		return nil, fmt.Errorf("load loans: %w", err)
	}
	s.logger.Debug("loaded loans", "count", len(loans))
	return loans, nil
}

// CreateLoan validates and lends a book
func (s *LibraryService) CreateLoan(ctx context.Context, in domain.LoanInput) (*domain.Loan, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	loan, err := s.backend.CreateLoan(ctx, in)
	if err != nil {
		s.logger.Error("failed to create loan", "member", in.MemberID, "book", in.BookID, "error", err)
		return nil, fmt.Errorf("create loan: %w", err)
	}
	s.logger.Info("created loan", "id", loan.ID)
	return loan, nil
}

// ReturnLoan marks an open loan as returned. A loan that is already
// returned is handed back unchanged without a request.
func (s *LibraryService) ReturnLoan(ctx context.Context, loan domain.Loan) (*domain.Loan, error) {
	if !loan.IsOpen() {
		s.logger.Debug("loan already returned", "id", loan.ID)
		return &loan, nil
	}
	returned, err := s.backend.ReturnLoan(ctx, loan.ID)
	if err != nil {
		s.logger.Error("failed to return loan", "id", loan.ID, "error", err)
		return nil, fmt.Errorf("return loan: %w", err)
	}
	s.logger.Info("returned loan", "id", loan.ID)
	return returned, nil
}

// LoadLoanOptions fetches members and books concurrently for the new-loan
// form. A failed fetch contributes an empty list.
func (s *LibraryService) LoadLoanOptions(ctx context.Context) LoanOptions {
	var opts LoanOptions
	var books []domain.Book

	var g errgroup.Group
	g.Go(func() error {
		members, err := s.backend.ListMembers(ctx, domain.ListOptions{})
		if err != nil {
			s.logger.Warn("loan form: members unavailable", "error", err)
			return nil
		}
		opts.Members = members
		return nil
	})
	g.Go(func() error {
		all, err := s.backend.ListBooks(ctx, domain.ListOptions{})
		if err != nil {
			s.logger.Warn("loan form: books unavailable", "error", err)
			return nil
		}
		books = all
		return nil
	})
	g.Wait()

	for _, b := range books {
		if b.Copies > 0 {
			opts.Books = append(opts.Books, b)
		}
	}
	return opts
}
