package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/validation"
)

// LoanPeriod is the default time between lending and the due date
const LoanPeriod = 14 * 24 * time.Hour

// LibraryService handles loaders and mutations against the backend.
// Payloads are validated before any request is issued.
type LibraryService struct {
	backend   domain.Backend
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewLibraryService creates a new library service
func NewLibraryService(backend domain.Backend, validator *validation.Validator, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	if validator == nil {
		validator = validation.New()
	}
	return &LibraryService{
		backend:   backend,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock overrides the service clock
func (s *LibraryService) SetClock(now func() time.Time) {
	s.now = now
}

// DefaultDueDate returns the due date offered for a new loan
func (s *LibraryService) DefaultDueDate() time.Time {
	return validation.StartOfDay(s.now().Add(LoanPeriod))
}

// Probe checks whether the backend is reachable
func (s *LibraryService) Probe(ctx context.Context) error {
	if err := s.backend.Probe(ctx); err != nil {
		s.logger.Warn("api probe failed", "error", err)
		return err
	}
	s.logger.Info("api probe succeeded")
	return nil
}

// === Books ===

// ListBooks returns one page of books
func (s *LibraryService) ListBooks(ctx context.Context, opts domain.ListOptions) ([]domain.Book, error) {
	books, err := s.backend.ListBooks(ctx, opts)
	if err != nil {
		s.logger.Error("failed to load books", "page", opts.Page, "error", err)
		return nil, fmt.Errorf("load books: %w", err)
	}
	s.logger.Debug("loaded books", "page", opts.Page, "count", len(books))
	return books, nil
}

// GetBook fetches a book fresh by id
func (s *LibraryService) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	book, err := s.backend.GetBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load book: %w", err)
	}
	return book, nil
}

// CreateBook validates and creates a book
func (s *LibraryService) CreateBook(ctx context.Context, in domain.BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	book, err := s.backend.CreateBook(ctx, in)
	if err != nil {
		s.logger.Error("failed to create book", "isbn", in.ISBN, "error", err)
		return nil, fmt.Errorf("create book: %w", err)
	}
	s.logger.Info("created book", "id", book.ID, "title", book.Title)
	return book, nil
}

// UpdateBook validates and updates a book
func (s *LibraryService) UpdateBook(ctx context.Context, id string, in domain.BookInput) (*domain.Book, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	book, err := s.backend.UpdateBook(ctx, id, in)
	if err != nil {
		s.logger.Error("failed to update book", "id", id, "error", err)
		return nil, fmt.Errorf("update book: %w", err)
	}
	s.logger.Info("updated book", "id", id)
	return book, nil
}

// DeleteBook removes a book
func (s *LibraryService) DeleteBook(ctx context.Context, id string) error {
	if err := s.backend.DeleteBook(ctx, id); err != nil {
		s.logger.Error("failed to delete book", "id", id, "error", err)
		return fmt.Errorf("delete book: %w", err)
	}
	s.logger.Info("deleted book", "id", id)
	return nil
}

// === Members ===

// ListMembers returns all members
func (s *LibraryService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.backend.ListMembers(ctx, domain.ListOptions{})
	if err != nil {
		s.logger.Error("failed to load members", "error", err)
		return nil, fmt.Errorf("load members: %w", err)
	}
	s.logger.Debug("loaded members", "count", len(members))
	return members, nil
}

// GetMember fetches a member fresh by id
func (s *LibraryService) GetMember(ctx context.Context, id string) (*domain.Member, error) {
	member, err := s.backend.GetMember(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load member: %w", err)
	}
	return member, nil
}

// CreateMember validates and registers a member
func (s *LibraryService) CreateMember(ctx context.Context, in domain.MemberInput) (*domain.Member, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	member, err := s.backend.CreateMember(ctx, in)
	if err != nil {
		s.logger.Error("failed to create member", "error", err)
		return nil, fmt.Errorf("create member: %w", err)
	}
	s.logger.Info("created member", "id", member.ID)
	return member, nil
}

// UpdateMember validates and updates a member
func (s *LibraryService) UpdateMember(ctx context.Context, id string, in domain.MemberInput) (*domain.Member, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}
	member, err := s.backend.UpdateMember(ctx, id, in)
	if err != nil {
		s.logger.Error("failed to update member", "id", id, "error", err)
		return nil, fmt.Errorf("update member: %w", err)
	}
	s.logger.Info("updated member", "id", id)
	return member, nil
}

// DeleteMember removes a member
func (s *LibraryService) DeleteMember(ctx context.Context, id string) error {
	if err := s.backend.DeleteMember(ctx, id); err != nil {
		s.logger.Error("failed to delete member", "id", id, "error", err)
		return fmt.Errorf("delete member: %w", err)
	}
	s.logger.Info("deleted member", "id", id)
	return nil
}
