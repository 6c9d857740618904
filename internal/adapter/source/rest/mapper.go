package rest

import (
	"time"

	"github.com/mmcdole/stacks/internal/domain"
)

// DateLayout is the calendar-date form used for due dates on the wire
const DateLayout = "2006-01-02"

// parseTime accepts RFC 3339 timestamps and bare calendar dates.
// Unparseable or empty values map to the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

// MapBook converts a book DTO to a domain book
func MapBook(dto bookDTO) domain.Book {
	return domain.Book{
		ID:     firstNonEmpty(dto.ID, dto.MongoID),
		ISBN:   dto.ISBN,
		Title:  dto.Title,
		Author: dto.Author,
		Copies: dto.Copies,
	}
}

// MapBooks converts book DTOs, preserving order
func MapBooks(dtos []bookDTO) []domain.Book {
	books := make([]domain.Book, 0, len(dtos))
	for _, dto := range dtos {
		books = append(books, MapBook(dto))
	}
	return books
}

// MapMember converts a member DTO to a domain member
func MapMember(dto memberDTO) domain.Member {
	return domain.Member{
		ID:       firstNonEmpty(dto.ID, dto.MongoID),
		Name:     dto.Name,
		Email:    dto.Email,
		JoinedAt: parseTime(dto.JoinedAt),
	}
}

// MapMembers converts member DTOs, preserving order
func MapMembers(dtos []memberDTO) []domain.Member {
	members := make([]domain.Member, 0, len(dtos))
	for _, dto := range dtos {
		members = append(members, MapMember(dto))
	}
	return members
}

// MapLoan converts a loan DTO to a domain loan. Missing references stay nil
// so renderers can substitute placeholders.
func MapLoan(dto loanDTO) domain.Loan {
	loan := domain.Loan{
		ID:       firstNonEmpty(dto.ID, dto.MongoID),
		LoanedAt: parseTime(dto.LoanedAt),
		DueAt:    parseTime(dto.DueAt),
	}

	if dto.Member.Present {
		loan.Member = &domain.MemberRef{ID: dto.Member.ID, Name: dto.Member.Name}
	}
	if dto.Book.Present {
		loan.Book = &domain.BookRef{ID: dto.Book.ID, Title: dto.Book.Title}
	}
	if dto.ReturnedAt != nil && *dto.ReturnedAt != "" {
		returned := parseTime(*dto.ReturnedAt)
		loan.ReturnedAt = &returned
	}

	return loan
}

// MapLoans converts loan DTOs, preserving order
func MapLoans(dtos []loanDTO) []domain.Loan {
	loans := make([]domain.Loan, 0, len(dtos))
	for _, dto := range dtos {
		loans = append(loans, MapLoan(dto))
	}
	return loans
}

// mapBookInput converts a book payload to its wire form
func mapBookInput(in domain.BookInput) bookDTO {
	return bookDTO{
		ISBN:   in.ISBN,
		Title:  in.Title,
		Author: in.Author,
		Copies: in.Copies,
	}
}

// mapMemberInput converts a member payload to its wire form
func mapMemberInput(in domain.MemberInput) memberDTO {
	return memberDTO{
		Name:  in.Name,
		Email: in.Email,
	}
}

// mapLoanInput converts a loan payload to its wire form
func mapLoanInput(in domain.LoanInput) loanRequestDTO {
	return loanRequestDTO{
		MemberID: in.MemberID,
		BookID:   in.BookID,
		DueAt:    in.DueAt.Format(DateLayout),
	}
}
