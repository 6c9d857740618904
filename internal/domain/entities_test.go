package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLoanStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	returned := now.Add(-time.Hour)

	tests := []struct {
		name string
		loan domain.Loan
		want domain.LoanStatus
	}{
		{
			name: "due in future",
			loan: domain.Loan{DueAt: now.Add(24 * time.Hour)},
			want: domain.LoanActive,
		},
		{
			name: "due date passed",
			loan: domain.Loan{DueAt: now.Add(-24 * time.Hour)},
			want: domain.LoanOverdue,
		},
		{
			name: "returned before due",
			loan: domain.Loan{DueAt: now.Add(24 * time.Hour), ReturnedAt: &returned},
			want: domain.LoanReturned,
		},
		{
			name: "returned after due",
			loan: domain.Loan{DueAt: now.Add(-48 * time.Hour), ReturnedAt: &returned},
			want: domain.LoanReturned,
		},
		{
			name: "due exactly now",
			loan: domain.Loan{DueAt: now},
			want: domain.LoanActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.loan.Status(now))
		})
	}
}

func TestLoanStatusString(t *testing.T) {
	assert.Equal(t, "Active", domain.LoanActive.String())
	assert.Equal(t, "Overdue", domain.LoanOverdue.String())
	assert.Equal(t, "Returned", domain.LoanReturned.String())
}

func TestLoanMissingReferences(t *testing.T) {
	loan := domain.Loan{ID: "l1"}

	assert.Equal(t, "Unknown Member", loan.MemberName())
	assert.Equal(t, "Unknown Book", loan.BookTitle())
	assert.Empty(t, loan.MemberID())

	loan.Member = &domain.MemberRef{ID: "m1", Name: "Ada"}
	loan.Book = &domain.BookRef{ID: "b1", Title: "Dune"}
	assert.Equal(t, "Ada", loan.MemberName())
	assert.Equal(t, "Dune", loan.BookTitle())
	assert.Equal(t, "m1", loan.MemberID())
}

func TestTheme(t *testing.T) {
	assert.Equal(t, domain.ThemeDark, domain.ThemeLight.Toggle())
	assert.Equal(t, domain.ThemeLight, domain.ThemeDark.Toggle())
	assert.Equal(t, domain.ThemeLight, domain.ParseTheme(""))
	assert.Equal(t, domain.ThemeDark, domain.ParseTheme("dark"))
	assert.Equal(t, domain.ThemeLight, domain.ParseTheme("sepia"))
}

func TestAPIError(t *testing.T) {
	structured := &domain.APIError{Status: 409, Message: "ISBN already exists", Structured: true}
	assert.Equal(t, "ISBN already exists", structured.Error())

	generic := &domain.APIError{Status: 500}
	assert.Equal(t, "request failed with status 500", generic.Error())

	notFound := fmt.Errorf("get book: %w", &domain.APIError{Status: 404})
	assert.True(t, errors.Is(notFound, domain.ErrNotFound))
	assert.False(t, errors.Is(structured, domain.ErrNotFound))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", domain.UserMessage(nil))
	assert.Equal(t, "could not connect to the server",
		domain.UserMessage(fmt.Errorf("list books: %w", domain.ErrNetwork)))
	assert.Equal(t, "No copies left",
		domain.UserMessage(fmt.Errorf("create loan: %w", &domain.APIError{Status: 400, Message: "No copies left", Structured: true})))
	assert.Equal(t, "Please enter a valid email address",
		domain.UserMessage(&domain.ValidationError{Fields: map[string]string{"email": "invalid"}}))
	assert.Equal(t, "Please fill all required fields correctly",
		domain.UserMessage(&domain.ValidationError{Fields: map[string]string{"name": "is required"}}))
	assert.Equal(t, "Due date cannot be in the past",
		domain.UserMessage(&domain.ValidationError{Fields: map[string]string{"dueAt": domain.ReasonPastDate}}))
}
