package dashboard

import (
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func loan(id string, dueInDays int, returned bool) domain.Loan {
	l := domain.Loan{ID: id, DueAt: now.AddDate(0, 0, dueInDays)}
	if returned {
		r := now.AddDate(0, 0, -1)
		l.ReturnedAt = &r
	}
	return l
}

func TestSummarize(t *testing.T) {
	var books []domain.Book
	for i := range 5 {
		books = append(books, domain.Book{ID: fmt.Sprint(i)})
	}
	lists := Lists{
		Books:   books,
		Members: []domain.Member{{ID: "m1"}, {ID: "m2"}},
		Loans: []domain.Loan{
			loan("a", 3, false),
			loan("b", -2, false),
			loan("c", -10, true),
			loan("d", 1, false),
			loan("e", -1, false),
			loan("f", 5, true),
		},
	}

	s := Summarize(lists, now)
	assert.False(t, s.Degraded())
	assert.Equal(t, 5, s.TotalBooks)
	assert.Equal(t, 2, s.TotalMembers)
	assert.Equal(t, 4, s.ActiveLoans)
	assert.Equal(t, 2, s.OverdueLoans)

	// Received order, not sorted by time
	ids := make([]string, 0, len(s.Activity))
	for _, l := range s.Activity {
		ids = append(ids, l.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, ids)
	assert.Equal(t, books[:3], s.Popular)
}

func TestSummarize_OverdueMatchesLoanStatus(t *testing.T) {
	loans := []domain.Loan{loan("a", -1, false), loan("b", 0, false), loan("c", -5, true)}
	_, overdue := CountLoans(loans, now)

	want := 0
	for _, l := range loans {
		if l.Status(now) == domain.LoanOverdue {
			want++
		}
	}
	assert.Equal(t, want, overdue)
}

func TestSummarize_LoansFailed(t *testing.T) {
	lists := Lists{
		Books:       []domain.Book{{ID: "1"}, {ID: "2"}},
		Members:     []domain.Member{{ID: "m"}},
		LoansFailed: true,
	}

	s := Summarize(lists, now)
	assert.True(t, s.Degraded())
	assert.Equal(t, 2, s.TotalBooks)
	assert.Equal(t, 1, s.TotalMembers)
	assert.Equal(t, PlaceholderActive, s.ActiveLoans)
	assert.Equal(t, PlaceholderOverdue, s.OverdueLoans)
	assert.Empty(t, s.Activity)
}

func TestSummarize_EmptyIsNotDegraded(t *testing.T) {
	s := Summarize(Lists{}, now)
	assert.False(t, s.Degraded())
	assert.Zero(t, s.TotalBooks)
	assert.Empty(t, s.Popular)
}
