package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func books(n int) []domain.Book {
	out := make([]domain.Book, n)
	for i := range out {
		out[i] = domain.Book{ID: fmt.Sprintf("b%d", i), Title: fmt.Sprintf("Book %d", i)}
	}
	return out
}

func TestSnapshot_LastRequestWins(t *testing.T) {
	s := New()

	s, first := s.Begin(ResourceBooks)
	s, second := s.Begin(ResourceBooks)

	s, ok := s.ApplyBooks(second, books(2))
	require.True(t, ok)

	// The older request finishes late and is discarded
	s, ok = s.ApplyBooks(first, books(5))
	assert.False(t, ok)
	assert.Len(t, s.Books, 2)
}

func TestSnapshot_GenerationsArePerResource(t *testing.T) {
	s := New()
	s, bookGen := s.Begin(ResourceBooks)
	s, _ = s.Begin(ResourceLoans)

	s, ok := s.ApplyBooks(bookGen, books(1))
	assert.True(t, ok)
	assert.True(t, s.Loaded(ResourceBooks))
	assert.False(t, s.Loaded(ResourceLoans))
}

func TestSnapshot_Pagination(t *testing.T) {
	s := New()
	assert.Equal(t, domain.ListOptions{Page: 1, Limit: 12}, s.BookQuery())

	_, ok := s.PrevPage()
	assert.False(t, ok, "previous is a no-op on page 1")

	_, ok = s.NextPage()
	assert.False(t, ok, "next is a no-op before any page loaded")

	s, gen := s.Begin(ResourceBooks)
	s, _ = s.ApplyBooks(gen, books(PageSize))
	s, ok = s.NextPage()
	require.True(t, ok)
	assert.Equal(t, domain.ListOptions{Page: 2, Limit: 12}, s.BookQuery())

	s, gen = s.Begin(ResourceBooks)
	s, _ = s.ApplyBooks(gen, books(PageSize-1))
	s, ok = s.NextPage()
	assert.False(t, ok, "next is a no-op after a short page")
	assert.Equal(t, 2, s.Page)

	s, ok = s.PrevPage()
	require.True(t, ok)
	assert.Equal(t, 1, s.Page)
}

func TestSnapshot_ActiveLoansFor(t *testing.T) {
	returned := time.Now()
	s := New()
	s, gen := s.Begin(ResourceLoans)
	s, _ = s.ApplyLoans(gen, []domain.Loan{
		{ID: "1", Member: &domain.MemberRef{ID: "m1"}},
		{ID: "2", Member: &domain.MemberRef{ID: "m1"}, DueAt: returned.AddDate(0, 0, -3)},
		{ID: "3", Member: &domain.MemberRef{ID: "m1"}, ReturnedAt: &returned},
		{ID: "4", Member: &domain.MemberRef{ID: "m2"}},
		{ID: "5"},
	})

	assert.Equal(t, 2, s.ActiveLoansFor("m1"))
	assert.Equal(t, 1, s.ActiveLoansFor("m2"))
	assert.Equal(t, 0, s.ActiveLoansFor("m3"))
	assert.Equal(t, 0, s.ActiveLoansFor(""))
}

func TestSnapshot_FailedLoadKeepsPreviousList(t *testing.T) {
	s := New()
	s, gen := s.Begin(ResourceLoans)
	s, _ = s.ApplyLoans(gen, []domain.Loan{{ID: "1", Member: &domain.MemberRef{ID: "m1"}}})

	// A new request that fails never calls Apply
	s, _ = s.Begin(ResourceLoans)
	assert.Len(t, s.Loans, 1)
	assert.Equal(t, 1, s.ActiveLoansFor("m1"))
}
