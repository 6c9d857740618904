package service

import (
	"testing"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCountMatches(t *testing.T) {
	books := []domain.Book{
		{Title: "The Go Programming Language", Author: "Donovan", ISBN: "978-0134190440"},
		{Title: "Dune", Author: "Frank Herbert", ISBN: "978-0441013593"},
		{Title: "Children of Dune", Author: "Frank Herbert", ISBN: "978-0593098240"},
	}
	assert.Equal(t, 2, CountBooks(books, "dune"))
	assert.Equal(t, 2, CountBooks(books, "HERBERT"))
	assert.Equal(t, 1, CountBooks(books, "0134"))
	assert.Equal(t, 0, CountBooks(books, "rust"))
	assert.Equal(t, 0, CountBooks(books, "   "))

	members := []domain.Member{{Name: "Ada Lovelace", Email: "ada@example.com"}, {Name: "Alan", Email: "alan@turing.org"}}
	assert.Equal(t, 2, CountMembers(members, "a"))
	assert.Equal(t, 1, CountMembers(members, "turing"))

	loans := []domain.Loan{
		{Member: &domain.MemberRef{Name: "Ada"}, Book: &domain.BookRef{Title: "Dune"}},
		{},
	}
	assert.Equal(t, 1, CountLoans(loans, "dune"))
	assert.Equal(t, 1, CountLoans(loans, "unknown member"))
}

func TestRankLabels(t *testing.T) {
	labels := []string{"José Saramago", "Joseph Heller", "Ada Lovelace"}

	assert.Equal(t, []int{0, 1, 2}, RankLabels(labels, ""))

	ranked := RankLabels(labels, "jose")
	assert.ElementsMatch(t, []int{0, 1}, ranked)

	assert.Empty(t, RankLabels(labels, "zzz"))
}
