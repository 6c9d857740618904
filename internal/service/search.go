package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/stacks/internal/domain"
)

// Section search counts matches in the loaded snapshot and never filters it.
// Matching is a case-insensitive substring test over each entity's fields.

// CountBooks counts books whose title, author or isbn contains query
func CountBooks(books []domain.Book, query string) int {
	return countMatches(books, query, func(b domain.Book) []string {
		return []string{b.Title, b.Author, b.ISBN}
	})
}

// CountMembers counts members whose name or email contains query
func CountMembers(members []domain.Member, query string) int {
	return countMatches(members, query, func(m domain.Member) []string {
		return []string{m.Name, m.Email}
	})
}

// CountLoans counts loans whose member name or book title contains query
func CountLoans(loans []domain.Loan, query string) int {
	return countMatches(loans, query, func(l domain.Loan) []string {
		return []string{l.MemberName(), l.BookTitle()}
	})
}

func countMatches[T any](items []T, query string, fields func(T) []string) int {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0
	}
	n := 0
	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), query) {
				n++
				break
			}
		}
	}
	return n
}

// RankLabels returns the indexes of labels matching query, best match first.
// Matching ignores case and diacritics, so "jose" finds "José".
// An empty query keeps every label in its original order.
func RankLabels(labels []string, query string) []int {
	if strings.TrimSpace(query) == "" {
		idx := make([]int, len(labels))
		for i := range labels {
			idx[i] = i
		}
		return idx
	}

	matches := fuzzy.RankFindNormalizedFold(query, labels)

	// Sort by distance (lower is better), ties keep list order
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].OriginalIndex < matches[j].OriginalIndex
	})

	idx := make([]int, len(matches))
	for i, m := range matches {
		idx[i] = m.OriginalIndex
	}
	return idx
}
