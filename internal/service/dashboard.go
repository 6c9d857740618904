package service

import (
	"context"

	"github.com/mmcdole/stacks/internal/dashboard"
	"github.com/mmcdole/stacks/internal/domain"
	"golang.org/x/sync/errgroup"
)

// The dashboard reads unpaged lists
var dashboardQuery = domain.ListOptions{}

// LoadDashboard fetches the three lists concurrently. Each failed fetch is
// flagged and replaced by an empty list so the others still render.
func (s *LibraryService) LoadDashboard(ctx context.Context) dashboard.Lists {
	var lists dashboard.Lists

	var g errgroup.Group
	g.Go(func() error {
		books, err := s.backend.ListBooks(ctx, dashboardQuery)
		if err != nil {
			s.logger.Warn("dashboard: books unavailable", "error", err)
			lists.BooksFailed = true
			return nil
		}
		lists.Books = books
		return nil
	})
	g.Go(func() error {
		members, err := s.backend.ListMembers(ctx, dashboardQuery)
		if err != nil {
			s.logger.Warn("dashboard: members unavailable", "error", err)
			lists.MembersFailed = true
			return nil
		}
		lists.Members = members
		return nil
	})
	g.Go(func() error {
		loans, err := s.backend.ListLoans(ctx, dashboardQuery)
		if err != nil {
			s.logger.Warn("dashboard: loans unavailable", "error", err)
			lists.LoansFailed = true
			return nil
		}
		lists.Loans = loans
		return nil
	})
	g.Wait()

	if lists.Degraded() {
		s.logger.Warn("dashboard loaded with placeholders",
			"booksFailed", lists.BooksFailed,
			"membersFailed", lists.MembersFailed,
			"loansFailed", lists.LoansFailed,
		)
	}
	return lists
}
