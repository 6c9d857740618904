package components

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 10, 12, 0, 0, 0, time.Local)

func TestRenderBookCard(t *testing.T) {
	card := RenderBookCard(domain.Book{ID: "1", ISBN: "978-1", Title: "Dune", Author: "Frank Herbert", Copies: 1}, false, 40)
	assert.Contains(t, card, "Dune")
	assert.Contains(t, card, "by Frank Herbert")
	assert.Contains(t, card, "1 copy available")
	assert.Contains(t, card, "ISBN: 978-1")
	assert.NotContains(t, card, "Edit")

	selected := RenderBookCard(domain.Book{Title: "Dune", Copies: 3}, true, 40)
	assert.Contains(t, selected, "3 copies available")
	assert.Contains(t, selected, "Edit")
}

func TestRenderMemberRowBadge(t *testing.T) {
	m := domain.Member{Name: "Ada", Email: "ada@example.com", JoinedAt: now}

	row := RenderMemberRow(m, 2, false, 100)
	assert.Contains(t, row, "Ada")
	assert.Contains(t, row, "ada@example.com")
	assert.Contains(t, row, "Active")
	assert.Contains(t, row, FormatDate(now))

	full := RenderMemberRow(m, domain.MaxActiveLoans, false, 100)
	assert.Contains(t, full, "Max Loans")

	noDate := RenderMemberRow(domain.Member{Name: "Bo"}, 0, true, 100)
	assert.Contains(t, noDate, "Unknown")
}

func TestRenderLoanCard(t *testing.T) {
	returned := now.AddDate(0, 0, -1)

	tests := []struct {
		name       string
		loan       domain.Loan
		wantStatus string
		wantReturn bool
	}{
		{
			name:       "active",
			loan:       domain.Loan{Member: &domain.MemberRef{Name: "Ada"}, Book: &domain.BookRef{Title: "Dune"}, DueAt: now.AddDate(0, 0, 3)},
			wantStatus: "Active",
			wantReturn: true,
		},
		{
			name:       "overdue",
			loan:       domain.Loan{Member: &domain.MemberRef{Name: "Ada"}, Book: &domain.BookRef{Title: "Dune"}, DueAt: now.AddDate(0, 0, -3)},
			wantStatus: "Overdue",
			wantReturn: true,
		},
		{
			name:       "returned",
			loan:       domain.Loan{Member: &domain.MemberRef{Name: "Ada"}, Book: &domain.BookRef{Title: "Dune"}, DueAt: now.AddDate(0, 0, -3), ReturnedAt: &returned},
			wantStatus: "Returned",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := RenderLoanCard(tt.loan, now, true, 50)
			assert.Contains(t, card, tt.wantStatus)
			assert.Contains(t, card, "Ada")
			if tt.wantReturn {
				assert.Contains(t, card, "Mark Returned")
			} else {
				assert.NotContains(t, card, "Mark Returned")
				assert.Contains(t, card, "Returned: "+FormatDate(returned))
			}
		})
	}
}

func TestRenderLoanCardMissingReferences(t *testing.T) {
	card := RenderLoanCard(domain.Loan{ID: "l1", DueAt: now}, now, false, 50)
	assert.Contains(t, card, "Unknown Member")
	assert.Contains(t, card, "Unknown Book")

	item := RenderActivityItem(domain.Loan{Book: &domain.BookRef{Title: "Dune"}}, 60)
	assert.Contains(t, item, `Unknown Member borrowed "Dune"`)
}

func TestPanels(t *testing.T) {
	assert.Contains(t, RenderEmpty(KindBooks, 80), "No Books Found")
	assert.Contains(t, RenderEmpty(KindBooks, 80), "Add First Book")
	assert.Contains(t, RenderEmpty(KindMembers, 80), "No Members Found")
	assert.Contains(t, RenderEmpty(KindLoans, 80), "Create First Loan")

	errPanel := RenderError(KindLoans, "could not connect to the server", 80)
	assert.Contains(t, errPanel, "Error Loading Loans")
	assert.Contains(t, errPanel, "Retry")
	assert.NotContains(t, errPanel, "No Loans Found")

	assert.Contains(t, RenderLoading(KindMembers, 0, 80), "Loading members...")
}

func TestRenderStatAndPopular(t *testing.T) {
	assert.Contains(t, RenderStat("Total Books", 42, 20), "42")
	assert.Contains(t, RenderPopularBook(domain.Book{Title: "Dune", Author: "Herbert", Copies: 0}, 30), "0 copies available")
}

func TestFormSubmitAndValues(t *testing.T) {
	f := NewForm("Add Member",
		FieldSpec{Key: "name", Label: "Name"},
		FieldSpec{Key: "email", Label: "Email", Value: "a@b.co"},
	)
	assert.Equal(t, "name", f.Focused())

	f, _, submitted := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Ada")})
	assert.False(t, submitted)
	assert.Equal(t, "Ada", f.Value("name"))

	f, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, submitted, "enter moves to the next field first")
	assert.Equal(t, "email", f.Focused())

	_, _, submitted = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, submitted)

	f.Reset()
	assert.Empty(t, f.Value("email"))
	assert.Equal(t, "name", f.Focused())
}

func TestLoanFormInput(t *testing.T) {
	due := time.Date(2026, 6, 24, 0, 0, 0, 0, time.Local)
	f := NewLoanForm(
		[]domain.Member{{ID: "m1", Name: "Ada Lovelace"}, {ID: "m2", Name: "Alan Turing"}},
		[]domain.Book{{ID: "b1", Title: "Dune", Copies: 2}},
		due,
	)

	f, _, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("tur")})
	require.Equal(t, 1, f.Member.Len())

	in, err := f.Input()
	require.NoError(t, err)
	assert.Equal(t, "m2", in.MemberID)
	assert.Equal(t, "b1", in.BookID)
	assert.True(t, due.Equal(in.DueAt))
	assert.Equal(t, "Dune (2 copies available)", BookOptionLabel(domain.Book{Title: "Dune", Copies: 2}))
}
