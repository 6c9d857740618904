package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// ModalKind selects which overlay is open
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalEditBook
	ModalEditMember
	ModalNewLoan
	ModalConfirmDelete
)

// Modal is the active overlay. Its form is built when it opens and
// discarded with the value when it closes.
type Modal struct {
	Kind ModalKind

	// Edited or deleted entity
	ID       string
	Name     string
	Resource state.Resource

	form components.Form
	loan components.LoanForm
}

const modalWidth = 48

// IsOpen reports whether any overlay is shown
func (d Modal) IsOpen() bool {
	return d.Kind != ModalNone
}

func editBookModal(b domain.Book) Modal {
	f := bookFormFields("Edit Book", b)
	f.SetWidth(modalWidth)
	return Modal{Kind: ModalEditBook, ID: b.ID, Name: b.Title, Resource: state.ResourceBooks, form: f}
}

func editMemberModal(mb domain.Member) Modal {
	f := memberFormFields("Edit Member", mb)
	f.SetWidth(modalWidth)
	return Modal{Kind: ModalEditMember, ID: mb.ID, Name: mb.Name, Resource: state.ResourceMembers, form: f}
}

func newLoanModal(opts service.LoanOptions, due time.Time) Modal {
	f := components.NewLoanForm(opts.Members, opts.Books, due)
	f.SetWidth(modalWidth)
	return Modal{Kind: ModalNewLoan, Resource: state.ResourceLoans, loan: f}
}

func confirmDeleteModal(r state.Resource, id, name string) Modal {
	return Modal{Kind: ModalConfirmDelete, ID: id, Name: name, Resource: r}
}

// startedBy reports whether a completed mutation was submitted from this
// overlay. Mutations from add forms or other entities leave it open.
func (d Modal) startedBy(msg MutationDoneMsg) bool {
	switch d.Kind {
	case ModalEditBook:
		return msg.Mutation == MutUpdateBook && msg.ID == d.ID
	case ModalEditMember:
		return msg.Mutation == MutUpdateMember && msg.ID == d.ID
	case ModalNewLoan:
		return msg.Mutation == MutCreateLoan
	}
	return false
}

// closeModal discards the overlay and its form state
func (m Model) closeModal() Model {
	m.modal = Modal{}
	return m
}

// handleModalKey routes keys to the open overlay
func (m Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal.Kind == ModalConfirmDelete {
		switch {
		case key.Matches(msg, Keys.Confirm):
			return m.confirmDelete()
		case key.Matches(msg, Keys.Deny):
			return m.closeModal(), nil
		}
		return m, nil
	}

	if key.Matches(msg, Keys.Escape) {
		return m.closeModal(), nil
	}

	var cmd tea.Cmd
	var submitted bool
	switch m.modal.Kind {
	case ModalEditBook, ModalEditMember:
		m.modal.form, cmd, submitted = m.modal.form.Update(msg)
	case ModalNewLoan:
		m.modal.loan, cmd, submitted = m.modal.loan.Update(msg)
	}
	if submitted {
		return m.submitModal()
	}
	return m, cmd
}

// confirmDelete issues the delete the user agreed to
func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	target := m.modal
	m = m.closeModal()
	switch target.Resource {
	case state.ResourceBooks:
		return m, DeleteBookCmd(m.svc, target.ID)
	case state.ResourceMembers:
		return m, DeleteMemberCmd(m.svc, target.ID)
	}
	return m, nil
}

// modalView renders the open overlay box
func (m Model) modalView() string {
	switch m.modal.Kind {
	case ModalEditBook, ModalEditMember:
		return styles.ModalStyle.Render(m.modal.form.View())
	case ModalNewLoan:
		return styles.ModalStyle.Render(m.modal.loan.View())
	case ModalConfirmDelete:
		noun := "book"
		if m.modal.Resource == state.ResourceMembers {
			noun = "member"
		}
		body := lipgloss.JoinVertical(lipgloss.Center,
			styles.ModalTitleStyle.Render(fmt.Sprintf("Delete %s?", noun)),
			fmt.Sprintf("Are you sure you want to delete %q?", m.modal.Name),
			"",
			styles.HelpKeyStyle.Render("[Y]")+" Yes      "+styles.HelpKeyStyle.Render("[N]")+" No",
		)
		return styles.ModalStyle.Render(body)
	}
	return ""
}

// modalBounds returns the screen rectangle of the centered overlay
func (m Model) modalBounds() (x0, y0, x1, y1 int) {
	view := m.modalView()
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	x0 = max((m.Width-w)/2, 0)
	y0 = max((m.Height-h)/2, 0)
	return x0, y0, x0 + w, y0 + h
}

// insideModal reports whether a screen cell falls on the overlay box
func (m Model) insideModal(x, y int) bool {
	x0, y0, x1, y1 := m.modalBounds()
	return x >= x0 && x < x1 && y >= y0 && y < y1
}
