package tui

import (
	"errors"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
)

func bookFormFields(title string, b domain.Book) components.Form {
	copies := ""
	if b.ID != "" {
		copies = strconv.Itoa(b.Copies)
	}
	return components.NewForm(title,
		components.FieldSpec{Key: "isbn", Label: "ISBN", Placeholder: "978-0-00-000000-0", Value: b.ISBN, CharLimit: 20},
		components.FieldSpec{Key: "title", Label: "Title", Placeholder: "Book title", Value: b.Title},
		components.FieldSpec{Key: "author", Label: "Author", Placeholder: "Author name", Value: b.Author},
		components.FieldSpec{Key: "copies", Label: "Copies", Placeholder: "1", Value: copies, CharLimit: 6},
	)
}

func memberFormFields(title string, mb domain.Member) components.Form {
	return components.NewForm(title,
		components.FieldSpec{Key: "name", Label: "Name", Placeholder: "Full name", Value: mb.Name},
		components.FieldSpec{Key: "email", Label: "Email", Placeholder: "name@example.com", Value: mb.Email},
	)
}

// errBadCopies marks a copies value that is not a whole number
var errBadCopies = &domain.ValidationError{Fields: map[string]string{"copies": "must be a whole number"}}

// errNoCopies marks an empty copies field; zero must be typed explicitly
var errNoCopies = &domain.ValidationError{Fields: map[string]string{"copies": "is required"}}

// bookInput reads a book form
func bookInput(f components.Form) (domain.BookInput, error) {
	in := domain.BookInput{
		ISBN:   f.Value("isbn"),
		Title:  f.Value("title"),
		Author: f.Value("author"),
	}
	raw := f.Value("copies")
	if raw == "" {
		return in, errNoCopies
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return in, errBadCopies
	}
	in.Copies = n
	return in, nil
}

func memberInput(f components.Form) domain.MemberInput {
	return domain.MemberInput{Name: f.Value("name"), Email: f.Value("email")}
}

// handleFormKey routes keys to the add form of the current section
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var submitted bool

	switch m.section {
	case SectionAddBook:
		m.bookForm, cmd, submitted = m.bookForm.Update(msg)
		if submitted {
			in, err := bookInput(m.bookForm)
			if err != nil {
				return m.toastErr(MutCreateBook, err)
			}
			return m, CreateBookCmd(m.svc, in)
		}
	case SectionAddMember:
		m.memberForm, cmd, submitted = m.memberForm.Update(msg)
		if submitted {
			return m, CreateMemberCmd(m.svc, memberInput(m.memberForm))
		}
	}
	return m, cmd
}

// submitModal validates and submits the open edit or loan form
func (m Model) submitModal() (tea.Model, tea.Cmd) {
	switch m.modal.Kind {
	case ModalEditBook:
		in, err := bookInput(m.modal.form)
		if err != nil {
			return m.toastErr(MutUpdateBook, err)
		}
		return m, UpdateBookCmd(m.svc, m.modal.ID, in)
	case ModalEditMember:
		return m, UpdateMemberCmd(m.svc, m.modal.ID, memberInput(m.modal.form))
	case ModalNewLoan:
		in, err := m.modal.loan.Input()
		if err != nil {
			return m.toast(components.ToastError, "Please enter the due date as YYYY-MM-DD")
		}
		return m, CreateLoanCmd(m.svc, in)
	}
	return m, nil
}

// handleMutationDone closes the initiating form, reloads the affected
// list and refreshes the dashboard
func (m Model) handleMutationDone(msg MutationDoneMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m, cmd = m.addToast(components.ToastSuccess, msg.Message)
	cmds = append(cmds, cmd)

	if m.modal.startedBy(msg) {
		m = m.closeModal()
	}

	switch msg.Mutation {
	case MutCreateBook:
		if m.section == SectionAddBook {
			m.bookForm.Reset()
			m.section = SectionBooks
		}
	case MutCreateMember:
		if m.section == SectionAddMember {
			m.memberForm.Reset()
			m.section = SectionMembers
		}
	}

	m, cmd = m.loadList(msg.Mutation.Resource())
	cmds = append(cmds, cmd)

	// Loans move book copies
	if msg.Mutation.Resource() == state.ResourceLoans && m.snap.Loaded(state.ResourceBooks) {
		m, cmd = m.loadList(state.ResourceBooks)
		cmds = append(cmds, cmd)
	}

	m, cmd = m.loadDashboard()
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// toastErr shows a failure. Validation failures show their own message;
// request failures are prefixed with what was attempted.
func (m Model) toastErr(mut Mutation, err error) (tea.Model, tea.Cmd) {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return m.toast(components.ToastError, valErr.Error())
	}
	return m.toast(components.ToastError, mut.FailurePrefix()+": "+domain.UserMessage(err))
}
