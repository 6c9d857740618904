package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// handleKeyMsg routes a key press. Overlays and text inputs take
// precedence over section shortcuts.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if key.Matches(msg, Keys.Dismiss) {
		return m.dismissNewest(), nil
	}

	if m.modal.IsOpen() {
		return m.handleModalKey(msg)
	}

	if m.search.active {
		return m.handleSearchKey(msg)
	}

	if m.section.isForm() {
		if key.Matches(msg, Keys.Escape) {
			return m.navigateTo(m.section.listSection())
		}
		return m.handleFormKey(msg)
	}

	// Number keys select a section directly
	if s, ok := sectionForKey(msg.String()); ok {
		return m.navigateTo(s)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, Keys.NextSection):
		return m.cycleSection(1)

	case key.Matches(msg, Keys.PrevSection):
		return m.cycleSection(-1)

	case key.Matches(msg, Keys.Search):
		cmd := m.search.Open()
		return m, cmd

	case key.Matches(msg, Keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, Keys.Refresh):
		return m.refreshSection()

	case key.Matches(msg, Keys.Up):
		return m.moveCursor(-1), nil

	case key.Matches(msg, Keys.Down):
		return m.moveCursor(1), nil

	case key.Matches(msg, Keys.NextPage):
		if m.section == SectionBooks {
			return m.changePage(1)
		}

	case key.Matches(msg, Keys.PrevPage):
		if m.section == SectionBooks {
			return m.changePage(-1)
		}

	case key.Matches(msg, Keys.Add):
		switch m.section {
		case SectionBooks:
			return m.navigateTo(SectionAddBook)
		case SectionMembers:
			return m.navigateTo(SectionAddMember)
		case SectionLoans:
			return m, LoadLoanOptionsCmd(m.svc)
		}

	case key.Matches(msg, Keys.NewLoan):
		if m.section == SectionLoans || m.section == SectionDashboard {
			return m, LoadLoanOptionsCmd(m.svc)
		}

	case key.Matches(msg, Keys.Edit):
		return m.editSelected()

	case key.Matches(msg, Keys.Delete):
		return m.deleteSelected()

	case key.Matches(msg, Keys.Return):
		return m.returnSelected()
	}

	return m, nil
}

func sectionForKey(k string) (Section, bool) {
	for s := Section(0); s < sectionCount; s++ {
		if s.Key() == k {
			return s, true
		}
	}
	return 0, false
}

// handleMouseMsg handles sidebar clicks and clicks outside an open modal
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.modal.IsOpen() {
		if !m.insideModal(msg.X, msg.Y) {
			return m.closeModal(), nil
		}
		return m, nil
	}

	if msg.X < sidebarWidth {
		if s, ok := sectionAt(msg.Y); ok {
			return m.navigateTo(s)
		}
	}
	return m, nil
}

// refreshSection reloads what the current section shows, also serving
// as the retry action of an error panel
func (m Model) refreshSection() (tea.Model, tea.Cmd) {
	switch m.section {
	case SectionDashboard:
		return m.loadDashboard()
	case SectionBooks:
		return m.loadList(state.ResourceBooks)
	case SectionMembers:
		var cmd1, cmd2 tea.Cmd
		m, cmd1 = m.loadList(state.ResourceMembers)
		m, cmd2 = m.loadList(state.ResourceLoans)
		return m, tea.Batch(cmd1, cmd2)
	case SectionLoans:
		return m.loadList(state.ResourceLoans)
	}
	return m, nil
}

// moveCursor moves the selection of the current list
func (m Model) moveCursor(delta int) Model {
	r, ok := m.section.resource()
	if !ok {
		return m
	}
	n := m.listLen(r)
	if n == 0 {
		return m
	}
	c := m.lists[r].cursor + delta
	m.lists[r].cursor = min(max(c, 0), n-1)
	return m
}

// actionable reports whether the current section shows its list, so that
// item actions target something on screen
func (m Model) actionable() bool {
	r, ok := m.section.resource()
	return ok && m.lists[r].status != listFailed
}

func (m Model) editSelected() (tea.Model, tea.Cmd) {
	if !m.actionable() {
		return m, nil
	}
	switch m.section {
	case SectionBooks:
		if b, ok := m.selectedBook(); ok {
			return m, LoadBookForEditCmd(m.svc, b.ID)
		}
	case SectionMembers:
		if mb, ok := m.selectedMember(); ok {
			return m, LoadMemberForEditCmd(m.svc, mb.ID)
		}
	}
	return m, nil
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	if !m.actionable() {
		return m, nil
	}
	switch m.section {
	case SectionBooks:
		if b, ok := m.selectedBook(); ok {
			m.modal = confirmDeleteModal(state.ResourceBooks, b.ID, b.Title)
		}
	case SectionMembers:
		if mb, ok := m.selectedMember(); ok {
			m.modal = confirmDeleteModal(state.ResourceMembers, mb.ID, mb.Name)
		}
	}
	return m, nil
}

// returnSelected returns the selected loan. Returned loans offer no
// return action, so nothing is sent for them.
func (m Model) returnSelected() (tea.Model, tea.Cmd) {
	if m.section != SectionLoans || !m.actionable() {
		return m, nil
	}
	loan, ok := m.selectedLoan()
	if !ok || !loan.IsOpen() {
		return m, nil
	}
	return m, ReturnLoanCmd(m.svc, loan)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	m.theme = m.theme.Toggle()
	styles.Apply(m.theme)

	var cmd tea.Cmd
	m, cmd = m.addToast(components.ToastSuccess, "Theme changed to "+string(m.theme))
	return m, tea.Batch(cmd, SaveThemeCmd(m.prefs, m.theme))
}
