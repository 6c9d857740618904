package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
)

// Section is one top-level view; exactly one is visible at a time
type Section int

const (
	SectionDashboard Section = iota
	SectionBooks
	SectionAddBook
	SectionMembers
	SectionAddMember
	SectionLoans
	sectionCount
)

var sectionInfo = [sectionCount]struct {
	id    string
	title string
}{
	SectionDashboard: {"dashboard", "Dashboard"},
	SectionBooks:     {"books", "Books"},
	SectionAddBook:   {"add-book", "Add Book"},
	SectionMembers:   {"members", "Members"},
	SectionAddMember: {"add-member", "Add Member"},
	SectionLoans:     {"loans", "Loans"},
}

// ID returns the stable section identifier used in config
func (s Section) ID() string {
	return sectionInfo[s].id
}

// Title returns the display name
func (s Section) Title() string {
	return sectionInfo[s].title
}

// Key returns the number key that selects the section
func (s Section) Key() string {
	return fmt.Sprint(int(s) + 1)
}

// ParseSection maps a section id to a Section
func ParseSection(id string) (Section, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for s := Section(0); s < sectionCount; s++ {
		if s.ID() == id {
			return s, nil
		}
	}
	return SectionDashboard, fmt.Errorf("unknown section %q", id)
}

// isForm reports whether the section captures typing
func (s Section) isForm() bool {
	return s == SectionAddBook || s == SectionAddMember
}

// listSection returns the list a form section leaves to on esc
func (s Section) listSection() Section {
	switch s {
	case SectionAddBook:
		return SectionBooks
	case SectionAddMember:
		return SectionMembers
	default:
		return s
	}
}

func sidebarItems() []components.SidebarItem {
	items := make([]components.SidebarItem, sectionCount)
	for s := Section(0); s < sectionCount; s++ {
		items[s] = components.SidebarItem{Key: s.Key(), Label: s.Title()}
	}
	return items
}

// navigateTo shows a section and issues its loader
func (m Model) navigateTo(s Section) (Model, tea.Cmd) {
	m.section = s
	m.search.Close()

	switch s {
	case SectionDashboard:
		return m.loadDashboard()
	case SectionBooks:
		return m.loadList(state.ResourceBooks)
	case SectionMembers:
		// Active-loan counts read the loans snapshot
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m, cmd = m.loadList(state.ResourceMembers)
		cmds = append(cmds, cmd)
		if !m.snap.Loaded(state.ResourceLoans) {
			m, cmd = m.loadList(state.ResourceLoans)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	case SectionLoans:
		return m.loadList(state.ResourceLoans)
	case SectionAddBook:
		m.bookForm.Reset()
	case SectionAddMember:
		m.memberForm.Reset()
	}
	return m, nil
}

// cycleSection moves to the next or previous section in sidebar order
func (m Model) cycleSection(delta int) (Model, tea.Cmd) {
	next := (int(m.section) + delta + int(sectionCount)) % int(sectionCount)
	return m.navigateTo(Section(next))
}

// loadList tags a new request for a resource and returns its command.
// Any response to an earlier request for the same resource is discarded.
func (m Model) loadList(r state.Resource) (Model, tea.Cmd) {
	var gen uint64
	m.snap, gen = m.snap.Begin(r)
	m.lists[r].status = listLoading
	m.lists[r].err = ""

	switch r {
	case state.ResourceBooks:
		return m, LoadBooksCmd(m.svc, m.snap.BookQuery(), gen)
	case state.ResourceMembers:
		return m, LoadMembersCmd(m.svc, gen)
	default:
		return m, LoadLoansCmd(m.svc, gen)
	}
}

// loadDashboard starts a dashboard refresh
func (m Model) loadDashboard() (Model, tea.Cmd) {
	m.dash.gen++
	if m.dash.status != listReady {
		m.dash.status = listLoading
	}
	return m, LoadDashboardCmd(m.svc, m.dash.gen)
}

// changePage moves the books page and reloads it. Moving forward needs
// the current page to have loaded; after a failure only going back or
// retrying is possible.
func (m Model) changePage(delta int) (Model, tea.Cmd) {
	var ok bool
	if delta > 0 {
		if m.lists[state.ResourceBooks].status != listReady {
			return m, nil
		}
		m.snap, ok = m.snap.NextPage()
	} else {
		m.snap, ok = m.snap.PrevPage()
	}
	if !ok {
		return m, nil
	}
	m.lists[state.ResourceBooks].cursor = 0
	return m.loadList(state.ResourceBooks)
}

// sectionAt maps a sidebar row to a section
func sectionAt(row int) (Section, bool) {
	i := row - components.SidebarHeaderRows
	if i < 0 || i >= int(sectionCount) {
		return 0, false
	}
	return Section(i), true
}
