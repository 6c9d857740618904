package tui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/stacks/internal/dashboard"
	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/service"
	"github.com/mmcdole/stacks/internal/state"
	"github.com/mmcdole/stacks/internal/tui/components"
	"github.com/mmcdole/stacks/internal/tui/styles"
)

// Layout
const (
	sidebarWidth = 24

	// Vertical layout: single footer line
	ChromeHeight = 1

	tickInterval = 100 * time.Millisecond
)

// listStatus is the load state of one list section
type listStatus int

const (
	listIdle listStatus = iota
	listLoading
	listReady
	listFailed
)

// listView is the per-resource view state kept beside the snapshot
type listView struct {
	status listStatus
	err    string
	cursor int
}

// dashView is the dashboard section state
type dashView struct {
	status  listStatus
	gen     uint64
	summary dashboard.Summary
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready  bool
	Width  int
	Height int

	// Services
	svc    *service.LibraryService
	prefs  domain.PreferenceStore
	logger *slog.Logger
	now    func() time.Time

	// Navigation and data
	section Section
	snap    state.Snapshot
	lists   [3]listView
	dash    dashView

	// Overlays and inputs
	modal      Modal
	bookForm   components.Form
	memberForm components.Form
	search     searchPrompt
	showHelp   bool

	// Notifications
	toasts      []components.Toast
	nextToastID int

	apiStatus    components.APIStatus
	theme        domain.Theme
	spinnerFrame int

	startCmd tea.Cmd
}

// NewModel creates the application model showing start once running
func NewModel(svc *service.LibraryService, prefs domain.PreferenceStore, start Section, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	theme := prefs.Theme()
	styles.Apply(theme)

	m := Model{
		svc:        svc,
		prefs:      prefs,
		logger:     logger,
		now:        time.Now,
		snap:       state.New(),
		bookForm:   bookFormFields("Add Book", domain.Book{}),
		memberForm: memberFormFields("Add Member", domain.Member{}),
		search:     newSearchPrompt(),
		theme:      theme,
	}
	m, m.startCmd = m.navigateTo(start)
	return m
}

// Init probes the backend and loads the start section
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		ProbeCmd(m.svc),
		m.startCmd,
		TickCmd(tickInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.bookForm.SetWidth(m.contentWidth())
		m.memberForm.SetWidth(m.contentWidth())
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TickMsg:
		m.spinnerFrame++
		return m, TickCmd(tickInterval)

	case ProbeResultMsg:
		if msg.Err != nil {
			m.apiStatus = components.APIDisconnected
			m.logger.Warn("backend unreachable", "error", msg.Err)
			return m.toast(components.ToastWarning, "Could not connect to backend API. Run 'stacks mock' for demonstration data.")
		}
		m.apiStatus = components.APIConnected
		return m, nil

	case DashboardLoadedMsg:
		return m.handleDashboardLoaded(msg)

	case BooksLoadedMsg:
		var ok bool
		if m.snap, ok = m.snap.ApplyBooks(msg.Gen, msg.Books); ok {
			m = m.markReady(state.ResourceBooks)
		}
		return m, nil

	case MembersLoadedMsg:
		var ok bool
		if m.snap, ok = m.snap.ApplyMembers(msg.Gen, msg.Members); ok {
			m = m.markReady(state.ResourceMembers)
		}
		return m, nil

	case LoansLoadedMsg:
		var ok bool
		if m.snap, ok = m.snap.ApplyLoans(msg.Gen, msg.Loans); ok {
			m = m.markReady(state.ResourceLoans)
		}
		return m, nil

	case ListFailedMsg:
		if !m.snap.Current(msg.Resource, msg.Gen) {
			return m, nil
		}
		m.lists[msg.Resource].status = listFailed
		m.lists[msg.Resource].err = domain.UserMessage(msg.Err)
		m.logger.Error("list load failed", "resource", msg.Resource.String(), "error", msg.Err)
		return m.toast(components.ToastError, listFailureText(msg.Resource))

	case EditBookReadyMsg:
		m.modal = editBookModal(msg.Book)
		return m, nil

	case EditMemberReadyMsg:
		m.modal = editMemberModal(msg.Member)
		return m, nil

	case LoanOptionsReadyMsg:
		m.modal = newLoanModal(msg.Options, m.svc.DefaultDueDate())
		return m, nil

	case MutationDoneMsg:
		return m.handleMutationDone(msg)

	case MutationFailedMsg:
		// The form stays open so the user can correct and resubmit
		m.logger.Error("mutation failed", "mutation", msg.Mutation.FailurePrefix(), "error", msg.Err)
		return m.toastErr(msg.Mutation, msg.Err)

	case ErrMsg:
		m.logger.Error(msg.Context, "error", msg.Err)
		return m.toast(components.ToastError, msg.Context+": "+domain.UserMessage(msg.Err))

	case ThemeSavedMsg:
		if msg.Err != nil {
			m.logger.Error("save theme", "theme", string(msg.Theme), "error", msg.Err)
		}
		return m, nil

	case ToastExpiredMsg:
		return m.removeToast(msg.ID), nil
	}

	return m, nil
}

// markReady records a successful list load and keeps the cursor in range
func (m Model) markReady(r state.Resource) Model {
	m.lists[r].status = listReady
	m.lists[r].err = ""
	if n := m.listLen(r); m.lists[r].cursor >= n {
		m.lists[r].cursor = max(n-1, 0)
	}
	return m
}

// handleDashboardLoaded stores the figures of the latest dashboard
// refresh. Fetched members and loans also refresh the snapshot unless a
// list request for them is in flight.
func (m Model) handleDashboardLoaded(msg DashboardLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.dash.gen {
		return m, nil
	}
	lists := msg.Lists
	m.dash.summary = dashboard.Summarize(lists, m.now())
	m.dash.status = listReady

	var gen uint64
	if !lists.MembersFailed && m.lists[state.ResourceMembers].status != listLoading {
		m.snap, gen = m.snap.Begin(state.ResourceMembers)
		m.snap, _ = m.snap.ApplyMembers(gen, lists.Members)
		m = m.markReady(state.ResourceMembers)
	}
	if !lists.LoansFailed && m.lists[state.ResourceLoans].status != listLoading {
		m.snap, gen = m.snap.Begin(state.ResourceLoans)
		m.snap, _ = m.snap.ApplyLoans(gen, lists.Loans)
		m = m.markReady(state.ResourceLoans)
	}

	if m.dash.summary.Degraded() {
		m.logger.Warn("dashboard degraded",
			"books_failed", lists.BooksFailed,
			"members_failed", lists.MembersFailed,
			"loans_failed", lists.LoansFailed)
		return m.toast(components.ToastWarning, "Some dashboard data could not be loaded. Showing sample figures.")
	}
	return m, nil
}

func listFailureText(r state.Resource) string {
	switch r {
	case state.ResourceBooks:
		return "Error loading books. Please check your connection."
	case state.ResourceMembers:
		return "Error loading members"
	default:
		return "Error loading loans"
	}
}

// resource returns the list a section displays
func (s Section) resource() (state.Resource, bool) {
	switch s {
	case SectionBooks:
		return state.ResourceBooks, true
	case SectionMembers:
		return state.ResourceMembers, true
	case SectionLoans:
		return state.ResourceLoans, true
	}
	return 0, false
}

func (m Model) listLen(r state.Resource) int {
	switch r {
	case state.ResourceBooks:
		return len(m.snap.Books)
	case state.ResourceMembers:
		return len(m.snap.Members)
	default:
		return len(m.snap.Loans)
	}
}

func (m Model) selectedBook() (domain.Book, bool) {
	c := m.lists[state.ResourceBooks].cursor
	if c < 0 || c >= len(m.snap.Books) {
		return domain.Book{}, false
	}
	return m.snap.Books[c], true
}

func (m Model) selectedMember() (domain.Member, bool) {
	c := m.lists[state.ResourceMembers].cursor
	if c < 0 || c >= len(m.snap.Members) {
		return domain.Member{}, false
	}
	return m.snap.Members[c], true
}

func (m Model) selectedLoan() (domain.Loan, bool) {
	c := m.lists[state.ResourceLoans].cursor
	if c < 0 || c >= len(m.snap.Loans) {
		return domain.Loan{}, false
	}
	return m.snap.Loans[c], true
}

func (m Model) contentWidth() int {
	return max(m.Width-sidebarWidth, 20)
}

func (m Model) contentHeight() int {
	return max(m.Height-ChromeHeight, 1)
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.showHelp {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.renderHelp())
	}

	if m.modal.IsOpen() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.modalView())
	}

	height := m.contentHeight()
	toasts := components.RenderToasts(m.toasts, min(m.contentWidth(), 48))
	bodyHeight := height
	if toasts != "" {
		bodyHeight = max(height-lipgloss.Height(toasts), 1)
	}

	body := lipgloss.NewStyle().
		Width(m.contentWidth()).
		Height(bodyHeight).
		MaxHeight(bodyHeight).
		Render(m.renderSection(bodyHeight))
	if toasts != "" {
		body = lipgloss.JoinVertical(lipgloss.Right, body, toasts)
	}

	sidebar := components.RenderSidebar(sidebarItems(), int(m.section), m.apiStatus, sidebarWidth, height)
	content := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, body)

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderFooter())
}
