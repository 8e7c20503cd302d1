package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"pennywise/internal/api"
	"pennywise/internal/auth"
	"pennywise/internal/config"
	"pennywise/internal/form"
	"pennywise/internal/ledger"
	"pennywise/internal/nav"
	"pennywise/internal/report"
)

type sessionInitMsg struct {
	authed bool
	err    error
}

type loginDoneMsg struct {
	err error
}

type logoutDoneMsg struct {
	err error
}

type refreshDoneMsg struct{}

type mutationOp int

const (
	opQuickAdd mutationOp = iota
	opEditSave
	opEditDelete
	opCategoryCreate
	opCategoryUpdate
	opCategoryDelete
)

type mutationDoneMsg struct {
	op  mutationOp
	err error
}

type reportMsg struct {
	key   string
	seq   uint64
	items []api.ReportItem
	err   error
}

type exportDoneMsg struct {
	path string
}

type calendarTarget int

const (
	calendarTargetEntry calendarTarget = iota
	calendarTargetEdit
)

const categoryPageSize = 8

type model struct {
	cfg     *config.Config
	log     zerolog.Logger
	client  *api.Client
	store   *ledger.Store
	session *auth.Session
	reports *report.Service
	nav     *nav.Stack
	loc     *time.Location

	width  int
	height int

	authed     bool
	checking   bool
	loginEmail textinput.Model
	loginPass  textinput.Model
	loginFocus int
	loginErr   string
	loggingIn  bool

	activeType api.CategoryType
	snap       ledger.Snapshot
	storeErr   string
	loading    bool

	entry        form.Entry
	noteInput    textinput.Model
	noteEditing  bool
	categoryPage int
	categoryIdx  int

	historyAnchor      time.Time
	historyCursor      int
	historyOptionsOpen bool
	historyOptionIdx   int

	edit       *form.EditDraft
	editAmount textinput.Model
	editNote   textinput.Model
	editFocus  int
	editCatIdx int
	editErr    string

	chartMode    report.Mode
	chartDate    time.Time
	chartType    api.CategoryType
	chartKey     string
	chartItems   []report.Breakdown
	chartErr     string
	chartLoading bool

	catCursor    int
	catNameInput textinput.Model
	catType      api.CategoryType
	catEditing   *api.Category
	catErr       string

	menuOpen   bool
	menuCursor int
	menuNote   string

	calendarOpen   bool
	calendarTarget calendarTarget
	calendarCursor time.Time

	quitting bool
}

// New wires the screens around the shared store, session and report service.
func New(cfg *config.Config, client *api.Client, store *ledger.Store, session *auth.Session, reports *report.Service, log zerolog.Logger) tea.Model {
	email := textinput.New()
	email.Prompt = "email: "
	email.Placeholder = "you@example.com"
	email.Width = 40
	email.Focus()

	pass := textinput.New()
	pass.Prompt = "password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.Width = 40

	note := textinput.New()
	note.Prompt = "note: "
	note.Placeholder = "optional"
	note.Width = 40

	editAmount := textinput.New()
	editAmount.Prompt = "$ "
	editAmount.Width = 20

	editNote := textinput.New()
	editNote.Prompt = "note: "
	editNote.Width = 40

	catName := textinput.New()
	catName.Prompt = "name: "
	catName.Width = 30

	loc := cfg.Location()
	now := time.Now().In(loc)

	return model{
		cfg:           cfg,
		log:           log,
		client:        client,
		store:         store,
		session:       session,
		reports:       reports,
		nav:           nav.New(),
		loc:           loc,
		checking:      true,
		loginEmail:    email,
		loginPass:     pass,
		noteInput:     note,
		editAmount:    editAmount,
		editNote:      editNote,
		catNameInput:  catName,
		activeType:    api.Expense,
		entry:         form.NewEntry(now, loc),
		historyAnchor: now,
		chartMode:     report.ModeDay,
		chartDate:     now,
		chartType:     api.Expense,
		catType:       api.Expense,
	}
}

func (m model) Init() tea.Cmd {
	return m.initSessionCmd()
}

func (m model) initSessionCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.session.Init(context.Background())
		return sessionInitMsg{authed: m.session.Authenticated(), err: err}
	}
}

func (m model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		// The store records its own error string; the msg just signals
		// completion.
		_ = m.store.Refresh(context.Background())
		return refreshDoneMsg{}
	}
}

func (m *model) syncFromStore() {
	m.snap = m.store.Snapshot()
	m.storeErr = m.store.Err()
	m.clampCursors()
}

func (m *model) clampCursors() {
	grid := m.snap.CategoriesOfType(m.activeType)
	maxPage := 0
	if len(grid) > 0 {
		maxPage = (len(grid) - 1) / categoryPageSize
	}
	if m.categoryPage > maxPage {
		m.categoryPage = maxPage
	}
	if m.categoryIdx >= len(m.pageCategories(grid)) {
		m.categoryIdx = max(0, len(m.pageCategories(grid))-1)
	}
	hist := m.snap.MonthTransactions(m.activeType, m.historyAnchor, m.loc)
	if m.historyCursor >= len(hist) {
		m.historyCursor = max(0, len(hist)-1)
	}
	if m.catCursor >= len(grid) {
		m.catCursor = max(0, len(grid)-1)
	}
}

func (m model) pageCategories(all []api.Category) []api.Category {
	start := m.categoryPage * categoryPageSize
	if start >= len(all) {
		return nil
	}
	end := min(start+categoryPageSize, len(all))
	return all[start:end]
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionInitMsg:
		m.checking = false
		if msg.err != nil {
			m.loginErr = msg.err.Error()
		}
		if msg.authed {
			m.authed = true
			m.loading = true
			return m, m.refreshCmd()
		}
		return m, nil

	case loginDoneMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = "Login failed."
			m.log.Warn().Err(msg.err).Msg("login rejected")
			return m, nil
		}
		m.authed = true
		m.loginErr = ""
		m.loginPass.SetValue("")
		m.loading = true
		return m, m.refreshCmd()

	case logoutDoneMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("logout cleanup failed")
		}
		m.authed = false
		m.menuOpen = false
		m.nav = nav.New()
		m.snap = ledger.Snapshot{}
		m.loginFocus = 0
		m.loginEmail.Focus()
		m.loginPass.Blur()
		return m, nil

	case refreshDoneMsg:
		m.loading = false
		m.syncFromStore()
		return m, nil

	case mutationDoneMsg:
		return m.applyMutationDone(msg)

	case reportMsg:
		if msg.key != m.chartKey || !m.reports.Current(msg.key, msg.seq) {
			return m, nil
		}
		m.chartLoading = false
		if msg.err != nil {
			m.chartErr = "Failed to load report."
			return m, nil
		}
		m.chartErr = ""
		m.chartItems = report.Percentages(msg.items)
		return m, nil

	case exportDoneMsg:
		// Export failures are logged, never surfaced.
		m.menuNote = ""
		if msg.path != "" {
			m.menuNote = "saved " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) applyMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.syncFromStore()
	if msg.err != nil {
		// The store already holds the message; abort any navigation the
		// flow would have done on success.
		return m, nil
	}
	now := time.Now().In(m.loc)
	switch msg.op {
	case opQuickAdd:
		m.entry.Reset(now, m.loc)
		m.noteInput.SetValue("")
	case opEditSave, opEditDelete:
		m.edit = nil
		m.nav.ResetToHistory()
	case opCategoryCreate, opCategoryUpdate:
		m.catEditing = nil
		m.catNameInput.SetValue("")
		m.catNameInput.Blur()
		m.nav.ResetToCategories()
	case opCategoryDelete:
		// stay put, list already reloaded
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.authed {
		return m.updateLoginKey(msg)
	}
	if m.calendarOpen {
		return m.updateCalendarKey(msg)
	}
	if m.menuOpen {
		return m.updateMenuKey(msg)
	}

	switch m.nav.Current() {
	case nav.ViewEntry:
		return m.updateEntryKey(msg)
	case nav.ViewChart:
		return m.updateChartKey(msg)
	case nav.ViewHistory:
		return m.updateHistoryKey(msg)
	case nav.ViewEdit:
		return m.updateEditKey(msg)
	case nav.ViewCategories:
		return m.updateCategoriesKey(msg)
	case nav.ViewCreateCategory, nav.ViewEditCategory:
		return m.updateCategoryFormKey(msg)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7BC275")).
		Padding(1, 2)
	if m.width > 0 {
		frame = frame.Width(max(1, m.width-frame.GetHorizontalBorderSize()))
	}
	if m.height > 0 {
		frame = frame.Height(max(1, m.height-frame.GetVerticalBorderSize()))
	}
	layoutWidth := max(1, m.width-frame.GetHorizontalFrameSize())
	layoutHeight := max(1, m.height-frame.GetVerticalFrameSize())

	var body string
	switch {
	case m.checking:
		body = "checking credentials..."
	case !m.authed:
		body = m.renderLoginScreen(layoutWidth)
	default:
		switch m.nav.Current() {
		case nav.ViewEntry:
			body = m.renderEntryScreen(layoutWidth)
		case nav.ViewChart:
			body = m.renderChartScreen(layoutWidth)
		case nav.ViewHistory:
			body = m.renderHistoryScreen(layoutWidth)
		case nav.ViewEdit:
			body = m.renderEditScreen(layoutWidth)
		case nav.ViewCategories:
			body = m.renderCategoriesScreen(layoutWidth)
		case nav.ViewCreateCategory, nav.ViewEditCategory:
			body = m.renderCategoryFormScreen(layoutWidth)
		}
	}

	if m.calendarOpen {
		overlay := m.renderCalendar()
		return frame.Render(lipgloss.Place(layoutWidth, layoutHeight, lipgloss.Center, lipgloss.Center, overlay))
	}
	if m.menuOpen {
		overlay := m.renderMenu(layoutWidth)
		return frame.Render(lipgloss.Place(layoutWidth, layoutHeight, lipgloss.Center, lipgloss.Center, overlay))
	}
	return frame.Render(body)
}
