// Package tui is the interactive terminal client: an auth screen followed by the
// dashboard, transactions and settings panels.
package tui

import (
	"context"
	"errors"
	"slices"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/engine"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/session"
	"github.com/Veraticus/tally/internal/tui/themes"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is the top-level mode of the UI.
type Screen int

const (
	// ScreenAuth shows the login or registration form.
	ScreenAuth Screen = iota
	// ScreenApp shows the panels.
	ScreenApp
)

// Overlay is a dialog drawn over the current panel.
type Overlay int

const (
	// OverlayNone leaves the panel uncovered.
	OverlayNone Overlay = iota
	// OverlayForm shows the transaction or profile form.
	OverlayForm
	// OverlayConfirmDelete asks before moving a transaction to the trash.
	OverlayConfirmDelete
	// OverlayHelp lists every key binding.
	OverlayHelp
)

// Model holds the main TUI state.
type Model struct {
	ctx           context.Context
	theme         themes.Theme
	session       *session.Store
	engine        *engine.Engine
	filter        model.Filter
	status        string
	errMsg        string
	currency      string
	trash         []model.Transaction
	snap          engine.State
	authForm      form
	form          form
	keymap        KeyMap
	help          help.Model
	spinner       spinner.Model
	pendingDelete int64
	width         int
	height        int
	cursor        int
	trashCursor   int
	inFlight      int
	screen        Screen
	overlay       Overlay
	panel         viewmodel.Panel
	quitting      bool
}

// NewModel creates the UI model. A user already restored into store skips the login screen.
func NewModel(ctx context.Context, store *session.Store, eng *engine.Engine, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = cfg.Theme.StatusInfo

	m := Model{
		ctx:      ctx,
		session:  store,
		engine:   eng,
		theme:    cfg.Theme,
		currency: cfg.Currency,
		width:    cfg.Width,
		height:   cfg.Height,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		filter:   model.NoFilter(),
		authForm: loginForm(),
		screen:   ScreenAuth,
		panel:    viewmodel.PanelDashboard,
	}

	if user, ok := store.Current(); ok {
		eng.SetUser(user)
		m.snap = eng.Snapshot()
		m.screen = ScreenApp
	}
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.screen == ScreenApp {
		return tea.Batch(m.spinner.Tick, m.refresh())
	}
	return m.spinner.Tick
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case loggedInMsg:
		m.done()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			return m, nil
		}
		m.engine.SetUser(msg.user)
		m.snap = m.engine.Snapshot()
		m.screen = ScreenApp
		m.panel = viewmodel.PanelDashboard
		m.authForm = loginForm()
		m.status = "Welcome, " + msg.user.FullName
		return m, m.start(m.refresh())

	case registeredMsg:
		m.done()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			return m, nil
		}
		m.authForm = loginForm()
		m.status = "Registration successful. Please log in."
		return m, nil

	case loggedOutMsg:
		m.done()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			return m, nil
		}
		m.engine.Reset()
		m.snap = m.engine.Snapshot()
		m.trash = nil
		m.filter = model.NoFilter()
		m.cursor, m.trashCursor = 0, 0
		m.overlay = OverlayNone
		m.screen = ScreenAuth
		m.authForm = loginForm()
		m.status = "Logged out"
		return m, nil

	case profileSavedMsg:
		m.done()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			return m, nil
		}
		m.engine.SetUser(msg.user)
		m.snap = m.engine.Snapshot()
		m.overlay = OverlayNone
		m.status = "Profile updated"
		return m, nil

	case ledgerUpdatedMsg:
		m.done()
		m.snap = m.engine.Snapshot()
		m.clampCursors()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			// The change reached the server, so the form must not be submitted again.
			if errors.Is(msg.err, common.ErrRefreshFailed) && m.overlay == OverlayForm && m.form.kind == formTransaction {
				m.overlay = OverlayNone
			}
			return m, nil
		}
		if m.overlay == OverlayForm && m.form.kind == formTransaction {
			m.overlay = OverlayNone
		}
		if msg.action != "" {
			m.status = msg.action
		}
		return m, nil

	case trashLoadedMsg:
		m.done()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			return m, nil
		}
		m.trash = msg.trash
		m.clampCursors()
		return m, nil

	case restoredMsg:
		m.done()
		m.snap = m.engine.Snapshot()
		if msg.trash != nil || msg.err == nil {
			m.trash = msg.trash
		}
		m.clampCursors()
		if msg.err != nil {
			m.errMsg = common.UserMessage(msg.err)
			return m, nil
		}
		m.status = "Transaction restored"
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.screen == ScreenAuth {
		return m.handleAuthKey(msg)
	}

	switch m.overlay {
	case OverlayForm:
		if key.Matches(msg, m.keymap.Cancel) {
			m.overlay = OverlayNone
			m.errMsg = ""
			return m, nil
		}
		var cmd tea.Cmd
		var submitted bool
		m.form, cmd, submitted = m.form.update(msg, m.keymap)
		if submitted {
			return m.submitForm()
		}
		return m, cmd

	case OverlayConfirmDelete:
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			m.overlay = OverlayNone
			return m, m.start(m.deleteTransaction(m.pendingDelete))
		case key.Matches(msg, m.keymap.Deny):
			m.overlay = OverlayNone
			m.status = "Cancelled"
		}
		return m, nil

	case OverlayHelp:
		m.overlay = OverlayNone
		return m, nil
	}

	m.errMsg = ""
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.overlay = OverlayHelp
	case key.Matches(msg, k.Dashboard):
		return m.switchPanel(viewmodel.PanelDashboard)
	case key.Matches(msg, k.Transactions):
		return m.switchPanel(viewmodel.PanelTransactions)
	case key.Matches(msg, k.Settings):
		return m.switchPanel(viewmodel.PanelSettings)
	case key.Matches(msg, k.NextPanel):
		return m.switchPanel(m.panel.Next())
	case key.Matches(msg, k.Refresh):
		return m, m.start(m.refresh())
	case key.Matches(msg, k.Logout):
		return m, m.start(m.logout())
	case key.Matches(msg, k.Add) && m.panel != viewmodel.PanelSettings:
		m.openForm(transactionForm(model.Draft{}, model.Categories(m.snap.Transactions)))
	}

	switch m.panel {
	case viewmodel.PanelTransactions:
		return m.handleTransactionsKey(msg)
	case viewmodel.PanelSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Cancel):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.SwitchAuth):
		m.errMsg = ""
		if m.authForm.kind == formLogin {
			m.authForm = registerForm()
		} else {
			m.authForm = loginForm()
		}
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.authForm, cmd, submitted = m.authForm.update(msg, m.keymap)
	if !submitted {
		return m, cmd
	}

	m.errMsg = ""
	m.status = ""
	f := m.authForm
	if f.kind == formLogin {
		return m, m.start(m.login(f.value(loginEmail), f.value(loginPassword)))
	}
	return m, m.start(m.register(session.RegisterInput{
		FullName:        f.value(registerName),
		Email:           f.value(registerEmail),
		Password:        f.value(registerPassword),
		ConfirmPassword: f.value(registerConfirm),
	}))
}

func (m Model) handleTransactionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	visible := m.filter.Apply(m.snap.Transactions)

	switch {
	case key.Matches(msg, k.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, k.Down):
		m.cursor = min(m.cursor+1, max(len(visible)-1, 0))
	case key.Matches(msg, k.Edit):
		if t, ok := at(visible, m.cursor); ok {
			m.openForm(transactionForm(model.DraftFrom(t), model.Categories(m.snap.Transactions)))
		}
	case key.Matches(msg, k.Delete):
		if t, ok := at(visible, m.cursor); ok {
			m.pendingDelete = t.ID
			m.overlay = OverlayConfirmDelete
		}
	case key.Matches(msg, k.TypeFilter):
		m.filter.Type = nextOption(m.filter.Type, []string{model.FilterAll, string(model.TypeIncome), string(model.TypeExpense)})
		m.cursor = 0
	case key.Matches(msg, k.CategoryFilter):
		options := append([]string{model.FilterAll}, model.Categories(m.snap.Transactions)...)
		m.filter.Category = nextOption(m.filter.Category, options)
		m.cursor = 0
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Up):
		m.trashCursor = max(m.trashCursor-1, 0)
	case key.Matches(msg, k.Down):
		m.trashCursor = min(m.trashCursor+1, max(len(m.trash)-1, 0))
	case key.Matches(msg, k.Profile):
		m.openForm(profileForm(m.snap.User.FullName, m.snap.User.Email))
	case key.Matches(msg, k.Restore):
		if t, ok := at(m.trash, m.trashCursor); ok {
			return m, m.start(m.restoreTransaction(t.ID))
		}
	}
	return m, nil
}

// switchPanel changes panels synchronously. Entering settings also fetches the trash.
func (m Model) switchPanel(p viewmodel.Panel) (tea.Model, tea.Cmd) {
	m.panel = p
	if p == viewmodel.PanelSettings {
		return m, m.start(m.loadTrash())
	}
	return m, nil
}

func (m *Model) openForm(f form) {
	m.form = f
	m.overlay = OverlayForm
	m.errMsg = ""
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	f := m.form

	switch f.kind {
	case formTransaction:
		draft, err := f.draft()
		if err == nil {
			err = engine.ValidateDraft(draft)
		}
		if err != nil {
			m.errMsg = common.UserMessage(err)
			return m, nil
		}
		return m, m.start(m.saveTransaction(draft))

	case formProfile:
		return m, m.start(m.saveProfile(session.ProfileInput{
			FullName:        f.value(profileName),
			Email:           f.value(profileEmail),
			Password:        f.value(profilePassword),
			ConfirmPassword: f.value(profileConfirm),
		}))
	}
	return m, nil
}

// start counts an in-flight command so the spinner shows while it runs.
func (m *Model) start(cmd tea.Cmd) tea.Cmd {
	m.inFlight++
	return cmd
}

func (m *Model) done() {
	m.inFlight = max(m.inFlight-1, 0)
}

func (m *Model) clampCursors() {
	visible := len(m.filter.Apply(m.snap.Transactions))
	m.cursor = min(m.cursor, max(visible-1, 0))
	m.trashCursor = min(m.trashCursor, max(len(m.trash)-1, 0))
}

// Screen returns the current top-level screen.
func (m Model) Screen() Screen {
	return m.screen
}

// Panel returns the panel being shown.
func (m Model) Panel() viewmodel.Panel {
	return m.panel
}

func at(txns []model.Transaction, i int) (model.Transaction, bool) {
	if i < 0 || i >= len(txns) {
		return model.Transaction{}, false
	}
	return txns[i], true
}

func nextOption(current string, options []string) string {
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}
