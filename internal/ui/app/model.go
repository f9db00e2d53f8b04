package app

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "wellness/internal/modules/auth/dto"
	apperrors "wellness/internal/platform/errors"
	"wellness/internal/ui/components"
	"wellness/internal/ui/theme"
	breathingview "wellness/internal/ui/views/breathing"
	loginview "wellness/internal/ui/views/login"
	progressview "wellness/internal/ui/views/progress"
	quizview "wellness/internal/ui/views/quiz"
	timerview "wellness/internal/ui/views/timer"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type authPort interface {
	loginview.Port
	WhoAmI(ctx context.Context) (authdto.UserOutput, error)
	SignOut(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabTimer tabID = iota
	tabBreathing
	tabProgress
	tabQuiz
	tabCount
)

var tabLabels = [tabCount]string{
	"Timer", "Breathing", "Progress", "Quiz",
}

// paletteHints must stay in sync with the switch in executePalette.
var paletteHints = []string{
	"timer:toggle",
	"timer:reset",
	"timer:save",
	"breathe:start",
	"breathe:reset",
	"stats:refresh",
	"quiz:restart",
	"auth:signin",
	"auth:signup",
	"auth:signout",
}

// ─── async messages ───────────────────────────────────────────────────────────

type userLoadedMsg struct {
	user authdto.UserOutput
	err  error
}

// AuthEventMsg wraps a sign-in or sign-out notification from the auth hub.
type AuthEventMsg struct{ Event authdto.AuthEvent }

type signedOutMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Save    key.Binding
	Reset   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause timer")),
		Save:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save / next")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset / refresh")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Save, k.Reset},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model and the single reducer of UI state.
// Tab views own their state; messages addressed to a view reach it even
// while another tab is shown.
type Model struct {
	auth       authPort
	authEvents chan authdto.AuthEvent

	timerView     timerview.Model
	breathingView breathingview.Model
	progressView  progressview.Model
	quizView      quizview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	login     loginview.Model
	user      *authdto.UserOutput
	status    string
	width     int
	height    int
}

func NewModel(auth authPort, timer timerview.Port, progress progressview.Port, quiz quizview.Port) Model {
	return Model{
		auth:          auth,
		authEvents:    make(chan authdto.AuthEvent, 8),
		timerView:     timerview.New(timer),
		breathingView: breathingview.New(),
		progressView:  progressview.New(progress),
		quizView:      quizview.New(quiz),
		activeTab:     tabTimer,
		keys:          defaultKeys(),
		help:          help.New(),
		palette:       components.NewPalette(paletteHints),
		login:         loginview.New(auth),
		status:        "ready",
	}
}

// AuthListener returns the callback to register with the auth hub. Events are
// queued and delivered to Update as AuthEventMsg.
func (m Model) AuthListener() func(authdto.AuthEvent) {
	ch := m.authEvents
	return func(ev authdto.AuthEvent) {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.progressView.Init(),
		m.loadUserCmd(),
		m.waitAuthEventCmd(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

// Update gives keys to an open overlay (palette or login form) exclusively.
// Every other message still reaches the tabs so running clocks keep ticking.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.palette.Visible() && !m.login.Visible() {
		return m.update(msg)
	}
	var overlayCmd tea.Cmd
	if m.login.Visible() {
		m.login, overlayCmd = m.login.Update(msg)
	} else {
		m.palette, overlayCmd = m.palette.Update(msg)
	}
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return m, overlayCmd
	}
	next, cmd := m.update(msg)
	switch {
	case overlayCmd == nil:
		return next, cmd
	case cmd == nil:
		return next, overlayCmd
	}
	return next, tea.Batch(overlayCmd, cmd)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.login = m.login.SetWidth(min(m.width-4, 64))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case userLoadedMsg:
		if msg.err != nil {
			m.user = nil
			if !errors.Is(msg.err, apperrors.ErrNotAuthenticated) {
				m.status = "auth check: " + msg.err.Error()
			}
			return m, nil
		}
		u := msg.user
		m.user = &u
		return m, nil

	case AuthEventMsg:
		if msg.Event.SignedIn {
			m.user = msg.Event.User
		} else {
			m.user = nil
		}
		return m, tea.Batch(m.progressView.Refresh(), m.waitAuthEventCmd())

	case signedOutMsg:
		if msg.err != nil {
			m.status = "sign out failed: " + msg.err.Error()
		} else {
			m.status = "signed out, sessions are kept on this device"
		}
		return m, nil

	// View-addressed messages are routed regardless of the active tab.
	case timerview.TickMsg:
		m.timerView, cmd = m.timerView.Update(msg)
		return m, cmd

	case timerview.SavedMsg:
		m.timerView, cmd = m.timerView.Update(msg)
		m.status = m.timerView.Message()
		if msg.Err != nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.progressView.Refresh())

	case breathingview.TickMsg:
		m.breathingView, cmd = m.breathingView.Update(msg)
		return m, cmd

	case progressview.LoadedMsg:
		m.progressView, cmd = m.progressView.Update(msg)
		if msg.Err != nil {
			m.status = "stats: " + msg.Err.Error()
		}
		return m, cmd

	case quizview.SubmittedMsg:
		m.quizView, cmd = m.quizView.Update(msg)
		m.status = m.quizView.Message()
		return m, cmd

	case loginview.DoneMsg:
		if msg.Err != nil {
			m.status = strings.ToLower(msg.Mode.String()) + " failed"
		}
		return m, nil

	case loginview.ClosedMsg:
		if msg.Status != "" {
			m.status = msg.Status
		} else {
			m.status = "ready"
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Free-text input gets every other key.
		if m.activeTab == tabQuiz && m.quizView.Typing() {
			break
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "tab":
			return m.setTab((m.activeTab + 1) % tabCount)
		case "shift+tab":
			return m.setTab((m.activeTab + tabCount - 1) % tabCount)
		case "?":
			m.showHelp = true
			return m, nil
		case ":":
			return m, m.palette.Open()
		}
	}

	switch m.activeTab {
	case tabTimer:
		m.timerView, cmd = m.timerView.Update(msg)
		if m.timerView.Saving() {
			m.status = m.timerView.Message()
		}
	case tabBreathing:
		m.breathingView, cmd = m.breathingView.Update(msg)
	case tabProgress:
		m.progressView, cmd = m.progressView.Update(msg)
	case tabQuiz:
		m.quizView, cmd = m.quizView.Update(msg)
	}
	return m, cmd
}

// setTab switches tabs. The breathing clock only runs while its tab is shown.
func (m Model) setTab(tab tabID) (Model, tea.Cmd) {
	if tab == m.activeTab {
		return m, nil
	}
	var cmd tea.Cmd
	if m.activeTab == tabBreathing {
		m.breathingView = m.breathingView.Deactivate()
	}
	m.activeTab = tab
	switch tab {
	case tabBreathing:
		m.breathingView, cmd = m.breathingView.Activate()
	case tabProgress:
		cmd = m.progressView.Refresh()
	}
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.login.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.login.View())
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = lipgloss.NewStyle().Height(contentH).Render(m.activeView())
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabTimer:
		return m.timerView.View()
	case tabBreathing:
		return m.breathingView.View()
	case tabProgress:
		return m.progressView.View()
	case tabQuiz:
		return m.quizView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "wellness  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	who := theme.Muted.Render("○ local only")
	if m.user != nil {
		who = theme.Good.Render("● " + m.user.Email)
	}
	left := who + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	switch parts[0] {
	case "timer:toggle":
		m, _ = m.setTab(tabTimer)
		m.timerView, cmd = m.timerView.Toggle()
	case "timer:reset":
		m, _ = m.setTab(tabTimer)
		m.timerView, cmd = m.timerView.Reset()
	case "timer:save":
		m, _ = m.setTab(tabTimer)
		m.timerView, cmd = m.timerView.Save()
		m.status = m.timerView.Message()
	case "breathe:start":
		return m.setTab(tabBreathing)
	case "breathe:reset":
		m, cmd = m.setTab(tabBreathing)
		var restart tea.Cmd
		m.breathingView, restart = m.breathingView.Restart()
		return m, tea.Batch(cmd, restart)
	case "stats:refresh":
		m, _ = m.setTab(tabProgress)
		cmd = m.progressView.Refresh()
	case "quiz:restart":
		m, cmd = m.setTab(tabQuiz)
		m.quizView = m.quizView.Restart()
	case "auth:signin", "auth:signup":
		if m.user != nil {
			m.status = "already signed in as " + m.user.Email
			return m, nil
		}
		mode := loginview.SignIn
		if parts[0] == "auth:signup" {
			mode = loginview.SignUp
		}
		m.login, cmd = m.login.Open(mode)
	case "auth:signout":
		if m.user == nil {
			m.status = "not signed in"
			return m, nil
		}
		cmd = m.signOutCmd()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, cmd
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.timerView, _ = m.timerView.Update(sz)
	m.breathingView, _ = m.breathingView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
	m.quizView, _ = m.quizView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadUserCmd() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		if auth == nil {
			return userLoadedMsg{err: apperrors.ErrNotAuthenticated}
		}
		user, err := auth.WhoAmI(context.Background())
		return userLoadedMsg{user: user, err: err}
	}
}

func (m Model) waitAuthEventCmd() tea.Cmd {
	ch := m.authEvents
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return AuthEventMsg{Event: ev}
	}
}

func (m Model) signOutCmd() tea.Cmd {
	auth := m.auth
	return func() tea.Msg {
		return signedOutMsg{err: auth.SignOut(context.Background())}
	}
}
