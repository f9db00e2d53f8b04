package login

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	authdto "wellness/internal/modules/auth/dto"
	"wellness/internal/ui/theme"
)

type Port interface {
	SignIn(ctx context.Context, email, password string) (authdto.UserOutput, error)
	SignUp(ctx context.Context, email, password string) (authdto.SignUpOutput, error)
}

type Mode int

const (
	SignIn Mode = iota
	SignUp
)

func (m Mode) String() string {
	if m == SignUp {
		return "Create account"
	}
	return "Sign in"
}

// DoneMsg carries the backend answer. Pending is set when a new account
// must confirm its email before the first sign-in.
type DoneMsg struct {
	Mode    Mode
	User    authdto.UserOutput
	Pending bool
	Err     error
}

// ClosedMsg is emitted when the form is dismissed or completed.
type ClosedMsg struct{ Status string }

var formStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Mauve).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(0, 1)

// Model is the email/password overlay opened from the palette.
type Model struct {
	port     Port
	mode     Mode
	email    textinput.Model
	password textinput.Model
	visible  bool
	busy     bool
	message  string
	width    int
}

func New(port Port) Model {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "at least 6 characters"
	password.CharLimit = 128
	password.Width = 40
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{port: port, email: email, password: password}
}

func (m Model) Visible() bool { return m.visible }

func (m Model) Busy() bool { return m.busy }

func (m Model) Mode() Mode { return m.mode }

func (m Model) Message() string { return m.message }

// Open shows an empty form focused on the email field.
func (m Model) Open(mode Mode) (Model, tea.Cmd) {
	m.mode = mode
	m.visible = true
	m.busy = false
	m.message = ""
	m.email.SetValue("")
	m.password.SetValue("")
	m.password.Blur()
	return m, m.email.Focus()
}

func (m Model) SetWidth(w int) Model {
	m.width = w
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	switch msg := msg.(type) {
	case DoneMsg:
		m.busy = false
		if msg.Err != nil {
			m.message = msg.Err.Error()
			m.password.SetValue("")
			return m, m.password.Focus()
		}
		status := "signed in as " + msg.User.Email
		if msg.Pending {
			status = "check " + msg.User.Email + " to confirm your account, then sign in"
		}
		return m.close(status)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m.close("")
		case "tab", "shift+tab", "up", "down":
			return m, m.switchFocus()
		case "enter":
			if m.email.Focused() {
				return m, m.switchFocus()
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	if m.email.Focused() {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchFocus() tea.Cmd {
	if m.email.Focused() {
		m.email.Blur()
		return m.password.Focus()
	}
	m.password.Blur()
	return m.email.Focus()
}

func (m Model) submit() (Model, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.message = "email and password are required"
		return m, nil
	}
	m.busy = true
	m.message = "contacting backend…"
	port, mode := m.port, m.mode
	return m, func() tea.Msg {
		ctx := context.Background()
		if mode == SignUp {
			out, err := port.SignUp(ctx, email, password)
			return DoneMsg{Mode: mode, User: out.User, Pending: out.ConfirmationRequired, Err: err}
		}
		user, err := port.SignIn(ctx, email, password)
		return DoneMsg{Mode: mode, User: user, Err: err}
	}
}

func (m Model) close(status string) (Model, tea.Cmd) {
	m.visible = false
	m.busy = false
	m.email.Blur()
	m.password.Blur()
	m.password.SetValue("")
	return m, func() tea.Msg { return ClosedMsg{Status: status} }
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(m.mode.String()) + "\n\n")
	sb.WriteString(theme.Muted.Render("Email") + "\n" + m.email.View() + "\n\n")
	sb.WriteString(theme.Muted.Render("Password") + "\n" + m.password.View() + "\n")
	if m.message != "" {
		style := theme.Warn
		if m.busy {
			style = theme.Muted
		}
		sb.WriteString("\n" + style.Render(m.message) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("enter: next / submit  tab: switch field  esc: cancel"))

	w := m.width
	if w < 20 {
		w = 56
	}
	return formStyle.Width(w - 2).Render(sb.String())
}
