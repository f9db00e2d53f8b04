package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wellness/internal/modules/practice/domain"
	practicedto "wellness/internal/modules/practice/dto"
	"wellness/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	SaveAt(ctx context.Context, endedAt time.Time, durationSeconds int) (practicedto.SaveOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// TickMsg carries the generation of the run that scheduled it.
type TickMsg struct{ Generation uint64 }

// SavedMsg reports the outcome of a save request.
type SavedMsg struct {
	Out practicedto.SaveOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	timer   domain.Timer
	saving  bool
	message string
	period  time.Duration
	now     func() time.Time
	width   int
	height  int
}

func New(port Port) Model {
	return Model{port: port, period: time.Second, now: time.Now}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Timer() domain.Timer { return m.timer }

func (m Model) Saving() bool { return m.saving }

func (m Model) Message() string { return m.message }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case TickMsg:
		if m.timer.Tick(msg.Generation) {
			return m, m.tickCmd(msg.Generation)
		}

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.message = "save failed: " + msg.Err.Error()
			return m, nil
		}
		m.timer.Reset()
		verdict := "keep practicing"
		if msg.Out.Success {
			verdict = "successful session"
		}
		m.message = fmt.Sprintf("saved %s (%s)", domain.FormatClock(msg.Out.DurationSeconds), verdict)

	case tea.KeyMsg:
		switch msg.String() {
		case " ", "p":
			return m.Toggle()
		case "r":
			return m.Reset()
		case "enter", "s":
			return m.Save()
		}
	}
	return m, nil
}

// Toggle starts or pauses the clock.
func (m Model) Toggle() (Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	gen, started := m.timer.Toggle()
	m.message = ""
	if started {
		return m, m.tickCmd(gen)
	}
	return m, nil
}

func (m Model) Reset() (Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	m.timer.Reset()
	m.message = ""
	return m, nil
}

// Save submits the paused session. It is a no-op while a save is pending.
func (m Model) Save() (Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}
	record, err := m.timer.Record(m.now())
	if err != nil {
		m.message = "pause a running timer before saving"
		return m, nil
	}
	m.saving = true
	m.message = "saving…"
	port := m.port
	return m, func() tea.Msg {
		out, err := port.SaveAt(context.Background(), record.Date, record.Duration)
		return SavedMsg{Out: out, Err: err}
	}
}

func (m Model) tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(m.period, func(time.Time) tea.Msg { return TickMsg{Generation: gen} })
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Start-stop practice") + "\n\n")
	sb.WriteString(theme.Clock.Render(domain.FormatClock(m.timer.Seconds())) + "\n\n")

	state := m.timer.State().String()
	switch m.timer.State() {
	case domain.TimerRunning:
		sb.WriteString(theme.Good.Render("● "+state) + "\n")
	case domain.TimerPaused:
		sb.WriteString(theme.Warn.Render("‖ "+state) + "\n")
	default:
		sb.WriteString(theme.Muted.Render("○ "+state) + "\n")
	}
	if m.timer.Seconds() >= domain.SuccessThresholdSeconds {
		sb.WriteString(theme.Good.Render("3 minutes reached") + "\n")
	}
	if m.message != "" {
		style := theme.Muted
		if strings.HasPrefix(m.message, "save failed") {
			style = theme.Bad
		}
		sb.WriteString("\n" + style.Render(m.message) + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("space: start/pause  r: reset  enter: save"))

	return lipgloss.NewStyle().Width(m.width).Padding(1, 2).Render(sb.String())
}
