package breathing

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wellness/internal/modules/breathing/domain"
	"wellness/internal/ui/theme"
)

// TickMsg advances the breathing counter when its generation is current.
type TickMsg struct{ Generation uint64 }

// Model ticks only while the tab is shown. Leaving the tab bumps the
// generation so the pending tick is dropped.
type Model struct {
	cycle      domain.Cycle
	active     bool
	generation uint64
	period     time.Duration
	bar        progress.Model
	width      int
}

func New() Model {
	bar := progress.New(progress.WithSolidFill(string(theme.Sapphire)), progress.WithoutPercentage())
	bar.Width = 32
	return Model{period: time.Second, bar: bar}
}

func (m Model) Step() domain.Step { return m.cycle.Step() }

func (m Model) Active() bool { return m.active }

func (m Model) Activate() (Model, tea.Cmd) {
	if m.active {
		return m, nil
	}
	m.active = true
	m.generation++
	return m, m.tickCmd(m.generation)
}

func (m Model) Deactivate() Model {
	if m.active {
		m.active = false
		m.generation++
	}
	return m
}

func (m Model) Restart() (Model, tea.Cmd) {
	m.cycle.Reset()
	m = m.Deactivate()
	return m.Activate()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if !m.active || msg.Generation != m.generation {
			return m, nil
		}
		m.cycle.Tick()
		return m, m.tickCmd(msg.Generation)
	case tea.KeyMsg:
		if msg.String() == "r" {
			return m.Restart()
		}
	}
	return m, nil
}

func (m Model) tickCmd(gen uint64) tea.Cmd {
	return tea.Tick(m.period, func(time.Time) tea.Msg { return TickMsg{Generation: gen} })
}

func phaseStyle(p domain.Phase) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(2, 6).BorderStyle(lipgloss.RoundedBorder())
	switch p {
	case domain.Inhale:
		return base.Foreground(theme.Blue).BorderForeground(theme.Blue)
	case domain.Hold:
		return base.Foreground(theme.Mauve).BorderForeground(theme.Mauve)
	default:
		return base.Foreground(theme.Green).BorderForeground(theme.Green)
	}
}

func (m Model) View() string {
	step := m.cycle.Step()
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Guided breathing") + "\n")
	sb.WriteString(theme.Muted.Render("4-7-8 style: breathe in, hold, breathe out") + "\n\n")
	sb.WriteString(phaseStyle(step.Phase).Render(fmt.Sprintf("%d", step.Countdown)) + "\n\n")
	sb.WriteString(theme.Hot.Render(step.Label) + "\n\n")
	sb.WriteString(m.bar.ViewAs(float64(step.Counter+1)/domain.CycleLength) + "\n\n")
	sb.WriteString(theme.Muted.Render("r: restart cycle"))
	return lipgloss.NewStyle().Width(m.width).Padding(1, 2).Render(sb.String())
}
