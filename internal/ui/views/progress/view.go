package progress

import (
	"context"
	"fmt"
	"math"
	"strings"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "wellness/internal/modules/progress/dto"
	"wellness/internal/ui/theme"
)

type Port interface {
	Summary(ctx context.Context) (progressdto.SummaryOutput, error)
}

type LoadedMsg struct {
	Summary progressdto.SummaryOutput
	Err     error
}

type Model struct {
	port    Port
	summary progressdto.SummaryOutput
	err     error
	loading bool
	bar     bprogress.Model
	spinner spinner.Model
	width   int
}

func New(port Port) Model {
	bar := bprogress.New(bprogress.WithGradient(string(theme.Blue), string(theme.Green)))
	bar.Width = 40
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)
	return Model{port: port, bar: bar, spinner: sp, loading: true}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.spinner.Tick)
}

func (m Model) Summary() progressdto.SummaryOutput { return m.summary }

func (m Model) Err() error { return m.err }

// Refresh reloads the statistics from the active store.
func (m Model) Refresh() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		if port == nil {
			return LoadedMsg{}
		}
		out, err := port.Summary(context.Background())
		return LoadedMsg{Summary: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.summary = msg.Summary
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case tea.KeyMsg:
		if msg.String() == "r" {
			m.loading = true
			return m, tea.Batch(m.Refresh(), m.spinner.Tick)
		}
	}
	return m, nil
}

func stat(label string, value string) string {
	return theme.Stat.Render(theme.StatNum.Render(value) + "\n" + theme.Muted.Render(label))
}

func (m Model) View() string {
	var sb strings.Builder
	title := theme.Title.Render("Your progress")
	if m.loading {
		title += " " + m.spinner.View()
	}
	sb.WriteString(title + "\n\n")
	if m.err != nil {
		sb.WriteString(theme.Bad.Render("could not load sessions: "+m.err.Error()) + "\n\n")
	}

	s := m.summary
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		stat("day streak", fmt.Sprintf("%d", s.Streak)),
		stat("sessions", fmt.Sprintf("%d", s.Total)),
		stat("successful", fmt.Sprintf("%d", s.Successful)),
		stat("average", s.AverageClock),
	) + "\n\n")

	sb.WriteString(theme.Title.Render("Weekly goal") + "  " + theme.Muted.Render(fmt.Sprintf("%d%% of 7 sessions", int(math.Round(s.WeeklyPercent)))) + "\n")
	sb.WriteString(m.bar.ViewAs(s.WeeklyPercent/100) + "\n\n")

	sb.WriteString(theme.Title.Render("Recent sessions") + "\n")
	if len(s.Recent) == 0 {
		sb.WriteString(theme.Muted.Render("No sessions yet. Start practicing on the Timer tab.") + "\n")
	}
	for _, r := range s.Recent {
		dot := theme.Warn.Render("●")
		if r.Success {
			dot = theme.Good.Render("●")
		}
		sb.WriteString(fmt.Sprintf("%s %s  %02d:%02d\n", dot, r.Date.Format("Jan 02 15:04"), r.DurationSeconds/60, r.DurationSeconds%60))
	}
	sb.WriteString("\n" + theme.Muted.Render("r: refresh"))
	return lipgloss.NewStyle().Width(m.width).Padding(1, 2).Render(sb.String())
}
