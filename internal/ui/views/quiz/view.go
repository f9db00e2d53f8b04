package quiz

import (
	"context"
	"fmt"
	"strings"

	bprogress "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wellness/internal/modules/quiz/domain"
	quizdto "wellness/internal/modules/quiz/dto"
	"wellness/internal/ui/theme"
)

type Port interface {
	Submit(ctx context.Context, input quizdto.SubmitInput) (quizdto.SubmitOutput, error)
}

type SubmittedMsg struct {
	Out quizdto.SubmitOutput
	Err error
}

type Model struct {
	port       Port
	wizard     domain.Wizard
	cursor     int
	concern    textinput.Model
	bar        bprogress.Model
	submitting bool
	done       bool
	message    string
	width      int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "Tell us what worries you most (optional)"
	ti.CharLimit = 500
	ti.Width = 60
	bar := bprogress.New(bprogress.WithSolidFill(string(theme.Green)))
	bar.Width = 40
	return Model{port: port, wizard: *domain.NewWizard(), concern: ti, bar: bar}
}

func (m Model) Wizard() domain.Wizard { return m.wizard }

func (m Model) Done() bool { return m.done }

func (m Model) Message() string { return m.message }

// Typing reports whether free-text input has the focus, so global keys must yield.
func (m Model) Typing() bool { return m.concern.Focused() }

// Restart discards the answers and begins again at step 1.
func (m Model) Restart() Model {
	fresh := New(m.port)
	fresh.width = m.width
	return fresh
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case SubmittedMsg:
		m.submitting = false
		if msg.Err != nil {
			m.message = "could not save your answers: " + msg.Err.Error()
			return m, nil
		}
		m.done = true
		m.concern.Blur()
		m.message = "Thank you for sharing. Your answers were saved."
		return m, nil

	case tea.KeyMsg:
		if m.done {
			if msg.String() == "r" {
				return m.Restart(), nil
			}
			return m, nil
		}
		if m.wizard.Step() == domain.StepConcern {
			return m.updateConcern(msg)
		}
		return m.updateChoice(msg)
	}
	return m, nil
}

func (m Model) updateConcern(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "esc", "shift+tab":
		m.concern.Blur()
		m.wizard.Back()
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.concern, cmd = m.concern.Update(msg)
	m.wizard.SetConcern(m.concern.Value())
	return m, cmd
}

func (m Model) updateChoice(msg tea.KeyMsg) (Model, tea.Cmd) {
	opts := m.wizard.Options()
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case "left", "h":
		if m.wizard.Step() == domain.StepAnxiety {
			_ = m.wizard.SetAnxiety(m.wizard.Response().AnxietyLevel - 1)
		}
	case "right", "l":
		if m.wizard.Step() == domain.StepAnxiety {
			_ = m.wizard.SetAnxiety(m.wizard.Response().AnxietyLevel + 1)
		}
	case " ", "x":
		if m.cursor < len(opts) {
			_ = m.wizard.Choose(opts[m.cursor].Value)
		}
	case "enter":
		if m.wizard.Step() <= domain.StepFrequency && m.cursor < len(opts) {
			_ = m.wizard.Choose(opts[m.cursor].Value)
		}
		return m.next()
	case "n":
		return m.next()
	case "b", "backspace":
		m.wizard.Back()
		m.cursor = 0
		m.message = ""
	}
	return m, nil
}

func (m Model) next() (Model, tea.Cmd) {
	if err := m.wizard.Next(); err != nil {
		m.message = "choose an option to continue"
		return m, nil
	}
	m.message = ""
	m.cursor = 0
	if m.wizard.Step() == domain.StepConcern {
		return m, m.concern.Focus()
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.submitting = true
	m.message = "saving…"
	r := m.wizard.Response()
	input := quizdto.SubmitInput{
		AgeRange:           r.AgeRange,
		RelationshipStatus: r.RelationshipStatus,
		ProblemDuration:    r.ProblemDuration,
		Frequency:          r.Frequency,
		AnxietyLevel:       r.AnxietyLevel,
		TriedSolutions:     r.TriedSolutions,
		MainConcern:        r.MainConcern,
	}
	port := m.port
	return m, func() tea.Msg {
		out, err := port.Submit(context.Background(), input)
		return SubmittedMsg{Out: out, Err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Assessment questionnaire") + "\n")
	if m.done {
		sb.WriteString("\n" + theme.Good.Render(m.message) + "\n\n" + theme.Muted.Render("r: answer again"))
		return lipgloss.NewStyle().Width(m.width).Padding(1, 2).Render(sb.String())
	}

	w := m.wizard
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("Step %d of %d", w.Step(), domain.TotalSteps)) + "\n")
	sb.WriteString(m.bar.ViewAs(w.Progress()/100) + "\n\n")
	sb.WriteString(theme.Hot.Render(w.Title()) + "\n")
	sb.WriteString(w.Question() + "\n\n")

	switch w.Step() {
	case domain.StepAnxiety:
		level := w.Response().AnxietyLevel
		sb.WriteString(fmt.Sprintf("← %s →  %d/10\n", strings.Repeat("■", level)+strings.Repeat("□", domain.MaxAnxiety-level), level))
	case domain.StepConcern:
		sb.WriteString(m.concern.View() + "\n")
	default:
		for i, opt := range w.Options() {
			marker := "( )"
			if w.Step() == domain.StepSolutions {
				marker = "[ ]"
				if w.HasSolution(opt.Value) {
					marker = "[x]"
				}
			} else if w.Selected() == opt.Value {
				marker = "(•)"
			}
			line := marker + " " + opt.Label
			if i == m.cursor {
				line = theme.Good.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
	}

	if m.message != "" {
		sb.WriteString("\n" + theme.Warn.Render(m.message) + "\n")
	}
	help := "↑/↓: move  space: select  enter: next  b: back"
	switch w.Step() {
	case domain.StepAnxiety:
		help = "←/→: adjust  enter: next  b: back"
	case domain.StepConcern:
		help = "enter: submit  esc: back"
	}
	sb.WriteString("\n" + theme.Muted.Render(help))
	return lipgloss.NewStyle().Width(m.width).Padding(1, 2).Render(sb.String())
}
