package terminal

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/motorsense/internal/application"
	"github.com/bnema/motorsense/internal/domain"
	"github.com/bnema/motorsense/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunFunc performs one analysis, publishing every state to observe and every
// toast to notifier.
type RunFunc func(ctx context.Context, observe application.Observer, notifier ports.Notifier) (domain.WorkflowState, error)

type workflowStateMsg struct {
	state domain.WorkflowState
}

type toastMsg struct {
	toast domain.Toast
}

type progressDoneMsg struct {
	state domain.WorkflowState
	err   error
}

type progressModel struct {
	spinner spinner.Model
	styles  styles
	run     tea.Cmd
	state   domain.WorkflowState
	toasts  []domain.Toast
	err     error
	done    bool
}

func newProgressModel(run tea.Cmd) progressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return progressModel{
		spinner: s,
		styles:  newStyles(),
		run:     run,
		state:   domain.NewWorkflow(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case workflowStateMsg:
		m.state = msg.state
		return m, nil
	case toastMsg:
		m.toasts = append(m.toasts, msg.toast)
		return m, nil
	case progressDoneMsg:
		m.done = true
		m.state = msg.state
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m progressModel) View() string {
	lines := make([]string, 0, len(m.toasts)+1)
	for _, toast := range m.toasts {
		lines = append(lines, FormatToast(toast))
	}

	spin := m.spinner.View()
	if m.done {
		spin = ""
	}
	lines = append(lines, stepsView(m.state, spin, m.styles))

	return lipgloss.JoinVertical(lipgloss.Left, lines...) + "\n"
}

// programNotifier forwards toasts into a running program.
type programNotifier struct {
	send func(tea.Msg)
}

func (n programNotifier) Notify(_ context.Context, toast domain.Toast) {
	n.send(toastMsg{toast: toast})
}

// RunProgress shows the agent steps while run executes and returns its final
// state and error.
func RunProgress(ctx context.Context, output io.Writer, run RunFunc) (domain.WorkflowState, error) {
	var p *tea.Program
	send := func(msg tea.Msg) { p.Send(msg) }

	runCmd := func() tea.Msg {
		observe := func(state domain.WorkflowState) {
			send(workflowStateMsg{state: state})
		}
		state, err := run(ctx, observe, programNotifier{send: send})
		return progressDoneMsg{state: state, err: err}
	}

	p = tea.NewProgram(
		newProgressModel(runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.WorkflowState{}, ctxErr
		}
		return domain.WorkflowState{}, err
	}

	result, ok := finalModel.(progressModel)
	if !ok {
		return domain.WorkflowState{}, fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.state, result.err
}
