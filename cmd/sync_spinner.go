package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// syncStep is one round trip to the inventory server shown while it runs.
type syncStep struct {
	label string
	run   func(context.Context) error
}

type stepDoneMsg struct {
	index int
	err   error
}

type syncModel struct {
	ctx     context.Context
	spinner spinner.Model
	steps   []syncStep
	current int
	err     error
	done    bool
}

func (m syncModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start(0))
}

func (m syncModel) start(index int) tea.Cmd {
	step := m.steps[index]
	ctx := m.ctx
	return func() tea.Msg {
		return stepDoneMsg{index: index, err: step.run(ctx)}
	}
}

func (m syncModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stepDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.done = true
			return m, tea.Quit
		}
		m.current = msg.index + 1
		if m.current == len(m.steps) {
			m.done = true
			return m, tea.Quit
		}
		return m, m.start(m.current)
	}
	return m, nil
}

func (m syncModel) View() string {
	if m.done {
		return ""
	}
	label := m.steps[m.current].label
	if len(m.steps) > 1 {
		label = fmt.Sprintf("%s (%d/%d)", label, m.current+1, len(m.steps))
	}
	return m.spinner.View() + " " + label
}

// runSyncSpinner runs steps in order behind a spinner on output and stops at
// the first error.
func runSyncSpinner(ctx context.Context, output io.Writer, steps ...syncStep) error {
	if len(steps) == 0 {
		return nil
	}

	model := syncModel{
		ctx:   ctx,
		steps: steps,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
	}
	final, err := tea.NewProgram(model, tea.WithInput(nil), tea.WithOutput(output), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	result, ok := final.(syncModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", final)
	}
	return result.err
}
