package exec

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// RunWithSpinner runs a command behind a progress spinner. The command's
// own output is suppressed; the spinner message is all the user sees until
// the command finishes.
func (e *Executor) RunWithSpinner(ctx context.Context, message string, name string, args ...string) error {
	// Spinner frames carry no newlines, so they must bypass any
	// line-buffering writer and hit the terminal directly.
	out := e.stderr
	if sw, ok := out.(*StreamingWriter); ok {
		out = sw.writer
	}

	m := newSpinnerModel(message)
	p := tea.NewProgram(m, tea.WithOutput(out))

	done := make(chan error, 1)
	go func() {
		if _, err := p.Run(); err != nil {
			// Spinner failures are cosmetic only.
			_ = err
		}
	}()

	go func() {
		quiet := *e
		quiet.stdout = newTailBuffer(8 * 1024)
		quiet.stderr = quiet.stdout
		done <- quiet.Run(ctx, name, args...)
	}()

	err := <-done
	p.Send(spinnerDoneMsg{err: err})

	// Give the spinner a beat to render its final state.
	time.Sleep(50 * time.Millisecond)
	p.Quit()

	return err
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
	err     error
}

type spinnerDoneMsg struct {
	err error
}

func newSpinnerModel(message string) *spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &spinnerModel{
		spinner: s,
		message: message,
	}
}

func (m *spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if !m.done {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		if m.err != nil {
			return fmt.Sprintf("❌ %s\n", m.message)
		}
		return fmt.Sprintf("✅ %s\n", m.message)
	}
	return fmt.Sprintf("%s %s...", m.spinner.View(), m.message)
}
