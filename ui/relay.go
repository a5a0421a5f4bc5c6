package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"cotchat/reasoning"
)

// StepRelay carries reasoning steps from the agent goroutine into the TUI.
type StepRelay struct {
	ch chan reasoning.Step
}

func NewStepRelay() *StepRelay {
	return &StepRelay{ch: make(chan reasoning.Step, 64)}
}

// Send is a reasoning.StepFunc. Steps are dropped when the UI falls behind.
func (r *StepRelay) Send(s reasoning.Step) {
	select {
	case r.ch <- s:
	default:
	}
}

func (r *StepRelay) wait() tea.Cmd {
	return func() tea.Msg {
		return stepMsg{Step: <-r.ch}
	}
}
