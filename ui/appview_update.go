package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"cotchat/config"
	"cotchat/reasoning"
)

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// Title (1), separator (1), textarea (3), status bar (1)
		a.viewport.Width = a.width
		a.viewport.Height = max(a.height-6, 1)
		a.textarea.SetWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)
		return a, nil

	case spinner.TickMsg:
		if !a.thinking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.updateViewportContent(true)
		return a, cmd

	case answerMsg:
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Debug("answer received", "elapsed", msg.Elapsed, "chars", len(msg.Answer))
		}
		a.thinking = false
		if a.cancel != nil {
			a.cancel()
			a.cancel = nil
		}
		a.flash = ""
		idx := a.addEntry(EntryAssistant, msg.Answer)
		a.updateViewportContent(true)
		return a, a.renderMarkdownAsync(idx, msg.Answer)

	case stepMsg:
		if a.thinking {
			if text := describeStep(msg.Step); text != "" {
				a.addEntry(EntryThought, text)
				a.updateViewportContent(true)
			}
		}
		if a.relay != nil {
			return a, a.relay.wait()
		}
		return a, nil

	case markdownRenderedMsg:
		if msg.EntryIndex >= 0 && msg.EntryIndex < len(a.entries) {
			a.entries[msg.EntryIndex].Rendered = msg.Rendered
			a.updateViewportContent(true)
		}
		return a, nil

	case tea.KeyMsg:
		if a.showHelp {
			switch msg.String() {
			case "esc", "enter", "q", "?", "alt+h":
				a.showHelp = false
			case "ctrl+c":
				return a.quit()
			}
			return a, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return a.quit()

		case "esc":
			if a.thinking && a.cancel != nil {
				a.cancel()
				a.flash = WarningStyle.Render("Cancelling...")
			}
			return a, nil

		case "alt+h":
			a.showHelp = true
			return a, nil

		case "alt+y":
			a.copyLastAnswer()
			return a, nil

		case "alt+c":
			if err := writeClipboard(a.transcript()); err != nil {
				a.flash = WarningStyle.Render(fmt.Sprintf("Copy failed: %v", err))
			} else {
				a.flash = "Copied conversation"
			}
			return a, nil

		case "pgup", "alt+k", "alt+up":
			a.viewport.HalfPageUp()
			return a, nil

		case "pgdown", "alt+j", "alt+down":
			a.viewport.HalfPageDown()
			return a, nil

		case "alt+g":
			a.viewport.GotoTop()
			return a, nil

		case "alt+G":
			a.viewport.GotoBottom()
			return a, nil

		case "enter":
			if a.thinking {
				return a, nil
			}
			input := strings.TrimSpace(a.textarea.Value())
			if input == "" {
				return a, nil
			}
			a.textarea.Reset()
			a.flash = ""

			if isExit(input) {
				return a.quit()
			}
			if strings.HasPrefix(input, "/") {
				return a.runCommand(input)
			}
			return a.send(input)
		}
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// send starts a turn on a background goroutine; the answer comes back as
// answerMsg.
func (a AppView) send(input string) (AppView, tea.Cmd) {
	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Debug("sending message", "chars", len(input))
	}

	a.addEntry(EntryUser, input)

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.thinking = true
	a.turnStart = time.Now()
	a.spinner = newSpinner()
	a.updateViewportContent(true)

	chat := a.chat
	turn := func() tea.Msg {
		start := time.Now()
		answer := chat.Chat(ctx, input)
		return answerMsg{Answer: answer, Elapsed: time.Since(start)}
	}
	return a, tea.Batch(turn, a.spinner.Tick)
}

func (a AppView) runCommand(input string) (AppView, tea.Cmd) {
	c, ok := resolveCommand(input)
	if !ok {
		a.addEntry(EntrySystem, fmt.Sprintf("Unknown command: %s (try /help)", input))
		a.updateViewportContent(true)
		return a, nil
	}

	switch c.id {
	case cmdExit:
		return a.quit()
	case cmdHelp:
		a.showHelp = true
	case cmdCopy:
		a.copyLastAnswer()
	case cmdHistory:
		a.addEntry(EntrySystem, historySummary(a.chat.History()))
	case cmdClear:
		a.chat.Reset()
		a.entries = nil
		a.addEntry(EntrySystem, "Conversation cleared.")
	}
	a.updateViewportContent(true)
	return a, nil
}

func (a *AppView) copyLastAnswer() {
	answer, ok := a.lastAnswer()
	if !ok {
		a.flash = "Nothing to copy yet"
		return
	}
	if err := writeClipboard(answer); err != nil {
		a.flash = WarningStyle.Render(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	a.flash = "Copied last answer"
}

func (a AppView) quit() (AppView, tea.Cmd) {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Quitting = true
	return a, tea.Quit
}

// describeStep returns the transcript line for a step, or "" to skip it.
func describeStep(s reasoning.Step) string {
	switch s.Phase {
	case reasoning.PhaseThought:
		return fmt.Sprintf("Thought %d:\n%s", s.Round, s.Text)
	case reasoning.PhaseValidation:
		if s.Answered {
			return fmt.Sprintf("Round %d answers the question.", s.Round)
		}
		return fmt.Sprintf("Round %d does not answer the question yet.", s.Round)
	case reasoning.PhaseRetry:
		return fmt.Sprintf("Attempt %d failed, retrying: %v", s.Attempt, s.Err)
	}
	return ""
}
