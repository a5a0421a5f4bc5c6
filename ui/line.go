package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"

	"cotchat/model"
	"cotchat/reasoning"
)

// Chatter is the agent as seen by the chat drivers.
type Chatter interface {
	Chat(ctx context.Context, userMessage string) string
	History() []model.Message
	Reset()
}

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

const maxLineBytes = 1024 * 1024

// LineDriver is the plain read-eval loop used when stdin is not a terminal.
type LineDriver struct {
	chat    Chatter
	in      *bufio.Scanner
	out     io.Writer
	welcome string
}

func NewLineDriver(chat Chatter, in io.Reader, out io.Writer, welcome string) *LineDriver {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &LineDriver{chat: chat, in: scanner, out: out, welcome: welcome}
}

// Run reads one message per line until "exit", EOF, or ctx is done.
func (d *LineDriver) Run(ctx context.Context) error {
	if d.welcome != "" {
		fmt.Fprintln(d.out, d.welcome)
	}

	for {
		fmt.Fprint(d.out, "You: ")
		if !d.in.Scan() {
			if err := d.in.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprintln(d.out)
			fmt.Fprintln(d.out, "Goodbye!")
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(d.in.Text())
		if line == "" {
			continue
		}
		if isExit(line) {
			fmt.Fprintln(d.out, "Goodbye!")
			return nil
		}
		if c, ok := resolveCommand(line); ok {
			if c.id == cmdExit {
				fmt.Fprintln(d.out, "Goodbye!")
				return nil
			}
			fmt.Fprintln(d.out, d.runCommand(c))
			fmt.Fprintln(d.out)
			continue
		}

		answer := d.chat.Chat(ctx, line)
		fmt.Fprintf(d.out, "Agent: %s\n\n", answer)
	}
}

func (d *LineDriver) runCommand(c command) string {
	switch c.id {
	case cmdCopy:
		answer, ok := lastAnswer(d.chat.History())
		if !ok {
			return "Nothing to copy yet."
		}
		if err := writeClipboard(answer); err != nil {
			return fmt.Sprintf("Copy failed: %v", err)
		}
		return "Copied last answer to clipboard."
	case cmdHistory:
		return historySummary(d.chat.History())
	case cmdClear:
		d.chat.Reset()
		return "Conversation cleared."
	default:
		return commandHelp()
	}
}

func lastAnswer(history []model.Message) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == model.RoleAssistant {
			return history[i].Content, true
		}
	}
	return "", false
}

func historySummary(history []model.Message) string {
	turns := len(history) / 2
	switch turns {
	case 0:
		return "No conversation yet."
	case 1:
		return "1 turn (2 messages) in history."
	default:
		return fmt.Sprintf("%d turns (%d messages) in history.", turns, len(history))
	}
}

func commandHelp() string {
	var b strings.Builder
	b.WriteString("Commands:")
	for _, c := range commands {
		fmt.Fprintf(&b, "\n  /%-8s %s", c.name, c.desc)
	}
	b.WriteString("\nType exit to quit.")
	return b.String()
}

// PrintSteps writes reasoning progress to w, for line mode with debug on.
func PrintSteps(w io.Writer) reasoning.StepFunc {
	return func(s reasoning.Step) {
		switch s.Phase {
		case reasoning.PhaseThought:
			fmt.Fprintf(w, "Thinking (round %d):\n%s\n\n", s.Round, s.Text)
		case reasoning.PhaseValidation:
			fmt.Fprintf(w, "Validation response: %s\n", s.Text)
			if !s.Answered {
				fmt.Fprintln(w, "Reasoning did not contain the answer")
			}
		case reasoning.PhaseRetry:
			fmt.Fprintf(w, "Thought attempt %d failed: %v\n", s.Attempt, s.Err)
		}
	}
}
