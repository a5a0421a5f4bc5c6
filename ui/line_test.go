package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"cotchat/reasoning"
)

func TestLineDriverRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "exit sentinel",
			input: "hello\nexit\n",
			want:  "Welcome\nYou: Agent: echo: hello\n\nYou: Goodbye!\n",
		},
		{
			name:  "exit is case insensitive",
			input: "  EXIT  \n",
			want:  "Welcome\nYou: Goodbye!\n",
		},
		{
			name:  "blank lines are skipped",
			input: "\n   \nhi\nExit\n",
			want:  "Welcome\nYou: You: You: Agent: echo: hi\n\nYou: Goodbye!\n",
		},
		{
			name:  "eof ends session",
			input: "one\ntwo",
			want:  "Welcome\nYou: Agent: echo: one\n\nYou: Agent: echo: two\n\nYou: \nGoodbye!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			d := NewLineDriver(&fakeChatter{}, strings.NewReader(tt.input), &out, "Welcome")

			if err := d.Run(context.Background()); err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output mismatch\ngot:  %q\nwant: %q", out.String(), tt.want)
			}
		})
	}
}

func TestLineDriverCommands(t *testing.T) {
	copied, restore := stubClipboard()
	defer restore()

	chat := &fakeChatter{}
	var out bytes.Buffer
	input := "/copy\nquestion\n/hist\n/copy\n/clear\n/history\n/exit\n"
	d := NewLineDriver(chat, strings.NewReader(input), &out, "")

	if err := d.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Nothing to copy yet.",
		"Agent: echo: question",
		"1 turn (2 messages) in history.",
		"Copied last answer to clipboard.",
		"Conversation cleared.",
		"No conversation yet.",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
	if len(*copied) != 1 || (*copied)[0] != "echo: question" {
		t.Errorf("clipboard = %q", *copied)
	}
	if len(chat.received) != 1 {
		t.Errorf("agent received %v, commands should not reach it", chat.received)
	}
}

func TestLineDriverCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	d := NewLineDriver(&fakeChatter{}, strings.NewReader("hello\n"), &out, "")
	if err := d.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestPrintSteps(t *testing.T) {
	var out bytes.Buffer
	step := PrintSteps(&out)

	step(reasoning.Step{Phase: reasoning.PhaseThought, Round: 1, Text: "<thinking>x</thinking>"})
	step(reasoning.Step{Phase: reasoning.PhaseValidation, Round: 1, Text: "No"})
	step(reasoning.Step{Phase: reasoning.PhaseRetry, Attempt: 2, Err: errors.New("boom")})
	step(reasoning.Step{Phase: reasoning.PhaseValidation, Round: 2, Text: "Yes", Answered: true})
	step(reasoning.Step{Phase: reasoning.PhaseAnswer, Text: "final"})

	want := []string{
		"Thinking (round 1):",
		"<thinking>x</thinking>",
		"",
		"Validation response: No",
		"Reasoning did not contain the answer",
		"Thought attempt 2 failed: boom",
		"Validation response: Yes",
	}
	got := lines(out.String())
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("PrintSteps output:\n%s", out.String())
	}
}
