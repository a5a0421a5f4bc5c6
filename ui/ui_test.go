package ui

import (
	"context"
	"strings"
	"sync"

	"cotchat/model"
)

// fakeChatter echoes messages and keeps a history like the agent does.
type fakeChatter struct {
	mu       sync.Mutex
	history  []model.Message
	received []string
	block    bool
}

func (f *fakeChatter) Chat(ctx context.Context, msg string) string {
	if f.block {
		<-ctx.Done()
		return "cancelled"
	}
	answer := "echo: " + msg
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, msg)
	f.history = append(f.history, model.UserMessage(msg), model.AssistantMessage(answer))
	return answer
}

func (f *fakeChatter) History() []model.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Message(nil), f.history...)
}

func (f *fakeChatter) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.history = nil
}

func stubClipboard() (*[]string, func()) {
	var copied []string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = append(copied, s)
		return nil
	}
	return &copied, func() { writeClipboard = orig }
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}
