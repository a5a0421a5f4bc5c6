package ui

import (
	"time"

	"cotchat/reasoning"
)

// Entry is one block in the transcript. Thought and system entries are
// display only; the agent's history holds the conversation itself.
type Entry struct {
	Kind      EntryKind
	Content   string
	Rendered  string
	Timestamp time.Time
}

type EntryKind int

const (
	EntryUser EntryKind = iota
	EntryAssistant
	EntryThought
	EntrySystem
)

type answerMsg struct {
	Answer  string
	Elapsed time.Duration
}

type stepMsg struct {
	Step reasoning.Step
}

type markdownRenderedMsg struct {
	EntryIndex int
	Rendered   string
}
