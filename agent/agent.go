// Package agent owns the conversation history and runs one turn at a time
// through a reasoning strategy.
package agent

import (
	"context"
	"sync"
	"time"

	"cotchat/config"
	"cotchat/model"
	"cotchat/reasoning"
)

// Agent holds the conversation and the strategy that answers it.
type Agent struct {
	strategy reasoning.Strategy

	// turn serializes Chat calls; mu guards messages.
	turn     sync.Mutex
	mu       sync.RWMutex
	messages []model.Message
}

func New(strategy reasoning.Strategy) *Agent {
	return &Agent{strategy: strategy}
}

// Chat answers userMessage and records the exchange. The strategy sees the
// history as it was before this turn; the user message and the answer are
// appended only after it returns.
func (a *Agent) Chat(ctx context.Context, userMessage string) string {
	a.turn.Lock()
	defer a.turn.Unlock()

	snapshot := a.History()
	start := time.Now()
	answer := a.strategy.Think(ctx, snapshot, userMessage)

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Debug("turn complete",
			"strategy", a.strategy.Name(),
			"history", len(snapshot),
			"elapsed", time.Since(start).Round(time.Millisecond),
		)
	}

	a.mu.Lock()
	a.messages = append(a.messages, model.UserMessage(userMessage), model.AssistantMessage(answer))
	a.mu.Unlock()

	return answer
}

// History returns a copy of the conversation so far.
func (a *Agent) History() []model.Message {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]model.Message, len(a.messages))
	copy(out, a.messages)
	return out
}

// Reset forgets the conversation.
func (a *Agent) Reset() {
	a.mu.Lock()
	a.messages = nil
	a.mu.Unlock()
}

func (a *Agent) Strategy() reasoning.Strategy {
	return a.strategy
}
