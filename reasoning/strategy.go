// Package reasoning decides how a user message becomes an answer.
//
// Two strategies exist: Plain sends the message once, ChainOfThought loops
// generate → validate until the model says the accumulated thoughts answer
// the question, then synthesizes a concise reply. Think never fails: a
// strategy that cannot produce an answer returns its fixed apology text.
package reasoning

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cotchat/completion"
	"cotchat/model"
)

const (
	NamePlain          = "plain"
	NameChainOfThought = "chain_of_thought"
)

// Strategy turns one user message into displayable text.
//
// history is a snapshot owned by the caller; strategies must not modify it.
type Strategy interface {
	Name() string
	Think(ctx context.Context, history []model.Message, userMessage string) string
}

// Completer is the part of completion.Client strategies depend on.
type Completer interface {
	Complete(ctx context.Context, call completion.Call) (string, error)
}

type settings struct {
	model  string
	retry  RetryPolicy
	onStep StepFunc
}

// Option configures a strategy.
type Option func(*settings)

// WithModel pins the model identifier sent with every call.
func WithModel(name string) Option {
	return func(s *settings) { s.model = name }
}

// WithRetryPolicy sets how failed thought generations are retried.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(s *settings) { s.retry = p }
}

// WithStepFunc registers an observer for intermediate reasoning steps.
func WithStepFunc(fn StepFunc) Option {
	return func(s *settings) { s.onStep = fn }
}

func newSettings(opts []Option) settings {
	s := settings{retry: DefaultRetryPolicy()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

type factory func(c Completer, s settings) Strategy

var factories = map[string]factory{
	NamePlain: func(c Completer, s settings) Strategy {
		return newPlain(c, s)
	},
	NameChainOfThought: func(c Completer, s settings) Strategy {
		return newChainOfThought(c, s)
	},
}

// New builds the strategy registered under name.
func New(name string, c Completer, opts ...Option) (Strategy, error) {
	if c == nil {
		return nil, fmt.Errorf("reasoning: completer is required")
	}
	key := strings.ToLower(strings.TrimSpace(name))
	f, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("unknown strategy: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f(c, newSettings(opts)), nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
