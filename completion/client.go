// Package completion turns a conversation snapshot plus a prompt into one
// blocking call on a model.Provider.
//
// Complete never panics and never returns a raw provider error: failures are
// either ErrEmptyResponse or a *ProviderError.
package completion

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"cotchat/config"
	"cotchat/model"
	"cotchat/trace"
)

// Call is the input of a single completion.
type Call struct {
	History      []model.Message
	Prompt       string
	SystemPrompt string // optional
	Model        string // empty means the provider default
}

// Client sends calls to a provider and records them to a tracer.
type Client struct {
	provider     model.Provider
	providerName string
	sampling     model.Sampling
	tracer       trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithSampling overrides the default sampling parameters.
func WithSampling(s model.Sampling) Option {
	return func(c *Client) { c.sampling = s }
}

// WithTracer records every call to t.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithProviderName sets the name reported in ProviderError.
func WithProviderName(name string) Option {
	return func(c *Client) { c.providerName = name }
}

// NewClient builds a completion client over p.
func NewClient(p model.Provider, opts ...Option) *Client {
	c := &Client{
		provider:     p,
		providerName: "llm",
		sampling:     model.DefaultSampling(),
		tracer:       trace.Nop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BuildMessages assembles the outgoing list: history, the optional system
// prompt, then the prompt as a user message.
func BuildMessages(history []model.Message, prompt, systemPrompt string) []model.Message {
	messages := slices.Clone(history)
	if systemPrompt != "" {
		messages = append(messages, model.SystemMessage(systemPrompt))
	}
	return append(messages, model.UserMessage(prompt))
}

// Complete runs one blocking completion and returns the trimmed answer.
func (c *Client) Complete(ctx context.Context, call Call) (string, error) {
	messages := BuildMessages(call.History, call.Prompt, call.SystemPrompt)

	modelName := call.Model
	if modelName == "" {
		modelName = c.provider.GetModel()
	}

	start := time.Now()
	text, err := c.provider.Complete(ctx, model.Request{
		Model:    modelName,
		Messages: messages,
		Sampling: c.sampling,
	})
	text = strings.TrimSpace(text)

	switch {
	case err == nil && text == "":
		err = ErrEmptyResponse
	case errors.Is(err, model.ErrNoContent):
		err = ErrEmptyResponse
	case err != nil:
		err = &ProviderError{Provider: c.providerName, Err: err}
	}

	if config.DebugLog != nil {
		config.DebugLog.Debug("completion",
			"model", modelName,
			"messages", len(messages),
			"duration", time.Since(start),
			"error", err,
		)
	}

	c.record(ctx, modelName, messages, text, err)

	if err != nil {
		return "", err
	}
	return text, nil
}

// record hands the call to the tracer; a failing tracer never affects the call.
func (c *Client) record(ctx context.Context, modelName string, messages []model.Message, answer string, callErr error) {
	rec := trace.Record{
		Time:     time.Now(),
		Model:    modelName,
		Messages: messages,
		Answer:   answer,
	}
	if callErr != nil {
		rec.Err = callErr.Error()
	}

	if err := c.tracer.Record(ctx, rec); err != nil && config.DebugLog != nil {
		config.DebugLog.Warn("trace record failed", "error", err)
	}
}
