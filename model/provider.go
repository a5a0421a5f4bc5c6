package model

import (
	"context"
	"errors"
)

// ErrNoContent is returned by providers when the model answered without any
// choice or with an empty text body.
var ErrNoContent = errors.New("model returned no content")

// Provider abstracts LLM provider implementations (OpenAI, OpenRouter,
// Anthropic, Ollama) using provider-agnostic types from the model layer.
//
// This interface is defined in the model package (not provider package) to avoid
// import cycles: provider implementations import model, and the completion
// client uses the Provider interface without importing the provider package.
type Provider interface {
	// Complete sends the request and blocks until the full answer is available.
	Complete(ctx context.Context, req Request) (string, error)

	// ListModels returns available models for this provider.
	ListModels(ctx context.Context) ([]ModelInfo, error)

	// GetModel returns the model used when a Request leaves Model empty.
	GetModel() string

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// Request is a single non-streaming completion call.
type Request struct {
	Model    string // empty means the provider's default model
	Messages []Message
	Sampling Sampling
}

// Sampling holds the generation parameters sent with every request.
type Sampling struct {
	Temperature      float64 `toml:"temperature"`
	MaxTokens        int     `toml:"max_tokens"`
	TopP             float64 `toml:"top_p"`
	FrequencyPenalty float64 `toml:"frequency_penalty"`
	PresencePenalty  float64 `toml:"presence_penalty"`
}

// DefaultSampling returns the parameters used when nothing is configured.
func DefaultSampling() Sampling {
	return Sampling{
		Temperature: 0.7,
		MaxTokens:   1500,
		TopP:        1,
	}
}

// ModelInfo describes a model offered by a provider.
type ModelInfo struct {
	Name     string
	Size     int64
	Provider string // Provider ID: "ollama", "openai", "openrouter", "anthropic"
}
