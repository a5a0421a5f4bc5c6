// Package provider implements model.Provider for the supported LLM backends.
//
// Every provider turns the provider-agnostic model.Request into one blocking,
// non-streaming call on the vendor SDK and returns the first answer's text:
//   - OpenAIProvider: official openai-go SDK against api.openai.com
//   - OpenRouterProvider: the same SDK pointed at OpenRouter (OpenAI-compatible)
//   - AnthropicProvider: official anthropic-sdk-go
//   - OllamaProvider: a local Ollama server through the ollama package
//
// A response without choices or text yields model.ErrNoContent. Transport and
// API failures are returned wrapped; classifying them is the completion
// package's job.
//
// # Usage
//
//	p, err := provider.NewProvider(provider.Config{
//	    Type:   provider.ProviderTypeOpenAI,
//	    Model:  "gpt-4o-mini",
//	    APIKey: os.Getenv("OPENAI_API_KEY"),
//	})
//	if err != nil {
//	    // handle error
//	}
//	text, err := p.Complete(ctx, model.Request{Messages: msgs, Sampling: model.DefaultSampling()})
package provider

import "net/http"

// ProviderType identifies the provider implementation.
type ProviderType string

const (
	ProviderTypeOllama     ProviderType = "ollama"
	ProviderTypeOpenRouter ProviderType = "openrouter"
	ProviderTypeOpenAI     ProviderType = "openai"
	ProviderTypeAnthropic  ProviderType = "anthropic"
)

// Config holds provider-specific configuration.
type Config struct {
	Type    ProviderType
	BaseURL string
	Model   string
	APIKey  string // For cloud providers (unused for Ollama)

	// HTTPClient overrides the transport; nil uses the SDK default.
	HTTPClient *http.Client
}
