package provider

import (
	"context"
	"fmt"

	"cotchat/model"
	"cotchat/ollama"
)

// OllamaProvider wraps the ollama.Client to implement the Provider interface.
//
// This provider handles the conversions between model.Message and Ollama's
// api.Message, and maps model.Sampling onto Ollama request options.
type OllamaProvider struct {
	client *ollama.Client
}

// NewOllamaProvider creates a new Ollama provider instance.
//
// An empty BaseURL defaults to "http://localhost:11434" and an empty Model to
// "llama3.1:latest". No API key is needed.
func NewOllamaProvider(cfg Config) (*OllamaProvider, error) {
	var (
		client *ollama.Client
		err    error
	)
	if cfg.HTTPClient != nil {
		client, err = ollama.NewClientWithHTTP(cfg.BaseURL, cfg.Model, cfg.HTTPClient)
	} else {
		client, err = ollama.NewClient(cfg.BaseURL, cfg.Model)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	return &OllamaProvider{client: client}, nil
}

// Complete implements Provider.Complete.
func (p *OllamaProvider) Complete(ctx context.Context, req model.Request) (string, error) {
	text, err := p.client.Chat(ctx, req.Model, ConvertToOllamaMessages(req.Messages), ConvertToOllamaOptions(req.Sampling))
	if err != nil {
		return "", fmt.Errorf("Ollama chat error: %w", err)
	}
	if text == "" {
		return "", model.ErrNoContent
	}
	return text, nil
}

// ListModels implements Provider.ListModels.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	names, err := p.client.ListModels(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.ModelInfo, len(names))
	for i, name := range names {
		result[i] = model.ModelInfo{Name: name, Provider: string(ProviderTypeOllama)}
	}
	return result, nil
}

// GetModel implements Provider.GetModel (direct passthrough).
func (p *OllamaProvider) GetModel() string {
	return p.client.GetModel()
}

// Ping implements Provider.Ping (direct passthrough).
func (p *OllamaProvider) Ping(ctx context.Context) error {
	return p.client.Ping(ctx)
}
