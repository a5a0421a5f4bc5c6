package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"

	"cotchat/config"
	"cotchat/model"
)

// OpenRouterProvider implements the Provider interface using OpenAI's official Go SDK.
// It connects to OpenRouter's API which is 100% OpenAI-compatible.
type OpenRouterProvider struct {
	client  openai.Client
	model   string
	baseURL string
}

// NewOpenRouterProvider creates a new OpenRouter provider instance.
//
// Defaults: base URL "https://openrouter.ai/api/v1",
// model "meta-llama/llama-3.2-90b-instruct".
func NewOpenRouterProvider(cfg Config) (*OpenRouterProvider, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "meta-llama/llama-3.2-90b-instruct"
	}

	return &OpenRouterProvider{
		client:  openai.NewClient(openAIOptions(cfg)...),
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
	}, nil
}

// Complete implements Provider.Complete with a single non-streaming request.
func (p *OpenRouterProvider) Complete(ctx context.Context, req model.Request) (string, error) {
	params := buildOpenAIParams(req, p.model)

	if config.DebugLog != nil {
		config.DebugLog.Debug("openrouter request", "model", params.Model, "messages", len(params.Messages))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("OpenRouter completion error: %w", err)
	}

	return firstChoiceText(resp)
}

// ListModels implements Provider.ListModels.
// OpenRouter model IDs carry a vendor prefix ("qwen/qwen3-coder:free");
// Name keeps the full ID because that is what requests must use.
func (p *OpenRouterProvider) ListModels(ctx context.Context) ([]model.ModelInfo, error) {
	modelsPage, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenRouter models: %w", err)
	}

	result := make([]model.ModelInfo, 0, len(modelsPage.Data))
	for _, m := range modelsPage.Data {
		result = append(result, model.ModelInfo{
			Name:     m.ID,
			Provider: string(ProviderTypeOpenRouter),
		})
	}
	return result, nil
}

// GetModel implements Provider.GetModel.
func (p *OpenRouterProvider) GetModel() string {
	return p.model
}

// Ping implements Provider.Ping by attempting to list models.
func (p *OpenRouterProvider) Ping(ctx context.Context) error {
	if _, err := p.client.Models.List(ctx); err != nil {
		return fmt.Errorf("OpenRouter ping failed: %w", err)
	}
	return nil
}

// buildOpenAIParams converts a model.Request into chat completion params.
func buildOpenAIParams(req model.Request, defaultModel string) openai.ChatCompletionNewParams {
	modelName := req.Model
	if modelName == "" {
		modelName = defaultModel
	}

	params := openai.ChatCompletionNewParams{
		Messages:         ConvertToOpenAIMessages(req.Messages),
		Model:            openai.ChatModel(modelName),
		Temperature:      openai.Float(req.Sampling.Temperature),
		TopP:             openai.Float(req.Sampling.TopP),
		FrequencyPenalty: openai.Float(req.Sampling.FrequencyPenalty),
		PresencePenalty:  openai.Float(req.Sampling.PresencePenalty),
	}
	if req.Sampling.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.Sampling.MaxTokens))
	}
	return params
}

// firstChoiceText extracts the first choice's content, or model.ErrNoContent.
func firstChoiceText(resp *openai.ChatCompletion) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", model.ErrNoContent
	}
	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", model.ErrNoContent
	}
	return content, nil
}

// ConvertToOpenAIMessages converts model.Message to OpenAI message params.
func ConvertToOpenAIMessages(messages []model.Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))

	for i, msg := range messages {
		switch msg.Role {
		case model.RoleSystem:
			result[i] = openai.SystemMessage(msg.Content)
		case model.RoleUser:
			result[i] = openai.UserMessage(msg.Content)
		case model.RoleAssistant:
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			// Default to user message
			result[i] = openai.UserMessage(msg.Content)
		}
	}

	return result
}
