package provider

import (
	"github.com/ollama/ollama/api"

	"cotchat/model"
)

// ConvertToOllamaMessages converts model.Message to Ollama api.Message.
//
// Timestamps are not preserved; the Ollama API has no field for them.
func ConvertToOllamaMessages(messages []model.Message) []api.Message {
	result := make([]api.Message, len(messages))
	for i, msg := range messages {
		result[i] = api.Message{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}
	return result
}

// ConvertToOllamaOptions maps sampling parameters onto Ollama's option keys.
// A non-positive MaxTokens leaves num_predict unset (server default).
func ConvertToOllamaOptions(s model.Sampling) map[string]any {
	opts := map[string]any{
		"temperature":       s.Temperature,
		"top_p":             s.TopP,
		"frequency_penalty": s.FrequencyPenalty,
		"presence_penalty":  s.PresencePenalty,
	}
	if s.MaxTokens > 0 {
		opts["num_predict"] = s.MaxTokens
	}
	return opts
}
