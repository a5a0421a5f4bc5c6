package provider

import (
	"testing"

	"cotchat/model"
	"cotchat/provider/testutil"
)

func TestConvertToOllamaMessages(t *testing.T) {
	tests := []struct {
		name  string
		input []model.Message
	}{
		{name: "empty slice", input: testutil.EmptyMessages()},
		{name: "conversation", input: testutil.TestMessages()},
		{
			name: "system message kept in place",
			input: []model.Message{
				{Role: model.RoleUser, Content: "Hi"},
				{Role: model.RoleSystem, Content: "Be brief"},
				{Role: model.RoleUser, Content: "Again"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertToOllamaMessages(tt.input)

			if len(result) != len(tt.input) {
				t.Fatalf("length mismatch: got %d, want %d", len(result), len(tt.input))
			}
			for i, msg := range result {
				if msg.Role != string(tt.input[i].Role) {
					t.Errorf("message %d role: got %q, want %q", i, msg.Role, tt.input[i].Role)
				}
				if msg.Content != tt.input[i].Content {
					t.Errorf("message %d content: got %q, want %q", i, msg.Content, tt.input[i].Content)
				}
			}
		})
	}
}

func TestConvertToOllamaOptions(t *testing.T) {
	opts := ConvertToOllamaOptions(model.DefaultSampling())
	if opts["temperature"] != 0.7 {
		t.Errorf("temperature: got %v", opts["temperature"])
	}
	if opts["num_predict"] != 1500 {
		t.Errorf("num_predict: got %v", opts["num_predict"])
	}

	opts = ConvertToOllamaOptions(model.Sampling{Temperature: 1})
	if _, ok := opts["num_predict"]; ok {
		t.Error("num_predict should be unset when MaxTokens is zero")
	}
}

func TestConvertToOpenAIMessages(t *testing.T) {
	input := []model.Message{
		{Role: model.RoleUser, Content: "question"},
		{Role: model.RoleAssistant, Content: "answer"},
		{Role: model.RoleSystem, Content: "rules"},
		{Role: model.Role("tool"), Content: "fallback"},
	}

	result := ConvertToOpenAIMessages(input)
	if len(result) != len(input) {
		t.Fatalf("length mismatch: got %d, want %d", len(result), len(input))
	}
	if result[0].OfUser == nil {
		t.Error("message 0 should be a user message")
	}
	if result[1].OfAssistant == nil {
		t.Error("message 1 should be an assistant message")
	}
	if result[2].OfSystem == nil {
		t.Error("message 2 should be a system message")
	}
	if result[3].OfUser == nil {
		t.Error("unknown roles should default to user")
	}
}

func TestConvertToAnthropicMessages(t *testing.T) {
	input := []model.Message{
		{Role: model.RoleUser, Content: "question"},
		{Role: model.RoleAssistant, Content: "answer"},
		{Role: model.RoleSystem, Content: "rules"},
		{Role: model.RoleUser, Content: "follow-up"},
	}

	msgs, system := convertToAnthropicMessages(input)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 conversation messages, got %d", len(msgs))
	}
	if len(system) != 1 || system[0].Text != "rules" {
		t.Errorf("system blocks: got %+v", system)
	}
	if msgs[0].Role != "user" || msgs[1].Role != "assistant" || msgs[2].Role != "user" {
		t.Errorf("unexpected roles: %s %s %s", msgs[0].Role, msgs[1].Role, msgs[2].Role)
	}
}
