package config

import (
	"time"

	"cotchat/model"
)

func DefaultConfig() *Config {
	return &Config{
		DataDirectory: "~/.local/share/cotchat",
		Provider: ProviderConfig{
			Type:  ProviderOpenAI,
			Model: "gpt-4o-mini",
		},
		Reasoning: ReasoningConfig{
			Strategy: StrategyChainOfThought,
			Retry: RetryConfig{
				MaxAttempts:     5,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		Sampling: model.DefaultSampling(),
		Debug: DebugConfig{
			Trace: TraceFiles,
		},
	}
}

func GenerateSettingsTemplate() string {
	return `# cotchat configuration
# Location: ~/.config/cotchat/settings.toml
# This file uses TOML format: https://toml.io

# Directory for debug logs and request traces
data_directory = "~/.local/share/cotchat"

[provider]
# openai | openrouter | anthropic | ollama
type = "openai"
# Leave empty for the provider default
base_url = ""
model = "gpt-4o-mini"
# Prefer OPENAI_API_KEY / OPENROUTER_API_KEY / ANTHROPIC_API_KEY
api_key = ""

[reasoning]
# plain | chain_of_thought
strategy = "chain_of_thought"

[reasoning.retry]
# Attempts per thought before giving up on the turn
max_attempts = 5
initial_interval = "500ms"
max_interval = "5s"

[sampling]
temperature = 0.7
max_tokens = 1500
top_p = 1.0
frequency_penalty = 0.0
presence_penalty = 0.0

[debug]
enabled = false
# Mirror debug records to stderr (line mode only)
console = false
# none | files | sqlite
trace = "files"
`
}
