package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"COTCHAT_CONFIG", "COTCHAT_PROVIDER", "COTCHAT_MODEL", "COTCHAT_BASE_URL",
		"COTCHAT_STRATEGY", "COTCHAT_TRACE", "COTCHAT_DATA_DIR", "COTCHAT_DEBUG",
		"OPENAI_API_KEY", "OPENROUTER_API_KEY", "ANTHROPIC_API_KEY",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadFirstRunCreatesSettings(t *testing.T) {
	home := setupHome(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	settingsPath := filepath.Join(home, ".config", "cotchat", "settings.toml")
	if !FileExists(settingsPath) {
		t.Errorf("expected settings file at %s", settingsPath)
	}
	if cfg.Provider.Type != ProviderOpenAI {
		t.Errorf("provider: got %q, want %q", cfg.Provider.Type, ProviderOpenAI)
	}
	if cfg.Provider.APIKey != "sk-test" {
		t.Errorf("api key not taken from env: %q", cfg.Provider.APIKey)
	}
	if cfg.Reasoning.Strategy != StrategyChainOfThought {
		t.Errorf("strategy: got %q", cfg.Reasoning.Strategy)
	}
	if cfg.Sampling.Temperature != 0.7 || cfg.Sampling.MaxTokens != 1500 {
		t.Errorf("unexpected sampling defaults: %+v", cfg.Sampling)
	}
	if !FileExists(cfg.DataDir()) {
		t.Errorf("data directory %s was not created", cfg.DataDir())
	}
}

func TestLoadSettingsFile(t *testing.T) {
	home := setupHome(t)
	path := filepath.Join(home, "custom.toml")
	content := `
data_directory = "~/chatdata"

[provider]
type = "ollama"
base_url = "http://localhost:11434"
model = "llama3.1:latest"

[reasoning]
strategy = "plain"

[reasoning.retry]
max_attempts = 3
initial_interval = "250ms"
max_interval = "2s"

[sampling]
temperature = 0.2
max_tokens = 256

[debug]
trace = "sqlite"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("COTCHAT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Provider.Type != ProviderOllama || cfg.Provider.Model != "llama3.1:latest" {
		t.Errorf("provider not loaded: %+v", cfg.Provider)
	}
	if cfg.Reasoning.Strategy != StrategyPlain {
		t.Errorf("strategy: got %q", cfg.Reasoning.Strategy)
	}
	if cfg.Reasoning.Retry.MaxAttempts != 3 || cfg.Reasoning.Retry.InitialInterval != 250*time.Millisecond {
		t.Errorf("retry not loaded: %+v", cfg.Reasoning.Retry)
	}
	if cfg.Sampling.Temperature != 0.2 || cfg.Sampling.MaxTokens != 256 {
		t.Errorf("sampling not loaded: %+v", cfg.Sampling)
	}
	// Keys absent from the file keep their defaults
	if cfg.Sampling.TopP != 1 {
		t.Errorf("top_p default lost: %v", cfg.Sampling.TopP)
	}
	if cfg.Debug.Trace != TraceSQLite {
		t.Errorf("trace: got %q", cfg.Debug.Trace)
	}
	if want := filepath.Join(home, "chatdata"); cfg.DataDir() != want {
		t.Errorf("data dir: got %q, want %q", cfg.DataDir(), want)
	}
}

func TestEnvOverrides(t *testing.T) {
	setupHome(t)
	t.Setenv("COTCHAT_PROVIDER", "Anthropic")
	t.Setenv("COTCHAT_MODEL", "claude-sonnet-4-5-20250929")
	t.Setenv("COTCHAT_STRATEGY", "PLAIN")
	t.Setenv("COTCHAT_TRACE", "none")
	t.Setenv("ANTHROPIC_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Provider.Type != ProviderAnthropic {
		t.Errorf("provider: got %q", cfg.Provider.Type)
	}
	if cfg.Model() != "claude-sonnet-4-5-20250929" {
		t.Errorf("model: got %q", cfg.Model())
	}
	if cfg.Reasoning.Strategy != StrategyPlain {
		t.Errorf("strategy: got %q", cfg.Reasoning.Strategy)
	}
	if cfg.Provider.APIKey != "key" {
		t.Errorf("api key: got %q", cfg.Provider.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults with key",
			mutate: func(c *Config) { c.Provider.APIKey = "k" },
		},
		{
			name:    "missing key",
			mutate:  func(c *Config) {},
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:   "ollama needs no key",
			mutate: func(c *Config) { c.Provider.Type = ProviderOllama },
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Provider.Type = "bard" },
			wantErr: "unknown provider",
		},
		{
			name: "unknown strategy",
			mutate: func(c *Config) {
				c.Provider.APIKey = "k"
				c.Reasoning.Strategy = "tree_of_thought"
			},
			wantErr: "unknown reasoning strategy",
		},
		{
			name: "unknown trace",
			mutate: func(c *Config) {
				c.Provider.APIKey = "k"
				c.Debug.Trace = "s3"
			},
			wantErr: "unknown trace backend",
		},
		{
			name: "zero attempts",
			mutate: func(c *Config) {
				c.Provider.APIKey = "k"
				c.Reasoning.Retry.MaxAttempts = 0
			},
			wantErr: "max_attempts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestInitDebugLog(t *testing.T) {
	dir := t.TempDir()

	closeLog := InitDebugLog(dir, false, nil)
	if DebugLog != nil || Debug {
		t.Fatal("debug log should stay disabled")
	}
	closeLog()

	var console bytes.Buffer
	closeLog = InitDebugLog(dir, true, &console)
	if DebugLog == nil || !Debug {
		t.Fatal("debug log should be enabled")
	}
	DebugLog.Debug("hello", "turn", 1)
	closeLog()

	if DebugLog != nil {
		t.Error("close should reset DebugLog")
	}
	if !strings.Contains(console.String(), "msg=hello") {
		t.Errorf("console did not receive record: %q", console.String())
	}
	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	if err != nil {
		t.Fatalf("read debug.log: %v", err)
	}
	if !strings.Contains(string(data), "turn=1") {
		t.Errorf("debug.log missing record: %q", data)
	}
}

func TestExpandPath(t *testing.T) {
	home := setupHome(t)
	if got, want := ExpandPath("~/x/y"), filepath.Join(home, "x", "y"); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("empty path should stay empty, got %q", got)
	}
}
