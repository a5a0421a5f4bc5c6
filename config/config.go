package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"

	"cotchat/model"
)

const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderOllama     = "ollama"

	StrategyPlain          = "plain"
	StrategyChainOfThought = "chain_of_thought"

	TraceNone   = "none"
	TraceFiles  = "files"
	TraceSQLite = "sqlite"
)

type ProviderConfig struct {
	Type    string `toml:"type"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
	APIKey  string `toml:"api_key"`
}

type RetryConfig struct {
	MaxAttempts     int           `toml:"max_attempts"`
	InitialInterval time.Duration `toml:"initial_interval"`
	MaxInterval     time.Duration `toml:"max_interval"`
}

type ReasoningConfig struct {
	Strategy string      `toml:"strategy"`
	Retry    RetryConfig `toml:"retry"`
}

type DebugConfig struct {
	Enabled bool   `toml:"enabled"`
	Console bool   `toml:"console"`
	Trace   string `toml:"trace"`
}

// Config is the construction-time configuration of a chat session.
type Config struct {
	DataDirectory string          `toml:"data_directory"`
	Provider      ProviderConfig  `toml:"provider"`
	Reasoning     ReasoningConfig `toml:"reasoning"`
	Sampling      model.Sampling  `toml:"sampling"`
	Debug         DebugConfig     `toml:"debug"`
}

var Debug = false
var DebugLog *slog.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) Model() string {
	return c.Provider.Model
}

// TraceDir is where per-call trace files and the trace database live.
func (c *Config) TraceDir() string {
	return filepath.Join(c.DataDir(), "requests")
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("COTCHAT_PROVIDER"); v != "" {
		c.Provider.Type = v
	}
	if v := os.Getenv("COTCHAT_MODEL"); v != "" {
		c.Provider.Model = v
	}
	if v := os.Getenv("COTCHAT_BASE_URL"); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv("COTCHAT_STRATEGY"); v != "" {
		c.Reasoning.Strategy = v
	}
	if v := os.Getenv("COTCHAT_TRACE"); v != "" {
		c.Debug.Trace = v
	}
	if v := os.Getenv("COTCHAT_DATA_DIR"); v != "" {
		c.DataDirectory = v
	}
	if CheckDebug() {
		c.Debug.Enabled = true
	}

	if c.Provider.APIKey == "" {
		c.Provider.APIKey = os.Getenv(apiKeyEnvVar(c.Provider.Type))
	}
}

// apiKeyEnvVar returns the conventional environment variable for a provider key.
func apiKeyEnvVar(providerType string) string {
	switch providerType {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderOpenRouter:
		return "OPENROUTER_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

func CheckDebug() bool {
	debug := os.Getenv("COTCHAT_DEBUG")
	return debug == "true" || debug == "1"
}

// Validate rejects settings that cannot produce a working agent.
func (c *Config) Validate() error {
	switch c.Provider.Type {
	case ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic:
		if c.Provider.APIKey == "" {
			return fmt.Errorf("missing API key for provider %s (set %s)", c.Provider.Type, apiKeyEnvVar(c.Provider.Type))
		}
	case ProviderOllama:
	default:
		return fmt.Errorf("unknown provider: %q", c.Provider.Type)
	}

	switch c.Reasoning.Strategy {
	case StrategyPlain, StrategyChainOfThought:
	default:
		return fmt.Errorf("unknown reasoning strategy: %q", c.Reasoning.Strategy)
	}

	switch c.Debug.Trace {
	case TraceNone, TraceFiles, TraceSQLite:
	default:
		return fmt.Errorf("unknown trace backend: %q", c.Debug.Trace)
	}

	if c.Reasoning.Retry.MaxAttempts <= 0 {
		return errors.New("reasoning.retry.max_attempts must be positive")
	}
	if c.Reasoning.Retry.InitialInterval < 0 || c.Reasoning.Retry.MaxInterval < 0 {
		return errors.New("reasoning.retry intervals cannot be negative")
	}
	return nil
}

// InitDebugLog opens <dataDir>/debug.log and, when console is non-nil, also
// mirrors records there. It is a no-op unless debug is enabled. The returned
// function closes the log file.
func InitDebugLog(dataDir string, enabled bool, console io.Writer) func() {
	if !enabled {
		return func() {}
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	var handlers []slog.Handler

	// Create debug log with secure permissions (0600 - contains prompts and answers)
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
	} else {
		handlers = append(handlers, slog.NewTextHandler(f, opts))
	}
	if console != nil {
		handlers = append(handlers, slog.NewTextHandler(console, opts))
	}
	if len(handlers) == 0 {
		return func() {}
	}

	DebugLog = slog.New(slogmulti.Fanout(handlers...))
	DebugLog.Debug("debug logging started", "env", os.Getenv("COTCHAT_DEBUG"), "path", logPath)

	return func() {
		DebugLog = nil
		Debug = false
		if f != nil {
			_ = f.Close()
		}
	}
}

// Load reads the settings file (creating it on first run), applies
// environment overrides, validates, and prepares the data directory.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	settingsPath := GetSettingsFilePath()
	if !FileExists(settingsPath) {
		if err := CreateDefaultSettings(settingsPath); err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}
	} else if err := LoadSettings(settingsPath, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvOverrides()
	cfg.Provider.Type = strings.ToLower(strings.TrimSpace(cfg.Provider.Type))
	cfg.Reasoning.Strategy = strings.ToLower(strings.TrimSpace(cfg.Reasoning.Strategy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dataDir := cfg.DataDir()
	if err := EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}
