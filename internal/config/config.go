package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is used for the config directory, env prefix and log file.
	AppName = "gemini-chatbot"
	// EnvPrefix prefixes every environment variable bound by viper.
	EnvPrefix = "GEMINI_CHATBOT"

	DefaultModel = "gemini-1.5-pro"
	DefaultToken = "$GEMINI_API_KEY"
)

// FallbackTokenEnv is consulted when the configured token resolves to nothing.
// It is the variable the web front-end used for the same key.
const FallbackTokenEnv = "NEXT_PUBLIC_GEMINI_API_KEY"

// Config holds the configuration for the chat client
type Config struct {
	Model          string        `toml:"model" mapstructure:"model"` // Gemini model identifier (e.g., "gemini-1.5-pro")
	GeminiBaseURL  string        `toml:"gemini_base_url" mapstructure:"gemini_base_url"`
	GeminiToken    string        `toml:"gemini_token" mapstructure:"gemini_token"`
	PromptDirs     []string      `toml:"prompt_dirs" mapstructure:"prompt_dirs"`
	Prompt         string        `toml:"prompt" mapstructure:"prompt"`                   // Default prompt template name (empty = none)
	Temperature    float32       `toml:"temperature" mapstructure:"temperature"`         // 0 = provider default
	RequestTimeout time.Duration `toml:"request_timeout" mapstructure:"request_timeout"` // 0 = no timeout
	LogFile        string        `toml:"log_file" mapstructure:"log_file"`
	AltScreen      bool          `toml:"alt_screen" mapstructure:"alt_screen"`
}

// NewDefaultConfig returns a new Config with default values
func NewDefaultConfig(promptDir, logFile string) *Config {
	return &Config{
		Model:          DefaultModel,
		GeminiBaseURL:  "",
		GeminiToken:    DefaultToken,
		PromptDirs:     []string{promptDir},
		Prompt:         "",
		Temperature:    0,
		RequestTimeout: 0,
		LogFile:        logFile,
		AltScreen:      true,
	}
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Model == "" {
		return nil, fmt.Errorf("model is not configured. Set it in config file (model) or environment variable (%s_MODEL)", EnvPrefix)
	}

	// Convert prompt directories to absolute paths
	for i, promptDir := range config.PromptDirs {
		absPath, err := ResolvePath(promptDir)
		if err != nil {
			return nil, fmt.Errorf("error resolving prompt directory path '%s': %w", promptDir, err)
		}
		config.PromptDirs[i] = absPath
	}

	if config.LogFile != "" {
		absPath, err := ResolvePath(expandEnvVar(config.LogFile))
		if err != nil {
			return nil, fmt.Errorf("error resolving log file path '%s': %w", config.LogFile, err)
		}
		config.LogFile = absPath
	}

	return config, nil
}
