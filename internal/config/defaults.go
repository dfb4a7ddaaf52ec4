package config

import (
	"path/filepath"

	"github.com/spf13/viper"
)

// UserConfigDir returns $HOME/.config/gemini-chatbot for the given home.
func UserConfigDir(home string) string {
	return filepath.Join(home, ".config", AppName)
}

// SetDefaults registers default values and environment bindings on the
// global viper instance.
func SetDefaults(userConfigDir string) {
	defaultConfig := NewDefaultConfig(
		filepath.Join(userConfigDir, "prompts"),
		filepath.Join(userConfigDir, AppName+".log"),
	)

	// Later directories in the slice take precedence over earlier ones
	defaultPromptDirs := []string{
		filepath.Join("/usr/share", AppName, "prompts"),
		filepath.Join("/usr/local/share", AppName, "prompts"),
		filepath.Join(userConfigDir, "prompts"),
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("model", defaultConfig.Model)
	viper.SetDefault("gemini_base_url", defaultConfig.GeminiBaseURL)
	viper.SetDefault("gemini_token", defaultConfig.GeminiToken)
	viper.SetDefault("prompt_dirs", defaultPromptDirs)
	viper.SetDefault("prompt", defaultConfig.Prompt)
	viper.SetDefault("temperature", defaultConfig.Temperature)
	viper.SetDefault("request_timeout", defaultConfig.RequestTimeout)
	viper.SetDefault("log_file", defaultConfig.LogFile)
	viper.SetDefault("alt_screen", defaultConfig.AltScreen)

	_ = viper.BindEnv("model", EnvPrefix+"_MODEL")
	_ = viper.BindEnv("gemini_base_url", EnvPrefix+"_GEMINI_BASE_URL")
	_ = viper.BindEnv("gemini_token", EnvPrefix+"_GEMINI_TOKEN")
	_ = viper.BindEnv("log_file", EnvPrefix+"_LOG_FILE")
}
