package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/config"
	promptpkg "github.com/SAIRAKSHAAN1/gemini-chatbot/internal/prompt"
)

const samplePromptName = "assistant"

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the configuration file",
	Long: `Initialize the configuration file with default settings.
The config file will be created at $HOME/.config/gemini-chatbot/config.toml by default.
You can specify a different location using the --config option.

A prompts directory with a sample template is created next to it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configFile := filepath.Join(config.UserConfigDir(home), "config.toml")
		if cfgFile != "" {
			configFile = cfgFile
		}

		configPath, promptsDir, err := writeInitialConfig(configFile)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen)
		green.Fprint(cmd.OutOrStdout(), "✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", configPath)
		green.Fprint(cmd.OutOrStdout(), "✓ ")
		fmt.Fprintf(cmd.OutOrStdout(), "Prompts directory created at: %s\n", promptsDir)
		return nil
	},
}

// writeInitialConfig writes the default config to configFile and creates the
// prompts directory beside it with a sample template. An existing config file
// is never overwritten.
func writeInitialConfig(configFile string) (string, string, error) {
	configDir := filepath.Dir(configFile)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		return "", "", fmt.Errorf("config file already exists at: %s", configFile)
	}

	promptsDir := filepath.Join(configDir, "prompts")
	cfg := config.NewDefaultConfig(promptsDir, filepath.Join(configDir, config.AppName+".log"))
	if err := encodeTOML(configFile, cfg); err != nil {
		return "", "", fmt.Errorf("failed to write config file: %w", err)
	}

	if err := os.MkdirAll(promptsDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create prompts directory: %w", err)
	}

	samplePath := filepath.Join(promptsDir, samplePromptName+".toml")
	if _, err := os.Stat(samplePath); os.IsNotExist(err) {
		if err := encodeTOML(samplePath, promptpkg.Sample); err != nil {
			return "", "", fmt.Errorf("failed to write sample prompt: %w", err)
		}
	}

	return configFile, promptsDir, nil
}

func encodeTOML(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(v)
}

func init() {
	rootCmd.AddCommand(initCmd)
}
