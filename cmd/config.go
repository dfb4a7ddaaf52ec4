package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/config"
)

var configFields = []string{"configfile", "model", "gemini_base_url", "gemini_token", "promptdirs", "prompt", "temperature", "request_timeout", "log_file", "alt_screen"}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config [field]",
	Short: "Display current configuration",
	Long: `Display the current configuration values.
This command shows all configuration values loaded from the config file and environment variables.

If a field name is specified, only that field's value is displayed.
Available fields: ` + strings.Join(configFields, ", ") + `

Examples:
  gemini-chatbot config                # Show all configuration
  gemini-chatbot config model          # Show only model
  gemini-chatbot config gemini_token   # Show only Gemini token (masked)
  gemini-chatbot config promptdirs     # Show only prompt directories`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if len(args) > 0 {
			return printConfigField(cmd.OutOrStdout(), cfg, viper.ConfigFileUsed(), args[0])
		}
		printConfig(cmd.OutOrStdout(), cfg, viper.ConfigFileUsed())
		return nil
	},
}

func configValue(cfg *config.Config, configFile, field string) (string, bool) {
	switch strings.ToLower(field) {
	case "configfile":
		return configFile, true
	case "model":
		return cfg.Model, true
	case "gemini_base_url", "geminibaseurl":
		return cfg.GeminiBaseURL, true
	case "gemini_token", "geminitoken":
		return config.MaskToken(cfg.GetToken()), true
	case "promptdirs", "prompt_dirs":
		return strings.Join(cfg.PromptDirs, ","), true
	case "prompt":
		return cfg.Prompt, true
	case "temperature":
		return fmt.Sprint(cfg.Temperature), true
	case "request_timeout", "requesttimeout":
		return cfg.RequestTimeout.String(), true
	case "log_file", "logfile":
		return cfg.LogFile, true
	case "alt_screen", "altscreen":
		return fmt.Sprint(cfg.AltScreen), true
	}
	return "", false
}

func printConfigField(w io.Writer, cfg *config.Config, configFile, field string) error {
	value, ok := configValue(cfg, configFile, field)
	if !ok {
		return fmt.Errorf("unknown field: %s (available fields: %s)", field, strings.Join(configFields, ", "))
	}
	fmt.Fprintln(w, value)
	return nil
}

func printConfig(w io.Writer, cfg *config.Config, configFile string) {
	label := color.New(color.FgCyan)
	for _, field := range configFields {
		value, _ := configValue(cfg, configFile, field)
		label.Fprintf(w, "%-16s", field+":")
		fmt.Fprintln(w, value)
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
}
