/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/config"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/gemini"
)

// modelsCmd represents the models command
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available Gemini models",
	Long: `List the Gemini models that support chat.
Fetches the latest model information directly from the Gemini API.

Example:
  gemini-chatbot models`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Listing models for provider: %s\n", gemini.ProviderName)
		}

		provider := gemini.NewProvider(gemini.Config{
			APIKey:  cfg.GetToken(),
			Model:   cfg.Model,
			BaseURL: cfg.GetBaseURL(),
		})

		models, err := provider.ListModels(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list models: %w", err)
		}
		if len(models) == 0 {
			return fmt.Errorf("no models returned from API")
		}

		printModels(cmd.OutOrStdout(), models)
		return nil
	},
}

func printModels(w io.Writer, models []gemini.ModelInfo) {
	maxModelIDWidth := 15
	for _, model := range models {
		if len(model.ID) > maxModelIDWidth {
			maxModelIDWidth = len(model.ID)
		}
	}

	fmt.Fprintf(w, "Available models for %s:\n\n", gemini.ProviderName)
	fmt.Fprintf(w, "%-*s  %-10s  %s\n", maxModelIDWidth, "MODEL ID", "DEFAULT", "DESCRIPTION")
	fmt.Fprintf(w, "%s  %s  %s\n",
		strings.Repeat("-", maxModelIDWidth),
		strings.Repeat("-", 10),
		strings.Repeat("-", 50))

	for _, model := range models {
		defaultMark := ""
		if model.IsDefault {
			defaultMark = "Yes"
		}
		fmt.Fprintf(w, "%-*s  %-10s  %s\n", maxModelIDWidth, model.ID, defaultMark, model.Description)
	}

	fmt.Fprintf(w, "\nUse a model with: %s chat --model <model>\n", config.AppName)
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
