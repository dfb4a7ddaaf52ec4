/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/config"
	promptpkg "github.com/SAIRAKSHAAN1/gemini-chatbot/internal/prompt"
)

var withDir bool

// promptCmd represents the prompt command
var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "List available prompt templates",
	Long: `List all available prompt templates from the configured prompt directories.
This command recursively scans all prompt directories specified in the configuration and displays
the names of available .toml prompt files, including those in subdirectories.

The prompt files should be in TOML format with the following structure:
system = "System instruction with optional {{key}} placeholders"

Prompt names are displayed as relative paths from the prompt directory root.
For example, a file at ${prompt_dir}/foo/bar.toml will be displayed as "foo/bar".

If you want to see which directory each prompt comes from, use the --with-dir option.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if verbose {
			fmt.Fprintf(os.Stderr, "Prompt directories: %v\n", cfg.PromptDirs)
		}

		entries, err := promptpkg.List(cfg.PromptDirs)
		if err != nil {
			return fmt.Errorf("listing prompt templates: %w", err)
		}

		printPrompts(cmd.OutOrStdout(), entries, cfg.PromptDirs, withDir)
		return nil
	},
}

func printPrompts(w io.Writer, entries []promptpkg.Entry, promptDirs []string, showDir bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No prompt templates found.")
		fmt.Fprintln(w, "Create .toml files in the following directories:")
		for _, promptDir := range promptDirs {
			fmt.Fprintf(w, "  - %s\n", promptDir)
		}
		return
	}

	fmt.Fprintf(w, "Available prompt templates (%d found):\n\n", len(entries))
	for _, entry := range entries {
		if showDir {
			fmt.Fprintf(w, "  %s (from %s)\n", entry.Name, entry.Dir)
		} else {
			fmt.Fprintf(w, "  %s\n", entry.Name)
		}
	}

	fmt.Fprintf(w, "\nUse a prompt template with: %s chat --prompt <name>\n", config.AppName)
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().BoolVar(&withDir, "with-dir", false, "Show the directory each prompt was found in")
}
