/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/config"
)

var (
	cfgFile string
	verbose bool
	logFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   config.AppName,
	Short: "A terminal chat client for Google Gemini",
	Long: `gemini-chatbot is a terminal chat client for Google Gemini.
Running it without a subcommand opens the chat screen, the same as 'gemini-chatbot chat'.

The API key is read from GEMINI_API_KEY (or the gemini_token config value).
A .env or .env.local file in the working directory is loaded first.
You can configure the tool using a TOML configuration file.`,
	Args: cobra.ArbitraryArgs,
	RunE: runChat,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/gemini-chatbot/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file (default is $HOME/.config/gemini-chatbot/gemini-chatbot.log)")

	addChatFlags(rootCmd)
}

// loadDotEnv loads .env files from the working directory. Variables already
// set in the environment win, and .env.local wins over .env.
func loadDotEnv() {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) && verbose {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", name, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	loadDotEnv()

	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	userConfigDir := config.UserConfigDir(home)

	config.SetDefaults(userConfigDir)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	} else {
		// Load system-wide config first (lower priority)
		viper.AddConfigPath("/etc/" + config.AppName)
		viper.AddConfigPath("/usr/local/etc/" + config.AppName)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")

		systemConfigLoaded := false
		if err := viper.ReadInConfig(); err == nil {
			systemConfigLoaded = true
			if verbose {
				fmt.Fprintln(os.Stderr, "Loaded system-wide config:", viper.ConfigFileUsed())
			}
		}

		// Load user config (higher priority)
		viper.AddConfigPath(userConfigDir)
		if systemConfigLoaded {
			if err := viper.MergeInConfig(); err != nil {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					fmt.Fprintf(os.Stderr, "Error merging user config file: %v\n", err)
				}
			} else if verbose {
				fmt.Fprintln(os.Stderr, "Merged user config:", viper.ConfigFileUsed())
			}
		} else if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			}
		}
	}

	if logFile != "" {
		viper.Set("log_file", logFile)
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  model:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  gemini_base_url:", viper.GetString("gemini_base_url"))
		fmt.Fprintln(os.Stderr, "  prompt_dirs:", viper.GetStringSlice("prompt_dirs"))
		fmt.Fprintln(os.Stderr, "  log_file:", viper.GetString("log_file"))
	}
}
