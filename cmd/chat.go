/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/config"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/gemini"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/logging"
	promptpkg "github.com/SAIRAKSHAAN1/gemini-chatbot/internal/prompt"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/session"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/tui"
)

var (
	model       string
	prompt      string
	argFlags    []string
	temperature float32
	altScreen   bool
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Open the chat screen",
	Long: `Open the interactive chat screen.
Type a message and press Enter to send it. Replies appear in the transcript
once the model answers; Esc or Ctrl+C quits.

If a message is given as an argument, it is sent as soon as the screen opens.

You can specify the model and prompt template using flags.
If not specified, the values will be taken from the configuration file.

The prompt file should be in TOML format with the following structure:
system = "System instruction with optional {{key}} placeholders"
model = "optional-model-name"  # Optional: overrides the default model
temperature = 0.7              # Optional: sampling temperature`,
	Args: cobra.ArbitraryArgs,
	RunE: runChat,
}

func addChatFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&model, "model", "m", "", "Gemini model to use (e.g., gemini-1.5-pro)")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Name of the prompt template (without .toml extension)")
	cmd.Flags().StringArrayVar(&argFlags, "arg", []string{}, "Key-value pairs for prompt template (format: key:value)")
	cmd.Flags().Float32Var(&temperature, "temperature", 0, "Sampling temperature (overrides config and prompt template)")
	cmd.Flags().BoolVar(&altScreen, "alt-screen", true, "Use the terminal's alternate screen buffer")
}

// chatSettings is everything the chat screen needs after flags, environment,
// prompt template and config file have been merged.
type chatSettings struct {
	Model        string
	SystemPrompt string
	Temperature  *float32
	AltScreen    bool
}

// resolveChatSettings applies the priority flag > env > prompt template >
// config file.
func resolveChatSettings(cmd *cobra.Command, cfg *config.Config) (*chatSettings, error) {
	promptName := cfg.Prompt
	if cmd.Flags().Changed("prompt") {
		promptName = prompt
	}

	resolved, err := promptpkg.Resolve(promptName, cfg.PromptDirs, argFlags)
	if err != nil {
		return nil, fmt.Errorf("resolving prompt template: %w", err)
	}

	settings := &chatSettings{
		Model:        cfg.Model,
		SystemPrompt: resolved.System,
		AltScreen:    cfg.AltScreen,
	}

	envModel := os.Getenv(config.EnvPrefix + "_MODEL")
	switch {
	case cmd.Flags().Changed("model"):
		settings.Model = model
	case envModel != "":
		settings.Model = envModel
	case resolved.Model != nil:
		settings.Model = *resolved.Model
	}
	if strings.TrimSpace(settings.Model) == "" {
		return nil, fmt.Errorf("model must not be empty")
	}

	switch {
	case cmd.Flags().Changed("temperature"):
		t := temperature
		settings.Temperature = &t
	case resolved.Temperature != nil:
		settings.Temperature = resolved.Temperature
	case cfg.Temperature > 0:
		t := cfg.Temperature
		settings.Temperature = &t
	}

	if cmd.Flags().Changed("alt-screen") {
		settings.AltScreen = altScreen
	}

	return settings, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	settings, err := resolveChatSettings(cmd, cfg)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{Path: cfg.LogFile, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	manager := session.NewManager(func() chat.Provider {
		return gemini.NewProvider(gemini.Config{
			APIKey:       cfg.GetToken(),
			Model:        settings.Model,
			BaseURL:      cfg.GetBaseURL(),
			SystemPrompt: settings.SystemPrompt,
			Temperature:  settings.Temperature,
		})
	}, session.WithLogger(logger))

	sess := manager.Session()
	logger.Info("chat started",
		zap.String("session", sess.ID()),
		zap.String("model", settings.Model),
		zap.Bool("has_system_prompt", settings.SystemPrompt != ""))

	screen := tui.New(sess,
		tui.WithLogger(logger),
		tui.WithRequestTimeout(cfg.RequestTimeout),
		tui.WithSubtitle(settings.Model),
		tui.WithInitialMessage(strings.Join(args, " ")),
		tui.WithContext(cmd.Context()),
	)
	defer screen.Close()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if settings.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	if _, err := tea.NewProgram(screen, opts...).Run(); err != nil {
		return fmt.Errorf("running chat screen: %w", err)
	}

	logger.Info("chat ended", zap.String("session", sess.ID()), zap.Int("messages", sess.Len()))
	return nil
}

func init() {
	rootCmd.AddCommand(chatCmd)
	addChatFlags(chatCmd)
}
