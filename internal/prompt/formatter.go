package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Resolved is a prompt template with its placeholders filled in.
type Resolved struct {
	Name        string
	Path        string
	System      string
	Model       *string
	Temperature *float32
}

// Resolve finds the named template in promptDirs and replaces {{key}}
// placeholders in its system prompt with the key:value pairs from args.
// An empty name resolves to an empty prompt.
func Resolve(promptName string, promptDirs []string, args []string) (*Resolved, error) {
	if promptName == "" {
		return &Resolved{}, nil
	}

	promptPath, err := Find(promptName, promptDirs)
	if err != nil {
		return nil, err
	}

	promptTemplate, err := LoadPrompt(promptPath)
	if err != nil {
		return nil, fmt.Errorf("error loading prompt file: %w", err)
	}

	argMap, err := processArgs(args)
	if err != nil {
		return nil, fmt.Errorf("error processing arguments: %w", err)
	}

	systemPrompt := promptTemplate.System
	for key, value := range argMap {
		placeholder := fmt.Sprintf("{{%s}}", key)
		systemPrompt = strings.ReplaceAll(systemPrompt, placeholder, value)
	}

	if promptTemplate.Model != nil && strings.TrimSpace(*promptTemplate.Model) == "" {
		return nil, fmt.Errorf("invalid model in prompt template %s: model must not be empty", promptName)
	}

	return &Resolved{
		Name:        promptName,
		Path:        promptPath,
		System:      systemPrompt,
		Model:       promptTemplate.Model,
		Temperature: promptTemplate.Temperature,
	}, nil
}

// Find returns the path of the named template. When several directories
// contain it, the last one wins.
func Find(promptName string, promptDirs []string) (string, error) {
	promptFile := promptName
	if !strings.HasSuffix(promptFile, ".toml") {
		promptFile = promptFile + ".toml"
	}

	var promptPath string
	for _, promptDir := range promptDirs {
		candidatePath := filepath.Join(promptDir, promptFile)
		if _, err := os.Stat(candidatePath); err == nil {
			promptPath = candidatePath
		}
	}

	if promptPath == "" {
		return "", fmt.Errorf("prompt file '%s' not found in any of the prompt directories: %v", promptFile, promptDirs)
	}
	return promptPath, nil
}

// processArgs processes the command line arguments and returns a map of key-value pairs
func processArgs(args []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, arg := range args {
		// Handle quoted values
		arg = strings.TrimSpace(arg)
		if strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) {
			arg = strings.Trim(arg, `"`)
		}

		parts := strings.SplitN(arg, ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid argument format: %s. Expected format: key:value", arg)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if key == "" {
			return nil, fmt.Errorf("invalid argument format: %s. Key must not be empty", arg)
		}

		// Remove escape characters from value
		value = strings.ReplaceAll(value, `\:`, ":")
		value = strings.ReplaceAll(value, `\"`, `"`)

		result[key] = value
	}
	return result, nil
}
