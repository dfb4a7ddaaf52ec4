// Package prompt loads TOML prompt templates that supply the system
// instruction for a chat session.
package prompt

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Prompt represents the structure of a TOML prompt file
type Prompt struct {
	System      string   `toml:"system"`
	Model       *string  `toml:"model,omitempty"`
	Temperature *float32 `toml:"temperature,omitempty"`
}

// LoadPrompt loads a prompt file and returns its contents
func LoadPrompt(filePath string) (*Prompt, error) {
	var prompt Prompt
	if _, err := toml.DecodeFile(filePath, &prompt); err != nil {
		return nil, fmt.Errorf("error decoding prompt file: %w", err)
	}
	return &prompt, nil
}

// Sample is written by the init command as an example template.
var Sample = Prompt{
	System: "You are a helpful assistant. Answer concisely in {{language}}.",
}
