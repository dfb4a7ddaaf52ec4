// Package gemini implements chat.Provider on top of the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
)

const (
	ProviderName = "gemini"
	DefaultModel = "gemini-1.5-pro"
)

// ErrMissingAPIKey is reported when no credential was configured.
var ErrMissingAPIKey = errors.New("gemini API key is not configured (set GEMINI_API_KEY or gemini_token in the config file)")

// ModelInfo represents information about an available model.
type ModelInfo struct {
	ID          string // Model identifier (e.g., "gemini-2.0-flash")
	Description string
	IsDefault   bool // Whether this is the configured model
}

// Config holds what the provider binds to.
type Config struct {
	APIKey       string
	Model        string
	BaseURL      string   // empty = SDK default endpoint
	SystemPrompt string   // optional system instruction
	Temperature  *float32 // nil = model default
}

// Provider implements chat.Provider for Gemini. The SDK client is created on
// first use, so a missing key surfaces on the first request.
type Provider struct {
	config Config

	mu     sync.Mutex
	client *genai.Client
}

// NewProvider creates a new Gemini provider instance
func NewProvider(config Config) *Provider {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &Provider{config: config}
}

// Model returns the model identifier requests are sent to.
func (p *Provider) Model() string {
	return p.config.Model
}

func (p *Provider) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}
	if p.config.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cc := &genai.ClientConfig{
		APIKey:  p.config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	p.client = client
	return client, nil
}

func (p *Provider) generateConfig() *genai.GenerateContentConfig {
	if p.config.SystemPrompt == "" && p.config.Temperature == nil {
		return nil
	}
	cfg := &genai.GenerateContentConfig{
		Temperature: p.config.Temperature,
	}
	if p.config.SystemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.config.SystemPrompt, genai.RoleUser)
	}
	return cfg
}

// StartChat opens a conversation with an empty history.
func (p *Provider) StartChat(ctx context.Context) (chat.Conversation, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, &chat.ProviderError{Op: "start chat", Err: err}
	}

	session, err := client.Chats.Create(ctx, p.config.Model, p.generateConfig(), nil)
	if err != nil {
		return nil, &chat.ProviderError{Op: "start chat", Err: fmt.Errorf("gemini %s: %w", p.config.Model, err)}
	}
	return &Conversation{chat: session, model: p.config.Model}, nil
}

// Conversation wraps a genai chat. The SDK only records exchanges that
// returned a usable candidate, so failed turns never enter the context.
type Conversation struct {
	chat  *genai.Chat
	model string
}

// Send sends text and returns the reply text.
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	resp, err := c.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", &chat.ProviderError{Op: "send message", Err: fmt.Errorf("gemini %s: %w", c.model, err)}
	}

	reply, err := replyText(resp)
	if err != nil {
		return "", &chat.ProviderError{Op: "send message", Err: fmt.Errorf("gemini %s: %w", c.model, err)}
	}
	return reply, nil
}

// History returns the provider-side context as chat messages.
func (c *Conversation) History() []chat.Message {
	contents := c.chat.History(true)
	messages := make([]chat.Message, 0, len(contents))
	for _, content := range contents {
		role := chat.RoleUser
		if content.Role == string(genai.RoleModel) {
			role = chat.RoleAssistant
		}
		var sb strings.Builder
		for _, part := range content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		messages = append(messages, chat.Message{Role: role, Content: sb.String()})
	}
	return messages
}

// replyText extracts the text of the first candidate.
func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("no response from API")
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("no response from API (empty candidates)")
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		if reason := resp.Candidates[0].FinishReason; reason != "" && reason != genai.FinishReasonStop {
			return "", fmt.Errorf("no text in response (finish reason %s)", reason)
		}
		return "", errors.New("no response from API (empty parts)")
	}
	return text, nil
}

// ListModels returns the models that support generateContent, sorted by ID
// (descending). The configured model is flagged as default.
func (p *Provider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	var models []ModelInfo
	page, err := client.Models.List(ctx, &genai.ListModelsConfig{PageSize: 100})
	for {
		if errors.Is(err, genai.ErrPageDone) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list models: %w", err)
		}

		for _, model := range page.Items {
			if !contains(model.SupportedActions, "generateContent") {
				continue
			}
			id := strings.TrimPrefix(model.Name, "models/")
			description := model.Description
			if description == "" {
				description = model.DisplayName
			}
			models = append(models, ModelInfo{
				ID:          id,
				Description: description,
				IsDefault:   id == p.config.Model,
			})
		}

		if page.NextPageToken == "" {
			break
		}
		page, err = page.Next(ctx)
	}

	sort.Slice(models, func(i, j int) bool {
		return models[i].ID > models[j].ID
	})
	return models, nil
}

// contains checks if a string slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
