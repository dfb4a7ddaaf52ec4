package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
)

type generateRequest struct {
	Contents []struct {
		Role  string `json:"role"`
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
}

type scripted struct {
	status int
	body   string
}

// fakeGemini serves generateContent and models endpoints from a script.
type fakeGemini struct {
	t        *testing.T
	mu       sync.Mutex
	replies  []scripted
	requests []generateRequest
	paths    []string
	apiKeys  []string
}

func (f *fakeGemini) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, r.URL.Path)
	f.apiKeys = append(f.apiKeys, r.Header.Get("x-goog-api-key"))
	w.Header().Set("Content-Type", "application/json")

	if strings.HasSuffix(r.URL.Path, "/models") {
		_, _ = w.Write([]byte(`{"models":[
			{"name":"models/gemini-1.5-pro","displayName":"Gemini 1.5 Pro","description":"Mid-size model","supportedGenerationMethods":["generateContent","countTokens"]},
			{"name":"models/gemini-2.0-flash","displayName":"Gemini 2.0 Flash","supportedGenerationMethods":["generateContent"]},
			{"name":"models/text-embedding-004","displayName":"Embedding","supportedGenerationMethods":["embedContent"]}
		]}`))
		return
	}

	var req generateRequest
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
	f.requests = append(f.requests, req)

	if len(f.replies) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"unscripted","status":"INTERNAL"}}`))
		return
	}
	next := f.replies[0]
	f.replies = f.replies[1:]
	if next.status != 0 {
		w.WriteHeader(next.status)
	}
	_, _ = w.Write([]byte(next.body))
}

func textReply(text string) scripted {
	body, _ := json.Marshal(map[string]any{
		"candidates": []any{map[string]any{
			"content":      map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}},
			"finishReason": "STOP",
		}},
	})
	return scripted{body: string(body)}
}

func newTestProvider(t *testing.T, cfg Config, replies ...scripted) (*Provider, *fakeGemini) {
	t.Helper()
	fake := &fakeGemini{t: t, replies: replies}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	cfg.BaseURL = server.URL + "/"
	return NewProvider(cfg), fake
}

func TestNewProvider_DefaultModel(t *testing.T) {
	p := NewProvider(Config{})
	assert.Equal(t, DefaultModel, p.Model())
}

func TestStartChat_MissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	p := NewProvider(Config{Model: "gemini-1.5-pro"})

	_, err := p.StartChat(context.Background())

	var pe *chat.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "start chat", pe.Op)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestConversation_SendCarriesHistory(t *testing.T) {
	p, fake := newTestProvider(t, Config{Model: "gemini-1.5-pro"},
		textReply("Hi there!"),
		textReply("I am fine."),
	)
	ctx := context.Background()

	conv, err := p.StartChat(ctx)
	require.NoError(t, err)

	got, err := conv.Send(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", got)

	got, err = conv.Send(ctx, "How are you?")
	require.NoError(t, err)
	assert.Equal(t, "I am fine.", got)

	require.Len(t, fake.requests, 2)
	assert.Len(t, fake.requests[0].Contents, 1)
	second := fake.requests[1].Contents
	require.Len(t, second, 3)
	assert.Equal(t, "user", second[0].Role)
	assert.Equal(t, "Hello", second[0].Parts[0].Text)
	assert.Equal(t, "model", second[1].Role)
	assert.Equal(t, "How are you?", second[2].Parts[0].Text)
	assert.Contains(t, fake.paths[0], "gemini-1.5-pro:generateContent")
	assert.Equal(t, "test-key", fake.apiKeys[0])

	assert.Equal(t, []chat.Message{
		chat.UserMessage("Hello"),
		chat.AssistantMessage("Hi there!"),
		chat.UserMessage("How are you?"),
		chat.AssistantMessage("I am fine."),
	}, conv.(*Conversation).History())
}

func TestConversation_FailedTurnLeavesContextUntouched(t *testing.T) {
	p, fake := newTestProvider(t, Config{Model: "gemini-1.5-pro"},
		scripted{status: http.StatusBadRequest, body: `{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`},
		textReply("ok"),
	)
	ctx := context.Background()
	conv, err := p.StartChat(ctx)
	require.NoError(t, err)

	_, err = conv.Send(ctx, "test")
	var pe *chat.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "send message", pe.Op)

	_, err = conv.Send(ctx, "retry by hand")
	require.NoError(t, err)
	require.Len(t, fake.requests, 2)
	assert.Len(t, fake.requests[1].Contents, 1, "failed exchange must not be replayed")
}

func TestConversation_EmptyCandidates(t *testing.T) {
	p, _ := newTestProvider(t, Config{Model: "gemini-1.5-pro"},
		scripted{body: `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`},
	)
	ctx := context.Background()
	conv, err := p.StartChat(ctx)
	require.NoError(t, err)

	_, err = conv.Send(ctx, "something unsafe")

	var pe *chat.ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "SAFETY")
}

func TestStartChat_SystemPromptAndTemperature(t *testing.T) {
	temp := float32(0.3)
	p, fake := newTestProvider(t, Config{
		Model:        "gemini-1.5-pro",
		SystemPrompt: "Answer in French.",
		Temperature:  &temp,
	}, textReply("Bonjour"))
	ctx := context.Background()

	conv, err := p.StartChat(ctx)
	require.NoError(t, err)
	_, err = conv.Send(ctx, "Hello")
	require.NoError(t, err)

	require.Len(t, fake.requests, 1)
	require.NotNil(t, fake.requests[0].SystemInstruction)
	assert.Equal(t, "Answer in French.", fake.requests[0].SystemInstruction.Parts[0].Text)
}

func TestReplyText(t *testing.T) {
	_, err := replyText(nil)
	assert.Error(t, err)

	_, err = replyText(&genai.GenerateContentResponse{})
	assert.ErrorContains(t, err, "empty candidates")

	_, err = replyText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonMaxTokens, Content: &genai.Content{}}},
	})
	assert.ErrorContains(t, err, "finish reason")

	got, err := replyText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("Hi there!", genai.RoleModel)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hi there!", got)
}

func TestListModels(t *testing.T) {
	p, _ := newTestProvider(t, Config{Model: "gemini-1.5-pro"})

	models, err := p.ListModels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []ModelInfo{
		{ID: "gemini-2.0-flash", Description: "Gemini 2.0 Flash"},
		{ID: "gemini-1.5-pro", Description: "Mid-size model", IsDefault: true},
	}, models)
}

func TestListModels_MissingAPIKey(t *testing.T) {
	p := NewProvider(Config{})

	_, err := p.ListModels(context.Background())

	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
