// Package session owns a single conversation with the model provider: its
// message history and the one operation that extends it.
package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
)

// Session represents a conversation bound to a provider
type Session struct {
	id        string
	createdAt time.Time
	provider  chat.Provider
	logger    *zap.Logger

	// sendMu serializes exchanges so callers sharing a session cannot
	// interleave their turns.
	sendMu sync.Mutex
	conv   chat.Conversation

	mu      sync.RWMutex
	history []chat.Message
}

// newSession creates a session with an empty history. The provider
// conversation is not opened until the first message is sent.
func newSession(provider chat.Provider, logger *zap.Logger) *Session {
	return &Session{
		id:        uuid.New().String(),
		createdAt: time.Now(),
		provider:  provider,
		logger:    logger,
	}
}

// ID returns the session UUID.
func (s *Session) ID() string {
	return s.id
}

// ShortID returns the shortened session ID (first 8 characters)
func (s *Session) ShortID() string {
	if len(s.id) >= 8 {
		return s.id[:8]
	}
	return s.id
}

// CreatedAt returns the session construction time.
func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// SendMessage appends text as a user turn, sends it to the provider together
// with the running conversation, appends the reply and returns it.
//
// On failure the user turn stays in history, marked Failed, and the error is
// returned as a *chat.ProviderError. Nothing is retried.
func (s *Session) SendMessage(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", chat.ErrEmptyMessage
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	turn := s.addMessage(chat.UserMessage(text))
	start := time.Now()

	reply, err := s.exchange(ctx, text)
	if err != nil {
		s.markFailed(turn)
		s.logger.Warn("message exchange failed",
			zap.String("session", s.ShortID()),
			zap.Int("turn", turn),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", err
	}

	s.addMessage(chat.AssistantMessage(reply))
	s.logger.Debug("message exchanged",
		zap.String("session", s.ShortID()),
		zap.Int("turn", turn),
		zap.Int("reply_bytes", len(reply)),
		zap.Duration("elapsed", time.Since(start)))
	return reply, nil
}

// exchange must be called with sendMu held.
func (s *Session) exchange(ctx context.Context, text string) (string, error) {
	if s.conv == nil {
		conv, err := s.provider.StartChat(ctx)
		if err != nil {
			return "", chat.AsProviderError("start chat", err)
		}
		s.conv = conv
	}

	reply, err := s.conv.Send(ctx, text)
	if err != nil {
		return "", chat.AsProviderError("send message", err)
	}
	return reply, nil
}

// History returns a copy of the conversation so far, oldest first.
func (s *Session) History() []chat.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]chat.Message, len(s.history))
	copy(copied, s.history)
	return copied
}

// Len returns the number of messages in the history
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.history)
}

// addMessage appends msg and returns its index.
func (s *Session) addMessage(msg chat.Message) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
	return len(s.history) - 1
}

func (s *Session) markFailed(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[i].Failed = true
}
