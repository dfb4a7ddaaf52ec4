package session

import (
	"sync"

	"go.uber.org/zap"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
)

// ProviderFactory binds a provider to the configured credential and model.
// It is called once, when the session is constructed.
type ProviderFactory func() chat.Provider

// Manager lazily constructs and then keeps exactly one Session. Its lifetime
// is that of whatever owns it, typically the chat UI program.
type Manager struct {
	factory ProviderFactory
	logger  *zap.Logger

	once    sync.Once
	session *Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger passed on to the session.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager returns a Manager that has not built its session yet.
func NewManager(factory ProviderFactory, opts ...Option) *Manager {
	m := &Manager{
		factory: factory,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the managed session, constructing it on first use.
// Construction never fails; credential problems surface on the first send.
func (m *Manager) Session() *Session {
	m.once.Do(func() {
		m.session = newSession(m.factory(), m.logger)
		m.logger.Debug("session created", zap.String("session", m.session.ShortID()))
	})
	return m.session
}

