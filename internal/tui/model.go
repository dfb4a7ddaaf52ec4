// Package tui provides the terminal chat screen: a scrollable transcript, a
// one-line input and a send control, driven by the bubbletea event loop.
package tui

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
)

const (
	// FallbackReply replaces the assistant reply when the provider fails.
	FallbackReply = "Sorry, I couldn't process your request. Please try again."
	// WelcomeText is shown while the transcript is empty.
	WelcomeText = "👋 Welcome! How can I help you today?"

	Title          = "Gemini Chatbot"
	UserLabel      = "You"
	AssistantLabel = "Gemini"
	Placeholder    = "Type your message..."
)

// Layout heights of the fixed rows around the transcript.
const (
	headerHeight = 1
	typingHeight = 1
	inputHeight  = 3 // bordered single line
	footerHeight = 1
)

// Sender performs one exchange with the model. *session.Session satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// replyMsg carries a successful reply back into the event loop.
type replyMsg struct {
	text string
}

// replyFailedMsg carries a failed exchange back into the event loop.
type replyFailedMsg struct {
	err error
}

// submitTextMsg submits text as if it had been typed and sent.
type submitTextMsg struct {
	text string
}

// Model is the chat screen. It owns the displayed messages, the draft input
// and the busy flag; at most one send is outstanding at a time.
type Model struct {
	sender  Sender
	logger  *zap.Logger
	timeout time.Duration

	// ctx bounds in-flight sends; cancelled when the program quits.
	ctx    context.Context
	cancel context.CancelFunc

	// UI Components
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
	styles   Styles
	renderer *glamour.TermRenderer
	markdown bool

	subtitle string
	initial  string

	// State
	messages []chat.Message
	busy     bool
	width    int
	height   int
	ready    bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for rejected submissions and failures.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithRequestTimeout bounds each send. Zero means no timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Model) {
		m.timeout = d
	}
}

// WithSubtitle shows extra text (usually the model name) in the header.
func WithSubtitle(s string) Option {
	return func(m *Model) {
		m.subtitle = s
	}
}

// WithMarkdown toggles glamour rendering of assistant replies.
func WithMarkdown(enabled bool) Option {
	return func(m *Model) {
		m.markdown = enabled
	}
}

// WithInitialMessage submits text as soon as the program starts.
func WithInitialMessage(text string) Option {
	return func(m *Model) {
		m.initial = text
	}
}

// WithContext sets the parent context of every send.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New returns an idle chat screen that sends through sender.
func New(sender Sender, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		sender:   sender,
		logger:   zap.NewNop(),
		ctx:      context.Background(),
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
		help:     help.New(),
		keys:     defaultKeyMap(),
		styles:   DefaultStyles(),
		markdown: true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.ctx, m.cancel = context.WithCancel(m.ctx)
	m.spinner.Style = m.styles.Typing
	m.refreshTranscript()
	return m
}

// Messages returns a copy of the displayed messages.
func (m Model) Messages() []chat.Message {
	return slices.Clone(m.messages)
}

// Draft returns the pending input text.
func (m Model) Draft() string {
	return m.input.Value()
}

// SetDraft replaces the pending input text.
func (m *Model) SetDraft(s string) {
	m.input.SetValue(s)
}

// Busy reports whether a reply is pending.
func (m Model) Busy() bool {
	return m.busy
}

// CanSubmit reports whether the send control is enabled.
func (m Model) CanSubmit() bool {
	return !m.busy && strings.TrimSpace(m.input.Value()) != ""
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initial != "" {
		text := m.initial
		cmds = append(cmds, func() tea.Msg { return submitTextMsg{text: text} })
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case submitTextMsg:
		if m.busy {
			return m, nil
		}
		m.input.SetValue(msg.text)
		return m.handleSubmit()

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case replyMsg:
		m.resolve(chat.AssistantMessage(msg.text))
		return m, textinput.Blink

	case replyFailedMsg:
		m.logger.Error("failed to get response", zap.Error(msg.err))
		m.resolve(chat.AssistantMessage(FallbackReply))
		return m, textinput.Blink
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Send):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// The input is disabled while a reply is pending.
	if m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	next, send, err := m.submit()
	if err != nil {
		m.logger.Debug("submission rejected", zap.Error(err))
		return m, nil
	}
	return next, tea.Batch(send, next.spinner.Tick)
}

// submit moves the draft into the transcript and returns the command that
// performs the send. It rejects blank drafts and submissions while busy
// without changing any state.
func (m Model) submit() (Model, tea.Cmd, error) {
	if m.busy {
		return m, nil, chat.ErrBusy
	}
	text := m.input.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil, chat.ErrEmptyInput
	}

	m.input.Reset()
	m.input.Blur()
	m.busy = true
	m.appendMessage(chat.UserMessage(text))
	return m, m.sendCmd(text), nil
}

func (m Model) sendCmd(text string) tea.Cmd {
	sender, parent, timeout := m.sender, m.ctx, m.timeout
	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}

		reply, err := sender.SendMessage(ctx, text)
		if err != nil {
			return replyFailedMsg{err: err}
		}
		return replyMsg{text: reply}
	}
}

// resolve ends the pending exchange with msg and re-enables input.
func (m *Model) resolve(msg chat.Message) {
	m.appendMessage(msg)
	m.busy = false
	m.input.Focus()
}

// appendMessage never writes into a backing array shared with an earlier
// copy of the model.
func (m *Model) appendMessage(msg chat.Message) {
	m.messages = append(slices.Clip(m.messages), msg)
	m.refreshTranscript()
}

// refreshTranscript re-renders the transcript and scrolls to the newest
// message.
func (m *Model) refreshTranscript() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *Model) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.ready = true

	m.viewport.Width = width
	m.viewport.Height = max(height-headerHeight-typingHeight-inputHeight-footerHeight, 1)
	m.input.Width = max(width-sendButtonWidth-6, 10)
	m.help.Width = width

	if m.markdown {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(max(m.bubbleWidth()-4, 10)),
		)
		if err != nil {
			m.logger.Warn("markdown renderer unavailable", zap.Error(err))
			renderer = nil
		}
		m.renderer = renderer
	}
	m.refreshTranscript()
}

// Close cancels any in-flight send.
func (m Model) Close() {
	m.cancel()
}
