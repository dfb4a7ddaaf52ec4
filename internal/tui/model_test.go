package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/session"
)

// fakeSender answers every send with reply/err and records what it saw.
type fakeSender struct {
	mu    sync.Mutex
	reply string
	err   error
	calls []string
	ctxs  []context.Context
}

func (f *fakeSender) SendMessage(ctx context.Context, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, text)
	f.ctxs = append(f.ctxs, ctx)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeSender) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// scriptedProvider is a chat.Provider replying from a fixed list.
type scriptedProvider struct {
	replies []string
	errs    []error
	n       int
}

func (p *scriptedProvider) StartChat(ctx context.Context) (chat.Conversation, error) {
	return p, nil
}

func (p *scriptedProvider) Send(ctx context.Context, text string) (string, error) {
	i := p.n
	p.n++
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	return p.replies[i], nil
}

func newTestModel(sender Sender, opts ...Option) Model {
	opts = append([]Option{WithMarkdown(false)}, opts...)
	m := New(sender, opts...)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func pressEnter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

// runReply executes a command returned by a submit and feeds the exchange
// result back into the model.
func runReply(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case replyMsg, replyFailedMsg:
			next, _ := m.Update(msg)
			return next.(Model)
		}
	}
	t.Fatal("command produced no reply message")
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestNew_Idle(t *testing.T) {
	m := New(&fakeSender{})

	assert.Empty(t, m.Messages())
	assert.Empty(t, m.Draft())
	assert.False(t, m.Busy())
	assert.False(t, m.CanSubmit())
}

func TestSubmit_AppendsUserMessageSynchronously(t *testing.T) {
	sender := &fakeSender{reply: "Hi there!"}
	m := typeText(t, newTestModel(sender), "Hello")
	require.Equal(t, "Hello", m.Draft())
	require.True(t, m.CanSubmit())

	m, cmd := pressEnter(m)

	assert.Equal(t, []chat.Message{chat.UserMessage("Hello")}, m.Messages())
	assert.Empty(t, m.Draft())
	assert.True(t, m.Busy())
	assert.False(t, m.CanSubmit())
	assert.NotNil(t, cmd)
	assert.Empty(t, sender.Calls(), "network call runs in the command, not in Update")
}

func TestSubmit_KeepsDraftVerbatim(t *testing.T) {
	m := newTestModel(&fakeSender{})
	m.SetDraft("  spaced out  ")

	m, _, err := m.submit()

	require.NoError(t, err)
	assert.Equal(t, "  spaced out  ", m.Messages()[0].Content)
}

func TestSubmit_BlankDraftIsNoop(t *testing.T) {
	for _, draft := range []string{"", " ", "   "} {
		sender := &fakeSender{}
		m := newTestModel(sender)
		m.SetDraft(draft)

		next, cmd, err := m.submit()

		assert.ErrorIs(t, err, chat.ErrEmptyInput)
		assert.Nil(t, cmd)
		assert.Empty(t, next.Messages())
		assert.Equal(t, draft, next.Draft())
		assert.False(t, next.Busy())
		assert.Empty(t, sender.Calls())
	}
}

func TestSubmit_WhileBusyIsNoop(t *testing.T) {
	sender := &fakeSender{reply: "first"}
	m := newTestModel(sender)
	m.SetDraft("first")
	m, _, err := m.submit()
	require.NoError(t, err)
	require.True(t, m.Busy())

	m.SetDraft("second")
	next, cmd, err := m.submit()

	assert.ErrorIs(t, err, chat.ErrBusy)
	assert.Nil(t, cmd)
	assert.Equal(t, []chat.Message{chat.UserMessage("first")}, next.Messages())
	assert.Equal(t, "second", next.Draft())
	assert.True(t, next.Busy())
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	m := typeText(t, newTestModel(&fakeSender{reply: "ok"}), "hi")
	m, _ = pressEnter(m)

	m = typeText(t, m, "more")
	m, cmd := pressEnter(m)

	assert.Empty(t, m.Draft(), "input is disabled while busy")
	assert.Nil(t, cmd)
	assert.Len(t, m.Messages(), 1)
}

func TestReply_Success(t *testing.T) {
	m := typeText(t, newTestModel(&fakeSender{reply: "Hi there!"}), "Hello")
	m, cmd := pressEnter(m)

	m = runReply(t, m, cmd)

	assert.Equal(t, []chat.Message{
		chat.UserMessage("Hello"),
		chat.AssistantMessage("Hi there!"),
	}, m.Messages())
	assert.False(t, m.Busy())
}

func TestReply_FailureShowsFallbackAndLogs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	cause := &chat.ProviderError{Op: "send message", Err: errors.New("500 internal")}
	m := typeText(t, newTestModel(&fakeSender{err: cause}, WithLogger(zap.New(core))), "test")
	m, cmd := pressEnter(m)

	m = runReply(t, m, cmd)

	assert.Equal(t, []chat.Message{
		chat.UserMessage("test"),
		chat.AssistantMessage(FallbackReply),
	}, m.Messages())
	assert.False(t, m.Busy())

	entries := logs.FilterMessage("failed to get response").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	assert.NotContains(t, m.View(), "500 internal", "error text is never shown to the user")
}

func TestReply_ReturnsToIdleAndAcceptsNextSubmit(t *testing.T) {
	sender := &fakeSender{reply: "pong"}
	m := typeText(t, newTestModel(sender), "ping")
	m, cmd := pressEnter(m)
	m = runReply(t, m, cmd)

	m = typeText(t, m, "again")
	m, cmd = pressEnter(m)
	m = runReply(t, m, cmd)

	assert.Equal(t, []string{"ping", "again"}, sender.Calls())
	assert.Len(t, m.Messages(), 4)
}

func TestRejectedSubmissionIsLoggedAtDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := newTestModel(&fakeSender{}, WithLogger(zap.New(core)))

	_, cmd := pressEnter(m)

	assert.Nil(t, cmd)
	assert.Equal(t, 1, logs.FilterMessage("submission rejected").Len())
}

func TestRequestTimeoutAppliedToSend(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := newTestModel(sender, WithRequestTimeout(time.Minute))
	m.SetDraft("hi")
	m, cmd, err := m.submit()
	require.NoError(t, err)

	runReply(t, m, cmd)

	require.Len(t, sender.ctxs, 1)
	_, ok := sender.ctxs[0].Deadline()
	assert.True(t, ok)
}

func TestQuitCancelsInFlightContext(t *testing.T) {
	sender := &fakeSender{reply: "ok"}
	m := newTestModel(sender)
	m.SetDraft("hi")
	m, cmd, err := m.submit()
	require.NoError(t, err)

	next, quit := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, quit)
	assert.Equal(t, tea.Quit(), quit())

	runReply(t, next.(Model), cmd)
	require.Len(t, sender.ctxs, 1)
	assert.ErrorIs(t, sender.ctxs[0].Err(), context.Canceled)
}

func TestInitialMessageIsSubmitted(t *testing.T) {
	sender := &fakeSender{reply: "Hi there!"}
	m := newTestModel(sender, WithInitialMessage("Hello"))

	var submit tea.Msg
	for _, msg := range collect(m.Init()) {
		if s, ok := msg.(submitTextMsg); ok {
			submit = s
		}
	}
	require.NotNil(t, submit)

	next, cmd := m.Update(submit)
	m = runReply(t, next.(Model), cmd)

	assert.Equal(t, []chat.Message{
		chat.UserMessage("Hello"),
		chat.AssistantMessage("Hi there!"),
	}, m.Messages())
}

func TestSpinnerTickIgnoredWhenIdle(t *testing.T) {
	m := newTestModel(&fakeSender{})

	_, cmd := m.Update(m.spinner.Tick())

	assert.Nil(t, cmd)
}

func TestWindowSize(t *testing.T) {
	m := New(&fakeSender{}, WithMarkdown(false))

	for _, size := range []tea.WindowSizeMsg{{Width: 120, Height: 40}, {Width: 0, Height: 0}, {Width: -1, Height: -1}} {
		next, _ := m.Update(size)
		result := next.(Model)
		assert.True(t, result.ready)
		assert.GreaterOrEqual(t, result.viewport.Height, 1)
	}
}

// End-to-end scenarios against a real session and a scripted provider.

func TestScenario_SuccessfulExchange(t *testing.T) {
	manager := session.NewManager(func() chat.Provider {
		return &scriptedProvider{replies: []string{"Hi there!"}}
	})
	m := typeText(t, newTestModel(manager.Session()), "Hello")
	m, cmd := pressEnter(m)
	m = runReply(t, m, cmd)

	want := []chat.Message{
		chat.UserMessage("Hello"),
		chat.AssistantMessage("Hi there!"),
	}
	assert.Equal(t, want, m.Messages())
	assert.False(t, m.Busy())
	assert.Equal(t, want, manager.Session().History())
}

func TestScenario_ProviderFailure(t *testing.T) {
	manager := session.NewManager(func() chat.Provider {
		return &scriptedProvider{errs: []error{errors.New("rejected")}}
	})
	m := typeText(t, newTestModel(manager.Session()), "test")
	m, cmd := pressEnter(m)
	m = runReply(t, m, cmd)

	assert.Equal(t, []chat.Message{
		chat.UserMessage("test"),
		chat.AssistantMessage("Sorry, I couldn't process your request. Please try again."),
	}, m.Messages())
	assert.False(t, m.Busy())
	assert.Equal(t, []chat.Message{{Role: chat.RoleUser, Content: "test", Failed: true}}, manager.Session().History())
}

func TestScenario_EmptySubmit(t *testing.T) {
	provider := &scriptedProvider{}
	manager := session.NewManager(func() chat.Provider { return provider })
	m := newTestModel(manager.Session())

	m, cmd := pressEnter(m)

	assert.Nil(t, cmd)
	assert.Empty(t, m.Messages())
	assert.False(t, m.Busy())
	assert.Equal(t, 0, provider.n)
}
