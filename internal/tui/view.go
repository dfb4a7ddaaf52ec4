package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SAIRAKSHAAN1/gemini-chatbot/internal/chat"
)

const sendButtonLabel = "Send"

// sendButtonWidth is the rendered width of the send control (label + padding).
const sendButtonWidth = len(sendButtonLabel) + 4

// bubbleWidth is the widest a single message may be (80% of the screen).
func (m Model) bubbleWidth() int {
	w := m.viewport.Width * 8 / 10
	if w < 20 {
		w = m.viewport.Width
	}
	return w
}

func (m Model) renderTranscript() string {
	width := m.viewport.Width
	if len(m.messages) == 0 {
		return m.styles.Welcome.Width(width).Render(WelcomeText)
	}

	blocks := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		blocks = append(blocks, m.renderMessage(msg, width))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderMessage(msg chat.Message, width int) string {
	maxWidth := m.bubbleWidth()

	if msg.Role == chat.RoleUser {
		label := m.styles.UserLabel.Render(UserLabel)
		body := m.styles.UserBubble.
			MaxWidth(maxWidth).
			Render(wrap(msg.Content, maxWidth-2))
		block := lipgloss.JoinVertical(lipgloss.Right, label, body)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	label := m.styles.AssistantLabel.Render(AssistantLabel)
	body := m.styles.AssistantCard.
		MaxWidth(maxWidth).
		Render(m.safeRenderMarkdown(msg.Content, maxWidth-4))
	return lipgloss.JoinVertical(lipgloss.Left, label, body)
}

// safeRenderMarkdown renders markdown with panic recovery, falling back to
// wrapped plain text.
func (m Model) safeRenderMarkdown(content string, width int) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = wrap(content, width)
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.Trim(rendered, "\n")
		}
	}
	return wrap(content, width)
}

// wrap word-wraps s to width cells, keeping existing line breaks.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	return lipgloss.NewStyle().Width(width).Render(s)
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderTyping(),
		m.renderInput(),
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render(Title)
	if m.subtitle != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, m.styles.HeaderSubtitle.Render(m.subtitle))
	}
	fill := m.width - lipgloss.Width(title)
	if fill > 0 {
		title += m.styles.HeaderSubtitle.UnsetPadding().Render(strings.Repeat(" ", fill))
	}
	return title
}

// renderTyping shows the typing indicator while a reply is pending. The row
// is kept empty otherwise so the layout does not jump.
func (m Model) renderTyping() string {
	if !m.busy {
		return ""
	}
	return m.spinner.View() + m.styles.Typing.Render(" "+AssistantLabel+" is typing...")
}

func (m Model) renderInput() string {
	fieldStyle := m.styles.Input
	if m.busy {
		fieldStyle = m.styles.InputDisabled
	}
	field := fieldStyle.Width(max(m.width-sendButtonWidth-3, 10)).Render(m.input.View())

	buttonStyle := m.styles.Button
	if !m.CanSubmit() {
		buttonStyle = m.styles.ButtonDisable
	}
	button := buttonStyle.Render(sendButtonLabel)

	return lipgloss.JoinHorizontal(lipgloss.Top, field, " ", button)
}

func (m Model) renderFooter() string {
	return m.styles.Help.Render(m.help.View(m.keys))
}
