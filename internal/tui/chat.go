package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"naomi/internal/domain"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Chat message types.
type assistantReplyMsg struct{ reply *domain.Reply }
type assistantErrMsg struct{ err error }
type sessionResetMsg struct{}

type chatMessage struct {
	Role    string
	Content string
	Warning string
	Time    time.Time
}

// ChatModel is the Bubble Tea model for the assistant chat screen.
type ChatModel struct {
	services Services
	messages []chatMessage
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	waiting  bool
	err      error
	width    int
	height   int
	ready    bool
}

// NewChatModel creates a new chat model.
func NewChatModel(svc Services) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Ask about crypto markets..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(SpinnerColor)

	return ChatModel{
		services: svc,
		input:    ti,
		spinner:  sp,
	}
}

// Init initializes the chat model.
func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case assistantReplyMsg:
		m.messages = append(m.messages, replyToMessage(msg.reply))
		m.waiting = false
		m.err = nil
		m.viewport.SetContent(m.renderMessages())
		m.viewport.GotoBottom()
		return m, nil

	case assistantErrMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil

	case sessionResetMsg:
		m.messages = nil
		m.waiting = false
		m.err = nil
		m.viewport.SetContent(m.renderMessages())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter && !m.waiting {
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				m.messages = append(m.messages, chatMessage{
					Role:    "user",
					Content: text,
					Time:    time.Now(),
				})
				m.input.SetValue("")
				m.waiting = true
				m.viewport.SetContent(m.renderMessages())
				m.viewport.GotoBottom()
				return m, tea.Batch(
					m.askCmd(text),
					m.spinner.Tick,
				)
			}
		}

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the chat screen.
func (m ChatModel) View() string {
	var sections []string

	sections = append(sections, SubtextStyle.Render(strings.Repeat("─", max(m.width-2, 10))))

	if !m.ready {
		m.initViewport()
	}
	sections = append(sections, m.viewport.View())

	sections = append(sections, SubtextStyle.Render(strings.Repeat("─", max(m.width-2, 10))))

	if m.waiting {
		sections = append(sections, fmt.Sprintf("  %s Naomi is thinking...", m.spinner.View()))
	} else {
		if m.err != nil {
			sections = append(sections, ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
		}
		sections = append(sections, "  "+m.input.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the model dimensions.
func (m *ChatModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 6
	m.ready = false // re-initialize viewport on next View
}

// IsWaiting returns whether the model is waiting for a response (for testing).
func (m ChatModel) IsWaiting() bool { return m.waiting }

// MessageCount returns the number of messages (for testing).
func (m ChatModel) MessageCount() int { return len(m.messages) }

func (m *ChatModel) initViewport() {
	vpHeight := m.height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	vpWidth := m.width - 2
	if vpWidth < 10 {
		vpWidth = 10
	}
	m.viewport = viewport.New(vpWidth, vpHeight)
	m.viewport.SetContent(m.renderMessages())
	m.ready = true
}

func (m ChatModel) renderMessages() string {
	if len(m.messages) == 0 {
		return SubtextStyle.Render("  Start a conversation by typing a question below.")
	}

	var lines []string
	for _, msg := range m.messages {
		timestamp := SubtextStyle.Render(msg.Time.Format("15:04"))
		switch msg.Role {
		case "user":
			lines = append(lines, fmt.Sprintf("  %s  %s %s",
				timestamp,
				UserMsgStyle.Render("You:"),
				msg.Content,
			))
		case "assistant":
			lines = append(lines, fmt.Sprintf("  %s  %s",
				timestamp,
				AssistantMsgStyle.Render("Naomi:"),
			))
			for _, line := range strings.Split(msg.Content, "\n") {
				lines = append(lines, "         "+line)
			}
			if msg.Warning != "" {
				lines = append(lines, "         "+WarningStyle.Render(msg.Warning))
			}
		}
		lines = append(lines, "")
	}

	if m.waiting {
		lines = append(lines, fmt.Sprintf("  %s  %s",
			SubtextStyle.Render(time.Now().Format("15:04")),
			SubtextStyle.Render("Naomi is thinking..."),
		))
	}

	return strings.Join(lines, "\n")
}

func replyToMessage(reply *domain.Reply) chatMessage {
	content := reply.Text
	if reply.Charts != "" {
		content += "\n\n" + reply.Charts
	}
	warning := ""
	switch reply.Verdict.Status {
	case domain.SafetyRejected:
		warning = "This request was blocked by the content filter."
	case domain.SafetyAmbiguous:
		warning = "The content filter needs more context before answering."
	}
	return chatMessage{
		Role:    "assistant",
		Content: content,
		Warning: warning,
		Time:    time.Now(),
	}
}

func (m ChatModel) askCmd(question string) tea.Cmd {
	sessionID := m.services.SessionID
	return func() tea.Msg {
		if m.services.Assistant == nil {
			return assistantErrMsg{err: fmt.Errorf("assistant not available")}
		}
		reply, err := m.services.Assistant.Ask(context.Background(), sessionID, question)
		if err != nil {
			return assistantErrMsg{err: err}
		}
		return assistantReplyMsg{reply: reply}
	}
}
