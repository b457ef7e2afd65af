package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root Bubble Tea model: a header bar over the chat screen.
type AppModel struct {
	services Services
	chat     ChatModel
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the root application model.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services: svc,
		chat:     NewChatModel(svc),
	}
}

// Init initializes the child models.
func (m AppModel) Init() tea.Cmd {
	return m.chat.Init()
}

// Update handles incoming messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.chat.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, DefaultKeyMap.Reset):
			return m, m.resetCmd()
		}
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

// View renders the header bar and the chat screen.
func (m AppModel) View() string {
	if m.quitting {
		return "Later! Stay bullish.\n"
	}

	title := TitleStyle.Render("Naomi")
	who := SubtextStyle.Render(fmt.Sprintf("  %s | ctrl+r reset | esc quit", m.services.Username))
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, who)

	return lipgloss.JoinVertical(lipgloss.Left, header, m.chat.View())
}

// ActiveChat returns the chat model (for testing).
func (m AppModel) ActiveChat() ChatModel { return m.chat }

func (m AppModel) resetCmd() tea.Cmd {
	svc := m.services
	return func() tea.Msg {
		if svc.Assistant != nil {
			if err := svc.Assistant.ResetSession(context.Background(), svc.SessionID); err != nil {
				return assistantErrMsg{err: err}
			}
		}
		return sessionResetMsg{}
	}
}
