package tui

import "github.com/charmbracelet/lipgloss"

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 2)
	SubtextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	SpinnerColor = lipgloss.Color("#7D56F4")

	// Chat styles
	UserMsgStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	AssistantMsgStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	WarningStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00"))
)
