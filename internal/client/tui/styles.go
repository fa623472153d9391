package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary  = lipgloss.Color("#7D56F4")
	accent   = lipgloss.Color("#00BFFF")
	success  = lipgloss.Color("#39D353")
	errorCol = lipgloss.Color("#FF5555")
	text     = lipgloss.Color("#FFFFFF")
	muted    = lipgloss.Color("#888888")

	headerStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(1, 1).
			MarginLeft(1)

	subHeaderStyle = lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(2).
			MarginBottom(1)

	cardStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(muted).
			MarginLeft(2).
			Width(64)

	labelStyle = lipgloss.NewStyle().
			Foreground(muted).
			Width(12)

	valueStyle = lipgloss.NewStyle().
			Foreground(text)

	focusedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(success).
			PaddingLeft(2)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(errorCol).
			PaddingLeft(2)

	footerStyle = lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1).
			PaddingLeft(4).
			Faint(true)
)
