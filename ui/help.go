package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)
	blue := lipgloss.NewStyle().Foreground(accentColor)

	title := green.Render("cotchat - Keys and Commands")

	keys := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Keys"),
		"• Enter         Send message",
		"• Alt+Enter     New line",
		"• Esc           Cancel the current turn",
		"• Alt+Y         Copy last answer",
		"• Alt+C         Copy conversation",
		"• Alt+J/Alt+K   Half page down/up",
		"• Alt+g/Alt+G   Jump to top/bottom",
		"• Alt+H         Toggle this help",
		"• Ctrl+C        Quit",
	)

	rows := []string{blue.Render("## Commands")}
	for _, c := range commands {
		rows = append(rows, fmt.Sprintf("• /%-12s %s", c.name, c.desc))
	}
	rows = append(rows, "• exit          Quit")
	cmds := lipgloss.JoinVertical(lipgloss.Left, rows...)

	columnStyle := lipgloss.NewStyle().Width(48).PaddingLeft(4)
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		columnStyle.Render(keys),
		columnStyle.Render(cmds),
	)

	footer := DimStyle.Render("Esc to close")

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", body, "", footer)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
