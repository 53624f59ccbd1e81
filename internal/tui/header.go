package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gha-palette/internal/ui"
)

func RenderHeader(repo string, actions int, ready bool, width int) string {
	title := " gha-palette"
	if repo != "" {
		title += " | " + repo
	}
	left := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("#F9FAFB")).
		Render(title)

	count := lipgloss.NewStyle().Foreground(ui.ColorWarning).Render("loading ")
	if ready {
		color := ui.ColorSuccess
		if actions == 0 {
			color = ui.ColorFailure
		}
		count = lipgloss.NewStyle().Foreground(color).
			Render(fmt.Sprintf("%d actions ", actions))
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(count)
	if gap < 0 {
		gap = 0
	}
	padding := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.NewStyle().
		Background(lipgloss.Color("#1F2937")).
		Width(width).
		Render(left + padding + count)
}
