package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gha-palette/internal/model"
)

var (
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorFailure   = lipgloss.Color("#EF4444")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorInfo      = lipgloss.Color("#3B82F6")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorBorder    = lipgloss.Color("#374151")
	ColorHighlight = lipgloss.Color("#1F2937")

	StylePane = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StylePaneFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F9FAFB")).
			Background(ColorPrimary).
			Padding(0, 1)

	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleFailure = lipgloss.NewStyle().Foreground(ColorFailure)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)

	StyleLabel       = lipgloss.NewStyle().Bold(true)
	StyleUnavailable = lipgloss.NewStyle().Foreground(ColorMuted).Faint(true)
	StyleSelected    = lipgloss.NewStyle().Background(ColorHighlight)
)

// SectionTitle is the divider text shown above each block of results.
func SectionTitle(s model.Section) string {
	switch s {
	case model.SectionHistory:
		return "recently used"
	case model.SectionStart:
		return "best matches"
	case model.SectionOrdered:
		return "matches"
	case model.SectionUnordered:
		return "reordered matches"
	case model.SectionTooltip:
		return "by description"
	case model.SectionMixed:
		return "by name and description"
	default:
		return ""
	}
}

// ActionIcon mirrors the toggle state of toggle actions and hints at what
// kind of action a row runs.
func ActionIcon(a model.Action) string {
	if a.Toggle {
		if a.Active {
			return StyleSuccess.Render("[x]")
		}
		return StyleMuted.Render("[ ]")
	}
	switch a.Kind {
	case model.KindShell:
		return StyleInfo.Render(" $ ")
	case model.KindWorkflowDispatch, model.KindRunRerun, model.KindRunRerunFailed:
		return StyleSuccess.Render(" > ")
	case model.KindRunCancel, model.KindWorkflowDisable:
		return StyleFailure.Render(" x ")
	case model.KindWorkflowEnable:
		return StyleSuccess.Render(" + ")
	default:
		return StyleMuted.Render(" * ")
	}
}
