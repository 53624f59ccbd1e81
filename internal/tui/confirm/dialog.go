package confirm

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/ui"
)

type ResultMsg struct {
	Confirmed bool
	Action    model.Action
}

type Model struct {
	Title    string
	Message  string
	Action   model.Action
	active   bool
	selected bool // true = confirm selected
}

// New asks whether action should run.
func New(action model.Action) Model {
	msg := fmt.Sprintf("Run %q?", action.Label)
	if action.Tooltip != "" {
		msg += "\n\n" + action.Tooltip
	}
	return Model{
		Title:   action.Label,
		Message: msg,
		Action:  action,
		active:  true,
	}
}

func (m Model) IsActive() bool { return m.active }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, ui.Keys.Confirm):
		return m.finish(true)
	case key.Matches(keyMsg, ui.Keys.Deny):
		return m.finish(false)
	case key.Matches(keyMsg, ui.Keys.Enter):
		return m.finish(m.selected)
	case key.Matches(keyMsg, ui.Keys.Switch):
		m.selected = !m.selected
	}
	return m, nil
}

func (m Model) finish(confirmed bool) (Model, tea.Cmd) {
	m.active = false
	action := m.Action
	return m, func() tea.Msg {
		return ResultMsg{Confirmed: confirmed, Action: action}
	}
}

func (m Model) View() string {
	if !m.active {
		return ""
	}

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorWarning).
		Padding(1, 2).
		Width(50)

	title := lipgloss.NewStyle().Bold(true).
		Foreground(ui.ColorWarning).
		Render(m.Title)

	yesStyle := lipgloss.NewStyle().Padding(0, 1)
	noStyle := lipgloss.NewStyle().Padding(0, 1)

	if m.selected {
		yesStyle = yesStyle.Bold(true).Background(ui.ColorSuccess).Foreground(lipgloss.Color("#F9FAFB"))
		noStyle = noStyle.Foreground(ui.ColorMuted)
	} else {
		yesStyle = yesStyle.Foreground(ui.ColorMuted)
		noStyle = noStyle.Bold(true).Background(ui.ColorFailure).Foreground(lipgloss.Color("#F9FAFB"))
	}

	content := fmt.Sprintf("%s\n\n%s\n\n%s  %s\n\ny/n to confirm, esc to cancel",
		title, m.Message,
		yesStyle.Render("Yes"), noStyle.Render("No"))

	return style.Render(content)
}
