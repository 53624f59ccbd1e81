// Package searchview is the Search Actions dialog: a keyword entry above a
// list of ranked actions.
package searchview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/ui"
)

type Focus int

const (
	FocusEntry Focus = iota
	FocusList
)

type Model struct {
	input    textinput.Model
	viewport viewport.Model
	results  []model.MatchResult
	visible  bool // result list shown
	focus    Focus
	cursor   int
	width    int
	height   int
	ready    bool
}

func New() Model {
	ti := textinput.New()
	ti.Placeholder = "Search actions"
	ti.Prompt = "> "
	ti.CharLimit = 256
	ti.Focus()

	return Model{input: ti}
}

// SetCursorMode changes how the entry cursor is drawn.
func (m *Model) SetCursorMode(mode cursor.Mode) tea.Cmd {
	return m.input.Cursor.SetMode(mode)
}

func (m Model) Text() string {
	return m.input.Value()
}

func (m Model) Focus() Focus {
	return m.focus
}

func (m Model) ListVisible() bool {
	return m.visible
}

func (m Model) Results() []model.MatchResult {
	return m.results
}

func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) Selected() (model.Action, bool) {
	if !m.visible || m.cursor < 0 || m.cursor >= len(m.results) {
		return model.Action{}, false
	}
	return m.results[m.cursor].Action, true
}

// SetResults shows results with the first row selected. Focus stays where
// it is so that typing is never interrupted.
func (m *Model) SetResults(results []model.MatchResult) {
	m.results = results
	m.visible = true
	m.cursor = 0
	m.refresh()
}

// Hide clears and hides the result list and gives the entry focus.
func (m *Model) Hide() {
	m.results = nil
	m.visible = false
	m.cursor = 0
	m.focusEntry()
	m.refresh()
}

func (m *Model) focusEntry() {
	m.focus = FocusEntry
	m.input.Focus()
}

func (m *Model) focusList() {
	m.focus = FocusList
	m.input.Blur()
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focus == FocusList {
			return m.updateList(msg)
		}
		return m.updateEntry(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		listH := msg.Height - 2
		if listH < 1 {
			listH = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, listH)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = listH
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEntry(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Back):
		return m, hide
	case key.Matches(msg, ui.Keys.Enter):
		return m, m.activateSelected()
	case key.Matches(msg, ui.Keys.Down):
		if m.visible && len(m.results) > 0 {
			// the first row is reachable with enter from the entry already
			m.cursor = min(1, len(m.results)-1)
			m.focusList()
			m.refresh()
			return m, nil
		}
		if strings.TrimSpace(m.input.Value()) == "" {
			return m, requestSearch("", true)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	after := m.input.Value()
	if after == before {
		return m, cmd
	}

	text := strings.TrimSpace(after)
	if text == "" {
		m.Hide()
	}
	return m, tea.Batch(cmd, requestSearch(text, false))
}

func (m Model) updateList(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, ui.Keys.Back):
		return m, hide
	case key.Matches(msg, ui.Keys.Enter):
		return m, m.activateSelected()
	case key.Matches(msg, ui.Keys.Up):
		if m.cursor == 0 {
			m.focusEntry()
		} else {
			m.cursor--
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, ui.Keys.Down):
		if m.cursor < len(m.results)-1 {
			m.cursor++
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, ui.Keys.PageUp):
		m.cursor = max(0, m.cursor-m.pageSize())
		m.refresh()
		return m, nil
	case key.Matches(msg, ui.Keys.PageDown):
		m.cursor = max(0, min(len(m.results)-1, m.cursor+m.pageSize()))
		m.refresh()
		return m, nil
	}

	// Anything else belongs to the entry.
	m.focusEntry()
	return m.updateEntry(msg)
}

func (m Model) pageSize() int {
	if !m.ready || m.viewport.Height < 2 {
		return 1
	}
	return m.viewport.Height / 2
}

func (m Model) activateSelected() tea.Cmd {
	a, ok := m.Selected()
	if !ok || !a.Sensitive {
		return nil
	}
	return func() tea.Msg {
		return ui.ActivateMsg{Action: a}
	}
}

func hide() tea.Msg {
	return ui.HideMsg{}
}

func requestSearch(text string, all bool) tea.Cmd {
	return func() tea.Msg {
		return ui.SearchRequestMsg{Text: text, All: all}
	}
}

// refresh re-renders the list and scrolls the selected row into view.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	content, cursorLine := m.renderResults()
	m.viewport.SetContent(content)

	if cursorLine < m.viewport.YOffset {
		m.viewport.SetYOffset(cursorLine)
	} else if cursorLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(cursorLine - m.viewport.Height + 1)
	}
}

// renderResults returns the list and the line the selected row starts on.
func (m Model) renderResults() (string, int) {
	if !m.visible {
		return "", 0
	}
	if len(m.results) == 0 {
		return ui.StyleMuted.Render("  No matching actions"), 0
	}

	var b strings.Builder
	line, cursorLine := 0, 0
	section := model.Section(-1)

	for i, r := range m.results {
		if r.Section != section {
			section = r.Section
			if i > 0 {
				b.WriteString("\n")
				line++
			}
			b.WriteString(ui.StyleMuted.Render("  -- "+ui.SectionTitle(section)+" --") + "\n")
			line++
		}
		if i == m.cursor {
			cursorLine = line
		}
		b.WriteString(m.renderRow(r.Action, i == m.cursor) + "\n")
		line++
	}
	return strings.TrimRight(b.String(), "\n"), cursorLine
}

func (m Model) renderRow(a model.Action, selected bool) string {
	cursor := "  "
	if selected && m.focus == FocusList {
		cursor = "> "
	}

	label := ui.StyleLabel.Render(a.Label)
	if !a.Sensitive {
		label = ui.StyleUnavailable.Render(a.Label)
	}
	left := fmt.Sprintf("%s%s %s", cursor, ui.ActionIcon(a), label)
	if a.Tooltip != "" {
		left += "  " + ui.StyleMuted.Render(a.Tooltip)
	}

	right := ""
	if a.Accel != "" {
		right = ui.StyleMuted.Render(a.Accel) + " "
	}

	row := left
	if m.width > 0 {
		gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
		if gap > 0 {
			row = left + strings.Repeat(" ", gap) + right
		} else if right != "" {
			row = left + " " + right
		}
	} else if right != "" {
		row = left + " " + right
	}

	if selected {
		return ui.StyleSelected.Render(row)
	}
	return row
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("  " + m.input.View() + "\n")

	if m.visible {
		b.WriteString("\n")
		if m.ready {
			b.WriteString(m.viewport.View())
		} else {
			content, _ := m.renderResults()
			b.WriteString(content)
		}
	}
	return b.String()
}
