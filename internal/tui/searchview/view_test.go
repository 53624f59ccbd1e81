package searchview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/gha-palette/internal/model"
	"github.com/altinukshini/gha-palette/internal/ui"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func sized() Model {
	m := New()
	// a blinking cursor would make every key return a blocking blink command
	m.SetCursorMode(cursor.CursorStatic)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m
}

func sampleResults() []model.MatchResult {
	return []model.MatchResult{
		{Action: model.Action{Name: "workflow-run-1", Label: "Run CI", Sensitive: true}, Section: model.SectionHistory},
		{Action: model.Action{Name: "run-rerun-2", Label: "Rerun CI #2", Sensitive: true}, Section: model.SectionStart},
		{Action: model.Action{Name: "run-cancel-2", Label: "Cancel CI #2", Sensitive: false}, Section: model.SectionUnordered},
	}
}

// collect runs cmd and returns the messages it produced, flattening batches.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func searchRequests(cmd tea.Cmd) []ui.SearchRequestMsg {
	var out []ui.SearchRequestMsg
	for _, msg := range collect(cmd) {
		if req, ok := msg.(ui.SearchRequestMsg); ok {
			out = append(out, req)
		}
	}
	return out
}

func TestTypingRequestsSearch(t *testing.T) {
	m := sized()
	m, cmd := m.Update(runes("r"))
	reqs := searchRequests(cmd)
	require.Len(t, reqs, 1)
	assert.Equal(t, ui.SearchRequestMsg{Text: "r"}, reqs[0])

	m, cmd = m.Update(runes(" "))
	reqs = searchRequests(cmd)
	require.Len(t, reqs, 1)
	assert.Equal(t, "r", reqs[0].Text, "requests carry trimmed text")
	assert.Equal(t, "r ", m.Text())
}

func TestClearingTextHidesList(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("r"))
	m.SetResults(sampleResults())
	require.True(t, m.ListVisible())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.False(t, m.ListVisible())
	assert.Empty(t, m.Results())

	reqs := searchRequests(cmd)
	require.Len(t, reqs, 1)
	assert.Equal(t, "", reqs[0].Text)
	assert.False(t, reqs[0].All)
}

func TestDownOnEmptyEntryListsEverything(t *testing.T) {
	m := sized()
	_, cmd := m.Update(keyDown)
	reqs := searchRequests(cmd)
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].All)
}

func TestDownSelectsSecondRow(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("ci"))
	m.SetResults(sampleResults())
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, FocusEntry, m.Focus())

	m, _ = m.Update(keyDown)
	assert.Equal(t, FocusList, m.Focus())
	assert.Equal(t, 1, m.Cursor())
}

func TestDownWithSingleResultStaysOnIt(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("ci"))
	m.SetResults(sampleResults()[:1])

	m, _ = m.Update(keyDown)
	assert.Equal(t, FocusList, m.Focus())
	assert.Equal(t, 0, m.Cursor())
}

func TestUpOnFirstRowFocusesEntry(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("ci"))
	m.SetResults(sampleResults())
	m, _ = m.Update(keyDown) // row 1
	m, _ = m.Update(keyUp)   // row 0
	assert.Equal(t, FocusList, m.Focus())
	assert.Equal(t, 0, m.Cursor())

	m, _ = m.Update(keyUp)
	assert.Equal(t, FocusEntry, m.Focus())
}

func TestOtherKeysInListGoBackToEntry(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("ci"))
	m.SetResults(sampleResults())
	m, _ = m.Update(keyDown)

	m, cmd := m.Update(runes("x"))
	assert.Equal(t, FocusEntry, m.Focus())
	assert.Equal(t, "cix", m.Text())
	reqs := searchRequests(cmd)
	require.Len(t, reqs, 1)
	assert.Equal(t, "cix", reqs[0].Text)
}

func TestEnterActivatesOnlySensitiveRows(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("ci"))
	m.SetResults(sampleResults())

	_, cmd := m.Update(keyEnter)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, "workflow-run-1", msgs[0].(ui.ActivateMsg).Action.Name)

	m, _ = m.Update(keyDown) // row 1
	m, _ = m.Update(keyDown) // row 2, insensitive
	assert.Equal(t, 2, m.Cursor())
	_, cmd = m.Update(keyEnter)
	assert.Nil(t, cmd)

	m, _ = m.Update(keyDown)
	assert.Equal(t, 2, m.Cursor(), "cursor stops at the last row")
}

func TestEscHides(t *testing.T) {
	m := sized()
	_, cmd := m.Update(keyEsc)
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.IsType(t, ui.HideMsg{}, msgs[0])
}

func TestViewShowsSections(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("ci"))
	m.SetResults(sampleResults())

	view := m.View()
	for _, want := range []string{"Run CI", "Rerun CI #2", "Cancel CI #2",
		ui.SectionTitle(model.SectionHistory), ui.SectionTitle(model.SectionStart), ui.SectionTitle(model.SectionUnordered)} {
		assert.True(t, strings.Contains(view, want), "view should contain %q", want)
	}
	assert.NotContains(t, view, ui.SectionTitle(model.SectionTooltip))
}

func TestViewNoMatches(t *testing.T) {
	m := sized()
	m, _ = m.Update(runes("zzz"))
	m.SetResults(nil)
	assert.Contains(t, m.View(), "No matching actions")
}
