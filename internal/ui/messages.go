package ui

import (
	"github.com/altinukshini/gha-palette/internal/model"
)

// SearchRequestMsg asks the app to run a search. All lists every action
// regardless of Text.
type SearchRequestMsg struct {
	Text string
	All  bool
}

type SearchDoneMsg struct {
	RequestID uint64
	Results   []model.MatchResult
	Err       error
}

// ActivateMsg is sent when the user runs a row.
type ActivateMsg struct {
	Action model.Action
}

// HideMsg is sent when the user dismisses the dialog.
type HideMsg struct{}

type CatalogLoadedMsg struct {
	Provider string // empty when every provider was (re)loaded
	Err      error
}

// HistoryLoadedMsg carries the history resolved against the catalog,
// most relevant first. Last is the most recently used action, if any.
type HistoryLoadedMsg struct {
	Actions []model.Action
	Last    *model.Action
	Err     error
}

// Action result messages
type ActionResultMsg struct {
	Action  string
	Success bool
	Err     error
}

type StatusMsg struct {
	Text string
}
