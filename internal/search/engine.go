package search

import (
	"context"
	"sort"
	"strings"

	"github.com/altinukshini/gha-palette/internal/model"
)

// Request is one search over the palette catalog.
type Request struct {
	Query Query

	// History holds previously activated actions, most relevant first.
	// Matching entries are ranked ahead of everything else.
	History []model.Action

	// Groups are enumerated in order; actions within a group are expected
	// to be sorted by name already.
	Groups []model.ActionGroup

	ShowUnavailable bool
}

type Engine struct {
	matcher *Matcher
	hidden  func(name string) bool
}

// New returns an engine. hidden reports actions that must never show up in
// results; it may be nil.
func New(matcher *Matcher, hidden func(name string) bool) *Engine {
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	return &Engine{matcher: matcher, hidden: hidden}
}

func (e *Engine) Matcher() *Matcher {
	return e.matcher
}

// Search returns the matching actions ordered by section. Within a section
// the enumeration order (history first, then groups) is preserved. It stops
// early with ctx.Err() when ctx is cancelled.
func (e *Engine) Search(ctx context.Context, req Request) ([]model.MatchResult, error) {
	if !req.Query.IsAny() && strings.TrimSpace(req.Query.String()) == "" {
		return nil, nil
	}

	var results []model.MatchResult
	fromHistory := make(map[string]bool, len(req.History))

	for _, a := range req.History {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !available(a, req.ShowUnavailable) {
			continue
		}
		if _, ok := e.matcher.Match(req.Query, a.SearchItem()); ok {
			results = append(results, model.MatchResult{Action: a, Section: model.SectionHistory})
			fromHistory[a.Name] = true
		}
	}

	for _, g := range req.Groups {
		for _, a := range g.Actions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if e.hidden(a.Name) || !available(a, req.ShowUnavailable) {
				continue
			}
			section, ok := e.matcher.Match(req.Query, a.SearchItem())
			if !ok || fromHistory[a.Name] {
				continue
			}
			results = append(results, model.MatchResult{Action: a, Section: section})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Section < results[j].Section
	})
	return results, nil
}

// available reports whether a can be listed at all. Actions without a
// visible label never are.
func available(a model.Action, showUnavailable bool) bool {
	if strings.TrimSpace(a.Label) == "" {
		return false
	}
	return a.Sensitive || showUnavailable
}
