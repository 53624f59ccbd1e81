package search

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/gha-palette/internal/model"
)

func newTestMatcher() *Matcher {
	return NewMatcher(NewFoldTokenizer("en"))
}

func TestMatch(t *testing.T) {
	m := newTestMatcher()

	tests := []struct {
		name    string
		query   string
		item    model.SearchItem
		matched bool
		section model.Section
	}{
		{
			name:    "initials of the first two words",
			query:   "gb",
			item:    model.SearchItem{Label: "Gaussian Blur..."},
			matched: true,
			section: model.SectionStart,
		},
		{
			name:    "prefix at label start",
			query:   "gaus",
			item:    model.SearchItem{Label: "Gaussian Blur..."},
			matched: true,
			section: model.SectionStart,
		},
		{
			name:    "all words at their own position",
			query:   "gaussian bl",
			item:    model.SearchItem{Label: "Gaussian Blur..."},
			matched: true,
			section: model.SectionStart,
		},
		{
			name:    "in order but not from the start",
			query:   "blur",
			item:    model.SearchItem{Label: "Gaussian Blur..."},
			matched: true,
			section: model.SectionOrdered,
		},
		{
			name:    "two letters that are not initials fall back to prefixes",
			query:   "bl",
			item:    model.SearchItem{Label: "Gaussian Blur..."},
			matched: true,
			section: model.SectionOrdered,
		},
		{
			name:    "out of order",
			query:   "blur gaussian",
			item:    model.SearchItem{Label: "Gaussian Blur..."},
			matched: true,
			section: model.SectionUnordered,
		},
		{
			name:    "case insensitive",
			query:   "GAUSSIAN",
			item:    model.SearchItem{Label: "gaussian blur"},
			matched: true,
			section: model.SectionStart,
		},
		{
			name:  "no match anywhere",
			query: "xyz",
			item:  model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Smooths the image"},
		},
		{
			name:    "tooltip only",
			query:   "smooths",
			item:    model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Smooths the image edges"},
			matched: true,
			section: model.SectionTooltip,
		},
		{
			name:    "tooltip and label mixed",
			query:   "smooths blur",
			item:    model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Smooths edges"},
			matched: true,
			section: model.SectionMixed,
		},
		{
			name:    "word in both tooltip and label is not mixed",
			query:   "smooth blur",
			item:    model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Blur the image smoothly"},
			matched: true,
			section: model.SectionTooltip,
		},
		{
			name:  "tooltip needs a first word longer than two letters",
			query: "sm blur",
			item:  model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Smooths edges"},
		},
		{
			name:  "every word must be found",
			query: "gaussian sharpen",
			item:  model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Smooths edges"},
		},
		{
			name:  "empty label never matches",
			query: "smooths",
			item:  model.SearchItem{Label: "  ", Tooltip: "Smooths edges"},
		},
		{
			name:  "punctuation-only query",
			query: "...",
			item:  model.SearchItem{Label: "Gaussian Blur..."},
		},
		{
			name:    "label without words can still match by tooltip",
			query:   "repeat",
			item:    model.SearchItem{Label: "...", Tooltip: "Repeat the last action"},
			matched: true,
			section: model.SectionTooltip,
		},
		{
			name:    "alternate spelling",
			query:   "creme",
			item:    model.SearchItem{Label: "Crème Brûlée"},
			matched: true,
			section: model.SectionStart,
		},
		{
			name:    "alternate spellings out of order",
			query:   "brulee creme",
			item:    model.SearchItem{Label: "Crème Brûlée"},
			matched: true,
			section: model.SectionUnordered,
		},
		{
			// "creme" is found at index 0 of the alternates, not at its
			// own position 1, so the match is only ordered.
			name:    "alternate index is relative to alternates",
			query:   "open creme",
			item:    model.SearchItem{Label: "Open Crème"},
			matched: true,
			section: model.SectionOrdered,
		},
		{
			name:    "disabled items still match",
			query:   "cancel",
			item:    model.SearchItem{Label: "Cancel run", Enabled: false},
			matched: true,
			section: model.SectionStart,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, ok := m.Match(m.Query(tt.query), tt.item)
			require.Equal(t, tt.matched, ok)
			if tt.matched {
				assert.Equal(t, tt.section, section)
			}
		})
	}
}

func TestMatchAnyQuery(t *testing.T) {
	m := newTestMatcher()

	items := []model.SearchItem{
		{Label: "Gaussian Blur..."},
		{Label: ""},
		{Label: "Cancel run", Tooltip: "Stop it", Enabled: false},
	}
	for _, item := range items {
		section, ok := m.Match(AnyQuery(), item)
		assert.True(t, ok, item.Label)
		assert.Equal(t, model.SectionHistory, section, item.Label)
	}
}

func TestMatchZeroQueryMatchesNothing(t *testing.T) {
	m := newTestMatcher()

	var q Query
	assert.True(t, q.Empty())
	_, ok := m.Match(q, model.SearchItem{Label: "Gaussian Blur..."})
	assert.False(t, ok)
}

func TestMatchIsIdempotent(t *testing.T) {
	m := newTestMatcher()
	q := m.Query("smooths blur")
	item := model.SearchItem{Label: "Gaussian Blur...", Tooltip: "Smooths edges"}

	s1, ok1 := m.Match(q, item)
	s2, ok2 := m.Match(q, item)
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, s1, s2)
}

func TestMatchConcurrent(t *testing.T) {
	m := newTestMatcher()
	q := m.Query("blur gaussian")
	item := model.SearchItem{Label: "Gaussian Blur..."}

	var wg sync.WaitGroup
	sections := make([]model.Section, 32)
	for i := range sections {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sections[i], _ = m.Match(q, item)
		}(i)
	}
	wg.Wait()

	for _, s := range sections {
		assert.Equal(t, model.SectionUnordered, s)
	}
}
