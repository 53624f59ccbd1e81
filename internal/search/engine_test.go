package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altinukshini/gha-palette/internal/model"
)

func action(name, label, tooltip string) model.Action {
	return model.Action{Name: name, Label: label, Tooltip: tooltip, Sensitive: true, Kind: model.KindShell}
}

func names(results []model.MatchResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Action.Name
	}
	return out
}

func testGroups() []model.ActionGroup {
	return []model.ActionGroup{
		{
			Name: "filters",
			Actions: []model.Action{
				action("filters-blur", "Blur...", "Simple blur"),
				action("filters-blur-gaussian", "Gaussian Blur...", "Smooths the image"),
				action("filters-sharpen", "Sharpen", "Makes blurred edges crisp"),
			},
		},
		{
			Name: "view",
			Actions: []model.Action{
				action("view-blur-preview", "Preview Blur", ""),
			},
		},
	}
}

func TestSearchOrdersBySectionAndKeepsEnumerationOrder(t *testing.T) {
	e := New(newTestMatcher(), nil)

	results, err := e.Search(context.Background(), Request{
		Query:  e.Matcher().Query("blur"),
		Groups: testGroups(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"filters-blur",          // section 1
		"filters-blur-gaussian", // section 2
		"view-blur-preview",     // section 2
		"filters-sharpen",       // section 4
	}, names(results))
	assert.Equal(t, model.SectionStart, results[0].Section)
	assert.Equal(t, model.SectionOrdered, results[1].Section)
	assert.Equal(t, model.SectionOrdered, results[2].Section)
	assert.Equal(t, model.SectionTooltip, results[3].Section)
}

func TestSearchHistoryFirstWithoutDuplicates(t *testing.T) {
	e := New(newTestMatcher(), nil)
	groups := testGroups()

	results, err := e.Search(context.Background(), Request{
		Query:   e.Matcher().Query("blur"),
		History: []model.Action{groups[1].Actions[0], groups[0].Actions[2]},
		Groups:  groups,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"view-blur-preview",
		"filters-sharpen",
		"filters-blur",
		"filters-blur-gaussian",
	}, names(results))
	assert.Equal(t, model.SectionHistory, results[0].Section)
	assert.Equal(t, model.SectionHistory, results[1].Section)
}

func TestSearchHistoryMustStillMatch(t *testing.T) {
	e := New(newTestMatcher(), nil)
	groups := testGroups()

	results, err := e.Search(context.Background(), Request{
		Query:   e.Matcher().Query("simple"),
		History: []model.Action{groups[0].Actions[1]},
		Groups:  groups,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"filters-blur"}, names(results))
}

func TestSearchUnavailableActions(t *testing.T) {
	e := New(newTestMatcher(), nil)
	disabled := action("run-cancel-1", "Cancel run #1", "")
	disabled.Sensitive = false
	groups := []model.ActionGroup{{Name: "runs", Actions: []model.Action{disabled}}}

	results, err := e.Search(context.Background(), Request{
		Query:   e.Matcher().Query("cancel"),
		History: []model.Action{disabled},
		Groups:  groups,
	})
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = e.Search(context.Background(), Request{
		Query:           e.Matcher().Query("cancel"),
		History:         []model.Action{disabled},
		Groups:          groups,
		ShowUnavailable: true,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, model.SectionHistory, results[0].Section)
}

func TestSearchHiddenActions(t *testing.T) {
	hidden := func(name string) bool { return name == "filters-sharpen" }
	e := New(newTestMatcher(), hidden)

	results, err := e.Search(context.Background(), Request{
		Query:  e.Matcher().Query("sharpen"),
		Groups: testGroups(),
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchEmptyKeyword(t *testing.T) {
	e := New(newTestMatcher(), nil)

	results, err := e.Search(context.Background(), Request{
		Query:  e.Matcher().Query("   "),
		Groups: testGroups(),
	})
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestSearchAnyQueryListsEverything(t *testing.T) {
	e := New(newTestMatcher(), nil)
	groups := testGroups()

	results, err := e.Search(context.Background(), Request{
		Query:   AnyQuery(),
		History: []model.Action{groups[1].Actions[0]},
		Groups:  groups,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"view-blur-preview",
		"filters-blur",
		"filters-blur-gaussian",
		"filters-sharpen",
	}, names(results))
	for _, r := range results {
		assert.Equal(t, model.SectionHistory, r.Section)
	}
}

func TestSearchSkipsBlankLabels(t *testing.T) {
	e := New(newTestMatcher(), nil)
	blank := action("separator", "   ", "blur everything")
	groups := []model.ActionGroup{
		{Name: "misc", Actions: []model.Action{blank, action("ok", "OK", "")}},
	}

	results, err := e.Search(context.Background(), Request{
		Query:   AnyQuery(),
		History: []model.Action{blank},
		Groups:  groups,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, names(results))

	// the tooltip alone is not enough to list it
	results, err = e.Search(context.Background(), Request{
		Query:  e.Matcher().Query("blur"),
		Groups: groups,
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchStopsWhenCancelled(t *testing.T) {
	e := New(newTestMatcher(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.Search(ctx, Request{
		Query:  e.Matcher().Query("blur"),
		Groups: testGroups(),
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}
