package search

import (
	"strings"
	"unicode/utf8"

	"github.com/altinukshini/gha-palette/internal/model"
)

// Query is a tokenized keyword. The zero value matches nothing; AnyQuery
// matches everything.
type Query struct {
	any    bool
	text   string
	tokens []string
}

// AnyQuery returns the query used to list every item, e.g. when the user
// asks for the full list without typing anything.
func AnyQuery() Query {
	return Query{any: true}
}

func (q Query) IsAny() bool { return q.any }

func (q Query) String() string { return q.text }

// Empty reports whether the query can never match anything.
func (q Query) Empty() bool {
	return !q.any && len(q.tokens) == 0
}

// Matcher decides whether a SearchItem matches a Query and in which
// section it belongs. It holds no mutable state.
type Matcher struct {
	tok Tokenizer
}

// NewMatcher returns a matcher using tok, or a language-neutral
// FoldTokenizer when tok is nil.
func NewMatcher(tok Tokenizer) *Matcher {
	if tok == nil {
		tok = NewFoldTokenizer("")
	}
	return &Matcher{tok: tok}
}

// Query tokenizes text once so it can be matched against a whole catalog.
func (m *Matcher) Query(text string) Query {
	return Query{text: text, tokens: m.tok.Tokenize(text).Words}
}

// Match reports whether item matches q, and the section it ranks in.
func (m *Matcher) Match(q Query, item model.SearchItem) (model.Section, bool) {
	if q.any {
		return model.SectionHistory, true
	}
	if len(q.tokens) == 0 || strings.TrimSpace(item.Label) == "" {
		return 0, false
	}

	label := m.tok.Tokenize(item.Label)

	// Two letters match the initials of the first two label words:
	// "gb" finds "Gaussian Blur...".
	if matchInitials(q.tokens, label) {
		return model.SectionStart, true
	}

	if len(label.Words) > 0 {
		if section, ok := matchLabel(q.tokens, label); ok {
			return section, true
		}
	}

	if utf8.RuneCountInString(q.tokens[0]) > 2 && item.Tooltip != "" {
		tooltip := m.tok.Tokenize(item.Tooltip)
		if len(tooltip.Words) > 0 {
			return matchTooltip(q.tokens, tooltip, label)
		}
	}
	return 0, false
}

func matchInitials(keys []string, label Tokens) bool {
	if len(keys) != 1 || utf8.RuneCountInString(keys[0]) != 2 {
		return false
	}
	c1, size := utf8.DecodeRuneInString(keys[0])
	c2, _ := utf8.DecodeRuneInString(keys[0][size:])
	return startsWith(label.Words, c1, c2) || startsWith(label.Alternates, c1, c2)
}

func startsWith(words []string, c1, c2 rune) bool {
	if len(words) < 2 {
		return false
	}
	r0, _ := utf8.DecodeRuneInString(words[0])
	r1, _ := utf8.DecodeRuneInString(words[1])
	return r0 == c1 && r1 == c2
}

// matchLabel requires every key to prefix a label word. Keys found at their
// own position rank best, keys found in order rank next.
func matchLabel(keys []string, label Tokens) (model.Section, bool) {
	start, ordered := true, true
	prev := -1
	for i, key := range keys {
		j, ok := findPrefixed(label, key)
		if !ok {
			return 0, false
		}
		if prev > j {
			ordered = false
		}
		prev = j
		if i != j {
			start = false
		}
	}

	switch {
	case ordered && start:
		return model.SectionStart, true
	case ordered:
		return model.SectionOrdered, true
	default:
		return model.SectionUnordered, true
	}
}

// matchTooltip requires every key to prefix a tooltip word or, failing
// that, a label word. A key only found in the label makes the match mixed;
// a key found in both counts as a tooltip match.
func matchTooltip(keys []string, tooltip, label Tokens) (model.Section, bool) {
	mixed := false
	for _, key := range keys {
		if _, ok := findPrefixed(tooltip, key); ok {
			continue
		}
		if _, ok := findPrefixed(label, key); ok {
			mixed = true
			continue
		}
		return 0, false
	}
	if mixed {
		return model.SectionMixed, true
	}
	return model.SectionTooltip, true
}

// findPrefixed returns the index of the first word prefixed by key, looking
// at alternates only when no word matches. The index is relative to the
// list it was found in.
func findPrefixed(t Tokens, key string) (int, bool) {
	if j := prefixIndex(t.Words, key); j >= 0 {
		return j, true
	}
	if j := prefixIndex(t.Alternates, key); j >= 0 {
		return j, true
	}
	return 0, false
}

func prefixIndex(words []string, key string) int {
	for j, w := range words {
		if strings.HasPrefix(w, key) {
			return j
		}
	}
	return -1
}
