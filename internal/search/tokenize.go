package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Tokens is the folded form of a piece of text. Alternates holds ASCII-ish
// spellings of the non-ASCII words, in word order; it is not index-aligned
// with Words.
type Tokens struct {
	Words      []string
	Alternates []string
}

type Tokenizer interface {
	Tokenize(text string) Tokens
}

// FoldTokenizer splits text into words and folds case and compatibility
// forms for a language. It is safe for concurrent use.
type FoldTokenizer struct {
	lang language.Tag
}

// NewFoldTokenizer returns a tokenizer for the given BCP 47 language tag.
// An empty or unparseable tag falls back to language-neutral folding.
func NewFoldTokenizer(lang string) FoldTokenizer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	return FoldTokenizer{lang: tag}
}

func (t FoldTokenizer) Language() language.Tag {
	return t.lang
}

func (t FoldTokenizer) Tokenize(text string) Tokens {
	var out Tokens

	words := strings.FieldsFunc(text, isSeparator)
	if len(words) == 0 {
		return out
	}

	// Casers and transformers carry state, so they are built per call.
	lower := cases.Lower(t.lang)
	fold := cases.Fold()
	strip := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	for _, w := range words {
		word := fold.String(lower.String(norm.NFKD.String(w)))
		if word == "" {
			continue
		}
		out.Words = append(out.Words, word)

		if isASCII(word) {
			continue
		}
		alt, _, err := transform.String(strip, word)
		if err != nil || alt == "" || alt == word {
			continue
		}
		out.Alternates = append(out.Alternates, alt)
	}
	return out
}

func isSeparator(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
