// Package textutil holds the small language-table utilities the tokenizer
// and context extractor share: Unicode normalization and the default
// punctuation/number/stopword tables (spec.md §2.1).
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeUnicode applies NFC normalization, the form the store expects
// sentence/draft text to be kept in.
func NormalizeUnicode(s string) string {
	return norm.NFC.String(s)
}

// DefaultPunctuations is the base punctuation set used when a project/
// language doesn't supply its own (spec.md §3).
func DefaultPunctuations() []rune {
	return []rune{'.', ',', ';', ':', '!', '?', '"', '\'', '(', ')', '[', ']',
		'{', '}', '-', '–', '—', '।', '॥', '“', '”', '‘', '’'}
}

// DefaultNumbers are digits, included in the punctuation set when
// numeric-splitting is desired (spec.md §3).
func DefaultNumbers() []rune {
	return []rune{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
}

// PunctuationAndNumberSet builds the combined rune set used by the
// tokenizer's chunk splitter and the context extractor's punctuation strip.
func PunctuationAndNumberSet(extra []rune) map[rune]struct{} {
	set := make(map[rune]struct{}, len(extra)+16)
	for _, r := range DefaultPunctuations() {
		set[r] = struct{}{}
	}
	for _, r := range DefaultNumbers() {
		set[r] = struct{}{}
	}
	for _, r := range extra {
		set[r] = struct{}{}
	}
	return set
}

var newlineRunPattern = regexp.MustCompile(`[\n\r]+`)

// CollapseNewlines replaces every run of \n|\r with a single space, the
// tokenizer's first normalization step (spec.md §4.1 step 1).
func CollapseNewlines(s string) string {
	return newlineRunPattern.ReplaceAllString(s, " ")
}

// StripRunes removes every rune present in set from s, preserving byte
// offsets only within the surviving substring (the context extractor
// doesn't need original offsets after stripping — spec.md §4.3).
func StripRunes(s string, set map[rune]struct{}) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, drop := set[r]; drop {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SplitOnPunctuation splits s into trimmed, non-empty chunks at every
// maximal run of runes in set (spec.md §4.1 step 2).
func SplitOnPunctuation(s string, set map[rune]struct{}) []string {
	var chunks []string
	var cur strings.Builder
	flush := func() {
		c := strings.TrimSpace(cur.String())
		if c != "" {
			chunks = append(chunks, c)
		}
		cur.Reset()
	}
	for _, r := range s {
		if _, isPunct := set[r]; isPunct {
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()
	return chunks
}

// EnglishStopwords is a minimal default stopword table; real projects are
// expected to supply their own per spec.md §3's per-language Stopwords.
func EnglishStopwords() (prepositions, postpositions []string) {
	return []string{"of", "in", "on", "at", "to", "for", "with", "a", "an", "the"}, nil
}
