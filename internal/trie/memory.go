// Package trie wraps github.com/tchap/go-patricia/v2/patricia with the two
// shapes this engine needs: a memory trie over known source phrases
// (spec.md §4.1) and a suggestion trie over token[/L:...][/R:...] keys
// (spec.md §4.4-4.6).
package trie

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// MemoryTrie is a prefix tree over known source phrases, keyed by their
// whitespace-split words joined with '/'. Used only during tokenization.
type MemoryTrie struct {
	t patricia.Trie
}

// NewMemoryTrie builds a MemoryTrie from a set of known phrases (the
// TranslationMemoryRow tokens for a source language).
func NewMemoryTrie(phrases []string) *MemoryTrie {
	m := &MemoryTrie{t: patricia.NewTrie()}
	for _, phrase := range phrases {
		key := phraseKey(phrase)
		if key == "" {
			continue
		}
		m.t.Set(patricia.Prefix(key), struct{}{})
	}
	return m
}

func phraseKey(phrase string) string {
	fields := strings.Fields(phrase)
	return strings.Join(fields, "/")
}

// LongestPrefix returns the longest stored phrase key that is a prefix of
// key (itself whitespace/"/"-joined), mirroring pygtrie's longest_prefix
// over a StringTrie with '/' separators. ok is false if no stored phrase
// matches any leading slice of key.
func (m *MemoryTrie) LongestPrefix(key string) (matched string, ok bool) {
	parts := strings.Split(key, "/")
	for i := len(parts); i >= 1; i-- {
		candidate := strings.Join(parts[:i], "/")
		if m.t.Get(patricia.Prefix(candidate)) != nil {
			return candidate, true
		}
	}
	return "", false
}

// LongestPrefixOfWords is a convenience for callers holding a []string of
// whitespace-split words rather than a pre-joined key.
func (m *MemoryTrie) LongestPrefixOfWords(words []string) (matchedWords []string, ok bool) {
	matched, ok := m.LongestPrefix(strings.Join(words, "/"))
	if !ok {
		return nil, false
	}
	return strings.Split(matched, "/"), true
}
