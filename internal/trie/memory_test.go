package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryTrie_LongestPrefix(t *testing.T) {
	m := NewMemoryTrie([]string{"जीवन के वचन", "जीवन"})

	matched, ok := m.LongestPrefix("जीवन/के/वचन/को/देखो")
	assert.True(t, ok)
	assert.Equal(t, "जीवन/के/वचन", matched)
}

func TestMemoryTrie_LongestPrefixOfWords(t *testing.T) {
	m := NewMemoryTrie([]string{"good morning"})

	words, ok := m.LongestPrefixOfWords([]string{"good", "morning", "friend"})
	assert.True(t, ok)
	assert.Equal(t, []string{"good", "morning"}, words)
}

func TestMemoryTrie_NoMatch(t *testing.T) {
	m := NewMemoryTrie([]string{"good morning"})

	_, ok := m.LongestPrefix("hello/world")
	assert.False(t, ok)
}

func TestMemoryTrie_EmptyPhrasesIgnored(t *testing.T) {
	m := NewMemoryTrie([]string{"", "   "})

	_, ok := m.LongestPrefix("anything")
	assert.False(t, ok)
}
