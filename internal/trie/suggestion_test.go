package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestionTrie_AddAccumulatesWeight(t *testing.T) {
	s := NewSuggestionTrie()
	s.Add("b/L:a/R:c", "B", 0.5)
	s.Add("b/L:a/R:c", "B", 0.5)

	snap := s.Snapshot()
	require.Contains(t, snap, "b/L:a/R:c")
	assert.Equal(t, 1.0, snap["b/L:a/R:c"]["B"])
}

func TestSuggestionTrie_SnapshotRoundTrip(t *testing.T) {
	s := NewSuggestionTrie()
	s.Add("hello", "X", 1.0)

	restored := FromSnapshot(s.Snapshot())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())
}

func TestSuggestionTrie_NodesAtOrBelowKeyed_BoundaryRespecting(t *testing.T) {
	s := NewSuggestionTrie()
	s.Add("hello", "A", 1.0)
	s.Add("hello/L:x", "B", 1.0)
	s.Add("helloworld", "C", 1.0) // not a '/'-boundary descendant of "hello"

	nodes := s.NodesAtOrBelowKeyed("hello")
	assert.Len(t, nodes, 2)
	assert.Contains(t, nodes, "hello")
	assert.Contains(t, nodes, "hello/L:x")
	assert.NotContains(t, nodes, "helloworld")
}

func TestSuggestionTrie_HasKeyOrSubtrie(t *testing.T) {
	s := NewSuggestionTrie()
	s.Add("hello/L:x", "A", 1.0)

	assert.True(t, s.HasKeyOrSubtrie("hello"))
	assert.False(t, s.HasKeyOrSubtrie("nope"))
}
