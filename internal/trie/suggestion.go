package trie

import (
	"strings"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Weights maps a candidate translation to its learned weight at one
// suggestion-trie key.
type Weights map[string]float64

// SuggestionTrie is a prefix tree over token[/L:w][/R:w] keys, each mapping
// to a Weights node (spec.md §3 "Suggestion Trie Node", §4.4-4.6).
// Immutable once built; safe for concurrent readers.
type SuggestionTrie struct {
	t patricia.Trie
}

// NewSuggestionTrie returns an empty trie, the state auto-translate falls
// back to when no learned model exists yet (spec.md §4.7 step 1).
func NewSuggestionTrie() *SuggestionTrie {
	return &SuggestionTrie{t: patricia.NewTrie()}
}

// Add increments weight for translation at key, creating the node if absent.
func (s *SuggestionTrie) Add(key, translation string, weight float64) {
	raw := s.t.Get(patricia.Prefix(key))
	var node Weights
	if raw != nil {
		node = raw.(Weights)
	} else {
		node = make(Weights, 1)
	}
	node[translation] += weight
	s.t.Set(patricia.Prefix(key), node)
}

// Snapshot returns the whole trie as key -> Weights, the shape persisted to
// the on-disk JSON trie snapshot (spec.md §6).
func (s *SuggestionTrie) Snapshot() map[string]Weights {
	out := make(map[string]Weights)
	_ = s.t.Visit(func(prefix patricia.Prefix, item patricia.Item) error {
		out[string(prefix)] = item.(Weights)
		return nil
	})
	return out
}

// FromSnapshot rebuilds a SuggestionTrie from a persisted key->Weights map.
func FromSnapshot(snapshot map[string]Weights) *SuggestionTrie {
	s := NewSuggestionTrie()
	for key, weights := range snapshot {
		s.t.Set(patricia.Prefix(key), weights)
	}
	return s
}

// NodesAtOrBelowKeyed returns every Weights node stored at key or at any key
// having it as a '/'-boundary-respecting prefix, keyed by each node's own stored
// trie key, so a caller visiting the same node through several different
// enumerated lookup keys (spec.md §4.4's lookup-mode enumeration revisits
// shared descendants from multiple ancestor keys) can dedupe by identity
// instead of double-counting it once per ancestor.
func (s *SuggestionTrie) NodesAtOrBelowKeyed(key string) map[string]Weights {
	out := make(map[string]Weights)
	_ = s.t.VisitSubtree(patricia.Prefix(key), func(prefix patricia.Prefix, item patricia.Item) error {
		full := string(prefix)
		if full == key || strings.HasPrefix(full, key+"/") {
			out[full] = item.(Weights)
		}
		return nil
	})
	return out
}

// HasKeyOrSubtrie reports whether key is stored exactly, or is a proper
// '/'-boundary prefix of some stored key (spec.md §4.6: "hasSubtrie ||
// hasKey").
func (s *SuggestionTrie) HasKeyOrSubtrie(key string) bool {
	if s.t.Get(patricia.Prefix(key)) != nil {
		return true
	}
	found := false
	_ = s.t.VisitSubtree(patricia.Prefix(key), func(prefix patricia.Prefix, item patricia.Item) error {
		full := string(prefix)
		if full == key || strings.HasPrefix(full, key+"/") {
			found = true
		}
		return nil
	})
	return found
}
