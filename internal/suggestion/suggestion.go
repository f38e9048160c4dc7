// Package suggestion implements lookup and scoring against a trained
// suggestion trie (spec.md §4.6).
package suggestion

import (
	"sort"
	"strings"

	"github.com/vachan-cat/cattrans/internal/learner"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// Ranked is one scored candidate translation, ordered descending by Score.
type Ranked struct {
	Translation string
	Score       float64
}

func keyDepth(key string) int {
	return 1 + strings.Count(key, "/")
}

// Suggest enumerates every lookup-mode key for (index, context), collects
// the trie nodes they reach, and scores each candidate translation by
// depth-squared weighted frequency (spec.md §4.6).
//
// A node shared by several enumerated keys (an ancestor key's subtree walk
// reaching the same descendant as a more specific key) is counted once,
// keyed by its own stored trie path — otherwise a bare token match and its
// deeper siblings would inflate each other's weight every time an ancestor
// key's subtree scan re-visits them.
func Suggest(index int, context []string, t *trie.SuggestionTrie) []Ranked {
	if t == nil || index < 0 || index >= len(context) {
		return nil
	}
	token := context[index]
	toLeft := reversedWords(context[:index])
	toRight := context[index+1:]

	keys := learner.FormTrieKeys(token, toLeft, toRight, false)

	collected := make(map[string]trie.Weights)
	for _, key := range keys {
		if !t.HasKeyOrSubtrie(key) {
			continue
		}
		for storedKey, w := range t.NodesAtOrBelowKeyed(key) {
			collected[storedKey] = w
		}
	}

	scores := make(map[string]float64)
	total := 0.0
	for storedKey, weights := range collected {
		level := float64(keyDepth(storedKey))
		levelSq := level * level
		for translation, w := range weights {
			scores[translation] += w * levelSq
			total += w * levelSq
		}
	}
	if total == 0 {
		return nil
	}

	ranked := make([]Ranked, 0, len(scores))
	for translation, score := range scores {
		ranked = append(ranked, Ranked{Translation: translation, Score: score / total})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Translation < ranked[j].Translation
	})
	return ranked
}

func reversedWords(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[len(words)-1-i] = w
	}
	return out
}
