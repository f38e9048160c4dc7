// Package learner builds and trains the suggestion trie: key enumeration
// (spec.md §4.4), the batch trainer (§4.5), and training-sample extraction
// from confirmed draft segments (§4.5).
package learner

import "sort"

// FormTrieKeys enumerates suggestion-trie keys for one (token, context)
// observation. toLeft is ordered nearest-first (toLeft[0] is the word
// immediately left of token); toRight is ordered nearest-first too.
//
// Every prefix of toLeft and every prefix of toRight, in every interleaved
// order, is a candidate key; recursion branches on "consume next L" and
// "consume next R" at every node, so both "/L:a/R:c" and "/R:c/L:a" are
// produced when both are available (spec.md §4.4).
//
// In longest-only mode, only the keys that consumed every element of both
// toLeft and toRight are returned (learning mode, spec.md §4.5). Otherwise
// every key reached along the way is returned, sorted by length (number of
// "/"-separated segments) descending (lookup mode, spec.md §4.6).
func FormTrieKeys(token string, toLeft, toRight []string, longestOnly bool) []string {
	maxDepth := len(toLeft) + len(toRight)

	var keys []string
	var depths []int

	var visit func(prefix string, li, ri int)
	visit = func(prefix string, li, ri int) {
		depths = append(depths, li+ri)
		keys = append(keys, prefix)
		if li < len(toLeft) {
			visit(prefix+"/L:"+toLeft[li], li+1, ri)
		}
		if ri < len(toRight) {
			visit(prefix+"/R:"+toRight[ri], li, ri+1)
		}
	}
	visit(token, 0, 0)

	if longestOnly {
		var out []string
		for i, k := range keys {
			if depths[i] == maxDepth {
				out = append(out, k)
			}
		}
		return out
	}

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return depths[order[a]] > depths[order[b]]
	})
	out := make([]string, len(keys))
	for i, idx := range order {
		out[i] = keys[idx]
	}
	return out
}
