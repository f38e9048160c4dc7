package learner

import (
	"github.com/vachan-cat/cattrans/internal/ctxwin"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// Sample is one (token position, context, translation) training observation,
// the shape build_trie consumes (spec.md §4.5). Index is the token's
// position within Context.
type Sample struct {
	Index       int
	Context     []string
	Translation string
}

func reversed(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[len(words)-1-i] = w
	}
	return out
}

// BuildTrie trains a SuggestionTrie from samples: for each, it resolves the
// token and its left/right neighbour lists from context, enumerates
// longest-only keys, and distributes weight 1/K evenly across all of them
// (spec.md §4.5).
func BuildTrie(samples []Sample) *trie.SuggestionTrie {
	t := trie.NewSuggestionTrie()
	for _, s := range samples {
		if s.Index < 0 || s.Index >= len(s.Context) {
			continue
		}
		token := s.Context[s.Index]
		toLeft := reversed(s.Context[:s.Index])
		toRight := s.Context[s.Index+1:]

		keys := FormTrieKeys(token, toLeft, toRight, true)
		if len(keys) == 0 {
			continue
		}
		weight := 1.0 / float64(len(keys))
		for _, key := range keys {
			t.Add(key, s.Translation, weight)
		}
	}
	return t
}

// TrainingDataFromDrafts extracts one Sample per `confirmed` segment across
// sentences: the context window is taken from the source sentence around
// the segment's source offset, the translation is the draft slice at the
// segment's dst offset (spec.md §4.5).
func TrainingDataFromDrafts(sentences []model.Sentence, window int, punctSet map[rune]struct{}) []Sample {
	var samples []Sample
	for _, sent := range sentences {
		for _, seg := range sent.DraftMeta {
			if seg.Status != model.Confirmed {
				continue
			}
			token := sent.Sentence[seg.Src.Start:seg.Src.End]
			index, context := ctxwin.Extract(token, seg.Src.Start, seg.Src.End, sent.Sentence, window, punctSet)
			translation := sent.Draft[seg.Dst.Start:seg.Dst.End]
			samples = append(samples, Sample{
				Index:       index,
				Context:     context,
				Translation: translation,
			})
		}
	}
	return samples
}
