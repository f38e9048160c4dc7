// Package autotranslate composes the tokenizer, the suggestion trie, and
// the splicer into the auto-translation pass run over a batch of sentences
// (spec.md §4.7).
package autotranslate

import (
	"github.com/vachan-cat/cattrans/internal/ctxwin"
	"github.com/vachan-cat/cattrans/internal/draft"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/suggestion"
	"github.com/vachan-cat/cattrans/internal/tokenizer"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// Loader fetches a persisted suggestion trie snapshot for a language pair
// when it isn't yet in the process-wide cache. It may return (nil, nil) if
// no snapshot exists yet.
type Loader func(srcCode, trgCode string) (*trie.SuggestionTrie, error)

// MemoryLoader fetches the known source phrases for srcCode from the
// translation memory store, rebuilt fresh on every call rather than
// cached (spec.md §5: "rebuilt per request from the current DB").
type MemoryLoader func(srcCode string) ([]string, error)

// Options configures one auto-translate pass. Stopwords and Punctuations
// feed the tokenizer and context extractor; Window sizes the context
// extractor (defaults to ctxwin.DefaultWindow). UseMemory turns on the
// tokenizer's memory-trie longest-match step (spec.md §4.1 step 3); it has
// no effect if memoryLoader is nil.
type Options struct {
	Stopwords    model.Stopwords
	Punctuations map[rune]struct{}
	Window       int
	UseMemory    bool
}

// Run mutates sentences in place: loads (or lazily loads) the suggestion
// trie for (srcCode, trgCode), tokenizes every sentence with
// includeStopwords=true, and for every occurrence either splices in the
// top suggestion (tagged Suggestion) or, failing that, seeds an empty
// draft so later manual edits have somewhere to land. Segments already
// tagged Confirmed are never touched (spec.md §4.7 step 4, §4.9).
func Run(sentences []model.Sentence, cache *trie.Cache, loader Loader, memoryLoader MemoryLoader, srcCode, trgCode string, opts Options) ([]model.Sentence, error) {
	key := trie.LangPairKey(srcCode, trgCode)
	t, ok := cache.Get(key)
	if !ok {
		loaded, err := loader(srcCode, trgCode)
		if err != nil {
			return nil, err
		}
		if loaded == nil {
			loaded = trie.NewSuggestionTrie()
		}
		cache.Swap(key, loaded)
		t = loaded
	}

	window := opts.Window
	if window <= 0 {
		window = ctxwin.DefaultWindow
	}

	var memory *trie.MemoryTrie
	if opts.UseMemory && memoryLoader != nil {
		phrases, err := memoryLoader(srcCode)
		if err != nil {
			return nil, err
		}
		memory = trie.NewMemoryTrie(phrases)
	}

	by := make(map[int64]*model.Sentence, len(sentences))
	inputs := make([]tokenizer.SentenceInput, len(sentences))
	for i := range sentences {
		by[sentences[i].SentenceID] = &sentences[i]
		inputs[i] = tokenizer.SentenceInput{SentenceID: sentences[i].SentenceID, Text: sentences[i].Sentence}
	}

	var punct []rune
	for r := range opts.Punctuations {
		punct = append(punct, r)
	}

	tokenizeOpts := tokenizer.Options{
		UseMemory:        opts.UseMemory && memory != nil,
		IncludePhrases:   true,
		IncludeStopwords: true,
		Punctuations:     punct,
		Stopwords:        opts.Stopwords,
	}
	tokens, err := tokenizer.Tokenize(inputs, memory, tokenizeOpts)
	if err != nil {
		return nil, err
	}

	for token, info := range tokens {
		for _, occ := range info.Occurrences {
			sent, ok := by[occ.SentenceID]
			if !ok {
				continue
			}

			if len(sent.DraftMeta) == 0 {
				sent.Draft = sent.Sentence
				sent.DraftMeta = model.FreshMeta(len(sent.Sentence))
			}

			if segmentConfirmed(sent.DraftMeta, occ.Start, occ.End) {
				continue
			}

			idx, win := ctxwin.Extract(token, occ.Start, occ.End, sent.Sentence, window, opts.Punctuations)
			ranked := suggestion.Suggest(idx, win, t)
			if len(ranked) == 0 {
				continue
			}

			newDraft, newMeta, err := draft.ReplaceToken(sent.Sentence, occ.Start, occ.End, ranked[0].Translation, sent.Draft, sent.DraftMeta, model.Suggestion)
			if err != nil {
				return nil, err
			}
			sent.Draft = newDraft
			sent.DraftMeta = newMeta
		}
	}

	return sentences, nil
}

func segmentConfirmed(meta model.Meta, start, end int) bool {
	for _, seg := range meta {
		if start >= seg.Src.Start && end <= seg.Src.End {
			return seg.Status == model.Confirmed
		}
	}
	return false
}
