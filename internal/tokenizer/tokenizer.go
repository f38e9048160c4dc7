// Package tokenizer splits source sentences into ordered token occurrences
// with character offsets, using punctuation splitting, memory-trie
// longest-match, and a stopword phrase-builder state machine (spec.md §4.1).
package tokenizer

import (
	"fmt"
	"strings"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/textutil"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// Options carries the tokenizer's dynamic configuration, modeled as an
// explicit struct rather than an open bag (spec.md §9).
type Options struct {
	UseMemory        bool
	IncludePhrases   bool
	IncludeStopwords bool
	Punctuations     []rune // added to DefaultPunctuations()+DefaultNumbers(); nil means those alone
	Stopwords        model.Stopwords
}

// DefaultOptions mirrors the distilled spec's defaults for a plain tokenize
// call: phrase building on, stopword-only phrases dropped, memory off.
func DefaultOptions(sw model.Stopwords) Options {
	return Options{
		UseMemory:        false,
		IncludePhrases:   true,
		IncludeStopwords: false,
		Stopwords:        sw,
	}
}

// Occurrence is one located appearance of a token in one sentence.
type Occurrence struct {
	SentenceID int64
	Start      int
	End        int
}

// TokenInfo is the tokenizer's per-token accumulator: every sentence
// occurrence plus (left for callers to fill) known translations.
type TokenInfo struct {
	Occurrences  []Occurrence
	Translations []string
}

// SentenceInput is the minimal (id, text) pair tokenize operates over.
type SentenceInput struct {
	SentenceID int64
	Text       string
}

const sentinelPrefix = "###"

// Tokenize implements spec.md §4.1: for each sentence, split into
// punctuation-delimited chunks, optionally match the longest known phrase
// from the memory trie, run the stopword phrase builder over what's left,
// then locate every emitted phrase's next occurrence in the original text.
func Tokenize(sentences []SentenceInput, memory *trie.MemoryTrie, opts Options) (map[string]*TokenInfo, error) {
	punctSet := textutil.PunctuationAndNumberSet(opts.Punctuations)
	stopwordSet := stopwordList(opts.Stopwords)

	result := make(map[string]*TokenInfo)

	for _, sent := range sentences {
		text := textutil.CollapseNewlines(sent.Text)
		chunks := textutil.SplitOnPunctuation(text, punctSet)

		var subchunks []string
		if opts.UseMemory && memory != nil {
			for _, chunk := range chunks {
				subchunks = append(subchunks, splitByMemory(chunk, memory)...)
			}
		} else {
			subchunks = chunks
		}

		var phrases []string
		for _, sc := range subchunks {
			if strings.HasPrefix(sc, sentinelPrefix) {
				phrases = append(phrases, strings.TrimPrefix(sc, sentinelPrefix))
				continue
			}
			phrases = append(phrases, buildPhrases(sc, opts.Stopwords, opts.IncludePhrases)...)
		}

		start := 0
		for _, phrase := range phrases {
			phrase = strings.TrimSpace(phrase)
			if phrase == "" {
				continue
			}
			if !opts.IncludeStopwords {
				if _, isStop := stopwordSet[phrase]; isStop {
					continue
				}
			}
			offset := strings.Index(sent.Text[start:], phrase)
			if offset == -1 {
				return nil, apperrors.New(apperrors.CodeNotFound,
					fmt.Sprintf("token %q not found in sentence %d", phrase, sent.SentenceID))
			}
			offset += start
			start = offset + 1

			info, ok := result[phrase]
			if !ok {
				info = &TokenInfo{}
				result[phrase] = info
			}
			info.Occurrences = append(info.Occurrences, Occurrence{
				SentenceID: sent.SentenceID,
				Start:      offset,
				End:        offset + len(phrase),
			})
		}
	}
	return result, nil
}

func stopwordList(sw model.Stopwords) map[string]struct{} {
	set := make(map[string]struct{}, len(sw.Prepositions)+len(sw.Postpositions))
	for w := range sw.Prepositions {
		set[w] = struct{}{}
	}
	for w := range sw.Postpositions {
		set[w] = struct{}{}
	}
	return set
}

// splitByMemory walks chunk left-to-right, greedily consuming the longest
// known phrase from memory wherever one is found at the current position,
// else buffering one word at a time (spec.md §4.1 step 3).
func splitByMemory(chunk string, memory *trie.MemoryTrie) []string {
	var out []string
	var buf strings.Builder
	remaining := chunk

	flush := func() {
		s := strings.TrimSpace(buf.String())
		if s != "" {
			out = append(out, s)
		}
		buf.Reset()
	}

	for remaining != "" {
		key := strings.Join(strings.Fields(remaining), "/")
		matched, ok := memory.LongestPrefix(key)
		if ok {
			flush()
			out = append(out, sentinelPrefix+strings.ReplaceAll(matched, "/", " "))
			remaining = remaining[len(matched):]
			continue
		}
		if idx := strings.Index(remaining, " "); idx != -1 {
			buf.WriteString(remaining[:idx+1])
			remaining = remaining[idx+1:]
		} else {
			buf.WriteString(remaining)
			remaining = ""
		}
	}
	flush()
	return out
}

// phraseBuilder state machine states (spec.md §4.1 "Phrase builder state machine").
type builderState int

const (
	statePre builderState = iota
	statePost
)

// buildPhrases runs the stopword phrase-builder over chunk's whitespace-split
// words (spec.md §4.1). If includePhrases is false, each word is emitted as
// its own phrase.
//
// The builder absorbs a stopword of EITHER class while still awaiting its
// head content word (pre), and likewise absorbs a leading-class stopword
// encountered after the head without closing the phrase (post+preposition
// re-enters pre, awaiting a further head) — only a genuine second content
// word closes the phrase. This is what makes "X <prep> Y <post>" collapse
// to one phrase and a bare run of stopwords with no head merge with the
// next head word, per spec.md §8's worked examples.
func buildPhrases(chunk string, sw model.Stopwords, includePhrases bool) []string {
	words := strings.Fields(chunk)
	if !includePhrases {
		return words
	}
	if len(words) == 0 {
		return nil
	}

	var phrases []string
	var cur strings.Builder
	state := statePre

	appendWord := func(word string) {
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(word)
	}

	for _, word := range words {
		switch state {
		case statePre:
			appendWord(word)
			if !sw.IsStopword(word) {
				state = statePost
			}
		case statePost:
			switch {
			case sw.IsPostposition(word):
				appendWord(word)
			case sw.IsPreposition(word):
				appendWord(word)
				state = statePre
			default:
				phrases = append(phrases, strings.TrimSpace(cur.String()))
				cur.Reset()
				cur.WriteString(word)
				state = statePost
			}
		}
	}
	phrases = append(phrases, strings.TrimSpace(cur.String()))
	return phrases
}
