// Package suggestion implements the Suggestion service: auto-translation
// over a sentence batch, single-token lookup, and the periodic trie
// rebuild that folds newly confirmed segments into the on-disk training
// history (spec.md §4.5-§4.7, §5).
package suggestion

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vachan-cat/cattrans/internal/autotranslate"
	"github.com/vachan-cat/cattrans/internal/export"
	"github.com/vachan-cat/cattrans/internal/learner"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
	suggestpkg "github.com/vachan-cat/cattrans/internal/suggestion"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// Service is the Suggestion use-case surface the CLI/API layer drives.
type Service interface {
	AutoTranslate(ctx context.Context, srcCode, trgCode string, sentences []model.Sentence, opts autotranslate.Options) ([]model.Sentence, error)
	Suggest(ctx context.Context, srcCode, trgCode string, index int, context []string) ([]suggestpkg.Ranked, error)
	RecordConfirmed(ctx context.Context, srcCode, trgCode string, confirmed []model.Sentence, window int, punctSet map[rune]struct{}) error
	Rebuild(ctx context.Context, srcCode, trgCode string) error
}

type service struct {
	root  string
	cache *trie.Cache
	trmem repository.TranslationMemoryRepository
}

// New builds a Service storing its training TSVs and trie snapshots under
// root (one file pair per language pair, spec.md §6), caching loaded
// tries in the given process-wide cache, and consulting trmem to rebuild
// the memory trie fresh on every auto-translate call that asks for it
// (spec.md §5).
func New(root string, cache *trie.Cache, trmem repository.TranslationMemoryRepository) Service {
	return &service{root: root, cache: cache, trmem: trmem}
}

func (s *service) loader(srcCode, trgCode string) (*trie.SuggestionTrie, error) {
	return export.ReadTrieSnapshot(s.root, srcCode, trgCode)
}

// memoryLoader fetches every known source phrase for srcCode from
// translation memory, rebuilt fresh on every call (spec.md §5: "rebuilt
// per request from the current DB") rather than cached alongside the
// suggestion trie.
func (s *service) memoryLoader(ctx context.Context, srcCode string) ([]string, error) {
	rows, err := s.trmem.ListBySrcLang(ctx, srcCode)
	if err != nil {
		return nil, err
	}
	phrases := make([]string, len(rows))
	for i, row := range rows {
		phrases[i] = row.Token
	}
	return phrases, nil
}

func (s *service) AutoTranslate(ctx context.Context, srcCode, trgCode string, sentences []model.Sentence, opts autotranslate.Options) ([]model.Sentence, error) {
	memLoader := func(srcCode string) ([]string, error) {
		return s.memoryLoader(ctx, srcCode)
	}
	return autotranslate.Run(sentences, s.cache, s.loader, memLoader, srcCode, trgCode, opts)
}

// Suggest looks up ranked suggestions for one token occurrence, loading
// (and caching) the language pair's trie on first use.
func (s *service) Suggest(ctx context.Context, srcCode, trgCode string, index int, context []string) ([]suggestpkg.Ranked, error) {
	key := trie.LangPairKey(srcCode, trgCode)
	t, ok := s.cache.Get(key)
	if !ok {
		loaded, err := s.loader(srcCode, trgCode)
		if err != nil {
			return nil, err
		}
		s.cache.Swap(key, loaded)
		t = loaded
	}
	return suggestpkg.Suggest(index, context, t), nil
}

// RecordConfirmed appends the training samples newly-confirmed segments
// yield to the language pair's on-disk TSV (spec.md §4.5, §6). It does not
// itself rebuild the trie; call Rebuild to fold the appended rows in.
func (s *service) RecordConfirmed(ctx context.Context, srcCode, trgCode string, confirmed []model.Sentence, window int, punctSet map[rune]struct{}) error {
	samples := learner.TrainingDataFromDrafts(confirmed, window, punctSet)
	if len(samples) == 0 {
		return nil
	}
	return export.AppendTrainingTSV(s.root, srcCode, trgCode, samples)
}

// Rebuild reads the full training TSV for (srcCode, trgCode), rebuilds the
// suggestion trie from it, persists a new snapshot, and atomically swaps
// it into the process-wide cache so concurrent readers only ever see a
// fully-built trie (spec.md §5).
func (s *service) Rebuild(ctx context.Context, srcCode, trgCode string) error {
	samples, err := export.ReadTrainingTSV(s.root, srcCode, trgCode)
	if err != nil {
		return err
	}

	built := learner.BuildTrie(samples)
	if err := export.WriteTrieSnapshot(s.root, srcCode, trgCode, built); err != nil {
		return err
	}

	log.Info().Str("srcLang", srcCode).Str("trgLang", trgCode).Int("samples", len(samples)).Msg("rebuilt suggestion trie")
	s.cache.Swap(trie.LangPairKey(srcCode, trgCode), built)
	return nil
}
