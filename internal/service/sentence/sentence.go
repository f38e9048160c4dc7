// Package sentence implements the Sentence service: sentence lookup plus
// the project-wide draft operations (apply confirmed translations,
// progress, confirm-all-suggestions) that sit on top of the aggregator
// (spec.md §4.8).
package sentence

import (
	"context"

	"github.com/vachan-cat/cattrans/internal/aggregator"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
	"github.com/vachan-cat/cattrans/internal/tokenizer"
	"github.com/vachan-cat/cattrans/internal/trie"
)

// Service is the Sentence use-case surface the CLI/API layer drives.
type Service interface {
	GetByID(ctx context.Context, projectID int, sentenceID int64) (*model.Sentence, error)
	ListByProject(ctx context.Context, projectID int) ([]*model.Sentence, error)
	Tokenize(ctx context.Context, projectID int, sentenceID int64, stopwords model.Stopwords, punctuations []rune, useMemory bool, srcLang string) (map[string]*tokenizer.TokenInfo, error)
	ApplyTokenTranslations(ctx context.Context, projectID int, srcLang, trgLang string, tokenTranslations []aggregator.TokenTranslation, useData bool) error
	Progress(ctx context.Context, projectID int) (aggregator.Progress, error)
	ConfirmAllSuggestions(ctx context.Context, projectID int) error
}

type service struct {
	sentences repository.SentenceRepository
	trmem     repository.TranslationMemoryRepository
	agg       *aggregator.Aggregator
}

// New builds a Service over the given repository and translation-memory
// repository. The latter feeds both the aggregator it wraps and, when a
// Tokenize caller asks for it, a memory trie rebuilt fresh from the current
// DB on every call (spec.md §5).
func New(sentences repository.SentenceRepository, trmem repository.TranslationMemoryRepository) Service {
	return &service{sentences: sentences, trmem: trmem, agg: aggregator.New(sentences, trmem)}
}

func (s *service) GetByID(ctx context.Context, projectID int, sentenceID int64) (*model.Sentence, error) {
	return s.sentences.GetByID(ctx, projectID, sentenceID)
}

func (s *service) ListByProject(ctx context.Context, projectID int) ([]*model.Sentence, error) {
	return s.sentences.ListByProject(ctx, projectID)
}

// Tokenize previews a single sentence's token occurrences without mutating
// its draft, for the "show me what's translatable" CLI/UI path. When
// useMemory is set, it rebuilds a memory trie from every known srcLang
// phrase in translation memory (spec.md §5) and lets the tokenizer consume
// longest-match phrases before falling back to single words (spec.md §4.1
// step 3).
func (s *service) Tokenize(ctx context.Context, projectID int, sentenceID int64, stopwords model.Stopwords, punctuations []rune, useMemory bool, srcLang string) (map[string]*tokenizer.TokenInfo, error) {
	sent, err := s.sentences.GetByID(ctx, projectID, sentenceID)
	if err != nil {
		return nil, err
	}

	var memory *trie.MemoryTrie
	if useMemory && s.trmem != nil {
		rows, err := s.trmem.ListBySrcLang(ctx, srcLang)
		if err != nil {
			return nil, err
		}
		phrases := make([]string, len(rows))
		for i, row := range rows {
			phrases[i] = row.Token
		}
		memory = trie.NewMemoryTrie(phrases)
	}

	opts := tokenizer.DefaultOptions(stopwords)
	opts.Punctuations = punctuations
	opts.UseMemory = useMemory && memory != nil
	return tokenizer.Tokenize([]tokenizer.SentenceInput{{SentenceID: sent.SentenceID, Text: sent.Sentence}}, memory, opts)
}

func (s *service) ApplyTokenTranslations(ctx context.Context, projectID int, srcLang, trgLang string, tokenTranslations []aggregator.TokenTranslation, useData bool) error {
	return s.agg.ApplyTokenTranslations(ctx, projectID, srcLang, trgLang, tokenTranslations, useData)
}

func (s *service) Progress(ctx context.Context, projectID int) (aggregator.Progress, error) {
	sentencePtrs, err := s.sentences.ListByProject(ctx, projectID)
	if err != nil {
		return aggregator.Progress{}, err
	}
	sentences := make([]model.Sentence, len(sentencePtrs))
	for i, sp := range sentencePtrs {
		sentences[i] = *sp
	}
	return aggregator.ComputeProgress(sentences), nil
}

func (s *service) ConfirmAllSuggestions(ctx context.Context, projectID int) error {
	sentencePtrs, err := s.sentences.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}
	sentences := make([]model.Sentence, len(sentencePtrs))
	for i, sp := range sentencePtrs {
		sentences[i] = *sp
	}
	return s.agg.ConfirmAllSuggestions(ctx, projectID, sentences)
}
