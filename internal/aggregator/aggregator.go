// Package aggregator implements the project draft aggregator: bulk
// application of confirmed token translations, translation-memory
// bookkeeping, and the cross-sentence progress metric (spec.md §4.8).
package aggregator

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/vachan-cat/cattrans/internal/draft"
	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/repository"
)

// maxUpdateRetries bounds the optimistic-concurrency retry loop on a
// Sentence's draft write (spec.md §5: "optimistic concurrency with a
// version column and retry-on-conflict").
const maxUpdateRetries = 5

// Occurrence is one token appearance a translation is being confirmed for.
type Occurrence struct {
	SentenceID int64
	Start      int
	End        int
}

// TokenTranslation is one user-confirmed (token -> translation) mapping,
// applied at every listed occurrence.
type TokenTranslation struct {
	Token       string
	Translation string
	Occurrences []Occurrence
}

// Aggregator applies confirmed translations across a project's sentences
// and keeps translation memory in sync.
type Aggregator struct {
	sentences repository.SentenceRepository
	trmem     repository.TranslationMemoryRepository
}

// New builds an Aggregator over the given repositories.
func New(sentences repository.SentenceRepository, trmem repository.TranslationMemoryRepository) *Aggregator {
	return &Aggregator{sentences: sentences, trmem: trmem}
}

// ApplyTokenTranslations implements spec.md §4.8's applyTokenTranslations:
// for each (token, translation, occurrences), splice the translation into
// every occurrence's sentence tagged Confirmed and persist it, then (if
// useData) upsert a TranslationMemoryRow recording the observation.
func (a *Aggregator) ApplyTokenTranslations(ctx context.Context, projectID int, srcLang, trgLang string, tokenTranslations []TokenTranslation, useData bool) error {
	for _, tt := range tokenTranslations {
		for _, occ := range tt.Occurrences {
			if err := a.spliceOne(ctx, projectID, occ, tt.Translation); err != nil {
				return err
			}
		}

		if useData && len(tt.Occurrences) > 0 {
			if err := a.trmem.Upsert(ctx, srcLang, trgLang, tt.Token, tt.Translation, len(tt.Occurrences)); err != nil {
				return err
			}
		}
	}
	return nil
}

// spliceOne applies one occurrence's splice under optimistic-concurrency
// retry: load the current row, splice against its current draft/meta,
// write back with the version it was read at, retry on Conflict.
func (a *Aggregator) spliceOne(ctx context.Context, projectID int, occ Occurrence, translation string) error {
	var lastErr error
	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		sent, err := a.sentences.GetByID(ctx, projectID, occ.SentenceID)
		if err != nil {
			return err
		}

		newDraft, newMeta, err := draft.ReplaceToken(sent.Sentence, occ.Start, occ.End, translation, sent.Draft, sent.DraftMeta, model.Confirmed)
		if err != nil {
			return err
		}

		err = a.sentences.UpdateDraft(ctx, projectID, occ.SentenceID, newDraft, newMeta, sent.Version)
		if err == nil {
			return nil
		}
		if !apperrors.IsConflict(err) {
			return err
		}
		log.Warn().Int64("sentenceID", occ.SentenceID).Int("attempt", attempt).Msg("draft update conflict, retrying")
		lastErr = err
	}
	return lastErr
}

// Progress is the confirmed/suggestion/untranslated breakdown over a
// sentence set, as fractions of the filtered total source length.
type Progress struct {
	Confirmed    float64
	Suggestion   float64
	Untranslated float64
}

// ComputeProgress implements spec.md §4.8's progress metric: sum srcRange
// lengths per status across sentences, ignoring segments of srcLen <= 1
// (whitespace/punctuation remnants), and return each status's fraction of
// the filtered total.
func ComputeProgress(sentences []model.Sentence) Progress {
	var confirmed, suggestion, untranslated, total int

	for _, sent := range sentences {
		for _, seg := range sent.DraftMeta {
			length := seg.Src.Len()
			if length <= 1 {
				continue
			}
			total += length
			switch seg.Status {
			case model.Confirmed:
				confirmed += length
			case model.Suggestion:
				suggestion += length
			default:
				untranslated += length
			}
		}
	}

	if total == 0 {
		return Progress{}
	}
	return Progress{
		Confirmed:    float64(confirmed) / float64(total),
		Suggestion:   float64(suggestion) / float64(total),
		Untranslated: float64(untranslated) / float64(total),
	}
}

// ConfirmAllSuggestions retags every Suggestion segment across sentences as
// Confirmed and persists each changed sentence (spec.md §4.9's bulk
// "confirm all suggestions" operation).
func (a *Aggregator) ConfirmAllSuggestions(ctx context.Context, projectID int, sentences []model.Sentence) error {
	for _, sent := range sentences {
		hasSuggestion := false
		for _, seg := range sent.DraftMeta {
			if seg.Status == model.Suggestion {
				hasSuggestion = true
				break
			}
		}
		if !hasSuggestion {
			continue
		}

		newMeta := draft.ConfirmAllSuggestions(sent.DraftMeta)
		if err := a.sentences.UpdateDraft(ctx, projectID, sent.SentenceID, sent.Draft, newMeta, sent.Version); err != nil {
			return err
		}
	}
	return nil
}
