package aggregator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

type fakeSentences struct {
	byID map[int64]*model.Sentence
}

func (f *fakeSentences) BulkInsert(ctx context.Context, projectID int, sentences []*model.Sentence) (int64, error) {
	return 0, nil
}

func (f *fakeSentences) GetByID(ctx context.Context, projectID int, sentenceID int64) (*model.Sentence, error) {
	s, ok := f.byID[sentenceID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeNotFound, "not found")
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSentences) ListByProject(ctx context.Context, projectID int) ([]*model.Sentence, error) {
	var out []*model.Sentence
	for _, s := range f.byID {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSentences) ListByIDRange(ctx context.Context, projectID int, minID, maxID int64) ([]*model.Sentence, error) {
	return nil, nil
}

func (f *fakeSentences) UpdateDraft(ctx context.Context, projectID int, sentenceID int64, draft string, meta model.Meta, expectedVersion int) error {
	s, ok := f.byID[sentenceID]
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "not found")
	}
	if s.Version != expectedVersion {
		return apperrors.New(apperrors.CodeConflict, "version mismatch")
	}
	s.Draft = draft
	s.DraftMeta = meta
	s.Version++
	return nil
}

type fakeTRMemory struct {
	upserts []TokenTranslation
}

func (f *fakeTRMemory) Upsert(ctx context.Context, srcLang, trgLang, token, translation string, occurrenceCount int) error {
	f.upserts = append(f.upserts, TokenTranslation{Token: token, Translation: translation})
	return nil
}

func (f *fakeTRMemory) GetByKey(ctx context.Context, srcLang, trgLang, token string) (*model.TranslationMemoryRow, error) {
	return nil, apperrors.New(apperrors.CodeNotFound, "not found")
}

func (f *fakeTRMemory) ListBySrcLang(ctx context.Context, srcLang string) ([]*model.TranslationMemoryRow, error) {
	return nil, nil
}

func TestApplyTokenTranslations(t *testing.T) {
	sentences := &fakeSentences{byID: map[int64]*model.Sentence{
		1001001: {
			SentenceID: 1001001,
			Sentence:   "abc def ghi",
			Draft:      "abc def ghi",
			DraftMeta:  model.FreshMeta(11),
			Version:    0,
		},
	}}
	trmem := &fakeTRMemory{}
	agg := New(sentences, trmem)

	err := agg.ApplyTokenTranslations(context.Background(), 1, "en", "hi", []TokenTranslation{
		{
			Token:       "def",
			Translation: "XYZ",
			Occurrences: []Occurrence{{SentenceID: 1001001, Start: 4, End: 7}},
		},
	}, true)
	require.NoError(t, err)

	sent := sentences.byID[1001001]
	assert.Equal(t, "abc XYZ ghi", sent.Draft)
	assert.Equal(t, 1, sent.Version)
	require.Len(t, sent.DraftMeta, 3)
	assert.Equal(t, model.Confirmed, sent.DraftMeta[1].Status)

	require.Len(t, trmem.upserts, 1)
	assert.Equal(t, "def", trmem.upserts[0].Token)
}

func TestComputeProgress(t *testing.T) {
	sentences := []model.Sentence{
		{
			DraftMeta: model.Meta{
				{Src: model.Range{Start: 0, End: 4}, Status: model.Confirmed},
				{Src: model.Range{Start: 4, End: 5}, Status: model.Untranslated}, // srcLen 1, ignored
				{Src: model.Range{Start: 5, End: 10}, Status: model.Suggestion},
			},
		},
	}

	progress := ComputeProgress(sentences)
	assert.InDelta(t, 4.0/9.0, progress.Confirmed, 1e-9)
	assert.InDelta(t, 5.0/9.0, progress.Suggestion, 1e-9)
	assert.InDelta(t, 0.0, progress.Untranslated, 1e-9)
}

func TestConfirmAllSuggestions(t *testing.T) {
	sentences := &fakeSentences{byID: map[int64]*model.Sentence{
		1001001: {
			SentenceID: 1001001,
			Sentence:   "abc def",
			Draft:      "abc XYZ",
			DraftMeta: model.Meta{
				{Src: model.Range{Start: 0, End: 4}, Dst: model.Range{Start: 0, End: 4}, Status: model.Untranslated},
				{Src: model.Range{Start: 4, End: 7}, Dst: model.Range{Start: 4, End: 7}, Status: model.Suggestion},
			},
			Version: 0,
		},
	}}
	agg := New(sentences, &fakeTRMemory{})

	list, err := sentences.ListByProject(context.Background(), 1)
	require.NoError(t, err)
	plain := make([]model.Sentence, len(list))
	for i, s := range list {
		plain[i] = *s
	}

	require.NoError(t, agg.ConfirmAllSuggestions(context.Background(), 1, plain))
	assert.Equal(t, model.Confirmed, sentences.byID[1001001].DraftMeta[1].Status)
	assert.Equal(t, 1, sentences.byID[1001001].Version)
}
