package suggestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vachan-cat/cattrans/internal/autotranslate"
	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/trie"
)

type fakeTRMemory struct {
	bySrcLang map[string][]*model.TranslationMemoryRow
}

func (f *fakeTRMemory) Upsert(ctx context.Context, srcLang, trgLang, token, translation string, occurrenceCount int) error {
	return nil
}
func (f *fakeTRMemory) GetByKey(ctx context.Context, srcLang, trgLang, token string) (*model.TranslationMemoryRow, error) {
	return nil, apperrors.New(apperrors.CodeNotFound, "not found")
}
func (f *fakeTRMemory) ListBySrcLang(ctx context.Context, srcLang string) ([]*model.TranslationMemoryRow, error) {
	return f.bySrcLang[srcLang], nil
}

func TestRecordConfirmedThenRebuildThenSuggest(t *testing.T) {
	root := t.TempDir()
	svc := New(root, trie.NewCache(), &fakeTRMemory{})
	ctx := context.Background()

	draft := "In the beginning God बनाया"
	confirmed := []model.Sentence{
		{
			SentenceID: 1001001,
			Sentence:   "In the beginning God created",
			Draft:      draft,
			DraftMeta: model.Meta{
				{Src: model.Range{Start: 0, End: 21}, Dst: model.Range{Start: 0, End: 21}, Status: model.Untranslated},
				{Src: model.Range{Start: 21, End: 28}, Dst: model.Range{Start: 21, End: len(draft)}, Status: model.Confirmed},
			},
		},
	}

	require.NoError(t, svc.RecordConfirmed(ctx, "en", "hi", confirmed, 5, nil))
	require.NoError(t, svc.Rebuild(ctx, "en", "hi"))

	ranked, err := svc.Suggest(ctx, "en", "hi", 0, []string{"created"})
	require.NoError(t, err)
	assert.NotNil(t, ranked)
}

func TestAutoTranslate_RebuildsMemoryTrieFromRepository(t *testing.T) {
	root := t.TempDir()
	trmem := &fakeTRMemory{bySrcLang: map[string][]*model.TranslationMemoryRow{
		"en": {{SrcLang: "en", Token: "good morning"}},
	}}
	svc := New(root, trie.NewCache(), trmem)
	ctx := context.Background()

	sentences := []model.Sentence{{SentenceID: 1001001, Sentence: "good morning friend"}}

	out, err := svc.AutoTranslate(ctx, "en", "hi", sentences, autotranslate.Options{UseMemory: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	// no suggestion trie exists yet, so the draft is only seeded, but the
	// call must not fail merely because UseMemory asked for a phrase rebuild.
	assert.Equal(t, "good morning friend", out[0].Draft)
}
