package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vachan-cat/cattrans/internal/model"
)

func TestReplaceToken_SameLength(t *testing.T) {
	source := "abc def ghi"
	meta := model.Meta{{Src: model.Range{Start: 0, End: 11}, Dst: model.Range{Start: 0, End: 11}, Status: model.Untranslated}}

	newDraft, newMeta, err := ReplaceToken(source, 4, 7, "XYZ", source, meta, model.Confirmed)
	require.NoError(t, err)

	assert.Equal(t, "abc XYZ ghi", newDraft)
	require.Len(t, newMeta, 3)
	assert.Equal(t, model.Range{Start: 0, End: 4}, newMeta[0].Src)
	assert.Equal(t, model.Range{Start: 0, End: 4}, newMeta[0].Dst)
	assert.Equal(t, model.Untranslated, newMeta[0].Status)
	assert.Equal(t, model.Range{Start: 4, End: 7}, newMeta[1].Src)
	assert.Equal(t, model.Range{Start: 4, End: 7}, newMeta[1].Dst)
	assert.Equal(t, model.Confirmed, newMeta[1].Status)
	assert.Equal(t, model.Range{Start: 7, End: 11}, newMeta[2].Src)
	assert.Equal(t, model.Range{Start: 7, End: 11}, newMeta[2].Dst)
	assert.Equal(t, model.Untranslated, newMeta[2].Status)
}

func TestReplaceToken_LengthChange(t *testing.T) {
	source := "abc def ghi"
	meta := model.Meta{{Src: model.Range{Start: 0, End: 11}, Dst: model.Range{Start: 0, End: 11}, Status: model.Untranslated}}

	newDraft, newMeta, err := ReplaceToken(source, 4, 7, "WORD", source, meta, model.Confirmed)
	require.NoError(t, err)

	assert.Equal(t, "abc WORD ghi", newDraft)
	require.Len(t, newMeta, 3)
	assert.Equal(t, model.Range{Start: 0, End: 4}, newMeta[0].Dst)
	assert.Equal(t, model.Range{Start: 4, End: 8}, newMeta[1].Dst)
	assert.Equal(t, model.Range{Start: 8, End: 12}, newMeta[2].Dst)
}

func TestReplaceToken_LocalityOfUntouchedSegments(t *testing.T) {
	source := "abc def ghi"
	draft := "abc def ghi"
	meta := model.Meta{
		{Src: model.Range{Start: 0, End: 4}, Dst: model.Range{Start: 0, End: 4}, Status: model.Confirmed},
		{Src: model.Range{Start: 4, End: 7}, Dst: model.Range{Start: 4, End: 7}, Status: model.Untranslated},
		{Src: model.Range{Start: 7, End: 11}, Dst: model.Range{Start: 7, End: 11}, Status: model.Untranslated},
	}

	newDraft, newMeta, err := ReplaceToken(source, 4, 7, "X", draft, meta, model.Suggestion)
	require.NoError(t, err)

	// segment before the edit point is untouched byte-for-byte
	assert.Equal(t, meta[0], newMeta[0])
	// dst offsets after the edit point are shifted by the width delta (-2)
	assert.Equal(t, "abc X ghi", newDraft)
	assert.Equal(t, model.Range{Start: 5, End: 9}, newMeta[2].Dst)
}

func TestReplaceToken_NoopPreservesCoverage(t *testing.T) {
	source := "abc def ghi"
	meta := model.Meta{{Src: model.Range{Start: 0, End: 11}, Dst: model.Range{Start: 0, End: 11}, Status: model.Untranslated}}

	newDraft, newMeta, err := ReplaceToken(source, 4, 7, "def", source, meta, model.Confirmed)
	require.NoError(t, err)

	assert.Equal(t, source, newDraft)
	var coveredSrc, coveredDst int
	for _, seg := range newMeta {
		assert.Equal(t, coveredSrc, seg.Src.Start)
		coveredSrc = seg.Src.End
		assert.Equal(t, coveredDst, seg.Dst.Start)
		coveredDst = seg.Dst.End
	}
	assert.Equal(t, len(source), coveredSrc)
	assert.Equal(t, len(newDraft), coveredDst)
}

func TestReplaceToken_OutOfRangeOffset(t *testing.T) {
	source := "abc"
	meta := model.FreshMeta(3)
	_, _, err := ReplaceToken(source, 2, 10, "X", source, meta, model.Confirmed)
	require.Error(t, err)
}

func TestReplaceToken_OffsetSpansMultipleSegments(t *testing.T) {
	source := "abc def"
	meta := model.Meta{
		{Src: model.Range{Start: 0, End: 3}, Dst: model.Range{Start: 0, End: 3}, Status: model.Untranslated},
		{Src: model.Range{Start: 3, End: 7}, Dst: model.Range{Start: 3, End: 7}, Status: model.Untranslated},
	}
	_, _, err := ReplaceToken(source, 2, 5, "X", source, meta, model.Confirmed)
	require.Error(t, err)
}

func TestConfirmAllSuggestions(t *testing.T) {
	meta := model.Meta{
		{Status: model.Untranslated},
		{Status: model.Suggestion},
		{Status: model.Confirmed},
	}
	out := ConfirmAllSuggestions(meta)
	assert.Equal(t, model.Untranslated, out[0].Status)
	assert.Equal(t, model.Confirmed, out[1].Status)
	assert.Equal(t, model.Confirmed, out[2].Status)
}
