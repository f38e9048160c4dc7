// Package draft implements the transactional draft/meta editor: given a
// draft string, its meta segmentation, a source token offset, and a
// replacement translation, it returns a new (draft, meta) with offsets
// re-based (spec.md §4.2).
package draft

import (
	"fmt"
	"strings"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

// ReplaceToken is the splicer. It is pure: given the same inputs it always
// returns the same (draft, meta), and any failure is deterministic
// (spec.md §7 "tokenizer/splicer are pure").
//
// The segment of meta whose srcRange contains [tokenStart, tokenEnd) is
// split into up to three parts: a leading untranslated prefix (if the edit
// starts after the segment start), the replacement tagged with tag, and a
// trailing untranslated suffix (if the edit ends before the segment end).
// Every following segment's dst range is shifted by the resulting width
// delta; segments before the edit are copied unchanged.
func ReplaceToken(source string, tokenStart, tokenEnd int, translation string, draft string, meta model.Meta, tag model.Status) (string, model.Meta, error) {
	if tokenStart < 0 || tokenEnd < tokenStart || tokenEnd > len(source) {
		return "", nil, apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("token offset [%d,%d) out of range for source of length %d", tokenStart, tokenEnd, len(source)))
	}

	if len(meta) == 0 {
		draft = source
		meta = model.FreshMeta(len(source))
	}

	idx := -1
	for i, seg := range meta {
		if tokenStart >= seg.Src.Start && tokenEnd <= seg.Src.End {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", nil, apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("token offset [%d,%d) does not fall within a single draft-meta segment", tokenStart, tokenEnd))
	}
	seg := meta[idx]

	var out strings.Builder
	newMeta := make(model.Meta, 0, len(meta)+2)

	for i := 0; i < idx; i++ {
		out.WriteString(draft[meta[i].Dst.Start:meta[i].Dst.End])
		newMeta = append(newMeta, meta[i])
	}

	dstCursor := seg.Dst.Start

	if tokenStart > seg.Src.Start {
		leadLen := tokenStart - seg.Src.Start
		out.WriteString(source[seg.Src.Start:tokenStart])
		newMeta = append(newMeta, model.Segment{
			Src:    model.Range{Start: seg.Src.Start, End: tokenStart},
			Dst:    model.Range{Start: dstCursor, End: dstCursor + leadLen},
			Status: model.Untranslated,
		})
		dstCursor += leadLen
	}

	transStart := dstCursor
	out.WriteString(translation)
	dstCursor += len(translation)
	newMeta = append(newMeta, model.Segment{
		Src:    model.Range{Start: tokenStart, End: tokenEnd},
		Dst:    model.Range{Start: transStart, End: dstCursor},
		Status: tag,
	})

	if tokenEnd < seg.Src.End {
		trailLen := seg.Src.End - tokenEnd
		out.WriteString(source[tokenEnd:seg.Src.End])
		newMeta = append(newMeta, model.Segment{
			Src:    model.Range{Start: tokenEnd, End: seg.Src.End},
			Dst:    model.Range{Start: dstCursor, End: dstCursor + trailLen},
			Status: model.Untranslated,
		})
		dstCursor += trailLen
	}

	offsetDiff := dstCursor - seg.Dst.End

	for i := idx + 1; i < len(meta); i++ {
		m := meta[i]
		out.WriteString(draft[m.Dst.Start:m.Dst.End])
		newMeta = append(newMeta, model.Segment{
			Src:    m.Src,
			Dst:    model.Range{Start: m.Dst.Start + offsetDiff, End: m.Dst.End + offsetDiff},
			Status: m.Status,
		})
	}

	return out.String(), newMeta, nil
}

// ConfirmAllSuggestions retags every Suggestion segment as Confirmed, the
// bulk "confirm all suggestions" operation named in spec.md §4.9.
func ConfirmAllSuggestions(meta model.Meta) model.Meta {
	out := make(model.Meta, len(meta))
	for i, seg := range meta {
		if seg.Status == model.Suggestion {
			seg.Status = model.Confirmed
		}
		out[i] = seg
	}
	return out
}
