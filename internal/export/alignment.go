package export

import (
	"github.com/vachan-cat/cattrans/internal/model"
)

// ResourceMeta names one side of an alignment export (spec.md §6).
type ResourceMeta struct {
	LangCode string `json:"langCode"`
	Name     string `json:"name"`
}

// SegmentResource is one sentence's view from one side (source or target).
type SegmentResource struct {
	Text     string         `json:"text"`
	Tokens   []string       `json:"tokens"`
	Metadata map[string]any `json:"metadata"`
}

// Alignment is one draft-meta segment rendered as a token-index alignment.
type Alignment struct {
	R0       []int   `json:"r0"`
	R1       []int   `json:"r1"`
	Status   string  `json:"status"`
	Score    float64 `json:"score"`
	Verified bool    `json:"verified"`
}

// AlignmentSegment bundles one sentence's two-sided view with its alignments.
type AlignmentSegment struct {
	Resources  map[string]SegmentResource `json:"resources"`
	Alignments []Alignment                `json:"alignments"`
}

// AlignmentMetadata carries the two resources' descriptors and the export
// timestamp (caller-supplied, since this package may not call time.Now()
// inside deterministic code paths).
type AlignmentMetadata struct {
	Resources map[string]ResourceMeta `json:"resources"`
	Modified  int64                   `json:"modified"`
}

// AlignmentExport is the full JSON alignment export document (spec.md §6).
type AlignmentExport struct {
	Metadata AlignmentMetadata  `json:"metadata"`
	Segments []AlignmentSegment `json:"segments"`
}

// scoreFor maps a segment Status to the alignment's (score, verified) pair.
func scoreFor(status model.Status) (float64, bool) {
	switch status {
	case model.Confirmed:
		return 1, true
	case model.Suggestion:
		return 0.5, false
	default:
		return 0, false
	}
}

// BuildAlignment builds the JSON alignment export for a batch of sentences.
func BuildAlignment(sentences []model.Sentence, srcLangCode, srcName, trgLangCode, trgName string, modified int64) AlignmentExport {
	doc := AlignmentExport{
		Metadata: AlignmentMetadata{
			Resources: map[string]ResourceMeta{
				"r0": {LangCode: srcLangCode, Name: srcName},
				"r1": {LangCode: trgLangCode, Name: trgName},
			},
			Modified: modified,
		},
	}

	for _, sent := range sentences {
		contextID := sent.SurrogateID

		r0 := SegmentResource{Text: sent.Sentence, Metadata: map[string]any{"contextId": contextID}}
		r1 := SegmentResource{Text: sent.Draft, Metadata: map[string]any{"contextId": contextID}}

		var alignments []Alignment
		for i, seg := range sent.DraftMeta {
			r0.Tokens = append(r0.Tokens, sent.Sentence[seg.Src.Start:seg.Src.End])
			r1.Tokens = append(r1.Tokens, sent.Draft[seg.Dst.Start:seg.Dst.End])

			score, verified := scoreFor(seg.Status)
			alignments = append(alignments, Alignment{
				R0:       []int{i},
				R1:       []int{i},
				Status:   seg.Status.String(),
				Score:    score,
				Verified: verified,
			})
		}

		doc.Segments = append(doc.Segments, AlignmentSegment{
			Resources: map[string]SegmentResource{
				"r0": r0,
				"r1": r1,
			},
			Alignments: alignments,
		})
	}

	return doc
}
