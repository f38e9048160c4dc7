package export

import (
	"sort"
	"strings"

	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/textutil"
)

// PlainText implements spec.md §6's plain-text export: sentences sorted by
// sentenceId, drafts joined with a single space, except a newline is used
// instead wherever two consecutive sentenceIds differ by more than one
// (a chapter/book boundary or a gap in the source). A draft not already
// ending in punctuation gets a "." appended before joining.
func PlainText(sentences []model.Sentence) string {
	sorted := make([]model.Sentence, len(sentences))
	copy(sorted, sentences)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SentenceID < sorted[j].SentenceID })

	punct := make(map[rune]struct{})
	for _, r := range textutil.DefaultPunctuations() {
		punct[r] = struct{}{}
	}

	var sb strings.Builder
	var prevID int64
	for i, sent := range sorted {
		draft := sent.Draft
		if draft != "" {
			last := []rune(draft)[len([]rune(draft))-1]
			if _, ok := punct[last]; !ok {
				draft += "."
			}
		}

		if i > 0 {
			if sent.SentenceID-prevID > 1 {
				sb.WriteString("\n")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(draft)
		prevID = sent.SentenceID
	}
	return sb.String()
}
