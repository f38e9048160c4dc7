package export

import (
	"fmt"
	"sort"
	"strings"

	apperrors "github.com/vachan-cat/cattrans/internal/errors"
	"github.com/vachan-cat/cattrans/internal/model"
)

// BookCodeLookup resolves a Bible book number (1-66) to its USFM book code.
type BookCodeLookup func(bookNumber int) (string, error)

// USFM implements spec.md §6's USFM export: one file per book, sentences
// sorted by sentenceId, a fresh "\id" whenever the book number changes and
// a fresh "\c N\n\p\n" whenever the chapter changes. sentenceId outside
// [MinBibleSentenceID, MaxBibleSentenceID] is a TypeError-class failure.
func USFM(sentences []model.Sentence, bookCode BookCodeLookup) (map[int]string, error) {
	sorted := make([]model.Sentence, len(sentences))
	copy(sorted, sentences)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].SentenceID < sorted[j].SentenceID })

	out := make(map[int]string)
	var sb strings.Builder
	currentBook, currentChapter := -1, -1

	for _, sent := range sorted {
		book, chapter, verse, err := decomposeSentenceID(sent.SentenceID)
		if err != nil {
			return nil, err
		}

		if book != currentBook {
			if currentBook != -1 {
				out[currentBook] = sb.String()
			}
			sb.Reset()
			code, err := bookCode(book)
			if err != nil {
				return nil, err
			}
			sb.WriteString("\\id " + code + "\n")
			currentBook = book
			currentChapter = -1
		}

		if chapter != currentChapter {
			sb.WriteString(fmt.Sprintf("\\c %d\n\\p\n", chapter))
			currentChapter = chapter
		}

		sb.WriteString(fmt.Sprintf("\\v %d %s", verse, sent.Draft))
	}
	if currentBook != -1 {
		out[currentBook] = sb.String()
	}
	return out, nil
}

func decomposeSentenceID(id int64) (book, chapter, verse int, err error) {
	if id < model.MinBibleSentenceID || id > model.MaxBibleSentenceID {
		return 0, 0, 0, apperrors.New(apperrors.CodeInvalidArg,
			fmt.Sprintf("sentenceId %d outside Bible range [%d, %d]", id, model.MinBibleSentenceID, model.MaxBibleSentenceID))
	}
	book = int(id / 1_000_000)
	chapter = int((id / 1_000) % 1_000)
	verse = int(id % 1_000)
	return book, chapter, verse, nil
}
