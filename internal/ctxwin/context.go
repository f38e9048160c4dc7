// Package ctxwin extracts the left/right word window around a token
// occurrence, used both to train and to query the suggestion trie
// (spec.md §4.3).
package ctxwin

import (
	"strings"

	"github.com/vachan-cat/cattrans/internal/textutil"
)

// DefaultWindow is W in spec.md §4.3/§4.5: up to floor(W/2) left words and
// ceil(W/2) right words.
const DefaultWindow = 5

// Extract returns the token's index within the returned window and the
// window itself: up to floor(w/2) left words (nearest-first order is NOT
// applied here — Extract returns them in left-to-right sentence order, as
// spec.md §4.3 step 5 constructs `front ++ [token] ++ rear`) plus up to
// ceil(w/2) right words, punctuation stripped from both sides.
func Extract(token string, offsetStart, offsetEnd int, sentence string, w int, punctSet map[rune]struct{}) (index int, window []string) {
	if w <= 0 {
		w = DefaultWindow
	}
	front := sentence[:offsetStart]
	rear := sentence[offsetEnd:]
	front = textutil.StripRunes(front, punctSet)
	rear = textutil.StripRunes(rear, punctSet)

	frontWords := strings.Fields(front)
	rearWords := strings.Fields(rear)

	leftN := w / 2
	rightN := (w + 1) / 2

	if len(frontWords) > leftN {
		frontWords = frontWords[len(frontWords)-leftN:]
	}
	if len(rearWords) > rightN {
		rearWords = rearWords[:rightN]
	}

	index = len(frontWords)
	window = make([]string, 0, len(frontWords)+1+len(rearWords))
	window = append(window, frontWords...)
	window = append(window, token)
	window = append(window, rearWords...)
	return index, window
}
