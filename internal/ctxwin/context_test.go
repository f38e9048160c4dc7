package ctxwin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_SymmetricWindow(t *testing.T) {
	sentence := "one two three four five"
	// "three" occupies [8,13)
	idx, window := Extract("three", 8, 13, sentence, 4, nil)
	assert.Equal(t, 2, idx)
	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, window[:5])
}

func TestExtract_TruncatesToWindowSize(t *testing.T) {
	sentence := "a b c d e f g"
	// "d" occupies [6,7)
	idx, window := Extract("d", 6, 7, sentence, 2, nil)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{"c", "d", "e"}, window)
}

func TestExtract_StripsPunctuation(t *testing.T) {
	sentence := "hello, world! foo"
	punct := map[rune]struct{}{',': {}, '!': {}}
	// "world" occupies [7,12)
	idx, window := Extract("world", 7, 12, sentence, 4, punct)
	assert.Equal(t, 1, idx)
	assert.Equal(t, []string{"hello", "world", "foo"}, window)
}

func TestExtract_DefaultWindowWhenNonPositive(t *testing.T) {
	sentence := "a b c d e f g h"
	idx1, window1 := Extract("d", 6, 7, sentence, 0, nil)
	idx2, window2 := Extract("d", 6, 7, sentence, DefaultWindow, nil)
	assert.Equal(t, idx2, idx1)
	assert.Equal(t, window2, window1)
}
