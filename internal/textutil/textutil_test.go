package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUnicode_NFC(t *testing.T) {
	decomposed := "é" // "e" + combining acute accent
	assert.Equal(t, "é", NormalizeUnicode(decomposed))
}

func TestCollapseNewlines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single newline", "abc\ndef", "abc def"},
		{"crlf run", "abc\r\n\r\ndef", "abc def"},
		{"no newline", "abc def", "abc def"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CollapseNewlines(tc.in))
		})
	}
}

func TestStripRunes(t *testing.T) {
	set := PunctuationAndNumberSet(nil)
	assert.Equal(t, "abc def", StripRunes("abc, def!", set))
}

func TestSplitOnPunctuation(t *testing.T) {
	set := PunctuationAndNumberSet(nil)
	got := SplitOnPunctuation("जीवन के वचन को देखो.", set)
	assert.Equal(t, []string{"जीवन के वचन को देखो"}, got)
}

func TestSplitOnPunctuation_MultipleChunks(t *testing.T) {
	set := PunctuationAndNumberSet(nil)
	got := SplitOnPunctuation("abc, def. ghi", set)
	assert.Equal(t, []string{"abc", "def", "ghi"}, got)
}
