package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vachan-cat/cattrans/internal/model"
	"github.com/vachan-cat/cattrans/internal/trie"
)

func stopwords() model.Stopwords {
	return model.NewStopwords([]string{"के"}, []string{"को"})
}

func TestTokenize_FreshSentence(t *testing.T) {
	sentences := []SentenceInput{{SentenceID: 1, Text: "जीवन के वचन को देखो"}}
	opts := Options{
		UseMemory:        false,
		IncludePhrases:   true,
		IncludeStopwords: false,
		Stopwords:        stopwords(),
	}

	tokens, err := Tokenize(sentences, nil, opts)
	require.NoError(t, err)

	_, ok := tokens["जीवन के वचन को"]
	assert.True(t, ok)
	_, ok = tokens["देखो"]
	assert.True(t, ok)
}

func TestTokenize_MemoryTrieMatch(t *testing.T) {
	memory := trie.NewMemoryTrie([]string{"जीवन के वचन"})
	sentences := []SentenceInput{{SentenceID: 1, Text: "जीवन के वचन को देखो"}}
	opts := Options{
		UseMemory:        true,
		IncludePhrases:   true,
		IncludeStopwords: false,
		Stopwords:        stopwords(),
	}

	tokens, err := Tokenize(sentences, memory, opts)
	require.NoError(t, err)

	_, ok := tokens["जीवन के वचन"]
	assert.True(t, ok, "expected the memory-trie phrase to be consumed whole")
	_, ok = tokens["को देखो"]
	assert.True(t, ok)
}

func TestTokenize_OffsetRoundTrip(t *testing.T) {
	sentences := []SentenceInput{{SentenceID: 1, Text: "abc def ghi"}}
	opts := DefaultOptions(model.NewStopwords(nil, nil))

	tokens, err := Tokenize(sentences, nil, opts)
	require.NoError(t, err)

	for token, info := range tokens {
		for _, occ := range info.Occurrences {
			assert.Equal(t, token, sentences[0].Text[occ.Start:occ.End])
		}
	}
}

func TestTokenize_IncludeStopwordsFalseDropsBareStopword(t *testing.T) {
	sentences := []SentenceInput{{SentenceID: 1, Text: "को"}}
	opts := Options{
		IncludePhrases:   true,
		IncludeStopwords: false,
		Stopwords:        stopwords(),
	}

	tokens, err := Tokenize(sentences, nil, opts)
	require.NoError(t, err)
	assert.Empty(t, tokens)
}
