package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vachan-cat/cattrans/internal/trie"
)

func TestTrieSnapshot_WriteAndRead(t *testing.T) {
	root := t.TempDir()

	built := trie.NewSuggestionTrie()
	built.Add("created", "बनाया", 2)
	built.Add("created/L:God", "बनाया", 1)

	require.NoError(t, WriteTrieSnapshot(root, "en", "hi", built))

	loaded, err := ReadTrieSnapshot(root, "en", "hi")
	require.NoError(t, err)
	assert.Equal(t, built.Snapshot(), loaded.Snapshot())

	_, statErr := os.Stat(filepath.Join(root, "en-hi.json.tmp"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadTrieSnapshot_MissingFileIsEmpty(t *testing.T) {
	root := t.TempDir()
	loaded, err := ReadTrieSnapshot(root, "en", "hi")
	require.NoError(t, err)
	assert.Empty(t, loaded.Snapshot())
}
