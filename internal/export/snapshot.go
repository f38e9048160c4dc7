package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vachan-cat/cattrans/internal/trie"
)

// snapshotPath builds <root>/<src>-<trg>.json (spec.md §6).
func snapshotPath(root, srcCode, trgCode string) string {
	return filepath.Join(root, fmt.Sprintf("%s-%s.json", srcCode, trgCode))
}

// WriteTrieSnapshot persists t's key -> Weights map to
// <root>/<src>-<trg>.json, writing to a temp file and renaming it into
// place so a crash mid-rebuild never leaves a partial snapshot on disk
// (spec.md §5).
func WriteTrieSnapshot(root, srcCode, trgCode string, t *trie.SuggestionTrie) error {
	path := snapshotPath(root, srcCode, trgCode)
	tmp := path + ".tmp"

	data, err := json.Marshal(t.Snapshot())
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ReadTrieSnapshot loads <root>/<src>-<trg>.json into a SuggestionTrie. A
// missing file returns an empty trie rather than an error, matching the
// "no snapshot yet for this pair" lazy-load path (spec.md §4.7 step 1).
func ReadTrieSnapshot(root, srcCode, trgCode string) (*trie.SuggestionTrie, error) {
	path := snapshotPath(root, srcCode, trgCode)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return trie.NewSuggestionTrie(), nil
	}
	if err != nil {
		return nil, err
	}

	var snapshot map[string]trie.Weights
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return trie.FromSnapshot(snapshot), nil
}
