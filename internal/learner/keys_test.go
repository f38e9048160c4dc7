package learner

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormTrieKeys_LongestOnly(t *testing.T) {
	keys := FormTrieKeys("b", []string{"a"}, []string{"c"}, true)
	sort.Strings(keys)
	want := []string{"b/L:a/R:c", "b/R:c/L:a"}
	sort.Strings(want)
	assert.Equal(t, want, keys)
}

func TestFormTrieKeys_LookupModeSortedByDepthDescending(t *testing.T) {
	keys := FormTrieKeys("b", []string{"a"}, []string{"c"}, false)
	require := assert.New(t)
	require.Equal("b/L:a/R:c", keys[0])
	require.Equal(keys[len(keys)-1], "b")
}

func TestFormTrieKeys_Symmetry(t *testing.T) {
	// form_trie_keys(token, L, R) in longest-only mode yields the same set
	// (after relabeling L<->R) as form_trie_keys(token, R, L).
	forward := FormTrieKeys("tok", []string{"a", "b"}, []string{"c", "d"}, true)
	backward := FormTrieKeys("tok", []string{"c", "d"}, []string{"a", "b"}, true)

	relabel := func(keys []string) []string {
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = swapLR(k)
		}
		sort.Strings(out)
		return out
	}

	sort.Strings(forward)
	assert.Equal(t, relabel(backward), forward)
}

// swapLR exchanges every "/L:" and "/R:" marker in a trie key, the
// relabeling spec.md's key-enumeration symmetry property describes.
func swapLR(key string) string {
	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '/' && i+2 < len(key) && key[i+1] == 'L' && key[i+2] == ':' {
			out = append(out, '/', 'R', ':')
			i += 2
			continue
		}
		if key[i] == '/' && i+2 < len(key) && key[i+1] == 'R' && key[i+2] == ':' {
			out = append(out, '/', 'L', ':')
			i += 2
			continue
		}
		out = append(out, key[i])
	}
	return string(out)
}
