// Package editsexpander enumerates the deletes symspell precomputes for a
// dictionary key: every distinct substring obtained by deleting up to
// maxEditDistance characters from a length-capped prefix of the key.
package editsexpander

import mapset "github.com/deckarep/golang-set/v2"

// Expand returns the set of deletes for key under the given
// maxEditDistance and prefixLength, including the key's own (possibly
// truncated) prefix and, when key is short enough, the empty string.
func Expand(key string, maxEditDistance, prefixLength int) mapset.Set[string] {
	edits := mapset.NewSet[string]()

	if len(key) <= maxEditDistance {
		edits.Add("")
	}

	prefix := key
	if len(prefix) > prefixLength {
		prefix = prefix[:prefixLength]
	}
	edits.Add(prefix)

	expand(prefix, 0, maxEditDistance, edits)
	return edits
}

// expand recursively deletes one character at a time from word, adding
// each distinct result to deleteWords, until editDistance reaches
// maxEditDistance.
func expand(word string, editDistance, maxEditDistance int, deleteWords mapset.Set[string]) {
	editDistance++
	if len(word) <= 1 {
		return
	}

	for i := 0; i < len(word); i++ {
		del := word[:i] + word[i+1:]
		if deleteWords.Add(del) && editDistance < maxEditDistance {
			expand(del, editDistance, maxEditDistance, deleteWords)
		}
	}
}
