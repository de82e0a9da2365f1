package editsexpander

import "testing"

func TestExpandIncludesPrefixAndEmpty(t *testing.T) {
	edits := Expand("to", 2, 7)
	if !edits.Contains("to") {
		t.Errorf("expected prefix %q in edits", "to")
	}
	if !edits.Contains("") {
		t.Errorf("expected empty string in edits for a word no longer than maxEditDistance")
	}
}

func TestExpandTruncatesToPrefixLength(t *testing.T) {
	edits := Expand("abcdefghij", 2, 7)
	if edits.Contains("abcdefghij") {
		t.Errorf("expected the full word to be truncated to prefixLength before expansion")
	}
	if !edits.Contains("abcdefg") {
		t.Errorf("expected the 7-char prefix in edits")
	}
}

func TestExpandSingleDeleteActuallyDeletes(t *testing.T) {
	edits := Expand("cat", 1, 7)
	want := []string{"cat", "at", "ct", "ca"}
	for _, w := range want {
		if !edits.Contains(w) {
			t.Errorf("Expand(%q, 1, 7) missing %q, got %v", "cat", w, edits.ToSlice())
		}
	}
	if edits.Contains("") {
		t.Errorf("word longer than maxEditDistance should not produce the empty delete")
	}
}

func TestExpandDepthBound(t *testing.T) {
	// "abcd" with maxEditDistance=2 should reach 2-character deletes but
	// never delete down to a single character (that would be edit distance 3).
	edits := Expand("abcd", 2, 7)
	for _, s := range edits.ToSlice() {
		if len(s) < len("abcd")-2 {
			t.Errorf("Expand produced %q, deeper than maxEditDistance=2 allows", s)
		}
	}
}

func TestExpandDedupesAcrossPaths(t *testing.T) {
	// "aaa" deleting any of its three positions yields the same "aa" (and
	// "aa" in turn the same single "a"), so the set must not contain it twice (sets can't, but recursion
	// must not double-recurse past it either way -- this just documents
	// the invariant and would fail if Expand panicked on reentrant adds).
	edits := Expand("aaa", 2, 7)
	if edits.Cardinality() == 0 {
		t.Fatalf("expected a non-empty edit set")
	}
}
