package deleteindex

import "testing"

func TestInsertGetRemove(t *testing.T) {
	idx := New[string]()
	idx.Insert(1, "apple")
	idx.Insert(1, "ample")
	idx.Insert(2, "example")

	got := idx.Get(1)
	if len(got) != 2 {
		t.Fatalf("Get(1) = %v, want 2 entries", got)
	}

	if !idx.Remove(1, "apple") {
		t.Fatalf("Remove(1, apple) = false, want true")
	}
	got = idx.Get(1)
	if len(got) != 1 || got[0] != "ample" {
		t.Fatalf("Get(1) after remove = %v, want [ample]", got)
	}

	if idx.Remove(1, "not-there") {
		t.Fatalf("Remove of absent handle should report false")
	}
}

func TestRemoveDropsEmptyBucket(t *testing.T) {
	idx := New[string]()
	idx.Insert(5, "only")
	idx.Remove(5, "only")
	if idx.BucketCount() != 0 {
		t.Fatalf("BucketCount() = %d after removing last entry, want 0", idx.BucketCount())
	}
	if got := idx.Get(5); got != nil {
		t.Fatalf("Get(5) = %v after bucket emptied, want nil", got)
	}
}

func TestStageCommitMatchesDirectInsert(t *testing.T) {
	direct := New[string]()
	direct.Insert(1, "a")
	direct.Insert(1, "b")
	direct.Insert(2, "c")

	stage := NewStage[string](4)
	stage.Add(1, "a")
	stage.Add(1, "b")
	stage.Add(2, "c")
	staged := New[string]()
	stage.Commit(staged)

	for _, hash := range []int32{1, 2} {
		want := toSet(direct.Get(hash))
		got := toSet(staged.Get(hash))
		if len(want) != len(got) {
			t.Fatalf("hash %d: got %v, want %v", hash, got, want)
		}
		for k := range want {
			if !got[k] {
				t.Fatalf("hash %d: missing %q in staged result %v", hash, k, got)
			}
		}
	}
}

func TestStageClearsAfterCommit(t *testing.T) {
	stage := NewStage[string](4)
	stage.Add(1, "a")
	target := New[string]()
	stage.Commit(target)

	if stage.DeleteCount() != 0 || stage.NodeCount() != 0 {
		t.Fatalf("stage not cleared after commit: deletes=%d nodes=%d", stage.DeleteCount(), stage.NodeCount())
	}
}

func TestStageCommitAppendsToExistingBucket(t *testing.T) {
	target := New[string]()
	target.Insert(1, "preexisting")

	stage := NewStage[string](4)
	stage.Add(1, "new")
	stage.Commit(target)

	got := toSet(target.Get(1))
	if !got["preexisting"] || !got["new"] {
		t.Fatalf("Commit should append to existing bucket contents, got %v", target.Get(1))
	}
}

func toSet(s []string) map[string]bool {
	m := make(map[string]bool, len(s))
	for _, v := range s {
		m[v] = true
	}
	return m
}
