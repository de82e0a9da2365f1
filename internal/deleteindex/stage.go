package deleteindex

// node is an arena entry: a handle plus the index of the prior node that
// shares its hash (head-insertion linked list).
type node[H comparable] struct {
	handle H
	next   int
}

type bucketEntry struct {
	count int
	first int
}

// Stage is a bulk-build accelerator for Index. During a large dictionary
// load, many keys expand to overlapping hashes; accumulating them in an
// append-only node arena with intrusive linked lists avoids repeated
// rehashing and slice growth until a single batched Commit.
type Stage[H comparable] struct {
	entries map[int32]bucketEntry
	nodes   []node[H]
}

// NewStage creates a Stage sized for approximately initialCapacity
// distinct hashes.
func NewStage[H comparable](initialCapacity int) *Stage[H] {
	return &Stage[H]{
		entries: make(map[int32]bucketEntry, initialCapacity),
	}
}

// DeleteCount returns the number of distinct hashes staged.
func (s *Stage[H]) DeleteCount() int {
	return len(s.entries)
}

// NodeCount returns the total number of handles staged across all
// hashes.
func (s *Stage[H]) NodeCount() int {
	return len(s.nodes)
}

// Clear empties the stage, releasing its node arena.
func (s *Stage[H]) Clear() {
	s.entries = make(map[int32]bucketEntry)
	s.nodes = nil
}

// Add records handle under hash, to be committed later.
func (s *Stage[H]) Add(hash int32, handle H) {
	e, ok := s.entries[hash]
	if !ok {
		e = bucketEntry{first: -1}
	}
	next := e.first
	e.count++
	e.first = len(s.nodes)
	s.entries[hash] = e
	s.nodes = append(s.nodes, node[H]{handle: handle, next: next})
}

// Commit walks every staged hash's linked list and appends its handles
// into target, reserving bucket capacity up front, then empties the
// stage.
func (s *Stage[H]) Commit(target *Index[H]) {
	for hash, e := range s.entries {
		target.reserve(hash, e.count)
		for next := e.first; next >= 0; {
			n := s.nodes[next]
			target.Insert(hash, n.handle)
			next = n.next
		}
	}
	s.Clear()
}
