// Package deleteindex maps a PrefixHash value to the dictionary-entry
// handles whose delete set produced that hash. It holds back-references
// only: the Dictionary owns the entries themselves.
package deleteindex

// Index is a hash bucket -> handle list map. H is typically a dictionary
// handle (an arena index plus a generation tag); the index never
// dereferences H, it only stores and returns it.
type Index[H comparable] struct {
	buckets map[int32][]H
}

// New creates an empty Index.
func New[H comparable]() *Index[H] {
	return &Index[H]{buckets: make(map[int32][]H)}
}

// Insert appends handle to the bucket for hash. Duplicate hashes across
// different handles are expected and allowed; this does not dedupe.
func (x *Index[H]) Insert(hash int32, handle H) {
	x.buckets[hash] = append(x.buckets[hash], handle)
}

// Remove deletes the single occurrence of handle from hash's bucket,
// dropping the bucket entirely if it becomes empty. Reports whether a
// matching entry was found.
func (x *Index[H]) Remove(hash int32, handle H) bool {
	bucket, ok := x.buckets[hash]
	if !ok {
		return false
	}
	for i, h := range bucket {
		if h == handle {
			bucket = append(bucket[:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(x.buckets, hash)
			} else {
				x.buckets[hash] = bucket
			}
			return true
		}
	}
	return false
}

// Get returns the handle list for hash, or nil if the bucket is empty.
// The returned slice must be treated as read-only by callers.
func (x *Index[H]) Get(hash int32) []H {
	return x.buckets[hash]
}

// BucketCount returns the number of distinct hashes with a non-empty
// bucket.
func (x *Index[H]) BucketCount() int {
	return len(x.buckets)
}

// Buckets iterates every non-empty hash bucket, for snapshotting the
// index to a serialized format.
func (x *Index[H]) Buckets(yield func(hash int32, handles []H) bool) {
	for h, list := range x.buckets {
		if !yield(h, list) {
			return
		}
	}
}

// reserve grows the bucket for hash to hold at least n additional
// handles before any are appended, avoiding repeated slice growth during
// a bulk Stage.Commit.
func (x *Index[H]) reserve(hash int32, n int) {
	existing := x.buckets[hash]
	grown := make([]H, len(existing), len(existing)+n)
	copy(grown, existing)
	x.buckets[hash] = grown
}
