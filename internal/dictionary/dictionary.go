// Package dictionary owns symspell's word storage: an arena of active
// entries whose erased slots are reused by later inserts (exposed via
// stable, generation-tagged handles so a DeleteIndex can hold
// back-references across mutation), a below-count-threshold side table,
// and a bigram table.
package dictionary

import "math"

// Handle stably references an arena slot. Generation changes on Erase so
// a DeleteIndex holding a stale Handle can detect it no longer refers to
// a live entry.
type Handle struct {
	index      uint32
	generation uint32
}

// UpsertOutcome reports what Upsert did to the dictionary.
type UpsertOutcome int

const (
	// Rejected means delta was <= 0 while CountThreshold > 0; no mutation.
	Rejected UpsertOutcome = iota
	// StillBelowThreshold means the key is new and its count remains
	// below CountThreshold.
	StillBelowThreshold
	// AccumulatedInBelowThreshold means an existing below-threshold
	// key's count grew but is still below CountThreshold.
	AccumulatedInBelowThreshold
	// AccumulatedInActive means an existing active key's count grew.
	AccumulatedInActive
	// NewlyActive means the key crossed into the active dictionary for
	// the first time; the caller must now run the delete-index insertion
	// protocol for Handle.
	NewlyActive
)

type entryRecord struct {
	key        string
	count      int64
	generation uint32
	alive      bool
}

// Dictionary holds active entries, below-threshold entries, and bigrams.
// It is the sole owner of entry storage; DeleteIndex only ever holds
// Handles back into it.
type Dictionary struct {
	countThreshold int64

	arena []entryRecord
	byKey map[string]uint32
	free  []uint32

	below map[string]int64

	bigrams        map[string]int64
	bigramCountMin int64

	maxWordLength int
}

// New creates an empty Dictionary with the given count threshold
// (entries accumulate below-threshold bookkeeping only when threshold >
// 1, per the invariant that a threshold of 0 or 1 makes any positive
// count immediately active).
func New(countThreshold int64) *Dictionary {
	return &Dictionary{
		countThreshold: countThreshold,
		byKey:          make(map[string]uint32),
		below:          make(map[string]int64),
		bigrams:        make(map[string]int64),
		bigramCountMin: math.MaxInt64,
	}
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}

// Upsert accumulates delta into key's count, returning the outcome and
// (for NewlyActive) the new stable Handle. Accumulation saturates at
// math.MaxInt64.
func (d *Dictionary) Upsert(key string, delta int64) (UpsertOutcome, Handle) {
	if delta <= 0 {
		if d.countThreshold > 0 {
			return Rejected, Handle{}
		}
		delta = 0
	}

	if d.countThreshold > 1 {
		if c, ok := d.below[key]; ok {
			c2 := saturatingAdd(c, delta)
			if c2 >= d.countThreshold {
				delete(d.below, key)
				return NewlyActive, d.insertActive(key, c2)
			}
			d.below[key] = c2
			return AccumulatedInBelowThreshold, Handle{}
		}

		if idx, ok := d.byKey[key]; ok {
			rec := &d.arena[idx]
			rec.count = saturatingAdd(rec.count, delta)
			return AccumulatedInActive, Handle{index: idx, generation: rec.generation}
		}

		if delta < d.countThreshold {
			d.below[key] = delta
			return StillBelowThreshold, Handle{}
		}

		return NewlyActive, d.insertActive(key, delta)
	}

	if idx, ok := d.byKey[key]; ok {
		rec := &d.arena[idx]
		rec.count = saturatingAdd(rec.count, delta)
		return AccumulatedInActive, Handle{index: idx, generation: rec.generation}
	}
	return NewlyActive, d.insertActive(key, delta)
}

func (d *Dictionary) insertActive(key string, count int64) Handle {
	var idx uint32
	if n := len(d.free); n > 0 {
		idx = d.free[n-1]
		d.free = d.free[:n-1]
		d.arena[idx] = entryRecord{key: key, count: count, generation: d.arena[idx].generation, alive: true}
	} else {
		idx = uint32(len(d.arena))
		d.arena = append(d.arena, entryRecord{key: key, count: count, alive: true})
	}
	d.byKey[key] = idx
	if len(key) > d.maxWordLength {
		d.maxWordLength = len(key)
	}
	return Handle{index: idx, generation: d.arena[idx].generation}
}

// Erase removes key's active entry if present, invalidating its Handle's
// generation. Recomputes MaxWordLength only if the removed key held the
// record.
func (d *Dictionary) Erase(key string) bool {
	idx, ok := d.byKey[key]
	if !ok {
		return false
	}
	rec := &d.arena[idx]
	removedLen := len(rec.key)
	rec.alive = false
	rec.generation++
	rec.key = ""
	rec.count = 0
	delete(d.byKey, key)
	d.free = append(d.free, idx)

	if removedLen == d.maxWordLength {
		d.recomputeMaxWordLength()
	}
	return true
}

func (d *Dictionary) recomputeMaxWordLength() {
	max := 0
	for _, rec := range d.arena {
		if rec.alive && len(rec.key) > max {
			max = len(rec.key)
		}
	}
	d.maxWordLength = max
}

// Get returns the count of an active key.
func (d *Dictionary) Get(key string) (int64, bool) {
	idx, ok := d.byKey[key]
	if !ok {
		return 0, false
	}
	return d.arena[idx].count, true
}

// Resolve returns the key and count for handle if it still refers to a
// live entry.
func (d *Dictionary) Resolve(handle Handle) (key string, count int64, ok bool) {
	if int(handle.index) >= len(d.arena) {
		return "", 0, false
	}
	rec := d.arena[handle.index]
	if !rec.alive || rec.generation != handle.generation {
		return "", 0, false
	}
	return rec.key, rec.count, true
}

// WordCount returns the number of active keys.
func (d *Dictionary) WordCount() int {
	return len(d.byKey)
}

// MaxWordLength returns the longest active key's length, or 0 if empty.
func (d *Dictionary) MaxWordLength() int {
	return d.maxWordLength
}

// PurgeBelowThreshold discards all below-threshold accumulation.
func (d *Dictionary) PurgeBelowThreshold() {
	d.below = make(map[string]int64)
}

// BelowThresholdCount returns how many keys are pending promotion.
func (d *Dictionary) BelowThresholdCount() int {
	return len(d.below)
}

// UpsertBigram accumulates delta into a two-word key's bigram count,
// tracking the minimum count seen so LookupCompound can fall back to it
// for an unseen split.
func (d *Dictionary) UpsertBigram(key string, delta int64) {
	count := saturatingAdd(d.bigrams[key], delta)
	d.bigrams[key] = count
	if count < d.bigramCountMin {
		d.bigramCountMin = count
	}
}

// GetBigram returns a bigram's count.
func (d *Dictionary) GetBigram(key string) (int64, bool) {
	c, ok := d.bigrams[key]
	return c, ok
}

// BigramCountMin returns the smallest bigram count seen, or
// math.MaxInt64 if no bigrams are loaded.
func (d *Dictionary) BigramCountMin() int64 {
	return d.bigramCountMin
}

// BigramCount returns the number of distinct bigrams loaded.
func (d *Dictionary) BigramCount() int {
	return len(d.bigrams)
}

// CountThreshold returns the configured activation threshold.
func (d *Dictionary) CountThreshold() int64 {
	return d.countThreshold
}

// Keys iterates every active key and count in arena slot order, skipping
// tombstoned slots. This is insertion order except where a key inserted
// after an Erase took over the erased key's slot. Used by serialization,
// which must preserve handle-index order.
func (d *Dictionary) Keys(yield func(key string, count int64) bool) {
	for _, rec := range d.arena {
		if !rec.alive {
			continue
		}
		if !yield(rec.key, rec.count) {
			return
		}
	}
}

// BelowThresholdKeys iterates the below-threshold side table.
func (d *Dictionary) BelowThresholdKeys(yield func(key string, count int64) bool) {
	for k, v := range d.below {
		if !yield(k, v) {
			return
		}
	}
}

// Bigrams iterates the bigram table.
func (d *Dictionary) Bigrams(yield func(key string, count int64) bool) {
	for k, v := range d.bigrams {
		if !yield(k, v) {
			return
		}
	}
}

// HandleForKey returns the current Handle for an active key, for callers
// that have no Upsert result at hand (e.g. serialization mapping handles
// to words-table positions, or removing a key's delete-index entries).
func (d *Dictionary) HandleForKey(key string) (Handle, bool) {
	idx, ok := d.byKey[key]
	if !ok {
		return Handle{}, false
	}
	return Handle{index: idx, generation: d.arena[idx].generation}, true
}

// RestoreActive inserts key at count directly into the arena without
// going through the below-threshold bookkeeping, used when rebuilding a
// Dictionary from a serialized snapshot where ordering and handle index
// must match the stored words table exactly.
func (d *Dictionary) RestoreActive(key string, count int64) Handle {
	return d.insertActive(key, count)
}

// RestoreBelowThreshold inserts key into the below-threshold table
// directly, used during deserialization.
func (d *Dictionary) RestoreBelowThreshold(key string, count int64) {
	d.below[key] = count
}
