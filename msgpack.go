package symspell

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/morezian/symspell/internal/deleteindex"
	"github.com/morezian/symspell/internal/dictionary"
	"github.com/morezian/symspell/internal/editdistance"
	"github.com/morezian/symspell/internal/logger"
)

type msgpackEntry struct {
	Key   string `msgpack:"key"`
	Count int64  `msgpack:"count"`
}

type msgpackBucket struct {
	Hash    int32    `msgpack:"hash"`
	Indices []uint32 `msgpack:"indices"`
}

type msgpackSnapshot struct {
	MaxEditDistance int             `msgpack:"max_edit_distance"`
	PrefixLength    int             `msgpack:"prefix_length"`
	CountThreshold  int64           `msgpack:"count_threshold"`
	CompactMask     uint32          `msgpack:"compact_mask"`
	Algorithm       int             `msgpack:"algorithm"`
	BelowThreshold  []msgpackEntry  `msgpack:"below_threshold"`
	Words           []msgpackEntry  `msgpack:"words"`
	Buckets         []msgpackBucket `msgpack:"buckets"`
	Bigrams         []msgpackEntry  `msgpack:"bigrams"`
}

// ToMsgpack serializes the engine to msgpack: a faster-to-decode
// companion to the canonical ToStream format, for host processes that
// already standardize on msgpack for their other snapshot data.
func (e *Engine) ToMsgpack() ([]byte, error) {
	snap := msgpackSnapshot{
		MaxEditDistance: e.maxEditDistance,
		PrefixLength:    e.prefixLength,
		CountThreshold:  e.dict.CountThreshold(),
		CompactMask:     e.compactMask,
		Algorithm:       int(e.distanceAlgorithm),
	}

	e.dict.BelowThresholdKeys(func(key string, count int64) bool {
		snap.BelowThreshold = append(snap.BelowThreshold, msgpackEntry{Key: key, Count: count})
		return true
	})

	wordIndex := make(map[dictionary.Handle]uint32)
	e.dict.Keys(func(key string, count int64) bool {
		if handle, ok := e.dict.HandleForKey(key); ok {
			wordIndex[handle] = uint32(len(snap.Words))
		}
		snap.Words = append(snap.Words, msgpackEntry{Key: key, Count: count})
		return true
	})

	e.deletes.Buckets(func(hash int32, handles []dictionary.Handle) bool {
		indices := make([]uint32, 0, len(handles))
		for _, h := range handles {
			if idx, ok := wordIndex[h]; ok {
				indices = append(indices, idx)
			}
		}
		snap.Buckets = append(snap.Buckets, msgpackBucket{Hash: hash, Indices: indices})
		return true
	})

	e.dict.Bigrams(func(key string, count int64) bool {
		snap.Bigrams = append(snap.Bigrams, msgpackEntry{Key: key, Count: count})
		return true
	})

	return msgpack.Marshal(&snap)
}

// FromMsgpack rebuilds an Engine from a ToMsgpack payload.
func FromMsgpack(data []byte) (*Engine, error) {
	var snap msgpackSnapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return nil, wrapDeser(err)
	}

	e := &Engine{
		maxEditDistance:   snap.MaxEditDistance,
		prefixLength:      snap.PrefixLength,
		compactLevel:      -1,
		compactMask:       snap.CompactMask,
		distanceAlgorithm: editdistance.Algorithm(snap.Algorithm),
		dict:              dictionary.New(snap.CountThreshold),
		deletes:           deleteindex.New[dictionary.Handle](),
		eval:              editdistance.New(editdistance.Algorithm(snap.Algorithm)),
		log:               logger.New("symspell"),
	}

	for _, entry := range snap.BelowThreshold {
		e.dict.RestoreBelowThreshold(entry.Key, entry.Count)
	}

	handles := make([]dictionary.Handle, len(snap.Words))
	for i, entry := range snap.Words {
		handles[i] = e.dict.RestoreActive(entry.Key, entry.Count)
	}

	for _, bucket := range snap.Buckets {
		for _, idx := range bucket.Indices {
			if int(idx) >= len(handles) {
				return nil, fmt.Errorf("%w: word index %d out of range", ErrDeserialization, idx)
			}
			e.deletes.Insert(bucket.Hash, handles[idx])
		}
	}

	for _, entry := range snap.Bigrams {
		e.dict.UpsertBigram(entry.Key, entry.Count)
	}

	return e, nil
}
