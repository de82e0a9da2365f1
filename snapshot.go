package symspell

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/morezian/symspell/internal/deleteindex"
	"github.com/morezian/symspell/internal/dictionary"
	"github.com/morezian/symspell/internal/editdistance"
	"github.com/morezian/symspell/internal/logger"
)

const (
	magicHeader   = "SymSpellCppPy"
	formatVersion = uint64(1)
	// maxLoadFactor is written for format compatibility; Go's map-backed
	// Index has no load-factor knob of its own to report.
	maxLoadFactor = 1.0
)

func wrapDeser(err error) error {
	return fmt.Errorf("%w: %v", ErrDeserialization, err)
}

func writeU64(w io.Writer, v uint64) error { return binary.Write(w, binary.LittleEndian, v) }
func writeU32(w io.Writer, v uint32) error { return binary.Write(w, binary.LittleEndian, v) }
func writeI32(w io.Writer, v int32) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeI64(w io.Writer, v int64) error  { return binary.Write(w, binary.LittleEndian, v) }
func writeF64(w io.Writer, v float64) error { return binary.Write(w, binary.LittleEndian, v) }

func readU64(r io.Reader) (uint64, error) {
	var v uint64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}
func readU32(r io.Reader) (uint32, error) {
	var v uint32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}
func readI32(r io.Reader) (int32, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}
func readF64(r io.Reader) (float64, error) {
	var v float64
	err := binary.Read(r, binary.LittleEndian, &v)
	return v, err
}

func writeKeyedEntry(w io.Writer, key string, count int64) error {
	if err := writeU64(w, uint64(len(key))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, key); err != nil {
		return err
	}
	return writeI64(w, count)
}

func readKeyedEntry(r io.Reader) (string, int64, error) {
	keyLen, err := readU64(r)
	if err != nil {
		return "", 0, err
	}
	buf := make([]byte, keyLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", 0, err
	}
	var count int64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return "", 0, err
	}
	return string(buf), count, nil
}

// ToStream writes the engine's complete state in the canonical binary
// format: magic header, construction parameters, below-threshold table,
// words table, delete-index buckets (referencing words-table
// positions), bigrams table, and trailing scalar fields.
func (e *Engine) ToStream(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(magicHeader); err != nil {
		return err
	}
	if err := writeU64(bw, formatVersion); err != nil {
		return err
	}
	if err := writeU64(bw, uint64(e.maxEditDistance)); err != nil {
		return err
	}
	if err := writeU64(bw, uint64(e.prefixLength)); err != nil {
		return err
	}
	if err := writeU64(bw, uint64(e.dict.CountThreshold())); err != nil {
		return err
	}
	if err := writeU32(bw, uint32(e.distanceAlgorithm)); err != nil {
		return err
	}

	var belowErr error
	var belowCount uint64
	e.dict.BelowThresholdKeys(func(string, int64) bool { belowCount++; return true })
	if err := writeU64(bw, belowCount); err != nil {
		return err
	}
	e.dict.BelowThresholdKeys(func(key string, count int64) bool {
		belowErr = writeKeyedEntry(bw, key, count)
		return belowErr == nil
	})
	if belowErr != nil {
		return belowErr
	}

	wordIndex := make(map[dictionary.Handle]uint64)
	var words []string
	var counts []int64
	e.dict.Keys(func(key string, count int64) bool {
		if handle, ok := e.dict.HandleForKey(key); ok {
			wordIndex[handle] = uint64(len(words))
		}
		words = append(words, key)
		counts = append(counts, count)
		return true
	})
	if err := writeU64(bw, uint64(len(words))); err != nil {
		return err
	}
	for i, key := range words {
		if err := writeKeyedEntry(bw, key, counts[i]); err != nil {
			return err
		}
	}

	var bucketErr error
	var bucketCount uint64
	e.deletes.Buckets(func(int32, []dictionary.Handle) bool { bucketCount++; return true })
	if err := writeU64(bw, bucketCount); err != nil {
		return err
	}
	if err := writeF64(bw, maxLoadFactor); err != nil {
		return err
	}
	e.deletes.Buckets(func(hash int32, handles []dictionary.Handle) bool {
		if bucketErr = writeI32(bw, hash); bucketErr != nil {
			return false
		}
		if bucketErr = writeU64(bw, uint64(len(handles))); bucketErr != nil {
			return false
		}
		for _, h := range handles {
			idx, ok := wordIndex[h]
			if !ok {
				bucketErr = fmt.Errorf("symspell: delete-index handle with no live word-table entry")
				return false
			}
			if bucketErr = writeU64(bw, idx); bucketErr != nil {
				return false
			}
		}
		return true
	})
	if bucketErr != nil {
		return bucketErr
	}

	var bigramErr error
	var bigramCount uint64
	e.dict.Bigrams(func(string, int64) bool { bigramCount++; return true })
	if err := writeU64(bw, bigramCount); err != nil {
		return err
	}
	e.dict.Bigrams(func(key string, count int64) bool {
		bigramErr = writeKeyedEntry(bw, key, count)
		return bigramErr == nil
	})
	if bigramErr != nil {
		return bigramErr
	}

	if err := writeU64(bw, uint64(e.compactMask)); err != nil {
		return err
	}
	if err := writeU64(bw, uint64(e.dict.MaxWordLength())); err != nil {
		return err
	}
	if err := writeU64(bw, uint64(e.dict.BigramCountMin())); err != nil {
		return err
	}

	return bw.Flush()
}

// FromStream reads a ToStream snapshot and rebuilds a fully equivalent
// Engine, including its delete-index, rejecting a mismatched magic
// header or unsupported version.
func FromStream(r io.Reader) (*Engine, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(magicHeader))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, wrapDeser(err)
	}
	if string(magic) != magicHeader {
		return nil, fmt.Errorf("%w: bad magic header", ErrDeserialization)
	}

	version, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	if version != formatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrDeserialization, version)
	}

	maxEditDistance, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	prefixLength, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	countThreshold, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	algorithm, err := readU32(br)
	if err != nil {
		return nil, wrapDeser(err)
	}

	e := &Engine{
		maxEditDistance:   int(maxEditDistance),
		prefixLength:      int(prefixLength),
		compactLevel:      -1,
		distanceAlgorithm: editdistance.Algorithm(algorithm),
		dict:              dictionary.New(int64(countThreshold)),
		deletes:           deleteindex.New[dictionary.Handle](),
		eval:              editdistance.New(editdistance.Algorithm(algorithm)),
		log:               logger.New("symspell"),
	}

	belowCount, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	for i := uint64(0); i < belowCount; i++ {
		key, count, err := readKeyedEntry(br)
		if err != nil {
			return nil, wrapDeser(err)
		}
		e.dict.RestoreBelowThreshold(key, count)
	}

	wordCount, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	handles := make([]dictionary.Handle, wordCount)
	for i := uint64(0); i < wordCount; i++ {
		key, count, err := readKeyedEntry(br)
		if err != nil {
			return nil, wrapDeser(err)
		}
		handles[i] = e.dict.RestoreActive(key, count)
	}

	bucketCount, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	if _, err := readF64(br); err != nil {
		return nil, wrapDeser(err)
	}
	for i := uint64(0); i < bucketCount; i++ {
		hash, err := readI32(br)
		if err != nil {
			return nil, wrapDeser(err)
		}
		listLen, err := readU64(br)
		if err != nil {
			return nil, wrapDeser(err)
		}
		for j := uint64(0); j < listLen; j++ {
			wordIdx, err := readU64(br)
			if err != nil {
				return nil, wrapDeser(err)
			}
			if wordIdx >= uint64(len(handles)) {
				return nil, fmt.Errorf("%w: word index %d out of range", ErrDeserialization, wordIdx)
			}
			e.deletes.Insert(hash, handles[wordIdx])
		}
	}

	bigramCount, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	for i := uint64(0); i < bigramCount; i++ {
		key, count, err := readKeyedEntry(br)
		if err != nil {
			return nil, wrapDeser(err)
		}
		e.dict.UpsertBigram(key, count)
	}

	compactMask, err := readU64(br)
	if err != nil {
		return nil, wrapDeser(err)
	}
	e.compactMask = uint32(compactMask)

	if _, err := readU64(br); err != nil { // maxDictionaryWordLength, already tracked by RestoreActive
		return nil, wrapDeser(err)
	}
	if _, err := readU64(br); err != nil { // bigramCountMin, already tracked by UpsertBigram
		return nil, wrapDeser(err)
	}

	return e, nil
}

// ToBytes serializes the engine to an in-memory byte slice.
func (e *Engine) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.ToStream(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes deserializes an engine from an in-memory byte slice.
func FromBytes(data []byte) (*Engine, error) {
	return FromStream(bytes.NewReader(data))
}
