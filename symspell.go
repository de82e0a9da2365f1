// Package symspell implements a Symmetric Delete spelling-correction and
// word-segmentation engine: single-token Lookup, multi-word
// LookupCompound, and WordSegmentation over a frequency dictionary and
// an optional bigram table.
package symspell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/morezian/symspell/internal/deleteindex"
	"github.com/morezian/symspell/internal/dictionary"
	"github.com/morezian/symspell/internal/editdistance"
	"github.com/morezian/symspell/internal/editsexpander"
	"github.com/morezian/symspell/internal/logger"
	"github.com/morezian/symspell/internal/stringhash"
)

const (
	defaultMaxEditDistance = 2
	defaultPrefixLength    = 7
	defaultCountThreshold  = 1
	defaultCompactLevel    = 5
)

// wordPattern is the single tokenization point shared by CreateDictionary
// ingestion and LookupCompound's term splitting.
var wordPattern = regexp.MustCompile(`['’\w\-\[_\]]+`)

// Engine is a SymSpell instance: a Dictionary of active/below-threshold
// words and bigrams, a DeleteIndex of precomputed prefix-deletes, and a
// reusable DistanceEvaluator, all built for one (maxEditDistance,
// prefixLength, compactLevel, distanceAlgorithm) configuration.
type Engine struct {
	maxEditDistance   int
	prefixLength      int
	compactLevel      int
	compactMask       uint32
	distanceAlgorithm editdistance.Algorithm

	dict    *dictionary.Dictionary
	deletes *deleteindex.Index[dictionary.Handle]
	eval    *editdistance.Evaluator

	log *log.Logger
}

// New constructs an Engine, validating every constructor argument per
// the engine's structural invariants.
func New(maxEditDistance, prefixLength int, countThreshold int64, compactLevel int, algorithm editdistance.Algorithm) (*Engine, error) {
	if maxEditDistance < 0 {
		return nil, fmt.Errorf("%w: maxEditDistance must be >= 0, got %d", ErrInvalidConfiguration, maxEditDistance)
	}
	if prefixLength < 1 {
		return nil, fmt.Errorf("%w: prefixLength must be >= 1, got %d", ErrInvalidConfiguration, prefixLength)
	}
	if prefixLength <= maxEditDistance {
		return nil, fmt.Errorf("%w: prefixLength (%d) must be > maxEditDistance (%d)", ErrInvalidConfiguration, prefixLength, maxEditDistance)
	}
	if countThreshold < 0 {
		return nil, fmt.Errorf("%w: countThreshold must be >= 0, got %d", ErrInvalidConfiguration, countThreshold)
	}
	if compactLevel < 0 || compactLevel > 16 {
		return nil, fmt.Errorf("%w: compactLevel must be in [0, 16], got %d", ErrInvalidConfiguration, compactLevel)
	}

	return &Engine{
		maxEditDistance:   maxEditDistance,
		prefixLength:      prefixLength,
		compactLevel:      compactLevel,
		compactMask:       stringhash.CompactMask(compactLevel),
		distanceAlgorithm: algorithm,
		dict:              dictionary.New(countThreshold),
		deletes:           deleteindex.New[dictionary.Handle](),
		eval:              editdistance.New(algorithm),
		log:               logger.New("symspell"),
	}, nil
}

// NewDefault constructs an Engine with the documented defaults: edit
// distance 2, prefix length 7, count threshold 1, compact level 5,
// Damerau-OSA distance.
func NewDefault() (*Engine, error) {
	return New(defaultMaxEditDistance, defaultPrefixLength, defaultCountThreshold, defaultCompactLevel, editdistance.DamerauOSA)
}

// MaxEditDistance returns the engine's configured maximum edit distance.
func (e *Engine) MaxEditDistance() int { return e.maxEditDistance }

// PrefixLength returns the engine's configured delete-prefix length.
func (e *Engine) PrefixLength() int { return e.prefixLength }

// WordCount returns the number of active dictionary entries.
func (e *Engine) WordCount() int { return e.dict.WordCount() }

// EntryCount returns the number of distinct delete-index buckets.
func (e *Engine) EntryCount() int { return e.deletes.BucketCount() }

// MaxLength returns the longest active dictionary key's length.
func (e *Engine) MaxLength() int { return e.dict.MaxWordLength() }

// insertDeletes runs the EditsExpander -> PrefixHash -> DeleteIndex
// protocol for a newly-active key. When stage is non-nil the inserts are
// buffered there instead of applied directly, for bulk loads.
func (e *Engine) insertDeletes(key string, handle dictionary.Handle, stage *deleteindex.Stage[dictionary.Handle]) {
	edits := editsexpander.Expand(key, e.maxEditDistance, e.prefixLength)
	for del := range edits.Iter() {
		h := stringhash.Hash(del, e.compactMask)
		if stage != nil {
			stage.Add(h, handle)
		} else {
			e.deletes.Insert(h, handle)
		}
	}
}

// removeDeletes undoes insertDeletes for a key that is being erased.
func (e *Engine) removeDeletes(key string, handle dictionary.Handle) {
	edits := editsexpander.Expand(key, e.maxEditDistance, e.prefixLength)
	for del := range edits.Iter() {
		h := stringhash.Hash(del, e.compactMask)
		e.deletes.Remove(h, handle)
	}
}

// CreateDictionaryEntry upserts key with count delta, running the full
// delete-index insertion protocol if the key newly becomes active.
// Reports whether the entry newly became active.
func (e *Engine) CreateDictionaryEntry(key string, count int64) bool {
	outcome, handle := e.dict.Upsert(key, count)
	if outcome == dictionary.NewlyActive {
		e.insertDeletes(key, handle, nil)
		return true
	}
	return false
}

// DeleteDictionaryEntry removes an active entry and its delete-index
// references. Reports whether a live entry was found and removed.
func (e *Engine) DeleteDictionaryEntry(key string) bool {
	handle, ok := e.dict.HandleForKey(key)
	if !ok {
		return false
	}
	if !e.dict.Erase(key) {
		return false
	}
	e.removeDeletes(key, handle)
	return true
}

// PurgeBelowThresholdWords discards all below-count-threshold
// accumulation.
func (e *Engine) PurgeBelowThresholdWords() {
	e.dict.PurgeBelowThreshold()
}

func parseCountField(log *log.Logger, field, term string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
	if err != nil {
		log.Warnf("malformed count field %q for term %q, defaulting to 1", field, term)
		return 1
	}
	return n
}

// LoadDictionary reads a frequency dictionary from r: one entry per
// line, fields split by separator, the termIndex-th field is the term
// and the countIndex-th field its base-10 count. A line with too few
// fields is treated as a single whole-line term with count 1.
func (e *Engine) LoadDictionary(r io.Reader, termIndex, countIndex int, separator string) bool {
	need := termIndex
	if countIndex > need {
		need = countIndex
	}
	need++

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, separator)

		var term string
		var count int64 = 1
		if len(parts) < need {
			term = line
		} else {
			term = parts[termIndex]
			count = parseCountField(e.log, parts[countIndex], term)
		}
		e.CreateDictionaryEntry(term, count)
	}
	return true
}

// LoadDictionaryFile opens path and delegates to LoadDictionary,
// returning false if the file cannot be opened.
func (e *Engine) LoadDictionaryFile(path string, termIndex, countIndex int, separator string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return e.LoadDictionary(f, termIndex, countIndex, separator)
}

// LoadBigramDictionary reads a bigram corpus from r. When separator is a
// single space and a line splits into exactly three fields, the first
// two fields are joined as the bigram key (the corpus's default mode);
// otherwise the line is parsed like LoadDictionary.
func (e *Engine) LoadBigramDictionary(r io.Reader, termIndex, countIndex int, separator string) bool {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, separator)

		var term string
		var count int64 = 1
		switch {
		case separator == " " && len(parts) == 3:
			term = parts[0] + " " + parts[1]
			count = parseCountField(e.log, parts[2], term)
		case len(parts) > termIndex && len(parts) > countIndex:
			term = parts[termIndex]
			count = parseCountField(e.log, parts[countIndex], term)
		default:
			term = line
		}
		e.dict.UpsertBigram(term, count)
	}
	return true
}

// LoadBigramDictionaryFile opens path and delegates to
// LoadBigramDictionary, returning false if the file cannot be opened.
func (e *Engine) LoadBigramDictionaryFile(path string, termIndex, countIndex int, separator string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return e.LoadBigramDictionary(f, termIndex, countIndex, separator)
}

// CreateDictionary bulk-loads a plain-text corpus: every line is
// tokenized with the shared word regex, lowercased, and each token
// upserted with count 1. Delete-index insertions are staged and
// committed once at the end, avoiding repeated rehashing.
func (e *Engine) CreateDictionary(r io.Reader) bool {
	stage := deleteindex.NewStage[dictionary.Handle](16384)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, word := range wordPattern.FindAllString(strings.ToLower(scanner.Text()), -1) {
			outcome, handle := e.dict.Upsert(word, 1)
			if outcome == dictionary.NewlyActive {
				e.insertDeletes(word, handle, stage)
			}
		}
	}

	stage.Commit(e.deletes)
	return true
}

// CreateDictionaryFile opens path and delegates to CreateDictionary,
// returning false if the file cannot be opened.
func (e *Engine) CreateDictionaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	return e.CreateDictionary(f)
}
