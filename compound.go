package symspell

import (
	"math"
	"strings"

	"github.com/morezian/symspell/internal/casing"
	"github.com/morezian/symspell/internal/editdistance"
	"github.com/morezian/symspell/verbosity"
)

// N is SymSpell's fixed pseudo-corpus-size normalization constant, used
// to estimate merged/split term counts via a naive-Bayes-style product
// of single-term probabilities.
const N int64 = 1024908267229

// syntheticSuggestion is the low-confidence fallback used when a term
// has no dictionary correction at all: distance maxEditDistance+1, a
// count decaying with term length the way the source's
// 10/10^|term| expression does (as a float, not a bitwise shift).
func syntheticSuggestion(term string, maxEditDistance int) Suggestion {
	return Suggestion{Term: term, Distance: maxEditDistance + 1, Count: int64(10 / math.Pow10(len(term)))}
}

// LookupCompound supports compound-aware correction of a multi-word
// input in three cases: a spuriously inserted space split one correct
// word into two terms, a missing space merged two correct words into
// one, or the input is simply independently misspelled terms.
func (e *Engine) LookupCompound(input string, maxEditDistance int, transferCasing bool) (Suggestion, error) {
	terms := wordPattern.FindAllString(strings.ToLower(input), -1)

	var parts Suggestions
	lastMerge := false

	for i, tok := range terms {
		single, err := e.Lookup(tok, verbosity.Top, maxEditDistance, false, false)
		if err != nil {
			return Suggestion{}, err
		}

		if i > 0 && !lastMerge {
			merged, err := e.Lookup(terms[i-1]+tok, verbosity.Top, maxEditDistance, false, false)
			if err != nil {
				return Suggestion{}, err
			}
			if len(merged) > 0 {
				best1 := parts[len(parts)-1]
				var best2 Suggestion
				if len(single) > 0 {
					best2 = single[0]
				} else {
					best2 = syntheticSuggestion(tok, maxEditDistance)
				}

				sumDistance := best1.Distance + best2.Distance
				ratio := float64(best1.Count) * float64(best2.Count) / float64(N)

				if sumDistance >= 0 &&
					(merged[0].Distance+1 < sumDistance ||
						(merged[0].Distance+1 == sumDistance && float64(merged[0].Count) > ratio)) {
					mergedSugg := merged[0]
					mergedSugg.Distance++
					parts[len(parts)-1] = mergedSugg
					lastMerge = true
					continue
				}
			}
		}

		lastMerge = false

		if len(single) > 0 && (single[0].Distance == 0 || len(tok) == 1) {
			parts = append(parts, single[0])
			continue
		}

		parts = append(parts, e.bestSplit(tok, single, maxEditDistance))
	}

	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(p.Term)
	}
	joined := strings.TrimRight(sb.String(), " ")

	count := float64(N)
	for _, p := range parts {
		count *= float64(p.Count) / float64(N)
	}

	distance := e.eval.Distance(strings.ToLower(input), joined, editdistance.Unbounded)

	term := joined
	if transferCasing {
		if cased, err := casing.TransferForSimilarText(input, joined); err == nil {
			term = cased
		}
	}

	return Suggestion{Term: term, Distance: distance, Count: int64(count)}, nil
}

// LookupCompoundDefault runs LookupCompound at the engine's configured
// maximum edit distance, without casing transfer.
func (e *Engine) LookupCompoundDefault(input string) (Suggestion, error) {
	return e.LookupCompound(input, e.maxEditDistance, false)
}

// bestSplit finds the best two-way split of term, scored against the
// bigram table. The single-token suggestion (when there is one) is the
// starting best and is returned when no split beats it; the synthetic
// low-confidence suggestion is returned only when there is neither a
// single-token suggestion nor a scoring split.
func (e *Engine) bestSplit(term string, single Suggestions, maxEditDistance int) Suggestion {
	var best *Suggestion
	if len(single) > 0 {
		best = &single[0]
	}

	if len(term) > 1 {
		for j := 1; j < len(term); j++ {
			part1, err1 := e.Lookup(term[:j], verbosity.Top, maxEditDistance, false, false)
			if err1 != nil || len(part1) == 0 {
				continue
			}
			part2, err2 := e.Lookup(term[j:], verbosity.Top, maxEditDistance, false, false)
			if err2 != nil || len(part2) == 0 {
				continue
			}

			splitTerm := part1[0].Term + " " + part2[0].Term
			distance := e.eval.Distance(term, splitTerm, maxEditDistance)
			if distance < 0 {
				distance = maxEditDistance + 1
			}

			if best != nil {
				if distance > best.Distance {
					continue
				}
				if distance < best.Distance {
					best = nil
				}
			}

			var count int64
			if bigramCount, ok := e.dict.GetBigram(splitTerm); ok {
				count = bigramCount
				reconstructsTerm := part1[0].Term+part2[0].Term == term
				switch {
				case len(single) > 0 && reconstructsTerm:
					count = maxInt64(count, single[0].Count+2)
				case len(single) > 0 && (part1[0].Term == single[0].Term || part2[0].Term == single[0].Term):
					count = maxInt64(count, single[0].Count+1)
				case len(single) == 0 && reconstructsTerm:
					count = maxInt64(count, maxInt64(part1[0].Count, part2[0].Count)+2)
				}
			} else {
				ratio := float64(part1[0].Count) * float64(part2[0].Count) / float64(N)
				count = minInt64(e.dict.BigramCountMin(), int64(ratio))
			}

			candidate := Suggestion{Term: splitTerm, Distance: distance, Count: count}
			if best == nil || candidate.Count > best.Count {
				best = &candidate
			}
		}
	}

	if best != nil {
		return *best
	}
	return syntheticSuggestion(term, maxEditDistance)
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
