package symspell

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/morezian/symspell/internal/casing"
	"github.com/morezian/symspell/internal/stringhash"
	"github.com/morezian/symspell/verbosity"
)

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// deleteInSuggestionPrefix reports whether every character of cand
// appears, in order, within sugg's length-capped prefix. A false result
// means the pairing is only a hash collision, not a real candidate.
func deleteInSuggestionPrefix(cand, sugg string, prefixLength int) bool {
	if len(cand) == 0 {
		return true
	}
	suggestionLen := len(sugg)
	if prefixLength < suggestionLen {
		suggestionLen = prefixLength
	}
	j := 0
	for i := 0; i < len(cand); i++ {
		c := cand[i]
		for j < suggestionLen && c != sugg[j] {
			j++
		}
		if j == suggestionLen {
			return false
		}
		j++
	}
	return true
}

// tailMismatch is the boundary-pruning fast-reject: when a candidate's
// delete-distance from the input has already consumed the whole edit
// budget within the prefix window, only maxEditDistance edits remain for
// whatever lies beyond that window. If the tails disagree by more than
// that, no full distance computation can bring the pair within bound.
func tailMismatch(input, sugg string, inputLen, suggestionLen, candidateLen, prefixLength, maxEditDistance int) bool {
	if candidateLen != prefixLength-maxEditDistance {
		return false
	}

	minVal := inputLen
	if suggestionLen < minVal {
		minVal = suggestionLen
	}
	minVal -= prefixLength

	if minVal > 1 && input[inputLen+1-minVal:] != sugg[suggestionLen+1-minVal:] {
		return true
	}
	if minVal > 0 && input[inputLen-minVal] != sugg[suggestionLen-minVal] &&
		(input[inputLen-minVal-1] != sugg[suggestionLen-minVal] ||
			input[inputLen-minVal] != sugg[suggestionLen-minVal-1]) {
		return true
	}
	return false
}

// Lookup returns ranked correction candidates for a single token.
func (e *Engine) Lookup(input string, v verbosity.Verbosity, maxEditDistance int, includeUnknown, transferCasing bool) (Suggestions, error) {
	if maxEditDistance > e.maxEditDistance {
		return nil, fmt.Errorf("%w: lookup maxEditDistance %d exceeds configured %d", ErrArgumentRange, maxEditDistance, e.maxEditDistance)
	}
	if e.deletes.BucketCount() == 0 {
		return Suggestions{}, nil
	}

	original := input
	if transferCasing {
		input = strings.ToLower(input)
	}
	inputLen := len(input)

	var suggestions Suggestions

	if inputLen-maxEditDistance > e.dict.MaxWordLength() {
		return e.finishLookup(suggestions, original, maxEditDistance, includeUnknown, transferCasing), nil
	}

	if count, ok := e.dict.Get(input); ok {
		suggestions = append(suggestions, Suggestion{Term: input, Distance: 0, Count: count})
		if v != verbosity.All {
			return e.finishLookup(suggestions, original, maxEditDistance, includeUnknown, transferCasing), nil
		}
	}

	if maxEditDistance == 0 {
		return e.finishLookup(suggestions, original, maxEditDistance, includeUnknown, transferCasing), nil
	}

	seenCandidates := mapset.NewSet[string]()
	seenSuggestions := mapset.NewSet[string]()
	seenSuggestions.Add(input)

	currentMax := maxEditDistance

	inputPrefixLen := inputLen
	candidates := make([]string, 0, 16)
	if inputPrefixLen > e.prefixLength {
		inputPrefixLen = e.prefixLength
		candidates = append(candidates, input[:inputPrefixLen])
	} else {
		candidates = append(candidates, input)
	}

	for idx := 0; idx < len(candidates); idx++ {
		cand := candidates[idx]
		candidateLen := len(cand)
		lengthDiff := inputPrefixLen - candidateLen

		if lengthDiff > currentMax {
			if v == verbosity.All {
				continue
			}
			break
		}

		hash := stringhash.Hash(cand, e.compactMask)
		for _, handle := range e.deletes.Get(hash) {
			sugg, count, ok := e.dict.Resolve(handle)
			if !ok {
				continue
			}
			suggestionLen := len(sugg)

			if sugg == input {
				continue
			}
			if absInt(suggestionLen-inputLen) > currentMax {
				continue
			}
			if suggestionLen < candidateLen {
				continue
			}
			if suggestionLen == candidateLen && sugg != cand {
				continue
			}

			suggPrefixLen := suggestionLen
			if e.prefixLength < suggPrefixLen {
				suggPrefixLen = e.prefixLength
			}
			if suggPrefixLen > inputPrefixLen && suggPrefixLen-candidateLen > currentMax {
				continue
			}

			var distance int
			switch {
			case candidateLen == 0:
				// suggestions sharing no characters with the input at all
				// (inputLen and suggestionLen are both <= maxEditDistance).
				distance = max(inputLen, suggestionLen)
				if distance > currentMax || !seenSuggestions.Add(sugg) {
					continue
				}
			case suggestionLen == 1:
				if strings.IndexByte(input, sugg[0]) < 0 {
					distance = inputLen
				} else {
					distance = inputLen - 1
				}
				if distance > currentMax || !seenSuggestions.Add(sugg) {
					continue
				}
			case tailMismatch(input, sugg, inputLen, suggestionLen, candidateLen, e.prefixLength, maxEditDistance):
				continue
			default:
				if v != verbosity.All && !deleteInSuggestionPrefix(cand, sugg, e.prefixLength) {
					continue
				}
				if !seenSuggestions.Add(sugg) {
					continue
				}
				distance = e.eval.Distance(input, sugg, currentMax)
				if distance < 0 {
					continue
				}
			}

			switch v {
			case verbosity.Closest:
				if distance < currentMax {
					suggestions = suggestions[:0]
				}
			case verbosity.Top:
				if len(suggestions) > 0 {
					if distance < currentMax || (distance == currentMax && count > suggestions[0].Count) {
						currentMax = distance
						suggestions[0] = Suggestion{Term: sugg, Distance: distance, Count: count}
					}
					continue
				}
			}

			if v != verbosity.All {
				currentMax = distance
			}
			suggestions = append(suggestions, Suggestion{Term: sugg, Distance: distance, Count: count})
		}

		if lengthDiff < maxEditDistance && candidateLen <= e.prefixLength {
			if v == verbosity.All && lengthDiff > currentMax {
				continue
			}
			for i := 0; i < candidateLen; i++ {
				del := cand[:i] + cand[i+1:]
				if seenCandidates.Add(del) {
					candidates = append(candidates, del)
				}
			}
		}
	}

	sort.Sort(suggestions)
	return e.finishLookup(suggestions, original, maxEditDistance, includeUnknown, transferCasing), nil
}

// finishLookup applies casing transfer and the includeUnknown fallback,
// shared by every early-return path in Lookup.
func (e *Engine) finishLookup(suggestions Suggestions, original string, maxEditDistance int, includeUnknown, transferCasing bool) Suggestions {
	if transferCasing {
		for i := range suggestions {
			if cased, err := casing.TransferForSimilarText(original, suggestions[i].Term); err == nil {
				suggestions[i].Term = cased
			}
		}
	}
	if includeUnknown && len(suggestions) == 0 {
		suggestions = append(suggestions, Suggestion{Term: original, Distance: maxEditDistance + 1, Count: 0})
	}
	return suggestions
}
