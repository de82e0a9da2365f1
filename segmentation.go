package symspell

import (
	"math"
	"strings"
	"unicode"

	"github.com/morezian/symspell/verbosity"
)

// SegmentationInfo is the result of WordSegmentation: the best-scoring
// way found to split an unspaced (or inconsistently spaced) character
// sequence into dictionary words, both as segmented (space-normalized,
// uncorrected) and corrected text, with the accumulated edit distance
// and log-probability that ranked it.
type SegmentationInfo struct {
	Segmented string
	Corrected string
	Distance  int
	LogProb   float64
}

// WordSegmentation runs the ring-buffer dynamic program: for every
// window length up to min(maxSegmentationWordLength, len(input)), it
// extends every partial segmentation ending one position earlier with a
// dictionary-corrected (or verbatim) word for the window, keeping the
// lowest-distance, highest-probability extension per ring slot.
func (e *Engine) WordSegmentation(input string, maxEditDistance, maxSegmentationWordLength int) (SegmentationInfo, error) {
	runes := []rune(input)
	arraySize := maxSegmentationWordLength
	if len(runes) < arraySize {
		arraySize = len(runes)
	}
	if arraySize <= 0 {
		return SegmentationInfo{}, nil
	}

	compositions := make([]SegmentationInfo, arraySize)
	circularIndex := -1

	for j := 0; j < len(runes); j++ {
		imax := len(runes) - j
		if imax > maxSegmentationWordLength {
			imax = maxSegmentationWordLength
		}

		for i := 1; i <= imax; i++ {
			window := runes[j : j+i]

			separatorLength := 0
			if unicode.IsSpace(window[0]) {
				window = window[1:]
			} else {
				separatorLength = 1
			}

			topEd := len(window)
			stripped := make([]rune, 0, len(window))
			for _, r := range window {
				if r != ' ' {
					stripped = append(stripped, r)
				}
			}
			topEd -= len(stripped)
			part := string(stripped)

			upper := len(stripped) > 0 && unicode.IsUpper(stripped[0])

			var topResult string
			var topProbabilityLog float64
			results, err := e.Lookup(strings.ToLower(part), verbosity.Top, maxEditDistance, false, false)
			if err != nil {
				return SegmentationInfo{}, err
			}
			if len(results) > 0 {
				topResult = results[0].Term
				if upper {
					topResult = upperFirstRune(topResult)
				}
				topEd += results[0].Distance
				topProbabilityLog = math.Log10(float64(results[0].Count) / float64(N))
			} else {
				topResult = part
				topEd += len(stripped)
				topProbabilityLog = math.Log10(10.0 / (float64(N) * math.Pow10(len(stripped))))
			}

			destinationIndex := ((i + circularIndex) % arraySize + arraySize) % arraySize

			if j == 0 {
				compositions[destinationIndex] = SegmentationInfo{
					Segmented: part,
					Corrected: topResult,
					Distance:  topEd,
					LogProb:   topProbabilityLog,
				}
				continue
			}

			srcIndex := ((circularIndex % arraySize) + arraySize) % arraySize
			src := compositions[srcIndex]
			dest := compositions[destinationIndex]

			if i == maxSegmentationWordLength ||
				((src.Distance+topEd == dest.Distance || src.Distance+separatorLength+topEd == dest.Distance) &&
					dest.LogProb < src.LogProb+topProbabilityLog) ||
				src.Distance+separatorLength+topEd < dest.Distance {

				glued := len([]rune(topResult)) == 1 && unicode.IsPunct([]rune(topResult)[0]) || topResult == "’"

				if glued {
					compositions[destinationIndex] = SegmentationInfo{
						Segmented: src.Segmented + part,
						Corrected: src.Corrected + topResult,
						Distance:  src.Distance + topEd,
						LogProb:   src.LogProb + topProbabilityLog,
					}
				} else {
					compositions[destinationIndex] = SegmentationInfo{
						Segmented: src.Segmented + " " + part,
						Corrected: src.Corrected + " " + topResult,
						Distance:  src.Distance + separatorLength + topEd,
						LogProb:   src.LogProb + topProbabilityLog,
					}
				}
			}
		}

		circularIndex++
		if circularIndex == arraySize {
			circularIndex = 0
		}
	}

	finalIndex := ((circularIndex % arraySize) + arraySize) % arraySize
	return compositions[finalIndex], nil
}

// WordSegmentationDefault runs WordSegmentation at the engine's
// configured maximum edit distance and longest active dictionary word
// length.
func (e *Engine) WordSegmentationDefault(input string) (SegmentationInfo, error) {
	return e.WordSegmentation(input, e.maxEditDistance, e.dict.MaxWordLength())
}

func upperFirstRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
