// Package casing transfers the letter casing of an original, cased input
// onto a lowercased replacement string, used by Lookup/LookupCompound's
// transferCasing option. It walks Ratcliff/Obershelp-style matching-block
// opcodes between the lowercased cased text and the uncased text.
package casing

import (
	"errors"
	"strings"
	"unicode"
)

// ErrMismatchedLength is returned by TransferForMatchingText when its two
// arguments differ in length.
var ErrMismatchedLength = errors.New("casing: text_w_casing and text_wo_casing must have equal length")

// ErrMissingCasingSource is returned by TransferForSimilarText when
// textWoCasing is non-empty but textWCasing is empty.
var ErrMissingCasingSource = errors.New("casing: text_w_casing must be non-empty to transfer casing")

// TransferForMatchingText applies textWCasing's per-rune case onto
// textWoCasing, which must have exactly the same rune length.
func TransferForMatchingText(textWCasing, textWoCasing string) (string, error) {
	w := []rune(textWCasing)
	wo := []rune(textWoCasing)
	if len(w) != len(wo) {
		return "", ErrMismatchedLength
	}
	var b strings.Builder
	for i := range w {
		if unicode.IsUpper(w[i]) {
			b.WriteRune(unicode.ToUpper(wo[i]))
		} else {
			b.WriteRune(unicode.ToLower(wo[i]))
		}
	}
	return b.String(), nil
}

// TransferForSimilarText transfers textWCasing's casing onto
// textWoCasing even when the two differ in length, by aligning them with
// a longest-common-subsequence based opcode walk and applying casing
// rules per opcode.
func TransferForSimilarText(textWCasing, textWoCasing string) (string, error) {
	if textWoCasing == "" {
		return textWoCasing, nil
	}
	if textWCasing == "" {
		return "", ErrMissingCasingSource
	}

	wCasingRunes := []rune(textWCasing)
	lowered := []rune(strings.ToLower(textWCasing))
	woCasing := []rune(textWoCasing)

	var b strings.Builder
	for _, op := range opcodes(lowered, woCasing) {
		switch op.tag {
		case opEqual:
			b.WriteString(string(wCasingRunes[op.i1:op.i2]))
		case opDelete:
			// emit nothing
		case opInsert:
			upper := op.i1 == 0 || wCasingRunes[op.i1-1] == ' '
			if !upper {
				upper = unicode.IsUpper(wCasingRunes[op.i1-1])
			} else if op.i1 < len(wCasingRunes) {
				upper = unicode.IsUpper(wCasingRunes[op.i1])
			} else {
				upper = false
			}
			chunk := string(woCasing[op.j1:op.j2])
			if upper {
				b.WriteString(strings.ToUpper(chunk))
			} else {
				b.WriteString(strings.ToLower(chunk))
			}
		case opReplace:
			wChunk := wCasingRunes[op.i1:op.i2]
			woChunk := woCasing[op.j1:op.j2]
			if len(wChunk) == len(woChunk) {
				s, err := TransferForMatchingText(string(wChunk), string(woChunk))
				if err != nil {
					return "", err
				}
				b.WriteString(s)
			} else {
				lastUpper := false
				for i := 0; i < len(woChunk); i++ {
					if i < len(wChunk) {
						if unicode.IsUpper(wChunk[i]) {
							b.WriteRune(unicode.ToUpper(woChunk[i]))
							lastUpper = true
						} else {
							b.WriteRune(unicode.ToLower(woChunk[i]))
							lastUpper = false
						}
					} else {
						if lastUpper {
							b.WriteRune(unicode.ToUpper(woChunk[i]))
						} else {
							b.WriteRune(unicode.ToLower(woChunk[i]))
						}
					}
				}
			}
		}
	}
	return b.String(), nil
}
