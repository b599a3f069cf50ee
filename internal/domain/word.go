package domain

import (
	"strings"
	"unicode"
)

// WordLength is the only accepted candidate length. Words of any other
// length are classified invalid without a network call.
const WordLength = 5

// Normalize returns the canonical lower-cased form of a candidate word.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Eligible reports whether a word meets the length precondition:
// exactly WordLength alphabetic characters.
func Eligible(word string) bool {
	if len(word) != WordLength {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
