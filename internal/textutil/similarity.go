// internal/textutil/similarity.go
package textutil

import "strings"

// JaccardSimilarity computes token-set similarity between two strings:
// intersection size over union size of their word-token sets. The
// result is in [0,1], symmetric, and 1.0 for identical token sets.
// Two empty inputs are treated as identical.
func JaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for token := range setA {
		if setB[token] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// WordOverlap computes the fraction of tokens in the shorter string
// that have a counterpart in the longer one. A token pair counts as
// matching when either token contains the other, so "St" matches
// "Street" and house numbers match exactly. Used by the fuzzy address
// tier of listing deduplication.
func WordOverlap(a, b string) float64 {
	tokensA := Tokens(a)
	tokensB := Tokens(b)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	// Compare against the longer side so partial addresses still score
	shorter, longer := tokensA, tokensB
	if len(tokensB) < len(tokensA) {
		shorter, longer = tokensB, tokensA
	}

	matched := 0
	used := make([]bool, len(longer))
	for _, tok := range shorter {
		for i, candidate := range longer {
			if used[i] {
				continue
			}
			if tokensMatch(tok, candidate) {
				used[i] = true
				matched++
				break
			}
		}
	}

	return float64(matched) / float64(len(shorter))
}

func tokensMatch(a, b string) bool {
	if a == b {
		return true
	}
	// Containment covers abbreviation pairs like "st"/"street"; single
	// characters match too aggressively to be meaningful.
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range Tokens(s) {
		set[token] = true
	}
	return set
}
