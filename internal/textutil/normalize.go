// internal/textutil/normalize.go

// Package textutil provides text canonicalization and similarity
// scoring used by the extraction and deduplication layers.
package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	punctTrimRegex  = regexp.MustCompile(`[.,;:!?]+$`)

	caseFolder = cases.Fold()
	titleCaser = cases.Title(language.AmericanEnglish, cases.NoLower)
)

// streetSuffixes maps long street-suffix forms to their canonical
// abbreviations. Keys are matched case-insensitively on word
// boundaries.
var streetSuffixes = map[string]string{
	"street":    "St",
	"avenue":    "Ave",
	"boulevard": "Blvd",
	"drive":     "Dr",
	"road":      "Rd",
	"lane":      "Ln",
	"court":     "Ct",
	"place":     "Pl",
	"circle":    "Cir",
	"terrace":   "Ter",
	"highway":   "Hwy",
	"parkway":   "Pkwy",
	"square":    "Sq",
	"trail":     "Trl",
	"way":       "Way",
}

// CollapseWhitespace trims the string and collapses runs of whitespace
// into single spaces
func CollapseWhitespace(s string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(s), " ")
}

// AbbreviateStreetSuffixes rewrites long street-suffix words to their
// canonical abbreviations, preserving the rest of the string
func AbbreviateStreetSuffixes(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		bare := punctTrimRegex.ReplaceAllString(word, "")
		if abbrev, ok := streetSuffixes[strings.ToLower(bare)]; ok {
			trailing := word[len(bare):]
			words[i] = abbrev + trailing
		}
	}
	return strings.Join(words, " ")
}

// NormalizeAddress canonicalizes an address for comparison: whitespace
// collapse, street-suffix abbreviation, then Unicode case folding.
// The result is suitable for equality checks, not display.
func NormalizeAddress(s string) string {
	return caseFolder.String(AbbreviateStreetSuffixes(CollapseWhitespace(s)))
}

// Normalize canonicalizes free text for comparison: whitespace collapse
// plus Unicode case folding
func Normalize(s string) string {
	return caseFolder.String(CollapseWhitespace(s))
}

// TitleCase capitalizes each word without lowering the rest, matching
// how names and statuses appear on well-formed pages
func TitleCase(s string) string {
	return titleCaser.String(s)
}

// Tokens splits text into lowercase word tokens, dropping punctuation-
// only fragments
func Tokens(s string) []string {
	fields := strings.FieldsFunc(Normalize(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
