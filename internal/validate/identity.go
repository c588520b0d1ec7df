// internal/validate/identity.go
package validate

import (
	"regexp"
	"strings"
)

var (
	digitRegex         = regexp.MustCompile(`\d`)
	currencyRegex      = regexp.MustCompile(`\$\s?\d`)
	bedBathOnlyRegex   = regexp.MustCompile(`(?i)^\s*\d+(\.\d+)?\s*(bed|bd|bath|ba)s?\b`)
	stateZipRegex      = regexp.MustCompile(`\b[A-Z]{2}\b[, ]*\d{5}(-\d{4})?`)
	capitalizedCityTwo = regexp.MustCompile(`\b[A-Z][a-z]+(?: [A-Z][a-z]+)*,?\s+[A-Z]{2}\b`)
	capitalWordRegex   = regexp.MustCompile(`^[A-Z][a-zA-Z'\-]+$`)
)

// streetSuffixTokens are the suffix words accepted by the address
// shape check, long and abbreviated forms alike
var streetSuffixTokens = map[string]bool{
	"st": true, "street": true, "ave": true, "avenue": true,
	"rd": true, "road": true, "dr": true, "drive": true,
	"blvd": true, "boulevard": true, "ln": true, "lane": true,
	"ct": true, "court": true, "pl": true, "place": true,
	"cir": true, "circle": true, "ter": true, "terrace": true,
	"hwy": true, "highway": true, "pkwy": true, "parkway": true,
	"sq": true, "square": true, "trl": true, "trail": true,
	"way": true, "loop": true,
}

// forbiddenNameTokens reject business and domain words from person
// names
var forbiddenNameTokens = map[string]bool{
	"realty": true, "group": true, "team": true, "homes": true,
	"properties": true, "property": true, "real": true, "estate": true,
	"llc": true, "inc": true, "brokerage": true, "associates": true,
	"agency": true, "company": true, "corp": true, "mortgage": true,
	"listings": true, "realtor": true, "realtors": true, "www": true,
	"com": true, "http": true, "https": true,
}

// IsValidAddress reports whether text has the shape of a street
// address. Accepted shapes: digit plus street-suffix token, capitalized
// city plus two-letter state, or a capitalized multi-word run plus a
// street-suffix token. Currency tokens and bare bed/bath fragments are
// rejected outright.
func IsValidAddress(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > 200 {
		return false
	}
	if currencyRegex.MatchString(trimmed) {
		return false
	}
	if bedBathOnlyRegex.MatchString(trimmed) {
		return false
	}

	hasSuffix := containsStreetSuffix(trimmed)
	if digitRegex.MatchString(trimmed) && hasSuffix {
		return true
	}
	if stateZipRegex.MatchString(trimmed) || capitalizedCityTwo.MatchString(trimmed) {
		return true
	}
	return hasSuffix && countCapitalizedWords(trimmed) >= 2
}

// IsPersonName reports whether text has the shape of a person's name:
// at least two capitalized words and no business or domain tokens
func IsPersonName(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len(trimmed) > 60 {
		return false
	}
	if digitRegex.MatchString(trimmed) {
		return false
	}

	words := strings.Fields(trimmed)
	if len(words) < 2 || len(words) > 5 {
		return false
	}

	capitalized := 0
	for _, word := range words {
		if forbiddenNameTokens[strings.ToLower(strings.Trim(word, ".,"))] {
			return false
		}
		if capitalWordRegex.MatchString(word) {
			capitalized++
		}
	}
	return capitalized >= 2
}

func containsStreetSuffix(text string) bool {
	for _, word := range strings.Fields(text) {
		if streetSuffixTokens[strings.ToLower(strings.Trim(word, ".,"))] {
			return true
		}
	}
	return false
}

func countCapitalizedWords(text string) int {
	count := 0
	for _, word := range strings.Fields(text) {
		if capitalWordRegex.MatchString(strings.Trim(word, ".,")) {
			count++
		}
	}
	return count
}
