// internal/extract/price.go
package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	// priceTokenRegex matches currency tokens like $450,000, $1.2M,
	// $950K. The multiplier suffix must be attached to the number;
	// a detached capital ("$450,000 Move-in ready") is the next word,
	// not a suffix.
	priceTokenRegex = regexp.MustCompile(`\$\s?\d{1,3}(?:,\d{3})*(?:\.\d+)?[KMBkmb]?\b`)

	contactForPriceRegex = regexp.MustCompile(`(?i)\b(contact|call|inquire)\s+(us\s+)?for\s+(price|pricing)\b`)

	nonPriceContextRegex = regexp.MustCompile(`(?i)\b(per\s+month|/mo|monthly|hoa|tax(es)?|down\s+payment|deposit)\b`)
)

// Price sanity band. Tokens outside this band are treated as page
// noise (ad spend figures, HOA fees, tracking IDs) rather than a
// property price. Tunable via Config.
const (
	DefaultPriceMin = 100_000
	DefaultPriceMax = 100_000_000
)

// Price runs the price cascade on a candidate region: scoped selector
// lookup, then free-text scanning over the candidate's own text. The
// returned string is the original currency token; ok is false when no
// plausible price is present.
func (e *Extractor) Price(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedText(priceSelectors, e.acceptPrice),
		ownText(e.acceptPrice),
	)
}

// PriceFromText applies the free-text price rules to an arbitrary span,
// used by the full-document fallback path
func (e *Extractor) PriceFromText(text string) (string, bool) {
	return e.acceptPrice(text)
}

// acceptPrice picks the primary price token out of a text span. When
// several tokens appear (strike-through old price, estimated payment,
// nearby-homes module) the largest value inside the sanity band wins.
// A "contact for price" phrase counts as a valid price signal.
func (e *Extractor) acceptPrice(text string) (string, bool) {
	if contactForPriceRegex.MatchString(text) {
		return "Contact for price", true
	}

	tokens := priceTokenRegex.FindAllString(text, -1)
	if len(tokens) == 0 {
		return "", false
	}

	type scored struct {
		token string
		value float64
	}
	candidates := make([]scored, 0, len(tokens))
	for _, token := range tokens {
		value, err := ParsePriceValue(token)
		if err != nil {
			continue
		}
		if value < e.priceMin || value > e.priceMax {
			continue
		}
		candidates = append(candidates, scored{token: normalizePriceToken(token), value: value})
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].value > candidates[j].value
	})
	return candidates[0].token, true
}

// ParsePriceValue converts a currency token to its numeric value,
// honoring K/M/B suffix multipliers. Float parsing preserves decimals
// in tokens like $1.2M.
func ParsePriceValue(token string) (float64, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(token), "$"))
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	multiplier := 1.0
	if len(cleaned) > 0 {
		switch cleaned[len(cleaned)-1] {
		case 'K', 'k':
			multiplier = 1e3
			cleaned = cleaned[:len(cleaned)-1]
		case 'M', 'm':
			multiplier = 1e6
			cleaned = cleaned[:len(cleaned)-1]
		case 'B', 'b':
			multiplier = 1e9
			cleaned = cleaned[:len(cleaned)-1]
		}
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return 0, err
	}
	return value * multiplier, nil
}

// HasPriceSignal reports whether a span contains any currency token or
// a contact-for-price phrase, regardless of the sanity band. Used by
// the locator's coarse text-shape filter.
func HasPriceSignal(text string) bool {
	return priceTokenRegex.MatchString(text) || contactForPriceRegex.MatchString(text)
}

// IsRecurringCharge reports whether the span's price tokens describe a
// recurring or ancillary charge rather than a sale price
func IsRecurringCharge(text string) bool {
	return nonPriceContextRegex.MatchString(text)
}

func normalizePriceToken(token string) string {
	return strings.ReplaceAll(strings.TrimSpace(token), "$ ", "$")
}
