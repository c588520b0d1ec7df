// internal/extract/fields.go
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	bedsRegex = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*(?:bd|bds|bed|beds|bedrooms?)\b`)

	bathsRegex = regexp.MustCompile(`(?i)\b(\d{1,2}(?:\.\d)?)\s*(?:ba|bath|baths|bathrooms?)\b`)

	sqftRegex = regexp.MustCompile(`(?i)\b([\d,]{3,10})\s*(?:sq\.?\s?ft\.?|sqft|square\s+feet)\b`)

	statusRegex = regexp.MustCompile(`(?i)\b(for sale|sold|pending|contingent|active|off market|coming soon|new construction|foreclosure)\b`)

	propertyTypeRegex = regexp.MustCompile(`(?i)\b(single[- ]family|condo(?:minium)?|townhou?se|multi[- ]family|apartment|mobile home|land|lot|duplex|co-?op)\b`)

	mlsRegex = regexp.MustCompile(`(?i)\bMLS\s?#?:?\s?([A-Z0-9-]{5,20})\b`)

	placeholderImageRegex = regexp.MustCompile(`(?i)(placeholder|spacer|blank|pixel|1x1|loading|data:image/gif)`)
)

// Beds extracts the bedroom count from a candidate region
func (e *Extractor) Beds(sel *goquery.Selection) (float64, bool) {
	value, ok := firstMatch(sel,
		scopedText(bedsSelectors, acceptNumericWith(bedsRegex)),
		ownText(acceptNumericWith(bedsRegex)),
	)
	if !ok {
		return 0, false
	}
	return parseFloatToken(value)
}

// Baths extracts the bathroom count from a candidate region
func (e *Extractor) Baths(sel *goquery.Selection) (float64, bool) {
	value, ok := firstMatch(sel,
		scopedText(bathsSelectors, acceptNumericWith(bathsRegex)),
		ownText(acceptNumericWith(bathsRegex)),
	)
	if !ok {
		return 0, false
	}
	return parseFloatToken(value)
}

// Sqft extracts the interior square footage from a candidate region
func (e *Extractor) Sqft(sel *goquery.Selection) (int, bool) {
	value, ok := firstMatch(sel,
		scopedText(sqftSelectors, acceptNumericWith(sqftRegex)),
		ownText(acceptNumericWith(sqftRegex)),
	)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// Status extracts the market status from a candidate region in
// canonical title case ("For Sale", "Sold", ...)
func (e *Extractor) Status(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedText(statusSelectors, acceptStatus),
		ownText(acceptStatus),
	)
}

// StatusFromText applies the status rules to an arbitrary span
func StatusFromText(text string) (string, bool) {
	return acceptStatus(text)
}

// BedsFromText applies the bedroom rules to an arbitrary span
func BedsFromText(text string) (float64, bool) {
	if m := bedsRegex.FindStringSubmatch(text); m != nil {
		return parseFloatToken(m[1])
	}
	return 0, false
}

// BathsFromText applies the bathroom rules to an arbitrary span
func BathsFromText(text string) (float64, bool) {
	if m := bathsRegex.FindStringSubmatch(text); m != nil {
		return parseFloatToken(m[1])
	}
	return 0, false
}

// SqftFromText applies the square-footage rules to an arbitrary span
func SqftFromText(text string) (int, bool) {
	m := sqftRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	parsed, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// PropertyType extracts the property type from a candidate region
func (e *Extractor) PropertyType(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedText(propertyTypeSelectors, acceptPropertyType),
		ownText(acceptPropertyType),
	)
}

// MLSNumber extracts an MLS identifier from a candidate region
func (e *Extractor) MLSNumber(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		ownText(func(text string) (string, bool) {
			if m := mlsRegex.FindStringSubmatch(text); m != nil {
				return strings.ToUpper(m[1]), true
			}
			return "", false
		}),
	)
}

// Description extracts the listing description from a candidate region
func (e *Extractor) Description(sel *goquery.Selection) (string, bool) {
	return scopedText(descriptionSelectors, func(text string) (string, bool) {
		if utf8.RuneCountInString(text) < 30 {
			return "", false
		}
		return truncateRunes(text, 2000), true
	})(sel)
}

// DetailURL extracts the listing's detail-page link, resolved against
// the snapshot base URL
func (e *Extractor) DetailURL(sel *goquery.Selection) (string, bool) {
	return scopedAttr(detailLinkSelectors, "href", func(href string) (string, bool) {
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return "", false
		}
		return e.snapshot.ResolveURL(href), true
	})(sel)
}

// Photos collects the ordered photo URLs within a candidate region,
// skipping placeholder and tracking images. The first usable photo
// doubles as the primary image.
func (e *Extractor) Photos(sel *goquery.Selection) []string {
	seen := make(map[string]bool)
	var photos []string
	for _, selector := range photoSelectors {
		sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
			src, _ := s.Attr("src")
			if src == "" {
				src, _ = s.Attr("data-src")
			}
			src = strings.TrimSpace(src)
			if src == "" || placeholderImageRegex.MatchString(src) {
				return
			}
			resolved := e.snapshot.ResolveURL(src)
			if !seen[resolved] {
				seen[resolved] = true
				photos = append(photos, resolved)
			}
		})
		if len(photos) > 0 {
			break
		}
	}
	return photos
}

// acceptNumericWith returns an accept func that applies re and returns
// its first capture group
func acceptNumericWith(re *regexp.Regexp) func(string) (string, bool) {
	return func(text string) (string, bool) {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		return "", false
	}
}

func acceptStatus(text string) (string, bool) {
	m := statusRegex.FindString(text)
	if m == "" {
		return "", false
	}
	return canonicalStatus(m), true
}

func acceptPropertyType(text string) (string, bool) {
	m := propertyTypeRegex.FindString(text)
	if m == "" {
		return "", false
	}
	return canonicalPropertyType(m), true
}

func canonicalStatus(s string) string {
	switch strings.ToLower(collapse(s)) {
	case "for sale", "active":
		return "For Sale"
	case "sold":
		return "Sold"
	case "pending":
		return "Pending"
	case "contingent":
		return "Contingent"
	case "off market":
		return "Off Market"
	case "coming soon":
		return "Coming Soon"
	case "new construction":
		return "New Construction"
	case "foreclosure":
		return "Foreclosure"
	default:
		return collapse(s)
	}
}

func canonicalPropertyType(s string) string {
	switch strings.ToLower(strings.ReplaceAll(collapse(s), "-", " ")) {
	case "single family":
		return "Single Family"
	case "condo", "condominium":
		return "Condo"
	case "townhouse", "townhome":
		return "Townhouse"
	case "multi family":
		return "Multi-Family"
	case "apartment":
		return "Apartment"
	case "mobile home":
		return "Mobile Home"
	case "land", "lot":
		return "Land"
	case "duplex":
		return "Duplex"
	case "coop", "co op":
		return "Co-op"
	default:
		return collapse(s)
	}
}

func parseFloatToken(s string) (float64, bool) {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
