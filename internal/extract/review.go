// internal/extract/review.go
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/RealtyScrapexter/internal/textutil"
	"github.com/valpere/RealtyScrapexter/internal/validate"
)

var (
	ratingValueRegex = regexp.MustCompile(`\b([1-5](?:\.\d)?)\s*(?:/\s*5|out of 5|stars?)?\b`)

	dateRegex = regexp.MustCompile(`(?i)\b(?:(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4}|\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2})\b`)

	relativeDateRegex = regexp.MustCompile(`(?i)\b(?:\d+|a|an)\s+(?:day|week|month|year)s?\s+ago\b`)

	quotedTextRegex = regexp.MustCompile(`[“"”]([^“"”]{30,1000})[“"”]`)

	verifiedSourceRegex = regexp.MustCompile(`(?i)\b(verified (review|partner|client)|zillow|google|yelp|testimonial)\b`)
)

// ReviewAuthor extracts the reviewer's name from a candidate region.
// Misses default to "Anonymous" at the builder level, which then
// triggers the prompt-phrase screen.
func (e *Extractor) ReviewAuthor(sel *goquery.Selection) (string, bool) {
	return scopedText(reviewAuthorSelectors, func(text string) (string, bool) {
		text = strings.TrimPrefix(collapse(text), "- ")
		text = strings.TrimPrefix(text, "— ")
		if validate.IsPersonName(text) {
			return text, true
		}
		// Single first names are common on review widgets
		if len(strings.Fields(text)) == 1 && len(text) >= 2 && len(text) <= 20 &&
			strings.ToUpper(text[:1]) == text[:1] && !strings.ContainsAny(text, "0123456789") {
			return text, true
		}
		return "", false
	})(sel)
}

// ReviewDate extracts a review date string from a candidate region.
// Relative forms ("2 months ago") are kept verbatim.
func (e *Extractor) ReviewDate(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedAttr(reviewDateSelectors, "datetime", func(val string) (string, bool) {
			val = strings.TrimSpace(val)
			return val, val != ""
		}),
		scopedText(reviewDateSelectors, acceptDate),
		ownText(acceptDate),
	)
}

// ReviewRating extracts a 1–5 rating from a candidate region
func (e *Extractor) ReviewRating(sel *goquery.Selection) (float64, bool) {
	value, ok := firstMatch(sel,
		scopedAttr(reviewRatingSelectors, "aria-label", acceptRating),
		scopedText(reviewRatingSelectors, acceptRating),
	)
	if !ok {
		return 0, false
	}
	return parseRating(value)
}

// ReviewText extracts the body of a review from a candidate region.
// Quoted spans win over scoped selectors because quotes survive markup
// churn. Length bounds count runes, not bytes.
func (e *Extractor) ReviewText(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		ownText(func(text string) (string, bool) {
			if m := quotedTextRegex.FindStringSubmatch(text); m != nil {
				return collapse(m[1]), true
			}
			return "", false
		}),
		scopedText(reviewTextSelectors, func(text string) (string, bool) {
			n := utf8.RuneCountInString(text)
			if n < 30 || n > 1000 {
				return "", false
			}
			return text, true
		}),
	)
}

// ReviewTextRaw recovers review text from the region's raw text when
// neither a quotation nor a scoped element yields one. Nothing in the
// markup vouches for raw text, so callers hold it to the stricter
// prose gate.
func (e *Extractor) ReviewTextRaw(sel *goquery.Selection) (string, bool) {
	return ownText(func(text string) (string, bool) {
		if utf8.RuneCountInString(text) < 30 {
			return "", false
		}
		return truncateRunes(text, 1000), true
	})(sel)
}

// ReviewSource tags the review with its origin when the region names
// one (verified widgets, syndicated review providers)
func (e *Extractor) ReviewSource(sel *goquery.Selection) (string, bool) {
	return ownText(func(text string) (string, bool) {
		m := verifiedSourceRegex.FindString(text)
		if m == "" {
			return "", false
		}
		return textutil.TitleCase(strings.ToLower(m)), true
	})(sel)
}

// HasQuotedText reports whether a span contains a quoted run long
// enough to be review prose. Used by the locator's review filter.
func HasQuotedText(text string) bool {
	return quotedTextRegex.MatchString(text)
}

func acceptDate(text string) (string, bool) {
	if m := dateRegex.FindString(text); m != "" {
		return m, true
	}
	if m := relativeDateRegex.FindString(text); m != "" {
		return m, true
	}
	return "", false
}

func acceptRating(text string) (string, bool) {
	if m := ratingValueRegex.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	return "", false
}

func parseRating(value string) (float64, bool) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 1 || parsed > 5 {
		return 0, false
	}
	return parsed, true
}
