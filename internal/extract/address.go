// internal/extract/address.go
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/RealtyScrapexter/internal/validate"
)

var (
	// streetLineRegex matches a numbered street line in free text,
	// e.g. "230 W Old Main Rd" or "1420 Lakeshore Blvd Apt 4"
	streetLineRegex = regexp.MustCompile(`\b\d{1,6}\s+(?:[A-Z][a-zA-Z'.]*\s+){0,4}(?:St|Street|Ave|Avenue|Rd|Road|Dr|Drive|Blvd|Boulevard|Ln|Lane|Ct|Court|Pl|Place|Cir|Circle|Ter|Terrace|Hwy|Highway|Pkwy|Parkway|Sq|Square|Trl|Trail|Way|Loop)\b\.?(?:\s*,?\s*(?:Apt|Unit|Ste|#)\s*\w+)?`)

	// cityStateZipRegex matches the tail of a full address line
	cityStateZipRegex = regexp.MustCompile(`\b([A-Z][a-zA-Z']+(?:\s[A-Z][a-zA-Z']+)*),?\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)\b`)

	// slugSegmentRegex recognizes encoded address slugs embedded in
	// detail links: street_city_state_zip_id with hyphenated words
	slugSegmentRegex = regexp.MustCompile(`^[A-Za-z0-9%.-]+_[A-Za-z0-9%.-]+_[A-Za-z]{2}_\d{5}(?:_[A-Za-z0-9-]+)?$`)

	zipRegex = regexp.MustCompile(`^\d{5}$`)
)

// Address runs the address cascade on a candidate region. The encoded
// detail-link slug is tried before free text because when present it
// is the most reliable signal on the page.
func (e *Extractor) Address(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedText(addressSelectors, acceptAddress),
		e.addressFromDetailLink,
		ownText(addressFromFreeText),
	)
}

// addressFromDetailLink scans outbound links on the candidate for an
// encoded address slug and decodes it
func (e *Extractor) addressFromDetailLink(sel *goquery.Selection) (string, bool) {
	var address string
	var ok bool
	sel.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if decoded, decodedOK := DecodeURLAddress(href); decodedOK {
			address, ok = decoded, true
			return false
		}
		return true
	})
	return address, ok
}

// DecodeURLAddress extracts an address from an encoded detail-link
// slug of the form street_city_state_zip_id, where words inside each
// segment are hyphen-separated:
//
//	/detail/230-W-Old-Main-Rd_Lowell_ME_04493_M38440-85037
//	→ "230 W Old Main Rd, Lowell, ME 04493"
func DecodeURLAddress(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	// Strip query/fragment before slicing path segments
	if idx := strings.IndexAny(href, "?#"); idx >= 0 {
		href = href[:idx]
	}

	segments := strings.Split(strings.Trim(href, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		if !slugSegmentRegex.MatchString(segment) {
			continue
		}

		parts := strings.Split(segment, "_")
		if len(parts) < 4 {
			continue
		}

		street := decodeSlugPart(parts[0])
		city := decodeSlugPart(parts[1])
		state := strings.ToUpper(parts[2])
		zip := parts[3]

		if street == "" || city == "" || !zipRegex.MatchString(zip) {
			continue
		}

		address := street + ", " + city + ", " + state + " " + zip
		if validate.IsValidAddress(address) {
			return address, true
		}
	}
	return "", false
}

// decodeSlugPart URL-decodes one slug segment and replaces hyphen
// separators with spaces
func decodeSlugPart(part string) string {
	if unescaped, err := url.PathUnescape(part); err == nil {
		part = unescaped
	}
	return collapse(strings.ReplaceAll(part, "-", " "))
}

// addressFromFreeText applies the ordered address regexes to a span of
// candidate text
func addressFromFreeText(text string) (string, bool) {
	// Full street + city/state/zip line first
	if street := streetLineRegex.FindString(text); street != "" {
		rest := text[strings.Index(text, street)+len(street):]
		if m := cityStateZipRegex.FindStringSubmatch(rest); m != nil {
			full := collapse(street) + ", " + m[1] + ", " + m[2] + " " + m[3]
			if validate.IsValidAddress(full) {
				return full, true
			}
		}
		if validate.IsValidAddress(street) {
			return collapse(street), true
		}
	}
	if m := cityStateZipRegex.FindString(text); m != "" && validate.IsValidAddress(m) {
		return collapse(m), true
	}
	return "", false
}

// acceptAddress validates text pulled from address-scoped selectors
func acceptAddress(text string) (string, bool) {
	if validate.IsValidAddress(text) {
		return collapse(text), true
	}
	// Scoped nodes sometimes wrap the address in extra chrome; retry
	// the free-text rules before giving up on the node.
	return addressFromFreeText(text)
}

// AddressFromText exposes the free-text address rules for the
// full-document fallback path
func AddressFromText(text string) (string, bool) {
	return addressFromFreeText(text)
}
