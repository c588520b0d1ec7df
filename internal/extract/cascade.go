// internal/extract/cascade.go

// Package extract implements per-field cascading extraction over
// candidate regions of a document snapshot. Every field runs an
// ordered list of strategies with a uniform signature; the first
// strategy to produce a valid value wins and the rest are skipped.
// Page markup is adversarial, so no single strategy is trusted:
// scoped selectors are tried before encoded-URL decoding, before
// free-text regex matching, before whole-document fallbacks.
package extract

import "github.com/PuerkitoBio/goquery"

// Strategy attempts to extract one field value from a candidate
// region. It returns the value and true on success; a miss is an
// expected outcome, not an error.
type Strategy func(sel *goquery.Selection) (string, bool)

// firstMatch runs strategies in order and returns the first hit.
// Shared by every field cascade.
func firstMatch(sel *goquery.Selection, strategies ...Strategy) (string, bool) {
	for _, strategy := range strategies {
		if value, ok := strategy(sel); ok {
			return value, true
		}
	}
	return "", false
}

// scopedText returns a strategy that queries descendants of the
// candidate with the given selectors in order and returns the first
// non-empty text, optionally filtered by accept.
func scopedText(selectors []string, accept func(string) (string, bool)) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		for _, selector := range selectors {
			found := sel.Find(selector)
			if found.Length() == 0 {
				continue
			}
			var value string
			var ok bool
			found.EachWithBreak(func(_ int, s *goquery.Selection) bool {
				text := collapse(s.Text())
				if text == "" {
					return true
				}
				if accept == nil {
					value, ok = text, true
					return false
				}
				if v, accepted := accept(text); accepted {
					value, ok = v, true
					return false
				}
				return true
			})
			if ok {
				return value, true
			}
		}
		return "", false
	}
}

// scopedAttr returns a strategy that reads an attribute from the first
// descendant matching any of the selectors
func scopedAttr(selectors []string, attr string, accept func(string) (string, bool)) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		for _, selector := range selectors {
			var value string
			var ok bool
			sel.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
				raw, exists := s.Attr(attr)
				if !exists || raw == "" {
					return true
				}
				if accept == nil {
					value, ok = raw, true
					return false
				}
				if v, accepted := accept(raw); accepted {
					value, ok = v, true
					return false
				}
				return true
			})
			if ok {
				return value, true
			}
		}
		return "", false
	}
}

// ownText returns a strategy that applies accept to the candidate's own
// collapsed text
func ownText(accept func(string) (string, bool)) Strategy {
	return func(sel *goquery.Selection) (string, bool) {
		text := collapse(sel.Text())
		if text == "" {
			return "", false
		}
		return accept(text)
	}
}
