// internal/locate/locator.go

// Package locate discovers candidate regions for each entity kind.
// Markup is inconsistent across sites and over time, so discovery runs
// a broad ordered selector list and then applies coarse text-shape
// filters; precision is the extractor's job, not the locator's.
package locate

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/valpere/RealtyScrapexter/internal/dom"
	"github.com/valpere/RealtyScrapexter/internal/extract"
	"github.com/valpere/RealtyScrapexter/internal/validate"
)

// EntityKind selects which selector list and shape filter to apply
type EntityKind string

const (
	KindListing        EntityKind = "listing"
	KindReview         EntityKind = "review"
	KindRecommendation EntityKind = "recommendation"
)

// Candidate references one node of the snapshot considered a plausible
// entity region
type Candidate struct {
	Selection *goquery.Selection
	MatchedBy string
	Text      string
}

// Locator discovers candidates in a snapshot. It holds only immutable
// selector tables and may be shared across passes.
type Locator struct {
	listingSelectors        []string
	reviewSelectors         []string
	recommendationSelectors []string
}

// Config allows extending the built-in selector lists
type Config struct {
	ExtraListingSelectors        []string
	ExtraReviewSelectors         []string
	ExtraRecommendationSelectors []string
}

var defaultListingSelectors = []string{
	"[data-testid*=property-card]",
	"[data-testid*=listing]",
	"[class*=property-card i]",
	"[class*=listing-card i]",
	"[class*=listing i]",
	"[class*=property i]",
	"[itemtype*=SingleFamilyResidence]",
	"[itemtype*=Product]",
	"article",
	"li[class*=card i]",
	"div[class*=card i]",
}

var defaultReviewSelectors = []string{
	"[data-testid*=review]",
	"[class*=review-card i]",
	"[class*=review i]",
	"[itemprop=review]",
	"[class*=testimonial i]",
	"[role=article]",
	"blockquote",
}

var defaultRecommendationSelectors = []string{
	"[data-testid*=recommendation]",
	"[class*=recommendation i]",
	"[class*=testimonial i]",
	"[class*=endorsement i]",
	"blockquote",
}

// NewLocator builds a locator from the default selector tables plus
// any extras
func NewLocator(cfg Config) *Locator {
	return &Locator{
		listingSelectors:        append(append([]string{}, defaultListingSelectors...), cfg.ExtraListingSelectors...),
		reviewSelectors:         append(append([]string{}, defaultReviewSelectors...), cfg.ExtraReviewSelectors...),
		recommendationSelectors: append(append([]string{}, defaultRecommendationSelectors...), cfg.ExtraRecommendationSelectors...),
	}
}

// Locate discovers candidate regions of the given kind. Candidates are
// deduplicated by node identity; beyond document order no ranking is
// implied. An empty result is a normal outcome, not an error.
func (l *Locator) Locate(snapshot *dom.Snapshot, kind EntityKind) []Candidate {
	var selectors []string
	var filter func(string) bool

	switch kind {
	case KindListing:
		selectors = l.listingSelectors
		filter = listingShape
	case KindReview:
		selectors = l.reviewSelectors
		filter = reviewShape
	case KindRecommendation:
		selectors = l.recommendationSelectors
		filter = reviewShape
	default:
		return nil
	}

	// Matching runs selector-major so MatchedBy records the earliest
	// selector that found each node; emission order comes from the
	// tree walk below, not the selector list.
	matched := make(map[*html.Node]Candidate)
	for _, selector := range selectors {
		snapshot.Find(selector).Each(func(_ int, s *goquery.Selection) {
			id := dom.NodeID(s)
			if id == nil {
				return
			}
			if _, ok := matched[id]; ok {
				return
			}

			text := dom.Text(s)
			if !filter(text) {
				return
			}

			matched[id] = Candidate{
				Selection: s,
				MatchedBy: selector,
				Text:      text,
			}
		})
	}
	if len(matched) == 0 {
		return nil
	}

	// Emit in document order. A match nested inside another match
	// covers the same text and adds nothing; nested card wrappers are
	// the most common source of duplicate candidates.
	var candidates []Candidate
	var walk func(n *html.Node, covered bool)
	walk = func(n *html.Node, covered bool) {
		if candidate, ok := matched[n]; ok {
			if !covered {
				candidates = append(candidates, candidate)
			}
			covered = true
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, covered)
		}
	}
	for _, root := range snapshot.Selection().Nodes {
		walk(root, false)
	}
	return candidates
}

// listingShape requires a currency or address-like token and a minimum
// of substance
func listingShape(text string) bool {
	if len(text) <= 20 {
		return false
	}
	if extract.HasPriceSignal(text) {
		return true
	}
	_, ok := extract.AddressFromText(text)
	return ok
}

// reviewShape requires review-sized text plus at least two of: quoted
// prose, a person-name-shaped fragment, domain keyword presence
func reviewShape(text string) bool {
	if len(text) < 50 || len(text) > 2000 {
		return false
	}

	signals := 0
	if extract.HasQuotedText(text) {
		signals++
	}
	if containsPersonName(text) {
		signals++
	}
	if containsDomainKeyword(text) {
		signals++
	}
	return signals >= 2
}

var domainKeywords = []string{
	"agent", "home", "house", "property", "sold", "bought",
	"seller", "buyer", "closing", "realtor", "helped", "recommend",
}

func containsDomainKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// containsPersonName scans short fragments of the span for a
// person-name shape
func containsPersonName(text string) bool {
	words := strings.Fields(text)
	for i := 0; i+1 < len(words); i++ {
		pair := words[i] + " " + words[i+1]
		if validate.IsPersonName(pair) {
			return true
		}
	}
	return false
}
