// internal/extract/overall.go
package extract

import (
	"regexp"
	"strconv"

	"github.com/valpere/RealtyScrapexter/internal/dom"
)

var (
	overallRatingRegex = regexp.MustCompile(`\b([1-5]\.\d)\b\s*(?:/\s*5|out of 5|stars?)?`)

	reviewCountRegex = regexp.MustCompile(`\(?\b(\d{1,5})\b\)?\s*(?:reviews?|ratings?)`)
)

var overallSelectors = []string{
	"[data-testid*=overall]",
	"[data-testid*=rating-summary]",
	"[class*=overall-rating i]",
	"[class*=rating-summary i]",
	"[itemprop=aggregateRating]",
}

// Overall extracts the page-level aggregate rating and review count
// for an agent. Scoped aggregate-rating markers are tried first; the
// document's full text is the fallback.
func (e *Extractor) Overall() (rating float64, count int, ok bool) {
	for _, selector := range overallSelectors {
		sel := e.snapshot.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		text := dom.Text(sel.First())
		if r, c, found := overallFromText(text); found {
			return r, c, true
		}
	}
	return overallFromText(e.snapshot.FullText())
}

func overallFromText(text string) (float64, int, bool) {
	m := overallRatingRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, 0, false
	}
	rating, err := strconv.ParseFloat(m[1], 64)
	if err != nil || rating < 1 || rating > 5 {
		return 0, 0, false
	}

	count := 0
	if c := reviewCountRegex.FindStringSubmatch(text); c != nil {
		if parsed, err := strconv.Atoi(c[1]); err == nil {
			count = parsed
		}
	}
	return rating, count, true
}
