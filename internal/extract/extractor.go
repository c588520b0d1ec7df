// internal/extract/extractor.go
package extract

import (
	"strings"

	"github.com/valpere/RealtyScrapexter/internal/dom"
)

// Extractor runs field cascades against candidate regions of one
// snapshot. It is stateless apart from its immutable configuration and
// safe to reuse across collection passes.
type Extractor struct {
	snapshot *dom.Snapshot
	priceMin float64
	priceMax float64
}

// Config carries extractor tunables. Zero values fall back to the
// package defaults.
type Config struct {
	PriceMin float64
	PriceMax float64
}

// New creates an extractor bound to one snapshot
func New(snapshot *dom.Snapshot, cfg Config) *Extractor {
	e := &Extractor{
		snapshot: snapshot,
		priceMin: cfg.PriceMin,
		priceMax: cfg.PriceMax,
	}
	if e.priceMin <= 0 {
		e.priceMin = DefaultPriceMin
	}
	if e.priceMax <= 0 {
		e.priceMax = DefaultPriceMax
	}
	return e
}

// Snapshot returns the snapshot this extractor is bound to
func (e *Extractor) Snapshot() *dom.Snapshot {
	return e.snapshot
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes shortens s to at most n runes without splitting a
// multi-byte rune
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
