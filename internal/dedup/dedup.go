// internal/dedup/dedup.go

// Package dedup decides whether a newly built entity duplicates one
// already collected. Rendered pages repeat the same listing across
// carousels, map pins, and "similar homes" modules, frequently with
// partial data, so exact-identifier matching alone is not enough.
package dedup

import (
	"strings"

	"github.com/valpere/RealtyScrapexter/internal/textutil"
	"github.com/valpere/RealtyScrapexter/pkg/types"
)

// Thresholds are empirically tuned; they are parameters rather than
// constants so callers can recalibrate without a code change.
type Config struct {
	// WordOverlapThreshold is the fuzzy-address tier cutoff for
	// minimal-data listings
	WordOverlapThreshold float64

	// TextSimilarityThreshold is the Jaccard cutoff for review text
	TextSimilarityThreshold float64

	// AuthorSimilarityThreshold is the lower Jaccard cutoff applied
	// when two reviews share an author
	AuthorSimilarityThreshold float64
}

// Default threshold values
const (
	DefaultWordOverlapThreshold      = 0.70
	DefaultTextSimilarityThreshold   = 0.80
	DefaultAuthorSimilarityThreshold = 0.60

	minimalDataFieldCount = 2
)

// Deduplicator applies the tiered duplicate policy. Stateless; safe to
// share across passes.
type Deduplicator struct {
	cfg Config
}

// New creates a deduplicator, filling zero-valued thresholds with
// defaults
func New(cfg Config) *Deduplicator {
	if cfg.WordOverlapThreshold <= 0 {
		cfg.WordOverlapThreshold = DefaultWordOverlapThreshold
	}
	if cfg.TextSimilarityThreshold <= 0 {
		cfg.TextSimilarityThreshold = DefaultTextSimilarityThreshold
	}
	if cfg.AuthorSimilarityThreshold <= 0 {
		cfg.AuthorSimilarityThreshold = DefaultAuthorSimilarityThreshold
	}
	return &Deduplicator{cfg: cfg}
}

// IsDuplicateListing reports whether candidate duplicates any listing
// in existing. Tiers, first hit wins:
//
//  1. exact MLS identifier match
//  2. exact normalized-address match
//  3. fuzzy address word overlap, minimal-data listings only
//  4. composite price+beds+baths+sqft match, all four present
func (d *Deduplicator) IsDuplicateListing(candidate *types.Listing, existing []types.Listing) bool {
	for i := range existing {
		if d.listingsMatch(candidate, &existing[i]) {
			return true
		}
	}
	return false
}

func (d *Deduplicator) listingsMatch(a, b *types.Listing) bool {
	// Tier 1: exact external identifier
	if a.MLSNumber != "" && b.MLSNumber != "" {
		if strings.EqualFold(a.MLSNumber, b.MLSNumber) {
			return true
		}
	}

	// Tier 2: exact normalized address
	if a.Address != "" && b.Address != "" {
		if textutil.NormalizeAddress(a.Address) == textutil.NormalizeAddress(b.Address) {
			return true
		}
	}

	// Tier 3: fuzzy address, only when both sides are minimal-data.
	// Fuller listings carry enough signal for the exact tiers, and
	// fuzzy matching them would merge distinct homes on the same
	// street.
	if a.FieldCount() <= minimalDataFieldCount && b.FieldCount() <= minimalDataFieldCount {
		if a.Address != "" && b.Address != "" {
			if textutil.WordOverlap(a.Address, b.Address) >= d.cfg.WordOverlapThreshold {
				return true
			}
		}
	}

	// Tier 4: composite attribute match, all four present on both
	if a.HasPrice() && b.HasPrice() &&
		a.Beds != nil && b.Beds != nil &&
		a.Baths != nil && b.Baths != nil &&
		a.Sqft != nil && b.Sqft != nil {
		if normalizePrice(a.Price) == normalizePrice(b.Price) &&
			*a.Beds == *b.Beds && *a.Baths == *b.Baths && *a.Sqft == *b.Sqft {
			return true
		}
	}

	return false
}

// IsDuplicateReview reports whether candidate duplicates any review in
// existing: Jaccard text similarity above the text threshold, or the
// same author with similarity above the lower author threshold.
func (d *Deduplicator) IsDuplicateReview(candidate *types.Review, existing []types.Review) bool {
	for i := range existing {
		if d.reviewTextsMatch(candidate.Author, candidate.Text, existing[i].Author, existing[i].Text) {
			return true
		}
	}
	return false
}

// IsDuplicateRecommendation applies the review rule to recommendations
func (d *Deduplicator) IsDuplicateRecommendation(candidate *types.Recommendation, existing []types.Recommendation) bool {
	for i := range existing {
		if d.reviewTextsMatch(candidate.Author, candidate.Text, existing[i].Author, existing[i].Text) {
			return true
		}
	}
	return false
}

// CrossMatchesReview reports whether a recommendation repeats a
// collected review. Pages frequently surface the same text in both
// sections.
func (d *Deduplicator) CrossMatchesReview(candidate *types.Recommendation, reviews []types.Review) bool {
	for i := range reviews {
		if d.reviewTextsMatch(candidate.Author, candidate.Text, reviews[i].Author, reviews[i].Text) {
			return true
		}
	}
	return false
}

func (d *Deduplicator) reviewTextsMatch(authorA, textA, authorB, textB string) bool {
	similarity := textutil.JaccardSimilarity(textA, textB)
	if similarity > d.cfg.TextSimilarityThreshold {
		return true
	}
	sameAuthor := authorA != "" && strings.EqualFold(authorA, authorB)
	return sameAuthor && similarity > d.cfg.AuthorSimilarityThreshold
}

func normalizePrice(price string) string {
	return strings.ReplaceAll(strings.TrimSpace(price), " ", "")
}
