// internal/dedup/dedup_test.go
package dedup

import (
	"testing"

	"github.com/valpere/RealtyScrapexter/pkg/types"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func fullListing(price, address string, beds, baths float64, sqft int) types.Listing {
	return types.Listing{
		Price:   price,
		Address: address,
		Beds:    floatPtr(beds),
		Baths:   floatPtr(baths),
		Sqft:    intPtr(sqft),
	}
}

func TestIsDuplicateListingMLSTier(t *testing.T) {
	d := New(Config{})

	existing := []types.Listing{{Price: "$450,000", MLSNumber: "A1234567"}}

	candidate := &types.Listing{Price: "$455,000", MLSNumber: "a1234567"}
	if !d.IsDuplicateListing(candidate, existing) {
		t.Error("expected case-insensitive MLS match to deduplicate")
	}

	other := &types.Listing{Price: "$455,000", MLSNumber: "B7654321"}
	if d.IsDuplicateListing(other, existing) {
		t.Error("different MLS numbers should not deduplicate")
	}
}

func TestIsDuplicateListingAddressTier(t *testing.T) {
	d := New(Config{})

	existing := []types.Listing{{Price: "$450,000", Address: "123 Main Street, Lowell, ME 04493"}}

	tests := []struct {
		name      string
		candidate types.Listing
		expected  bool
	}{
		{
			name:      "abbreviated suffix matches",
			candidate: types.Listing{Price: "$450,000", Address: "123 Main St, Lowell, ME 04493"},
			expected:  true,
		},
		{
			name:      "case differences match",
			candidate: types.Listing{Price: "$450,000", Address: "123 MAIN STREET, LOWELL, ME 04493"},
			expected:  true,
		},
		{
			name:      "different house number",
			candidate: types.Listing{Price: "$450,000", Address: "125 Main St, Lowell, ME 04493"},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := d.IsDuplicateListing(&tt.candidate, existing); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestIsDuplicateListingFuzzyTier(t *testing.T) {
	d := New(Config{})

	// Minimal-data pair (price + address only): fuzzy tier applies
	existing := []types.Listing{{Price: "$450,000", Address: "123 Main St"}}
	candidate := &types.Listing{Price: "$455,000", Address: "123 Main St, Lowell"}
	if !d.IsDuplicateListing(candidate, existing) {
		t.Error("expected fuzzy overlap to deduplicate minimal-data listings")
	}

	// Full-data pair on the same street: fuzzy tier must not apply
	fullA := fullListing("$450,000", "123 Main St Apt 1", 3, 2, 1500)
	fullB := fullListing("$455,000", "123 Main St Apt 2", 2, 1, 900)
	if d.IsDuplicateListing(&fullB, []types.Listing{fullA}) {
		t.Error("full-data listings must not fuzzy-match on address overlap")
	}
}

func TestIsDuplicateListingCompositeTier(t *testing.T) {
	d := New(Config{})

	existing := []types.Listing{fullListing("$450,000", "", 3, 2, 1540)}

	same := fullListing("$450,000", "", 3, 2, 1540)
	if !d.IsDuplicateListing(&same, existing) {
		t.Error("expected composite price+beds+baths+sqft match to deduplicate")
	}

	differentSqft := fullListing("$450,000", "", 3, 2, 1600)
	if d.IsDuplicateListing(&differentSqft, existing) {
		t.Error("different sqft should break the composite match")
	}

	missingBaths := types.Listing{
		Price: "$450,000",
		Beds:  floatPtr(3),
		Sqft:  intPtr(1540),
	}
	if d.IsDuplicateListing(&missingBaths, existing) {
		t.Error("composite tier requires all four fields on both sides")
	}
}

func TestListingDedupSymmetry(t *testing.T) {
	d := New(Config{})

	pairs := [][2]types.Listing{
		{
			{Price: "$450,000", Address: "123 Main St"},
			{Price: "$455,000", Address: "123 Main Street, Lowell"},
		},
		{
			fullListing("$450,000", "88 Elm St", 3, 2, 1540),
			fullListing("$450,000", "90 Elm St", 3, 2, 1540),
		},
		{
			{Price: "$450,000", MLSNumber: "A1234567"},
			{Price: "$999,000", MLSNumber: "A1234567"},
		},
	}

	for i, pair := range pairs {
		ab := d.IsDuplicateListing(&pair[0], []types.Listing{pair[1]})
		ba := d.IsDuplicateListing(&pair[1], []types.Listing{pair[0]})
		if ab != ba {
			t.Errorf("pair %d: duplicate decision not symmetric: %v vs %v", i, ab, ba)
		}
	}
}

func TestDuplicateAddressScenario(t *testing.T) {
	// The same home surfaced by a card, a map pin, and a carousel tile
	// must collapse to a single listing.
	d := New(Config{})

	var collected []types.Listing
	incoming := []types.Listing{
		{Price: "$450,000", Address: "123 Main St, Lowell, ME 04493"},
		{Price: "$450,000", Address: "123 Main Street, Lowell, ME 04493"},
		{Price: "$450,000", Address: "123 MAIN ST, LOWELL, ME 04493"},
	}

	for i := range incoming {
		if !d.IsDuplicateListing(&incoming[i], collected) {
			collected = append(collected, incoming[i])
		}
	}

	if len(collected) != 1 {
		t.Fatalf("expected 1 unique listing, got %d", len(collected))
	}
}

func TestIsDuplicateReview(t *testing.T) {
	d := New(Config{})

	existing := []types.Review{{
		Author: "Jane Smith",
		Text:   "She helped us find our dream home and was responsive at every step of the process",
	}}

	tests := []struct {
		name      string
		candidate types.Review
		expected  bool
	}{
		{
			name: "near identical text",
			candidate: types.Review{
				Author: "Anonymous",
				Text:   "She helped us find our dream home and was responsive at every step of the process!",
			},
			expected: true,
		},
		{
			name: "same author moderately similar text",
			candidate: types.Review{
				Author: "jane smith",
				Text:   "She helped us find our dream home and was responsive every step",
			},
			expected: true,
		},
		{
			name: "different author moderately similar text",
			candidate: types.Review{
				Author: "Bob Jones",
				Text:   "She helped us find our dream home and was responsive every step",
			},
			expected: false,
		},
		{
			name: "different author different text",
			candidate: types.Review{
				Author: "Bob Jones",
				Text:   "Terrible communication and the closing was delayed twice without explanation at all",
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := d.IsDuplicateReview(&tt.candidate, existing); result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestCrossMatchesReview(t *testing.T) {
	d := New(Config{})

	reviews := []types.Review{{
		Author: "Jane Smith",
		Text:   "Working with her was the best decision we made during our home search this year",
	}}

	duplicate := &types.Recommendation{
		Author: "Jane Smith",
		Text:   "Working with her was the best decision we made during our home search this year",
	}
	if !d.CrossMatchesReview(duplicate, reviews) {
		t.Error("expected recommendation repeating a review to cross-match")
	}

	fresh := &types.Recommendation{
		Author: "Alan Wood",
		Text:   "A tireless negotiator who got us well above asking price on a tight schedule",
	}
	if d.CrossMatchesReview(fresh, reviews) {
		t.Error("expected distinct recommendation not to cross-match")
	}
}

func TestThresholdOverrides(t *testing.T) {
	strict := New(Config{TextSimilarityThreshold: 0.99})

	a := &types.Review{Author: "A B", Text: "the quick brown fox jumped over a lazy dog near the barn"}
	existing := []types.Review{{Author: "C D", Text: "the quick brown fox jumped over a lazy dog near the fence"}}

	if strict.IsDuplicateReview(a, existing) {
		t.Error("expected strict threshold to keep near-duplicates")
	}

	loose := New(Config{TextSimilarityThreshold: 0.5})
	if !loose.IsDuplicateReview(a, existing) {
		t.Error("expected loose threshold to deduplicate near-duplicates")
	}
}
