// internal/collect/builder.go
package collect

import (
	"fmt"

	"github.com/valpere/RealtyScrapexter/internal/extract"
	"github.com/valpere/RealtyScrapexter/internal/locate"
	"github.com/valpere/RealtyScrapexter/pkg/types"
)

// buildListing assembles a Listing from one candidate region by
// running every field cascade, then rejects the assembled record if
// the mandatory price is missing. Entities are built in one step from
// the extracted fields; nothing mutates a listing after this returns.
func buildListing(ex *extract.Extractor, candidate locate.Candidate, ordinal int) *types.Listing {
	sel := candidate.Selection

	price, ok := ex.Price(sel)
	if !ok {
		// Price is mandatory; a region with no price signal is not a
		// listing no matter what else it contains.
		return nil
	}
	listing := &types.Listing{
		ID:    fmt.Sprintf("listing-%d", ordinal),
		Price: price,
	}

	if address, ok := ex.Address(sel); ok {
		listing.Address = address
	}
	if beds, ok := ex.Beds(sel); ok {
		listing.Beds = &beds
	}
	if baths, ok := ex.Baths(sel); ok {
		listing.Baths = &baths
	}
	if sqft, ok := ex.Sqft(sel); ok {
		listing.Sqft = &sqft
	}
	if status, ok := ex.Status(sel); ok {
		listing.Status = status
	}
	if propertyType, ok := ex.PropertyType(sel); ok {
		listing.PropertyType = propertyType
	}
	if mls, ok := ex.MLSNumber(sel); ok {
		listing.MLSNumber = mls
	}
	if description, ok := ex.Description(sel); ok {
		listing.Description = description
	}
	if detailURL, ok := ex.DetailURL(sel); ok {
		listing.DetailURL = detailURL
	}
	if photos := ex.Photos(sel); len(photos) > 0 {
		listing.PhotoURLs = photos
		listing.ImageURL = photos[0]
	}

	return listing
}

// buildListingFromText assembles a Listing from a raw text span
// produced by the full-document fallback scan. Only text-level
// strategies apply; structural fields (photos, links) are unavailable.
func buildListingFromText(ex *extract.Extractor, span string, ordinal int) *types.Listing {
	price, ok := ex.PriceFromText(span)
	if !ok {
		return nil
	}

	listing := &types.Listing{
		ID:    fmt.Sprintf("listing-%d", ordinal),
		Price: price,
	}

	if address, ok := extract.AddressFromText(span); ok {
		listing.Address = address
	}
	if beds, ok := extract.BedsFromText(span); ok {
		listing.Beds = &beds
	}
	if baths, ok := extract.BathsFromText(span); ok {
		listing.Baths = &baths
	}
	if sqft, ok := extract.SqftFromText(span); ok {
		listing.Sqft = &sqft
	}
	if status, ok := extract.StatusFromText(span); ok {
		listing.Status = status
	}

	return listing
}

// buildReview assembles a Review from one candidate region. The text
// field is mandatory; authorless reviews default to Anonymous and are
// screened against the prompt denylist by the collector. fromRaw
// reports that the text was recovered from the region's raw text
// rather than a quotation or scoped element, which subjects it to the
// stricter prose gate.
func buildReview(ex *extract.Extractor, candidate locate.Candidate) (_ *types.Review, fromRaw bool) {
	text, ok := ex.ReviewText(candidate.Selection)
	if !ok {
		text, ok = ex.ReviewTextRaw(candidate.Selection)
		fromRaw = ok
	}
	if !ok {
		return nil, false
	}

	review := &types.Review{
		Author: "Anonymous",
		Text:   text,
	}

	if author, ok := ex.ReviewAuthor(candidate.Selection); ok {
		review.Author = author
	}
	if date, ok := ex.ReviewDate(candidate.Selection); ok {
		review.Date = date
	}
	if rating, ok := ex.ReviewRating(candidate.Selection); ok {
		review.Rating = &rating
	}
	if source, ok := ex.ReviewSource(candidate.Selection); ok {
		review.Source = source
	}

	return review, fromRaw
}

// buildRecommendation assembles a Recommendation from one candidate
// region
func buildRecommendation(ex *extract.Extractor, candidate locate.Candidate) (_ *types.Recommendation, fromRaw bool) {
	text, ok := ex.ReviewText(candidate.Selection)
	if !ok {
		text, ok = ex.ReviewTextRaw(candidate.Selection)
		fromRaw = ok
	}
	if !ok {
		return nil, false
	}

	rec := &types.Recommendation{
		Author: "Anonymous",
		Text:   text,
		Source: "testimonial",
	}

	if author, ok := ex.ReviewAuthor(candidate.Selection); ok {
		rec.Author = author
	}
	if date, ok := ex.ReviewDate(candidate.Selection); ok {
		rec.Date = date
	}

	return rec, fromRaw
}
