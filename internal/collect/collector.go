// internal/collect/collector.go

// Package collect drives one extraction pass: candidate discovery,
// entity building, content validation, deduplication, and bounded
// accumulation. The collector is the engine's public boundary and
// honors a strict contract: it always returns a structured result and
// never panics or errors out to the caller.
package collect

import (
	"fmt"
	"log"
	"time"

	"github.com/valpere/RealtyScrapexter/internal/dedup"
	"github.com/valpere/RealtyScrapexter/internal/dom"
	"github.com/valpere/RealtyScrapexter/internal/extract"
	"github.com/valpere/RealtyScrapexter/internal/locate"
	"github.com/valpere/RealtyScrapexter/internal/validate"
	"github.com/valpere/RealtyScrapexter/pkg/types"
)

// Observer receives pass-level events for metrics reporting. All
// methods must be safe for concurrent use; a nil Observer disables
// reporting.
type Observer interface {
	CandidatesLocated(kind string, count int)
	EntityAccepted(kind string)
	ValidationRejected(kind string)
	DuplicateSuppressed(kind string)
	PassCompleted(kind string, duration time.Duration)
}

// Config assembles the collector's collaborators and limits
type Config struct {
	Locator   locate.Config
	Validator validate.Config
	Extractor extract.Config
	Dedup     dedup.Config

	MaxListings        int
	MaxReviews         int
	MaxRecommendations int

	Observer Observer
	Logger   *log.Logger
}

// Collector runs extraction passes over document snapshots. It holds
// only immutable configuration and stateless collaborators; every
// pass is independent and deterministic for a fixed snapshot.
type Collector struct {
	locator   *locate.Locator
	validator *validate.ContentValidator
	dedup     *dedup.Deduplicator

	extractCfg extract.Config

	maxListings        int
	maxReviews         int
	maxRecommendations int

	observer Observer
	logger   *log.Logger
}

// New creates a collector, filling zero-valued limits with the
// package defaults
func New(cfg Config) (*Collector, error) {
	validator, err := validate.NewContentValidator(cfg.Validator)
	if err != nil {
		return nil, fmt.Errorf("invalid validator configuration: %w", err)
	}

	c := &Collector{
		locator:            locate.NewLocator(cfg.Locator),
		validator:          validator,
		dedup:              dedup.New(cfg.Dedup),
		extractCfg:         cfg.Extractor,
		maxListings:        cfg.MaxListings,
		maxReviews:         cfg.MaxReviews,
		maxRecommendations: cfg.MaxRecommendations,
		observer:           cfg.Observer,
		logger:             cfg.Logger,
	}
	if c.maxListings <= 0 {
		c.maxListings = types.DefaultMaxListings
	}
	if c.maxReviews <= 0 {
		c.maxReviews = types.DefaultMaxReviews
	}
	if c.maxRecommendations <= 0 {
		c.maxRecommendations = types.DefaultMaxRecommendations
	}
	if c.logger == nil {
		c.logger = log.New(log.Writer(), "collect: ", log.LstdFlags)
	}
	return c, nil
}

// CollectListings runs one bounded listing collection pass. A
// best-effort result is always returned; pass-level failures are
// recorded in the metadata rather than propagated.
func (c *Collector) CollectListings(snapshot *dom.Snapshot) (result *types.ListingsResult) {
	start := time.Now()
	result = &types.ListingsResult{
		Active: []types.Listing{},
		Sold:   []types.Listing{},
		Metadata: types.Metadata{
			ExtractionMethod: types.MethodNone,
		},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Metadata.Error = fmt.Sprintf("listing pass failed: %v", r)
			c.logger.Printf("recovered from listing pass failure: %v", r)
		}
		c.passCompleted("listing", start)
	}()

	candidates := c.locator.Locate(snapshot, locate.KindListing)
	result.Metadata.TotalFound = len(candidates)
	c.candidatesLocated("listing", len(candidates))

	ex := extract.New(snapshot, c.extractCfg)

	if len(candidates) > 0 {
		result.Metadata.ExtractionMethod = types.MethodStructural
	}

	for i, candidate := range candidates {
		if result.Total() >= c.maxListings {
			result.Metadata.ReachedLimit = true
			break
		}

		listing := c.buildListingSafe(ex, candidate, result.Total())
		if listing == nil {
			continue
		}
		if c.isDuplicate(listing, result) {
			c.duplicateSuppressed("listing")
			continue
		}

		c.bucketListing(listing, result)
		c.entityAccepted("listing")

		// Reaching the limit on the final candidate is exhaustion,
		// not truncation
		if result.Total() >= c.maxListings && i < len(candidates)-1 {
			result.Metadata.ReachedLimit = true
			break
		}
	}

	// Text fallback fills remaining slots, routed through the same
	// deduplicator
	if result.Total() < c.maxListings {
		added := c.collectListingsFromText(ex, snapshot, result)
		if added > 0 {
			if result.Metadata.ExtractionMethod == types.MethodStructural {
				result.Metadata.ExtractionMethod = types.MethodCombined
			} else {
				result.Metadata.ExtractionMethod = types.MethodTextScan
			}
		}
	}

	result.Metadata.TotalExtracted = result.Total()
	return result
}

// collectListingsFromText runs the full-document fallback scan and
// returns how many listings it added
func (c *Collector) collectListingsFromText(ex *extract.Extractor, snapshot *dom.Snapshot, result *types.ListingsResult) int {
	spans := locate.ScanListingText(snapshot.FullText())
	if len(spans) == 0 {
		return 0
	}

	added := 0
	for i, span := range spans {
		if result.Total() >= c.maxListings {
			result.Metadata.ReachedLimit = true
			break
		}

		listing := buildListingFromText(ex, span, result.Total())
		if listing == nil {
			continue
		}
		if c.isDuplicate(listing, result) {
			c.duplicateSuppressed("listing")
			continue
		}

		c.bucketListing(listing, result)
		c.entityAccepted("listing")
		added++

		if result.Total() >= c.maxListings && i < len(spans)-1 {
			result.Metadata.ReachedLimit = true
			break
		}
	}
	return added
}

// buildListingSafe isolates one candidate's extraction: a malformed
// node aborts that candidate only, never the pass
func (c *Collector) buildListingSafe(ex *extract.Extractor, candidate locate.Candidate, ordinal int) (listing *types.Listing) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("candidate extraction failed (matched by %s): %v", candidate.MatchedBy, r)
			listing = nil
		}
	}()
	return buildListing(ex, candidate, ordinal)
}

func (c *Collector) isDuplicate(listing *types.Listing, result *types.ListingsResult) bool {
	return c.dedup.IsDuplicateListing(listing, result.Active) ||
		c.dedup.IsDuplicateListing(listing, result.Sold)
}

// bucketListing classifies a listing as active or sold. Sold-like
// status wins; anything else, including listings with no status at
// all, is treated as active inventory.
func (c *Collector) bucketListing(listing *types.Listing, result *types.ListingsResult) {
	if types.ListingStatus(listing.Status).IsSoldLike() {
		result.Sold = append(result.Sold, *listing)
		return
	}
	result.Active = append(result.Active, *listing)
}

// CollectReviews runs one bounded review-and-recommendation pass
func (c *Collector) CollectReviews(snapshot *dom.Snapshot) (result *types.ReviewsResult) {
	start := time.Now()
	result = &types.ReviewsResult{
		Individual:      []types.Review{},
		Recommendations: []types.Recommendation{},
		Metadata: types.Metadata{
			ExtractionMethod: types.MethodStructural,
		},
	}

	defer func() {
		if r := recover(); r != nil {
			result.Metadata.Error = fmt.Sprintf("review pass failed: %v", r)
			c.logger.Printf("recovered from review pass failure: %v", r)
		}
		c.passCompleted("review", start)
	}()

	ex := extract.New(snapshot, c.extractCfg)

	if rating, count, ok := ex.Overall(); ok {
		result.Overall.Rating = &rating
		if count > 0 {
			result.Overall.Count = &count
		}
	}

	reviewCandidates := c.locator.Locate(snapshot, locate.KindReview)
	c.candidatesLocated("review", len(reviewCandidates))
	result.Metadata.TotalFound = len(reviewCandidates)

	for i, candidate := range reviewCandidates {
		if len(result.Individual) >= c.maxReviews {
			result.Metadata.ReachedLimit = true
			break
		}

		review, fromRaw := c.buildReviewSafe(ex, candidate)
		if review == nil {
			continue
		}
		if !c.acceptReviewText(review.Author, review.Text, fromRaw) {
			c.validationRejected("review")
			continue
		}
		if c.dedup.IsDuplicateReview(review, result.Individual) {
			c.duplicateSuppressed("review")
			continue
		}

		result.Individual = append(result.Individual, *review)
		c.entityAccepted("review")

		if len(result.Individual) >= c.maxReviews && i < len(reviewCandidates)-1 {
			result.Metadata.ReachedLimit = true
			break
		}
	}

	recCandidates := c.locator.Locate(snapshot, locate.KindRecommendation)
	c.candidatesLocated("recommendation", len(recCandidates))
	result.Metadata.TotalFound += len(recCandidates)

	for i, candidate := range recCandidates {
		if len(result.Recommendations) >= c.maxRecommendations {
			result.Metadata.ReachedLimit = true
			break
		}

		rec, fromRaw := c.buildRecommendationSafe(ex, candidate)
		if rec == nil {
			continue
		}
		if !c.acceptReviewText(rec.Author, rec.Text, fromRaw) {
			c.validationRejected("recommendation")
			continue
		}
		if c.dedup.IsDuplicateRecommendation(rec, result.Recommendations) ||
			c.dedup.CrossMatchesReview(rec, result.Individual) {
			c.duplicateSuppressed("recommendation")
			continue
		}

		result.Recommendations = append(result.Recommendations, *rec)
		c.entityAccepted("recommendation")

		if len(result.Recommendations) >= c.maxRecommendations && i < len(recCandidates)-1 {
			result.Metadata.ReachedLimit = true
			break
		}
	}

	result.Metadata.TotalExtracted = len(result.Individual) + len(result.Recommendations)
	return result
}

// acceptReviewText applies the content gate plus the Anonymous
// prompt-phrase screen. Text recovered from raw text faces the
// stricter prose gate; text a quotation or scoped element vouches for
// only needs the length and noise checks.
func (c *Collector) acceptReviewText(author, text string, fromRaw bool) bool {
	if fromRaw {
		if !c.validator.IsAcceptableReviewProse(text) {
			return false
		}
	} else if !c.validator.IsAcceptableReview(text) {
		return false
	}
	if author == "Anonymous" && c.validator.IsPromptPhrase(text) {
		return false
	}
	return true
}

func (c *Collector) buildReviewSafe(ex *extract.Extractor, candidate locate.Candidate) (review *types.Review, fromRaw bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("review extraction failed (matched by %s): %v", candidate.MatchedBy, r)
			review = nil
		}
	}()
	return buildReview(ex, candidate)
}

func (c *Collector) buildRecommendationSafe(ex *extract.Extractor, candidate locate.Candidate) (rec *types.Recommendation, fromRaw bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("recommendation extraction failed (matched by %s): %v", candidate.MatchedBy, r)
			rec = nil
		}
	}()
	return buildRecommendation(ex, candidate)
}

// observer dispatch helpers; a nil observer disables reporting

func (c *Collector) candidatesLocated(kind string, count int) {
	if c.observer != nil {
		c.observer.CandidatesLocated(kind, count)
	}
}

func (c *Collector) entityAccepted(kind string) {
	if c.observer != nil {
		c.observer.EntityAccepted(kind)
	}
}

func (c *Collector) validationRejected(kind string) {
	if c.observer != nil {
		c.observer.ValidationRejected(kind)
	}
}

func (c *Collector) duplicateSuppressed(kind string) {
	if c.observer != nil {
		c.observer.DuplicateSuppressed(kind)
	}
}

func (c *Collector) passCompleted(kind string, start time.Time) {
	if c.observer != nil {
		c.observer.PassCompleted(kind, time.Since(start))
	}
}
