// pkg/types/types.go

// Package types defines the entity value objects produced by the
// RealtyScrapexter extraction engine: property listings, agent reviews
// and recommendations, agent profiles, and the result envelopes that
// carry them back to callers together with extraction metadata.
package types

import (
	"fmt"
	"strings"
)

// ListingStatus represents the market status of a property listing
type ListingStatus string

const (
	StatusForSale    ListingStatus = "For Sale"
	StatusSold       ListingStatus = "Sold"
	StatusPending    ListingStatus = "Pending"
	StatusContingent ListingStatus = "Contingent"
	StatusOffMarket  ListingStatus = "Off Market"
)

// ValidStatuses returns all recognized listing status values
func ValidStatuses() []ListingStatus {
	return []ListingStatus{
		StatusForSale, StatusSold, StatusPending,
		StatusContingent, StatusOffMarket,
	}
}

// IsSoldLike reports whether the status indicates a completed sale
func (s ListingStatus) IsSoldLike() bool {
	return s == StatusSold || s == StatusOffMarket
}

// Listing represents one extracted property listing. Price is the only
// mandatory field; everything else is best-effort and may be absent.
type Listing struct {
	ID           string   `json:"id"`
	Price        string   `json:"price"`
	Address      string   `json:"address,omitempty"`
	Beds         *float64 `json:"beds,omitempty"`
	Baths        *float64 `json:"baths,omitempty"`
	Sqft         *int     `json:"sqft,omitempty"`
	Status       string   `json:"status,omitempty"`
	PropertyType string   `json:"property_type,omitempty"`
	MLSNumber    string   `json:"mls_number,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	PhotoURLs    []string `json:"photo_urls,omitempty"`
	Description  string   `json:"description,omitempty"`
	DetailURL    string   `json:"detail_url,omitempty"`
}

// HasPrice reports whether the listing carries a usable price token
func (l *Listing) HasPrice() bool {
	return strings.TrimSpace(l.Price) != ""
}

// FieldCount returns how many of the descriptive fields
// (price, address, beds, baths, sqft) are populated. Deduplication
// treats listings with two or fewer as minimal-data entities.
func (l *Listing) FieldCount() int {
	count := 0
	if l.HasPrice() {
		count++
	}
	if strings.TrimSpace(l.Address) != "" {
		count++
	}
	if l.Beds != nil {
		count++
	}
	if l.Baths != nil {
		count++
	}
	if l.Sqft != nil {
		count++
	}
	return count
}

// ToRecord flattens the listing into a generic record for output writers
func (l *Listing) ToRecord() map[string]interface{} {
	record := map[string]interface{}{
		"id":      l.ID,
		"price":   l.Price,
		"address": l.Address,
		"status":  l.Status,
	}
	if l.Beds != nil {
		record["beds"] = *l.Beds
	}
	if l.Baths != nil {
		record["baths"] = *l.Baths
	}
	if l.Sqft != nil {
		record["sqft"] = *l.Sqft
	}
	if l.PropertyType != "" {
		record["property_type"] = l.PropertyType
	}
	if l.MLSNumber != "" {
		record["mls_number"] = l.MLSNumber
	}
	if l.ImageURL != "" {
		record["image_url"] = l.ImageURL
	}
	if len(l.PhotoURLs) > 0 {
		record["photo_urls"] = strings.Join(l.PhotoURLs, " ")
	}
	if l.Description != "" {
		record["description"] = l.Description
	}
	if l.DetailURL != "" {
		record["detail_url"] = l.DetailURL
	}
	return record
}

// String implements fmt.Stringer for quick logging of listings
func (l *Listing) String() string {
	parts := []string{l.Price}
	if l.Address != "" {
		parts = append(parts, l.Address)
	}
	if l.Status != "" {
		parts = append(parts, l.Status)
	}
	return fmt.Sprintf("Listing(%s)", strings.Join(parts, ", "))
}

// Review represents one client review extracted from an agent page
type Review struct {
	Author string   `json:"author"`
	Text   string   `json:"text"`
	Date   string   `json:"date,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
	Source string   `json:"source,omitempty"`
}

// ToRecord flattens the review into a generic record for output writers
func (r *Review) ToRecord() map[string]interface{} {
	record := map[string]interface{}{
		"author": r.Author,
		"text":   r.Text,
	}
	if r.Date != "" {
		record["date"] = r.Date
	}
	if r.Rating != nil {
		record["rating"] = *r.Rating
	}
	if r.Source != "" {
		record["source"] = r.Source
	}
	return record
}

// Recommendation represents a testimonial-style endorsement. It shares
// the review shape but is collected and bounded separately.
type Recommendation struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date,omitempty"`
	Source string `json:"source,omitempty"`
}

// ToRecord flattens the recommendation into a generic record
func (r *Recommendation) ToRecord() map[string]interface{} {
	record := map[string]interface{}{
		"author": r.Author,
		"text":   r.Text,
	}
	if r.Date != "" {
		record["date"] = r.Date
	}
	if r.Source != "" {
		record["source"] = r.Source
	}
	return record
}

// OverallRating aggregates the page-level rating summary for an agent
type OverallRating struct {
	Rating *float64 `json:"rating,omitempty"`
	Count  *int     `json:"count,omitempty"`
}

// AgentProfile represents the extracted profile of a single agent
type AgentProfile struct {
	Name                 string   `json:"name"`
	ProfilePhoto         string   `json:"profile_photo,omitempty"`
	Rating               *float64 `json:"rating,omitempty"`
	AreasServed          []string `json:"areas_served,omitempty"`
	PriceRange           string   `json:"price_range,omitempty"`
	Experience           string   `json:"experience,omitempty"`
	RecommendationsCount *int     `json:"recommendations_count,omitempty"`
	Phone                string   `json:"phone,omitempty"`
	Email                string   `json:"email,omitempty"`
	Title                string   `json:"title,omitempty"`
	License              string   `json:"license,omitempty"`
	Specialties          []string `json:"specialties,omitempty"`
	Languages            []string `json:"languages,omitempty"`
	Website              string   `json:"website,omitempty"`
	SocialLinks          []string `json:"social_links,omitempty"`
}

// ToRecord flattens the profile into a generic record for output writers
func (a *AgentProfile) ToRecord() map[string]interface{} {
	record := map[string]interface{}{
		"name": a.Name,
	}
	if a.ProfilePhoto != "" {
		record["profile_photo"] = a.ProfilePhoto
	}
	if a.Rating != nil {
		record["rating"] = *a.Rating
	}
	if len(a.AreasServed) > 0 {
		record["areas_served"] = strings.Join(a.AreasServed, "; ")
	}
	if a.PriceRange != "" {
		record["price_range"] = a.PriceRange
	}
	if a.Experience != "" {
		record["experience"] = a.Experience
	}
	if a.RecommendationsCount != nil {
		record["recommendations_count"] = *a.RecommendationsCount
	}
	if a.Phone != "" {
		record["phone"] = a.Phone
	}
	if a.Email != "" {
		record["email"] = a.Email
	}
	if a.Title != "" {
		record["title"] = a.Title
	}
	if a.License != "" {
		record["license"] = a.License
	}
	if len(a.Specialties) > 0 {
		record["specialties"] = strings.Join(a.Specialties, "; ")
	}
	if len(a.Languages) > 0 {
		record["languages"] = strings.Join(a.Languages, "; ")
	}
	if a.Website != "" {
		record["website"] = a.Website
	}
	if len(a.SocialLinks) > 0 {
		record["social_links"] = strings.Join(a.SocialLinks, " ")
	}
	return record
}

// ExtractionMethod identifies which discovery path produced the entities
type ExtractionMethod string

const (
	MethodStructural ExtractionMethod = "structural"
	MethodTextScan   ExtractionMethod = "text_scan"
	MethodCombined   ExtractionMethod = "combined"
	MethodNone       ExtractionMethod = "none"
)

// Metadata describes one collection pass
type Metadata struct {
	TotalFound       int              `json:"total_found"`
	TotalExtracted   int              `json:"total_extracted"`
	ReachedLimit     bool             `json:"reached_limit"`
	ExtractionMethod ExtractionMethod `json:"extraction_method"`
	Error            string           `json:"error,omitempty"`
}

// ListingsResult is the outcome of one listing collection pass.
// Listings are bucketed by market status; the limit applies to the
// combined count.
type ListingsResult struct {
	Active   []Listing `json:"active"`
	Sold     []Listing `json:"sold"`
	Metadata Metadata  `json:"metadata"`
}

// Total returns the combined number of collected listings
func (r *ListingsResult) Total() int {
	return len(r.Active) + len(r.Sold)
}

// ReviewsResult is the outcome of one review collection pass
type ReviewsResult struct {
	Overall         OverallRating    `json:"overall"`
	Individual      []Review         `json:"individual"`
	Recommendations []Recommendation `json:"recommendations"`
	Metadata        Metadata         `json:"metadata"`
}

// Default collection bounds. Callers may override per pass.
const (
	DefaultMaxListings        = 20
	DefaultMaxReviews         = 5
	DefaultMaxRecommendations = 10
)
