// internal/collect/agent.go
package collect

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/RealtyScrapexter/internal/dom"
	"github.com/valpere/RealtyScrapexter/internal/extract"
	"github.com/valpere/RealtyScrapexter/pkg/types"
)

// agentRegionSelectors locate the profile header/summary region of an
// agent page. The whole document is the last resort; the name check
// keeps that from producing garbage profiles.
var agentRegionSelectors = []string{
	"[data-testid*=agent-profile]",
	"[data-testid*=profile]",
	"[class*=agent-profile i]",
	"[class*=profile-header i]",
	"[class*=agent-details i]",
	"[itemtype*=RealEstateAgent]",
	"header",
	"main",
	"body",
}

// ExtractAgentProfile extracts the agent profile from a snapshot. The
// name invariant is absolute: a region whose headline fails the
// person-name shape check yields no profile, and nil is returned when
// no region passes. Like the collection passes, this never panics to
// the caller; failures are reported through the returned metadata.
func (c *Collector) ExtractAgentProfile(snapshot *dom.Snapshot) (profile *types.AgentProfile, meta types.Metadata) {
	defer func() {
		if r := recover(); r != nil {
			meta.Error = fmt.Sprintf("agent pass failed: %v", r)
			c.logger.Printf("recovered from agent pass failure: %v", r)
			profile = nil
		}
	}()

	ex := extract.New(snapshot, c.extractCfg)

	for _, selector := range agentRegionSelectors {
		region := snapshot.Find(selector).First()
		if region.Length() == 0 {
			continue
		}
		meta.TotalFound++

		if p := c.buildAgentProfile(ex, region); p != nil {
			meta.TotalExtracted = 1
			meta.ExtractionMethod = types.MethodStructural
			c.entityAccepted("agent")
			return p, meta
		}
	}

	meta.ExtractionMethod = types.MethodNone
	return nil, meta
}

func (c *Collector) buildAgentProfile(ex *extract.Extractor, region *goquery.Selection) *types.AgentProfile {
	name, ok := ex.AgentName(region)
	if !ok {
		return nil
	}

	profile := &types.AgentProfile{Name: name}

	if photo, ok := ex.AgentPhoto(region); ok {
		profile.ProfilePhoto = photo
	}
	if rating, ok := ex.ReviewRating(region); ok {
		profile.Rating = &rating
	}
	if areas, ok := ex.AgentAreasServed(region); ok {
		profile.AreasServed = areas
	}
	if priceRange, ok := ex.AgentPriceRange(region); ok {
		profile.PriceRange = priceRange
	}
	if experience, ok := ex.AgentExperience(region); ok {
		profile.Experience = experience
	}
	if count, ok := ex.AgentRecommendationsCount(region); ok {
		profile.RecommendationsCount = &count
	}
	if phone, ok := ex.AgentPhone(region); ok {
		profile.Phone = phone
	}
	if email, ok := ex.AgentEmail(region); ok {
		profile.Email = email
	}
	if title, ok := ex.AgentTitle(region); ok {
		profile.Title = title
	}
	if license, ok := ex.AgentLicense(region); ok {
		profile.License = license
	}
	if specialties, ok := ex.AgentSpecialties(region); ok {
		profile.Specialties = specialties
	}
	if languages, ok := ex.AgentLanguages(region); ok {
		profile.Languages = languages
	}
	if website, ok := ex.AgentWebsite(region); ok {
		profile.Website = website
	}
	if links := ex.AgentSocialLinks(region); len(links) > 0 {
		profile.SocialLinks = links
	}

	return profile
}
