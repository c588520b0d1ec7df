// internal/extract/agent_test.go
package extract

import (
	"reflect"
	"testing"
)

const agentProfileHTML = `
	<div id="profile">
		<h1>Jane Doe, Realtor®</h1>
		<img class="profile-photo" src="/photos/jane.jpg">
		<a href="tel:+1-207-555-0142">Call</a>
		<a href="mailto:jane.doe@lakesiderealty.com">Email</a>
		<p>Realtor · License #: AB12345 · 12+ years experience</p>
		<p>Price range: $200K - $1.2M · 48 recommendations</p>
		<p>Serves: Lowell, Bangor, Old Town</p>
		<p>Languages: English, Spanish</p>
		<p>Specialties: Buyer's agent, Relocation</p>
		<a class="agent-website" href="https://janedoe.example.com">Website</a>
		<a href="https://www.facebook.com/janedoerealty">Facebook</a>
		<a href="https://www.linkedin.com/in/janedoe">LinkedIn</a>
	</div>`

func TestAgentProfileExtraction(t *testing.T) {
	e := newTestExtractor(t, agentProfileHTML)
	sel := e.Snapshot().Find("#profile")

	if name, ok := e.AgentName(sel); !ok || name != "Jane Doe" {
		t.Errorf("AgentName = (%q, %v), expected (Jane Doe, true)", name, ok)
	}
	if photo, ok := e.AgentPhoto(sel); !ok || photo != "https://www.example.com/photos/jane.jpg" {
		t.Errorf("AgentPhoto = (%q, %v), unexpected", photo, ok)
	}
	if phone, ok := e.AgentPhone(sel); !ok || phone != "207-555-0142" {
		t.Errorf("AgentPhone = (%q, %v), expected (207-555-0142, true)", phone, ok)
	}
	if email, ok := e.AgentEmail(sel); !ok || email != "jane.doe@lakesiderealty.com" {
		t.Errorf("AgentEmail = (%q, %v), unexpected", email, ok)
	}
	if title, ok := e.AgentTitle(sel); !ok || title != "Realtor" {
		t.Errorf("AgentTitle = (%q, %v), expected (Realtor, true)", title, ok)
	}
	if license, ok := e.AgentLicense(sel); !ok || license != "AB12345" {
		t.Errorf("AgentLicense = (%q, %v), expected (AB12345, true)", license, ok)
	}
	if exp, ok := e.AgentExperience(sel); !ok || exp != "12 years" {
		t.Errorf("AgentExperience = (%q, %v), expected (12 years, true)", exp, ok)
	}
	if pr, ok := e.AgentPriceRange(sel); !ok || pr != "$200K - $1.2M" {
		t.Errorf("AgentPriceRange = (%q, %v), expected ($200K - $1.2M, true)", pr, ok)
	}
	if count, ok := e.AgentRecommendationsCount(sel); !ok || count != 48 {
		t.Errorf("AgentRecommendationsCount = (%v, %v), expected (48, true)", count, ok)
	}
	if areas, ok := e.AgentAreasServed(sel); !ok || !reflect.DeepEqual(areas, []string{"Lowell", "Bangor", "Old Town"}) {
		t.Errorf("AgentAreasServed = (%v, %v), unexpected", areas, ok)
	}
	if langs, ok := e.AgentLanguages(sel); !ok || !reflect.DeepEqual(langs, []string{"English", "Spanish"}) {
		t.Errorf("AgentLanguages = (%v, %v), unexpected", langs, ok)
	}
	if website, ok := e.AgentWebsite(sel); !ok || website != "https://janedoe.example.com" {
		t.Errorf("AgentWebsite = (%q, %v), unexpected", website, ok)
	}

	social := e.AgentSocialLinks(sel)
	expectedSocial := []string{
		"https://www.facebook.com/janedoerealty",
		"https://www.linkedin.com/in/janedoe",
	}
	if !reflect.DeepEqual(social, expectedSocial) {
		t.Errorf("AgentSocialLinks = %v, expected %v", social, expectedSocial)
	}
}

func TestAgentNameRejectsNonPersons(t *testing.T) {
	tests := []struct {
		name string
		html string
	}{
		{
			name: "brokerage headline",
			html: `<div id="profile"><h1>Lakeside Realty Group</h1></div>`,
		},
		{
			name: "team banner",
			html: `<div id="profile"><h2>The Johnson Team</h2></div>`,
		},
		{
			name: "empty region",
			html: `<div id="profile"></div>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestExtractor(t, tt.html)
			sel := e.Snapshot().Find("#profile")

			if name, ok := e.AgentName(sel); ok {
				t.Errorf("expected no name, got %q", name)
			}
		})
	}
}

func TestAgentSpecialties(t *testing.T) {
	e := newTestExtractor(t, `<div id="profile"><p>Specialties: First-time buyers, Waterfront homes</p></div>`)
	sel := e.Snapshot().Find("#profile")

	specialties, ok := e.AgentSpecialties(sel)
	if !ok {
		t.Fatal("expected specialties")
	}
	expected := []string{"First-time buyers", "Waterfront homes"}
	if !reflect.DeepEqual(specialties, expected) {
		t.Errorf("expected %v, got %v", expected, specialties)
	}
}
