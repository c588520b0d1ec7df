// internal/extract/agent.go
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/valpere/RealtyScrapexter/internal/validate"
)

var (
	experienceRegex = regexp.MustCompile(`(?i)\b(\d{1,2})\+?\s*years?\b(?:\s+(?:of\s+)?experience)?`)

	recommendationCountRegex = regexp.MustCompile(`(?i)\b(\d{1,4})\s+recommendations?\b`)

	priceRangeRegex = regexp.MustCompile(`\$[\d,.]+[KMBkmb]?\s?[-–—]\s?\$[\d,.]+[KMBkmb]?`)

	licenseRegex = regexp.MustCompile(`(?i)\b(?:license|lic\.?|DRE)\s?#?:?\s?([A-Z0-9.-]{5,20})\b`)

	phoneRegex = regexp.MustCompile(`\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	agentTitleRegex = regexp.MustCompile(`(?i)\b(realtor|broker(?:\s+associate)?|(?:listing|buyer'?s?|real estate|sales)\s+agent|team lead(?:er)?|associate broker)\b`)

	areasServedRegex = regexp.MustCompile(`(?i)(?:serves?|areas? served|servicing)[:\s]+([A-Za-z ,.'&-]{5,200})`)

	languagesRegex = regexp.MustCompile(`(?i)(?:languages?|speaks?)[:\s]+([A-Za-z ,'&-]{4,120})`)

	specialtiesRegex = regexp.MustCompile(`(?i)(?:specialt(?:y|ies)|focus(?:es)? on)[:\s]+([A-Za-z ,.'&-]{4,200})`)
)

// AgentName extracts and validates the agent's display name. Regions
// whose headline fails the person-name shape check (brokerage names,
// team banners) produce a miss.
func (e *Extractor) AgentName(sel *goquery.Selection) (string, bool) {
	return scopedText(agentNameSelectors, func(text string) (string, bool) {
		// Headlines often append credentials: "Jane Doe, Realtor®"
		name := strings.TrimSpace(strings.SplitN(text, ",", 2)[0])
		name = strings.TrimSuffix(name, "®")
		if validate.IsPersonName(name) {
			return name, true
		}
		return "", false
	})(sel)
}

// AgentPhoto extracts the agent's profile photo URL
func (e *Extractor) AgentPhoto(sel *goquery.Selection) (string, bool) {
	return scopedAttr(agentPhotoSelectors, "src", func(src string) (string, bool) {
		src = strings.TrimSpace(src)
		if src == "" || placeholderImageRegex.MatchString(src) {
			return "", false
		}
		return e.snapshot.ResolveURL(src), true
	})(sel)
}

// AgentPhone extracts a contact phone number
func (e *Extractor) AgentPhone(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedAttr(agentPhoneSelectors, "href", func(href string) (string, bool) {
			number := strings.TrimPrefix(href, "tel:")
			if m := phoneRegex.FindString(number); m != "" {
				return m, true
			}
			return "", false
		}),
		scopedText(agentPhoneSelectors, acceptFirst(phoneRegex)),
		ownText(acceptFirst(phoneRegex)),
	)
}

// AgentEmail extracts a contact email address
func (e *Extractor) AgentEmail(sel *goquery.Selection) (string, bool) {
	return firstMatch(sel,
		scopedAttr(agentEmailSelectors, "href", func(href string) (string, bool) {
			addr := strings.TrimPrefix(href, "mailto:")
			if m := emailRegex.FindString(addr); m != "" {
				return m, true
			}
			return "", false
		}),
		ownText(acceptFirst(emailRegex)),
	)
}

// AgentTitle extracts the professional title (Realtor, Broker, ...)
func (e *Extractor) AgentTitle(sel *goquery.Selection) (string, bool) {
	return ownText(func(text string) (string, bool) {
		m := agentTitleRegex.FindString(text)
		if m == "" {
			return "", false
		}
		return canonicalTitle(m), true
	})(sel)
}

// AgentLicense extracts the license number
func (e *Extractor) AgentLicense(sel *goquery.Selection) (string, bool) {
	return ownText(acceptGroup(licenseRegex))(sel)
}

// AgentExperience extracts the years-of-experience string,
// normalized to the form "12 years"
func (e *Extractor) AgentExperience(sel *goquery.Selection) (string, bool) {
	return ownText(func(text string) (string, bool) {
		if m := experienceRegex.FindStringSubmatch(text); m != nil {
			return m[1] + " years", true
		}
		return "", false
	})(sel)
}

// AgentPriceRange extracts the transaction price range ("$200K - $1.2M")
func (e *Extractor) AgentPriceRange(sel *goquery.Selection) (string, bool) {
	return ownText(acceptFirst(priceRangeRegex))(sel)
}

// AgentRecommendationsCount extracts the advertised recommendation count
func (e *Extractor) AgentRecommendationsCount(sel *goquery.Selection) (int, bool) {
	value, ok := ownText(acceptGroup(recommendationCountRegex))(sel)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

// AgentAreasServed extracts the list of areas the agent serves
func (e *Extractor) AgentAreasServed(sel *goquery.Selection) ([]string, bool) {
	return listFromRegex(sel, areasServedRegex)
}

// AgentLanguages extracts spoken languages
func (e *Extractor) AgentLanguages(sel *goquery.Selection) ([]string, bool) {
	return listFromRegex(sel, languagesRegex)
}

// AgentSpecialties extracts listed specialties
func (e *Extractor) AgentSpecialties(sel *goquery.Selection) ([]string, bool) {
	return listFromRegex(sel, specialtiesRegex)
}

// AgentWebsite extracts the agent's personal website link
func (e *Extractor) AgentWebsite(sel *goquery.Selection) (string, bool) {
	return scopedAttr(agentWebsiteSelectors, "href", func(href string) (string, bool) {
		href = strings.TrimSpace(href)
		if !strings.HasPrefix(href, "http") {
			return "", false
		}
		return href, true
	})(sel)
}

// AgentSocialLinks collects social profile links, deduplicated
func (e *Extractor) AgentSocialLinks(sel *goquery.Selection) []string {
	seen := make(map[string]bool)
	var links []string
	for _, selector := range agentSocialSelectors {
		sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			href = strings.TrimSpace(href)
			if href == "" || seen[href] {
				return
			}
			seen[href] = true
			links = append(links, href)
		})
	}
	return links
}

// listFromRegex matches a labeled comma-separated list. Block-level
// texts are tried before the flattened region text so an adjacent
// label ("Languages: ...") cannot bleed into the capture.
func listFromRegex(sel *goquery.Selection, re *regexp.Regexp) ([]string, bool) {
	for _, text := range blockTexts(sel) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		var items []string
		for _, part := range strings.Split(m[1], ",") {
			part = strings.TrimSpace(strings.Trim(part, "."))
			if part != "" && len(part) < 60 {
				items = append(items, part)
			}
		}
		if len(items) > 0 {
			return items, true
		}
	}
	return nil, false
}

func blockTexts(sel *goquery.Selection) []string {
	var texts []string
	sel.Find("p, li, dd").Each(func(_ int, s *goquery.Selection) {
		if text := collapse(s.Text()); text != "" {
			texts = append(texts, text)
		}
	})
	return append(texts, collapse(sel.Text()))
}

func acceptFirst(re *regexp.Regexp) func(string) (string, bool) {
	return func(text string) (string, bool) {
		if m := re.FindString(text); m != "" {
			return m, true
		}
		return "", false
	}
}

func acceptGroup(re *regexp.Regexp) func(string) (string, bool) {
	return func(text string) (string, bool) {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1], true
		}
		return "", false
	}
}

func canonicalTitle(s string) string {
	lower := strings.ToLower(collapse(s))
	switch lower {
	case "realtor":
		return "Realtor"
	case "broker":
		return "Broker"
	case "broker associate", "associate broker":
		return "Associate Broker"
	case "team lead", "team leader":
		return "Team Lead"
	}
	if strings.HasSuffix(lower, "agent") {
		words := strings.Fields(lower)
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		return strings.Join(words, " ")
	}
	return collapse(s)
}
