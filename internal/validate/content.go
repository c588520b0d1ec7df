// internal/validate/content.go

// Package validate classifies extracted text spans as acceptable
// content versus page noise. Rendered listing and agent pages intermix
// real content with navigation, advertising, cookie banners, tracking
// remnants, and review-prompt boilerplate; the validators here gate
// every span before it can become part of an entity.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ContentValidator applies a two-phase gate: negative-pattern rejection
// first (authoritative), then positive-signal counting for the stricter
// review variant. Pattern sets are fixed at construction.
type ContentValidator struct {
	noisePatterns    []*regexp.Regexp
	promptPhrases    []string
	positiveKeywords []string
	minReviewLen     int
	maxReviewLen     int
	minProseDensity  float64
}

// Config carries validator tunables. Zero values fall back to defaults;
// extra patterns and phrases extend the built-in sets.
type Config struct {
	ExtraNoisePatterns []string
	ExtraPromptPhrases []string
	MinReviewLength    int
	MaxReviewLength    int
	MinProseDensity    float64
}

// defaultNoisePatterns reject page chrome and boilerplate. A single
// match is sufficient to reject regardless of other signals.
var defaultNoisePatterns = []string{
	`(?i)ratings and reviews`,
	`(?i)did .{1,40}\bhelp you\b.{0,40}(property|home|house)`,
	`(?i)^(home|buy|sell|rent|agents?|advertise|sign in|sign up|log in|menu|search)$`,
	`(?i)\b(skip to (main )?content|back to top|view all|see (all|more)|show more|load more)\b`,
	`(?i)\b(cookies?|privacy (policy|notice)|terms of (use|service)|all rights reserved)\b`,
	`(?i)\b(gtag|dataLayer|googletag|analytics\.js|window\._|function\s*\()`,
	`(?i)\b(advertisement|sponsored|ad choices)\b`,
	`(?i)\bfilter(ed)? by\b`,
	`(?i)^\s*\d+\s*star(s)?\s*$`,
	`(?i)\b(award(-| )winning|top \d+ (percent|%)|hall of fame|lifetime achievement)\b`,
	`(?i)\b(years? (of|in) (real estate )?(experience|the business)|began (his|her|their) career)\b`,
	`(?i)\bwrite a review\b`,
	`(?i)\b(mortgage calculator|estimated payment|pre-?approv)`,
}

// defaultPromptPhrases screen Anonymous-authored review candidates for
// form-prompt text masquerading as content
var defaultPromptPhrases = []string{
	"share your experience",
	"write your first",
	"be the first to review",
	"tell us about your experience",
	"leave a review",
	"rate this agent",
	"how was your experience",
}

// defaultPositiveKeywords signal genuine client-review prose
var defaultPositiveKeywords = []string{
	"helped", "sold", "bought", "purchase", "professional",
	"responsive", "knowledgeable", "recommend", "recommended",
	"great", "excellent", "amazing", "wonderful", "fantastic",
	"smooth", "process", "home", "house", "closing", "negotiat",
	"patient", "honest", "trust", "experience", "communicat",
}

const (
	defaultMinReviewLength = 30
	defaultMaxReviewLength = 1000
	defaultMinProseDensity = 25.0
	minAcceptableLength    = 20
)

// NewContentValidator builds a validator from the default pattern sets
// plus any extras in cfg
func NewContentValidator(cfg Config) (*ContentValidator, error) {
	patterns := make([]*regexp.Regexp, 0, len(defaultNoisePatterns)+len(cfg.ExtraNoisePatterns))
	for _, p := range defaultNoisePatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	for _, p := range cfg.ExtraNoisePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}

	phrases := make([]string, 0, len(defaultPromptPhrases)+len(cfg.ExtraPromptPhrases))
	phrases = append(phrases, defaultPromptPhrases...)
	for _, p := range cfg.ExtraPromptPhrases {
		phrases = append(phrases, strings.ToLower(p))
	}

	v := &ContentValidator{
		noisePatterns:    patterns,
		promptPhrases:    phrases,
		positiveKeywords: defaultPositiveKeywords,
		minReviewLen:     cfg.MinReviewLength,
		maxReviewLen:     cfg.MaxReviewLength,
		minProseDensity:  cfg.MinProseDensity,
	}
	if v.minReviewLen <= 0 {
		v.minReviewLen = defaultMinReviewLength
	}
	if v.maxReviewLen <= 0 {
		v.maxReviewLen = defaultMaxReviewLength
	}
	if v.minProseDensity <= 0 {
		v.minProseDensity = defaultMinProseDensity
	}
	return v, nil
}

// IsAcceptable reports whether a text span looks like real content
// rather than page noise. The negative phase is authoritative: any
// noise-pattern match rejects the span outright.
func (v *ContentValidator) IsAcceptable(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minAcceptableLength {
		return false
	}
	for _, re := range v.noisePatterns {
		if re.MatchString(trimmed) {
			return false
		}
	}
	return true
}

// IsAcceptableReview applies the review gate for structurally located
// text: the general acceptability check plus review length bounds.
// Length bounds count runes, not bytes.
func (v *ContentValidator) IsAcceptableReview(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !v.IsAcceptable(trimmed) {
		return false
	}
	n := utf8.RuneCountInString(trimmed)
	return n >= v.minReviewLen && n <= v.maxReviewLen
}

// IsAcceptableReviewProse applies the stricter gate for review text
// recovered by pattern matching over raw text, where no markup vouches
// for the span: at least one positive domain keyword and prose-like
// sentence structure on top of the review gate.
func (v *ContentValidator) IsAcceptableReviewProse(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !v.IsAcceptableReview(trimmed) {
		return false
	}
	if v.positiveSignals(trimmed) < 1 {
		return false
	}
	return v.proseDensity(trimmed) >= v.minProseDensity
}

// IsPromptPhrase reports whether text matches the review-prompt
// denylist. Applied to Anonymous-authored candidates only; attributed
// reviews skip this check.
func (v *ContentValidator) IsPromptPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range v.promptPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// positiveSignals counts distinct positive keywords present in the text
func (v *ContentValidator) positiveSignals(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range v.positiveKeywords {
		if strings.Contains(lower, kw) {
			count++
		}
	}
	return count
}

var sentenceSplitRegex = regexp.MustCompile(`[.!?]+`)

// proseDensity approximates "looks like prose, not a fragment" as the
// average character count per sentence
func (v *ContentValidator) proseDensity(text string) float64 {
	sentences := 0
	for _, part := range sentenceSplitRegex.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}
	return float64(utf8.RuneCountInString(text)) / float64(sentences)
}
