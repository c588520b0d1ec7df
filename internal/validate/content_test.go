// internal/validate/content_test.go
package validate

import "testing"

func newTestValidator(t *testing.T) *ContentValidator {
	t.Helper()
	v, err := NewContentValidator(Config{})
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}
	return v
}

func TestIsAcceptable(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "real listing text",
			text:     "Beautiful 3 bedroom home with updated kitchen and large backyard",
			expected: true,
		},
		{
			name:     "too short",
			text:     "3 bd 2 ba",
			expected: false,
		},
		{
			name:     "ratings section header",
			text:     "Ratings and reviews for this agent",
			expected: false,
		},
		{
			name:     "property feedback prompt",
			text:     "Did this agent help you buy your property or home?",
			expected: false,
		},
		{
			name:     "cookie banner",
			text:     "We use cookies to improve your browsing experience on our site",
			expected: false,
		},
		{
			name:     "tracking script remnant",
			text:     "window.dataLayer = window.dataLayer || []; function gtag(){}",
			expected: false,
		},
		{
			name:     "navigation chrome",
			text:     "Skip to main content and continue browsing our site",
			expected: false,
		},
		{
			name:     "sponsored marker",
			text:     "Sponsored listing from our premium advertising partners",
			expected: false,
		},
		{
			name:     "award boilerplate",
			text:     "An award-winning agent recognized across the region",
			expected: false,
		},
		{
			name:     "career biography",
			text:     "She began her career in 2004 serving the greater metro area",
			expected: false,
		},
		{
			name:     "mortgage widget",
			text:     "Use the mortgage calculator to see your estimated payment",
			expected: false,
		},
		{
			name:     "write a review prompt",
			text:     "Satisfied with this agent? Write a review to share your thoughts",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := v.IsAcceptable(tt.text); result != tt.expected {
				t.Errorf("IsAcceptable(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestIsAcceptableReview(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "genuine review",
			text:     "She helped us find our dream home and was incredibly responsive throughout the whole process. Highly recommend.",
			expected: true,
		},
		{
			name:     "too short",
			text:     "Great agent, very good.",
			expected: false,
		},
		{
			name:     "keyword-free prose from markup still passes",
			text:     "She was attentive, quick to answer, and made everything simple for us from start to finish.",
			expected: true,
		},
		{
			name:     "noise overrides length",
			text:     "Ratings and reviews from past clients who bought or sold a home with this agent",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := v.IsAcceptableReview(tt.text); result != tt.expected {
				t.Errorf("IsAcceptableReview(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestIsAcceptableReviewProse(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "genuine review",
			text:     "She helped us find our dream home and was incredibly responsive throughout the whole process. Highly recommend.",
			expected: true,
		},
		{
			name:     "no positive keywords",
			text:     "The weather on the day of the showing was cloudy with light rain in the afternoon hours.",
			expected: false,
		},
		{
			name:     "fragment list without prose shape",
			text:     "home. sold. great. house. sold. home. deal. sold. home. yes. top. wow.",
			expected: false,
		},
		{
			name:     "noise overrides keywords",
			text:     "Ratings and reviews from past clients who bought or sold a home with this agent",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := v.IsAcceptableReviewProse(tt.text); result != tt.expected {
				t.Errorf("IsAcceptableReviewProse(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestIsPromptPhrase(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "share your experience",
			text:     "Share your experience with this agent today",
			expected: true,
		},
		{
			name:     "be the first",
			text:     "Be the first to review this professional",
			expected: true,
		},
		{
			name:     "case insensitive",
			text:     "WRITE YOUR FIRST recommendation",
			expected: true,
		},
		{
			name:     "real review text",
			text:     "Working with her was wonderful from start to finish",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := v.IsPromptPhrase(tt.text); result != tt.expected {
				t.Errorf("IsPromptPhrase(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestContentValidatorExtraPatterns(t *testing.T) {
	v, err := NewContentValidator(Config{
		ExtraNoisePatterns: []string{`(?i)open house this weekend`},
		ExtraPromptPhrases: []string{"Tell Other Buyers"},
	})
	if err != nil {
		t.Fatalf("failed to create validator: %v", err)
	}

	if v.IsAcceptable("Join us for an open house this weekend at noon") {
		t.Error("extra noise pattern should reject matching text")
	}
	if !v.IsPromptPhrase("tell other buyers what you think") {
		t.Error("extra prompt phrases should match case-insensitively")
	}
}

func TestContentValidatorInvalidPattern(t *testing.T) {
	if _, err := NewContentValidator(Config{
		ExtraNoisePatterns: []string{`[unclosed`},
	}); err == nil {
		t.Fatal("expected error for invalid regex pattern")
	}
}
