// internal/validate/identity_test.go
package validate

import "testing"

func TestIsValidAddress(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "number and suffix",
			text:     "230 W Old Main Rd",
			expected: true,
		},
		{
			name:     "full address with city state zip",
			text:     "230 W Old Main Rd, Lowell, ME 04493",
			expected: true,
		},
		{
			name:     "city and state only",
			text:     "Lowell, ME",
			expected: true,
		},
		{
			name:     "capitalized street without number",
			text:     "Old Mill Lane",
			expected: true,
		},
		{
			name:     "price token",
			text:     "$450,000",
			expected: false,
		},
		{
			name:     "price with street words",
			text:     "$450,000 on Main Street",
			expected: false,
		},
		{
			name:     "bed bath fragment",
			text:     "3 beds 2 baths",
			expected: false,
		},
		{
			name:     "empty",
			text:     "",
			expected: false,
		},
		{
			name:     "lowercase prose",
			text:     "a wonderful place to live near everything",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsValidAddress(tt.text); result != tt.expected {
				t.Errorf("IsValidAddress(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}

func TestIsPersonName(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected bool
	}{
		{
			name:     "simple name",
			text:     "Jane Smith",
			expected: true,
		},
		{
			name:     "name with middle initial",
			text:     "Mary Ann Thompson",
			expected: true,
		},
		{
			name:     "hyphenated surname",
			text:     "Ana Garcia-Lopez",
			expected: true,
		},
		{
			name:     "business name",
			text:     "Sunrise Realty Group",
			expected: false,
		},
		{
			name:     "team name",
			text:     "The Johnson Team",
			expected: false,
		},
		{
			name:     "contains digits",
			text:     "Agent 007",
			expected: false,
		},
		{
			name:     "single word",
			text:     "Jane",
			expected: false,
		},
		{
			name:     "too many words",
			text:     "One Two Three Four Five Six",
			expected: false,
		},
		{
			name:     "lowercase",
			text:     "jane smith",
			expected: false,
		},
		{
			name:     "domain fragment",
			text:     "www realtor com",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsPersonName(tt.text); result != tt.expected {
				t.Errorf("IsPersonName(%q) = %v, expected %v", tt.text, result, tt.expected)
			}
		})
	}
}
