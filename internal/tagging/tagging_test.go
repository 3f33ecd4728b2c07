package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoTags(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		summary  string
		expected []string
	}{
		{
			name:     "fantasy keywords",
			title:    "The Wizard's Apprentice",
			summary:  "A young magician learns spells from a dragon",
			expected: []string{"Fantasy", "Kids"},
		},
		{
			name:     "sci-fi keywords",
			title:    "Stars Beyond",
			summary:  "An alien fleet crosses the galaxy",
			expected: []string{"Sci-Fi"},
		},
		{
			name:     "case insensitive",
			title:    "LOVE IN WARTIME",
			summary:  "",
			expected: []string{"History", "Romance"},
		},
		{
			name:     "no match",
			title:    "Gardening Basics",
			summary:  "Soil and pruning",
			expected: nil,
		},
		{
			name:     "india rule",
			title:    "Tales of Bharat",
			summary:  "",
			expected: []string{"India"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AutoTags(tt.title, tt.summary))
		})
	}
}

func TestAutoTagsDeduplicates(t *testing.T) {
	// Both "magic" and "wizard" map to Fantasy; it appears once
	tags := AutoTags("Magic Wizard Witch", "dragon spell")
	count := 0
	for _, tag := range tags {
		if tag == "Fantasy" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAutoTagsUsesTitleAndSummary(t *testing.T) {
	assert.Equal(t, []string{"Finance"}, AutoTags("Plain Title", "how to invest money in the market"))
	assert.Equal(t, []string{"Thriller"}, AutoTags("The Detective", ""))
}
