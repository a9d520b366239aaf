package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"Simple", "Go Basics", "go-basics"},
		{"Punctuation", "Advanced Go: Concurrency & Channels!", "advanced-go-concurrency-channels"},
		{"LeadingTrailing", "  Intro to Web Dev  ", "intro-to-web-dev"},
		{"MixedCaseDigits", "CSS Grid 101", "css-grid-101"},
		{"CollapsesRuns", "One --- Two", "one-two"},
		{"OnlySymbols", "!!!", ""},
		{"Empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.title))
		})
	}
}
