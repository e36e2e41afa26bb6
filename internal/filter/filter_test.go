package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/project-rsd/go-jobagent/internal/config"
)

func profileFilter() *TitleFilter {
	return NewTitleFilter(
		config.RelevantTitleKeywords,
		config.RelevantTitleWordKeywords,
		config.ExcludedTitleKeywords,
	)
}

func TestTitleFilterRelevant(t *testing.T) {
	f := profileFilter()

	tests := []struct {
		title string
		want  bool
	}{
		{"UX Designer", true},
		{"Senior Product Designer", true},
		{"UI/UX Intern", true},
		{"Graphic Designer", true},
		{"Content Strategist", true},
		// exclusion wins even when a relevant keyword is present
		{"Software Engineer, Design Tools", false},
		{"Game Designer", false},
		{"Recruiter, Design Org", false},
		// "ui" must not match inside other words
		{"Building Manager", false},
		{"Touch Screen Specialist", false},
		{"Backend Developer", false},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Relevant(tt.title))
		})
	}
}

func TestUSLocation(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"", true},
		{"Remote", true},
		{"Anywhere", true},
		{"United States", true},
		{"Seattle, WA", true},
		{"New York, NY", true},
		{"Berlin, Germany", false},
		{"Bucharest, Romania", false},
		{"EMEA", false},
		// unknown city names get the benefit of the doubt
		{"Metropolis", true},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			assert.Equal(t, tt.want, USLocation(tt.location))
		})
	}
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  bool
	}{
		{
			name:  "collapsed match across slash",
			text:  "Senior UX/UI Designer",
			query: "UX UI Designer",
			want:  true,
		},
		{
			name:  "single long word hit",
			text:  "We are hiring a designer for our brand team",
			query: "Product Designer",
			want:  true,
		},
		{
			name:  "short acronym matches whole word only",
			text:  "UX research role",
			query: "UX Researcher",
			want:  true,
		},
		{
			name:  "short acronym does not match substring",
			text:  "Building internal tools",
			query: "UI Lead",
			want:  false,
		},
		{
			name:  "no overlap",
			text:  "Backend engineer for payments",
			query: "Visual Designer",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesQuery(tt.text, tt.query))
		})
	}
}
