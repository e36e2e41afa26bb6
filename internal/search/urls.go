package search

import (
	"net/url"
	"strings"
)

// PlatformURL is a pre-filled search link on a board with no scrapeable API.
type PlatformURL struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// GenerateSearchURLs templates direct search links for a role on the major
// boards that have to be browsed manually. Pure string work, no network.
func GenerateSearchURLs(role string) []PlatformURL {
	q := url.QueryEscape(role)
	slug := strings.ReplaceAll(strings.ToLower(role), " ", "-")
	return []PlatformURL{
		{Platform: "LinkedIn", URL: "https://www.linkedin.com/jobs/search/?keywords=" + q + "&location=United%20States&f_WT=2"},
		{Platform: "Indeed", URL: "https://www.indeed.com/jobs?q=" + q + "&l=Remote"},
		{Platform: "Glassdoor", URL: "https://www.glassdoor.com/Job/jobs.htm?sc.keyword=" + q},
		{Platform: "Dribbble", URL: "https://dribbble.com/jobs?keyword=" + q + "&location=Anywhere"},
		{Platform: "Wellfound", URL: "https://wellfound.com/role/r/" + slug},
		{Platform: "Built In", URL: "https://builtin.com/jobs?search=" + q},
	}
}
