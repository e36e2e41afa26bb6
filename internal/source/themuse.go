package source

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// TheMuse queries The Muse public jobs API across several design-adjacent
// categories with page-number pagination. An API key is optional and only
// raises rate limits.
type TheMuse struct {
	deps    Deps
	apiKey  string
	baseURL string
}

// muse pagination: pages 0..musePages-1, ~20 results each, per category.
const musePages = 5

var museCategories = []string{"Design", "Marketing & PR", "Project Management"}

// NewTheMuse creates a The Muse adapter.
func NewTheMuse(deps Deps, apiKey string) *TheMuse {
	return &TheMuse{deps: deps, apiKey: apiKey, baseURL: "https://www.themuse.com/api/public/jobs"}
}

// Name returns the source identifier.
func (s *TheMuse) Name() string { return "The Muse" }

type museResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Contents string `json:"contents"`
		Type     string `json:"type"`
		PubDate  string `json:"publication_date"`
		Company  struct {
			Name string `json:"name"`
		} `json:"company"`
		Locations []struct {
			Name string `json:"name"`
		} `json:"locations"`
		Levels []struct {
			Name string `json:"name"`
		} `json:"levels"`
		Refs struct {
			LandingPage string `json:"landing_page"`
		} `json:"refs"`
	} `json:"results"`
}

// Search walks each category page by page, stopping a category on the first
// error or empty page. Native experience levels are preferred over text
// extraction.
func (s *TheMuse) Search(ctx context.Context, query string) []domain.Job {
	var results []domain.Job
	for _, cat := range museCategories {
		for page := 0; page < musePages; page++ {
			params := url.Values{}
			params.Set("category", cat)
			params.Set("page", fmt.Sprintf("%d", page))
			if s.apiKey != "" {
				params.Set("api_key", s.apiKey)
			}

			var data museResponse
			if err := s.deps.getJSON(ctx, s.baseURL+"?"+params.Encode(), nil, &data); err != nil {
				if page == 0 {
					log.Printf("[The Muse] %s: %v", cat, err)
				}
				break // stop paginating this category on error
			}
			if len(data.Results) == 0 {
				break // no more pages
			}

			for _, item := range data.Results {
				var locations []string
				for _, loc := range item.Locations {
					locations = append(locations, loc.Name)
				}
				locationStr := strings.Join(locations, ", ")

				if !filter.MatchesQuery(item.Name+" "+item.Contents, query) {
					continue
				}
				if !filter.USLocation(locationStr) {
					continue
				}

				var levels []string
				for _, lv := range item.Levels {
					levels = append(levels, lv.Name)
				}

				location := locationStr
				if location == "" {
					location = "See listing"
				}

				job := domain.Job{
					Title:           item.Name,
					Company:         item.Company.Name,
					Location:        location,
					URL:             item.Refs.LandingPage,
					DatePosted:      truncateDate(item.PubDate),
					Source:          s.Name(),
					EmploymentType:  item.Type,
					IsRemote:        strings.Contains(locationStr, "Flexible") || strings.Contains(locationStr, "Remote"),
					ExperienceLevel: strings.Join(levels, ", "),
				}
				s.deps.finish(&job, item.Name, item.Contents)
				results = append(results, job)
			}
		}
	}

	return rank(results, s.deps.MaxResults)
}
