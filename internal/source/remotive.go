package source

import (
	"context"
	"log"
	"strings"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// Remotive queries the Remotive public API. The endpoint returns the full
// remote-jobs feed, so all filtering happens client-side.
type Remotive struct {
	deps    Deps
	baseURL string
}

// NewRemotive creates a Remotive adapter.
func NewRemotive(deps Deps) *Remotive {
	return &Remotive{deps: deps, baseURL: "https://remotive.com/api/remote-jobs"}
}

// Name returns the source identifier.
func (s *Remotive) Name() string { return "Remotive" }

type remotiveResponse struct {
	Jobs []struct {
		Title            string   `json:"title"`
		CompanyName      string   `json:"company_name"`
		Category         string   `json:"category"`
		Tags             []string `json:"tags"`
		URL              string   `json:"url"`
		PublicationDate  string   `json:"publication_date"`
		Salary           string   `json:"salary"`
		JobType          string   `json:"job_type"`
		RequiredLocation string   `json:"candidate_required_location"`
		Description      string   `json:"description"`
	} `json:"jobs"`
}

// Search fetches the feed and keeps listings that match the query (or sit in
// a design-adjacent category with a title match) and look US/remote.
func (s *Remotive) Search(ctx context.Context, query string) []domain.Job {
	var data remotiveResponse
	if err := s.deps.getJSON(ctx, s.baseURL, nil, &data); err != nil {
		log.Printf("[Remotive] Error: %v", err)
		return nil
	}

	var results []domain.Job
	for _, item := range data.Jobs {
		category := strings.ToLower(item.Category)
		combined := item.Title + " " + item.Description + " " + category + " " + strings.Join(item.Tags, " ")

		// Must match the query directly, or be a design/marketing/product
		// category listing whose title matches.
		designCategory := strings.Contains(category, "design") ||
			strings.Contains(category, "marketing") ||
			strings.Contains(category, "product")
		if !filter.MatchesQuery(combined, query) &&
			!(designCategory && filter.MatchesQuery(item.Title, query)) {
			continue
		}

		location := item.RequiredLocation
		if location == "" {
			location = "Anywhere"
		}
		if !filter.USLocation(location) {
			continue
		}

		job := domain.Job{
			Title:          item.Title,
			Company:        item.CompanyName,
			Location:       location,
			URL:            item.URL,
			DatePosted:     truncateDate(item.PublicationDate),
			Source:         s.Name(),
			Salary:         item.Salary,
			EmploymentType: item.JobType,
			IsRemote:       true,
		}
		s.deps.finish(&job, item.Title, item.Description)
		results = append(results, job)
	}

	return rank(results, s.deps.MaxResults)
}
