package source

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// RemoteOK queries the RemoteOK public API. The response is a JSON array
// whose first element is a legal notice, not a listing.
type RemoteOK struct {
	deps    Deps
	baseURL string
}

// NewRemoteOK creates a RemoteOK adapter.
func NewRemoteOK(deps Deps) *RemoteOK {
	return &RemoteOK{deps: deps, baseURL: "https://remoteok.com/api"}
}

// Name returns the source identifier.
func (s *RemoteOK) Name() string { return "RemoteOK" }

type remoteOKItem struct {
	Position    string      `json:"position"`
	Company     string      `json:"company"`
	Location    string      `json:"location"`
	Tags        []string    `json:"tags"`
	Description string      `json:"description"`
	URL         string      `json:"url"`
	Date        string      `json:"date"`
	SalaryMin   json.Number `json:"salary_min"`
	SalaryMax   json.Number `json:"salary_max"`
}

// Search fetches the feed, skips the metadata element, and keeps listings
// matching the query with a US/remote location.
func (s *RemoteOK) Search(ctx context.Context, query string) []domain.Job {
	var data []json.RawMessage
	if err := s.deps.getJSON(ctx, s.baseURL, nil, &data); err != nil {
		log.Printf("[RemoteOK] Error: %v", err)
		return nil
	}
	if len(data) < 2 {
		return nil
	}

	var results []domain.Job
	for _, raw := range data[1:] {
		var item remoteOKItem
		if err := json.Unmarshal(raw, &item); err != nil || item.Position == "" {
			continue
		}

		combined := item.Position + " " + item.Description + " " + strings.Join(item.Tags, " ")
		if !filter.MatchesQuery(combined, query) {
			continue
		}

		location := item.Location
		if location == "" {
			location = "Remote"
		}
		if !filter.USLocation(location) {
			continue
		}

		job := domain.Job{
			Title:          item.Position,
			Company:        item.Company,
			Location:       location,
			URL:            item.URL,
			DatePosted:     truncateDate(item.Date),
			Source:         s.Name(),
			SalaryMin:      item.SalaryMin.String(),
			SalaryMax:      item.SalaryMax.String(),
			EmploymentType: "Full-time",
			IsRemote:       true,
		}
		s.deps.finish(&job, item.Position, item.Description)
		results = append(results, job)
	}

	return rank(results, s.deps.MaxResults)
}
