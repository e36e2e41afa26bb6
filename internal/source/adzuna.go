package source

import (
	"context"
	"fmt"
	"log"
	"net/url"

	"github.com/project-rsd/go-jobagent/internal/domain"
)

// Adzuna queries the Adzuna US search API. Key-gated: both app ID and key
// must be configured or the adapter short-circuits to empty. The country is
// fixed in the URL path, so no client-side location filter is applied.
type Adzuna struct {
	deps    Deps
	appID   string
	appKey  string
	baseURL string
}

const adzunaMaxPages = 3

// NewAdzuna creates an Adzuna adapter.
func NewAdzuna(deps Deps, appID, appKey string) *Adzuna {
	return &Adzuna{deps: deps, appID: appID, appKey: appKey, baseURL: "https://api.adzuna.com/v1/api/jobs/us/search"}
}

// Name returns the source identifier.
func (s *Adzuna) Name() string { return "Adzuna" }

type adzunaResponse struct {
	Results []struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		RedirectURL string   `json:"redirect_url"`
		Created     string   `json:"created"`
		SalaryMin   *float64 `json:"salary_min"`
		SalaryMax   *float64 `json:"salary_max"`
		Contract    string   `json:"contract_type"`
		Company     struct {
			DisplayName string `json:"display_name"`
		} `json:"company"`
		Location struct {
			DisplayName string `json:"display_name"`
		} `json:"location"`
	} `json:"results"`
}

// Search pages 1..3, stopping on an empty page. Page-1 errors are logged,
// later-page errors end pagination silently.
func (s *Adzuna) Search(ctx context.Context, query string) []domain.Job {
	if s.appID == "" || s.appKey == "" {
		return nil
	}

	var results []domain.Job
	for page := 1; page <= adzunaMaxPages; page++ {
		reqURL := fmt.Sprintf(
			"%s/%d?app_id=%s&app_key=%s&results_per_page=50&what=%s&content-type=application/json",
			s.baseURL, page, s.appID, s.appKey, url.QueryEscape(query),
		)

		var data adzunaResponse
		if err := s.deps.getJSON(ctx, reqURL, nil, &data); err != nil {
			if page == 1 {
				log.Printf("[Adzuna] Error: %v", err)
			}
			break
		}
		if len(data.Results) == 0 {
			break
		}

		for _, item := range data.Results {
			salary := ""
			if item.SalaryMin != nil && item.SalaryMax != nil {
				salary = usdPrinter.Sprintf("$%.0f-$%.0f", *item.SalaryMin, *item.SalaryMax)
			}

			// Adzuna embeds <strong> markup around matched terms in titles
			title := s.deps.Cleaner.CleanToText(item.Title)
			job := domain.Job{
				Title:          title,
				Company:        item.Company.DisplayName,
				Location:       item.Location.DisplayName,
				URL:            item.RedirectURL,
				DatePosted:     truncateDate(item.Created),
				Source:         s.Name(),
				Salary:         salary,
				SalaryMin:      floatString(item.SalaryMin),
				SalaryMax:      floatString(item.SalaryMax),
				EmploymentType: item.Contract,
			}
			s.deps.finish(&job, title, item.Description)
			results = append(results, job)
		}
	}

	return rank(results, s.deps.MaxResults)
}
