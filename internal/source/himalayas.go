package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// Himalayas queries the Himalayas.app jobs API with offset pagination.
type Himalayas struct {
	deps    Deps
	baseURL string
}

// Offset pagination: pages of 20 up to 100 jobs.
const (
	himalayasPageSize = 20
	himalayasMaxJobs  = 100
)

// NewHimalayas creates a Himalayas adapter.
func NewHimalayas(deps Deps) *Himalayas {
	return &Himalayas{deps: deps, baseURL: "https://himalayas.app/jobs/api"}
}

// Name returns the source identifier.
func (s *Himalayas) Name() string { return "Himalayas" }

type himalayasResponse struct {
	Jobs []struct {
		Title                string      `json:"title"`
		CompanyName          string      `json:"companyName"`
		Description          string      `json:"description"`
		Categories           []string    `json:"categories"`
		LocationRestrictions []string    `json:"locationRestrictions"`
		ApplicationLink      string      `json:"applicationLink"`
		PageURL              string      `json:"pageUrl"`
		PubDate              json.Number `json:"pubDate"`
		JobType              string      `json:"jobType"`
		MinSalary            json.Number `json:"minSalary"`
		MaxSalary            json.Number `json:"maxSalary"`
	} `json:"jobs"`
}

// Search pages through offsets, stopping on the first empty page or error.
// Errors on the first page are logged; later-page errors end pagination
// silently since partial results are still useful.
func (s *Himalayas) Search(ctx context.Context, query string) []domain.Job {
	var results []domain.Job
	for offset := 0; offset < himalayasMaxJobs; offset += himalayasPageSize {
		url := fmt.Sprintf("%s?limit=%d&offset=%d", s.baseURL, himalayasPageSize, offset)

		var data himalayasResponse
		if err := s.deps.getJSON(ctx, url, nil, &data); err != nil {
			if offset == 0 {
				log.Printf("[Himalayas] Error: %v", err)
			}
			break
		}
		if len(data.Jobs) == 0 {
			break
		}

		for _, item := range data.Jobs {
			combined := item.Title + " " + item.Description + " " + strings.Join(item.Categories, " ")
			if !filter.MatchesQuery(combined, query) {
				continue
			}

			location := strings.Join(item.LocationRestrictions, ", ")
			if location == "" {
				location = "Remote"
			}
			if !filter.USLocation(location) {
				continue
			}

			jobURL := item.ApplicationLink
			if jobURL == "" {
				jobURL = item.PageURL
			}

			salMin := item.MinSalary.String()
			salMax := item.MaxSalary.String()
			salary := ""
			if salMin != "" {
				salary = fmt.Sprintf("$%s-$%s", salMin, salMax)
			}

			job := domain.Job{
				Title:          item.Title,
				Company:        item.CompanyName,
				Location:       location,
				URL:            jobURL,
				DatePosted:     truncateDate(item.PubDate.String()),
				Source:         s.Name(),
				Salary:         salary,
				SalaryMin:      salMin,
				SalaryMax:      salMax,
				EmploymentType: item.JobType,
				IsRemote:       true,
			}
			s.deps.finish(&job, item.Title, item.Description)
			results = append(results, job)
		}
	}

	return rank(results, s.deps.MaxResults)
}
