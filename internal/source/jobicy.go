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

// Jobicy queries the Jobicy remote-jobs API.
type Jobicy struct {
	deps    Deps
	baseURL string
}

// NewJobicy creates a Jobicy adapter.
func NewJobicy(deps Deps) *Jobicy {
	return &Jobicy{deps: deps, baseURL: "https://jobicy.com/api/v2/remote-jobs"}
}

// Name returns the source identifier.
func (s *Jobicy) Name() string { return "Jobicy" }

type jobicyResponse struct {
	Jobs []struct {
		JobTitle       string          `json:"jobTitle"`
		CompanyName    string          `json:"companyName"`
		JobDescription string          `json:"jobDescription"`
		JobIndustry    json.RawMessage `json:"jobIndustry"` // array or plain string
		JobGeo         string          `json:"jobGeo"`
		URL            string          `json:"url"`
		PubDate        string          `json:"pubDate"`
		JobType        string          `json:"jobType"`
		SalaryMin      json.Number     `json:"annualSalaryMin"`
		SalaryMax      json.Number     `json:"annualSalaryMax"`
	} `json:"jobs"`
}

// Search fetches the latest feed and keeps query-matching listings in
// US-acceptable geos.
func (s *Jobicy) Search(ctx context.Context, query string) []domain.Job {
	var data jobicyResponse
	if err := s.deps.getJSON(ctx, s.baseURL+"?count=50", nil, &data); err != nil {
		log.Printf("[Jobicy] Error: %v", err)
		return nil
	}

	var results []domain.Job
	for _, item := range data.Jobs {
		combined := item.JobTitle + " " + item.JobDescription + " " + industryText(item.JobIndustry)
		if !filter.MatchesQuery(combined, query) {
			continue
		}
		if !filter.USLocation(item.JobGeo) {
			continue
		}

		location := item.JobGeo
		if location == "" {
			location = "Remote"
		}

		salMin := item.SalaryMin.String()
		salMax := item.SalaryMax.String()
		salary := ""
		if salMin != "" {
			salary = fmt.Sprintf("$%s-$%s", salMin, salMax)
		}

		job := domain.Job{
			Title:          item.JobTitle,
			Company:        item.CompanyName,
			Location:       location,
			URL:            item.URL,
			DatePosted:     truncateDate(item.PubDate),
			Source:         s.Name(),
			Salary:         salary,
			SalaryMin:      salMin,
			SalaryMax:      salMax,
			EmploymentType: item.JobType,
			IsRemote:       true,
		}
		s.deps.finish(&job, item.JobTitle, item.JobDescription)
		results = append(results, job)
	}

	return rank(results, s.deps.MaxResults)
}

// industryText flattens jobIndustry, which the API serves as either a string
// array or a single string.
func industryText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, " ")
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	return ""
}
