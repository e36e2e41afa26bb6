package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/extract"
)

// JSearch queries the JSearch RapidAPI aggregator (LinkedIn, Indeed,
// Glassdoor). It is key-gated: with no key configured the adapter
// short-circuits to empty. The query is already scoped to the United States
// server-side, so no client-side location filter is applied here; the
// orchestrator's title pass is the only relevance gate (deliberate
// looseness, matched by the strict cross-source filter).
type JSearch struct {
	deps    Deps
	apiKey  string
	baseURL string
}

// NewJSearch creates a JSearch adapter.
func NewJSearch(deps Deps, apiKey string) *JSearch {
	return &JSearch{deps: deps, apiKey: apiKey, baseURL: "https://jsearch.p.rapidapi.com/search"}
}

// Name returns the source identifier.
func (s *JSearch) Name() string { return "JSearch" }

type jsearchResponse struct {
	Data []struct {
		JobTitle       string   `json:"job_title"`
		EmployerName   string   `json:"employer_name"`
		JobCity        string   `json:"job_city"`
		JobState       string   `json:"job_state"`
		JobMinSalary   *float64 `json:"job_min_salary"`
		JobMaxSalary   *float64 `json:"job_max_salary"`
		JobSalaryPer   string   `json:"job_salary_period"`
		JobApplyLink   string   `json:"job_apply_link"`
		JobGoogleLink  string   `json:"job_google_link"`
		JobPostedAt    string   `json:"job_posted_at_datetime_utc"`
		JobEmployType  string   `json:"job_employment_type"`
		JobIsRemote    bool     `json:"job_is_remote"`
		JobDescription string   `json:"job_description"`
		JobRequiredExp struct {
			RequiredExperienceInMonths int  `json:"required_experience_in_months"`
			ExperienceMentioned        bool `json:"experience_mentioned"`
		} `json:"job_required_experience"`
	} `json:"data"`
}

// usdPrinter renders comma-grouped dollar amounts ("$85,000").
var usdPrinter = message.NewPrinter(language.English)

// Search queries the aggregator for recent US listings. A 403 means the
// RapidAPI plan isn't subscribed and is skipped silently.
func (s *JSearch) Search(ctx context.Context, query string) []domain.Job {
	if s.apiKey == "" {
		return nil
	}

	params := url.Values{}
	params.Set("query", query+" in United States")
	params.Set("page", "1")
	params.Set("num_pages", "3")
	params.Set("date_posted", "month")
	params.Set("remote_jobs_only", "false")

	headers := map[string]string{
		"X-RapidAPI-Key":  s.apiKey,
		"X-RapidAPI-Host": "jsearch.p.rapidapi.com",
	}

	var data jsearchResponse
	if err := s.deps.getJSON(ctx, s.baseURL+"?"+params.Encode(), headers, &data); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusForbidden {
			return nil // not subscribed
		}
		log.Printf("[JSearch] Error: %v", err)
		return nil
	}

	var results []domain.Job
	for _, item := range data.Data {
		location := strings.TrimSpace(item.JobCity + " " + item.JobState)
		if location == "" {
			location = "See listing"
		}

		salary := ""
		switch {
		case item.JobMinSalary != nil && item.JobMaxSalary != nil:
			salary = strings.TrimSpace(usdPrinter.Sprintf("$%.0f-$%.0f %s",
				*item.JobMinSalary, *item.JobMaxSalary, item.JobSalaryPer))
		case item.JobMinSalary != nil:
			salary = strings.TrimSpace(usdPrinter.Sprintf("$%.0f+ %s",
				*item.JobMinSalary, item.JobSalaryPer))
		}

		expLevel := ""
		if months := item.JobRequiredExp.RequiredExperienceInMonths; months > 0 {
			expLevel = fmt.Sprintf("%d+ yrs", months/12)
		} else if item.JobRequiredExp.ExperienceMentioned {
			expLevel = extract.Experience(item.JobTitle + " " + item.JobDescription)
		}

		jobURL := item.JobApplyLink
		if jobURL == "" {
			jobURL = item.JobGoogleLink
		}

		job := domain.Job{
			Title:           item.JobTitle,
			Company:         item.EmployerName,
			Location:        location,
			URL:             jobURL,
			DatePosted:      truncateDate(item.JobPostedAt),
			Source:          s.Name(),
			Salary:          salary,
			SalaryMin:       floatString(item.JobMinSalary),
			SalaryMax:       floatString(item.JobMaxSalary),
			EmploymentType:  item.JobEmployType,
			IsRemote:        item.JobIsRemote,
			ExperienceLevel: expLevel,
		}
		s.deps.finish(&job, item.JobTitle, item.JobDescription)
		results = append(results, job)
	}

	return rank(results, s.deps.MaxResults)
}

func floatString(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%g", *f)
}
