// Package source implements one adapter per external job board. Every adapter
// normalizes its source's payload into the canonical Job record, filters with
// the query/location predicates, scores, and returns its own results sorted by
// score and capped. Fetch failures are contained: an adapter logs and returns
// an empty slice, never an error, so one broken source cannot abort a sweep.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/project-rsd/go-jobagent/internal/common/cleaner"
	"github.com/project-rsd/go-jobagent/internal/config"
	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/extract"
	"github.com/project-rsd/go-jobagent/internal/score"
)

// DescriptionCap bounds stored description length.
const DescriptionCap = 1000

// Source is the common contract for all job sources.
type Source interface {
	// Name returns the source identifier stored on each Job
	Name() string
	// Search fetches and normalizes listings matching the query. Failures
	// are logged and yield an empty result.
	Search(ctx context.Context, query string) []domain.Job
}

// Deps are the collaborators shared by every adapter.
type Deps struct {
	Client     *http.Client
	Cleaner    *cleaner.Cleaner
	Scorer     *score.Scorer
	MaxResults int
	UserAgent  string
}

// Registry returns all adapters in their fixed enumeration order.
func Registry(cfg *config.Config, deps Deps) []Source {
	return []Source{
		NewRemotive(deps),
		NewRemoteOK(deps),
		NewTheMuse(deps, cfg.Search.TheMuseAPIKey),
		NewJobicy(deps),
		NewHimalayas(deps),
		NewWWR(deps),
		NewJSearch(deps, cfg.Search.JSearchAPIKey),
		NewAdzuna(deps, cfg.Search.AdzunaAppID, cfg.Search.AdzunaAppKey),
		NewBoards(deps, config.CompanyBoards),
		NewDribbble(deps),
	}
}

// finish fills the derived fields on a normalized job: the cleaned and capped
// description, text-extracted experience level and deadline (source-native
// values, when already set, win), and the relevance score computed over the
// raw description.
func (d Deps) finish(job *domain.Job, title, rawDesc string) {
	clean := d.Cleaner.CleanToText(rawDesc)
	job.Description = cleaner.Truncate(clean, DescriptionCap)
	if job.ExperienceLevel == "" {
		job.ExperienceLevel = extract.Experience(title + " " + clean)
	}
	if job.ApplyDeadline == "" {
		job.ApplyDeadline = extract.Deadline(clean)
	}
	job.Score = d.Scorer.Score(title, rawDesc)
}

// rank sorts jobs by score descending (stable) and caps the result.
func rank(jobs []domain.Job, max int) []domain.Job {
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].Score > jobs[j].Score
	})
	if max > 0 && len(jobs) > max {
		jobs = jobs[:max]
	}
	return jobs
}

// getJSON fetches url and decodes the response body into v.
func (d Deps) getJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", d.UserAgent)
	for k, val := range headers {
		req.Header.Set(k, val)
	}

	resp, err := d.Client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d", e.Code)
}

// truncateDate keeps the ISO date prefix of a timestamp string.
func truncateDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
