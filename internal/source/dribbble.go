package source

import (
	"context"
	"log"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// Dribbble scrapes the Dribbble job board listing page. There is no public
// API, so only the fields visible on the listing card are available; the
// description stays empty and scoring runs on the title alone.
type Dribbble struct {
	deps    Deps
	baseURL string
}

// NewDribbble creates a Dribbble adapter.
func NewDribbble(deps Deps) *Dribbble {
	return &Dribbble{deps: deps, baseURL: "https://dribbble.com/jobs"}
}

// Name returns the source identifier.
func (s *Dribbble) Name() string { return "Dribbble" }

// Search scrapes the keyword-filtered listing page.
func (s *Dribbble) Search(ctx context.Context, query string) []domain.Job {
	var results []domain.Job

	c := colly.NewCollector(colly.UserAgent(s.deps.UserAgent))
	c.SetRequestTimeout(s.deps.Client.Timeout)

	c.OnHTML("li.job-list-item, div.job-board-job-listing", func(e *colly.HTMLElement) {
		title := firstText(e.DOM, ".job-board-job-title, .job-title")
		if title == "" {
			return
		}
		company := firstText(e.DOM, ".job-board-job-company, .company-name")
		location := firstText(e.DOM, ".job-board-job-location, .job-location")

		href, _ := e.DOM.Find("a").First().Attr("href")
		if href == "" {
			return
		}
		link := e.Request.AbsoluteURL(href)

		if !filter.MatchesQuery(title, query) {
			return
		}
		if !filter.USLocation(location) {
			return
		}

		job := domain.Job{
			Title:    title,
			Company:  company,
			Location: location,
			URL:      link,
			Source:   s.Name(),
			IsRemote: strings.Contains(strings.ToLower(location), "remote"),
		}
		s.deps.finish(&job, title, "")
		results = append(results, job)
	})

	c.OnError(func(_ *colly.Response, err error) {
		log.Printf("[Dribbble] Error: %v", err)
	})

	if err := c.Visit(s.baseURL + "?keyword=" + url.QueryEscape(query)); err != nil {
		log.Printf("[Dribbble] Error: %v", err)
		return nil
	}
	c.Wait()

	return rank(results, s.deps.MaxResults)
}

// firstText returns the trimmed text of the first node matching any selector.
// Dribbble has shipped both class naming schemes, so selectors are paired.
func firstText(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}
