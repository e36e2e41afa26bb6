package source

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// WWR reads the We Work Remotely design-category RSS feed. Feed items carry
// the company in the title ("Company: Job Title").
type WWR struct {
	deps    Deps
	feedURL string
}

// NewWWR creates a We Work Remotely adapter.
func NewWWR(deps Deps) *WWR {
	return &WWR{deps: deps, feedURL: "https://weworkremotely.com/categories/remote-design-jobs.rss"}
}

// Name returns the source identifier.
func (s *WWR) Name() string { return "WWR" }

// Search fetches the feed and keeps query-matching items whose region looks
// US/remote.
func (s *WWR) Search(ctx context.Context, query string) []domain.Job {
	var results []domain.Job

	c := colly.NewCollector(colly.UserAgent(s.deps.UserAgent))
	c.SetRequestTimeout(s.deps.Client.Timeout)

	c.OnXML("//item", func(e *colly.XMLElement) {
		rawTitle := e.ChildText("title")
		company, title := "", rawTitle
		if idx := strings.Index(rawTitle, ": "); idx >= 0 {
			company, title = rawTitle[:idx], rawTitle[idx+2:]
		}

		desc := e.ChildText("description")
		region := e.ChildText("region")

		if !filter.MatchesQuery(title+" "+desc, query) {
			return
		}
		loc := region
		if loc == "" {
			loc = "Remote"
		}
		if !filter.USLocation(loc) {
			return
		}

		link := e.ChildText("link")
		if link == "" {
			link = e.ChildText("guid")
		}

		job := domain.Job{
			Title:          strings.TrimSpace(title),
			Company:        strings.TrimSpace(company),
			Location:       loc,
			URL:            link,
			DatePosted:     parsePubDate(e.ChildText("pubDate")),
			Source:         s.Name(),
			EmploymentType: e.ChildText("type"),
			IsRemote:       true,
		}
		s.deps.finish(&job, title, desc)
		results = append(results, job)
	})

	c.OnError(func(_ *colly.Response, err error) {
		log.Printf("[WWR] Error: %v", err)
	})

	if err := c.Visit(s.feedURL); err != nil {
		log.Printf("[WWR] Error: %v", err)
		return nil
	}
	c.Wait()

	return rank(results, s.deps.MaxResults)
}

// parsePubDate converts an RSS pubDate ("Thu, 26 Feb 2026 16:43:31 +0000")
// to an ISO date, keeping a raw prefix when unparseable.
func parsePubDate(pub string) string {
	if pub == "" {
		return ""
	}
	for _, layout := range []string{time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, pub); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(pub) > 16 {
		return pub[:16]
	}
	return pub
}
