package source

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/project-rsd/go-jobagent/internal/config"
	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
)

// Boards polls company career pages directly through their public ATS APIs
// (Greenhouse and Lever). Direct postings often never reach the aggregators.
type Boards struct {
	deps          Deps
	boards        []config.CompanyBoard
	greenhouseURL string
	leverURL      string
}

// NewBoards creates a company-boards adapter over the given board list.
func NewBoards(deps Deps, boards []config.CompanyBoard) *Boards {
	return &Boards{
		deps:          deps,
		boards:        boards,
		greenhouseURL: "https://boards-api.greenhouse.io/v1/boards",
		leverURL:      "https://api.lever.co/v0/postings",
	}
}

// Name returns the source identifier.
func (s *Boards) Name() string { return "Boards" }

type greenhouseResponse struct {
	Jobs []struct {
		Title       string `json:"title"`
		AbsoluteURL string `json:"absolute_url"`
		UpdatedAt   string `json:"updated_at"`
		Content     string `json:"content"`
		Location    struct {
			Name string `json:"name"`
		} `json:"location"`
	} `json:"jobs"`
}

type leverPosting struct {
	Text             string `json:"text"`
	HostedURL        string `json:"hostedUrl"`
	CreatedAt        int64  `json:"createdAt"` // ms since epoch
	DescriptionPlain string `json:"descriptionPlain"`
	Categories       struct {
		Location   string `json:"location"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
}

// Search walks every configured board. A failing board is logged and skipped
// so one broken ATS endpoint cannot sink the rest.
func (s *Boards) Search(ctx context.Context, query string) []domain.Job {
	var results []domain.Job
	for _, board := range s.boards {
		var jobs []domain.Job
		var err error
		switch board.ATS {
		case "greenhouse":
			jobs, err = s.searchGreenhouse(ctx, board, query)
		case "lever":
			jobs, err = s.searchLever(ctx, board, query)
		default:
			continue
		}
		if err != nil {
			log.Printf("[Boards] %s: %v", board.Name, err)
			continue
		}
		results = append(results, jobs...)
	}
	return rank(results, s.deps.MaxResults)
}

func (s *Boards) searchGreenhouse(ctx context.Context, board config.CompanyBoard, query string) ([]domain.Job, error) {
	url := fmt.Sprintf("%s/%s/jobs?content=true", s.greenhouseURL, board.Slug)

	var data greenhouseResponse
	if err := s.deps.getJSON(ctx, url, nil, &data); err != nil {
		return nil, err
	}

	var results []domain.Job
	for _, item := range data.Jobs {
		desc := s.deps.Cleaner.CleanToText(item.Content)
		if !filter.MatchesQuery(item.Title+" "+desc, query) {
			continue
		}
		if !filter.USLocation(item.Location.Name) {
			continue
		}

		job := domain.Job{
			Title:      item.Title,
			Company:    board.Name,
			Location:   item.Location.Name,
			URL:        item.AbsoluteURL,
			DatePosted: truncateDate(item.UpdatedAt),
			Source:     s.Name(),
		}
		s.deps.finish(&job, item.Title, item.Content)
		results = append(results, job)
	}
	return results, nil
}

func (s *Boards) searchLever(ctx context.Context, board config.CompanyBoard, query string) ([]domain.Job, error) {
	url := fmt.Sprintf("%s/%s?mode=json", s.leverURL, board.Slug)

	var postings []leverPosting
	if err := s.deps.getJSON(ctx, url, nil, &postings); err != nil {
		return nil, err
	}

	var results []domain.Job
	for _, item := range postings {
		if !filter.MatchesQuery(item.Text+" "+item.DescriptionPlain, query) {
			continue
		}
		if !filter.USLocation(item.Categories.Location) {
			continue
		}

		posted := ""
		if item.CreatedAt > 0 {
			posted = time.UnixMilli(item.CreatedAt).UTC().Format("2006-01-02")
		}

		job := domain.Job{
			Title:          item.Text,
			Company:        board.Name,
			Location:       item.Categories.Location,
			URL:            item.HostedURL,
			DatePosted:     posted,
			Source:         s.Name(),
			EmploymentType: item.Categories.Commitment,
		}
		s.deps.finish(&job, item.Text, item.DescriptionPlain)
		results = append(results, job)
	}
	return results, nil
}
