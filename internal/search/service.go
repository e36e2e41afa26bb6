// Package search orchestrates sweeps: it fans the target roles out across all
// registered sources, dedupes by URL, applies the strict title pass and hands
// the surviving jobs to the store. It also owns the process-wide sweep state
// cell polled by the API.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
	"github.com/project-rsd/go-jobagent/internal/source"
)

// ErrSweepRunning is returned by Start when a sweep is already in flight.
// At most one sweep runs per process.
var ErrSweepRunning = errors.New("sweep already running")

// JobStore persists a sweep's results. UpsertJobs inserts jobs that are new by
// URL and returns them with their assigned IDs; known URLs are skipped.
type JobStore interface {
	UpsertJobs(ctx context.Context, jobs []domain.Job) ([]domain.Job, error)
}

// SeenCache remembers URLs inserted by earlier sweeps. Optional.
type SeenCache interface {
	Seen(ctx context.Context, url string) (bool, error)
	Mark(ctx context.Context, url string) error
}

// JobIndexer mirrors inserted jobs into a search index. Optional.
type JobIndexer interface {
	BulkIndex(ctx context.Context, jobs []domain.Job) error
}

// State is a snapshot of the sweep cell, safe to hand to pollers.
type State struct {
	Running  bool   `json:"running"`
	Progress string `json:"progress"`
	Found    int    `json:"found"`
	Added    int    `json:"added"`
}

// Service runs sweeps and tracks their progress.
type Service struct {
	sources []source.Source
	titles  *filter.TitleFilter
	store   JobStore
	cache   SeenCache // may be nil
	indexer JobIndexer
	delay   time.Duration

	mu    sync.Mutex
	state State
}

// New creates a sweep service. cache and indexer may be nil, in which case the
// sweep runs without cross-sweep URL caching or index mirroring.
func New(sources []source.Source, titles *filter.TitleFilter, store JobStore, cache SeenCache, indexer JobIndexer, delay time.Duration) *Service {
	return &Service{
		sources: sources,
		titles:  titles,
		store:   store,
		cache:   cache,
		indexer: indexer,
		delay:   delay,
	}
}

// SearchAll queries every source for every role and merges the results: URLs
// are deduplicated across the whole sweep, empty URLs and irrelevant titles
// are dropped, and the merged list is sorted by score descending. The sort is
// stable so ties keep role-then-source discovery order.
func (s *Service) SearchAll(ctx context.Context, roles []string) []domain.Job {
	seen := make(map[string]bool)
	var all []domain.Job

	for _, role := range roles {
		for _, src := range s.sources {
			for _, job := range src.Search(ctx, role) {
				if job.URL == "" || seen[job.URL] {
					continue
				}
				if !s.titles.Relevant(job.Title) {
					continue
				}
				seen[job.URL] = true
				all = append(all, job)
			}
			// be polite to the APIs between sources
			time.Sleep(s.delay)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})
	return all
}

// Sweep runs a full search and persists the results. Returns total found and
// newly added counts. URLs already known to the cross-sweep cache are dropped
// before the batch upsert; inserted URLs are marked only after the insert
// succeeds, so a failed insert is retried next sweep.
func (s *Service) Sweep(ctx context.Context, roles []string) (found, added int, err error) {
	results := s.SearchAll(ctx, roles)
	found = len(results)
	s.setProgress(fmt.Sprintf("Found %d jobs, saving...", found))

	batch := results
	if s.cache != nil {
		batch = batch[:0:0]
		for _, job := range results {
			cached, err := s.cache.Seen(ctx, job.URL)
			if err != nil {
				log.Printf("[Sweep] Cache check failed, keeping %s: %v", job.URL, err)
			}
			if !cached {
				batch = append(batch, job)
			}
		}
	}

	inserted, err := s.store.UpsertJobs(ctx, batch)
	if err != nil {
		return found, 0, fmt.Errorf("save jobs: %w", err)
	}
	added = len(inserted)

	if s.cache != nil {
		for _, job := range inserted {
			if err := s.cache.Mark(ctx, job.URL); err != nil {
				log.Printf("[Sweep] Cache mark failed for %s: %v", job.URL, err)
			}
		}
	}

	if s.indexer != nil && len(inserted) > 0 {
		if err := s.indexer.BulkIndex(ctx, inserted); err != nil {
			log.Printf("[Sweep] Index mirror failed: %v", err)
		}
	}

	return found, added, nil
}

// Start launches a sweep on a background goroutine. Returns ErrSweepRunning if
// one is already in flight. Internal sweep failure never propagates: it is
// converted to a terminal "Error: ..." progress message and the in-flight flag
// is released.
func (s *Service) Start(roles []string) error {
	s.mu.Lock()
	if s.state.Running {
		s.mu.Unlock()
		return ErrSweepRunning
	}
	s.state = State{Running: true, Progress: "Starting search..."}
	s.mu.Unlock()

	go s.run(roles)
	return nil
}

func (s *Service) run(roles []string) {
	s.setProgress(fmt.Sprintf("Searching %d role(s) across all sources...", len(roles)))

	found, added, err := s.Sweep(context.Background(), roles)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Running = false
	s.state.Found = found
	s.state.Added = added
	if err != nil {
		s.state.Progress = fmt.Sprintf("Error: %v", err)
		return
	}
	s.state.Progress = fmt.Sprintf("Done! Found %d, %d new.", found, added)
}

// Poll returns the current sweep state.
func (s *Service) Poll() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsRunning reports whether a sweep is in flight.
func (s *Service) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Running
}

func (s *Service) setProgress(msg string) {
	s.mu.Lock()
	s.state.Progress = msg
	s.mu.Unlock()
}
