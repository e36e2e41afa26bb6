package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
	"github.com/project-rsd/go-jobagent/internal/source"
)

type fakeSource struct {
	name    string
	jobs    []domain.Job
	block   chan struct{} // nil means return immediately
	queries []string
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(_ context.Context, query string) []domain.Job {
	if f.block != nil {
		<-f.block
	}
	f.queries = append(f.queries, query)
	return f.jobs
}

type fakeStore struct {
	upserted []domain.Job
	err      error
}

func (f *fakeStore) UpsertJobs(_ context.Context, jobs []domain.Job) ([]domain.Job, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.upserted = jobs
	inserted := make([]domain.Job, len(jobs))
	for i, j := range jobs {
		j.ID = int64(i + 1)
		inserted[i] = j
	}
	return inserted, nil
}

type fakeCache struct {
	seen   map[string]bool
	marked []string
}

func (f *fakeCache) Seen(_ context.Context, url string) (bool, error) { return f.seen[url], nil }
func (f *fakeCache) Mark(_ context.Context, url string) error {
	f.marked = append(f.marked, url)
	return nil
}

type fakeIndexer struct {
	indexed []domain.Job
}

func (f *fakeIndexer) BulkIndex(_ context.Context, jobs []domain.Job) error {
	f.indexed = jobs
	return nil
}

func testTitles() *filter.TitleFilter {
	return filter.NewTitleFilter([]string{"design"}, []string{"ux"}, []string{"engineer"})
}

func newTestService(sources []source.Source, st JobStore, cache SeenCache, idx JobIndexer) *Service {
	return New(sources, testTitles(), st, cache, idx, 0)
}

func TestSearchAll(t *testing.T) {
	src := &fakeSource{name: "A", jobs: []domain.Job{
		{Title: "Product Designer", URL: "https://a/1", Score: 5},
		{Title: "Product Designer", URL: "https://a/1", Score: 5}, // duplicate URL
		{Title: "Software Engineer", URL: "https://a/2", Score: 9},
		{Title: "UX Researcher", URL: "", Score: 3}, // empty URL
		{Title: "Brand Designer", URL: "https://a/3", Score: 7},
	}}

	svc := newTestService([]source.Source{src}, &fakeStore{}, nil, nil)
	jobs := svc.SearchAll(context.Background(), []string{"Product Designer"})

	require.Len(t, jobs, 2)
	// sorted by score descending
	assert.Equal(t, "https://a/3", jobs[0].URL)
	assert.Equal(t, "https://a/1", jobs[1].URL)
	assert.Equal(t, []string{"Product Designer"}, src.queries)
}

func TestSearchAllDedupesAcrossSources(t *testing.T) {
	a := &fakeSource{name: "A", jobs: []domain.Job{{Title: "Visual Designer", URL: "https://x/1", Score: 2}}}
	b := &fakeSource{name: "B", jobs: []domain.Job{{Title: "Visual Designer", URL: "https://x/1", Score: 8}}}

	svc := newTestService([]source.Source{a, b}, &fakeStore{}, nil, nil)
	jobs := svc.SearchAll(context.Background(), []string{"Visual Designer"})

	// first discovery wins, regardless of score
	require.Len(t, jobs, 1)
	assert.Equal(t, 2, jobs[0].Score)
}

func TestSweep(t *testing.T) {
	src := &fakeSource{name: "A", jobs: []domain.Job{
		{Title: "Product Designer", URL: "https://a/new", Score: 5},
		{Title: "Brand Designer", URL: "https://a/cached", Score: 4},
	}}
	st := &fakeStore{}
	cache := &fakeCache{seen: map[string]bool{"https://a/cached": true}}
	idx := &fakeIndexer{}

	svc := newTestService([]source.Source{src}, st, cache, idx)
	found, added, err := svc.Sweep(context.Background(), []string{"Designer"})

	require.NoError(t, err)
	assert.Equal(t, 2, found)
	assert.Equal(t, 1, added)

	// cached URL never reaches the store
	require.Len(t, st.upserted, 1)
	assert.Equal(t, "https://a/new", st.upserted[0].URL)

	// inserted jobs are marked and mirrored, with IDs assigned
	assert.Equal(t, []string{"https://a/new"}, cache.marked)
	require.Len(t, idx.indexed, 1)
	assert.Equal(t, int64(1), idx.indexed[0].ID)
}

func TestStartRejectsConcurrentSweep(t *testing.T) {
	block := make(chan struct{})
	src := &fakeSource{name: "A", block: block}
	svc := newTestService([]source.Source{src}, &fakeStore{}, nil, nil)

	require.NoError(t, svc.Start([]string{"Designer"}))
	assert.ErrorIs(t, svc.Start([]string{"Designer"}), ErrSweepRunning)
	assert.True(t, svc.IsRunning())

	close(block)
	waitForIdle(t, svc)

	state := svc.Poll()
	assert.False(t, state.Running)
	assert.Contains(t, state.Progress, "Done!")

	// a finished sweep releases the flag for the next one
	src.block = nil
	require.NoError(t, svc.Start([]string{"Designer"}))
	waitForIdle(t, svc)
}

func waitForIdle(t *testing.T, svc *Service) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for svc.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("sweep did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
