package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-rsd/go-jobagent/internal/common/cleaner"
	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/score"
)

func testDeps() Deps {
	return Deps{
		Client:  &http.Client{Timeout: 5 * time.Second},
		Cleaner: cleaner.New(),
		Scorer: &score.Scorer{
			Skills:        []string{"figma"},
			Roles:         []string{"Product Designer"},
			Overqualified: []string{"senior"},
			Penalty:       20,
		},
		MaxResults: 25,
		UserAgent:  "JobAgent/1.0",
	}
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "JobAgent/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "token", r.Header.Get("X-Custom"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	deps := testDeps()
	err := deps.getJSON(context.Background(), srv.URL, map[string]string{"X-Custom": "token"}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestGetJSONStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	deps := testDeps()
	err := deps.getJSON(context.Background(), srv.URL, nil, &struct{}{})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Code)
}

func TestFinish(t *testing.T) {
	deps := testDeps()

	job := domain.Job{Title: "Product Designer"}
	deps.finish(&job, "Product Designer", "<p>We use figma. 3 years of experience needed. Apply by March 1, 2026.</p>")

	assert.Equal(t, "We use figma. 3 years of experience needed. Apply by March 1, 2026.", job.Description)
	assert.Equal(t, "3+ yrs", job.ExperienceLevel)
	assert.Equal(t, "March 1, 2026", job.ApplyDeadline)
	assert.Equal(t, 11, job.Score) // figma +1, role title +10
}

func TestFinishKeepsNativeFields(t *testing.T) {
	deps := testDeps()

	job := domain.Job{ExperienceLevel: "Mid Level", ApplyDeadline: "2026-06-01"}
	deps.finish(&job, "Designer", "5 years of experience")

	// source-native values win over extracted ones
	assert.Equal(t, "Mid Level", job.ExperienceLevel)
	assert.Equal(t, "2026-06-01", job.ApplyDeadline)
}

func TestRank(t *testing.T) {
	jobs := []domain.Job{
		{URL: "a", Score: 1},
		{URL: "b", Score: 9},
		{URL: "c", Score: 5},
		{URL: "d", Score: 9},
	}

	ranked := rank(jobs, 3)
	require.Len(t, ranked, 3)
	// stable: equal scores keep input order
	assert.Equal(t, "b", ranked[0].URL)
	assert.Equal(t, "d", ranked[1].URL)
	assert.Equal(t, "c", ranked[2].URL)
}

func TestTruncateDate(t *testing.T) {
	assert.Equal(t, "2026-02-20", truncateDate("2026-02-20T16:43:31Z"))
	assert.Equal(t, "2026-02-20", truncateDate("2026-02-20"))
	assert.Equal(t, "", truncateDate(""))
}
