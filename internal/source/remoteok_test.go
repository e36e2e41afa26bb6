package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteOKSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"legal": "API terms of service apply"},
			{
				"position": "Visual Designer",
				"company": "Pixel Co",
				"location": "United States",
				"tags": ["design", "figma"],
				"description": "Brand work in figma",
				"url": "https://remoteok.com/jobs/1",
				"date": "2026-02-18T08:00:00+00:00",
				"salary_min": 70000,
				"salary_max": 90000
			},
			{
				"position": "",
				"company": "Broken",
				"url": "https://remoteok.com/jobs/2"
			}
		]`))
	}))
	defer srv.Close()

	s := NewRemoteOK(testDeps())
	s.baseURL = srv.URL

	jobs := s.Search(context.Background(), "Visual Designer")
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Visual Designer", job.Title)
	assert.Equal(t, "Pixel Co", job.Company)
	assert.Equal(t, "RemoteOK", job.Source)
	assert.Equal(t, "2026-02-18", job.DatePosted)
	assert.Equal(t, "70000", job.SalaryMin)
	assert.Equal(t, "90000", job.SalaryMax)
	assert.Equal(t, "Full-time", job.EmploymentType)
	assert.True(t, job.IsRemote)
}

func TestRemoteOKSkipsMetadataOnlyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"legal": "API terms of service apply"}]`))
	}))
	defer srv.Close()

	s := NewRemoteOK(testDeps())
	s.baseURL = srv.URL

	assert.Empty(t, s.Search(context.Background(), "Visual Designer"))
}
