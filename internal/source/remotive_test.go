package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemotiveSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"jobs": [
			{
				"title": "Product Designer",
				"company_name": "Acme",
				"category": "Design",
				"url": "https://remotive.com/jobs/1",
				"publication_date": "2026-02-20T10:00:00",
				"salary": "$90k",
				"job_type": "full_time",
				"candidate_required_location": "USA Only",
				"description": "<p>Ship with figma</p>"
			},
			{
				"title": "Product Designer",
				"company_name": "Foreign Co",
				"category": "Design",
				"url": "https://remotive.com/jobs/2",
				"candidate_required_location": "Germany",
				"description": "figma"
			},
			{
				"title": "Backend Developer",
				"company_name": "Other",
				"category": "Software Development",
				"url": "https://remotive.com/jobs/3",
				"candidate_required_location": "USA Only",
				"description": "APIs"
			}
		]}`))
	}))
	defer srv.Close()

	s := NewRemotive(testDeps())
	s.baseURL = srv.URL

	jobs := s.Search(context.Background(), "Product Designer")
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Product Designer", job.Title)
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "USA Only", job.Location)
	assert.Equal(t, "Remotive", job.Source)
	assert.Equal(t, "2026-02-20", job.DatePosted)
	assert.Equal(t, "Ship with figma", job.Description)
	assert.True(t, job.IsRemote)
	assert.Equal(t, 11, job.Score)
}

func TestRemotiveSearchServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRemotive(testDeps())
	s.baseURL = srv.URL

	assert.Empty(t, s.Search(context.Background(), "Product Designer"))
}
