package source

import (
	"bytes"
	"context"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const musePage = `{"results": [
	{
		"name": "Product Designer",
		"contents": "<p>Ship with figma</p>",
		"type": "external",
		"publication_date": "2026-02-20T10:00:00Z",
		"company": {"name": "Acme"},
		"locations": [{"name": "Flexible / Remote"}],
		"levels": [{"name": "Mid Level"}],
		"refs": {"landing_page": "https://themuse.com/jobs/1"}
	}
]}`

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

// A category keeps its first-page results when a later page errors, and only
// first-page failures make it into the log.
func TestTheMuseLaterPageErrorsAreSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("category") != "Design" {
			w.Write([]byte(`{"results": []}`))
			return
		}
		if r.URL.Query().Get("page") != "0" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(musePage))
	}))
	defer srv.Close()

	buf := captureLog(t)
	s := NewTheMuse(testDeps(), "")
	s.baseURL = srv.URL

	jobs := s.Search(context.Background(), "Product Designer")
	require.Len(t, jobs, 1)

	job := jobs[0]
	assert.Equal(t, "Acme", job.Company)
	assert.Equal(t, "Flexible / Remote", job.Location)
	assert.Equal(t, "Mid Level", job.ExperienceLevel)
	assert.True(t, job.IsRemote)
	assert.NotContains(t, buf.String(), "[The Muse]")
}

func TestTheMuseFirstPageErrorIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	buf := captureLog(t)
	s := NewTheMuse(testDeps(), "")
	s.baseURL = srv.URL

	assert.Empty(t, s.Search(context.Background(), "Product Designer"))
	assert.Contains(t, buf.String(), "[The Muse] Design")
}
