package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/filter"
	"github.com/project-rsd/go-jobagent/internal/search"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter() *gin.Engine {
	titles := filter.NewTitleFilter([]string{"design"}, nil, nil)
	sweeps := search.New(nil, titles, nil, nil, nil, 0)
	return New(nil, sweeps, nil).Router()
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSearchStatusIdle(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search/status", nil)
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"running":false,"progress":"","found":0,"added":0}`, w.Body.String())
}

func TestGetJobRejectsNonNumericID(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/abc", nil)
	testRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Index hits come back without application state; tracked jobs must pick up
// their stored status, untracked ones stay unset.
func TestApplyStatusesOverlaysIndexHits(t *testing.T) {
	jobs := []domain.Job{{ID: 1}, {ID: 2}, {ID: 3}}
	applyStatuses(jobs, map[int64]string{
		2: domain.StatusInterview,
		3: domain.StatusApplied,
	})

	assert.Equal(t, "", jobs[0].AppStatus)
	assert.Equal(t, domain.StatusInterview, jobs[1].AppStatus)
	assert.Equal(t, domain.StatusApplied, jobs[2].AppStatus)
}
