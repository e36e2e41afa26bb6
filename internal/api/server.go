// Package api serves the web REST surface over the shared store. Handlers
// apply the list filters (status, remote, source, sort) on the queried rows
// rather than pushing every permutation into SQL.
package api

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/project-rsd/go-jobagent/internal/config"
	"github.com/project-rsd/go-jobagent/internal/domain"
	"github.com/project-rsd/go-jobagent/internal/search"
	"github.com/project-rsd/go-jobagent/internal/store"
)

// JobSearcher answers the q= keyword parameter. Satisfied by the
// Elasticsearch mirror; a nil searcher falls back to the store's substring
// search.
type JobSearcher interface {
	Search(ctx context.Context, keyword string) ([]domain.Job, error)
}

// Server wires handlers over the store and the sweep service.
type Server struct {
	store    *store.Store
	sweeps   *search.Service
	searcher JobSearcher // may be nil
	roles    []string
}

// New creates the API server. searcher may be nil; keyword search then uses
// the store's ILIKE matching.
func New(st *store.Store, sweeps *search.Service, searcher JobSearcher) *Server {
	return &Server{store: st, sweeps: sweeps, searcher: searcher, roles: config.TargetRoles}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/health", s.health)

	api := r.Group("/api")
	{
		api.GET("/jobs", s.listJobs)
		api.GET("/jobs/:id", s.getJob)
		api.POST("/jobs/:id/status", s.setStatus)
		api.PATCH("/jobs/:id/notes", s.updateNotes)
		api.GET("/stats", s.stats)
		api.GET("/applications", s.listApplications)
		api.GET("/config", s.configInfo)
		api.POST("/search", s.startSearch)
		api.GET("/search/status", s.searchStatus)
	}

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listJobs(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	status := strings.TrimSpace(c.Query("status"))
	minScore, _ := strconv.Atoi(c.DefaultQuery("min_score", "0"))
	isRemote := c.Query("is_remote")
	source := strings.TrimSpace(c.Query("source"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "200"))
	sortBy := c.DefaultQuery("sort", "score")

	var jobs []domain.Job
	var err error
	if q != "" {
		jobs, err = s.searchByKeyword(c, q)
	} else {
		jobs, err = s.store.GetJobs(c.Request.Context(), limit, minScore)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// Filters the store queries don't support natively
	filtered := jobs[:0]
	for _, j := range jobs {
		if status != "" {
			st := j.AppStatus
			if st == "" {
				st = domain.StatusSaved
			}
			if st != status {
				continue
			}
		}
		if isRemote == "1" && !j.IsRemote {
			continue
		}
		if source != "" && !strings.EqualFold(j.Source, source) {
			continue
		}
		filtered = append(filtered, j)
	}

	// The store already returns rows score-sorted; only re-sort on request.
	switch sortBy {
	case "date":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DatePosted > filtered[j].DatePosted
		})
	case "company":
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Company) < strings.ToLower(filtered[j].Company)
		})
	}

	if filtered == nil {
		filtered = []domain.Job{}
	}
	c.JSON(http.StatusOK, filtered)
}

// searchByKeyword prefers the index mirror and falls back to the store.
// Mirror hits carry no application status, so it gets joined back from the
// store before the status= filter sees the rows.
func (s *Server) searchByKeyword(c *gin.Context, keyword string) ([]domain.Job, error) {
	if s.searcher != nil {
		jobs, err := s.searcher.Search(c.Request.Context(), keyword)
		if err == nil {
			if err := s.joinStatuses(c.Request.Context(), jobs); err == nil {
				return jobs, nil
			}
		}
		// mirror or status join down: degrade to the store
	}
	return s.store.SearchJobs(c.Request.Context(), keyword)
}

func (s *Server) joinStatuses(ctx context.Context, jobs []domain.Job) error {
	if len(jobs) == 0 {
		return nil
	}
	ids := make([]int64, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	statuses, err := s.store.AppStatuses(ctx, ids)
	if err != nil {
		return err
	}
	applyStatuses(jobs, statuses)
	return nil
}

func applyStatuses(jobs []domain.Job, statuses map[int64]string) {
	for i := range jobs {
		if status, ok := statuses[jobs[i].ID]; ok {
			jobs[i].AppStatus = status
		}
	}
}

func (s *Server) getJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := s.store.GetJob(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

type statusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *Server) setStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	err = s.store.SetStatus(c.Request.Context(), id, req.Status, req.Notes)
	switch {
	case errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status '" + req.Status + "'"})
		return
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update"})
		return
	}

	job, err := s.store.GetJob(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": req.Status, "job": job})
}

type notesRequest struct {
	Notes string `json:"notes"`
}

// updateNotes rewrites the notes while keeping the current status; a job with
// no application yet gets one in "saved".
func (s *Server) updateNotes(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var req notesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON: " + err.Error()})
		return
	}

	job, err := s.store.GetJob(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := job.AppStatus
	if status == "" {
		status = domain.StatusSaved
	}
	if err := s.store.SetStatus(c.Request.Context(), id, status, req.Notes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (s *Server) stats(c *gin.Context) {
	stats, err := s.store.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) listApplications(c *gin.Context) {
	status := strings.TrimSpace(c.Query("status"))
	apps, err := s.store.GetApplications(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if apps == nil {
		apps = []domain.ApplicationEntry{}
	}
	c.JSON(http.StatusOK, apps)
}

// configInfo exposes the roles, profile, status enum and the distinct sources
// present in the store, for the frontend's filter widgets.
func (s *Server) configInfo(c *gin.Context) {
	jobs, err := s.store.GetJobs(c.Request.Context(), 9999, 0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	seen := make(map[string]bool)
	var sources []string
	for _, j := range jobs {
		if j.Source != "" && !seen[j.Source] {
			seen[j.Source] = true
			sources = append(sources, j.Source)
		}
	}
	sort.Strings(sources)

	c.JSON(http.StatusOK, gin.H{
		"target_roles": s.roles,
		"profile":      config.DefaultProfile,
		"statuses":     domain.ValidStatuses,
		"sources":      sources,
	})
}

type searchRequest struct {
	Role string `json:"role"`
}

func (s *Server) startSearch(c *gin.Context) {
	var req searchRequest
	// Body is optional: empty or absent means sweep all target roles
	_ = c.ShouldBindJSON(&req)

	roles := s.roles
	if req.Role != "" {
		roles = []string{req.Role}
	}

	if err := s.sweeps.Start(roles); err != nil {
		if errors.Is(err, search.ErrSweepRunning) {
			c.JSON(http.StatusConflict, gin.H{"error": "Search already running"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "message": "Search started"})
}

func (s *Server) searchStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.sweeps.Poll())
}
