package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vocradar/vocradar/internal/report"
	"github.com/vocradar/vocradar/internal/scheduler"
	"github.com/vocradar/vocradar/internal/storage"
)

// Handlers holds the API handlers.
type Handlers struct {
	store      *storage.Store
	gen        *report.Generator
	sched      *scheduler.Scheduler
	reportsDir string
}

// NewHandlers creates new API handlers.
func NewHandlers(store *storage.Store, gen *report.Generator, sched *scheduler.Scheduler, reportsDir string) *Handlers {
	return &Handlers{store: store, gen: gen, sched: sched, reportsDir: reportsDir}
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondMarkdown(w http.ResponseWriter, raw []byte) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// HealthCheck returns service health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "vocradar",
	})
}

// GetStats returns datastore statistics.
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// GetTodayTopics returns the current issue ranking as JSON.
func (h *Handlers) GetTodayTopics(w http.ResponseWriter, r *http.Request) {
	top, noise, err := h.gen.RankingSnapshot(r.Context(), 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to compute ranking")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"topics":      top,
		"noise_ratio": noise,
	})
}

// GetReportByDate serves the raw markdown report for a date (2006-01-02).
func (h *Handlers) GetReportByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		respondError(w, http.StatusBadRequest, "Date must be formatted YYYY-MM-DD")
		return
	}

	raw, err := os.ReadFile(filepath.Join(h.reportsDir, date+".md"))
	if err != nil {
		respondError(w, http.StatusNotFound, "No report for "+date)
		return
	}
	respondMarkdown(w, raw)
}

// AdminGetJobs returns the status of all scheduled jobs.
func (h *Handlers) AdminGetJobs(w http.ResponseWriter, r *http.Request) {
	if h.sched == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs": h.sched.GetJobStatus(),
	})
}

// AdminRunJob triggers a scheduled job immediately by name.
func (h *Handlers) AdminRunJob(w http.ResponseWriter, r *http.Request) {
	if h.sched == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Job name is required")
		return
	}

	if err := h.sched.RunJobNow(name); err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Job triggered: " + name,
	})
}

// GetLatestReport serves the most recent report file.
func (h *Handlers) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(h.reportsDir)
	if err != nil {
		respondError(w, http.StatusNotFound, "No reports generated yet")
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		respondError(w, http.StatusNotFound, "No reports generated yet")
		return
	}

	// Report files are named by date, so lexicographic max is the latest.
	sort.Strings(names)
	latest := names[len(names)-1]

	raw, err := os.ReadFile(filepath.Join(h.reportsDir, latest))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read report")
		return
	}
	respondMarkdown(w, raw)
}
