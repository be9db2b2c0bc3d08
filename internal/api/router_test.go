package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vocradar/vocradar/internal/scheduler"
)

func newTestServer(t *testing.T, sched *scheduler.Scheduler) *httptest.Server {
	t.Helper()
	s := NewServer(nil, nil, sched, t.TempDir(), ":0")
	ts := httptest.NewServer(s.router)
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminRunJob(t *testing.T) {
	sched := scheduler.NewScheduler()

	ran := make(chan struct{})
	sched.AddJob(&scheduler.Job{
		Name:     "crawl",
		Schedule: scheduler.Schedule{Type: scheduler.ScheduleInterval, Interval: time.Hour},
		Handler: func(ctx context.Context) error {
			close(ran)
			return nil
		},
	})

	ts := newTestServer(t, sched)

	resp, err := http.Post(ts.URL+"/api/admin/jobs/crawl/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job was not triggered through the API")
	}
}

func TestAdminRunJobUnknown(t *testing.T) {
	ts := newTestServer(t, scheduler.NewScheduler())

	resp, err := http.Post(ts.URL+"/api/admin/jobs/nope/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAdminRunJobNoScheduler(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Post(ts.URL+"/api/admin/jobs/crawl/run", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAdminGetJobs(t *testing.T) {
	sched := scheduler.NewScheduler()
	sched.AddJob(&scheduler.Job{
		Name:     "daily-report",
		Schedule: scheduler.Schedule{Type: scheduler.ScheduleDaily, Hour: 21},
		Handler:  func(ctx context.Context) error { return nil },
	})

	ts := newTestServer(t, sched)

	resp, err := http.Get(ts.URL + "/api/admin/jobs")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}