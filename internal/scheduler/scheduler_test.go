package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunJobNowTriggersHandler(t *testing.T) {
	s := NewScheduler()
	defer s.cancel()

	ran := make(chan struct{})
	s.AddJob(&Job{
		Name:     "crawl",
		Schedule: Schedule{Type: ScheduleInterval, Interval: time.Hour},
		Handler: func(ctx context.Context) error {
			close(ran)
			return nil
		},
	})

	require.NoError(t, s.RunJobNow("crawl"))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job handler was not invoked")
	}
}

func TestRunJobNowUnknownJob(t *testing.T) {
	s := NewScheduler()
	defer s.cancel()

	err := s.RunJobNow("nope")
	require.Error(t, err)
	assert.ErrorContains(t, err, "nope")
}

func TestGetJobStatus(t *testing.T) {
	s := NewScheduler()
	defer s.cancel()

	s.AddJob(&Job{
		Name:     "daily-report",
		Schedule: Schedule{Type: ScheduleDaily, Hour: 21},
		Handler:  func(ctx context.Context) error { return nil },
	})

	status := s.GetJobStatus()
	require.Len(t, status, 1)
	assert.Equal(t, "daily-report", status[0]["name"])
	assert.NotZero(t, status[0]["next_run"])
}

func TestCalculateNextRunDaily(t *testing.T) {
	next := calculateNextRun(Schedule{Type: ScheduleDaily, Hour: 21})
	now := time.Now().UTC()

	assert.True(t, next.After(now))
	assert.Equal(t, 21, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.Sub(now) <= 24*time.Hour)
}

func TestCalculateNextRunInterval(t *testing.T) {
	next := calculateNextRun(Schedule{Type: ScheduleInterval, Interval: time.Hour})
	diff := time.Until(next)
	assert.InDelta(t, time.Hour.Seconds(), diff.Seconds(), 5)
}
