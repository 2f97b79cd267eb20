package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcio/resourcio/internal/config"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/planning"
	"github.com/resourcio/resourcio/internal/repository"
	"github.com/resourcio/resourcio/internal/service"
)

func TestDefaultSchedulesParse(t *testing.T) {
	specs := []string{"0 9 * * FRI", "0 0 * * MON"}
	standard := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	for _, spec := range specs {
		_, err := standard.Parse(spec)
		assert.NoError(t, err, spec)
	}
}

func TestStartDisabledIsNoop(t *testing.T) {
	store, _ := repository.NewMemoryStore()
	s := New(config.SchedulerConfig{Enabled: false}, service.NewSubmissionService(store, time.Hour))
	assert.NoError(t, s.Start())
}

func TestStartRejectsBadSpec(t *testing.T) {
	store, _ := repository.NewMemoryStore()
	s := New(config.SchedulerConfig{
		Enabled:          true,
		ReminderSchedule: "not a cron spec",
		LockSchedule:     "0 0 * * MON",
	}, service.NewSubmissionService(store, time.Hour))
	assert.Error(t, s.Start())
}

func TestWeekLockJob(t *testing.T) {
	ctx := context.Background()
	store, _ := repository.NewMemoryStore()

	require.NoError(t, store.Resources.CreateResource(ctx, &models.Resource{
		ID: "res-1", Name: "Alice Kim", Email: "alice@example.com",
		WeeklyCapacity: 40, Active: true,
	}))

	submissions := service.NewSubmissionService(store, time.Hour)
	s := New(config.SchedulerConfig{Enabled: true}, submissions)

	// Pin the clock so the job targets a known previous week.
	now := time.Date(2026, 8, 17, 0, 5, 0, 0, time.UTC) // Monday of 2026-W34
	s.nowFn = func() time.Time { return now }
	prevWeek := planning.WeekKey(now.AddDate(0, 0, -7))

	s.runWeekLock()

	sub, err := store.Submissions.GetSubmission(ctx, "res-1", prevWeek)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionStatusSubmitted, sub.Status)
}
