// Package scheduler runs the recurring submission jobs: the Friday
// reminder for unsubmitted weeks and the Monday lock of the week that
// just ended.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/resourcio/resourcio/internal/config"
	"github.com/resourcio/resourcio/internal/planning"
	"github.com/resourcio/resourcio/internal/service"
)

// Scheduler owns the cron engine and the job implementations.
type Scheduler struct {
	cron        *cron.Cron
	submissions *service.SubmissionService
	cfg         config.SchedulerConfig

	// nowFn is swapped in tests to pin which week the jobs target.
	nowFn func() time.Time
}

// New builds a scheduler from config. Jobs are registered by Start.
func New(cfg config.SchedulerConfig, submissions *service.SubmissionService) *Scheduler {
	return &Scheduler{
		cron:        cron.New(cron.WithLocation(time.UTC)),
		submissions: submissions,
		cfg:         cfg,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}

// Start registers the configured jobs and starts the cron engine. A
// disabled scheduler is a no-op.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		log.Printf("scheduler disabled, skipping job registration")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.ReminderSchedule, s.runReminder); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.LockSchedule, s.runWeekLock); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("scheduler started: reminder %q, lock %q", s.cfg.ReminderSchedule, s.cfg.LockSchedule)
	return nil
}

// Stop stops the cron engine and waits for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// runReminder logs the resources that have not submitted the current
// week. Delivery is handled by an external collaborator; the job only
// produces the pending list.
func (s *Scheduler) runReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	week := planning.WeekKey(s.nowFn())
	pending, err := s.submissions.PendingForWeek(ctx, week)
	if err != nil {
		log.Printf("submission reminder failed for %s: %v", week, err)
		return
	}
	for _, r := range pending {
		log.Printf("submission reminder: %s (%s) has not submitted %s", r.Name, r.Email, week)
	}
	log.Printf("submission reminder for %s: %d resource(s) pending", week, len(pending))
}

// runWeekLock force-submits remaining drafts for the week that ended
// before the current one.
func (s *Scheduler) runWeekLock() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	week := planning.WeekKey(s.nowFn().AddDate(0, 0, -7))
	locked, err := s.submissions.LockWeek(ctx, week)
	if err != nil {
		log.Printf("week lock failed for %s: %v", week, err)
		return
	}
	log.Printf("week lock for %s: %d submission(s) locked", week, locked)
}
