// Package housekeeping runs the process-lifetime background jobs that
// observe system state without mutating it (§5 "Cleanup timers... are
// process-lifetime; no per-request timers outlive their request"). It
// never transitions a live session out of active — orphan sessions are
// observed, not reaped (see DESIGN.md for the reasoning).
package housekeeping

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	liverepositories "scribe/server/modules/livesession/domain/repositories"
	usageentities "scribe/server/modules/usage/domain/entities"
	usagerepositories "scribe/server/modules/usage/domain/repositories"
)

// Scheduler wraps a cron runner with the one hourly summary job this repo
// needs; grounded on the same robfig/cron/v3 usage the sibling example
// repos wire for their own scheduled jobs.
type Scheduler struct {
	cron      *cron.Cron
	liveRepo  liverepositories.LiveSessionRepository
	usageRepo usagerepositories.UsageRepository
}

func NewScheduler(liveRepo liverepositories.LiveSessionRepository, usageRepo usagerepositories.UsageRepository) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		liveRepo:  liveRepo,
		usageRepo: usageRepo,
	}
}

// Start registers the hourly summary job and begins running it in the
// background. Call Stop to drain in-flight runs at shutdown.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("@hourly", s.logSummary)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop blocks until any in-flight run completes, then stops the runner.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) logSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	active, err := s.liveRepo.CountActive(ctx)
	if err != nil {
		log.Printf("housekeeping: failed to count active sessions: %v", err)
		return
	}

	month := usageentities.CurrentMonth(time.Now())
	extracts, err := s.usageRepo.SumMonthAllUsers(ctx, month)
	if err != nil {
		log.Printf("housekeeping: failed to sum %s usage: %v", month, err)
		return
	}

	log.Printf("housekeeping: %d active live session(s), %d extract(s) recorded for %s", active, extracts, month)
}
