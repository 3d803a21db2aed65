// Package scheduler drives recurring archive runs.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"FXArchive/internal/archive"
	"FXArchive/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Scheduler manages the cron-driven archive task.
type Scheduler struct {
	Cron     *cron.Cron
	Archiver *archive.Archiver
	Notifier *notifier.WebhookNotifier
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, a *archive.Archiver, n *notifier.WebhookNotifier) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Archiver: a,
		Notifier: n,
		Ctx:      ctx,
	}
}

// RegisterDaily registers the archive task under a six-field cron spec.
func (s *Scheduler) RegisterDaily(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the archive task immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Printf("[INFO] running daily archive for %s", s.Archiver.Pair())
	summary, err := s.Archiver.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] daily archive: %v", err)
		s.trySend(fmt.Sprintf("FX archive run failed: %v", err))
		return
	}
	s.trySend(summary.Format())
}

func (s *Scheduler) trySend(text string) {
	if !s.Notifier.Enabled() {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
