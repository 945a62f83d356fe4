package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/eplus-at/eplus-resources/internal/platform/logger"
	"github.com/eplus-at/eplus-resources/internal/resource_management/store"
)

// Nightly runs at midnight; specs carry a seconds field.
const Nightly = "0 0 0 * * *"

// Library is what the nightly job refreshes.
type Library interface {
	Reload() (store.LoadStats, error)
	UpdateCache(dir string) error
}

type Scheduler struct {
	cron *cron.Cron
	lib  Library
	log  *logger.Logger
}

func NewScheduler(lib Library, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		lib:  lib,
		log:  log.With("component", "cron"),
	}
}

// Start registers the refresh job under spec (Nightly when empty) and
// starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = Nightly
	}
	if _, err := s.cron.AddFunc(spec, s.RunNightly); err != nil {
		return fmt.Errorf("schedule resource refresh %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Info("cron scheduler started", "spec", spec)
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// RunNightly rescans the resources directory and rewrites the cache.
func (s *Scheduler) RunNightly() {
	start := time.Now()
	s.log.Info("nightly resource refresh started")

	stats, err := s.lib.Reload()
	if err != nil {
		s.log.Error("resource reload failed", "error", err)
		return
	}
	if err := s.lib.UpdateCache(""); err != nil {
		s.log.Error("cache refresh failed", "error", err)
		return
	}

	s.log.Info("nightly resource refresh finished",
		"files", stats.Files,
		"records", stats.Records,
		"took", time.Since(start),
	)
}
