package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"licencewatch/internal/config"
)

// Scheduler runs the harvest on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
	svc  *HarvestService
	spec string
}

// NewScheduler creates a scheduler for the harvest service.
func NewScheduler(svc *HarvestService, cfg config.ScheduleConfig) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		svc:  svc,
		spec: cfg.CronSpec,
	}
}

// Start registers the harvest job and begins the schedule.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.runOnce)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("scheduler: started (spec=%q)", s.spec)
	return nil
}

// Stop halts the schedule; the returned context is done once any running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	log.Printf("scheduler: stopping")
	return s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	// Independent of the server's lifecycle so an in-flight harvest can
	// finish its per-record transactions cleanly.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if err := s.svc.RunAll(ctx); err != nil {
		log.Printf("scheduler: harvest run failed: %v", err)
	}
}
