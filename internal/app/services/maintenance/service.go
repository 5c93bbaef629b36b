// Package maintenance runs scheduled housekeeping jobs on a cron schedule.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/D-dracula/MicroTools-sub001/pkg/logger"
)

// Job is one scheduled housekeeping task.
type Job struct {
	Name string
	Spec string
	Run  func(ctx context.Context) error
}

// Service schedules housekeeping jobs. It implements the lifecycle service
// interface so the application manager starts and stops it.
type Service struct {
	cron *cron.Cron
	jobs []Job
	log  *logger.Logger
}

// New constructs a maintenance service with the given jobs.
func New(jobs []Job, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("maintenance")
	}
	return &Service{
		cron: cron.New(),
		jobs: jobs,
		log:  log,
	}
}

// Name implements the lifecycle service interface.
func (s *Service) Name() string { return "maintenance" }

// Start registers and starts the scheduled jobs.
func (s *Service) Start(_ context.Context) error {
	for _, job := range s.jobs {
		job := job
		_, err := s.cron.AddFunc(job.Spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			if err := job.Run(ctx); err != nil {
				s.log.WithError(err).Warnf("maintenance job %s failed", job.Name)
				return
			}
			s.log.Debugf("maintenance job %s completed", job.Name)
		})
		if err != nil {
			return fmt.Errorf("schedule %s (%q): %w", job.Name, job.Spec, err)
		}
	}
	s.cron.Start()
	s.log.Infof("maintenance started with %d jobs", len(s.jobs))
	return nil
}

// Stop halts the scheduler and waits for running jobs.
func (s *Service) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
