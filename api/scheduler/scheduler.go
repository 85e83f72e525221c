package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the recurring background jobs of the console, such as polling the backend
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a new scheduler instance
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.UTC)),
	}
}

// Every runs job every interval (rounded down to the second, at least one second). Runs are not
// serialized: a slow run does not delay the next one. The returned func removes the job.
func (s *Scheduler) Every(interval time.Duration, job func()) func() {
	id := s.cron.Schedule(cron.Every(interval), cron.FuncJob(job))
	zap.S().Debugw("job scheduled", "entry", id, "interval", interval)
	return func() {
		s.cron.Remove(id)
		zap.S().Debugw("job removed", "entry", id)
	}
}

// Len returns the number of scheduled jobs
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start begins running the registered jobs
func (s *Scheduler) Start() {
	s.cron.Start()
	zap.S().Info("scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("scheduler stopped")
}
