// Package scheduler runs the periodic rollup snapshot job.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of scheduled work. It reports how many items it wrote.
type Job interface {
	Run(ctx context.Context) (int, error)
}

// Scheduler invokes a Job on a cron schedule in UTC. Overlapping runs are skipped.
type Scheduler struct {
	cron     *cron.Cron
	job      Job
	name     string
	schedule string
	timeout  time.Duration
}

// New creates a scheduler for job. schedule is a standard five-field cron spec or a
// descriptor such as "@daily". timeout bounds a single run; zero means no limit.
func New(name, schedule string, job Job, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		job:      job,
		name:     name,
		schedule: schedule,
		timeout:  timeout,
	}

	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("unable to schedule %s with %q: %w", name, schedule, err)
	}
	return s, nil
}

// Start begins running the job in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("%s scheduler started: %s (UTC)", s.name, s.schedule)
}

// Stop prevents further runs and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next scheduled run time, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Scheduler) runOnce() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	log.Printf("Starting %s job", s.name)
	n, err := s.job.Run(ctx)
	if err != nil {
		log.Printf("ERROR: %s job failed after %s (%d written): %v", s.name, time.Since(start).Round(time.Millisecond), n, err)
		return
	}
	log.Printf("%s job completed in %s: %d written", s.name, time.Since(start).Round(time.Millisecond), n)
}
