// Package jobs runs periodic maintenance work for the storefront.
package jobs

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
)

// Job is a named unit of work run on a cron schedule.
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Scheduler runs jobs on their schedules. Runs of the same job never overlap.
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]Job
	log  *zap.Logger
}

// NewScheduler registers jobs with a new cron instance.
func NewScheduler(log *zap.Logger, jobs ...Job) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		jobs: make(map[string]Job, len(jobs)),
		log:  log,
	}
	for _, job := range jobs {
		if _, dup := s.jobs[job.Name]; dup {
			return nil, errors.Errorf("duplicate job %q", job.Name)
		}
		if _, err := s.cron.AddFunc(job.Spec, func() { _ = s.run(context.Background(), job) }); err != nil {
			return nil, errors.Wrapf(err, "schedule %s", job.Name)
		}
		s.jobs[job.Name] = job
	}
	return s, nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.log.Info("[jobs] scheduler started", zap.Int("jobs", len(s.jobs)))
	s.cron.Start()
}

// Stop halts the schedule. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("[jobs] scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunNow runs the named job once, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	job, ok := s.jobs[name]
	if !ok {
		return errors.Errorf("unknown job %q", name)
	}
	return s.run(ctx, job)
}

func (s *Scheduler) run(ctx context.Context, job Job) error {
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	err := job.Run(ctx)
	took := time.Since(start)

	metrics.JobDuration.WithLabelValues(job.Name).Observe(took.Seconds())
	if err != nil {
		metrics.JobRunsTotal.WithLabelValues(job.Name, "error").Inc()
		s.log.Error("[jobs.run] failed", zap.String("job", job.Name), zap.Duration("took", took), zap.Error(err))
		return err
	}
	metrics.JobRunsTotal.WithLabelValues(job.Name, "ok").Inc()
	s.log.Info("[jobs.run] done", zap.String("job", job.Name), zap.Duration("took", took))
	return nil
}
