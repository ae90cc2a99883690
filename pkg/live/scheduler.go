package live

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/observability"
)

// Job is one scheduled live update. The context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context)

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the scheduler logger.
func WithLogger(l *log.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// Scheduler runs interval jobs for the lifetime of a mounted widget. Jobs
// run on cron goroutines; a job that is still running when its next slot
// comes up is skipped.
type Scheduler struct {
	cron   *cron.Cron
	logger *log.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
	jobs    []string
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	s.cron = cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// Every registers fn to run every d under the given name. Intervals are
// rounded down to whole seconds and must be at least one second.
func (s *Scheduler) Every(d time.Duration, name string, fn Job) error {
	if d < time.Second {
		return errors.New(errors.ErrCodeInvalidConfig, "live job %q: interval %s is below one second", name, d)
	}
	if fn == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "live job %q: nil job", name)
	}
	d = d.Truncate(time.Second)

	_, err := s.cron.AddJob("@every "+d.String(), cron.FuncJob(func() {
		s.mu.Lock()
		ctx := s.ctx
		s.mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		start := time.Now()
		s.logger.Debug("running live job", "job", name)
		fn(ctx)
		observability.Live().OnJobRun(ctx, name, time.Since(start))
	}))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "live job %q", name)
	}

	s.mu.Lock()
	s.jobs = append(s.jobs, name)
	s.mu.Unlock()
	s.logger.Debug("live job registered", "job", name, "every", d)
	return nil
}

// Jobs returns the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.jobs...)
}

// Running reports whether the scheduler has been started and not stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Start begins running jobs. Starting a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	if s.ctx.Err() != nil {
		s.ctx, s.cancel = context.WithCancel(context.Background())
	}
	s.running = true
	s.cron.Start()
	s.logger.Debug("live scheduler started", "jobs", len(s.jobs))
}

// Stop halts the schedule, cancels job contexts and waits for running jobs
// to return. Stopping a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	s.logger.Debug("live scheduler stopped")
}
