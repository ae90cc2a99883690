// Package clock drives per-frame callbacks for a single widget.
//
// A [Clock] sits on top of a [Scheduler], the platform's "call me on the next
// display frame" primitive. Starting a clock registers a tick function that
// runs once per frame with a monotonically increasing timestamp; stopping it
// guarantees the tick never runs again, even when a frame had already been
// requested from the scheduler.
//
// The model is single-threaded and cooperative. A clock and its tick function
// are only ever touched from the scheduler's dispatch goroutine, so there are
// no locks. Ticks must return without blocking.
//
// The clock sequences frames; it does not own widget state. Tick functions
// read and replace explicit state values (see package anim).
package clock

import (
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/observability"
)

// FrameID identifies a pending frame request. Zero is never a valid id.
type FrameID uint64

// FrameFunc is invoked by a Scheduler on the next display frame.
type FrameFunc func(ts time.Duration)

// Scheduler is the frame-scheduling primitive a Clock runs on.
//
// RequestFrame queues fn for the next frame and returns an id that can be
// passed to CancelFrame. A cancelled frame must not be dispatched. Timestamps
// handed to fn never decrease.
type Scheduler interface {
	RequestFrame(fn FrameFunc) FrameID
	CancelFrame(id FrameID)
}

// TickFunc is a per-frame callback. Returning ErrStop ends the loop cleanly;
// any other error stops the loop and is reported to the owner.
type TickFunc func(ts time.Duration) error

var (
	// ErrAlreadyRunning is returned by Start when the clock has an active loop.
	ErrAlreadyRunning = errors.New(errors.ErrCodeInvalidInput, "clock already running")

	// ErrStop can be returned from a TickFunc to stop the loop without error.
	ErrStop = stderrors.New("clock: stop requested")
)

// Option configures a Clock.
type Option func(*Clock)

// WithOnError registers a callback that receives the error which stopped the
// loop. It runs on the dispatch goroutine after the clock has stopped.
func WithOnError(fn func(error)) Option {
	return func(c *Clock) { c.onError = fn }
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *log.Logger) Option {
	return func(c *Clock) {
		if l != nil {
			c.logger = l
		}
	}
}

// Clock runs one tick loop at a time on a Scheduler.
type Clock struct {
	sched   Scheduler
	tick    TickFunc
	onError func(error)
	logger  *log.Logger

	running bool
	pending FrameID
	gen     uint64
	last    time.Duration
	frames  uint64
	err     error
}

// New returns a stopped clock bound to s.
func New(s Scheduler, opts ...Option) *Clock {
	c := &Clock{
		sched:  s,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins invoking tick once per frame. Starting a running clock returns
// ErrAlreadyRunning and leaves the active loop untouched.
func (c *Clock) Start(tick TickFunc) error {
	if tick == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil tick function")
	}
	if c.running {
		return ErrAlreadyRunning
	}
	c.running = true
	c.tick = tick
	c.err = nil
	c.frames = 0
	c.gen++
	c.schedule()
	c.logger.Debug("clock started", "generation", c.gen)
	return nil
}

// Stop cancels the loop. After Stop returns the tick function is never
// invoked again, including for a frame that was already queued. Stop is
// idempotent and may be called from inside a tick.
func (c *Clock) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.gen++
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
	c.logger.Debug("clock stopped", "frames", c.frames)
}

// Running reports whether a loop is active.
func (c *Clock) Running() bool { return c.running }

// Frames returns the number of ticks completed since the last Start.
func (c *Clock) Frames() uint64 { return c.frames }

// Err returns the error that stopped the most recent loop, if any.
func (c *Clock) Err() error { return c.err }

func (c *Clock) schedule() {
	gen := c.gen
	c.pending = c.sched.RequestFrame(func(ts time.Duration) {
		c.frame(gen, ts)
	})
}

func (c *Clock) frame(gen uint64, ts time.Duration) {
	if !c.running || gen != c.gen {
		return
	}
	c.pending = 0
	if ts < c.last {
		ts = c.last
	}
	c.last = ts

	err := c.invoke(ts)

	// The tick may have stopped, or stopped and restarted, the clock.
	if !c.running || gen != c.gen {
		return
	}
	c.frames++

	switch {
	case err == nil:
		c.schedule()
	case stderrors.Is(err, ErrStop):
		c.Stop()
	default:
		c.fail(ts, err)
	}
}

func (c *Clock) invoke(ts time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panicked: %v", r)
		}
	}()
	return c.tick(ts)
}

func (c *Clock) fail(ts time.Duration, cause error) {
	c.Stop()
	c.err = errors.Wrap(errors.ErrCodeTick, cause, "frame at %s", ts)
	c.logger.Error("tick failed, loop stopped", "ts", ts, "err", cause)
	observability.Frame().OnTickError(ts, c.err)
	if c.onError != nil {
		c.onError(c.err)
	}
}
