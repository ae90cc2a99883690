package widget

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/clock"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/observability"
)

// SurfaceFunc reports the current drawing surface. It is queried every frame
// because the container may resize or not be laid out yet.
type SurfaceFunc func() draw.Surface

// FixedSurface returns a SurfaceFunc for a surface that never changes.
func FixedSurface(s draw.Surface) SurfaceFunc {
	return func() draw.Surface { return s }
}

// Frame is one drawn frame handed to a Renderer.
type Frame struct {
	Widget   string
	Number   int
	TS       time.Duration
	Surface  draw.Surface
	Commands draw.List
}

// Renderer consumes drawn frames. An error stops the host's clock.
type Renderer func(f Frame) error

// Stats counts what a host has done since it was created.
type Stats struct {
	Frames   int `json:"frames"`
	Skipped  int `json:"skipped"`
	Commands int `json:"commands"`
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger for the host and its clock.
func WithLogger(l *log.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithOnError receives the error that stopped the loop.
func WithOnError(fn func(error)) Option {
	return func(h *Host) { h.onError = fn }
}

// Host runs a widget on a clock and forwards every frame to a renderer.
type Host struct {
	w       Widget
	clock   *clock.Clock
	surface SurfaceFunc
	render  Renderer
	logger  *log.Logger
	onError func(error)
	stats   Stats
}

// NewHost creates a host. render may be nil when frames are only counted.
func NewHost(w Widget, sched clock.Scheduler, surface SurfaceFunc, render Renderer, opts ...Option) *Host {
	h := &Host{
		w:       w,
		surface: surface,
		render:  render,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.clock = clock.New(sched,
		clock.WithLogger(h.logger.With("widget", w.Name())),
		clock.WithOnError(h.onError),
	)
	return h
}

// Widget returns the hosted widget.
func (h *Host) Widget() Widget { return h.w }

// Mount starts the frame loop.
func (h *Host) Mount() error {
	h.logger.Debug("mount", "widget", h.w.Name())
	return h.clock.Start(h.Tick)
}

// Unmount stops the frame loop. No frame is drawn after it returns.
func (h *Host) Unmount() {
	if h.clock.Running() {
		h.logger.Debug("unmount", "widget", h.w.Name(), "frames", h.stats.Frames)
	}
	h.clock.Stop()
}

// Mounted reports whether the loop is running.
func (h *Host) Mounted() bool { return h.clock.Running() }

// Err returns the error that stopped the loop, if any.
func (h *Host) Err() error { return h.clock.Err() }

// Stats returns frame counters.
func (h *Host) Stats() Stats { return h.stats }

// Tick runs one frame: update, then draw, then render. A surface that cannot
// be drawn on skips the frame without error; the next tick retries.
func (h *Host) Tick(ts time.Duration) error {
	name := h.w.Name()
	h.w.Update(ts)

	s := h.surface()
	if err := s.Validate(); err != nil {
		h.stats.Skipped++
		h.logger.Debug("frame skipped", "widget", name, "err", err)
		observability.Frame().OnFrameSkipped(name, ts, err)
		return nil
	}

	cmds := h.w.Draw(s, ts)
	h.stats.Frames++
	h.stats.Commands += len(cmds)
	observability.Frame().OnFrame(name, ts, len(cmds))

	if h.render == nil {
		return nil
	}
	return h.render(Frame{
		Widget:   name,
		Number:   h.stats.Frames,
		TS:       ts,
		Surface:  s,
		Commands: cmds,
	})
}
