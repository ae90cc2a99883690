package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/paddock/pkg/cache"
	"github.com/matzehuels/paddock/pkg/clock"
	"github.com/matzehuels/paddock/pkg/config"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/observability"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/widget"
	"github.com/matzehuels/paddock/pkg/widget/fluid"
	"github.com/matzehuels/paddock/pkg/widget/pedigree"
	"github.com/matzehuels/paddock/pkg/widget/wheel"
)

// DefaultTTL is how long cached snapshots stay valid. Series dates move with
// the calendar, so entries are also keyed by day.
const DefaultTTL = 24 * time.Hour

// Runner executes snapshots against one dashboard configuration.
//
// The Runner holds no per-run state; multiple goroutines can share one.
type Runner struct {
	Config *config.Config
	Cache  cache.Cache
	Logger *log.Logger
	// Now stamps synthetic series; tests pin it.
	Now func() time.Time
}

// NewRunner creates a runner. A nil cache disables caching and a nil
// config uses config.Default.
func NewRunner(cfg *config.Config, c cache.Cache, logger *log.Logger) *Runner {
	if cfg == nil {
		cfg = config.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{Config: cfg, Cache: c, Logger: logger, Now: time.Now}
}

// Execute builds, animates and renders one widget snapshot.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	observability.Pipeline().OnSnapshotStart(ctx, opts.Widget, opts.Frames)
	res, err := r.execute(ctx, opts)
	observability.Pipeline().OnSnapshotComplete(ctx, opts.Widget, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	res.Stats.Duration = time.Since(start)
	return res, nil
}

func (r *Runner) execute(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	surface := opts.Surface
	if surface == (draw.Surface{}) {
		surface = r.Config.Surface
	}

	seed, seeded := opts.Seed, true
	if seed == 0 {
		seed = r.Config.Seed
	}
	if seed == 0 {
		seed, seeded = uint64(time.Now().UnixNano()), false
	}

	frames := r.frames(opts)
	key := ""
	if seeded && !opts.Realtime {
		key = r.cacheKey(opts, seed, surface, frames)
		if res, ok := r.fromCache(ctx, key, opts.Refresh); ok {
			logger.Info("snapshot from cache", "widget", opts.Widget, "formats", opts.Formats)
			res.Widget = opts.Widget
			return res, nil
		}
	}

	var landed *outcome.Outcome
	w, err := Build(r.Config, opts.Widget, BuildOptions{
		Seed:      seed,
		Timeframe: opts.Timeframe,
		Heatmap:   opts.Heatmap,
		Now:       r.now(),
		Logger:    logger,
		OnSpin: func(o outcome.Outcome) {
			landed = &o
		},
	})
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", opts.Widget, err)
	}
	if err := interact(w, surface, opts); err != nil {
		return nil, err
	}

	spin := func(frame int) {
		if frame != opts.SpinAt {
			return
		}
		if wh, ok := w.(*wheel.Wheel); ok {
			if _, ok := wh.Spin(); !ok {
				logger.Warn("spin ignored, wheel already spinning", "frame", frame)
			}
		}
	}

	var last widget.Frame
	var host *widget.Host
	if opts.Realtime {
		host, err = r.runLoop(ctx, w, surface, frames, spin, &last, logger)
	} else {
		host, err = r.runManual(ctx, w, surface, frames, spin, &last, logger)
	}
	if err != nil {
		return nil, err
	}
	if err := host.Err(); err != nil {
		return nil, fmt.Errorf("frame loop: %w", err)
	}
	stats := host.Stats()
	if stats.Frames == 0 {
		return nil, errors.New(errors.ErrCodeSurfaceUnavailable, "no frame was drawn")
	}
	logger.Info("drew frames",
		"widget", opts.Widget,
		"frames", stats.Frames,
		"commands", len(last.Commands))

	palette, err := r.Config.ResolvePalette()
	if err != nil {
		return nil, err
	}
	artifacts, err := Render(ctx, w, last, palette, opts.Formats)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Widget:    opts.Widget,
		Artifacts: artifacts,
		Stats: Stats{
			Frames:   stats.Frames,
			Commands: stats.Commands,
			Skipped:  stats.Skipped,
		},
		Outcome: landed,
	}
	if wh, ok := w.(*wheel.Wheel); ok && res.Outcome == nil {
		if out, ok := wh.Outcome(); ok {
			res.Outcome = &out
		}
	}
	if key != "" {
		r.toCache(ctx, key, res)
	}
	return res, nil
}

// runManual advances a simulated clock one frame at a time, as fast as the
// widget can draw.
func (r *Runner) runManual(ctx context.Context, w widget.Widget, s draw.Surface, frames int,
	spin func(int), last *widget.Frame, logger *log.Logger) (*widget.Host, error) {
	sched := clock.NewManual(clock.DefaultInterval)
	host := widget.NewHost(w, sched, widget.FixedSurface(s),
		func(f widget.Frame) error {
			*last = f
			return ctx.Err()
		},
		widget.WithLogger(logger),
	)
	if err := host.Mount(); err != nil {
		return nil, err
	}
	defer host.Unmount()

	for i := 1; i <= frames && host.Mounted(); i++ {
		spin(i)
		sched.Advance(1)
	}
	return host, nil
}

// runLoop dispatches frames in real time on a clock.Loop and stops after the
// requested number of drawn frames.
func (r *Runner) runLoop(ctx context.Context, w widget.Widget, s draw.Surface, frames int,
	spin func(int), last *widget.Frame, logger *log.Logger) (*widget.Host, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := clock.NewLoop(0)
	host := widget.NewHost(w, loop, widget.FixedSurface(s),
		func(f widget.Frame) error {
			*last = f
			if f.Number >= frames {
				cancel()
				return clock.ErrStop
			}
			spin(f.Number + 1)
			return ctx.Err()
		},
		widget.WithLogger(logger),
		widget.WithOnError(func(error) { cancel() }),
	)
	spin(1)
	if err := host.Mount(); err != nil {
		return nil, err
	}
	defer host.Unmount()

	if err := loop.Run(ctx); err != nil && last.Number < frames {
		return nil, err
	}
	return host, nil
}

// frames returns the number of frames to advance. A spin without an explicit
// frame count runs until the wheel has landed.
func (r *Runner) frames(opts Options) int {
	if opts.Frames > 0 {
		return opts.Frames
	}
	if opts.SpinAt > 0 {
		d := time.Duration(r.Config.Wheel.DurationMS) * time.Millisecond
		return opts.SpinAt + int((d+clock.DefaultInterval-1)/clock.DefaultInterval) + 1
	}
	return 1
}

// interact applies the pointer and selection inputs before the first frame.
func interact(w widget.Widget, s draw.Surface, opts Options) error {
	if opts.Hover != nil {
		p, ok := w.(widget.Pointer)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "%s does not track the pointer", w.Name())
		}
		p.PointerMove(s, *opts.Hover)
	}
	if opts.Click != nil {
		c, ok := w.(widget.Clicker)
		if !ok {
			return errors.New(errors.ErrCodeInvalidInput, "%s does not take clicks", w.Name())
		}
		c.Click(s, *opts.Click)
	}
	if opts.Select == "" {
		return nil
	}
	switch w := w.(type) {
	case *fluid.Fluid:
		w.ToggleOwner(opts.Select)
		if _, ok := w.Selected(); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "no owner %q", opts.Select)
		}
	case *pedigree.Pedigree:
		if !w.Select(opts.Select) {
			return errors.New(errors.ErrCodeInvalidInput, "no ancestor at %q", opts.Select)
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "%s has no selectable items", w.Name())
	}
	return nil
}

func (r *Runner) now() func() time.Time {
	if r.Now == nil {
		return time.Now
	}
	return r.Now
}

func (r *Runner) cacheKey(opts Options, seed uint64, s draw.Surface, frames int) string {
	day := r.now()().Format(time.DateOnly)
	return cache.Key("snapshot", opts.Widget, opts.Formats, frames, opts.SpinAt, seed, s,
		opts.Timeframe, opts.Hover, opts.Click, opts.Select, opts.Heatmap, day, r.Config)
}

type cachedResult struct {
	Artifacts map[string][]byte `msgpack:"artifacts"`
	Stats     Stats             `msgpack:"stats"`
	Outcome   *outcome.Outcome  `msgpack:"outcome,omitempty"`
}

func (r *Runner) fromCache(ctx context.Context, key string, refresh bool) (*Result, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var c cachedResult
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return nil, false
	}
	return &Result{Artifacts: c.Artifacts, Stats: c.Stats, Outcome: c.Outcome, Cached: true}, true
}

func (r *Runner) toCache(ctx context.Context, key string, res *Result) {
	data, err := msgpack.Marshal(cachedResult{Artifacts: res.Artifacts, Stats: res.Stats, Outcome: res.Outcome})
	if err != nil {
		r.Logger.Warn("encode snapshot for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, DefaultTTL); err != nil {
		r.Logger.Warn("cache snapshot", "err", err)
	}
}
