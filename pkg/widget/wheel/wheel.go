// Package wheel draws the breeding outcome wheel.
//
// The wheel is a radial layout of trait entities under a fixed pointer at the
// top of the surface. A spin resolves an outcome up front and animates the
// wheel until the pointer rests on the midpoint of the resolved segment; the
// outcome is only published when the animation completes.
//
// The wheel turns so that the wheel angle under the pointer always equals the
// spin offset. Increasing offsets therefore turn the wheel one way only.
package wheel

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/anim"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/pointer"
	"github.com/matzehuels/paddock/pkg/widget"
)

// Name is the widget name.
const Name = "wheel"

const (
	rimMargin    = 20.0
	labelRadius  = 0.75
	hubRadius    = 0.2
	pointerAngle = -math.Pi / 2
)

// Option configures a Wheel.
type Option func(*config)

type config struct {
	palette  draw.Palette
	driver   anim.Driver
	resolver []outcome.Option
	onResult func(outcome.Outcome)
	logger   *log.Logger
}

// WithPalette sets the color palette.
func WithPalette(p draw.Palette) Option { return func(c *config) { c.palette = p } }

// WithDriver sets the spin animation driver.
func WithDriver(d anim.Driver) Option { return func(c *config) { c.driver = d } }

// WithResolverOptions passes options to the outcome resolver.
func WithResolverOptions(opts ...outcome.Option) Option {
	return func(c *config) { c.resolver = append(c.resolver, opts...) }
}

// WithOnResult is called on the frame a spin lands.
func WithOnResult(fn func(outcome.Outcome)) Option { return func(c *config) { c.onResult = fn } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *config) { c.logger = l } }

// Wheel is the outcome wheel widget.
type Wheel struct {
	cfg  config
	spin *outcome.Spin
	sel  pointer.Selection
	// rotation of the wheel at the last Update, read by Draw and the pointer
	// handlers so hover always matches the frame on screen.
	rotation float64
}

var (
	_ widget.Widget   = (*Wheel)(nil)
	_ widget.Pointer  = (*Wheel)(nil)
	_ widget.Clicker  = (*Wheel)(nil)
	_ widget.Resetter = (*Wheel)(nil)
)

// New validates the trait entities and returns an idle wheel. Weights must
// form a closed distribution.
func New(set entity.Set, opts ...Option) (*Wheel, error) {
	cfg := config{
		palette: draw.DefaultPalette(),
		driver:  anim.NewDriver(),
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := widget.ValidateColors(cfg.palette, set); err != nil {
		return nil, err
	}
	res, err := outcome.NewResolver(set.WithIDs(), cfg.resolver...)
	if err != nil {
		return nil, err
	}
	w := &Wheel{
		cfg:  cfg,
		spin: outcome.NewSpin(res, cfg.driver),
		sel:  pointer.Empty(),
	}
	w.rotation = w.rotationAt(w.spin.Offset())
	return w, nil
}

// Name implements widget.Widget.
func (w *Wheel) Name() string { return Name }

// Spin requests a spin. It returns false while a spin is in flight.
func (w *Wheel) Spin() (outcome.Outcome, bool) {
	out, ok := w.spin.Request()
	if ok {
		w.sel = w.sel.Select(pointer.None)
		w.cfg.logger.Debug("spin started", "target", out.Target, "turns", out.Turns)
	}
	return out, ok
}

// Spinning reports whether a spin is in flight.
func (w *Wheel) Spinning() bool { return w.spin.InFlight() }

// Result returns the entity id and probability of the last landed spin.
func (w *Wheel) Result() (id string, probability float64, ok bool) {
	out, ok := w.spin.Selected()
	if !ok {
		return "", 0, false
	}
	return out.Entity.ID, out.Probability, true
}

// Outcome returns the last landed outcome.
func (w *Wheel) Outcome() (outcome.Outcome, bool) { return w.spin.Selected() }

// Offset returns the current spin offset.
func (w *Wheel) Offset() float64 { return w.spin.Offset() }

// Entities returns the configured traits with ids filled in.
func (w *Wheel) Entities() entity.Set { return w.spin.Resolver().Entities() }

// Update implements widget.Widget.
func (w *Wheel) Update(ts time.Duration) {
	if out, ok := w.spin.Advance(ts); ok {
		w.sel = w.sel.Select(out.Index)
		w.cfg.logger.Info("spin landed", "trait", out.Entity.Label, "probability", out.Probability)
		if w.cfg.onResult != nil {
			w.cfg.onResult(out)
		}
	}
	w.rotation = w.rotationAt(w.spin.Offset())
}

// PointerMove highlights the segment under p.
func (w *Wheel) PointerMove(s draw.Surface, p layout.Point) {
	w.sel = w.sel.HoverAt(p)
}

// PointerLeave clears the hover highlight.
func (w *Wheel) PointerLeave() { w.sel = w.sel.Leave() }

// Click on the hub starts a spin.
func (w *Wheel) Click(s draw.Surface, p layout.Point) {
	if p.Dist(s.Center()) <= radius(s)*hubRadius {
		w.Spin()
	}
}

// Reset clears the selection and any in-flight spin.
func (w *Wheel) Reset() {
	w.spin.Reset()
	w.sel = w.sel.Reset()
}

// HoverIndex maps the current hover position to a segment, or pointer.None.
func (w *Wheel) HoverIndex(s draw.Surface) int {
	if !w.sel.Hovering() {
		return pointer.None
	}
	c := s.Center()
	if w.sel.Hover.Dist(c) > radius(s) {
		return pointer.None
	}
	local := pointer.AngleAt(c, *w.sel.Hover) - w.rotation
	return pointer.RadialIndex(w.spin.Resolver().Spans(), local)
}

func (w *Wheel) rotationAt(offset float64) float64 {
	return pointerAngle - offset
}

func radius(s draw.Surface) float64 {
	return math.Max(s.Min()/2-rimMargin, 1)
}
