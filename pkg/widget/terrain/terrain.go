// Package terrain draws the market momentum chart: a synthetic price series
// rendered as an area under a line, with decorative peaks behind it and a
// dashed cursor that follows the pointer.
package terrain

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/pointer"
	"github.com/matzehuels/paddock/pkg/series"
	"github.com/matzehuels/paddock/pkg/widget"
)

// Name is the widget name.
const Name = "terrain"

const numPeaks = 5

// Hover is the tooltip content for the point under the pointer.
type Hover struct {
	Index int    `json:"index"`
	Value int64  `json:"value"`
	Label string `json:"label"`
}

// Option configures a Terrain.
type Option func(*Terrain)

// WithPalette sets the color palette.
func WithPalette(p draw.Palette) Option { return func(t *Terrain) { t.palette = p } }

// WithGenerator sets the series generator.
func WithGenerator(g *series.Generator) Option {
	return func(t *Terrain) {
		if g != nil {
			t.gen = g
		}
	}
}

// WithTimeframe sets the initial timeframe.
func WithTimeframe(tf series.Timeframe) Option { return func(t *Terrain) { t.tf = tf } }

// WithMovingAverage overlays a simple moving average over period days.
// Zero disables the overlay.
func WithMovingAverage(period int) Option { return func(t *Terrain) { t.average = period } }

// WithPeakSeed places the decorative peaks reproducibly.
func WithPeakSeed(seed uint64) Option {
	return func(t *Terrain) { t.peakRand = rand.New(rand.NewPCG(seed, seed^0xdeadbeef)) }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(t *Terrain) { t.logger = l } }

// Terrain is the market momentum widget.
type Terrain struct {
	palette  draw.Palette
	gen      *series.Generator
	logger   *log.Logger
	peakRand *rand.Rand

	current float64
	tf      series.Timeframe
	average int

	points   []series.Point
	averages []series.Average
	// peaks are fractions of the surface size so they survive resizes.
	peaks []layout.Point
	sel   pointer.Selection
}

var (
	_ widget.Widget   = (*Terrain)(nil)
	_ widget.Pointer  = (*Terrain)(nil)
	_ widget.Resetter = (*Terrain)(nil)
)

// New generates the initial series for the current token value.
func New(current float64, opts ...Option) (*Terrain, error) {
	seed := uint64(time.Now().UnixNano())
	t := &Terrain{
		palette:  draw.DefaultPalette(),
		logger:   log.New(io.Discard),
		peakRand: rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		current:  current,
		tf:       series.DefaultTimeframe,
		sel:      pointer.Empty(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.gen == nil {
		t.gen = series.NewGenerator()
	}
	tf, err := series.ParseTimeframe(string(t.tf))
	if err != nil {
		return nil, err
	}
	t.tf = tf

	t.peaks = make([]layout.Point, numPeaks)
	for i := range t.peaks {
		t.peaks[i] = layout.Point{X: t.peakRand.Float64(), Y: t.peakRand.Float64()*0.5 + 0.3}
	}
	if err := t.regenerate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Name implements widget.Widget.
func (t *Terrain) Name() string { return Name }

// Timeframe returns the active timeframe.
func (t *Terrain) Timeframe() series.Timeframe { return t.tf }

// Points returns the current series.
func (t *Terrain) Points() []series.Point { return t.points }

// SetTimeframe regenerates the series for tf and clears the hover.
func (t *Terrain) SetTimeframe(tf series.Timeframe) error {
	tf, err := series.ParseTimeframe(string(tf))
	if err != nil {
		return err
	}
	prev := t.tf
	t.tf = tf
	if err := t.regenerate(); err != nil {
		t.tf = prev
		return err
	}
	t.logger.Debug("timeframe changed", "timeframe", tf, "points", len(t.points))
	return nil
}

// SetCurrentValue regenerates the series around a new base value.
func (t *Terrain) SetCurrentValue(v float64) error {
	prev := t.current
	t.current = v
	if err := t.regenerate(); err != nil {
		t.current = prev
		return err
	}
	return nil
}

func (t *Terrain) regenerate() error {
	pts, err := t.gen.Generate(t.tf.Params(t.current))
	if err != nil {
		return err
	}
	var avg []series.Average
	if t.average > 0 {
		if avg, err = series.MovingAverage(pts, t.average); err != nil {
			return err
		}
	}
	t.points, t.averages = pts, avg
	t.sel = t.sel.Reset()
	return nil
}

// Update implements widget.Widget. The chart has no time-driven state.
func (t *Terrain) Update(time.Duration) {}

// PointerMove records the pointer for the hover cursor.
func (t *Terrain) PointerMove(_ draw.Surface, p layout.Point) { t.sel = t.sel.HoverAt(p) }

// PointerLeave hides the hover cursor.
func (t *Terrain) PointerLeave() { t.sel = t.sel.Leave() }

// Reset clears the hover.
func (t *Terrain) Reset() { t.sel = t.sel.Reset() }

// Hovered returns the series point under the pointer on surface s. It is
// recomputed from the current series on every call.
func (t *Terrain) Hovered(s draw.Surface) (Hover, bool) {
	if !t.sel.Hovering() {
		return Hover{}, false
	}
	i := pointer.SeriesIndex(t.sel.Hover.X, s.Width, len(t.points))
	if i == pointer.None {
		return Hover{}, false
	}
	p := t.points[i]
	return Hover{Index: i, Value: p.Value, Label: p.Label()}, true
}

// String formats the hover for a tooltip.
func (h Hover) String() string {
	return fmt.Sprintf("%s  %d $TABLE", h.Label, h.Value)
}
