// Package fluid draws fractional ownership as stacked liquid bands.
//
// Owners are laid out bottom-up in configuration order, each band as tall as
// its stake. The band tops ripple over time and bubbles rise through the
// liquid while the animation plays. Clicking a band selects its owner.
package fluid

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/pointer"
	"github.com/matzehuels/paddock/pkg/widget"
)

// Name is the widget name.
const Name = "fluid"

// timeRate advances the wave phase by 0.01 per frame at 60 fps.
const timeRate = 0.6

// Option configures a Fluid.
type Option func(*Fluid)

// WithPalette sets the color palette.
func WithPalette(p draw.Palette) Option { return func(f *Fluid) { f.palette = p } }

// WithPaused starts the widget paused.
func WithPaused() Option { return func(f *Fluid) { f.playing = false } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(f *Fluid) { f.logger = l } }

// Fluid is the tokenized ownership widget.
type Fluid struct {
	palette draw.Palette
	logger  *log.Logger
	set     entity.Set

	playing bool
	phase   float64
	last    *time.Duration
	sel     pointer.Selection
}

var (
	_ widget.Widget   = (*Fluid)(nil)
	_ widget.Clicker  = (*Fluid)(nil)
	_ widget.Resetter = (*Fluid)(nil)
)

// New validates the owner stakes, which must form a closed distribution.
func New(owners entity.Set, opts ...Option) (*Fluid, error) {
	f := &Fluid{
		palette: draw.DefaultPalette(),
		logger:  log.New(io.Discard),
		playing: true,
		sel:     pointer.Empty(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := owners.Validate(true); err != nil {
		return nil, err
	}
	if err := widget.ValidateColors(f.palette, owners); err != nil {
		return nil, err
	}
	f.set = owners.WithIDs()
	return f, nil
}

// Name implements widget.Widget.
func (f *Fluid) Name() string { return Name }

// Owners returns the configured owners.
func (f *Fluid) Owners() entity.Set { return f.set }

// Playing reports whether the waves animate.
func (f *Fluid) Playing() bool { return f.playing }

// TogglePlay pauses or resumes the animation. Paused frames are still drawn.
func (f *Fluid) TogglePlay() bool {
	f.playing = !f.playing
	f.last = nil
	return f.playing
}

// Phase returns the wave phase accumulated while playing.
func (f *Fluid) Phase() float64 { return f.phase }

// ToggleOwner selects the owner with id, or clears the selection if it is
// already selected. Unknown ids are ignored.
func (f *Fluid) ToggleOwner(id string) {
	if i := f.set.Index(id); i >= 0 {
		f.sel = f.sel.Toggle(i)
	}
}

// Selected returns the selected owner.
func (f *Fluid) Selected() (entity.Entity, bool) {
	if !f.sel.HasSelection() {
		return entity.Entity{}, false
	}
	return f.set[f.sel.Selected], true
}

// Click toggles the owner whose band contains p.
func (f *Fluid) Click(s draw.Surface, p layout.Point) {
	bands, err := layout.Stacked(f.set, s.Height)
	if err != nil {
		return
	}
	if i := pointer.StackedIndex(bands, p.Y); i != pointer.None {
		f.sel = f.sel.Toggle(i)
	}
}

// Reset clears the selection.
func (f *Fluid) Reset() { f.sel = f.sel.Reset() }

// Update implements widget.Widget.
func (f *Fluid) Update(ts time.Duration) {
	if !f.playing {
		return
	}
	if f.last != nil {
		f.phase += (ts - *f.last).Seconds() * timeRate
	}
	f.last = &ts
}

func (f *Fluid) label(e entity.Entity) string {
	pct := math.Round(e.Weight*1000) / 10
	return fmt.Sprintf("%s: %s%%", e.Label, strconv.FormatFloat(pct, 'f', -1, 64))
}
