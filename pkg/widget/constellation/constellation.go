// Package constellation draws a bloodline as a star map.
//
// Stars are listed in pedigree order: star 0 is the horse itself and the
// parents of star i are stars 2i+1 (sire side) and 2i+2 (dam side). Every
// star except the first is linked to its offspring by an animated dashed
// line. Stars breathe with a slow pulse and glow in their lineage color.
package constellation

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/pointer"
	"github.com/matzehuels/paddock/pkg/widget"
)

// Name is the widget name.
const Name = "constellation"

// Star positions are given in a design space of this size and scaled to the
// surface when drawn.
const (
	DesignWidth  = 600.0
	DesignHeight = 300.0
)

// timeRate advances the animation by 0.05 per frame at 60 fps.
const timeRate = 3.0

// hoverDistance is how close the pointer must be to pick a star.
const hoverDistance = 20.0

// Star is one ancestor on the map.
type Star struct {
	Name       string          `json:"name" toml:"name"`
	X          float64         `json:"x" toml:"x"`
	Y          float64         `json:"y" toml:"y"`
	Size       float64         `json:"size" toml:"size"`
	Brightness float64         `json:"brightness" toml:"brightness"`
	Lineage    entity.Category `json:"lineage" toml:"lineage"`
}

// Link joins a star to its offspring.
type Link struct {
	From, To int
}

// Option configures a Constellation.
type Option func(*Constellation)

// WithPalette sets the color palette.
func WithPalette(p draw.Palette) Option { return func(c *Constellation) { c.palette = p } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(c *Constellation) { c.logger = l } }

// Constellation is the bloodline star map widget.
type Constellation struct {
	palette draw.Palette
	logger  *log.Logger
	stars   []Star
	links   []Link

	phase float64
	last  *time.Duration
	sel   pointer.Selection
}

var (
	_ widget.Widget   = (*Constellation)(nil)
	_ widget.Pointer  = (*Constellation)(nil)
	_ widget.Resetter = (*Constellation)(nil)
)

// New validates the stars and derives their links.
func New(stars []Star, opts ...Option) (*Constellation, error) {
	if len(stars) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "constellation needs at least one star")
	}
	for i, s := range stars {
		if !s.Lineage.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "star %q: invalid lineage %s", s.Name, s.Lineage)
		}
		if !(s.Size > 0) {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "star %d (%q): size must be positive", i, s.Name)
		}
		if s.Brightness < 0 || s.Brightness > 1 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "star %q: brightness must be in [0, 1]", s.Name)
		}
	}
	c := &Constellation{
		palette: draw.DefaultPalette(),
		logger:  log.New(io.Discard),
		stars:   append([]Star(nil), stars...),
		sel:     pointer.Empty(),
	}
	for _, opt := range opts {
		opt(c)
	}
	for i := 1; i < len(stars); i++ {
		c.links = append(c.links, Link{From: (i - 1) / 2, To: i})
	}
	return c, nil
}

// Name implements widget.Widget.
func (c *Constellation) Name() string { return Name }

// Stars returns the configured stars.
func (c *Constellation) Stars() []Star { return c.stars }

// Links returns the offspring links.
func (c *Constellation) Links() []Link { return c.links }

// Update implements widget.Widget.
func (c *Constellation) Update(ts time.Duration) {
	if c.last != nil {
		c.phase += (ts - *c.last).Seconds() * timeRate
	}
	c.last = &ts
}

// PointerMove highlights the nearest star.
func (c *Constellation) PointerMove(_ draw.Surface, p layout.Point) { c.sel = c.sel.HoverAt(p) }

// PointerLeave clears the highlight.
func (c *Constellation) PointerLeave() { c.sel = c.sel.Leave() }

// Reset clears the highlight.
func (c *Constellation) Reset() { c.sel = c.sel.Reset() }

// Hovered returns the index of the star nearest the pointer, or pointer.None.
func (c *Constellation) Hovered(s draw.Surface) int {
	if !c.sel.Hovering() {
		return pointer.None
	}
	return pointer.Nearest(c.positions(s), *c.sel.Hover, hoverDistance)
}

func (c *Constellation) positions(s draw.Surface) []layout.Point {
	sx, sy := s.Width/DesignWidth, s.Height/DesignHeight
	out := make([]layout.Point, len(c.stars))
	for i, st := range c.stars {
		out[i] = layout.Point{X: st.X * sx, Y: st.Y * sy}
	}
	return out
}
