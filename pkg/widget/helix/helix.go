// Package helix draws the genetic value helix: two rotating strands of nodes
// joined by rungs. Helix nodes are shared among genetic markers in proportion
// to their weights, and each node takes its marker's color.
package helix

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/widget"
)

// Name is the widget name.
const Name = "helix"

// Helix geometry.
const (
	DefaultNodes = 10
	nodeRadius   = 6.0
	helixRadius  = 50.0
	helixPitch   = 80.0
	strands      = 2
)

// rotationRate turns the helix by 0.01 rad per frame at 60 fps.
const rotationRate = 0.6

// Option configures a Helix.
type Option func(*Helix)

// WithPalette sets the color palette.
func WithPalette(p draw.Palette) Option { return func(h *Helix) { h.palette = p } }

// WithNodes sets the number of nodes per strand.
func WithNodes(n int) Option { return func(h *Helix) { h.nodes = n } }

// WithScore shows a genetic value score in percent.
func WithScore(score float64) Option { return func(h *Helix) { h.score = &score } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(h *Helix) { h.logger = l } }

// Helix is the genetic value helix widget.
type Helix struct {
	palette draw.Palette
	logger  *log.Logger
	markers entity.Set
	nodes   int
	score   *float64

	// assign maps each node to its marker.
	assign []int
	angle  float64
	last   *time.Duration
}

var _ widget.Widget = (*Helix)(nil)

// New apportions the helix nodes among the markers. Marker weights need not
// sum to 1.
func New(markers entity.Set, opts ...Option) (*Helix, error) {
	h := &Helix{
		palette: draw.DefaultPalette(),
		logger:  log.New(io.Discard),
		nodes:   DefaultNodes,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.nodes < 2 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "helix needs at least 2 nodes, got %d", h.nodes)
	}
	if err := markers.Validate(false); err != nil {
		return nil, err
	}
	if err := widget.ValidateColors(h.palette, markers); err != nil {
		return nil, err
	}
	counts, err := layout.Apportion(markers, h.nodes)
	if err != nil {
		return nil, err
	}
	h.markers = markers.WithIDs()
	h.assign = layout.Assign(counts)
	return h, nil
}

// Name implements widget.Widget.
func (h *Helix) Name() string { return Name }

// Assignment returns the marker index of every node, bottom to top.
func (h *Helix) Assignment() []int { return h.assign }

// Angle returns the current rotation.
func (h *Helix) Angle() float64 { return h.angle }

// Update implements widget.Widget.
func (h *Helix) Update(ts time.Duration) {
	if h.last != nil {
		h.angle += (ts - *h.last).Seconds() * rotationRate
	}
	h.last = &ts
}
