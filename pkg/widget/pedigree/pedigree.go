// Package pedigree draws a horse's family tree.
//
// Ancestors are stored in pedigree order: index 0 is the horse, and the
// parents of ancestor i sit at 2i+1 (sire) and 2i+2 (dam). Generation g
// occupies indices 2^g-1 through 2^(g+1)-2, which is also the row layout
// produced by layout.Tree. Every ancestor belongs to the sire line or the dam
// line depending on which parent of the horse it descends through; the
// heatmap colors boxes by line.
//
// Besides the canvas Draw Pass the tree can be exported as Graphviz DOT and
// rendered to SVG in-process with go-graphviz.
package pedigree

import (
	"fmt"
	"io"
	"math"
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
const Name = "pedigree"

// MaxDepth bounds the number of generations drawn.
const MaxDepth = 5

// Horse is one node of a pedigree as configured.
type Horse struct {
	Name string `json:"name" toml:"name"`
	Sire *Horse `json:"sire,omitempty" toml:"sire,omitempty"`
	Dam  *Horse `json:"dam,omitempty" toml:"dam,omitempty"`
}

// Depth returns the number of generations below and including h.
func (h *Horse) Depth() int {
	if h == nil {
		return 0
	}
	return 1 + max(h.Sire.Depth(), h.Dam.Depth())
}

// Ancestor is one placed node of the tree.
type Ancestor struct {
	Index      int             `json:"index"`
	Name       string          `json:"name"`
	Generation int             `json:"generation"`
	Position   int             `json:"position"`
	Line       entity.Category `json:"line"`
	Influence  float64         `json:"influence"`
}

// Key returns the selection key "generation-position".
func (a Ancestor) Key() string { return fmt.Sprintf("%d-%d", a.Generation, a.Position) }

// Role returns "Stallion" for sire positions and "Mare" for dam positions.
// The horse itself has no role.
func (a Ancestor) Role() string {
	if a.Generation == 0 {
		return ""
	}
	if a.Position%2 == 0 {
		return "Stallion"
	}
	return "Mare"
}

// Option configures a Pedigree.
type Option func(*Pedigree)

// WithPalette sets the color palette.
func WithPalette(p draw.Palette) Option { return func(pd *Pedigree) { pd.palette = p } }

// WithDepth limits the number of generations shown.
func WithDepth(n int) Option { return func(pd *Pedigree) { pd.depth = n } }

// WithHeatmap starts with the heatmap visible.
func WithHeatmap() Option { return func(pd *Pedigree) { pd.heatmap = true } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(pd *Pedigree) { pd.logger = l } }

// Pedigree is the pedigree tree widget.
type Pedigree struct {
	palette draw.Palette
	logger  *log.Logger
	depth   int
	heatmap bool

	// ancestors in pedigree order; nil entries are unknown.
	ancestors []*Ancestor
	sel       pointer.Selection
}

var (
	_ widget.Widget   = (*Pedigree)(nil)
	_ widget.Clicker  = (*Pedigree)(nil)
	_ widget.Resetter = (*Pedigree)(nil)
)

// New flattens the tree rooted at root.
func New(root Horse, opts ...Option) (*Pedigree, error) {
	if root.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "pedigree root needs a name")
	}
	pd := &Pedigree{
		palette: draw.DefaultPalette(),
		logger:  log.New(io.Discard),
		depth:   min(root.Depth(), MaxDepth),
		sel:     pointer.Empty(),
	}
	for _, opt := range opts {
		opt(pd)
	}
	if pd.depth < 1 || pd.depth > MaxDepth {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "pedigree depth must be in [1, %d], got %d", MaxDepth, pd.depth)
	}

	pd.ancestors = make([]*Ancestor, 1<<pd.depth-1)
	if err := pd.place(&root, 0); err != nil {
		return nil, err
	}
	return pd, nil
}

func (pd *Pedigree) place(h *Horse, i int) error {
	if h == nil || i >= len(pd.ancestors) {
		return nil
	}
	if h.Name == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "pedigree ancestor %d has no name", i)
	}
	g := generation(i)
	pd.ancestors[i] = &Ancestor{
		Index:      i,
		Name:       h.Name,
		Generation: g,
		Position:   i - (1<<g - 1),
		Line:       lineOf(i),
		Influence:  math.Ldexp(1, -g),
	}
	if err := pd.place(h.Sire, 2*i+1); err != nil {
		return err
	}
	return pd.place(h.Dam, 2*i+2)
}

func generation(i int) int {
	g := 0
	for i > 0 {
		i = (i - 1) / 2
		g++
	}
	return g
}

// lineOf follows ancestor i down to a parent of the horse.
func lineOf(i int) entity.Category {
	if i == 0 {
		return entity.Self
	}
	for i > 2 {
		i = (i - 1) / 2
	}
	if i == 1 {
		return entity.Sire
	}
	return entity.Dam
}

// Name implements widget.Widget.
func (pd *Pedigree) Name() string { return Name }

// Depth returns the number of generations shown.
func (pd *Pedigree) Depth() int { return pd.depth }

// Ancestors returns the known ancestors in pedigree order.
func (pd *Pedigree) Ancestors() []Ancestor {
	out := make([]Ancestor, 0, len(pd.ancestors))
	for _, a := range pd.ancestors {
		if a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// Heatmap reports whether the heatmap is shown.
func (pd *Pedigree) Heatmap() bool { return pd.heatmap }

// ToggleHeatmap shows or hides the lineage heatmap.
func (pd *Pedigree) ToggleHeatmap() bool {
	pd.heatmap = !pd.heatmap
	return pd.heatmap
}

// Select selects the ancestor with the given "generation-position" key.
func (pd *Pedigree) Select(key string) bool {
	for _, a := range pd.ancestors {
		if a != nil && a.Key() == key {
			pd.sel = pd.sel.Select(a.Index)
			return true
		}
	}
	return false
}

// Selected returns the selected ancestor.
func (pd *Pedigree) Selected() (Ancestor, bool) {
	if !pd.sel.HasSelection() || pd.ancestors[pd.sel.Selected] == nil {
		return Ancestor{}, false
	}
	return *pd.ancestors[pd.sel.Selected], true
}

// Click selects the ancestor whose box contains p.
func (pd *Pedigree) Click(s draw.Surface, p layout.Point) {
	g := pd.geometry(s)
	for _, a := range pd.ancestors {
		if a == nil {
			continue
		}
		c := g.center(a)
		w := g.boxWidth(a.Generation)
		if math.Abs(p.X-c.X) <= w/2 && math.Abs(p.Y-c.Y) <= boxHeight/2 {
			pd.sel = pd.sel.Select(a.Index)
			return
		}
	}
}

// Reset clears the selection.
func (pd *Pedigree) Reset() { pd.sel = pd.sel.Reset() }

// Update implements widget.Widget. The tree has no time-driven state.
func (pd *Pedigree) Update(time.Duration) {}
