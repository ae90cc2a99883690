package wheel

import (
	"math"
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/widget"
)

var (
	labelFont = draw.Font{Size: 12, Bold: true}
	hubFont   = draw.Font{Size: 20, Bold: true}
)

// Draw implements widget.Widget.
func (w *Wheel) Draw(s draw.Surface, _ time.Duration) draw.List {
	p := w.cfg.palette
	bg := p.MustResolve(draw.TokenBackground)
	fg := p.MustResolve(draw.TokenForeground)
	primary := p.MustResolve(draw.TokenPrimary)

	c := s.Center()
	r := radius(s)
	rot := w.rotation
	hover := w.HoverIndex(s)
	set := w.spin.Resolver().Entities()

	pass := draw.NewPass()
	for _, sp := range w.spin.Resolver().Spans() {
		col := widget.CategoryColor(p, set[sp.Index])
		start, end := sp.Start+rot, sp.End+rot

		pass.Add(draw.LayerGlyphs, draw.Wedge(c.X, c.Y, r, start, end).
			Filled(draw.Radial(c.X, c.Y, 0, r,
				draw.Stop{Offset: 0, Color: col.WithAlpha(0.7)},
				draw.Stop{Offset: 1, Color: col.WithAlpha(1)})).
			Outlined(bg.WithAlpha(0.5), 1))

		if sp.Index == hover {
			pass.Add(draw.LayerHighlight, draw.Wedge(c.X, c.Y, r, start, end).FilledWith(fg.WithAlpha(0.1)))
		}
		if sp.Index == w.sel.Selected {
			pass.Add(draw.LayerHighlight, draw.Arc(c.X, c.Y, r+5, start, end).Outlined(primary, 3))
		}

		mid := sp.Mid + rot
		lx, ly := c.X+math.Cos(mid)*r*labelRadius, c.Y+math.Sin(mid)*r*labelRadius
		pass.Add(draw.LayerLabels, draw.Text(lx, ly, set[sp.Index].Label, labelFont).
			FilledWith(fg).
			Rotated(mid+math.Pi/2))
	}

	hub := r * hubRadius
	pass.Add(draw.LayerHighlight, draw.Circle(c.X, c.Y, hub).
		FilledWith(bg.WithAlpha(0.9)).
		Outlined(primary.WithAlpha(0.5), 2))
	pass.Add(draw.LayerLabels, draw.Text(c.X, c.Y, "DNA", hubFont).FilledWith(primary))

	// Fixed pointer at the top, tip toward the rim.
	pass.Add(draw.LayerHighlight, draw.Polygon([]layout.Point{
		{X: c.X, Y: c.Y - r + 5},
		{X: c.X - 10, Y: c.Y - r - 15},
		{X: c.X + 10, Y: c.Y - r - 15},
	}).FilledWith(p.MustResolve(draw.TokenSecondary)).Outlined(bg, 1))

	return pass.Commands()
}
