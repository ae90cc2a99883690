package helix

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/widget"
)

var (
	scoreFont  = draw.Font{Size: 14, Bold: true}
	legendFont = draw.Font{Size: 11}
)

// Draw implements widget.Widget.
func (h *Helix) Draw(s draw.Surface, _ time.Duration) draw.List {
	p := h.palette
	pass := draw.NewPass()
	n := h.nodes

	for strand := range strands {
		offset := math.Pi * float64(strand) / strands
		for i := range n {
			t := h.theta(i)
			pt := h.node(s, i, t+offset)
			col := h.nodeColor(strand, i, t)

			pass.Add(draw.LayerGlyphs, draw.Circle(pt.X, pt.Y, nodeRadius).FilledWith(col))

			if i < n-1 {
				next := h.node(s, i+1, h.theta(i+1)+offset)
				pass.Add(draw.LayerConnective, draw.Line(pt.X, pt.Y, next.X, next.Y).
					Outlined(col.WithAlpha(0.5), 2))
			}
			if strand == 0 {
				opp := h.node(s, i, t+math.Pi)
				rung := col
				rung.S -= 30
				pass.Add(draw.LayerConnective, draw.Line(pt.X, pt.Y, opp.X, pt.Y).
					Outlined(rung.WithAlpha(0.3), 1))
			}
		}
	}

	fg := p.MustResolve(draw.TokenForeground)
	if h.score != nil {
		pass.Add(draw.LayerLabels, draw.Text(12, 16, fmt.Sprintf("%g%% Genetic Value", *h.score), scoreFont).
			FilledWith(p.MustResolve(draw.TokenPrimary)).
			Aligned(draw.AlignStart))
	}
	for i, m := range h.markers {
		y := s.Height - 12 - float64(len(h.markers)-1-i)*16
		pass.Add(draw.LayerLabels,
			draw.Circle(16, y, 4).FilledWith(widget.CategoryColor(p, m)),
			draw.Text(26, y, m.Label, legendFont).FilledWith(fg).Aligned(draw.AlignStart),
		)
	}
	return pass.Commands()
}

func (h *Helix) theta(i int) float64 {
	return float64(i)/float64(h.nodes)*4*math.Pi + h.angle
}

func (h *Helix) node(s draw.Surface, i int, t float64) layout.Point {
	return layout.Point{
		X: s.Width/2 + math.Cos(t)*helixRadius,
		Y: s.Height/2 - float64(i)*helixPitch/float64(h.nodes) + s.Height/4,
	}
}

// nodeColor takes the hue of the node's marker; saturation and lightness
// shimmer with the strand phase. The second strand pairs with the mirrored
// node so both ends of a rung show complementary markers.
func (h *Helix) nodeColor(strand, i int, t float64) draw.Color {
	idx := i
	if strand == 1 {
		idx = h.nodes - 1 - i
	}
	base := widget.CategoryColor(h.palette, h.markers[h.assign[idx]])
	return draw.HSLA(base.H, 90+math.Sin(t)*10, 50+math.Cos(t)*10, 1)
}
