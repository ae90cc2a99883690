package terrain

import (
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/series"
)

const (
	dotEvery   = 5
	dotRadius  = 3.0
	glowRadius = 6.0
	peakRadius = 20.0
	lineWidth  = 2.0
)

var tooltipFont = draw.Font{Size: 12}

// Draw implements widget.Widget.
func (t *Terrain) Draw(s draw.Surface, _ time.Duration) draw.List {
	p := t.palette
	primary := p.MustResolve(draw.TokenPrimary)
	bg := p.MustResolve(draw.TokenBackground)
	pass := draw.NewPass()

	for _, pk := range t.peaks {
		x, y := pk.X*s.Width, pk.Y*s.Height
		pass.Add(draw.LayerBackground, draw.Circle(x, y, peakRadius).Filled(
			draw.Radial(x, y, 5, peakRadius,
				draw.Stop{Offset: 0, Color: primary.WithAlpha(0.1)},
				draw.Stop{Offset: 1, Color: primary.WithAlpha(0)})))
	}

	pts := series.Project(t.points, s.Width, s.Height)
	if len(pts) == 0 {
		return pass.Commands()
	}

	area := make([]layout.Point, 0, len(pts)+2)
	area = append(area, pts...)
	area = append(area, layout.Point{X: s.Width, Y: s.Height}, layout.Point{X: 0, Y: s.Height})
	pass.Add(draw.LayerConnective,
		draw.Polygon(area).Filled(draw.Linear(0, 0, 0, s.Height,
			draw.Stop{Offset: 0, Color: primary.WithAlpha(0.1)},
			draw.Stop{Offset: 1, Color: bg.WithAlpha(0)})),
		draw.Polyline(pts).Outlined(primary.WithAlpha(0.8), lineWidth),
	)

	if len(t.averages) > 1 {
		sc := series.NewScale(series.Values(t.points), s.Width, s.Height)
		avg := make([]layout.Point, len(t.averages))
		for i, a := range t.averages {
			avg[i] = layout.Point{X: sc.X(a.Index), Y: sc.Y(a.Value)}
		}
		pass.Add(draw.LayerConnective, draw.Polyline(avg).Stroked(draw.Stroke{
			Color: p.MustResolve(draw.TokenSecondary).WithAlpha(0.6),
			Width: 1.5,
			Dash:  []float64{4, 4},
		}))
	}

	for i, pt := range pts {
		if i%dotEvery != 0 && i != len(pts)-1 {
			continue
		}
		pass.Add(draw.LayerGlyphs,
			draw.Circle(pt.X, pt.Y, glowRadius).Filled(draw.Radial(pt.X, pt.Y, dotRadius, glowRadius,
				draw.Stop{Offset: 0, Color: primary.WithAlpha(0.3)},
				draw.Stop{Offset: 1, Color: primary.WithAlpha(0)})),
			draw.Circle(pt.X, pt.Y, dotRadius).FilledWith(primary),
		)
	}

	if h, ok := t.Hovered(s); ok {
		pt := pts[h.Index]
		pass.Add(draw.LayerHighlight,
			draw.Line(pt.X, 0, pt.X, s.Height).Stroked(draw.Stroke{
				Color: primary.WithAlpha(0.3),
				Width: 1,
				Dash:  []float64{5, 3},
			}),
			draw.Circle(pt.X, pt.Y, glowRadius).FilledWith(primary).Outlined(bg, 2),
		)

		align := draw.AlignStart
		x := pt.X + 10
		if pt.X > s.Width/2 {
			align, x = draw.AlignEnd, pt.X-10
		}
		pass.Add(draw.LayerLabels, draw.Text(x, 16, h.String(), tooltipFont).
			FilledWith(p.MustResolve(draw.TokenForeground)).
			Aligned(align))
	}
	return pass.Commands()
}
