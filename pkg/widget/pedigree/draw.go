package pedigree

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/layout"
)

const (
	boxHeight   = 40.0
	maxBoxWidth = 160.0
	boxFill     = 0.85
	margin      = 30.0
)

var (
	nameFont = draw.Font{Size: 12, Bold: true}
	roleFont = draw.Font{Size: 10}
	infoFont = draw.Font{Size: 11}
)

type geometry struct {
	rows [][]layout.Slot
	cell []float64
}

func (pd *Pedigree) geometry(s draw.Surface) geometry {
	gap := 0.0
	if pd.depth > 1 {
		gap = (s.Height - 2*margin - boxHeight) / float64(pd.depth-1)
	}
	g := geometry{rows: layout.Tree(pd.depth, s.Width, margin+boxHeight/2, gap)}
	for i := range g.rows {
		g.cell = append(g.cell, s.Width/float64(len(g.rows[i])))
	}
	return g
}

func (g geometry) center(a *Ancestor) layout.Point {
	return g.rows[a.Generation][a.Position].Center
}

func (g geometry) boxWidth(gen int) float64 {
	return math.Min(g.cell[gen]*boxFill, maxBoxWidth)
}

// Draw implements widget.Widget.
func (pd *Pedigree) Draw(s draw.Surface, _ time.Duration) draw.List {
	p := pd.palette
	primary := p.MustResolve(draw.TokenPrimary)
	muted := p.MustResolve(draw.TokenMuted)
	fg := p.MustResolve(draw.TokenForeground)
	g := pd.geometry(s)
	pass := draw.NewPass()

	for _, a := range pd.ancestors {
		if a == nil {
			continue
		}
		c := g.center(a)
		w := g.boxWidth(a.Generation)
		x, y := c.X-w/2, c.Y-boxHeight/2

		if a.Index > 0 {
			child := g.center(pd.ancestors[(a.Index-1)/2])
			midY := (c.Y + child.Y) / 2
			pass.Add(draw.LayerConnective, draw.Polyline([]layout.Point{
				{X: c.X, Y: c.Y - boxHeight/2},
				{X: c.X, Y: midY},
				{X: child.X, Y: midY},
				{X: child.X, Y: child.Y + boxHeight/2},
			}).Outlined(muted.WithAlpha(0.4), 1))
		}

		box := draw.Rect(x, y, w, boxHeight).Filled(pd.boxPaint(a, x, w))
		if a.Index == pd.sel.Selected {
			pass.Add(draw.LayerGlyphs, box.Outlined(primary, 2))
			pass.Add(draw.LayerHighlight, draw.Rect(x-3, y-3, w+6, boxHeight+6).Outlined(primary.WithAlpha(0.3), 4))
		} else {
			pass.Add(draw.LayerGlyphs, box.Outlined(muted.WithAlpha(0.4), 1))
		}

		nameY := c.Y
		if role := a.Role(); role != "" && a.Generation < 2 {
			nameY = c.Y - 7
			pass.Add(draw.LayerLabels, draw.Text(c.X, c.Y+9, role, roleFont).FilledWith(muted))
		}
		pass.Add(draw.LayerLabels, draw.Text(c.X, nameY, a.Name, nameFont).FilledWith(fg))
	}

	if sel, ok := pd.Selected(); ok {
		pass.Add(draw.LayerLabels, draw.Text(margin/2, s.Height-margin/2,
			fmt.Sprintf("%s: %g%% genetic influence", sel.Name, sel.Influence*100), infoFont).
			FilledWith(primary).
			Aligned(draw.AlignStart))
	}
	return pass.Commands()
}

func (pd *Pedigree) boxPaint(a *Ancestor, x, w float64) draw.Paint {
	p := pd.palette
	if !pd.heatmap {
		return draw.Solid(p.MustResolve(draw.TokenBackground).WithAlpha(0.5))
	}
	var col draw.Color
	switch a.Line {
	case entity.Sire:
		col = p.MustResolve(draw.TokenSire)
	case entity.Dam:
		col = p.MustResolve(draw.TokenDam)
	case entity.Self, entity.Owner, entity.Trait, entity.Marker:
		col = p.MustResolve(draw.TokenPrimary)
	default:
		col = p.MustResolve(draw.TokenForeground)
	}
	return draw.Linear(x, 0, x+w, 0,
		draw.Stop{Offset: 0, Color: col.WithAlpha(0.2)},
		draw.Stop{Offset: 1, Color: col.WithAlpha(0.1)})
}
