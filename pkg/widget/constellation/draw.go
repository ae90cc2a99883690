package constellation

import (
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
)

const (
	pulseAmplitude = 0.1
	pulseFrequency = 0.5
	pulsePhase     = 0.01
	labelMinSize   = 6.0
)

// Draw implements widget.Widget.
func (c *Constellation) Draw(s draw.Surface, _ time.Duration) draw.List {
	p := c.palette
	pos := c.positions(s)
	t := c.phase
	hover := c.Hovered(s)
	pass := draw.NewPass()

	for _, l := range c.links {
		a, b := pos[l.From], pos[l.To]
		pass.Add(draw.LayerConnective, draw.Line(a.X, a.Y, b.X, b.Y).Stroked(draw.Stroke{
			Color:      c.linkColor(l).WithAlpha(0.3),
			Width:      1,
			Dash:       []float64{2, 4},
			DashOffset: -t * 0.5,
		}))
	}

	fg := p.MustResolve(draw.TokenForeground).WithAlpha(0.8)
	for i, st := range c.stars {
		pt := pos[i]
		r := st.Size * draw.Pulse(t, pulseAmplitude, pulseFrequency, st.X*pulsePhase)
		col := c.starColor(st.Lineage)

		pass.Add(draw.LayerGlyphs,
			draw.Circle(pt.X, pt.Y, r).FilledWith(col.WithAlpha(max(st.Brightness, 0.2))),
			draw.Circle(pt.X, pt.Y, r*2).Filled(draw.Radial(pt.X, pt.Y, r, r*2,
				draw.Stop{Offset: 0, Color: col.WithAlpha(0.3)},
				draw.Stop{Offset: 1, Color: col.WithAlpha(0)})),
		)
		if i == hover {
			pass.Add(draw.LayerHighlight, draw.Circle(pt.X, pt.Y, r*2+3).
				Outlined(p.MustResolve(draw.TokenSecondary), 1.5))
		}
		if st.Size >= labelMinSize || i == hover {
			pass.Add(draw.LayerLabels, draw.Text(pt.X, pt.Y+r*2+10, st.Name, draw.Font{Size: st.Size + 2}).
				FilledWith(fg))
		}
	}
	return pass.Commands()
}

func (c *Constellation) starColor(l entity.Category) draw.Color {
	switch l {
	case entity.Sire:
		return c.palette.MustResolve(draw.TokenSire)
	case entity.Dam:
		return c.palette.MustResolve(draw.TokenDam)
	case entity.Self, entity.Owner, entity.Trait, entity.Marker:
		return c.palette.MustResolve(draw.TokenPrimary)
	default:
		return c.palette.MustResolve(draw.TokenForeground)
	}
}

// linkColor follows the sire line first, then the dam line.
func (c *Constellation) linkColor(l Link) draw.Color {
	from, to := c.stars[l.From].Lineage, c.stars[l.To].Lineage
	switch {
	case from == entity.Sire || to == entity.Sire:
		return c.starColor(entity.Sire)
	case from == entity.Dam || to == entity.Dam:
		return c.starColor(entity.Dam)
	default:
		return c.starColor(entity.Self)
	}
}
