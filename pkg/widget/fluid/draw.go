package fluid

import (
	"math"
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/widget"
)

const (
	waveStep      = 20.0
	waveAmplitude = 5.0
	hueStep       = 30.0
	numBubbles    = 10
)

var labelFont = draw.Font{Size: 12, Bold: true}

// Draw implements widget.Widget.
func (f *Fluid) Draw(s draw.Surface, _ time.Duration) draw.List {
	p := f.palette
	bg := p.MustResolve(draw.TokenBackground)
	primary := p.MustResolve(draw.TokenPrimary)
	t := f.phase

	pass := draw.NewPass()
	pass.Add(draw.LayerBackground, draw.Rect(0, 0, s.Width, s.Height).FilledWith(bg.WithAlpha(0.3)))

	bands, err := layout.Stacked(f.set, s.Height)
	if err != nil {
		return pass.Commands()
	}
	for _, b := range bands {
		col := f.bandColor(b.Index)
		shape := draw.Polygon(wave(b, s.Width, t)).Filled(draw.Linear(0, b.Bottom, 0, b.Top,
			draw.Stop{Offset: 0, Color: col.WithAlpha(0.7)},
			draw.Stop{Offset: 1, Color: col.WithAlpha(0.9)}))
		pass.Add(draw.LayerGlyphs, shape)

		if b.Index != f.sel.Selected {
			continue
		}
		pass.Add(draw.LayerHighlight,
			shape.Outlined(primary, 2),
			draw.Rect(s.Width/2-60, b.Top+10, 120, 24).FilledWith(bg.WithAlpha(0.8)).Outlined(primary, 1),
		)
		pass.Add(draw.LayerLabels, draw.Text(s.Width/2, b.Top+22, f.label(f.set[b.Index]), labelFont).
			FilledWith(p.MustResolve(draw.TokenForeground)))
	}

	for i := range numBubbles {
		fi := float64(i)
		x := (math.Sin(t*0.5+fi)*0.5 + 0.5) * s.Width
		y := s.Height - math.Mod(t*50+fi*30, s.Height)
		size := 2 + math.Sin(t+fi)*2
		pass.Add(draw.LayerHighlight, draw.Circle(x, y, size).FilledWith(bg.WithAlpha(0.6)))
	}
	return pass.Commands()
}

// bandColor rotates the hue per owner unless the owner has its own color.
func (f *Fluid) bandColor(i int) draw.Color {
	e := f.set[i]
	col := widget.CategoryColor(f.palette, e)
	if e.ColorToken == "" && e.Category == entity.Owner {
		col = col.WithHue(col.H + float64(i)*hueStep)
	}
	return col
}

// wave returns the outline of a band whose top edge ripples with phase t.
func wave(b layout.Band, width, t float64) []layout.Point {
	pts := []layout.Point{{X: 0, Y: b.Bottom}}
	for x := 0.0; x <= width; x += waveStep {
		y := b.Top + waveAmplitude*math.Sin(x/width*4*math.Pi+t*2+float64(b.Index))
		pts = append(pts, layout.Point{X: x, Y: y})
	}
	return append(pts, layout.Point{X: width, Y: b.Bottom})
}
