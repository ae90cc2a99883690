package sink

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
)

func sampleFrame() (draw.Surface, draw.List) {
	s := draw.NewSurface(200, 100, 2)
	primary := draw.HSLA(160, 94, 43, 1)
	p := draw.NewPass()
	p.Add(draw.LayerBackground, draw.Rect(0, 0, 200, 100).Filled(
		draw.Linear(0, 0, 0, 100,
			draw.Stop{Offset: 0, Color: primary.WithAlpha(0.1)},
			draw.Stop{Offset: 1, Color: primary.WithAlpha(0)})))
	p.Add(draw.LayerGlyphs,
		draw.Wedge(100, 50, 40, 0, math.Pi/2).FilledWith(primary),
		draw.Circle(10, 10, 3).Filled(draw.Radial(10, 10, 3, 6,
			draw.Stop{Offset: 0, Color: primary.WithAlpha(0.3)},
			draw.Stop{Offset: 1, Color: primary.WithAlpha(0)})),
		draw.Polyline([]layout.Point{{X: 0, Y: 90}, {X: 100, Y: 20}, {X: 200, Y: 60}}).
			Stroked(draw.Stroke{Color: primary.WithAlpha(0.8), Width: 2, Dash: []float64{5, 3}}),
	)
	p.Add(draw.LayerLabels, draw.Text(100, 50, "Speed & <Heart>", draw.Font{Size: 12, Bold: true}).Rotated(math.Pi/2))
	return s, p.Commands()
}

func TestRenderSVG(t *testing.T) {
	s, cmds := sampleFrame()
	svg := string(RenderSVG(s, cmds, WithBackground(draw.HSLA(160, 8, 10, 1)), WithTitle("wheel")))

	assert.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="400" height="200">`))
	assert.True(t, strings.HasSuffix(svg, "</svg>\n"))
	assert.Contains(t, svg, "<title>wheel</title>")
	assert.Contains(t, svg, `fill="hsl(160, 8%, 10%)"`, "clear paints the background")
	assert.Contains(t, svg, "<linearGradient id=\"grad0\"")
	assert.Contains(t, svg, "<radialGradient id=\"grad1\"")
	assert.Contains(t, svg, `offset="0.5"`, "inner radius remaps first stop")
	assert.Contains(t, svg, `stroke-dasharray="5 3"`)
	assert.Contains(t, svg, `stroke-opacity="0.8"`)
	assert.Contains(t, svg, "Speed &amp; &lt;Heart&gt;")
	assert.Contains(t, svg, `transform="rotate(90 100 50)"`)
	assert.Contains(t, svg, `font-weight="bold"`)
	assert.Contains(t, svg, "M 100 50 L 140 50 A 40 40 0 0 1 100 90 Z")
}

func TestRenderSVGDeterministic(t *testing.T) {
	s, cmds := sampleFrame()
	assert.Equal(t, RenderSVG(s, cmds), RenderSVG(s, cmds))
}

func TestRenderSVGTransparentClear(t *testing.T) {
	s := draw.NewSurface(10, 10, 1)
	svg := string(RenderSVG(s, draw.NewPass().Commands()))
	assert.NotContains(t, svg, "<rect")
	assert.NotContains(t, svg, "<defs>")
}

func TestArcPathFullCircle(t *testing.T) {
	d := arcPath(draw.Arc(0, 0, 10, 0, 2*math.Pi))
	assert.Equal(t, 2, strings.Count(d, "A "), "full turn splits into two arcs")
}

func TestArcPathLargeFlag(t *testing.T) {
	d := arcPath(draw.Arc(0, 0, 10, 0, 1.5*math.Pi))
	assert.Contains(t, d, " 0 1 1 ")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", f(-0.001))
	assert.Equal(t, "1.23", f(1.2345))
	assert.Equal(t, "40", f(40))
}

func TestRenderJSON(t *testing.T) {
	s, cmds := sampleFrame()
	data, err := RenderJSON(s, cmds, WithWidget("wheel"), WithTimestamp(1500*time.Millisecond), WithFrame(3))
	require.NoError(t, err)

	var out Snapshot
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "wheel", out.Widget)
	assert.Equal(t, 3, out.Frame)
	assert.Equal(t, 1500.0, out.TimestampMS)
	assert.Equal(t, 2.0, out.Surface.DPR)
	require.Len(t, out.Commands, len(cmds))
	assert.Equal(t, draw.KindClear, out.Commands[0].Kind)
}

func TestRenderMsgpack(t *testing.T) {
	s, cmds := sampleFrame()
	data, err := RenderMsgpack(s, cmds, WithWidget("terrain"))
	require.NoError(t, err)

	snap, err := DecodeMsgpack(data)
	require.NoError(t, err)
	assert.Equal(t, "terrain", snap.Widget)
	assert.Equal(t, s, snap.Surface)
	assert.Equal(t, cmds.Texts(), snap.Commands.Texts())

	_, err = DecodeMsgpack([]byte{0xc1})
	assert.Error(t, err)
}

func TestRenderPNGMissingTool(t *testing.T) {
	if Available() {
		t.Skip("rsvg-convert installed")
	}
	s, cmds := sampleFrame()
	_, err := RenderPNG(s, cmds)
	assert.Error(t, err)
}
