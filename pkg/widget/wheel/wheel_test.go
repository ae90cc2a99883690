package wheel

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/clock"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
	"github.com/matzehuels/paddock/pkg/outcome"
	"github.com/matzehuels/paddock/pkg/pointer"
	"github.com/matzehuels/paddock/pkg/widget"
)

type seq struct {
	vals []float64
	i    int
}

func (s *seq) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func traits() entity.Set {
	return entity.Set{
		{ID: "speed", Label: "Speed", Weight: 0.5, Category: entity.Trait},
		{ID: "stamina", Label: "Stamina", Weight: 0.3, Category: entity.Trait, ColorToken: "hsla(190, 94%, 43%, 1)"},
		{ID: "heart", Label: "Heart", Weight: 0.2, Category: entity.Trait},
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(entity.Set{{Label: "a", Weight: 0.4, Category: entity.Trait}})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	set := traits()
	set[0].ColorToken = "no-such-color"
	_, err = New(set)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestSpinLandsUnderPointer(t *testing.T) {
	var landed []outcome.Outcome
	w, err := New(traits(),
		WithResolverOptions(outcome.WithRand(&seq{vals: []float64{0.55, 0.0}})),
		WithOnResult(func(o outcome.Outcome) { landed = append(landed, o) }),
	)
	require.NoError(t, err)

	sched := clock.NewManual(0)
	surface := draw.NewSurface(300, 300, 2)
	h := widget.NewHost(w, sched, widget.FixedSurface(surface), nil)
	require.NoError(t, h.Mount())
	sched.Advance(1)

	out, ok := w.Spin()
	require.True(t, ok)
	assert.Equal(t, 1, out.Index)

	_, ok = w.Spin()
	assert.False(t, ok, "reentrant spin is ignored")

	sched.Advance(60)
	_, _, ok = w.Result()
	assert.False(t, ok, "no result before the animation completes")
	assert.Empty(t, landed)

	sched.Advance(300)
	id, prob, ok := w.Result()
	require.True(t, ok)
	assert.Equal(t, "stamina", id)
	assert.Equal(t, 0.3, prob)
	require.Len(t, landed, 1)
	assert.Equal(t, out.Target, w.Offset())

	// The landed segment's midpoint sits under the pointer at the top.
	cmds := w.Draw(surface, sched.Now())
	c := surface.Center()
	r := radius(surface)
	var highlighted *draw.Command
	for i := range cmds {
		if cmds[i].Kind == draw.KindArc && !cmds[i].Wedge {
			highlighted = &cmds[i]
		}
	}
	require.NotNil(t, highlighted, "selected segment is outlined")
	mid := layout.Wrap((highlighted.Start+highlighted.End)/2, -math.Pi)
	assert.InDelta(t, -math.Pi/2, mid, 1e-9)
	assert.Equal(t, r+5, highlighted.R)

	w.PointerMove(surface, layout.Point{X: c.X, Y: c.Y - r/2})
	assert.Equal(t, 1, w.HoverIndex(surface), "segment under the pointer is the result")
}

func TestDrawLayers(t *testing.T) {
	w, err := New(traits())
	require.NoError(t, err)
	s := draw.NewSurface(300, 300, 1)

	cmds := w.Draw(s, 0)
	assert.Equal(t, draw.KindClear, cmds[0].Kind)
	assert.Equal(t, 3, countWedges(cmds))
	assert.Equal(t, []string{"Speed", "Stamina", "Heart", "DNA"}, cmds.Texts())

	w.PointerMove(s, layout.Point{X: 150, Y: 60})
	hovered := w.Draw(s, 0)
	assert.Equal(t, 4, countWedges(hovered), "hover adds a highlight wedge")

	w.PointerMove(s, layout.Point{X: 0, Y: 0})
	assert.Equal(t, pointer.None, w.HoverIndex(s), "outside the rim")
	w.PointerLeave()
	assert.Equal(t, pointer.None, w.HoverIndex(s))
}

func TestDrawIsPure(t *testing.T) {
	w, err := New(traits(), WithResolverOptions(outcome.WithSeed(7)))
	require.NoError(t, err)
	s := draw.NewSurface(200, 200, 1)
	w.Spin()
	w.Update(0)
	w.Update(time.Second)

	a := w.Draw(s, time.Second)
	b := w.Draw(s, 10*time.Second)
	assert.Equal(t, a, b)
	assert.True(t, w.Spinning())
}

func TestClickHubSpins(t *testing.T) {
	w, err := New(traits())
	require.NoError(t, err)
	s := draw.NewSurface(300, 300, 1)

	w.Click(s, layout.Point{X: 10, Y: 10})
	assert.False(t, w.Spinning())
	w.Click(s, s.Center())
	assert.True(t, w.Spinning())

	w.Reset()
	assert.False(t, w.Spinning())
}

func countWedges(cmds draw.List) int {
	n := 0
	for _, c := range cmds {
		if c.Kind == draw.KindArc && c.Wedge {
			n++
		}
	}
	return n
}
