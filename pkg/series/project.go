package series

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/paddock/pkg/layout"
)

// Chart scaling used by the terrain widget: the value range is padded by 10%
// below and above, drawn into the lower 70% band of the surface with a 10%
// bottom margin.
const (
	padLow       = 0.9
	padHigh      = 1.1
	bandFraction = 0.7
	bottomMargin = 0.1
)

// Scale maps series values onto chart coordinates.
type Scale struct {
	Min, Max      float64
	Width, Height float64
	n             int
}

// NewScale fits a scale to values on a width×height surface.
func NewScale(values []float64, width, height float64) Scale {
	s := Scale{Width: width, Height: height, n: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Min = floats.Min(values) * padLow
	s.Max = floats.Max(values) * padHigh
	return s
}

// X returns the horizontal position of point i.
func (s Scale) X(i int) float64 {
	if s.n < 2 {
		return 0
	}
	return float64(i) / float64(s.n-1) * s.Width
}

// Y returns the vertical position of value v.
func (s Scale) Y(v float64) float64 {
	rng := s.Max - s.Min
	if rng <= 0 {
		return s.Height - s.Height*bottomMargin
	}
	return s.Height - (v-s.Min)/rng*s.Height*bandFraction - s.Height*bottomMargin
}

// Project returns the chart position of every point.
func Project(points []Point, width, height float64) []layout.Point {
	vals := Values(points)
	sc := NewScale(vals, width, height)
	out := make([]layout.Point, len(points))
	for i, v := range vals {
		out[i] = layout.Point{X: sc.X(i), Y: sc.Y(v)}
	}
	return out
}
