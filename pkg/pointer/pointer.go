// Package pointer maps pointer coordinates back to data indices.
//
// Every function here is stateless: widgets call them on each pointer-move
// event with the current layout, so results always reflect the layout of the
// frame being shown. Nothing is cached between events.
package pointer

import (
	"math"

	"github.com/matzehuels/paddock/pkg/layout"
)

// None is the index reported when the pointer is over no entity.
const None = -1

// SeriesIndex maps a horizontal pointer position on a chart of the given
// width to one of n evenly spaced series points:
//
//	round(x/width·(n-1)) clamped to [0, n-1]
//
// It returns None for an empty series or a degenerate width.
func SeriesIndex(x, width float64, n int) int {
	if n <= 0 || !(width > 0) {
		return None
	}
	i := int(math.Round(x / width * float64(n-1)))
	return max(0, min(i, n-1))
}

// AngleAt returns the screen angle of p seen from center, in radians. Screen
// y grows downward, so angles increase clockwise.
func AngleAt(center, p layout.Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// RadialIndex returns the index of the span containing angle, after wrapping
// the angle into the revolution the spans were laid out in.
func RadialIndex(spans []layout.Span, angle float64) int {
	if len(spans) == 0 {
		return None
	}
	a := layout.Wrap(angle, spans[0].Start)
	for _, s := range spans {
		if s.Contains(a) {
			return s.Index
		}
	}
	return None
}

// StackedIndex returns the index of the band containing y. The bottom edge
// (y equal to the canvas height) belongs to the first band. Points outside
// the stack return None.
func StackedIndex(bands []layout.Band, y float64) int {
	if len(bands) == 0 {
		return None
	}
	for _, b := range bands {
		if b.Contains(y) {
			return b.Index
		}
	}
	if y == bands[0].Bottom {
		return bands[0].Index
	}
	return None
}

// Nearest returns the index of the point closest to p, or None when no point
// lies within maxDist. A non-positive maxDist disables the distance limit.
func Nearest(points []layout.Point, p layout.Point, maxDist float64) int {
	best, bestDist := None, math.Inf(1)
	for i, q := range points {
		if d := q.Dist(p); d < bestDist {
			best, bestDist = i, d
		}
	}
	if maxDist > 0 && bestDist > maxDist {
		return None
	}
	return best
}
