package layout

import (
	"math"

	"github.com/matzehuels/paddock/pkg/entity"
)

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// Span is the angular region assigned to one entity.
type Span struct {
	Index int     `json:"index"`
	ID    string  `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Mid   float64 `json:"mid"`
}

// Sweep returns the angular size of the span.
func (s Span) Sweep() float64 { return s.End - s.Start }

// Contains reports whether angle a lies in [Start, End). The angle must
// already be expressed relative to the same base as the span.
func (s Span) Contains(a float64) bool {
	return a >= s.Start && a < s.End
}

// Radial divides a full circle among the entities in order, starting at base.
// The last span ends exactly at base+2π.
func Radial(set entity.Set, base float64) ([]Span, error) {
	cum, err := cumulative(set.Weights())
	if err != nil {
		return nil, err
	}

	spans := make([]Span, len(set))
	start := base
	for i, e := range set {
		end := base + cum[i]*FullTurn
		if cum[i] == 1 {
			end = base + FullTurn
		}
		spans[i] = Span{
			Index: i,
			ID:    e.ID,
			Start: start,
			End:   end,
			Mid:   start + (end-start)/2,
		}
		start = end
	}
	return spans, nil
}

// Wrap maps any angle into [base, base+2π).
func Wrap(angle, base float64) float64 {
	a := math.Mod(angle-base, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	if a >= FullTurn {
		a = 0
	}
	return base + a
}
