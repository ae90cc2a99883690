package draw

import (
	"math"

	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
)

// DefaultDPR is used when the host reports no device pixel ratio.
const DefaultDPR = 1.0

// Surface is the logical drawing area of a widget. Commands are expressed in
// logical units; sinks multiply by DPR for the backing store.
type Surface struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
	DPR    float64 `json:"dpr" toml:"dpr"`
}

// NewSurface returns a surface, substituting DefaultDPR for a missing ratio.
func NewSurface(w, h, dpr float64) Surface {
	if dpr == 0 {
		dpr = DefaultDPR
	}
	return Surface{Width: w, Height: h, DPR: dpr}
}

// Validate reports a recoverable SURFACE_UNAVAILABLE error for a surface that
// cannot be drawn on, such as one that is not yet laid out.
func (s Surface) Validate() error {
	return errors.ValidateSurface(s.Width, s.Height, s.DPR)
}

// Backing returns the device-pixel size of the backing store.
func (s Surface) Backing() (int, int) {
	return int(math.Round(s.Width * s.DPR)), int(math.Round(s.Height * s.DPR))
}

// Center returns the logical center point.
func (s Surface) Center() layout.Point {
	return layout.Point{X: s.Width / 2, Y: s.Height / 2}
}

// Min returns the shorter side.
func (s Surface) Min() float64 {
	return math.Min(s.Width, s.Height)
}

// Pulse returns 1 + amp·sin(t·freq + phase), the breathing factor used by
// animated glyphs.
func Pulse(t, amp, freq, phase float64) float64 {
	return 1 + amp*math.Sin(t*freq+phase)
}
