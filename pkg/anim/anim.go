// Package anim interpolates a widget's animated offset toward a target.
//
// State is a plain value. The driver never mutates it in place: Begin and
// Step take a State and return the next one, so the frame loop only sequences
// calls while the widget owns the value.
package anim

import (
	"math"
	"time"
)

// DefaultDuration is the length of a spin animation.
const DefaultDuration = 5 * time.Second

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

// EaseOutCubic decelerates toward the end: 1-(1-p)^3.
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Linear is the identity easing.
func Linear(p float64) float64 { return p }

// State is the animated value of one widget.
type State struct {
	Offset    float64        `json:"offset"`
	Target    *float64       `json:"target,omitempty"`
	StartedAt *time.Duration `json:"started_at,omitempty"`
	Running   bool           `json:"running"`
	From      float64        `json:"from"`
}

// At returns an idle state resting at offset.
func At(offset float64) State {
	return State{Offset: offset, From: offset}
}

// Driver interpolates State values over a fixed duration.
type Driver struct {
	Duration time.Duration
	Ease     Easing
}

// NewDriver returns a driver with DefaultDuration and cubic ease-out.
func NewDriver() Driver {
	return Driver{Duration: DefaultDuration, Ease: EaseOutCubic}
}

func (d Driver) duration() time.Duration {
	if d.Duration <= 0 {
		return DefaultDuration
	}
	return d.Duration
}

func (d Driver) ease(p float64) float64 {
	if d.Ease == nil {
		return EaseOutCubic(p)
	}
	return d.Ease(p)
}

// Begin returns s heading toward target. The start timestamp is taken from
// the first Step so that the animation starts on a frame boundary.
func (d Driver) Begin(s State, target float64) State {
	t := target
	return State{
		Offset:  s.Offset,
		From:    s.Offset,
		Target:  &t,
		Running: true,
	}
}

// Progress returns linear progress in [0,1] for s at ts.
func (d Driver) Progress(s State, ts time.Duration) float64 {
	if s.StartedAt == nil {
		return 0
	}
	p := float64(ts-*s.StartedAt) / float64(d.duration())
	return math.Max(0, math.Min(1, p))
}

// Step advances s to timestamp ts. When progress reaches 1 the returned
// state rests exactly on the target and is no longer running; done is true
// only for that step.
func (d Driver) Step(s State, ts time.Duration) (next State, done bool) {
	if !s.Running || s.Target == nil {
		return s, false
	}
	next = s
	if next.StartedAt == nil {
		start := ts
		next.StartedAt = &start
	}

	p := d.Progress(next, ts)
	if p >= 1 {
		next.Offset = *next.Target
		next.From = next.Offset
		next.Running = false
		next.Target = nil
		next.StartedAt = nil
		return next, true
	}
	next.Offset = next.From + (*next.Target-next.From)*d.ease(p)
	return next, false
}
