package outcome

import (
	"time"

	"github.com/matzehuels/paddock/pkg/anim"
	"github.com/matzehuels/paddock/pkg/observability"
)

// Spin animates a pointer toward resolved outcomes, one spin at a time.
type Spin struct {
	res   *Resolver
	drv   anim.Driver
	state anim.State

	pending  *Outcome
	selected *Outcome
	started  time.Duration
}

// NewSpin returns an idle spin resting at offset 0.
func NewSpin(res *Resolver, drv anim.Driver) *Spin {
	return &Spin{res: res, drv: drv, state: anim.At(0)}
}

// Resolver returns the underlying resolver.
func (s *Spin) Resolver() *Resolver { return s.res }

// Request starts a new spin. While a spin is in flight the request is
// ignored and ok is false; nothing is queued. A new spin clears the previous
// selection.
func (s *Spin) Request() (out Outcome, ok bool) {
	if s.state.Running {
		observability.Spin().OnSpinRejected()
		return Outcome{}, false
	}
	out = s.res.Resolve(s.state.Offset)
	s.state = s.drv.Begin(s.state, out.Target)
	s.pending = &out
	s.selected = nil
	observability.Spin().OnSpinStart(out.Index, out.Target)
	return out, true
}

// Advance moves the animation to ts. It returns the outcome, with ok true,
// only on the frame where the pointer reaches the terminal target.
func (s *Spin) Advance(ts time.Duration) (out Outcome, ok bool) {
	if !s.state.Running {
		return Outcome{}, false
	}
	if s.state.StartedAt == nil {
		s.started = ts
	}
	next, done := s.drv.Step(s.state, ts)
	s.state = next
	if !done {
		return Outcome{}, false
	}

	out = *s.pending
	s.pending = nil
	s.selected = &out
	observability.Spin().OnSpinResolved(out.Index, out.Probability, ts-s.started)
	return out, true
}

// State returns the current animation state.
func (s *Spin) State() anim.State { return s.state }

// Offset returns the current pointer offset.
func (s *Spin) Offset() float64 { return s.state.Offset }

// InFlight reports whether a spin is animating.
func (s *Spin) InFlight() bool { return s.state.Running }

// Progress returns the linear progress of the current spin at ts.
func (s *Spin) Progress(ts time.Duration) float64 {
	if !s.state.Running {
		return 0
	}
	return s.drv.Progress(s.state, ts)
}

// Selected returns the most recently published outcome.
func (s *Spin) Selected() (Outcome, bool) {
	if s.selected == nil {
		return Outcome{}, false
	}
	return *s.selected, true
}

// Reset drops the selection and any in-flight spin, keeping the offset.
func (s *Spin) Reset() {
	s.state = anim.At(s.state.Offset)
	s.pending = nil
	s.selected = nil
}
