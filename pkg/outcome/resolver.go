package outcome

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
)

// Default number of whole turns added to every spin.
const (
	DefaultMinTurns = 3
	DefaultMaxTurns = 5
)

// Rand is the random source used by a Resolver. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Outcome is the result of one resolution.
type Outcome struct {
	Index       int           `json:"index"`
	Entity      entity.Entity `json:"entity"`
	Probability float64       `json:"probability"`
	Turns       int           `json:"turns"`
	Target      float64       `json:"target"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(res *Resolver) {
		if r != nil {
			res.rng = r
		}
	}
}

// WithSeed uses a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(res *Resolver) {
		res.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// WithTurns sets the inclusive range of whole turns added to each spin.
func WithTurns(minTurns, maxTurns int) Option {
	return func(res *Resolver) {
		res.minTurns, res.maxTurns = minTurns, maxTurns
	}
}

// WithBaseAngle sets the angle at which the first entity's span begins.
func WithBaseAngle(base float64) Option {
	return func(res *Resolver) { res.base = base }
}

// Resolver samples outcomes from a closed distribution.
type Resolver struct {
	set      entity.Set
	spans    []layout.Span
	cum      []float64
	last     int
	rng      Rand
	minTurns int
	maxTurns int
	base     float64
}

// NewResolver validates the entities and precomputes their radial spans. The
// weights must be finite, non-negative and sum to 1 within 1e-6.
func NewResolver(set entity.Set, opts ...Option) (*Resolver, error) {
	if err := set.Validate(true); err != nil {
		return nil, err
	}
	seed := uint64(time.Now().UnixNano())
	r := &Resolver{
		set:      set,
		rng:      rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		minTurns: DefaultMinTurns,
		maxTurns: DefaultMaxTurns,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.minTurns < 1 || r.maxTurns < r.minTurns {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "invalid turn range [%d, %d]", r.minTurns, r.maxTurns)
	}

	spans, err := layout.Radial(set, r.base)
	if err != nil {
		return nil, err
	}
	r.spans = spans

	r.cum = make([]float64, len(set))
	var acc float64
	for i, e := range set {
		acc += e.Weight
		r.cum[i] = acc
		if e.Weight > 0 {
			r.last = i
		}
	}
	return r, nil
}

// Entities returns the configured entities.
func (r *Resolver) Entities() entity.Set { return r.set }

// Spans returns the radial span of every entity.
func (r *Resolver) Spans() []layout.Span { return r.spans }

// Sample maps u in [0,1) to an entity index: the first entity with a positive
// weight whose cumulative weight is at least u. Floating-point shortfall at
// the top of the range falls back to the last positive entity.
func (r *Resolver) Sample(u float64) int {
	for i, c := range r.cum {
		if r.set[i].Weight > 0 && c >= u {
			return i
		}
	}
	return r.last
}

// Turns maps u in [0,1) to a whole number of turns in the configured range.
func (r *Resolver) Turns(u float64) int {
	span := r.maxTurns - r.minTurns + 1
	n := r.minTurns + int(u*float64(span))
	return min(n, r.maxTurns)
}

// TargetFor returns the absolute angle at which the pointer rests on the
// midpoint of entity i after the given number of whole turns past current.
func (r *Resolver) TargetFor(i int, current float64, turns int) float64 {
	rev := math.Floor((current - r.base) / layout.FullTurn)
	return (rev+float64(turns))*layout.FullTurn + r.spans[i].Mid
}

// Resolve draws an outcome and the terminal target for a pointer currently at
// offset current.
func (r *Resolver) Resolve(current float64) Outcome {
	i := r.Sample(r.rng.Float64())
	turns := r.Turns(r.rng.Float64())
	return Outcome{
		Index:       i,
		Entity:      r.set[i],
		Probability: r.set[i].Weight,
		Turns:       turns,
		Target:      r.TargetFor(i, current, turns),
	}
}

// IndexAt returns the entity whose span contains angle once it is wrapped
// into the resolver's base revolution, or -1 when none does.
func (r *Resolver) IndexAt(angle float64) int {
	a := layout.Wrap(angle, r.base)
	for i, s := range r.spans {
		if s.Contains(a) {
			return i
		}
	}
	return -1
}
