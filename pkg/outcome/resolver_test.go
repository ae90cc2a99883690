package outcome

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/anim"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
)

// sequence is a Rand that replays fixed values, repeating the last one.
type sequence struct {
	vals []float64
	i    int
}

func (s *sequence) Float64() float64 {
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v
}

func fixed(vals ...float64) *sequence { return &sequence{vals: vals} }

func traits(weights ...float64) entity.Set {
	s := make(entity.Set, len(weights))
	for i, w := range weights {
		s[i] = entity.Entity{ID: string(rune('a' + i)), Label: string(rune('A' + i)), Weight: w, Category: entity.Trait}
	}
	return s
}

func wheelTraits() entity.Set {
	return traits(0.25, 0.2, 0.15, 0.15, 0.1, 0.1, 0.05)
}

func TestNewResolverValidation(t *testing.T) {
	tests := []struct {
		name    string
		set     entity.Set
		opts    []Option
		wantErr bool
	}{
		{"valid", traits(0.5, 0.3, 0.2), nil, false},
		{"zero entities", traits(), nil, true},
		{"negative", traits(0.7, -0.2, 0.5), nil, true},
		{"not closed", traits(0.5, 0.3), nil, true},
		{"nan", traits(math.NaN(), 1), nil, true},
		{"bad turns", traits(1), []Option{WithTurns(0, 2)}, true},
		{"inverted turns", traits(1), []Option{WithTurns(5, 3)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.set, tt.opts...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSampleForcedValue(t *testing.T) {
	r, err := NewResolver(traits(0.5, 0.3, 0.2), WithRand(fixed(0.55)))
	require.NoError(t, err)

	out := r.Resolve(0)
	assert.Equal(t, 1, out.Index)
	assert.Equal(t, "b", out.Entity.ID)
	assert.Equal(t, 0.3, out.Probability)
}

func TestSampleBoundaries(t *testing.T) {
	r, err := NewResolver(traits(0.5, 0.3, 0.2))
	require.NoError(t, err)

	tests := []struct {
		u    float64
		want int
	}{
		{0, 0},
		{0.5, 0},
		{0.5000001, 1},
		{0.79, 1},
		{0.81, 2},
		{0.9999999, 2},
		{1.0000001, 2}, // shortfall falls back to the last entity
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Sample(tt.u), "Sample(%v)", tt.u)
	}
}

func TestSampleSkipsZeroWeight(t *testing.T) {
	r, err := NewResolver(traits(0, 0.6, 0.4, 0))
	require.NoError(t, err)

	assert.Equal(t, 1, r.Sample(0), "u=0 must not land on a zero-weight entity")
	assert.Equal(t, 2, r.Sample(0.99999999))
	assert.Equal(t, 2, r.Sample(1), "fallback is the last positive-weight entity")
}

func TestTurnsRange(t *testing.T) {
	r, err := NewResolver(traits(1))
	require.NoError(t, err)

	assert.Equal(t, 3, r.Turns(0))
	assert.Equal(t, 4, r.Turns(0.5))
	assert.Equal(t, 5, r.Turns(0.9999))
}

func TestTargetNeverBehindCurrent(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11^0xdeadbeef))
	r, err := NewResolver(wheelTraits(), WithRand(rng))
	require.NoError(t, err)

	current := 0.0
	for i := 0; i < 2000; i++ {
		out := r.Resolve(current)
		require.GreaterOrEqual(t, out.Target, current, "trial %d", i)
		require.Equal(t, out.Index, r.IndexAt(out.Target), "trial %d: target must land in resolved span", i)
		current = out.Target + rng.Float64()*layout.FullTurn
	}
}

func TestTargetFromNegativeOffset(t *testing.T) {
	r, err := NewResolver(traits(0.5, 0.5), WithBaseAngle(-math.Pi/2))
	require.NoError(t, err)

	for _, current := range []float64{-10, -math.Pi / 2, 0, 7.5} {
		target := r.TargetFor(1, current, 3)
		assert.GreaterOrEqual(t, target, current)
		assert.Equal(t, 1, r.IndexAt(target))
	}
}

func TestConvergenceChiSquare(t *testing.T) {
	const trials = 20000
	weights := wheelTraits().Weights()

	r, err := NewResolver(wheelTraits(), WithSeed(2024))
	require.NoError(t, err)

	counts := r.Simulate(trials)
	fit, err := GoodnessOfFit(counts, weights)
	require.NoError(t, err)

	assert.Equal(t, trials, fit.Trials)
	assert.Equal(t, len(weights)-1, fit.DoF)
	assert.Greater(t, fit.PValue, 0.001, "sampled frequencies diverge from weights: %+v counts=%v", fit, counts)

	for i, w := range weights {
		freq := float64(counts[i]) / trials
		assert.InDelta(t, w, freq, 0.015, "entity %d", i)
	}
}

func TestGoodnessOfFitDetectsBias(t *testing.T) {
	fit, err := GoodnessOfFit([]int{9000, 500, 500}, []float64{0.5, 0.3, 0.2})
	require.NoError(t, err)
	assert.Less(t, fit.PValue, 1e-6)

	fit, err = GoodnessOfFit([]int{10, 0, 1}, []float64{0.5, 0.5, 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fit.PValue, "hits on a zero-probability entity")

	_, err = GoodnessOfFit([]int{1}, []float64{0.5, 0.5})
	assert.Error(t, err)
}

func TestSpinPublishesOnlyAtCompletion(t *testing.T) {
	r, err := NewResolver(traits(0.5, 0.3, 0.2), WithRand(fixed(0.55, 0.0)))
	require.NoError(t, err)
	s := NewSpin(r, anim.NewDriver())

	out, ok := s.Request()
	require.True(t, ok)
	require.Equal(t, 1, out.Index)
	require.Equal(t, 3, out.Turns)

	frame := time.Second / 60
	ts := time.Duration(0)
	published := false
	for i := 0; i < 400; i++ {
		res, done := s.Advance(ts)
		if done {
			published = true
			assert.Equal(t, out, res)
			assert.Equal(t, out.Target, s.Offset(), "offset must equal target exactly")
			break
		}
		_, has := s.Selected()
		require.False(t, has, "selection published before completion at frame %d", i)
		ts += frame
	}
	require.True(t, published)

	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 1, sel.Index)
	assert.Equal(t, sel.Index, r.IndexAt(math.Mod(s.Offset(), layout.FullTurn)))
	assert.False(t, s.InFlight())
}

func TestSpinRejectsReentrantRequest(t *testing.T) {
	r, err := NewResolver(traits(0.5, 0.5), WithSeed(1))
	require.NoError(t, err)
	s := NewSpin(r, anim.NewDriver())

	first, ok := s.Request()
	require.True(t, ok)
	s.Advance(0)
	s.Advance(time.Second)

	_, ok = s.Request()
	assert.False(t, ok, "request during flight must be ignored")
	assert.Equal(t, first.Target, *s.State().Target, "in-flight target must be unchanged")

	s.Advance(10 * time.Second)
	_, ok = s.Request()
	assert.True(t, ok, "request after completion must be accepted")
}

func TestSpinSecondSpinStartsFromRestingOffset(t *testing.T) {
	r, err := NewResolver(traits(0.25, 0.25, 0.25, 0.25), WithSeed(3))
	require.NoError(t, err)
	s := NewSpin(r, anim.NewDriver())

	prev := 0.0
	ts := time.Duration(0)
	for spin := 0; spin < 5; spin++ {
		out, ok := s.Request()
		require.True(t, ok)
		require.GreaterOrEqual(t, out.Target, prev)
		s.Advance(ts)
		ts += anim.DefaultDuration
		_, done := s.Advance(ts)
		require.True(t, done)
		prev = s.Offset()
		ts += time.Second
	}
}
