// Package series generates synthetic price histories for chart widgets.
//
// Where no live market feed exists, the dashboard shows a bounded random walk
// that drifts upward toward the current token value. A [Generator] produces
// days+1 points, one per day, ordered from the oldest to today. Output is
// regenerated whenever the timeframe or the base value changes; points are
// never edited in place.
//
// The generator is unseeded by default, so two runs differ. Tests inject a
// seeded source with [WithSeed] or [WithRand].
package series

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Step weights applied to the random and trend factors on every day.
const (
	randomWeight = 0.1
	trendWeight  = 0.05
)

// DateLayout formats point timestamps for hover labels.
const DateLayout = "1/2/2006"

// Params describes one synthetic series.
type Params struct {
	Days         int     `json:"days" toml:"days"`
	CurrentValue float64 `json:"current_value" toml:"current_value"`
	Volatility   float64 `json:"volatility" toml:"volatility"`
}

// Validate checks that days > 0, the value is positive and the volatility
// lies in (0, 1).
func (p Params) Validate() error {
	return errors.ValidateSeriesParams(p.Days, p.CurrentValue, p.Volatility)
}

// Point is one day of a series.
type Point struct {
	Timestamp time.Time `json:"timestamp"`
	Value     int64     `json:"value"`
}

// Label returns the point's date formatted for display.
func (p Point) Label() string {
	return p.Timestamp.Format(DateLayout)
}

// Rand is the random source used by a Generator.
type Rand interface {
	Float64() float64
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rng = r
		}
	}
}

// WithSeed uses a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
	}
}

// WithNow fixes the timestamp of the newest point.
func WithNow(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator produces synthetic series.
type Generator struct {
	rng Rand
	now func() time.Time
}

// NewGenerator returns a generator using an unseeded source and the wall clock.
func NewGenerator(opts ...Option) *Generator {
	seed := uint64(time.Now().UnixNano())
	g := &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns p.Days+1 points ending today. The walk starts at
// CurrentValue·(1-Volatility); every day multiplies it by
//
//	1 + rf·0.1 + tf·0.05
//
// where rf is uniform in [-vol/2, vol/2) and tf ramps linearly from 0 on the
// oldest day to vol today. Values are rounded to whole currency units and
// never drop below 1.
func (g *Generator) Generate(p Params) ([]Point, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := g.now()
	vol := p.Volatility
	value := p.CurrentValue * (1 - vol)
	points := make([]Point, 0, p.Days+1)

	for i := p.Days; i >= 0; i-- {
		rf := g.rng.Float64()*vol - vol/2
		tf := float64(p.Days-i) / float64(p.Days) * vol
		value *= 1 + rf*randomWeight + tf*trendWeight

		points = append(points, Point{
			Timestamp: now.AddDate(0, 0, -i),
			Value:     max(1, int64(math.Round(value))),
		})
	}
	return points, nil
}

// Values returns the point values as floats.
func Values(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = float64(p.Value)
	}
	return out
}
