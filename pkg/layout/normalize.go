package layout

import (
	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/paddock/pkg/errors"
)

const eps = 1e-9

// Normalize scales weights so they sum to one. Weights must be finite and
// non-negative with at least one positive entry.
func Normalize(weights []float64) ([]float64, error) {
	if err := errors.ValidateWeights(weights, false); err != nil {
		return nil, err
	}
	out := make([]float64, len(weights))
	copy(out, weights)

	sum := floats.Sum(out)
	if sum < eps {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "weights sum to %g", sum)
	}
	floats.Scale(1/sum, out)
	return out, nil
}

// cumulative returns the running sum of normalized weights where every entry
// from the last positive weight onward is exactly 1.
func cumulative(weights []float64) ([]float64, error) {
	norm, err := Normalize(weights)
	if err != nil {
		return nil, err
	}
	cum := make([]float64, len(norm))
	floats.CumSum(cum, norm)

	last := len(norm) - 1
	for last > 0 && norm[last] == 0 {
		last--
	}
	for i := last; i < len(cum); i++ {
		cum[i] = 1
	}
	return cum, nil
}
