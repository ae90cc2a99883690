package outcome

import (
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Fit is the result of a Pearson chi-square goodness-of-fit test.
type Fit struct {
	Trials    int     `json:"trials"`
	Statistic float64 `json:"statistic"`
	DoF       int     `json:"dof"`
	PValue    float64 `json:"p_value"`
}

// GoodnessOfFit compares observed counts against the expected probabilities.
// Categories with zero probability are left out; observing one of them makes
// the fit fail outright with a p-value of 0.
func GoodnessOfFit(counts []int, probs []float64) (Fit, error) {
	if len(counts) != len(probs) {
		return Fit{}, errors.New(errors.ErrCodeInvalidInput, "%d counts for %d probabilities", len(counts), len(probs))
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return Fit{}, errors.New(errors.ErrCodeInvalidInput, "no trials")
	}

	var obs, exp []float64
	for i, p := range probs {
		if p <= 0 {
			if counts[i] > 0 {
				return Fit{Trials: total, PValue: 0}, nil
			}
			continue
		}
		obs = append(obs, float64(counts[i]))
		exp = append(exp, p*float64(total))
	}
	if len(obs) < 2 {
		return Fit{Trials: total, PValue: 1}, nil
	}

	chi := stat.ChiSquare(obs, exp)
	dof := len(obs) - 1
	dist := distuv.ChiSquared{K: float64(dof)}
	return Fit{
		Trials:    total,
		Statistic: chi,
		DoF:       dof,
		PValue:    dist.Survival(chi),
	}, nil
}

// Simulate resolves n outcomes and counts how often each entity was picked.
func (r *Resolver) Simulate(n int) []int {
	counts := make([]int, len(r.set))
	for i := 0; i < n; i++ {
		counts[r.Sample(r.rng.Float64())]++
	}
	return counts
}
