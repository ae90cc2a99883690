package errors

import (
	"math"
)

// WeightTolerance is the allowed drift of a closed probability space from 1.
const WeightTolerance = 1e-6

// ValidateWeights validates a list of entity weights.
//
// The validation rules:
//   - At least one weight
//   - Every weight finite and non-negative
//   - At least one weight positive
//
// When closed is true the weights must additionally sum to 1 within
// WeightTolerance, which is what probability-space widgets (outcome wheel,
// ownership fluid) require.
func ValidateWeights(weights []float64, closed bool) error {
	if len(weights) == 0 {
		return New(ErrCodeInvalidConfig, "at least one entity is required")
	}

	var sum float64
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return New(ErrCodeInvalidConfig, "weight %d is not finite", i)
		}
		if w < 0 {
			return New(ErrCodeInvalidConfig, "weight %d is negative (%g)", i, w)
		}
		sum += w
	}

	if sum <= 0 {
		return New(ErrCodeInvalidConfig, "weights sum to zero")
	}
	if closed && math.Abs(sum-1) > WeightTolerance {
		return New(ErrCodeInvalidConfig, "weights sum to %g, want 1", sum)
	}
	return nil
}

// ValidateSeriesParams validates synthetic series parameters.
//
// Validation rules:
//   - days must be positive
//   - current value must be positive and finite
//   - volatility must lie in the open interval (0, 1)
func ValidateSeriesParams(days int, current, volatility float64) error {
	if days <= 0 {
		return New(ErrCodeInvalidConfig, "days must be positive, got %d", days)
	}
	if math.IsNaN(current) || math.IsInf(current, 0) || current <= 0 {
		return New(ErrCodeInvalidConfig, "current value must be positive, got %g", current)
	}
	if math.IsNaN(volatility) || volatility <= 0 || volatility >= 1 {
		return New(ErrCodeInvalidConfig, "volatility must be in (0, 1), got %g", volatility)
	}
	return nil
}

// ValidateSurface checks that a drawing surface has a usable size and
// device pixel ratio. Failures use ErrCodeSurfaceUnavailable so callers can
// skip the frame.
func ValidateSurface(width, height, dpr float64) error {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return New(ErrCodeSurfaceUnavailable, "surface has no area (%gx%g)", width, height)
	}
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		return New(ErrCodeSurfaceUnavailable, "invalid device pixel ratio %g", dpr)
	}
	return nil
}
