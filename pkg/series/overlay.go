package series

import (
	"github.com/markcheno/go-talib"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Average is one value of a moving-average overlay, aligned to the series
// point at Index.
type Average struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

// Envelope is one value of a Bollinger envelope.
type Envelope struct {
	Index  int     `json:"index"`
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// MovingAverage returns the simple moving average of the series over period
// days. The first period-1 points have no average and are omitted.
func MovingAverage(points []Point, period int) ([]Average, error) {
	if period < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "moving average period must be at least 2, got %d", period)
	}
	if len(points) < period {
		return nil, nil
	}
	sma := talib.Sma(Values(points), period)

	out := make([]Average, 0, len(points)-period+1)
	for i := period - 1; i < len(sma); i++ {
		out = append(out, Average{Index: i, Value: sma[i]})
	}
	return out, nil
}

// Bands returns a Bollinger envelope of k standard deviations around the
// simple moving average.
func Bands(points []Point, period int, k float64) ([]Envelope, error) {
	if period < 2 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "band period must be at least 2, got %d", period)
	}
	if len(points) < period {
		return nil, nil
	}
	upper, middle, lower := talib.BBands(Values(points), period, k, k, talib.SMA)

	out := make([]Envelope, 0, len(points)-period+1)
	for i := period - 1; i < len(middle); i++ {
		out = append(out, Envelope{Index: i, Upper: upper[i], Middle: middle[i], Lower: lower[i]})
	}
	return out, nil
}
