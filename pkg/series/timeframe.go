package series

import (
	"strings"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Timeframe selects how much history a chart shows.
type Timeframe string

// Supported timeframes.
const (
	Week    Timeframe = "1w"
	Month   Timeframe = "1m"
	Quarter Timeframe = "3m"
	Year    Timeframe = "1y"
)

// DefaultTimeframe is the timeframe a chart opens with.
const DefaultTimeframe = Month

// Timeframes lists the timeframes in display order.
var Timeframes = []Timeframe{Week, Month, Quarter, Year}

var timeframeShape = map[Timeframe]struct {
	days       int
	volatility float64
	phrase     string
}{
	Week:    {7, 0.05, "past week"},
	Month:   {30, 0.12, "past month"},
	Quarter: {90, 0.25, "past quarter"},
	Year:    {365, 0.4, "past year"},
}

// ParseTimeframe converts "1w", "1m", "3m" or "1y" (case-insensitive).
func ParseTimeframe(s string) (Timeframe, error) {
	tf := Timeframe(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := timeframeShape[tf]; !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown timeframe %q (want 1w, 1m, 3m or 1y)", s)
	}
	return tf, nil
}

// Params returns the series parameters for the timeframe at the given
// current value.
func (t Timeframe) Params(current float64) Params {
	shape := timeframeShape[t]
	return Params{Days: shape.days, CurrentValue: current, Volatility: shape.volatility}
}

// Phrase returns a human phrase such as "past quarter".
func (t Timeframe) Phrase() string {
	return timeframeShape[t].phrase
}
