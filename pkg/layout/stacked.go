package layout

import (
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
)

// Band is the vertical region assigned to one entity. Screen coordinates grow
// downward, so Top <= Bottom.
type Band struct {
	Index  int     `json:"index"`
	ID     string  `json:"id"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
}

// Height returns the vertical size of the band.
func (b Band) Height() float64 { return b.Bottom - b.Top }

// Contains reports whether y lies in [Top, Bottom).
func (b Band) Contains(y float64) bool {
	return y >= b.Top && y < b.Bottom
}

// Stacked divides the canvas height among the entities in order, beginning at
// the bottom edge. The first entity sits on y=height and the last one reaches
// exactly y=0.
func Stacked(set entity.Set, height float64) ([]Band, error) {
	if !(height > 0) {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "stack height must be positive, got %g", height)
	}
	cum, err := cumulative(set.Weights())
	if err != nil {
		return nil, err
	}

	bands := make([]Band, len(set))
	bottom := height
	for i, e := range set {
		top := height - cum[i]*height
		if cum[i] == 1 {
			top = 0
		}
		bands[i] = Band{Index: i, ID: e.ID, Top: top, Bottom: bottom}
		bottom = top
	}
	return bands, nil
}
