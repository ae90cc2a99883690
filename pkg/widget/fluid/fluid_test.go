package fluid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/layout"
)

func owners() entity.Set {
	return entity.Set{
		{ID: "you", Label: "You", Weight: 0.35, Category: entity.Owner},
		{ID: "pro", Label: "BloodstockPro", Weight: 0.25, Category: entity.Owner},
		{ID: "eqv", Label: "EquineVentures", Weight: 0.2, Category: entity.Owner},
		{ID: "stb", Label: "StableInc", Weight: 0.15, Category: entity.Owner},
		{ID: "oth", Label: "Other Holders", Weight: 0.05, Category: entity.Owner},
	}
}

func TestNewValidates(t *testing.T) {
	bad := owners()
	bad[0].Weight = 0.5
	_, err := New(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = New(nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestClickSelectsBand(t *testing.T) {
	f, err := New(owners())
	require.NoError(t, err)
	s := draw.NewSurface(400, 200, 1)

	f.Click(s, layout.Point{X: 10, Y: 199})
	sel, ok := f.Selected()
	require.True(t, ok)
	assert.Equal(t, "you", sel.ID)

	f.Click(s, layout.Point{X: 10, Y: 5})
	sel, _ = f.Selected()
	assert.Equal(t, "oth", sel.ID)

	f.Click(s, layout.Point{X: 10, Y: 5})
	_, ok = f.Selected()
	assert.False(t, ok, "clicking the selected band clears it")

	f.ToggleOwner("pro")
	sel, _ = f.Selected()
	assert.Equal(t, "BloodstockPro", sel.Label)
	f.ToggleOwner("nobody")
	sel, _ = f.Selected()
	assert.Equal(t, "pro", sel.ID)

	f.Reset()
	_, ok = f.Selected()
	assert.False(t, ok)
}

func TestUpdateAdvancesPhaseWhilePlaying(t *testing.T) {
	f, err := New(owners())
	require.NoError(t, err)

	f.Update(0)
	f.Update(time.Second)
	assert.InDelta(t, 0.6, f.Phase(), 1e-12)

	assert.False(t, f.TogglePlay())
	f.Update(2 * time.Second)
	assert.InDelta(t, 0.6, f.Phase(), 1e-12, "paused waves hold still")

	assert.True(t, f.TogglePlay())
	f.Update(3 * time.Second)
	assert.InDelta(t, 0.6, f.Phase(), 1e-12, "first frame after resume only records the time")
	f.Update(4 * time.Second)
	assert.InDelta(t, 1.2, f.Phase(), 1e-12)
}

func TestDraw(t *testing.T) {
	f, err := New(owners(), WithPaused())
	require.NoError(t, err)
	s := draw.NewSurface(400, 200, 1)

	cmds := f.Draw(s, 0)
	assert.Equal(t, 5, cmds.Count(draw.KindPath))
	assert.Equal(t, numBubbles, cmds.Count(draw.KindCircle))
	assert.Empty(t, cmds.Texts())

	// Hues rotate per owner.
	var hues []float64
	for _, c := range cmds {
		if c.Kind == draw.KindPath {
			hues = append(hues, c.Fill.Stops[0].Color.H)
		}
	}
	assert.Equal(t, []float64{160, 190, 220, 250, 280}, hues)

	f.ToggleOwner("you")
	cmds = f.Draw(s, 0)
	assert.Equal(t, []string{"You: 35%"}, cmds.Texts())
	assert.Equal(t, 6, cmds.Count(draw.KindPath), "selected band is outlined")
}
