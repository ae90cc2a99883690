package helix

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/entity"
	"github.com/matzehuels/paddock/pkg/errors"
)

func markers() entity.Set {
	return entity.Set{
		{ID: "speed", Label: "Speed (Dominant)", Weight: 0.6, Category: entity.Marker, ColorToken: "primary"},
		{ID: "stamina", Label: "Stamina (Recessive)", Weight: 0.4, Category: entity.Marker, ColorToken: "secondary"},
	}
}

func TestNewApportionsNodes(t *testing.T) {
	h, err := New(markers())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}, h.Assignment())

	h, err = New(markers(), WithNodes(7))
	require.NoError(t, err)
	assert.Len(t, h.Assignment(), 7)

	_, err = New(markers(), WithNodes(1))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	bad := markers()
	bad[1].Weight = -1
	_, err = New(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestDraw(t *testing.T) {
	h, err := New(markers(), WithScore(92))
	require.NoError(t, err)
	s := draw.NewSurface(600, 300, 2)

	cmds := h.Draw(s, 0)
	// 20 nodes plus one legend dot per marker.
	assert.Equal(t, 22, cmds.Count(draw.KindCircle))
	// 9 segments per strand plus 10 rungs.
	assert.Equal(t, 28, cmds.Count(draw.KindLine))
	assert.Equal(t, []string{"92% Genetic Value", "Speed (Dominant)", "Stamina (Recessive)"}, cmds.Texts())

	var nodeHues []float64
	for _, c := range cmds {
		if c.Kind == draw.KindCircle && c.R == nodeRadius {
			nodeHues = append(nodeHues, c.Fill.Color.H)
		}
	}
	require.Len(t, nodeHues, 20)
	assert.Equal(t, 160.0, nodeHues[0])
	assert.Equal(t, 46.0, nodeHues[9])
	assert.Equal(t, 46.0, nodeHues[10], "second strand pairs with the mirrored node")
}

func TestUpdateRotates(t *testing.T) {
	h, err := New(markers())
	require.NoError(t, err)
	s := draw.NewSurface(600, 300, 1)

	h.Update(0)
	a := h.Draw(s, 0)
	h.Update(500 * time.Millisecond)
	b := h.Draw(s, 500*time.Millisecond)

	assert.InDelta(t, 0.3, h.Angle(), 1e-12)
	assert.NotEqual(t, a, b)
}
