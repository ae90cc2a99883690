package widget

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/paddock/pkg/clock"
	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/errors"
	"github.com/matzehuels/paddock/pkg/observability"
)

type counter struct {
	updates []time.Duration
	drawn   []time.Duration
}

func (c *counter) Name() string { return "counter" }

func (c *counter) Update(ts time.Duration) { c.updates = append(c.updates, ts) }

func (c *counter) Draw(s draw.Surface, ts time.Duration) draw.List {
	c.drawn = append(c.drawn, ts)
	return draw.NewPass().Add(draw.LayerGlyphs, draw.Circle(0, 0, float64(len(c.updates)))).Commands()
}

type frameRecorder struct {
	observability.NoopFrameHooks
	frames, skipped int
}

func (r *frameRecorder) OnFrame(string, time.Duration, int)          { r.frames++ }
func (r *frameRecorder) OnFrameSkipped(string, time.Duration, error) { r.skipped++ }

func TestHostUpdateBeforeDraw(t *testing.T) {
	sched := clock.NewManual(0)
	w := &counter{}
	var frames []Frame
	h := NewHost(w, sched, FixedSurface(draw.NewSurface(100, 100, 1)), func(f Frame) error {
		frames = append(frames, f)
		return nil
	})

	require.NoError(t, h.Mount())
	sched.Advance(3)

	require.Len(t, frames, 3)
	assert.Equal(t, w.updates, w.drawn)
	// The glyph radius is the update count seen by Draw.
	assert.Equal(t, 3.0, frames[2].Commands[1].R)
	assert.Equal(t, 3, frames[2].Number)
	assert.Equal(t, "counter", frames[0].Widget)
	assert.Equal(t, Stats{Frames: 3, Commands: 6}, h.Stats())
}

func TestHostUnmountStopsFrames(t *testing.T) {
	sched := clock.NewManual(0)
	w := &counter{}
	h := NewHost(w, sched, FixedSurface(draw.NewSurface(10, 10, 1)), nil)

	require.NoError(t, h.Mount())
	sched.Advance(2)
	h.Unmount()
	sched.Advance(5)

	assert.Len(t, w.updates, 2)
	assert.False(t, h.Mounted())
	assert.NoError(t, h.Mount(), "a host can be remounted")
}

func TestHostSkipsUnavailableSurface(t *testing.T) {
	rec := &frameRecorder{}
	observability.SetFrameHooks(rec)
	t.Cleanup(observability.Reset)

	sched := clock.NewManual(0)
	w := &counter{}
	width := 0.0
	h := NewHost(w, sched, func() draw.Surface { return draw.NewSurface(width, 50, 1) }, nil)

	require.NoError(t, h.Mount())
	sched.Advance(2)
	width = 80
	sched.Advance(1)

	assert.True(t, h.Mounted(), "surface errors never stop the loop")
	assert.Len(t, w.updates, 3)
	assert.Len(t, w.drawn, 1)
	assert.Equal(t, 2, h.Stats().Skipped)
	assert.Equal(t, 2, rec.skipped)
	assert.Equal(t, 1, rec.frames)
}

func TestHostRendererErrorStopsLoop(t *testing.T) {
	sched := clock.NewManual(0)
	boom := stderrors.New("sink closed")
	var got error
	h := NewHost(&counter{}, sched, FixedSurface(draw.NewSurface(10, 10, 1)),
		func(Frame) error { return boom },
		WithOnError(func(err error) { got = err }),
	)

	require.NoError(t, h.Mount())
	sched.Advance(3)

	assert.False(t, h.Mounted())
	require.Error(t, h.Err())
	assert.ErrorIs(t, h.Err(), boom)
	assert.True(t, errors.Is(got, errors.ErrCodeTick))
	assert.Equal(t, 1, h.Stats().Frames)
}
