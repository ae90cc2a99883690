package clock

import "time"

// DefaultInterval is the frame interval of a 60 Hz display.
const DefaultInterval = time.Second / 60

// Manual is a simulated frame scheduler. Frames are dispatched only when the
// owner calls Advance, which makes it the scheduler of choice for tests and
// headless snapshots.
//
// Callbacks requested while a frame is being dispatched run on the following
// frame, matching the semantics of a browser's animation frame queue.
type Manual struct {
	Interval time.Duration

	now       time.Duration
	nextID    FrameID
	frameNo   uint64
	queue     []request
	cancelled map[FrameID]struct{}
}

type request struct {
	id FrameID
	fn FrameFunc
}

// NewManual returns a manual scheduler with the given frame interval. A
// non-positive interval selects DefaultInterval.
func NewManual(interval time.Duration) *Manual {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manual{Interval: interval, cancelled: make(map[FrameID]struct{})}
}

// RequestFrame implements Scheduler.
func (m *Manual) RequestFrame(fn FrameFunc) FrameID {
	m.nextID++
	m.queue = append(m.queue, request{id: m.nextID, fn: fn})
	return m.nextID
}

// CancelFrame implements Scheduler. Cancelling a request that belongs to the
// frame currently being dispatched prevents it from running.
func (m *Manual) CancelFrame(id FrameID) {
	for i, r := range m.queue {
		if r.id == id {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
	m.cancelled[id] = struct{}{}
}

// Advance dispatches n frames. Each frame moves the simulated time forward by
// Interval and runs every callback that was queued before the frame began.
func (m *Manual) Advance(n int) {
	for i := 0; i < n; i++ {
		m.now += m.Interval
		m.frameNo++

		batch := m.queue
		m.queue = nil
		for _, r := range batch {
			if _, skip := m.cancelled[r.id]; skip {
				continue
			}
			r.fn(m.now)
		}
		clear(m.cancelled)
	}
}

// Now returns the simulated timestamp of the last dispatched frame.
func (m *Manual) Now() time.Duration { return m.now }

// Frame returns the number of frames dispatched so far.
func (m *Manual) Frame() uint64 { return m.frameNo }

// Pending returns the number of queued frame requests.
func (m *Manual) Pending() int { return len(m.queue) }
