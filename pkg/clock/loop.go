package clock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/matzehuels/paddock/pkg/errors"
)

// Loop is a real-time frame scheduler backed by a ticker. Run owns the
// dispatch goroutine: frame callbacks and posted functions all execute there,
// one at a time, so widget state reached from them needs no locking.
//
// A Loop runs once; after Run returns, Post reports false.
type Loop struct {
	interval time.Duration

	mu        sync.Mutex
	nextID    FrameID
	queue     []request
	cancelled map[FrameID]struct{}

	posts   chan func()
	done    chan struct{}
	running atomic.Bool
}

// NewLoop returns a loop dispatching frames at fps frames per second. A
// non-positive fps selects 60.
func NewLoop(fps int) *Loop {
	interval := DefaultInterval
	if fps > 0 {
		interval = time.Second / time.Duration(fps)
	}
	return &Loop{
		interval:  interval,
		cancelled: make(map[FrameID]struct{}),
		posts:     make(chan func(), 64),
		done:      make(chan struct{}),
	}
}

// RequestFrame implements Scheduler. It is safe to call from any goroutine.
func (l *Loop) RequestFrame(fn FrameFunc) FrameID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.queue = append(l.queue, request{id: l.nextID, fn: fn})
	return l.nextID
}

// CancelFrame implements Scheduler. It is safe to call from any goroutine.
func (l *Loop) CancelFrame(id FrameID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, r := range l.queue {
		if r.id == id {
			l.queue = append(l.queue[:i], l.queue[i+1:]...)
			return
		}
	}
	l.cancelled[id] = struct{}{}
}

// Post schedules fn to run on the dispatch goroutine between frames. Input
// events go through Post so they never race with a tick. It reports false if
// the loop has already finished.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.posts <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run dispatches frames until ctx is cancelled. It returns ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return errors.New(errors.ErrCodeInvalidInput, "loop already running")
	}
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.posts:
			fn()
		case now := <-ticker.C:
			l.dispatch(now.Sub(start))
		}
	}
}

func (l *Loop) dispatch(ts time.Duration) {
	l.mu.Lock()
	batch := l.queue
	l.queue = nil
	clear(l.cancelled)
	l.mu.Unlock()

	for _, r := range batch {
		l.mu.Lock()
		_, skip := l.cancelled[r.id]
		l.mu.Unlock()
		if skip {
			continue
		}
		r.fn(ts)
	}
}
