// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about frame loops, spins, live jobs and snapshot runs.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, which keeps the engine
// packages free of any metrics backend and avoids import cycles.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetFrameHooks(&myFrameHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Frame().OnFrameSkipped("wheel", ts, err)
//
// Frame hooks run on the frame loop and must return quickly.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Frame Hooks
// =============================================================================

// FrameHooks receives events from widget frame loops.
type FrameHooks interface {
	// OnFrame records a rendered frame and the number of draw commands.
	OnFrame(widget string, ts time.Duration, commands int)

	// OnFrameSkipped records a frame dropped because the surface was unavailable.
	OnFrameSkipped(widget string, ts time.Duration, err error)

	// OnTickError records a tick failure that stopped a frame loop.
	OnTickError(ts time.Duration, err error)
}

// =============================================================================
// Spin Hooks
// =============================================================================

// SpinHooks receives events from the weighted outcome resolver.
type SpinHooks interface {
	// OnSpinStart records a spin request that was accepted.
	OnSpinStart(index int, target float64)

	// OnSpinRejected records a spin request ignored because one was in flight.
	OnSpinRejected()

	// OnSpinResolved records the outcome published at the end of a spin.
	OnSpinResolved(index int, probability float64, duration time.Duration)
}

// =============================================================================
// Live Hooks
// =============================================================================

// LiveHooks receives events from scheduled live-update jobs.
type LiveHooks interface {
	// OnJobRun records one execution of a scheduled job.
	OnJobRun(ctx context.Context, job string, duration time.Duration)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from headless snapshot runs.
type PipelineHooks interface {
	OnSnapshotStart(ctx context.Context, widget string, frames int)
	OnSnapshotComplete(ctx context.Context, widget string, formats []string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopFrameHooks is a no-op implementation of FrameHooks.
type NoopFrameHooks struct{}

func (NoopFrameHooks) OnFrame(string, time.Duration, int)          {}
func (NoopFrameHooks) OnFrameSkipped(string, time.Duration, error) {}
func (NoopFrameHooks) OnTickError(time.Duration, error)            {}

// NoopSpinHooks is a no-op implementation of SpinHooks.
type NoopSpinHooks struct{}

func (NoopSpinHooks) OnSpinStart(int, float64)                  {}
func (NoopSpinHooks) OnSpinRejected()                           {}
func (NoopSpinHooks) OnSpinResolved(int, float64, time.Duration) {}

// NoopLiveHooks is a no-op implementation of LiveHooks.
type NoopLiveHooks struct{}

func (NoopLiveHooks) OnJobRun(context.Context, string, time.Duration) {}

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnSnapshotStart(context.Context, string, int) {}
func (NoopPipelineHooks) OnSnapshotComplete(context.Context, string, []string, time.Duration, error) {
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	frameHooks    FrameHooks    = NoopFrameHooks{}
	spinHooks     SpinHooks     = NoopSpinHooks{}
	liveHooks     LiveHooks     = NoopLiveHooks{}
	pipelineHooks PipelineHooks = NoopPipelineHooks{}
	hooksMu       sync.RWMutex
)

// SetFrameHooks registers custom frame hooks.
// This should be called once at application startup before any widget mounts.
func SetFrameHooks(h FrameHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		frameHooks = h
	}
}

// SetSpinHooks registers custom spin hooks.
func SetSpinHooks(h SpinHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		spinHooks = h
	}
}

// SetLiveHooks registers custom live-job hooks.
func SetLiveHooks(h LiveHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		liveHooks = h
	}
}

// SetPipelineHooks registers custom pipeline hooks.
func SetPipelineHooks(h PipelineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		pipelineHooks = h
	}
}

// Frame returns the registered frame hooks.
func Frame() FrameHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return frameHooks
}

// Spin returns the registered spin hooks.
func Spin() SpinHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return spinHooks
}

// Live returns the registered live-job hooks.
func Live() LiveHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return liveHooks
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return pipelineHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	frameHooks = NoopFrameHooks{}
	spinHooks = NoopSpinHooks{}
	liveHooks = NoopLiveHooks{}
	pipelineHooks = NoopPipelineHooks{}
}
