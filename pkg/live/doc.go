// Package live simulates the dashboard's live data.
//
// A [Scheduler] runs interval jobs on cron goroutines and is owned by
// whoever mounts the widgets it feeds; it is started and stopped explicitly
// and never runs as a package-level singleton. [Countdown] and [Feed] hold
// the state those jobs advance: the auction clock ticking once a second and
// the market pulse ticker receiving a generated item every fifteen seconds.
//
//	s := live.NewScheduler(live.WithLogger(logger))
//	feed := live.DefaultFeed()
//	_ = s.Every(live.PulseInterval, "pulse", func(ctx context.Context) {
//	    mu.Lock()
//	    feed.Push(live.Generate(rng))
//	    mu.Unlock()
//	})
//	s.Start()
//	defer s.Stop()
package live

import "time"

const (
	// CountdownInterval is the auction clock resolution.
	CountdownInterval = time.Second
	// PulseInterval is the period between generated market pulse items.
	PulseInterval = 15 * time.Second
)
