// Package widget binds a Draw Pass to a frame clock and a sink.
//
// A [Widget] owns its animation and selection state. Each frame the [Host]
// calls Update, which advances that state, and then Draw, which reads it and
// returns a command list. Draw never mutates state, so a frame never observes
// a mutation from a later tick.
//
// Concrete widgets live in the subpackages (wheel, terrain, fluid,
// constellation, helix, pedigree).
package widget

import (
	"time"

	"github.com/matzehuels/paddock/pkg/draw"
	"github.com/matzehuels/paddock/pkg/layout"
)

// Widget is one animated visualization.
type Widget interface {
	// Name identifies the widget in logs, hooks, and snapshots.
	Name() string
	// Update advances time-dependent state to ts.
	Update(ts time.Duration)
	// Draw is a pure function of the widget state and ts.
	Draw(s draw.Surface, ts time.Duration) draw.List
}

// Pointer is implemented by widgets that react to hover.
type Pointer interface {
	PointerMove(s draw.Surface, p layout.Point)
	PointerLeave()
}

// Clicker is implemented by widgets that toggle a selection on click.
type Clicker interface {
	Click(s draw.Surface, p layout.Point)
}

// Resetter is implemented by widgets whose selection resets on a
// configuration change.
type Resetter interface {
	Reset()
}
