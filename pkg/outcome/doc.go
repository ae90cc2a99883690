// Package outcome resolves weighted random outcomes for spinning widgets.
//
// # Resolution
//
// A [Resolver] holds an ordered, closed probability distribution over
// entities. [Resolver.Resolve] draws u from [0,1), walks the cumulative
// weights and picks the first entity whose cumulative weight reaches u. It
// then computes the terminal target an animated pointer must reach to land on
// the midpoint of that entity's radial span after a few whole turns:
//
//	target = (floor(current/2π) + N)·2π + mid
//
// N is drawn from a configured range (3 to 5 by default). The target is an
// absolute angle that is always at or beyond the current offset, so the
// pointer never turns backward.
//
// # Spinning
//
// A [Spin] couples a resolver with an [anim.Driver]. A request made while a
// spin is in flight is ignored. The resolved outcome becomes the selection
// only on the frame where the animation lands exactly on its target.
//
// # Testing
//
// The random source is injected through the [Rand] interface. Tests use a
// fixed sequence to force specific outcomes, or a seeded PCG source together
// with [GoodnessOfFit] to check the sampled frequencies against the weights.
package outcome
