// Package layout maps weighted entities onto proportional visual regions.
//
// # Overview
//
// Every widget in the dashboard divides some extent of its drawing surface
// among an ordered list of entities: the outcome wheel divides a circle among
// traits, the ownership fluid divides the canvas height among owners, the
// value helix divides its nodes among genetic markers. This package computes
// those divisions once per configuration so that draw passes and the pointer
// mapper share one source of truth.
//
// # Modes
//
//   - [Radial] assigns each entity a contiguous angular [Span] of
//     2π·weight, walked in entity order from a base angle.
//   - [Stacked] assigns each entity a contiguous vertical [Band] of
//     height·weight, walked from the canvas bottom upward.
//   - [Apportion] distributes a fixed number of discrete slots (helix nodes)
//     with the largest-remainder method.
//   - [Tree] places the generations of a binary pedigree on evenly spaced rows.
//
// Weights need not sum to one; they are normalized first with [Normalize].
//
// # Exact Cover
//
// Regions are contiguous and non-overlapping, and their union covers the whole
// extent exactly. Floating-point residue from the cumulative walk is absorbed
// by the last entity with a positive weight, so the final span always ends at
// base+2π and the final band always tops out at y=0, bit for bit.
package layout
