// Package sim provides the core discrete-time engine for netride-sim: a
// ride-hailing fleet whose passengers carry mobile devices attached to a
// small network of access points.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - location.go: the ordered site index and its ordinal distance
//   - entities.go, registry.go: access points, devices, passengers, drivers
//   - simulator.go: Tick(), the fixed per-tick step sequence
//
// # Tick sequence
//
// Every call to Simulator.Tick runs, in order:
//  1. reposition every passenger device (and redraw its destination) and every driver
//  2. clear access point connections and reattach each device to a co-located access point
//  3. rematch drivers to passengers through the configured MatchingStrategy
//  4. recompute each access point's ServiceSpeed
//  5. return an immutable Snapshot of the registries
//
// Pacing, cancellation and rendering are not part of this package; the cmd
// package owns the loop that calls Tick at a fixed cadence.
//
// # Randomness
//
// All draws come from a PartitionedRNG derived from a single SimulationKey, so
// a seed reproduces an entire run. Subsystems (mobility, connectivity,
// matching) draw from isolated streams.
package sim
