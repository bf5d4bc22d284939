// Package engine drives the birth-death process to a target lineage-count
// constraint through a bounded rejection loop.
//
//   - [General]: arbitrary time-varying or age-dependent hazards, every
//     event drawn through the waiting-time sampler
//   - [Constant]: closed-form exponential fast path for bare scalar rates
//   - [Ensemble]: independent replicate runs with per-replicate RNGs
//
// Both engines share the same inner attempt: lineages are processed in
// strict birth order and children appended at the tail, so a parent's id
// always precedes its children's and the parent relation forms a forest.
// Accepted results carry inverted times (root at TMax, present at 0).
//
// A single engine run is fully synchronous; nothing is shared between
// attempts, which is what makes Ensemble's replicates safe to run
// concurrently.
package engine
