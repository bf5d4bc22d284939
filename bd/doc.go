// Package bd defines the data model shared by the birth-death simulation
// engines:
//
//   - [Hazard]: instantaneous event rate, scalar or function of time
//   - [Shape]: optional Weibull shape for age-dependent hazards
//   - [Lineage]: one simulated species, indexed by birth order
//   - [Result]: an accepted simulation attempt
//   - [Config]: engine inputs, including the size acceptance interval
//
// # Time orientation
//
// The engines run forward from 0 but an accepted [Result] stores inverted
// times (TMax - t): the root of the process sits at TMax and the present
// at 0, matching the usual phylogenetic convention.
//
// # Sentinels
//
// Unresolved states are represented explicitly ([OptTime], Parent == 0).
// The documented sentinel values (TMax+0.01 for root birth times, -0.01
// for survivors' extinction times) appear only in the Result accessors
// that serialize the record for external consumers.
package bd
