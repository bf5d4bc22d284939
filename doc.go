// Package cladesim simulates stochastic lineage-diversification
// (birth-death) processes and generates synthetic phylogenies for testing
// macroevolutionary inference methods.
//
// Speciation and extinction hazards may be constant, arbitrary functions
// of time, functions of time and an external environmental covariate,
// piecewise step functions, or Weibull age-dependent hazards tied to each
// lineage's own age. [Simulate] picks the right engine for the supplied
// rate specs and drives the process to a target lineage-count interval
// through a bounded rejection loop.
//
//	res, err := cladesim.Simulate(1,
//	    rates.Constant(0.11), rates.Constant(0.08), 40,
//	    cladesim.DefaultOptions())
//
// Subpackages: [github.com/avelis/cladesim/bd] holds the data model,
// rates the rate builder, engine the simulation engines, and clade,
// phylo and diversity the downstream utilities operating on results.
package cladesim
