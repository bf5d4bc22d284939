package cladesim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/avelis/cladesim/bd"
	"github.com/avelis/cladesim/engine"
	"github.com/avelis/cladesim/rates"
)

// Options configures a Simulate call. The zero value requests exact (non
// truncated) sampling with no size constraint; DefaultOptions enables the
// fast truncation mode, which is what most callers want.
type Options struct {
	// SpeciationShape / ExtinctionShape turn the corresponding rate into
	// the scale of a Weibull age-dependent hazard.
	SpeciationShape bd.Shape
	ExtinctionShape bd.Shape

	// Size is the acceptance interval of the rejection loop. A zero
	// value means unconstrained.
	Size bd.SizeRange

	// CountExtantOnly interprets Size against surviving lineages rather
	// than total births.
	CountExtantOnly bool

	// Fast truncates waiting times whose occurrence probability before
	// the horizon is negligible instead of computing them exactly.
	Fast bool

	// TrueExtinctionTimes records literal extinction draws instead of
	// horizon sentinels, as needed for unbiased age-dependent-extinction
	// testing.
	TrueExtinctionTimes bool

	// Environment carries covariate samples for EnvFunc rate specs.
	Environment []rates.EnvPoint

	// Rand supplies randomness; nil uses the process-wide source, in
	// which case reproducibility is up to the caller's seeding.
	Rand *rand.Rand

	// Logger receives the retry-exhaustion warning; nil uses
	// slog.Default().
	Logger *slog.Logger

	// RetryCap overrides the rejection-loop bound when positive.
	RetryCap int

	// Panels overrides the sampler's quadrature resolution when positive.
	Panels int
}

// DefaultOptions returns options with fast sampling enabled and no size
// constraint.
func DefaultOptions() Options {
	return Options{
		Size: bd.UnboundedSize(),
		Fast: true,
	}
}

// Simulate runs a birth-death simulation from n0 root lineages over
// [0, tMax] and returns the accepted attempt with times inverted (root at
// tMax, present at 0).
//
// When both rate specs are bare scalars and no age shape or environment
// is involved, the closed-form constant-rate engine is used; anything
// else is normalized by the rate builder and driven through the general
// variable-rate engine. The choice is made once per call.
func Simulate(n0 int, speciation, extinction rates.Spec, tMax float64, opts Options) (*bd.Result, error) {
	if (opts.Size == bd.SizeRange{}) {
		opts.Size = bd.UnboundedSize()
	}

	if opts.Environment != nil && !speciation.NeedsEnv() && !extinction.NeedsEnv() {
		return nil, fmt.Errorf("%w: environment supplied but neither rate accepts it", bd.ErrRateSpec)
	}

	cfg := bd.Config{
		N0:                  n0,
		SpeciationShape:     opts.SpeciationShape,
		ExtinctionShape:     opts.ExtinctionShape,
		TMax:                tMax,
		Size:                opts.Size,
		CountExtantOnly:     opts.CountExtantOnly,
		Fast:                opts.Fast,
		TrueExtinctionTimes: opts.TrueExtinctionTimes,
	}

	var src engine.Source
	if opts.Rand != nil {
		src = opts.Rand
	}

	constant := speciation.IsConstant() && extinction.IsConstant() &&
		!opts.SpeciationShape.Present() && !opts.ExtinctionShape.Present() &&
		opts.Environment == nil

	if constant {
		cfg.Speciation = bd.ConstHazard(speciation.ConstantValue())
		cfg.Extinction = bd.ConstHazard(extinction.ConstantValue())
		eng := engine.NewConstant(src)
		if opts.RetryCap > 0 {
			eng.SetRetryCap(opts.RetryCap)
		}
		eng.SetLogger(opts.Logger)
		return eng.Simulate(cfg)
	}

	var err error
	cfg.Speciation, err = rates.Build(speciation, tMax, envFor(speciation, opts.Environment))
	if err != nil {
		return nil, fmt.Errorf("speciation rate: %w", err)
	}
	cfg.Extinction, err = rates.Build(extinction, tMax, envFor(extinction, opts.Environment))
	if err != nil {
		return nil, fmt.Errorf("extinction rate: %w", err)
	}

	eng := engine.NewGeneral(src)
	if opts.RetryCap > 0 {
		eng.SetRetryCap(opts.RetryCap)
	}
	if opts.Panels > 0 {
		eng.SetPanels(opts.Panels)
	}
	eng.SetLogger(opts.Logger)
	return eng.Simulate(cfg)
}

// envFor routes the covariate series only to specs whose rate function
// accepts it; the builder rejects the remaining mismatches.
func envFor(s rates.Spec, env []rates.EnvPoint) []rates.EnvPoint {
	if s.NeedsEnv() {
		return env
	}
	return nil
}
