package engine

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/avelis/cladesim/bd"
)

// Constant is the fast-path engine for scalar, time-invariant,
// non-age-dependent hazards: waiting times come straight from the
// exponential distribution, no integration or root-finding involved.
// Its output contract is identical to General's.
type Constant struct {
	src      Source
	retryCap int
	log      *slog.Logger
}

// NewConstant returns a constant-rate engine drawing randomness from src
// (nil for the process-wide source).
func NewConstant(src Source) *Constant {
	if src == nil {
		src = globalSource{}
	}
	return &Constant{src: src, retryCap: DefaultRetryCap}
}

// SetRetryCap overrides the rejection-loop bound.
func (e *Constant) SetRetryCap(n int) {
	if n >= 0 {
		e.retryCap = n
	}
}

// SetLogger overrides the engine's logger (default slog.Default()).
func (e *Constant) SetLogger(l *slog.Logger) { e.log = l }

func (e *Constant) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return slog.Default()
}

type constantDrawer struct {
	src        Source
	speciation float64
	extinction float64
}

func (d constantDrawer) draw(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return d.src.ExpFloat64() / rate
}

func (d constantDrawer) speciationWait(now, origin float64) (float64, error) {
	return d.draw(d.speciation), nil
}

func (d constantDrawer) extinctionWait(now, origin float64) (float64, error) {
	return d.draw(d.extinction), nil
}

// Simulate runs the bounded rejection loop with closed-form exponential
// draws. Both hazards must be bare scalars and no age shapes may be set;
// the dispatcher guarantees this, but it is re-checked here.
func (e *Constant) Simulate(cfg bd.Config) (*bd.Result, error) {
	// Validate first so a config that is both malformed and non-scalar
	// surfaces the same error here as through General.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Speciation.IsConstant() || !cfg.Extinction.IsConstant() {
		return nil, fmt.Errorf("%w: constant engine requires scalar rates", bd.ErrRateSpec)
	}
	if cfg.SpeciationShape.Present() || cfg.ExtinctionShape.Present() {
		return nil, fmt.Errorf("%w: constant engine cannot handle age-dependent rates", bd.ErrRateSpec)
	}

	d := constantDrawer{
		src:        e.src,
		speciation: cfg.Speciation.Constant(),
		extinction: cfg.Extinction.Constant(),
	}
	for attempt := 0; attempt <= e.retryCap; attempt++ {
		res, err := runAttempt(cfg, d)
		if err != nil {
			return nil, err
		}
		size := sizeMetric(res, cfg.CountExtantOnly)
		if cfg.Size.Contains(size) {
			e.logger().Debug("simulation accepted",
				"attempts", attempt+1, "lineages", res.Len(), "extant", res.ExtantCount())
			return res, nil
		}
	}

	e.logger().Warn("size target not reached within retry limit",
		"attempts", e.retryCap+1, "min", cfg.Size.Min, "max", cfg.Size.Max)
	return nil, &bd.RetryLimitError{Attempts: e.retryCap + 1}
}
