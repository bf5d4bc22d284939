package engine

import (
	"log/slog"
	"math/rand"

	"github.com/avelis/cladesim/bd"
	"github.com/avelis/cladesim/sampler"
)

// DefaultRetryCap bounds the rejection loop: one initial attempt plus this
// many retries before the engine gives up with bd.ErrRetryLimit.
const DefaultRetryCap = 100000

// Source yields the randomness the engines consume. *rand.Rand satisfies
// it. A nil Source falls back to the process-wide math/rand source, so
// reproducibility is the caller's business.
type Source interface {
	Float64() float64
	ExpFloat64() float64
}

// globalSource adapts the process-wide math/rand generator.
type globalSource struct{}

func (globalSource) Float64() float64    { return rand.Float64() }
func (globalSource) ExpFloat64() float64 { return rand.ExpFloat64() }

// General simulates the birth-death process under arbitrary time-varying
// or age-dependent hazards, drawing every event through the waiting-time
// sampler and retrying whole attempts until the lineage count lands in
// the configured size range.
type General struct {
	src      Source
	smp      *sampler.Sampler
	retryCap int
	log      *slog.Logger
}

// NewGeneral returns an engine drawing randomness from src (nil for the
// process-wide source).
func NewGeneral(src Source) *General {
	if src == nil {
		src = globalSource{}
	}
	return &General{
		src:      src,
		smp:      sampler.New(src),
		retryCap: DefaultRetryCap,
	}
}

// SetRetryCap overrides the rejection-loop bound.
func (e *General) SetRetryCap(n int) {
	if n >= 0 {
		e.retryCap = n
	}
}

// SetPanels overrides the sampler's quadrature resolution.
func (e *General) SetPanels(n int) { e.smp.SetPanels(n) }

// SetLogger overrides the engine's logger (default slog.Default()).
func (e *General) SetLogger(l *slog.Logger) { e.log = l }

func (e *General) logger() *slog.Logger {
	if e.log != nil {
		return e.log
	}
	return slog.Default()
}

type generalDrawer struct {
	cfg bd.Config
	smp *sampler.Sampler
}

func (d generalDrawer) speciationWait(now, origin float64) (float64, error) {
	w, err := d.smp.Sample(1, d.cfg.Speciation, now, d.cfg.TMax, d.cfg.SpeciationShape, origin, d.cfg.Fast)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

func (d generalDrawer) extinctionWait(now, origin float64) (float64, error) {
	// True extinction times must not be truncated at the horizon, or
	// age-dependent extinction testing would be biased.
	fast := d.cfg.Fast && !d.cfg.TrueExtinctionTimes
	w, err := d.smp.Sample(1, d.cfg.Extinction, now, d.cfg.TMax, d.cfg.ExtinctionShape, origin, fast)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

// Simulate runs the bounded rejection loop and returns the first attempt
// whose size metric falls within cfg.Size. When the cap is exhausted it
// logs a warning and returns a *bd.RetryLimitError: an unreachable size
// target is a configuration issue, not a crash.
func (e *General) Simulate(cfg bd.Config) (*bd.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	d := generalDrawer{cfg: cfg, smp: e.smp}
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
