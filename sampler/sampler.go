package sampler

import (
	"fmt"
	"math"

	"github.com/avelis/cladesim/bd"
	"github.com/avelis/cladesim/numeric"
)

// Source yields uniform variates in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Sampler draws event waiting times under time-varying or age-dependent
// hazards by numerical inversion of the cumulative hazard: integrate the
// hazard, then root-find the survival function against a uniform draw.
type Sampler struct {
	rng    Source
	panels int
}

// New returns a sampler drawing randomness from rng with the default
// quadrature resolution.
func New(rng Source) *Sampler {
	return &Sampler{rng: rng, panels: numeric.DefaultPanels}
}

// SetPanels overrides the quadrature subdivision count. Lower values trade
// accuracy for speed.
func (s *Sampler) SetPanels(n int) {
	if n > 0 {
		s.panels = n
	}
}

// Sample draws n waiting times (each >= 0) for an event with the given
// hazard, measured from the simulation clock now up to horizon.
//
// Without a shape the event follows an inhomogeneous Poisson process in
// clock time. With a shape the hazard is reinterpreted as a Weibull scale
// in age space, where age = now - origin.
//
// In fast mode, draws whose total occurrence probability before the
// horizon falls below the uniform variate are truncated: the returned
// waiting time is horizon+bd.SentinelPad, which the caller should treat
// as "event never happens". A total exactly equal to the variate resolves
// to an event at the horizon, not a truncation.
func (s *Sampler) Sample(n int, hz bd.Hazard, now, horizon float64, shape bd.Shape, origin float64, fast bool) ([]float64, error) {
	if now < origin {
		return nil, fmt.Errorf("%w: now=%g origin=%g", bd.ErrBeforeOrigin, now, origin)
	}
	if fast && math.IsInf(horizon, 1) {
		return nil, bd.ErrInfiniteHorizon
	}

	out := make([]float64, n)
	for i := range out {
		if shape.Present() {
			out[i] = s.drawAge(hz, now, horizon, shape, origin, fast)
		} else {
			out[i] = s.drawClock(hz, now, horizon, fast)
		}
	}
	return out, nil
}

// drawClock inverts the inhomogeneous-Poisson survival function
// 1 - p = exp(-int_now^t hz).
func (s *Sampler) drawClock(hz bd.Hazard, now, horizon float64, fast bool) float64 {
	upper := horizon
	if math.IsInf(upper, 1) {
		// Synthetic bound for the initial bracket; root-finding expands
		// past it when the draw lands further out.
		upper = 10*now + 10
	}

	cum := func(t float64) float64 {
		return numeric.Trapezoid(hz.At, now, t, s.panels)
	}

	p := s.rng.Float64()
	total := 1 - math.Exp(-cum(upper))
	if fast && total < p {
		return horizon + bd.SentinelPad
	}

	t := numeric.SolveMonotone(func(t float64) float64 {
		return (1 - math.Exp(-cum(t))) - p
	}, now, upper)
	return t - now
}

// drawAge inverts the Weibull survival function in age space: the hazard
// is a scale, the cumulative hazard is (int_age0^u dx/scale(x+origin))
// raised to shape(u).
func (s *Sampler) drawAge(hz bd.Hazard, now, horizon float64, shape bd.Shape, origin float64, fast bool) float64 {
	age0 := now - origin
	upper := horizon - origin
	if math.IsInf(upper, 1) {
		upper = 10*age0 + 10
	}

	inv := func(x float64) float64 {
		v := hz.At(x + origin)
		if v <= 0 {
			// Zero scale means instant failure; keep the integrand finite.
			v = 1e-300
		}
		return 1 / v
	}
	cum := func(u float64) float64 {
		integ := numeric.Trapezoid(inv, age0, u, s.panels)
		return math.Pow(integ, shape.At(u))
	}

	p := s.rng.Float64()
	total := 1 - math.Exp(-cum(upper))
	if fast && total < p {
		return horizon + bd.SentinelPad
	}

	u := numeric.SolveMonotone(func(u float64) float64 {
		return (1 - math.Exp(-cum(u))) - p
	}, age0, upper)
	return u - age0
}
