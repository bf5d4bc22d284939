package rates

import (
	"fmt"
	"sort"

	"github.com/avelis/cladesim/bd"
)

// EnvPoint is one sample of an environmental covariate at time T.
type EnvPoint struct {
	T     float64
	Value float64
}

// EnvSeries interpolates an environmental covariate piecewise-linearly
// between its samples, clamping beyond the first and last.
type EnvSeries struct {
	ts []float64
	vs []float64
}

// NewEnvSeries builds a series from covariate samples, sorting them by
// time. At least one sample is required; duplicate times are rejected.
func NewEnvSeries(points []EnvPoint) (*EnvSeries, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: empty environment series", bd.ErrRateSpec)
	}
	ps := append([]EnvPoint(nil), points...)
	sort.Slice(ps, func(i, j int) bool { return ps[i].T < ps[j].T })

	s := &EnvSeries{
		ts: make([]float64, len(ps)),
		vs: make([]float64, len(ps)),
	}
	for i, p := range ps {
		if i > 0 && p.T == ps[i-1].T {
			return nil, fmt.Errorf("%w: duplicate environment sample at t=%g", bd.ErrRateSpec, p.T)
		}
		s.ts[i] = p.T
		s.vs[i] = p.Value
	}
	return s, nil
}

// At returns the interpolated covariate value at time t.
func (s *EnvSeries) At(t float64) float64 {
	n := len(s.ts)
	if t <= s.ts[0] {
		return s.vs[0]
	}
	if t >= s.ts[n-1] {
		return s.vs[n-1]
	}
	i := sort.SearchFloat64s(s.ts, t)
	// s.ts[i-1] < t <= s.ts[i]
	frac := (t - s.ts[i-1]) / (s.ts[i] - s.ts[i-1])
	return s.vs[i-1] + frac*(s.vs[i]-s.vs[i-1])
}
