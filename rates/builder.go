package rates

import (
	"fmt"

	"github.com/avelis/cladesim/bd"
)

type kind int

const (
	kindConstant kind = iota
	kindTimeFunc
	kindEnvFunc
	kindStep
)

// Spec is a user-supplied rate specification before normalization: a bare
// scalar, a function of time, a function of time and an environmental
// covariate, or a piecewise step function over shift times.
type Spec struct {
	k      kind
	value  float64
	timeFn func(t float64) float64
	envFn  func(t, env float64) float64
	values []float64
	shifts []float64
}

// Constant is a time-invariant rate.
func Constant(v float64) Spec {
	return Spec{k: kindConstant, value: v}
}

// TimeFunc is a rate varying with simulation time.
func TimeFunc(f func(t float64) float64) Spec {
	return Spec{k: kindTimeFunc, timeFn: f}
}

// EnvFunc is a rate driven by time and an environmental covariate; Build
// closes it over the interpolated covariate series.
func EnvFunc(f func(t, env float64) float64) Spec {
	return Spec{k: kindEnvFunc, envFn: f}
}

// Step is a piecewise-constant rate: values[i] applies between
// shifts[i-1] and shifts[i], so len(values) must be len(shifts)+1.
func Step(values, shifts []float64) Spec {
	return Spec{k: kindStep, values: values, shifts: shifts}
}

// IsConstant reports whether the spec is a bare scalar with no shifts or
// environment dependence.
func (s Spec) IsConstant() bool { return s.k == kindConstant }

// ConstantValue returns the scalar of a constant spec.
func (s Spec) ConstantValue() float64 { return s.value }

// NeedsEnv reports whether the spec requires an environmental series.
func (s Spec) NeedsEnv() bool { return s.k == kindEnvFunc }

// Build normalizes a spec into a hazard usable by the engines. Constant
// specs pass through as scalars (the constant-rate fast path keys on
// this). The horizon bounds the step-shift times; env carries the
// covariate samples for EnvFunc specs.
//
// Build fails with a validation error when shift times and rate values do
// not pair up, when an environmental series is supplied to a spec that
// cannot accept it, or when an EnvFunc spec is missing its series.
func Build(s Spec, horizon float64, env []EnvPoint) (bd.Hazard, error) {
	switch s.k {
	case kindConstant:
		if env != nil {
			return bd.Hazard{}, fmt.Errorf("%w: environment supplied to a constant rate", bd.ErrRateSpec)
		}
		return bd.ConstHazard(s.value), nil

	case kindTimeFunc:
		if env != nil {
			return bd.Hazard{}, fmt.Errorf("%w: environment supplied to a rate function that does not accept it", bd.ErrRateSpec)
		}
		if s.timeFn == nil {
			return bd.Hazard{}, fmt.Errorf("%w: nil rate function", bd.ErrRateSpec)
		}
		return bd.FuncHazard(s.timeFn), nil

	case kindEnvFunc:
		if s.envFn == nil {
			return bd.Hazard{}, fmt.Errorf("%w: nil rate function", bd.ErrRateSpec)
		}
		if len(env) == 0 {
			return bd.Hazard{}, fmt.Errorf("%w: environment-dependent rate without covariate samples", bd.ErrRateSpec)
		}
		series, err := NewEnvSeries(env)
		if err != nil {
			return bd.Hazard{}, err
		}
		fn := s.envFn
		return bd.FuncHazard(func(t float64) float64 {
			return fn(t, series.At(t))
		}), nil

	case kindStep:
		if env != nil {
			return bd.Hazard{}, fmt.Errorf("%w: environment supplied to a step rate", bd.ErrRateSpec)
		}
		return buildStep(s.values, s.shifts, horizon)

	default:
		return bd.Hazard{}, fmt.Errorf("%w: unknown rate kind", bd.ErrRateSpec)
	}
}

func buildStep(values, shifts []float64, horizon float64) (bd.Hazard, error) {
	if len(values) == 0 {
		return bd.Hazard{}, fmt.Errorf("%w: step rate without values", bd.ErrRateSpec)
	}
	if len(values) != len(shifts)+1 {
		return bd.Hazard{}, fmt.Errorf("%w: %d step values need %d shift times, got %d",
			bd.ErrRateSpec, len(values), len(values)-1, len(shifts))
	}
	for i, sh := range shifts {
		if i > 0 && sh <= shifts[i-1] {
			return bd.Hazard{}, fmt.Errorf("%w: shift times must be strictly increasing", bd.ErrRateSpec)
		}
		if sh < 0 || (horizon > 0 && sh > horizon) {
			return bd.Hazard{}, fmt.Errorf("%w: shift time %g outside [0, %g]", bd.ErrRateSpec, sh, horizon)
		}
	}
	vals := append([]float64(nil), values...)
	cuts := append([]float64(nil), shifts...)
	return bd.FuncHazard(func(t float64) float64 {
		for i, sh := range cuts {
			if t < sh {
				return vals[i]
			}
		}
		return vals[len(vals)-1]
	}), nil
}
