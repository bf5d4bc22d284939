package rates

import (
	"errors"
	"math"
	"testing"

	"github.com/avelis/cladesim/bd"
)

func TestBuildConstantPassesThrough(t *testing.T) {
	hz, err := Build(Constant(0.25), 10, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !hz.IsConstant() {
		t.Error("constant spec should build a scalar hazard")
	}
	if hz.Constant() != 0.25 {
		t.Errorf("expected 0.25, got %g", hz.Constant())
	}
}

func TestBuildTimeFunc(t *testing.T) {
	hz, err := Build(TimeFunc(func(x float64) float64 { return 0.1 + 0.01*x }), 10, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if hz.IsConstant() {
		t.Error("time function should not build a scalar hazard")
	}
	if got := hz.At(5); math.Abs(got-0.15) > 1e-12 {
		t.Errorf("hazard at t=5: got %g, expected 0.15", got)
	}
}

func TestBuildStep(t *testing.T) {
	hz, err := Build(Step([]float64{0.2, 0.05, 0.1}, []float64{3, 7}), 10, nil)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	cases := []struct {
		t    float64
		want float64
	}{
		{0, 0.2}, {2.9, 0.2}, {3, 0.05}, {5, 0.05}, {7, 0.1}, {10, 0.1},
	}
	for _, c := range cases {
		if got := hz.At(c.t); got != c.want {
			t.Errorf("step hazard at t=%g: got %g, expected %g", c.t, got, c.want)
		}
	}
}

func TestBuildStepMismatchedShifts(t *testing.T) {
	_, err := Build(Step([]float64{0.2, 0.05}, nil), 10, nil)
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("values without shifts: expected ErrRateSpec, got %v", err)
	}

	_, err = Build(Step([]float64{0.2}, []float64{3}), 10, nil)
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("shifts without values: expected ErrRateSpec, got %v", err)
	}

	_, err = Build(Step([]float64{0.2, 0.05, 0.1}, []float64{7, 3}), 10, nil)
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("unsorted shifts: expected ErrRateSpec, got %v", err)
	}
}

func TestBuildEnvFunc(t *testing.T) {
	env := []EnvPoint{{T: 0, Value: 10}, {T: 10, Value: 20}}
	hz, err := Build(EnvFunc(func(t, e float64) float64 { return e / 100 }), 10, env)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if got := hz.At(5); math.Abs(got-0.15) > 1e-12 {
		t.Errorf("env hazard at t=5: got %g, expected 0.15", got)
	}
}

func TestBuildEnvMismatches(t *testing.T) {
	env := []EnvPoint{{T: 0, Value: 1}}

	_, err := Build(Constant(0.1), 10, env)
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("env with constant rate: expected ErrRateSpec, got %v", err)
	}

	_, err = Build(TimeFunc(func(x float64) float64 { return 0.1 }), 10, env)
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("env with time function: expected ErrRateSpec, got %v", err)
	}

	_, err = Build(EnvFunc(func(t, e float64) float64 { return e }), 10, nil)
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("env function without samples: expected ErrRateSpec, got %v", err)
	}
}

func TestEnvSeriesInterpolation(t *testing.T) {
	// Samples deliberately unsorted: the series sorts them.
	s, err := NewEnvSeries([]EnvPoint{{T: 10, Value: 30}, {T: 0, Value: 10}, {T: 5, Value: 20}})
	if err != nil {
		t.Fatalf("series failed: %v", err)
	}

	cases := []struct {
		t    float64
		want float64
	}{
		{-1, 10}, {0, 10}, {2.5, 15}, {5, 20}, {7.5, 25}, {10, 30}, {12, 30},
	}
	for _, c := range cases {
		if got := s.At(c.t); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("env at t=%g: got %g, expected %g", c.t, got, c.want)
		}
	}
}

func TestEnvSeriesRejectsDuplicates(t *testing.T) {
	_, err := NewEnvSeries([]EnvPoint{{T: 1, Value: 2}, {T: 1, Value: 3}})
	if !errors.Is(err, bd.ErrRateSpec) {
		t.Errorf("duplicate samples: expected ErrRateSpec, got %v", err)
	}
}
