package diversity

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/avelis/cladesim/bd"
	"github.com/avelis/cladesim/engine"
)

func TestExpectedConstantRates(t *testing.T) {
	times := []float64{0, 5, 10, 20}
	got := Expected(1, bd.ConstHazard(0.2), bd.ConstHazard(0.05), times)

	for i, tm := range times {
		want := math.Exp(0.15 * tm)
		if math.Abs(got[i]-want) > 1e-9 {
			t.Errorf("E[N(%g)]: got %.6f, expected %.6f", tm, got[i], want)
		}
	}
}

func TestExpectedMatchesClosedFormForFunctionalRates(t *testing.T) {
	// The same constant rates fed in as functions must agree with the
	// closed form up to quadrature error.
	times := []float64{1, 7, 15}
	lambda := bd.FuncHazard(func(x float64) float64 { return 0.2 })
	mu := bd.FuncHazard(func(x float64) float64 { return 0.05 })
	got := Expected(2, lambda, mu, times)

	for i, tm := range times {
		want := 2 * math.Exp(0.15*tm)
		if math.Abs(got[i]-want) > 1e-4*want {
			t.Errorf("E[N(%g)]: got %.6f, expected %.6f", tm, got[i], want)
		}
	}
}

func lttFixture() *bd.Result {
	// Inverted frame, TMax = 10: lineage 1 spans [0, 10] and survives;
	// lineage 2 born at 6 dies at 2.
	return &bd.Result{
		TMax: 10,
		Lineages: []bd.Lineage{
			{ID: 1, Parent: 0, BirthTime: 10, Extant: true},
			{ID: 2, Parent: 1, BirthTime: 6, Death: bd.OptTime{Time: 2, Known: true}},
		},
	}
}

func TestLTT(t *testing.T) {
	res := lttFixture()

	times := []float64{9, 7, 5, 3, 1, 0}
	want := []int{1, 1, 2, 2, 1, 1}
	got := LTT(res, times)

	for i := range times {
		if got[i] != want[i] {
			t.Errorf("LTT at tau=%g: got %d, expected %d", times[i], got[i], want[i])
		}
	}
}

func TestLTTTracksExpectedDiversityUnderPureBirth(t *testing.T) {
	// Pure birth at rate 0.2 over 10 units: E[N(t)] = exp(0.2 t). The
	// ensemble mean LTT should track the closed form loosely; individual
	// replicates are noisy, so the tolerance is wide.
	cfg := bd.DefaultConfig()
	cfg.Speciation = bd.ConstHazard(0.2)
	cfg.Extinction = bd.ConstHazard(0)
	cfg.TMax = 10

	results, err := engine.NewEnsemble(func(rng *rand.Rand) engine.Engine {
		return engine.NewConstant(rng)
	}, 200, 500).Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	// Forward times 4 and 8 are inverted-frame taus 6 and 2.
	taus := []float64{6, 2}
	forward := []float64{4, 8}
	want := Expected(1, cfg.Speciation, cfg.Extinction, forward)

	for j := range taus {
		sum := 0.0
		for _, res := range results {
			sum += float64(LTT(res, taus[j:j+1])[0])
		}
		mean := sum / float64(len(results))
		if math.Abs(mean-want[j]) > 0.35*want[j] {
			t.Errorf("mean LTT at forward t=%g: got %.3f, expected about %.3f",
				forward[j], mean, want[j])
		}
	}
}
