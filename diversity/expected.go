// Package diversity provides closed-form diversity expectations and
// lineage-through-time counts, used as validation oracles for the
// stochastic engines.
package diversity

import (
	"math"

	"github.com/avelis/cladesim/bd"
	"github.com/avelis/cladesim/numeric"
)

// Expected returns E[N(t)] = n0 * exp(int_0^t (lambda - mu)) at each of
// the given forward times. Constant rates use the closed form; anything
// else integrates the net diversification rate numerically.
func Expected(n0 float64, lambda, mu bd.Hazard, times []float64) []float64 {
	out := make([]float64, len(times))
	if lambda.IsConstant() && mu.IsConstant() {
		r := lambda.Constant() - mu.Constant()
		for i, t := range times {
			out[i] = n0 * math.Exp(r*t)
		}
		return out
	}
	net := func(t float64) float64 { return lambda.At(t) - mu.At(t) }
	for i, t := range times {
		out[i] = n0 * math.Exp(numeric.Trapezoid(net, 0, t, numeric.DefaultPanels))
	}
	return out
}

// LTT counts the lineages alive at each inverted-frame time (TMax is the
// root, 0 the present). A lineage is alive at tau when it was already
// born (birth >= tau) and had not yet died (death < tau, inverted frame).
func LTT(res *bd.Result, times []float64) []int {
	out := make([]int, len(times))
	for i, tau := range times {
		n := 0
		for _, l := range res.Lineages {
			if l.BirthTime < tau {
				continue
			}
			if l.Death.Known && l.Death.Time >= tau {
				continue
			}
			n++
		}
		out[i] = n
	}
	return out
}
