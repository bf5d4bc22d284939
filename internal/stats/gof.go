// Package stats provides goodness-of-fit helpers for validating sampled
// waiting-time distributions against their closed forms.
package stats

import (
	"math"
	"sort"
)

// KSDistance returns the Kolmogorov-Smirnov statistic between the
// empirical distribution of samples and the theoretical cdf.
func KSDistance(samples []float64, cdf func(float64) float64) float64 {
	xs := append([]float64(nil), samples...)
	sort.Float64s(xs)

	n := float64(len(xs))
	d := 0.0
	for i, x := range xs {
		f := cdf(x)
		hi := float64(i+1)/n - f
		lo := f - float64(i)/n
		if hi > d {
			d = hi
		}
		if lo > d {
			d = lo
		}
	}
	return d
}

// Mean returns the sample mean.
func Mean(samples []float64) float64 {
	sum := 0.0
	for _, x := range samples {
		sum += x
	}
	return sum / float64(len(samples))
}

// ExpCDF returns the cdf of an Exponential(rate) distribution.
func ExpCDF(rate float64) func(float64) float64 {
	return func(x float64) float64 {
		if x < 0 {
			return 0
		}
		return 1 - math.Exp(-rate*x)
	}
}

// WeibullCDF returns the cdf of a Weibull(shape, scale) distribution.
func WeibullCDF(shape, scale float64) func(float64) float64 {
	return func(x float64) float64 {
		if x < 0 {
			return 0
		}
		return 1 - math.Exp(-math.Pow(x/scale, shape))
	}
}
