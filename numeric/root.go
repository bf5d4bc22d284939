package numeric

// Bracket expansion and bisection bounds. Sixty doublings stretch the
// initial span by a factor of 2^60; hazards degenerate enough to push a
// root beyond that are answered with the boundary value instead of an
// error.
const (
	maxExpand = 60
	maxBisect = 90
)

// SolveMonotone finds t in [lo, hi] with f(t) = 0 for a nondecreasing f
// with f(lo) <= 0. When f(hi) < 0 the bracket is expanded upward by
// doubling its span until it contains a sign change; if no sign change
// appears within the expansion bound, the upper boundary is returned as
// the root. This never fails: unreachable targets are legitimate under
// extreme hazards and are resolved to the nearest bracket edge.
func SolveMonotone(f func(float64) float64, lo, hi float64) float64 {
	if f(lo) > 0 {
		return lo
	}
	if hi <= lo {
		hi = lo + 1
	}

	span := hi - lo
	fhi := f(hi)
	for i := 0; fhi < 0 && i < maxExpand; i++ {
		span *= 2
		hi = lo + span
		fhi = f(hi)
	}
	if fhi < 0 {
		return hi
	}

	tol := 1e-9 * (1 + span)
	for i := 0; i < maxBisect && hi-lo > tol; i++ {
		mid := lo + (hi-lo)/2
		if f(mid) < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo + (hi-lo)/2
}
