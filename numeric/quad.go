package numeric

// DefaultPanels is the subdivision count for cumulative-hazard quadrature.
// 2000 balances accuracy against the cost of re-integrating inside every
// root-finding iteration; it is a tunable, not a hard requirement.
const DefaultPanels = 2000

// Trapezoid integrates f over [a, b] with n equal panels using the
// composite trapezoid rule. Returns 0 when b <= a.
func Trapezoid(f func(float64) float64, a, b float64, n int) float64 {
	if b <= a {
		return 0
	}
	if n < 1 {
		n = 1
	}
	h := (b - a) / float64(n)
	sum := 0.5 * (f(a) + f(b))
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*h)
	}
	return sum * h
}
