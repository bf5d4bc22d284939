package bd

import (
	"fmt"
	"math"
)

// SentinelPad is the offset used when serializing unresolved states at the
// package boundary: root lineages report a speciation time of TMax+SentinelPad
// and surviving lineages report an extinction time of -SentinelPad. Internally
// both states are represented explicitly, never by magic values.
const SentinelPad = 0.01

// probePoints is the size of the grid used to check hazards for negativity
// before any simulation work starts.
const probePoints = 50

// Hazard is a nonnegative instantaneous event rate over simulation time.
// It is either a bare scalar or a unary function of time, resolved once by
// the rate builder so the sampler never has to probe its shape.
type Hazard struct {
	constant bool
	value    float64
	fn       func(t float64) float64
}

// ConstHazard returns a time-invariant hazard.
func ConstHazard(v float64) Hazard {
	return Hazard{constant: true, value: v}
}

// FuncHazard returns a hazard evaluated through f.
func FuncHazard(f func(t float64) float64) Hazard {
	return Hazard{fn: f}
}

// At evaluates the hazard at time t.
func (h Hazard) At(t float64) float64 {
	if h.constant {
		return h.value
	}
	return h.fn(t)
}

// IsConstant reports whether the hazard is a bare scalar.
func (h Hazard) IsConstant() bool { return h.constant }

// Defined reports whether the hazard was actually supplied; the zero
// value is not a usable hazard.
func (h Hazard) Defined() bool { return h.constant || h.fn != nil }

// Constant returns the scalar value of a constant hazard.
func (h Hazard) Constant() float64 { return h.value }

// Shape is an optional Weibull shape parameter, scalar or time-varying.
// When present, the corresponding hazard is reinterpreted as a Weibull
// scale in age space rather than a plain exponential rate. The zero value
// means "no age dependence".
type Shape struct {
	set      bool
	constant bool
	value    float64
	fn       func(t float64) float64
}

// ConstShape returns a fixed Weibull shape.
func ConstShape(v float64) Shape {
	return Shape{set: true, constant: true, value: v}
}

// FuncShape returns a time-varying Weibull shape.
func FuncShape(f func(t float64) float64) Shape {
	return Shape{set: true, fn: f}
}

// Present reports whether a shape was supplied.
func (s Shape) Present() bool { return s.set }

// At evaluates the shape at time t.
func (s Shape) At(t float64) float64 {
	if s.constant {
		return s.value
	}
	return s.fn(t)
}

// OptTime is an explicitly optional time value.
type OptTime struct {
	Time  float64
	Known bool
}

// Lineage is one simulated species, identified by 1-based birth order.
// Times are stored in the inverted frame of the accepted result: the root
// of the process sits at TMax and the present at 0.
type Lineage struct {
	ID        int
	Parent    int // 0 for root lineages
	BirthTime float64
	Death     OptTime
	Extant    bool
}

// Root reports whether the lineage has no parent.
func (l Lineage) Root() bool { return l.Parent == 0 }

// SizeRange is the acceptance interval of the rejection loop. Max may be
// +Inf for an unbounded target.
type SizeRange struct {
	Min float64
	Max float64
}

// UnboundedSize accepts any lineage count.
func UnboundedSize() SizeRange {
	return SizeRange{Min: 0, Max: math.Inf(1)}
}

// Contains reports whether n falls within the interval (inclusive).
func (r SizeRange) Contains(n int) bool {
	return float64(n) >= r.Min && float64(n) <= r.Max
}

func (r SizeRange) valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && r.Min >= 0 && r.Min <= r.Max
}

// Config drives one birth-death simulation.
type Config struct {
	N0                  int
	Speciation          Hazard
	Extinction          Hazard
	SpeciationShape     Shape
	ExtinctionShape     Shape
	TMax                float64
	Size                SizeRange
	CountExtantOnly     bool
	Fast                bool
	TrueExtinctionTimes bool
}

// DefaultConfig returns a config with fast sampling enabled and no size
// constraint.
func DefaultConfig() Config {
	return Config{
		N0:   1,
		Size: UnboundedSize(),
		Fast: true,
	}
}

// Validate checks the config before any simulation work: probes both
// hazards for negativity on a coarse grid over [0, TMax], and rejects a
// non-positive initial count, a malformed size range, or a non-finite
// horizon. Infinite horizons stay available to direct sampler callers;
// the engines need a finite one to invert times and to keep a
// supercritical worklist from growing without bound.
func (c Config) Validate() error {
	if c.N0 < 1 {
		return fmt.Errorf("%w: n0=%d", ErrBadInitialCount, c.N0)
	}
	if !(c.TMax > 0) {
		return fmt.Errorf("%w: tMax=%g", ErrBadHorizon, c.TMax)
	}
	if math.IsInf(c.TMax, 1) {
		if c.Fast {
			return ErrInfiniteHorizon
		}
		return fmt.Errorf("%w: tMax=+Inf", ErrBadHorizon)
	}
	if !c.Size.valid() {
		return fmt.Errorf("%w: [%g, %g]", ErrBadSizeRange, c.Size.Min, c.Size.Max)
	}
	if !c.Speciation.Defined() || !c.Extinction.Defined() {
		return fmt.Errorf("%w: missing hazard", ErrRateSpec)
	}
	for i := 0; i < probePoints; i++ {
		t := c.TMax * float64(i) / float64(probePoints-1)
		if c.Speciation.At(t) < 0 {
			return fmt.Errorf("%w: speciation rate at t=%g", ErrNegativeRate, t)
		}
		if c.Extinction.At(t) < 0 {
			return fmt.Errorf("%w: extinction rate at t=%g", ErrNegativeRate, t)
		}
	}
	return nil
}

// Result is one accepted simulation attempt. Lineages are ordered by
// birth, so Lineages[i].ID == i+1 and every parent precedes its children.
type Result struct {
	TMax     float64
	Lineages []Lineage
}

// Len returns the total number of lineages born.
func (r *Result) Len() int { return len(r.Lineages) }

// ExtantCount returns the number of lineages surviving past the horizon.
func (r *Result) ExtantCount() int {
	n := 0
	for _, l := range r.Lineages {
		if l.Extant {
			n++
		}
	}
	return n
}

// SpeciationTimes returns birth times by birth order. Root lineages carry
// the no-parent-time sentinel TMax+SentinelPad.
func (r *Result) SpeciationTimes() []float64 {
	out := make([]float64, len(r.Lineages))
	for i, l := range r.Lineages {
		if l.Root() {
			out[i] = r.TMax + SentinelPad
		} else {
			out[i] = l.BirthTime
		}
	}
	return out
}

// ExtinctionTimes returns death times by birth order. Lineages whose
// extinction is unresolved carry the not-yet-extinct sentinel -SentinelPad.
// When the engine ran with TrueExtinctionTimes the literal draw is reported
// instead, even for survivors.
func (r *Result) ExtinctionTimes() []float64 {
	out := make([]float64, len(r.Lineages))
	for i, l := range r.Lineages {
		if l.Death.Known {
			out[i] = l.Death.Time
		} else {
			out[i] = -SentinelPad
		}
	}
	return out
}

// ParentIDs returns parent ids by birth order, 0 for roots.
func (r *Result) ParentIDs() []int {
	out := make([]int, len(r.Lineages))
	for i, l := range r.Lineages {
		out[i] = l.Parent
	}
	return out
}

// ExtantFlags returns survival flags by birth order.
func (r *Result) ExtantFlags() []bool {
	out := make([]bool, len(r.Lineages))
	for i, l := range r.Lineages {
		out[i] = l.Extant
	}
	return out
}
