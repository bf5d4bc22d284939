package engine

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/avelis/cladesim/bd"
)

// checkForest asserts the parent/child relation of an accepted result:
// every non-root parent id precedes its child and walking parents always
// terminates at a root.
func checkForest(res *bd.Result) {
	for i, l := range res.Lineages {
		Expect(l.ID).To(Equal(i + 1))
		if l.Root() {
			continue
		}
		Expect(l.Parent).To(BeNumerically("<", l.ID))

		steps := 0
		for id := l.ID; id != 0; id = res.Lineages[id-1].Parent {
			steps++
			Expect(steps).To(BeNumerically("<=", res.Len()))
		}
	}
}

func newSeededGeneral(seed int64) *General {
	e := NewGeneral(rand.New(rand.NewSource(seed)))
	e.SetPanels(150)
	return e
}

var _ = Describe("General engine", func() {
	var cfg bd.Config

	BeforeEach(func() {
		cfg = bd.DefaultConfig()
		cfg.Speciation = bd.ConstHazard(0.3)
		cfg.Extinction = bd.ConstHazard(0.1)
		cfg.TMax = 10
	})

	It("produces a birth-ordered forest", func() {
		res, err := newSeededGeneral(2).Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(BeNumerically(">=", 1))
		checkForest(res)
	})

	It("inverts times so the root sits at TMax", func() {
		res, err := newSeededGeneral(4).Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(res.Lineages[0].BirthTime).To(Equal(cfg.TMax))
		for _, l := range res.Lineages {
			Expect(l.BirthTime).To(BeNumerically(">=", 0))
			Expect(l.BirthTime).To(BeNumerically("<=", cfg.TMax))
			if l.Death.Known {
				Expect(l.Death.Time).To(BeNumerically("<=", l.BirthTime))
			}
		}
	})

	It("honors the size range on accepted results", func() {
		cfg.Size = bd.SizeRange{Min: 3, Max: math.Inf(1)}
		res, err := newSeededGeneral(6).Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(BeNumerically(">=", 3))
		checkForest(res)
	})

	It("counts extant lineages when asked to", func() {
		cfg.Size = bd.SizeRange{Min: 2, Max: math.Inf(1)}
		cfg.CountExtantOnly = true
		res, err := newSeededGeneral(8).Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.ExtantCount()).To(BeNumerically(">=", 2))
	})

	It("gives up after exactly the retry cap", func() {
		cfg.TMax = 1
		cfg.Speciation = bd.ConstHazard(0.01)
		cfg.Size = bd.SizeRange{Min: 1e9, Max: math.Inf(1)}

		e := newSeededGeneral(10)
		e.SetRetryCap(10)

		res, err := e.Simulate(cfg)
		Expect(res).To(BeNil())
		Expect(err).To(MatchError(bd.ErrRetryLimit))

		var limit *bd.RetryLimitError
		Expect(errors.As(err, &limit)).To(BeTrue())
		Expect(limit.Attempts).To(Equal(11))
	})

	It("records literal extinction draws when requested", func() {
		cfg.TrueExtinctionTimes = true
		res, err := newSeededGeneral(12).Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		for _, l := range res.Lineages {
			Expect(l.Death.Known).To(BeTrue())
			if l.Extant {
				// Survivors carry a draw beyond the horizon, negative in
				// the inverted frame.
				Expect(l.Death.Time).To(BeNumerically("<", 0))
			}
		}
	})

	It("rejects negative hazards on the probe grid", func() {
		cfg.Extinction = bd.FuncHazard(func(t float64) float64 { return 0.1 - 0.02*t })
		_, err := newSeededGeneral(1).Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrNegativeRate))
	})

	It("rejects a non-positive initial count", func() {
		cfg.N0 = 0
		_, err := newSeededGeneral(1).Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrBadInitialCount))
	})

	It("rejects a malformed size range", func() {
		cfg.Size = bd.SizeRange{Min: 10, Max: 2}
		_, err := newSeededGeneral(1).Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrBadSizeRange))
	})

	It("rejects an infinite horizon even without fast sampling", func() {
		// Times are inverted against TMax at acceptance, and a
		// supercritical process over an unbounded horizon would never
		// stop spawning work.
		cfg.Fast = false
		cfg.TMax = math.Inf(1)
		_, err := newSeededGeneral(1).Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrBadHorizon))
	})

	It("rejects an infinite horizon in fast mode", func() {
		cfg.TMax = math.Inf(1)
		_, err := newSeededGeneral(1).Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrInfiniteHorizon))
	})

	It("starts every root lineage of a multi-root process at TMax", func() {
		cfg.N0 = 3
		res, err := newSeededGeneral(14).Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())

		roots := 0
		for _, l := range res.Lineages {
			if l.Root() {
				roots++
				Expect(l.BirthTime).To(Equal(cfg.TMax))
			}
		}
		Expect(roots).To(Equal(3))
	})
})

var _ = Describe("Constant engine", func() {
	var cfg bd.Config

	BeforeEach(func() {
		cfg = bd.DefaultConfig()
		cfg.Speciation = bd.ConstHazard(0.3)
		cfg.Extinction = bd.ConstHazard(0.1)
		cfg.TMax = 10
	})

	It("matches the general engine's output contract", func() {
		e := NewConstant(rand.New(rand.NewSource(3)))
		res, err := e.Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Len()).To(BeNumerically(">=", 1))
		checkForest(res)

		for _, l := range res.Lineages {
			Expect(l.BirthTime).To(BeNumerically(">=", 0))
			Expect(l.BirthTime).To(BeNumerically("<=", cfg.TMax))
		}
	})

	It("refuses non-scalar hazards", func() {
		cfg.Speciation = bd.FuncHazard(func(t float64) float64 { return 0.3 })
		e := NewConstant(rand.New(rand.NewSource(3)))
		_, err := e.Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrRateSpec))
	})

	It("refuses age shapes", func() {
		cfg.ExtinctionShape = bd.ConstShape(2)
		e := NewConstant(rand.New(rand.NewSource(3)))
		_, err := e.Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrRateSpec))
	})

	It("reports validation errors before rate-shape misuse", func() {
		cfg.N0 = 0
		cfg.Speciation = bd.FuncHazard(func(t float64) float64 { return 0.3 })
		e := NewConstant(rand.New(rand.NewSource(3)))
		_, err := e.Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrBadInitialCount))
	})

	It("rejects an infinite horizon even without fast sampling", func() {
		cfg.Fast = false
		cfg.TMax = math.Inf(1)
		cfg.Speciation = bd.ConstHazard(0)
		cfg.Extinction = bd.ConstHazard(0.5)
		e := NewConstant(rand.New(rand.NewSource(1)))
		_, err := e.Simulate(cfg)
		Expect(err).To(MatchError(bd.ErrBadHorizon))
	})

	It("never goes extinct under a pure-birth process", func() {
		cfg.Extinction = bd.ConstHazard(0)
		e := NewConstant(rand.New(rand.NewSource(5)))
		res, err := e.Simulate(cfg)
		Expect(err).NotTo(HaveOccurred())
		for _, l := range res.Lineages {
			Expect(l.Extant).To(BeTrue())
			Expect(l.Death.Known).To(BeFalse())
		}
	})

	It("respects the retry cap", func() {
		cfg.TMax = 1
		cfg.Speciation = bd.ConstHazard(0.01)
		cfg.Size = bd.SizeRange{Min: 1e9, Max: math.Inf(1)}

		e := NewConstant(rand.New(rand.NewSource(7)))
		e.SetRetryCap(5)

		_, err := e.Simulate(cfg)
		var limit *bd.RetryLimitError
		Expect(errors.As(err, &limit)).To(BeTrue())
		Expect(limit.Attempts).To(Equal(6))
	})
})
