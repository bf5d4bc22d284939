package engine

import "github.com/avelis/cladesim/bd"

// drawer produces waiting times for one lineage. now is the current
// simulation clock, origin the lineage's birth time (the reference for
// age-dependent hazards).
type drawer interface {
	speciationWait(now, origin float64) (float64, error)
	extinctionWait(now, origin float64) (float64, error)
}

// lineageState is a lineage during a forward-time attempt, before the
// accepted attempt is inverted into a bd.Result.
type lineageState struct {
	birth  float64
	parent int
	death  bd.OptTime
	extant bool
}

// runAttempt performs one full stochastic pass of the birth-death process
// and returns the result with times inverted (TMax - t), so the root sits
// at TMax and the present at 0.
//
// The worklist is processed strictly in birth order and children are
// appended at the tail, which guarantees every parent id is smaller than
// its children's ids.
func runAttempt(cfg bd.Config, d drawer) (*bd.Result, error) {
	work := make([]lineageState, 0, 4*cfg.N0)
	for i := 0; i < cfg.N0; i++ {
		work = append(work, lineageState{extant: true})
	}

	for i := 0; i < len(work); i++ {
		birth := work[i].birth

		extWait, err := d.extinctionWait(birth, birth)
		if err != nil {
			return nil, err
		}
		death := birth + extWait

		specWait, err := d.speciationWait(birth, birth)
		if err != nil {
			return nil, err
		}
		now := birth
		next := now + specWait

		// Each waiting time is a fresh renewal draw from the current
		// clock, not a restart at the lineage's origin.
		for next < death && next < cfg.TMax {
			work = append(work, lineageState{birth: next, parent: i + 1, extant: true})
			now = next
			specWait, err = d.speciationWait(now, birth)
			if err != nil {
				return nil, err
			}
			next = now + specWait
		}

		if death > cfg.TMax {
			work[i].extant = true
			if cfg.TrueExtinctionTimes {
				work[i].death = bd.OptTime{Time: death, Known: true}
			}
		} else {
			work[i].extant = false
			work[i].death = bd.OptTime{Time: death, Known: true}
		}
	}

	res := &bd.Result{
		TMax:     cfg.TMax,
		Lineages: make([]bd.Lineage, len(work)),
	}
	for i, w := range work {
		l := bd.Lineage{
			ID:        i + 1,
			Parent:    w.parent,
			BirthTime: cfg.TMax - w.birth,
			Extant:    w.extant,
		}
		if w.death.Known {
			l.Death = bd.OptTime{Time: cfg.TMax - w.death.Time, Known: true}
		}
		res.Lineages[i] = l
	}
	return res, nil
}

// sizeMetric is the quantity compared against the acceptance interval.
func sizeMetric(res *bd.Result, extantOnly bool) int {
	if extantOnly {
		return res.ExtantCount()
	}
	return res.Len()
}
