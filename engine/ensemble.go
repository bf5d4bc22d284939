package engine

import (
	"context"
	"math/rand"
	"sync"

	"github.com/avelis/cladesim/bd"
)

// Engine is the common contract of General and Constant.
type Engine interface {
	Simulate(cfg bd.Config) (*bd.Result, error)
}

// Ensemble runs independent replicate simulations, one engine and one
// seeded RNG per replicate. Attempts inside an engine stay sequential;
// replicates share nothing and run concurrently.
type Ensemble struct {
	newEngine func(rng *rand.Rand) Engine
	runs      int
	seedStart int64
}

// NewEnsemble builds an ensemble of runs replicates. Replicate i draws
// from rand.New(rand.NewSource(seedStart+i)), so the same seedStart
// reproduces the same ensemble.
func NewEnsemble(newEngine func(rng *rand.Rand) Engine, runs int, seedStart int64) *Ensemble {
	return &Ensemble{newEngine: newEngine, runs: runs, seedStart: seedStart}
}

// Run executes all replicates and returns their results in replicate
// order. The first error wins; ctx cancellation is checked per replicate.
func (e *Ensemble) Run(ctx context.Context, cfg bd.Config) ([]*bd.Result, error) {
	results := make([]*bd.Result, e.runs)
	errs := make([]error, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			results[idx], errs[idx] = e.newEngine(rng).Simulate(cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
