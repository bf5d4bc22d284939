// Package clade partitions simulation results into sub-trees.
package clade

import (
	"fmt"

	"github.com/avelis/cladesim/bd"
)

// Extract returns the clade rooted at the lineage with the given id: the
// lineage itself plus all its descendants, re-indexed 1..k in birth
// order. Because parents always precede children in a result, membership
// resolves in a single forward scan. The extracted root keeps its birth
// time but loses its parent, so it reports as a root lineage.
func Extract(res *bd.Result, rootID int) (*bd.Result, error) {
	if rootID < 1 || rootID > res.Len() {
		return nil, fmt.Errorf("clade: lineage id %d out of range [1, %d]", rootID, res.Len())
	}

	newID := make(map[int]int, 8)
	out := &bd.Result{TMax: res.TMax}

	for _, l := range res.Lineages {
		if l.ID != rootID {
			if _, ok := newID[l.Parent]; !ok {
				continue
			}
		}
		id := len(out.Lineages) + 1
		newID[l.ID] = id

		kept := l
		kept.ID = id
		if l.ID == rootID {
			kept.Parent = 0
		} else {
			kept.Parent = newID[l.Parent]
		}
		out.Lineages = append(out.Lineages, kept)
	}
	return out, nil
}

// Partition splits a multi-root result into one clade per root lineage,
// in root birth order.
func Partition(res *bd.Result) ([]*bd.Result, error) {
	var out []*bd.Result
	for _, l := range res.Lineages {
		if !l.Root() {
			continue
		}
		c, err := Extract(res, l.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
