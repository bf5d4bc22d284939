// Package phylo builds in-memory phylogenies from simulation results.
package phylo

import (
	"fmt"

	"github.com/avelis/cladesim/bd"
)

// Node is one lineage in tree form. Times are in the inverted frame of
// the source result (root at TMax, present at 0): Birth is where the
// lineage's branch starts and End where it stops, so Length = Birth - End.
type Node struct {
	ID       int
	Parent   int // 0 for roots
	Children []int
	Birth    float64
	End      float64
	Length   float64
	Extant   bool
}

// Tree is a phylogeny over birth-ordered nodes; Nodes[i].ID == i+1.
type Tree struct {
	TMax  float64
	Nodes []Node
}

// FromResult converts a result into tree form. Surviving lineages end at
// the present (0); recorded extinction times beyond the horizon (from
// TrueExtinctionTimes runs) are clamped to the present for branch-length
// purposes.
func FromResult(res *bd.Result) (*Tree, error) {
	t := &Tree{
		TMax:  res.TMax,
		Nodes: make([]Node, res.Len()),
	}
	for i, l := range res.Lineages {
		end := 0.0
		if l.Death.Known && l.Death.Time > 0 {
			end = l.Death.Time
		}
		if end > l.BirthTime {
			return nil, fmt.Errorf("phylo: lineage %d dies before its birth", l.ID)
		}
		t.Nodes[i] = Node{
			ID:     l.ID,
			Parent: l.Parent,
			Birth:  l.BirthTime,
			End:    end,
			Length: l.BirthTime - end,
			Extant: l.Extant,
		}
		if l.Parent != 0 {
			if l.Parent >= l.ID {
				return nil, fmt.Errorf("phylo: lineage %d has parent %d out of birth order", l.ID, l.Parent)
			}
			p := &t.Nodes[l.Parent-1]
			p.Children = append(p.Children, l.ID)
		}
	}
	return t, nil
}

// Leaves returns the ids of nodes without children, in birth order.
func (t *Tree) Leaves() []int {
	var out []int
	for _, n := range t.Nodes {
		if len(n.Children) == 0 {
			out = append(out, n.ID)
		}
	}
	return out
}

// PruneExtinct returns the reconstructed tree: extant lineages and their
// ancestors only, re-indexed in birth order. Returns an empty tree when
// nothing survived.
func (t *Tree) PruneExtinct() *Tree {
	keep := make([]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		if !n.Extant {
			continue
		}
		for id := n.ID; id != 0 && !keep[id-1]; id = t.Nodes[id-1].Parent {
			keep[id-1] = true
		}
	}

	newID := make([]int, len(t.Nodes))
	out := &Tree{TMax: t.TMax}
	for i, n := range t.Nodes {
		if !keep[i] {
			continue
		}
		id := len(out.Nodes) + 1
		newID[i] = id

		kept := n
		kept.ID = id
		kept.Children = nil
		if n.Parent != 0 {
			kept.Parent = newID[n.Parent-1]
			p := &out.Nodes[kept.Parent-1]
			p.Children = append(p.Children, id)
		}
		out.Nodes = append(out.Nodes, kept)
	}
	return out
}
