package abcsearch

import (
	"github.com/corecut/abctsp/graph"
)

// Split produces the two children of parent branching on edge, per
// spec.md §4.8 "Split": one with the edge forced to 0, one forced to 1,
// each carrying a constrained estimate tour and the strong-branch LP
// estimate already computed for that direction. A child for which
// BranchTourFind finds no tour is still returned, with Status already set
// to Pruned and no estimate tour; the error is not passed on.
func Split(g *graph.CoreGraph, parent *BranchNode, edge ScoreTuple) (down, up *BranchNode) {
	baseConstraints := AncestorConstraints(parent)

	downConstraints := append(append([]EdgeConstraint(nil), baseConstraints...), EdgeConstraint{U: edge.U, V: edge.V, Want: false})
	upConstraints := append(append([]EdgeConstraint(nil), baseConstraints...), EdgeConstraint{U: edge.U, V: edge.V, Want: true})

	down = NewChild(parent, edge.U, edge.V, Down, 0, edge.DownObj)
	if seq, length, err := BranchTourFind(g, downConstraints); err != nil {
		down.Status = Pruned
	} else {
		down.EstimateTourLen = length
		down.EstimateSeq = seq
	}

	up = NewChild(parent, edge.U, edge.V, Up, 0, edge.UpObj)
	if seq, length, err := BranchTourFind(g, upConstraints); err != nil {
		up.Status = Pruned
	} else {
		up.EstimateTourLen = length
		up.EstimateSeq = seq
	}

	return down, up
}
