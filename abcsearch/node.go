// Package abcsearch implements the augment-branch-cut search framework
// (spec.md §4.8 "ABC framework"): branch nodes and their history, strong
// branch-edge selection, constrained branch-tour estimation, pluggable
// node-selection rules, and the Executor tying them to corelp/separator/
// price/meta/gmi for the outer solve loop.
package abcsearch

import (
	"errors"

	"github.com/corecut/abctsp/relax"
)

// Dir is a branch direction: the branching edge is fixed to 0 (Down) or
// fixed to 1 (Up).
type Dir int

const (
	Down Dir = iota
	Up
)

func (d Dir) String() string {
	if d == Up {
		return "Up"
	}
	return "Down"
}

// DirFromInt turns a 0/1 value into a Dir (spec.md §4.8, mirrors
// original_source's dir_from_int).
func DirFromInt(v int) Dir {
	if v != 0 {
		return Up
	}
	return Down
}

// Status is the processing a BranchNode still needs (spec.md §3 "ABC
// BranchNode").
type Status int

const (
	NeedsCut Status = iota
	NeedsBranch
	NeedsPrice
	NeedsRecover
	Pruned
	Done
)

func (s Status) String() string {
	switch s {
	case NeedsCut:
		return "NeedsCut"
	case NeedsBranch:
		return "NeedsBranch"
	case NeedsPrice:
		return "NeedsPrice"
	case NeedsRecover:
		return "NeedsRecover"
	case Pruned:
		return "Pruned"
	case Done:
		return "Done"
	default:
		return "Unknown"
	}
}

// ErrInfeasibleNode indicates a child node was found infeasible at split
// time (spec.md §4.8 "Split": "if the fix-up degrees at any node exceed 2,
// the child is pruned as Infeasible").
var ErrInfeasibleNode = errors.New("abcsearch: branch node is infeasible")

// BranchNode is one subproblem in the search tree (spec.md §3 "ABC
// BranchNode"). The root node has a nil Parent and zero-value edge/Dir.
type BranchNode struct {
	U, V      int // branching edge endpoints; meaningless on the root
	Direction Dir
	Status    Status

	Parent *BranchNode
	Depth  int

	EstimateTourLen int64
	EstimateLPObj   float64
	EstimateSeq     []int // estimate tour sequence built by BranchTourFind at split time

	Basis *relax.Basis // warm-start basis for NeedsPrice/NeedsRecover
}

// NewRoot builds the root branch node.
func NewRoot() *BranchNode {
	return &BranchNode{Status: NeedsCut}
}

// NewChild builds a child of parent, branching on edge (u,v) in direction
// dir, carrying the estimates computed by Split.
func NewChild(parent *BranchNode, u, v int, dir Dir, estimateTourLen int64, estimateLPObj float64) *BranchNode {
	return &BranchNode{
		U:               u,
		V:               v,
		Direction:       dir,
		Status:          NeedsCut,
		Parent:          parent,
		Depth:           parent.Depth + 1,
		EstimateTourLen: estimateTourLen,
		EstimateLPObj:   estimateLPObj,
	}
}

// IsRoot reports whether n is the root problem.
func (n *BranchNode) IsRoot() bool { return n.Parent == nil }

// Visited reports whether n has already been fully processed.
func (n *BranchNode) Visited() bool { return n.Status == Pruned || n.Status == Done }

// TourWorse reports whether a ranks below b under best-tour node selection:
// unvisited nodes always rank above visited ones, and among unvisited nodes
// a shorter estimated tour ranks higher (spec.md §4.8 "Best-tour").
func TourWorse(a, b *BranchNode) bool {
	av, bv := a.Visited(), b.Visited()
	if av != bv {
		return av // a visited, b not: a is worse
	}
	if av && bv {
		return false
	}
	return a.EstimateTourLen > b.EstimateTourLen
}

// BoundWorse reports whether a ranks below b under best-bound node
// selection: unvisited over visited, then lower LP estimate ranks higher
// (spec.md §4.8 "Best-bound").
func BoundWorse(a, b *BranchNode) bool {
	av, bv := a.Visited(), b.Visited()
	if av != bv {
		return av
	}
	if av && bv {
		return false
	}
	return a.EstimateLPObj > b.EstimateLPObj
}
