// Package graph defines the immutable problem instance and the mutable
// core edge set the cutting-plane engine pivots over.
//
// Instance is the node-count and edge-length oracle fixed for the life of a
// solve. CoreGraph is the dynamic sparse edge set the LP currently has
// columns for; edges are added by the pricer and removed by elimination,
// but every tour edge of the current best tour is always present (spec
// invariant). Edge indices are stable except across explicit bulk removal,
// exactly like lvlath's core.Graph edge slice before a Clone/compaction.
package graph

import (
	"errors"
	"math"
)

// Sentinel errors for graph/instance construction and mutation.
var (
	// ErrBadNodeCount indicates a non-positive or otherwise invalid node count.
	ErrBadNodeCount = errors.New("graph: node count must be >= 2")

	// ErrNodeOutOfRange indicates a node index outside [0, n).
	ErrNodeOutOfRange = errors.New("graph: node index out of range")

	// ErrSelfLoop indicates an edge endpoint pair with end[0] == end[1].
	ErrSelfLoop = errors.New("graph: self-loop edge not allowed")

	// ErrDuplicateEdge indicates an edge between the same endpoint pair already exists.
	ErrDuplicateEdge = errors.New("graph: duplicate edge")

	// ErrEdgeIndexOutOfRange indicates an edge index outside the current CoreGraph.
	ErrEdgeIndexOutOfRange = errors.New("graph: edge index out of range")

	// ErrTourEdgeRemoval indicates an attempt to remove an edge required by the invariant
	// that every current best-tour edge remains present in CoreGraph.
	ErrTourEdgeRemoval = errors.New("graph: cannot remove an edge used by the active tour")
)

// LengthFunc is the edge-length oracle for the fixed problem instance.
// Implementations must be symmetric (LengthFunc(u,v) == LengthFunc(v,u))
// and side-effect free.
type LengthFunc func(u, v int) int64

// Instance is the immutable TSP instance: node count plus length oracle.
// It never mutates after construction; CoreGraph is the mutable layer on top.
type Instance struct {
	n      int
	length LengthFunc
}

// NewInstance builds an Instance over n nodes (n >= 2) with the given
// symmetric length oracle. The oracle is called lazily; NewInstance does
// not itself probe every pair.
func NewInstance(n int, length LengthFunc) (*Instance, error) {
	if n < 2 {
		return nil, ErrBadNodeCount
	}
	if length == nil {
		return nil, errors.New("graph: length oracle must not be nil")
	}

	return &Instance{n: n, length: length}, nil
}

// N returns the node count.
func (ins *Instance) N() int { return ins.n }

// Length returns the length of edge (u,v); both endpoints must be in [0,n).
func (ins *Instance) Length(u, v int) (int64, error) {
	if u < 0 || u >= ins.n || v < 0 || v >= ins.n {
		return 0, ErrNodeOutOfRange
	}

	return ins.length(u, v), nil
}

// EuclideanLengthFunc builds a LengthFunc over integer-rounded Euclidean
// distances for the given point set, the standard TSPLIB EUC_2D convention.
func EuclideanLengthFunc(pts [][2]float64) LengthFunc {
	return func(u, v int) int64 {
		dx := pts[u][0] - pts[v][0]
		dy := pts[u][1] - pts[v][1]
		d := dx*dx + dy*dy
		return int64(isqrtRound(d))
	}
}

// isqrtRound rounds sqrt(x) to the nearest integer using float64 math,
// matching TSPLIB's EUC_2D rounding convention closely enough for the
// integer-length instances this engine targets.
func isqrtRound(x float64) float64 {
	if x <= 0 {
		return 0
	}

	r := math.Sqrt(x)
	return float64(int64(r + 0.5))
}
