// Package tour implements ActiveTour, the engine's current incumbent:
// node sequence, permutation, edge incidence vector, and LP basis handle
// (spec.md §3 "ActiveTour"). It follows the validation/canonicalization
// idiom of katalvlaran-lvlath/tsp/tour.go, generalized from a post-hoc
// TSResult check into a live, mutable structure the cutting-plane engine
// rebuilds on every augmenting pivot.
package tour

import (
	"errors"

	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/relax"
)

// Sentinel errors for ActiveTour construction/validation.
var (
	// ErrBadTourLength indicates a tour slice whose length isn't N.
	ErrBadTourLength = errors.New("tour: tour length does not match node count")

	// ErrNotPermutation indicates the tour slice is not a permutation of [0,N).
	ErrNotPermutation = errors.New("tour: node sequence is not a permutation")

	// ErrMissingTourEdge indicates a tour edge (i,i+1) is absent from CoreGraph,
	// violating the spec invariant that every best-tour edge is present.
	ErrMissingTourEdge = errors.New("tour: tour edge missing from core graph")
)

// ActiveTour is the current incumbent Hamiltonian cycle plus the LP state
// anchored at it (spec.md §3 "ActiveTour").
type ActiveTour struct {
	length int64 // sum of tour edge lengths

	seq  []int // seq[0..n-1], cyclic permutation of nodes
	perm []int // perm[seq[i]] == i

	// incidence is aligned with the owning CoreGraph's edge indices; values
	// are 0/1 for an integral tour, but may hold fractional pivot values
	// while ActiveTour is being constructed mid-pivot (spec.md §3).
	incidence []float64

	// basis is the LP column/row basic-or-at-bound status snapshot this
	// tour is anchored at; nil until CoreLP installs one.
	basis *relax.Basis
}

// New builds an ActiveTour from a node sequence against g, computing the
// incidence vector and tour length. Every consecutive pair (seq[i],seq[i+1])
// must already be an edge in g (spec.md §3 invariant).
func New(g *graph.CoreGraph, seq []int) (*ActiveTour, error) {
	n := g.N()
	if len(seq) != n {
		return nil, ErrBadTourLength
	}

	perm := make([]int, n)
	seen := make([]bool, n)
	for i, v := range seq {
		if v < 0 || v >= n || seen[v] {
			return nil, ErrNotPermutation
		}
		seen[v] = true
		perm[v] = i
	}

	incidence := make([]float64, g.EdgeCount())
	var total int64
	for i := 0; i < n; i++ {
		u, v := seq[i], seq[(i+1)%n]
		idx, ok := g.HasEdge(u, v)
		if !ok {
			return nil, ErrMissingTourEdge
		}
		incidence[idx] = 1
		e, _ := g.Edge(idx)
		total += e.Length
	}

	return &ActiveTour{
		length:    total,
		seq:       append([]int(nil), seq...),
		perm:      perm,
		incidence: incidence,
	}, nil
}

// Length returns the current tour length.
func (t *ActiveTour) Length() int64 { return t.length }

// Sequence returns the cyclic node order (read-only view).
func (t *ActiveTour) Sequence() []int { return t.seq }

// Perm returns the inverse permutation: Perm()[v] is v's tour position.
func (t *ActiveTour) Perm() []int { return t.perm }

// Incidence returns the edge incidence vector aligned with the owning
// CoreGraph's edge indices.
func (t *ActiveTour) Incidence() []float64 { return t.incidence }

// Basis returns the LP basis this tour is anchored at, or nil if none has
// been installed yet.
func (t *ActiveTour) Basis() *relax.Basis { return t.basis }

// SetBasis installs an LP basis snapshot as this tour's anchor.
func (t *ActiveTour) SetBasis(b *relax.Basis) { t.basis = b }

// Before reports whether tour position of u precedes v when walking forward
// from 'from' (cyclic order), used throughout cut/segment construction.
func (t *ActiveTour) Before(from, u, v int) bool {
	n := len(t.seq)
	pf, pu, pv := t.perm[from], t.perm[u], t.perm[v]
	du := ((pu - pf) % n + n) % n
	dv := ((pv - pf) % n + n) % n

	return du < dv
}

// ResizeIncidence grows or remaps the incidence vector after CoreGraph's
// edge indices change (AddEdge appends / RemoveEdges renumbers), keeping
// ActiveTour's invariant "len(edges()) == CoreGraph.EdgeCount()" (spec.md §8,
// invariant 2). remap may be nil (pure append growth) or the remap slice
// returned by CoreGraph.RemoveEdges (old-index -> new-index, -1 if dropped).
func (t *ActiveTour) ResizeIncidence(newSize int, remap []int) {
	if remap == nil {
		grown := make([]float64, newSize)
		copy(grown, t.incidence)
		t.incidence = grown
		return
	}

	remapped := make([]float64, newSize)
	for old, val := range t.incidence {
		if old >= len(remap) {
			continue
		}
		ni := remap[old]
		if ni < 0 {
			continue
		}
		remapped[ni] = val
	}
	t.incidence = remapped
}
