// Package cut implements the reference-counted hypergraph representation of
// cuts (spec.md §3 "Cut components"): Clique, Tooth, the interning
// CliqueBank/ToothBank, HyperGraph, and ExternalCuts. Cut identity (interned
// segment-list value) is decoupled from LP row position, exactly as
// spec.md §9 "Cut hypergraph vs LP row indexing" requires: cliques are
// defined relative to a saved tour/perm captured at discovery time, never
// against whatever tour is currently active.
//
// Grounded on original_source/includes/cliq.hpp, includes/hypergraph.hpp,
// setbank.cpp/.hpp (the intern-by-value-with-refcount pattern), adapted to
// Go's explicit-ownership idiom (map-keyed interning, explicit Release)
// the way katalvlaran-lvlath/core guards its maps with mutexes.
package cut

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for clique construction.
var (
	// ErrEmptyNodeSet indicates an attempt to build a Clique from zero nodes.
	ErrEmptyNodeSet = errors.New("cut: clique node set must be non-empty")

	// ErrFullNodeSet indicates an attempt to build a Clique spanning every
	// tour node (not a proper subset, never a valid cut component).
	ErrFullNodeSet = errors.New("cut: clique must be a proper subset of the tour")

	// ErrDuplicateNode indicates a repeated node in the input node set.
	ErrDuplicateNode = errors.New("cut: duplicate node in clique construction")
)

// Segment is an inclusive tour-position range [Lo,Hi], Lo<=Hi, relative to
// a SAVED tour (spec.md §3 "Clique"). A tour-consecutive run that wraps
// past position n-1 to 0 is stored as one Segment whose Hi is n or more
// (positions past n-1 count on from 0), in place of rotating the saved
// tour's origin to avoid the wrap (documented in DESIGN.md).
type Segment struct {
	Lo, Hi int
}

// Clique is a subset of tour nodes encoded as an ordered, minimal list of
// tour-consecutive position segments against a specific saved tour
// (spec.md §3 "Clique"). Two Cliques are equal iff their segment lists are
// equal (bank-enforced; see CliqueBank).
type Clique struct {
	segs []Segment
	n    int // saved-tour length, needed to interpret segments
}

// Segments returns the clique's segment list (read-only view).
func (c *Clique) Segments() []Segment { return append([]Segment(nil), c.segs...) }

// Size returns the number of nodes the clique contains.
func (c *Clique) Size() int {
	total := 0
	for _, s := range c.segs {
		total += s.Hi - s.Lo + 1
	}

	return total
}

// Contains reports whether tour position pos falls inside the clique. A
// segment with Hi>=n denotes a wraparound run (see mergePositions), so pos
// is also tried shifted up by n.
func (c *Clique) Contains(pos int) bool {
	for _, s := range c.segs {
		if pos >= s.Lo && pos <= s.Hi {
			return true
		}
		if s.Hi >= c.n && pos+c.n >= s.Lo && pos+c.n <= s.Hi {
			return true
		}
	}

	return false
}

// ContainsNode reports whether node v (looked up via perm, the saved tour's
// inverse permutation) is in the clique.
func (c *Clique) ContainsNode(perm []int, v int) bool {
	return c.Contains(perm[v])
}

// Nodes expands the clique's segments back into a node list against the
// given saved tour, the inverse of NewCliqueFromNodes (spec.md §8 round-trip
// property 7).
func (c *Clique) Nodes(savedTour []int) []int {
	out := make([]int, 0, c.Size())
	for _, s := range c.segs {
		for p := s.Lo; p <= s.Hi; p++ {
			out = append(out, savedTour[p%c.n])
		}
	}

	return out
}

// key returns the canonical string encoding used for bank interning.
func (c *Clique) key() string {
	var b strings.Builder
	for _, s := range c.segs {
		fmt.Fprintf(&b, "%d:%d,", s.Lo, s.Hi)
	}

	return b.String()
}

// NewCliqueFromNodes builds the unique minimal Segment list for the given
// literal node set against savedTour/perm (spec.md §3: "A Clique constructed
// from literal nodes against a given tour produces the unique minimal
// segment list"). Nodes must be distinct and form a proper, non-empty subset.
func NewCliqueFromNodes(nodes []int, savedTour []int, perm []int) (*Clique, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyNodeSet
	}
	n := len(savedTour)
	if len(nodes) >= n {
		return nil, ErrFullNodeSet
	}

	positions := make([]int, len(nodes))
	seen := make(map[int]bool, len(nodes))
	for i, v := range nodes {
		if seen[v] {
			return nil, ErrDuplicateNode
		}
		seen[v] = true
		positions[i] = perm[v]
	}

	return &Clique{segs: mergePositions(positions, n), n: n}, nil
}

// newCliqueFromSegments builds a Clique directly from a caller-supplied
// (already minimal) segment list, used by separators constructing cuts from
// position ranges rather than literal node lists (e.g. the SEC/comb bridges).
func newCliqueFromSegments(segs []Segment, n int) *Clique {
	cp := append([]Segment(nil), segs...)

	return &Clique{segs: cp, n: n}
}

// mergePositions sorts tour positions and merges consecutive runs (including
// a single wraparound join of the first and last run, the common case for a
// clique that happens to straddle position 0) into minimal segments.
func mergePositions(positions []int, n int) []Segment {
	sorted := append([]int(nil), positions...)
	insertionSort(sorted)

	var segs []Segment
	start := sorted[0]
	prev := sorted[0]
	for _, p := range sorted[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		segs = append(segs, Segment{Lo: start, Hi: prev})
		start = p
		prev = p
	}
	segs = append(segs, Segment{Lo: start, Hi: prev})

	// Join a wraparound: if the first segment starts at 0 and the last ends
	// at n-1, and there's more than one segment, they are tour-adjacent.
	if len(segs) > 1 && segs[0].Lo == 0 && segs[len(segs)-1].Hi == n-1 {
		last := segs[len(segs)-1]
		segs = segs[:len(segs)-1]
		segs[0] = Segment{Lo: last.Lo, Hi: segs[0].Hi + n} // encode wrap via Hi>=n; Contains and Nodes read such positions mod n
	}

	return segs
}

func insertionSort(a []int) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
