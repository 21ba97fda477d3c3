package cut

import "errors"

// ErrNoCliques indicates a HyperGraph was built with zero Cliques, which
// can never represent a valid cut.
var ErrNoCliques = errors.New("cut: hypergraph must carry at least one clique")

// ErrEmptyRaw indicates NewRawHyperGraph was called with zero coefficient
// pairs, which can never represent a valid cut.
var ErrEmptyRaw = errors.New("cut: raw hypergraph must carry at least one nonzero coefficient")

// Kind classifies a HyperGraph by its clique/tooth shape (spec.md §3
// "HyperGraph" and §4.4 coefficient-recovery cases).
type Kind int

const (
	// KindSubtour is a single-clique subtour elimination cut.
	KindSubtour Kind = iota
	// KindComb is a handle clique plus one or more tooth cliques, no Teeth.
	KindComb
	// KindDomino is a handle clique plus a non-empty Teeth list.
	KindDomino
	// KindNon is a cut whose coefficients are not expressible as a
	// clique/tooth crossing count (a branch constraint or a Gomory
	// cut rounded from an existing row): it carries a direct
	// edge-to-coefficient table instead of Cliques/Teeth.
	KindNon
)

// HyperGraph is one generalized cut: a sense/rhs inequality over Cliques
// (blossom/comb style) or Cliques+Teeth (simple domino-parity style),
// carried against a saved tour/perm (spec.md §3 "HyperGraph"). TourAge and
// PivotAge are bumped by the owning ExternalCuts pool on each augmentation
// round and each LP pivot respectively, driving the bounded-FIFO eviction
// policy (DESIGN.md "Open Question resolutions").
type HyperGraph struct {
	Sense Sense
	Rhs   float64

	Cliques []*Clique
	Teeth   []*Tooth // non-empty only for KindDomino

	// raw holds a direct node-pair -> coefficient table for KindNon cuts,
	// keyed by normalized (min,max) node id pairs. Nil for every other Kind.
	raw map[[2]int]int

	perm []int // saved-tour inverse permutation, shared by all Cliques/Teeth here

	TourAge  int
	PivotAge int
}

// NewHyperGraph builds a HyperGraph from interned cliques (teeth may be nil
// for non-domino cuts).
func NewHyperGraph(sense Sense, rhs float64, perm []int, cliques []*Clique, teeth []*Tooth) (*HyperGraph, error) {
	if len(cliques) == 0 {
		return nil, ErrNoCliques
	}

	return &HyperGraph{
		Sense:   sense,
		Rhs:     rhs,
		Cliques: append([]*Clique(nil), cliques...),
		Teeth:   append([]*Tooth(nil), teeth...),
		perm:    append([]int(nil), perm...),
	}, nil
}

// NewRawHyperGraph builds a KindNon HyperGraph directly from a node-pair
// coefficient table (spec.md §3 "Non (branch constraint or GMI cut not
// expressible via cliques)"): used for cuts whose coefficients come from
// rounding an already-installed row rather than from clique/tooth crossing
// counts, so they carry no Cliques/Teeth and skip perm-based recovery.
func NewRawHyperGraph(sense Sense, rhs float64, pairs map[[2]int]int) (*HyperGraph, error) {
	if len(pairs) == 0 {
		return nil, ErrEmptyRaw
	}

	raw := make(map[[2]int]int, len(pairs))
	for k, v := range pairs {
		if v == 0 {
			continue
		}
		raw[k] = v
	}
	if len(raw) == 0 {
		return nil, ErrEmptyRaw
	}

	return &HyperGraph{Sense: sense, Rhs: rhs, raw: raw}, nil
}

// Kind classifies the cut's shape.
func (h *HyperGraph) Kind() Kind {
	switch {
	case len(h.raw) > 0:
		return KindNon
	case len(h.Teeth) > 0:
		return KindDomino
	case len(h.Cliques) == 1:
		return KindSubtour
	default:
		return KindComb
	}
}

// Handle returns the cut's handle clique, by convention Cliques[0] for both
// comb and domino shapes. Not valid for KindNon.
func (h *HyperGraph) Handle() *Clique { return h.Cliques[0] }

// CoeffOf recovers the LP row coefficient contributed by edge (u,v) under
// this cut (spec.md §4.4 "Cut coefficient recovery"):
//
//   - Subtour/comb (cliques only): the coefficient is the number of cliques
//     the edge crosses (exactly one endpoint inside).
//   - Domino-parity: floor((handleContrib + sum of toothContrib) / 2), where
//     handleContrib is 2/1/0 for both/one/neither endpoint in the handle,
//     and each tooth's contrib is 2 if both endpoints are in its body, 1 if
//     one endpoint is in the body and the other is in the tooth's root, and
//     0 otherwise.
func (h *HyperGraph) CoeffOf(u, v int) int {
	if h.Kind() == KindNon {
		return h.raw[rawKey(u, v)]
	}

	pu, pv := h.perm[u], h.perm[v]

	if h.Kind() != KindDomino {
		crossed := 0
		for _, c := range h.Cliques {
			iu, iv := c.Contains(pu), c.Contains(pv)
			if iu != iv {
				crossed++
			}
		}
		return crossed
	}

	handle := h.Handle()
	hu, hv := handle.Contains(pu), handle.Contains(pv)
	total := 0
	switch {
	case hu && hv:
		total += 2
	case hu || hv:
		total += 1
	}

	for _, t := range h.Teeth {
		bu, bv := t.Body.Contains(pu), t.Body.Contains(pv)
		ru, rv := t.Root.Contains(pu), t.Root.Contains(pv)
		switch {
		case bu && bv:
			total += 2
		case bu && rv, bv && ru:
			total += 1
		}
	}

	return total / 2
}

// rawKey normalizes a node pair into the lookup key KindNon's raw table
// uses, independent of argument order.
func rawKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}
