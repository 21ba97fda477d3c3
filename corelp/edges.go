package corelp

import (
	"fmt"

	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/tour"
)

// AddEdge appends edge (u,v) to both CoreGraph and the Relaxation as one
// atomic step (spec.md §4.1 "Edge add/remove"): the new LP column's cost is
// the Instance-derived edge length, its coefficients are the two degree-row
// 1s at u and v plus the coefficient recovery contribution from every live
// external cut. If reinstate is true, the active tour's basis/incidence are
// re-installed afterward (the tour itself is unaffected by an edge that
// isn't one of its own, but the basis's column count must track the
// Relaxation's).
func (c *CoreLP) AddEdge(u, v int, removable, reinstate bool) (edgeIdx int, err error) {
	edgeIdx, err = c.Graph.AddEdge(u, v, removable)
	if err != nil {
		return 0, fmt.Errorf("corelp: adding graph edge: %w", err)
	}
	edge, err := c.Graph.Edge(edgeIdx)
	if err != nil {
		return edgeIdx, err
	}
	length := edge.Length

	rowIdx := []int{u, v}
	rowVal := []float64{1, 1}
	for i := 0; i < c.Cuts.Len(); i++ {
		hg, err := c.Cuts.At(i)
		if err != nil {
			return edgeIdx, err
		}
		coeff := hg.CoeffOf(u, v)
		if coeff == 0 {
			continue
		}
		rowIdx = append(rowIdx, c.degreeRows+i)
		rowVal = append(rowVal, float64(coeff))
	}

	if _, err := c.Rel.AddCol(float64(length), rowIdx, rowVal, relax.Bounds{Lower: 0, Upper: 1}); err != nil {
		return edgeIdx, fmt.Errorf("corelp: adding LP column for edge: %w", err)
	}

	c.Tour.ResizeIncidence(c.Graph.EdgeCount(), nil)

	if reinstate {
		if err := c.reinstateTour(); err != nil {
			return edgeIdx, err
		}
	}

	return edgeIdx, nil
}

// RemoveEdges bulk-removes non-removable-flagged-false edges by index from
// both CoreGraph and the Relaxation, renumbering ActiveTour's incidence to
// match (spec.md §4.1 "Edge add/remove", §5 "After remove_edges, column
// indexing... consistently renumbered across CoreLP, CoreGraph, and
// ActiveTour").
func (c *CoreLP) RemoveEdges(edgeIdx []int) error {
	delstat := make([]bool, c.Graph.EdgeCount())
	for _, idx := range edgeIdx {
		delstat[idx] = true
	}

	remap, err := c.Graph.RemoveEdges(edgeIdx)
	if err != nil {
		return fmt.Errorf("corelp: removing graph edges: %w", err)
	}

	if _, err := c.Rel.DelSetCols(delstat); err != nil {
		return fmt.Errorf("corelp: removing LP columns: %w", err)
	}

	c.Tour.ResizeIncidence(c.Graph.EdgeCount(), remap)

	return nil
}

// SetTour installs seq as the new active tour (spec.md §4.8 "Node
// traversal": branching to a node installs its branch tour as the
// active tour) and reinstates it as the resident LP basis.
func (c *CoreLP) SetTour(seq []int) error {
	t, err := tour.New(c.Graph, seq)
	if err != nil {
		return fmt.Errorf("corelp: installing branch tour: %w", err)
	}
	c.Tour = t
	return c.reinstateTour()
}

// reinstateTour restores the active tour as the resident LP basis
// (spec.md §4.1 "Pivot-back"): copies the tour's basic-status snapshot back
// into the Relaxation; if no basis has been captured yet, it runs PrimalOpt
// and stores the resulting basis on the tour instead.
func (c *CoreLP) reinstateTour() error {
	if b := c.Tour.Basis(); b != nil {
		if err := c.Rel.SetBasis(b); err != nil {
			return fmt.Errorf("corelp: reinstating tour basis: %w", err)
		}
		return c.Rel.FactorBasis()
	}

	// No captured basis yet: solve the LP with PrimalOpt and capture the
	// optimal basis it ends at as the tour's basis.
	if _, err := c.Rel.PrimalOpt(); err != nil {
		return fmt.Errorf("corelp: re-factoring from tour vector: %w", err)
	}
	basis, err := c.Rel.GetBasis()
	if err != nil {
		return fmt.Errorf("corelp: capturing basis after re-factor: %w", err)
	}
	c.Tour.SetBasis(basis)

	return nil
}
