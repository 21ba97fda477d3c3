package corelp

import (
	"fmt"
	"math"

	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/tour"
)

// PivotResult is the full outcome of a primal_pivot call: the classification
// plus the LP solution it was derived from, so callers (the separator
// pipeline, the pricer) can inspect fractional values without re-solving.
type PivotResult struct {
	Class PivotClass
	Sol   relax.Solution
}

// PrimalPivot performs one non-degenerate primal pivot anchored at the
// active tour (spec.md §4.1 "CoreLP: the primal pivot loop"). It installs
// the tour's basis (if any) as the starting point, runs the relaxation to
// the tour-length cutoff, and classifies the result. On Tour, c.Tour is
// replaced with the newly discovered incumbent.
func (c *CoreLP) PrimalPivot() (PivotResult, error) {
	if c.Tour == nil {
		return PivotResult{}, ErrNoActiveTour
	}

	if b := c.Tour.Basis(); b != nil {
		if err := c.Rel.SetBasis(b); err != nil {
			return PivotResult{}, fmt.Errorf("corelp: installing tour basis: %w", err)
		}
	}

	cutoff := float64(c.Tour.Length()) - c.Tol.Zero
	sol, err := c.Rel.NonDegenPivot(cutoff)
	if err != nil {
		return PivotResult{}, fmt.Errorf("corelp: non-degenerate pivot: %w", err)
	}
	c.Cuts.BumpPivotAge()

	switch sol.Status {
	case relax.Optimal:
		log.Debugf("pivot: fathomed at objective %.2f (tour %d)", sol.Objective, c.Tour.Length())
		return PivotResult{Class: FathomedTour, Sol: sol}, nil
	case relax.CutoffReached:
		class, err := c.classify(sol)
		if err != nil {
			return PivotResult{}, err
		}
		if class == Tour {
			c.Cuts.BumpTourAge()
		}
		log.Debugf("pivot: classified %v at objective %.2f", class, sol.Objective)
		return PivotResult{Class: class, Sol: sol}, nil
	default:
		return PivotResult{}, fmt.Errorf("%w: relaxation status %d", relax.ErrSolveFailed, sol.Status)
	}
}

// classify implements step 2-4 of spec.md §4.1's algorithm: build the
// support graph, test integrality, then (if integral) test connectivity.
func (c *CoreLP) classify(sol relax.Solution) (PivotClass, error) {
	n := c.Graph.N()
	adj := make([][]int, n)
	integral := true
	allOnes := true

	for e := 0; e < c.Graph.EdgeCount(); e++ {
		x := sol.X[e]
		if x < c.Tol.Zero {
			continue
		}

		rounded := math.Round(x)
		if math.Abs(x-rounded) > c.Tol.Zero {
			integral = false
		}
		if rounded < 0.5 {
			continue // a near-zero edge that rounds away, not part of the support
		}
		if rounded < 0.999 {
			allOnes = false
		}

		edge, err := c.Graph.Edge(e)
		if err != nil {
			return 0, err
		}
		adj[edge.End[0]] = append(adj[edge.End[0]], edge.End[1])
		adj[edge.End[1]] = append(adj[edge.End[1]], edge.End[0])
	}

	if !integral || !allOnes {
		return Frac, nil
	}

	if !connectedCycle(adj, n) {
		return Subtour, nil
	}

	newSeq := walkCycle(adj, n)
	newTour, err := tour.New(c.Graph, newSeq)
	if err != nil {
		return 0, fmt.Errorf("corelp: building incumbent from integral solution: %w", err)
	}
	if newTour.Length() >= c.Tour.Length() {
		// Integral and connected but not an improvement; treat conservatively
		// as fathomed rather than churn the incumbent.
		return FathomedTour, nil
	}

	c.Tour = newTour

	return Tour, nil
}

// connectedCycle reports whether adj (every node with exactly two incident
// support edges, by the degree-equation invariant) forms one Hamiltonian
// cycle rather than a disjoint union of subtours.
func connectedCycle(adj [][]int, n int) bool {
	visited := make([]bool, n)
	count := 0
	stack := []int{0}
	visited[0] = true
	count = 1
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, u := range adj[v] {
			if !visited[u] {
				visited[u] = true
				count++
				stack = append(stack, u)
			}
		}
	}

	return count == n
}

// walkCycle reconstructs the node sequence of a 2-regular connected support
// graph starting from node 0, always stepping to the unvisited neighbor.
func walkCycle(adj [][]int, n int) []int {
	seq := make([]int, 0, n)
	visited := make([]bool, n)
	cur := 0
	for len(seq) < n {
		seq = append(seq, cur)
		visited[cur] = true
		next := -1
		for _, u := range adj[cur] {
			if !visited[u] {
				next = u
				break
			}
		}
		if next < 0 {
			break
		}
		cur = next
	}

	return seq
}
