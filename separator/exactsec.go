package separator

import (
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
)

// ExactSEC finds subtour-elimination cuts by exact global min-cut on the
// (permuted) LP support graph (spec.md §4.3: "exact segment/subtour cuts",
// a stand-in for Concorde's primal connectivity routine). Any cut of value
// below 2-Eps, expanded back into a node set, yields a violated SEC:
// sum of crossing-edge values >= 2.
//
// Grounded on the Stoer-Wagner global min-cut algorithm (no pack library
// implements it; see DESIGN.md's stdlib-justification entry for this file).
type ExactSEC struct {
	Bank *cut.CliqueBank
	Perm []int
	Eps  float64
}

func (s *ExactSEC) Name() string { return "exact_sec" }

func (s *ExactSEC) Separate(n int, edges []SupportEdge) ([]corelp.CutCandidate, error) {
	if n < 3 {
		return nil, nil
	}

	w := make([][]float64, n)
	for i := range w {
		w[i] = make([]float64, n)
	}
	for _, e := range edges {
		if e.U == e.V {
			continue
		}
		w[e.U][e.V] += e.Weight
		w[e.V][e.U] += e.Weight
	}

	cutVal, shore := stoerWagner(w, n)
	if cutVal >= 2-s.Eps {
		return nil, nil
	}

	return buildCrossingCut(s.Bank, s.Perm, shore, n, edges, 2, s.Eps)
}

// stoerWagner computes the global minimum weight cut of the graph given by
// dense weight matrix w over n nodes, returning the cut's weight and one
// shore's member set (as original node indices before any merging).
func stoerWagner(w [][]float64, n int) (float64, []bool) {
	// merged[i] is the set of original nodes folded into active vertex i.
	active := make([]bool, n)
	merged := make([][]int, n)
	for i := 0; i < n; i++ {
		active[i] = true
		merged[i] = []int{i}
	}

	best := mathInfPos
	var bestShore []int
	remaining := n

	for remaining > 1 {
		a, last, secondLast := minimumCutPhase(w, active, n)
		cutOfPhase := sumWeights(w, last, active, n) - w[last][last] // s-t cut weight of the phase (= weight of "last" to everything else already merged)
		_ = a
		if cutOfPhase < best {
			best = cutOfPhase
			bestShore = append([]int(nil), merged[last]...)
		}

		// merge last into secondLast
		for j := 0; j < n; j++ {
			if !active[j] || j == last || j == secondLast {
				continue
			}
			w[secondLast][j] += w[last][j]
			w[j][secondLast] += w[j][last]
		}
		merged[secondLast] = append(merged[secondLast], merged[last]...)
		active[last] = false
		remaining--
	}

	shoreMask := make([]bool, n)
	for _, v := range bestShore {
		shoreMask[v] = true
	}

	return best, shoreMask
}

const mathInfPos = 1e18

// minimumCutPhase runs one maximum-adjacency-ordering phase, returning the
// order's last two vertices added (last, secondLast).
func minimumCutPhase(w [][]float64, active []bool, n int) (order []int, last, secondLast int) {
	inA := make([]bool, n)
	weight := make([]float64, n)
	prev := -1

	for k := 0; k < n; k++ {
		if !active[k] {
			continue
		}
		sel := -1
		for j := 0; j < n; j++ {
			if !active[j] || inA[j] {
				continue
			}
			if sel < 0 || weight[j] > weight[sel] {
				sel = j
			}
		}
		if sel < 0 {
			break
		}
		inA[sel] = true
		order = append(order, sel)
		secondLast = prev
		last = sel
		prev = sel
		for j := 0; j < n; j++ {
			if active[j] && !inA[j] {
				weight[j] += w[sel][j]
			}
		}
	}

	return order, last, secondLast
}

func sumWeights(w [][]float64, v int, active []bool, n int) float64 {
	total := 0.0
	for j := 0; j < n; j++ {
		if active[j] && j != v {
			total += w[v][j]
		}
	}

	return total
}

// buildCrossingCut constructs a single CutCandidate for the subset of nodes
// marked true in shore: a Greater cut with the given rhs (2 for ExactSEC)
// over every given edge crossing the shore boundary.
func buildCrossingCut(bank *cut.CliqueBank, perm []int, shore []bool, n int, edges []SupportEdge, rhs float64, eps float64) ([]corelp.CutCandidate, error) {
	nodes := make([]int, 0)
	savedTour := bank.SavedTour()
	for pos, inShore := range shore {
		if inShore {
			nodes = append(nodes, savedTour[pos])
		}
	}
	if len(nodes) == 0 || len(nodes) == n {
		return nil, nil
	}

	clq, err := bank.Intern(nodes)
	if err != nil {
		return nil, err
	}
	hg, err := cut.NewHyperGraph(cut.Greater, rhs, perm, []*cut.Clique{clq}, nil)
	if err != nil {
		return nil, err
	}

	var colIdx []int
	var colVal []float64
	for _, e := range edges {
		if shore[e.U] == shore[e.V] {
			continue
		}
		colIdx = append(colIdx, e.EdgeIdx)
		colVal = append(colVal, 1)
	}

	return []corelp.CutCandidate{{HG: hg, ColIdx: colIdx, ColVal: colVal}}, nil
}
