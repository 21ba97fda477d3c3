package meta

import (
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/separator"
)

// teething adds one new tooth to a comb, built from a handle-crossing
// support edge whose far endpoint isn't already covered by any existing
// tooth: root is the far endpoint's tour position, body is the far
// endpoint's own tour-adjacent neighbor (mirroring dp's single-node light
// teeth). This is a simplification of Concorde's teething transform, which
// searches for a genuinely new violated tooth rather than reusing a single
// adjacent node; see DESIGN.md.
func teething(cb *cut.CliqueBank, tb *cut.ToothBank, perm []int, c *cut.HyperGraph, support []separator.SupportEdge, eps float64) (candidate, bool) {
	if c.Kind() != cut.KindComb {
		return candidate{}, false
	}

	savedTour := cb.SavedTour()
	n := len(savedTour)
	handle := c.Cliques[0]
	covered := make([]bool, n)
	for pos := 0; pos < n; pos++ {
		if handle.Contains(pos) {
			covered[pos] = true
		}
	}
	for _, t := range c.Cliques[1:] {
		for pos := 0; pos < n; pos++ {
			if t.Contains(pos) {
				covered[pos] = true
			}
		}
	}

	bestFar, bestWeight := -1, 0.0
	for _, e := range support {
		hu, hv := handle.Contains(e.U), handle.Contains(e.V)
		if hu == hv {
			continue
		}
		far := e.V
		if hv {
			far = e.U
		}
		if covered[far] {
			continue
		}
		if e.Weight > bestWeight {
			bestWeight = e.Weight
			bestFar = far
		}
	}
	if bestFar < 0 || bestWeight <= 1-eps {
		return candidate{}, false
	}

	bodyPos := -1
	for _, cand := range []int{(bestFar + 1) % n, (bestFar - 1 + n) % n} {
		if !covered[cand] && cand != bestFar {
			bodyPos = cand
			break
		}
	}
	if bodyPos < 0 {
		return candidate{}, false
	}

	tooth, err := tb.Intern([]int{savedTour[bestFar]}, []int{savedTour[bodyPos]})
	if err != nil {
		return candidate{}, false
	}

	cliques := append(append([]*cut.Clique(nil), c.Cliques...), tooth.Body)
	teeth := len(cliques) - 1
	if teeth%2 == 0 {
		return candidate{}, false
	}

	hg, err := cut.NewHyperGraph(cut.Greater, float64(3*teeth+1), perm, cliques, nil)
	if err != nil {
		return candidate{}, false
	}

	colIdx, colVal, slack := cutColumns(hg, savedTour, support)
	if len(colIdx) == 0 {
		return candidate{}, false
	}

	return candidate{cut: cutCandidate(hg, colIdx, colVal), slack: slack}, true
}
