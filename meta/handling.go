package meta

import (
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/separator"
)

// handling grows a comb's handle by absorbing its weakest tooth's body
// (the tooth contributing least to support-edge activity), dropping that
// tooth from the list. The remaining teeth must still number at least
// three and be odd, else no candidate is produced (a simplification of
// Concorde's handling transform; see DESIGN.md).
func handling(cb *cut.CliqueBank, perm []int, c *cut.HyperGraph, support []separator.SupportEdge, eps float64) (candidate, bool) {
	if c.Kind() != cut.KindComb || len(c.Cliques) < 4 {
		return candidate{}, false
	}

	teeth := c.Cliques[1:]
	weakest := 0
	weakestWeight := teethCrossing(teeth[0], c.Cliques[0], support, cb)
	for i := 1; i < len(teeth); i++ {
		w := teethCrossing(teeth[i], c.Cliques[0], support, cb)
		if w < weakestWeight {
			weakestWeight = w
			weakest = i
		}
	}

	remaining := len(teeth) - 1
	if remaining < 3 || remaining%2 == 0 {
		return candidate{}, false
	}

	savedTour := cb.SavedTour()
	handleNodes := append(c.Cliques[0].Nodes(savedTour), teeth[weakest].Nodes(savedTour)...)
	newHandle, err := cb.Intern(handleNodes)
	if err != nil {
		return candidate{}, false
	}

	cliques := []*cut.Clique{newHandle}
	for i, t := range teeth {
		if i != weakest {
			cliques = append(cliques, t)
		}
	}

	hg, err := cut.NewHyperGraph(cut.Greater, float64(3*remaining+1), perm, cliques, nil)
	if err != nil {
		return candidate{}, false
	}

	colIdx, colVal, slack := cutColumns(hg, savedTour, support)
	if len(colIdx) == 0 {
		return candidate{}, false
	}

	return candidate{cut: cutCandidate(hg, colIdx, colVal), slack: slack}, true
}

// teethCrossing sums support weight crossing clique t but not already
// crossing handle (an approximate per-tooth contribution weight).
func teethCrossing(t, handle *cut.Clique, support []separator.SupportEdge, cb *cut.CliqueBank) float64 {
	total := 0.0
	for _, e := range support {
		if handle.Contains(e.U) != handle.Contains(e.V) {
			continue
		}
		iu, iv := t.Contains(e.U), t.Contains(e.V)
		if iu != iv {
			total += e.Weight
		}
	}
	return total
}
