package meta

import (
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/separator"
)

// doubleDecker stacks two existing combs sharing the same handle into one
// comb carrying the union of their distinct teeth (a simplification of
// Concorde's double-decker transform, which builds a genuinely new
// inequality type rather than a tooth union; see DESIGN.md). Handle
// identity is pointer equality: both combs are assumed to share one
// CliqueBank, under which equal node sets always intern to the same
// *Clique.
func doubleDecker(cb *cut.CliqueBank, perm []int, a, b *cut.HyperGraph, support []separator.SupportEdge, eps float64) (candidate, bool) {
	if a.Kind() != cut.KindComb || b.Kind() != cut.KindComb {
		return candidate{}, false
	}
	if a.Handle() != b.Handle() {
		return candidate{}, false
	}

	savedTour := cb.SavedTour()
	seen := make(map[*cut.Clique]bool)
	cliques := []*cut.Clique{a.Handle()}
	for _, c := range a.Cliques[1:] {
		if !seen[c] {
			seen[c] = true
			cliques = append(cliques, c)
		}
	}
	for _, c := range b.Cliques[1:] {
		if !seen[c] {
			seen[c] = true
			cliques = append(cliques, c)
		}
	}

	teeth := len(cliques) - 1
	if teeth < 3 || teeth%2 == 0 {
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
