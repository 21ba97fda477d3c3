package price

import (
	"fmt"

	"github.com/corecut/abctsp/relax"
)

// RecoverFeasibility implements spec.md §4.7 "Feasibility recovery": after a
// branch tightens a column bound the LP basis can go primal-infeasible.
// Rather than reduced cost against length, candidate edges are ranked by
// the sole criterion pihat(u)+pihat(v) > 0 using the infeasible basis's own
// duals, added in Pool-sized chunks, re-optimizing after each chunk.
// Returns true once PrimalRecover reports feasible again; false means the
// branch is provably infeasible under the current column set.
func (p *Pricer) RecoverFeasibility(sol relax.Solution) (bool, error) {
	duals := p.Duals(sol)

	cands, err := p.GenerateFull()
	if err != nil {
		return false, fmt.Errorf("price: generating recovery candidates: %w", err)
	}

	var pos []CandidateEdge
	for _, c := range cands {
		if duals.Node[c.U]+duals.Node[c.V] > p.RedCostEps {
			pos = append(pos, c)
		}
	}

	if len(pos) == 0 {
		return false, nil
	}

	for start := 0; start < len(pos); start += p.Pool {
		end := start + p.Pool
		if end > len(pos) {
			end = len(pos)
		}

		for _, c := range pos[start:end] {
			if _, err := p.Core.AddEdge(c.U, c.V, true, true); err != nil {
				return false, fmt.Errorf("price: adding recovery edge (%d,%d): %w", c.U, c.V, err)
			}
		}

		recovered, err := p.Core.Rel.PrimalRecover()
		if err != nil {
			return false, fmt.Errorf("price: recovering primal feasibility: %w", err)
		}
		if recovered.Status != relax.Infeasible {
			log.Debugf("price: feasibility recovered after %d candidate edges", end)
			return true, nil
		}
	}

	log.Debugf("price: feasibility recovery exhausted %d candidate edges, still infeasible", len(pos))
	return false, nil
}
