package price

import (
	"fmt"

	"github.com/corecut/abctsp/fixedpt"
	"github.com/corecut/abctsp/relax"
)

// Eliminate implements spec.md §4.7 "Edge elimination": given an incumbent
// upper bound and the certified lower bound, any core-graph edge at
// tour-incidence zero and non-basic whose exact reduced cost exceeds
// U-L-1 can never appear in an optimal tour, so it is batch-deleted.
func (p *Pricer) Eliminate(sol relax.Solution, upperBound int64, lowerBound fixedpt.Fixed64) (removed int, err error) {
	gap := fixedpt.FromInt(int(upperBound)).Sub(lowerBound).Sub(fixedpt.FromInt(1))

	basis, err := p.Core.Rel.GetBasis()
	if err != nil {
		return 0, fmt.Errorf("price: reading basis for elimination: %w", err)
	}

	var toRemove []int
	for e := 0; e < p.Graph.EdgeCount() && e < len(sol.X) && e < len(sol.RedCost); e++ {
		if sol.X[e] >= p.RedCostEps {
			continue
		}
		if e < len(basis.ColStat) && basis.ColStat[e] == relax.Basic {
			continue
		}
		edge, err := p.Graph.Edge(e)
		if err != nil {
			return 0, err
		}
		if !edge.Removable {
			continue
		}
		rc := fixedpt.FromFloat(sol.RedCost[e])
		if rc.Greater(gap) {
			toRemove = append(toRemove, e)
		}
	}

	if len(toRemove) == 0 {
		return 0, nil
	}

	if err := p.Core.RemoveEdges(toRemove); err != nil {
		return 0, fmt.Errorf("price: removing eliminated edges: %w", err)
	}

	log.Debugf("price: eliminated %d edges (gap %.2f)", len(toRemove), gap.Float())
	return len(toRemove), nil
}
