package price

import (
	"github.com/corecut/abctsp/fixedpt"
	"github.com/corecut/abctsp/relax"
)

// DegreeRHS is every degree-equation row's right-hand side: each node is
// incident to exactly two tour edges.
const DegreeRHS = 2

// ExactLowerBound computes spec.md §4.7's certified lower bound
// Σ π_i·rhs_i − Σ_{e: redcost(e)<0} redcost(e) using fixed-point arithmetic
// so the certificate doesn't depend on float rounding.
func (p *Pricer) ExactLowerBound(sol relax.Solution) fixedpt.Fixed64 {
	n := p.Graph.N()

	bound := fixedpt.Fixed64(0)
	for i := 0; i < n && i < len(sol.Pi); i++ {
		bound = bound.AddMult(fixedpt.FromFloat(sol.Pi[i]), DegreeRHS)
	}

	for k := 0; k < p.Cuts.Len(); k++ {
		row := n + k
		if row >= len(sol.Pi) {
			continue
		}
		hg, err := p.Cuts.At(k)
		if err != nil {
			continue
		}
		bound = bound.AddMult(fixedpt.FromFloat(sol.Pi[row]), int(hg.Rhs))
	}

	for _, rc := range sol.RedCost {
		if rc < 0 {
			bound = bound.Sub(fixedpt.FromFloat(rc))
		}
	}

	return bound
}
