package dp

import (
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/separator"
)

// DominoParity is the pipeline's fourth-stage separator, invoked only once
// the exact subtour separator has found nothing (spec.md §4.2: the LP is
// already known to sit in the subtour polytope at that point). It derives
// light tooth candidates from the current support, folds them into a small
// witness graph, and reads violated domino-parity cuts off that graph's
// Gomory-Hu tree (spec.md §4.4).
//
// This is a simplified stand-in for Concorde's full simple domino-parity
// separator: tooth selection collapses to one candidate per root rather
// than enumerating adjacency zones, and the witness graph folds every
// non-tooth node into a single star rather than modeling degree-nodes
// individually. See DESIGN.md for the justification.
type DominoParity struct {
	CliqueBank *cut.CliqueBank
	ToothBank  *cut.ToothBank
	Perm       []int
	Eps        float64
}

func (d *DominoParity) Name() string { return "domino_parity" }

func (d *DominoParity) Separate(n int, edges []separator.SupportEdge) ([]corelp.CutCandidate, error) {
	teeth := FindLightTeeth(n, edges, d.Eps)
	if len(teeth) < 3 {
		return nil, nil
	}

	wg := BuildWitness(n, edges, teeth)
	return extractOddCuts(d, n, edges, teeth, wg)
}
