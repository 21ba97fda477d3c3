package corelp

import (
	"fmt"

	"github.com/corecut/abctsp/cut"
)

// CutCandidate is a sparse LP row paired with the HyperGraph it represents,
// the unit add_cuts consumes (spec.md §4.1 "Cut addition": translation is
// always "sparse row -> LP add_row AND a corresponding HyperGraph
// push_back into ExternalCuts", kept positionally synchronized).
type CutCandidate struct {
	HG     *cut.HyperGraph
	ColIdx []int
	ColVal []float64
}

// AddCuts adds every candidate whose tour activity is tight (sum of
// ColVal[i]*tourIncidence[ColIdx[i]] equals HG.Rhs within c.Tol.Cut),
// appending an LP row and the matching ExternalCuts entry in lockstep.
// Non-tight candidates are silently skipped (spec.md: "Fails if a cut's
// tour activity is not tight... Cuts may be filtered against the active
// tour to avoid double-insertion").
func (c *CoreLP) AddCuts(candidates []CutCandidate) (added int, err error) {
	if c.Tour == nil {
		return 0, ErrNoActiveTour
	}
	incidence := c.Tour.Incidence()

	for _, cand := range candidates {
		activity := 0.0
		for i, col := range cand.ColIdx {
			activity += cand.ColVal[i] * incidence[col]
		}
		if activity < cand.HG.Rhs-c.Tol.Cut || activity > cand.HG.Rhs+c.Tol.Cut {
			continue
		}

		if _, err := c.Rel.AddCut(cand.HG.Sense, cand.HG.Rhs, cand.ColIdx, cand.ColVal); err != nil {
			return added, fmt.Errorf("corelp: adding cut row: %w", err)
		}
		c.Cuts.Add(cand.HG)
		added++
	}

	if c.Rel.NumRows()-c.degreeRows != c.Cuts.Len() {
		return added, ErrDesyncedCutRows
	}

	log.Debugf("add_cuts: %d/%d candidates tight at the active tour", added, len(candidates))

	return added, nil
}

// PruneCuts removes external cut rows that are slack (non-tight) at the
// current tour, moving them to ExternalCuts' expelled pool rather than
// discarding them outright (spec.md §4.1 "Cut pruning"). Tightness is
// recomputed directly from each HyperGraph's coefficient recovery over the
// tour's edges rather than by re-solving the LP, since the tour incidence
// vector alone determines every cut's activity.
func (c *CoreLP) PruneCuts() (removed int, err error) {
	if c.Tour == nil {
		return 0, ErrNoActiveTour
	}

	seq := c.Tour.Sequence()
	nlen := len(seq)
	delstat := make([]bool, c.Cuts.Len())
	for i := 0; i < c.Cuts.Len(); i++ {
		hg, err := c.Cuts.At(i)
		if err != nil {
			return removed, err
		}
		activity := 0.0
		for k := 0; k < nlen; k++ {
			u, v := seq[k], seq[(k+1)%nlen]
			activity += float64(hg.CoeffOf(u, v))
		}
		tight := activity <= hg.Rhs+c.Tol.DualDust && activity >= hg.Rhs-c.Tol.DualDust
		delstat[i] = !tight
		if delstat[i] {
			removed++
		}
	}

	if removed == 0 {
		return 0, nil
	}

	relDelstat := make([]bool, c.Rel.NumRows())
	for i, d := range delstat {
		relDelstat[c.degreeRows+i] = d
	}
	if _, err := c.Rel.DelSetRows(relDelstat); err != nil {
		return 0, fmt.Errorf("corelp: deleting slack cut rows: %w", err)
	}
	if err := c.Cuts.Remove(delstat); err != nil {
		return 0, fmt.Errorf("corelp: desyncing ExternalCuts removal: %w", err)
	}

	log.Debugf("prune_cuts: removed %d slack rows, %d remain", removed, c.Cuts.Len())

	return removed, nil
}
