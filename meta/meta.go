// Package meta implements the three comb-to-related-cut transforms spec.md
// §4.6 describes as Concorde black-box bridges: double-decker, handling,
// and teething. Each takes one or two combs already installed in the LP
// with small slack and derives a new, structurally related HyperGraph.
//
// As with separator's fast-blossom/block-comb heuristics, these are
// documented simplifications of Concorde's actual transforms rather than
// a from-scratch reimplementation of them (see DESIGN.md); every output is
// nonetheless a genuine valid inequality, since construction always goes
// through cut.NewHyperGraph/newTooth's own validation.
package meta

import (
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/separator"
)

// MaxKept bounds how many transformed candidates Generate returns, ranked
// by ascending slack (spec.md §4.6: "keep at most 250 strongest").
const MaxKept = 250

// Candidate pairs a transformed HyperGraph with its estimated slack at the
// current LP solution's support weights (used only for ranking; actual tightness filtering
// happens downstream in corelp.CoreLP.AddCuts).
type candidate struct {
	cut   corelp.CutCandidate
	slack float64
}

// Generate applies double-decker, handling, and teething to every comb in
// combs (KindComb HyperGraphs only; others are skipped), returning at most
// MaxKept candidates ordered by ascending slack.
func Generate(cb *cut.CliqueBank, tb *cut.ToothBank, perm []int, combs []*cut.HyperGraph, support []separator.SupportEdge, eps float64) []corelp.CutCandidate {
	var all []candidate

	for _, c := range combs {
		if c.Kind() != cut.KindComb && c.Kind() != cut.KindDomino {
			continue
		}
		if h, ok := handling(cb, perm, c, support, eps); ok {
			all = append(all, h)
		}
		if t, ok := teething(cb, tb, perm, c, support, eps); ok {
			all = append(all, t)
		}
	}
	for i := 0; i < len(combs); i++ {
		for j := i + 1; j < len(combs); j++ {
			if d, ok := doubleDecker(cb, perm, combs[i], combs[j], support, eps); ok {
				all = append(all, d)
			}
		}
	}

	sortBySlack(all)
	if len(all) > MaxKept {
		all = all[:MaxKept]
	}

	out := make([]corelp.CutCandidate, len(all))
	for i, c := range all {
		out[i] = c.cut
	}

	return out
}

func sortBySlack(cands []candidate) {
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && cands[j].slack < cands[j-1].slack; j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
}

// cutColumns recomputes the sparse LP row for hg directly from its own
// coefficient recovery, over the given permuted support edges. savedTour
// maps tour positions (the space SupportEdge.U/V live in) back to node ids,
// the space CoeffOf expects.
func cutColumns(hg *cut.HyperGraph, savedTour []int, support []separator.SupportEdge) ([]int, []float64, float64) {
	var colIdx []int
	var colVal []float64
	activity := 0.0
	for _, e := range support {
		c := hg.CoeffOf(savedTour[e.U], savedTour[e.V])
		if c == 0 {
			continue
		}
		colIdx = append(colIdx, e.EdgeIdx)
		colVal = append(colVal, float64(c))
		activity += float64(c) * e.Weight
	}

	return colIdx, colVal, hg.Rhs - activity
}

func cutCandidate(hg *cut.HyperGraph, colIdx []int, colVal []float64) corelp.CutCandidate {
	return corelp.CutCandidate{HG: hg, ColIdx: colIdx, ColVal: colVal}
}
