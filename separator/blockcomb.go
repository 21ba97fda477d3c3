package separator

import (
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
)

// BlockComb builds genuine multi-clique comb inequalities: a handle (the
// same tight-edge blob FastBlossom contracts) plus one tooth clique per
// distinct far endpoint of an odd set of fractional edges leaving it
// (spec.md §4.3 "block combs" — another thin bridge to an external
// heuristic in the original design, reimplemented here from scratch).
// Where FastBlossom reports the cut as one aggregated clique (a subtour-
// style shore), BlockComb reports the handle and each tooth as distinct
// Cliques, exercising the full comb coefficient-recovery path in
// HyperGraph.CoeffOf.
type BlockComb struct {
	Bank *cut.CliqueBank
	Perm []int
	Eps  float64
}

func (b *BlockComb) Name() string { return "block_comb" }

func (b *BlockComb) Separate(n int, edges []SupportEdge) ([]corelp.CutCandidate, error) {
	uf := newUnionFind(n)
	for _, e := range edges {
		if e.Weight >= 1-b.Eps {
			uf.union(e.U, e.V)
		}
	}

	type leaving struct {
		other  int
		weight float64
		idx    int
	}
	byBlob := make(map[int][]leaving)
	for _, e := range edges {
		ru, rv := uf.find(e.U), uf.find(e.V)
		if ru == rv {
			continue
		}
		if e.Weight <= b.Eps {
			continue
		}
		byBlob[ru] = append(byBlob[ru], leaving{other: e.V, weight: e.Weight, idx: e.EdgeIdx})
		byBlob[rv] = append(byBlob[rv], leaving{other: e.U, weight: e.Weight, idx: e.EdgeIdx})
	}

	var out []corelp.CutCandidate
	for blob, ls := range byBlob {
		distinctOthers := make(map[int]bool)
		for _, l := range ls {
			distinctOthers[l.other] = true
		}
		if len(distinctOthers) < 3 || len(distinctOthers)%2 == 0 {
			continue
		}

		handleNodes := blobNodes(uf, blob, n, b.Bank.SavedTour())
		if len(handleNodes) == 0 {
			continue
		}
		handle, err := b.Bank.Intern(handleNodes)
		if err != nil {
			continue
		}

		cliques := []*cut.Clique{handle}
		savedTour := b.Bank.SavedTour()
		for other := range distinctOthers {
			tooth, err := b.Bank.Intern([]int{savedTour[other]})
			if err != nil {
				continue
			}
			cliques = append(cliques, tooth)
		}
		if len(cliques) < 3 {
			continue
		}

		teeth := len(cliques) - 1
		rhs := float64(3*teeth + 1)
		hg, err := cut.NewHyperGraph(cut.Greater, rhs, b.Perm, cliques, nil)
		if err != nil {
			continue
		}

		var colIdx []int
		var colVal []float64
		for _, e := range edges {
			c := hg.CoeffOf(tourNode(savedTour, e.U), tourNode(savedTour, e.V))
			if c == 0 {
				continue
			}
			colIdx = append(colIdx, e.EdgeIdx)
			colVal = append(colVal, float64(c))
		}

		out = append(out, corelp.CutCandidate{HG: hg, ColIdx: colIdx, ColVal: colVal})
	}

	return out, nil
}

func tourNode(savedTour []int, pos int) int { return savedTour[pos] }

func blobNodes(uf *unionFind, root, n int, savedTour []int) []int {
	var out []int
	for i := 0; i < n; i++ {
		if uf.find(i) == root {
			out = append(out, savedTour[i])
		}
	}
	return out
}
