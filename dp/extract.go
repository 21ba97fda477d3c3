package dp

import (
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/separator"
)

// extractOddCuts walks every Gomory-Hu tree edge, testing each one as a
// candidate domino-parity cut: the tree edge splits the witness graph into
// the side containing node i and the rest; whichever side excludes the
// star node is the candidate odd tooth subset. A tree edge under weight
// 2-Eps whose subset has an odd size of at least three yields one
// HyperGraph (spec.md §4.4 "a cut is read off an odd Gomory-Hu tree edge").
func extractOddCuts(d *DominoParity, n int, edges []separator.SupportEdge, teeth []LightTooth, wg *WitnessGraph) ([]corelp.CutCandidate, error) {
	parent, weight := GomoryHuTree(wg.Cap, wg.N)
	star := wg.K

	children := make([][]int, wg.N)
	for i := 1; i < wg.N; i++ {
		children[parent[i]] = append(children[parent[i]], i)
	}

	teethMemo := make([][]int, wg.N)
	starMemo := make([]int, wg.N) // 0 unknown, 1 true, -1 false
	var collect func(i int) ([]int, bool)
	collect = func(i int) ([]int, bool) {
		if starMemo[i] != 0 {
			return teethMemo[i], starMemo[i] == 1
		}
		var out []int
		hasStar := i == star
		if !hasStar {
			out = append(out, i)
		}
		for _, c := range children[i] {
			ct, cs := collect(c)
			out = append(out, ct...)
			hasStar = hasStar || cs
		}
		teethMemo[i] = out
		if hasStar {
			starMemo[i] = 1
		} else {
			starMemo[i] = -1
		}
		return out, hasStar
	}

	var out []corelp.CutCandidate
	for i := 1; i < wg.N; i++ {
		if weight[i] >= 2-d.Eps {
			continue
		}
		subset, hasStar := collect(i)
		if hasStar {
			subset = complementTeeth(subset, wg.K)
		}
		if len(subset) < 3 || len(subset)%2 == 0 {
			continue
		}

		cand, err := buildDominoCut(d, teeth, subset, edges, n)
		if err != nil {
			continue
		}
		out = append(out, cand)
	}

	return out, nil
}

func complementTeeth(subset []int, k int) []int {
	in := make([]bool, k)
	for _, s := range subset {
		in[s] = true
	}
	var out []int
	for i := 0; i < k; i++ {
		if !in[i] {
			out = append(out, i)
		}
	}
	return out
}

// buildDominoCut assembles a KindDomino HyperGraph from a chosen odd subset
// of teeth: the handle is the union of the teeth's root nodes, each tooth
// contributes its own (Root,Body) pair (spec.md §4.4 coefficient recovery).
func buildDominoCut(d *DominoParity, allTeeth []LightTooth, subset []int, edges []separator.SupportEdge, n int) (corelp.CutCandidate, error) {
	savedTour := d.CliqueBank.SavedTour()

	var rootNodes []int
	toothCliques := make([]*cut.Tooth, 0, len(subset))
	for _, idx := range subset {
		t := allTeeth[idx]
		rootNode := savedTour[t.Root]
		bodyNodes := segNodes(savedTour, t.Lo, t.Hi, n)
		rootNodes = append(rootNodes, rootNode)

		tooth, err := d.ToothBank.Intern([]int{rootNode}, bodyNodes)
		if err != nil {
			return corelp.CutCandidate{}, err
		}
		toothCliques = append(toothCliques, tooth)
	}

	handle, err := d.CliqueBank.Intern(rootNodes)
	if err != nil {
		return corelp.CutCandidate{}, err
	}

	rhs := float64(3*len(subset) + 1)
	hg, err := cut.NewHyperGraph(cut.Greater, rhs, d.Perm, []*cut.Clique{handle}, toothCliques)
	if err != nil {
		return corelp.CutCandidate{}, err
	}

	var colIdx []int
	var colVal []float64
	for _, e := range edges {
		c := hg.CoeffOf(savedTour[e.U], savedTour[e.V])
		if c == 0 {
			continue
		}
		colIdx = append(colIdx, e.EdgeIdx)
		colVal = append(colVal, float64(c))
	}

	return corelp.CutCandidate{HG: hg, ColIdx: colIdx, ColVal: colVal}, nil
}
