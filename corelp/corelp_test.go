package corelp_test

import (
	"testing"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/tour"
	"github.com/stretchr/testify/require"
)

// square builds a 4-node unit square instance with its complete edge set,
// an LP with degree-equation rows for all four nodes, and the Hamiltonian
// cycle 0-1-2-3-0 installed as the active tour. The diagonals (sqrt 2)
// round to length 1 like the sides, so every edge costs 1 and each of the
// three Hamiltonian cycles on four nodes has length 4; the LP relaxation's
// optimum coincides with the tour exactly: a natural FathomedTour fixture.
func square(t *testing.T) (*corelp.CoreLP, *graph.CoreGraph) {
	t.Helper()
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	ins, err := graph.NewInstance(4, graph.EuclideanLengthFunc(pts))
	require.NoError(t, err)
	g := graph.NewCoreGraph(ins)

	type pair struct{ u, v int }
	edges := []pair{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}, {1, 3}}
	edgeIdx := make(map[pair]int)
	for _, p := range edges {
		idx, err := g.AddEdge(p.u, p.v, true)
		require.NoError(t, err)
		edgeIdx[p] = idx
	}

	rel := relax.NewGonumRelaxation()
	rows := make([]int, 4)
	for v := 0; v < 4; v++ {
		r, err := rel.NewRow(relax.Equal, 2)
		require.NoError(t, err)
		rows[v] = r
	}
	for i := 0; i < g.EdgeCount(); i++ {
		e, err := g.Edge(i)
		require.NoError(t, err)
		length, err := ins.Length(e.End[0], e.End[1])
		require.NoError(t, err)
		_, err = rel.AddCol(float64(length), []int{rows[e.End[0]], rows[e.End[1]]}, []float64{1, 1}, relax.Bounds{Lower: 0, Upper: 1})
		require.NoError(t, err)
	}

	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)

	cliques := cut.NewCliqueBank(at.Sequence(), at.Perm())
	teeth := cut.NewToothBank(at.Sequence(), at.Perm())
	ec := cut.NewExternalCuts(cliques, teeth)

	return corelp.New(g, rel, ec, at), g
}

func TestPrimalPivotFathomsOptimalSquare(t *testing.T) {
	c, _ := square(t)

	res, err := c.PrimalPivot()
	require.NoError(t, err)
	require.Equal(t, corelp.FathomedTour, res.Class)
}

func TestAddCutsRejectsNonTightCut(t *testing.T) {
	c, g := square(t)

	idx01, _ := g.HasEdge(0, 1)
	idx23, _ := g.HasEdge(2, 3)

	cliques := c.Cuts.CliqueBank
	clq, err := cliques.Intern([]int{0})
	require.NoError(t, err)
	hg, err := cut.NewHyperGraph(cut.Greater, 5, c.Tour.Perm(), []*cut.Clique{clq}, nil)
	require.NoError(t, err)

	added, err := c.AddCuts([]corelp.CutCandidate{{
		HG:     hg,
		ColIdx: []int{idx01, idx23},
		ColVal: []float64{1, 1},
	}})
	require.NoError(t, err)
	require.Equal(t, 0, added)
}

func TestRemoveEdgesRenumbersIncidence(t *testing.T) {
	c, g := square(t)

	diagIdx, ok := g.HasEdge(0, 2)
	require.True(t, ok)
	require.NoError(t, g.MarkRemovable(diagIdx, true))

	before := len(c.Tour.Incidence())
	require.NoError(t, c.RemoveEdges([]int{diagIdx}))
	require.Equal(t, before-1, len(c.Tour.Incidence()))
}
