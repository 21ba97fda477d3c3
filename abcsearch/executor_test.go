package abcsearch_test

import (
	"testing"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/price"
	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/separator"
	"github.com/corecut/abctsp/tour"
	"github.com/stretchr/testify/require"
)

// buildSquareCore mirrors corelp_test.go's square fixture: a 4-node unit
// square with its complete edge set, degree-equation rows for every node,
// and the Hamiltonian cycle 0-1-2-3-0 installed as the active tour.
func buildSquareCore(t *testing.T) (*corelp.CoreLP, *graph.CoreGraph) {
	t.Helper()
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	ins, err := graph.NewInstance(4, graph.EuclideanLengthFunc(pts))
	require.NoError(t, err)
	g := graph.NewCoreGraph(ins)

	type pair struct{ u, v int }
	edges := []pair{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}, {1, 3}}
	for _, p := range edges {
		_, err := g.AddEdge(p.u, p.v, true)
		require.NoError(t, err)
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

func buildSquareExecutor(t *testing.T) *abcsearch.Executor {
	t.Helper()
	core, _ := buildSquareCore(t)
	pipeline := separator.New(nil, nil, nil, nil)
	pricer := price.New(core)
	return abcsearch.NewExecutor(core, pipeline, pricer, abcsearch.NewDFSSelector(), abcsearch.DefaultOptions)
}

func TestClampDownForcesEdgeOut(t *testing.T) {
	ex := buildSquareExecutor(t)
	core := ex.Core
	col, ok := core.Graph.HasEdge(0, 2)
	require.True(t, ok)

	node := abcsearch.NewChild(abcsearch.NewRoot(), 0, 2, abcsearch.Down, 0, 0)
	require.NoError(t, ex.Clamp(node))

	res, err := core.PrimalPivot()
	require.NoError(t, err)
	require.Less(t, res.Sol.X[col], core.Tol.Zero+1e-9)

	require.NoError(t, ex.Unclamp(node))
}

func TestClampUpForcesEdgeIn(t *testing.T) {
	ex := buildSquareExecutor(t)
	core := ex.Core
	col, ok := core.Graph.HasEdge(0, 2)
	require.True(t, ok)

	node := abcsearch.NewChild(abcsearch.NewRoot(), 0, 2, abcsearch.Up, 0, 0)
	require.NoError(t, ex.Clamp(node))

	res, err := core.PrimalPivot()
	require.NoError(t, err)
	require.Greater(t, res.Sol.X[col], 1-core.Tol.Zero-1e-9)

	require.NoError(t, ex.Unclamp(node))
}

func TestClampOnRootIsNoop(t *testing.T) {
	ex := buildSquareExecutor(t)
	require.NoError(t, ex.Clamp(abcsearch.NewRoot()))
	require.NoError(t, ex.Unclamp(abcsearch.NewRoot()))
}

func TestClampOnUnknownEdgeErrors(t *testing.T) {
	ex := buildSquareExecutor(t)
	node := abcsearch.NewChild(abcsearch.NewRoot(), 0, 99, abcsearch.Down, 0, 0)
	require.ErrorIs(t, ex.Clamp(node), abcsearch.ErrUnknownEdge)
}

func TestGotoTraversesThroughCommonAncestor(t *testing.T) {
	ex := buildSquareExecutor(t)
	root := abcsearch.NewRoot()

	left := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 0, 0)
	right := abcsearch.NewChild(root, 2, 3, abcsearch.Up, 0, 0)

	require.NoError(t, ex.Goto(left))
	require.NoError(t, ex.Goto(right))

	col23, _ := ex.Core.Graph.HasEdge(2, 3)
	res, err := ex.Core.PrimalPivot()
	require.NoError(t, err)
	require.Greater(t, res.Sol.X[col23], 1-ex.Core.Tol.Zero-1e-9) // right's up-clamp is still active
}
