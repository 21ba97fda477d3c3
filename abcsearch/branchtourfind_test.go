package abcsearch_test

import (
	"testing"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/corecut/abctsp/graph"
	"github.com/stretchr/testify/require"
)

func squareGraph(t *testing.T) *graph.CoreGraph {
	t.Helper()
	pts := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	ins, err := graph.NewInstance(4, graph.EuclideanLengthFunc(pts))
	require.NoError(t, err)
	g := graph.NewCoreGraph(ins)
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {0, 2}, {1, 3}} {
		_, err := g.AddEdge(p[0], p[1], true)
		require.NoError(t, err)
	}
	return g
}

func TestBranchTourFindWithNoConstraintsReturnsSomeTour(t *testing.T) {
	g := squareGraph(t)
	seq, length, err := abcsearch.BranchTourFind(g, nil)
	require.NoError(t, err)
	require.Len(t, seq, 4)
	require.Equal(t, int64(4), length) // unit-square 4-cycle at unit edge costs
}

func TestBranchTourFindHonorsWantAndAvoid(t *testing.T) {
	g := squareGraph(t)
	constraints := []abcsearch.EdgeConstraint{
		{U: 0, V: 1, Want: true},
		{U: 0, V: 2, Want: false}, // forbid a diagonal
	}
	seq, _, err := abcsearch.BranchTourFind(g, constraints)
	require.NoError(t, err)

	pos := make(map[int]int, len(seq))
	for i, v := range seq {
		pos[v] = i
	}
	require.True(t, adjacentInCycle(pos, 0, 1, len(seq)))
	require.False(t, adjacentInCycle(pos, 0, 2, len(seq)))
}

func TestBranchTourFindRejectsOverDeterminedNode(t *testing.T) {
	g := squareGraph(t)
	constraints := []abcsearch.EdgeConstraint{
		{U: 0, V: 1, Want: true},
		{U: 0, V: 2, Want: true},
		{U: 0, V: 3, Want: true}, // node 0 would need degree 3
	}
	_, _, err := abcsearch.BranchTourFind(g, constraints)
	require.ErrorIs(t, err, abcsearch.ErrInfeasibleNode)
}

func adjacentInCycle(pos map[int]int, u, v, n int) bool {
	d := pos[u] - pos[v]
	if d < 0 {
		d = -d
	}
	return d == 1 || d == n-1
}
