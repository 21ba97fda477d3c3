package graph_test

import (
	"testing"

	"github.com/corecut/abctsp/graph"
	"github.com/stretchr/testify/require"
)

func square() *graph.Instance {
	pts := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	ins, err := graph.NewInstance(4, graph.EuclideanLengthFunc(pts))
	if err != nil {
		panic(err)
	}

	return ins
}

func TestAddEdgeCanonicalizesAndComputesLength(t *testing.T) {
	g := graph.NewCoreGraph(square())
	idx, err := g.AddEdge(2, 0, true)
	require.NoError(t, err)
	e, err := g.Edge(idx)
	require.NoError(t, err)
	require.Equal(t, [2]int{0, 2}, e.End)
	require.EqualValues(t, 14, e.Length) // diagonal of a 10x10 square
}

func TestAddEdgeRejectsDuplicateAndSelfLoop(t *testing.T) {
	g := graph.NewCoreGraph(square())
	_, err := g.AddEdge(0, 1, true)
	require.NoError(t, err)
	_, err = g.AddEdge(1, 0, true)
	require.ErrorIs(t, err, graph.ErrDuplicateEdge)
	_, err = g.AddEdge(2, 2, true)
	require.ErrorIs(t, err, graph.ErrSelfLoop)
}

func TestRemoveEdgesRenumbersAndUpdatesAdjacency(t *testing.T) {
	g := graph.NewCoreGraph(square())
	e01, _ := g.AddEdge(0, 1, true)
	e12, _ := g.AddEdge(1, 2, true)
	e23, _ := g.AddEdge(2, 3, true)

	remap, err := g.RemoveEdges([]int{e12})
	require.NoError(t, err)
	require.Equal(t, -1, remap[e12])
	require.GreaterOrEqual(t, remap[e01], 0)
	require.GreaterOrEqual(t, remap[e23], 0)
	require.Equal(t, 2, g.EdgeCount())

	adj1, err := g.Adjacent(1)
	require.NoError(t, err)
	require.Len(t, adj1, 1)
}

func TestRemoveEdgesRejectsNonRemovable(t *testing.T) {
	g := graph.NewCoreGraph(square())
	idx, _ := g.AddEdge(0, 1, false)
	_, err := g.RemoveEdges([]int{idx})
	require.ErrorIs(t, err, graph.ErrTourEdgeRemoval)
}
