package graphutil_test

import (
	"math/rand"
	"testing"

	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/internal/graphutil"
	"github.com/stretchr/testify/require"
)

func pentagon(t *testing.T) *graph.Instance {
	t.Helper()
	pts := [][2]float64{{0, 0}, {2, 0}, {3, 2}, {1, 4}, {-1, 2}}
	ins, err := graph.NewInstance(5, graph.EuclideanLengthFunc(pts))
	require.NoError(t, err)
	return ins
}

func TestKNearestReturnsSortedNeighborsExcludingSelf(t *testing.T) {
	ins := pentagon(t)
	nbrs, err := graphutil.KNearest(ins, 2)
	require.NoError(t, err)
	require.Len(t, nbrs, 5)
	for u, list := range nbrs {
		require.Len(t, list, 2)
		for _, v := range list {
			require.NotEqual(t, u, v)
		}
	}
}

func TestKNearestClampsKToNMinusOne(t *testing.T) {
	ins := pentagon(t)
	nbrs, err := graphutil.KNearest(ins, 100)
	require.NoError(t, err)
	for _, list := range nbrs {
		require.Len(t, list, 4)
	}
}

func TestLKUnionEdgesAreCanonicalAndDeduplicated(t *testing.T) {
	ins := pentagon(t)
	edges, err := graphutil.LKUnionEdges(ins, 2)
	require.NoError(t, err)

	seen := make(map[[2]int]bool)
	for _, e := range edges {
		require.Less(t, e[0], e[1])
		require.False(t, seen[e])
		seen[e] = true
	}
}

func TestRelativeNeighborhoodEdgesAreCanonicalAndTouchEveryNode(t *testing.T) {
	ins := pentagon(t)
	edges, err := graphutil.RelativeNeighborhoodEdges(ins)
	require.NoError(t, err)
	require.NotEmpty(t, edges)

	deg := make([]int, 5)
	for _, e := range edges {
		require.Less(t, e[0], e[1])
		deg[e[0]]++
		deg[e[1]]++
	}
	for _, d := range deg {
		require.Greater(t, d, 0)
	}
}

func TestRandomEuclideanPointsIsSeedStable(t *testing.T) {
	rngA := rand.New(rand.NewSource(42))
	rngB := rand.New(rand.NewSource(42))

	a := graphutil.RandomEuclideanPoints(20, 100, rngA.Float64)
	b := graphutil.RandomEuclideanPoints(20, 100, rngB.Float64)
	require.Equal(t, a, b)
}
