package tour_test

import (
	"testing"

	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/tour"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T) *graph.CoreGraph {
	t.Helper()
	pts := [][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	ins, err := graph.NewInstance(4, graph.EuclideanLengthFunc(pts))
	require.NoError(t, err)

	g := graph.NewCoreGraph(ins)
	type pair struct{ u, v int }
	for _, p := range []pair{{0, 1}, {1, 2}, {2, 3}, {0, 3}, {0, 2}, {1, 3}} {
		_, err := g.AddEdge(p.u, p.v, true)
		require.NoError(t, err)
	}
	return g
}

func TestNewBuildsTourLengthAndPerm(t *testing.T) {
	g := square(t)
	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2, 3}, at.Sequence())
	require.Equal(t, []int{0, 1, 2, 3}, at.Perm())
	require.EqualValues(t, 40, at.Length()) // four unit sides of length 10
}

func TestNewPopulatesIncidenceOverTourEdgesOnly(t *testing.T) {
	g := square(t)
	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)

	inc := at.Incidence()
	require.Len(t, inc, g.EdgeCount())

	for i := 0; i < g.EdgeCount(); i++ {
		e, err := g.Edge(i)
		require.NoError(t, err)
		onTour := (e.End == [2]int{0, 1}) || (e.End == [2]int{1, 2}) ||
			(e.End == [2]int{2, 3}) || (e.End == [2]int{0, 3})
		if onTour {
			require.Equal(t, 1.0, inc[i])
		} else {
			require.Equal(t, 0.0, inc[i])
		}
	}
}

func TestNewRejectsWrongLength(t *testing.T) {
	g := square(t)
	_, err := tour.New(g, []int{0, 1, 2})
	require.ErrorIs(t, err, tour.ErrBadTourLength)
}

func TestNewRejectsNonPermutation(t *testing.T) {
	g := square(t)
	_, err := tour.New(g, []int{0, 1, 1, 3})
	require.ErrorIs(t, err, tour.ErrNotPermutation)

	_, err = tour.New(g, []int{0, 1, 2, 4})
	require.ErrorIs(t, err, tour.ErrNotPermutation)
}

func TestNewRejectsMissingTourEdge(t *testing.T) {
	ins, err := graph.NewInstance(4, graph.EuclideanLengthFunc([][2]float64{{0, 0}, {10, 0}, {10, 10}, {0, 10}}))
	require.NoError(t, err)
	g := graph.NewCoreGraph(ins)
	// Only three of the four cycle edges exist; (3,0) is missing.
	for _, p := range [][2]int{{0, 1}, {1, 2}, {2, 3}} {
		_, err := g.AddEdge(p[0], p[1], true)
		require.NoError(t, err)
	}

	_, err = tour.New(g, []int{0, 1, 2, 3})
	require.ErrorIs(t, err, tour.ErrMissingTourEdge)
}

func TestBasisRoundTripsNilUntilSet(t *testing.T) {
	g := square(t)
	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)
	require.Nil(t, at.Basis())

	b := &relax.Basis{}
	at.SetBasis(b)
	require.Same(t, b, at.Basis())
}

func TestBeforeReflectsCyclicOrderFromAnchor(t *testing.T) {
	g := square(t)
	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)

	require.True(t, at.Before(0, 1, 2))
	require.True(t, at.Before(0, 2, 3))
	require.False(t, at.Before(0, 3, 1))

	// Anchoring from a different node rotates which pair compares true.
	require.True(t, at.Before(2, 3, 0))
	require.False(t, at.Before(2, 0, 3))
}

func TestResizeIncidenceGrowsOnAppend(t *testing.T) {
	g := square(t)
	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)

	before := append([]float64(nil), at.Incidence()...)
	at.ResizeIncidence(len(before)+1, nil)

	grown := at.Incidence()
	require.Len(t, grown, len(before)+1)
	require.Equal(t, before, grown[:len(before)])
	require.Equal(t, 0.0, grown[len(grown)-1])
}

func TestResizeIncidenceRemapsOnRemoval(t *testing.T) {
	g := square(t)
	at, err := tour.New(g, []int{0, 1, 2, 3})
	require.NoError(t, err)

	// The two diagonals (0,2) and (1,3) are the last two, non-tour edges;
	// find their indices and drop one, simulating CoreGraph.RemoveEdges'
	// old-index -> new-index remap contract.
	diagIdx, ok := g.HasEdge(1, 3)
	require.True(t, ok)

	before := at.Incidence()
	remap := make([]int, len(before))
	newSize := 0
	for i := range remap {
		if i == diagIdx {
			remap[i] = -1
			continue
		}
		remap[i] = newSize
		newSize++
	}

	at.ResizeIncidence(newSize, remap)
	after := at.Incidence()
	require.Len(t, after, newSize)
	for old, nv := range remap {
		if nv < 0 {
			continue
		}
		require.Equal(t, before[old], after[nv])
	}
}
