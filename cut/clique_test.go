package cut_test

import (
	"testing"

	"github.com/corecut/abctsp/cut"
	"github.com/stretchr/testify/require"
)

// savedTour/perm for a 6-node tour 0-1-2-3-4-5-0.
func sixTour() (tour, perm []int) {
	tour = []int{0, 1, 2, 3, 4, 5}
	perm = make([]int, 6)
	for pos, node := range tour {
		perm[node] = pos
	}
	return
}

func TestCliqueRoundTrip(t *testing.T) {
	tour, perm := sixTour()
	c, err := cut.NewCliqueFromNodes([]int{1, 2, 3}, tour, perm)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, c.Nodes(tour))
	require.Equal(t, 3, c.Size())
}

func TestCliqueMergesUnorderedRunIntoOneSegment(t *testing.T) {
	tour, perm := sixTour()
	c, err := cut.NewCliqueFromNodes([]int{3, 1, 2}, tour, perm)
	require.NoError(t, err)
	require.Len(t, c.Segments(), 1)
}

func TestCliqueWraparoundJoinsIntoOneSegment(t *testing.T) {
	tour, perm := sixTour()
	c, err := cut.NewCliqueFromNodes([]int{5, 0, 1}, tour, perm)
	require.NoError(t, err)
	require.Len(t, c.Segments(), 1)
	require.True(t, c.ContainsNode(perm, 5))
	require.True(t, c.ContainsNode(perm, 0))
	require.True(t, c.ContainsNode(perm, 1))
	require.False(t, c.ContainsNode(perm, 2))
}

func TestCliqueRejectsEmptyAndFullSets(t *testing.T) {
	tour, perm := sixTour()
	_, err := cut.NewCliqueFromNodes(nil, tour, perm)
	require.ErrorIs(t, err, cut.ErrEmptyNodeSet)

	_, err = cut.NewCliqueFromNodes([]int{0, 1, 2, 3, 4, 5}, tour, perm)
	require.ErrorIs(t, err, cut.ErrFullNodeSet)
}

func TestCliqueRejectsDuplicateNode(t *testing.T) {
	tour, perm := sixTour()
	_, err := cut.NewCliqueFromNodes([]int{1, 1, 2}, tour, perm)
	require.ErrorIs(t, err, cut.ErrDuplicateNode)
}
