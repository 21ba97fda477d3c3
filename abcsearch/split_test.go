package abcsearch_test

import (
	"testing"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/stretchr/testify/require"
)

func TestSplitProducesDownAndUpChildren(t *testing.T) {
	g := squareGraph(t)
	root := abcsearch.NewRoot()
	edge := abcsearch.ScoreTuple{
		Candidate: abcsearch.Candidate{U: 0, V: 2},
		DownObj:   4,
		UpObj:     6,
	}

	down, up := abcsearch.Split(g, root, edge)

	require.Equal(t, abcsearch.Down, down.Direction)
	require.Equal(t, abcsearch.Up, up.Direction)
	require.Equal(t, 0, down.U)
	require.Equal(t, 2, down.V)
	require.NotEqual(t, abcsearch.Pruned, down.Status)
	require.NotEqual(t, abcsearch.Pruned, up.Status)
	require.NotEmpty(t, down.EstimateSeq)
	require.NotEmpty(t, up.EstimateSeq)
}

func TestSplitPrunesWhenUpBranchIsOverDetermined(t *testing.T) {
	g := squareGraph(t)
	root := abcsearch.NewChild(abcsearch.NewRoot(), 0, 1, abcsearch.Up, 0, 0)
	mid := abcsearch.NewChild(root, 0, 2, abcsearch.Up, 0, 0)
	// node 0 already forced to degree 2 via its two ancestors; forcing a
	// third edge on node 0 up makes the up branch infeasible.
	edge := abcsearch.ScoreTuple{
		Candidate: abcsearch.Candidate{U: 0, V: 3},
		DownObj:   4,
		UpObj:     6,
	}

	_, up := abcsearch.Split(g, mid, edge)
	require.Equal(t, abcsearch.Pruned, up.Status)
}
