package abcsearch_test

import (
	"testing"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/stretchr/testify/require"
)

func TestBranchHistoryAppendAndLen(t *testing.T) {
	root := abcsearch.NewRoot()
	h := abcsearch.NewBranchHistory(root)
	require.Equal(t, 1, h.Len())

	down := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 0, 0)
	up := abcsearch.NewChild(root, 0, 1, abcsearch.Up, 0, 0)
	h.Append(down)
	h.Append(up)
	require.Equal(t, 3, h.Len())
	require.ElementsMatch(t, []*abcsearch.BranchNode{root, down, up}, h.All())
}

func TestBranchHistoryPruneKeepsAncestorsAndUnvisited(t *testing.T) {
	root := abcsearch.NewRoot()
	h := abcsearch.NewBranchHistory(root)

	down := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 0, 0)
	up := abcsearch.NewChild(root, 0, 1, abcsearch.Up, 0, 0)
	h.Append(down)
	h.Append(up)

	down.Status = abcsearch.Done
	grandchild := abcsearch.NewChild(up, 1, 2, abcsearch.Up, 0, 0)
	h.Append(grandchild)

	removed := h.Prune(grandchild)
	require.Equal(t, 1, removed) // only the finished sibling (down) is erased
	require.Equal(t, 3, h.Len())

	remaining := h.All()
	require.NotContains(t, remaining, down)
	require.Contains(t, remaining, root) // ancestor of keep, retained regardless of Status
	require.Contains(t, remaining, up)   // ancestor of keep
}
