package abcsearch_test

import (
	"testing"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/stretchr/testify/require"
)

func TestRootIsRootAndNotVisited(t *testing.T) {
	root := abcsearch.NewRoot()
	require.True(t, root.IsRoot())
	require.False(t, root.Visited())
	require.Equal(t, abcsearch.NeedsCut, root.Status)
}

func TestNewChildDepthAndVisited(t *testing.T) {
	root := abcsearch.NewRoot()
	child := abcsearch.NewChild(root, 0, 1, abcsearch.Up, 10, 9.5)
	require.False(t, child.IsRoot())
	require.Equal(t, 1, child.Depth)
	require.Equal(t, abcsearch.Up, child.Direction)
	require.False(t, child.Visited())

	child.Status = abcsearch.Done
	require.True(t, child.Visited())
}

func TestDirString(t *testing.T) {
	require.Equal(t, "Down", abcsearch.Down.String())
	require.Equal(t, "Up", abcsearch.Up.String())
	require.Equal(t, abcsearch.Down, abcsearch.DirFromInt(0))
	require.Equal(t, abcsearch.Up, abcsearch.DirFromInt(1))
}

func TestTourWorsePrefersUnvisitedThenShorterEstimate(t *testing.T) {
	root := abcsearch.NewRoot()
	short := abcsearch.NewChild(root, 0, 1, abcsearch.Up, 100, 0)
	long := abcsearch.NewChild(root, 1, 2, abcsearch.Up, 200, 0)
	done := abcsearch.NewChild(root, 2, 3, abcsearch.Up, 50, 0)
	done.Status = abcsearch.Done

	require.True(t, abcsearch.TourWorse(long, short))  // longer estimate ranks worse
	require.False(t, abcsearch.TourWorse(short, long))
	require.True(t, abcsearch.TourWorse(done, short)) // visited always ranks worse than unvisited
}

func TestBoundWorsePrefersUnvisitedThenLowerEstimate(t *testing.T) {
	root := abcsearch.NewRoot()
	tight := abcsearch.NewChild(root, 0, 1, abcsearch.Up, 0, 10)
	loose := abcsearch.NewChild(root, 1, 2, abcsearch.Up, 0, 20)

	require.True(t, abcsearch.BoundWorse(loose, tight))
	require.False(t, abcsearch.BoundWorse(tight, loose))
}
