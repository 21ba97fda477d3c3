package abcsearch_test

import (
	"testing"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/stretchr/testify/require"
)

func TestDFSSelectorIsLIFO(t *testing.T) {
	s := abcsearch.NewDFSSelector()
	root := abcsearch.NewRoot()
	a := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 0, 0)
	b := abcsearch.NewChild(root, 1, 2, abcsearch.Down, 0, 0)
	s.Push(a)
	s.Push(b)

	n, ok := s.Next()
	require.True(t, ok)
	require.Same(t, b, n)

	n, ok = s.Next()
	require.True(t, ok)
	require.Same(t, a, n)

	_, ok = s.Next()
	require.False(t, ok)
}

func TestDFSSelectorSkipsVisited(t *testing.T) {
	s := abcsearch.NewDFSSelector()
	root := abcsearch.NewRoot()
	a := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 0, 0)
	a.Status = abcsearch.Done
	b := abcsearch.NewChild(root, 1, 2, abcsearch.Down, 0, 0)
	s.Push(a)
	s.Push(b)

	n, ok := s.Next()
	require.True(t, ok)
	require.Same(t, b, n)

	_, ok = s.Next()
	require.False(t, ok)
}

func TestTourSelectorPopsShortestEstimateFirst(t *testing.T) {
	s := abcsearch.NewTourSelector()
	root := abcsearch.NewRoot()
	long := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 200, 0)
	short := abcsearch.NewChild(root, 1, 2, abcsearch.Down, 50, 0)
	s.Push(long)
	s.Push(short)

	n, ok := s.Next()
	require.True(t, ok)
	require.Same(t, short, n)

	n, ok = s.Next()
	require.True(t, ok)
	require.Same(t, long, n)
}

func TestBoundSelectorPopsLowestLPEstimateFirst(t *testing.T) {
	s := abcsearch.NewBoundSelector()
	root := abcsearch.NewRoot()
	tight := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 0, 10)
	loose := abcsearch.NewChild(root, 1, 2, abcsearch.Down, 0, 20)
	s.Push(loose)
	s.Push(tight)

	n, ok := s.Next()
	require.True(t, ok)
	require.Same(t, tight, n)
}

func TestInterleavedSelectorUsesBoundQueueOnEveryTenthCall(t *testing.T) {
	s := abcsearch.NewInterleavedSelector()
	root := abcsearch.NewRoot()

	// Best-tour order: short first. Best-bound order: tight first.
	shortTour := abcsearch.NewChild(root, 0, 1, abcsearch.Down, 10, 999)
	tightBound := abcsearch.NewChild(root, 1, 2, abcsearch.Down, 999, 1)
	s.Push(shortTour)
	s.Push(tightBound)

	for i := 0; i < abcsearch.InterleaveFreq-1; i++ {
		n, ok := s.Next()
		require.True(t, ok)
		require.Same(t, shortTour, n)
		s.Push(shortTour) // re-push so the queue never drains before the 10th call
		shortTour.Status = abcsearch.NeedsCut
	}

	n, ok := s.Next()
	require.True(t, ok)
	require.Same(t, tightBound, n)
}
