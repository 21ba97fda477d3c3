package cut_test

import (
	"testing"

	"github.com/corecut/abctsp/cut"
	"github.com/stretchr/testify/require"
)

func mkSubtour(t *testing.T, bank *cut.CliqueBank, perm []int, nodes []int) *cut.HyperGraph {
	t.Helper()
	c, err := bank.Intern(nodes)
	require.NoError(t, err)
	hg, err := cut.NewHyperGraph(cut.Greater, 2, perm, []*cut.Clique{c}, nil)
	require.NoError(t, err)
	return hg
}

func TestExternalCutsAddAndAt(t *testing.T) {
	tour, perm := sixTour()
	cb := cut.NewCliqueBank(tour, perm)
	ec := cut.NewExternalCuts(cb, cut.NewToothBank(tour, perm))

	h1 := mkSubtour(t, cb, perm, []int{1, 2})
	ec.Add(h1)
	got, err := ec.At(0)
	require.NoError(t, err)
	require.Same(t, h1, got)
	require.Equal(t, 1, ec.Len())
}

func TestExternalCutsRemoveExpelsRows(t *testing.T) {
	tour, perm := sixTour()
	cb := cut.NewCliqueBank(tour, perm)
	ec := cut.NewExternalCuts(cb, cut.NewToothBank(tour, perm))

	h1 := mkSubtour(t, cb, perm, []int{1, 2})
	h2 := mkSubtour(t, cb, perm, []int{3, 4})
	ec.Add(h1)
	ec.Add(h2)

	require.NoError(t, ec.Remove([]bool{true, false}))
	require.Equal(t, 1, ec.Len())
	require.Len(t, ec.Expelled(), 1)
	require.Same(t, h1, ec.Expelled()[0])
}

func TestExternalCutsEvictsOldestAtCapacity(t *testing.T) {
	tour, perm := sixTour()
	cb := cut.NewCliqueBank(tour, perm)
	ec := cut.NewExternalCuts(cb, cut.NewToothBank(tour, perm))
	ec.SetCapacity(1)

	h1 := mkSubtour(t, cb, perm, []int{1, 2})
	h1.PivotAge = 5
	ec.Add(h1)

	h2 := mkSubtour(t, cb, perm, []int{3, 4})
	ec.Add(h2)

	require.Equal(t, 1, ec.Len())
	got, err := ec.At(0)
	require.NoError(t, err)
	require.Same(t, h2, got)
	require.Len(t, ec.Expelled(), 1)
}
