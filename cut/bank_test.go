package cut_test

import (
	"testing"

	"github.com/corecut/abctsp/cut"
	"github.com/stretchr/testify/require"
)

func TestCliqueBankInternsByValue(t *testing.T) {
	tour, perm := sixTour()
	bank := cut.NewCliqueBank(tour, perm)

	a, err := bank.Intern([]int{1, 2, 3})
	require.NoError(t, err)
	b, err := bank.Intern([]int{3, 2, 1})
	require.NoError(t, err)

	require.Same(t, a, b)
	require.Equal(t, 1, bank.Len())
	require.Equal(t, 2, bank.RefCount(a))
}

func TestCliqueBankEvictsAtZeroRefcount(t *testing.T) {
	tour, perm := sixTour()
	bank := cut.NewCliqueBank(tour, perm)

	a, err := bank.Intern([]int{1, 2})
	require.NoError(t, err)
	bank.Release(a)
	require.Equal(t, 0, bank.Len())
}

func TestToothBankRejectsOverlap(t *testing.T) {
	tour, perm := sixTour()
	bank := cut.NewToothBank(tour, perm)

	_, err := bank.Intern([]int{1}, []int{1, 2})
	require.ErrorIs(t, err, cut.ErrOverlappingToothParts)
}

func TestToothBankInternsDistinctPairs(t *testing.T) {
	tour, perm := sixTour()
	bank := cut.NewToothBank(tour, perm)

	a, err := bank.Intern([]int{0}, []int{1, 2})
	require.NoError(t, err)
	b, err := bank.Intern([]int{0}, []int{1, 2})
	require.NoError(t, err)
	require.Same(t, a, b)

	c, err := bank.Intern([]int{3}, []int{4, 5})
	require.NoError(t, err)
	require.NotSame(t, a, c)
	require.Equal(t, 2, bank.Len())
}
