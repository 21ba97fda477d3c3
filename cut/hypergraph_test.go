package cut_test

import (
	"testing"

	"github.com/corecut/abctsp/cut"
	"github.com/stretchr/testify/require"
)

func TestCoeffOfSubtour(t *testing.T) {
	tour, perm := sixTour()
	bank := cut.NewCliqueBank(tour, perm)
	h1, err := bank.Intern([]int{1, 2, 3})
	require.NoError(t, err)

	hg, err := cut.NewHyperGraph(cut.Greater, 2, perm, []*cut.Clique{h1}, nil)
	require.NoError(t, err)
	require.Equal(t, cut.KindSubtour, hg.Kind())

	require.Equal(t, 1, hg.CoeffOf(1, 4)) // crosses
	require.Equal(t, 0, hg.CoeffOf(1, 2)) // both inside
	require.Equal(t, 0, hg.CoeffOf(0, 4)) // both outside
}

func TestCoeffOfComb(t *testing.T) {
	tour, perm := sixTour()
	bank := cut.NewCliqueBank(tour, perm)
	handle, err := bank.Intern([]int{0, 1})
	require.NoError(t, err)
	t1, err := bank.Intern([]int{2})
	require.NoError(t, err)
	t2, err := bank.Intern([]int{4})
	require.NoError(t, err)

	hg, err := cut.NewHyperGraph(cut.Greater, 4, perm, []*cut.Clique{handle, t1, t2}, nil)
	require.NoError(t, err)
	require.Equal(t, cut.KindComb, hg.Kind())
	require.Equal(t, 2, hg.CoeffOf(1, 2))
}

func TestCoeffOfDomino(t *testing.T) {
	tour, perm := sixTour()
	cliques := cut.NewCliqueBank(tour, perm)
	teeth := cut.NewToothBank(tour, perm)

	handle, err := cliques.Intern([]int{0, 1})
	require.NoError(t, err)
	tooth, err := teeth.Intern([]int{2}, []int{3, 4})
	require.NoError(t, err)

	hg, err := cut.NewHyperGraph(cut.Greater, 3, perm, []*cut.Clique{handle}, []*cut.Tooth{tooth})
	require.NoError(t, err)
	require.Equal(t, cut.KindDomino, hg.Kind())

	require.Equal(t, 1, hg.CoeffOf(3, 4)) // both in tooth body
	require.Equal(t, 1, hg.CoeffOf(0, 1)) // both in handle
	require.Equal(t, 0, hg.CoeffOf(2, 3)) // root-body straddle, floor(1/2)=0
}

func TestNewHyperGraphRejectsEmptyCliques(t *testing.T) {
	_, perm := sixTour()
	_, err := cut.NewHyperGraph(cut.Greater, 1, perm, nil, nil)
	require.ErrorIs(t, err, cut.ErrNoCliques)
}

func TestRawHyperGraphCoeffOf(t *testing.T) {
	hg, err := cut.NewRawHyperGraph(cut.Greater, 3, map[[2]int]int{
		{0, 1}: 2,
		{2, 4}: 1,
	})
	require.NoError(t, err)
	require.Equal(t, cut.KindNon, hg.Kind())

	require.Equal(t, 2, hg.CoeffOf(0, 1))
	require.Equal(t, 2, hg.CoeffOf(1, 0)) // order-independent
	require.Equal(t, 1, hg.CoeffOf(2, 4))
	require.Equal(t, 0, hg.CoeffOf(1, 2)) // absent pair
}

func TestNewRawHyperGraphRejectsAllZero(t *testing.T) {
	_, err := cut.NewRawHyperGraph(cut.Greater, 1, map[[2]int]int{{0, 1}: 0})
	require.ErrorIs(t, err, cut.ErrEmptyRaw)
}
