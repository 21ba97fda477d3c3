package dp_test

import (
	"testing"

	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/dp"
	"github.com/corecut/abctsp/separator"
	"github.com/stretchr/testify/require"
)

func hexCycle() []separator.SupportEdge {
	mk := func(u, v, idx int) separator.SupportEdge {
		return separator.SupportEdge{U: u, V: v, Weight: 1, EdgeIdx: idx}
	}
	return []separator.SupportEdge{
		mk(0, 1, 0), mk(1, 2, 1), mk(2, 3, 2),
		mk(3, 4, 3), mk(4, 5, 4), mk(5, 0, 5),
	}
}

func TestDominoParitySeparateProducesWellFormedCuts(t *testing.T) {
	tour := []int{0, 1, 2, 3, 4, 5}
	perm := []int{0, 1, 2, 3, 4, 5}
	cb := cut.NewCliqueBank(tour, perm)
	tb := cut.NewToothBank(tour, perm)

	sep := &dp.DominoParity{CliqueBank: cb, ToothBank: tb, Perm: perm, Eps: 1e-6}
	cands, err := sep.Separate(6, hexCycle())
	require.NoError(t, err)

	for _, c := range cands {
		require.Equal(t, cut.KindDomino, c.HG.Kind())
		require.True(t, len(c.HG.Teeth) >= 3)
		require.True(t, len(c.HG.Teeth)%2 == 1)
		require.Equal(t, cut.Greater, c.HG.Sense)
		require.Len(t, c.ColIdx, len(c.ColVal))
	}
}

func TestFindLightTeethOnHexCycle(t *testing.T) {
	teeth := dp.FindLightTeeth(6, hexCycle(), 1e-6)
	require.Len(t, teeth, 6)
	// A one-node body crosses exactly 2 = |B|+1 (slack 0, not light); the
	// lightest body is the two nodes after the root, crossing 2 < 3.
	for _, tt := range teeth {
		require.InDelta(t, 1, tt.Slack, 1e-9)
		require.Equal(t, (tt.Lo+1)%6, tt.Hi)
	}
}
