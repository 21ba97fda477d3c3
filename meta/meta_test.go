package meta_test

import (
	"testing"

	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/meta"
	"github.com/corecut/abctsp/separator"
	"github.com/stretchr/testify/require"
)

// tenCycleSupport is a 10-node cycle: handle nodes 0-2, tooth nodes 3-6,
// free nodes 7-9 left for teething to pick up.
func tenCycleSupport() []separator.SupportEdge {
	var edges []separator.SupportEdge
	for i := 0; i < 10; i++ {
		edges = append(edges, separator.SupportEdge{U: i, V: (i + 1) % 10, Weight: 1, EdgeIdx: i})
	}
	return edges
}

func sampleComb(t *testing.T, cb *cut.CliqueBank, perm []int) *cut.HyperGraph {
	handle, err := cb.Intern([]int{0, 1, 2})
	require.NoError(t, err)
	t1, err := cb.Intern([]int{3})
	require.NoError(t, err)
	t2, err := cb.Intern([]int{4})
	require.NoError(t, err)
	t3, err := cb.Intern([]int{5})
	require.NoError(t, err)
	t4, err := cb.Intern([]int{6})
	require.NoError(t, err)
	hg, err := cut.NewHyperGraph(cut.Greater, 10, perm, []*cut.Clique{handle, t1, t2, t3, t4}, nil)
	require.NoError(t, err)
	return hg
}

func TestGenerateProducesWellFormedCandidates(t *testing.T) {
	tour := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	perm := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	cb := cut.NewCliqueBank(tour, perm)
	tb := cut.NewToothBank(tour, perm)

	comb := sampleComb(t, cb, perm)
	cands := meta.Generate(cb, tb, perm, []*cut.HyperGraph{comb}, tenCycleSupport(), 1e-6)
	require.NotEmpty(t, cands)

	for _, c := range cands {
		require.Equal(t, cut.Greater, c.HG.Sense)
		require.True(t, len(c.HG.Cliques) >= 4)
		require.Len(t, c.ColIdx, len(c.ColVal))
	}
}
