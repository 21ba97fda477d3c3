package separator_test

import (
	"testing"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/separator"
	"github.com/stretchr/testify/require"
)

type stubSeparator struct {
	name  string
	cuts  []corelp.CutCandidate
	calls *int
}

func (s stubSeparator) Name() string { return s.name }
func (s stubSeparator) Separate(n int, edges []separator.SupportEdge) ([]corelp.CutCandidate, error) {
	*s.calls++
	return s.cuts, nil
}

func manyCuts(n int) []corelp.CutCandidate {
	out := make([]corelp.CutCandidate, n)
	return out
}

func TestPipelineShortCircuitsAfterThreshold(t *testing.T) {
	var execCalls, blossomCalls, combCalls, dpCalls int
	exact := stubSeparator{name: "exact", cuts: manyCuts(separator.DefaultQueueThreshold), calls: &execCalls}
	blossom := stubSeparator{name: "blossom", calls: &blossomCalls}
	comb := stubSeparator{name: "comb", calls: &combCalls}
	dp := stubSeparator{name: "dp", calls: &dpCalls}

	p := separator.New(exact, blossom, comb, dp)
	cands, err := p.FindCuts(6, nil)
	require.NoError(t, err)
	require.Len(t, cands, separator.DefaultQueueThreshold)
	require.Equal(t, 1, execCalls)
	require.Equal(t, 0, blossomCalls)
	require.Equal(t, 0, combCalls)
	require.Equal(t, 0, dpCalls)
}

func TestPipelineInvokesDPOnlyWhenSegmentsEmpty(t *testing.T) {
	var execCalls, blossomCalls, combCalls, dpCalls int
	exact := stubSeparator{name: "exact", calls: &execCalls}
	blossom := stubSeparator{name: "blossom", calls: &blossomCalls}
	comb := stubSeparator{name: "comb", calls: &combCalls}
	dp := stubSeparator{name: "dp", calls: &dpCalls}

	p := separator.New(exact, blossom, comb, dp)
	_, err := p.FindCuts(6, nil)
	require.NoError(t, err)
	require.Equal(t, 1, dpCalls)
}
