package relax_test

import (
	"testing"

	"github.com/corecut/abctsp/relax"
	"github.com/stretchr/testify/require"
)

// TestSimpleEqualityLP solves min x+y s.t. x+y=2, x,y>=0; optimum is 2 at
// any point on the segment (degenerate objective), exercising Equal rows
// and the Big-M artificial-duals identity.
func TestSimpleEqualityLP(t *testing.T) {
	r := relax.NewGonumRelaxation()
	row, err := r.NewRow(relax.Equal, 2)
	require.NoError(t, err)

	x, err := r.AddCol(1, []int{row}, []float64{1}, relax.Bounds{Lower: 0, Upper: 1e18})
	require.NoError(t, err)
	y, err := r.AddCol(1, []int{row}, []float64{1}, relax.Bounds{Lower: 0, Upper: 1e18})
	require.NoError(t, err)

	sol, err := r.PrimalOpt()
	require.NoError(t, err)
	require.Equal(t, relax.Optimal, sol.Status)
	require.InDelta(t, 2, sol.Objective, 1e-6)
	require.InDelta(t, 2, sol.X[x]+sol.X[y], 1e-6)
}

// TestGreaterCutForcesNonzero checks a >= 2 cut over two edges forces their
// sum up from an unconstrained optimum of 0.
func TestGreaterCutForcesNonzero(t *testing.T) {
	r := relax.NewGonumRelaxation()
	x, err := r.AddCol(1, nil, nil, relax.Bounds{Lower: 0, Upper: 1e18})
	require.NoError(t, err)
	y, err := r.AddCol(1, nil, nil, relax.Bounds{Lower: 0, Upper: 1e18})
	require.NoError(t, err)

	_, err = r.AddCut(relax.Greater, 2, []int{x, y}, []float64{1, 1})
	require.NoError(t, err)

	sol, err := r.PrimalOpt()
	require.NoError(t, err)
	require.Equal(t, relax.Optimal, sol.Status)
	require.InDelta(t, 2, sol.Objective, 1e-6)
}

// TestTightenBoundFixesColumn verifies an upper-bound row pins a column at 0.
func TestTightenBoundFixesColumn(t *testing.T) {
	r := relax.NewGonumRelaxation()
	row, err := r.NewRow(relax.Greater, 1)
	require.NoError(t, err)
	x, err := r.AddCol(-1, []int{row}, []float64{1}, relax.Bounds{Lower: 0, Upper: 1e18})
	require.NoError(t, err)

	require.NoError(t, r.TightenBound(x, 'U', 0))
	sol, err := r.PrimalRecover()
	require.NoError(t, err)
	require.Equal(t, relax.Infeasible, sol.Status)
}
