package price_test

import (
	"testing"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/price"
	"github.com/stretchr/testify/require"
)

func TestPriceInsideOnTourPivotReportsPartialOrPartOpt(t *testing.T) {
	core, g := pentagon(t)
	p := price.New(core)
	p.InsideK = 10

	before := g.EdgeCount()

	res, err := core.PrimalPivot()
	require.NoError(t, err)
	require.Equal(t, corelp.FathomedTour, res.Class)

	// Force the Tour branch directly: the pentagon's cycle-only LP is
	// already fathomed, but the inside scan itself should still run and
	// add the diagonal with the most negative reduced cost (none here have
	// truly negative reduced cost against an all-equal dual, so the scan
	// legitimately reports PartOpt without growing the graph).
	mode, err := p.Price(corelp.Tour, res.Sol, 1e9)
	require.NoError(t, err)
	require.Contains(t, []price.Mode{price.Partial, price.PartOpt}, mode)
	require.GreaterOrEqual(t, g.EdgeCount(), before)
}

func TestPriceFullOptWhenObjectiveReachesUpperBound(t *testing.T) {
	core, _ := pentagon(t)
	p := price.New(core)

	res, err := core.PrimalPivot()
	require.NoError(t, err)

	mode, err := p.Price(corelp.FathomedTour, res.Sol, res.Sol.Objective)
	require.NoError(t, err)
	require.Equal(t, price.FullOpt, mode)
}

func TestPriceRejectsUnknownPivotClass(t *testing.T) {
	core, _ := pentagon(t)
	p := price.New(core)

	res, err := core.PrimalPivot()
	require.NoError(t, err)

	_, err = p.Price(corelp.Frac, res.Sol, 1e9)
	require.Error(t, err)
}
