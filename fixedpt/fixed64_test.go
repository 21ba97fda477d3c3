package fixedpt_test

import (
	"testing"

	"github.com/corecut/abctsp/fixedpt"
	"github.com/stretchr/testify/require"
)

func TestFromIntRoundTrips(t *testing.T) {
	f := fixedpt.FromInt(42)
	require.InDelta(t, 42.0, f.Float(), 1e-9)
}

func TestFromFloatRounds(t *testing.T) {
	f := fixedpt.FromFloat(3.125)
	require.InDelta(t, 3.125, f.Float(), 1e-6)
}

func TestAddMultAccumulates(t *testing.T) {
	dual := fixedpt.FromFloat(1.5)
	base := fixedpt.FromInt(0)
	got := base.AddMult(dual, 3)
	require.InDelta(t, 4.5, got.Float(), 1e-6)
}

func TestCeilRoundsUpFractional(t *testing.T) {
	f := fixedpt.FromFloat(10.2)
	require.InDelta(t, 11.0, f.Ceil().Float(), 1e-9)

	whole := fixedpt.FromInt(7)
	require.InDelta(t, 7.0, whole.Ceil().Float(), 1e-9)
}

func TestComparisons(t *testing.T) {
	a := fixedpt.FromInt(2)
	b := fixedpt.FromInt(3)
	require.True(t, a.Less(b))
	require.True(t, b.Greater(a))
	require.True(t, a.Equal(fixedpt.FromInt(2)))
}
