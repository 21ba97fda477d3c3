package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateRequiresEitherRandomOrInputPath(t *testing.T) {
	o := runOptions{NodeRule: 0, CutPreset: 1, EdgeSet: 0}
	require.True(t, errors.Is(o.validate(), ErrNoInput))
}

func TestValidateRejectsBothRandomAndInputPath(t *testing.T) {
	o := runOptions{Random: true, InputPath: "berlin52.tsp", NodeRule: 0, CutPreset: 1, EdgeSet: 0}
	require.True(t, errors.Is(o.validate(), ErrConflictingInput))
}

func TestValidateAcceptsRandomAlone(t *testing.T) {
	o := runOptions{Random: true, NodeRule: 3, CutPreset: 0, EdgeSet: 1}
	require.NoError(t, o.validate())
}

func TestValidateAcceptsInputPathAlone(t *testing.T) {
	o := runOptions{InputPath: "berlin52.tsp", NodeRule: 1, CutPreset: 1, EdgeSet: 0}
	require.NoError(t, o.validate())
}

func TestValidateRejectsOutOfRangeNodeRule(t *testing.T) {
	o := runOptions{Random: true, NodeRule: 4}
	require.True(t, errors.Is(o.validate(), ErrBadNodeSelectRule))
}

func TestValidateRejectsOutOfRangeCutPreset(t *testing.T) {
	o := runOptions{Random: true, CutPreset: 2}
	require.True(t, errors.Is(o.validate(), ErrBadCutPreset))
}

func TestValidateRejectsOutOfRangeEdgeSet(t *testing.T) {
	o := runOptions{Random: true, EdgeSet: 2}
	require.True(t, errors.Is(o.validate(), ErrBadEdgeSet))
}
