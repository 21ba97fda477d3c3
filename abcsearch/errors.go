package abcsearch

import "errors"

// Sentinel errors for abcsearch operations.
var (
	// errNoFractionalCandidates indicates BranchEdge was called on an LP
	// solution with no fractional basic column to branch on.
	errNoFractionalCandidates = errors.New("abcsearch: no fractional candidate columns to branch on")

	// ErrNoUnvisitedNode indicates every enqueued node has already been
	// visited (the search is complete).
	ErrNoUnvisitedNode = errors.New("abcsearch: no unvisited branch node remains")

	// ErrUnknownEdge indicates a branching edge was not found in the core
	// graph at clamp/unclamp time.
	ErrUnknownEdge = errors.New("abcsearch: branching edge is not present in the core graph")
)
