// Package corelp integrates the graph, tour, cut, and relax packages into
// the primal pivot loop the rest of the search drives (spec.md §4.1 "CoreLP:
// the primal pivot loop"). CoreLP owns the Relaxation, ExternalCuts,
// ActiveTour, and a reference to the shared CoreGraph; no other component
// mutates the Relaxation directly (spec.md §5 "Concurrency / ownership
// model").
package corelp

import (
	"errors"

	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/tour"
	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("corelp")

// Sentinel errors for CoreLP operations.
var (
	// ErrNoActiveTour indicates an operation requiring an installed tour
	// was attempted before one was set.
	ErrNoActiveTour = errors.New("corelp: no active tour installed")

	// ErrCutNotTight describes a cut whose tour activity does not equal its
	// right-hand side (spec.md §4.1 "Cut addition"). AddCuts skips such cuts
	// without returning this error.
	ErrCutNotTight = errors.New("corelp: cut is not tight at the active tour")

	// ErrDesyncedCutRows indicates ExternalCuts and the Relaxation's
	// external row range have drifted out of the required 1:1 alignment.
	ErrDesyncedCutRows = errors.New("corelp: LP rows and ExternalCuts rows are not aligned")
)

// Tolerances collects the epsilon set every CoreLP decision is made against
// (spec.md §6 "Tolerances"): Zero distinguishes a numerically-zero LP value
// from a genuinely fractional one, Cut is the minimum violation a candidate
// cut must clear to be added, and DualDust is how far a cut's tour activity
// may sit from its rhs before PruneCuts treats the row as slack and removes it.
type Tolerances struct {
	Zero     float64
	Cut      float64
	DualDust float64
}

// DefaultTolerances mirrors the values original_source's cut/pivot code
// uses throughout: 1e-6 for LP-zero tests, a looser 1e-4 for cut-violation
// and dual-dust tests since both accumulate more rounding error than a
// plain primal value.
var DefaultTolerances = Tolerances{Zero: 1e-6, Cut: 1e-4, DualDust: 1e-4}

// PivotClass classifies the outcome of a primal pivot (spec.md §4.1 contract).
type PivotClass int

const (
	// FathomedTour: the post-pivot objective equals the tour length and the
	// basis is dual-feasible; the current LP fully explains the tour.
	FathomedTour PivotClass = iota
	// Tour: the pivot discovered an integral, connected, strictly better tour.
	Tour
	// Subtour: integral 0/1 solution with a disconnected support graph.
	Subtour
	// Frac: at least one basic column has a fractional value.
	Frac
)

func (p PivotClass) String() string {
	switch p {
	case FathomedTour:
		return "FathomedTour"
	case Tour:
		return "Tour"
	case Subtour:
		return "Subtour"
	case Frac:
		return "Frac"
	default:
		return "Unknown"
	}
}

// CoreLP drives the primal pivot loop over a Relaxation, synchronizing
// ExternalCuts rows, the shared CoreGraph's edge set, and the ActiveTour's
// incidence/basis (spec.md §4.1).
type CoreLP struct {
	Graph *graph.CoreGraph
	Rel   relax.Relaxation
	Cuts  *cut.ExternalCuts
	Tour  *tour.ActiveTour
	Tol   Tolerances

	degreeRows int // number of initial degree-equation rows, always Graph.N()
}

// New builds a CoreLP over an already-populated Relaxation whose first
// degreeRows rows are the degree equations for g's nodes (one per node),
// and whose columns already correspond 1:1 with g's edges.
func New(g *graph.CoreGraph, rel relax.Relaxation, cuts *cut.ExternalCuts, t *tour.ActiveTour) *CoreLP {
	return &CoreLP{
		Graph:      g,
		Rel:        rel,
		Cuts:       cuts,
		Tour:       t,
		Tol:        DefaultTolerances,
		degreeRows: g.N(),
	}
}

// externalRow converts an absolute LP row index to an ExternalCuts-relative
// index, or -1 if it is a degree row.
func (c *CoreLP) externalRow(absRow int) int {
	rel := absRow - c.degreeRows
	if rel < 0 {
		return -1
	}
	return rel
}
