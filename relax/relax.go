// Package relax defines Relaxation, the abstract LP-solver facade CoreLP
// pivots against (spec.md §3 "Relaxation", §6 "Relaxation API (abstract)"),
// and a concrete implementation: a dense Big-M simplex tableau stored in
// gonum/mat matrices.
//
// The facade owns no copy of the HyperGraph cuts ExternalCuts tracks: row
// n+k always corresponds to HyperGraph k, an invariant CoreLP is
// responsible for preserving across AddCut/DeleteRows calls.
package relax

import "errors"

// Sense is an LP row's inequality sense.
type Sense int

const (
	// Greater is a ">=" row (e.g. SEC/comb cuts, degree rows).
	Greater Sense = iota
	// Less is a "<=" row (e.g. comb inequalities in <= form, some GMI cuts).
	Less
	// Equal is a "=" row (degree equations).
	Equal
)

// Sentinel errors for Relaxation operations.
var (
	// ErrBadRow indicates an out-of-range row index.
	ErrBadRow = errors.New("relax: row index out of range")

	// ErrBadCol indicates an out-of-range column index.
	ErrBadCol = errors.New("relax: column index out of range")

	// ErrNoBasis indicates GetBasis was called before any optimization established one.
	ErrNoBasis = errors.New("relax: no basis available")

	// ErrSolveFailed wraps a backend solver failure (spec.md §7 "Backend errors").
	ErrSolveFailed = errors.New("relax: LP solve failed")
)

// Status is the result of a solve/pivot call.
type Status int

const (
	// Optimal means the solver returned a dual-feasible optimal basis.
	Optimal Status = iota
	// Infeasible means the solver proved primal infeasibility.
	Infeasible
	// CutoffReached means nondegen_pivot found a basis at or below the
	// requested objective cutoff (spec.md §4.1).
	CutoffReached
	// IterLimit means a strong-branching iteration cap was hit before optimality.
	IterLimit
)

// Bounds is a column or row's [lower, upper] bound pair.
type Bounds struct {
	Lower, Upper float64
}

// Basis is an opaque snapshot of column/row basic-or-at-bound statuses,
// returned by GetBasis and accepted by SetBasis/CopyStart (spec.md §6).
type Basis struct {
	ColStat []ColStatus
	RowStat []RowStatus
}

// ColStatus is one column's basis status.
type ColStatus int

const (
	AtLower ColStatus = iota
	AtUpper
	Basic
)

// RowStatus is one row's basis status (slack basic/at-bound).
type RowStatus int

const (
	SlackBasic RowStatus = iota
	SlackAtBound
)

// Solution is the primal/dual result of a solve.
type Solution struct {
	Status    Status
	Objective float64
	X         []float64 // primal column values
	Pi        []float64 // row duals
	Slack     []float64 // row slacks (rhs - activity for <=, activity - rhs for >=)
	RedCost   []float64 // reduced costs aligned with columns
}

// Relaxation is the abstract LP facade CoreLP drives (spec.md §6).
// Implementations need not support incremental revised-simplex pivoting;
// the concrete gonumRelaxation rebuilds its tableau from scratch after any
// row, column or bound change and pivots on that tableau between changes.
type Relaxation interface {
	NumRows() int
	NumCols() int

	// NewRow appends a fresh row with the given sense and rhs, no coefficients yet.
	NewRow(sense Sense, rhs float64) (rowIdx int, err error)

	// SetRowCoef sets one (row,col) coefficient on a row created by NewRow,
	// letting CoreLP build up degree rows incrementally as edges are added.
	SetRowCoef(row, col int, val float64) error

	// AddCut appends a row with sense/rhs and a sparse coefficient vector
	// over existing columns in one call (spec.md §6 "add_cut").
	AddCut(sense Sense, rhs float64, colIdx []int, colVal []float64) (rowIdx int, err error)

	// AddCol appends a column with the given objective cost, sparse
	// coefficients (rowIdx/rowVal), and bounds.
	AddCol(cost float64, rowIdx []int, rowVal []float64, bounds Bounds) (colIdx int, err error)

	// DelSetRows deletes rows where delstat[i] is true, compacting remaining rows.
	// Returns old->new row index remap (-1 if deleted).
	DelSetRows(delstat []bool) ([]int, error)

	// DelSetCols deletes columns where delstat[i] is true, compacting remaining columns.
	// Returns old->new column index remap (-1 if deleted).
	DelSetCols(delstat []bool) ([]int, error)

	// TightenBound narrows column col's bound on the given side ('L' lower, 'U' upper).
	TightenBound(col int, side byte, val float64) error

	// GetBasis returns the current basis snapshot.
	GetBasis() (*Basis, error)

	// SetBasis installs a previously captured basis as the starting point
	// for the next solve (warm start).
	SetBasis(b *Basis) error

	// FactorBasis re-factors from the installed basis with zero simplex
	// iterations, used to refresh Pi/slacks after external bound changes.
	FactorBasis() error

	// PrimalOpt runs primal simplex to optimality from the current basis.
	PrimalOpt() (Solution, error)

	// DualOpt runs dual simplex to optimality (used after tightening bounds,
	// which can make the current basis primal-infeasible but stay dual-feasible).
	DualOpt() (Solution, error)

	// OnePrimalPivot performs a single primal simplex iteration.
	OnePrimalPivot() (Solution, error)

	// NonDegenPivot runs primal simplex until either the objective strictly
	// improves past cutoff or optimality/dual-feasibility is reached
	// (spec.md §4.1 "primal_pivot" contract).
	NonDegenPivot(cutoff float64) (Solution, error)

	// PrimalRecover attempts to restore primal feasibility after bound
	// changes (e.g. branching), without pricing; returns Infeasible status
	// if none exists under the current column set.
	PrimalRecover() (Solution, error)

	// StrongBranch tightens col to 0 (down) or 1 (up), runs a capped-iteration
	// primal solve, and restores the column's bound afterward. Returns the
	// resulting objective estimate for each direction.
	StrongBranch(col int, iterLimit int) (downObj, upObj float64, downStatus, upStatus Status, err error)
}
