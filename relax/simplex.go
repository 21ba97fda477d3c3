package relax

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Internal tolerances for the tableau's own pivoting decisions; independent
// of corelp's Tolerances (spec.md §6 epsilon set) which govern cut/tour
// discipline above this layer.
const (
	pivotEps = 1e-9
	bigM     = 1e7
)

// colKind distinguishes structural (problem) columns from the bookkeeping
// slack/surplus/artificial columns the tableau adds per row.
type colKind int

const (
	kindStructural colKind = iota
	kindSlack
	kindArtificial
)

type column struct {
	cost  float64
	lower float64 // structural columns are shifted so the tableau's internal value is x-lower
	upper float64 // math.Inf(1) if unbounded above (slack/artificial always are)
	kind  colKind
}

// rowMeta describes one constraint row. Every Equal/Greater row carries a
// genuine Big-M artificial column (artCol); a Less row's own slack doubles
// as its initial basic variable (artCol == slackCol) because an explicit
// upper-bound row (the only Less rows this engine generates, via
// TightenBound) always has a nonnegative shifted RHS.
type rowMeta struct {
	sense    Sense
	origRHS  float64
	sign     float64 // defensive flip to +1/-1 keeping the artificial's start >= 0
	slackCol int      // -1 if none
	artCol   int      // always >= 0: the row's initial basic column
}

// tableau is a dense bounded-below (shifted-to-zero) Big-M simplex tableau.
// Row 0 holds reduced costs; rows 1..m hold the constraint equations. The
// last column holds RHS (rows 1..m) and the negated objective value (row 0).
type tableau struct {
	T      *mat.Dense
	A      [][]float64 // m x n raw coefficients, sign already applied
	m, n   int
	cols   []column
	rows   []rowMeta
	basis  []int
	status []ColStatus
}

func newTableau() *tableau { return &tableau{} }

// rebuild regenerates the dense tableau from A/cols/rows using a fresh
// all-artificial/slack basis. Valid after any structural change; does not
// itself run simplex iterations.
func (tb *tableau) rebuild() {
	m, n := tb.m, tb.n
	T := mat.NewDense(m+1, n+1, nil)

	status := make([]ColStatus, n)
	basis := make([]int, m)
	for j := 0; j < n; j++ {
		if tb.cols[j].kind == kindStructural {
			status[j] = AtLower
		}
	}
	for i, rm := range tb.rows {
		basis[i] = rm.artCol
		status[rm.artCol] = Basic
		if rm.slackCol >= 0 && rm.slackCol != rm.artCol {
			status[rm.slackCol] = AtLower
		}
	}

	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			T.Set(i+1, j, tb.A[i][j])
		}
		T.Set(i+1, n, tb.rows[i].sign*tb.rows[i].origRHS)
	}

	for j := 0; j < n; j++ {
		c := tb.cols[j].cost
		var z float64
		for i := 0; i < m; i++ {
			z += tb.cols[basis[i]].cost * T.At(i+1, j)
		}
		T.Set(0, j, c-z)
	}
	var zVal float64
	for i := 0; i < m; i++ {
		zVal += tb.cols[basis[i]].cost * T.At(i+1, n)
	}
	T.Set(0, n, -zVal)

	tb.T = T
	tb.basis = basis
	tb.status = status
}

// colValue returns structural column j's real (unshifted) current value.
func (tb *tableau) colValue(j int) float64 {
	shifted := tb.shiftedValue(j)

	return shifted + tb.cols[j].lower
}

func (tb *tableau) shiftedValue(j int) float64 {
	if tb.status[j] == Basic {
		for i, bj := range tb.basis {
			if bj == j {
				return tb.T.At(i+1, tb.n)
			}
		}
	}

	return 0
}

// pivotResult reports what a single simplex iteration did.
type pivotResult int

const (
	pivotNone     pivotResult = iota // already optimal
	pivotStepped                     // one entering/leaving swap performed
	pivotObjDrop                     // stepped, and the objective strictly improved
)

// iterate performs at most one simplex pivot using Bland's rule (deterministic,
// anti-cycling). cutoff, if non-nil, stops as soon as the objective value
// (tb.T.At(0,n) negated) is <= cutoff, returning pivotObjDrop without
// necessarily having reached optimality.
func (tb *tableau) iterate(cutoff *float64) pivotResult {
	enter := -1
	for j := 0; j < tb.n; j++ {
		if tb.status[j] == Basic {
			continue
		}
		if tb.T.At(0, j) < -pivotEps {
			enter = j
			break
		}
	}
	if enter < 0 {
		return pivotNone
	}

	leave := -1
	best := math.Inf(1)
	for i := 0; i < tb.m; i++ {
		a := tb.T.At(i+1, enter)
		if a <= pivotEps {
			continue
		}
		ratio := tb.T.At(i+1, tb.n) / a
		if ratio < best-pivotEps || (ratio < best+pivotEps && (leave == -1 || tb.basis[i] < tb.basis[leave])) {
			best = ratio
			leave = i
		}
	}
	if leave < 0 {
		// Unbounded; the caller's pricing/elimination discipline is expected
		// to prevent this in practice. Report no further progress.
		return pivotNone
	}

	tb.gaussJordan(leave, enter)
	tb.status[tb.basis[leave]] = AtLower
	tb.basis[leave] = enter
	tb.status[enter] = Basic

	if cutoff != nil && -tb.T.At(0, tb.n) <= *cutoff+pivotEps {
		return pivotObjDrop
	}

	return pivotStepped
}

// gaussJordan performs the standard tableau pivot on (row, col).
func (tb *tableau) gaussJordan(row, col int) {
	pivotVal := tb.T.At(row+1, col)
	rows, cols := tb.T.Dims()
	for c := 0; c < cols; c++ {
		tb.T.Set(row+1, c, tb.T.At(row+1, c)/pivotVal)
	}
	for r := 0; r < rows; r++ {
		if r == row+1 {
			continue
		}
		factor := tb.T.At(r, col)
		if factor == 0 {
			continue
		}
		for c := 0; c < cols; c++ {
			tb.T.Set(r, c, tb.T.At(r, c)-factor*tb.T.At(row+1, c))
		}
	}
}

// optimal reports whether every nonbasic reduced cost satisfies the
// minimization optimality condition.
func (tb *tableau) optimal() bool {
	for j := 0; j < tb.n; j++ {
		if tb.status[j] != Basic && tb.T.At(0, j) < -pivotEps {
			return false
		}
	}

	return true
}

// artificialsZero reports whether every artificial column's value is
// (numerically) zero, i.e. the original (non-Big-M) problem is feasible.
func (tb *tableau) artificialsZero() bool {
	for i, rm := range tb.rows {
		if tb.cols[rm.artCol].kind != kindArtificial {
			continue
		}
		if tb.basis[i] == rm.artCol && tb.T.At(i+1, tb.n) > pivotEps {
			return false
		}
	}

	return true
}

// iterateDual performs one dual-simplex pivot: pick the most primal-infeasible
// basic variable (shifted value < 0) as the leaving row, then the entering
// column by the minimum dual ratio among negative row coefficients (Bland
// tie-break by column index). Used after TightenBound calls that keep the
// tableau dual-feasible (reduced costs unchanged) but break primal
// feasibility, exactly spec.md §6's "dual_opt" use case.
func (tb *tableau) iterateDual() pivotResult {
	leave := -1
	worst := -pivotEps
	for i := 0; i < tb.m; i++ {
		v := tb.T.At(i+1, tb.n)
		if v < worst {
			worst = v
			leave = i
		}
	}
	if leave < 0 {
		return pivotNone
	}

	enter := -1
	bestRatio := math.Inf(1)
	for j := 0; j < tb.n; j++ {
		if tb.status[j] == Basic {
			continue
		}
		a := tb.T.At(leave+1, j)
		if a >= -pivotEps {
			continue
		}
		ratio := tb.T.At(0, j) / -a
		if ratio < bestRatio-pivotEps || (ratio < bestRatio+pivotEps && (enter == -1 || j < enter)) {
			bestRatio = ratio
			enter = j
		}
	}
	if enter < 0 {
		return pivotNone // primal infeasible, dual unbounded
	}

	tb.gaussJordan(leave, enter)
	tb.status[tb.basis[leave]] = AtLower
	tb.basis[leave] = enter
	tb.status[enter] = Basic

	return pivotStepped
}

func (tb *tableau) primalFeasible() bool {
	for i := 0; i < tb.m; i++ {
		if tb.T.At(i+1, tb.n) < -pivotEps {
			return false
		}
	}

	return true
}

// runDualToOptimal pivots with the dual simplex until primal feasibility is
// restored (or dual unboundedness, i.e. primal infeasibility, is detected).
func (tb *tableau) runDualToOptimal(maxIter int) (iters int, feasible bool) {
	for iters = 0; maxIter <= 0 || iters < maxIter; iters++ {
		if tb.primalFeasible() {
			return iters, true
		}
		if tb.iterateDual() == pivotNone {
			return iters, false
		}
	}

	return iters, tb.primalFeasible()
}

// runToOptimal pivots until optimal, a cutoff is reached, or maxIter is hit.
func (tb *tableau) runToOptimal(cutoff *float64, maxIter int) (iters int, hitCutoff bool) {
	for iters = 0; maxIter <= 0 || iters < maxIter; iters++ {
		res := tb.iterate(cutoff)
		switch res {
		case pivotNone:
			return iters, false
		case pivotObjDrop:
			return iters + 1, true
		}
	}

	return iters, false
}
