package relax

import "math"

// boundRow records bookkeeping for an explicit "<= val" row this Relaxation
// generates internally to represent a finite upper bound on a structural
// column (see relax.go / simplex.go doc comments: bounds are modeled as
// extra rows, not bounded-variable pivoting, keeping the tableau's pivot
// logic to the textbook increase-from-zero case).
type boundRow struct {
	col int // structural column this row bounds, -1 if not a bound row
}

// gonumRelaxation is the concrete Relaxation (spec.md §6), a dense Big-M
// simplex tableau built on gonum.org/v1/gonum/mat (see simplex.go for the
// tradeoffs this implementation makes relative to an incremental revised
// simplex, documented in DESIGN.md).
type gonumRelaxation struct {
	structLower []float64 // per structural column
	structCost  []float64 // per structural column
	rowSense    []Sense
	rowRHS      []float64
	rowCoef     [][]float64 // len(rows) x len(structLower), dense
	boundRows   []boundRow  // len(rows); boundRows[i].col >= 0 marks a TightenBound-created row

	tb       *tableau
	dirty    bool
	warmHint *Basis // advisory only; see SetBasis doc comment
}

// NewGonumRelaxation builds an empty Relaxation with no rows or columns.
func NewGonumRelaxation() Relaxation {
	return &gonumRelaxation{tb: newTableau(), dirty: true}
}

func (r *gonumRelaxation) NumRows() int { return len(r.rowSense) }
func (r *gonumRelaxation) NumCols() int { return len(r.structLower) }

func (r *gonumRelaxation) NewRow(sense Sense, rhs float64) (int, error) {
	row := len(r.rowSense)
	r.rowSense = append(r.rowSense, sense)
	r.rowRHS = append(r.rowRHS, rhs)
	r.rowCoef = append(r.rowCoef, make([]float64, len(r.structLower)))
	r.boundRows = append(r.boundRows, boundRow{col: -1})
	r.dirty = true

	return row, nil
}

// SetRowCoef sets the coefficient of structural column col in row row. Used
// by CoreLP to build up degree rows incrementally as edges are added,
// complementing AddCut's one-shot sparse-row insertion.
func (r *gonumRelaxation) SetRowCoef(row, col int, val float64) error {
	if row < 0 || row >= len(r.rowSense) {
		return ErrBadRow
	}
	if col < 0 || col >= len(r.structLower) {
		return ErrBadCol
	}
	r.rowCoef[row][col] = val
	r.dirty = true

	return nil
}

func (r *gonumRelaxation) AddCut(sense Sense, rhs float64, colIdx []int, colVal []float64) (int, error) {
	row, _ := r.NewRow(sense, rhs)
	for k, c := range colIdx {
		if err := r.SetRowCoef(row, c, colVal[k]); err != nil {
			return -1, err
		}
	}

	return row, nil
}

func (r *gonumRelaxation) AddCol(cost float64, rowIdx []int, rowVal []float64, bounds Bounds) (int, error) {
	col := len(r.structLower)
	r.structLower = append(r.structLower, bounds.Lower)
	for i := range r.rowCoef {
		r.rowCoef[i] = append(r.rowCoef[i], 0)
	}
	for k, ri := range rowIdx {
		if ri < 0 || ri >= len(r.rowSense) {
			return -1, ErrBadRow
		}
		r.rowCoef[ri][col] = rowVal[k]
	}
	r.dirty = true

	if !math.IsInf(bounds.Upper, 1) {
		if err := r.TightenBound(col, 'U', bounds.Upper); err != nil {
			return -1, err
		}
	}
	r.costOf(col, cost)

	return col, nil
}

// costOf stashes the column's objective cost; gonumRelaxation keeps costs in
// a parallel slice rather than inside rowCoef.
func (r *gonumRelaxation) costOf(col int, cost float64) {
	for len(r.structCost) <= col {
		r.structCost = append(r.structCost, 0)
	}
	r.structCost[col] = cost
}

func (r *gonumRelaxation) DelSetRows(delstat []bool) ([]int, error) {
	if len(delstat) != len(r.rowSense) {
		return nil, ErrBadRow
	}
	remap := make([]int, len(r.rowSense))
	var sense []Sense
	var rhs []float64
	var coef [][]float64
	var brows []boundRow
	kept := 0
	for i := range r.rowSense {
		if delstat[i] {
			remap[i] = -1
			continue
		}
		remap[i] = kept
		kept++
		sense = append(sense, r.rowSense[i])
		rhs = append(rhs, r.rowRHS[i])
		coef = append(coef, r.rowCoef[i])
		brows = append(brows, r.boundRows[i])
	}
	r.rowSense, r.rowRHS, r.rowCoef, r.boundRows = sense, rhs, coef, brows
	r.dirty = true

	return remap, nil
}

func (r *gonumRelaxation) DelSetCols(delstat []bool) ([]int, error) {
	if len(delstat) != len(r.structLower) {
		return nil, ErrBadCol
	}
	remap := make([]int, len(r.structLower))
	var lower, cost []float64
	kept := 0
	for j := range r.structLower {
		if delstat[j] {
			remap[j] = -1
			continue
		}
		remap[j] = kept
		kept++
		lower = append(lower, r.structLower[j])
		if j < len(r.structCost) {
			cost = append(cost, r.structCost[j])
		} else {
			cost = append(cost, 0)
		}
	}
	for i := range r.rowCoef {
		newRow := make([]float64, kept)
		for j, v := range r.rowCoef[i] {
			if remap[j] >= 0 {
				newRow[remap[j]] = v
			}
		}
		r.rowCoef[i] = newRow
	}
	for i := range r.boundRows {
		if r.boundRows[i].col >= 0 {
			r.boundRows[i].col = remap[r.boundRows[i].col]
		}
	}
	r.structLower, r.structCost = lower, cost
	r.dirty = true

	return remap, nil
}

func (r *gonumRelaxation) TightenBound(col int, side byte, val float64) error {
	if col < 0 || col >= len(r.structLower) {
		return ErrBadCol
	}
	switch side {
	case 'L':
		r.structLower[col] = val
	case 'U':
		// Find an existing bound row for this column, or create one.
		for i, br := range r.boundRows {
			if br.col == col {
				if math.IsInf(val, 1) {
					// Loosen: remove the row.
					del := make([]bool, len(r.rowSense))
					del[i] = true
					_, err := r.DelSetRows(del)
					return err
				}
				r.rowRHS[i] = val - r.structLower[col]
				r.dirty = true
				return nil
			}
		}
		if math.IsInf(val, 1) {
			return nil
		}
		row, _ := r.NewRow(Less, val-r.structLower[col])
		r.rowCoef[row][col] = 1
		r.boundRows[row] = boundRow{col: col}
	default:
		return ErrBadCol
	}
	r.dirty = true

	return nil
}

func (r *gonumRelaxation) GetBasis() (*Basis, error) {
	if r.dirty {
		return nil, ErrNoBasis
	}
	b := &Basis{ColStat: make([]ColStatus, len(r.structLower)), RowStat: make([]RowStatus, len(r.rowSense))}
	for j := range r.structLower {
		b.ColStat[j] = r.tb.status[j]
	}
	for i := range r.rowSense {
		rm := r.tb.rows[i]
		slack := rm.slackCol
		if slack >= 0 && r.tb.status[slack] == Basic {
			b.RowStat[i] = SlackBasic
		} else {
			b.RowStat[i] = SlackAtBound
		}
	}

	return b, nil
}

// SetBasis stores b as a warm-start hint. The tableau rebuild does not read
// it: this Relaxation always cold-starts its Big-M tableau from the
// slack/artificial basis on structural change, so SetBasis has no effect on
// the next solve.
func (r *gonumRelaxation) SetBasis(b *Basis) error {
	r.warmHint = b

	return nil
}

func (r *gonumRelaxation) FactorBasis() error {
	r.ensureBuilt()

	return nil
}

func (r *gonumRelaxation) ensureBuilt() {
	if !r.dirty {
		return
	}
	r.stage()
	r.tb.rebuild()
	r.dirty = false
}

// stage rewrites tb.cols/tb.rows/tb.A from the logical row/column store,
// allocating slack/artificial columns after the structural ones.
func (r *gonumRelaxation) stage() {
	nStruct := len(r.structLower)
	rows := make([]rowMeta, len(r.rowSense))
	cols := make([]column, nStruct)
	for j := 0; j < nStruct; j++ {
		cost := 0.0
		if j < len(r.structCost) {
			cost = r.structCost[j]
		}
		cols[j] = column{cost: cost, lower: r.structLower[j], upper: math.Inf(1), kind: kindStructural}
	}

	A := make([][]float64, len(r.rowSense))
	next := nStruct
	for i := range r.rowSense {
		A[i] = make([]float64, nStruct) // grown below as slack/art columns are appended
		copy(A[i], r.rowCoef[i])

		sign := 1.0
		shiftedRHS := r.rowRHS[i]
		for j := 0; j < nStruct; j++ {
			shiftedRHS -= r.rowCoef[i][j] * r.structLower[j]
		}

		rm := rowMeta{sense: r.rowSense[i], origRHS: shiftedRHS, sign: sign, slackCol: -1, artCol: -1}

		switch r.rowSense[i] {
		case Less:
			// Slack doubles as the initial basic variable; no Big-M needed
			// as long as the shifted RHS is nonnegative (always true for the
			// bound rows this type generates).
			if shiftedRHS < 0 {
				rm.sign = -1
			}
			slackCol := next
			next++
			cols = append(cols, column{cost: 0, lower: 0, upper: math.Inf(1), kind: kindSlack})
			rm.slackCol = slackCol
			rm.artCol = slackCol
		case Greater:
			surplusCol := next
			next++
			cols = append(cols, column{cost: 0, lower: 0, upper: math.Inf(1), kind: kindSlack})
			rm.slackCol = surplusCol
			if shiftedRHS < 0 {
				rm.sign = -1
			}
			artCol := next
			next++
			cols = append(cols, column{cost: bigM, lower: 0, upper: math.Inf(1), kind: kindArtificial})
			rm.artCol = artCol
		case Equal:
			if shiftedRHS < 0 {
				rm.sign = -1
			}
			artCol := next
			next++
			cols = append(cols, column{cost: bigM, lower: 0, upper: math.Inf(1), kind: kindArtificial})
			rm.artCol = artCol
		}
		rows[i] = rm
	}

	n := next
	for i := range A {
		full := make([]float64, n)
		copy(full, A[i])
		rm := rows[i]
		if rm.sign < 0 {
			for j := range full[:nStruct] {
				full[j] = -full[j]
			}
		}
		if rm.slackCol >= 0 {
			switch rm.sense {
			case Less:
				full[rm.slackCol] = 1
			case Greater:
				full[rm.slackCol] = -rm.sign
			}
		}
		if rm.artCol >= 0 && rm.artCol != rm.slackCol {
			full[rm.artCol] = 1
		}
		A[i] = full
	}

	r.tb.cols = cols
	r.tb.rows = rows
	r.tb.A = A
	r.tb.m = len(rows)
	r.tb.n = n
}

func (r *gonumRelaxation) solution(status Status) Solution {
	n := len(r.structLower)
	x := make([]float64, n)
	redCost := make([]float64, n)
	for j := 0; j < n; j++ {
		x[j] = r.tb.colValue(j)
		redCost[j] = r.tb.T.At(0, j)
	}

	pi := make([]float64, len(r.rowSense))
	for i, rm := range r.rowSense {
		_ = rm
		art := r.tb.rows[i].artCol
		pi[i] = r.tb.cols[art].cost - r.tb.T.At(0, art)
	}

	slack := make([]float64, len(r.rowSense))
	for i := range r.rowSense {
		var activity float64
		for j := 0; j < n; j++ {
			activity += r.rowCoef[i][j] * x[j]
		}
		switch r.rowSense[i] {
		case Less:
			slack[i] = r.rowRHS[i] - activity
		case Greater:
			slack[i] = activity - r.rowRHS[i]
		case Equal:
			slack[i] = activity - r.rowRHS[i]
		}
	}

	var obj float64
	for j := 0; j < n; j++ {
		if j < len(r.structCost) {
			obj += r.structCost[j] * x[j]
		}
	}

	return Solution{Status: status, Objective: obj, X: x, Pi: pi, Slack: slack, RedCost: redCost}
}

func (r *gonumRelaxation) PrimalOpt() (Solution, error) {
	r.ensureBuilt()
	r.tb.runToOptimal(nil, 0)
	if !r.tb.artificialsZero() {
		return r.solution(Infeasible), nil
	}

	return r.solution(Optimal), nil
}

func (r *gonumRelaxation) DualOpt() (Solution, error) {
	r.ensureBuilt()
	_, feasible := r.tb.runDualToOptimal(0)
	if !feasible {
		return r.solution(Infeasible), nil
	}

	return r.solution(Optimal), nil
}

func (r *gonumRelaxation) OnePrimalPivot() (Solution, error) {
	r.ensureBuilt()
	r.tb.iterate(nil)
	status := Optimal
	if !r.tb.optimal() {
		status = IterLimit
	}

	return r.solution(status), nil
}

func (r *gonumRelaxation) NonDegenPivot(cutoff float64) (Solution, error) {
	r.ensureBuilt()
	_, hit := r.tb.runToOptimal(&cutoff, 0)
	if hit {
		return r.solution(CutoffReached), nil
	}
	if !r.tb.artificialsZero() {
		return r.solution(Infeasible), nil
	}

	return r.solution(Optimal), nil
}

func (r *gonumRelaxation) PrimalRecover() (Solution, error) {
	r.ensureBuilt()
	r.tb.runToOptimal(nil, 0)
	if !r.tb.artificialsZero() {
		return r.solution(Infeasible), nil
	}

	return r.solution(Optimal), nil
}

func (r *gonumRelaxation) StrongBranch(col int, iterLimit int) (float64, float64, Status, Status, error) {
	if col < 0 || col >= len(r.structLower) {
		return 0, 0, Infeasible, Infeasible, ErrBadCol
	}

	savedLower := r.structLower[col]
	savedRows, savedSense, savedRHS, savedBounds := r.snapshotRows()

	downObj, downStatus := r.probeFixed(col, 0, 0, iterLimit)
	r.restoreRows(savedRows, savedSense, savedRHS, savedBounds)
	r.structLower[col] = savedLower
	r.dirty = true

	upObj, upStatus := r.probeFixed(col, 1, 1, iterLimit)
	r.restoreRows(savedRows, savedSense, savedRHS, savedBounds)
	r.structLower[col] = savedLower
	r.dirty = true

	return downObj, upObj, downStatus, upStatus, nil
}

func (r *gonumRelaxation) probeFixed(col int, lower, upper float64, iterLimit int) (float64, Status) {
	r.structLower[col] = lower
	_ = r.TightenBound(col, 'U', upper)
	r.dirty = true
	r.ensureBuilt()
	iters, hit := r.tb.runToOptimal(nil, iterLimit)
	if !r.tb.artificialsZero() {
		return math.Inf(1), Infeasible
	}
	if hit && iters >= iterLimit && iterLimit > 0 {
		return -r.tb.T.At(0, r.tb.n), IterLimit
	}

	return -r.tb.T.At(0, r.tb.n), Optimal
}

func (r *gonumRelaxation) snapshotRows() ([][]float64, []Sense, []float64, []boundRow) {
	coef := make([][]float64, len(r.rowCoef))
	for i, row := range r.rowCoef {
		coef[i] = append([]float64(nil), row...)
	}

	return coef, append([]Sense(nil), r.rowSense...), append([]float64(nil), r.rowRHS...), append([]boundRow(nil), r.boundRows...)
}

func (r *gonumRelaxation) restoreRows(coef [][]float64, sense []Sense, rhs []float64, brows []boundRow) {
	r.rowCoef, r.rowSense, r.rowRHS, r.boundRows = coef, sense, rhs, brows
	r.dirty = true
}
