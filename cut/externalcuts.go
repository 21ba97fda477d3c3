package cut

import "errors"

// ErrRowNotExternal indicates a row index outside the externally-added cut
// range (spec.md §3 "ExternalCuts": rows 0..degreeRows-1 are CoreLP's own
// degree equations, never tracked here).
var ErrRowNotExternal = errors.New("cut: row index is not an externally tracked cut")

// DefaultPoolCapacity bounds how many HyperGraphs ExternalCuts keeps active
// before evicting the live cut with the largest PivotAge (DESIGN.md "Open
// Question resolutions"; PivotAge is already kept on every HyperGraph, so
// the policy needs no extra bookkeeping structure).
const DefaultPoolCapacity = 500

// ExternalCuts tracks the HyperGraph behind every LP row CoreLP added beyond
// its initial degree rows, keeping row position and cut identity decoupled
// (spec.md §9 "Cut hypergraph vs LP row indexing"). It also keeps an
// expelled pool: HyperGraphs pruned from the live LP but retained, which
// Readd can move back into the live rows. The pricer does not re-check or
// re-add cuts from this pool.
type ExternalCuts struct {
	CliqueBank *CliqueBank
	ToothBank  *ToothBank

	capacity int
	rows     []*HyperGraph // rows[i] is the HyperGraph at LP row (degreeRows+i); nil if pruned-but-not-compacted
	expelled []*HyperGraph
}

// NewExternalCuts creates a pool anchored to the given banks, with
// DefaultPoolCapacity.
func NewExternalCuts(cliques *CliqueBank, teeth *ToothBank) *ExternalCuts {
	return &ExternalCuts{CliqueBank: cliques, ToothBank: teeth, capacity: DefaultPoolCapacity}
}

// SetCapacity overrides the default pool capacity.
func (e *ExternalCuts) SetCapacity(n int) { e.capacity = n }

// Len returns the number of live (non-pruned) external cut rows.
func (e *ExternalCuts) Len() int {
	n := 0
	for _, h := range e.rows {
		if h != nil {
			n++
		}
	}
	return n
}

// Add appends a new HyperGraph as the next external row, evicting the
// oldest (by PivotAge) live cut first if at capacity.
func (e *ExternalCuts) Add(h *HyperGraph) {
	if e.capacity > 0 && e.Len() >= e.capacity {
		e.evictOldest()
	}
	e.rows = append(e.rows, h)
}

// At returns the HyperGraph at external row idx (0-based, i.e. relative to
// the first non-degree LP row), or an error if idx is out of range or
// already pruned.
func (e *ExternalCuts) At(idx int) (*HyperGraph, error) {
	if idx < 0 || idx >= len(e.rows) || e.rows[idx] == nil {
		return nil, ErrRowNotExternal
	}
	return e.rows[idx], nil
}

// BumpTourAge increments TourAge on every live cut, called once per
// augmentation round (spec.md §5 ABC loop: a round finding a new best tour
// ages every retained cut).
func (e *ExternalCuts) BumpTourAge() {
	for _, h := range e.rows {
		if h != nil {
			h.TourAge++
		}
	}
}

// BumpPivotAge increments PivotAge on every live cut, called once per LP pivot.
func (e *ExternalCuts) BumpPivotAge() {
	for _, h := range e.rows {
		if h != nil {
			h.PivotAge++
		}
	}
}

// Remove compacts away the rows marked in delstat (parallel to a prior
// Relaxation.DelSetRows call over the same external-row range), moving
// removed cuts to the expelled pool rather than discarding them outright.
func (e *ExternalCuts) Remove(delstat []bool) error {
	if len(delstat) != len(e.rows) {
		return ErrRowNotExternal
	}
	kept := e.rows[:0]
	for i, h := range e.rows {
		if h == nil {
			continue
		}
		if delstat[i] {
			e.expelled = append(e.expelled, h)
			continue
		}
		kept = append(kept, h)
	}
	e.rows = kept
	return nil
}

// Expelled returns the pool of pruned-but-retained HyperGraphs, in eviction order.
func (e *ExternalCuts) Expelled() []*HyperGraph { return append([]*HyperGraph(nil), e.expelled...) }

// Readd moves an expelled HyperGraph back into the live rows, removing it
// from the expelled pool. It only updates this pool; no LP row is added.
func (e *ExternalCuts) Readd(h *HyperGraph) {
	for i, x := range e.expelled {
		if x == h {
			e.expelled = append(e.expelled[:i], e.expelled[i+1:]...)
			break
		}
	}
	e.Add(h)
}

func (e *ExternalCuts) evictOldest() {
	oldestIdx, oldestAge := -1, -1
	for i, h := range e.rows {
		if h == nil {
			continue
		}
		if h.PivotAge > oldestAge {
			oldestAge = h.PivotAge
			oldestIdx = i
		}
	}
	if oldestIdx < 0 {
		return
	}
	e.expelled = append(e.expelled, e.rows[oldestIdx])
	e.rows = append(e.rows[:oldestIdx], e.rows[oldestIdx+1:]...)
}
