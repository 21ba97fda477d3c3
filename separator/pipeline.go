// Package separator implements the ordered primal-separator cascade
// (spec.md §4.2 "Separator pipeline"): exact subtour cuts, a fast blossom
// heuristic, block combs, and (the dp package's) simple domino-parity,
// invoked in that order with short-circuiting once a running queue of
// candidate cuts exceeds a threshold.
package separator

import (
	"github.com/corecut/abctsp/corelp"
)

// SupportEdge is one LP-support edge rewritten through the active tour's
// permutation, the unit every separator in this package consumes
// (spec.md §4.2: "each separator receives a permuted edge list").
type SupportEdge struct {
	U, V   int // perm[original endpoints]
	Weight float64
	EdgeIdx int // original CoreGraph edge index, needed to build the CutCandidate row
}

// Separator finds violated cuts from a permuted support edge list.
type Separator interface {
	Name() string
	Separate(n int, edges []SupportEdge) ([]corelp.CutCandidate, error)
}

// DefaultQueueThreshold is the running-candidate-count short-circuit
// threshold (spec.md §4.2: "typically 8-15").
const DefaultQueueThreshold = 12

// Pipeline runs separators in a fixed order with short-circuiting.
type Pipeline struct {
	QueueThreshold int
	exact          Separator
	blossom        Separator
	comb           Separator
	dp             Separator // optional: only invoked when segments found none
}

// New builds the standard pipeline: exact SEC, fast blossoms, block combs,
// then (if provided) a domino-parity fallback separator.
func New(exact, blossom, comb, dp Separator) *Pipeline {
	return &Pipeline{QueueThreshold: DefaultQueueThreshold, exact: exact, blossom: blossom, comb: comb, dp: dp}
}

// FindCuts runs the cascade over the LP support edges, already permuted
// through the active tour. Each separator carries its own CliqueBank/
// ToothBank reference for interning, so the pipeline itself is bank-agnostic.
func (p *Pipeline) FindCuts(n int, support []SupportEdge) ([]corelp.CutCandidate, error) {
	var found []corelp.CutCandidate

	segStart := len(found)
	if p.exact != nil {
		cuts, err := p.exact.Separate(n, support)
		if err != nil {
			return found, err
		}
		found = append(found, cuts...)
	}
	foundSegments := len(found) > segStart
	if len(found) >= p.QueueThreshold {
		return found, nil
	}

	if p.blossom != nil {
		cuts, err := p.blossom.Separate(n, support)
		if err != nil {
			return found, err
		}
		found = append(found, cuts...)
	}
	if len(found) >= p.QueueThreshold {
		return found, nil
	}

	if p.comb != nil {
		cuts, err := p.comb.Separate(n, support)
		if err != nil {
			return found, err
		}
		found = append(found, cuts...)
	}
	if len(found) >= p.QueueThreshold {
		return found, nil
	}

	// spec.md §4.2: "if the LP is in the subtour polytope and segments found
	// none, simple domino-parity" — i.e. only when the exact separator (the
	// subtour-polytope check) came back empty.
	if !foundSegments && p.dp != nil {
		cuts, err := p.dp.Separate(n, support)
		if err != nil {
			return found, err
		}
		found = append(found, cuts...)
	}

	return found, nil
}
