package abcsearch

import (
	"math"
	"sort"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/relax"
)

// MaxCandidates bounds the first strong-branching round (spec.md §4.8
// "pick <= 5 long-edge candidates").
const MaxCandidates = 5

// FinalistCount is how many candidates survive into the second,
// larger-iteration-limit round (spec.md §4.8 "Keep top 2").
const FinalistCount = 2

// Gamma weights the strong-branch scoring formula toward the weaker of the
// two child estimates (spec.md §4.8 step 3).
const Gamma = 100.0

// Round1IterLimit and Round2IterLimit are the short and long simplex
// iteration caps for the two strong-branching rounds.
const (
	Round1IterLimit = 10
	Round2IterLimit = 50
)

// Candidate is one fractional basic column eligible for strong branching.
type Candidate struct {
	Col  int
	U, V int
}

// ScoreTuple is one candidate's strong-branch outcome (spec.md §4.8 step
// 2-3): estimated objectives in both directions plus the composite score.
type ScoreTuple struct {
	Candidate
	DownObj, UpObj float64
	Score          float64
}

// SelectCandidates picks up to MaxCandidates long-edge fractional basic
// columns biased toward values near 0.5 (spec.md §4.8 step 1, grounded on
// original_source's length_weighted_cands): the band is anchored to the
// largest fractional value below 0.5 and the smallest at or above it
// (max_under, min_over), widened to [0.75*max_under, min_over + 0.25*(1 -
// min_over)]; survivors are then ranked by descending edge length, ties
// broken by column index for determinism.
func SelectCandidates(core *corelp.CoreLP, sol relax.Solution, zeroEps float64) []Candidate {
	type fractional struct {
		c Candidate
		x float64
	}
	var all []fractional

	maxUnder, minOver := 0.0, 1.0
	for col := 0; col < core.Graph.EdgeCount() && col < len(sol.X); col++ {
		x := sol.X[col]
		if x < zeroEps || x > 1-zeroEps {
			continue
		}
		rounded := math.Round(x)
		if math.Abs(x-rounded) < zeroEps {
			continue // effectively integral, not fractional
		}
		edge, err := core.Graph.Edge(col)
		if err != nil {
			continue
		}
		all = append(all, fractional{c: Candidate{Col: col, U: edge.End[0], V: edge.End[1]}, x: x})

		switch {
		case x == 0.5:
			maxUnder, minOver = 0.5, 0.5
		case x < 0.5:
			if x > maxUnder {
				maxUnder = x
			}
		default:
			if x < minOver {
				minOver = x
			}
		}
	}

	lowerBd := 0.75 * maxUnder
	upperBd := minOver + 0.25*(1-minOver)

	var pool []Candidate
	for _, f := range all {
		if f.x >= lowerBd && f.x <= upperBd {
			pool = append(pool, f.c)
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		li, _ := core.Graph.Edge(pool[i].Col)
		lj, _ := core.Graph.Edge(pool[j].Col)
		if li.Length != lj.Length {
			return li.Length > lj.Length
		}
		return pool[i].Col < pool[j].Col
	})

	if len(pool) > MaxCandidates {
		pool = pool[:MaxCandidates]
	}
	return pool
}

// score implements spec.md §4.8 step 3: (gamma*min(v0,v1)+max(v0,v1))/(gamma+1).
func score(downObj, upObj float64) float64 {
	lo, hi := downObj, upObj
	if lo > hi {
		lo, hi = hi, lo
	}
	return (Gamma*lo + hi) / (Gamma + 1)
}

// strongBranchRound runs StrongBranch for every candidate at the given
// iteration limit, scoring each.
func strongBranchRound(core *corelp.CoreLP, cands []Candidate, iterLimit int) ([]ScoreTuple, error) {
	out := make([]ScoreTuple, 0, len(cands))
	for _, c := range cands {
		downObj, upObj, _, _, err := core.Rel.StrongBranch(c.Col, iterLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, ScoreTuple{Candidate: c, DownObj: downObj, UpObj: upObj, Score: score(downObj, upObj)})
	}
	return out, nil
}

// BranchEdge runs the two-round strong-branching procedure (spec.md §4.8
// "Branch-edge selection") and returns the single highest-scoring edge.
func BranchEdge(core *corelp.CoreLP, sol relax.Solution, zeroEps float64) (ScoreTuple, error) {
	cands := SelectCandidates(core, sol, zeroEps)
	if len(cands) == 0 {
		return ScoreTuple{}, errNoFractionalCandidates
	}

	round1, err := strongBranchRound(core, cands, Round1IterLimit)
	if err != nil {
		return ScoreTuple{}, err
	}

	sort.SliceStable(round1, func(i, j int) bool { return round1[i].Score > round1[j].Score })
	if len(round1) > FinalistCount {
		round1 = round1[:FinalistCount]
	}

	finalists := make([]Candidate, len(round1))
	for i, s := range round1 {
		finalists[i] = s.Candidate
	}

	round2, err := strongBranchRound(core, finalists, Round2IterLimit)
	if err != nil {
		return ScoreTuple{}, err
	}

	best := round2[0]
	for _, s := range round2[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best, nil
}
