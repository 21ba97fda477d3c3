// Package price implements the edge pricer (spec.md §4.7 "Pricer"): two
// edge generators sharing the graph's length oracle but differing scan
// scope, reduced-cost computation against the aggregated dual solution,
// the Tour/FathomedTour pricing workflow, bound-change feasibility
// recovery, the exact fixed-point lower bound, and reduced-cost edge
// elimination.
package price

import (
	logging "github.com/op/go-logging"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/relax"
)

var log = logging.MustGetLogger("price")

// Mode is the pricing workflow's outcome (spec.md §4.7 step 3/4).
type Mode int

const (
	// Partial means an inside-scan batch of negative-reduced-cost edges
	// was added; the caller should re-optimize and price again.
	Partial Mode = iota
	// PartOpt means the inside scan found nothing more; escalate to Full.
	PartOpt
	// Full means a full-scan round added edges; re-optimize and price again.
	Full
	// FullOpt means pricing is complete: no more improving edges exist at
	// any scope, or the LP objective has reached the global upper bound.
	FullOpt
)

func (m Mode) String() string {
	switch m {
	case Partial:
		return "Partial"
	case PartOpt:
		return "PartOpt"
	case Full:
		return "Full"
	case FullOpt:
		return "FullOpt"
	default:
		return "Unknown"
	}
}

// DefaultInsideK is the inside-scan neighborhood size (spec.md §4.7:
// "50-nearest neighborhood").
const DefaultInsideK = 50

// DefaultPoolSize is the feasibility-recovery batch size (spec.md §4.7
// "Feasibility recovery... Add edges in PoolSize-sized chunks").
const DefaultPoolSize = 50

// DefaultRoundThreshold bounds the full-scan round termination test: a
// round ends pricing when its total penalty falls under this and it added
// fewer than Pool edges (spec.md §4.7 step 4, "round penalty... is small").
const DefaultRoundThreshold = 1e-4

// Pricer holds the shared state the edge generators, reduced-cost
// computation, and pricing workflow need: a reference to the owning CoreLP
// (for edge installation and re-optimization), the live core graph, and
// the external cut pool (for per-cut dual aggregation).
type Pricer struct {
	Core    *corelp.CoreLP
	Graph   *graph.CoreGraph
	Cuts    *cut.ExternalCuts
	InsideK int
	Pool    int

	RedCostEps     float64
	RoundThreshold float64
}

// New builds a Pricer over an already-constructed CoreLP with default
// scan/epsilon settings.
func New(core *corelp.CoreLP) *Pricer {
	return &Pricer{
		Core:           core,
		Graph:          core.Graph,
		Cuts:           core.Cuts,
		InsideK:        DefaultInsideK,
		Pool:           DefaultPoolSize,
		RedCostEps:     1e-7,
		RoundThreshold: DefaultRoundThreshold,
	}
}

// Duals is the post-processed dual solution pricing computes reduced costs
// against: per-node duals plus per-external-cut duals, already zeroed
// where sign-incorrect (spec.md §4.7 step 1).
type Duals struct {
	Node []float64
	Cut  []float64
}

// BuildDuals extracts node duals (the first n entries of sol.Pi, one per
// node; the degree rows always number Graph.N(), per corelp.CoreLP's own
// invariant) and per-cut duals (the remaining rows, aligned 1:1 with Cuts'
// external rows), zeroing any row whose dual has the wrong sign for its
// sense so every resulting reduced cost stays primal-correct.
func BuildDuals(n int, sol relax.Solution, cuts *cut.ExternalCuts) Duals {
	node := make([]float64, n)
	for i := 0; i < n && i < len(sol.Pi); i++ {
		node[i] = sol.Pi[i]
	}

	cutDuals := make([]float64, cuts.Len())
	for i := 0; i < cuts.Len(); i++ {
		row := n + i
		if row >= len(sol.Pi) {
			continue
		}
		d := sol.Pi[row]
		hg, err := cuts.At(i)
		if err != nil {
			continue
		}
		if hg.Sense == relax.Greater && d < 0 {
			d = 0
		}
		if hg.Sense == relax.Less && d > 0 {
			d = 0
		}
		cutDuals[i] = d
	}

	return Duals{Node: node, Cut: cutDuals}
}

// ReducedCost computes c(u,v) - pi(u) - pi(v) - sum_k cut_coef(k,(u,v))*pi_k
// (spec.md §4.7 step 2).
func (p *Pricer) ReducedCost(u, v int, length int64, d Duals) float64 {
	rc := float64(length) - d.Node[u] - d.Node[v]
	for i := 0; i < p.Cuts.Len() && i < len(d.Cut); i++ {
		if d.Cut[i] == 0 {
			continue
		}
		hg, err := p.Cuts.At(i)
		if err != nil {
			continue
		}
		coef := hg.CoeffOf(u, v)
		if coef == 0 {
			continue
		}
		rc -= float64(coef) * d.Cut[i]
	}
	return rc
}

// Duals builds the dual solution for sol against this pricer's current
// graph/cut sizes.
func (p *Pricer) Duals(sol relax.Solution) Duals {
	return BuildDuals(p.Graph.N(), sol, p.Cuts)
}
