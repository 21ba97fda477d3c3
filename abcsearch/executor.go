package abcsearch

import (
	"errors"
	"fmt"

	logging "github.com/op/go-logging"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/gmi"
	"github.com/corecut/abctsp/meta"
	"github.com/corecut/abctsp/price"
	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/separator"
)

// MaxStagnantRounds bounds how many consecutive cut-finding rounds may add
// nothing before a Subtour/Frac pivot is treated as stalled and escalated
// directly to branching (spec.md §2 dataflow: "when pivots stagnate...").
const MaxStagnantRounds = 3

var log = logging.MustGetLogger("abcsearch")

// MinCutQueue is the running-candidate-count below which Executor also
// tries meta-cut transforms and safe Gomory cuts after the separator
// pipeline (spec.md §4.2: separators short-circuit past a threshold;
// below it, every generator gets a chance to contribute).
const MinCutQueue = 4

// Options toggles the two CLI-visible search-shape switches (spec.md §6
// "-S" and "-P"): Sparse skips pricing entirely (the LP is trusted to stay
// exact off safe Gomory cuts alone), and PurePrimal marks a node Done once
// MaxStagnantRounds consecutive cutting-plane rounds add no cut, instead of
// escalating to branching.
type Options struct {
	Sparse     bool
	PurePrimal bool
}

// DefaultOptions runs the full cutting-plane/pricing/branching pipeline
// (spec.md §6 default behavior: neither -S nor -P set).
var DefaultOptions = Options{}

// Executor drives the outer augment-branch-cut loop: primal_pivot ->
// find_cuts -> add_cuts -> prune_cuts, pricing edges after a Tour or
// FathomedTour pivot and branching when a Subtour/Frac pivot has stopped
// yielding cuts for MaxStagnantRounds rounds (spec.md §2 dataflow, §4.8).
type Executor struct {
	Core     *corelp.CoreLP
	Pipeline *separator.Pipeline
	Pricer   *price.Pricer
	History  *BranchHistory
	Select   Selector
	Options  Options

	// OnAugment and OnNodeVisit are optional progress hooks (spec.md §6
	// "-G"/"-B": GIF-mode tour dumps and progress-bar node counters). Both
	// are nil-checked before every call; an unset hook is a no-op.
	OnAugment   func(seq []int, length int64)
	OnNodeVisit func(n *BranchNode)

	UpperBound int64
	current    *BranchNode
}

// NewExecutor builds an Executor rooted at the current CoreLP/tour state,
// wiring the separator pipeline and pricer it will drive.
func NewExecutor(core *corelp.CoreLP, pipeline *separator.Pipeline, pricer *price.Pricer, sel Selector, opts Options) *Executor {
	root := NewRoot()
	h := NewBranchHistory(root)
	sel.Push(root)
	return &Executor{
		Core:       core,
		Pipeline:   pipeline,
		Pricer:     pricer,
		History:    h,
		Select:     sel,
		Options:    opts,
		UpperBound: core.Tour.Length(),
		current:    root,
	}
}

// supportEdges builds the permuted LP-support edge list the separator
// pipeline consumes (spec.md §4.2: "each separator receives a permuted
// edge list").
func (ex *Executor) supportEdges(sol relax.Solution) []separator.SupportEdge {
	perm := ex.Core.Tour.Perm()
	var out []separator.SupportEdge
	for e := 0; e < ex.Core.Graph.EdgeCount() && e < len(sol.X); e++ {
		if sol.X[e] <= ex.Core.Tol.Zero {
			continue
		}
		edge, err := ex.Core.Graph.Edge(e)
		if err != nil {
			continue
		}
		out = append(out, separator.SupportEdge{
			U:       perm[edge.End[0]],
			V:       perm[edge.End[1]],
			Weight:  sol.X[e],
			EdgeIdx: e,
		})
	}
	return out
}

// findCuts runs the full cut-generation cascade: the separator pipeline
// (G, which internally sequences H exact SEC, fast blossoms/block combs,
// and I domino-parity), then J meta-cut transforms over the combs/dominoes
// already installed in the LP, then K safe Gomory cuts if the queue is still small
// (spec.md §2 dataflow, §4.5, §4.6).
func (ex *Executor) findCuts(sol relax.Solution) ([]corelp.CutCandidate, error) {
	n := ex.Core.Graph.N()
	support := ex.supportEdges(sol)

	found, err := ex.Pipeline.FindCuts(n, support)
	if err != nil {
		return nil, fmt.Errorf("abcsearch: separator pipeline: %w", err)
	}

	if len(found) < MinCutQueue {
		var combs []*cut.HyperGraph
		for i := 0; i < ex.Core.Cuts.Len(); i++ {
			hg, err := ex.Core.Cuts.At(i)
			if err != nil {
				continue
			}
			if hg.Kind() == cut.KindComb || hg.Kind() == cut.KindDomino {
				combs = append(combs, hg)
			}
		}
		metaCuts := meta.Generate(ex.Core.Cuts.CliqueBank, ex.Core.Cuts.ToothBank, ex.Core.Tour.Perm(), combs, support, ex.Core.Tol.Cut)
		found = append(found, metaCuts...)
	}

	if len(found) < MinCutQueue {
		rows := ex.gmiRows(sol)
		gmiCuts := gmi.Generate(rows, sol.X, ex.Core.Tour.Incidence(), ex.Core.Graph.EdgeCount())
		for _, gc := range gmiCuts {
			pairs := make(map[[2]int]int, len(gc.ColIdx))
			ok := true
			for i, col := range gc.ColIdx {
				edge, err := ex.Core.Graph.Edge(col)
				if err != nil {
					ok = false
					break
				}
				u, v := edge.End[0], edge.End[1]
				if u > v {
					u, v = v, u
				}
				pairs[[2]int{u, v}] += int(gc.ColVal[i])
			}
			if !ok {
				continue
			}
			hg, err := cut.NewRawHyperGraph(cut.Greater, gc.Rhs, pairs)
			if err != nil {
				continue // every coefficient rounded to zero; not a usable cut
			}
			found = append(found, corelp.CutCandidate{HG: hg, ColIdx: gc.ColIdx, ColVal: gc.ColVal})
		}
	}

	return found, nil
}

// gmiRows exposes the LP's own degree and cut rows as gmi.Row inputs: the
// degree equations (coefficient 1 at each edge's two endpoints, rhs 2) plus
// every already-installed cut row, each weighted by its own LP dual.
func (ex *Executor) gmiRows(sol relax.Solution) []gmi.Row {
	n := ex.Core.Graph.N()
	numEdges := ex.Core.Graph.EdgeCount()

	var rows []gmi.Row

	for v := 0; v < n && v < len(sol.Pi); v++ {
		var colIdx []int
		var colVal []float64
		for e := 0; e < numEdges; e++ {
			edge, err := ex.Core.Graph.Edge(e)
			if err != nil {
				continue
			}
			if edge.End[0] == v || edge.End[1] == v {
				colIdx = append(colIdx, e)
				colVal = append(colVal, 1)
			}
		}
		rows = append(rows, gmi.Row{ColIdx: colIdx, ColVal: colVal, Rhs: 2, Sense: relax.Greater, Dual: sol.Pi[v]})
	}

	for i := 0; i < ex.Core.Cuts.Len(); i++ {
		row := n + i
		if row >= len(sol.Pi) {
			continue
		}
		hg, err := ex.Core.Cuts.At(i)
		if err != nil {
			continue
		}
		var colIdx []int
		var colVal []float64
		for e := 0; e < numEdges; e++ {
			edge, err := ex.Core.Graph.Edge(e)
			if err != nil {
				continue
			}
			coef := hg.CoeffOf(edge.End[0], edge.End[1])
			if coef == 0 {
				continue
			}
			colIdx = append(colIdx, e)
			colVal = append(colVal, float64(coef))
		}
		rows = append(rows, gmi.Row{ColIdx: colIdx, ColVal: colVal, Rhs: hg.Rhs, Sense: hg.Sense, Dual: sol.Pi[row]})
	}

	return rows
}

// RunRound performs one primal_pivot -> find_cuts -> add_cuts -> prune_cuts
// iteration (spec.md §2 dataflow). The caller is responsible for looping
// this until a PivotClass other than Subtour/Frac is reached, then
// escalating to pricing or branching as appropriate.
func (ex *Executor) RunRound() (corelp.PivotResult, int, error) {
	res, err := ex.Core.PrimalPivot()
	if err != nil {
		return res, 0, err
	}

	if res.Class != corelp.Subtour && res.Class != corelp.Frac {
		return res, 0, nil
	}

	candidates, err := ex.findCuts(res.Sol)
	if err != nil {
		return res, 0, err
	}

	added, err := ex.Core.AddCuts(candidates)
	if err != nil {
		return res, added, err
	}

	if _, err := ex.Core.PruneCuts(); err != nil {
		return res, added, err
	}

	log.Debugf("round: pivot %v, %d/%d cuts added", res.Class, added, len(candidates))

	return res, added, nil
}

// Clamp tightens the LP bound for node's branching edge toward its
// direction: Down fixes the column's upper bound to 0, Up fixes its lower
// bound to 1 (spec.md §4.8 "Node traversal"). A no-op on the root.
func (ex *Executor) Clamp(node *BranchNode) error {
	if node.IsRoot() {
		return nil
	}
	col, ok := ex.Core.Graph.HasEdge(node.U, node.V)
	if !ok {
		return ErrUnknownEdge
	}
	if node.Direction == Down {
		return ex.Core.Rel.TightenBound(col, 'U', 0)
	}
	return ex.Core.Rel.TightenBound(col, 'L', 1)
}

// Unclamp resets node's branching edge back to its natural [0,1] domain.
// A no-op on the root.
func (ex *Executor) Unclamp(node *BranchNode) error {
	if node.IsRoot() {
		return nil
	}
	col, ok := ex.Core.Graph.HasEdge(node.U, node.V)
	if !ok {
		return ErrUnknownEdge
	}
	if err := ex.Core.Rel.TightenBound(col, 'L', 0); err != nil {
		return err
	}
	return ex.Core.Rel.TightenBound(col, 'U', 1)
}

// lca returns the least common ancestor of a and b, walking Parent
// pointers guided by Depth.
func lca(a, b *BranchNode) *BranchNode {
	for a.Depth > b.Depth {
		a = a.Parent
	}
	for b.Depth > a.Depth {
		b = b.Parent
	}
	for a != b {
		a, b = a.Parent, b.Parent
	}
	return a
}

// pathToAncestor returns the chain of nodes from n up to (but excluding)
// anc, n first.
func pathToAncestor(n, anc *BranchNode) []*BranchNode {
	var out []*BranchNode
	for cur := n; cur != anc; cur = cur.Parent {
		out = append(out, cur)
	}
	return out
}

// Goto moves the executor from its currently-installed node to target,
// undoing bound clamps back up to their least common ancestor and then
// re-applying target's ancestor chain's clamps back down, installing
// target's branch tour and any saved warm-start basis (spec.md §4.8 "Node
// traversal").
func (ex *Executor) Goto(target *BranchNode) error {
	anchor := lca(ex.current, target)

	for _, n := range pathToAncestor(ex.current, anchor) {
		if err := ex.Unclamp(n); err != nil {
			return fmt.Errorf("abcsearch: node traversal unclamp: %w", err)
		}
	}

	down := pathToAncestor(target, anchor)
	for i := len(down) - 1; i >= 0; i-- {
		if err := ex.Clamp(down[i]); err != nil {
			return fmt.Errorf("abcsearch: node traversal clamp: %w", err)
		}
	}

	if len(target.EstimateSeq) > 0 {
		if err := ex.Core.SetTour(target.EstimateSeq); err != nil {
			return fmt.Errorf("abcsearch: installing branch tour: %w", err)
		}
	}

	if target.Basis != nil {
		if err := ex.Core.Rel.SetBasis(target.Basis); err != nil {
			return fmt.Errorf("abcsearch: installing warm-start basis: %w", err)
		}
		if err := ex.Core.Rel.FactorBasis(); err != nil {
			return fmt.Errorf("abcsearch: factoring warm-start basis: %w", err)
		}
	}

	ex.current = target
	return nil
}

// Solve drives the full search to completion: repeatedly pop the next
// unvisited node from Select, traverse to it, and resolve it, until no
// unvisited node remains (spec.md §2 dataflow, §4.8).
func (ex *Executor) Solve() error {
	for {
		node, ok := ex.Select.Next()
		if !ok {
			return nil
		}

		if err := ex.Goto(node); err != nil {
			return err
		}

		if ex.OnNodeVisit != nil {
			ex.OnNodeVisit(node)
		}

		if err := ex.processNode(node); err != nil {
			return err
		}
	}
}

// processNode resolves node: pivot/cut rounds until the relaxation reaches
// an integral class or stalls, escalating to pricing on a Tour or
// FathomedTour pivot (Pricer.Price's own class contract) and escalating
// straight to branching when a Subtour/Frac pivot stops finding cuts,
// since column generation does not apply to a cut-separation stall (spec.md
// §2 dataflow: "when pivots stagnate ... L prices edges; on proven
// optimality of a fractional LP under pricing, M selects a branching edge").
func (ex *Executor) processNode(node *BranchNode) error {
	stagnant := 0

	for {
		res, added, err := ex.RunRound()
		if err != nil {
			return err
		}

		switch res.Class {
		case corelp.FathomedTour:
			if !ex.Options.Sparse {
				mode, err := ex.Pricer.Price(corelp.FathomedTour, res.Sol, float64(ex.UpperBound))
				if err != nil {
					return err
				}
				if mode == price.Full {
					continue
				}
			}
			ex.recordIncumbent(res.Sol.Objective)
			node.Status = Done
			return nil

		case corelp.Tour:
			if !ex.Options.Sparse {
				mode, err := ex.Pricer.Price(corelp.Tour, res.Sol, float64(ex.UpperBound))
				if err != nil {
					return err
				}
				if mode == price.Partial {
					continue
				}
				// PartOpt: the inside scan is exhausted; escalate to one
				// full-scan round before concluding pricing is complete.
				mode, err = ex.Pricer.Price(corelp.FathomedTour, res.Sol, float64(ex.UpperBound))
				if err != nil {
					return err
				}
				if mode == price.Full {
					continue
				}
			}
			ex.recordIncumbent(res.Sol.Objective)
			node.Status = Done
			return nil

		default: // Subtour, Frac
			if added > 0 {
				stagnant = 0
				continue
			}
			stagnant++
			if stagnant < MaxStagnantRounds {
				continue
			}
			if ex.Options.PurePrimal {
				node.Status = Done
				return nil
			}

			edge, err := BranchEdge(ex.Core, res.Sol, ex.Core.Tol.Zero)
			if errors.Is(err, errNoFractionalCandidates) {
				node.Status = Done
				return nil
			}
			if err != nil {
				return err
			}

			down, up := Split(ex.Core.Graph, node, edge)
			node.Status = Done
			if down.Status != Pruned {
				ex.History.Append(down)
				ex.Select.Push(down)
			}
			if up.Status != Pruned {
				ex.History.Append(up)
				ex.Select.Push(up)
			}
			return nil
		}
	}
}

// recordIncumbent updates UpperBound if objective describes a strictly
// better integral tour, notifying OnAugment when set (spec.md §8 invariant
// 5: "after every augmentation, the new best-tour length is strictly less
// than the previous one").
func (ex *Executor) recordIncumbent(objective float64) {
	if int64(objective) < ex.UpperBound {
		ex.UpperBound = int64(objective)
		if ex.OnAugment != nil {
			ex.OnAugment(ex.Core.Tour.Sequence(), ex.UpperBound)
		}
	}
}
