package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"

	logging "github.com/op/go-logging"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
	"github.com/corecut/abctsp/dp"
	"github.com/corecut/abctsp/graph"
	"github.com/corecut/abctsp/internal/graphutil"
	"github.com/corecut/abctsp/ioformat"
	"github.com/corecut/abctsp/price"
	"github.com/corecut/abctsp/relax"
	"github.com/corecut/abctsp/separator"
	"github.com/corecut/abctsp/tour"
)

var log = logging.MustGetLogger("cmd")

// Sentinel errors for argument validation (spec.md §7 "Argument errors").
var (
	ErrNoInput           = errors.New("abctsp: either -R or an input TSPLIB file path is required")
	ErrConflictingInput  = errors.New("abctsp: -R and an input file path are mutually exclusive")
	ErrBadNodeSelectRule = errors.New("abctsp: node-selection rule (-b) must be 0-3")
	ErrBadCutPreset      = errors.New("abctsp: cut-selection preset (-c) must be 0-1")
	ErrBadEdgeSet        = errors.New("abctsp: initial edge set (-e) must be 0-1")
)

// runOptions collects every CLI-derived knob (spec.md §6 "CLI surface").
type runOptions struct {
	InputPath string
	Random    bool
	N         int
	GridSide  int
	Seed      int64

	Sparse     bool
	PurePrimal bool
	Verbose    bool
	DumpXY     bool
	WriteEdges bool
	GIFMode    bool
	ProgressBar bool

	NodeRule int
	CutPreset int
	EdgeSet   int
	TourFile  string
	LowerBound float64
}

func (o runOptions) validate() error {
	if o.Random == (o.InputPath != "") {
		if !o.Random && o.InputPath == "" {
			return ErrNoInput
		}
		return ErrConflictingInput
	}
	if o.NodeRule < 0 || o.NodeRule > 3 {
		return ErrBadNodeSelectRule
	}
	if o.CutPreset < 0 || o.CutPreset > 1 {
		return ErrBadCutPreset
	}
	if o.EdgeSet < 0 || o.EdgeSet > 1 {
		return ErrBadEdgeSet
	}
	return nil
}

// buildInstance resolves either a random Euclidean instance or a TSPLIB
// file into an Instance plus its coordinates (nil when the input TSPLIB
// file carried none).
func buildInstance(o runOptions) (*graph.Instance, [][2]float64, error) {
	if o.Random {
		rng := rand.New(rand.NewSource(o.Seed))
		pts := graphutil.RandomEuclideanPoints(o.N, o.GridSide, rng.Float64)
		ins, err := graph.NewInstance(o.N, graph.EuclideanLengthFunc(pts))
		return ins, pts, err
	}

	f, err := os.Open(o.InputPath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	n, pts, err := ioformat.ReadTSPLIB(f)
	if err != nil {
		return nil, nil, err
	}
	ins, err := graph.NewInstance(n, graph.EuclideanLengthFunc(pts))
	return ins, pts, err
}

// initialTour resolves the starting tour: loaded from -t when given,
// otherwise built from scratch by the same forced-fragment-merge-plus-2opt
// estimator the branch search itself uses for child nodes (spec.md §4.8's
// BranchTourFind generalizes naturally to an unconstrained root tour).
func initialTour(o runOptions, g *graph.CoreGraph) ([]int, error) {
	if o.TourFile != "" {
		f, err := os.Open(o.TourFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ioformat.ReadTourNodes(f)
	}
	seq, _, err := abcsearch.BranchTourFind(g, nil)
	return seq, err
}

// candidateEdges resolves the sparse initial edge set (spec.md §6 "-e"):
// an LK-union neighbor-list candidate set, or a relative-neighborhood-graph
// proxy for a Delaunay triangulation.
func candidateEdges(o runOptions, ins *graph.Instance) ([][2]int, error) {
	if o.EdgeSet == 1 {
		return graphutil.RelativeNeighborhoodEdges(ins)
	}
	return graphutil.LKUnionEdges(ins, graphutil.DefaultNeighborK)
}

// buildExecutor assembles the full CoreLP/separator/pricer stack and an
// Executor ready to Solve, wiring every CLI-visible knob (spec.md §6).
func buildExecutor(o runOptions) (*abcsearch.Executor, error) {
	ins, pts, err := buildInstance(o)
	if err != nil {
		return nil, fmt.Errorf("abctsp: building instance: %w", err)
	}

	if o.DumpXY && pts != nil {
		if err := dumpXY(pts); err != nil {
			return nil, fmt.Errorf("abctsp: dumping coordinates: %w", err)
		}
	}

	g := graph.NewCoreGraph(ins)

	seq, err := initialTour(o, g)
	if err != nil {
		return nil, fmt.Errorf("abctsp: building initial tour: %w", err)
	}

	tourEdges := make(map[[2]int]bool, len(seq))
	for i := 0; i < len(seq); i++ {
		u, v := seq[i], seq[(i+1)%len(seq)]
		if u > v {
			u, v = v, u
		}
		tourEdges[[2]int{u, v}] = true
		if _, err := g.AddEdge(u, v, false); err != nil {
			return nil, fmt.Errorf("abctsp: adding tour edge: %w", err)
		}
	}

	candidates, err := candidateEdges(o, ins)
	if err != nil {
		return nil, fmt.Errorf("abctsp: building candidate edge set: %w", err)
	}
	for _, e := range candidates {
		if tourEdges[e] {
			continue
		}
		if _, err := g.AddEdge(e[0], e[1], true); err != nil && !errors.Is(err, graph.ErrDuplicateEdge) {
			return nil, fmt.Errorf("abctsp: adding candidate edge: %w", err)
		}
	}

	rel := relax.NewGonumRelaxation()
	rows := make([]int, g.N())
	for v := 0; v < g.N(); v++ {
		r, err := rel.NewRow(relax.Equal, 2)
		if err != nil {
			return nil, fmt.Errorf("abctsp: degree row %d: %w", v, err)
		}
		rows[v] = r
	}
	for e := 0; e < g.EdgeCount(); e++ {
		edge, err := g.Edge(e)
		if err != nil {
			return nil, err
		}
		if _, err := rel.AddCol(float64(edge.Length), []int{rows[edge.End[0]], rows[edge.End[1]]}, []float64{1, 1}, relax.Bounds{Lower: 0, Upper: 1}); err != nil {
			return nil, fmt.Errorf("abctsp: adding column for edge %d: %w", e, err)
		}
	}

	at, err := tour.New(g, seq)
	if err != nil {
		return nil, fmt.Errorf("abctsp: installing initial tour: %w", err)
	}

	cliques := cut.NewCliqueBank(at.Sequence(), at.Perm())
	teeth := cut.NewToothBank(at.Sequence(), at.Perm())
	ec := cut.NewExternalCuts(cliques, teeth)

	core := corelp.New(g, rel, ec, at)

	pipeline := separator.New(
		&separator.ExactSEC{Bank: cliques, Perm: at.Perm(), Eps: core.Tol.Cut},
		&separator.FastBlossom{Bank: cliques, Perm: at.Perm(), Eps: core.Tol.Cut},
		&separator.BlockComb{Bank: cliques, Perm: at.Perm(), Eps: core.Tol.Cut},
		&dp.DominoParity{CliqueBank: cliques, ToothBank: teeth, Perm: at.Perm(), Eps: core.Tol.Cut},
	)
	if o.CutPreset == 0 {
		pipeline.QueueThreshold = separator.DefaultQueueThreshold / 2
	}

	pricer := price.New(core)

	var selector abcsearch.Selector
	switch o.NodeRule {
	case 1:
		selector = abcsearch.NewTourSelector()
	case 2:
		selector = abcsearch.NewBoundSelector()
	case 3:
		selector = abcsearch.NewDFSSelector()
	default:
		selector = abcsearch.NewInterleavedSelector()
	}

	ex := abcsearch.NewExecutor(core, pipeline, pricer, selector, abcsearch.Options{
		Sparse:     o.Sparse,
		PurePrimal: o.PurePrimal,
	})

	if o.GIFMode {
		frame := 0
		ex.OnAugment = func(tourSeq []int, length int64) {
			frame++
			name := fmt.Sprintf("tour-%04d.txt", frame)
			if err := writeTourFile(name, tourSeq); err != nil {
				log.Warningf("GIF-mode frame %d: %v", frame, err)
				return
			}
			log.Infof("wrote %s (length %d)", name, length)
		}
	}
	if o.ProgressBar {
		visited := 0
		ex.OnNodeVisit = func(n *abcsearch.BranchNode) {
			visited++
			fmt.Fprintf(os.Stderr, "\rnodes explored: %d", visited)
		}
	}

	return ex, nil
}

func writeTourFile(path string, seq []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return ioformat.WriteTourNodes(f, seq)
}

func dumpXY(pts [][2]float64) error {
	f, err := os.Create("coordinates.txt")
	if err != nil {
		return err
	}
	defer f.Close()
	return ioformat.WriteXYCoordinates(f, pts)
}
