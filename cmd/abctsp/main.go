// Command abctsp solves the symmetric traveling salesman problem to proven
// optimality via a primal cutting-plane relaxation embedded in an
// augment-branch-cut search (spec.md §§1-8).
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"

	"github.com/corecut/abctsp/abcsearch"
	"github.com/corecut/abctsp/ioformat"
)

func main() {
	app := cli.NewApp()
	app.Name = "abctsp"
	app.Usage = "exact symmetric TSP via cutting-plane branch-and-cut"
	app.ArgsUsage = "[tsplib-file]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "R", Usage: "generate a random Euclidean instance"},
		cli.BoolFlag{Name: "S", Usage: "sparse mode: no pricing, rely on cuts alone"},
		cli.BoolFlag{Name: "P", Usage: "pure primal cutting plane, skip branching"},
		cli.BoolFlag{Name: "V", Usage: "verbose output"},
		cli.BoolFlag{Name: "X", Usage: "dump xy-coordinates to file when applicable"},
		cli.BoolFlag{Name: "E", Usage: "write tour edges to file"},
		cli.BoolFlag{Name: "G", Usage: "GIF mode: write each new tour to a distinct file"},
		cli.BoolFlag{Name: "B", Usage: "progress bar output"},
		cli.IntFlag{Name: "b", Value: 0, Usage: "node-selection rule: 0=interleaved, 1=best-tour, 2=best-bound, 3=DFS"},
		cli.IntFlag{Name: "c", Value: 1, Usage: "cut-selection preset: 0=vanilla, 1=aggressive"},
		cli.IntFlag{Name: "e", Value: 0, Usage: "initial edge set: 0=LK union, 1=Delaunay"},
		cli.IntFlag{Name: "n", Value: 100, Usage: "random-instance node count"},
		cli.IntFlag{Name: "g", Value: 1000, Usage: "random-instance grid side"},
		cli.IntFlag{Name: "s", Value: 0, Usage: "random seed (0 means wall-clock time)"},
		cli.StringFlag{Name: "t", Usage: "load initial tour from file"},
		cli.Float64Flag{Name: "l", Usage: "target lower bound: report optimal when tour <= this value"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "abctsp:", err)
		os.Exit(1)
	}
}

func optionsFromContext(c *cli.Context) runOptions {
	seed := int64(c.Int("s"))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return runOptions{
		InputPath:   c.Args().Get(0),
		Random:      c.Bool("R"),
		N:           c.Int("n"),
		GridSide:    c.Int("g"),
		Seed:        seed,
		Sparse:      c.Bool("S"),
		PurePrimal:  c.Bool("P"),
		Verbose:     c.Bool("V"),
		DumpXY:      c.Bool("X"),
		WriteEdges:  c.Bool("E"),
		GIFMode:     c.Bool("G"),
		ProgressBar: c.Bool("B"),
		NodeRule:    c.Int("b"),
		CutPreset:   c.Int("c"),
		EdgeSet:     c.Int("e"),
		TourFile:    c.String("t"),
		LowerBound:  c.Float64("l"),
	}
}

func run(c *cli.Context) error {
	o := optionsFromContext(c)
	if err := o.validate(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	installLogging(o.Verbose)

	ex, err := buildExecutor(o)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	if err := ex.Solve(); err != nil {
		return cli.NewExitError(fmt.Sprintf("abctsp: solve failed: %v", err), 1)
	}

	return report(o, ex)
}

// report prints the final tour summary and writes the file output requested
// by -E (the -X output is written earlier, in buildExecutor), matching spec.md §6's "File formats" and
// §7's user-visible-behavior expectations.
func report(o runOptions, ex *abcsearch.Executor) error {
	seq := ex.Core.Tour.Sequence()
	length := ex.Core.Tour.Length()

	fmt.Printf("tour length: %d\n", length)
	fmt.Printf("nodes: %d\n", len(seq))

	if o.LowerBound > 0 && float64(length) <= o.LowerBound {
		fmt.Println("status: optimal (matches target lower bound)")
	} else {
		fmt.Println("status: best tour found")
	}

	if o.WriteEdges {
		f, err := os.Create("tour-edges.txt")
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		defer f.Close()
		if err := ioformat.WriteTourEdges(f, seq); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
	}

	return nil
}
