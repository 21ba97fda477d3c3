// Package ioformat reads and writes the plain-text file formats the CLI
// consumes and produces: tour-node permutations, tour-edge lists, LP
// solution dumps, and xy-coordinate files, plus a minimal TSPLIB reader
// that extracts only the node count and coordinates this engine needs.
package ioformat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/corecut/abctsp/graph"
)

// Sentinel errors for malformed input files.
var (
	// ErrEmptyFile indicates a file with no usable header line.
	ErrEmptyFile = errors.New("ioformat: empty file")

	// ErrBadHeader indicates a header line that does not parse as the
	// expected integer count(s).
	ErrBadHeader = errors.New("ioformat: malformed header line")

	// ErrTourLength indicates a tour-nodes file whose permutation length
	// does not match its declared node count.
	ErrTourLength = errors.New("ioformat: tour length does not match declared node count")

	// ErrNotPermutation indicates a tour-nodes file whose values are not a
	// permutation of {0,...,n-1}.
	ErrNotPermutation = errors.New("ioformat: tour nodes are not a permutation of 0..n-1")

	// ErrNoCoordinates indicates a TSPLIB file with no NODE_COORD_SECTION,
	// which this reader requires since it builds a Euclidean length oracle.
	ErrNoCoordinates = errors.New("ioformat: TSPLIB file has no NODE_COORD_SECTION")
)

// WriteTourNodes writes seq (a cyclic permutation of {0,...,n-1}) in the
// tour-nodes format: node count on line 1, then the permutation ten
// values per line (spec.md §6 "Tour-nodes file").
func WriteTourNodes(w io.Writer, seq []int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, len(seq)); err != nil {
		return err
	}
	for i, v := range seq {
		if i > 0 {
			if i%10 == 0 {
				if _, err := fmt.Fprintln(bw); err != nil {
					return err
				}
			} else {
				if _, err := fmt.Fprint(bw, " "); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprint(bw, v); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(bw); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadTourNodes reads a tour-nodes file back into a permutation, checking
// that it has exactly n entries and is a permutation of {0,...,n-1}. The
// reader is whitespace-insensitive past the header line.
func ReadTourNodes(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	n, ok := nextHeaderInt(sc)
	if !ok {
		return nil, ErrEmptyFile
	}

	seq := make([]int, 0, n)
	for sc.Scan() {
		for _, f := range strings.Fields(sc.Text()) {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
			}
			seq = append(seq, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(seq) != n {
		return nil, ErrTourLength
	}
	if err := checkPermutation(seq); err != nil {
		return nil, err
	}
	return seq, nil
}

func checkPermutation(seq []int) error {
	seen := make([]bool, len(seq))
	for _, v := range seq {
		if v < 0 || v >= len(seq) || seen[v] {
			return ErrNotPermutation
		}
		seen[v] = true
	}
	return nil
}

// WriteTourEdges writes the tour defined by seq as the tour-edges format:
// "n m" on line 1 (m == n, one edge per tour step), then "u v 1.0" per
// edge (spec.md §6 "Tour-edges file").
func WriteTourEdges(w io.Writer, seq []int) error {
	n := len(seq)
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", n, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		u, v := seq[i], seq[(i+1)%n]
		if _, err := fmt.Fprintf(bw, "%d %d 1.0\n", u, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteLPSolution writes every edge with LP value above zeroEps in the
// LP-solution format: "n m" on line 1 (m = nonzero edge count), then
// "u v x" per edge with u < v and x at fixed 6-digit precision (spec.md
// §6 "LP solution file").
func WriteLPSolution(w io.Writer, g *graph.CoreGraph, x []float64, zeroEps float64) error {
	type row struct {
		u, v int
		val  float64
	}
	var rows []row
	for e := 0; e < g.EdgeCount() && e < len(x); e++ {
		if x[e] <= zeroEps {
			continue
		}
		edge, err := g.Edge(e)
		if err != nil {
			return err
		}
		u, v := edge.End[0], edge.End[1]
		if u > v {
			u, v = v, u
		}
		rows = append(rows, row{u, v, x[e]})
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d %d\n", g.N(), len(rows)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%d %d %.6f\n", r.u, r.v, r.val); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteXYCoordinates writes pts in the xy-coordinates format: node count
// on line 1, then one "x y" pair per node (spec.md §6 "xy-coordinates
// file").
func WriteXYCoordinates(w io.Writer, pts [][2]float64) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, len(pts)); err != nil {
		return err
	}
	for _, p := range pts {
		if _, err := fmt.Fprintf(bw, "%g %g\n", p[0], p[1]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadXYCoordinates reads an xy-coordinates file back into a point slice.
func ReadXYCoordinates(r io.Reader) ([][2]float64, error) {
	sc := bufio.NewScanner(r)
	n, ok := nextHeaderInt(sc)
	if !ok {
		return nil, ErrEmptyFile
	}

	pts := make([][2]float64, 0, n)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, ErrBadHeader
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, err
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, err
		}
		pts = append(pts, [2]float64{x, y})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(pts) != n {
		return nil, ErrTourLength
	}
	return pts, nil
}

// nextHeaderInt scans past blank lines to the first line with a valid
// integer header value.
func nextHeaderInt(sc *bufio.Scanner) (int, bool) {
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// ReadTSPLIB extracts the node count and 2-D coordinates from a TSPLIB
// file, ignoring every section but DIMENSION and NODE_COORD_SECTION
// (spec.md §6: "only the node count, coordinates... are used").
func ReadTSPLIB(r io.Reader) (n int, pts [][2]float64, err error) {
	sc := bufio.NewScanner(r)
	inCoords := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "DIMENSION"):
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				fields := strings.Fields(line)
				if len(fields) < 3 {
					return 0, nil, ErrBadHeader
				}
				n, err = strconv.Atoi(fields[2])
			} else {
				n, err = strconv.Atoi(strings.TrimSpace(parts[1]))
			}
			if err != nil {
				return 0, nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
			}
		case strings.HasPrefix(line, "NODE_COORD_SECTION"):
			inCoords = true
			pts = make([][2]float64, 0, n)
		case line == "EOF":
			inCoords = false
		case inCoords:
			fields := strings.Fields(line)
			if len(fields) < 3 {
				continue
			}
			x, errX := strconv.ParseFloat(fields[1], 64)
			y, errY := strconv.ParseFloat(fields[2], 64)
			if errX != nil || errY != nil {
				return 0, nil, ErrBadHeader
			}
			pts = append(pts, [2]float64{x, y})
		}
	}
	if err := sc.Err(); err != nil {
		return 0, nil, err
	}
	if n == 0 {
		return 0, nil, ErrBadHeader
	}
	if pts == nil {
		return n, nil, ErrNoCoordinates
	}
	return n, pts, nil
}
