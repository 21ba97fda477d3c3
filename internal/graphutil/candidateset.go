// Package graphutil builds the sparse candidate edge sets a solve starts
// from: a k-nearest-neighbor union (the "LK union" initial edge set, a
// simplified stand-in for a full Lin-Kernighan neighbor list) and a
// relative-neighborhood-graph proxy for "Delaunay" (no pack library
// offers a true planar Delaunay triangulation; RNG is the closest graph-
// theoretic relative with a clean O(n^3) definition, documented in
// DESIGN.md). Both return the same shape: a deduplicated, canonicalized
// (u<v) edge list ready for CoreGraph.AddEdge.
package graphutil

import (
	"math"
	"sort"

	"github.com/corecut/abctsp/graph"
)

// DefaultNeighborK is the neighbor-list size the LK-union candidate set
// uses per node (original_source's Lin-Kernighan neighbor lists default to
// a small constant well under n).
const DefaultNeighborK = 10

// KNearest returns, for every node, its k nearest neighbors by ins's
// length oracle, sorted by ascending distance.
//
// Complexity: O(n^2 log n).
func KNearest(ins *graph.Instance, k int) ([][]int, error) {
	n := ins.N()
	if k > n-1 {
		k = n - 1
	}
	out := make([][]int, n)
	for u := 0; u < n; u++ {
		type cand struct {
			v int
			d int64
		}
		cands := make([]cand, 0, n-1)
		for v := 0; v < n; v++ {
			if v == u {
				continue
			}
			d, err := ins.Length(u, v)
			if err != nil {
				return nil, err
			}
			cands = append(cands, cand{v, d})
		}
		sort.Slice(cands, func(i, j int) bool {
			if cands[i].d != cands[j].d {
				return cands[i].d < cands[j].d
			}
			return cands[i].v < cands[j].v
		})
		if len(cands) > k {
			cands = cands[:k]
		}
		nbrs := make([]int, len(cands))
		for i, c := range cands {
			nbrs[i] = c.v
		}
		out[u] = nbrs
	}
	return out, nil
}

// LKUnionEdges builds the candidate edge set as the union of every node's
// k-nearest-neighbor list, canonicalized and deduplicated.
//
// Complexity: O(n^2 log n).
func LKUnionEdges(ins *graph.Instance, k int) ([][2]int, error) {
	nbrs, err := KNearest(ins, k)
	if err != nil {
		return nil, err
	}
	seen := make(map[[2]int]bool)
	var edges [][2]int
	for u, list := range nbrs {
		for _, v := range list {
			key := canon(u, v)
			if seen[key] {
				continue
			}
			seen[key] = true
			edges = append(edges, key)
		}
	}
	return edges, nil
}

// RelativeNeighborhoodEdges builds the relative-neighborhood-graph
// candidate set: edge (u,v) is included iff no third point w is closer to
// both u and v than u and v are to each other (the standard RNG
// definition, a sparse planar-ish proxy for a Delaunay triangulation).
//
// Complexity: O(n^3).
func RelativeNeighborhoodEdges(ins *graph.Instance) ([][2]int, error) {
	n := ins.N()
	var edges [][2]int
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			duv, err := ins.Length(u, v)
			if err != nil {
				return nil, err
			}
			related := true
			for w := 0; w < n && related; w++ {
				if w == u || w == v {
					continue
				}
				dwu, err := ins.Length(w, u)
				if err != nil {
					return nil, err
				}
				dwv, err := ins.Length(w, v)
				if err != nil {
					return nil, err
				}
				if dwu < duv && dwv < duv {
					related = false
				}
			}
			if related {
				edges = append(edges, [2]int{u, v})
			}
		}
	}
	return edges, nil
}

func canon(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}

// RandomEuclideanPoints generates n points uniformly at random on a
// [0,gridSide) x [0,gridSide) integer grid, driven by rng so callers get
// seed-stable instances (spec.md §8 "seed-stable" end-to-end scenarios).
func RandomEuclideanPoints(n, gridSide int, rng func() float64) [][2]float64 {
	pts := make([][2]float64, n)
	for i := range pts {
		pts[i] = [2]float64{
			math.Floor(rng() * float64(gridSide)),
			math.Floor(rng() * float64(gridSide)),
		}
	}
	return pts
}
