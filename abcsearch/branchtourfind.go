package abcsearch

import (
	"math"

	"github.com/corecut/abctsp/graph"
)

// EdgeConstraint is one ancestor's branching decision, as BranchTourFind
// consumes it: edge (U,V) is either forced into the tour (Want) or
// forbidden from it.
type EdgeConstraint struct {
	U, V int
	Want bool
}

// AncestorConstraints walks from n up to the root, collecting every
// ancestor's branching edge as an EdgeConstraint (spec.md §4.8 "Split":
// "a tour satisfying all up-fixed edges and avoiding all down-fixed
// edges"). The node n itself is included if it already carries a branching
// edge (i.e. is not the root).
func AncestorConstraints(n *BranchNode) []EdgeConstraint {
	var out []EdgeConstraint
	for cur := n; cur != nil && !cur.IsRoot(); cur = cur.Parent {
		out = append(out, EdgeConstraint{U: cur.U, V: cur.V, Want: cur.Direction == Up})
	}
	return out
}

// BranchTourFind constructs an estimate tour satisfying every constraint:
// a greedy merge of constraint-forced path fragments (original_source's
// "Lin-Kernighan-style tour search under constraints", simplified here to
// forced-fragment nearest-neighbor merging since a full LK implementation
// is out of scope), followed by a constrained 2-opt polish that never
// breaks a Want edge or introduces an Avoid edge. Returns ErrInfeasibleNode
// if any node's Want-degree exceeds 2 or the forced fragments cannot be
// closed into a single Hamiltonian cycle.
func BranchTourFind(g *graph.CoreGraph, constraints []EdgeConstraint) ([]int, int64, error) {
	n := g.N()
	ins := g.Instance()

	avoid := make(map[[2]int]bool)
	want := make([][]int, n)
	wantDegree := make([]int, n)
	for _, c := range constraints {
		key := edgeKey(c.U, c.V)
		if c.Want {
			want[c.U] = append(want[c.U], c.V)
			want[c.V] = append(want[c.V], c.U)
			wantDegree[c.U]++
			wantDegree[c.V]++
		} else {
			avoid[key] = true
		}
	}
	for v := 0; v < n; v++ {
		if wantDegree[v] > 2 {
			return nil, 0, ErrInfeasibleNode
		}
	}

	frags, err := buildFragments(n, want)
	if err != nil {
		return nil, 0, err
	}

	seq, err := mergeFragments(n, frags, avoid, ins)
	if err != nil {
		return nil, 0, err
	}

	seq = constrainedTwoOpt(seq, avoid, want, ins)

	length, err := tourLength(seq, ins)
	if err != nil {
		return nil, 0, err
	}

	return seq, length, nil
}

// fragment is a simple path of forced-together nodes; a singleton node
// with no Want edges is its own one-node fragment.
type fragment struct {
	nodes []int // path order; endpoints are nodes[0] and nodes[len-1]
}

// buildFragments chains Want edges into simple paths, detecting a forced
// cycle shorter than n (always infeasible: it can never extend to a full
// tour) or a node whose forced chain doubles back on itself.
func buildFragments(n int, want [][]int) ([]*fragment, error) {
	visited := make([]bool, n)
	var frags []*fragment

	for v := 0; v < n; v++ {
		if visited[v] || len(want[v]) == 2 {
			continue // interior node of some other fragment, visited from its endpoint
		}
		if len(want[v]) > 1 {
			continue
		}
		// v is an endpoint (degree 0 or 1 in the want graph): walk the chain.
		path := walkChain(v, want, visited)
		frags = append(frags, &fragment{nodes: path})
	}

	// Any node still unvisited at this point lies on a cycle entirely made
	// of Want edges; only a full Hamiltonian cycle (len==n) is feasible.
	var cyc []int
	for v := 0; v < n; v++ {
		if !visited[v] {
			cyc = walkChain(v, want, visited)
			if len(cyc) != n {
				return nil, ErrInfeasibleNode
			}
			frags = append(frags, &fragment{nodes: cyc})
		}
	}

	return frags, nil
}

func walkChain(start int, want [][]int, visited []bool) []int {
	path := []int{start}
	visited[start] = true
	prev := -1
	cur := start
	for {
		next := -1
		for _, nb := range want[cur] {
			if nb != prev {
				next = nb
				break
			}
		}
		if next < 0 || visited[next] {
			break
		}
		path = append(path, next)
		visited[next] = true
		prev, cur = cur, next
	}
	return path
}

// mergeFragments greedily joins fragment endpoints by nearest available
// (non-avoided) distance until one Hamiltonian cycle remains, the
// construction half of BranchTourFind.
func mergeFragments(n int, frags []*fragment, avoid map[[2]int]bool, ins *graph.Instance) ([]int, error) {
	if len(frags) == 1 && len(frags[0].nodes) == n {
		return frags[0].nodes, nil
	}

	for len(frags) > 1 {
		bestI, bestJ := -1, -1
		bestReverseJ := false
		bestCost := math.Inf(1)

		for i := 0; i < len(frags); i++ {
			for j := 0; j < len(frags); j++ {
				if i == j {
					continue
				}
				tailA := frags[i].nodes[len(frags[i].nodes)-1]
				for _, headCandidate := range []struct {
					node    int
					reverse bool
				}{
					{frags[j].nodes[0], false},
					{frags[j].nodes[len(frags[j].nodes)-1], true},
				} {
					if avoid[edgeKey(tailA, headCandidate.node)] {
						continue
					}
					length, err := ins.Length(tailA, headCandidate.node)
					if err != nil {
						continue
					}
					if float64(length) < bestCost {
						bestCost = float64(length)
						bestI, bestJ = i, j
						bestReverseJ = headCandidate.reverse
					}
				}
			}
		}

		if bestI < 0 {
			return nil, ErrInfeasibleNode
		}

		joined := append([]int(nil), frags[bestI].nodes...)
		tail := frags[bestJ].nodes
		if bestReverseJ {
			tail = reversed(tail)
		}
		joined = append(joined, tail...)

		var rest []*fragment
		for k, f := range frags {
			if k != bestI && k != bestJ {
				rest = append(rest, f)
			}
		}
		rest = append(rest, &fragment{nodes: joined})
		frags = rest
	}

	seq := frags[0].nodes
	if avoid[edgeKey(seq[len(seq)-1], seq[0])] {
		return nil, ErrInfeasibleNode
	}

	return seq, nil
}

func reversed(s []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

// constrainedTwoOpt runs first-improvement 2-opt over seq, skipping any
// reversal that would break a Want edge or create an Avoid edge.
func constrainedTwoOpt(seq []int, avoid map[[2]int]bool, want [][]int, ins *graph.Instance) []int {
	n := len(seq)
	if n < 4 {
		return seq
	}

	wantSet := make(map[[2]int]bool)
	for u, nbs := range want {
		for _, v := range nbs {
			wantSet[edgeKey(u, v)] = true
		}
	}

	improved := true
	for improved {
		improved = false
		for i := 0; i < n-1; i++ {
			for k := i + 1; k < n; k++ {
				a, b := seq[i], seq[(i+1)%n]
				c, d := seq[k], seq[(k+1)%n]
				if a == c || b == d {
					continue
				}
				if wantSet[edgeKey(a, b)] || wantSet[edgeKey(c, d)] {
					continue
				}
				if avoid[edgeKey(a, c)] || avoid[edgeKey(b, d)] {
					continue
				}
				lab, e1 := ins.Length(a, b)
				lcd, e2 := ins.Length(c, d)
				lac, e3 := ins.Length(a, c)
				lbd, e4 := ins.Length(b, d)
				if e1 != nil || e2 != nil || e3 != nil || e4 != nil {
					continue
				}
				delta := (lac + lbd) - (lab + lcd)
				if delta < 0 {
					reverseSegment(seq, i+1, k)
					improved = true
				}
			}
		}
	}

	return seq
}

func reverseSegment(seq []int, i, k int) {
	for i < k {
		seq[i], seq[k] = seq[k], seq[i]
		i++
		k--
	}
}

func tourLength(seq []int, ins *graph.Instance) (int64, error) {
	var total int64
	n := len(seq)
	for i := 0; i < n; i++ {
		length, err := ins.Length(seq[i], seq[(i+1)%n])
		if err != nil {
			return 0, err
		}
		total += length
	}
	return total, nil
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}
