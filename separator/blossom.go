package separator

import (
	"sort"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/cut"
)

// FastBlossom finds 2-matching (blossom) inequalities via the Padberg-Hong
// "odd component" heuristic: tour-tight (weight-1) edges are contracted by
// union-find into blobs; any blob with an odd number of fractional edges
// leaving it and total leaving weight below |teeth|-Eps gives a handle, one
// tooth per leaving edge's far endpoint (spec.md §4.3 "fast blossoms" —
// a thin bridge to an external heuristic in the original design; this is
// a from-scratch simplified stand-in, documented in DESIGN.md, since no
// pack library offers Concorde's black-box blossom separator).
type FastBlossom struct {
	Bank *cut.CliqueBank
	Perm []int
	Eps  float64
}

func (b *FastBlossom) Name() string { return "fast_blossom" }

func (b *FastBlossom) Separate(n int, edges []SupportEdge) ([]corelp.CutCandidate, error) {
	uf := newUnionFind(n)
	for _, e := range edges {
		if e.Weight >= 1-b.Eps {
			uf.union(e.U, e.V)
		}
	}

	// Group fractional (0<w<1) edges leaving each blob.
	type leaving struct {
		other  int
		weight float64
		idx    int
	}
	byBlob := make(map[int][]leaving)
	for _, e := range edges {
		ru, rv := uf.find(e.U), uf.find(e.V)
		if ru == rv {
			continue
		}
		if e.Weight <= b.Eps || e.Weight >= 1-b.Eps {
			continue
		}
		byBlob[ru] = append(byBlob[ru], leaving{other: e.V, weight: e.Weight, idx: e.EdgeIdx})
		byBlob[rv] = append(byBlob[rv], leaving{other: e.U, weight: e.Weight, idx: e.EdgeIdx})
	}

	var out []corelp.CutCandidate
	for blob, ls := range byBlob {
		if len(ls)%2 == 0 || len(ls) < 3 {
			continue
		}
		total := 0.0
		for _, l := range ls {
			total += l.weight
		}
		if total > float64(len(ls))-1-b.Eps {
			continue
		}

		shore := make([]bool, n)
		for i := 0; i < n; i++ {
			if uf.find(i) == blob {
				shore[i] = true
			}
		}
		cand, err := buildCrossingCut(b.Bank, b.Perm, shore, n, edges, float64(len(ls)+1), b.Eps)
		if err != nil {
			return out, err
		}
		out = append(out, cand...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].HG.Rhs < out[j].HG.Rhs })

	return out, nil
}

type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return &unionFind{parent: p}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
