package price

import "sort"

// CandidateEdge is an edge not currently in the core graph, discovered by
// one of the pricer's generators.
type CandidateEdge struct {
	U, V   int
	Length int64
}

// GenerateInside returns, for every node, its InsideK nearest not-yet-
// present neighbors (spec.md §4.7: "inside = 50-nearest neighborhood"),
// deduplicated across both endpoints' scans.
func (p *Pricer) GenerateInside() ([]CandidateEdge, error) {
	ins := p.Graph.Instance()
	n := p.Graph.N()

	seen := make(map[[2]int]bool)
	var out []CandidateEdge
	for u := 0; u < n; u++ {
		type nb struct {
			v      int
			length int64
		}
		var cands []nb
		for v := 0; v < n; v++ {
			if v == u {
				continue
			}
			if _, ok := p.Graph.HasEdge(u, v); ok {
				continue
			}
			length, err := ins.Length(u, v)
			if err != nil {
				return nil, err
			}
			cands = append(cands, nb{v, length})
		}
		sort.Slice(cands, func(i, j int) bool { return cands[i].length < cands[j].length })
		if len(cands) > p.InsideK {
			cands = cands[:p.InsideK]
		}
		for _, c := range cands {
			key := edgeKey(u, c.v)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, CandidateEdge{U: u, V: c.v, Length: c.length})
		}
	}

	return out, nil
}

// GenerateFull returns every not-yet-present edge (spec.md §4.7: "full =
// every edge").
func (p *Pricer) GenerateFull() ([]CandidateEdge, error) {
	ins := p.Graph.Instance()
	n := p.Graph.N()

	var out []CandidateEdge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if _, ok := p.Graph.HasEdge(u, v); ok {
				continue
			}
			length, err := ins.Length(u, v)
			if err != nil {
				return nil, err
			}
			out = append(out, CandidateEdge{U: u, V: v, Length: length})
		}
	}

	return out, nil
}

func edgeKey(u, v int) [2]int {
	if u > v {
		u, v = v, u
	}
	return [2]int{u, v}
}
