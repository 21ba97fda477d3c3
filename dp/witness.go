package dp

import "github.com/corecut/abctsp/separator"

// WitnessGraph is the small capacitated graph spec.md §4.4 builds from
// candidate teeth to find an odd, under-weight cut via Gomory-Hu: one node
// per candidate tooth body plus a single "star" node absorbing everything
// outside every tooth body. Edge capacities are LP-support weight crossing
// between two tooth bodies, or between a tooth body and the rest of the
// tour.
type WitnessGraph struct {
	K   int // number of tooth nodes; node K is the star
	N   int // K+1
	Cap [][]float64
}

// BuildWitness constructs the witness graph for a set of candidate teeth
// over the permuted LP support edges.
func BuildWitness(n int, edges []separator.SupportEdge, teeth []LightTooth) *WitnessGraph {
	k := len(teeth)
	capm := make([][]float64, k+1)
	for i := range capm {
		capm[i] = make([]float64, k+1)
	}

	inBody := make([][]bool, k)
	for i, t := range teeth {
		inBody[i] = make([]bool, n)
		markSeg(inBody[i], t.Lo, t.Hi, n)
	}

	for _, e := range edges {
		var membersU, membersV []int
		for i := 0; i < k; i++ {
			if inBody[i][e.U] {
				membersU = append(membersU, i)
			}
			if inBody[i][e.V] {
				membersV = append(membersV, i)
			}
		}

		switch {
		case len(membersU) > 0 && len(membersV) > 0:
			for _, a := range membersU {
				for _, b := range membersV {
					if a != b {
						capm[a][b] += e.Weight
						capm[b][a] += e.Weight
					}
				}
			}
		case len(membersU) > 0:
			for _, a := range membersU {
				capm[a][k] += e.Weight
				capm[k][a] += e.Weight
			}
		case len(membersV) > 0:
			for _, b := range membersV {
				capm[b][k] += e.Weight
				capm[k][b] += e.Weight
			}
		}
	}

	return &WitnessGraph{K: k, N: k + 1, Cap: capm}
}

func markSeg(mark []bool, lo, hi, n int) {
	for p := lo; ; p = (p + 1) % n {
		mark[p] = true
		if p == hi {
			break
		}
	}
}

func segNodes(savedTour []int, lo, hi, n int) []int {
	var out []int
	for p := lo; ; p = (p + 1) % n {
		out = append(out, savedTour[p])
		if p == hi {
			break
		}
	}
	return out
}
