package dp

// GomoryHuTree builds a Gomory-Hu cut-equivalent tree over the witness
// graph's capacity matrix using Gusfield's algorithm: n-1 maximum flow
// computations against the ORIGINAL capacities (no graph contraction),
// each one fixing one tree edge and its weight. parent[0] is unused (node
// 0 is the tree root); weight[i] is the capacity of tree edge (i,parent[i]).
func GomoryHuTree(cap [][]float64, n int) (parent []int, weight []float64) {
	parent = make([]int, n)
	weight = make([]float64, n)

	for i := 1; i < n; i++ {
		f, side := maxFlow(cap, i, parent[i], n)
		weight[i] = f

		for j := i + 1; j < n; j++ {
			if side[j] && parent[j] == parent[i] {
				parent[j] = i
			}
		}

		if side[parent[parent[i]]] {
			parent[i], parent[parent[i]] = parent[parent[i]], i
			weight[i], weight[parent[i]] = weight[parent[i]], weight[i]
		}
	}

	return parent, weight
}
