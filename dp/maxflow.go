package dp

import "math"

// maxFlow computes an s-t maximum flow over a dense capacity matrix by
// repeated BFS augmenting paths (Edmonds-Karp), returning the flow value
// and the set of nodes reachable from s in the final residual graph (the
// s-side of a minimum s-t cut).
func maxFlow(cap [][]float64, s, t, n int) (float64, []bool) {
	residual := make([][]float64, n)
	for i := range residual {
		residual[i] = append([]float64(nil), cap[i]...)
	}

	total := 0.0
	for {
		parent := make([]int, n)
		for i := range parent {
			parent[i] = -1
		}
		parent[s] = s
		queue := []int{s}
		for len(queue) > 0 && parent[t] == -1 {
			u := queue[0]
			queue = queue[1:]
			for v := 0; v < n; v++ {
				if parent[v] == -1 && residual[u][v] > 1e-9 {
					parent[v] = u
					queue = append(queue, v)
				}
			}
		}
		if parent[t] == -1 {
			break
		}

		bottleneck := math.MaxFloat64
		for v := t; v != s; v = parent[v] {
			u := parent[v]
			if residual[u][v] < bottleneck {
				bottleneck = residual[u][v]
			}
		}
		for v := t; v != s; v = parent[v] {
			u := parent[v]
			residual[u][v] -= bottleneck
			residual[v][u] += bottleneck
		}
		total += bottleneck
	}

	reachable := make([]bool, n)
	reachable[s] = true
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for v := 0; v < n; v++ {
			if !reachable[v] && residual[u][v] > 1e-9 {
				reachable[v] = true
				queue = append(queue, v)
			}
		}
	}

	return total, reachable
}
