package graph

import "sort"

// Edge is an unordered pair of node indices, canonicalized End[0] < End[1],
// plus its integer length and a removability flag (spec.md §3 "Edge & Graph").
// Removable is false for edges the engine must never eliminate, e.g. an edge
// currently carried by the active tour (see CoreGraph invariant).
type Edge struct {
	End       [2]int
	Length    int64
	Removable bool
}

// incident records, for one node, the edges touching it and the position
// of that node within Edge.End (0 or 1), mirroring lvlath's adjacency-list
// "position" bookkeeping so degree-row coefficients can be recovered in O(1).
type incident struct {
	edgeIdx int
	slot    int
}

// CoreGraph holds the LP's current dynamic edge/column set: an ordered
// vector of edges and an adjacency-list index mapping each node to its
// incident edges (spec.md §3). Edge indices are stable except across an
// explicit bulk RemoveEdges call, which compacts and renumbers.
type CoreGraph struct {
	ins   *Instance
	edges []Edge
	adj   [][]incident // adj[v] -> incident edges of node v
}

// NewCoreGraph builds an empty CoreGraph over ins; edges are added with AddEdge.
func NewCoreGraph(ins *Instance) *CoreGraph {
	return &CoreGraph{
		ins:  ins,
		adj:  make([][]incident, ins.N()),
		edges: make([]Edge, 0, ins.N()*4),
	}
}

// Instance returns the fixed problem instance backing this CoreGraph.
func (g *CoreGraph) Instance() *Instance { return g.ins }

// N returns the node count.
func (g *CoreGraph) N() int { return g.ins.N() }

// EdgeCount returns the number of edges currently in the core set.
func (g *CoreGraph) EdgeCount() int { return len(g.edges) }

// Edge returns edge i. Panics-free: returns an error for an out-of-range index.
func (g *CoreGraph) Edge(i int) (Edge, error) {
	if i < 0 || i >= len(g.edges) {
		return Edge{}, ErrEdgeIndexOutOfRange
	}

	return g.edges[i], nil
}

// Adjacent returns the indices of edges incident to node v, in insertion order.
func (g *CoreGraph) Adjacent(v int) ([]int, error) {
	if v < 0 || v >= g.N() {
		return nil, ErrNodeOutOfRange
	}

	out := make([]int, len(g.adj[v]))
	for i, inc := range g.adj[v] {
		out[i] = inc.edgeIdx
	}

	return out, nil
}

// HasEdge reports whether an edge between u and v is already present, and its
// index if so.
func (g *CoreGraph) HasEdge(u, v int) (int, bool) {
	if u == v {
		return -1, false
	}
	if u > v {
		u, v = v, u
	}
	// Scan the shorter adjacency list; core graphs stay sparse (spec.md §4.7
	// "inside"=50-nearest), so linear scan over one node's incidence is cheap.
	lo, hi := u, v
	if len(g.adj[v]) < len(g.adj[u]) {
		lo, hi = v, u
	}
	for _, inc := range g.adj[lo] {
		e := g.edges[inc.edgeIdx]
		if e.End[0] == u && e.End[1] == v {
			_ = hi
			return inc.edgeIdx, true
		}
	}

	return -1, false
}

// AddEdge appends a new column for (u,v), canonicalizing endpoint order.
// The length is taken from the Instance oracle. Returns the new edge index.
func (g *CoreGraph) AddEdge(u, v int, removable bool) (int, error) {
	if u < 0 || u >= g.N() || v < 0 || v >= g.N() {
		return -1, ErrNodeOutOfRange
	}
	if u == v {
		return -1, ErrSelfLoop
	}
	if u > v {
		u, v = v, u
	}
	if _, ok := g.HasEdge(u, v); ok {
		return -1, ErrDuplicateEdge
	}

	length, err := g.ins.Length(u, v)
	if err != nil {
		return -1, err
	}

	idx := len(g.edges)
	g.edges = append(g.edges, Edge{End: [2]int{u, v}, Length: length, Removable: removable})
	g.adj[u] = append(g.adj[u], incident{edgeIdx: idx, slot: 0})
	g.adj[v] = append(g.adj[v], incident{edgeIdx: idx, slot: 1})

	return idx, nil
}

// RemoveEdges deletes the edges at the given (distinct) indices in one bulk
// pass and renumbers every remaining edge, matching spec.md §5's "column
// indexing of tour-edges and cut-edges is consistently renumbered" guarantee.
// It returns, for every surviving old index, its new index (-1 if removed),
// so callers (CoreLP, ActiveTour, ExternalCuts) can rewrite their own indices
// in lockstep.
func (g *CoreGraph) RemoveEdges(idxs []int) ([]int, error) {
	remove := make(map[int]bool, len(idxs))
	for _, i := range idxs {
		if i < 0 || i >= len(g.edges) {
			return nil, ErrEdgeIndexOutOfRange
		}
		if !g.edges[i].Removable {
			return nil, ErrTourEdgeRemoval
		}
		remove[i] = true
	}

	remap := make([]int, len(g.edges))
	kept := make([]Edge, 0, len(g.edges)-len(remove))
	for i, e := range g.edges {
		if remove[i] {
			remap[i] = -1
			continue
		}
		remap[i] = len(kept)
		kept = append(kept, e)
	}
	g.edges = kept

	for v := range g.adj {
		newAdj := g.adj[v][:0]
		for _, inc := range g.adj[v] {
			if remap[inc.edgeIdx] < 0 {
				continue
			}
			newAdj = append(newAdj, incident{edgeIdx: remap[inc.edgeIdx], slot: inc.slot})
		}
		g.adj[v] = newAdj
	}

	return remap, nil
}

// MarkRemovable flips the Removable flag of edge i (used when a tour edge
// stops being part of the incumbent and becomes eligible for elimination).
func (g *CoreGraph) MarkRemovable(i int, removable bool) error {
	if i < 0 || i >= len(g.edges) {
		return ErrEdgeIndexOutOfRange
	}
	g.edges[i].Removable = removable

	return nil
}

// SortedEdgeIndices returns edge indices sorted by (End[0], End[1]), useful
// for deterministic iteration in separators and file output.
func (g *CoreGraph) SortedEdgeIndices() []int {
	idxs := make([]int, len(g.edges))
	for i := range idxs {
		idxs[i] = i
	}
	sort.Slice(idxs, func(a, b int) bool {
		ea, eb := g.edges[idxs[a]], g.edges[idxs[b]]
		if ea.End[0] != eb.End[0] {
			return ea.End[0] < eb.End[0]
		}
		return ea.End[1] < eb.End[1]
	})

	return idxs
}
