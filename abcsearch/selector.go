package abcsearch

import "container/heap"

// Selector is a pluggable node-selection rule (spec.md §4.8 "Node selection
// rules"): Push enqueues a freshly-split child, Next dequeues the node the
// rule picks to visit, returning false once nothing unvisited remains.
type Selector interface {
	Push(n *BranchNode)
	Next() (*BranchNode, bool)
}

// DFSSelector always returns the most recently enqueued unvisited node
// (spec.md §4.8 "DFS"), implemented as a plain stack.
type DFSSelector struct {
	stack []*BranchNode
}

func NewDFSSelector() *DFSSelector { return &DFSSelector{} }

func (s *DFSSelector) Push(n *BranchNode) { s.stack = append(s.stack, n) }

func (s *DFSSelector) Next() (*BranchNode, bool) {
	for len(s.stack) > 0 {
		n := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		if !n.Visited() {
			return n, true
		}
	}
	return nil, false
}

// nodeHeap adapts a worse(a,b) comparator (spec.md's "preferred nodes
// compare greater" convention) into container/heap's min-heap-of-Less
// shape: Less(i,j) is true when i is preferred over j, i.e. when j is
// worse than i.
type nodeHeap struct {
	items []*BranchNode
	worse func(a, b *BranchNode) bool
}

func (h *nodeHeap) Len() int            { return len(h.items) }
func (h *nodeHeap) Less(i, j int) bool  { return h.worse(h.items[j], h.items[i]) }
func (h *nodeHeap) Swap(i, j int)       { h.items[i], h.items[j] = h.items[j], h.items[i] }
func (h *nodeHeap) Push(x interface{})  { h.items = append(h.items, x.(*BranchNode)) }
func (h *nodeHeap) Pop() interface{} {
	old := h.items
	n := len(old)
	item := old[n-1]
	h.items = old[:n-1]
	return item
}

// priorityQueue wraps nodeHeap with the pop-past-visited-entries behavior
// every priority-based selector below needs.
type priorityQueue struct {
	h *nodeHeap
}

func newPriorityQueue(worse func(a, b *BranchNode) bool) *priorityQueue {
	h := &nodeHeap{worse: worse}
	heap.Init(h)
	return &priorityQueue{h: h}
}

func (q *priorityQueue) push(n *BranchNode) { heap.Push(q.h, n) }

func (q *priorityQueue) pop() (*BranchNode, bool) {
	for q.h.Len() > 0 {
		n := heap.Pop(q.h).(*BranchNode)
		if !n.Visited() {
			return n, true
		}
	}
	return nil, false
}

// TourSelector is a priority queue keyed by shortest estimated tour length
// (spec.md §4.8 "Best-tour").
type TourSelector struct{ q *priorityQueue }

func NewTourSelector() *TourSelector { return &TourSelector{q: newPriorityQueue(TourWorse)} }

func (s *TourSelector) Push(n *BranchNode)        { s.q.push(n) }
func (s *TourSelector) Next() (*BranchNode, bool) { return s.q.pop() }

// BoundSelector is a priority queue keyed by lowest LP estimate (spec.md
// §4.8 "Best-bound").
type BoundSelector struct{ q *priorityQueue }

func NewBoundSelector() *BoundSelector { return &BoundSelector{q: newPriorityQueue(BoundWorse)} }

func (s *BoundSelector) Push(n *BranchNode)        { s.q.push(n) }
func (s *BoundSelector) Next() (*BranchNode, bool) { return s.q.pop() }

// InterleaveFreq is how often InterleavedSelector picks the best-bound node
// instead of the best-tour node (spec.md §4.8: "every 10th selection").
const InterleaveFreq = 10

// InterleavedSelector defaults to best-tour selection, but every
// InterleaveFreq-th call instead pops the minimum-LP-estimate node from a
// parallel bound-ordered queue (spec.md §4.8 "Interleaved").
type InterleavedSelector struct {
	tour  *priorityQueue
	bound *priorityQueue
	calls int
}

func NewInterleavedSelector() *InterleavedSelector {
	return &InterleavedSelector{tour: newPriorityQueue(TourWorse), bound: newPriorityQueue(BoundWorse)}
}

func (s *InterleavedSelector) Push(n *BranchNode) {
	s.tour.push(n)
	s.bound.push(n)
}

func (s *InterleavedSelector) Next() (*BranchNode, bool) {
	s.calls++
	if s.calls%InterleaveFreq == 0 {
		if n, ok := s.bound.pop(); ok {
			return n, true
		}
	}
	return s.tour.pop()
}
