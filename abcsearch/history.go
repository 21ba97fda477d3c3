package abcsearch

import "container/list"

// BranchHistory is the doubly-linked ownership list of every BranchNode
// seen by an Executor (spec.md §3 "Ownership summary": "BranchNodes are
// stored in a doubly-linked history; node selectors keep weak iterators
// into this history"). container/list gives stable element pointers across
// insertion at either end, matching that contract.
type BranchHistory struct {
	l *list.List
}

// NewBranchHistory builds an empty history seeded with the root node.
func NewBranchHistory(root *BranchNode) *BranchHistory {
	h := &BranchHistory{l: list.New()}
	h.l.PushBack(root)
	return h
}

// Append adds a node to the back of the history, returning its element
// handle for later Prune calls.
func (h *BranchHistory) Append(n *BranchNode) *list.Element {
	return h.l.PushBack(n)
}

// Len reports how many nodes the history currently retains.
func (h *BranchHistory) Len() int { return h.l.Len() }

// Prune erases completed (Visited) sibling subtrees rooted below keep,
// freeing their BranchNode references so the history doesn't grow without
// bound across a long search (spec.md §3 ownership note: "node selectors
// keep weak iterators into this history" implies completed entries may
// safely be erased once no selector still references them). Only nodes
// whose entire subtree (as tracked by this history) is Visited and that
// are not an ancestor of keep are removed.
func (h *BranchHistory) Prune(keep *BranchNode) (removed int) {
	ancestors := make(map[*BranchNode]bool)
	for n := keep; n != nil; n = n.Parent {
		ancestors[n] = true
	}
	// A node with an unvisited descendant still in the history is kept too.
	for e := h.l.Front(); e != nil; e = e.Next() {
		if n, ok := e.Value.(*BranchNode); ok && !n.Visited() {
			for p := n.Parent; p != nil; p = p.Parent {
				ancestors[p] = true
			}
		}
	}

	var next *list.Element
	for e := h.l.Front(); e != nil; e = next {
		next = e.Next()
		n, ok := e.Value.(*BranchNode)
		if !ok || n == keep || ancestors[n] {
			continue
		}
		if !n.Visited() {
			continue
		}
		h.l.Remove(e)
		removed++
	}

	return removed
}

// All returns every node currently retained, in insertion order.
func (h *BranchHistory) All() []*BranchNode {
	out := make([]*BranchNode, 0, h.l.Len())
	for e := h.l.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*BranchNode))
	}
	return out
}
