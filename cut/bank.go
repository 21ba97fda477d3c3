package cut

import "errors"

// ErrBankMismatch indicates a Clique/Tooth was built against a different
// saved tour than the one a bank or HyperGraph is anchored to.
var ErrBankMismatch = errors.New("cut: clique or tooth built against a different saved tour")

// CliqueBank interns Cliques by segment-list value against one saved tour,
// refcounting them so a Clique shared by many HyperGraphs (a common case:
// the same handle appears in several comb inequalities) is stored once
// (spec.md §3 "CliqueBank"). Grounded on the setbank.cpp/.hpp intern-by-value
// pattern, reshaped into Go's map-plus-explicit-release idiom.
type CliqueBank struct {
	savedTour []int
	perm      []int
	entries   map[string]*cliqueEntry
}

type cliqueEntry struct {
	clique   *Clique
	refcount int
}

// NewCliqueBank creates a bank anchored to the given saved tour. perm is the
// tour's inverse permutation (perm[node] == position).
func NewCliqueBank(savedTour, perm []int) *CliqueBank {
	return &CliqueBank{
		savedTour: append([]int(nil), savedTour...),
		perm:      append([]int(nil), perm...),
		entries:   make(map[string]*cliqueEntry),
	}
}

// SavedTour returns the bank's anchor tour (read-only view).
func (b *CliqueBank) SavedTour() []int { return append([]int(nil), b.savedTour...) }

// Perm returns the bank's anchor inverse permutation (read-only view).
func (b *CliqueBank) Perm() []int { return append([]int(nil), b.perm...) }

// Intern returns the bank's canonical *Clique for the given node set,
// creating and storing it on first use and bumping its refcount on every
// call (spec.md §3: "a cut pool references Cliques/Teeth by pointer into a
// bank; eviction happens only when a bank entry's refcount drops to zero").
func (b *CliqueBank) Intern(nodes []int) (*Clique, error) {
	c, err := NewCliqueFromNodes(nodes, b.savedTour, b.perm)
	if err != nil {
		return nil, err
	}
	return b.internClique(c), nil
}

// InternSegments interns a Clique built directly from a segment list
// (bypassing node-set merging), used by separators that already compute
// position ranges.
func (b *CliqueBank) InternSegments(segs []Segment) *Clique {
	c := newCliqueFromSegments(segs, len(b.savedTour))
	return b.internClique(c)
}

func (b *CliqueBank) internClique(c *Clique) *Clique {
	k := c.key()
	if e, ok := b.entries[k]; ok {
		e.refcount++
		return e.clique
	}
	b.entries[k] = &cliqueEntry{clique: c, refcount: 1}
	return c
}

// Release decrements c's refcount and evicts it from the bank at zero. No-op
// if c is not (or no longer) interned.
func (b *CliqueBank) Release(c *Clique) {
	k := c.key()
	e, ok := b.entries[k]
	if !ok {
		return
	}
	e.refcount--
	if e.refcount <= 0 {
		delete(b.entries, k)
	}
}

// Len returns the number of distinct interned cliques.
func (b *CliqueBank) Len() int { return len(b.entries) }

// RefCount reports c's current refcount, or 0 if not interned.
func (b *CliqueBank) RefCount(c *Clique) int {
	if e, ok := b.entries[c.key()]; ok {
		return e.refcount
	}
	return 0
}

// ToothBank interns Teeth the same way CliqueBank interns Cliques
// (spec.md §3 "ToothBank"), keyed on the pair of root/body segment lists.
type ToothBank struct {
	savedTour []int
	perm      []int
	entries   map[string]*toothEntry
}

type toothEntry struct {
	tooth    *Tooth
	refcount int
}

// NewToothBank creates a bank anchored to the given saved tour.
func NewToothBank(savedTour, perm []int) *ToothBank {
	return &ToothBank{
		savedTour: append([]int(nil), savedTour...),
		perm:      append([]int(nil), perm...),
		entries:   make(map[string]*toothEntry),
	}
}

// Intern builds and interns a Tooth from literal root/body node sets.
func (b *ToothBank) Intern(rootNodes, bodyNodes []int) (*Tooth, error) {
	root, err := NewCliqueFromNodes(rootNodes, b.savedTour, b.perm)
	if err != nil {
		return nil, err
	}
	body, err := NewCliqueFromNodes(bodyNodes, b.savedTour, b.perm)
	if err != nil {
		return nil, err
	}
	t, err := newTooth(root, body, len(b.savedTour))
	if err != nil {
		return nil, err
	}

	k := t.key()
	if e, ok := b.entries[k]; ok {
		e.refcount++
		return e.tooth, nil
	}
	b.entries[k] = &toothEntry{tooth: t, refcount: 1}
	return t, nil
}

// Release decrements t's refcount and evicts it from the bank at zero.
func (b *ToothBank) Release(t *Tooth) {
	k := t.key()
	e, ok := b.entries[k]
	if !ok {
		return
	}
	e.refcount--
	if e.refcount <= 0 {
		delete(b.entries, k)
	}
}

// Len returns the number of distinct interned teeth.
func (b *ToothBank) Len() int { return len(b.entries) }
