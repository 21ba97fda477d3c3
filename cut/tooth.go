package cut

import (
	"errors"
	"fmt"
)

// ErrOverlappingToothParts indicates a Tooth's root and body share a node,
// violating the disjointness spec.md §3 "Tooth" requires.
var ErrOverlappingToothParts = errors.New("cut: tooth root and body must be disjoint")

// Tooth is a handle/body pair used by simple domino-parity cuts (spec.md §3
// "Tooth"): Root is the tooth's singleton handle-part and Body is its
// (possibly larger) body-part clique. Both are Cliques against the same
// saved tour as their owning HyperGraph.
type Tooth struct {
	Root *Clique
	Body *Clique
}

// newTooth validates disjointness and constructs a Tooth. n is the saved
// tour length, needed to check overlap across segment lists.
func newTooth(root, body *Clique, n int) (*Tooth, error) {
	for pos := 0; pos < n; pos++ {
		if root.Contains(pos) && body.Contains(pos) {
			return nil, ErrOverlappingToothParts
		}
	}

	return &Tooth{Root: root, Body: body}, nil
}

func (t *Tooth) key() string {
	return fmt.Sprintf("R(%s)B(%s)", t.Root.key(), t.Body.key())
}
