package cut

import "github.com/corecut/abctsp/relax"

// Sense mirrors relax.Sense: a HyperGraph's Sense travels unchanged into
// the LP row relax.Relaxation.AddCut installs for it, so the two types are
// kept identical rather than converted at the boundary.
type Sense = relax.Sense

// Greater is cut's every inequality: SEC, comb and domino-parity cuts are
// always installed as ">=" rows (spec.md §3, §4.4).
const Greater = relax.Greater
