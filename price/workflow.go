package price

import (
	"fmt"

	"github.com/corecut/abctsp/corelp"
	"github.com/corecut/abctsp/relax"
)

// Price runs one pricing step against the just-completed pivot (spec.md
// §4.7 steps 3-4): a Tour pivot scans the inside neighborhood only,
// returning Partial as soon as it finds improving edges or PartOpt when
// the neighborhood is exhausted; a FathomedTour pivot runs full-scan
// rounds, returning Full after each round that adds edges and FullOpt once
// a round adds nothing or is small, or, before any scan, once the pivot's
// objective has reached upperBound.
func (p *Pricer) Price(class corelp.PivotClass, sol relax.Solution, upperBound float64) (Mode, error) {
	duals := p.Duals(sol)

	switch class {
	case corelp.Tour:
		return p.priceInside(duals)
	case corelp.FathomedTour:
		return p.priceFullRound(duals, upperBound, sol.Objective)
	default:
		return FullOpt, fmt.Errorf("price: pricing called on non-Tour, non-FathomedTour pivot class %v", class)
	}
}

// priceInside implements step 3: scan the 50-nearest neighborhood, add
// every negative-reduced-cost edge found, and report Partial/PartOpt.
func (p *Pricer) priceInside(duals Duals) (Mode, error) {
	cands, err := p.GenerateInside()
	if err != nil {
		return FullOpt, fmt.Errorf("price: generating inside candidates: %w", err)
	}

	added := 0
	for _, c := range cands {
		rc := p.ReducedCost(c.U, c.V, c.Length, duals)
		if rc >= -p.RedCostEps {
			continue
		}
		if _, err := p.Core.AddEdge(c.U, c.V, true, true); err != nil {
			return FullOpt, fmt.Errorf("price: adding inside edge (%d,%d): %w", c.U, c.V, err)
		}
		added++
	}

	if added == 0 {
		log.Debugf("price: inside scan exhausted, no improving edges")
		return PartOpt, nil
	}

	log.Debugf("price: inside scan added %d edges", added)
	return Partial, nil
}

// priceFullRound implements step 4: a full-scan round adding every edge
// below RedCostEps, re-optimizing the caller's LP is expected to do between
// rounds. A single call here performs one round and reports its outcome;
// the caller loops Price again after re-pivoting until FullOpt.
func (p *Pricer) priceFullRound(duals Duals, upperBound float64, objective float64) (Mode, error) {
	if objective >= upperBound-p.RedCostEps {
		log.Debugf("price: objective %.2f has reached upper bound %.2f, pricing complete", objective, upperBound)
		return FullOpt, nil
	}

	cands, err := p.GenerateFull()
	if err != nil {
		return FullOpt, fmt.Errorf("price: generating full candidates: %w", err)
	}

	added := 0
	penalty := 0.0
	for _, c := range cands {
		rc := p.ReducedCost(c.U, c.V, c.Length, duals)
		if rc >= -p.RedCostEps {
			continue
		}
		if _, err := p.Core.AddEdge(c.U, c.V, true, true); err != nil {
			return FullOpt, fmt.Errorf("price: adding full-scan edge (%d,%d): %w", c.U, c.V, err)
		}
		added++
		penalty += -rc
	}

	if added == 0 {
		log.Debugf("price: full scan found nothing, pricing complete")
		return FullOpt, nil
	}

	if penalty < p.RoundThreshold && added < p.Pool {
		log.Debugf("price: full-scan round small (penalty %.6f, added %d), pricing complete", penalty, added)
		return FullOpt, nil
	}

	log.Debugf("price: full-scan round added %d edges, penalty %.6f", added, penalty)
	return Full, nil
}
