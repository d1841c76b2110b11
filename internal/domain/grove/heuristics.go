package grove

import (
	"fmt"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// Yellow-risk expected-value coefficients. A yellow whose EV is <= 0 is
// harvested immediately instead of being left next to a pending harvest.
const (
	riskT2Gain        = 0.12
	riskT3Loss        = 0.28
	riskT4Loss        = 1.6
	riskOutsideGain   = 0.08
	riskAlwaysExposeN = 3 // with this many pending yellows, always take the risk

	twinMinUpgrades = 2
	twinT4Weight    = 4
)

// reorder applies the in-loop heuristics after the step at cursor.
// Every move targets position cursor+1 and only moves later entries.
func (s *Simulator) reorder(g *Grove, plan HarvestPlan, cursor int) error {
	order := plan.Order
	next, err := g.Crop(order.At(cursor + 1))
	if err != nil {
		return err
	}

	nb := g.Neighbor(next)
	if nb.Harvestable && nb.Color == Yellow && next.Color != Yellow {
		moved, err := s.avoidYellowRisk(g, plan, cursor, next)
		if err != nil {
			return err
		}
		next = moved

		if err := s.weighYellowRisk(g, plan, cursor, g.Neighbor(next)); err != nil {
			return err
		}
	}

	return s.breakTwinTie(g, order, cursor, next)
}

// avoidYellowRisk: the crop about to be harvested would expose its yellow
// neighbor. Among pending yellows paired with the same non-yellow color,
// pick one by seed value and harvest its partner next instead. Returns the
// crop now at cursor+1.
func (s *Simulator) avoidYellowRisk(g *Grove, plan HarvestPlan, cursor int, next *Crop) (*Crop, error) {
	var relevant Priority
	switch next.Color {
	case Blue:
		relevant = BlueYellowHybrid
	case Purple:
		relevant = PurpleYellowHybrid
	default:
		return next, nil
	}

	m := s.params.Multipliers
	var chosen *Crop
	best := 0.0
	for _, id := range plan.Yellow {
		if !s.tracked[id-1] {
			continue
		}
		pos := plan.Order.IndexOf(id)
		if pos < 0 {
			return nil, shared.NewInvariantViolationError("harvest-order", fmt.Sprintf("yellow crop %d missing from harvest order", id))
		}
		y := &g.crops[id-1]
		if pos <= cursor || y.Priority != relevant || !g.Neighbor(y).Harvestable {
			continue
		}
		v := y.SeedValue(m.T3, m.T4)
		if chosen == nil || s.prefers(v, best) {
			chosen, best = y, v
		}
	}
	if chosen == nil {
		return next, nil
	}

	partner := g.Neighbor(chosen)
	if err := plan.Order.PromoteAfter(cursor, partner.ID); err != nil {
		return nil, err
	}
	return partner, nil
}

// prefers reports whether candidate value v beats the current best.
// Ties keep the earlier candidate.
func (s *Simulator) prefers(v, best float64) bool {
	if s.params.YellowRisk == PickMostJuicy {
		return v > best
	}
	return v < best
}

// weighYellowRisk decides whether the exposed yellow should be harvested
// before its neighbor. With three or more yellows still pending the risk
// is always taken.
func (s *Simulator) weighYellowRisk(g *Grove, plan HarvestPlan, cursor int, atRisk *Crop) error {
	pending := 0
	for _, id := range plan.Yellow {
		if !s.tracked[id-1] {
			continue
		}
		pos := plan.Order.IndexOf(id)
		if pos < 0 {
			return shared.NewInvariantViolationError("harvest-order", fmt.Sprintf("yellow crop %d missing from harvest order", id))
		}
		if pos > cursor {
			pending++
		}
	}

	ev := float64(atRisk.TierTwo)*riskT2Gain - float64(atRisk.TierThree)*riskT3Loss - float64(atRisk.TierFour)*riskT4Loss
	switch {
	case pending >= riskAlwaysExposeN:
		return nil
	case pending == 1:
	case pending == 2:
		outsideT2, outsideT3 := 0, 0
		for _, id := range plan.Yellow {
			if !s.tracked[id-1] || id == atRisk.ID {
				continue
			}
			outsideT2 += g.crops[id-1].TierTwo
			outsideT3 += g.crops[id-1].TierThree
		}
		ev += float64(outsideT2)*riskOutsideGain + float64(outsideT3)*riskOutsideGain
	default:
		return nil
	}

	if ev <= 0 {
		return plan.Order.PromoteAfter(cursor, atRisk.ID)
	}
	return nil
}

// breakTwinTie: when the next crop shares its color with a harvestable
// neighbor and has been upgraded at least twice, harvest whichever twin
// holds more high-tier seeds first.
func (s *Simulator) breakTwinTie(g *Grove, order *HarvestOrder, cursor int, next *Crop) error {
	twin := g.Neighbor(next)
	if !twin.Harvestable || twin.Color != next.Color || next.UpgradeCount < twinMinUpgrades {
		return nil
	}
	if next.TierThree+twinT4Weight*next.TierFour < twin.TierThree+twinT4Weight*twin.TierFour {
		return order.PromoteAfter(cursor, twin.ID)
	}
	return nil
}
