package grove

// Simulator runs single-grove iterations. It owns its random source and
// scratch buffers and is not safe for concurrent use; give each worker its
// own Simulator and its own Grove.
type Simulator struct {
	params  Params
	rng     Source
	builder orderBuilder
	tracked []bool // included yellow crops still harvestable, by slot
}

// NewSimulator validates params and returns a simulator drawing from rng
func NewSimulator(params Params, rng Source) (*Simulator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		params:  params,
		rng:     rng,
		tracked: make([]bool, CropCount),
	}, nil
}

// Params returns the simulator's configuration
func (s *Simulator) Params() Params {
	return s.params
}

// RunIteration performs one full randomized harvest of g and returns its
// yield. The grove is reset and re-colored from its weights first, then
// classified and ordered; it is left in its final harvested state.
func (s *Simulator) RunIteration(g *Grove) (float64, error) {
	g.Reset(s.rng)
	Classify(g)
	plan := s.builder.build(g, ChooseInclusionCount(s.rng))
	return s.harvest(g, plan)
}

// RunIteration is a convenience wrapper for one iteration with a fresh Simulator
func RunIteration(g *Grove, params Params, rng Source) (float64, error) {
	s, err := NewSimulator(params, rng)
	if err != nil {
		return 0, err
	}
	return s.RunIteration(g)
}

// harvest walks the plan's order, applying harvest effects and the
// re-ordering heuristics after every step
func (s *Simulator) harvest(g *Grove, plan HarvestPlan) (float64, error) {
	s.track(g, plan)

	order := plan.Order
	total := 0.0
	for i := 0; i < order.Len(); i++ {
		c, err := g.Crop(order.At(i))
		if err != nil {
			return 0, err
		}
		if c.Harvestable {
			total += s.harvestCrop(g, c)
		}
		if i+1 < order.Len() {
			if err := s.reorder(g, plan, i); err != nil {
				return 0, err
			}
		}
	}
	return total, nil
}

// track marks the plan's still-harvestable yellow crops as pending
func (s *Simulator) track(g *Grove, plan HarvestPlan) {
	if cap(s.tracked) < g.Len() {
		s.tracked = make([]bool, g.Len())
	}
	s.tracked = s.tracked[:g.Len()]
	for i := range s.tracked {
		s.tracked[i] = false
	}
	for _, id := range plan.Yellow {
		if g.crops[id-1].Harvestable {
			s.tracked[id-1] = true
		}
	}
}

// harvestCrop marks c harvested, rolls neighbor destruction, and
// propagates upgrades to every other-colored crop still in the ground.
// The draw order (destruction, then per-seed promotions in slot order) is
// part of the deterministic-replay contract.
func (s *Simulator) harvestCrop(g *Grove, c *Crop) float64 {
	c.Harvestable = false
	s.tracked[c.ID-1] = false

	nb := g.Neighbor(c)
	if nb.Harvestable && s.rng.Float64() < s.params.DestroyChance {
		nb.Harvestable = false
		s.tracked[nb.ID-1] = false
	}

	m := s.params.Multipliers
	value := c.SeedValue(m.T3, m.T4) * m.ForColor(c.Color)

	for k := range g.crops {
		other := &g.crops[k]
		if !other.Harvestable || other.Color == c.Color {
			continue
		}
		other.UpgradeCount++
		other.promote(s.rng, s.params.Probabilities)
	}
	return value
}
