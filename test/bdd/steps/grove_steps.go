package steps

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/cucumber/godog"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
)

type groveContext struct {
	grove *grove.Grove
	rng   *rand.Rand
	yield float64
	err   error
}

func (gc *groveContext) reset() {
	gc.grove = nil
	gc.rng = rand.New(rand.NewPCG(1, 0))
	gc.yield = 0
	gc.err = nil
}

// Given steps

func (gc *groveContext) aStandardGrove() error {
	gc.grove = grove.NewGrove()
	return nil
}

func (gc *groveContext) everyCropHasBeenHarvestedAndUpgraded() error {
	crops := gc.grove.Crops()
	for i := range crops {
		c := &crops[i]
		c.Harvestable = false
		c.TierOne = 0
		c.TierTwo = 5
		c.TierThree = 3
		c.TierFour = 1
		c.UpgradeCount = 4
		c.Priority = grove.DoubleBlue
	}
	return nil
}

func (gc *groveContext) plotHoldsColors(plot, first, second string) error {
	a, err := gc.cropByLabel(plot + "1")
	if err != nil {
		return err
	}
	b, err := gc.cropByLabel(plot + "2")
	if err != nil {
		return err
	}
	if a.Color, err = grove.ParseColor(first); err != nil {
		return err
	}
	b.Color, err = grove.ParseColor(second)
	return err
}

// When steps

func (gc *groveContext) theGroveIsResetWithWeights(yellow, blue, purple float64) error {
	gc.grove.SetWeights(grove.WeightTriple{Yellow: yellow, Blue: blue, Purple: purple})
	gc.grove.Reset(gc.rng)
	return nil
}

func (gc *groveContext) theGroveIsClassified() error {
	grove.Classify(gc.grove)
	return nil
}

func (gc *groveContext) oneIterationRunsWithZeroPromotionChances() error {
	params := grove.DefaultParams()
	params.Probabilities = grove.Probabilities{}
	gc.grove.Reset(gc.rng)
	gc.yield, gc.err = grove.RunIteration(gc.grove, params, gc.rng)
	return nil
}

// Then steps

func (gc *groveContext) everyCropIsHarvestableWithStandardSeeds() error {
	want := grove.Tiers{One: grove.DefaultTierOne}
	for _, c := range gc.grove.Crops() {
		if !c.Harvestable {
			return fmt.Errorf("crop %s is not harvestable", c.Label())
		}
		if c.Tiers() != want {
			return fmt.Errorf("crop %s has tiers %+v, want %+v", c.Label(), c.Tiers(), want)
		}
		if c.UpgradeCount != 0 {
			return fmt.Errorf("crop %s has %d upgrades, want 0", c.Label(), c.UpgradeCount)
		}
		if c.Priority != grove.PriorityNone {
			return fmt.Errorf("crop %s kept priority %s", c.Label(), c.Priority)
		}
	}
	return nil
}

func (gc *groveContext) everyCropIs(color string) error {
	want, err := grove.ParseColor(color)
	if err != nil {
		return err
	}
	for _, c := range gc.grove.Crops() {
		if c.Color != want {
			return fmt.Errorf("crop %s is %s, want %s", c.Label(), c.Color, want)
		}
	}
	return nil
}

func (gc *groveContext) bothCropsOfPlotHavePriority(plot, priority string) error {
	for _, suffix := range []string{"1", "2"} {
		c, err := gc.cropByLabel(plot + suffix)
		if err != nil {
			return err
		}
		if c.Priority.String() != priority {
			return fmt.Errorf("crop %s has priority %s, want %s", c.Label(), c.Priority, priority)
		}
	}
	return nil
}

func (gc *groveContext) theIterationYieldsNothing() error {
	if gc.err != nil {
		return gc.err
	}
	if gc.yield != 0 {
		return fmt.Errorf("expected zero yield, got %v", gc.yield)
	}
	return nil
}

func (gc *groveContext) cropByLabel(label string) (*grove.Crop, error) {
	id, ok := grove.IDForLabel(label)
	if !ok {
		return nil, fmt.Errorf("unknown crop label %q", label)
	}
	return gc.grove.Crop(id)
}

// InitializeGroveScenario registers grove model and classifier steps
func InitializeGroveScenario(ctx *godog.ScenarioContext) {
	gc := &groveContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		gc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a standard grove$`, gc.aStandardGrove)
	ctx.Step(`^every crop has been harvested and upgraded$`, gc.everyCropHasBeenHarvestedAndUpgraded)
	ctx.Step(`^plot ([A-E]) holds a (\w+) and a (\w+) crop$`, gc.plotHoldsColors)

	// When steps
	ctx.Step(`^the grove is reset with weights ([\d.]+), ([\d.]+), ([\d.]+)$`, gc.theGroveIsResetWithWeights)
	ctx.Step(`^the grove is classified$`, gc.theGroveIsClassified)
	ctx.Step(`^one iteration runs with zero promotion chances$`, gc.oneIterationRunsWithZeroPromotionChances)

	// Then steps
	ctx.Step(`^every crop should be harvestable with the standard seeds and no upgrades$`, gc.everyCropIsHarvestableWithStandardSeeds)
	ctx.Step(`^every crop should be (yellow|blue|purple)$`, gc.everyCropIs)
	ctx.Step(`^both crops of plot ([A-E]) should have priority "([^"]*)"$`, gc.bothCropsOfPlotHavePriority)
	ctx.Step(`^the iteration should yield nothing$`, gc.theIterationYieldsNothing)
}
