package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

type weightSetContext struct {
	values  []float64
	reduced float64
	triples []grove.WeightTriple
	err     error
}

func (wc *weightSetContext) reset() {
	wc.values = nil
	wc.reduced = 0
	wc.triples = nil
	wc.err = nil
}

// Given steps

func (wc *weightSetContext) theWeightValues(list string) error {
	values, err := parseFloatList(list)
	if err != nil {
		return err
	}
	wc.values = values
	wc.reduced = sweep.ReducedMarker(values)
	return nil
}

func (wc *weightSetContext) theReducedValue(v float64) error {
	wc.reduced = v
	return nil
}

// When steps

func (wc *weightSetContext) theWeightTriplesAreEnumerated() error {
	wc.triples, wc.err = sweep.EnumerateWeightTriples(wc.values, wc.reduced)
	return nil
}

// Then steps

func (wc *weightSetContext) thereShouldBeTriples(n int) error {
	if wc.err != nil {
		return wc.err
	}
	if len(wc.triples) != n {
		return fmt.Errorf("expected %d triples, got %d: %v", n, len(wc.triples), wc.triples)
	}
	return nil
}

func (wc *weightSetContext) noTwoTriplesDifferOnlyBySwap() error {
	seen := make(map[grove.WeightTriple]bool, len(wc.triples))
	for _, w := range wc.triples {
		if seen[w] || seen[w.Swapped()] {
			return fmt.Errorf("triple %s listed twice up to a blue/purple swap", w)
		}
		seen[w] = true
	}
	return nil
}

func (wc *weightSetContext) everyTripleShouldContain(v float64) error {
	for _, w := range wc.triples {
		if w.Yellow != v && w.Blue != v && w.Purple != v {
			return fmt.Errorf("triple %s does not contain %g", w, v)
		}
	}
	return nil
}

func (wc *weightSetContext) theTriplesShouldBe(table *godog.Table) error {
	want, err := weightRows(table)
	if err != nil {
		return err
	}
	if len(want) != len(wc.triples) {
		return fmt.Errorf("expected %d triples, got %d: %v", len(want), len(wc.triples), wc.triples)
	}
	for i := range want {
		if want[i] != wc.triples[i] {
			return fmt.Errorf("triple %d: expected %s, got %s", i, want[i], wc.triples[i])
		}
	}
	return nil
}

func (wc *weightSetContext) theEnumerationShouldBeRejected() error {
	var validation *shared.ValidationError
	if !errors.As(wc.err, &validation) {
		return fmt.Errorf("expected a validation error, got %v", wc.err)
	}
	return nil
}

// InitializeWeightSetScenario registers weight-set generator steps
func InitializeWeightSetScenario(ctx *godog.ScenarioContext) {
	wc := &weightSetContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		wc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the weight values "([^"]*)"$`, wc.theWeightValues)
	ctx.Step(`^the reduced value ([\d.]+)$`, wc.theReducedValue)

	// When steps
	ctx.Step(`^the weight triples are enumerated$`, wc.theWeightTriplesAreEnumerated)

	// Then steps
	ctx.Step(`^there should be (\d+) triples$`, wc.thereShouldBeTriples)
	ctx.Step(`^no two triples should differ only by swapping blue and purple$`, wc.noTwoTriplesDifferOnlyBySwap)
	ctx.Step(`^every triple should contain ([\d.]+)$`, wc.everyTripleShouldContain)
	ctx.Step(`^the triples should be, in order:$`, wc.theTriplesShouldBe)
	ctx.Step(`^the enumeration should be rejected$`, wc.theEnumerationShouldBeRejected)
}
