package steps

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/cucumber/godog"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/metrics"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/setup"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/test/helpers"
)

type sweepContext struct {
	mediator common.Mediator
	repo     *helpers.MockResultRepository
	params   grove.Params
	weights  []grove.WeightTriple

	iterations int
	seed       uint64
	responses  []*commands.RunSweepResponse
	err        error
}

func (sc *sweepContext) reset() error {
	sc.repo = helpers.NewMockResultRepository()
	sc.params = grove.DefaultParams()
	sc.weights = nil
	sc.iterations = 0
	sc.seed = 0
	sc.responses = nil
	sc.err = nil

	runner := simulation.NewSweepRunner(simulation.WithRecorder(metrics.NoopRecorder{}))
	registry := setup.NewHandlerRegistry(runner, sc.repo, nil)
	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return err
	}
	sc.mediator = m
	return nil
}

// Given steps

func (sc *sweepContext) theWeightTriples(table *godog.Table) error {
	weights, err := weightRows(table)
	if err != nil {
		return err
	}
	sc.weights = weights
	return nil
}

func (sc *sweepContext) promotionChancesOfZero() error {
	sc.params.Probabilities = grove.Probabilities{}
	return nil
}

// When steps

func (sc *sweepContext) aSweepRuns(iterations int, seed int64, parallelism int) error {
	sc.iterations = iterations
	sc.seed = uint64(seed)
	return sc.runSweep(parallelism)
}

func (sc *sweepContext) theSameSweepRunsWithParallelism(parallelism int) error {
	return sc.runSweep(parallelism)
}

func (sc *sweepContext) runSweep(parallelism int) error {
	out, err := sc.mediator.Send(context.Background(), &commands.RunSweepCommand{
		Params:      sc.params,
		Iterations:  sc.iterations,
		Parallelism: parallelism,
		Seed:        sc.seed,
		Weights:     sc.weights,
	})
	if err != nil {
		sc.err = err
		return nil
	}
	sc.responses = append(sc.responses, out.(*commands.RunSweepResponse))
	return nil
}

// Then steps

func (sc *sweepContext) lastResponse() (*commands.RunSweepResponse, error) {
	if sc.err != nil {
		return nil, sc.err
	}
	if len(sc.responses) == 0 {
		return nil, fmt.Errorf("no sweep has run")
	}
	return sc.responses[len(sc.responses)-1], nil
}

func (sc *sweepContext) theSweepShouldReportPoints(n int) error {
	resp, err := sc.lastResponse()
	if err != nil {
		return err
	}
	if len(resp.Points) != n {
		return fmt.Errorf("expected %d points, got %d", n, len(resp.Points))
	}
	return nil
}

func (sc *sweepContext) thePointsShouldFollowTheWeightTriplesInOrder() error {
	resp, err := sc.lastResponse()
	if err != nil {
		return err
	}
	for i, p := range resp.Points {
		if p.Weights != sc.weights[i] {
			return fmt.Errorf("point %d is for %s, expected %s", i, p.Weights, sc.weights[i])
		}
	}
	return nil
}

func (sc *sweepContext) everyPointShouldAverageOverIterations(n int) error {
	resp, err := sc.lastResponse()
	if err != nil {
		return err
	}
	for _, p := range resp.Points {
		if p.Iterations != n {
			return fmt.Errorf("point %s averaged %d iterations, expected %d", p.Weights, p.Iterations, n)
		}
		if p.Mean < 0 || p.Variance < 0 {
			return fmt.Errorf("point %s has mean %v and variance %v", p.Weights, p.Mean, p.Variance)
		}
	}
	return nil
}

func (sc *sweepContext) everyPointShouldAverageZeroSeeds() error {
	resp, err := sc.lastResponse()
	if err != nil {
		return err
	}
	for _, p := range resp.Points {
		if p.Mean != 0 || p.AverageSeedCount() != 0 {
			return fmt.Errorf("point %s averaged %v, expected 0", p.Weights, p.Mean)
		}
	}
	return nil
}

func (sc *sweepContext) bothSweepsShouldReportIdenticalPoints() error {
	if sc.err != nil {
		return sc.err
	}
	if len(sc.responses) != 2 {
		return fmt.Errorf("expected 2 sweeps, got %d", len(sc.responses))
	}
	if !reflect.DeepEqual(sc.responses[0].Points, sc.responses[1].Points) {
		return fmt.Errorf("points differ:\n%v\n%v", sc.responses[0].Points, sc.responses[1].Points)
	}
	return nil
}

func (sc *sweepContext) theRunShouldBeStoredAs(statuses string) error {
	resp, err := sc.lastResponse()
	if err != nil {
		return err
	}
	if !resp.Stored {
		return fmt.Errorf("run %s was not stored", resp.RunID)
	}
	got := fmt.Sprint(sc.repo.SavedStatuses())
	if got != statuses {
		return fmt.Errorf("expected saved statuses %s, got %s", statuses, got)
	}
	return nil
}

func (sc *sweepContext) theSweepShouldFailWithAValidationError() error {
	var validation *shared.ValidationError
	if !errors.As(sc.err, &validation) {
		return fmt.Errorf("expected a validation error, got %v", sc.err)
	}
	return nil
}

func (sc *sweepContext) noRunShouldBeStored() error {
	if saved := sc.repo.SavedStatuses(); len(saved) != 0 {
		return fmt.Errorf("expected nothing stored, got %v", saved)
	}
	return nil
}

// InitializeSweepScenario registers sweep runner steps, driven through the mediator
func InitializeSweepScenario(ctx *godog.ScenarioContext) {
	sc := &sweepContext{}

	ctx.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, sc.reset()
	})

	// Given steps
	ctx.Step(`^the sweep weight triples:$`, sc.theWeightTriples)
	ctx.Step(`^promotion chances of zero$`, sc.promotionChancesOfZero)

	// When steps
	ctx.Step(`^a sweep of (\d+) iterations runs with seed (\d+) and parallelism (\d+)$`, sc.aSweepRuns)
	ctx.Step(`^the same sweep runs with parallelism (\d+)$`, sc.theSameSweepRunsWithParallelism)

	// Then steps
	ctx.Step(`^the sweep should report (\d+) points$`, sc.theSweepShouldReportPoints)
	ctx.Step(`^the points should follow the weight triples in order$`, sc.thePointsShouldFollowTheWeightTriplesInOrder)
	ctx.Step(`^every point should average over (\d+) iterations$`, sc.everyPointShouldAverageOverIterations)
	ctx.Step(`^every point should average 0 seeds$`, sc.everyPointShouldAverageZeroSeeds)
	ctx.Step(`^both sweeps should report identical points$`, sc.bothSweepsShouldReportIdenticalPoints)
	ctx.Step(`^the run should be stored with statuses "([^"]*)"$`, sc.theRunShouldBeStoredAs)
	ctx.Step(`^the sweep should fail with a validation error$`, sc.theSweepShouldFailWithAValidationError)
	ctx.Step(`^no run should be stored$`, sc.noRunShouldBeStored)
}
