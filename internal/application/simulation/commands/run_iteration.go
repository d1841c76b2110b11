package commands

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
)

// RunIterationCommand runs one randomized harvest of the standard grove
type RunIterationCommand struct {
	Params  grove.Params
	Weights grove.WeightTriple
	Seed    uint64 // 0 draws a fresh seed
}

// RunIterationResponse carries the yield and the final grove state
type RunIterationResponse struct {
	Yield float64
	Seed  uint64
	Crops []grove.Crop
}

// RunIterationHandler handles the RunIteration command
type RunIterationHandler struct{}

// NewRunIterationHandler creates a new RunIterationHandler
func NewRunIterationHandler() *RunIterationHandler {
	return &RunIterationHandler{}
}

// Handle executes the RunIteration command
func (h *RunIterationHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunIterationCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunIterationCommand")
	}

	if err := cmd.Weights.Validate(); err != nil {
		return nil, err
	}

	seed := simulation.ResolveSeed(cmd.Seed)
	g := grove.NewGrove()
	g.SetWeights(cmd.Weights)

	yield, err := grove.RunIteration(g, cmd.Params, rand.New(rand.NewPCG(seed, 0)))
	if err != nil {
		return nil, err
	}

	common.LoggerFromContext(ctx).Debug().
		Uint64("seed", seed).
		Float64("yield", yield).
		Msg("iteration finished")

	return &RunIterationResponse{Yield: yield, Seed: seed, Crops: g.Crops()}, nil
}
