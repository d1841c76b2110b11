package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
)

// RunSweepCommand runs a weighted sweep over the standard grove
type RunSweepCommand struct {
	Params      grove.Params
	Iterations  int
	Parallelism int
	Seed        uint64 // 0 draws a fresh seed
	Weights     []grove.WeightTriple
}

// RunSweepResponse reports the finished sweep
type RunSweepResponse struct {
	RunID  sweep.RunID
	Seed   uint64
	Points []sweep.Point
	Stored bool
}

// RunSweepHandler handles the RunSweep command
type RunSweepHandler struct {
	runner *simulation.SweepRunner
	repo   sweep.ResultRepository
	clock  shared.Clock
}

// NewRunSweepHandler creates a new RunSweepHandler. repo may be nil, in
// which case results are not stored.
func NewRunSweepHandler(runner *simulation.SweepRunner, repo sweep.ResultRepository, clock shared.Clock) *RunSweepHandler {
	if runner == nil {
		runner = simulation.NewSweepRunner()
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RunSweepHandler{runner: runner, repo: repo, clock: clock}
}

// Handle executes the RunSweep command
func (h *RunSweepHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*RunSweepCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RunSweepCommand")
	}

	seed := simulation.ResolveSeed(cmd.Seed)
	parallelism := simulation.EffectiveParallelism(cmd.Parallelism, len(cmd.Weights))

	run, err := sweep.NewRun(cmd.Params, cmd.Iterations, parallelism, seed, cmd.Weights, h.clock)
	if err != nil {
		return nil, err
	}
	if err := run.Start(); err != nil {
		return nil, err
	}
	if err := h.save(ctx, run); err != nil {
		return nil, err
	}

	points, runErr := h.runner.Run(ctx, simulation.SweepRequest{
		Params:      cmd.Params,
		Iterations:  cmd.Iterations,
		Weights:     cmd.Weights,
		Parallelism: parallelism,
		Seed:        seed,
	})
	if runErr != nil {
		h.finish(ctx, run, runErr)
		return nil, fmt.Errorf("sweep %s failed: %w", run.ID(), runErr)
	}

	if err := run.Complete(points); err != nil {
		return nil, err
	}
	if err := h.save(ctx, run); err != nil {
		return nil, err
	}

	return &RunSweepResponse{
		RunID:  run.ID(),
		Seed:   seed,
		Points: points,
		Stored: h.repo != nil,
	}, nil
}

// finish records a failed or cancelled run; storage errors are logged so
// the sweep error is the one returned
func (h *RunSweepHandler) finish(ctx context.Context, run *sweep.Run, runErr error) {
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		_ = run.Stop()
	} else {
		_ = run.Fail(runErr)
	}
	if err := h.save(context.WithoutCancel(ctx), run); err != nil {
		common.LoggerFromContext(ctx).Error().Err(err).Str("run_id", run.ID().String()).Msg("failed to store failed sweep")
	}
}

func (h *RunSweepHandler) save(ctx context.Context, run *sweep.Run) error {
	if h.repo == nil {
		return nil
	}
	if err := h.repo.Save(ctx, run); err != nil {
		return fmt.Errorf("failed to persist sweep run: %w", err)
	}
	return nil
}
