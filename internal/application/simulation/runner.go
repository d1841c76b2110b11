package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/metrics"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/sweep"
	"github.com/JZongit/Crop-Rotation-Simulator/pkg/utils"
)

// iterationChunk is how many iterations a worker runs between cancellation
// checks and metric updates
const iterationChunk = 4096

// SweepRequest describes one weighted sweep
type SweepRequest struct {
	// Base is copied per weight triple; nil means the standard grove
	Base        *grove.Grove
	Params      grove.Params
	Iterations  int
	Weights     []grove.WeightTriple
	Parallelism int
	Seed        uint64
}

// RunnerOption configures a SweepRunner
type RunnerOption func(*SweepRunner)

// WithRecorder overrides the metrics recorder
func WithRecorder(recorder metrics.SweepMetricsRecorder) RunnerOption {
	return func(r *SweepRunner) {
		if recorder != nil {
			r.recorder = recorder
		}
	}
}

// WithProgressInterval sets the minimum gap between progress log lines
func WithProgressInterval(d time.Duration) RunnerOption {
	return func(r *SweepRunner) { r.progressInterval = d }
}

// WithLowIterationWarning sets the iteration count below which a sweep
// logs a high-variance warning
func WithLowIterationWarning(n int) RunnerOption {
	return func(r *SweepRunner) { r.lowIterationWarning = n }
}

// SweepRunner fans a sweep out over a bounded pool of workers, one task per
// weight triple. Each task owns a clone of the base grove and a random
// stream derived from (seed, triple index), so results do not depend on
// scheduling or parallelism.
type SweepRunner struct {
	recorder            metrics.SweepMetricsRecorder
	progressInterval    time.Duration
	lowIterationWarning int
}

// NewSweepRunner creates a runner that reports to the global sweep recorder
func NewSweepRunner(opts ...RunnerOption) *SweepRunner {
	r := &SweepRunner{
		recorder:            metrics.GlobalSweepRecorder(),
		progressInterval:    5 * time.Second,
		lowIterationWarning: 10_000,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveSeed returns seed, or a fresh random seed when seed is zero
func ResolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

// EffectiveParallelism resolves the worker count for n tasks: 0 means one
// per CPU, and there are never more workers than tasks
func EffectiveParallelism(requested, n int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	return utils.Clamp(requested, 1, max(n, 1))
}

func validateRequest(req SweepRequest) error {
	if err := req.Params.Validate(); err != nil {
		return err
	}
	if req.Iterations < 1 {
		return shared.NewValidationError("iterations", fmt.Sprintf("must be at least 1, got %d", req.Iterations))
	}
	if len(req.Weights) == 0 {
		return shared.NewValidationError("weights", "at least one weight triple is required")
	}
	for i, w := range req.Weights {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("weight triple %d: %w", i, err)
		}
	}
	if req.Base != nil {
		if err := req.Base.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Run simulates every weight triple and returns one point per triple, in
// input order. Invalid requests fail before any simulation starts. Any
// worker failure or cancellation aborts the whole sweep; no partial
// results are returned.
func (r *SweepRunner) Run(ctx context.Context, req SweepRequest) ([]sweep.Point, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	logger := common.LoggerFromContext(ctx)
	if req.Iterations < r.lowIterationWarning {
		logger.Warn().
			Int("iterations", req.Iterations).
			Int("threshold", r.lowIterationWarning).
			Msg("low iteration count: averages will carry high variance")
	}

	base := req.Base
	if base == nil {
		base = grove.NewGrove()
	}
	seed := ResolveSeed(req.Seed)
	workers := EffectiveParallelism(req.Parallelism, len(req.Weights))

	logger.Info().
		Int("points", len(req.Weights)).
		Int("iterations", req.Iterations).
		Int("workers", workers).
		Uint64("seed", seed).
		Msg("sweep started")

	points := make([]sweep.Point, len(req.Weights))
	progress := newProgress(len(req.Weights), r.progressInterval)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for k, w := range req.Weights {
		g.Go(func() error {
			p, err := r.runPoint(gctx, base, req.Params, w, req.Iterations, rand.NewPCG(seed, uint64(k)))
			if err != nil {
				return err
			}
			points[k] = p
			progress.pointDone(gctx, p)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	logger.Info().Int("points", len(points)).Msg("sweep completed")
	return points, nil
}

func (r *SweepRunner) runPoint(ctx context.Context, base *grove.Grove, params grove.Params, w grove.WeightTriple, iterations int, src rand.Source) (sweep.Point, error) {
	r.recorder.WorkerStarted()
	defer r.recorder.WorkerFinished()

	start := time.Now()
	fail := func(err error) (sweep.Point, error) {
		status := metrics.PointStatusFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = metrics.PointStatusCancelled
		}
		r.recorder.RecordPoint(status, time.Since(start))
		return sweep.Point{}, err
	}

	g := base.Clone()
	g.SetWeights(w)
	sim, err := grove.NewSimulator(params, rand.New(src))
	if err != nil {
		return fail(err)
	}

	var stats grove.RunningStats
	for done := 0; done < iterations; {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		chunk := min(iterationChunk, iterations-done)
		for range chunk {
			y, err := sim.RunIteration(g)
			if err != nil {
				return fail(fmt.Errorf("weights %s: %w", w, err))
			}
			stats.Add(y)
		}
		done += chunk
		r.recorder.RecordIterations(chunk)
	}

	r.recorder.RecordPoint(metrics.PointStatusCompleted, time.Since(start))
	return sweep.NewPoint(w, stats), nil
}

// progress throttles sweep progress logging
type progress struct {
	total   int
	done    atomic.Int64
	limiter *rate.Limiter
}

func newProgress(total int, interval time.Duration) *progress {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &progress{total: total, limiter: rate.NewLimiter(limit, 1)}
}

func (p *progress) pointDone(ctx context.Context, pt sweep.Point) {
	done := p.done.Add(1)
	if int(done) == p.total || !p.limiter.Allow() {
		return
	}
	common.LoggerFromContext(ctx).Info().
		Int64("done", done).
		Int("total", p.total).
		Str("weights", pt.Weights.String()).
		Float64("mean", pt.Mean).
		Msg("sweep progress")
}
