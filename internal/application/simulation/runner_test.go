package simulation

import (
	"bytes"
	"context"
	"errors"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/metrics"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

type countingRecorder struct {
	iterations atomic.Int64
	active     atomic.Int64
	peak       atomic.Int64

	mu       sync.Mutex
	statuses map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{statuses: make(map[string]int)}
}

func (r *countingRecorder) RecordIterations(n int) { r.iterations.Add(int64(n)) }

func (r *countingRecorder) RecordPoint(status string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses[status]++
}

func (r *countingRecorder) WorkerStarted() {
	n := r.active.Add(1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

func (r *countingRecorder) WorkerFinished() { r.active.Add(-1) }

func testWeights() []grove.WeightTriple {
	return []grove.WeightTriple{
		{Yellow: 1, Blue: 1, Purple: 1},
		{Yellow: 0.55, Blue: 1, Purple: 1},
		{Yellow: 1, Blue: 0.55, Purple: 0.8},
		{Yellow: 0.55, Blue: 0.55, Purple: 1},
	}
}

func TestSweepRunner_DeterministicAcrossParallelism(t *testing.T) {
	// Arrange
	runner := NewSweepRunner(WithRecorder(newCountingRecorder()), WithLowIterationWarning(0))
	req := SweepRequest{Params: grove.DefaultParams(), Iterations: 300, Weights: testWeights(), Seed: 42}

	// Act
	req.Parallelism = 1
	serial, err := runner.Run(context.Background(), req)
	require.NoError(t, err)
	req.Parallelism = 4
	parallel, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	// Assert
	assert.Equal(t, serial, parallel)
	for i, p := range serial {
		assert.Equal(t, req.Weights[i], p.Weights, "points keep input order")
		assert.Equal(t, 300, p.Iterations)
		assert.Greater(t, p.Mean, 0.0)
	}
}

func TestSweepRunner_RecordsMetrics(t *testing.T) {
	// Arrange
	rec := newCountingRecorder()
	runner := NewSweepRunner(WithRecorder(rec))
	req := SweepRequest{Params: grove.DefaultParams(), Iterations: 5000, Weights: testWeights(), Parallelism: 2, Seed: 7}

	// Act
	_, err := runner.Run(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(5000*len(req.Weights)), rec.iterations.Load())
	assert.Equal(t, len(req.Weights), rec.statuses[metrics.PointStatusCompleted])
	assert.Equal(t, int64(0), rec.active.Load())
	assert.LessOrEqual(t, rec.peak.Load(), int64(2))
}

func TestSweepRunner_NoPromotionsMeansZeroYield(t *testing.T) {
	// Arrange
	params := grove.DefaultParams()
	params.Probabilities = grove.Probabilities{}
	runner := NewSweepRunner(WithRecorder(newCountingRecorder()))

	// Act
	points, err := runner.Run(context.Background(), SweepRequest{Params: params, Iterations: 50, Weights: testWeights(), Seed: 1})

	// Assert
	require.NoError(t, err)
	for _, p := range points {
		assert.Zero(t, p.Mean)
		assert.Zero(t, p.Variance)
	}
}

func TestSweepRunner_RejectsBadRequestsBeforeRunning(t *testing.T) {
	badParams := grove.DefaultParams()
	badParams.Probabilities.T1ToT2 = 1.5

	tests := map[string]struct {
		req   SweepRequest
		field string
	}{
		"zero iterations": {SweepRequest{Params: grove.DefaultParams(), Iterations: 0, Weights: testWeights()}, "iterations"},
		"no weights":      {SweepRequest{Params: grove.DefaultParams(), Iterations: 10}, "weights"},
		"bad params":      {SweepRequest{Params: badParams, Iterations: 10, Weights: testWeights()}, "p3"},
		"zero weights":    {SweepRequest{Params: grove.DefaultParams(), Iterations: 10, Weights: []grove.WeightTriple{{}}}, ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// Arrange
			rec := newCountingRecorder()
			runner := NewSweepRunner(WithRecorder(rec))

			// Act
			points, err := runner.Run(context.Background(), tt.req)

			// Assert
			require.Error(t, err)
			assert.Nil(t, points)
			var verr *shared.ValidationError
			require.True(t, errors.As(err, &verr))
			if tt.field != "" {
				assert.Equal(t, tt.field, verr.Field)
			}
			assert.Zero(t, rec.iterations.Load())
		})
	}
}

func TestSweepRunner_CancelledContextAbortsSweep(t *testing.T) {
	// Arrange
	rec := newCountingRecorder()
	runner := NewSweepRunner(WithRecorder(rec))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	points, err := runner.Run(ctx, SweepRequest{Params: grove.DefaultParams(), Iterations: 1_000_000, Weights: testWeights(), Seed: 3})

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, points)
	assert.Zero(t, rec.statuses[metrics.PointStatusCompleted])
}

func TestSweepRunner_WarnsOnLowIterationCount(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	ctx := common.WithLogger(context.Background(), zerolog.New(&buf))
	runner := NewSweepRunner(WithRecorder(newCountingRecorder()), WithLowIterationWarning(100))

	// Act
	_, err := runner.Run(ctx, SweepRequest{Params: grove.DefaultParams(), Iterations: 10, Weights: testWeights()[:1], Seed: 9})

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "low iteration count")
	assert.Contains(t, buf.String(), "sweep completed")
}

func TestEffectiveParallelism(t *testing.T) {
	assert.Equal(t, 1, EffectiveParallelism(8, 1))
	assert.Equal(t, 3, EffectiveParallelism(3, 10))
	assert.Equal(t, 1, EffectiveParallelism(-2, 0))
	assert.Equal(t, min(runtime.NumCPU(), 100), EffectiveParallelism(0, 100))
}

func TestResolveSeed(t *testing.T) {
	assert.Equal(t, uint64(12), ResolveSeed(12))
	assert.NotZero(t, ResolveSeed(0))
}

func TestSweepRunner_ReferenceGroveConvergesToBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("long-run convergence check")
	}

	// 10 crops of 23 T1 seeds, equal color weights
	reference := grove.Params{
		Multipliers:   grove.Multipliers{T3: 25, T4: 100, Vivid: 2.5, Primal: 1, Wild: 1},
		Probabilities: grove.Probabilities{T3ToT4: 0.05, T2ToT3: 0.2, T1ToT2: 0.25},
		DestroyChance: grove.DefaultDestroyChance,
	}
	const iterations = 400_000

	tests := []struct {
		name     string
		pick     grove.YellowRiskPick
		baseline float64
	}{
		{"least juicy yellow exposed", grove.PickLeastJuicy, 948.0},
		{"most juicy yellow exposed", grove.PickMostJuicy, 946.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			params := reference
			params.YellowRisk = tt.pick
			runner := NewSweepRunner(WithRecorder(metrics.NoopRecorder{}))
			req := SweepRequest{Params: params, Iterations: iterations, Weights: []grove.WeightTriple{grove.EqualWeights()}}

			// Act
			req.Seed = 1001
			first, err := runner.Run(context.Background(), req)
			require.NoError(t, err)
			req.Seed = 2002
			second, err := runner.Run(context.Background(), req)
			require.NoError(t, err)

			// Assert
			a, b := first[0], second[0]
			seA := a.StdDev / math.Sqrt(float64(a.Iterations))
			seB := b.StdDev / math.Sqrt(float64(b.Iterations))
			assert.InDelta(t, a.Mean, b.Mean, 6*math.Hypot(seA, seB), "independent seeds agree")
			assert.InEpsilon(t, a.Mean, b.Mean, 0.01)
			for _, p := range []float64{a.Mean, b.Mean} {
				assert.InDelta(t, tt.baseline, p, 6*seA+1, "near recorded baseline")
			}
		})
	}
}
