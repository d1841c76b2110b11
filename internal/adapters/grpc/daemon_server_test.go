package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/adapters/metrics"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/setup"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/grove"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
	"github.com/JZongit/Crop-Rotation-Simulator/test/helpers"
)

func startDaemon(t *testing.T, m common.Mediator, maxSweeps int) *SimulationClient {
	t.Helper()
	ln := bufconn.Listen(1 << 20)
	srv := NewDaemonServer(m, ln, maxSweeps, zerolog.Nop())
	go func() { _ = srv.Serve() }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})

	client, err := NewSimulationClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return ln.DialContext(ctx)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func realMediator(t *testing.T) common.Mediator {
	t.Helper()
	runner := simulation.NewSweepRunner(simulation.WithRecorder(metrics.NoopRecorder{}), simulation.WithLowIterationWarning(0))
	m, err := setup.NewHandlerRegistry(runner, nil, nil).CreateConfiguredMediator()
	require.NoError(t, err)
	return m
}

func TestDaemon_RunSweepMatchesLocalRun(t *testing.T) {
	// Arrange
	client := startDaemon(t, realMediator(t), 1)
	cmd := &commands.RunSweepCommand{
		Params:     grove.DefaultParams(),
		Iterations: 200,
		Seed:       1 << 60,
		Weights:    []grove.WeightTriple{grove.EqualWeights(), {Yellow: 0.55, Blue: 1, Purple: 0.8}},
	}
	local, err := realMediator(t).Send(context.Background(), cmd)
	require.NoError(t, err)

	// Act
	remote, err := client.RunSweep(context.Background(), cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<60), remote.Seed, "seeds above 2^53 survive the wire")
	assert.Equal(t, local.(*commands.RunSweepResponse).Points, remote.Points)
	assert.False(t, remote.RunID.IsZero())
}

func TestDaemon_RunIterationReturnsGrove(t *testing.T) {
	client := startDaemon(t, realMediator(t), 1)

	resp, err := client.RunIteration(context.Background(), &commands.RunIterationCommand{
		Params:  grove.DefaultParams(),
		Weights: grove.EqualWeights(),
		Seed:    77,
	})

	require.NoError(t, err)
	assert.Equal(t, uint64(77), resp.Seed)
	require.Len(t, resp.Crops, grove.CropCount)
	assert.Equal(t, "A1", resp.Crops[0].Label())
	assert.NotEqual(t, grove.ColorNone, resp.Crops[0].Color)
}

func TestDaemon_EnumerateWeights(t *testing.T) {
	client := startDaemon(t, realMediator(t), 1)

	resp, err := client.EnumerateWeights(context.Background(), &queries.EnumerateWeightsQuery{Values: []float64{0.55, 1}})

	require.NoError(t, err)
	assert.Equal(t, 0.55, resp.Reduced)
	assert.Len(t, resp.Triples, 5)
}

func TestDaemon_InvalidParamsAreInvalidArgument(t *testing.T) {
	client := startDaemon(t, realMediator(t), 1)
	params := grove.DefaultParams()
	params.Probabilities.T3ToT4 = 2

	_, err := client.RunSweep(context.Background(), &commands.RunSweepCommand{
		Params:     params,
		Iterations: 10,
		Weights:    []grove.WeightTriple{grove.EqualWeights()},
	})

	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

// blockingMediator holds every sweep until release is closed
type blockingMediator struct {
	common.Mediator
	started chan struct{}
	release chan struct{}
}

func (b *blockingMediator) Send(ctx context.Context, req common.Request) (common.Response, error) {
	if reflect.TypeOf(req) == reflect.TypeOf(&commands.RunSweepCommand{}) {
		b.started <- struct{}{}
		<-b.release
		return &commands.RunSweepResponse{Seed: 1}, nil
	}
	return b.Mediator.Send(ctx, req)
}

func TestDaemon_RejectsSweepsBeyondLimit(t *testing.T) {
	// Arrange
	m := &blockingMediator{Mediator: realMediator(t), started: make(chan struct{}, 1), release: make(chan struct{})}
	client := startDaemon(t, m, 1)
	cmd := &commands.RunSweepCommand{Params: grove.DefaultParams(), Iterations: 1, Weights: []grove.WeightTriple{grove.EqualWeights()}}

	first := make(chan error, 1)
	go func() {
		_, err := client.RunSweep(context.Background(), cmd)
		first <- err
	}()
	<-m.started

	// Act
	_, err := client.RunSweep(context.Background(), cmd)
	close(m.release)

	// Assert
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	assert.NoError(t, <-first)
}

func TestDaemon_MapsErrorsToStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "validation", err: shared.NewValidationError("weight_values", "must not be empty"), want: codes.InvalidArgument},
		{name: "cancelled", err: fmt.Errorf("sweep x failed: %w", context.Canceled), want: codes.Canceled},
		{name: "deadline", err: context.DeadlineExceeded, want: codes.DeadlineExceeded},
		{name: "anything else", err: errors.New("disk full"), want: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			m := helpers.NewMockMediator()
			m.SetError(tt.err)
			client := startDaemon(t, m, 1)

			// Act
			_, err := client.EnumerateWeights(context.Background(), &queries.EnumerateWeightsQuery{Values: []float64{1}})

			// Assert
			assert.Equal(t, tt.want, status.Code(err))
			assert.Equal(t, []string{"EnumerateWeightsQuery"}, m.GetCallLog())
		})
	}
}
