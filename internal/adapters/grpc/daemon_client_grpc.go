package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
)

// SimulationClient calls a remote grovesim daemon
type SimulationClient struct {
	conn *grpc.ClientConn
}

// NewSimulationClient connects to the daemon at address (host:port)
func NewSimulationClient(address string, opts ...grpc.DialOption) (*SimulationClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon at %s: %w", address, err)
	}
	return &SimulationClient{conn: conn}, nil
}

// Close closes the gRPC connection
func (c *SimulationClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *SimulationClient) invoke(ctx context.Context, method string, in *structpb.Struct) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunSweep runs a sweep on the daemon
func (c *SimulationClient) RunSweep(ctx context.Context, cmd *commands.RunSweepCommand) (*commands.RunSweepResponse, error) {
	in, err := EncodeRunSweepRequest(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sweep request: %w", err)
	}
	out, err := c.invoke(ctx, MethodRunSweep, in)
	if err != nil {
		return nil, fmt.Errorf("remote sweep failed: %w", err)
	}
	return DecodeRunSweepResponse(out)
}

// RunIteration runs one iteration on the daemon
func (c *SimulationClient) RunIteration(ctx context.Context, cmd *commands.RunIterationCommand) (*commands.RunIterationResponse, error) {
	in, err := EncodeRunIterationRequest(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode iteration request: %w", err)
	}
	out, err := c.invoke(ctx, MethodRunIteration, in)
	if err != nil {
		return nil, fmt.Errorf("remote iteration failed: %w", err)
	}
	return DecodeRunIterationResponse(out)
}

// EnumerateWeights lists weight triples on the daemon
func (c *SimulationClient) EnumerateWeights(ctx context.Context, q *queries.EnumerateWeightsQuery) (*queries.EnumerateWeightsResponse, error) {
	in, err := EncodeEnumerateWeightsRequest(q)
	if err != nil {
		return nil, fmt.Errorf("failed to encode enumerate request: %w", err)
	}
	out, err := c.invoke(ctx, MethodEnumerateWeights, in)
	if err != nil {
		return nil, fmt.Errorf("remote enumerate failed: %w", err)
	}
	return DecodeEnumerateWeightsResponse(out), nil
}
