package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/common"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/commands"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/application/simulation/queries"
	"github.com/JZongit/Crop-Rotation-Simulator/internal/domain/shared"
)

// DaemonServer serves the Simulation service. Requests are dispatched
// through the mediator; at most maxSweeps sweeps run at once.
type DaemonServer struct {
	mediator   common.Mediator
	listener   net.Listener
	grpcServer *grpc.Server
	logger     zerolog.Logger

	// Sweep admission: one token per running sweep
	sweepSlots chan struct{}
}

// NewDaemonServer creates a daemon server on listener
func NewDaemonServer(mediator common.Mediator, listener net.Listener, maxSweeps int, logger zerolog.Logger) *DaemonServer {
	if maxSweeps < 1 {
		maxSweeps = 1
	}
	s := &DaemonServer{
		mediator:   mediator,
		listener:   listener,
		logger:     logger,
		sweepSlots: make(chan struct{}, maxSweeps),
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.loggingInterceptor))
	RegisterSimulationServer(s.grpcServer, &simulationService{server: s})
	return s
}

// Listen opens a TCP listener for address
func Listen(address string) (net.Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	return ln, nil
}

// Serve blocks until the server stops
func (s *DaemonServer) Serve() error {
	s.logger.Info().Str("address", s.listener.Addr().String()).Msg("daemon server listening")
	if err := s.grpcServer.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for running ones until ctx
// expires, then stops hard. In-flight sweeps see their context cancelled.
func (s *DaemonServer) Shutdown(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info().Msg("daemon server stopped")
	case <-ctx.Done():
		s.logger.Warn().Msg("shutdown timeout reached, stopping daemon server")
		s.grpcServer.Stop()
		<-done
	}
}

func (s *DaemonServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx = common.WithLogger(ctx, s.logger.With().Str("method", info.FullMethod).Logger())
	return handler(ctx, req)
}

func (s *DaemonServer) acquireSweepSlot() bool {
	select {
	case s.sweepSlots <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *DaemonServer) releaseSweepSlot() {
	<-s.sweepSlots
}

// toStatus maps application errors onto gRPC status codes
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	var verr *shared.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

type simulationService struct {
	server *DaemonServer
}

func (svc *simulationService) RunSweep(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	cmd, err := DecodeRunSweepRequest(in)
	if err != nil {
		return nil, toStatus(err)
	}

	if !svc.server.acquireSweepSlot() {
		return nil, status.Errorf(codes.ResourceExhausted, "all %d sweep slots are busy", cap(svc.server.sweepSlots))
	}
	defer svc.server.releaseSweepSlot()

	resp, err := svc.server.mediator.Send(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}
	return EncodeRunSweepResponse(resp.(*commands.RunSweepResponse))
}

func (svc *simulationService) RunIteration(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	cmd, err := DecodeRunIterationRequest(in)
	if err != nil {
		return nil, toStatus(err)
	}
	resp, err := svc.server.mediator.Send(ctx, cmd)
	if err != nil {
		return nil, toStatus(err)
	}
	return EncodeRunIterationResponse(resp.(*commands.RunIterationResponse))
}

func (svc *simulationService) EnumerateWeights(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	resp, err := svc.server.mediator.Send(ctx, DecodeEnumerateWeightsRequest(in))
	if err != nil {
		return nil, toStatus(err)
	}
	return EncodeEnumerateWeightsResponse(resp.(*queries.EnumerateWeightsResponse))
}
