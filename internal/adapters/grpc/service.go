package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "grovesim.v1.Simulation"

// Full method names
const (
	MethodRunSweep         = "/" + ServiceName + "/RunSweep"
	MethodRunIteration     = "/" + ServiceName + "/RunIteration"
	MethodEnumerateWeights = "/" + ServiceName + "/EnumerateWeights"
)

// SimulationServer is the server API for the Simulation service. Payloads
// are google.protobuf.Struct documents; see type_converters.go for the
// field layout.
type SimulationServer interface {
	RunSweep(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RunIteration(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EnumerateWeights(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSimulationServer registers srv on s
func RegisterSimulationServer(s grpc.ServiceRegistrar, srv SimulationServer) {
	s.RegisterService(&SimulationServiceDesc, srv)
}

func unaryHandler(method string, call func(SimulationServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SimulationServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(SimulationServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// SimulationServiceDesc is the grpc.ServiceDesc for the Simulation service
var SimulationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "RunSweep",
			Handler:    unaryHandler(MethodRunSweep, SimulationServer.RunSweep),
		},
		{
			MethodName: "RunIteration",
			Handler:    unaryHandler(MethodRunIteration, SimulationServer.RunIteration),
		},
		{
			MethodName: "EnumerateWeights",
			Handler:    unaryHandler(MethodEnumerateWeights, SimulationServer.EnumerateWeights),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grovesim/v1/simulation.proto",
}
