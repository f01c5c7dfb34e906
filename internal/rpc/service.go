package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region service-desc
// Wire messages are protobuf well-known types, so no generated code is needed.
//
//	NewSession(Empty)        -> StringValue  session id
//	Play(Struct)             -> Struct       {session_id, choice} -> turn
//	EndSession(StringValue)  -> Struct       final tally
const (
	serviceName      = "mindreader.v1.Predictor"
	methodNewSession = "/" + serviceName + "/NewSession"
	methodPlay       = "/" + serviceName + "/Play"
	methodEndSession = "/" + serviceName + "/EndSession"
)

// PredictorServer is the server side of the Predictor service.
type PredictorServer interface {
	NewSession(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Play(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndSession(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterPredictorServer attaches srv to a gRPC server.
func RegisterPredictorServer(s grpc.ServiceRegistrar, srv PredictorServer) {
	s.RegisterService(&predictorServiceDesc, srv)
}

var predictorServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*PredictorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NewSession", Handler: newSessionHandler},
		{MethodName: "Play", Handler: playHandler},
		{MethodName: "EndSession", Handler: endSessionHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mindreader/v1/predictor.proto",
}

// #endregion service-desc

// #region handlers
func newSessionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictorServer).NewSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodNewSession}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictorServer).NewSession(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func playHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictorServer).Play(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodPlay}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictorServer).Play(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func endSessionHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictorServer).EndSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodEndSession}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictorServer).EndSession(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// #endregion handlers
