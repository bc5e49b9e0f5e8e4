package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const serviceName = "forum.v1.ForumService"

// ForumServer is the server side of forum.v1.ForumService. Every request
// and response is a google.protobuf.Struct.
type ForumServer interface {
	GetThreadDetail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	AddComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DeleteComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	AddReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	DeleteReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	ToggleLike(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(ForumServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ForumServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + serviceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ForumServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes forum.v1.ForumService for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*ForumServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetThreadDetail", ForumServer.GetThreadDetail),
		unary("AddComment", ForumServer.AddComment),
		unary("DeleteComment", ForumServer.DeleteComment),
		unary("AddReply", ForumServer.AddReply),
		unary("DeleteReply", ForumServer.DeleteReply),
		unary("ToggleLike", ForumServer.ToggleLike),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "forum/v1/forum.proto",
}

// Register attaches srv to s.
func Register(s *grpc.Server, srv ForumServer) {
	s.RegisterService(&ServiceDesc, srv)
}
