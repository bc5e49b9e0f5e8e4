package grpcapi

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/example/forum-platform/internal/platform/auth"
)

// UnaryAuth verifies the bearer token in the "authorization" metadata and
// puts its subject into the context. Calls without the header pass through
// anonymously; methods that need a caller reject them in callerID.
func UnaryAuth(verifier auth.JWTVerifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		vals := md.Get("authorization")
		if len(vals) == 0 {
			return handler(ctx, req)
		}
		token, ok := auth.BearerToken(vals[0])
		if !ok {
			return nil, errUnauthenticated("UNAUTHENTICATED", "Missing authentication")
		}
		ctx, err := verifier.Authenticate(ctx, token)
		if err != nil {
			return nil, errUnauthenticated("INVALID_TOKEN", "Invalid token")
		}
		return handler(ctx, req)
	}
}

// NewServer returns a grpc.Server with UnaryAuth installed ahead of any
// interceptors in opts.
func NewServer(verifier auth.JWTVerifier, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(UnaryAuth(verifier))}, opts...)
	return grpc.NewServer(opts...)
}

// callerID returns the authenticated user id. Identity only comes from a
// verified token; client supplied metadata such as user_id is ignored.
func callerID(ctx context.Context) (string, error) {
	uid, ok := auth.UserIDFromContext(ctx)
	if !ok || uid == "" {
		return "", errUnauthenticated("UNAUTHENTICATED", "Missing authentication")
	}
	return uid, nil
}
