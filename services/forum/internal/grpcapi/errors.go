package grpcapi

import (
	"errors"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/store"
)

const errorDomain = "forum"

func withInfo(c codes.Code, reason, msg string, extra ...*errdetails.BadRequest) error {
	st := status.New(c, msg)
	info := &errdetails.ErrorInfo{Reason: reason, Domain: errorDomain}
	var st2 *status.Status
	var err error
	if len(extra) > 0 && extra[0] != nil {
		st2, err = st.WithDetails(info, extra[0])
	} else {
		st2, err = st.WithDetails(info)
	}
	if err != nil {
		return st.Err()
	}
	return st2.Err()
}

func errInvalidArgument(code, msg string, fieldViolations map[string]string) error {
	bad := &errdetails.BadRequest{}
	for field, desc := range fieldViolations {
		bad.FieldViolations = append(bad.FieldViolations, &errdetails.BadRequest_FieldViolation{Field: field, Description: desc})
	}
	return withInfo(codes.InvalidArgument, code, msg, bad)
}

func errUnauthenticated(code, msg string) error {
	return withInfo(codes.Unauthenticated, code, msg)
}

func errInternal() error {
	return withInfo(codes.Internal, "INTERNAL", "Internal error")
}

// toStatus maps the domain error taxonomy onto gRPC codes. Errors outside
// the taxonomy become Internal without leaking their text.
func toStatus(err error) error {
	var (
		verr  *domain.ValidationError
		nf    *domain.NotFoundError
		forb  *domain.AuthorizationError
		authn *domain.AuthenticationError
	)
	switch {
	case errors.As(err, &verr):
		return errInvalidArgument("VALIDATION", verr.Message, verr.Fields)
	case errors.As(err, &nf):
		return withInfo(codes.NotFound, "NOT_FOUND", nf.Message)
	case errors.As(err, &forb):
		return withInfo(codes.PermissionDenied, "FORBIDDEN", forb.Message)
	case errors.As(err, &authn):
		return errUnauthenticated("UNAUTHENTICATED", authn.Message)
	case errors.Is(err, store.ErrConflict):
		return withInfo(codes.Aborted, "CONFLICT", domain.MsgConcurrentUpdate)
	default:
		return errInternal()
	}
}
