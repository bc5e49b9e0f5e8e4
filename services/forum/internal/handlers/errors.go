package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/internal/platform/httpserver"
	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/store"
)

// writeDomainError maps the forum error taxonomy onto the API envelope.
// A lost write race is answered with 409. Anything else outside the
// taxonomy is logged and answered with 500.
func (d Deps) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	rid := httpserver.RequestIDFromContext(r.Context())

	var (
		verr  *domain.ValidationError
		nf    *domain.NotFoundError
		forb  *domain.AuthorizationError
		authn *domain.AuthenticationError
	)
	switch {
	case errors.As(err, &verr):
		var details map[string]any
		if len(verr.Fields) > 0 {
			details = make(map[string]any, len(verr.Fields))
			for k, v := range verr.Fields {
				details[k] = v
			}
		}
		api.BadRequest(w, "VALIDATION", verr.Message, rid, details)
	case errors.As(err, &nf):
		api.NotFound(w, "NOT_FOUND", nf.Message, rid)
	case errors.As(err, &forb):
		api.Forbidden(w, "FORBIDDEN", forb.Message, rid)
	case errors.As(err, &authn):
		api.Unauthorized(w, "UNAUTHORIZED", authn.Message, rid)
	case errors.Is(err, store.ErrConflict):
		d.logger().Warn("forum write conflict", zap.String("path", r.URL.Path), zap.String("request_id", rid))
		api.Conflict(w, "CONFLICT", domain.MsgConcurrentUpdate, rid)
	default:
		d.logger().Error("forum request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", rid),
			zap.Error(err),
		)
		api.Internal(w, rid)
	}
}
