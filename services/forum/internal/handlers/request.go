package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/internal/platform/auth"
	"github.com/example/forum-platform/internal/platform/httpserver"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// decodeJSON decodes the body into dst. An empty body leaves dst zeroed so
// the pipeline reports the missing properties. A field of the wrong JSON type
// is reported with the wrong-type message for kind. On failure it writes a
// 400 response and returns false.
func decodeJSON[T any](w http.ResponseWriter, r *http.Request, kind string, dst *T) bool {
	rid := httpserver.RequestIDFromContext(r.Context())
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		api.BadRequest(w, "VALIDATION", domain.WrongTypeMessage(kind), rid, map[string]any{typeErr.Field: "type"})
		return false
	}
	api.BadRequest(w, "INVALID_JSON", "Invalid JSON", rid, nil)
	return false
}

// callerID returns the authenticated user id, writing 401 when absent.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok || strings.TrimSpace(userID) == "" {
		api.Unauthorized(w, "UNAUTHORIZED", "Missing authentication", httpserver.RequestIDFromContext(r.Context()))
		return "", false
	}
	return userID, true
}

func param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

type statusResponse struct {
	Status string `json:"status"`
}

var success = statusResponse{Status: "success"}
