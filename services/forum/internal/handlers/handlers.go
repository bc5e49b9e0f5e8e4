// Package handlers exposes the forum over HTTP.
package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/auth"
	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/services/forum/internal/account"
	"github.com/example/forum-platform/services/forum/internal/discussion"
)

// Deps is shared by every handler. Events may be nil.
type Deps struct {
	Forum    *discussion.Service
	Accounts *account.Service
	Events   *events.Publisher
	Log      *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// Mount registers the public routes and the token-protected forum routes.
func Mount(r chi.Router, d Deps, verifier auth.JWTVerifier) {
	r.Post("/users", RegisterUser(d))
	r.Post("/authentications", Login(d))
	r.Get("/threads/{threadId}", GetThread(d))

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(verifier))
		r.Post("/threads", AddThread(d))
		r.Post("/threads/{threadId}/comments", AddComment(d))
		r.Delete("/threads/{threadId}/comments/{commentId}", DeleteComment(d))
		r.Post("/threads/{threadId}/comments/{commentId}/replies", AddReply(d))
		r.Delete("/threads/{threadId}/comments/{commentId}/replies/{replyId}", DeleteReply(d))
		r.Put("/threads/{threadId}/comments/{commentId}/likes", ToggleLike(d))
	})
}
