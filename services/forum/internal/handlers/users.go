package handlers

import (
	"net/http"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Fullname string `json:"fullname"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterUser handles POST /users
func RegisterUser(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeJSON(w, r, "user", &req) {
			return
		}

		u, err := d.Accounts.Register(r.Context(), domain.NewUser{
			Username: req.Username,
			Password: req.Password,
			Fullname: req.Fullname,
		})
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]any{"addedUser": u})
	}
}

// Login handles POST /authentications
func Login(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !decodeJSON(w, r, "authentication", &req) {
			return
		}

		token, exp, err := d.Accounts.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, map[string]any{
			"accessToken": token,
			"expiresAt":   exp,
		})
	}
}
