package handlers

import (
	"net/http"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/internal/platform/metrics"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

type addThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AddThread handles POST /threads
func AddThread(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		var req addThreadRequest
		if !decodeJSON(w, r, "thread", &req) {
			return
		}

		added, err := d.Forum.AddThread(r.Context(), domain.NewThread{
			Title: req.Title,
			Body:  req.Body,
			Owner: userID,
		})
		metrics.RecordMutation("add_thread", domain.Kind(err))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		d.Events.Publish(events.SubjectThreadCreated, userID, map[string]any{"thread_id": added.ID})
		api.WriteJSON(w, http.StatusCreated, map[string]any{"addedThread": added})
	}
}

// GetThread handles GET /threads/{threadId}
func GetThread(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := d.Forum.GetThreadDetail(r.Context(), param(r, "threadId"))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, map[string]any{"thread": detail})
	}
}
