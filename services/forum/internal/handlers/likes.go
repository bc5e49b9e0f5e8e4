package handlers

import (
	"net/http"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/internal/platform/metrics"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

type likeResponse struct {
	Status string `json:"status"`
	Liked  bool   `json:"liked"`
}

// ToggleLike handles PUT /threads/{threadId}/comments/{commentId}/likes
func ToggleLike(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		threadID, commentID := param(r, "threadId"), param(r, "commentId")

		res, err := d.Forum.ToggleLike(r.Context(), threadID, commentID, userID)
		metrics.RecordMutation("toggle_like", domain.Kind(err))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		metrics.RecordLikeToggle(res.Liked)
		d.Events.Publish(events.SubjectLikeToggled, userID, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
			"liked":      res.Liked,
		})
		api.WriteJSON(w, http.StatusOK, likeResponse{Status: "success", Liked: res.Liked})
	}
}
