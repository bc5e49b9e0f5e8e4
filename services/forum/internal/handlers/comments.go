package handlers

import (
	"net/http"

	"github.com/example/forum-platform/internal/platform/api"
	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/internal/platform/metrics"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

type contentRequest struct {
	Content string `json:"content"`
}

// AddComment handles POST /threads/{threadId}/comments
func AddComment(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		var req contentRequest
		if !decodeJSON(w, r, "comment", &req) {
			return
		}
		threadID := param(r, "threadId")

		added, err := d.Forum.AddComment(r.Context(), domain.NewComment{
			Content:  req.Content,
			Owner:    userID,
			ThreadID: threadID,
		})
		metrics.RecordMutation("add_comment", domain.Kind(err))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		d.Events.Publish(events.SubjectCommentAdded, userID, map[string]any{
			"thread_id":  threadID,
			"comment_id": added.ID,
		})
		api.WriteJSON(w, http.StatusCreated, map[string]any{"addedComment": added})
	}
}

// DeleteComment handles DELETE /threads/{threadId}/comments/{commentId}
func DeleteComment(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		threadID, commentID := param(r, "threadId"), param(r, "commentId")

		err := d.Forum.DeleteComment(r.Context(), threadID, commentID, userID)
		metrics.RecordMutation("delete_comment", domain.Kind(err))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		d.Events.Publish(events.SubjectCommentDeleted, userID, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
		})
		api.WriteJSON(w, http.StatusOK, success)
	}
}

// AddReply handles POST /threads/{threadId}/comments/{commentId}/replies
func AddReply(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		var req contentRequest
		if !decodeJSON(w, r, "reply", &req) {
			return
		}
		threadID, commentID := param(r, "threadId"), param(r, "commentId")

		added, err := d.Forum.AddReply(r.Context(), domain.NewReply{
			Content:   req.Content,
			Owner:     userID,
			CommentID: commentID,
			ThreadID:  threadID,
		})
		metrics.RecordMutation("add_reply", domain.Kind(err))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		d.Events.Publish(events.SubjectReplyAdded, userID, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
			"reply_id":   added.ID,
		})
		api.WriteJSON(w, http.StatusCreated, map[string]any{"addedReply": added})
	}
}

// DeleteReply handles DELETE /threads/{threadId}/comments/{commentId}/replies/{replyId}
func DeleteReply(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := callerID(w, r)
		if !ok {
			return
		}
		threadID, commentID, replyID := param(r, "threadId"), param(r, "commentId"), param(r, "replyId")

		err := d.Forum.DeleteReply(r.Context(), threadID, commentID, replyID, userID)
		metrics.RecordMutation("delete_reply", domain.Kind(err))
		if err != nil {
			d.writeDomainError(w, r, err)
			return
		}
		d.Events.Publish(events.SubjectReplyDeleted, userID, map[string]any{
			"thread_id":  threadID,
			"comment_id": commentID,
			"reply_id":   replyID,
		})
		api.WriteJSON(w, http.StatusOK, success)
	}
}
