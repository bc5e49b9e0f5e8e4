package discussion

import "github.com/example/forum-platform/services/forum/internal/domain"

// ComposeThreadDetail nests replies under their comments, counts likes per
// comment and masks soft-deleted content. It performs no I/O. Nil inputs are
// treated as empty, and every slice in the result is non-nil.
//
// comments and replies must already be in creation order; that order is kept.
func ComposeThreadDetail(thread domain.Thread, comments []domain.Comment, replies []domain.Reply, likes []domain.LikeRow) domain.ThreadDetail {
	likeCount := make(map[string]int, len(comments))
	for _, l := range likes {
		likeCount[l.CommentID]++
	}

	byComment := make(map[string][]domain.ReplyView, len(comments))
	for _, r := range replies {
		byComment[r.CommentID] = append(byComment[r.CommentID], replyView(r))
	}

	views := make([]domain.CommentView, 0, len(comments))
	for _, c := range comments {
		rs := byComment[c.ID]
		if rs == nil {
			rs = []domain.ReplyView{}
		}
		content := c.Content
		if c.Deleted {
			content = domain.DeletedCommentContent
		}
		views = append(views, domain.CommentView{
			ID:        c.ID,
			Username:  c.Username,
			Date:      c.Date,
			Content:   content,
			LikeCount: likeCount[c.ID],
			Replies:   rs,
		})
	}

	return domain.ThreadDetail{
		ID:       thread.ID,
		Title:    thread.Title,
		Body:     thread.Body,
		Date:     thread.Date,
		Username: thread.Username,
		Comments: views,
	}
}

func replyView(r domain.Reply) domain.ReplyView {
	content := r.Content
	if r.Deleted {
		content = domain.DeletedReplyContent
	}
	return domain.ReplyView{ID: r.ID, Content: content, Date: r.Date, Username: r.Username}
}
