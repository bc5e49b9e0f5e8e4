// Package domain holds the forum entities, the derived thread view and the
// error taxonomy shared by every layer of the forum service.
package domain

import "time"

// Placeholders shown in place of soft-deleted content.
const (
	DeletedCommentContent = "**komentar telah dihapus**"
	DeletedReplyContent   = "**balasan telah dihapus**"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Fullname  string    `json:"fullname"`
	CreatedAt time.Time `json:"-"`
}

type NewUser struct {
	Username string `json:"username" validate:"required,max=50"`
	Password string `json:"password" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
}

type Thread struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	Date     time.Time `json:"date"`
	Username string    `json:"username"`
}

type NewThread struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	Owner string `json:"owner" validate:"required"`
}

type AddedThread struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// Comment is a stored comment. Content is kept even when Deleted is set.
type Comment struct {
	ID       string    `json:"id"`
	ThreadID string    `json:"thread_id"`
	Owner    string    `json:"owner"`
	Username string    `json:"username"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Deleted  bool      `json:"is_deleted"`
}

type NewComment struct {
	Content  string `json:"content" validate:"required"`
	Owner    string `json:"owner" validate:"required"`
	ThreadID string `json:"thread_id" validate:"required"`
}

type AddedComment struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// Reply is a stored reply. Content is kept even when Deleted is set.
type Reply struct {
	ID        string    `json:"id"`
	CommentID string    `json:"comment_id"`
	Owner     string    `json:"owner"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	Deleted   bool      `json:"is_deleted"`
}

type NewReply struct {
	Content   string `json:"content" validate:"required"`
	Owner     string `json:"owner" validate:"required"`
	CommentID string `json:"comment_id" validate:"required"`
	ThreadID  string `json:"thread_id" validate:"required"`
}

type AddedReply struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

// LikeRow is one like on a comment, as returned by a per-thread listing.
type LikeRow struct {
	CommentID string `json:"comment_id"`
}

// LikeResult reports the state a toggle left the like in.
type LikeResult struct {
	Liked bool `json:"liked"`
}

// ThreadDetail is rebuilt on every read and never stored.
type ThreadDetail struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Body     string        `json:"body"`
	Date     time.Time     `json:"date"`
	Username string        `json:"username"`
	Comments []CommentView `json:"comments"`
}

type CommentView struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Date      time.Time   `json:"date"`
	Content   string      `json:"content"`
	LikeCount int         `json:"likeCount"`
	Replies   []ReplyView `json:"replies"`
}

type ReplyView struct {
	ID       string    `json:"id"`
	Content  string    `json:"content"`
	Date     time.Time `json:"date"`
	Username string    `json:"username"`
}
