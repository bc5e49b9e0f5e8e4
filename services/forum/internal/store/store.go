// Package store defines the persistence contracts of the forum service and
// provides in-memory and Postgres implementations of them.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/example/forum-platform/services/forum/internal/domain"
)

// Sentinel errors
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// CreateUserParams carries an already hashed password.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Fullname     string
}

// UserRow is a user together with its password hash.
type UserRow struct {
	User         domain.User
	PasswordHash string
}

type UserStore interface {
	Create(ctx context.Context, p CreateUserParams) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (UserRow, error)
}

type ThreadStore interface {
	Insert(ctx context.Context, t domain.NewThread) (domain.AddedThread, error)
	// Get returns ErrNotFound when the thread does not exist.
	Get(ctx context.Context, threadID string) (domain.Thread, error)
	Exists(ctx context.Context, threadID string) (bool, error)
}

type CommentStore interface {
	Insert(ctx context.Context, c domain.NewComment) (domain.AddedComment, error)
	// ExistsInThread is true only for a non-deleted comment of threadID.
	ExistsInThread(ctx context.Context, commentID, threadID string) (bool, error)
	IsOwner(ctx context.Context, commentID, userID string) (bool, error)
	MarkDeleted(ctx context.Context, commentID string) error
	// ListByThread orders by date, then insertion.
	ListByThread(ctx context.Context, threadID string) ([]domain.Comment, error)
}

type ReplyStore interface {
	Insert(ctx context.Context, r domain.NewReply) (domain.AddedReply, error)
	// ExistsInComment is true only for a non-deleted reply of a non-deleted
	// comment that belongs to threadID.
	ExistsInComment(ctx context.Context, replyID, commentID, threadID string) (bool, error)
	IsOwner(ctx context.Context, replyID, userID string) (bool, error)
	MarkDeleted(ctx context.Context, replyID string) error
	// ListByThread returns the replies of every comment in the thread,
	// ordered by date, then insertion.
	ListByThread(ctx context.Context, threadID string) ([]domain.Reply, error)
}

type LikeStore interface {
	Exists(ctx context.Context, userID, commentID string) (bool, error)
	// Insert returns ErrConflict when the pair is already present.
	Insert(ctx context.Context, userID, commentID string) error
	Remove(ctx context.Context, userID, commentID string) error
	// CountsByThread returns one row per like on the thread's comments.
	CountsByThread(ctx context.Context, threadID string) ([]domain.LikeRow, error)
}

// AuditEntry is one processed forum event.
type AuditEntry struct {
	EventID    string
	Subject    string
	UserID     string
	OccurredAt time.Time
	Payload    []byte
}

type AuditStore interface {
	// Append records the entry once; a repeated EventID reports inserted=false.
	Append(ctx context.Context, e AuditEntry) (inserted bool, err error)
}

// Stores bundles every store the service needs.
type Stores struct {
	Users    UserStore
	Threads  ThreadStore
	Comments CommentStore
	Replies  ReplyStore
	Likes    LikeStore
	Audit    AuditStore
}

// NewID returns prefix-<uuidv7>. v7 ids sort by creation time, which keeps
// listings stable when timestamps collide.
func NewID(prefix string) string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return prefix + "-" + id.String()
}
