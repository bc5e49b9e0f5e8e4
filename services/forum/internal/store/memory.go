package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/forum-platform/services/forum/internal/domain"
)

type likeKey struct {
	userID    string
	commentID string
}

type memThread struct {
	domain.Thread
	owner string
}

// memDB is the shared state behind every in-memory store. Slices keep
// insertion order so listings are stable.
type memDB struct {
	mu       sync.RWMutex
	now      func() time.Time
	users    map[string]UserRow // id -> row
	byName   map[string]string  // lower(username) -> id
	threads  map[string]memThread
	comments []domain.Comment
	replies  []domain.Reply
	likes    map[likeKey]time.Time
	audit    map[string]AuditEntry
}

// NewMemory returns development-only stores that share one in-process
// dataset. State is lost on restart.
func NewMemory() Stores {
	return newMemory(func() time.Time { return time.Now().UTC() })
}

func newMemory(now func() time.Time) Stores {
	db := &memDB{
		now:     now,
		users:   make(map[string]UserRow),
		byName:  make(map[string]string),
		threads: make(map[string]memThread),
		likes:   make(map[likeKey]time.Time),
		audit:   make(map[string]AuditEntry),
	}
	return Stores{
		Users:    &MemoryUserStore{db},
		Threads:  &MemoryThreadStore{db},
		Comments: &MemoryCommentStore{db},
		Replies:  &MemoryReplyStore{db},
		Likes:    &MemoryLikeStore{db},
		Audit:    &MemoryAuditStore{db},
	}
}

func (db *memDB) username(userID string) string {
	return db.users[userID].User.Username
}

func (db *memDB) comment(id string) (int, bool) {
	for i := range db.comments {
		if db.comments[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

func (db *memDB) reply(id string) (int, bool) {
	for i := range db.replies {
		if db.replies[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// ─── users ────────────────────────────────────────────────────────────────

type MemoryUserStore struct{ db *memDB }

func (s *MemoryUserStore) Create(_ context.Context, p CreateUserParams) (domain.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	key := strings.ToLower(p.Username)
	if _, ok := s.db.byName[key]; ok {
		return domain.User{}, ErrConflict
	}
	u := domain.User{ID: NewID("user"), Username: p.Username, Fullname: p.Fullname, CreatedAt: s.db.now()}
	s.db.users[u.ID] = UserRow{User: u, PasswordHash: p.PasswordHash}
	s.db.byName[key] = u.ID
	return u, nil
}

func (s *MemoryUserStore) FindByUsername(_ context.Context, username string) (UserRow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	id, ok := s.db.byName[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return UserRow{}, ErrNotFound
	}
	return s.db.users[id], nil
}

// ─── threads ──────────────────────────────────────────────────────────────

type MemoryThreadStore struct{ db *memDB }

func (s *MemoryThreadStore) Insert(_ context.Context, t domain.NewThread) (domain.AddedThread, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	th := memThread{
		Thread: domain.Thread{ID: NewID("thread"), Title: t.Title, Body: t.Body, Date: s.db.now()},
		owner:  t.Owner,
	}
	s.db.threads[th.ID] = th
	return domain.AddedThread{ID: th.ID, Title: th.Title, Owner: t.Owner}, nil
}

func (s *MemoryThreadStore) Get(_ context.Context, threadID string) (domain.Thread, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	th, ok := s.db.threads[threadID]
	if !ok {
		return domain.Thread{}, ErrNotFound
	}
	out := th.Thread
	out.Username = s.db.username(th.owner)
	return out, nil
}

func (s *MemoryThreadStore) Exists(_ context.Context, threadID string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	_, ok := s.db.threads[threadID]
	return ok, nil
}

// ─── comments ─────────────────────────────────────────────────────────────

type MemoryCommentStore struct{ db *memDB }

func (s *MemoryCommentStore) Insert(_ context.Context, c domain.NewComment) (domain.AddedComment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.threads[c.ThreadID]; !ok {
		return domain.AddedComment{}, ErrNotFound
	}
	row := domain.Comment{
		ID:       NewID("comment"),
		ThreadID: c.ThreadID,
		Owner:    c.Owner,
		Content:  c.Content,
		Date:     s.db.now(),
	}
	s.db.comments = append(s.db.comments, row)
	return domain.AddedComment{ID: row.ID, Content: row.Content, Owner: row.Owner}, nil
}

func (s *MemoryCommentStore) ExistsInThread(_ context.Context, commentID, threadID string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	i, ok := s.db.comment(commentID)
	if !ok {
		return false, nil
	}
	c := s.db.comments[i]
	return c.ThreadID == threadID && !c.Deleted, nil
}

func (s *MemoryCommentStore) IsOwner(_ context.Context, commentID, userID string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	i, ok := s.db.comment(commentID)
	return ok && s.db.comments[i].Owner == userID, nil
}

func (s *MemoryCommentStore) MarkDeleted(_ context.Context, commentID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := s.db.comment(commentID)
	if !ok {
		return ErrNotFound
	}
	s.db.comments[i].Deleted = true
	return nil
}

func (s *MemoryCommentStore) ListByThread(_ context.Context, threadID string) ([]domain.Comment, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []domain.Comment{}
	for _, c := range s.db.comments {
		if c.ThreadID == threadID {
			c.Username = s.db.username(c.Owner)
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ─── replies ──────────────────────────────────────────────────────────────

type MemoryReplyStore struct{ db *memDB }

func (s *MemoryReplyStore) Insert(_ context.Context, r domain.NewReply) (domain.AddedReply, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.comment(r.CommentID); !ok {
		return domain.AddedReply{}, ErrNotFound
	}
	row := domain.Reply{
		ID:        NewID("reply"),
		CommentID: r.CommentID,
		Owner:     r.Owner,
		Content:   r.Content,
		Date:      s.db.now(),
	}
	s.db.replies = append(s.db.replies, row)
	return domain.AddedReply{ID: row.ID, Content: row.Content, Owner: row.Owner}, nil
}

func (s *MemoryReplyStore) ExistsInComment(_ context.Context, replyID, commentID, threadID string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	ri, ok := s.db.reply(replyID)
	if !ok {
		return false, nil
	}
	r := s.db.replies[ri]
	if r.CommentID != commentID || r.Deleted {
		return false, nil
	}
	ci, ok := s.db.comment(commentID)
	if !ok {
		return false, nil
	}
	c := s.db.comments[ci]
	return c.ThreadID == threadID && !c.Deleted, nil
}

func (s *MemoryReplyStore) IsOwner(_ context.Context, replyID, userID string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	i, ok := s.db.reply(replyID)
	return ok && s.db.replies[i].Owner == userID, nil
}

func (s *MemoryReplyStore) MarkDeleted(_ context.Context, replyID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, ok := s.db.reply(replyID)
	if !ok {
		return ErrNotFound
	}
	s.db.replies[i].Deleted = true
	return nil
}

func (s *MemoryReplyStore) ListByThread(_ context.Context, threadID string) ([]domain.Reply, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	inThread := make(map[string]bool)
	for _, c := range s.db.comments {
		if c.ThreadID == threadID {
			inThread[c.ID] = true
		}
	}
	out := []domain.Reply{}
	for _, r := range s.db.replies {
		if inThread[r.CommentID] {
			r.Username = s.db.username(r.Owner)
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ─── likes ────────────────────────────────────────────────────────────────

type MemoryLikeStore struct{ db *memDB }

func (s *MemoryLikeStore) Exists(_ context.Context, userID, commentID string) (bool, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	_, ok := s.db.likes[likeKey{userID, commentID}]
	return ok, nil
}

func (s *MemoryLikeStore) Insert(_ context.Context, userID, commentID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	k := likeKey{userID, commentID}
	if _, ok := s.db.likes[k]; ok {
		return ErrConflict
	}
	s.db.likes[k] = s.db.now()
	return nil
}

func (s *MemoryLikeStore) Remove(_ context.Context, userID, commentID string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	delete(s.db.likes, likeKey{userID, commentID})
	return nil
}

func (s *MemoryLikeStore) CountsByThread(_ context.Context, threadID string) ([]domain.LikeRow, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []domain.LikeRow{}
	for _, c := range s.db.comments {
		if c.ThreadID != threadID {
			continue
		}
		for k := range s.db.likes {
			if k.commentID == c.ID {
				out = append(out, domain.LikeRow{CommentID: c.ID})
			}
		}
	}
	return out, nil
}

// ─── audit ────────────────────────────────────────────────────────────────

type MemoryAuditStore struct{ db *memDB }

func (s *MemoryAuditStore) Append(_ context.Context, e AuditEntry) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.audit[e.EventID]; ok {
		return false, nil
	}
	s.db.audit[e.EventID] = e
	return true, nil
}
