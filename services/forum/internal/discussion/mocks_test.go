package discussion

import (
	"context"
	"sync"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/store"
)

// --- call recorder shared by every mock ---

type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) record(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
}

func (r *recorder) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func (r *recorder) Called(name string) bool {
	for _, c := range r.Calls() {
		if c == name {
			return true
		}
	}
	return false
}

// --- thread store ---

type MockThreadStore struct {
	rec        *recorder
	InsertFunc func(ctx context.Context, t domain.NewThread) (domain.AddedThread, error)
	GetFunc    func(ctx context.Context, threadID string) (domain.Thread, error)
	ExistsFunc func(ctx context.Context, threadID string) (bool, error)
}

func (m *MockThreadStore) Insert(ctx context.Context, t domain.NewThread) (domain.AddedThread, error) {
	m.rec.record("thread.Insert")
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, t)
	}
	return domain.AddedThread{}, nil
}

func (m *MockThreadStore) Get(ctx context.Context, threadID string) (domain.Thread, error) {
	m.rec.record("thread.Get")
	if m.GetFunc != nil {
		return m.GetFunc(ctx, threadID)
	}
	return domain.Thread{ID: threadID}, nil
}

func (m *MockThreadStore) Exists(ctx context.Context, threadID string) (bool, error) {
	m.rec.record("thread.Exists")
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, threadID)
	}
	return true, nil
}

// --- comment store ---

type MockCommentStore struct {
	rec                *recorder
	InsertFunc         func(ctx context.Context, c domain.NewComment) (domain.AddedComment, error)
	ExistsInThreadFunc func(ctx context.Context, commentID, threadID string) (bool, error)
	IsOwnerFunc        func(ctx context.Context, commentID, userID string) (bool, error)
	MarkDeletedFunc    func(ctx context.Context, commentID string) error
	ListByThreadFunc   func(ctx context.Context, threadID string) ([]domain.Comment, error)
}

func (m *MockCommentStore) Insert(ctx context.Context, c domain.NewComment) (domain.AddedComment, error) {
	m.rec.record("comment.Insert")
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, c)
	}
	return domain.AddedComment{}, nil
}

func (m *MockCommentStore) ExistsInThread(ctx context.Context, commentID, threadID string) (bool, error) {
	m.rec.record("comment.ExistsInThread")
	if m.ExistsInThreadFunc != nil {
		return m.ExistsInThreadFunc(ctx, commentID, threadID)
	}
	return true, nil
}

func (m *MockCommentStore) IsOwner(ctx context.Context, commentID, userID string) (bool, error) {
	m.rec.record("comment.IsOwner")
	if m.IsOwnerFunc != nil {
		return m.IsOwnerFunc(ctx, commentID, userID)
	}
	return true, nil
}

func (m *MockCommentStore) MarkDeleted(ctx context.Context, commentID string) error {
	m.rec.record("comment.MarkDeleted")
	if m.MarkDeletedFunc != nil {
		return m.MarkDeletedFunc(ctx, commentID)
	}
	return nil
}

func (m *MockCommentStore) ListByThread(ctx context.Context, threadID string) ([]domain.Comment, error) {
	m.rec.record("comment.ListByThread")
	if m.ListByThreadFunc != nil {
		return m.ListByThreadFunc(ctx, threadID)
	}
	return []domain.Comment{}, nil
}

// --- reply store ---

type MockReplyStore struct {
	rec                 *recorder
	InsertFunc          func(ctx context.Context, r domain.NewReply) (domain.AddedReply, error)
	ExistsInCommentFunc func(ctx context.Context, replyID, commentID, threadID string) (bool, error)
	IsOwnerFunc         func(ctx context.Context, replyID, userID string) (bool, error)
	MarkDeletedFunc     func(ctx context.Context, replyID string) error
	ListByThreadFunc    func(ctx context.Context, threadID string) ([]domain.Reply, error)
}

func (m *MockReplyStore) Insert(ctx context.Context, r domain.NewReply) (domain.AddedReply, error) {
	m.rec.record("reply.Insert")
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, r)
	}
	return domain.AddedReply{}, nil
}

func (m *MockReplyStore) ExistsInComment(ctx context.Context, replyID, commentID, threadID string) (bool, error) {
	m.rec.record("reply.ExistsInComment")
	if m.ExistsInCommentFunc != nil {
		return m.ExistsInCommentFunc(ctx, replyID, commentID, threadID)
	}
	return true, nil
}

func (m *MockReplyStore) IsOwner(ctx context.Context, replyID, userID string) (bool, error) {
	m.rec.record("reply.IsOwner")
	if m.IsOwnerFunc != nil {
		return m.IsOwnerFunc(ctx, replyID, userID)
	}
	return true, nil
}

func (m *MockReplyStore) MarkDeleted(ctx context.Context, replyID string) error {
	m.rec.record("reply.MarkDeleted")
	if m.MarkDeletedFunc != nil {
		return m.MarkDeletedFunc(ctx, replyID)
	}
	return nil
}

func (m *MockReplyStore) ListByThread(ctx context.Context, threadID string) ([]domain.Reply, error) {
	m.rec.record("reply.ListByThread")
	if m.ListByThreadFunc != nil {
		return m.ListByThreadFunc(ctx, threadID)
	}
	return []domain.Reply{}, nil
}

// --- like store ---

type MockLikeStore struct {
	rec                *recorder
	ExistsFunc         func(ctx context.Context, userID, commentID string) (bool, error)
	InsertFunc         func(ctx context.Context, userID, commentID string) error
	RemoveFunc         func(ctx context.Context, userID, commentID string) error
	CountsByThreadFunc func(ctx context.Context, threadID string) ([]domain.LikeRow, error)
}

func (m *MockLikeStore) Exists(ctx context.Context, userID, commentID string) (bool, error) {
	m.rec.record("like.Exists")
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, userID, commentID)
	}
	return false, nil
}

func (m *MockLikeStore) Insert(ctx context.Context, userID, commentID string) error {
	m.rec.record("like.Insert")
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, userID, commentID)
	}
	return nil
}

func (m *MockLikeStore) Remove(ctx context.Context, userID, commentID string) error {
	m.rec.record("like.Remove")
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, commentID)
	}
	return nil
}

func (m *MockLikeStore) CountsByThread(ctx context.Context, threadID string) ([]domain.LikeRow, error) {
	m.rec.record("like.CountsByThread")
	if m.CountsByThreadFunc != nil {
		return m.CountsByThreadFunc(ctx, threadID)
	}
	return []domain.LikeRow{}, nil
}

// mocks bundles one set of stores sharing a recorder.
type mocks struct {
	rec      *recorder
	threads  *MockThreadStore
	comments *MockCommentStore
	replies  *MockReplyStore
	likes    *MockLikeStore
}

func newMocks() *mocks {
	rec := &recorder{}
	return &mocks{
		rec:      rec,
		threads:  &MockThreadStore{rec: rec},
		comments: &MockCommentStore{rec: rec},
		replies:  &MockReplyStore{rec: rec},
		likes:    &MockLikeStore{rec: rec},
	}
}

func (m *mocks) service() *Service {
	return New(store.Stores{
		Threads:  m.threads,
		Comments: m.comments,
		Replies:  m.replies,
		Likes:    m.likes,
	})
}
