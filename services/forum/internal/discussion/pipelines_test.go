package discussion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/store"
)

func TestAddComment(t *testing.T) {
	ctx := context.Background()

	t.Run("validates, verifies thread, then inserts", func(t *testing.T) {
		m := newMocks()
		m.comments.InsertFunc = func(_ context.Context, c domain.NewComment) (domain.AddedComment, error) {
			assert.Equal(t, "thread-123", c.ThreadID)
			return domain.AddedComment{ID: "comment-1", Content: c.Content, Owner: c.Owner}, nil
		}

		got, err := m.service().AddComment(ctx, domain.NewComment{Content: "sebuah comment", Owner: "user-1", ThreadID: "thread-123"})

		require.NoError(t, err)
		assert.Equal(t, domain.AddedComment{ID: "comment-1", Content: "sebuah comment", Owner: "user-1"}, got)
		assert.Equal(t, []string{"thread.Exists", "comment.Insert"}, m.rec.Calls())
	})

	t.Run("missing content fails before any store call", func(t *testing.T) {
		m := newMocks()
		m.threads.ExistsFunc = func(context.Context, string) (bool, error) { return false, nil }

		_, err := m.service().AddComment(ctx, domain.NewComment{Owner: "user-1", ThreadID: "thread-404"})

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, domain.MissingPropertyMessage("comment"), verr.Message)
		assert.Equal(t, "required", verr.Fields["content"])
		assert.Empty(t, m.rec.Calls())
	})

	t.Run("unknown thread is not found", func(t *testing.T) {
		m := newMocks()
		m.threads.ExistsFunc = func(context.Context, string) (bool, error) { return false, nil }

		_, err := m.service().AddComment(ctx, domain.NewComment{Content: "x", Owner: "user-1", ThreadID: "thread-404"})

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.MsgThreadNotFound, nf.Message)
		assert.False(t, m.rec.Called("comment.Insert"))
	})

	t.Run("store failure propagates unchanged", func(t *testing.T) {
		m := newMocks()
		boom := errors.New("connection reset")
		m.threads.ExistsFunc = func(context.Context, string) (bool, error) { return false, boom }

		_, err := m.service().AddComment(ctx, domain.NewComment{Content: "x", Owner: "user-1", ThreadID: "thread-1"})

		assert.Same(t, boom, err)
	})
}

func TestAddComment_StoresPlainText(t *testing.T) {
	ctx := context.Background()

	t.Run("text outside tags is stored as written", func(t *testing.T) {
		m := newMocks()
		var stored string
		m.comments.InsertFunc = func(_ context.Context, c domain.NewComment) (domain.AddedComment, error) {
			stored = c.Content
			return domain.AddedComment{ID: "comment-1", Content: c.Content, Owner: c.Owner}, nil
		}

		got, err := m.service().AddComment(ctx, domain.NewComment{
			Content: `Tom & Jerry: 2 < 3 "ok" <script>alert(1)</script>`, Owner: "user-1", ThreadID: "thread-1",
		})

		require.NoError(t, err)
		assert.Equal(t, `Tom & Jerry: 2 < 3 "ok"`, stored)
		assert.Equal(t, stored, got.Content)
	})

	for _, blank := range []string{"   ", "<script>alert(1)</script>", "<b></b>"} {
		t.Run("blank after cleaning: "+blank, func(t *testing.T) {
			m := newMocks()

			_, err := m.service().AddComment(ctx, domain.NewComment{Content: blank, Owner: "user-1", ThreadID: "thread-1"})

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "required", verr.Fields["content"])
			assert.Empty(t, m.rec.Calls())
		})
	}
}

func TestAddThread_StoresPlainText(t *testing.T) {
	m := newMocks()
	var stored domain.NewThread
	m.threads.InsertFunc = func(_ context.Context, in domain.NewThread) (domain.AddedThread, error) {
		stored = in
		return domain.AddedThread{ID: "thread-1", Title: in.Title, Owner: in.Owner}, nil
	}

	_, err := m.service().AddThread(context.Background(), domain.NewThread{
		Title: " <i>Q&A</i> ", Body: "a <b>bold</b> claim", Owner: "user-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "Q&A", stored.Title)
	assert.Equal(t, "a bold claim", stored.Body)
}

func TestAddReply(t *testing.T) {
	ctx := context.Background()
	valid := domain.NewReply{Content: "sebuah balasan", Owner: "user-1", CommentID: "comment-1", ThreadID: "thread-1"}

	t.Run("checks thread then comment then inserts", func(t *testing.T) {
		m := newMocks()
		m.replies.InsertFunc = func(_ context.Context, r domain.NewReply) (domain.AddedReply, error) {
			return domain.AddedReply{ID: "reply-1", Content: r.Content, Owner: r.Owner}, nil
		}

		got, err := m.service().AddReply(ctx, valid)

		require.NoError(t, err)
		assert.Equal(t, "reply-1", got.ID)
		assert.Equal(t, []string{"thread.Exists", "comment.ExistsInThread", "reply.Insert"}, m.rec.Calls())
	})

	t.Run("empty content fails with validation before existence checks", func(t *testing.T) {
		m := newMocks()
		m.threads.ExistsFunc = func(context.Context, string) (bool, error) { return false, nil }
		in := valid
		in.Content = ""

		_, err := m.service().AddReply(ctx, in)

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, domain.MissingPropertyMessage("reply"), verr.Message)
		assert.False(t, m.rec.Called("thread.Exists"))
		assert.False(t, m.rec.Called("comment.ExistsInThread"))
	})

	t.Run("comment outside thread is not found", func(t *testing.T) {
		m := newMocks()
		m.comments.ExistsInThreadFunc = func(context.Context, string, string) (bool, error) { return false, nil }

		_, err := m.service().AddReply(ctx, valid)

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.MsgCommentNotFound, nf.Message)
		assert.False(t, m.rec.Called("reply.Insert"))
	})
}

func TestDeleteComment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		m := newMocks()
		var deleted string
		m.comments.MarkDeletedFunc = func(_ context.Context, id string) error { deleted = id; return nil }

		err := m.service().DeleteComment(ctx, "thread-1", "comment-1", "user-1")

		require.NoError(t, err)
		assert.Equal(t, "comment-1", deleted)
		assert.Equal(t, []string{"comment.ExistsInThread", "comment.IsOwner", "comment.MarkDeleted"}, m.rec.Calls())
	})

	t.Run("non-owner is forbidden after existence succeeds", func(t *testing.T) {
		m := newMocks()
		m.comments.IsOwnerFunc = func(context.Context, string, string) (bool, error) { return false, nil }

		err := m.service().DeleteComment(ctx, "thread-1", "comment-1", "user-2")

		var az *domain.AuthorizationError
		require.ErrorAs(t, err, &az)
		assert.Equal(t, domain.MsgNotCommentOwner, az.Message)
		assert.Equal(t, []string{"comment.ExistsInThread", "comment.IsOwner"}, m.rec.Calls())
	})

	t.Run("missing comment never checks ownership", func(t *testing.T) {
		m := newMocks()
		m.comments.ExistsInThreadFunc = func(context.Context, string, string) (bool, error) { return false, nil }

		err := m.service().DeleteComment(ctx, "thread-1", "comment-404", "user-1")

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.MsgCommentNotFound, nf.Message)
		assert.False(t, m.rec.Called("comment.IsOwner"))
		assert.False(t, m.rec.Called("comment.MarkDeleted"))
	})
}

func TestDeleteReply(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		m := newMocks()
		m.replies.ExistsInCommentFunc = func(_ context.Context, replyID, commentID, threadID string) (bool, error) {
			assert.Equal(t, "reply-1", replyID)
			assert.Equal(t, "comment-1", commentID)
			assert.Equal(t, "thread-1", threadID)
			return true, nil
		}

		err := m.service().DeleteReply(ctx, "thread-1", "comment-1", "reply-1", "user-1")

		require.NoError(t, err)
		assert.Equal(t, []string{"reply.ExistsInComment", "reply.IsOwner", "reply.MarkDeleted"}, m.rec.Calls())
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		m := newMocks()
		m.replies.IsOwnerFunc = func(context.Context, string, string) (bool, error) { return false, nil }

		err := m.service().DeleteReply(ctx, "thread-1", "comment-1", "reply-1", "user-2")

		var az *domain.AuthorizationError
		require.ErrorAs(t, err, &az)
		assert.Equal(t, domain.MsgNotReplyOwner, az.Message)
		assert.False(t, m.rec.Called("reply.MarkDeleted"))
	})

	t.Run("missing reply never checks ownership", func(t *testing.T) {
		m := newMocks()
		m.replies.ExistsInCommentFunc = func(context.Context, string, string, string) (bool, error) { return false, nil }

		err := m.service().DeleteReply(ctx, "thread-1", "comment-1", "reply-404", "user-1")

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.MsgReplyNotFound, nf.Message)
		assert.False(t, m.rec.Called("reply.IsOwner"))
	})
}

func TestToggleLike(t *testing.T) {
	ctx := context.Background()

	t.Run("absent like is inserted", func(t *testing.T) {
		m := newMocks()

		res, err := m.service().ToggleLike(ctx, "thread-1", "comment-1", "user-1")

		require.NoError(t, err)
		assert.True(t, res.Liked)
		assert.Equal(t, []string{"thread.Exists", "comment.ExistsInThread", "like.Exists", "like.Insert"}, m.rec.Calls())
	})

	t.Run("present like is removed", func(t *testing.T) {
		m := newMocks()
		m.likes.ExistsFunc = func(context.Context, string, string) (bool, error) { return true, nil }

		res, err := m.service().ToggleLike(ctx, "thread-1", "comment-1", "user-1")

		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.True(t, m.rec.Called("like.Remove"))
		assert.False(t, m.rec.Called("like.Insert"))
	})

	t.Run("missing thread rejects before toggling", func(t *testing.T) {
		m := newMocks()
		m.threads.ExistsFunc = func(context.Context, string) (bool, error) { return false, nil }

		_, err := m.service().ToggleLike(ctx, "thread-404", "comment-1", "user-1")

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.MsgThreadNotFound, nf.Message)
		assert.Equal(t, []string{"thread.Exists"}, m.rec.Calls())
	})

	t.Run("cross-thread comment rejects before toggling", func(t *testing.T) {
		m := newMocks()
		m.comments.ExistsInThreadFunc = func(context.Context, string, string) (bool, error) { return false, nil }

		_, err := m.service().ToggleLike(ctx, "thread-1", "comment-other", "user-1")

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.MsgCommentNotFound, nf.Message)
		assert.False(t, m.rec.Called("like.Exists"))
	})

	t.Run("insert conflict surfaces unchanged", func(t *testing.T) {
		m := newMocks()
		m.likes.InsertFunc = func(context.Context, string, string) error { return store.ErrConflict }

		_, err := m.service().ToggleLike(ctx, "thread-1", "comment-1", "user-1")

		assert.ErrorIs(t, err, store.ErrConflict)
	})
}

func TestToggleLike_RoundTripWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory()
	svc := New(s)

	u, err := s.Users.Create(ctx, store.CreateUserParams{Username: "dicoding", PasswordHash: "h", Fullname: "D"})
	require.NoError(t, err)
	th, err := svc.AddThread(ctx, domain.NewThread{Title: "t", Body: "b", Owner: u.ID})
	require.NoError(t, err)
	c, err := svc.AddComment(ctx, domain.NewComment{Content: "c", Owner: u.ID, ThreadID: th.ID})
	require.NoError(t, err)

	first, err := svc.ToggleLike(ctx, th.ID, c.ID, u.ID)
	require.NoError(t, err)
	assert.True(t, first.Liked)

	second, err := svc.ToggleLike(ctx, th.ID, c.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, second.Liked)

	present, err := s.Likes.Exists(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, present)
}
