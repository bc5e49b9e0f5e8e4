package discussion

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/plaintext"
	"github.com/example/forum-platform/services/forum/internal/store"
)

func (s *Service) AddThread(ctx context.Context, in domain.NewThread) (domain.AddedThread, error) {
	in.Title = plaintext.Clean(in.Title)
	in.Body = plaintext.Clean(in.Body)
	if err := s.check("thread", in); err != nil {
		return domain.AddedThread{}, err
	}
	return s.threads.Insert(ctx, in)
}

// GetThreadDetail verifies the thread, then loads the thread row, its
// comments, replies and likes concurrently and composes them.
func (s *Service) GetThreadDetail(ctx context.Context, threadID string) (domain.ThreadDetail, error) {
	if err := runGuards(ctx, s.verifyThread(threadID)); err != nil {
		return domain.ThreadDetail{}, err
	}

	var (
		thread   domain.Thread
		comments []domain.Comment
		replies  []domain.Reply
		likes    []domain.LikeRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.threads.Get(gctx, threadID)
		if errors.Is(err, store.ErrNotFound) {
			return &domain.NotFoundError{Message: domain.MsgThreadNotFound}
		}
		thread = t
		return err
	})
	g.Go(func() (err error) {
		comments, err = s.comments.ListByThread(gctx, threadID)
		return err
	})
	g.Go(func() (err error) {
		likes, err = s.likes.CountsByThread(gctx, threadID)
		return err
	})
	g.Go(func() (err error) {
		replies, err = s.replies.ListByThread(gctx, threadID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ThreadDetail{}, err
	}

	return ComposeThreadDetail(thread, comments, replies, likes), nil
}
