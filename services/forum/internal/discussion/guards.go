package discussion

import (
	"context"

	"github.com/example/forum-platform/services/forum/internal/domain"
)

// guard is one step of a verification chain.
type guard func(ctx context.Context) error

// runGuards executes guards in order and stops at the first failure.
func runGuards(ctx context.Context, guards ...guard) error {
	for _, g := range guards {
		if err := g(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) verifyThread(threadID string) guard {
	return func(ctx context.Context) error {
		ok, err := s.threads.Exists(ctx, threadID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.NotFoundError{Message: domain.MsgThreadNotFound}
		}
		return nil
	}
}

// verifyCommentInThread treats a comment of another thread exactly like a
// missing one.
func (s *Service) verifyCommentInThread(commentID, threadID string) guard {
	return func(ctx context.Context) error {
		ok, err := s.comments.ExistsInThread(ctx, commentID, threadID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.NotFoundError{Message: domain.MsgCommentNotFound}
		}
		return nil
	}
}

func (s *Service) verifyReplyInCommentInThread(replyID, commentID, threadID string) guard {
	return func(ctx context.Context) error {
		ok, err := s.replies.ExistsInComment(ctx, replyID, commentID, threadID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.NotFoundError{Message: domain.MsgReplyNotFound}
		}
		return nil
	}
}

func (s *Service) verifyCommentOwner(commentID, userID string) guard {
	return func(ctx context.Context) error {
		ok, err := s.comments.IsOwner(ctx, commentID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.AuthorizationError{Message: domain.MsgNotCommentOwner}
		}
		return nil
	}
}

func (s *Service) verifyReplyOwner(replyID, userID string) guard {
	return func(ctx context.Context) error {
		ok, err := s.replies.IsOwner(ctx, replyID, userID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.AuthorizationError{Message: domain.MsgNotReplyOwner}
		}
		return nil
	}
}
