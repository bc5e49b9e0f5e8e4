package discussion

import (
	"context"

	"github.com/example/forum-platform/services/forum/internal/domain"
	"github.com/example/forum-platform/services/forum/internal/plaintext"
)

// Every pipeline checks in the same order: payload validation, then
// existence, then ownership, then the single write. Submitted text is
// reduced to plain text before validation, so markup-only or blank content
// counts as missing.

func (s *Service) AddComment(ctx context.Context, in domain.NewComment) (domain.AddedComment, error) {
	in.Content = plaintext.Clean(in.Content)
	if err := s.check("comment", in); err != nil {
		return domain.AddedComment{}, err
	}
	if err := runGuards(ctx, s.verifyThread(in.ThreadID)); err != nil {
		return domain.AddedComment{}, err
	}
	return s.comments.Insert(ctx, in)
}

func (s *Service) AddReply(ctx context.Context, in domain.NewReply) (domain.AddedReply, error) {
	in.Content = plaintext.Clean(in.Content)
	if err := s.check("reply", in); err != nil {
		return domain.AddedReply{}, err
	}
	err := runGuards(ctx,
		s.verifyThread(in.ThreadID),
		s.verifyCommentInThread(in.CommentID, in.ThreadID),
	)
	if err != nil {
		return domain.AddedReply{}, err
	}
	return s.replies.Insert(ctx, in)
}

func (s *Service) DeleteComment(ctx context.Context, threadID, commentID, userID string) error {
	err := runGuards(ctx,
		s.verifyCommentInThread(commentID, threadID),
		s.verifyCommentOwner(commentID, userID),
	)
	if err != nil {
		return err
	}
	return s.comments.MarkDeleted(ctx, commentID)
}

func (s *Service) DeleteReply(ctx context.Context, threadID, commentID, replyID, userID string) error {
	err := runGuards(ctx,
		s.verifyReplyInCommentInThread(replyID, commentID, threadID),
		s.verifyReplyOwner(replyID, userID),
	)
	if err != nil {
		return err
	}
	return s.replies.MarkDeleted(ctx, replyID)
}

// ToggleLike flips the caller's like on a comment and returns the new state.
//
// The read and the write are not atomic. Two concurrent toggles by the same
// user may both observe NotLiked; the second insert then fails with
// store.ErrConflict and is returned as an infrastructure error.
func (s *Service) ToggleLike(ctx context.Context, threadID, commentID, userID string) (domain.LikeResult, error) {
	err := runGuards(ctx,
		s.verifyThread(threadID),
		s.verifyCommentInThread(commentID, threadID),
	)
	if err != nil {
		return domain.LikeResult{}, err
	}

	present, err := s.likes.Exists(ctx, userID, commentID)
	if err != nil {
		return domain.LikeResult{}, err
	}
	next := likeStateOf(present).Toggle()
	switch next {
	case Liked:
		err = s.likes.Insert(ctx, userID, commentID)
	case NotLiked:
		err = s.likes.Remove(ctx, userID, commentID)
	}
	if err != nil {
		return domain.LikeResult{}, err
	}
	return domain.LikeResult{Liked: next == Liked}, nil
}
