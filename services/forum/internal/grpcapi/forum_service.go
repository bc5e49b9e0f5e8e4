package grpcapi

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/internal/platform/metrics"
	"github.com/example/forum-platform/services/forum/internal/discussion"
	"github.com/example/forum-platform/services/forum/internal/domain"
)

// ForumService implements ForumServer on top of the discussion pipelines.
type ForumService struct {
	Forum  *discussion.Service
	Events *events.Publisher
	Log    *zap.Logger
}

var _ ForumServer = (*ForumService)(nil)

// stringFields reads the named string fields of in. An absent field reads
// as "". A present field of another type fails with the wrong-type message
// for kind.
func stringFields(in *structpb.Struct, kind string, names ...string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	for _, name := range names {
		v, ok := in.GetFields()[name]
		if !ok {
			continue
		}
		sv, ok := v.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, errInvalidArgument("VALIDATION", domain.WrongTypeMessage(kind), map[string]string{name: "type"})
		}
		out[name] = sv.StringValue
	}
	return out, nil
}

func (s *ForumService) fail(method string, err error) error {
	if domain.Kind(err) == "internal" && s.Log != nil {
		s.Log.Error("grpc forum call failed", zap.String("method", method), zap.Error(err))
	}
	return toStatus(err)
}

func (s *ForumService) GetThreadDetail(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f, err := stringFields(in, "thread", "thread_id")
	if err != nil {
		return nil, err
	}
	detail, err := s.Forum.GetThreadDetail(ctx, f["thread_id"])
	if err != nil {
		return nil, s.fail("GetThreadDetail", err)
	}

	raw, err := json.Marshal(map[string]any{"thread": detail})
	if err != nil {
		return nil, s.fail("GetThreadDetail", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, s.fail("GetThreadDetail", err)
	}
	return out, nil
}

func (s *ForumService) AddComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	f, err := stringFields(in, "comment", "thread_id", "content")
	if err != nil {
		return nil, err
	}

	added, err := s.Forum.AddComment(ctx, domain.NewComment{Content: f["content"], Owner: userID, ThreadID: f["thread_id"]})
	metrics.RecordMutation("add_comment", domain.Kind(err))
	if err != nil {
		return nil, s.fail("AddComment", err)
	}
	s.Events.Publish(events.SubjectCommentAdded, userID, map[string]any{"thread_id": f["thread_id"], "comment_id": added.ID})
	return structpb.NewStruct(map[string]any{
		"addedComment": map[string]any{"id": added.ID, "content": added.Content, "owner": added.Owner},
	})
}

func (s *ForumService) DeleteComment(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	f, err := stringFields(in, "comment", "thread_id", "comment_id")
	if err != nil {
		return nil, err
	}

	err = s.Forum.DeleteComment(ctx, f["thread_id"], f["comment_id"], userID)
	metrics.RecordMutation("delete_comment", domain.Kind(err))
	if err != nil {
		return nil, s.fail("DeleteComment", err)
	}
	s.Events.Publish(events.SubjectCommentDeleted, userID, map[string]any{"thread_id": f["thread_id"], "comment_id": f["comment_id"]})
	return structpb.NewStruct(map[string]any{"status": "success"})
}

func (s *ForumService) AddReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	f, err := stringFields(in, "reply", "thread_id", "comment_id", "content")
	if err != nil {
		return nil, err
	}

	added, err := s.Forum.AddReply(ctx, domain.NewReply{
		Content:   f["content"],
		Owner:     userID,
		CommentID: f["comment_id"],
		ThreadID:  f["thread_id"],
	})
	metrics.RecordMutation("add_reply", domain.Kind(err))
	if err != nil {
		return nil, s.fail("AddReply", err)
	}
	s.Events.Publish(events.SubjectReplyAdded, userID, map[string]any{
		"thread_id": f["thread_id"], "comment_id": f["comment_id"], "reply_id": added.ID,
	})
	return structpb.NewStruct(map[string]any{
		"addedReply": map[string]any{"id": added.ID, "content": added.Content, "owner": added.Owner},
	})
}

func (s *ForumService) DeleteReply(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	f, err := stringFields(in, "reply", "thread_id", "comment_id", "reply_id")
	if err != nil {
		return nil, err
	}

	err = s.Forum.DeleteReply(ctx, f["thread_id"], f["comment_id"], f["reply_id"], userID)
	metrics.RecordMutation("delete_reply", domain.Kind(err))
	if err != nil {
		return nil, s.fail("DeleteReply", err)
	}
	s.Events.Publish(events.SubjectReplyDeleted, userID, map[string]any{
		"thread_id": f["thread_id"], "comment_id": f["comment_id"], "reply_id": f["reply_id"],
	})
	return structpb.NewStruct(map[string]any{"status": "success"})
}

func (s *ForumService) ToggleLike(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	f, err := stringFields(in, "like", "thread_id", "comment_id")
	if err != nil {
		return nil, err
	}

	res, err := s.Forum.ToggleLike(ctx, f["thread_id"], f["comment_id"], userID)
	metrics.RecordMutation("toggle_like", domain.Kind(err))
	if err != nil {
		return nil, s.fail("ToggleLike", err)
	}
	metrics.RecordLikeToggle(res.Liked)
	s.Events.Publish(events.SubjectLikeToggled, userID, map[string]any{
		"thread_id": f["thread_id"], "comment_id": f["comment_id"], "liked": res.Liked,
	})
	return structpb.NewStruct(map[string]any{"status": "success", "liked": res.Liked})
}
