// Package events publishes forum domain events to NATS JetStream.
// Publishing is fire-and-forget: failures are logged and never surface to
// the request that produced the event.
package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// StreamName is the JetStream stream holding every forum.* subject.
const StreamName = "FORUM"

// Subject constants for every forum event type.
const (
	SubjectAll            = "forum.>"
	SubjectThreadCreated  = "forum.thread.created"
	SubjectCommentAdded   = "forum.comment.added"
	SubjectCommentDeleted = "forum.comment.deleted"
	SubjectReplyAdded     = "forum.reply.added"
	SubjectReplyDeleted   = "forum.reply.deleted"
	SubjectLikeToggled    = "forum.like.toggled"
)

// Event is the envelope sent to all forum.* subjects.
type Event struct {
	EventID    string         `json:"event_id"`
	Subject    string         `json:"subject"`
	UserID     string         `json:"user_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Publisher publishes forum events to NATS JetStream.
// The zero value and a nil pointer are both safe no-op stubs.
type Publisher struct {
	js  nats.JetStreamContext
	log *zap.Logger
}

// New creates a Publisher using an existing JetStream context.
// Pass js=nil to get a no-op stub.
func New(js nats.JetStreamContext, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{js: js, log: log}
}

// NewEvent stamps a fresh envelope.
func NewEvent(subject, userID string, props map[string]any) Event {
	return Event{
		EventID:    uuid.NewString(),
		Subject:    subject,
		UserID:     userID,
		OccurredAt: time.Now().UTC(),
		Properties: props,
	}
}

// Publish sends an event asynchronously. Safe to call with a nil receiver.
func (p *Publisher) Publish(subject, userID string, props map[string]any) {
	if p == nil || p.js == nil {
		return
	}
	ev := NewEvent(subject, userID, props)
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("events: marshal failed", zap.String("subject", subject), zap.Error(err))
		return
	}
	if _, err := p.js.PublishAsync(subject, data, nats.MsgId(ev.EventID)); err != nil {
		p.log.Warn("events: publish failed", zap.String("subject", subject), zap.Error(err))
	}
}
