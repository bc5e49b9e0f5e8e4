// Package worker consumes forum events from JetStream and appends them to
// the audit log.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/forum-platform/internal/platform/events"
	"github.com/example/forum-platform/internal/platform/metrics"
	"github.com/example/forum-platform/services/forum/internal/store"
)

const durableName = "forum_audit"

// errMalformed marks a message that can never be processed.
var errMalformed = errors.New("malformed event")

type AuditConsumer struct {
	Audit         store.AuditStore
	Log           *zap.Logger
	BatchSize     int
	BatchInterval time.Duration
}

// handle decodes one event and appends it to the audit log. It reports
// whether the event was new. Malformed payloads wrap errMalformed.
func (c *AuditConsumer) handle(ctx context.Context, subject string, data []byte) (bool, error) {
	var ev events.Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return false, fmt.Errorf("%w: %v", errMalformed, err)
	}
	if strings.TrimSpace(ev.EventID) == "" {
		return false, fmt.Errorf("%w: missing event_id", errMalformed)
	}
	if ev.Subject == "" {
		ev.Subject = subject
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(ev.Properties)
	if err != nil {
		return false, fmt.Errorf("%w: %v", errMalformed, err)
	}
	return c.Audit.Append(ctx, store.AuditEntry{
		EventID:    ev.EventID,
		Subject:    ev.Subject,
		UserID:     ev.UserID,
		OccurredAt: ev.OccurredAt,
		Payload:    payload,
	})
}

// ackable is the subset of *nats.Msg the settle step needs.
type ackable interface {
	Ack(opts ...nats.AckOpt) error
	Nak(opts ...nats.AckOpt) error
	Term(opts ...nats.AckOpt) error
}

// settle acks, terminates or naks msg based on the handle outcome.
func (c *AuditConsumer) settle(msg ackable, subject string, inserted bool, err error) {
	var settleErr error
	switch {
	case errors.Is(err, errMalformed):
		metrics.RecordAuditEvent("malformed")
		c.Log.Warn("audit_consumer: dropping malformed event", zap.String("subject", subject), zap.Error(err))
		settleErr = msg.Term()
	case err != nil:
		metrics.RecordAuditEvent("failed")
		c.Log.Error("audit_consumer: append failed", zap.String("subject", subject), zap.Error(err))
		settleErr = msg.Nak()
	default:
		if inserted {
			metrics.RecordAuditEvent("stored")
		} else {
			metrics.RecordAuditEvent("duplicate")
		}
		settleErr = msg.Ack()
	}
	if settleErr != nil {
		c.Log.Warn("audit_consumer: settle failed", zap.String("subject", subject), zap.Error(settleErr))
	}
}

// Run pull-subscribes to every forum subject and processes batches until
// ctx is cancelled.
func (c *AuditConsumer) Run(ctx context.Context, js nats.JetStreamContext) error {
	if c.Log == nil {
		c.Log = zap.NewNop()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.BatchInterval <= 0 {
		c.BatchInterval = 2 * time.Second
	}

	sub, err := js.PullSubscribe(events.SubjectAll, durableName, nats.BindStream(events.StreamName))
	if err != nil {
		return fmt.Errorf("audit_consumer: subscribe: %w", err)
	}
	defer func() { _ = sub.Unsubscribe() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		msgs, err := sub.Fetch(c.BatchSize, nats.MaxWait(c.BatchInterval))
		if err != nil {
			if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			c.Log.Warn("audit_consumer: fetch failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, m := range msgs {
			inserted, err := c.handle(ctx, m.Subject, m.Data)
			c.settle(m, m.Subject, inserted, err)
		}
	}
}
