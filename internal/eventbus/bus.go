package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/polyglot/api/internal/models"
	"go.uber.org/zap"
)

const (
	// recentPoll bounds each wait in Recent so it returns once the stream is drained
	recentPoll = 200 * time.Millisecond
	// defaultPublishTimeout bounds the wait for the stream's publish ack
	defaultPublishTimeout = 2 * time.Second
)

// Bus publishes and replays generation events. A nil *Bus is a no-op.
type Bus struct {
	nc     *nats.Conn
	js     nats.JetStreamContext
	logger *zap.Logger

	publishTimeout time.Duration
}

// Enabled reports whether events are actually sent
func (b *Bus) Enabled() bool {
	return b != nil
}

// Publish sends a GenerationEvent for result. The message ID is the result
// ID so JetStream drops duplicates. The ack wait is bounded even when ctx
// has no deadline.
func (b *Bus) Publish(ctx context.Context, result models.GenerationResult) error {
	if b == nil {
		return nil
	}

	payload, err := encodeEvent(result)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, b.publishTimeout)
	defer cancel()

	_, err = b.js.Publish(SubjectGenerationCompleted, payload,
		nats.Context(ctx),
		nats.MsgId(result.ID),
	)
	return err
}

// Recent replays up to limit events still retained by the stream
func (b *Bus) Recent(ctx context.Context, limit int) ([]models.GenerationEvent, error) {
	if b == nil {
		return nil, nil
	}

	sub, err := b.js.SubscribeSync(SubjectGenerationCompleted,
		nats.BindStream(StreamName),
		nats.DeliverAll(),
		nats.AckNone(),
	)
	if err != nil {
		return nil, err
	}
	defer sub.Unsubscribe()

	var events []models.GenerationEvent
	for len(events) < limit {
		pollCtx, cancel := context.WithTimeout(ctx, recentPoll)
		msg, err := sub.NextMsgWithContext(pollCtx)
		cancel()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, nats.ErrTimeout) {
			break
		}
		if err != nil {
			return events, err
		}

		var ev models.GenerationEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			b.logger.Warn("skipping malformed event", zap.String("subject", msg.Subject), zap.Error(err))
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// Ping reports whether the connection is up
func (b *Bus) Ping(ctx context.Context) error {
	if b == nil {
		return nil
	}
	if !b.nc.IsConnected() {
		return nats.ErrConnectionClosed
	}
	return b.nc.FlushWithContext(ctx)
}

func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.nc.Close()
}

func encodeEvent(result models.GenerationResult) ([]byte, error) {
	return json.Marshal(models.NewGenerationEvent(result))
}
