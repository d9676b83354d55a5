package invalidation

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBus carries invalidation topics over Redis pub/sub channels. Redis
// pub/sub is fire-and-forget fan-out: every connected subscriber receives
// every message, there is no broker-side acknowledgement, and a subscriber
// that is offline simply misses the message. That is acceptable here
// because caches are rebuildable from the owning service and entries expire
// on their own TTL.
type RedisBus struct {
	client redis.UniversalClient
}

// NewRedisBus wraps an existing Redis client. The bus does not own the
// client lifecycle.
func NewRedisBus(client redis.UniversalClient) *RedisBus {
	return &RedisBus{client: client}
}

// Publish broadcasts payload on the Redis channel named after topic.
func (b *RedisBus) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := b.client.Publish(ctx, topic, payload).Err(); err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return nil
}

// Subscribe opens a Redis subscription for topic and pumps messages into
// the returned channel until ctx is cancelled. Ack is a no-op because Redis
// pub/sub has no redelivery to suppress.
func (b *RedisBus) Subscribe(ctx context.Context, topic string) (<-chan Delivery, error) {
	pubsub := b.client.Subscribe(ctx, topic)

	// Force the SUBSCRIBE round trip so a broken connection surfaces here
	// instead of as a silently empty channel.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, errors.Join(ErrSubscribeFailed, err)
	}

	out := make(chan Delivery)
	go func() {
		defer close(out)
		defer func() { _ = pubsub.Close() }()

		in := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-in:
				if !ok {
					return
				}
				d := Delivery{Body: []byte(msg.Payload), Ack: func() {}}
				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
