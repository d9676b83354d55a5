package invalidation

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/cloudforge/tenantcore/pkg/cache"
)

// Dispatcher applies invalidation messages for one entity type to the local
// cache of the instance it runs in. One dispatcher is instantiated per
// entity type per service instance.
type Dispatcher[T any] struct {
	topic    string
	cache    *cache.Service[T]
	identity func(T) string
	log      *slog.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption[T any] func(*Dispatcher[T])

// WithDispatcherLogger sets the logger used for drop warnings and apply
// failures.
func WithDispatcherLogger[T any](log *slog.Logger) DispatcherOption[T] {
	return func(d *Dispatcher[T]) {
		if log != nil {
			d.log = log
		}
	}
}

// NewDispatcher creates a dispatcher for the given topic. identity extracts
// the natural identity field from the entity; it is the same value key
// derivation uses on the publishing side, so both ends address the same
// cache entry.
func NewDispatcher[T any](topic string, c *cache.Service[T], identity func(T) string, opts ...DispatcherOption[T]) *Dispatcher[T] {
	d := &Dispatcher[T]{
		topic:    topic,
		cache:    c,
		identity: identity,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Topic returns the topic this dispatcher consumes.
func (d *Dispatcher[T]) Topic() string {
	return d.topic
}

// Handle applies a single invalidation message to the local cache.
//
// A message whose identity field is empty cannot be mapped to a cache key;
// applying it would poison the cache under a garbage key, so it is logged
// and dropped. The caller still acknowledges it to stop redelivery.
func (d *Dispatcher[T]) Handle(ctx context.Context, msg Message[T]) error {
	id := d.identity(msg.Data)
	if id == "" {
		d.log.WarnContext(ctx, "dropping invalidation message with empty identity",
			slog.String("topic", d.topic),
			slog.String("topic_type", string(msg.TopicType)),
			slog.String("tenant_id", msg.TenantID))
		return nil
	}

	key := d.cache.Key(id)
	switch msg.TopicType {
	case TypeRemove:
		return d.cache.Clear(ctx, key)
	case TypeModify:
		// Unconditional overwrite: whichever message is processed last
		// wins, regardless of publish order.
		return d.cache.Update(ctx, key, msg.Data)
	default:
		d.log.WarnContext(ctx, "dropping invalidation message with unknown type",
			slog.String("topic", d.topic),
			slog.String("topic_type", string(msg.TopicType)))
		return nil
	}
}

// Run subscribes to the dispatcher's topic on bus and applies deliveries
// until ctx is cancelled or the subscription channel closes. Every delivery
// is acknowledged after handling, including malformed ones, so the bus does
// not redeliver indefinitely.
func (d *Dispatcher[T]) Run(ctx context.Context, bus Bus) error {
	deliveries, err := bus.Subscribe(ctx, d.topic)
	if err != nil {
		return err
	}
	return d.Consume(ctx, deliveries)
}

// Consume applies deliveries from an already-established subscription.
// Callers that need the subscription in place before publishing subscribe
// themselves and hand the channel over instead of using Run.
func (d *Dispatcher[T]) Consume(ctx context.Context, deliveries <-chan Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return nil
			}
			d.dispatch(ctx, delivery)
		}
	}
}

func (d *Dispatcher[T]) dispatch(ctx context.Context, delivery Delivery) {
	defer delivery.Ack()

	var msg Message[T]
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		// Undecodable payloads get the same treatment as empty identities:
		// warn, ack, drop.
		d.log.WarnContext(ctx, "dropping undecodable invalidation message",
			slog.String("topic", d.topic), slog.Any("error", err))
		return
	}

	if err := d.Handle(ctx, msg); err != nil {
		// Cache-apply failures are technical; the entry converges via TTL
		// or the next message, so log and move on rather than nack-loop.
		d.log.ErrorContext(ctx, "failed to apply invalidation message",
			slog.String("topic", d.topic),
			slog.String("topic_type", string(msg.TopicType)),
			slog.Any("error", err))
	}
}
