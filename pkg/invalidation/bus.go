package invalidation

import "context"

// Delivery is one message received from a topic. Ack must be called after
// the message has been handled (including the deliberate no-op for
// malformed messages) so the underlying bus does not redeliver it forever.
// For transports without explicit acknowledgement, Ack is a no-op.
type Delivery struct {
	Body []byte
	Ack  func()
}

// Bus is the transport contract for invalidation topics. Implementations
// must deliver every published message to every active subscription of the
// topic, at least once, with no ordering guarantee.
type Bus interface {
	// Publish broadcasts payload to all subscribers of topic.
	Publish(ctx context.Context, topic string, payload []byte) error

	// Subscribe returns a channel of deliveries for topic. The channel is
	// closed when ctx is cancelled or the bus is closed.
	Subscribe(ctx context.Context, topic string) (<-chan Delivery, error)
}
