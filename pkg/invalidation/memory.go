package invalidation

import (
	"context"
	"sync"
)

// MemoryBus is an in-process Bus for tests and single-instance deployments.
// Sends are non-blocking: when a subscriber's buffer is full the delivery is
// dropped for that subscriber rather than stalling the publisher, mirroring
// how a slow consumer falls behind on a real broker. All methods are safe
// for concurrent use.
type MemoryBus struct {
	mu         sync.RWMutex
	topics     map[string]map[*memorySub]struct{}
	bufferSize int
	closed     bool
	done       chan struct{}
	cleanupWg  sync.WaitGroup
}

type memorySub struct {
	ch     chan Delivery
	closed bool
	mu     sync.RWMutex
}

func (s *memorySub) send(d Delivery) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- d:
		return true
	default:
		return false
	}
}

func (s *memorySub) close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

// NewMemoryBus creates an in-memory bus. bufferSize is the per-subscriber
// channel depth; a minimum of 1 is enforced so sends stay non-blocking.
func NewMemoryBus(bufferSize int) *MemoryBus {
	return &MemoryBus{
		topics:     make(map[string]map[*memorySub]struct{}),
		bufferSize: max(bufferSize, 1),
		done:       make(chan struct{}),
	}
}

// Publish delivers payload to every current subscriber of topic.
func (b *MemoryBus) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	for sub := range b.topics[topic] {
		// Each subscriber gets its own copy so a handler mutating the body
		// cannot corrupt deliveries to its peers.
		body := make([]byte, len(payload))
		copy(body, payload)
		sub.send(Delivery{Body: body, Ack: func() {}})
	}
	return nil
}

// Subscribe registers a new subscription for topic. The subscription is
// removed and its channel closed when ctx is cancelled.
func (b *MemoryBus) Subscribe(ctx context.Context, topic string) (<-chan Delivery, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	sub := &memorySub{ch: make(chan Delivery, b.bufferSize)}
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*memorySub]struct{})
	}
	b.topics[topic][sub] = struct{}{}

	if ctx.Done() != nil {
		b.cleanupWg.Add(1)
		go func() {
			defer b.cleanupWg.Done()
			// Also wake on bus shutdown; Close must never wait for
			// caller contexts to be cancelled first.
			select {
			case <-ctx.Done():
				b.unsubscribe(topic, sub)
			case <-b.done:
			}
		}()
	}

	return sub.ch, nil
}

// Close shuts down the bus and closes all subscription channels. Close is
// idempotent.
func (b *MemoryBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)

	for _, subs := range b.topics {
		for sub := range subs {
			sub.close()
		}
	}
	clear(b.topics)
	b.mu.Unlock()

	b.cleanupWg.Wait()
	return nil
}

func (b *MemoryBus) unsubscribe(topic string, sub *memorySub) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if subs, ok := b.topics[topic]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(b.topics, topic)
		}
	}
	sub.close()
}
