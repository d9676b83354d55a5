package invalidation

import (
	"context"
	"encoding/json"
	"errors"
)

// Publisher broadcasts change notifications for one entity type. The
// owning service calls it after every successful create, update, or delete
// that affects cached state elsewhere.
type Publisher[T any] struct {
	topic string
	bus   Bus
}

// NewPublisher creates a publisher for the given topic.
func NewPublisher[T any](topic string, bus Bus) *Publisher[T] {
	return &Publisher[T]{topic: topic, bus: bus}
}

// Modify announces that data was created or updated. data must carry the
// full updated entity.
func (p *Publisher[T]) Modify(ctx context.Context, tenantID string, data T) error {
	return p.publish(ctx, Message[T]{TopicType: TypeModify, Data: data, TenantID: tenantID})
}

// Remove announces that data was deleted. Only the identity field of data
// needs to be populated.
func (p *Publisher[T]) Remove(ctx context.Context, tenantID string, data T) error {
	return p.publish(ctx, Message[T]{TopicType: TypeRemove, Data: data, TenantID: tenantID})
}

func (p *Publisher[T]) publish(ctx context.Context, msg Message[T]) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return errors.Join(ErrPublishFailed, err)
	}
	return p.bus.Publish(ctx, p.topic, payload)
}
