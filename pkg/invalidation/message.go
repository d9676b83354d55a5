package invalidation

// Type discriminates change notifications on an invalidation topic.
type Type string

const (
	// TypeModify announces that the entity was created or updated; Data
	// carries the full updated entity.
	TypeModify Type = "Modify"

	// TypeRemove announces that the entity was deleted; Data carries at
	// least the identity field, other fields may be zero.
	TypeRemove Type = "Remove"
)

// Message is the wire payload broadcast on an entity's invalidation topic.
// The JSON field names are the inter-service contract shared by every
// publisher and subscriber.
type Message[T any] struct {
	TopicType Type   `json:"topicType"`
	Data      T      `json:"data"`
	TenantID  string `json:"tenantId"`
}
