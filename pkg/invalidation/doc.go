// Package invalidation implements the cross-instance cache-invalidation
// protocol. Each entity type owns one named topic; the service owning an
// entity publishes a change message after every successful mutation, and a
// dispatcher at every subscribing instance applies the message to its local
// cache so caches converge without synchronous coordination.
//
// The delivery model is at-least-once with no ordering guarantee across
// publishers or instances. Because cache updates are unconditional
// overwrites, two Modify messages for the same key leave the cache holding
// whichever was processed last, which may not be whichever was published
// last. This weak-consistency window is an accepted property of the
// protocol, not a defect to compensate for.
//
// # Wiring
//
//	bus := invalidation.NewRedisBus(redisClient)
//	d := invalidation.NewDispatcher(apikey.Topic, apiKeyCache,
//		func(k apikey.ApiKey) string { return k.ID })
//	go d.Run(ctx, bus)
//
//	// owning service, after a successful update:
//	pub := invalidation.NewPublisher[apikey.ApiKey](apikey.Topic, bus)
//	_ = pub.Modify(ctx, tenantID, updated)
package invalidation
