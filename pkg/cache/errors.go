package cache

import "errors"

var (
	// ErrEncodeEntry is returned when a cache entry cannot be serialized.
	ErrEncodeEntry = errors.New("cache: failed to encode entry")

	// ErrDecodeEntry is returned when stored bytes cannot be deserialized
	// into a cache entry.
	ErrDecodeEntry = errors.New("cache: failed to decode entry")

	// ErrStoreFailure wraps failures of the backing key/value store.
	ErrStoreFailure = errors.New("cache: store operation failed")
)
