package invalidation

import "errors"

var (
	// ErrBusClosed is returned for operations on a closed bus.
	ErrBusClosed = errors.New("invalidation: bus is closed")

	// ErrPublishFailed wraps transport failures while publishing.
	ErrPublishFailed = errors.New("invalidation: publish failed")

	// ErrSubscribeFailed wraps transport failures while subscribing.
	ErrSubscribeFailed = errors.New("invalidation: subscribe failed")
)
