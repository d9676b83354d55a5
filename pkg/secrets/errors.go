package secrets

import "errors"

var (
	// ErrSecretNotConfigured is returned when the well-known configuration
	// key holds no secret.
	ErrSecretNotConfigured = errors.New("secrets: service secret is not configured")

	// ErrKeyDerivationFailed is returned when per-tenant secret derivation
	// fails.
	ErrKeyDerivationFailed = errors.New("secrets: key derivation failed")
)
