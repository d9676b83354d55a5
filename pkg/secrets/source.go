package secrets

import (
	"context"
	"os"
)

// WellKnownKey is the configuration key under which every service of the
// platform finds the shared service-to-service secret.
const WellKnownKey = "SERVICE_API_SECRET"

// Source yields the shared service-to-service secret. A retrieval failure
// is infrastructure trouble and surfaces to callers as a technical
// failure, never as an empty credential.
type Source interface {
	ServiceSecret(ctx context.Context) (string, error)
}

// EnvSource reads the secret from the process environment. The lookup runs
// on every call so secret rotation via environment reload does not require
// a restart of the consuming code path.
type EnvSource struct {
	// Key is the environment variable to read. Empty selects WellKnownKey.
	Key string
}

// NewEnvSource creates an environment-backed source.
func NewEnvSource(key string) *EnvSource {
	if key == "" {
		key = WellKnownKey
	}
	return &EnvSource{Key: key}
}

// ServiceSecret returns the configured secret or ErrSecretNotConfigured.
func (s *EnvSource) ServiceSecret(ctx context.Context) (string, error) {
	value := os.Getenv(s.Key)
	if value == "" {
		return "", ErrSecretNotConfigured
	}
	return value, nil
}

// StaticSource returns a fixed secret. Intended for tests.
type StaticSource string

// ServiceSecret returns the fixed secret or ErrSecretNotConfigured when
// empty.
func (s StaticSource) ServiceSecret(ctx context.Context) (string, error) {
	if s == "" {
		return "", ErrSecretNotConfigured
	}
	return string(s), nil
}
