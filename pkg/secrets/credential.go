package secrets

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// saltInfo provides domain separation for the HKDF derivation so secrets
// derived here never collide with other uses of the same master secret.
const saltInfo = "tenantcore-s2s-v1"

// derivedSecretSize is the byte length of derived per-tenant secrets.
const derivedSecretSize = 32

// Credential formats the service-to-service credential for the X-Api-Key
// header: "{tenantId}.{secret}".
func Credential(tenantID, secret string) string {
	return tenantID + "." + secret
}

// SplitCredential parses a credential back into tenant identifier and
// secret. The secret part may itself contain dots, so only the first
// separator splits.
func SplitCredential(credential string) (tenantID, secret string, ok bool) {
	for i := 0; i < len(credential); i++ {
		if credential[i] == '.' {
			return credential[:i], credential[i+1:], i > 0 && i < len(credential)-1
		}
	}
	return "", "", false
}

// TenantSecret derives a tenant-specific secret from the shared master
// secret using HKDF-SHA256 with the tenant identifier as salt. The
// derivation is deterministic, so both sides of an inter-service call
// compute the same value without coordination.
func TenantSecret(master, tenantID string) (string, error) {
	if master == "" {
		return "", ErrSecretNotConfigured
	}
	if tenantID == "" {
		return "", errors.Join(ErrKeyDerivationFailed, errors.New("empty tenant id"))
	}

	reader := hkdf.New(sha256.New, []byte(master), []byte(tenantID), []byte(saltInfo))
	derived := make([]byte, derivedSecretSize)
	if _, err := io.ReadFull(reader, derived); err != nil {
		return "", errors.Join(ErrKeyDerivationFailed, err)
	}
	return hex.EncodeToString(derived), nil
}

// VerifyCredential checks a presented credential against the expected
// tenant identifier and secret in constant time.
func VerifyCredential(credential, tenantID, secret string) bool {
	return hmac.Equal([]byte(credential), []byte(Credential(tenantID, secret)))
}
