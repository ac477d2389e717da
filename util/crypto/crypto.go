// Package crypto provides password digests and session key derivation.
package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	sessionAuthKeyLen = 64
	sessionEncKeyLen  = 32
	sessionKeyInfo    = "riskpanel session keys v1"
)

// HashPassword returns the hex encoded SHA-256 digest of password.
// The same input always yields the same digest; stored digests are compared by equality.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordHash verifies if the given password matches the stored digest.
func CheckPasswordHash(hash, password string) bool {
	return subtle.ConstantTimeCompare([]byte(hash), []byte(HashPassword(password))) == 1
}

// DeriveSessionKeys expands secret into the authentication and encryption keys
// of the session cookie codec.
func DeriveSessionKeys(secret string) (authKey, encKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(sessionKeyInfo))

	authKey = make([]byte, sessionAuthKeyLen)
	if _, err = io.ReadFull(r, authKey); err != nil {
		return nil, nil, err
	}
	encKey = make([]byte, sessionEncKeyLen)
	if _, err = io.ReadFull(r, encKey); err != nil {
		return nil, nil, err
	}
	return authKey, encKey, nil
}
