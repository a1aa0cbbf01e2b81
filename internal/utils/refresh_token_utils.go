package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashTokenString generates a SHA256 hash of a token string. Both access and
// refresh tokens are stored hashed, never in the clear.
func HashTokenString(token string) string {
	hasher := sha256.New()
	hasher.Write([]byte(token))
	return hex.EncodeToString(hasher.Sum(nil))
}

// CompareTokenHash compares a plain token string with its stored SHA256 hash.
func CompareTokenHash(token string, storedHash string) bool {
	return HashTokenString(token) == storedHash
}
