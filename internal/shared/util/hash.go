package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a filesystem- and S3-safe identifier for a user ID.
// Hashing keeps raw identifiers (emails, provider subjects) out of storage
// paths.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
