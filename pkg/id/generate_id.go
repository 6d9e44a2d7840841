package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewHex32 returns exactly 32 hex characters (no separators/prefixes).
// Used for externally visible transaction references.
func NewHex32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
