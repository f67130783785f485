package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint derives a stable identity hash from question text so that
// identical questions imported independently by different users share
// community notes. Text is trimmed and lower-cased before hashing;
// the digest is truncated to 16 hex characters.
func Fingerprint(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:16]
}
