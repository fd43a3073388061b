// Package hashlock derives the digest committing to a swap secret.
package hashlock

import (
	"crypto/sha256"
	"encoding/hex"
)

// HexLen is the length of an encoded hashlock: 32 bytes, lowercase hex,
// no prefix.
const HexLen = 64

// Digest maps a secret to its hashlock: lowercase-hex(sha256(utf8(secret))).
func Digest(secret string) string {
	h := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(h[:])
}

// Matches reports whether secret is the preimage of the given hashlock.
func Matches(hl, secret string) bool {
	return Digest(secret) == hl
}
