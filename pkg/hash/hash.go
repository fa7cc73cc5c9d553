package hash

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ShortHash returns the first n hex characters of SHA256(input). Used to
// correlate log lines by client IP without logging the address itself.
func ShortHash(input string, n int) string {
	full := SHA256Hex(input)
	if n <= 0 || n > len(full) {
		return full
	}
	return full[:n]
}

// Seed derives a stable 64-bit seed from input, for deterministic mock data.
func Seed(input string) uint64 {
	h := sha256.Sum256([]byte(input))
	return binary.BigEndian.Uint64(h[:8])
}
