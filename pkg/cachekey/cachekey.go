package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Prefix namespaces every cache key so InvalidateAll can sweep them
// without touching unrelated keys in a shared Redis.
const Prefix = "yt:"

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// ForArgs derives a cache key for an upstream operation and its argument
// tuple. The same (op, args...) always maps to the same key; any change in
// an argument changes the key. The argument list is hashed so long keyword
// strings and ID batches stay within sane key lengths.
func ForArgs(op string, args ...string) string {
	digest := SHA256Hex(strings.Join(args, "\x1f"))
	return Prefix + op + ":" + digest[:16]
}
