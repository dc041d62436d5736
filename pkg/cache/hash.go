package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/goccy/go-json"
)

// Key builds a cache key as prefix:hash(parts...). Parts are hashed through
// their JSON encoding, so structs with the same field values give the same
// key.
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// ArtifactKey is the key of an export artifact: the hash of the snapshot it
// renders, the format and any options that change the output.
func ArtifactKey(snapshotHash, format string, opts any) string {
	return Key("artifact", snapshotHash, format, opts)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
