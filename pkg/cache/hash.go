package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// LayoutHash hashes the JSON form of a computed layout. Equal layouts give
// equal hashes, so identical selections share artifacts.
func LayoutHash(layout any) (string, error) {
	data, err := json.Marshal(layout)
	if err != nil {
		return "", fmt.Errorf("hash layout: %w", err)
	}
	return Hash(data), nil
}
