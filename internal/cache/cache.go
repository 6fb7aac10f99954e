// Package cache stores extraction results so re-running a batch over the
// same scans does not repeat model calls. Keys are derived from document
// content, not file names, so a renamed scan still hits.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte store with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey derives a cache key from raw document text
func DocumentKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "protokol:v1:" + hex.EncodeToString(hash[:])
}
