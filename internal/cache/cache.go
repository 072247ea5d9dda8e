// Package cache stores rendered verification reports keyed by the
// content hash of their input. It lives outside the pipeline: the CLI
// wraps pipeline calls with it, the pipeline itself never caches.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avetrov/credence/internal/model"
)

// Cache is the common interface over the memory, disk and layered
// implementations.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for an input text: a namespaced content
// hash, so identical inputs always hit the same entry.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "credence:v1:" + hex.EncodeToString(sum[:])
}

// StoreReport marshals and caches a report under the input's key.
func StoreReport(c Cache, inputText string, rep *model.Report, ttl time.Duration) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return c.Set(Key(inputText), data, ttl)
}

// LoadReport returns the cached report for the input text, if any.
func LoadReport(c Cache, inputText string) (*model.Report, bool) {
	data, ok := c.Get(Key(inputText))
	if !ok {
		return nil, false
	}
	var rep model.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		// A corrupt entry is treated as a miss.
		_ = c.Delete(Key(inputText))
		return nil, false
	}
	return &rep, true
}
