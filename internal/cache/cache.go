// Package cache memoizes backend responses keyed by the assembled prompt.
package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"LocalChat/internal/chat"
)

// entry is a cached backend response.
type entry struct {
	response  string
	timestamp time.Time
}

// Cache is a TTL-bounded response cache. An identical prompt within the TTL
// is answered from memory without a backend call; cached turns are not
// journaled since no backend exchange happened.
type Cache struct {
	ttl     time.Duration
	entries sync.Map
}

// New creates a cache. ttl <= 0 disables expiry.
func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Key derives the cache key from a prompt: a SHA-256 over every role and
// content in order, so any history difference produces a different key.
func Key(prompt []chat.Message) string {
	h := sha256.New()
	for _, msg := range prompt {
		h.Write([]byte(msg.Role))
		h.Write([]byte{0})
		h.Write([]byte(msg.Content))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Get returns the cached response for key, if present and fresh.
func (c *Cache) Get(key string) (string, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return "", false
	}
	e := val.(entry)
	if c.ttl > 0 && time.Since(e.timestamp) > c.ttl {
		c.entries.Delete(key)
		return "", false
	}
	return e.response, true
}

// Put stores a response under key.
func (c *Cache) Put(key, response string) {
	c.entries.Store(key, entry{response: response, timestamp: time.Now()})
}
