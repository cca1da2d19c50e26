package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is a process-local Cache used when redis is not configured,
// and in tests. Expired entries are dropped lazily on access.
type Memory struct {
	mu      sync.Mutex
	entries map[Key]memoryEntry
	ttl     time.Duration
	now     func() time.Time // swappable for tests
}

type memoryEntry struct {
	payload []byte
	expires time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		entries: make(map[Key]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Memory) Get(_ context.Context, key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.payload, true
}

func (c *Memory) Set(_ context.Context, key Key, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{payload: payload, expires: c.now().Add(c.ttl)}
}
