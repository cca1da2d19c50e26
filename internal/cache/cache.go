// Package cache is the page cache for listing views: rendered payloads
// keyed by (route, page number) with a fixed TTL. Entries expire
// passively, there is no invalidation on writes. Readers may observe
// stale listings for up to the TTL after a new post is created.
package cache

import (
	"context"
	"fmt"
)

// Key identifies one cached rendered page.
type Key struct {
	Route string
	Page  int
}

func (k Key) String() string {
	return fmt.Sprintf("page_cache:%s:%d", k.Route, k.Page)
}

type Cache interface {
	// Get returns the cached payload for key, or false on a miss.
	// Backend failures count as misses.
	Get(ctx context.Context, key Key) ([]byte, bool)
	// Set stores the payload for the cache's fixed TTL. Best effort.
	Set(ctx context.Context, key Key, payload []byte)
}
