// Toolrank - Hybrid Recommendations for AI Tool Listings
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/toolrank

package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruItem struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// LRUCache is a size-bounded, TTL-aware LRU of encoded values. The front
// of order is the most recently used entry. Safe for concurrent use.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	index    map[string]*list.Element

	hits, misses, evictions int64

	now func() time.Time
}

// NewLRUCache holds at most capacity entries (10000 when non-positive),
// each living ttl (1m when non-positive) unless added with its own.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns a live value and marks it recently used. An expired entry
// counts as a miss and is dropped.
func (c *LRUCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok && c.expired(el, c.now()) {
		c.drop(el)
		ok = false
	}
	if !ok {
		c.misses++
		return nil, false
	}
	c.order.MoveToFront(el)
	c.hits++
	return el.Value.(*lruItem).value, true
}

// Add stores value under key for ttl, or the cache default when ttl is
// non-positive, evicting from the back while over capacity.
func (c *LRUCache) Add(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.ttl
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item := &lruItem{key: key, value: value, expiresAt: c.now().Add(ttl)}
	if el, ok := c.index[key]; ok {
		el.Value = item
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(item)

	for c.order.Len() > c.capacity {
		c.drop(c.order.Back())
		c.evictions++
	}
}

// Remove reports whether key was present.
func (c *LRUCache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len counts expired entries until they are read or swept.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.index)
}

// CleanupExpired sweeps expired entries and returns how many it removed.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el, now) {
			c.drop(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Stats reports hits, misses, capacity evictions and the current size.
func (c *LRUCache) Stats() (hits, misses, evictions int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions, c.order.Len()
}

func (c *LRUCache) expired(el *list.Element, now time.Time) bool {
	return now.After(el.Value.(*lruItem).expiresAt)
}

func (c *LRUCache) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*lruItem).key)
}
