// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package imagecache is a bounded, path-keyed cache of post-resize PNG
// payloads. Despite the name its eviction order is strict first-in,
// first-out: a lookup never promotes its key, so the surviving entries
// after any sequence of inserts are exactly the most recently inserted
// ones, not the most recently used ones. Upgrading to true LRU would
// mean moving the looked-up key to the queue tail under the same lock;
// this cache deliberately does not do that, matching the documented
// behavior rather than the aspirational name.
package imagecache

import (
	"strconv"
	"sync"
)

// Entry is one cached, already-resized image: the PNG bytes plus the
// resized dimensions and, separately, the source's native dimensions
// (so a cache hit can still report true original dimensions instead of
// repeating the resized ones).
type Entry struct {
	EncodedBytes []byte
	Width        int
	Height       int
	OrigWidth    int
	OrigHeight   int
}

// Cache is a FIFO-eviction, mutex-guarded map with a fixed capacity.
// The lock is held only across map/queue bookkeeping; callers must do
// any decode, resize, or encode work outside of Lookup/Insert.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]Entry
	order    []string
}

// New constructs an empty cache with the given positive capacity.
func New(capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]Entry, capacity),
	}
}

// Key builds the canonical cache key for a decode-and-resize request.
func Key(path string, maxW, maxH int) string {
	return path + ":" + strconv.Itoa(maxW) + "x" + strconv.Itoa(maxH)
}

// Lookup returns the entry for key, if present. It never reorders the
// insertion queue.
func (c *Cache) Lookup(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Insert adds or overwrites key's entry. If the cache is at capacity
// and key is new, the oldest entry is evicted first.
func (c *Cache) Insert(key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insertLocked(key, entry)
}

// InsertBatch adds many entries under a single lock acquisition, the
// shape preload uses after decoding and resizing every path
// concurrently outside the lock.
func (c *Cache) InsertBatch(entries map[string]Entry) {
	if len(entries) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range entries {
		c.insertLocked(key, entry)
	}
}

func (c *Cache) insertLocked(key string, entry Entry) {
	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		return
	}
	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = entry
	c.order = append(c.order, key)
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Entry, c.capacity)
	c.order = nil
}

// Len reports the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
