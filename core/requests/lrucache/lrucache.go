// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package lrucache provides a thread-safe, fixed-capacity least-recently-used (LRU) cache
of byte slices keyed by strings.

When created with compression enabled via [New], values are stored zstd-compressed
whenever that saves space, and are transparently decompressed by [Cache.Get] and
[Cache.Peek]. Callers always receive their own copy of a value.
*/
package lrucache

import (
	"container/list"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var ErrInvalidSize = errors.New("must provide a positive size")

// Cache is a fixed-capacity, least-recently-used cache that is safe for concurrent use.
// Instances must be constructed with [New]; the zero value is not ready for use.
type Cache struct {
	size      int
	evictList *list.List // front is most recently used
	items     map[string]*list.Element
	lock      sync.Mutex

	enc *zstd.Encoder // nil when compression is off
	dec *zstd.Decoder
}

type entry struct {
	key        string
	value      []byte
	compressed bool
}

// New creates a cache holding at most size entries.
func New(size int, compress bool) (*Cache, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	c := &Cache{
		size:      size,
		evictList: list.New(),
		items:     make(map[string]*list.Element, size),
	}

	if compress {
		// nil writer/reader: only EncodeAll/DecodeAll are used, which are safe for concurrent use.
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, fmt.Errorf("create zstd encoder: %w", err)
		}

		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}

		c.enc, c.dec = enc, dec
	}

	return c, nil
}

// Add inserts or replaces the value for key and marks it most recently used.
//
// Add reports whether an older entry was evicted to make room.
func (c *Cache) Add(key string, value []byte) bool {
	// compress outside the lock
	stored, compressed := c.pack(value)

	c.lock.Lock()
	defer c.lock.Unlock()

	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)

		ent := el.Value.(*entry) //nolint:forcetypeassert // only *entry is ever stored
		ent.value, ent.compressed = stored, compressed

		return false
	}

	c.items[key] = c.evictList.PushFront(&entry{key: key, value: stored, compressed: compressed})

	if c.evictList.Len() <= c.size {
		return false
	}

	c.removeElement(c.evictList.Back())

	return true
}

// Get returns the value for key and marks it most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	return c.lookup(key, true)
}

// Peek returns the value for key without touching the LRU order.
func (c *Cache) Peek(key string) ([]byte, bool) {
	return c.lookup(key, false)
}

func (c *Cache) lookup(key string, touch bool) ([]byte, bool) {
	c.lock.Lock()

	el, ok := c.items[key]
	if !ok {
		c.lock.Unlock()

		return nil, false
	}

	if touch {
		c.evictList.MoveToFront(el)
	}

	ent := el.Value.(*entry) //nolint:forcetypeassert // only *entry is ever stored
	stored, compressed := ent.value, ent.compressed

	c.lock.Unlock()

	return c.unpack(stored, compressed)
}

// Remove deletes key, reporting whether it was present.
func (c *Cache) Remove(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	el, ok := c.items[key]
	if ok {
		c.removeElement(el)
	}

	return ok
}

// Keys returns all keys, oldest first.
func (c *Cache) Keys() []string {
	c.lock.Lock()
	defer c.lock.Unlock()

	keys := make([]string, 0, len(c.items))
	for el := c.evictList.Back(); el != nil; el = el.Prev() {
		keys = append(keys, el.Value.(*entry).key) //nolint:forcetypeassert // only *entry is ever stored
	}

	return keys
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return c.evictList.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.evictList.Init()
	clear(c.items)
}

func (c *Cache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.items, el.Value.(*entry).key) //nolint:forcetypeassert // only *entry is ever stored
}

// pack returns what to store for value. Compressed output is only kept if smaller.
func (c *Cache) pack(value []byte) ([]byte, bool) {
	if len(value) == 0 {
		return nil, false
	}

	if c.enc != nil {
		if packed := c.enc.EncodeAll(value, nil); len(packed) < len(value) {
			return packed, true
		}
	}

	return append([]byte(nil), value...), false
}

// unpack returns a caller-owned copy of a stored value.
//
// A value that fails to decompress is reported as missing.
func (c *Cache) unpack(stored []byte, compressed bool) ([]byte, bool) {
	if !compressed {
		return append([]byte(nil), stored...), true
	}

	decoded, err := c.dec.DecodeAll(stored, nil)
	if err != nil {
		return nil, false
	}

	return decoded, true
}
