// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"codeberg.org/wallfe/wallfe/core/requests/lrucache"
	"codeberg.org/wallfe/wallfe/server/request_context"
)

// ResponseCache holds successful GET responses for a limited time.
type ResponseCache struct {
	lru *lrucache.Cache
	ttl time.Duration

	now func() time.Time
}

// cachedItem represents a cached HTTP response's components along with its expiration time and original URL.
type cachedItem struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	ExpiresAt  time.Time
	URL        string
}

// NewResponseCache returns a zstd-compressed cache of at most size responses, each valid for ttl.
func NewResponseCache(size int, ttl time.Duration) (*ResponseCache, error) {
	lru, err := lrucache.New(size, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	return &ResponseCache{lru: lru, ttl: ttl, now: time.Now}, nil
}

// generateCacheKey binds a cached response to the request URL and the full session token.
//
// Hashing the entire token keeps responses scoped to the exact session that requested them.
func generateCacheKey(url, userToken string) string {
	hasher := fnv.New64a()

	_, _ = hasher.Write([]byte(url + ":" + userToken))

	return strconv.FormatUint(hasher.Sum64(), 16)
}

// lookup returns a fresh cached response for url, honoring a "no-cache" directive from the user.
func (c *ResponseCache) lookup(ctx context.Context, url, userToken string, incoming http.Header) (*Response, bool) {
	if hasDirective(incoming, "no-cache") {
		return nil, false
	}

	key := generateCacheKey(url, userToken)

	raw, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}

	var item cachedItem
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&item); err != nil {
		log.Warn().Err(err).Str("request_id", request_context.FromContext(ctx).RequestID).Str("key", key).Msg("Failed to decode cached item; removing")
		c.lru.Remove(key)

		return nil, false
	}

	// Guards against a hash collision between two URLs.
	if item.URL != url || !c.now().Before(item.ExpiresAt) {
		c.lru.Remove(key)

		return nil, false
	}

	return &Response{
		StatusCode: item.StatusCode,
		Header:     item.Header.Clone(),
		Body:       item.Body,
	}, true
}

// store caches resp unless the user sent "no-store" or "no-cache".
func (c *ResponseCache) store(ctx context.Context, url, userToken string, incoming http.Header, resp *Response) {
	if hasDirective(incoming, "no-store") || hasDirective(incoming, "no-cache") {
		return
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(cachedItem{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       resp.Body,
		ExpiresAt:  c.now().Add(c.ttl),
		URL:        url,
	}); err != nil {
		// Caching is best effort.
		log.Warn().Err(err).Str("request_id", request_context.FromContext(ctx).RequestID).Msg("Failed to serialize item for cache")

		return
	}

	c.lru.Add(generateCacheKey(url, userToken), buf.Bytes())
}

// InvalidateURLs removes all cached items whose URL starts with any of urlPrefixes.
//
// It returns the number of entries removed and their URLs. Safe to call on a nil cache.
func (c *ResponseCache) InvalidateURLs(urlPrefixes []string) (int, []string) {
	var invalidated []string

	if c == nil || len(urlPrefixes) == 0 {
		return 0, invalidated
	}

	for _, key := range c.lru.Keys() {
		raw, ok := c.lru.Peek(key)
		if !ok {
			continue
		}

		var item cachedItem

		// Corrupt entries are removed on the next lookup.
		if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&item); err != nil {
			continue
		}

		for _, prefix := range urlPrefixes {
			if strings.HasPrefix(item.URL, prefix) {
				c.lru.Remove(key)

				invalidated = append(invalidated, item.URL)

				break
			}
		}
	}

	if len(invalidated) > 0 {
		log.Debug().
			Int("count", len(invalidated)).
			Strs("urls", invalidated).
			Msg("Invalidated cached backend responses")
	}

	return len(invalidated), invalidated
}

// Len returns the number of cached responses.
func (c *ResponseCache) Len() int {
	if c == nil {
		return 0
	}

	return c.lru.Len()
}

func hasDirective(h http.Header, directive string) bool {
	return strings.Contains(strings.ToLower(h.Get("Cache-Control")), directive)
}
