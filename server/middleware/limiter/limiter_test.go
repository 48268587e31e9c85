// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLimiter returns a limiter whose clock only moves when *now is changed.
func newTestLimiter(pageRate float64, pageBurst int) (*Limiter, *time.Time) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	lim := New(pageRate, pageBurst)
	lim.now = func() time.Time { return now }

	return lim, &now
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	lim, now := newTestLimiter(1, 3)

	for i := range 3 {
		d := lim.Allow("203.0.113.0/24", PageBucket)
		require.True(t, d.Allowed, "request %d", i)
		assert.Equal(t, 3, d.Limit)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := lim.Allow("203.0.113.0/24", PageBucket)
	assert.False(t, d.Allowed)
	assert.Equal(t, int64(3), d.Reset)

	// Other networks have their own bucket.
	assert.True(t, lim.Allow("198.51.100.0/24", PageBucket).Allowed)

	*now = now.Add(time.Second)

	assert.True(t, lim.Allow("203.0.113.0/24", PageBucket).Allowed, "one token refilled")
}

func TestLimiter_ActionBucketIsSeparate(t *testing.T) {
	t.Parallel()

	lim, _ := newTestLimiter(1, 1)

	require.True(t, lim.Allow("n", PageBucket).Allowed)
	require.False(t, lim.Allow("n", PageBucket).Allowed)

	for range ActionBurst {
		require.True(t, lim.Allow("n", ActionBucket).Allowed)
	}

	assert.False(t, lim.Allow("n", ActionBucket).Allowed)
	assert.Equal(t, 2, lim.Len())
}

func TestLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	lim, now := newTestLimiter(1, 5)

	lim.Allow("old", PageBucket)

	*now = now.Add(LimiterExpiryDuration / 2)
	lim.Allow("fresh", PageBucket)

	*now = now.Add(LimiterExpiryDuration/2 + time.Minute)

	assert.Equal(t, 1, lim.cleanup(*now))
	assert.Equal(t, 1, lim.Len())
}

func TestLimiter_SaveLoad(t *testing.T) {
	t.Parallel()

	lim, _ := newTestLimiter(1, 10)

	for range 4 {
		lim.Allow("203.0.113.0/24", PageBucket)
	}

	var buf bytes.Buffer
	require.NoError(t, lim.Save(&buf))

	restored, _ := newTestLimiter(1, 10)

	count, err := restored.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	d := restored.Allow("203.0.113.0/24", PageBucket)
	require.True(t, d.Allowed)
	assert.Equal(t, 5, d.Remaining, "restored bucket keeps its spent tokens")
}

func TestLimiter_LoadEmpty(t *testing.T) {
	t.Parallel()

	lim, _ := newTestLimiter(1, 1)

	count, err := lim.Load(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = lim.Load(bytes.NewReader([]byte("{not json")))
	assert.Error(t, err)
}
