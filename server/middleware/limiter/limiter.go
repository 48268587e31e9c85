// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"codeberg.org/wallfe/wallfe/config"
)

const (
	ActionRate            = 0.2             // 12 POST actions per minute for a network.
	ActionBurst           = 20              // Maximum POST action tokens for a network.
	LimiterExpiryDuration = time.Hour       // How long to keep idle buckets in memory.
	CleanupInterval       = 5 * time.Minute // Minimum interval between cleanup runs.
)

// Kind separates the key spaces of the two buckets a network owns.
type Kind string

const (
	PageBucket   Kind = "page"
	ActionBucket Kind = "action"
)

// Limiter holds the token buckets of every network seen recently.
type Limiter struct {
	pageRate  rate.Limit
	pageBurst int

	buckets sync.Map // key -> *bucket

	cleanupMu     sync.Mutex
	lastCleanupAt time.Time

	now func() time.Time
}

// bucket is one rate.Limiter plus the metadata needed for expiry and persistence.
type bucket struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	key        string
	lastAccess time.Time
}

// savedBucket is the JSON form of a bucket.
type savedBucket struct {
	Key        string    `json:"key"`
	LastAccess time.Time `json:"last_access"`
	Tokens     float64   `json:"tokens"`
	Rate       float64   `json:"rate"`
	Burst      int       `json:"burst"`
}

// Default is the limiter used by Evaluate. It is set by Init.
var Default *Limiter

// New returns a limiter granting each network pageRate page views per second, up to pageBurst at once.
func New(pageRate float64, pageBurst int) *Limiter {
	return &Limiter{
		pageRate:  rate.Limit(pageRate),
		pageBurst: pageBurst,
		now:       time.Now,
	}
}

// Decision is the outcome of one Allow call.
type Decision struct {
	Allowed   bool
	Limit     int   // bucket size
	Remaining int   // whole tokens left
	Reset     int64 // seconds until the bucket is full again
}

// Allow consumes one token from the network's bucket of the given kind.
func (l *Limiter) Allow(network string, kind Kind) Decision {
	b := l.getOrCreate(network, kind)

	b.mu.Lock()
	defer b.mu.Unlock()

	now := l.now()
	b.lastAccess = now

	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	burst := b.limiter.Burst()

	d := Decision{
		Allowed:   allowed,
		Limit:     burst,
		Remaining: max(0, min(burst, int(tokens))),
	}

	if deficit := float64(burst) - tokens; deficit > 0 && b.limiter.Limit() > 0 {
		d.Reset = int64(math.Ceil(deficit / float64(b.limiter.Limit())))
	}

	return d
}

func (l *Limiter) getOrCreate(network string, kind Kind) *bucket {
	key := network + ":" + string(kind)

	if v, ok := l.buckets.Load(key); ok {
		return v.(*bucket) //nolint:forcetypeassert // only *bucket is ever stored
	}

	r, burst := l.pageRate, l.pageBurst
	if kind == ActionBucket {
		r, burst = rate.Limit(ActionRate), ActionBurst
	}

	v, _ := l.buckets.LoadOrStore(key, &bucket{
		limiter:    rate.NewLimiter(r, burst),
		key:        key,
		lastAccess: l.now(),
	})

	return v.(*bucket) //nolint:forcetypeassert // only *bucket is ever stored
}

// Len returns the number of live buckets.
func (l *Limiter) Len() int {
	n := 0

	l.buckets.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

// MaybeCleanup removes idle buckets, at most once per CleanupInterval.
func (l *Limiter) MaybeCleanup() {
	now := l.now()

	l.cleanupMu.Lock()

	if l.lastCleanupAt.IsZero() {
		l.lastCleanupAt = now
	}

	due := now.Sub(l.lastCleanupAt) >= CleanupInterval
	if due {
		l.lastCleanupAt = now
	}

	l.cleanupMu.Unlock()

	if due {
		go l.cleanup(now)
	}
}

// cleanup removes buckets that haven't been accessed for LimiterExpiryDuration.
func (l *Limiter) cleanup(now time.Time) int {
	removed := 0

	l.buckets.Range(func(key, value any) bool {
		b := value.(*bucket) //nolint:forcetypeassert // only *bucket is ever stored

		b.mu.Lock()
		idle := now.Sub(b.lastAccess)
		b.mu.Unlock()

		if idle > LimiterExpiryDuration {
			l.buckets.Delete(key)

			removed++
		}

		return true
	})

	if removed > 0 {
		log.Info().Int("count", removed).Msg("Cleaned up expired limiters")
	}

	return removed
}

// Save writes the state of all buckets to w as JSON.
func (l *Limiter) Save(w io.Writer) error {
	var state []savedBucket

	now := l.now()

	l.buckets.Range(func(_, value any) bool {
		b := value.(*bucket) //nolint:forcetypeassert // only *bucket is ever stored

		b.mu.Lock()
		state = append(state, savedBucket{
			Key:        b.key,
			LastAccess: b.lastAccess,
			Tokens:     b.limiter.TokensAt(now),
			Rate:       float64(b.limiter.Limit()),
			Burst:      b.limiter.Burst(),
		})
		b.mu.Unlock()

		return true
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(state); err != nil {
		return fmt.Errorf("failed to encode limiter state: %w", err)
	}

	return nil
}

// Load replaces all buckets with the state read from r. An empty input is not an error.
func (l *Limiter) Load(r io.Reader) (int, error) {
	var state []savedBucket

	if err := json.NewDecoder(r).Decode(&state); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil
		}

		return 0, fmt.Errorf("failed to decode limiter state: %w", err)
	}

	l.buckets.Clear()

	now := l.now()

	for _, saved := range state {
		lim := rate.NewLimiter(rate.Limit(saved.Rate), saved.Burst)

		// Drain the bucket down to the saved level.
		if spent := float64(saved.Burst) - saved.Tokens; spent >= 1 {
			lim.AllowN(now, int(spent))
		}

		l.buckets.Store(saved.Key, &bucket{
			limiter:    lim,
			key:        saved.Key,
			lastAccess: saved.LastAccess,
		})
	}

	return len(state), nil
}

// Init creates Default from config.Global and restores any saved state.
func Init() {
	Default = New(config.Global.Limiter.Rate, config.Global.Limiter.Burst)

	stateFile := config.Global.Limiter.StateFilepath

	log.Info().Str("file", stateFile).Msg("Limiter enabled, attempting to load state")

	file, err := os.Open(stateFile) // #nosec:G304
	if err != nil {
		if os.IsNotExist(err) {
			log.Info().Str("file", stateFile).
				Msg("Limiter state file not found, starting with a fresh state")
		} else {
			log.Warn().Err(err).Str("file", stateFile).
				Msg("Could not open limiter state file; starting with a fresh state")
		}

		return
	}
	defer file.Close()

	count, err := Default.Load(file)
	if err != nil {
		log.Warn().Err(err).Str("file", stateFile).
			Msg("Could not parse limiter state file; starting with a fresh state")

		return
	}

	log.Info().Int("count", count).Msg("Loaded limiter state")
}

// Fini saves the state of Default. Errors are logged; shutdown continues regardless.
func Fini() {
	if Default == nil {
		return
	}

	stateFile := config.Global.Limiter.StateFilepath

	log.Info().Str("file", stateFile).Msg("Saving limiter state...")

	if err := os.MkdirAll(filepath.Dir(stateFile), 0o750); err != nil {
		log.Warn().Err(err).Str("file", stateFile).Msg("Failed to create limiter state directory")

		return
	}

	file, err := os.Create(stateFile) // #nosec:G304
	if err != nil {
		log.Warn().Err(err).Str("file", stateFile).
			Msg("Failed to create limiter state file for saving")

		return
	}
	defer file.Close()

	if err := Default.Save(file); err != nil {
		log.Warn().Err(err).Str("file", stateFile).Msg("Failed to write limiter state")
	}
}
