package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// LeaderboardCache keeps leaderboard and history reads in process memory with
// a TTL. Recording a score through the cache drops every cached read.
type LeaderboardCache struct {
	inner app.Reporter
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group

	mu      sync.RWMutex
	rnd     *rand.Rand
	entries map[string]cachedReport
	gen     uint64
}

type cachedReport struct {
	value     any
	expiresAt time.Time
}

func NewLeaderboardCache(inner app.Reporter, ttl time.Duration) *LeaderboardCache {
	return NewLeaderboardCacheWithClock(inner, ttl, time.Now)
}

// NewLeaderboardCacheWithClock is used by tests to control expiry.
func NewLeaderboardCacheWithClock(inner app.Reporter, ttl time.Duration, now func() time.Time) *LeaderboardCache {
	return &LeaderboardCache{
		inner:   inner,
		ttl:     ttl,
		clock:   now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		entries: make(map[string]cachedReport),
	}
}

func (c *LeaderboardCache) RecordScore(ctx context.Context, playerID int64, score, total int) error {
	if err := c.inner.RecordScore(ctx, playerID, score, total); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}

// Invalidate drops every cached read.
func (c *LeaderboardCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cachedReport)
	c.gen++
	c.mu.Unlock()
}

func (c *LeaderboardCache) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	v, err := c.get(ctx, "top:"+strconv.Itoa(limit), func() (any, error) {
		return c.inner.TopScores(ctx, limit)
	})
	if err != nil {
		return nil, err
	}
	return append([]domain.LeaderboardEntry(nil), v.([]domain.LeaderboardEntry)...), nil
}

func (c *LeaderboardCache) HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	v, err := c.get(ctx, "history:"+name, func() (any, error) {
		return c.inner.HistoryFor(ctx, name)
	})
	if err != nil {
		return nil, err
	}
	return append([]domain.HistoryEntry(nil), v.([]domain.HistoryEntry)...), nil
}

func (c *LeaderboardCache) lookup(key string) (any, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.entries[key]; ok && entry.expiresAt.After(c.clock()) {
		return entry.value, c.gen, true
	}
	return nil, c.gen, false
}

func (c *LeaderboardCache) get(_ context.Context, key string, load func() (any, error)) (any, error) {
	if v, _, ok := c.lookup(key); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		v, gen, ok := c.lookup(key)
		if ok {
			return v, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		// a score written during the load makes this result stale
		if gen == c.gen {
			c.entries[key] = cachedReport{value: v, expiresAt: c.clock().Add(c.ttlWithJitterLocked())}
		}
		c.mu.Unlock()
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *LeaderboardCache) ttlWithJitterLocked() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
