package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

const generationKey = "quiz:leaderboard:gen"

// LeaderboardCache stores leaderboard and history snapshots in Redis as JSON.
// Keys carry a generation number, bumped on every recorded score, so a write
// invalidates every snapshot at once:
//
//	quiz:leaderboard:{gen}:top:{limit}
//	quiz:leaderboard:{gen}:history:{name}
//
// Redis failures fall back to the wrapped reporter.
type LeaderboardCache struct {
	client *redis.Client
	inner  app.Reporter
	ttl    time.Duration
	log    zerolog.Logger
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewLeaderboardCache(client *redis.Client, inner app.Reporter, ttl time.Duration, log zerolog.Logger) *LeaderboardCache {
	return &LeaderboardCache{
		client: client,
		inner:  inner,
		ttl:    ttl,
		log:    log.With().Str("component", "redis-leaderboard").Logger(),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *LeaderboardCache) RecordScore(ctx context.Context, playerID int64, score, total int) error {
	if err := c.inner.RecordScore(ctx, playerID, score, total); err != nil {
		return err
	}
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.log.Warn().Err(err).Msg("bump leaderboard generation")
	}
	return nil
}

func (c *LeaderboardCache) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var out []domain.LeaderboardEntry
	err := c.cached(ctx, "top:"+strconv.Itoa(limit), &out, func() (any, error) {
		return c.inner.TopScores(ctx, limit)
	})
	return out, err
}

func (c *LeaderboardCache) HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	var out []domain.HistoryEntry
	err := c.cached(ctx, "history:"+name, &out, func() (any, error) {
		return c.inner.HistoryFor(ctx, name)
	})
	return out, err
}

func (c *LeaderboardCache) generation(ctx context.Context) (string, error) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	return gen, err
}

// cached decodes the snapshot under suffix into dst, loading and storing it on a miss.
func (c *LeaderboardCache) cached(ctx context.Context, suffix string, dst any, load func() (any, error)) error {
	gen, err := c.generation(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("read leaderboard generation, bypassing cache")
		return reload(load, dst)
	}
	key := "quiz:leaderboard:" + gen + ":" + suffix

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		if err := json.Unmarshal(raw, dst); err == nil {
			return nil
		}
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
			return raw, nil
		}

		v, err := load()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, key, raw, c.ttlWithJitter()).Err(); err != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("store leaderboard snapshot")
		}
		return raw, nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(result.([]byte), dst)
}

func reload(load func() (any, error), dst any) error {
	v, err := load()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (c *LeaderboardCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
