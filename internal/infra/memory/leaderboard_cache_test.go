package memory

import (
	"context"
	"testing"
	"time"

	"trivia-quiz/internal/domain"
)

type countingReporter struct {
	*Store
	topCalls     int
	historyCalls int
}

func (r *countingReporter) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	r.topCalls++
	return r.Store.TopScores(ctx, limit)
}

func (r *countingReporter) HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	r.historyCalls++
	return r.Store.HistoryFor(ctx, name)
}

func TestLeaderboardCacheCaches(t *testing.T) {
	ctx := context.Background()
	inner := &countingReporter{Store: NewStore()}
	cache := NewLeaderboardCache(inner, time.Minute)

	if _, err := cache.TopScores(ctx, 10); err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if _, err := cache.TopScores(ctx, 10); err != nil {
		t.Fatalf("top scores 2: %v", err)
	}
	if inner.topCalls != 1 {
		t.Fatalf("expected cache hit, inner calls %d", inner.topCalls)
	}

	if _, err := cache.TopScores(ctx, 5); err != nil {
		t.Fatalf("top scores limit 5: %v", err)
	}
	if inner.topCalls != 2 {
		t.Fatalf("expected separate entry per limit, inner calls %d", inner.topCalls)
	}
}

func TestLeaderboardCacheInvalidatedByRecordScore(t *testing.T) {
	ctx := context.Background()
	inner := &countingReporter{Store: NewStore()}
	cache := NewLeaderboardCache(inner, time.Minute)

	id, err := inner.UpsertPlayer(ctx, "alice")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if h, _ := cache.HistoryFor(ctx, "alice"); len(h) != 0 {
		t.Fatalf("expected empty history, got %+v", h)
	}

	if err := cache.RecordScore(ctx, id, 3, 5); err != nil {
		t.Fatalf("record: %v", err)
	}

	h, err := cache.HistoryFor(ctx, "alice")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(h) != 1 || h[0].Score != 3 {
		t.Fatalf("expected fresh history after record, got %+v", h)
	}
	if inner.historyCalls != 2 {
		t.Fatalf("expected reload after invalidation, inner calls %d", inner.historyCalls)
	}
}

func TestLeaderboardCacheExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inner := &countingReporter{Store: NewStore()}
	cache := NewLeaderboardCacheWithClock(inner, time.Minute, func() time.Time { return now })

	_, _ = cache.TopScores(ctx, 10)
	now = now.Add(2 * time.Minute)
	_, _ = cache.TopScores(ctx, 10)

	if inner.topCalls != 2 {
		t.Fatalf("expected expiry to reload, inner calls %d", inner.topCalls)
	}
}
