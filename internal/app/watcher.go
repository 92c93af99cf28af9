package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
)

// LeaderboardWatcher polls the leaderboard and fans out a snapshot to every
// subscriber whenever the ranking changes.
type LeaderboardWatcher struct {
	source   LeaderboardRepository
	limit    int
	interval time.Duration
	now      func() time.Time
	log      zerolog.Logger

	mu          sync.Mutex
	current     domain.Leaderboard
	subscribers map[chan domain.Leaderboard]struct{}
}

func NewLeaderboardWatcher(source LeaderboardRepository, limit int, interval time.Duration, log zerolog.Logger) *LeaderboardWatcher {
	return NewLeaderboardWatcherWithClock(source, limit, interval, log, time.Now)
}

// NewLeaderboardWatcherWithClock is used by tests for deterministic timestamps.
func NewLeaderboardWatcherWithClock(source LeaderboardRepository, limit int, interval time.Duration, log zerolog.Logger, now func() time.Time) *LeaderboardWatcher {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &LeaderboardWatcher{
		source:      source,
		limit:       limit,
		interval:    interval,
		now:         now,
		log:         log.With().Str("component", "leaderboard-watcher").Logger(),
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

// Run refreshes until ctx is done.
func (w *LeaderboardWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	if _, err := w.Refresh(ctx); err != nil {
		w.log.Warn().Err(err).Msg("refresh leaderboard")
	}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Refresh(ctx); err != nil {
				w.log.Warn().Err(err).Msg("refresh leaderboard")
			}
		}
	}
}

// Refresh reads the leaderboard once and broadcasts it when it changed.
// It reports whether a broadcast happened.
func (w *LeaderboardWatcher) Refresh(ctx context.Context) (bool, error) {
	entries, err := w.source.TopScores(ctx, w.limit)
	if err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.current.UpdatedAt.IsZero() && sameEntries(w.current.Entries, entries) {
		return false, nil
	}
	w.current = domain.Leaderboard{Entries: entries, UpdatedAt: w.now()}
	w.broadcastLocked()
	return true, nil
}

// Snapshot returns the last broadcast leaderboard.
func (w *LeaderboardWatcher) Snapshot() domain.Leaderboard {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// Subscribe returns a channel primed with the current snapshot.
// The caller must invoke the returned cancel function to avoid leaks.
func (w *LeaderboardWatcher) Subscribe() (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	w.mu.Lock()
	w.subscribers[ch] = struct{}{}
	// empty buffer, cannot block
	ch <- w.current
	w.mu.Unlock()

	cancel := func() {
		w.mu.Lock()
		if _, ok := w.subscribers[ch]; ok {
			delete(w.subscribers, ch)
			close(ch)
		}
		w.mu.Unlock()
	}
	return ch, cancel
}

func (w *LeaderboardWatcher) broadcastLocked() {
	lb := w.current
	for ch := range w.subscribers {
		select {
		case ch <- lb:
		default:
			// full buffer: drop the oldest snapshot for slow readers
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}

func sameEntries(a, b []domain.LeaderboardEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Rank != y.Rank || x.PlayerName != y.PlayerName || x.Score != y.Score ||
			x.Total != y.Total || x.Percentage != y.Percentage || !x.PlayedAt.Equal(y.PlayedAt) {
			return false
		}
	}
	return true
}
