package memory

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"trivia-quiz/internal/domain"
)

// Store is an in-process implementation of app.Store. Contents are lost on exit.
type Store struct {
	clock func() time.Time

	mu        sync.RWMutex
	rnd       *rand.Rand
	questions []domain.QuestionRecord
	players   map[string]int64
	names     map[int64]string
	scores    []domain.ScoreRecord
	nextID    int64
}

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock stamps scores with now, for deterministic recency in tests.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		clock:   now,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		players: make(map[string]int64),
		names:   make(map[int64]string),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) DrawRandomQuestions(_ context.Context, count int) ([]domain.QuestionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if count > len(s.questions) {
		count = len(s.questions)
	}
	if count <= 0 {
		return nil, nil
	}
	out := make([]domain.QuestionRecord, 0, count)
	for _, i := range s.rnd.Perm(len(s.questions))[:count] {
		out = append(out, s.questions[i])
	}
	return out, nil
}

func (s *Store) AddQuestion(_ context.Context, rec domain.QuestionRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.id()
	s.questions = append(s.questions, rec)
	return rec.ID, nil
}

func (s *Store) CountQuestions(context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.questions), nil
}

func (s *Store) UpsertPlayer(_ context.Context, name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.players[name]; ok {
		return id, nil
	}
	id := s.id()
	s.players[name] = id
	s.names[id] = name
	return id, nil
}

func (s *Store) RecordScore(_ context.Context, playerID int64, score, total int) error {
	if total <= 0 || score < 0 || score > total {
		return fmt.Errorf("%w: %d/%d", domain.ErrInvalidScore, score, total)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.names[playerID]; !ok {
		return domain.ErrPlayerNotFound
	}
	s.scores = append(s.scores, domain.ScoreRecord{
		ID:       s.id(),
		PlayerID: playerID,
		Score:    score,
		Total:    total,
		PlayedAt: s.clock(),
	})
	return nil
}

func (s *Store) TopScores(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0, len(s.scores))
	// newest rows first so equal keys keep insertion recency under the stable sort
	for i := len(s.scores) - 1; i >= 0; i-- {
		sc := s.scores[i]
		entries = append(entries, domain.LeaderboardEntry{
			PlayerName: s.names[sc.PlayerID],
			Score:      sc.Score,
			Total:      sc.Total,
			Percentage: domain.Percentage(sc.Score, sc.Total),
			PlayedAt:   sc.PlayedAt,
		})
	}
	s.mu.RUnlock()

	domain.SortLeaderboard(entries)
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *Store) HistoryFor(_ context.Context, name string) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	id, ok := s.players[name]
	if !ok {
		s.mu.RUnlock()
		return nil, nil
	}
	var entries []domain.HistoryEntry
	for i := len(s.scores) - 1; i >= 0; i-- {
		sc := s.scores[i]
		if sc.PlayerID != id {
			continue
		}
		entries = append(entries, domain.HistoryEntry{
			Score:      sc.Score,
			Total:      sc.Total,
			Percentage: domain.Percentage(sc.Score, sc.Total),
			PlayedAt:   sc.PlayedAt,
		})
	}
	s.mu.RUnlock()

	domain.SortHistory(entries)
	return entries, nil
}

func (s *Store) Close() error { return nil }
