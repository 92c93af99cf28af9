package app

import (
	"context"

	"trivia-quiz/internal/domain"
)

// QuestionRepository draws and stores questions.
type QuestionRepository interface {
	// DrawRandomQuestions returns up to count distinct questions in random order.
	DrawRandomQuestions(ctx context.Context, count int) ([]domain.QuestionRecord, error)
	AddQuestion(ctx context.Context, rec domain.QuestionRecord) (int64, error)
	CountQuestions(ctx context.Context) (int, error)
}

// PlayerRepository resolves a player name to its persistent id, creating it on first use.
type PlayerRepository interface {
	UpsertPlayer(ctx context.Context, name string) (int64, error)
}

// ScoreRepository appends finished quiz results. Rows are never updated.
type ScoreRepository interface {
	RecordScore(ctx context.Context, playerID int64, score, total int) error
}

// LeaderboardRepository answers read-only reporting queries.
type LeaderboardRepository interface {
	// TopScores orders by percentage, then score, then most recent first.
	TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	// HistoryFor lists one player's results, most recent first.
	HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error)
}

// Reporter is the part of a store the leaderboard caches wrap.
type Reporter interface {
	ScoreRepository
	LeaderboardRepository
}

// Store is the whole persistence boundary.
type Store interface {
	QuestionRepository
	PlayerRepository
	ScoreRepository
	LeaderboardRepository
	Close() error
}

// SessionRegistry tracks which players currently have a quiz in progress.
type SessionRegistry interface {
	// Acquire claims the slot for playerID or returns ErrSessionActive.
	Acquire(ctx context.Context, playerID int64, sessionID string) error
	// Release frees the slot only while it is still held by sessionID.
	Release(ctx context.Context, playerID int64, sessionID string) error
}

// WithReporter returns a Store whose score writes and reporting queries go
// through r, typically a cache wrapping the same store.
func WithReporter(store Store, r Reporter) Store {
	return reportingStore{Store: store, reporter: r}
}

type reportingStore struct {
	Store
	reporter Reporter
}

func (s reportingStore) RecordScore(ctx context.Context, playerID int64, score, total int) error {
	return s.reporter.RecordScore(ctx, playerID, score, total)
}

func (s reportingStore) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	return s.reporter.TopScores(ctx, limit)
}

func (s reportingStore) HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	return s.reporter.HistoryFor(ctx, name)
}
