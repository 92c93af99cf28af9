package domain

import (
	"sort"
	"time"
)

// ScoreRecord is one persisted quiz result. Rows are append only.
type ScoreRecord struct {
	ID       int64     `json:"id"`
	PlayerID int64     `json:"playerId"`
	Score    int       `json:"score"`
	Total    int       `json:"total"`
	PlayedAt time.Time `json:"playedAt"`
}

// LeaderboardEntry is one ranked row across all players.
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	PlayedAt   time.Time `json:"playedAt"`
}

// HistoryEntry is one past result of a single player.
type HistoryEntry struct {
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage float64   `json:"percentage"`
	PlayedAt   time.Time `json:"playedAt"`
}

// HistoryStats summarises a player's history.
type HistoryStats struct {
	Quizzes           int          `json:"quizzes"`
	AveragePercentage float64      `json:"averagePercentage"`
	Best              HistoryEntry `json:"best"`
}

// SortLeaderboard orders entries by percentage, then raw score, then most
// recent first, and assigns ranks starting at 1.
func SortLeaderboard(entries []LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].PlayedAt.After(entries[j].PlayedAt)
	})
	RankLeaderboard(entries)
}

// RankLeaderboard numbers already ordered entries.
func RankLeaderboard(entries []LeaderboardEntry) {
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// SortHistory orders a player's results most recent first.
func SortHistory(entries []HistoryEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PlayedAt.After(entries[j].PlayedAt)
	})
}

// SummarizeHistory computes totals over entries. The best entry is the first
// one with the highest percentage.
func SummarizeHistory(entries []HistoryEntry) HistoryStats {
	if len(entries) == 0 {
		return HistoryStats{}
	}
	var sum float64
	best := entries[0]
	for _, e := range entries {
		sum += e.Percentage
		if e.Percentage > best.Percentage {
			best = e
		}
	}
	return HistoryStats{
		Quizzes:           len(entries),
		AveragePercentage: sum / float64(len(entries)),
		Best:              best,
	}
}

// Performance returns the feedback line shown after a quiz.
func Performance(percentage float64) string {
	switch {
	case percentage >= 90:
		return "Outstanding! You're a quiz master!"
	case percentage >= 70:
		return "Great job! Well done!"
	case percentage >= 50:
		return "Not bad! Keep practicing!"
	default:
		return "Keep studying and try again!"
	}
}

// Leaderboard is a ranked snapshot pushed to live subscribers.
type Leaderboard struct {
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
