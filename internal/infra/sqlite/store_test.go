package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func openTestStore(t *testing.T, now func() time.Time) *Store {
	t.Helper()
	store, err := OpenWithClock(filepath.Join(t.TempDir(), "quiz.db"), zerolog.Nop(), now)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreQuestions(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, time.Now)

	n, err := store.CountQuestions(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	for _, rec := range app.SampleQuestions() {
		_, err := store.AddQuestion(ctx, rec)
		require.NoError(t, err)
	}

	drawn, err := store.DrawRandomQuestions(ctx, 5)
	require.NoError(t, err)
	require.Len(t, drawn, 5)
	seen := make(map[int64]bool)
	for _, rec := range drawn {
		assert.False(t, seen[rec.ID])
		seen[rec.ID] = true
		_, err := domain.NewQuestion(rec)
		assert.NoError(t, err)
	}

	all, err := store.DrawRandomQuestions(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, all, 10)
}

func TestStoreRejectsBadCorrectLetter(t *testing.T) {
	store := openTestStore(t, time.Now)
	_, err := store.AddQuestion(context.Background(), domain.QuestionRecord{
		Text: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectLetter: "E",
		Category: "General", Difficulty: "Medium",
	})
	assert.Error(t, err)
}

func TestStoreUpsertPlayer(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, time.Now)

	a, err := store.UpsertPlayer(ctx, "alice")
	require.NoError(t, err)
	again, err := store.UpsertPlayer(ctx, "alice")
	require.NoError(t, err)
	b, err := store.UpsertPlayer(ctx, "bob")
	require.NoError(t, err)

	assert.Equal(t, a, again)
	assert.NotEqual(t, a, b)
}

func TestStoreLeaderboardAndHistory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	store := openTestStore(t, func() time.Time {
		now = now.Add(time.Minute)
		return now
	})

	s1, _ := store.UpsertPlayer(ctx, "s1")
	s2, _ := store.UpsertPlayer(ctx, "s2")
	s3, _ := store.UpsertPlayer(ctx, "s3")
	require.NoError(t, store.RecordScore(ctx, s1, 100, 125))
	require.NoError(t, store.RecordScore(ctx, s2, 100, 125))
	require.NoError(t, store.RecordScore(ctx, s3, 45, 50))
	require.NoError(t, store.RecordScore(ctx, s1, 1, 5))

	top, err := store.TopScores(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, "s3", top[0].PlayerName)
	assert.Equal(t, 90.0, top[0].Percentage)
	assert.Equal(t, "s2", top[1].PlayerName)
	assert.Equal(t, "s1", top[2].PlayerName)
	assert.Equal(t, 3, top[2].Rank)

	history, err := store.HistoryFor(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Score)
	assert.Equal(t, 20.0, history[0].Percentage)
	assert.Equal(t, 100, history[1].Score)
	assert.True(t, history[0].PlayedAt.After(history[1].PlayedAt))

	none, err := store.HistoryFor(ctx, "ghost")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStoreRejectsZeroTotal(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t, time.Now)
	id, _ := store.UpsertPlayer(ctx, "zed")
	assert.Error(t, store.RecordScore(ctx, id, 0, 0))
}
