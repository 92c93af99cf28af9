package app_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

type testEnv struct {
	service  *app.GameService
	store    *memory.Store
	registry *memory.SessionRegistry
}

func newTestEnv(t *testing.T, seed bool) testEnv {
	t.Helper()
	store := memory.NewStore()
	registry := memory.NewSessionRegistry()
	service := app.NewGameService(store, registry, zerolog.Nop(), app.WithRandSource(rand.NewSource(7)))
	if seed {
		n, err := service.SeedSampleQuestions(context.Background())
		require.NoError(t, err)
		require.Equal(t, 10, n)
	}
	return testEnv{service: service, store: store, registry: registry}
}

func answerAll(t *testing.T, s *app.Session, correct bool) {
	t.Helper()
	for s.Quiz.HasNext() {
		q, ok := s.Quiz.Current()
		require.True(t, ok)
		letter := q.CorrectLetter()
		if !correct {
			letter = domain.Letters[(int(letter)+1)%len(domain.Letters)]
		}
		got, err := s.Answer(letter.String())
		require.NoError(t, err)
		assert.Equal(t, correct, got)
	}
}

func TestPerfectQuizPersistsOneRow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	player, err := env.service.RegisterPlayer(ctx, "  alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", player.Name)

	session, err := env.service.StartSession(ctx, player, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, session.Quiz.Len())
	assert.Equal(t, domain.StateInProgress, session.Quiz.State())

	answerAll(t, session, true)

	result, err := env.service.FinishSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Score)
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 100.0, result.Percentage)
	assert.Equal(t, "Outstanding! You're a quiz master!", result.Performance)

	history, err := env.service.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history.Entries, 1)
	assert.Equal(t, 5, history.Entries[0].Score)
	assert.Equal(t, 5, history.Entries[0].Total)
	assert.Equal(t, 100.0, history.Entries[0].Percentage)
	assert.Equal(t, 1, history.Stats.Quizzes)

	_, err = env.service.FinishSession(ctx, session)
	assert.ErrorIs(t, err, app.ErrSessionClosed)
	history, _ = env.service.History(ctx, "alice")
	assert.Len(t, history.Entries, 1)
}

func TestStartSessionFailsOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	player, err := env.service.RegisterPlayer(ctx, "bob")
	require.NoError(t, err)

	_, err = env.service.StartSession(ctx, player, 5)
	assert.ErrorIs(t, err, app.ErrNoQuestionsAvailable)
	assert.ErrorIs(t, err, domain.ErrNoQuestions)

	_, held := env.registry.Active(player.ID)
	assert.False(t, held)
}

func TestBuildQuizWithFewerQuestionsThanRequested(t *testing.T) {
	env := newTestEnv(t, true)

	quiz, err := env.service.BuildQuiz(context.Background(), 25)
	require.NoError(t, err)
	assert.Equal(t, 10, quiz.Len())
	assert.Equal(t, domain.StateNotStarted, quiz.State())

	_, err = env.service.BuildQuiz(context.Background(), 0)
	assert.ErrorIs(t, err, app.ErrInvalidQuestionCount)
}

func TestBuildQuizRejectsMalformedRow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.AddQuestion(ctx, domain.QuestionRecord{
		Text: "broken", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectLetter: "E",
	})
	require.NoError(t, err)
	service := app.NewGameService(store, memory.NewSessionRegistry(), zerolog.Nop())

	_, err = service.BuildQuiz(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidCorrectLetter)
}

func TestOneActiveSessionPerPlayer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	player, _ := env.service.RegisterPlayer(ctx, "carol")

	first, err := env.service.StartSession(ctx, player, 3)
	require.NoError(t, err)

	_, err = env.service.StartSession(ctx, player, 3)
	assert.ErrorIs(t, err, app.ErrSessionActive)

	env.service.AbandonSession(ctx, first)
	second, err := env.service.StartSession(ctx, player, 3)
	require.NoError(t, err)
	env.service.AbandonSession(ctx, second)
}

func TestFinishIncompleteSession(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	player, _ := env.service.RegisterPlayer(ctx, "dave")

	session, err := env.service.StartSession(ctx, player, 3)
	require.NoError(t, err)
	_, err = session.Answer("A")
	require.NoError(t, err)

	_, err = env.service.FinishSession(ctx, session)
	assert.ErrorIs(t, err, app.ErrSessionIncomplete)
}

func TestAbandonedSessionIsNeverPersisted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	player, _ := env.service.RegisterPlayer(ctx, "erin")

	session, err := env.service.StartSession(ctx, player, 5)
	require.NoError(t, err)
	_, _ = session.Answer("A")
	_, _ = session.Answer("B")
	env.service.AbandonSession(ctx, session)

	_, err = session.Answer("C")
	assert.ErrorIs(t, err, app.ErrSessionClosed)

	history, err := env.service.History(ctx, "erin")
	require.NoError(t, err)
	assert.Empty(t, history.Entries)

	board, err := env.service.Leaderboard(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, board)
}

func TestStartSessionResetsPlayer(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	player, _ := env.service.RegisterPlayer(ctx, "frank")

	first, err := env.service.StartSession(ctx, player, 2)
	require.NoError(t, err)
	answerAll(t, first, true)
	_, err = env.service.FinishSession(ctx, first)
	require.NoError(t, err)

	second, err := env.service.StartSession(ctx, player, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, player.Score())
	assert.Equal(t, 0, player.Answered())
	answerAll(t, second, false)

	result, err := env.service.FinishSession(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0.0, result.Percentage)

	history, _ := env.service.History(ctx, "frank")
	require.Len(t, history.Entries, 2)
	assert.Equal(t, 50.0, history.Stats.AveragePercentage)
	assert.Equal(t, 2, history.Stats.Best.Score)
}

func TestRegisterPlayerValidation(t *testing.T) {
	env := newTestEnv(t, false)
	_, err := env.service.RegisterPlayer(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyPlayerName)

	a, _ := env.service.RegisterPlayer(context.Background(), "gina")
	b, _ := env.service.RegisterPlayer(context.Background(), "gina")
	assert.Equal(t, a.ID, b.ID)
}

func TestAddQuestionValidates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	_, err := env.service.AddQuestion(ctx, domain.QuestionRecord{Text: "missing options", CorrectLetter: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuestion)

	id, err := env.service.AddQuestion(ctx, domain.QuestionRecord{
		Text: "What is 3 x 3?", OptionA: "6", OptionB: "9", OptionC: "12", OptionD: "3", CorrectLetter: "b",
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	records, err := env.store.DrawRandomQuestions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "B", records[0].CorrectLetter)
	assert.Equal(t, domain.DefaultCategory, records[0].Category)
	assert.Equal(t, domain.DefaultDifficulty, records[0].Difficulty)
}

func TestSeedSampleQuestionsOnlyOnce(t *testing.T) {
	env := newTestEnv(t, true)
	n, err := env.service.SeedSampleQuestions(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	count, _ := env.store.CountQuestions(context.Background())
	assert.Equal(t, 10, count)
}

func TestLeaderboardDefaultsLimit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	for i := 0; i < app.DefaultLeaderboardLimit+2; i++ {
		player, err := env.service.RegisterPlayer(ctx, "p"+string(rune('a'+i)))
		require.NoError(t, err)
		require.NoError(t, env.store.RecordScore(ctx, player.ID, 1, 2))
	}

	board, err := env.service.Leaderboard(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, board, app.DefaultLeaderboardLimit)
}

func TestSessionDurationUsesServiceClock(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := memory.NewStore()
	service := app.NewGameService(store, memory.NewSessionRegistry(), zerolog.Nop(), app.WithClock(clock))
	_, err := service.SeedSampleQuestions(ctx)
	require.NoError(t, err)

	player, _ := service.RegisterPlayer(ctx, "hank")
	session, err := service.StartSession(ctx, player, 2)
	require.NoError(t, err)
	now = now.Add(30 * time.Second)
	answerAll(t, session, true)

	result, err := service.FinishSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, result.Duration)
}

type failingScores struct {
	*memory.Store
}

func (failingScores) RecordScore(context.Context, int64, int, int) error {
	return errors.New("disk full")
}

func TestFinishSessionKeepsSessionOpenOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	inner := memory.NewStore()
	registry := memory.NewSessionRegistry()
	service := app.NewGameService(failingScores{inner}, registry, zerolog.Nop())
	_, err := service.SeedSampleQuestions(ctx)
	require.NoError(t, err)

	player, _ := service.RegisterPlayer(ctx, "ivy")
	session, err := service.StartSession(ctx, player, 1)
	require.NoError(t, err)
	answerAll(t, session, true)

	_, err = service.FinishSession(ctx, session)
	require.Error(t, err)
	_, held := registry.Active(player.ID)
	assert.True(t, held)

	service.AbandonSession(ctx, session)
	_, held = registry.Active(player.ID)
	assert.False(t, held)
}
