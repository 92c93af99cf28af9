package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
)

// DefaultLeaderboardLimit is used when a caller asks for a non-positive limit.
const DefaultLeaderboardLimit = 10

// GameService runs quiz sessions against a Store. It owns the draw, persists
// only completed sessions and keeps a player to one active quiz through the
// SessionRegistry.
type GameService struct {
	store    Store
	registry SessionRegistry
	log      zerolog.Logger
	now      func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option customises a GameService.
type Option func(*GameService)

// WithClock sets the clock handed to every quiz.
func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

// WithRandSource makes shuffles deterministic.
func WithRandSource(src rand.Source) Option {
	return func(s *GameService) { s.rnd = rand.New(src) }
}

func NewGameService(store Store, registry SessionRegistry, log zerolog.Logger, opts ...Option) *GameService {
	s := &GameService{
		store:    store,
		registry: registry,
		log:      log.With().Str("component", "game").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Session is one quiz being played by one player.
type Session struct {
	ID     string
	Player *domain.Player
	Quiz   *domain.Quiz
	closed bool
}

// Answer scores letter against the current question.
func (s *Session) Answer(letter string) (bool, error) {
	if s.closed {
		return false, ErrSessionClosed
	}
	return s.Quiz.AnswerCurrent(s.Player, letter)
}

// Result is the summary shown after a completed quiz.
type Result struct {
	PlayerName  string        `json:"playerName"`
	Score       int           `json:"score"`
	Total       int           `json:"total"`
	Percentage  float64       `json:"percentage"`
	Duration    time.Duration `json:"duration"`
	Performance string        `json:"performance"`
}

// HistoryReport is a player's past results plus summary statistics.
type HistoryReport struct {
	PlayerName string                `json:"playerName"`
	Entries    []domain.HistoryEntry `json:"entries"`
	Stats      domain.HistoryStats   `json:"stats"`
}

// RegisterPlayer returns the player called name, creating it on first use.
func (s *GameService) RegisterPlayer(ctx context.Context, name string) (*domain.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrEmptyPlayerName
	}
	id, err := s.store.UpsertPlayer(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("register player %q: %w", name, err)
	}
	s.log.Debug().Str("player", name).Int64("player_id", id).Msg("player registered")
	return domain.NewPlayer(name, id), nil
}

// BuildQuiz draws up to count questions and returns a shuffled quiz that has
// not been started yet. Fewer questions than requested is fine, none is not.
func (s *GameService) BuildQuiz(ctx context.Context, count int) (*domain.Quiz, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuestionCount, count)
	}
	records, err := s.store.DrawRandomQuestions(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoQuestionsAvailable, domain.ErrNoQuestions)
	}

	questions := make([]domain.Question, 0, len(records))
	for _, rec := range records {
		q, err := domain.NewQuestion(rec)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	quiz, err := domain.NewQuiz(questions, domain.WithClock(s.now), domain.WithRand(s.quizRand()))
	if err != nil {
		return nil, err
	}
	if err := quiz.Shuffle(); err != nil {
		return nil, err
	}
	return quiz, nil
}

// quizRand derives a private source per quiz so quizzes never share a *rand.Rand.
func (s *GameService) quizRand() *rand.Rand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return rand.New(rand.NewSource(s.rnd.Int63()))
}

// StartSession builds a quiz for player, claims the player's session slot,
// resets the player's counters and starts the quiz.
func (s *GameService) StartSession(ctx context.Context, player *domain.Player, count int) (*Session, error) {
	quiz, err := s.BuildQuiz(ctx, count)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.registry.Acquire(ctx, player.ID, id); err != nil {
		return nil, err
	}

	player.Reset()
	if err := quiz.Start(); err != nil {
		s.release(ctx, player.ID, id)
		return nil, err
	}

	s.log.Debug().
		Str("session", id).
		Str("player", player.Name).
		Int("questions", quiz.Len()).
		Msg("quiz session started")
	return &Session{ID: id, Player: player, Quiz: quiz}, nil
}

// FinishSession persists exactly one score row for a completed session and
// frees the player's slot. A failed write leaves the session open so the
// caller can retry or abandon it.
func (s *GameService) FinishSession(ctx context.Context, session *Session) (Result, error) {
	if session.closed {
		return Result{}, ErrSessionClosed
	}
	if !session.Quiz.Completed() {
		return Result{}, fmt.Errorf("%w: %s answered", ErrSessionIncomplete, session.Quiz.Progress())
	}

	player := session.Player
	total := session.Quiz.Len()
	if err := s.store.RecordScore(ctx, player.ID, player.Score(), total); err != nil {
		return Result{}, fmt.Errorf("record score: %w", err)
	}
	session.closed = true
	s.release(ctx, player.ID, session.ID)

	duration, _ := session.Quiz.Duration()
	pct := domain.Percentage(player.Score(), total)
	s.log.Info().
		Str("session", session.ID).
		Str("player", player.Name).
		Int("score", player.Score()).
		Int("total", total).
		Msg("quiz session finished")

	return Result{
		PlayerName:  player.Name,
		Score:       player.Score(),
		Total:       total,
		Percentage:  pct,
		Duration:    duration,
		Performance: domain.Performance(pct),
	}, nil
}

// AbandonSession drops a session without persisting anything.
func (s *GameService) AbandonSession(ctx context.Context, session *Session) {
	if session == nil || session.closed {
		return
	}
	session.closed = true
	s.release(ctx, session.Player.ID, session.ID)
	s.log.Debug().
		Str("session", session.ID).
		Str("progress", session.Quiz.Progress()).
		Msg("quiz session abandoned")
}

func (s *GameService) release(ctx context.Context, playerID int64, sessionID string) {
	if err := s.registry.Release(ctx, playerID, sessionID); err != nil {
		s.log.Warn().Err(err).Int64("player_id", playerID).Str("session", sessionID).Msg("release session slot")
	}
}

// AddQuestion validates rec and stores it.
func (s *GameService) AddQuestion(ctx context.Context, rec domain.QuestionRecord) (int64, error) {
	valid, err := rec.Validate()
	if err != nil {
		return 0, err
	}
	id, err := s.store.AddQuestion(ctx, valid)
	if err != nil {
		return 0, fmt.Errorf("add question: %w", err)
	}
	return id, nil
}

// SeedSampleQuestions inserts the starter questions when the store has none.
// It returns how many were inserted.
func (s *GameService) SeedSampleQuestions(ctx context.Context) (int, error) {
	n, err := s.store.CountQuestions(ctx)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	if n > 0 {
		return 0, nil
	}
	samples := SampleQuestions()
	for _, rec := range samples {
		if _, err := s.AddQuestion(ctx, rec); err != nil {
			return 0, err
		}
	}
	s.log.Info().Int("questions", len(samples)).Msg("sample questions seeded")
	return len(samples), nil
}

// Leaderboard returns the top results across all players.
func (s *GameService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	entries, err := s.store.TopScores(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	return entries, nil
}

// History returns the results of the player called name. An unknown name
// yields an empty report.
func (s *GameService) History(ctx context.Context, name string) (HistoryReport, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return HistoryReport{}, domain.ErrEmptyPlayerName
	}
	entries, err := s.store.HistoryFor(ctx, name)
	if err != nil && !errors.Is(err, domain.ErrPlayerNotFound) {
		return HistoryReport{}, fmt.Errorf("history for %q: %w", name, err)
	}
	return HistoryReport{
		PlayerName: name,
		Entries:    entries,
		Stats:      domain.SummarizeHistory(entries),
	}, nil
}
