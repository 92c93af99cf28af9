package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
)

// Store keeps questions, players and scores in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Connect opens a pool for url.
func Connect(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewStore(pool), nil
}

func (s *Store) DrawRandomQuestions(ctx context.Context, count int) ([]domain.QuestionRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, question_text, option_a, option_b, option_c, option_d, correct_answer, category, difficulty
		FROM questions
		ORDER BY random()
		LIMIT $1`, count)
	if err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}
	defer rows.Close()

	var out []domain.QuestionRecord
	for rows.Next() {
		var rec domain.QuestionRecord
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.OptionA, &rec.OptionB, &rec.OptionC, &rec.OptionD,
			&rec.CorrectLetter, &rec.Category, &rec.Difficulty); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) AddQuestion(ctx context.Context, rec domain.QuestionRecord) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx, `
		INSERT INTO questions (question_text, option_a, option_b, option_c, option_d, correct_answer, category, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		rec.Text, rec.OptionA, rec.OptionB, rec.OptionC, rec.OptionD, rec.CorrectLetter, rec.Category, rec.Difficulty,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return id, nil
}

func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func (s *Store) UpsertPlayer(ctx context.Context, name string) (int64, error) {
	var id int64
	// the no-op update makes RETURNING yield the existing row
	err := s.pool.QueryRow(ctx, `
		INSERT INTO players (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert player: %w", err)
	}
	return id, nil
}

func (s *Store) RecordScore(ctx context.Context, playerID int64, score, total int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scores (player_id, score, total_questions) VALUES ($1, $2, $3)`,
		playerID, score, total)
	if err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

func (s *Store) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT p.name, s.score, s.total_questions, s.quiz_date
		FROM scores s
		JOIN players p ON p.id = s.player_id
		ORDER BY ROUND(s.score * 100.0 / s.total_questions, 2) DESC, s.score DESC, s.quiz_date DESC, s.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}
	defer rows.Close()

	var out []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.PlayerName, &e.Score, &e.Total, &e.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.Percentage = domain.Percentage(e.Score, e.Total)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	domain.RankLeaderboard(out)
	return out, nil
}

func (s *Store) HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.score, s.total_questions, s.quiz_date
		FROM scores s
		JOIN players p ON p.id = s.player_id
		WHERE p.name = $1
		ORDER BY s.quiz_date DESC, s.id DESC`, name)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		if err := rows.Scan(&e.Score, &e.Total, &e.PlayedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Percentage = domain.Percentage(e.Score, e.Total)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return conn.Conn().Ping(ctx)
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
