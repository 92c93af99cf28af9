package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"trivia-quiz/internal/domain"
)

// Store keeps questions, players and scores in a single SQLite file.
type Store struct {
	db    *gorm.DB
	clock func() time.Time
}

// Open opens (creating if needed) the database at path and migrates the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	return OpenWithClock(path, log, time.Now)
}

// OpenWithClock stamps new scores with now.
func OpenWithClock(path string, log zerolog.Logger, now func() time.Time) (*Store, error) {
	gormLog := gormLogger.New(
		&log,
		gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&questionModel{}, &playerModel{}, &scoreModel{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &Store{db: db, clock: now}, nil
}

func (s *Store) DrawRandomQuestions(ctx context.Context, count int) ([]domain.QuestionRecord, error) {
	var rows []questionModel
	if err := s.db.WithContext(ctx).Order("RANDOM()").Limit(count).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}
	out := make([]domain.QuestionRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.QuestionRecord{
			ID:            r.ID,
			Text:          r.QuestionText,
			OptionA:       r.OptionA,
			OptionB:       r.OptionB,
			OptionC:       r.OptionC,
			OptionD:       r.OptionD,
			CorrectLetter: r.CorrectAnswer,
			Category:      r.Category,
			Difficulty:    r.Difficulty,
		})
	}
	return out, nil
}

func (s *Store) AddQuestion(ctx context.Context, rec domain.QuestionRecord) (int64, error) {
	row := questionModel{
		QuestionText:  rec.Text,
		OptionA:       rec.OptionA,
		OptionB:       rec.OptionB,
		OptionC:       rec.OptionC,
		OptionD:       rec.OptionD,
		CorrectAnswer: rec.CorrectLetter,
		Category:      rec.Category,
		Difficulty:    rec.Difficulty,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}
	return row.ID, nil
}

func (s *Store) CountQuestions(ctx context.Context) (int, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&questionModel{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return int(n), nil
}

func (s *Store) UpsertPlayer(ctx context.Context, name string) (int64, error) {
	p := playerModel{Name: name}
	if err := s.db.WithContext(ctx).Where(playerModel{Name: name}).FirstOrCreate(&p).Error; err != nil {
		return 0, fmt.Errorf("upsert player: %w", err)
	}
	return p.ID, nil
}

func (s *Store) RecordScore(ctx context.Context, playerID int64, score, total int) error {
	row := scoreModel{
		PlayerID:       playerID,
		Score:          score,
		TotalQuestions: total,
		QuizDate:       s.clock().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert score: %w", err)
	}
	return nil
}

type scoreRow struct {
	Name           string
	Score          int
	TotalQuestions int
	QuizDate       time.Time
}

func (s *Store) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var rows []scoreRow
	err := s.db.WithContext(ctx).
		Table("scores").
		Select("players.name, scores.score, scores.total_questions, scores.quiz_date").
		Joins("JOIN players ON players.id = scores.player_id").
		Order("ROUND(scores.score * 100.0 / scores.total_questions, 2) DESC").
		Order("scores.score DESC").
		Order("scores.quiz_date DESC").
		Order("scores.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("top scores: %w", err)
	}

	out := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.LeaderboardEntry{
			PlayerName: r.Name,
			Score:      r.Score,
			Total:      r.TotalQuestions,
			Percentage: domain.Percentage(r.Score, r.TotalQuestions),
			PlayedAt:   r.QuizDate,
		})
	}
	domain.RankLeaderboard(out)
	return out, nil
}

func (s *Store) HistoryFor(ctx context.Context, name string) ([]domain.HistoryEntry, error) {
	var rows []scoreRow
	err := s.db.WithContext(ctx).
		Table("scores").
		Select("players.name, scores.score, scores.total_questions, scores.quiz_date").
		Joins("JOIN players ON players.id = scores.player_id").
		Where("players.name = ?", name).
		Order("scores.quiz_date DESC").
		Order("scores.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	out := make([]domain.HistoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.HistoryEntry{
			Score:      r.Score,
			Total:      r.TotalQuestions,
			Percentage: domain.Percentage(r.Score, r.TotalQuestions),
			PlayedAt:   r.QuizDate,
		})
	}
	return out, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
