package sqlite

import "time"

type questionModel struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	QuestionText  string `gorm:"not null"`
	OptionA       string `gorm:"not null"`
	OptionB       string `gorm:"not null"`
	OptionC       string `gorm:"not null"`
	OptionD       string `gorm:"not null"`
	CorrectAnswer string `gorm:"size:1;not null;check:correct_answer IN ('A','B','C','D')"`
	Category      string `gorm:"not null;default:General"`
	Difficulty    string `gorm:"not null;default:Medium"`
}

func (questionModel) TableName() string { return "questions" }

type playerModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}

func (playerModel) TableName() string { return "players" }

type scoreModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	PlayerID       int64     `gorm:"not null;index"`
	Score          int       `gorm:"not null"`
	TotalQuestions int       `gorm:"not null;check:total_questions > 0"`
	QuizDate       time.Time `gorm:"not null;index"`
}

func (scoreModel) TableName() string { return "scores" }
