package app

import "errors"

var (
	// ErrInvalidQuestionCount is returned for a quiz length below 1.
	ErrInvalidQuestionCount = errors.New("question count must be positive")
	// ErrNoQuestionsAvailable means the store had nothing to draw.
	ErrNoQuestionsAvailable = errors.New("no questions available in the store")
	// ErrSessionActive means the player already has a quiz in progress.
	ErrSessionActive = errors.New("player already has an active quiz")
	// ErrSessionIncomplete is returned when finishing before the last answer.
	ErrSessionIncomplete = errors.New("quiz session is not completed")
	// ErrSessionClosed is returned when a finished or abandoned session is reused.
	ErrSessionClosed = errors.New("quiz session already closed")
)
