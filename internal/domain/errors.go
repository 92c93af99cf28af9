package domain

import "errors"

var (
	// ErrInvalidLetter is returned when an answer is not one of A, B, C or D.
	ErrInvalidLetter = errors.New("answer must be one of A, B, C or D")
	// ErrInvalidCorrectLetter rejects question data whose correct answer is outside A-D.
	ErrInvalidCorrectLetter = errors.New("correct answer letter must be one of A, B, C or D")
	// ErrInvalidQuestion is returned by write-time validation of custom questions.
	ErrInvalidQuestion = errors.New("invalid question")
	// ErrNoQuestions indicates a quiz cannot be built from an empty question set.
	ErrNoQuestions = errors.New("no questions available")
	// ErrQuizStarted is returned when shuffling or starting a quiz that already started.
	ErrQuizStarted = errors.New("quiz already started")
	// ErrQuizNotStarted is returned when answering before Start.
	ErrQuizNotStarted = errors.New("quiz not started")
	// ErrQuizCompleted is returned when answering past the last question.
	ErrQuizCompleted = errors.New("quiz already completed")
	// ErrInvalidScore rejects a result outside 0 <= score <= total with total > 0.
	ErrInvalidScore = errors.New("score must be between 0 and a positive total")
	// ErrPlayerNotFound indicates an unknown player name.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrEmptyPlayerName rejects blank player names.
	ErrEmptyPlayerName = errors.New("player name must not be empty")
)
