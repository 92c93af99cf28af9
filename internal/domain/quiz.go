package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// State is the lifecycle position of a Quiz.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "Not Started"
	case StateInProgress:
		return "In Progress"
	case StateCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Quiz walks a fixed set of questions in order and routes answers to a Player.
//
// The position only ever moves forward, so Current, HasNext, Progress and
// Duration can be read at any time without affecting scoring. A Quiz is used
// for exactly one session and is not safe for concurrent use.
type Quiz struct {
	questions []Question
	position  int
	started   bool
	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
	rnd       *rand.Rand
}

// QuizOption customises a Quiz at construction.
type QuizOption func(*Quiz)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) QuizOption {
	return func(q *Quiz) { q.now = now }
}

// WithRand sets the source used by Shuffle.
func WithRand(rnd *rand.Rand) QuizOption {
	return func(q *Quiz) { q.rnd = rnd }
}

// NewQuiz copies questions into a new quiz. An empty set is rejected.
func NewQuiz(questions []Question, opts ...QuizOption) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	q := &Quiz{
		questions: append([]Question(nil), questions...),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.rnd == nil {
		q.rnd = rand.New(rand.NewSource(q.now().UnixNano()))
	}
	return q, nil
}

// Shuffle permutes the question order. It must happen before Start.
func (q *Quiz) Shuffle() error {
	if q.started {
		return ErrQuizStarted
	}
	q.rnd.Shuffle(len(q.questions), func(i, j int) {
		q.questions[i], q.questions[j] = q.questions[j], q.questions[i]
	})
	return nil
}

// Start moves the quiz to InProgress and records the start time.
func (q *Quiz) Start() error {
	if q.started {
		return ErrQuizStarted
	}
	q.started = true
	q.position = 0
	q.startedAt = q.now()
	return nil
}

// AnswerCurrent scores answer against the current question, credits p and
// advances. It returns whether the answer was correct. Errors leave both the
// quiz and the player unchanged.
func (q *Quiz) AnswerCurrent(p *Player, answer string) (bool, error) {
	switch q.State() {
	case StateNotStarted:
		return false, ErrQuizNotStarted
	case StateCompleted:
		return false, fmt.Errorf("%w: position %d of %d", ErrQuizCompleted, q.position, len(q.questions))
	}
	if _, err := ParseLetter(answer); err != nil {
		return false, err
	}

	correct := q.questions[q.position].IsCorrect(answer)
	p.RecordAnswer(correct)
	q.position++
	if q.position == len(q.questions) {
		q.endedAt = q.now()
	}
	return correct, nil
}

// HasNext reports whether a question is still waiting for an answer.
func (q *Quiz) HasNext() bool {
	return q.position < len(q.questions)
}

// Current returns the question at the current position; ok is false once completed.
func (q *Quiz) Current() (Question, bool) {
	if !q.HasNext() {
		return Question{}, false
	}
	return q.questions[q.position], true
}

func (q *Quiz) State() State {
	switch {
	case !q.started:
		return StateNotStarted
	case q.position == len(q.questions):
		return StateCompleted
	default:
		return StateInProgress
	}
}

// Completed is true exactly when every question has been answered.
func (q *Quiz) Completed() bool {
	return q.position == len(q.questions)
}

// Duration is the running time while in progress and the final time once
// completed. ok is false before Start.
func (q *Quiz) Duration() (d time.Duration, ok bool) {
	if !q.started {
		return 0, false
	}
	end := q.endedAt
	if !q.Completed() {
		end = q.now()
	}
	return end.Sub(q.startedAt), true
}

func (q *Quiz) Position() int { return q.position }
func (q *Quiz) Len() int { return len(q.questions) }
func (q *Quiz) StartedAt() time.Time { return q.startedAt }
func (q *Quiz) EndedAt() time.Time { return q.endedAt }

// Progress renders "answered/total".
func (q *Quiz) Progress() string {
	return fmt.Sprintf("%d/%d", q.position, len(q.questions))
}

// Questions returns the questions in their current order.
func (q *Quiz) Questions() []Question {
	return append([]Question(nil), q.questions...)
}

func (q *Quiz) String() string {
	return fmt.Sprintf("Quiz: %d questions, Progress: %s, Status: %s", len(q.questions), q.Progress(), q.State())
}
