package domain

import (
	"fmt"
	"strings"
)

const (
	DefaultCategory   = "General"
	DefaultDifficulty = "Medium"
)

// Difficulties lists the labels accepted for custom questions.
var Difficulties = []string{"Easy", "Medium", "Hard"}

// Letter tags one of the four answer options.
type Letter int

const (
	LetterA Letter = iota
	LetterB
	LetterC
	LetterD
)

// Letters holds every option tag in display order.
var Letters = [...]Letter{LetterA, LetterB, LetterC, LetterD}

func (l Letter) String() string {
	if !l.Valid() {
		return "?"
	}
	return string(rune('A' + int(l)))
}

// Valid reports whether l is one of A-D.
func (l Letter) Valid() bool {
	return l >= LetterA && l <= LetterD
}

// ParseLetter accepts "a", " B ", "c" and so on.
func ParseLetter(s string) (Letter, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, ErrInvalidLetter
	}
	l := Letter(s[0] - 'A')
	if !l.Valid() {
		return 0, ErrInvalidLetter
	}
	return l, nil
}

// Options holds the four option texts indexed by Letter.
type Options [4]string

// Get returns the text of the option tagged l.
func (o Options) Get(l Letter) string {
	if !l.Valid() {
		return ""
	}
	return o[l]
}

// QuestionRecord is a question as it is stored.
type QuestionRecord struct {
	ID            int64  `json:"id"`
	Text          string `json:"text"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectLetter string `json:"correctLetter"`
	Category      string `json:"category"`
	Difficulty    string `json:"difficulty"`
}

// Validate checks a record before it is written and returns the normalised copy.
func (r QuestionRecord) Validate() (QuestionRecord, error) {
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return r, fmt.Errorf("%w: text must not be empty", ErrInvalidQuestion)
	}
	opts := [...]*string{&r.OptionA, &r.OptionB, &r.OptionC, &r.OptionD}
	for i, opt := range opts {
		*opt = strings.TrimSpace(*opt)
		if *opt == "" {
			return r, fmt.Errorf("%w: option %s must not be empty", ErrInvalidQuestion, Letters[i])
		}
	}
	correct, err := ParseLetter(r.CorrectLetter)
	if err != nil {
		return r, ErrInvalidCorrectLetter
	}
	r.CorrectLetter = correct.String()

	r.Category = strings.TrimSpace(r.Category)
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	difficulty, ok := normaliseDifficulty(r.Difficulty)
	if !ok {
		return r, fmt.Errorf("%w: difficulty must be Easy, Medium or Hard", ErrInvalidQuestion)
	}
	r.Difficulty = difficulty
	return r, nil
}

func normaliseDifficulty(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDifficulty, true
	}
	for _, d := range Difficulties {
		if strings.EqualFold(d, raw) {
			return d, true
		}
	}
	return "", false
}

// Question is one immutable multiple-choice item.
type Question struct {
	id         int64
	text       string
	options    Options
	correct    Letter
	category   string
	difficulty string
}

// NewQuestion builds a Question from a stored record. A correct letter outside
// A-D is rejected here so a quiz never carries an unanswerable question.
func NewQuestion(rec QuestionRecord) (Question, error) {
	correct, err := ParseLetter(rec.CorrectLetter)
	if err != nil {
		return Question{}, fmt.Errorf("question %d: %w", rec.ID, ErrInvalidCorrectLetter)
	}
	category := rec.Category
	if category == "" {
		category = DefaultCategory
	}
	difficulty := rec.Difficulty
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}
	return Question{
		id:         rec.ID,
		text:       rec.Text,
		options:    Options{rec.OptionA, rec.OptionB, rec.OptionC, rec.OptionD},
		correct:    correct,
		category:   category,
		difficulty: difficulty,
	}, nil
}

func (q Question) ID() int64 { return q.id }
func (q Question) Text() string { return q.text }
func (q Question) Options() Options { return q.options }
func (q Question) Option(l Letter) string { return q.options.Get(l) }
func (q Question) CorrectLetter() Letter { return q.correct }
func (q Question) CorrectText() string { return q.options.Get(q.correct) }
func (q Question) Category() string { return q.category }
func (q Question) Difficulty() string { return q.difficulty }

// IsCorrect compares answer with the correct letter, ignoring case.
func (q Question) IsCorrect(answer string) bool {
	l, err := ParseLetter(answer)
	if err != nil {
		return false
	}
	return l == q.correct
}

// OptionsText renders "A. ..." through "D. ..." one per line.
func (q Question) OptionsText() string {
	lines := make([]string, 0, len(Letters))
	for _, l := range Letters {
		lines = append(lines, fmt.Sprintf("%s. %s", l, q.options[l]))
	}
	return strings.Join(lines, "\n")
}

func (q Question) String() string {
	return q.text + "\n" + q.OptionsText()
}

// Record converts the question back into its stored form.
func (q Question) Record() QuestionRecord {
	return QuestionRecord{
		ID:            q.id,
		Text:          q.text,
		OptionA:       q.options[LetterA],
		OptionB:       q.options[LetterB],
		OptionC:       q.options[LetterC],
		OptionD:       q.options[LetterD],
		CorrectLetter: q.correct.String(),
		Category:      q.category,
		Difficulty:    q.difficulty,
	}
}
