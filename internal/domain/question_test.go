package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() QuestionRecord {
	return QuestionRecord{
		ID:            7,
		Text:          "Which planet is known as the Red Planet?",
		OptionA:       "Venus",
		OptionB:       "Mars",
		OptionC:       "Jupiter",
		OptionD:       "Saturn",
		CorrectLetter: "b",
		Category:      "Science",
		Difficulty:    "Easy",
	}
}

func TestParseLetter(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Letter
	}{
		{"A", LetterA}, {"b", LetterB}, {" c ", LetterC}, {"D", LetterD},
	} {
		got, err := ParseLetter(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []string{"", "E", "AB", "1", "@", "é"} {
		_, err := ParseLetter(bad)
		assert.ErrorIs(t, err, ErrInvalidLetter, bad)
	}
}

func TestNewQuestionNormalisesCorrectLetter(t *testing.T) {
	q, err := NewQuestion(sampleRecord())
	require.NoError(t, err)

	assert.Equal(t, LetterB, q.CorrectLetter())
	assert.Equal(t, "Mars", q.CorrectText())
	assert.Equal(t, "B", q.Record().CorrectLetter)
}

func TestNewQuestionDefaults(t *testing.T) {
	rec := sampleRecord()
	rec.Category = ""
	rec.Difficulty = ""

	q, err := NewQuestion(rec)
	require.NoError(t, err)
	assert.Equal(t, "General", q.Category())
	assert.Equal(t, "Medium", q.Difficulty())
}

func TestNewQuestionRejectsBadCorrectLetter(t *testing.T) {
	for _, letter := range []string{"E", "", "AB", "z"} {
		rec := sampleRecord()
		rec.CorrectLetter = letter
		_, err := NewQuestion(rec)
		assert.ErrorIs(t, err, ErrInvalidCorrectLetter, letter)
	}
}

func TestIsCorrectIgnoresCase(t *testing.T) {
	q, err := NewQuestion(sampleRecord())
	require.NoError(t, err)

	for _, l := range []string{"a", "b", "c", "d"} {
		upper := string(rune(l[0] - 'a' + 'A'))
		assert.Equal(t, q.IsCorrect(upper), q.IsCorrect(l), l)
	}
	assert.True(t, q.IsCorrect("b"))
	assert.True(t, q.IsCorrect("B"))
	assert.False(t, q.IsCorrect("A"))
	assert.False(t, q.IsCorrect("E"))
}

func TestOptionsText(t *testing.T) {
	q, err := NewQuestion(sampleRecord())
	require.NoError(t, err)

	want := "A. Venus\nB. Mars\nC. Jupiter\nD. Saturn"
	assert.Equal(t, want, q.OptionsText())
	assert.Equal(t, q.OptionsText(), q.OptionsText())
	assert.Equal(t, "Which planet is known as the Red Planet?\n"+want, q.String())
}

func TestValidateRecord(t *testing.T) {
	rec := sampleRecord()
	rec.Text = "  What is 2 + 2?  "
	rec.Category = " "
	rec.Difficulty = "hard"
	rec.CorrectLetter = "d"

	got, err := rec.Validate()
	require.NoError(t, err)
	assert.Equal(t, "What is 2 + 2?", got.Text)
	assert.Equal(t, "General", got.Category)
	assert.Equal(t, "Hard", got.Difficulty)
	assert.Equal(t, "D", got.CorrectLetter)

	testCases := []struct {
		name   string
		mutate func(*QuestionRecord)
		want   error
	}{
		{"empty text", func(r *QuestionRecord) { r.Text = "" }, ErrInvalidQuestion},
		{"missing option", func(r *QuestionRecord) { r.OptionC = "  " }, ErrInvalidQuestion},
		{"bad letter", func(r *QuestionRecord) { r.CorrectLetter = "F" }, ErrInvalidCorrectLetter},
		{"bad difficulty", func(r *QuestionRecord) { r.Difficulty = "Impossible" }, ErrInvalidQuestion},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := sampleRecord()
			tc.mutate(&rec)
			_, err := rec.Validate()
			assert.ErrorIs(t, err, tc.want)
		})
	}
}
