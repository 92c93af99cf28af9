package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerRecordAnswer(t *testing.T) {
	answers := []bool{true, false, true, true, false, false, true}
	p := NewPlayer("alice", 3)

	correct := 0
	for i, a := range answers {
		p.RecordAnswer(a)
		if a {
			correct++
		}
		assert.Equal(t, correct, p.Score())
		assert.Equal(t, i+1, p.Answered())
		assert.LessOrEqual(t, p.Score(), p.Answered())
	}

	want := math.Round(100*float64(correct)/float64(len(answers))*100) / 100
	assert.Equal(t, want, p.Percentage())
	assert.Equal(t, 57.14, p.Percentage())
}

func TestPlayerPercentageZeroAnswers(t *testing.T) {
	p := NewPlayer("bob", 0)
	assert.Equal(t, 0.0, p.Percentage())
}

func TestPlayerReset(t *testing.T) {
	p := NewPlayer("carol", 1)
	p.RecordAnswer(true)
	p.RecordAnswer(false)

	p.Reset()
	assert.Equal(t, 0, p.Score())
	assert.Equal(t, 0, p.Answered())
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "carol", p.Name)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 66.67, Percentage(2, 3))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 0.0, Percentage(0, 4))
	assert.Equal(t, 0.0, Percentage(3, 0))
}
