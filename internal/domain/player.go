package domain

import "math"

// Player accumulates the score of the current quiz for one persistent identity.
// A Player is not safe for concurrent use; one quiz at a time drives it.
type Player struct {
	ID       int64
	Name     string
	score    int
	answered int
}

func NewPlayer(name string, id int64) *Player {
	return &Player{ID: id, Name: name}
}

// RecordAnswer counts one answered question and one point when correct.
func (p *Player) RecordAnswer(correct bool) {
	p.answered++
	if correct {
		p.score++
	}
}

func (p *Player) Score() int { return p.score }
func (p *Player) Answered() int { return p.answered }

// Percentage is 0 until the first answer.
func (p *Player) Percentage() float64 {
	return Percentage(p.score, p.answered)
}

// Reset zeroes the counters before a new quiz.
func (p *Player) Reset() {
	p.score = 0
	p.answered = 0
}

// Percentage returns score/total*100 rounded to two decimals, or 0 when total is 0.
func Percentage(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(score)*100/float64(total)*100) / 100
}
