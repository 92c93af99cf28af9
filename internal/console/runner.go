// Package console is the interactive terminal front end of the quiz.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/report"
)

const (
	wideRule   = "=================================================="
	narrowRule = "--------------------------------------------------"
)

// Options tunes the menu.
type Options struct {
	ShortLength      int
	LongLength       int
	LeaderboardLimit int
	NoColor          bool
}

// Runner drives one interactive game over an input and an output stream.
type Runner struct {
	service *app.GameService
	in      io.Reader
	out     io.Writer
	opts    Options
	log     zerolog.Logger

	lines chan string
	done  chan struct{}

	title   *color.Color
	good    *color.Color
	bad     *color.Color
	subtle  *color.Color
	warning *color.Color
}

// state is what the menu remembers between choices.
type state struct {
	player  *domain.Player
	session *app.Session
}

func NewRunner(service *app.GameService, in io.Reader, out io.Writer, opts Options, log zerolog.Logger) *Runner {
	if opts.ShortLength <= 0 {
		opts.ShortLength = 5
	}
	if opts.LongLength <= 0 {
		opts.LongLength = 10
	}
	r := &Runner{
		service: service,
		in:      in,
		out:     out,
		opts:    opts,
		log:     log.With().Str("component", "console").Logger(),
		title:   color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen, color.Bold),
		bad:     color.New(color.FgRed, color.Bold),
		subtle:  color.New(color.FgHiBlack),
		warning: color.New(color.FgYellow),
	}
	if opts.NoColor {
		for _, c := range []*color.Color{r.title, r.good, r.bad, r.subtle, r.warning} {
			c.DisableColor()
		}
	}
	return r
}

// Run plays until the player exits, the input ends or ctx is cancelled.
// A quiz cut short by either of the last two is abandoned, never saved.
func (r *Runner) Run(ctx context.Context) error {
	r.startReader()
	defer close(r.done)
	st := &state{}

	err := r.run(ctx, st)
	if st.session != nil {
		r.service.AbandonSession(context.WithoutCancel(ctx), st.session)
		st.session = nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		r.println("\n\nGame interrupted. Thanks for playing!")
		return nil
	}
	return err
}

func (r *Runner) run(ctx context.Context, st *state) error {
	r.welcome()
	if err := r.choosePlayer(ctx, st); err != nil {
		return err
	}

	for {
		r.menu(st)
		choice, err := r.prompt(ctx, "\nEnter your choice (1-7): ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = r.playQuiz(ctx, st, r.opts.ShortLength)
		case "2":
			err = r.playQuiz(ctx, st, r.opts.LongLength)
		case "3":
			err = r.showLeaderboard(ctx)
		case "4":
			err = r.showHistory(ctx, st)
		case "5":
			err = r.addQuestion(ctx)
		case "6":
			err = r.choosePlayer(ctx, st)
		case "7":
			r.title.Fprintln(r.out, "\n*** Thanks for playing! See you next time! ***")
			return nil
		default:
			r.warning.Fprintln(r.out, "Invalid choice! Please enter 1-7.")
		}
		if err != nil {
			return err
		}
	}
}

func (r *Runner) welcome() {
	r.println(wideRule)
	r.title.Fprintln(r.out, "*** WELCOME TO THE ULTIMATE QUIZ GAME! ***")
	r.println(wideRule)
	r.println("Test your knowledge and compete for the top spot!")
	r.println("")
}

func (r *Runner) menu(st *state) {
	r.println("\n" + wideRule[:40])
	r.title.Fprintln(r.out, "*** QUIZ GAME MAIN MENU ***")
	r.println(wideRule[:40])
	if st.player != nil {
		r.printf("Current Player: %s\n", st.player.Name)
	}
	r.printf("\n1. Play Quiz (%d questions)\n", r.opts.ShortLength)
	r.printf("2. Play Long Quiz (%d questions)\n", r.opts.LongLength)
	r.println("3. View Leaderboard")
	r.println("4. View My History")
	r.println("5. Add Custom Question")
	r.println("6. Change Player")
	r.println("7. Exit Game")
}

func (r *Runner) choosePlayer(ctx context.Context, st *state) error {
	for {
		name, err := r.prompt(ctx, "Enter your name: ")
		if err != nil {
			return err
		}
		player, err := r.service.RegisterPlayer(ctx, name)
		if errors.Is(err, domain.ErrEmptyPlayerName) {
			r.warning.Fprintln(r.out, "Please enter a valid name!")
			continue
		}
		if err != nil {
			return err
		}
		st.player = player
		return nil
	}
}

func (r *Runner) playQuiz(ctx context.Context, st *state, count int) error {
	session, err := r.service.StartSession(ctx, st.player, count)
	switch {
	case errors.Is(err, app.ErrNoQuestionsAvailable):
		r.bad.Fprintln(r.out, "No questions available in the database!")
		return nil
	case errors.Is(err, app.ErrSessionActive):
		r.bad.Fprintln(r.out, "You already have a quiz in progress!")
		return nil
	case err != nil:
		return err
	}
	st.session = session

	quiz := session.Quiz
	r.title.Fprintf(r.out, "\n*** Starting Quiz for %s! ***\n", st.player.Name)
	r.printf("*** %d questions await you! ***\n\n", quiz.Len())

	for quiz.HasNext() {
		q, _ := quiz.Current()
		r.printf("Question %d/%d\n", quiz.Position()+1, quiz.Len())
		r.subtle.Fprintf(r.out, "Category: %s | Difficulty: %s\n", q.Category(), q.Difficulty())
		r.println(narrowRule)
		r.println(q.Text())
		r.println("")
		r.println(q.OptionsText())
		r.println("")

		letter, err := r.askLetter(ctx, "Your answer (A/B/C/D): ")
		if err != nil {
			return err
		}
		correct, err := session.Answer(letter.String())
		if err != nil {
			return err
		}
		if correct {
			r.good.Fprintln(r.out, "*** CORRECT! Well done! ***")
		} else {
			r.bad.Fprintf(r.out, "*** INCORRECT! The correct answer was %s: %s ***\n", q.CorrectLetter(), q.CorrectText())
		}
		r.printf("Current Score: %d/%d\n\n", st.player.Score(), st.player.Answered())
	}

	result, err := r.service.FinishSession(ctx, session)
	if err != nil {
		r.service.AbandonSession(ctx, session)
		st.session = nil
		r.log.Error().Err(err).Msg("save quiz result")
		r.bad.Fprintf(r.out, "Your score could not be saved: %v\n", err)
		return nil
	}
	st.session = nil
	r.showResult(result)
	return nil
}

func (r *Runner) showResult(res app.Result) {
	r.println("\n" + wideRule)
	r.title.Fprintln(r.out, "*** QUIZ COMPLETED! ***")
	r.println(wideRule)
	r.printf("Player: %s\n", res.PlayerName)
	r.printf("Final Score: %d/%d (%s)\n", res.Score, res.Total, report.FormatPercentage(res.Percentage))
	r.printf("Time Taken: %.1f seconds\n", res.Duration.Seconds())
	r.good.Fprintf(r.out, "*** %s ***\n", res.Performance)
	r.println("\n*** Your score has been saved! ***")
}

func (r *Runner) showLeaderboard(ctx context.Context) error {
	entries, err := r.service.Leaderboard(ctx, r.opts.LeaderboardLimit)
	if err != nil {
		return err
	}
	r.println("\n" + wideRule)
	r.title.Fprintln(r.out, "*** LEADERBOARD - TOP PERFORMERS ***")
	r.println(wideRule)
	return report.WriteLeaderboard(r.out, entries)
}

func (r *Runner) showHistory(ctx context.Context, st *state) error {
	rep, err := r.service.History(ctx, st.player.Name)
	if err != nil {
		return err
	}
	r.title.Fprintf(r.out, "\n*** Quiz History for %s ***\n", st.player.Name)
	r.println(wideRule)
	return report.WriteHistory(r.out, rep)
}

func (r *Runner) addQuestion(ctx context.Context) error {
	r.title.Fprintln(r.out, "\n*** Add a New Question ***")
	r.println(wideRule[:30])

	var rec domain.QuestionRecord
	var err error
	if rec.Text, err = r.prompt(ctx, "Enter the question: "); err != nil {
		return err
	}
	if rec.Text == "" {
		r.warning.Fprintln(r.out, "Question cannot be empty!")
		return nil
	}

	r.println("\nEnter the four options:")
	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"Option A: ", &rec.OptionA},
		{"Option B: ", &rec.OptionB},
		{"Option C: ", &rec.OptionC},
		{"Option D: ", &rec.OptionD},
	} {
		if *field.dst, err = r.prompt(ctx, field.label); err != nil {
			return err
		}
	}
	if rec.OptionA == "" || rec.OptionB == "" || rec.OptionC == "" || rec.OptionD == "" {
		r.warning.Fprintln(r.out, "All options must be provided!")
		return nil
	}

	correct, err := r.askLetter(ctx, "Which option is correct? (A/B/C/D): ")
	if err != nil {
		return err
	}
	rec.CorrectLetter = correct.String()

	if rec.Category, err = r.prompt(ctx, "Category (optional, default 'General'): "); err != nil {
		return err
	}
	for {
		if rec.Difficulty, err = r.prompt(ctx, "Difficulty (Easy/Medium/Hard, default 'Medium'): "); err != nil {
			return err
		}
		if _, err := rec.Validate(); !errors.Is(err, domain.ErrInvalidQuestion) {
			break
		}
		r.warning.Fprintln(r.out, "Please enter Easy, Medium, or Hard!")
	}

	if _, err := r.service.AddQuestion(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrInvalidQuestion) || errors.Is(err, domain.ErrInvalidCorrectLetter) {
			r.warning.Fprintf(r.out, "Question rejected: %v\n", err)
			return nil
		}
		return err
	}
	r.good.Fprintln(r.out, "\n*** Question added successfully! ***")
	return nil
}

func (r *Runner) askLetter(ctx context.Context, label string) (domain.Letter, error) {
	for {
		line, err := r.prompt(ctx, label)
		if err != nil {
			return 0, err
		}
		letter, err := domain.ParseLetter(line)
		if err == nil {
			return letter, nil
		}
		r.warning.Fprintln(r.out, "Please enter A, B, C, or D!")
	}
}

func (r *Runner) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(r.out, label)
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

// startReader feeds lines from the input to prompt so a blocked read never
// keeps the runner from noticing cancellation.
func (r *Runner) startReader() {
	r.lines = make(chan string)
	r.done = make(chan struct{})
	go func() {
		defer close(r.lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case r.lines <- scanner.Text():
			case <-r.done:
				return
			}
		}
	}()
}

func (r *Runner) println(s string) {
	fmt.Fprintln(r.out, s)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
