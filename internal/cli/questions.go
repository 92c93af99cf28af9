package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/domain"
)

// NewSeedCmd inserts the sample questions into an empty store.
func NewSeedCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample questions if the store has none",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer d.Close()

			n, err := d.service.SeedSampleQuestions(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Store already has questions, nothing seeded.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample questions.\n", n)
			return nil
		},
	}
}

// NewAddQuestionCmd stores one question given on the command line.
func NewAddQuestionCmd(g *globals) *cobra.Command {
	var rec domain.QuestionRecord
	cmd := &cobra.Command{
		Use:   "add-question",
		Short: "Add a multiple-choice question",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := rec.Validate(); err != nil {
				return err
			}
			d, err := buildDeps(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer d.Close()

			id, err := d.service.AddQuestion(cmd.Context(), rec)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Question %d added.\n", id)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&rec.Text, "text", "", "question text")
	f.StringVar(&rec.OptionA, "a", "", "option A")
	f.StringVar(&rec.OptionB, "b", "", "option B")
	f.StringVar(&rec.OptionC, "c", "", "option C")
	f.StringVar(&rec.OptionD, "d", "", "option D")
	f.StringVar(&rec.CorrectLetter, "correct", "", "correct option letter (A-D)")
	f.StringVar(&rec.Category, "category", domain.DefaultCategory, "question category")
	f.StringVar(&rec.Difficulty, "difficulty", domain.DefaultDifficulty, "Easy, Medium or Hard")
	for _, name := range []string{"text", "a", "b", "c", "d", "correct"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
