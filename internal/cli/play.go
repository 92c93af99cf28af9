package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/console"
	"trivia-quiz/internal/logging"
)

// NewPlayCmd starts the interactive console game.
func NewPlayCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play the quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			d, err := buildDeps(ctx, g)
			if err != nil {
				return err
			}
			defer d.Close()
			ctx = logging.IntoContext(ctx, d.log)

			if n, err := d.service.SeedSampleQuestions(ctx); err != nil {
				return err
			} else if n > 0 {
				d.log.Info().Int("questions", n).Msg("seeded sample questions")
			}

			runner := console.NewRunner(d.service, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{
				ShortLength:      d.cfg.Quiz.ShortLength,
				LongLength:       d.cfg.Quiz.LongLength,
				LeaderboardLimit: d.cfg.Leaderboard.Limit,
				NoColor:          g.noColor || color.NoColor,
			}, d.log)
			return runner.Run(ctx)
		},
	}
}
