package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/report"
)

// NewLeaderboardCmd prints the top results.
func NewLeaderboardCmd(g *globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the top results",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer d.Close()

			if limit <= 0 {
				limit = d.cfg.Leaderboard.Limit
			}
			entries, err := d.service.Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return report.WriteLeaderboard(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of rows (default from config)")
	return cmd
}

// NewHistoryCmd prints one player's results and statistics.
func NewHistoryCmd(g *globals) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a player's quiz history",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := buildDeps(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer d.Close()

			rep, err := d.service.History(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Quiz History for %s\n", rep.PlayerName)
			return report.WriteHistory(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "player name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// NewExportCmd writes the leaderboard as CSV to a file or stdout.
func NewExportCmd(g *globals) *cobra.Command {
	var (
		limit int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the leaderboard as CSV",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			d, err := buildDeps(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer d.Close()

			if limit <= 0 {
				limit = d.cfg.Leaderboard.Limit
			}
			entries, err := d.service.Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out != "" {
				var f *os.File
				f, err = os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer func() {
					if cerr := f.Close(); err == nil {
						err = cerr
					}
				}()
				w = f
			}
			if err := report.WriteLeaderboardCSV(w, entries); err != nil {
				return err
			}
			if out != "" {
				d.log.Info().Str("file", out).Int("rows", len(entries)).Msg("leaderboard exported")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of rows (default from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
