package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// globals shared by every subcommand
type globals struct {
	configPath string
	noColor    bool
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	g := &globals{}
	cmd := &cobra.Command{
		Use:           "trivia-quiz",
		Short:         "Single-player trivia quiz with a persistent leaderboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
			}
		},
	}

	cmd.PersistentFlags().StringVar(&g.configPath, "config", envConfig, "path to YAML config")
	cmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable coloured output")

	cmd.AddCommand(
		NewPlayCmd(g),
		NewSeedCmd(g),
		NewAddQuestionCmd(g),
		NewLeaderboardCmd(g),
		NewHistoryCmd(g),
		NewExportCmd(g),
		NewMigrateCmd(g),
		NewServeCmd(g),
	)
	return cmd
}
