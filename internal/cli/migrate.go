package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/postgres"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run Postgres migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(g)
			if err != nil {
				return err
			}
			if cfg.Store.Driver != config.DriverPostgres {
				return fmt.Errorf("migrate needs the postgres store driver, configured %q", cfg.Store.Driver)
			}

			applied, err := postgres.Migrate(cmd.Context(), cfg.Postgres.URL)
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				log.Info().Msg("database is up to date")
				return nil
			}
			log.Info().Strs("migrations", applied).Msg("migrations applied")
			return nil
		},
	}
}
