package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	transport "trivia-quiz/internal/transport/http"
)

// NewServeCmd serves the read-only leaderboard API and live feed.
func NewServeCmd(g *globals) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the leaderboard over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), g, port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (default from config or PORT)")
	return cmd
}

func runServer(ctx context.Context, g *globals, portFlag string) error {
	d, err := buildDeps(ctx, g)
	if err != nil {
		return err
	}
	defer d.Close()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = d.cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	watcher := app.NewLeaderboardWatcher(d.store, d.cfg.Leaderboard.Limit,
		config.TTLDuration(d.cfg.Leaderboard.Refresh, 2*time.Second), d.log)
	go watcher.Run(watchCtx)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(d.service, watcher, d.log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		d.log.Info().Str("port", finalPort).Msg("starting leaderboard server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.log.Error().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		d.log.Info().Msg("shutting down server")
	case <-ctx.Done():
		d.log.Info().Msg("context canceled, shutting down server")
	}
	cancelWatch()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
