package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/memory"
	"trivia-quiz/internal/infra/postgres"
	rediscache "trivia-quiz/internal/infra/redis"
	"trivia-quiz/internal/infra/sqlite"
	"trivia-quiz/internal/logging"
)

// deps is everything a command needs, built once from the configuration.
type deps struct {
	cfg     config.Config
	log     zerolog.Logger
	store   app.Store
	service *app.GameService
	closers []func() error
}

func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}

func loadConfig(g *globals) (config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logging.New("trivia-quiz", cfg.Log.Env, cfg.Log.Level), nil
}

func buildDeps(ctx context.Context, g *globals) (*deps, error) {
	cfg, log, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	d := &deps{cfg: cfg, log: log}

	base, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	d.closers = append(d.closers, base.Close)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		d.closers = append(d.closers, redisClient.Close)
	}

	cacheTTL := config.TTLDuration(cfg.Leaderboard.CacheTTL, 30*time.Second)
	var reporter app.Reporter
	var registry app.SessionRegistry
	if redisClient != nil {
		reporter = rediscache.NewLeaderboardCache(redisClient, base, cacheTTL, log)
		registry = rediscache.NewSessionRegistry(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		reporter = memory.NewLeaderboardCache(base, cacheTTL)
		registry = memory.NewSessionRegistry()
	}

	d.store = app.WithReporter(base, reporter)
	d.service = app.NewGameService(d.store, registry, log)
	return d, nil
}

func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) (app.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.SQLite.Path, log)
	case config.DriverPostgres:
		applied, err := postgres.Migrate(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migrations applied")
		}
		return postgres.Connect(ctx, cfg.Postgres.URL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
