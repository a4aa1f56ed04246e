package main

import (
	"context"

	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	fxmodules "dota-tracker/internal/fx"
	"dota-tracker/internal/logger"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/repository"
	"dota-tracker/internal/server"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.ServerModule,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	statsServer *server.StatsServer,
	store *repository.Store,
	m metrics.Recorder,
	cfg *config.Config,
	log zerolog.Logger,
) {
	level := logger.SetLevel(cfg.LogLevel)
	m.WatchStore(store)

	srv := server.NewServer(cfg.Addr(), statsServer.Routes(), log)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			players, matches := store.Counts()
			log.Info().
				Str("version", constants.APIVersion).
				Str("level", level.String()).
				Int("players", players).
				Int("matches", matches).
				Msg("stats api ready")
			srv.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
