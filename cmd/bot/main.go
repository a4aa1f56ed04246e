package main

import (
	"context"

	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	fxmodules "dota-tracker/internal/fx"
	"dota-tracker/internal/logger"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/server"
	"dota-tracker/internal/telegram"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.BotModule,
		fx.Invoke(runBot),
	).Run()
}

func runBot(
	lc fx.Lifecycle,
	poller *telegram.Poller,
	m metrics.Recorder,
	cfg *config.Config,
	log zerolog.Logger,
) {
	logger.SetLevel(cfg.LogLevel)

	var metricsSrv *server.Server
	if cfg.MetricsEnabled {
		metricsSrv = server.NewServer(cfg.MetricsAddr(), server.MetricsRoutes(m, log), log)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Str("api", cfg.APIBaseURL).Int("page_size", cfg.PageSize).Msg("bot starting")
			if metricsSrv != nil {
				metricsSrv.Start()
			}
			poller.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down bot")
			poller.Stop()
			if metricsSrv == nil {
				return nil
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()
			return metricsSrv.Shutdown(shutdownCtx)
		},
	})
}
