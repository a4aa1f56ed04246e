package fx

import (
	"dota-tracker/internal/api"
	"dota-tracker/internal/bot"
	"dota-tracker/internal/cache"
	"dota-tracker/internal/config"
	"dota-tracker/internal/logger"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/repository"
	"dota-tracker/internal/server"
	"dota-tracker/internal/service"
	"dota-tracker/internal/telegram"

	"go.uber.org/fx"
)

var CommonModule = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(metrics.New),
)

var ServerModule = fx.Options(
	CommonModule,
	fx.Provide(cache.NewInstrumented),
	// store
	fx.Provide(repository.NewStore),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewHeroService),
	// server
	fx.Provide(server.NewStatsServer),
)

var BotModule = fx.Options(
	CommonModule,
	// api client
	fx.Provide(fx.Annotate(api.NewClient, fx.As(new(bot.Backend)))),
	// telegram
	fx.Provide(telegram.NewBotAPI),
	fx.Provide(fx.Annotate(telegram.NewMessenger, fx.As(new(bot.Messenger)))),
	fx.Provide(bot.New),
	fx.Provide(telegram.NewPoller),
)
