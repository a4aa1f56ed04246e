package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"dota-tracker/internal/bot"
)

// Handler consumes inbound chat events.
type Handler interface {
	HandleText(ctx context.Context, ev bot.TextEvent)
	HandleCallback(ctx context.Context, ev bot.CallbackEvent)
}

// Poller long-polls Telegram for updates and feeds them to a Handler one at
// a time, in arrival order.
type Poller struct {
	api     *tgbotapi.BotAPI
	handler Handler
	logger  zerolog.Logger

	cancel context.CancelFunc
	done   sync.WaitGroup
}

func NewPoller(api *tgbotapi.BotAPI, handler *bot.Machine, logger zerolog.Logger) *Poller {
	return &Poller{
		api:     api,
		handler: handler,
		logger:  logger.With().Str("component", "poller").Logger(),
	}
}

func (p *Poller) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds
	updates := p.api.GetUpdatesChan(u)

	p.done.Add(1)
	go func() {
		defer p.done.Done()
		p.logger.Info().Msg("polling for updates")
		for {
			select {
			case <-ctx.Done():
				return
			case upd, ok := <-updates:
				if !ok {
					return
				}
				dispatch(ctx, p.handler, upd)
			}
		}
	}()
}

// Stop ends polling and waits for the update being handled to finish.
func (p *Poller) Stop() {
	p.api.StopReceivingUpdates()
	if p.cancel != nil {
		p.cancel()
	}
	p.done.Wait()
	p.logger.Info().Msg("polling stopped")
}

// dispatch routes a text message or a callback query. Anything else is
// ignored.
func dispatch(ctx context.Context, h Handler, upd tgbotapi.Update) {
	switch {
	case upd.CallbackQuery != nil:
		if ev, ok := callbackEvent(upd.CallbackQuery); ok {
			h.HandleCallback(ctx, ev)
		}
	case upd.Message != nil:
		if ev, ok := textEvent(upd.Message); ok {
			h.HandleText(ctx, ev)
		}
	}
}

func textEvent(msg *tgbotapi.Message) (bot.TextEvent, bool) {
	if msg.Chat == nil || msg.Text == "" {
		return bot.TextEvent{}, false
	}
	ev := bot.TextEvent{ChatID: msg.Chat.ID, Text: msg.Text}
	if msg.From != nil {
		ev.UserID = msg.From.ID
		ev.UserName = displayName(msg.From)
	}
	return ev, true
}

func callbackEvent(q *tgbotapi.CallbackQuery) (bot.CallbackEvent, bool) {
	if q.Message == nil || q.Message.Chat == nil {
		return bot.CallbackEvent{}, false
	}
	ev := bot.CallbackEvent{
		ChatID:     q.Message.Chat.ID,
		MessageID:  q.Message.MessageID,
		CallbackID: q.ID,
		Data:       q.Data,
	}
	if q.From != nil {
		ev.UserID = q.From.ID
	}
	return ev, true
}

func displayName(u *tgbotapi.User) string {
	if u.UserName != "" {
		return u.UserName
	}
	return u.FirstName
}
