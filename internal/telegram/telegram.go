package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"dota-tracker/internal/bot"
	"dota-tracker/internal/config"
)

const updateTimeoutSeconds = 60

var ErrMissingToken = errors.New("BOT_TOKEN is not set")

// Messenger sends bot output through the Telegram Bot API.
type Messenger struct {
	api    *tgbotapi.BotAPI
	logger zerolog.Logger
}

func NewBotAPI(cfg *config.Config, logger zerolog.Logger) (*tgbotapi.BotAPI, error) {
	if cfg.BotToken == "" {
		return nil, ErrMissingToken
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}

	logger.Info().Str("username", api.Self.UserName).Msg("authorized on telegram")
	return api, nil
}

func NewMessenger(api *tgbotapi.BotAPI, logger zerolog.Logger) *Messenger {
	return &Messenger{
		api:    api,
		logger: logger.With().Str("component", "telegram").Logger(),
	}
}

func (m *Messenger) Send(ctx context.Context, chatID int64, msg bot.Message) (int, error) {
	out := tgbotapi.NewMessage(chatID, msg.Text)
	if markup := replyMarkup(msg.Markup); markup != nil {
		out.ReplyMarkup = markup
	}

	sent, err := m.api.Send(out)
	if err != nil {
		return 0, fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return sent.MessageID, nil
}

// Edit replaces the text and inline keyboard of an earlier message. Telegram
// rejects edits that change nothing; those count as success.
func (m *Messenger) Edit(ctx context.Context, chatID int64, messageID int, msg bot.Message) error {
	var edit tgbotapi.EditMessageTextConfig
	if kb, ok := inlineMarkup(msg.Markup); ok {
		edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, msg.Text, kb)
	} else {
		edit = tgbotapi.NewEditMessageText(chatID, messageID, msg.Text)
	}

	if _, err := m.api.Request(edit); err != nil {
		if isNotModified(err) {
			return nil
		}
		return fmt.Errorf("failed to edit message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

func (m *Messenger) Answer(ctx context.Context, callbackID, text string) error {
	if _, err := m.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("failed to answer callback %s: %w", callbackID, err)
	}
	return nil
}

func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}

func replyMarkup(mk *bot.Markup) any {
	if mk == nil {
		return nil
	}
	switch {
	case mk.Remove:
		return tgbotapi.NewRemoveKeyboard(false)
	case len(mk.Inline) > 0:
		kb, _ := inlineMarkup(mk)
		return kb
	case len(mk.Reply) > 0:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(mk.Reply))
		for _, labels := range mk.Reply {
			row := make([]tgbotapi.KeyboardButton, 0, len(labels))
			for _, label := range labels {
				row = append(row, tgbotapi.NewKeyboardButton(label))
			}
			rows = append(rows, row)
		}
		kb := tgbotapi.NewReplyKeyboard(rows...)
		kb.ResizeKeyboard = true
		return kb
	}
	return nil
}

func inlineMarkup(mk *bot.Markup) (tgbotapi.InlineKeyboardMarkup, bool) {
	if mk == nil || len(mk.Inline) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(mk.Inline))
	for _, buttons := range mk.Inline {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(buttons))
		for _, b := range buttons {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}
