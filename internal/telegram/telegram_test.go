package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dota-tracker/internal/bot"
)

type recordingHandler struct {
	texts     []bot.TextEvent
	callbacks []bot.CallbackEvent
}

func (h *recordingHandler) HandleText(ctx context.Context, ev bot.TextEvent) {
	h.texts = append(h.texts, ev)
}

func (h *recordingHandler) HandleCallback(ctx context.Context, ev bot.CallbackEvent) {
	h.callbacks = append(h.callbacks, ev)
}

func TestReplyMarkup_Nil(t *testing.T) {
	assert.Nil(t, replyMarkup(nil))
	assert.Nil(t, replyMarkup(&bot.Markup{}))
}

func TestReplyMarkup_ReplyKeyboard(t *testing.T) {
	got := replyMarkup(&bot.Markup{Reply: [][]string{{"a", "b"}, {"c"}}})

	kb, ok := got.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, kb.ResizeKeyboard)
	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, "a", kb.Keyboard[0][0].Text)
	assert.Equal(t, "b", kb.Keyboard[0][1].Text)
	assert.Equal(t, "c", kb.Keyboard[1][0].Text)
}

func TestReplyMarkup_Inline(t *testing.T) {
	got := replyMarkup(&bot.Markup{Inline: [][]bot.Button{{{Text: "Next", Data: bot.CbNext}}}})

	kb, ok := got.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	btn := kb.InlineKeyboard[0][0]
	assert.Equal(t, "Next", btn.Text)
	require.NotNil(t, btn.CallbackData)
	assert.Equal(t, bot.CbNext, *btn.CallbackData)
}

func TestReplyMarkup_Remove(t *testing.T) {
	got := replyMarkup(&bot.Markup{Remove: true})

	rm, ok := got.(tgbotapi.ReplyKeyboardRemove)
	require.True(t, ok)
	assert.True(t, rm.RemoveKeyboard)
}

func TestInlineMarkup_ReplyOnly(t *testing.T) {
	_, ok := inlineMarkup(&bot.Markup{Reply: [][]string{{"a"}}})
	assert.False(t, ok)
}

func TestDispatch_Text(t *testing.T) {
	h := &recordingHandler{}

	dispatch(context.Background(), h, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 10},
		From: &tgbotapi.User{ID: 7, FirstName: "Ana"},
		Text: "/start",
	}})

	require.Len(t, h.texts, 1)
	assert.Equal(t, bot.TextEvent{ChatID: 10, UserID: 7, UserName: "Ana", Text: "/start"}, h.texts[0])
	assert.Empty(t, h.callbacks)
}

func TestDispatch_PrefersUsername(t *testing.T) {
	h := &recordingHandler{}

	dispatch(context.Background(), h, tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: 10},
		From: &tgbotapi.User{ID: 7, FirstName: "Ana", UserName: "ana_plays"},
		Text: "hi",
	}})

	require.Len(t, h.texts, 1)
	assert.Equal(t, "ana_plays", h.texts[0].UserName)
}

func TestDispatch_Callback(t *testing.T) {
	h := &recordingHandler{}

	dispatch(context.Background(), h, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{MessageID: 55, Chat: &tgbotapi.Chat{ID: 10}},
		Data:    bot.CbPrev,
	}})

	require.Len(t, h.callbacks, 1)
	assert.Equal(t, bot.CallbackEvent{ChatID: 10, UserID: 7, MessageID: 55, CallbackID: "cb-1", Data: bot.CbPrev}, h.callbacks[0])
}

func TestDispatch_IgnoresOtherUpdates(t *testing.T) {
	h := &recordingHandler{}

	dispatch(context.Background(), h, tgbotapi.Update{})
	dispatch(context.Background(), h, tgbotapi.Update{Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}}})
	dispatch(context.Background(), h, tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{ID: "x", Data: bot.CbNext}})

	assert.Empty(t, h.texts)
	assert.Empty(t, h.callbacks)
}

func TestIsNotModified(t *testing.T) {
	assert.True(t, isNotModified(errors.New("Bad Request: message is not modified: specified new message content is the same")))
	assert.False(t, isNotModified(errors.New("Bad Request: message to edit not found")))
}
