package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"dota-tracker/internal/api"
	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	"dota-tracker/internal/session"
	"dota-tracker/internal/wire"
)

// Messenger delivers bot output to a chat.
type Messenger interface {
	Send(ctx context.Context, chatID int64, msg Message) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, msg Message) error
	Answer(ctx context.Context, callbackID, text string) error
}

// Backend is the stats API as seen by the bot.
type Backend interface {
	CreatePlayer(ctx context.Context, userID, userName string) (*wire.Player, error)
	ListPlayers(ctx context.Context) ([]wire.Player, error)
	Stats(ctx context.Context, userID string) (*wire.Player, error)
	PlayerHeroStats(ctx context.Context, userID string, heroID int) (*wire.PlayerHeroStatsResponse, error)
	Heroes(ctx context.Context) ([]wire.Hero, error)
	Hero(ctx context.Context, heroID int) (*wire.Hero, error)
	Matches(ctx context.Context, q api.MatchesQuery) (*wire.MatchesResponse, error)
	AddMatch(ctx context.Context, userID string) (*wire.Match, error)
	RegenerateMatches(ctx context.Context, playerID string) (*wire.MatchesResponse, error)
}

type TextEvent struct {
	ChatID   int64
	UserID   int64
	UserName string
	Text     string
}

type CallbackEvent struct {
	ChatID     int64
	UserID     int64
	MessageID  int
	CallbackID string
	Data       string
}

// Machine runs one conversation turn at a time per inbound event. Sessions
// are written back only when a turn completes without error.
type Machine struct {
	backend     Backend
	messenger   Messenger
	sessions    *session.Store[Session]
	pageSize    int
	adminChatID int64
	pick        func(n int) int
	now         func() time.Time
	logger      zerolog.Logger
}

func New(cfg *config.Config, backend Backend, messenger Messenger, logger zerolog.Logger) *Machine {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	ttl := cfg.SessionTTL()
	if ttl <= 0 {
		ttl = constants.SessionTTL
	}

	return &Machine{
		backend:     backend,
		messenger:   messenger,
		sessions:    session.New[Session](ttl),
		pageSize:    pageSize,
		adminChatID: cfg.AdminChatID,
		pick:        rand.IntN,
		now:         time.Now,
		logger:      logger.With().Str("component", "bot").Logger(),
	}
}

func sessionKey(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

type step func(ctx context.Context, sess Session) (Session, error)

// runTurn is the failure boundary of a turn. Errors and panics are logged and
// turned into a message for the user. Only a successful step replaces the
// stored session; a failed one just refreshes it.
func (m *Machine) runTurn(ctx context.Context, chatID int64, kind string, fn step) {
	key := sessionKey(chatID)
	logger := m.logger.With().Int64("chat_id", chatID).Str("event", kind).Logger()

	ctx, cancel := context.WithTimeout(ctx, constants.TurnTimeout)
	defer cancel()

	sess := m.sessions.Get(key, Session{State: Idle{}})

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("turn panicked")
			m.touch(key, sess)
			m.apologize(ctx, chatID, msgApology)
		}
	}()

	next, err := fn(ctx, sess)
	if err != nil {
		var apiErr *api.APIError
		switch {
		case errors.Is(err, api.ErrUnavailable):
			logger.Warn().Err(err).Msg("turn failed, api unavailable")
			m.apologize(ctx, chatID, msgUnavailable)
		case errors.As(err, &apiErr):
			logger.Info().Err(err).Msg("turn rejected by api")
			m.apologize(ctx, chatID, "❌ "+apiErr.Message)
		default:
			logger.Error().Err(err).Msg("turn failed")
			m.apologize(ctx, chatID, msgApology)
		}
		m.touch(key, sess)
		return
	}

	if next.empty() {
		m.sessions.Remove(key)
		return
	}
	m.sessions.Put(key, next)
}

// touch rewrites the session as it was before a failed turn so its age
// restarts. A session reset during the turn stays gone.
func (m *Machine) touch(key string, sess Session) {
	if _, ok := m.sessions.Lookup(key); ok {
		m.sessions.Put(key, sess)
	}
}

func (m *Machine) apologize(ctx context.Context, chatID int64, text string) {
	if _, err := m.messenger.Send(ctx, chatID, Message{Text: text}); err != nil {
		m.logger.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send error message")
	}
}

func (m *Machine) send(ctx context.Context, chatID int64, text string, markup *Markup) error {
	if _, err := m.messenger.Send(ctx, chatID, Message{Text: text, Markup: markup}); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// reset drops the chat's session immediately so it stays dropped even if
// the rest of the turn fails.
func (m *Machine) reset(chatID int64) Session {
	m.sessions.Remove(sessionKey(chatID))
	return Session{State: Idle{}}
}

func (m *Machine) Session(chatID int64) (Session, bool) {
	return m.sessions.Lookup(sessionKey(chatID))
}

func (m *Machine) HandleText(ctx context.Context, ev TextEvent) {
	m.runTurn(ctx, ev.ChatID, "text", func(ctx context.Context, sess Session) (Session, error) {
		return m.onText(ctx, ev, sess)
	})
}

func (m *Machine) HandleCallback(ctx context.Context, ev CallbackEvent) {
	m.runTurn(ctx, ev.ChatID, "callback", func(ctx context.Context, sess Session) (Session, error) {
		return m.onCallback(ctx, ev, sess)
	})
}
