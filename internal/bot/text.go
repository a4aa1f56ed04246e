package bot

import (
	"context"
	"fmt"
	"strings"

	"dota-tracker/internal/api"
	"dota-tracker/internal/constants"
)

func (m *Machine) onText(ctx context.Context, ev TextEvent, sess Session) (Session, error) {
	text := strings.TrimSpace(ev.Text)
	user := userKey(ev.UserID)

	// Commands and main menu entries win over whatever the chat was waiting for.
	switch text {
	case CmdStart, CmdRestart:
		return m.start(ctx, ev, text == CmdStart)
	case CmdHelp, BtnHelp:
		return sess.withState(Idle{}), m.send(ctx, ev.ChatID, msgHelp, mainMenu())
	case BtnCancel:
		sess = m.reset(ev.ChatID)
		return sess, m.send(ctx, ev.ChatID, msgCancelled, mainMenu())
	case BtnMyMatches:
		return m.browse(ctx, ev.ChatID, sess.withState(Idle{}), &Cursor{Viewer: user, PlayerID: user, ViewingSelf: true})
	case BtnPlayerMatches:
		return sess.withState(AwaitingPlayer{}), m.send(ctx, ev.ChatID, msgAskPlayer, playerPrompt())
	case BtnHeroes:
		return m.showHeroes(ctx, ev.ChatID, sess)
	case BtnHeroInfo:
		return m.askHero(ctx, ev.ChatID, sess)
	case BtnMyStats:
		return m.showStats(ctx, ev.ChatID, user, sess)
	case BtnRefresh:
		return m.addMatch(ctx, ev.ChatID, user, sess)
	}

	switch st := sess.state().(type) {
	case AwaitingPlayer:
		return m.onPlayerInput(ctx, ev.ChatID, user, text, sess)
	case AwaitingHero:
		return m.onHeroInput(ctx, ev.ChatID, text, sess)
	case AwaitingHeroDetail:
		return m.onHeroDetailInput(ctx, ev.ChatID, user, text, st.HeroID, sess)
	default:
		return sess, m.send(ctx, ev.ChatID, msgUnknown, mainMenu())
	}
}

func (m *Machine) start(ctx context.Context, ev TextEvent, notifyAdmin bool) (Session, error) {
	sess := m.reset(ev.ChatID)

	name := ev.UserName
	if name == "" {
		name = constants.DefaultOwnerName
	}
	if _, err := m.backend.CreatePlayer(ctx, userKey(ev.UserID), name); err != nil {
		return sess, err
	}

	if notifyAdmin && m.adminChatID != 0 && m.adminChatID != ev.ChatID {
		note := fmt.Sprintf("👤 New user started the bot: %s (id %d)", name, ev.UserID)
		if _, err := m.messenger.Send(ctx, m.adminChatID, Message{Text: note}); err != nil {
			m.logger.Warn().Err(err).Int64("admin_chat_id", m.adminChatID).Msg("failed to notify admin")
		}
	}

	return sess, m.send(ctx, ev.ChatID, msgWelcome, mainMenu())
}

func (m *Machine) onPlayerInput(ctx context.Context, chatID int64, user, text string, sess Session) (Session, error) {
	if text == "" {
		return sess, m.send(ctx, chatID, msgAskPlayer, playerPrompt())
	}

	cursor := &Cursor{PlayerName: text}
	if text == BtnRandomPlayer {
		cursor = m.randomPlayer(ctx)
	}
	cursor.Viewer = user
	return m.browse(ctx, chatID, sess.withState(Idle{}), cursor)
}

// randomPlayer picks any known player, falling back to a fixed demo name
// when the list cannot be fetched.
func (m *Machine) randomPlayer(ctx context.Context) *Cursor {
	players, err := m.backend.ListPlayers(ctx)
	if err != nil || len(players) == 0 {
		m.logger.Debug().Err(err).Msg("player list unavailable, using fallback player")
		return &Cursor{PlayerName: constants.FallbackPlayer}
	}
	p := players[m.pick(len(players))]
	return &Cursor{PlayerID: p.UserID, PlayerName: p.UserName}
}

func (m *Machine) showStats(ctx context.Context, chatID int64, user string, sess Session) (Session, error) {
	stats, err := m.backend.Stats(ctx, user)
	if err != nil {
		return sess, err
	}
	return sess.withState(Idle{}), m.send(ctx, chatID, renderStats(stats), mainMenu())
}

func (m *Machine) addMatch(ctx context.Context, chatID int64, user string, sess Session) (Session, error) {
	match, err := m.backend.AddMatch(ctx, user)
	if err != nil {
		return sess, err
	}
	return sess.withState(Idle{}), m.send(ctx, chatID, renderMatchAdded(match), mainMenu())
}

// browse starts a fresh listing at the cursor. The recorded navigation
// message is reused when there is one.
func (m *Machine) browse(ctx context.Context, chatID int64, sess Session, cursor *Cursor) (Session, error) {
	sess.Cursor = cursor
	return m.renderPage(ctx, chatID, sess)
}

// renderPage fetches the cursor's page and shows it, editing the recorded
// navigation message when possible and sending a new one otherwise.
func (m *Machine) renderPage(ctx context.Context, chatID int64, sess Session) (Session, error) {
	c := *sess.Cursor
	resp, err := m.backend.Matches(ctx, api.MatchesQuery{
		UserID:     c.Viewer,
		PlayerID:   c.PlayerID,
		PlayerName: c.PlayerName,
		MyMatches:  c.ViewingSelf,
		Page:       c.Page,
		PerPage:    m.pageSize,
	})
	if err != nil {
		return sess, err
	}

	// Pin the resolved id so later pages address the same player.
	if resp.Player != nil {
		c.PlayerID = resp.Player.UserID
		c.PlayerName = resp.Player.UserName
	}
	c.UpdatedAt = m.now()
	sess.Cursor = &c

	msg := Message{Text: renderMatchesPage(resp, &c), Markup: navKeyboard(resp.Pagination, c.ViewingSelf)}

	if sess.NavMessageID != 0 {
		err := m.messenger.Edit(ctx, chatID, sess.NavMessageID, msg)
		if err == nil {
			return sess, nil
		}
		m.logger.Debug().Err(err).Int64("chat_id", chatID).Int("message_id", sess.NavMessageID).Msg("edit failed, sending new message")
	}

	id, err := m.messenger.Send(ctx, chatID, msg)
	if err != nil {
		return sess, fmt.Errorf("failed to send matches page: %w", err)
	}
	sess.NavMessageID = id
	return sess, nil
}
