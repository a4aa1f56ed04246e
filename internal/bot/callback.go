package bot

import (
	"context"
	"fmt"
)

func (m *Machine) onCallback(ctx context.Context, ev CallbackEvent, sess Session) (Session, error) {
	if ev.Data == CbBack {
		sess = m.reset(ev.ChatID)
		m.answer(ctx, ev.CallbackID, "")
		return sess, m.send(ctx, ev.ChatID, msgMainMenu, mainMenu())
	}

	switch ev.Data {
	case CbNext, CbPrev, CbRefresh, CbNew:
	default:
		m.answer(ctx, ev.CallbackID, msgUnknownCallback)
		return sess, nil
	}

	if sess.Cursor == nil {
		m.answer(ctx, ev.CallbackID, msgSessionExpired)
		return sess, nil
	}

	c := *sess.Cursor
	notice := ""
	switch ev.Data {
	case CbNext:
		c.Page++
	case CbPrev:
		c.Page = max(0, c.Page-1)
	case CbRefresh:
		c.Page = 0
	case CbNew:
		if _, err := m.backend.RegenerateMatches(ctx, c.PlayerID); err != nil {
			m.answer(ctx, ev.CallbackID, "")
			return sess, err
		}
		c.Page = 0
		notice = msgHistoryRenewed
	}
	sess.Cursor = &c

	next, err := m.renderPage(ctx, ev.ChatID, sess)
	if err != nil {
		m.answer(ctx, ev.CallbackID, "")
		return sess, fmt.Errorf("failed to render page %d: %w", c.Page, err)
	}

	m.answer(ctx, ev.CallbackID, notice)
	return next, nil
}

// answer acknowledges a button press. Failures only cost the user a spinner
// so they are logged and otherwise ignored.
func (m *Machine) answer(ctx context.Context, callbackID, text string) {
	if callbackID == "" {
		return
	}
	if err := m.messenger.Answer(ctx, callbackID, text); err != nil {
		m.logger.Debug().Err(err).Str("callback_id", callbackID).Msg("failed to answer callback")
	}
}
