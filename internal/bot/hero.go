package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/wire"
)

var errIncompleteResponse = errors.New("incomplete api response")

func (m *Machine) showHeroes(ctx context.Context, chatID int64, sess Session) (Session, error) {
	heroes, err := m.backend.Heroes(ctx)
	if err != nil {
		return sess, err
	}
	return sess.withState(Idle{}), m.send(ctx, chatID, renderHeroes(heroes), mainMenu())
}

func (m *Machine) askHero(ctx context.Context, chatID int64, sess Session) (Session, error) {
	heroes, err := m.backend.Heroes(ctx)
	if err != nil {
		return sess, err
	}
	return sess.withState(AwaitingHero{}), m.send(ctx, chatID, msgAskHero, heroPicker(heroes))
}

func (m *Machine) onHeroInput(ctx context.Context, chatID int64, text string, sess Session) (Session, error) {
	heroes, err := m.backend.Heroes(ctx)
	if err != nil {
		return sess, err
	}

	hero, found := m.resolveHero(text, heroes)
	if !found {
		return sess, m.send(ctx, chatID, msgHeroNotFound, heroPicker(heroes))
	}

	prompt := "🦸 " + hero.Name + ": what would you like to see?"
	return sess.withState(AwaitingHeroDetail{HeroID: hero.ID}), m.send(ctx, chatID, prompt, heroDetailPrompt())
}

// resolveHero accepts the random button, a numeric id, an "id - name" button
// label or a case-insensitive fragment of a hero name.
func (m *Machine) resolveHero(text string, heroes []wire.Hero) (wire.Hero, bool) {
	if len(heroes) == 0 {
		return wire.Hero{}, false
	}
	if text == BtnRandomHero {
		return heroes[m.pick(len(heroes))], true
	}

	idPart := text
	if before, _, ok := strings.Cut(text, " - "); ok {
		idPart = before
	}
	if id, err := strconv.Atoi(strings.TrimSpace(idPart)); err == nil {
		if id < 1 || id > constants.HeroCount {
			return wire.Hero{}, false
		}
		for _, h := range heroes {
			if h.ID == id {
				return h, true
			}
		}
		return wire.Hero{}, false
	}

	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return wire.Hero{}, false
	}
	for _, h := range heroes {
		if strings.Contains(strings.ToLower(h.Name), needle) {
			return h, true
		}
	}
	return wire.Hero{}, false
}

func (m *Machine) onHeroDetailInput(ctx context.Context, chatID int64, user, text string, heroID int, sess Session) (Session, error) {
	switch text {
	case BtnHeroGeneral:
		hero, err := m.backend.Hero(ctx, heroID)
		if err != nil {
			return sess, err
		}
		return sess.withState(Idle{}), m.send(ctx, chatID, renderHero(hero), mainMenu())
	case BtnHeroMyStats:
		return m.showPersonalHeroStats(ctx, chatID, user, heroID, sess)
	case BtnBackToHeroes:
		return m.askHero(ctx, chatID, sess)
	default:
		return sess, m.send(ctx, chatID, msgPickHeroDetail, heroDetailPrompt())
	}
}

func (m *Machine) showPersonalHeroStats(ctx context.Context, chatID int64, user string, heroID int, sess Session) (Session, error) {
	var (
		player *wire.Player
		stats  *wire.PlayerHeroStatsResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := m.backend.Stats(gctx, user)
		player = p
		return err
	})
	g.Go(func() error {
		s, err := m.backend.PlayerHeroStats(gctx, user, heroID)
		stats = s
		return err
	})
	if err := g.Wait(); err != nil {
		return sess, err
	}

	if player == nil || stats.Hero == nil || stats.Stats == nil {
		return sess, errIncompleteResponse
	}

	text := renderPersonalHeroStats(player, stats.Hero, stats.Stats)
	return sess.withState(Idle{}), m.send(ctx, chatID, text, mainMenu())
}
