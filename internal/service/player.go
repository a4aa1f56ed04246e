package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"dota-tracker/internal/domain"
	"dota-tracker/internal/repository"
)

type PlayerService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewPlayerService(store *repository.Store, logger zerolog.Logger) *PlayerService {
	return &PlayerService{store: store, logger: logger}
}

// CreatePlayer registers userID, keeping the existing profile if there is one.
func (s *PlayerService) CreatePlayer(ctx context.Context, userID, userName string) (domain.Player, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.Player{}, fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
	}
	if userName = strings.TrimSpace(userName); userName == "" {
		userName = "Player"
	}

	player, created := s.store.GetOrCreatePlayer(userID, userName)
	s.logger.Info().Str("user_id", userID).Bool("created", created).Msg("player profile requested")
	return player, nil
}

func (s *PlayerService) ListPlayers(ctx context.Context) []domain.Player {
	return s.store.ListPlayers()
}

func (s *PlayerService) GetStats(ctx context.Context, userID string) (domain.Player, error) {
	player, err := s.store.GetPlayer(userID)
	if err != nil {
		s.logger.Debug().Str("user_id", userID).Msg("stats requested for unknown player")
		return domain.Player{}, err
	}
	return player, nil
}

func (s *PlayerService) GetHeroStats(ctx context.Context, userID string, heroID int) (domain.Hero, domain.PlayerHeroStats, error) {
	hero, err := s.store.GetHero(heroID)
	if err != nil {
		return domain.Hero{}, domain.PlayerHeroStats{}, err
	}
	stats, err := s.store.PlayerHeroStats(userID, heroID)
	if err != nil {
		return domain.Hero{}, domain.PlayerHeroStats{}, err
	}

	s.logger.Debug().
		Str("user_id", userID).
		Int("hero_id", heroID).
		Int("matches", stats.Matches).
		Msg("player hero stats computed")
	return hero, stats, nil
}
