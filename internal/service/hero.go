package service

import (
	"context"

	"github.com/rs/zerolog"

	"dota-tracker/internal/domain"
	"dota-tracker/internal/repository"
)

type HeroService struct {
	store  *repository.Store
	logger zerolog.Logger
}

func NewHeroService(store *repository.Store, logger zerolog.Logger) *HeroService {
	return &HeroService{store: store, logger: logger}
}

func (s *HeroService) ListHeroes(ctx context.Context) []domain.Hero {
	return s.store.Heroes()
}

func (s *HeroService) GetHero(ctx context.Context, id int) (domain.Hero, error) {
	hero, err := s.store.GetHero(id)
	if err != nil {
		s.logger.Debug().Int("hero_id", id).Msg("hero not found")
		return domain.Hero{}, err
	}
	return hero, nil
}

func (s *HeroService) RefreshCatalog(ctx context.Context) []domain.Hero {
	return s.store.RefreshCatalog()
}
