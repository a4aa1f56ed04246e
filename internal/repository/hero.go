package repository

import (
	"fmt"
	"slices"

	"dota-tracker/internal/domain"
)

func (s *Store) Heroes() []domain.Hero {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.heroes)
}

func (s *Store) GetHero(id int) (domain.Hero, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.heroes {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hero{}, fmt.Errorf("%w: %d", ErrHeroNotFound, id)
}

// RefreshCatalog regenerates every hero's aggregate stats. Ids and names
// stay the same.
func (s *Store) RefreshCatalog() []domain.Hero {
	heroes := s.gen.Heroes()

	s.mu.Lock()
	s.heroes = heroes
	s.mu.Unlock()

	s.logger.Info().Int("heroes", len(heroes)).Msg("hero catalog refreshed")
	return slices.Clone(heroes)
}
