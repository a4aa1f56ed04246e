package repository

import (
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GetOrCreatePlayer returns the player with id, creating a fresh profile named
// name when none exists. The bool reports whether a profile was created.
func (s *Store) GetOrCreatePlayer(id, name string) (domain.Player, bool) {
	if e, ok := s.entry(id); ok {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.player, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.players[id]; ok {
		return e.player, false
	}

	e := &playerEntry{player: s.gen.NewPlayer(id, name, s.now())}
	s.insertLocked(e)

	s.logger.Info().Str("player_id", id).Str("name", name).Msg("player created")
	return e.player, true
}

func (s *Store) GetPlayer(id string) (domain.Player, error) {
	e, ok := s.entry(id)
	if !ok {
		return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.player, nil
}

func (s *Store) ListPlayers() []domain.Player {
	s.mu.RLock()
	entries := make([]*playerEntry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.players[id])
	}
	s.mu.RUnlock()

	players := make([]domain.Player, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		players = append(players, e.player)
		e.mu.Unlock()
	}
	return players
}

// FindPlayerByName returns the first player, in creation order, whose name
// matches case-insensitively. On a miss it fabricates and stores a new demo
// player with that name and a synthetic match history, so repeated misses
// for the same name create distinct players.
func (s *Store) FindPlayerByName(name string) (domain.Player, error) {
	for _, p := range s.ListPlayers() {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}

	suffix, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		return domain.Player{}, fmt.Errorf("failed to generate player id: %w", err)
	}

	now := s.now()
	id := fmt.Sprintf("demo_%d_%s", now.Unix(), suffix)
	heroes := s.Heroes()

	e := &playerEntry{
		player:  s.gen.DemoPlayer(id, name, constants.FabricatedGames, 200, now),
		matches: s.gen.History(id, heroes, constants.MinDemoMatches, constants.MaxDemoMatches, now),
	}

	s.mu.Lock()
	s.insertLocked(e)
	s.mu.Unlock()

	s.logger.Info().Str("player_id", id).Str("name", name).Msg("player fabricated for unknown name")
	return e.player, nil
}
