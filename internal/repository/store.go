package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
	"dota-tracker/internal/generator"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrHeroNotFound   = errors.New("hero not found")
)

// playerEntry owns one player's profile and match history. Its mutex keeps
// counters and history consistent with each other.
type playerEntry struct {
	mu      sync.Mutex
	player  domain.Player
	matches []domain.Match
}

// Store is the in-memory game database. The store-level lock guards the
// player index and the hero catalog; each player entry carries its own lock.
// Locks are always taken store first, entry second.
type Store struct {
	mu      sync.RWMutex
	players map[string]*playerEntry
	order   []string
	heroes  []domain.Hero

	gen    *generator.Generator
	now    func() time.Time
	logger zerolog.Logger
}

func New(gen *generator.Generator, logger zerolog.Logger) *Store {
	return &Store{
		players: make(map[string]*playerEntry),
		heroes:  gen.Heroes(),
		gen:     gen,
		now:     time.Now,
		logger:  logger,
	}
}

// NewStore builds a store pre-populated with the demo players.
func NewStore(cfg *config.Config, logger zerolog.Logger) *Store {
	s := New(generator.New(cfg.DemoSeed), logger)
	s.SeedDemoPlayers()
	return s
}

func (s *Store) SeedDemoPlayers() {
	now := s.now()
	heroes := s.Heroes()

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, name := range generator.DemoNames {
		id := fmt.Sprintf("demo_%d", i)
		if _, ok := s.players[id]; ok {
			continue
		}
		e := &playerEntry{
			player:  s.gen.DemoPlayer(id, name, 50, 500, now),
			matches: s.gen.History(id, heroes, constants.MinDemoMatches, constants.MaxDemoMatches, now),
		}
		s.insertLocked(e)
	}

	s.logger.Info().
		Int("players", len(s.players)).
		Int("heroes", len(s.heroes)).
		Msg("demo data seeded")
}

// insertLocked must be called with mu held for writing.
func (s *Store) insertLocked(e *playerEntry) {
	s.players[e.player.ID] = e
	s.order = append(s.order, e.player.ID)
}

func (s *Store) entry(id string) (*playerEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.players[id]
	return e, ok
}

// Counts reports the number of players and stored matches.
func (s *Store) Counts() (players, matches int) {
	s.mu.RLock()
	entries := make([]*playerEntry, 0, len(s.players))
	for _, e := range s.players {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	for _, e := range entries {
		e.mu.Lock()
		matches += len(e.matches)
		e.mu.Unlock()
	}
	return len(entries), matches
}
