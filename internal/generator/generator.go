package generator

import (
	"math/rand/v2"
	"sync"
	"time"

	"dota-tracker/internal/domain"
)

type heroSeed struct {
	name      string
	attribute domain.Attribute
}

var catalog = []heroSeed{
	{"Anti-Mage", domain.Agility},
	{"Axe", domain.Strength},
	{"Bane", domain.Intelligence},
	{"Bloodseeker", domain.Agility},
	{"Crystal Maiden", domain.Intelligence},
	{"Drow Ranger", domain.Agility},
	{"Earthshaker", domain.Strength},
	{"Juggernaut", domain.Agility},
	{"Mirana", domain.Agility},
	{"Morphling", domain.Agility},
	{"Shadow Fiend", domain.Agility},
	{"Phantom Lancer", domain.Agility},
	{"Puck", domain.Intelligence},
	{"Pudge", domain.Strength},
	{"Razor", domain.Agility},
	{"Sand King", domain.Strength},
	{"Storm Spirit", domain.Intelligence},
	{"Sven", domain.Strength},
	{"Tiny", domain.Strength},
	{"Vengeful Spirit", domain.Agility},
}

var DemoNames = []string{"Alex", "Ben", "Charlie", "Diana", "Ethan", "Fiona", "George", "Helen"}

const historyWindow = 30 * 24 * time.Hour

// Generator produces the synthetic demo data. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a generator. A zero seed picks a time-based one.
func New(seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

func (g *Generator) floatRange(lo, hi float64) float64 {
	return domain.Round1(lo + g.rng.Float64()*(hi-lo))
}

func (g *Generator) IntRange(lo, hi int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.intRange(lo, hi)
}

// Pick returns a random index in [0, n).
func (g *Generator) Pick(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.IntN(n)
}

func (g *Generator) Heroes() []domain.Hero {
	g.mu.Lock()
	defer g.mu.Unlock()

	heroes := make([]domain.Hero, len(catalog))
	for i, seed := range catalog {
		heroes[i] = domain.Hero{
			ID:        i + 1,
			Name:      seed.name,
			Attribute: seed.attribute,
			Stats: domain.HeroStats{
				WinRate:    g.floatRange(45, 55),
				PickRate:   g.floatRange(1, 30),
				AvgKills:   g.floatRange(5, 12),
				AvgDeaths:  g.floatRange(3, 8),
				AvgAssists: g.floatRange(8, 15),
			},
		}
	}
	return heroes
}

// NewPlayer returns a fresh profile with zero counters.
func (g *Generator) NewPlayer(id, name string, now time.Time) domain.Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	return domain.Player{
		ID:        id,
		Name:      name,
		MMR:       g.intRange(1000, 4000),
		CreatedAt: now,
	}
}

// DemoPlayer returns a profile with plausible non-zero counters. minGames and
// maxGames bound the number of games played.
func (g *Generator) DemoPlayer(id, name string, minGames, maxGames int, now time.Time) domain.Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	games := g.intRange(minGames, maxGames)
	wins := g.intRange(games/3, games/2)

	return domain.Player{
		ID:         id,
		Name:       name,
		MMR:        g.intRange(1000, 6000),
		Games:      games,
		Wins:       wins,
		Losses:     games - wins,
		WinRate:    domain.WinRate(wins, games),
		AvgKills:   g.floatRange(3, 10),
		AvgDeaths:  g.floatRange(4, 8),
		AvgAssists: g.floatRange(6, 12),
		CreatedAt:  now,
	}
}

// Match returns the randomized fields of a match played on one of heroes.
// Identity fields are left for the store to assign.
func (g *Generator) Match(heroes []domain.Hero) domain.Match {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.match(heroes)
}

func (g *Generator) match(heroes []domain.Hero) domain.Match {
	m := domain.Match{
		Result:          domain.Defeat,
		DurationSeconds: g.intRange(20*60, 60*60),
		Kills:           g.intRange(2, 15),
		Deaths:          g.intRange(2, 10),
		Assists:         g.intRange(5, 25),
		GPM:             g.intRange(300, 800),
		XPM:             g.intRange(400, 900),
		HeroDamage:      g.intRange(10000, 50000),
		TowerDamage:     g.intRange(1000, 10000),
	}
	if len(heroes) > 0 {
		h := heroes[g.rng.IntN(len(heroes))]
		m.HeroID = h.ID
		m.Hero = h.Name
	}
	if g.rng.IntN(2) == 0 {
		m.Result = domain.Victory
	}
	return m
}

// History returns between minMatches and maxMatches matches for playerID,
// numbered from 1 with timestamps spread over the last thirty days.
func (g *Generator) History(playerID string, heroes []domain.Hero, minMatches, maxMatches int, now time.Time) []domain.Match {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.intRange(minMatches, maxMatches)
	matches := make([]domain.Match, 0, n)
	for i := 1; i <= n; i++ {
		m := g.match(heroes)
		m.PlayerID = playerID
		m.Number = i
		m.ID = domain.MatchID(playerID, i)
		m.Timestamp = now.Add(-time.Duration(g.rng.Int64N(int64(historyWindow))))
		matches = append(matches, m)
	}
	return matches
}
