package repository

import (
	"fmt"
	"slices"

	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
	"dota-tracker/internal/pagination"
)

// ListMatches returns one page of the owner's history, most recent first.
// The history is copied under the owner's lock so the page is built from a
// coherent snapshot.
func (s *Store) ListMatches(ownerID string, page, perPage int) (pagination.Page[domain.Match], error) {
	e, ok := s.entry(ownerID)
	if !ok {
		return pagination.Page[domain.Match]{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, ownerID)
	}

	e.mu.Lock()
	matches := slices.Clone(e.matches)
	e.mu.Unlock()

	sortRecentFirst(matches)
	return pagination.Paginate(matches, page, perPage), nil
}

func sortRecentFirst(matches []domain.Match) {
	slices.SortStableFunc(matches, func(a, b domain.Match) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
}

// AppendMatch records a played match for ownerID. An unknown owner is first
// created with the default name. Number, ID and Timestamp are assigned here;
// the owner's counters, win rate and averages are updated in the same
// critical section.
func (s *Store) AppendMatch(ownerID string, m domain.Match) domain.Match {
	s.GetOrCreatePlayer(ownerID, constants.DefaultOwnerName)
	e, _ := s.entry(ownerID)

	e.mu.Lock()
	defer e.mu.Unlock()

	m.PlayerID = ownerID
	m.Number = len(e.matches) + 1
	m.ID = domain.MatchID(ownerID, m.Number)
	m.Timestamp = s.now()
	e.matches = append(e.matches, m)

	p := &e.player
	p.Games++
	if m.Won() {
		p.Wins++
	} else {
		p.Losses++
	}
	p.WinRate = domain.WinRate(p.Wins, p.Games)
	p.AvgKills = runningAverage(p.AvgKills, m.Kills, p.Games)
	p.AvgDeaths = runningAverage(p.AvgDeaths, m.Deaths, p.Games)
	p.AvgAssists = runningAverage(p.AvgAssists, m.Assists, p.Games)

	s.logger.Info().
		Str("player_id", ownerID).
		Str("match_id", m.ID).
		Str("result", string(m.Result)).
		Int("games", p.Games).
		Msg("match appended")

	return m
}

// AddRandomMatch appends a generated match on a random hero.
func (s *Store) AddRandomMatch(ownerID string) domain.Match {
	return s.AppendMatch(ownerID, s.gen.Match(s.Heroes()))
}

func runningAverage(avg float64, value, n int) float64 {
	if n <= 1 {
		return float64(value)
	}
	return domain.Round1((avg*float64(n-1) + float64(value)) / float64(n))
}

// RegenerateMatches replaces the player's history with a freshly generated
// one. Profile counters are left untouched.
func (s *Store) RegenerateMatches(playerID string) (domain.Player, error) {
	e, ok := s.entry(playerID)
	if !ok {
		return domain.Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	history := s.gen.History(playerID, s.Heroes(), constants.MinDemoMatches, constants.MaxDemoMatches, s.now())

	e.mu.Lock()
	defer e.mu.Unlock()
	e.matches = history

	s.logger.Info().Str("player_id", playerID).Int("matches", len(history)).Msg("match history regenerated")
	return e.player, nil
}

// PlayerHeroStats aggregates the player's history on one hero.
func (s *Store) PlayerHeroStats(playerID string, heroID int) (domain.PlayerHeroStats, error) {
	hero, err := s.GetHero(heroID)
	if err != nil {
		return domain.PlayerHeroStats{}, err
	}
	e, ok := s.entry(playerID)
	if !ok {
		return domain.PlayerHeroStats{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	e.mu.Lock()
	matches := slices.Clone(e.matches)
	e.mu.Unlock()

	stats := domain.PlayerHeroStats{PlayerID: playerID, HeroID: hero.ID, Hero: hero.Name}
	var kills, deaths, assists, gpm, xpm int
	for _, m := range matches {
		if m.Hero != hero.Name {
			continue
		}
		stats.Matches++
		if m.Won() {
			stats.Wins++
		} else {
			stats.Losses++
		}
		kills += m.Kills
		deaths += m.Deaths
		assists += m.Assists
		gpm += m.GPM
		xpm += m.XPM
		if m.Timestamp.After(stats.LastPlayed) {
			stats.LastPlayed = m.Timestamp
		}
	}

	if n := float64(stats.Matches); n > 0 {
		stats.WinRate = domain.WinRate(stats.Wins, stats.Matches)
		stats.AvgKills = domain.Round1(float64(kills) / n)
		stats.AvgDeaths = domain.Round1(float64(deaths) / n)
		stats.AvgAssists = domain.Round1(float64(assists) / n)
		stats.AvgGPM = domain.Round1(float64(gpm) / n)
		stats.AvgXPM = domain.Round1(float64(xpm) / n)
	}
	return stats, nil
}
