package server

import (
	"dota-tracker/internal/domain"
	"dota-tracker/internal/pagination"
	"dota-tracker/internal/wire"
)

func toWirePlayer(p domain.Player) *wire.Player {
	return &wire.Player{
		UserID:     p.ID,
		UserName:   p.Name,
		MMR:        p.MMR,
		Games:      p.Games,
		Wins:       p.Wins,
		Losses:     p.Losses,
		WinRate:    p.WinRate,
		AvgKills:   p.AvgKills,
		AvgDeaths:  p.AvgDeaths,
		AvgAssists: p.AvgAssists,
		CreatedAt:  p.CreatedAt,
	}
}

func toWireHero(h domain.Hero) *wire.Hero {
	return &wire.Hero{
		ID:        h.ID,
		Name:      h.Name,
		Attribute: string(h.Attribute),
		Stats: wire.HeroStats{
			WinRate:    h.Stats.WinRate,
			PickRate:   h.Stats.PickRate,
			AvgKills:   h.Stats.AvgKills,
			AvgDeaths:  h.Stats.AvgDeaths,
			AvgAssists: h.Stats.AvgAssists,
		},
	}
}

func toWireHeroes(heroes []domain.Hero) []wire.Hero {
	out := make([]wire.Hero, len(heroes))
	for i, h := range heroes {
		out[i] = *toWireHero(h)
	}
	return out
}

func toWireMatch(m domain.Match) *wire.Match {
	return &wire.Match{
		MatchID:     m.ID,
		MatchNumber: m.Number,
		PlayerID:    m.PlayerID,
		HeroID:      m.HeroID,
		Hero:        m.Hero,
		Result:      string(m.Result),
		Duration:    m.Duration(),
		KDA:         m.KDA(),
		Kills:       m.Kills,
		Deaths:      m.Deaths,
		Assists:     m.Assists,
		GPM:         m.GPM,
		XPM:         m.XPM,
		HeroDamage:  m.HeroDamage,
		TowerDamage: m.TowerDamage,
		Timestamp:   m.Timestamp,
	}
}

func toWireMatchesResponse(owner domain.Player, page pagination.Page[domain.Match]) wire.MatchesResponse {
	matches := make([]wire.Match, len(page.Items))
	for i, m := range page.Items {
		matches[i] = *toWireMatch(m)
	}
	return wire.MatchesResponse{
		Envelope: ok(),
		Player:   toWirePlayer(owner),
		Matches:  matches,
		Pagination: &wire.Pagination{
			Page:         page.Page,
			PerPage:      page.PerPage,
			TotalMatches: page.Total,
			TotalPages:   page.TotalPages,
			HasPrev:      page.HasPrev,
			HasNext:      page.HasNext,
		},
	}
}

func toWirePlayerHeroStats(s domain.PlayerHeroStats) *wire.PlayerHeroStats {
	return &wire.PlayerHeroStats{
		Matches:    s.Matches,
		Wins:       s.Wins,
		Losses:     s.Losses,
		WinRate:    s.WinRate,
		AvgKills:   s.AvgKills,
		AvgDeaths:  s.AvgDeaths,
		AvgAssists: s.AvgAssists,
		AvgGPM:     s.AvgGPM,
		AvgXPM:     s.AvgXPM,
		LastPlayed: s.LastPlayed,
	}
}
