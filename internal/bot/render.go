package bot

import (
	"fmt"
	"strings"

	"dota-tracker/internal/wire"
)

func resultIcon(result string) string {
	if result == "Victory" {
		return "🟢"
	}
	return "🔴"
}

func renderMatchesPage(resp *wire.MatchesResponse, c *Cursor) string {
	var b strings.Builder

	name := c.PlayerName
	if resp.Player != nil {
		name = resp.Player.UserName
	}
	if c.ViewingSelf {
		b.WriteString("👤 Your matches")
	} else {
		fmt.Fprintf(&b, "🎮 Matches of %s", name)
	}

	p := resp.Pagination
	if p != nil && p.TotalPages > 0 {
		fmt.Fprintf(&b, " (page %d/%d, %d total)", p.Page+1, p.TotalPages, p.TotalMatches)
	}
	b.WriteString("\n\n")

	switch {
	case len(resp.Matches) == 0 && (p == nil || p.TotalMatches == 0):
		b.WriteString(msgNoMatches)
	case len(resp.Matches) == 0:
		b.WriteString(msgPastTheEnd)
	}

	for _, m := range resp.Matches {
		fmt.Fprintf(&b, "%s #%d %s - %s\n", resultIcon(m.Result), m.MatchNumber, m.Hero, m.Result)
		fmt.Fprintf(&b, "   ⏱ %s  ⚔️ %s  💰 %d GPM  📚 %d XPM\n", m.Duration, m.KDA, m.GPM, m.XPM)
		fmt.Fprintf(&b, "   💥 %d hero dmg  🏰 %d tower dmg  📅 %s\n", m.HeroDamage, m.TowerDamage, m.Timestamp.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHeroes(heroes []wire.Hero) string {
	var b strings.Builder
	b.WriteString("📊 Heroes\n\n")
	for _, h := range heroes {
		fmt.Fprintf(&b, "%d. %s (%s) - WR %.1f%%, pick %.1f%%\n", h.ID, h.Name, h.Attribute, h.Stats.WinRate, h.Stats.PickRate)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHero(h *wire.Hero) string {
	return fmt.Sprintf("🦸 %s (#%d)\n"+
		"Attribute: %s\n\n"+
		"Win rate: %.1f%%\n"+
		"Pick rate: %.1f%%\n"+
		"Avg K/D/A: %.1f / %.1f / %.1f",
		h.Name, h.ID, h.Attribute,
		h.Stats.WinRate, h.Stats.PickRate,
		h.Stats.AvgKills, h.Stats.AvgDeaths, h.Stats.AvgAssists)
}

func renderStats(p *wire.Player) string {
	return fmt.Sprintf("📈 Stats for %s\n\n"+
		"MMR: %d\n"+
		"Games: %d (%d W / %d L)\n"+
		"Win rate: %.1f%%\n"+
		"Avg K/D/A: %.1f / %.1f / %.1f",
		p.UserName, p.MMR, p.Games, p.Wins, p.Losses, p.WinRate,
		p.AvgKills, p.AvgDeaths, p.AvgAssists)
}

func renderPersonalHeroStats(player *wire.Player, hero *wire.Hero, s *wire.PlayerHeroStats) string {
	if s.Matches == 0 {
		return fmt.Sprintf("👤 %s on %s\n\nYou haven't played %s yet.", player.UserName, hero.Name, hero.Name)
	}

	diff := s.WinRate - hero.Stats.WinRate
	return fmt.Sprintf("👤 %s on %s\n\n"+
		"Matches: %d (%d W / %d L)\n"+
		"Win rate: %.1f%% (%+.1f vs average)\n"+
		"Avg K/D/A: %.1f / %.1f / %.1f\n"+
		"Avg GPM / XPM: %.0f / %.0f\n"+
		"Last played: %s",
		player.UserName, hero.Name,
		s.Matches, s.Wins, s.Losses,
		s.WinRate, diff,
		s.AvgKills, s.AvgDeaths, s.AvgAssists,
		s.AvgGPM, s.AvgXPM,
		s.LastPlayed.Format("2006-01-02"))
}

func renderMatchAdded(m *wire.Match) string {
	return fmt.Sprintf("%s\n\n%s #%d %s - %s\n⏱ %s  ⚔️ %s",
		msgMatchAdded, resultIcon(m.Result), m.MatchNumber, m.Hero, m.Result, m.Duration, m.KDA)
}
