package domain

import (
	"fmt"
	"math"
	"time"
)

type Attribute string

const (
	Strength     Attribute = "Strength"
	Agility      Attribute = "Agility"
	Intelligence Attribute = "Intelligence"
)

type Outcome string

const (
	Victory Outcome = "Victory"
	Defeat  Outcome = "Defeat"
)

type Player struct {
	ID         string
	Name       string
	MMR        int
	Games      int
	Wins       int
	Losses     int
	WinRate    float64 // percent, one decimal
	AvgKills   float64
	AvgDeaths  float64
	AvgAssists float64
	CreatedAt  time.Time
}

type HeroStats struct {
	WinRate    float64
	PickRate   float64
	AvgKills   float64
	AvgDeaths  float64
	AvgAssists float64
}

type Hero struct {
	ID        int
	Name      string
	Attribute Attribute
	Stats     HeroStats
}

type Match struct {
	ID              string // <player_id>_match_<n>
	PlayerID        string
	Number          int
	HeroID          int
	Hero            string
	Result          Outcome
	DurationSeconds int
	Kills           int
	Deaths          int
	Assists         int
	GPM             int
	XPM             int
	HeroDamage      int
	TowerDamage     int
	Timestamp       time.Time
}

func (m Match) Won() bool {
	return m.Result == Victory
}

// Duration renders the match length as m:ss.
func (m Match) Duration() string {
	return fmt.Sprintf("%d:%02d", m.DurationSeconds/60, m.DurationSeconds%60)
}

func (m Match) KDA() string {
	return fmt.Sprintf("%d/%d/%d", m.Kills, m.Deaths, m.Assists)
}

type PlayerHeroStats struct {
	PlayerID   string
	HeroID     int
	Hero       string
	Matches    int
	Wins       int
	Losses     int
	WinRate    float64
	AvgKills   float64
	AvgDeaths  float64
	AvgAssists float64
	AvgGPM     float64
	AvgXPM     float64
	LastPlayed time.Time
}

// WinRate returns wins/games as a percentage rounded to one decimal.
func WinRate(wins, games int) float64 {
	if games <= 0 {
		return 0
	}
	return Round1(float64(wins) / float64(games) * 100)
}

func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func MatchID(playerID string, number int) string {
	return fmt.Sprintf("%s_match_%d", playerID, number)
}
