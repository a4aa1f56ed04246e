// Package wire holds the JSON shapes exchanged between the stats API and its
// clients. Every response embeds Envelope.
package wire

import "time"

type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type Player struct {
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	MMR        int       `json:"mmr"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	WinRate    float64   `json:"win_rate"`
	AvgKills   float64   `json:"avg_kills"`
	AvgDeaths  float64   `json:"avg_deaths"`
	AvgAssists float64   `json:"avg_assists"`
	CreatedAt  time.Time `json:"created_at"`
}

type HeroStats struct {
	WinRate    float64 `json:"win_rate"`
	PickRate   float64 `json:"pick_rate"`
	AvgKills   float64 `json:"avg_kills"`
	AvgDeaths  float64 `json:"avg_deaths"`
	AvgAssists float64 `json:"avg_assists"`
}

type Hero struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Attribute string    `json:"attribute"`
	Stats     HeroStats `json:"stats"`
}

type Match struct {
	MatchID     string    `json:"match_id"`
	MatchNumber int       `json:"match_number"`
	PlayerID    string    `json:"player_id"`
	HeroID      int       `json:"hero_id"`
	Hero        string    `json:"hero"`
	Result      string    `json:"result"`
	Duration    string    `json:"duration"`
	KDA         string    `json:"kda"`
	Kills       int       `json:"kills"`
	Deaths      int       `json:"deaths"`
	Assists     int       `json:"assists"`
	GPM         int       `json:"gpm"`
	XPM         int       `json:"xpm"`
	HeroDamage  int       `json:"hero_damage"`
	TowerDamage int       `json:"tower_damage"`
	Timestamp   time.Time `json:"timestamp"`
}

type Pagination struct {
	Page         int  `json:"page"`
	PerPage      int  `json:"per_page"`
	TotalMatches int  `json:"total_matches"`
	TotalPages   int  `json:"total_pages"`
	HasPrev      bool `json:"has_prev"`
	HasNext      bool `json:"has_next"`
}

type PlayerHeroStats struct {
	Matches    int       `json:"matches"`
	Wins       int       `json:"wins"`
	Losses     int       `json:"losses"`
	WinRate    float64   `json:"win_rate"`
	AvgKills   float64   `json:"avg_kills"`
	AvgDeaths  float64   `json:"avg_deaths"`
	AvgAssists float64   `json:"avg_assists"`
	AvgGPM     float64   `json:"avg_gpm"`
	AvgXPM     float64   `json:"avg_xpm"`
	LastPlayed time.Time `json:"last_played"`
}

// Requests

type CreatePlayerRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

type MatchesRequest struct {
	UserID      string `json:"user_id"`
	PlayerID    string `json:"player_id,omitempty"`
	PlayerName  string `json:"player_name,omitempty"`
	IsMyMatches bool   `json:"is_my_matches"`
	Page        int    `json:"page,omitempty"`
	PerPage     int    `json:"per_page,omitempty"`
}

type AddMatchRequest struct {
	UserID string `json:"user_id"`
}

type HeroInfoRequest struct {
	HeroID int `json:"hero_id"`
}

type RegenerateRequest struct {
	PlayerID string `json:"player_id"`
}

// Responses

type StatusResponse struct {
	Envelope
	Status  string `json:"status"`
	Version string `json:"version"`
}

type PlayerResponse struct {
	Envelope
	Player *Player `json:"player,omitempty"`
	Stats  *Player `json:"stats,omitempty"`
}

type PlayersResponse struct {
	Envelope
	Players []Player `json:"players"`
}

type HeroesResponse struct {
	Envelope
	Heroes []Hero `json:"heroes"`
}

type HeroResponse struct {
	Envelope
	Hero *Hero `json:"hero,omitempty"`
}

type MatchesResponse struct {
	Envelope
	Player     *Player     `json:"player,omitempty"`
	Matches    []Match     `json:"matches"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type MatchResponse struct {
	Envelope
	Match *Match `json:"match,omitempty"`
}

type PlayerHeroStatsResponse struct {
	Envelope
	Hero  *Hero            `json:"hero,omitempty"`
	Stats *PlayerHeroStats `json:"stats,omitempty"`
}

// Result is implemented by every response so clients can check the envelope
// without knowing the concrete type.
type Result interface {
	Result() Envelope
}

func (e Envelope) Result() Envelope { return e }
