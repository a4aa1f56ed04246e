package bot

import "time"

// State is the conversation's position. The zero Session holds Idle.
type State interface {
	isState()
}

type Idle struct{}

// AwaitingPlayer waits for a player name or the random choice.
type AwaitingPlayer struct{}

// AwaitingHero waits for a hero id, name or the random choice.
type AwaitingHero struct{}

// AwaitingHeroDetail waits for the user to pick which view of HeroID to show.
type AwaitingHeroDetail struct {
	HeroID int
}

func (Idle) isState()               {}
func (AwaitingPlayer) isState()     {}
func (AwaitingHero) isState()       {}
func (AwaitingHeroDetail) isState() {}

// Cursor is the browse position over one player's match history.
type Cursor struct {
	Viewer      string // user id of whoever is browsing
	Page        int
	PlayerID    string
	PlayerName  string
	ViewingSelf bool
	UpdatedAt   time.Time
}

// Session is everything remembered about one chat between turns.
type Session struct {
	State        State
	Cursor       *Cursor
	NavMessageID int
}

func (s Session) state() State {
	if s.State == nil {
		return Idle{}
	}
	return s.State
}

// empty reports whether the session carries nothing worth keeping.
func (s Session) empty() bool {
	_, idle := s.state().(Idle)
	return idle && s.Cursor == nil && s.NavMessageID == 0
}

func (s Session) withState(st State) Session {
	s.State = st
	return s
}
