package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dota-tracker/internal/api"
	"dota-tracker/internal/pagination"
	"dota-tracker/internal/wire"
)

type sent struct {
	ChatID int64
	Msg    Message
}

type edited struct {
	ChatID    int64
	MessageID int
	Msg       Message
}

type fakeMessenger struct {
	mu      sync.Mutex
	nextID  int
	sent    []sent
	edited  []edited
	answers map[string]string
	editErr error
	sendErr error
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{nextID: 100, answers: make(map[string]string)}
}

func (f *fakeMessenger) Send(ctx context.Context, chatID int64, msg Message) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.nextID++
	f.sent = append(f.sent, sent{ChatID: chatID, Msg: msg})
	return f.nextID, nil
}

func (f *fakeMessenger) Edit(ctx context.Context, chatID int64, messageID int, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.editErr != nil {
		return f.editErr
	}
	f.edited = append(f.edited, edited{ChatID: chatID, MessageID: messageID, Msg: msg})
	return nil
}

func (f *fakeMessenger) Answer(ctx context.Context, callbackID, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers[callbackID] = text
	return nil
}

func (f *fakeMessenger) last() sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return sent{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeMessenger) lastEdit() edited {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edited) == 0 {
		return edited{}
	}
	return f.edited[len(f.edited)-1]
}

type fakeBackend struct {
	mu          sync.Mutex
	players     []wire.Player
	history     map[string]int
	heroes      []wire.Hero
	err         error
	panicOn     string
	queries     []api.MatchesQuery
	regenerated []string
	created     []string
}

func newFakeBackend() *fakeBackend {
	heroes := []wire.Hero{
		{ID: 1, Name: "Anti-Mage", Attribute: "Agility"},
		{ID: 2, Name: "Axe", Attribute: "Strength"},
		{ID: 8, Name: "Juggernaut", Attribute: "Agility"},
		{ID: 14, Name: "Pudge", Attribute: "Strength"},
		{ID: 20, Name: "Vengeful Spirit", Attribute: "Agility"},
	}
	return &fakeBackend{
		players: []wire.Player{
			{UserID: "demo_0", UserName: "Alex"},
			{UserID: "demo_1", UserName: "Ben"},
		},
		history: map[string]int{"demo_0": 12, "demo_1": 3},
		heroes:  heroes,
	}
}

func (f *fakeBackend) check(op string) error {
	if f.panicOn == op {
		panic("backend exploded in " + op)
	}
	return f.err
}

func (f *fakeBackend) CreatePlayer(ctx context.Context, userID, userName string) (*wire.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("create"); err != nil {
		return nil, err
	}
	f.created = append(f.created, userID)
	return &wire.Player{UserID: userID, UserName: userName}, nil
}

func (f *fakeBackend) ListPlayers(ctx context.Context) ([]wire.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("players"); err != nil {
		return nil, err
	}
	return f.players, nil
}

func (f *fakeBackend) Stats(ctx context.Context, userID string) (*wire.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("stats"); err != nil {
		return nil, err
	}
	return &wire.Player{UserID: userID, UserName: "Ana", Games: 2, Wins: 1, Losses: 1, WinRate: 50}, nil
}

func (f *fakeBackend) PlayerHeroStats(ctx context.Context, userID string, heroID int) (*wire.PlayerHeroStatsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("hero_stats"); err != nil {
		return nil, err
	}
	for _, h := range f.heroes {
		if h.ID == heroID {
			hero := h
			return &wire.PlayerHeroStatsResponse{
				Envelope: wire.Envelope{Success: true},
				Hero:     &hero,
				Stats:    &wire.PlayerHeroStats{Matches: 4, Wins: 3, Losses: 1, WinRate: 75, LastPlayed: time.Now()},
			}, nil
		}
	}
	return nil, &api.APIError{Message: "Hero not found"}
}

func (f *fakeBackend) Heroes(ctx context.Context) ([]wire.Hero, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("heroes"); err != nil {
		return nil, err
	}
	return f.heroes, nil
}

func (f *fakeBackend) Hero(ctx context.Context, heroID int) (*wire.Hero, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("hero"); err != nil {
		return nil, err
	}
	for _, h := range f.heroes {
		if h.ID == heroID {
			hero := h
			return &hero, nil
		}
	}
	return nil, &api.APIError{Message: "Hero not found"}
}

func (f *fakeBackend) Matches(ctx context.Context, q api.MatchesQuery) (*wire.MatchesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("matches"); err != nil {
		return nil, err
	}
	f.queries = append(f.queries, q)

	owner, err := f.resolve(q)
	if err != nil {
		return nil, err
	}

	n := f.history[owner.UserID]
	all := make([]wire.Match, n)
	for i := range all {
		number := n - i
		all[i] = wire.Match{MatchID: fmt.Sprintf("%s_match_%d", owner.UserID, number), MatchNumber: number, Hero: "Axe", Result: "Victory"}
	}
	page := pagination.Paginate(all, q.Page, q.PerPage)

	return &wire.MatchesResponse{
		Envelope: wire.Envelope{Success: true},
		Player:   &owner,
		Matches:  page.Items,
		Pagination: &wire.Pagination{
			Page:         page.Page,
			PerPage:      page.PerPage,
			TotalMatches: page.Total,
			TotalPages:   page.TotalPages,
			HasPrev:      page.HasPrev,
			HasNext:      page.HasNext,
		},
	}, nil
}

func (f *fakeBackend) resolve(q api.MatchesQuery) (wire.Player, error) {
	switch {
	case q.MyMatches:
		return wire.Player{UserID: q.UserID, UserName: "Player"}, nil
	case q.PlayerID != "":
		for _, p := range f.players {
			if p.UserID == q.PlayerID {
				return p, nil
			}
		}
		return wire.Player{}, &api.APIError{Message: "Player not found"}
	default:
		for _, p := range f.players {
			if strings.EqualFold(p.UserName, q.PlayerName) {
				return p, nil
			}
		}
		p := wire.Player{UserID: fmt.Sprintf("demo_fab_%d", len(f.players)), UserName: q.PlayerName}
		f.players = append(f.players, p)
		f.history[p.UserID] = 7
		return p, nil
	}
}

func (f *fakeBackend) AddMatch(ctx context.Context, userID string) (*wire.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("add"); err != nil {
		return nil, err
	}
	f.history[userID]++
	return &wire.Match{MatchNumber: f.history[userID], Hero: "Axe", Result: "Victory", Duration: "31:05", KDA: "5/2/10"}, nil
}

func (f *fakeBackend) RegenerateMatches(ctx context.Context, playerID string) (*wire.MatchesResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.check("regenerate"); err != nil {
		return nil, err
	}
	f.regenerated = append(f.regenerated, playerID)
	return &wire.MatchesResponse{Envelope: wire.Envelope{Success: true}}, nil
}

func (f *fakeBackend) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

var errBoom = errors.New("boom")
