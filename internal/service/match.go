package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"dota-tracker/internal/config"
	"dota-tracker/internal/constants"
	"dota-tracker/internal/domain"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/pagination"
	"dota-tracker/internal/repository"
)

var ErrInvalidRequest = errors.New("invalid request")

type MatchQuery struct {
	UserID      string
	PlayerID    string
	PlayerName  string
	ViewingSelf bool
	Page        int
	PerPage     int
}

type MatchPage struct {
	Player domain.Player
	Page   pagination.Page[domain.Match]
}

type MatchService struct {
	store    *repository.Store
	metrics  metrics.Recorder
	pageSize int
	logger   zerolog.Logger
}

func NewMatchService(store *repository.Store, m metrics.Recorder, cfg *config.Config, logger zerolog.Logger) *MatchService {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = constants.DefaultPageSize
	}
	return &MatchService{store: store, metrics: m, pageSize: pageSize, logger: logger}
}

// ListMatches resolves whose history is being browsed and returns one page
// of it. Viewing self creates the caller's profile on first use; a player id
// must exist; a name is looked up and fabricated on a miss.
func (s *MatchService) ListMatches(ctx context.Context, q MatchQuery) (MatchPage, error) {
	owner, err := s.resolveOwner(q)
	if err != nil {
		return MatchPage{}, err
	}

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = s.pageSize
	}
	perPage = min(perPage, constants.MaxPageSize)

	page, err := s.store.ListMatches(owner.ID, q.Page, perPage)
	if err != nil {
		return MatchPage{}, fmt.Errorf("failed to list matches: %w", err)
	}

	s.logger.Debug().
		Str("owner_id", owner.ID).
		Bool("viewing_self", q.ViewingSelf).
		Int("page", page.Page).
		Int("total", page.Total).
		Msg("matches listed")

	return MatchPage{Player: owner, Page: page}, nil
}

func (s *MatchService) resolveOwner(q MatchQuery) (domain.Player, error) {
	switch {
	case q.ViewingSelf:
		if strings.TrimSpace(q.UserID) == "" {
			return domain.Player{}, fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
		}
		p, _ := s.store.GetOrCreatePlayer(q.UserID, constants.DefaultOwnerName)
		return p, nil
	case q.PlayerID != "":
		return s.store.GetPlayer(q.PlayerID)
	case strings.TrimSpace(q.PlayerName) != "":
		return s.store.FindPlayerByName(strings.TrimSpace(q.PlayerName))
	default:
		return domain.Player{}, fmt.Errorf("%w: player_name or player_id is required", ErrInvalidRequest)
	}
}

// AddMatch appends a random match to the user's history.
func (s *MatchService) AddMatch(ctx context.Context, userID string) (domain.Match, error) {
	if strings.TrimSpace(userID) == "" {
		return domain.Match{}, fmt.Errorf("%w: user_id is required", ErrInvalidRequest)
	}

	m := s.store.AddRandomMatch(userID)
	s.metrics.IncMatchesAppended()
	return m, nil
}

// Regenerate replaces a player's history and returns its first page.
func (s *MatchService) Regenerate(ctx context.Context, playerID string) (MatchPage, error) {
	if strings.TrimSpace(playerID) == "" {
		return MatchPage{}, fmt.Errorf("%w: player_id is required", ErrInvalidRequest)
	}

	player, err := s.store.RegenerateMatches(playerID)
	if err != nil {
		return MatchPage{}, err
	}

	page, err := s.store.ListMatches(player.ID, 0, s.pageSize)
	if err != nil {
		return MatchPage{}, fmt.Errorf("failed to list regenerated matches: %w", err)
	}
	return MatchPage{Player: player, Page: page}, nil
}
