package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"dota-tracker/internal/cache"
	"dota-tracker/internal/constants"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/middleware"
	"dota-tracker/internal/service"
	"dota-tracker/internal/wire"
)

const maxRequestBody = constants.MaxRequestBody

const heroesCacheKey = "heroes"

// StatsServer exposes the game database over JSON/HTTP.
type StatsServer struct {
	players *service.PlayerService
	matches *service.MatchService
	heroes  *service.HeroService
	cache   cache.Cache
	metrics metrics.Recorder
	logger  zerolog.Logger
}

func NewStatsServer(
	players *service.PlayerService,
	matches *service.MatchService,
	heroes *service.HeroService,
	c cache.Cache,
	m metrics.Recorder,
	logger zerolog.Logger,
) *StatsServer {
	return &StatsServer{players: players, matches: matches, heroes: heroes, cache: c, metrics: m, logger: logger}
}

func (s *StatsServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(middleware.Metrics(s.metrics))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, "Endpoint not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		fail(w, "Endpoint not found")
	})

	r.Get("/", s.handleRoot)
	r.Get("/players", s.handleListPlayers)
	r.Post("/player/create", s.handleCreatePlayer)
	r.Get("/stats/{user_id}", s.handleStats)
	r.Get("/stats/{user_id}/hero/{hero_id}", s.handlePlayerHeroStats)

	r.Get("/heroes", s.handleListHeroes)
	r.Post("/heroes/refresh", s.handleRefreshHeroes)
	r.Get("/hero/{hero_id}", s.handleGetHero)
	r.Post("/hero/info", s.handleHeroInfo)

	r.Get("/matches/{user_id}/{page}", s.handleListMatches)
	r.Post("/matches", s.handlePostMatches)
	r.Post("/match/add", s.handleAddMatch)
	r.Post("/matches/regenerate", s.handleRegenerate)

	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	return gzhttp.GzipHandler(c.Handler(r))
}

// MetricsRoutes serves only /metrics. The bot process uses it to expose its
// remote-call metrics.
func MetricsRoutes(m metrics.Recorder, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		fail(w, "Endpoint not found")
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())
	return r
}

// serveFromCacheOrCompute writes a cached body for key when present.
// Otherwise it computes the response and caches it if it succeeded.
func (s *StatsServer) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, key string, compute func() (wire.Result, error)) {
	if body, hit := s.cache.Get(key); hit {
		writeRaw(w, http.StatusOK, body)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, err := json.Marshal(result)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if result.Result().Success {
		s.cache.Set(key, body)
	}
	writeRaw(w, http.StatusOK, body)
}

func (s *StatsServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, wire.StatusResponse{
		Envelope: ok(),
		Status:   "Dota stats API is running",
		Version:  constants.APIVersion,
	})
}

func (s *StatsServer) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players := s.players.ListPlayers(r.Context())
	out := make([]wire.Player, len(players))
	for i, p := range players {
		out[i] = *toWirePlayer(p)
	}
	writeJSON(w, http.StatusOK, wire.PlayersResponse{Envelope: ok(), Players: out})
}

func (s *StatsServer) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req wire.CreatePlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	player, err := s.players.CreatePlayer(r.Context(), req.UserID, req.UserName)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.PlayerResponse{Envelope: ok(), Player: toWirePlayer(player)})
}

func (s *StatsServer) handleStats(w http.ResponseWriter, r *http.Request) {
	player, err := s.players.GetStats(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.PlayerResponse{Envelope: ok(), Stats: toWirePlayer(player)})
}

func (s *StatsServer) handlePlayerHeroStats(w http.ResponseWriter, r *http.Request) {
	heroID, valid := intParam(w, r, "hero_id")
	if !valid {
		return
	}

	hero, stats, err := s.players.GetHeroStats(r.Context(), chi.URLParam(r, "user_id"), heroID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.PlayerHeroStatsResponse{
		Envelope: ok(),
		Hero:     toWireHero(hero),
		Stats:    toWirePlayerHeroStats(stats),
	})
}

func (s *StatsServer) handleListHeroes(w http.ResponseWriter, r *http.Request) {
	s.serveFromCacheOrCompute(w, r, heroesCacheKey, func() (wire.Result, error) {
		return wire.HeroesResponse{Envelope: ok(), Heroes: toWireHeroes(s.heroes.ListHeroes(r.Context()))}, nil
	})
}

func (s *StatsServer) handleRefreshHeroes(w http.ResponseWriter, r *http.Request) {
	heroes := s.heroes.RefreshCatalog(r.Context())
	s.cache.Clear()
	writeJSON(w, http.StatusOK, wire.HeroesResponse{Envelope: ok(), Heroes: toWireHeroes(heroes)})
}

func (s *StatsServer) handleGetHero(w http.ResponseWriter, r *http.Request) {
	heroID, valid := intParam(w, r, "hero_id")
	if !valid {
		return
	}
	s.serveHero(w, r, heroID)
}

func (s *StatsServer) handleHeroInfo(w http.ResponseWriter, r *http.Request) {
	var req wire.HeroInfoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.serveHero(w, r, req.HeroID)
}

func (s *StatsServer) serveHero(w http.ResponseWriter, r *http.Request, heroID int) {
	s.serveFromCacheOrCompute(w, r, "hero:"+strconv.Itoa(heroID), func() (wire.Result, error) {
		hero, err := s.heroes.GetHero(r.Context(), heroID)
		if err != nil {
			return nil, err
		}
		return wire.HeroResponse{Envelope: ok(), Hero: toWireHero(hero)}, nil
	})
}

func (s *StatsServer) handleListMatches(w http.ResponseWriter, r *http.Request) {
	page, valid := intParam(w, r, "page")
	if !valid {
		return
	}

	q := r.URL.Query()
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	s.serveMatches(w, r, service.MatchQuery{
		UserID:      chi.URLParam(r, "user_id"),
		PlayerID:    q.Get("player_id"),
		PlayerName:  q.Get("player_name"),
		ViewingSelf: parseFlag(q.Get("is_my_matches")),
		Page:        page,
		PerPage:     perPage,
	})
}

func (s *StatsServer) handlePostMatches(w http.ResponseWriter, r *http.Request) {
	var req wire.MatchesRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.serveMatches(w, r, service.MatchQuery{
		UserID:      req.UserID,
		PlayerID:    req.PlayerID,
		PlayerName:  req.PlayerName,
		ViewingSelf: req.IsMyMatches,
		Page:        req.Page,
		PerPage:     req.PerPage,
	})
}

func (s *StatsServer) serveMatches(w http.ResponseWriter, r *http.Request, q service.MatchQuery) {
	result, err := s.matches.ListMatches(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWireMatchesResponse(result.Player, result.Page))
}

func (s *StatsServer) handleAddMatch(w http.ResponseWriter, r *http.Request) {
	var req wire.AddMatchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	match, err := s.matches.AddMatch(r.Context(), req.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, wire.MatchResponse{Envelope: ok(), Match: toWireMatch(match)})
}

func (s *StatsServer) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	var req wire.RegenerateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.matches.Regenerate(r.Context(), req.PlayerID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toWireMatchesResponse(result.Player, result.Page))
}

func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		badRequest(w, "Invalid "+name)
		return 0, false
	}
	return v, true
}

func parseFlag(v string) bool {
	return strings.EqualFold(v, "true") || v == "1"
}

// Server wraps the http.Server so fx can manage its lifecycle.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

func NewServer(addr string, handler http.Handler, logger zerolog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: constants.ReadHeaderTimeout,
		},
		logger: logger,
	}
}

func (s *Server) Addr() string {
	return s.srv.Addr
}

// Start listens in a background goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("server starting")
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("server failed")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	s.logger.Info().Msg("server stopped gracefully")
	return nil
}
