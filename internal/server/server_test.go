package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dota-tracker/internal/cache"
	"dota-tracker/internal/config"
	"dota-tracker/internal/generator"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/middleware"
	"dota-tracker/internal/repository"
	"dota-tracker/internal/service"
	"dota-tracker/internal/wire"
)

type memCache struct {
	data map[string][]byte
	sets int
}

func (m *memCache) Get(key string) ([]byte, bool) {
	v, ok := m.data[key]
	return v, ok
}

func (m *memCache) Set(key string, value []byte) {
	m.sets++
	m.data[key] = value
}

func (m *memCache) Clear() { m.data = make(map[string][]byte) }

var _ cache.Cache = (*memCache)(nil)

func newTestServer(t *testing.T) (http.Handler, *memCache) {
	t.Helper()
	logger := zerolog.Nop()
	store := repository.New(generator.New(9), logger)
	store.SeedDemoPlayers()
	cfg := &config.Config{PageSize: 5}
	c := &memCache{data: make(map[string][]byte)}

	s := NewStatsServer(
		service.NewPlayerService(store, logger),
		service.NewMatchService(store, metrics.Noop(), cfg, logger),
		service.NewHeroService(store, logger),
		c,
		metrics.Noop(),
		logger,
	)
	return s.Routes(), c
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRoot(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[wire.StatusResponse](t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Version)
}

func TestHeroes_CachedAfterFirstRequest(t *testing.T) {
	h, c := newTestServer(t)

	first := do(t, h, http.MethodGet, "/heroes", "")
	second := do(t, h, http.MethodGet, "/heroes", "")

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, c.sets)
	resp := decode[wire.HeroesResponse](t, first)
	assert.Len(t, resp.Heroes, 20)
}

func TestHeroesRefresh_ClearsCache(t *testing.T) {
	h, c := newTestServer(t)

	do(t, h, http.MethodGet, "/heroes", "")
	rec := do(t, h, http.MethodPost, "/heroes/refresh", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, c.data)
}

func TestGetHero(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/hero/8", "")
	resp := decode[wire.HeroResponse](t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, "Juggernaut", resp.Hero.Name)
}

func TestGetHero_NotFoundIsNotCached(t *testing.T) {
	h, c := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/hero/21", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decode[wire.HeroResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Hero not found", resp.Error)
	assert.Zero(t, c.sets)
}

func TestGetHero_InvalidID(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/hero/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHeroInfo_MalformedJSON(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/hero/info", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[wire.Envelope](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid JSON", resp.Error)
}

func TestHeroInfo(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/hero/info", `{"hero_id": 14}`)
	resp := decode[wire.HeroResponse](t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, "Pudge", resp.Hero.Name)
}

func TestAnaRoundTripOverHTTP(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/player/create", `{"user_id":"42","user_name":"Ana"}`)
	created := decode[wire.PlayerResponse](t, rec)
	require.True(t, created.Success)
	assert.Equal(t, "Ana", created.Player.UserName)

	do(t, h, http.MethodPost, "/match/add", `{"user_id":"42"}`)
	do(t, h, http.MethodPost, "/match/add", `{"user_id":"42"}`)

	rec = do(t, h, http.MethodGet, "/matches/42/0?is_my_matches=true", "")
	page := decode[wire.MatchesResponse](t, rec)
	require.True(t, page.Success)
	require.Len(t, page.Matches, 2)
	assert.ElementsMatch(t, []int{1, 2}, []int{page.Matches[0].MatchNumber, page.Matches[1].MatchNumber})
	assert.Equal(t, 1, page.Pagination.TotalPages)

	rec = do(t, h, http.MethodGet, "/stats/42", "")
	stats := decode[wire.PlayerResponse](t, rec)
	require.True(t, stats.Success)
	assert.Equal(t, 2, stats.Stats.Games)
	assert.Equal(t, stats.Stats.Games, stats.Stats.Wins+stats.Stats.Losses)
}

func TestListMatches_ByNameAndPastTheEnd(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/matches/42/0?player_name=helen", "")
	first := decode[wire.MatchesResponse](t, rec)
	require.True(t, first.Success)
	assert.Equal(t, "Helen", first.Player.UserName)
	assert.Len(t, first.Matches, 5)

	past := first.Pagination.TotalPages
	rec = do(t, h, http.MethodGet, "/matches/42/"+strconv.Itoa(past)+"?player_id="+first.Player.UserID, "")
	resp := decode[wire.MatchesResponse](t, rec)
	require.True(t, resp.Success)
	assert.Empty(t, resp.Matches)
	assert.True(t, resp.Pagination.HasPrev)
	assert.False(t, resp.Pagination.HasNext)
}

func TestListMatches_HugePageIsEmpty(t *testing.T) {
	h, _ := newTestServer(t)

	for _, page := range []string{"1844674407370955162", "9223372036854775807"} {
		rec := do(t, h, http.MethodGet, "/matches/42/"+page+"?player_id=demo_0", "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := decode[wire.MatchesResponse](t, rec)
		require.True(t, resp.Success)
		assert.Empty(t, resp.Matches)
		assert.True(t, resp.Pagination.HasPrev)
		assert.False(t, resp.Pagination.HasNext)
	}
}

func TestListMatches_PaginationKeys(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/matches/42/1?player_id=demo_0", "")

	var raw struct {
		Pagination map[string]any `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"page", "per_page", "total_matches", "total_pages", "has_prev", "has_next"} {
		assert.Contains(t, raw.Pagination, key)
	}
	assert.NotContains(t, raw.Pagination, "current_page")
	assert.EqualValues(t, 1, raw.Pagination["page"])
}

func TestListMatches_UnknownPlayerID(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/matches/42/0?player_id=ghost", "")
	resp := decode[wire.MatchesResponse](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Player not found", resp.Error)
}

func TestPostMatches(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/matches", `{"user_id":"1","player_name":"alex"}`)
	resp := decode[wire.MatchesResponse](t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, "demo_0", resp.Player.UserID)
}

func TestStats_UnknownPlayer(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/stats/ghost", "")
	resp := decode[wire.PlayerResponse](t, rec)
	assert.False(t, resp.Success)
}

func TestPlayerHeroStats(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/stats/demo_0/hero/1", "")
	resp := decode[wire.PlayerHeroStatsResponse](t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, "Anti-Mage", resp.Hero.Name)
	assert.Equal(t, resp.Stats.Matches, resp.Stats.Wins+resp.Stats.Losses)
}

func TestRegenerate(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodPost, "/matches/regenerate", `{"player_id":"demo_2"}`)
	resp := decode[wire.MatchesResponse](t, rec)
	require.True(t, resp.Success)
	assert.Equal(t, 0, resp.Pagination.Page)
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/nope", "")
	resp := decode[wire.Envelope](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Endpoint not found", resp.Error)
}

func TestPlayers(t *testing.T) {
	h, _ := newTestServer(t)

	rec := do(t, h, http.MethodGet, "/players", "")
	resp := decode[wire.PlayersResponse](t, rec)
	require.True(t, resp.Success)
	assert.Len(t, resp.Players, 8)
}

func TestMetricsRoutes_ExposesRemoteCalls(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())
	m.ObserveRemoteCall("/heroes", "ok", 20*time.Millisecond)
	h := MetricsRoutes(m, zerolog.Nop())

	rec := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dota_tracker_remote_call_duration_seconds_count{endpoint="/heroes",outcome="ok"} 1`)

	rec = do(t, h, http.MethodGet, "/heroes", "")
	resp := decode[wire.Envelope](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Endpoint not found", resp.Error)
}

func TestWriteError_UnknownErrorCarriesRequestID(t *testing.T) {
	var h http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errors.New("disk on fire"))
	})
	h = middleware.RequestID(zerolog.Nop())(h)

	req := httptest.NewRequest(http.MethodGet, "/heroes", nil)
	req.Header.Set("X-Request-ID", "req-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decode[wire.Envelope](t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Internal server error (request req-7)", resp.Error)
}
