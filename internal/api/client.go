package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"dota-tracker/internal/config"
	"dota-tracker/internal/metrics"
	"dota-tracker/internal/wire"
)

// APIError is a well-formed response with success=false.
type APIError struct {
	Endpoint string
	Message  string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Endpoint, e.Message)
}

// StatusError is a non-JSON or unexpected HTTP status from the API.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Status)
}

type MatchesQuery struct {
	UserID     string
	PlayerID   string
	PlayerName string
	MyMatches  bool
	Page       int
	PerPage    int
}

// Client talks to the stats API. Every method goes through the retry wrapper
// and the rate limiter.
type Client struct {
	baseURL string
	client  *fasthttp.Client
	limiter *rate.Limiter
	policy  RetryPolicy
	timeout time.Duration
	metrics metrics.Recorder
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, m metrics.Recorder, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     32,
			ReadTimeout:         cfg.APITimeout(),
			WriteTimeout:        cfg.APITimeout(),
			MaxIdleConnDuration: 1 * time.Minute,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.APIRateLimit), cfg.APIRateLimit),
		policy:  RetryPolicy{MaxAttempts: cfg.MaxRetries, Delay: cfg.RetryDelay()},
		timeout: cfg.APITimeout(),
		metrics: m,
		logger:  logger.With().Str("component", "api_client").Logger(),
	}
}

func (c *Client) CreatePlayer(ctx context.Context, userID, userName string) (*wire.Player, error) {
	resp, err := call(ctx, c, "player_create", func(ctx context.Context) (*wire.PlayerResponse, error) {
		return doRequest[wire.PlayerResponse](ctx, c, fasthttp.MethodPost, "/player/create", wire.CreatePlayerRequest{UserID: userID, UserName: userName})
	})
	if err != nil {
		return nil, err
	}
	return resp.Player, nil
}

func (c *Client) ListPlayers(ctx context.Context) ([]wire.Player, error) {
	resp, err := call(ctx, c, "players", func(ctx context.Context) (*wire.PlayersResponse, error) {
		return doRequest[wire.PlayersResponse](ctx, c, fasthttp.MethodGet, "/players", nil)
	})
	if err != nil {
		return nil, err
	}
	return resp.Players, nil
}

func (c *Client) Stats(ctx context.Context, userID string) (*wire.Player, error) {
	resp, err := call(ctx, c, "stats", func(ctx context.Context) (*wire.PlayerResponse, error) {
		return doRequest[wire.PlayerResponse](ctx, c, fasthttp.MethodGet, "/stats/"+url.PathEscape(userID), nil)
	})
	if err != nil {
		return nil, err
	}
	return resp.Stats, nil
}

func (c *Client) PlayerHeroStats(ctx context.Context, userID string, heroID int) (*wire.PlayerHeroStatsResponse, error) {
	path := fmt.Sprintf("/stats/%s/hero/%d", url.PathEscape(userID), heroID)
	return call(ctx, c, "player_hero_stats", func(ctx context.Context) (*wire.PlayerHeroStatsResponse, error) {
		return doRequest[wire.PlayerHeroStatsResponse](ctx, c, fasthttp.MethodGet, path, nil)
	})
}

func (c *Client) Heroes(ctx context.Context) ([]wire.Hero, error) {
	resp, err := call(ctx, c, "heroes", func(ctx context.Context) (*wire.HeroesResponse, error) {
		return doRequest[wire.HeroesResponse](ctx, c, fasthttp.MethodGet, "/heroes", nil)
	})
	if err != nil {
		return nil, err
	}
	return resp.Heroes, nil
}

func (c *Client) Hero(ctx context.Context, heroID int) (*wire.Hero, error) {
	resp, err := call(ctx, c, "hero", func(ctx context.Context) (*wire.HeroResponse, error) {
		return doRequest[wire.HeroResponse](ctx, c, fasthttp.MethodGet, "/hero/"+strconv.Itoa(heroID), nil)
	})
	if err != nil {
		return nil, err
	}
	return resp.Hero, nil
}

func (c *Client) Matches(ctx context.Context, q MatchesQuery) (*wire.MatchesResponse, error) {
	params := url.Values{}
	if q.MyMatches {
		params.Set("is_my_matches", "true")
	}
	if q.PlayerID != "" {
		params.Set("player_id", q.PlayerID)
	}
	if q.PlayerName != "" {
		params.Set("player_name", q.PlayerName)
	}
	if q.PerPage > 0 {
		params.Set("per_page", strconv.Itoa(q.PerPage))
	}
	path := fmt.Sprintf("/matches/%s/%d", url.PathEscape(q.UserID), q.Page)
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	return call(ctx, c, "matches", func(ctx context.Context) (*wire.MatchesResponse, error) {
		return doRequest[wire.MatchesResponse](ctx, c, fasthttp.MethodGet, path, nil)
	})
}

func (c *Client) AddMatch(ctx context.Context, userID string) (*wire.Match, error) {
	resp, err := call(ctx, c, "match_add", func(ctx context.Context) (*wire.MatchResponse, error) {
		return doRequest[wire.MatchResponse](ctx, c, fasthttp.MethodPost, "/match/add", wire.AddMatchRequest{UserID: userID})
	})
	if err != nil {
		return nil, err
	}
	return resp.Match, nil
}

func (c *Client) RegenerateMatches(ctx context.Context, playerID string) (*wire.MatchesResponse, error) {
	return call(ctx, c, "matches_regenerate", func(ctx context.Context) (*wire.MatchesResponse, error) {
		return doRequest[wire.MatchesResponse](ctx, c, fasthttp.MethodPost, "/matches/regenerate", wire.RegenerateRequest{PlayerID: playerID})
	})
}

func call[T any](ctx context.Context, c *Client, endpoint string, op Op[T]) (T, error) {
	start := time.Now()
	logger := c.logger.With().Str("endpoint", endpoint).Logger()

	res, err := WithRetry(c.policy, logger, op)(ctx)

	outcome := "ok"
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		outcome = "rejected"
	case err != nil:
		outcome = "unavailable"
	}
	c.metrics.ObserveRemoteCall(endpoint, outcome, time.Since(start))
	return res, err
}

func doRequest[T any, PT interface {
	*T
	wire.Result
}](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBodyRaw(payload)
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, err
	}

	if resp.StatusCode() >= fasthttp.StatusInternalServerError {
		return nil, &StatusError{Endpoint: path, Status: resp.StatusCode()}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		if resp.StatusCode() != fasthttp.StatusOK {
			return nil, &StatusError{Endpoint: path, Status: resp.StatusCode()}
		}
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}

	if env := PT(&result).Result(); !env.Success {
		return nil, &APIError{Endpoint: path, Message: env.Error}
	}
	return &result, nil
}
