package scoreapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/providers"
)

// Config controls how the client reaches the scoreboard REST API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches games, box scores, live snapshots and predictions and maps them to domain models.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	now        func() time.Time
}

var _ providers.API = (*Client)(nil)

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
	}
}

// Name identifies the client in logs and metrics.
func (c *Client) Name() string {
	return providerName
}

// Games lists the games on date (YYYY-MM-DD).
func (c *Client) Games(ctx context.Context, date string) ([]games.Game, error) {
	var payload []gameResponse
	if err := c.get(ctx, providers.EndpointGames, pathGames, url.Values{"date": {date}}, &payload); err != nil {
		return nil, err
	}
	return mapGames(payload), nil
}

// Game fetches one game. An unknown id is (nil, nil).
func (c *Client) Game(ctx context.Context, id, date string) (*games.Game, error) {
	var query url.Values
	if date != "" {
		query = url.Values{"date": {date}}
	}
	var payload gameResponse
	err := c.get(ctx, providers.EndpointGame, pathGames+"/"+url.PathEscape(id), query, &payload)
	if statusErr, ok := providers.AsStatusError(err); ok && statusErr.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	g := mapGame(payload)
	if g.ID == "" {
		g.ID = id
	}
	return &g, nil
}

// BoxScore fetches per-player stat lines for a game.
func (c *Client) BoxScore(ctx context.Context, id string) ([]players.StatLine, error) {
	var payload []statLineResponse
	if err := c.get(ctx, providers.EndpointBoxScore, pathBoxScores+"/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return mapStatLines(payload), nil
}

// LiveScores fetches the live snapshot for today's games.
func (c *Client) LiveScores(ctx context.Context) ([]games.LiveScore, error) {
	var payload []liveScoreResponse
	if err := c.get(ctx, providers.EndpointLiveScores, pathLiveScores, nil, &payload); err != nil {
		return nil, err
	}
	return mapLiveScores(payload), nil
}

// WinProbability fetches the predicted win probabilities for a pairing.
func (c *Client) WinProbability(ctx context.Context, homeTeamID, visitorTeamID int) (games.WinProbability, error) {
	query := url.Values{
		"home_team_id":    {strconv.Itoa(homeTeamID)},
		"visitor_team_id": {strconv.Itoa(visitorTeamID)},
	}
	var payload winProbabilityResponse
	if err := c.get(ctx, providers.EndpointPrediction, pathWinProbability, query, &payload); err != nil {
		return games.WinProbability{}, err
	}
	return games.WinProbability{Home: payload.Home, Visitor: payload.Visitor}, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, dest any) error {
	req, err := c.buildRequest(ctx, path, query)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return &providers.RateLimitError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    endpoint + ": rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) buildRequest(ctx context.Context, path string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}
