package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nba-scoreboard/internal/domain/games"
	"github.com/preston-bernstein/nba-scoreboard/internal/domain/players"
	"github.com/preston-bernstein/nba-scoreboard/internal/logging"
	"github.com/preston-bernstein/nba-scoreboard/internal/metrics"
)

// instrumentedAPI records per-endpoint metrics and logs around an API. It never retries.
type instrumentedAPI struct {
	inner   API
	name    string
	metrics *metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewInstrumented wraps inner with call/error/latency metrics and provider-tagged logs.
func NewInstrumented(inner API, name string, rec *metrics.Recorder, logger *slog.Logger) API {
	return &instrumentedAPI{
		inner:   inner,
		name:    name,
		metrics: rec,
		logger:  logger,
		now:     time.Now,
	}
}

func (p *instrumentedAPI) Games(ctx context.Context, date string) ([]games.Game, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.inner.Games(ctx, date)
	p.observe(ctx, EndpointGames, start, err, slog.String(logging.FieldDate, date), slog.Int(logging.FieldCount, len(out)))
	return out, err
}

func (p *instrumentedAPI) Game(ctx context.Context, id, date string) (*games.Game, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.inner.Game(ctx, id, date)
	p.observe(ctx, EndpointGame, start, err, slog.String(logging.FieldGameID, id), slog.String(logging.FieldDate, date))
	return out, err
}

func (p *instrumentedAPI) BoxScore(ctx context.Context, id string) ([]players.StatLine, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.inner.BoxScore(ctx, id)
	p.observe(ctx, EndpointBoxScore, start, err, slog.String(logging.FieldGameID, id), slog.Int(logging.FieldCount, len(out)))
	return out, err
}

func (p *instrumentedAPI) LiveScores(ctx context.Context) ([]games.LiveScore, error) {
	if p.inner == nil {
		return nil, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.inner.LiveScores(ctx)
	p.observe(ctx, EndpointLiveScores, start, err, slog.Int(logging.FieldCount, len(out)))
	return out, err
}

func (p *instrumentedAPI) WinProbability(ctx context.Context, homeTeamID, visitorTeamID int) (games.WinProbability, error) {
	if p.inner == nil {
		return games.WinProbability{}, ErrProviderUnavailable
	}
	start := p.now()
	out, err := p.inner.WinProbability(ctx, homeTeamID, visitorTeamID)
	p.observe(ctx, EndpointPrediction, start, err, slog.Int("home_team_id", homeTeamID), slog.Int("visitor_team_id", visitorTeamID))
	return out, err
}

func (p *instrumentedAPI) observe(ctx context.Context, endpoint string, start time.Time, err error, attrs ...any) {
	duration := p.now().Sub(start)
	p.metrics.RecordAPICall(endpoint, duration, err)
	if rl, ok := AsRateLimitError(err); ok {
		p.metrics.RecordRateLimit(endpoint, rl.RetryAfter)
	}

	attrs = append(attrs,
		slog.String(logging.FieldEndpoint, endpoint),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	switch {
	case err == nil:
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "scoreboard api call", attrs...)
	case errors.Is(err, context.Canceled):
		logWithProvider(ctx, p.logger, slog.LevelDebug, p.name, "scoreboard api call canceled", attrs...)
	default:
		attrs = append(attrs, slog.Any("err", err))
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "scoreboard api call failed", attrs...)
	}
}
